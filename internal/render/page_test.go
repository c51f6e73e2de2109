package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pders01/version-archive/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSite = Site{
	ProductName: "μPMT",
	LatestURL:   "https://upmt.github.io/upmt/",
	CommitURL:   "https://github.com/upmt/upmt/commit/",
}

func TestPageExampleScenario(t *testing.T) {
	page, err := Page(testSite, models.BuildInfo{
		Version:   "1.2.0",
		CommitSha: "abcdef1234567890",
		BuildDate: "2024-01-15T10:00:00Z",
	})
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<title>μPMT v1.2.0</title>")
	assert.Contains(t, html, "μPMT Version 1.2.0")
	assert.Contains(t, html, "built on 1/15/2024")
	assert.Contains(t, html, `<a href="https://github.com/upmt/upmt/commit/abcdef1234567890">abcdef12</a>`)
	assert.Contains(t, html, `href="https://upmt.github.io/upmt/"`)
	assert.Contains(t, html, `href="../"`)
	assert.NotContains(t, html, `class="description"`)
}

func TestPageDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        bool
	}{
		{name: "omitted", description: "", want: false},
		{name: "supplied", description: "Adds the timeline view", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Page(testSite, models.BuildInfo{
				Version:     "2.0.0",
				BuildDate:   "2024-03-01T00:00:00Z",
				Description: tt.description,
			})
			require.NoError(t, err)

			html := string(page)
			assert.Equal(t, tt.want, strings.Contains(html, `class="description"`))
			if tt.want {
				assert.Contains(t, html, tt.description)
			}
		})
	}
}

func TestPageEscapesDescription(t *testing.T) {
	page, err := Page(testSite, models.BuildInfo{
		Version:     "2.0.1",
		BuildDate:   "2024-03-01T00:00:00Z",
		Description: "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, string(page), "<script>")
}

func TestPageUnknownCommit(t *testing.T) {
	page, err := Page(testSite, models.BuildInfo{
		Version:   "1.0.0",
		BuildDate: "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "Commit: unknown")
	assert.NotContains(t, html, "/commit/")
}

func TestShortCommit(t *testing.T) {
	assert.Equal(t, "unknown", ShortCommit(""))
	assert.Equal(t, "abc", ShortCommit("abc"))
	assert.Equal(t, "abcdef12", ShortCommit("abcdef12"))
	assert.Equal(t, "abcdef12", ShortCommit("abcdef1234567890"))

	short := ShortCommit("äöüäöüäöüäöü")
	assert.Equal(t, "äöüäöüäö", short)
	assert.True(t, utf8.ValidString(short))
}

func TestFormatBuildDate(t *testing.T) {
	assert.Equal(t, "1/15/2024", FormatBuildDate("2024-01-15T10:00:00Z"))
	assert.Equal(t, "12/3/2023", FormatBuildDate("2023-12-03"))
	assert.Equal(t, "someday", FormatBuildDate("someday"))
}
