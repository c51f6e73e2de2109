package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pders01/version-archive/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(version, buildDate string) models.VersionRecord {
	return models.VersionRecord{
		Name:      models.DisplayName(version),
		Version:   version,
		CommitSha: models.UnknownCommit,
		BuildDate: buildDate,
		Path:      version,
		Archived:  "2024-02-01T12:00:00.000Z",
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestValidateManifest(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		raw      []byte
		problems int
	}{
		{
			name:     "empty",
			raw:      []byte("[]"),
			problems: 0,
		},
		{
			name: "sorted",
			raw: mustJSON(t, []models.VersionRecord{
				rec("2.0.0", "2024-02-01T00:00:00Z"),
				rec("1.0.0", "2024-01-01T00:00:00Z"),
			}),
			problems: 0,
		},
		{
			name: "unsorted",
			raw: mustJSON(t, []models.VersionRecord{
				rec("1.0.0", "2024-01-01T00:00:00Z"),
				rec("2.0.0", "2024-02-01T00:00:00Z"),
			}),
			problems: 1,
		},
		{
			name: "undated build sorts last",
			raw: mustJSON(t, []models.VersionRecord{
				rec("2.0.0", "2024-02-01T00:00:00Z"),
				rec("nightly", "last tuesday"),
			}),
			problems: 0,
		},
		{
			name: "duplicate version",
			raw: mustJSON(t, []models.VersionRecord{
				rec("1.0.0", "2024-01-01T00:00:00Z"),
				rec("1.0.0", "2024-01-01T00:00:00Z"),
			}),
			problems: 1,
		},
		{
			name:     "missing fields",
			raw:      []byte(`[{"version": "1.0.0"}]`),
			problems: 1,
		},
		{
			name:     "not an array",
			raw:      []byte(`{"version": "1.0.0"}`),
			problems: 1,
		},
		{
			name:     "not json",
			raw:      []byte(`{`),
			problems: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := v.ValidateManifest(tt.raw)
			assert.Len(t, problems, tt.problems, "%v", problems)
		})
	}
}

func TestValidateRecord(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	good := mustJSON(t, rec("1.0.0", "2024-01-01T00:00:00Z"))
	assert.NoError(t, v.ValidateRecord(good, "1.0.0"))
	assert.Error(t, v.ValidateRecord(good, "1.0.1"))

	slashed := rec("a/b", "2024-01-01T00:00:00Z")
	assert.Error(t, v.ValidateRecord(mustJSON(t, slashed), "a/b"))

	wrongPath := rec("1.0.0", "2024-01-01T00:00:00Z")
	wrongPath.Path = "elsewhere"
	assert.Error(t, v.ValidateRecord(mustJSON(t, wrongPath), "1.0.0"))
}

func TestRenderProblems(t *testing.T) {
	out := RenderProblems("index.json", []error{assert.AnError})
	assert.True(t, strings.HasPrefix(out, "index.json: 1 problem(s)"))
	assert.Contains(t, out, "- "+assert.AnError.Error())
}
