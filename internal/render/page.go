// Package render produces the static landing page for an archived version.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/pders01/version-archive/internal/models"
)

// ShortCommitLen is how many characters of a commit reference are displayed
const ShortCommitLen = 8

// DisplayDateLayout is the en-US short date form used on landing pages
const DisplayDateLayout = "1/2/2006"

//go:embed templates/version.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/version.html.tmpl"))

// Site holds the product name and link targets shared by every page
type Site struct {
	ProductName string
	LatestURL   string
	CommitURL   string
}

type pageData struct {
	Product     string
	Version     string
	BuildDate   string
	Description string
	LatestURL   string
	CommitLabel string
	CommitURL   string
}

// Page renders the landing page for info
func Page(site Site, info models.BuildInfo) ([]byte, error) {
	data := pageData{
		Product:     site.ProductName,
		Version:     info.Version,
		BuildDate:   FormatBuildDate(info.BuildDate),
		Description: info.Description,
		LatestURL:   site.LatestURL,
		CommitLabel: ShortCommit(info.CommitSha),
	}
	if info.CommitSha != "" && info.CommitSha != models.UnknownCommit {
		data.CommitURL = site.CommitURL + info.CommitSha
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page for %s: %w", info.Version, err)
	}
	return buf.Bytes(), nil
}

// ShortCommit truncates a commit reference for display
func ShortCommit(sha string) string {
	if sha == "" {
		return models.UnknownCommit
	}
	if runes := []rune(sha); len(runes) > ShortCommitLen {
		return string(runes[:ShortCommitLen])
	}
	return sha
}

// FormatBuildDate renders an ISO timestamp as a short human date.
// Unparseable input is returned unchanged.
func FormatBuildDate(buildDate string) string {
	t, ok := models.ParseTimestamp(buildDate)
	if !ok {
		return buildDate
	}
	return t.Format(DisplayDateLayout)
}
