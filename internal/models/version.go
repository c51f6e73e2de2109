package models

import (
	"fmt"
	"time"
)

// UnknownCommit is recorded when no commit reference was supplied
const UnknownCommit = "unknown"

// ISOTimestamp matches the millisecond UTC form used for build and archive times
const ISOTimestamp = "2006-01-02T15:04:05.000Z"

// ISODate is the date-only form used as the fallback version identifier
const ISODate = "2006-01-02"

// BuildInfo is the resolved description of one build
type BuildInfo struct {
	Version     string
	CommitSha   string
	BuildDate   string
	Description string
}

// WithDefaults fills absent fields the way a library caller expects:
// version falls back to the current date and build date to the current time.
// CommitSha stays empty so renderers can tell it was never provided.
func (b BuildInfo) WithDefaults(now time.Time) BuildInfo {
	now = now.UTC()
	if b.Version == "" {
		b.Version = now.Format(ISODate)
	}
	if b.BuildDate == "" {
		b.BuildDate = now.Format(ISOTimestamp)
	}
	return b
}

// VersionRecord represents one entry of the manifest and the metadata.json
// stored next to each archived page
type VersionRecord struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	CommitSha   string `json:"commitSha"`
	BuildDate   string `json:"buildDate"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Archived    string `json:"archived"`
}

// DisplayName returns the human label for a version
func DisplayName(version string) string {
	return fmt.Sprintf("Version %s", version)
}

// NewVersionRecord builds the record written for info at archive time
func NewVersionRecord(info BuildInfo, archived time.Time) VersionRecord {
	commit := info.CommitSha
	if commit == "" {
		commit = UnknownCommit
	}
	return VersionRecord{
		Name:        DisplayName(info.Version),
		Version:     info.Version,
		CommitSha:   commit,
		BuildDate:   info.BuildDate,
		Description: info.Description,
		Path:        info.Version,
		Archived:    archived.UTC().Format(ISOTimestamp),
	}
}

// ParseTimestamp parses the ISO 8601 forms build dates show up in.
// The second return value is false when none of them match.
func ParseTimestamp(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		ISODate,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
