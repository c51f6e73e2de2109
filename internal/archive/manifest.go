package archive

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/pders01/version-archive/internal/models"
)

// Upsert returns a new manifest with rec inserted or replacing the record of
// the same version, sorted newest first. prior is not modified.
func Upsert(prior []models.VersionRecord, rec models.VersionRecord) []models.VersionRecord {
	next := make([]models.VersionRecord, 0, len(prior)+1)
	replaced := false
	for _, existing := range prior {
		if existing.Version == rec.Version {
			if !replaced {
				next = append(next, rec)
				replaced = true
			}
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append(next, rec)
	}
	SortNewestFirst(next)
	return next
}

// SortNewestFirst orders records by build date descending. Equal dates are
// ordered by version ascending; unparseable dates go last.
func SortNewestFirst(records []models.VersionRecord) {
	slices.SortStableFunc(records, compareRecords)
}

func compareRecords(a, b models.VersionRecord) int {
	ta, okA := models.ParseTimestamp(a.BuildDate)
	tb, okB := models.ParseTimestamp(b.BuildDate)
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	case okA && okB:
		if c := tb.Compare(ta); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Version, b.Version)
}

// DecodeManifest parses index.json content
func DecodeManifest(data []byte) ([]models.VersionRecord, error) {
	var records []models.VersionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return records, nil
}

// EncodeManifest renders records as indented JSON. An empty manifest is
// written as [] rather than null.
func EncodeManifest(records []models.VersionRecord) ([]byte, error) {
	if records == nil {
		records = []models.VersionRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}
