package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListNoVersions(t *testing.T) {
	chdirTemp(t)

	// Reset flags
	listLimit = 0
	listJSON = false
	listToon = false

	// Should succeed without a manifest
	err := runList(nil, []string{})
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}
}

func TestListWithVersions(t *testing.T) {
	chdirTemp(t)

	createTestVersion(t, "1.0.0", "2024-01-01T00:00:00Z", "First")
	createTestVersion(t, "1.1.0", "2024-02-01T00:00:00Z", "")

	listLimit = 0
	listJSON = false
	listToon = false

	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list command failed: %v", err)
	}
}

func TestListFormats(t *testing.T) {
	chdirTemp(t)
	createTestVersion(t, "1.0.0", "2024-01-01T00:00:00Z", "First")

	tests := []struct {
		name string
		json bool
		toon bool
	}{
		{name: "json", json: true},
		{name: "toon", toon: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listLimit = 1
			listJSON = tt.json
			listToon = tt.toon
			defer func() {
				listLimit = 0
				listJSON = false
				listToon = false
			}()

			if err := runList(nil, []string{}); err != nil {
				t.Fatalf("list command failed: %v", err)
			}
		})
	}
}

func TestListCorruptManifest(t *testing.T) {
	dir := chdirTemp(t)
	os.MkdirAll(filepath.Join(dir, "versions"), 0755)
	os.WriteFile(filepath.Join(dir, "versions", "index.json"), []byte("{"), 0644)

	listLimit = 0
	listJSON = false
	listToon = false

	// a corrupt manifest is reported as a warning, not an error
	if err := runList(nil, []string{}); err != nil {
		t.Fatalf("list command failed: %v", err)
	}
}

// Helper function to archive test versions
func createTestVersion(t *testing.T, version, buildDate, description string) {
	t.Helper()

	setBuildEnv(t, version, "abcdef1234567890", buildDate, description)

	if err := runArchive(nil, nil); err != nil {
		t.Fatalf("failed to archive test version: %v", err)
	}
}
