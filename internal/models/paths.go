package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultArchiveRoot is the directory holding every archived version
const DefaultArchiveRoot = "versions"

const (
	// ManifestFile is the manifest name under the archive root
	ManifestFile = "index.json"
	// PageFile is the landing page name inside a version directory
	PageFile = "index.html"
	// MetadataFile is the record name inside a version directory
	MetadataFile = "metadata.json"
)

// ManifestPath returns the path to index.json under root
// Format: <root>/index.json
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestFile)
}

// VersionDir returns the directory for a version
// Format: <root>/<version>
func VersionDir(root, version string) string {
	return filepath.Join(root, version)
}

// PagePath returns the path to a version's index.html
func PagePath(root, version string) string {
	return filepath.Join(VersionDir(root, version), PageFile)
}

// MetadataPath returns the path to a version's metadata.json
func MetadataPath(root, version string) string {
	return filepath.Join(VersionDir(root, version), MetadataFile)
}

// ValidateVersion checks that a version can be used as a single directory name
func ValidateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return fmt.Errorf("version is empty")
	}
	if version == "." || version == ".." {
		return fmt.Errorf("version %q is not a directory name", version)
	}
	if strings.ContainsAny(version, `/\`) {
		return fmt.Errorf("version %q contains a path separator", version)
	}
	return nil
}
