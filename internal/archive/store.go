package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pders01/version-archive/internal/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Store reads and writes the archive root on a filesystem
type Store struct {
	fs   afero.Fs
	root string
	log  *zap.Logger
}

// NewStore creates a store rooted at root. A nil logger is replaced by a no-op one.
func NewStore(fs afero.Fs, root string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{fs: fs, root: root, log: log}
}

// Root returns the archive root directory
func (s *Store) Root() string {
	return s.root
}

// Fs returns the underlying filesystem
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// WriteVersion creates the version directory and writes the page and metadata
// into it. A nil page leaves any existing index.html in place.
func (s *Store) WriteVersion(rec models.VersionRecord, page []byte) error {
	dir := models.VersionDir(s.root, rec.Version)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create version directory: %w", err)
	}

	if page != nil {
		if err := afero.WriteFile(s.fs, models.PagePath(s.root, rec.Version), page, 0644); err != nil {
			return fmt.Errorf("failed to write page: %w", err)
		}
	}

	metaBytes, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := afero.WriteFile(s.fs, models.MetadataPath(s.root, rec.Version), metaBytes, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	s.log.Debug("wrote version artifacts",
		zap.String("version", rec.Version),
		zap.String("dir", dir),
	)
	return nil
}

// LoadManifest reads index.json. A missing manifest is empty; one that cannot
// be read or parsed is logged and also treated as empty. Write problems on the
// same path surface from SaveManifest.
func (s *Store) LoadManifest() ([]models.VersionRecord, error) {
	path := models.ManifestPath(s.root)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.VersionRecord{}, nil
		}
		s.log.Warn("could not read existing manifest, starting a new one",
			zap.String("path", path),
			zap.Error(err),
		)
		return []models.VersionRecord{}, nil
	}

	records, err := DecodeManifest(data)
	if err != nil {
		s.log.Warn("could not parse existing manifest, starting a new one",
			zap.String("path", path),
			zap.Error(err),
		)
		return []models.VersionRecord{}, nil
	}
	return records, nil
}

// SaveManifest overwrites index.json with records
func (s *Store) SaveManifest(records []models.VersionRecord) error {
	data, err := EncodeManifest(records)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create archive root: %w", err)
	}
	if err := afero.WriteFile(s.fs, models.ManifestPath(s.root), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadMetadata reads the metadata.json of one version
func (s *Store) ReadMetadata(version string) (models.VersionRecord, error) {
	var rec models.VersionRecord
	data, err := afero.ReadFile(s.fs, models.MetadataPath(s.root, version))
	if err != nil {
		return rec, fmt.Errorf("failed to read metadata for %s: %w", version, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to parse metadata for %s: %w", version, err)
	}
	return rec, nil
}

// VersionDirs returns the names of directories under the root that hold a metadata.json
func (s *Store) VersionDirs() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list archive root: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		ok, err := afero.Exists(s.fs, filepath.Join(s.root, entry.Name(), models.MetadataFile))
		if err != nil {
			return nil, err
		}
		if ok {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Rebuild reconstructs the manifest from every version's metadata.json.
// Unreadable metadata files are skipped with a warning.
func (s *Store) Rebuild() ([]models.VersionRecord, error) {
	dirs, err := s.VersionDirs()
	if err != nil {
		return nil, err
	}

	records := []models.VersionRecord{}
	for _, dir := range dirs {
		rec, err := s.ReadMetadata(dir)
		if err != nil {
			s.log.Warn("skipping version", zap.String("dir", dir), zap.Error(err))
			continue
		}
		if rec.Version != dir {
			s.log.Warn("metadata version does not match its directory, using directory name",
				zap.String("dir", dir),
				zap.String("version", rec.Version),
			)
			rec.Version = dir
			rec.Path = dir
		}
		records = Upsert(records, rec)
	}
	return records, nil
}
