// Package archive writes versioned snapshots of a build and keeps the
// manifest of archived versions sorted newest first.
package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pders01/version-archive/internal/fetch"
	"github.com/pders01/version-archive/internal/models"
	"github.com/pders01/version-archive/internal/render"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Publisher commits and pushes the archive after a successful write
type Publisher interface {
	Publish(version string) error
}

// Fetcher downloads a build artifact into a version directory
type Fetcher interface {
	Fetch(ctx context.Context, fs afero.Fs, url, dir string) (string, error)
}

// Options configures an Archiver
type Options struct {
	Site      render.Site
	Publisher Publisher
	Fetcher   Fetcher
	Logger    *zap.Logger
	Now       func() time.Time
}

// Archiver runs the resolve, render, write, update and publish steps in order
type Archiver struct {
	store     *Store
	site      render.Site
	publisher Publisher
	fetcher   Fetcher
	log       *zap.Logger
	now       func() time.Time
}

// Result describes what one archive run did
type Result struct {
	Record         models.VersionRecord
	ManifestSize   int
	Artifact       string
	// ArtifactIsPage is set when the downloaded artifact is the version's index.html
	ArtifactIsPage bool
	Published      bool
	PublishErr     error
}

// New creates an Archiver writing through store
func New(store *Store, opts Options) *Archiver {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Archiver{
		store:     store,
		site:      opts.Site,
		publisher: opts.Publisher,
		fetcher:   opts.Fetcher,
		log:       opts.Logger,
		now:       opts.Now,
	}
}

// Archive writes info as a new version and updates the manifest.
// artifactURL is optional; when set the file is downloaded into the version
// directory first. Publishing errors are reported in the Result, never returned.
func (a *Archiver) Archive(ctx context.Context, info models.BuildInfo, artifactURL string) (*Result, error) {
	info = info.WithDefaults(a.now())
	if err := models.ValidateVersion(info.Version); err != nil {
		return nil, err
	}

	a.log.Info("archiving version",
		zap.String("version", info.Version),
		zap.String("commit", info.CommitSha),
		zap.String("build_date", info.BuildDate),
	)
	if _, ok := models.ParseTimestamp(info.BuildDate); !ok {
		a.log.Warn("build date is not an ISO 8601 timestamp, it will sort after dated versions",
			zap.String("version", info.Version),
			zap.String("build_date", info.BuildDate),
		)
	}

	page, err := render.Page(a.site, info)
	if err != nil {
		return nil, err
	}

	rec := models.NewVersionRecord(info, a.now())
	result := &Result{Record: rec}

	if artifactURL != "" {
		if a.fetcher == nil {
			return nil, fmt.Errorf("artifact url given but no fetcher configured")
		}
		if name, err := fetch.FileName(artifactURL); err == nil && name == models.MetadataFile {
			return nil, fmt.Errorf("artifact name %q is reserved for the version record", name)
		}
		dir := models.VersionDir(a.store.Root(), info.Version)
		if err := a.store.Fs().MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create version directory: %w", err)
		}
		path, err := a.fetcher.Fetch(ctx, a.store.Fs(), artifactURL, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to download artifact: %w", err)
		}
		result.Artifact = path

		switch filepath.Base(path) {
		case models.MetadataFile:
			a.store.Fs().Remove(path)
			return nil, fmt.Errorf("artifact name %q is reserved for the version record", models.MetadataFile)
		case models.PageFile:
			// the downloaded page replaces the placeholder
			a.log.Info("artifact is the version page, skipping placeholder", zap.String("path", path))
			page = nil
			result.ArtifactIsPage = true
		}
	}

	if err := a.store.WriteVersion(rec, page); err != nil {
		return nil, err
	}

	prior, err := a.store.LoadManifest()
	if err != nil {
		return nil, err
	}
	manifest := Upsert(prior, rec)
	if err := a.store.SaveManifest(manifest); err != nil {
		return nil, err
	}
	result.ManifestSize = len(manifest)

	a.log.Info("archived version",
		zap.String("version", rec.Version),
		zap.Int("manifest_size", len(manifest)),
	)

	if a.publisher != nil {
		if err := a.publisher.Publish(rec.Version); err != nil {
			a.log.Warn("could not publish archive", zap.String("version", rec.Version), zap.Error(err))
			result.PublishErr = err
		} else {
			result.Published = true
		}
	}

	return result, nil
}
