package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/pders01/version-archive/internal/models"
	"github.com/pders01/version-archive/internal/schema"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the manifest and metadata files",
	Long: `Validate versions/index.json and every versions/<version>/metadata.json
against the archive schema. Also checks that versions are unique, that each
directory matches its version, and that the manifest is sorted newest first.

Exits non-zero when any problem is found.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	validator, err := schema.New()
	if err != nil {
		return err
	}

	store := openStore(log)
	fs := store.Fs()
	failed := 0

	manifestPath := models.ManifestPath(store.Root())
	raw, err := afero.ReadFile(fs, manifestPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		warnf("no manifest at %s", manifestPath)
	case err != nil:
		return fmt.Errorf("failed to read manifest: %w", err)
	default:
		if problems := validator.ValidateManifest(raw); len(problems) > 0 {
			failed += len(problems)
			fmt.Println(schema.RenderProblems(manifestPath, problems))
		}
	}

	dirs, err := store.VersionDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		path := models.MetadataPath(store.Root(), dir)
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := validator.ValidateRecord(raw, dir); err != nil {
			failed++
			fmt.Println(schema.RenderProblems(path, []error{err}))
		}
	}

	if failed > 0 {
		return fmt.Errorf("validation failed: %d problem(s)", failed)
	}

	successf("Archive is valid (%d version directories checked)", len(dirs))
	return nil
}
