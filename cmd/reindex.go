package cmd

import (
	"fmt"

	"github.com/pders01/version-archive/internal/models"
	"github.com/spf13/cobra"
)

var reindexDryRun bool

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the manifest from per-version metadata",
	Long: `Rebuild versions/index.json from every versions/<version>/metadata.json.

Use this after the manifest was lost or replaced because it could not be
parsed. Directories without a readable metadata.json are skipped.

Examples:
  version-archive reindex --dry-run
  version-archive reindex`,
	Args: cobra.NoArgs,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)

	reindexCmd.Flags().BoolVar(&reindexDryRun, "dry-run", false, "Show the rebuilt manifest without writing it")
}

func runReindex(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	store := openStore(log)
	records, err := store.Rebuild()
	if err != nil {
		return err
	}

	fmt.Printf("Found %d version(s) under %s\n", len(records), store.Root())
	for _, r := range records {
		fmt.Printf("  - %s (%s)\n", r.Version, r.BuildDate)
	}

	if reindexDryRun {
		fmt.Println("\nThis is a dry run. Run without --dry-run to write the manifest.")
		return nil
	}

	if err := store.SaveManifest(records); err != nil {
		return err
	}

	fmt.Println()
	successf("Manifest rebuilt: %s", models.ManifestPath(store.Root()))
	return nil
}
