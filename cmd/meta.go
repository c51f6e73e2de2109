package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pders01/version-archive/internal/models"
	"github.com/spf13/cobra"
)

var metaJSON bool

var metaCmd = &cobra.Command{
	Use:   "meta <version>",
	Short: "Show metadata for an archived version",
	Long: `Display the metadata (metadata.json) stored for one version.

Example:
  version-archive meta 1.2.0`,
	Args: cobra.ExactArgs(1),
	RunE: runMeta,
}

func init() {
	rootCmd.AddCommand(metaCmd)

	metaCmd.Flags().BoolVar(&metaJSON, "json", false, "Output as JSON")
}

func runMeta(cmd *cobra.Command, args []string) error {
	version := args[0]
	if err := models.ValidateVersion(version); err != nil {
		return err
	}

	log := newLogger()
	defer log.Sync()

	store := openStore(log)
	metadata, err := store.ReadMetadata(version)
	if err != nil {
		return err
	}

	if metaJSON {
		output, err := json.MarshalIndent(metadata, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Version:     %s\n", metadata.Version)
	fmt.Printf("Name:        %s\n", metadata.Name)
	fmt.Printf("Commit:      %s\n", metadata.CommitSha)
	fmt.Printf("Build Date:  %s\n", metadata.BuildDate)
	fmt.Printf("Archived:    %s\n", metadata.Archived)
	fmt.Printf("Path:        %s\n", metadata.Path)

	if metadata.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", metadata.Description)
	}

	return nil
}
