package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/version-archive/internal/models"
	"github.com/pders01/version-archive/internal/render"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listJSON  bool
	listToon  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived versions",
	Long: `List the versions recorded in the manifest, newest first.

Examples:
  version-archive list
  version-archive list --limit 5
  version-archive list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Show at most this many versions (0 = all)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listToon, "toon", false, "Output in LLM-friendly toon format")
}

func runList(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	records, err := openStore(log).LoadManifest()
	if err != nil {
		return err
	}

	if listLimit > 0 && len(records) > listLimit {
		records = records[:listLimit]
	}

	if listJSON {
		output, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if listToon {
		output, err := gotoon.Encode(records)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No archived versions found")
		return nil
	}

	fmt.Printf("Found %d version(s):\n\n", len(records))
	for _, r := range records {
		printRecord(r)
		fmt.Println()
	}

	return nil
}

func printRecord(r models.VersionRecord) {
	fmt.Printf("  %s\n", r.Name)
	fmt.Printf("    Version:  %s\n", r.Version)
	fmt.Printf("    Built:    %s\n", r.BuildDate)
	fmt.Printf("    Commit:   %s\n", render.ShortCommit(r.CommitSha))
	fmt.Printf("    Archived: %s\n", r.Archived)
	if r.Description != "" {
		description := r.Description
		if runes := []rune(description); len(runes) > 60 {
			description = string(runes[:60]) + "..."
		}
		fmt.Printf("    Notes:    %s\n", description)
	}
}
