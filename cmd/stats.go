package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/version-archive/internal/models"
	"github.com/spf13/cobra"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics",
	Long: `Display statistics about the archive including:
  - Total version count
  - Build date range
  - Versions with descriptions and known commits
  - Archived versions per month

Examples:
  version-archive stats
  version-archive stats --json
  version-archive stats --toon`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type archiveStats struct {
	TotalVersions    int               `json:"total_versions"`
	LatestVersion    string            `json:"latest_version,omitempty"`
	OldestBuild      string            `json:"oldest_build,omitempty"`
	NewestBuild      string            `json:"newest_build,omitempty"`
	WithDescription  int               `json:"with_description"`
	WithKnownCommit  int               `json:"with_known_commit"`
	MonthlyActivity  []monthlyActivity `json:"monthly_activity"`
	UnparseableDates int               `json:"unparseable_dates"`
}

type monthlyActivity struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

func collectStats(records []models.VersionRecord) *archiveStats {
	stats := &archiveStats{
		TotalVersions:   len(records),
		MonthlyActivity: []monthlyActivity{},
	}
	if len(records) == 0 {
		return stats
	}

	// manifest is sorted newest first
	stats.LatestVersion = records[0].Version

	byMonth := make(map[string]int)
	for _, r := range records {
		if r.Description != "" {
			stats.WithDescription++
		}
		if r.CommitSha != "" && r.CommitSha != models.UnknownCommit {
			stats.WithKnownCommit++
		}

		t, ok := models.ParseTimestamp(r.BuildDate)
		if !ok {
			stats.UnparseableDates++
			continue
		}
		if stats.NewestBuild == "" {
			stats.NewestBuild = r.BuildDate
		}
		stats.OldestBuild = r.BuildDate
		byMonth[t.Format("2006-01")]++
	}

	for month, count := range byMonth {
		stats.MonthlyActivity = append(stats.MonthlyActivity, monthlyActivity{Month: month, Count: count})
	}
	sort.Slice(stats.MonthlyActivity, func(i, j int) bool {
		return stats.MonthlyActivity[i].Month > stats.MonthlyActivity[j].Month
	})

	return stats
}

func runStats(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	records, err := openStore(log).LoadManifest()
	if err != nil {
		return err
	}

	stats := collectStats(records)

	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	if stats.TotalVersions == 0 {
		fmt.Println("No archived versions found")
		return nil
	}

	fmt.Println("Archive Statistics")
	fmt.Println("━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Printf("Total Versions:  %d\n", stats.TotalVersions)
	fmt.Printf("Latest Version:  %s\n", stats.LatestVersion)
	if stats.OldestBuild != "" {
		fmt.Printf("Build Range:     %s to %s\n", stats.OldestBuild, stats.NewestBuild)
	}
	fmt.Println()

	percentage := func(n int) float64 {
		return float64(n) / float64(stats.TotalVersions) * 100
	}
	fmt.Printf("With description:  %3d  (%.1f%%)\n", stats.WithDescription, percentage(stats.WithDescription))
	fmt.Printf("With known commit: %3d  (%.1f%%)\n", stats.WithKnownCommit, percentage(stats.WithKnownCommit))
	if stats.UnparseableDates > 0 {
		fmt.Printf("Unparseable dates: %3d\n", stats.UnparseableDates)
	}
	fmt.Println()

	if len(stats.MonthlyActivity) > 0 {
		fmt.Println("Recent Activity:")
		limit := 12
		if len(stats.MonthlyActivity) < limit {
			limit = len(stats.MonthlyActivity)
		}
		for i := 0; i < limit; i++ {
			ma := stats.MonthlyActivity[i]
			bar := ""
			for j := 0; j < ma.Count && j < 20; j++ {
				bar += "█"
			}
			fmt.Printf("  %s  %3d  %s\n", ma.Month, ma.Count, bar)
		}
	}

	return nil
}
