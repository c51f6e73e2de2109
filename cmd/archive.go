package cmd

import (
	"fmt"

	"github.com/pders01/version-archive/internal/archive"
	"github.com/pders01/version-archive/internal/config"
	"github.com/pders01/version-archive/internal/fetch"
	"github.com/pders01/version-archive/internal/git"
	"github.com/pders01/version-archive/internal/models"
	"github.com/pders01/version-archive/internal/render"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var archiveDetectCommit bool

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive a build as a new version",
	Long: `Write versions/<version>/index.html and metadata.json for a build and
add it to versions/index.json, replacing any earlier entry of the same version.

Build metadata comes from flags or the environment:
  VERSION       version identifier (required)
  COMMIT_SHA    commit the build was made from (default: unknown)
  BUILD_DATE    ISO 8601 build timestamp (default: now)
  DESCRIPTION   free text shown on the landing page
  ARTIFACT_URL  optional file to download into the version directory

When GITHUB_ACTIONS is set (or --publish is given) the result is committed
and pushed. A failed push is reported but does not fail the command.

Examples:
  VERSION=1.2.0 COMMIT_SHA=$(git rev-parse HEAD) version-archive archive
  version-archive archive --version 1.3.0 --description "Timeline view"`,
	Args: cobra.NoArgs,
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	flags := archiveCmd.Flags()
	flags.String("version", "", "Version identifier (env VERSION)")
	flags.String("commit", "", "Commit reference (env COMMIT_SHA)")
	flags.String("build-date", "", "ISO 8601 build timestamp (env BUILD_DATE)")
	flags.String("description", "", "Description shown on the landing page (env DESCRIPTION)")
	flags.String("artifact-url", "", "Download this file into the version directory (env ARTIFACT_URL)")
	flags.Bool("publish", false, "Commit and push the archive (env GITHUB_ACTIONS)")
	flags.BoolVar(&archiveDetectCommit, "detect-commit", false, "Use the current HEAD when no commit is given")

	viper.BindPFlag(config.KeyVersion, flags.Lookup("version"))
	viper.BindPFlag(config.KeyCommitSha, flags.Lookup("commit"))
	viper.BindPFlag(config.KeyBuildDate, flags.Lookup("build-date"))
	viper.BindPFlag(config.KeyDescription, flags.Lookup("description"))
	viper.BindPFlag(config.KeyArtifactURL, flags.Lookup("artifact-url"))
	viper.BindPFlag(config.KeyPublishEnabled, flags.Lookup("publish"))
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg := config.Load(viper.GetViper())

	if archiveDetectCommit && cfg.Build.CommitSha == "" {
		commit, err := git.GetCurrentCommit(".")
		if err != nil {
			warnf("could not detect commit: %v", err)
		} else {
			cfg.Build.CommitSha = commit
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Println("Archiving version:", cfg.Build.Version)
	fmt.Println("Commit SHA:", render.ShortCommit(cfg.Build.CommitSha))
	if cfg.Build.BuildDate != "" {
		fmt.Println("Build Date:", cfg.Build.BuildDate)
	}

	log := newLogger()
	defer log.Sync()

	opts := archive.Options{
		Site: render.Site{
			ProductName: cfg.Site.ProductName,
			LatestURL:   cfg.Site.LatestURL,
			CommitURL:   cfg.Site.CommitURL,
		},
		Fetcher: fetch.NewClient(nil),
		Logger:  log,
	}
	if cfg.Publish.Enabled {
		opts.Publisher = &git.Publisher{
			Dir:       ".",
			UserName:  cfg.Publish.UserName,
			UserEmail: cfg.Publish.UserEmail,
			Remote:    cfg.Publish.Remote,
		}
	}

	store := archive.NewStore(afero.NewOsFs(), cfg.ArchiveRoot, log)
	result, err := archive.New(store, opts).Archive(commandContext(cmd), cfg.Build, cfg.ArtifactURL)
	if err != nil {
		return fmt.Errorf("error archiving version: %w", err)
	}

	fmt.Println()
	successf("Successfully archived version %s", result.Record.Version)
	if result.ArtifactIsPage {
		fmt.Printf("  Page:     %s (downloaded)\n", models.PagePath(cfg.ArchiveRoot, result.Record.Version))
	} else {
		fmt.Printf("  Page:     %s\n", models.PagePath(cfg.ArchiveRoot, result.Record.Version))
	}
	fmt.Printf("  Metadata: %s\n", models.MetadataPath(cfg.ArchiveRoot, result.Record.Version))
	if result.Artifact != "" && !result.ArtifactIsPage {
		fmt.Printf("  Artifact: %s\n", result.Artifact)
	}
	fmt.Printf("  Manifest: %s (%d version(s))\n", models.ManifestPath(cfg.ArchiveRoot), result.ManifestSize)

	if cfg.Publish.Enabled {
		if result.Published {
			successf("Changes committed and pushed")
		} else {
			warnf("could not commit changes: %v", result.PublishErr)
		}
	}

	return nil
}
