package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pders01/version-archive/internal/config"
	"github.com/pders01/version-archive/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the archive in the current directory",
	Long: `Create the archive root with an empty manifest and write a default
config file if one doesn't exist.

This command:
  - Creates versions/ and versions/index.json if they are missing
  - Creates $HOME/.config/version-archive/config.toml with the defaults

Run this once per repository before the first archive.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

type fileConfig struct {
	Archive archiveSection `toml:"archive"`
	Site    siteSection    `toml:"site"`
	Publish publishSection `toml:"publish"`
}

type archiveSection struct {
	Root string `toml:"root"`
}

type siteSection struct {
	ProductName string `toml:"product_name"`
	LatestURL   string `toml:"latest_url"`
	CommitURL   string `toml:"commit_url"`
}

type publishSection struct {
	UserName  string `toml:"user_name"`
	UserEmail string `toml:"user_email"`
	Remote    string `toml:"remote"`
}

func defaultFileConfig(cfg config.Config) fileConfig {
	return fileConfig{
		Archive: archiveSection{Root: cfg.ArchiveRoot},
		Site: siteSection{
			ProductName: cfg.Site.ProductName,
			LatestURL:   cfg.Site.LatestURL,
			CommitURL:   cfg.Site.CommitURL,
		},
		Publish: publishSection{
			UserName:  cfg.Publish.UserName,
			UserEmail: cfg.Publish.UserEmail,
			Remote:    cfg.Publish.Remote,
		},
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	store := openStore(log)
	manifestPath := models.ManifestPath(store.Root())

	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		if err := store.SaveManifest(nil); err != nil {
			return err
		}
		successf("Created empty manifest: %s", manifestPath)
	} else if err != nil {
		return fmt.Errorf("failed to check manifest: %w", err)
	} else {
		fmt.Printf("Manifest already exists: %s\n", manifestPath)
	}

	configDir, err := defaultConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(configDir, "config.toml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		defer f.Close()

		if err := toml.NewEncoder(f).Encode(defaultFileConfig(config.Load(viper.GetViper()))); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		successf("Created default config: %s", configPath)
	} else {
		fmt.Printf("Config already exists: %s\n", configPath)
	}

	fmt.Println()
	successf("Archive initialized successfully!")
	fmt.Println("  You can now use: VERSION=<version> version-archive archive")

	return nil
}
