package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pders01/version-archive/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "version-archive",
	Short: "Archive application builds as browsable versioned snapshots",
	Long: `version-archive keeps a browsable archive of every released build:
  - a landing page and metadata.json per version under versions/<version>/
  - a manifest (versions/index.json) of all versions, newest first
  - an optional commit and push of the result when running in CI

Build metadata is read from VERSION, COMMIT_SHA, BUILD_DATE and DESCRIPTION.
Publishing is enabled automatically when GITHUB_ACTIONS is set.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/version-archive/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().String("root", "", "Archive root directory (default: versions)")
	viper.BindPFlag(config.KeyArchiveRoot, rootCmd.PersistentFlags().Lookup("root"))

	// registered at init so runX functions called without Execute see them
	config.SetDefaults(viper.GetViper())
	if err := config.BindEnv(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := defaultConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "version-archive"), nil
}
