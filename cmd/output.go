package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pders01/version-archive/internal/archive"
	"github.com/pders01/version-archive/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

func warnf(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

func successf(format string, args ...any) {
	successColor.Printf("✓ "+format+"\n", args...)
}

// newLogger builds the console logger handed to library packages
func newLogger() *zap.Logger {
	lc := zap.NewDevelopmentConfig()
	lc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		lc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	lc.DisableStacktrace = true
	lc.DisableCaller = true
	lc.EncoderConfig.TimeKey = ""
	lc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := lc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to build logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// openStore opens the archive root from the current configuration on disk
func openStore(log *zap.Logger) *archive.Store {
	return archive.NewStore(afero.NewOsFs(), config.GetArchiveRoot(), log)
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
