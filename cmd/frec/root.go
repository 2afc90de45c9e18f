package main

import (
	"github.com/spf13/cobra"

	"frec/internal/config"
	"frec/internal/logging"
	"frec/internal/version"
)

var (
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "frec",
	Short: "Rank files in a git repository by frecency",
	Long: `frec scores every file in a git repository's commit history by frecency:
a blend of how often a file changes and how recently it changed, computed
from the commit log alone.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("frec version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format (json, human)")
}

// newLogger builds a logger from the persistent flags layered over config.
// Logs go to stderr so stdout stays clean for ranked output.
func newLogger(cfg *config.Config) *logging.Logger {
	format := cfg.Logging.Format
	level := cfg.Logging.Level
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	if logLevelFlag != "" {
		level = logLevelFlag
	}

	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.LogLevel(level),
	})
}
