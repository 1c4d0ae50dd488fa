package cmd

import (
	"fmt"
	"os"

	"storage-bridge/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where LoadConfig looks for .env.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "storage-bridge",
	Short: "In-game storage bridge",
	Long: `Storage Bridge mirrors the inventory of an in-game storage system into a database,
keeps it searchable and enforces per-item min/max limits by sending craft requests back.

Configuration comes from the environment and an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits with status 1 on error.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// The configured logger may be what failed, so errors go through a fixed console logger.
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "env-dir", ".", "Directory containing the .env file")
}
