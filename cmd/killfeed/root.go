package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "killfeed",
	Short: "Read-only killboard lookup API for EVE Online data",
	Long: `killfeed serves killmail, character, corporation and alliance
lookups over HTTP, backed by a local SQLite database.

Quick start:
  killfeed seed      # Load a fixture dataset for local development
  killfeed serve     # Start the API server

Maintenance:
  killfeed import    # Import killmails from ESI (placeholder)
  killfeed cron      # Run the importer on a fixed interval`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "killfeed.yaml", "config file path")
}
