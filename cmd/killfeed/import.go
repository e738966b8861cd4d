package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evetools/killfeed/config"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import killmails from ESI into the local database",
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// TODO: fetch killmail batches from the ESI killmails endpoint and
	// upsert them through the sqlite stores.
	fmt.Printf("import: nothing to do yet (database: %s)\n", cfg.Database.DSN)
	return nil
}
