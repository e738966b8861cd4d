package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evetools/killfeed/bootstrap"
	"github.com/evetools/killfeed/config"
)

var hotReload bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the killfeed API server.

The server will:
  - Load configuration from killfeed.yaml (or --config)
  - Or fall back to KILLFEED_* environment variables
  - Open the SQLite database and apply migrations
  - Serve lookup, redirect and event-stream endpoints

Environment variables (for Docker deployments):
  KILLFEED_DATABASE_DSN  - Database path (default: killfeed.db)
  KILLFEED_SERVER_PORT   - Server port (default: 8080)
  KILLFEED_LOG_LEVEL     - Log level: debug, info, warn, error

Examples:
  killfeed serve
  killfeed serve --config /etc/killfeed/config.yaml
  killfeed serve --hot-reload=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	var (
		app *bootstrap.App
		err error
	)

	if hasConfigFile && hotReload {
		// Hot reload only works with a config file
		app, err = bootstrap.NewWithHotReload(cfgFile)
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}
		if !hasConfigFile {
			fmt.Println("Running with environment variables (no config file)")
		}
		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
