package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evetools/killfeed/config"
)

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Run the importer on a fixed interval",
	Long: `Run 'killfeed import' as a child process on a fixed interval.

Each run's success or failure is reported through the child's exit code
and logged; a failed run does not stop the loop.`,
	RunE: runCron,
}

func init() {
	rootCmd.AddCommand(cronCmd)
}

func runCron(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Dur("interval", cfg.Cron.Interval).Msg("starting import loop")

	ticker := time.NewTicker(cfg.Cron.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("import loop stopped")
			return nil
		case <-ticker.C:
			runOnce(ctx, logger, exe)
		}
	}
}

func runOnce(ctx context.Context, logger zerolog.Logger, exe string) {
	start := time.Now()

	child := exec.CommandContext(ctx, exe, "import", "--config", cfgFile)
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	err := child.Run()
	elapsed := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Dur("elapsed", elapsed).Msg("import run failed")
		return
	}
	logger.Info().Dur("elapsed", elapsed).Msg("import run complete")
}
