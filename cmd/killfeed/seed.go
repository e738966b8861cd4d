package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/evetools/killfeed/adapters/sqlite"
	"github.com/evetools/killfeed/config"
	"github.com/evetools/killfeed/ports"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a fixture dataset for local development",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sqlite.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	ctx := context.Background()
	now := time.Now().UTC()

	alliances := sqlite.NewAllianceStore(db)
	if err := alliances.Create(ctx, ports.Alliance{
		ID: 99000001, Name: "Brave Collective", Ticker: "BRAVE", MemberCount: 12000, UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed alliances: %w", err)
	}

	corporations := sqlite.NewCorporationStore(db)
	if err := corporations.Create(ctx, ports.Corporation{
		ID: 98000001, Name: "Brave Newbies Inc.", Ticker: "BNI", AllianceID: 99000001,
		MemberCount: 4200, UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed corporations: %w", err)
	}

	characters := sqlite.NewCharacterStore(db)
	if err := characters.Create(ctx, ports.Character{
		ID: 90000001, Name: "Cora Tadaruwa", CorporationID: 98000001, AllianceID: 99000001,
		SecurityStatus: -1.2, UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed characters: %w", err)
	}

	killmails := sqlite.NewKillmailStore(db)
	if err := killmails.Create(ctx, ports.Killmail{
		ID: 113333333, Hash: "c7e2fd1a9b8e4d0f6a5b3c2d1e0f9a8b7c6d5e4f",
		SolarSystemID: 30000142, VictimID: 90000001, VictimShipTypeID: 602,
		AttackerCount: 3, TotalValue: 14_250_000, OccurredAt: now.Add(-2 * time.Hour),
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed killmails: %w", err)
	}

	fmt.Println("Fixture dataset loaded")
	return nil
}
