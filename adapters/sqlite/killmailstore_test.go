package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/evetools/killfeed/ports"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestKillmailStore_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewKillmailStore(db)
	ctx := context.Background()

	want := ports.Killmail{
		ID:               113333333,
		Hash:             "c7e2fd1a9b8e4d0f",
		SolarSystemID:    30000142,
		VictimID:         90000001,
		VictimShipTypeID: 602,
		AttackerCount:    3,
		TotalValue:       14250000,
		OccurredAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt:        time.Date(2026, 8, 1, 12, 5, 0, 0, time.UTC),
	}
	if err := store.Create(ctx, want); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != want.ID || got.Hash != want.Hash || got.SolarSystemID != want.SolarSystemID {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.AttackerCount != want.AttackerCount || got.TotalValue != want.TotalValue {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !got.OccurredAt.Equal(want.OccurredAt) {
		t.Errorf("OccurredAt = %v, want %v", got.OccurredAt, want.OccurredAt)
	}
}

func TestKillmailStore_Miss(t *testing.T) {
	db := newTestDB(t)
	store := NewKillmailStore(db)

	_, err := store.Get(context.Background(), 113333333)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Get on empty table = %v, want ErrNotFound", err)
	}
}

func TestCharacterStore_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewCharacterStore(db)
	ctx := context.Background()

	want := ports.Character{
		ID:             90000001,
		Name:           "Cora Tadaruwa",
		CorporationID:  98000001,
		AllianceID:     99000001,
		SecurityStatus: -1.2,
	}
	if err := store.Create(ctx, want); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != want.Name || got.CorporationID != want.CorporationID {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("Create should default UpdatedAt")
	}
}

func TestCorporationStore_Miss(t *testing.T) {
	db := newTestDB(t)
	store := NewCorporationStore(db)

	_, err := store.Get(context.Background(), 98000001)
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("Get = %v, want ErrNotFound", err)
	}
}

func TestAllianceStore_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewAllianceStore(db)
	ctx := context.Background()

	want := ports.Alliance{ID: 99000001, Name: "Brave Collective", Ticker: "BRAVE", MemberCount: 12000}
	if err := store.Create(ctx, want); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, want.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Ticker != want.Ticker || got.MemberCount != want.MemberCount {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	if err := db.Migrate(); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
