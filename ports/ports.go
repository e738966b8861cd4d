// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a lookup key has no row.
// A miss is a first-class outcome, not a failure.
var ErrNotFound = errors.New("not found")

// Killmail is one recorded kill.
type Killmail struct {
	ID               int64     `json:"killmail_id"`
	Hash             string    `json:"hash"`
	SolarSystemID    int64     `json:"solar_system_id"`
	VictimID         int64     `json:"victim_id"`
	VictimShipTypeID int64     `json:"victim_ship_type_id"`
	AttackerCount    int       `json:"attacker_count"`
	TotalValue       float64   `json:"total_value"`
	OccurredAt       time.Time `json:"occurred_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// Character is a pilot known to the board.
type Character struct {
	ID             int64     `json:"character_id"`
	Name           string    `json:"name"`
	CorporationID  int64     `json:"corporation_id"`
	AllianceID     int64     `json:"alliance_id,omitempty"`
	SecurityStatus float64   `json:"security_status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Corporation is a player corporation.
type Corporation struct {
	ID          int64     `json:"corporation_id"`
	Name        string    `json:"name"`
	Ticker      string    `json:"ticker"`
	AllianceID  int64     `json:"alliance_id,omitempty"`
	MemberCount int       `json:"member_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Alliance is a player alliance.
type Alliance struct {
	ID          int64     `json:"alliance_id"`
	Name        string    `json:"name"`
	Ticker      string    `json:"ticker"`
	MemberCount int       `json:"member_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------
//
// Each store exposes a single-key lookup returning zero-or-one record.
// Handlers only ever see post-validation typed IDs; stores bind them as
// query parameters, never interpolate them.

// KillmailStore retrieves killmails.
type KillmailStore interface {
	// Get retrieves a killmail by ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (Killmail, error)
}

// CharacterStore retrieves characters.
type CharacterStore interface {
	Get(ctx context.Context, id int64) (Character, error)
}

// CorporationStore retrieves corporations.
type CorporationStore interface {
	Get(ctx context.Context, id int64) (Corporation, error)
}

// AllianceStore retrieves alliances.
type AllianceStore interface {
	Get(ctx context.Context, id int64) (Alliance, error)
}
