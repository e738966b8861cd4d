package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/evetools/killfeed/ports"
)

// KillmailStore implements ports.KillmailStore using SQLite.
type KillmailStore struct {
	db *DB
}

// NewKillmailStore creates a new SQLite killmail store.
func NewKillmailStore(db *DB) *KillmailStore {
	return &KillmailStore{db: db}
}

// Get retrieves a killmail by ID.
func (s *KillmailStore) Get(ctx context.Context, id int64) (ports.Killmail, error) {
	return findOne(ctx, s.db, `
		SELECT killmail_id, hash, solar_system_id, victim_id, victim_ship_type_id,
		       attacker_count, total_value, occurred_at, created_at
		FROM killmails
		WHERE killmail_id = :id
	`, scanKillmail, sql.Named("id", id))
}

// Create stores a new killmail. Used by the seed command and tests.
func (s *KillmailStore) Create(ctx context.Context, k ports.Killmail) error {
	if k.CreatedAt.IsZero() {
		k.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO killmails (killmail_id, hash, solar_system_id, victim_id,
		                       victim_ship_type_id, attacker_count, total_value,
		                       occurred_at, created_at)
		VALUES (:id, :hash, :system, :victim, :ship, :attackers, :value, :occurred, :created)
	`,
		sql.Named("id", k.ID),
		sql.Named("hash", k.Hash),
		sql.Named("system", k.SolarSystemID),
		sql.Named("victim", k.VictimID),
		sql.Named("ship", k.VictimShipTypeID),
		sql.Named("attackers", k.AttackerCount),
		sql.Named("value", k.TotalValue),
		sql.Named("occurred", k.OccurredAt),
		sql.Named("created", k.CreatedAt),
	)
	return err
}

func scanKillmail(row *sql.Row) (ports.Killmail, error) {
	var k ports.Killmail
	err := row.Scan(&k.ID, &k.Hash, &k.SolarSystemID, &k.VictimID,
		&k.VictimShipTypeID, &k.AttackerCount, &k.TotalValue,
		&k.OccurredAt, &k.CreatedAt)
	return k, err
}
