package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/evetools/killfeed/ports"
)

// AllianceStore implements ports.AllianceStore using SQLite.
type AllianceStore struct {
	db *DB
}

// NewAllianceStore creates a new SQLite alliance store.
func NewAllianceStore(db *DB) *AllianceStore {
	return &AllianceStore{db: db}
}

// Get retrieves an alliance by ID.
func (s *AllianceStore) Get(ctx context.Context, id int64) (ports.Alliance, error) {
	return findOne(ctx, s.db, `
		SELECT alliance_id, name, ticker, member_count, updated_at
		FROM alliances
		WHERE alliance_id = :id
	`, scanAlliance, sql.Named("id", id))
}

// Create stores a new alliance. Used by the seed command and tests.
func (s *AllianceStore) Create(ctx context.Context, a ports.Alliance) error {
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alliances (alliance_id, name, ticker, member_count, updated_at)
		VALUES (:id, :name, :ticker, :members, :updated)
	`,
		sql.Named("id", a.ID),
		sql.Named("name", a.Name),
		sql.Named("ticker", a.Ticker),
		sql.Named("members", a.MemberCount),
		sql.Named("updated", a.UpdatedAt),
	)
	return err
}

func scanAlliance(row *sql.Row) (ports.Alliance, error) {
	var a ports.Alliance
	err := row.Scan(&a.ID, &a.Name, &a.Ticker, &a.MemberCount, &a.UpdatedAt)
	return a, err
}
