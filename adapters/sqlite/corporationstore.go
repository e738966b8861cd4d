package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/evetools/killfeed/ports"
)

// CorporationStore implements ports.CorporationStore using SQLite.
type CorporationStore struct {
	db *DB
}

// NewCorporationStore creates a new SQLite corporation store.
func NewCorporationStore(db *DB) *CorporationStore {
	return &CorporationStore{db: db}
}

// Get retrieves a corporation by ID.
func (s *CorporationStore) Get(ctx context.Context, id int64) (ports.Corporation, error) {
	return findOne(ctx, s.db, `
		SELECT corporation_id, name, ticker, alliance_id, member_count, updated_at
		FROM corporations
		WHERE corporation_id = :id
	`, scanCorporation, sql.Named("id", id))
}

// Create stores a new corporation. Used by the seed command and tests.
func (s *CorporationStore) Create(ctx context.Context, c ports.Corporation) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corporations (corporation_id, name, ticker, alliance_id,
		                          member_count, updated_at)
		VALUES (:id, :name, :ticker, :alliance, :members, :updated)
	`,
		sql.Named("id", c.ID),
		sql.Named("name", c.Name),
		sql.Named("ticker", c.Ticker),
		sql.Named("alliance", c.AllianceID),
		sql.Named("members", c.MemberCount),
		sql.Named("updated", c.UpdatedAt),
	)
	return err
}

func scanCorporation(row *sql.Row) (ports.Corporation, error) {
	var c ports.Corporation
	err := row.Scan(&c.ID, &c.Name, &c.Ticker, &c.AllianceID,
		&c.MemberCount, &c.UpdatedAt)
	return c, err
}
