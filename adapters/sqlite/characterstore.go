package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/evetools/killfeed/ports"
)

// CharacterStore implements ports.CharacterStore using SQLite.
type CharacterStore struct {
	db *DB
}

// NewCharacterStore creates a new SQLite character store.
func NewCharacterStore(db *DB) *CharacterStore {
	return &CharacterStore{db: db}
}

// Get retrieves a character by ID.
func (s *CharacterStore) Get(ctx context.Context, id int64) (ports.Character, error) {
	return findOne(ctx, s.db, `
		SELECT character_id, name, corporation_id, alliance_id, security_status, updated_at
		FROM characters
		WHERE character_id = :id
	`, scanCharacter, sql.Named("id", id))
}

// Create stores a new character. Used by the seed command and tests.
func (s *CharacterStore) Create(ctx context.Context, c ports.Character) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO characters (character_id, name, corporation_id, alliance_id,
		                        security_status, updated_at)
		VALUES (:id, :name, :corp, :alliance, :sec, :updated)
	`,
		sql.Named("id", c.ID),
		sql.Named("name", c.Name),
		sql.Named("corp", c.CorporationID),
		sql.Named("alliance", c.AllianceID),
		sql.Named("sec", c.SecurityStatus),
		sql.Named("updated", c.UpdatedAt),
	)
	return err
}

func scanCharacter(row *sql.Row) (ports.Character, error) {
	var c ports.Character
	err := row.Scan(&c.ID, &c.Name, &c.CorporationID, &c.AllianceID,
		&c.SecurityStatus, &c.UpdatedAt)
	return c, err
}
