// Package app contains application services composing domain logic
// with storage ports.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/evetools/killfeed/ports"
)

// NotFoundError reports a lookup miss for a named resource. It is an
// expected outcome, translated by the web layer to a 404 response.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return e.Resource + " not found"
}

// LookupService performs single-key resource lookups. Store access is
// injected; handlers never touch the database directly.
type LookupService struct {
	killmails    ports.KillmailStore
	characters   ports.CharacterStore
	corporations ports.CorporationStore
	alliances    ports.AllianceStore
}

// LookupDeps contains the stores the lookup service reads from.
type LookupDeps struct {
	Killmails    ports.KillmailStore
	Characters   ports.CharacterStore
	Corporations ports.CorporationStore
	Alliances    ports.AllianceStore
}

// NewLookupService creates a lookup service over the given stores.
func NewLookupService(deps LookupDeps) *LookupService {
	return &LookupService{
		killmails:    deps.Killmails,
		characters:   deps.Characters,
		corporations: deps.Corporations,
		alliances:    deps.Alliances,
	}
}

// Killmail returns the killmail with the given ID.
func (s *LookupService) Killmail(ctx context.Context, id int64) (ports.Killmail, error) {
	k, err := s.killmails.Get(ctx, id)
	if err != nil {
		return ports.Killmail{}, lookupError("Killmail", err)
	}
	return k, nil
}

// Character returns the character with the given ID.
func (s *LookupService) Character(ctx context.Context, id int64) (ports.Character, error) {
	c, err := s.characters.Get(ctx, id)
	if err != nil {
		return ports.Character{}, lookupError("Character", err)
	}
	return c, nil
}

// Corporation returns the corporation with the given ID.
func (s *LookupService) Corporation(ctx context.Context, id int64) (ports.Corporation, error) {
	c, err := s.corporations.Get(ctx, id)
	if err != nil {
		return ports.Corporation{}, lookupError("Corporation", err)
	}
	return c, nil
}

// Alliance returns the alliance with the given ID.
func (s *LookupService) Alliance(ctx context.Context, id int64) (ports.Alliance, error) {
	a, err := s.alliances.Get(ctx, id)
	if err != nil {
		return ports.Alliance{}, lookupError("Alliance", err)
	}
	return a, nil
}

// lookupError maps a store miss to a typed NotFoundError and wraps
// anything else as an opaque upstream failure.
func lookupError(resource string, err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return NotFoundError{Resource: resource}
	}
	return fmt.Errorf("%s lookup: %w", resource, err)
}
