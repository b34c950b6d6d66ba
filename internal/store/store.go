// Package store persists characters in a project-local SQLite database.
// One row per character: the response map is stored as JSON and re-derived
// against the rulebook on load, so the database never caches computed
// values.
package store

import (
	"errors"
	"time"
)

// ErrNotFound indicates no character matched the id or name.
var ErrNotFound = errors.New("character not found")

// Record is a persisted character.
type Record struct {
	ID        string
	Name      string
	Responses map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the listing row for a saved character.
type Summary struct {
	ID        string
	Name      string
	UpdatedAt time.Time
}
