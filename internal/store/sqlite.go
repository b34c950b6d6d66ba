package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements character persistence on SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates an unopened store.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens the SQLite database at path. Use ":memory:" for an in-memory
// database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// OpenDB attaches an existing connection, for tests.
func (s *SQLiteStore) OpenDB(db *sql.DB) {
	s.db = db
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Create inserts a new character and returns the stored record.
func (s *SQLiteStore) Create(ctx context.Context, name string, responses map[string]string) (*Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	payload, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("marshal responses: %w", err)
	}

	rec := &Record{
		ID:        uuid.New().String(),
		Name:      name,
		Responses: responses,
		CreatedAt: time.Now().UTC(),
	}
	rec.UpdatedAt = rec.CreatedAt

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO characters (id, name, responses, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, string(payload), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert character: %w", err)
	}
	return rec, nil
}

// Update replaces a character's name and responses.
func (s *SQLiteStore) Update(ctx context.Context, id, name string, responses map[string]string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	payload, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE characters SET name = ?, responses = ?, updated_at = ? WHERE id = ?`,
		name, string(payload), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update character: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Get retrieves a character by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, name, responses, created_at, updated_at FROM characters WHERE id = ?`, id), id)
}

// Find resolves a reference that may be an ID or a name. Names are not
// unique; the most recently updated match wins.
func (s *SQLiteStore) Find(ctx context.Context, ref string) (*Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, name, responses, created_at, updated_at FROM characters
		 WHERE id = ? OR name = ? ORDER BY updated_at DESC LIMIT 1`, ref, ref), ref)
}

func (s *SQLiteStore) scanOne(row *sql.Row, ref string) (*Record, error) {
	rec := &Record{}
	var payload string
	err := row.Scan(&rec.ID, &rec.Name, &payload, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("get character: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &rec.Responses); err != nil {
		return nil, fmt.Errorf("unmarshal responses: %w", err)
	}
	return rec, nil
}

// List returns all saved characters, most recently updated first.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, updated_at FROM characters ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan character row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	return out, nil
}

// Delete removes a character by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
