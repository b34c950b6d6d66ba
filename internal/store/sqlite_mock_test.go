package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Driver failures are hard to provoke with a real database; sqlmock covers
// the error-wrapping paths.

func TestStore_CreateDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO characters").WillReturnError(errors.New("disk full"))

	s := NewSQLiteStore()
	s.OpenDB(db)

	_, err = s.Create(context.Background(), "Brambles", map[string]string{"level": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert character")
	assert.Contains(t, err.Error(), "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id, name, updated_at FROM characters").
		WillReturnError(errors.New("locked"))

	s := NewSQLiteStore()
	s.OpenDB(db)

	_, err = s.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list characters")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetCorruptPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "name", "responses", "created_at", "updated_at"}).
		AddRow("id-1", "Brambles", "{not json", now, now)
	mock.ExpectQuery("SELECT id, name, responses, created_at, updated_at FROM characters").
		WillReturnRows(rows)

	s := NewSQLiteStore()
	s.OpenDB(db)

	_, err = s.Get(context.Background(), "id-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal responses")
}
