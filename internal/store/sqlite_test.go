package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore()
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	return s
}

func TestStore_CreateAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	responses := map[string]string{"name": "Brambles", "level": "3"}
	rec, err := s.Create(ctx, "Brambles", responses)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brambles", got.Name)
	assert.Equal(t, responses, got.Responses)
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FindByIDOrName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "Vex", map[string]string{"name": "Vex"})
	require.NoError(t, err)

	byID, err := s.Find(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byID.ID)

	byName, err := s.Find(ctx, "Vex")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, byName.ID)

	_, err = s.Find(ctx, "Grog")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FindPrefersNewestOnNameClash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older, err := s.Create(ctx, "Twin", map[string]string{"v": "1"})
	require.NoError(t, err)
	newer, err := s.Create(ctx, "Twin", map[string]string{"v": "2"})
	require.NoError(t, err)

	// Touch the second record so its updated_at is strictly later.
	require.NoError(t, s.Update(ctx, newer.ID, "Twin", map[string]string{"v": "2"}))

	got, err := s.Find(ctx, "Twin")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.NotEqual(t, older.ID, got.ID)
}

func TestStore_Update(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "Pike", map[string]string{"level": "1"})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, rec.ID, "Pike Trickfoot", map[string]string{"level": "2"}))

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pike Trickfoot", got.Name)
	assert.Equal(t, "2", got.Responses["level"])

	err = s.Update(ctx, "missing", "x", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListOrdersByUpdatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, "First", map[string]string{})
	require.NoError(t, err)
	_, err = s.Create(ctx, "Second", map[string]string{})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, first.ID, "First", map[string]string{"touched": "yes"}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Name, "most recently updated first")
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := s.Create(ctx, "Doomed", map[string]string{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, rec.ID))
	_, err = s.Get(ctx, rec.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(ctx, rec.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_NotOpened(t *testing.T) {
	s := NewSQLiteStore()
	_, err := s.Create(context.Background(), "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not opened")
}
