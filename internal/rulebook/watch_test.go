package rulebook

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustinanglin/StrikeGen/internal/testutil"
)

func TestWatcher_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, testutil.NewTestLogger(t))
	require.NoError(t, err)

	_, ok := w.Current().Background("Night Courier")
	require.False(t, ok)

	reloaded := make(chan *Rulebook, 1)
	w.OnReload(func(rb *Rulebook) {
		select {
		case reloaded <- rb:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(50 * time.Millisecond)

	homebrew := "backgrounds:\n  - name: Night Courier\n    wealth: 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "courier.yaml"), []byte(homebrew), 0o644))

	select {
	case rb := <-reloaded:
		_, ok := rb.Background("Night Courier")
		assert.True(t, ok, "reloaded rulebook should carry the new entry")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_KeepsPreviousOnBadReload(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, testutil.NewTestLogger(t))
	require.NoError(t, err)
	before := w.Current()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("origins: {broken"), 0o644))
	w.reload("bad.yaml")

	assert.Same(t, before, w.Current(), "failed reload must keep the previous rulebook")
}
