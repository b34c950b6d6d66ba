package rulebook

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of file events into one reload. Editors
// tend to fire several events per save.
const watchDebounce = 100 * time.Millisecond

// Watcher reloads the rulebook when homebrew YAML files change. Readers
// call Current for the latest load; OnReload callbacks fire after each
// successful reload.
type Watcher struct {
	homebrewDir string
	logger      *slog.Logger

	mu      sync.RWMutex
	current *Rulebook
	onload  []func(*Rulebook)
}

// NewWatcher loads the rulebook once and prepares watching homebrewDir.
func NewWatcher(homebrewDir string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rb, err := Load(homebrewDir)
	if err != nil {
		return nil, err
	}
	return &Watcher{
		homebrewDir: homebrewDir,
		logger:      logger,
		current:     rb,
	}, nil
}

// Current returns the most recently loaded rulebook.
func (w *Watcher) Current() *Rulebook {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnReload registers a callback invoked after each successful reload.
// Register callbacks before calling Watch.
func (w *Watcher) OnReload(fn func(*Rulebook)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onload = append(w.onload, fn)
}

// Watch blocks until ctx is done, reloading the rulebook when YAML files
// in the homebrew directory change. A failed reload keeps the previous
// rulebook.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.homebrewDir); err != nil {
		return fmt.Errorf("watch homebrew dir: %w", err)
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isYAML(event.Name) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			name := filepath.Base(event.Name)
			debounce = time.AfterFunc(watchDebounce, func() {
				w.reload(name)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("rulebook watch error", "error", err)
		}
	}
}

func (w *Watcher) reload(trigger string) {
	rb, err := Load(w.homebrewDir)
	if err != nil {
		w.logger.Warn("rulebook reload failed", "trigger", trigger, "error", err)
		return
	}

	w.mu.Lock()
	w.current = rb
	callbacks := make([]func(*Rulebook), len(w.onload))
	copy(callbacks, w.onload)
	w.mu.Unlock()

	w.logger.Info("rulebook reloaded", "trigger", trigger)
	for _, fn := range callbacks {
		fn(rb)
	}
}
