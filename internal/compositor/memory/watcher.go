package memory

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// SceneWatcher reloads a scene file whenever it changes on disk and
// applies it to the state. Editors commonly replace files via rename,
// so the watch is placed on the directory and filtered by name.
type SceneWatcher struct {
	path     string
	state    *State
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	running bool
	cancel  context.CancelFunc
}

// NewSceneWatcher creates a watcher for the given scene file.
func NewSceneWatcher(path string, state *State, debounce time.Duration) *SceneWatcher {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &SceneWatcher{path: path, state: state, debounce: debounce}
}

// Start begins watching. Calling Start on a running watcher is a no-op.
func (w *SceneWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.mu.Unlock()

	go w.eventLoop(watchCtx)

	log.Info().
		Str("path", w.path).
		Dur("debounce", w.debounce).
		Msg("scene watcher started")
	return nil
}

// Stop terminates watching.
func (w *SceneWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	w.cancel()

	err := w.watcher.Close()
	w.watcher = nil
	log.Info().Msg("scene watcher stopped")
	return err
}

func (w *SceneWatcher) eventLoop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("scene watcher error")
		}
	}
}

func (w *SceneWatcher) reload() {
	sc, err := LoadScene(w.path)
	if err != nil {
		log.Warn().Err(err).Str("path", w.path).Msg("scene reload failed, keeping current state")
		return
	}
	w.state.ApplyScene(sc)
	log.Info().
		Str("path", w.path).
		Int("outputs", len(sc.Outputs)).
		Int("views", len(sc.Views)).
		Msg("scene reloaded")
}
