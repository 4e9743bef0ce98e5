package memory

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestSceneWatcherReloadsOnChange(t *testing.T) {
	path := writeScene(t, sampleScene)

	s := NewState()
	first, err := LoadScene(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s.ApplyScene(first)

	w := NewSceneWatcher(path, s, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer func() { _ = w.Stop() }()

	updated := `
outputs:
  - id: 1
    name: DP-1
    geometry: {x: 0, y: 0, width: 1920, height: 1080}
    wset-index: 1
wsets:
  - index: 1
views:
  - id: 10
    title: renamed
    app-id: org.gnu.emacs
    geometry: {x: 100, y: 100, width: 800, height: 600}
    output-id: 1
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite scene: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		if v := s.View(10); v != nil && v.Title == "renamed" && len(s.Views()) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for scene reload")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestSceneWatcherKeepsStateOnBrokenFile(t *testing.T) {
	path := writeScene(t, sampleScene)

	s := NewState()
	first, err := LoadScene(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s.ApplyScene(first)

	w := NewSceneWatcher(path, s, 20*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer func() { _ = w.Stop() }()

	if err := os.WriteFile(path, []byte("views: ["), 0o644); err != nil {
		t.Fatalf("rewrite scene: %v", err)
	}

	// Give the reload a chance to fire; the broken revision must not
	// wipe the state.
	time.Sleep(300 * time.Millisecond)
	if len(s.Views()) != 2 {
		t.Fatalf("broken scene wiped state, %d views left", len(s.Views()))
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	// Stopping twice is a no-op.
	if err := w.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
