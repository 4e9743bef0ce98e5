package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumenwm/lumen-ipc/internal/domain/model"
)

const sampleScene = `
outputs:
  - id: 1
    name: DP-1
    geometry: {x: 0, y: 0, width: 1920, height: 1080}
    wset-index: 1
    focused: true
wsets:
  - index: 1
    grid-width: 3
    grid-height: 3
views:
  - id: 10
    title: editor
    app-id: org.gnu.emacs
    geometry: {x: 100, y: 100, width: 800, height: 600}
    output-id: 1
    focused: true
  - id: 11
    title: browser
    app-id: org.mozilla.firefox
    geometry: {x: 900, y: 100, width: 1000, height: 900}
    output-id: 1
devices:
  - id: 100
    name: AT keyboard
    type: keyboard
`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return path
}

func TestLoadScene(t *testing.T) {
	sc, err := LoadScene(writeScene(t, sampleScene))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sc.Outputs) != 1 || len(sc.Views) != 2 || len(sc.Wsets) != 1 || len(sc.Devices) != 1 {
		t.Fatalf("unexpected scene counts: %+v", sc)
	}
	if sc.Views[0].Title != "editor" || sc.Views[0].Geometry.Width != 800 {
		t.Fatalf("unexpected view: %+v", sc.Views[0])
	}
}

func TestLoadSceneErrors(t *testing.T) {
	if _, err := LoadScene(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadScene(writeScene(t, "outputs: [")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if _, err := LoadScene(writeScene(t, `
outputs:
  - {id: 1, name: a, geometry: {x: 0, y: 0, width: 1, height: 1}}
  - {id: 1, name: b, geometry: {x: 0, y: 0, width: 1, height: 1}}
`)); err == nil {
		t.Fatal("expected error for duplicate output id")
	}
	if _, err := LoadScene(writeScene(t, `
views:
  - {id: 10, title: t, app-id: a, geometry: {x: 0, y: 0, width: 1, height: 1}, output-id: 9}
`)); err == nil {
		t.Fatal("expected error for view on unknown output")
	}
}

func TestApplySceneFromEmpty(t *testing.T) {
	sc, err := LoadScene(writeScene(t, sampleScene))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	s := NewState()
	rec := &recorder{}
	s.ConnectGlobal("view-mapped", rec.handler())
	s.ApplyScene(sc)

	if rec.count() != 2 {
		t.Fatalf("expected 2 view-mapped signals, got %d", rec.count())
	}
	if len(s.Views()) != 2 || len(s.Outputs()) != 1 {
		t.Fatal("scene not applied")
	}
	if f := s.FocusedView(); f == nil || f.ID != 10 {
		t.Fatalf("expected view 10 focused, got %+v", f)
	}
	// Unset role and layer default to toplevel on the workspace layer.
	v := s.View(10)
	if v.Role != model.RoleToplevel || v.Layer != model.LayerWorkspace || !v.Mapped {
		t.Fatalf("unexpected defaults: %+v", v)
	}
}

func TestApplySceneDiffsExistingState(t *testing.T) {
	s := NewState()
	first, err := LoadScene(writeScene(t, sampleScene))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s.ApplyScene(first)

	titleRec := &recorder{}
	unmapRec := &recorder{}
	mapRec := &recorder{}
	s.ConnectGlobal("view-title-changed", titleRec.handler())
	s.ConnectGlobal("view-unmapped", unmapRec.handler())
	s.ConnectGlobal("view-mapped", mapRec.handler())

	// Second revision: view 10 renamed, view 11 gone, view 12 new.
	second, err := LoadScene(writeScene(t, `
outputs:
  - id: 1
    name: DP-1
    geometry: {x: 0, y: 0, width: 1920, height: 1080}
    wset-index: 1
wsets:
  - index: 1
views:
  - id: 10
    title: editor (draft)
    app-id: org.gnu.emacs
    geometry: {x: 100, y: 100, width: 800, height: 600}
    output-id: 1
  - id: 12
    title: terminal
    app-id: org.alacritty
    geometry: {x: 0, y: 700, width: 600, height: 380}
    output-id: 1
`))
	if err != nil {
		t.Fatalf("load second: %v", err)
	}
	s.ApplyScene(second)

	if titleRec.count() != 1 || titleRec.last().View.Title != "editor (draft)" {
		t.Fatalf("expected one title change, got %d", titleRec.count())
	}
	if unmapRec.count() != 1 || unmapRec.last().View.ID != 11 {
		t.Fatalf("expected view 11 unmapped, got %d signals", unmapRec.count())
	}
	if mapRec.count() != 1 || mapRec.last().View.ID != 12 {
		t.Fatalf("expected view 12 mapped, got %d signals", mapRec.count())
	}
	if len(s.Views()) != 2 {
		t.Fatalf("expected 2 views after diff, got %d", len(s.Views()))
	}
}

func TestApplySceneRemovesOutputs(t *testing.T) {
	s := NewState()
	l := &lifecycleRecorder{}
	s.SetOutputListener(l)

	first, err := LoadScene(writeScene(t, sampleScene))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s.ApplyScene(first)

	empty := &Scene{}
	s.ApplyScene(empty)

	if len(s.Outputs()) != 0 || len(s.Views()) != 0 {
		t.Fatal("expected everything removed")
	}
	if len(l.trace) != 2 || l.trace[1] != "removed:DP-1" {
		t.Fatalf("unexpected lifecycle trace: %v", l.trace)
	}
}
