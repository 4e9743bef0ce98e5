package memory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumenwm/lumen-ipc/internal/domain/model"
)

// Scene is the YAML description of a full compositor state. In
// standalone mode the daemon loads one at startup and re-applies it on
// file change, diffing against the live state so clients observe the
// transition as ordinary events.
type Scene struct {
	Outputs []SceneOutput `yaml:"outputs"`
	Wsets   []SceneWset   `yaml:"wsets"`
	Views   []SceneView   `yaml:"views"`
	Devices []SceneDevice `yaml:"devices"`
}

// SceneOutput describes one output.
type SceneOutput struct {
	ID        int64          `yaml:"id"`
	Name      string         `yaml:"name"`
	Geometry  SceneGeometry  `yaml:"geometry"`
	Workarea  *SceneGeometry `yaml:"workarea,omitempty"`
	WsetIndex int64          `yaml:"wset-index"`
	Focused   bool           `yaml:"focused,omitempty"`
}

// SceneWset describes one workspace set.
type SceneWset struct {
	Index      int64  `yaml:"index"`
	Name       string `yaml:"name,omitempty"`
	GridWidth  int    `yaml:"grid-width"`
	GridHeight int    `yaml:"grid-height"`
	ActiveX    int    `yaml:"active-x,omitempty"`
	ActiveY    int    `yaml:"active-y,omitempty"`
}

// SceneView describes one view.
type SceneView struct {
	ID         int64         `yaml:"id"`
	PID        int           `yaml:"pid,omitempty"`
	Title      string        `yaml:"title"`
	AppID      string        `yaml:"app-id"`
	Geometry   SceneGeometry `yaml:"geometry"`
	OutputID   int64         `yaml:"output-id"`
	Role       string        `yaml:"role,omitempty"`
	Layer      string        `yaml:"layer,omitempty"`
	Parent     int64         `yaml:"parent,omitempty"`
	Fullscreen bool          `yaml:"fullscreen,omitempty"`
	Minimized  bool          `yaml:"minimized,omitempty"`
	Sticky     bool          `yaml:"sticky,omitempty"`
	TiledEdges uint32        `yaml:"tiled-edges,omitempty"`
	Focused    bool          `yaml:"focused,omitempty"`
}

// SceneDevice describes one input device.
type SceneDevice struct {
	ID      int64  `yaml:"id"`
	Name    string `yaml:"name"`
	Vendor  int    `yaml:"vendor,omitempty"`
	Product int    `yaml:"product,omitempty"`
	Type    string `yaml:"type"`
	Enabled *bool  `yaml:"enabled,omitempty"`
}

// SceneGeometry mirrors model.Geometry in YAML.
type SceneGeometry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoadScene reads and parses a scene file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var sc Scene
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scene) validate() error {
	outputs := make(map[int64]struct{}, len(sc.Outputs))
	for _, o := range sc.Outputs {
		if _, dup := outputs[o.ID]; dup {
			return fmt.Errorf("duplicate output id %d", o.ID)
		}
		outputs[o.ID] = struct{}{}
	}

	views := make(map[int64]struct{}, len(sc.Views))
	for _, v := range sc.Views {
		if _, dup := views[v.ID]; dup {
			return fmt.Errorf("duplicate view id %d", v.ID)
		}
		views[v.ID] = struct{}{}
		if _, ok := outputs[v.OutputID]; !ok {
			return fmt.Errorf("view %d references unknown output %d", v.ID, v.OutputID)
		}
	}
	return nil
}

func (g SceneGeometry) model() model.Geometry {
	return model.Geometry{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
}

func (o SceneOutput) model() model.Output {
	out := model.Output{
		ID:        o.ID,
		Name:      o.Name,
		Geometry:  o.Geometry.model(),
		Workarea:  o.Geometry.model(),
		WsetIndex: o.WsetIndex,
		Workspace: model.Workspace{GridWidth: 3, GridHeight: 3},
	}
	if o.Workarea != nil {
		out.Workarea = o.Workarea.model()
	}
	return out
}

func (w SceneWset) model() model.Wset {
	gw, gh := w.GridWidth, w.GridHeight
	if gw == 0 {
		gw = 3
	}
	if gh == 0 {
		gh = 3
	}
	return model.Wset{
		Index:    w.Index,
		Name:     w.Name,
		OutputID: -1,
		Workspace: model.Workspace{
			X:          w.ActiveX,
			Y:          w.ActiveY,
			GridWidth:  gw,
			GridHeight: gh,
		},
	}
}

func (v SceneView) model() model.View {
	role := v.Role
	if role == "" {
		role = model.RoleToplevel
	}
	layer := v.Layer
	if layer == "" {
		layer = model.LayerWorkspace
	}
	g := v.Geometry.model()
	return model.View{
		ID:           v.ID,
		PID:          v.PID,
		Title:        v.Title,
		AppID:        v.AppID,
		Geometry:     g,
		BaseGeometry: g,
		BBox:         g,
		OutputID:     v.OutputID,
		Role:         role,
		Layer:        layer,
		Parent:       parentOrMinusOne(v.Parent),
		Mapped:       true,
		Fullscreen:   v.Fullscreen,
		Minimized:    v.Minimized,
		Sticky:       v.Sticky,
		TiledEdges:   v.TiledEdges,
		Focusable:    true,
		Type:         role,
	}
}

func parentOrMinusOne(p int64) int64 {
	if p == 0 {
		return -1
	}
	return p
}

func (d SceneDevice) model() model.InputDevice {
	enabled := true
	if d.Enabled != nil {
		enabled = *d.Enabled
	}
	return model.InputDevice{
		ID:      d.ID,
		Name:    d.Name,
		Vendor:  d.Vendor,
		Product: d.Product,
		Type:    d.Type,
		Enabled: enabled,
	}
}

// ApplyScene diffs the scene against the current state and applies the
// difference through the ordinary mutation paths, so every change is
// observable as events. Outputs are added before views and removed
// after them; removed outputs take their remaining views with them.
func (s *State) ApplyScene(sc *Scene) {
	s.mu.Lock()
	haveOutputs := make(map[int64]struct{}, len(s.outputs))
	for id := range s.outputs {
		haveOutputs[id] = struct{}{}
	}
	haveViews := make(map[int64]model.View, len(s.views))
	for id, v := range s.views {
		haveViews[id] = *v
	}
	s.mu.Unlock()

	for _, w := range sc.Wsets {
		s.AddWset(w.model())
	}
	for _, d := range sc.Devices {
		s.AddDevice(d.model())
	}

	wantOutputs := make(map[int64]struct{}, len(sc.Outputs))
	for _, o := range sc.Outputs {
		wantOutputs[o.ID] = struct{}{}
		if _, ok := haveOutputs[o.ID]; !ok {
			s.AddOutput(o.model())
		}
	}

	wantViews := make(map[int64]struct{}, len(sc.Views))
	for _, v := range sc.Views {
		wantViews[v.ID] = struct{}{}
		desired := v.model()
		current, exists := haveViews[v.ID]
		if !exists {
			s.AddView(desired)
			continue
		}
		if current.Title != desired.Title {
			s.SetViewTitle(v.ID, desired.Title)
		}
		if current.AppID != desired.AppID {
			s.SetViewAppID(v.ID, desired.AppID)
		}
		if current.OutputID != desired.OutputID {
			_ = s.MoveViewToOutput(v.ID, desired.OutputID, false)
		}
		if current.Geometry != desired.Geometry {
			_ = s.SetViewGeometry(v.ID, desired.Geometry)
		}
		if current.Minimized != desired.Minimized {
			s.SetViewMinimized(v.ID, desired.Minimized)
		}
		if current.Fullscreen != desired.Fullscreen {
			s.SetViewFullscreen(v.ID, desired.Fullscreen)
		}
		if current.Sticky != desired.Sticky {
			_ = s.SetViewSticky(v.ID, desired.Sticky)
		}
		if current.TiledEdges != desired.TiledEdges {
			s.SetViewTiled(v.ID, desired.TiledEdges)
		}
	}

	// Views removed from the scene unmap individually; views on removed
	// outputs unmap as part of the output teardown below.
	for id, v := range haveViews {
		if _, keep := wantViews[id]; keep {
			continue
		}
		if _, outputStays := wantOutputs[v.OutputID]; outputStays {
			_ = s.CloseView(id)
		}
	}

	for id := range haveOutputs {
		if _, keep := wantOutputs[id]; !keep {
			s.RemoveOutput(id)
		}
	}

	for _, v := range sc.Views {
		if v.Focused {
			_ = s.FocusView(v.ID)
		}
	}
	for _, o := range sc.Outputs {
		if o.Focused {
			s.FocusOutput(o.ID)
		}
	}
}
