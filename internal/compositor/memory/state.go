// Package memory provides an in-memory implementation of the
// compositor ports. It backs the daemon in standalone mode and the
// integration tests; a real compositor replaces it by implementing
// the same interfaces over its scene graph.
package memory

import (
	"sort"
	"sync"

	"github.com/lumenwm/lumen-ipc/internal/domain/model"
	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
)

// OutputListener is notified when outputs appear or disappear. The
// hub implements this to replay per-output signal attachments.
type OutputListener interface {
	OutputAdded(out *model.Output)
	OutputRemoved(out *model.Output)
}

// State is the in-memory object model. It implements ports.Compositor
// and ports.SignalSource. Mutations emit the matching signals after
// the state lock is released, so signal handlers may call back into
// reads without deadlocking.
type State struct {
	mu            sync.Mutex
	views         map[int64]*model.View
	outputs       map[int64]*model.Output
	wsets         map[int64]*model.Wset
	devices       map[int64]*model.InputDevice
	focusedView   int64
	focusedOutput int64
	focusSeq      int64

	listener OutputListener

	signals signalTable
}

// NewState creates an empty state.
func NewState() *State {
	s := &State{
		views:         make(map[int64]*model.View),
		outputs:       make(map[int64]*model.Output),
		wsets:         make(map[int64]*model.Wset),
		devices:       make(map[int64]*model.InputDevice),
		focusedView:   -1,
		focusedOutput: -1,
	}
	s.signals.init()
	return s
}

// SetOutputListener registers the output lifecycle listener. Must be
// set before outputs are added.
func (s *State) SetOutputListener(l OutputListener) {
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
}

// --- ports.Compositor reads ---

// Views returns all views, ordered by id.
func (s *State) Views() []model.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.View, 0, len(s.views))
	for _, v := range s.views {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// View returns a copy of the view with the given id, or nil.
func (s *State) View(id int64) *model.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views[id]; ok {
		cp := *v
		return &cp
	}
	return nil
}

// Outputs returns all outputs, ordered by id.
func (s *State) Outputs() []model.Output {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Output, 0, len(s.outputs))
	for _, o := range s.outputs {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Output returns a copy of the output with the given id, or nil.
func (s *State) Output(id int64) *model.Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.outputs[id]; ok {
		cp := *o
		return &cp
	}
	return nil
}

// Wsets returns all workspace sets, ordered by index.
func (s *State) Wsets() []model.Wset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Wset, 0, len(s.wsets))
	for _, w := range s.wsets {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Wset returns a copy of the workspace set with the given index, or nil.
func (s *State) Wset(index int64) *model.Wset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.wsets[index]; ok {
		cp := *w
		return &cp
	}
	return nil
}

// InputDevices returns all input devices, ordered by id.
func (s *State) InputDevices() []model.InputDevice {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.InputDevice, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FocusedView returns the view holding keyboard focus, or nil.
func (s *State) FocusedView() *model.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views[s.focusedView]; ok {
		cp := *v
		return &cp
	}
	return nil
}

// FocusedOutput returns the focused output, or nil.
func (s *State) FocusedOutput() *model.Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.outputs[s.focusedOutput]; ok {
		cp := *o
		return &cp
	}
	return nil
}

// --- ports.Compositor mutations ---

// FocusView gives keyboard focus to a view and emits view-focused.
func (s *State) FocusView(id int64) error {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return ports.ErrNoSuchEntity
	}
	if prev, ok := s.views[s.focusedView]; ok {
		prev.Activated = false
	}
	s.focusSeq++
	v.Activated = true
	v.LastFocusTimestamp = s.focusSeq
	s.focusedView = id
	cp := *v
	s.mu.Unlock()

	s.signals.emitGlobal("view-focused", ports.Signal{View: &cp})
	return nil
}

// CloseView removes a view and emits view-unmapped.
func (s *State) CloseView(id int64) error {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return ports.ErrNoSuchEntity
	}
	delete(s.views, id)
	if s.focusedView == id {
		s.focusedView = -1
	}
	cp := *v
	cp.Mapped = false
	s.mu.Unlock()

	s.signals.emitGlobal("view-unmapped", ports.Signal{View: &cp})
	return nil
}

// MoveViewToOutput moves a view to another output and emits
// view-set-output. With reposition set, the view is placed at the
// same offset relative to the new output's origin.
func (s *State) MoveViewToOutput(viewID, outputID int64, reposition bool) error {
	s.mu.Lock()
	v, ok := s.views[viewID]
	if !ok {
		s.mu.Unlock()
		return ports.ErrNoSuchEntity
	}
	o, ok := s.outputs[outputID]
	if !ok {
		s.mu.Unlock()
		return ports.ErrNoSuchEntity
	}

	if reposition {
		if old, ok := s.outputs[v.OutputID]; ok {
			v.Geometry.X = o.Geometry.X + (v.Geometry.X - old.Geometry.X)
			v.Geometry.Y = o.Geometry.Y + (v.Geometry.Y - old.Geometry.Y)
		} else {
			v.Geometry.X = o.Geometry.X
			v.Geometry.Y = o.Geometry.Y
		}
		v.BBox = v.Geometry
	}
	v.OutputID = o.ID
	v.OutputName = o.Name
	v.WsetIndex = o.WsetIndex
	viewCp := *v
	outCp := *o
	s.mu.Unlock()

	s.signals.emitGlobal("view-set-output", ports.Signal{View: &viewCp, Output: &outCp})
	return nil
}

// SetViewGeometry resizes/moves a view and emits view-geometry-changed
// with the previous geometry.
func (s *State) SetViewGeometry(id int64, g model.Geometry) error {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return ports.ErrNoSuchEntity
	}
	old := v.Geometry
	v.Geometry = g
	v.BBox = g
	v.BaseGeometry = g
	cp := *v
	s.mu.Unlock()

	s.signals.emitGlobal("view-geometry-changed", ports.Signal{View: &cp, OldGeometry: &old})
	return nil
}

// SetViewSticky toggles the sticky flag and emits view-sticky on the
// view's output.
func (s *State) SetViewSticky(id int64, sticky bool) error {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return ports.ErrNoSuchEntity
	}
	v.Sticky = sticky
	cp := *v
	outputID := v.OutputID
	s.mu.Unlock()

	s.signals.emitOutput("view-sticky", outputID, ports.Signal{View: &cp})
	return nil
}

// SetDeviceEnabled toggles an input device. Returns false for unknown
// device ids.
func (s *State) SetDeviceEnabled(id int64, enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[id]
	if !ok {
		return false
	}
	d.Enabled = enabled
	return true
}
