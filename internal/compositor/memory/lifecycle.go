package memory

import (
	"github.com/lumenwm/lumen-ipc/internal/domain/model"
	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
)

// Lifecycle mutations used by the scene loader and by a hosting
// compositor. These go beyond the ports.Compositor surface: they are
// how views, outputs and devices come into existence and how state
// changes that have no IPC command (title changes, minimize, ...)
// enter the system.

// AddOutput inserts an output and notifies the output listener, which
// replays live per-output subscriptions and emits output-added.
func (s *State) AddOutput(out model.Output) {
	s.mu.Lock()
	cp := out
	s.outputs[out.ID] = &cp
	if w, ok := s.wsets[out.WsetIndex]; ok {
		w.OutputID = out.ID
		w.OutputName = out.Name
	}
	if s.focusedOutput == -1 {
		s.focusedOutput = out.ID
	}
	l := s.listener
	s.mu.Unlock()

	if l != nil {
		notify := out
		l.OutputAdded(&notify)
	}
}

// RemoveOutput drops an output and every view on it. View unmaps are
// emitted first, then the listener is told so it can emit
// output-removed before detaching the output's signal handlers.
func (s *State) RemoveOutput(id int64) {
	s.mu.Lock()
	o, ok := s.outputs[id]
	if !ok {
		s.mu.Unlock()
		return
	}

	var unmapped []model.View
	for vid, v := range s.views {
		if v.OutputID == id {
			cp := *v
			cp.Mapped = false
			unmapped = append(unmapped, cp)
			delete(s.views, vid)
			if s.focusedView == vid {
				s.focusedView = -1
			}
		}
	}
	delete(s.outputs, id)
	if w, ok := s.wsets[o.WsetIndex]; ok && w.OutputID == id {
		w.OutputID = -1
		w.OutputName = ""
	}
	if s.focusedOutput == id {
		s.focusedOutput = -1
	}
	cp := *o
	l := s.listener
	s.mu.Unlock()

	for i := range unmapped {
		s.signals.emitGlobal("view-unmapped", ports.Signal{View: &unmapped[i]})
	}
	if l != nil {
		l.OutputRemoved(&cp)
	}
}

// AddView inserts a view and emits view-mapped.
func (s *State) AddView(v model.View) {
	s.mu.Lock()
	v.Mapped = true
	cp := v
	s.views[v.ID] = &cp
	emitted := v
	s.mu.Unlock()

	s.signals.emitGlobal("view-mapped", ports.Signal{View: &emitted})
}

// AddWset inserts a workspace set.
func (s *State) AddWset(w model.Wset) {
	s.mu.Lock()
	cp := w
	s.wsets[w.Index] = &cp
	s.mu.Unlock()
}

// AddDevice inserts an input device.
func (s *State) AddDevice(d model.InputDevice) {
	s.mu.Lock()
	cp := d
	s.devices[d.ID] = &cp
	s.mu.Unlock()
}

// RemoveDevice drops an input device.
func (s *State) RemoveDevice(id int64) {
	s.mu.Lock()
	delete(s.devices, id)
	s.mu.Unlock()
}

// SetViewTitle updates a view's title and emits view-title-changed.
func (s *State) SetViewTitle(id int64, title string) {
	s.emitViewUpdate(id, "view-title-changed", false, func(v *model.View) { v.Title = title })
}

// SetViewAppID updates a view's app id and emits view-app-id-changed.
func (s *State) SetViewAppID(id int64, appID string) {
	s.emitViewUpdate(id, "view-app-id-changed", false, func(v *model.View) { v.AppID = appID })
}

// SetViewMinimized toggles minimized state and emits view-minimized on
// the view's output.
func (s *State) SetViewMinimized(id int64, minimized bool) {
	s.emitViewUpdate(id, "view-minimized", true, func(v *model.View) { v.Minimized = minimized })
}

// SetViewFullscreen toggles fullscreen state and emits
// view-fullscreened on the view's output.
func (s *State) SetViewFullscreen(id int64, fullscreen bool) {
	s.emitViewUpdate(id, "view-fullscreened", true, func(v *model.View) { v.Fullscreen = fullscreen })
}

// SetViewTiled updates a view's tiled edges and emits view-tiled on
// the view's output with both edge sets.
func (s *State) SetViewTiled(id int64, edges uint32) {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	old := v.TiledEdges
	v.TiledEdges = edges
	cp := *v
	outputID := v.OutputID
	s.mu.Unlock()

	s.signals.emitOutput("view-tiled", outputID, ports.Signal{View: &cp, OldEdges: old, NewEdges: edges})
}

// MoveViewToWorkspace moves a view across the workspace grid and emits
// view-workspace-changed on the view's output.
func (s *State) MoveViewToWorkspace(id int64, from, to model.Point) {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	cp := *v
	outputID := v.OutputID
	s.mu.Unlock()

	s.signals.emitOutput("view-workspace-changed", outputID, ports.Signal{View: &cp, From: &from, To: &to})
}

// MoveViewToWset reassigns a view to another workspace set and emits
// view-wset-changed.
func (s *State) MoveViewToWset(id, wsetIndex int64) {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	var oldW, newW *model.Wset
	if w, ok := s.wsets[v.WsetIndex]; ok {
		cp := *w
		oldW = &cp
	}
	if w, ok := s.wsets[wsetIndex]; ok {
		cp := *w
		newW = &cp
	}
	v.WsetIndex = wsetIndex
	cp := *v
	s.mu.Unlock()

	s.signals.emitGlobal("view-wset-changed", ports.Signal{View: &cp, OldWset: oldW, NewWset: newW})
}

// FocusOutput moves output focus and emits output-gain-focus.
func (s *State) FocusOutput(id int64) {
	s.mu.Lock()
	o, ok := s.outputs[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.focusedOutput = id
	cp := *o
	s.mu.Unlock()

	s.signals.emitGlobal("output-gain-focus", ports.Signal{Output: &cp})
}

// SwitchWorkspace changes the active workspace of an output's set and
// emits wset-workspace-changed on that output.
func (s *State) SwitchWorkspace(outputID int64, to model.Point) {
	s.mu.Lock()
	o, ok := s.outputs[outputID]
	if !ok {
		s.mu.Unlock()
		return
	}
	from := model.Point{X: o.Workspace.X, Y: o.Workspace.Y}
	o.Workspace.X = to.X
	o.Workspace.Y = to.Y
	var wset *model.Wset
	if w, ok := s.wsets[o.WsetIndex]; ok {
		w.Workspace.X = to.X
		w.Workspace.Y = to.Y
		cp := *w
		wset = &cp
	}
	outCp := *o
	s.mu.Unlock()

	s.signals.emitOutput("wset-workspace-changed", outputID, ports.Signal{
		From:    &from,
		To:      &to,
		Output:  &outCp,
		NewWset: wset,
	})
}

// AttachWsetToOutput binds a workspace set to an output and emits
// output-wset-changed on that output.
func (s *State) AttachWsetToOutput(wsetIndex, outputID int64) {
	s.mu.Lock()
	o, ok := s.outputs[outputID]
	if !ok {
		s.mu.Unlock()
		return
	}
	var wset *model.Wset
	if w, ok := s.wsets[wsetIndex]; ok {
		w.OutputID = o.ID
		w.OutputName = o.Name
		cp := *w
		wset = &cp
	}
	o.WsetIndex = wsetIndex
	outCp := *o
	s.mu.Unlock()

	s.signals.emitOutput("output-wset-changed", outputID, ports.Signal{Output: &outCp, NewWset: wset})
}

// SetPluginActivated reports a plugin activation change on an output
// and emits plugin-activation-state-changed.
func (s *State) SetPluginActivated(plugin string, outputID int64, activated bool) {
	s.mu.Lock()
	var outCp *model.Output
	if o, ok := s.outputs[outputID]; ok {
		cp := *o
		outCp = &cp
	}
	s.mu.Unlock()

	s.signals.emitGlobal("plugin-activation-state-changed", ports.Signal{
		Plugin: plugin,
		State:  activated,
		Output: outCp,
	})
}

func (s *State) emitViewUpdate(id int64, signal string, onOutput bool, update func(v *model.View)) {
	s.mu.Lock()
	v, ok := s.views[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	update(v)
	cp := *v
	outputID := v.OutputID
	s.mu.Unlock()

	if onOutput {
		s.signals.emitOutput(signal, outputID, ports.Signal{View: &cp})
		return
	}
	s.signals.emitGlobal(signal, ports.Signal{View: &cp})
}
