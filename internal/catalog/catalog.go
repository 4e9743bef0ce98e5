// Package catalog defines the fixed table of events the IPC surface
// can emit. Each entry names the underlying compositor signal, the
// scope it attaches at and the shape of the payload sent to clients.
package catalog

import (
	"sort"

	"github.com/lumenwm/lumen-ipc/internal/domain/model"
	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
)

// Scope says where a descriptor's signal is attached.
type Scope int

const (
	// Global signals are attached once, compositor-wide.
	Global Scope = iota

	// PerOutput signals are attached to every existing output, and
	// re-attached to outputs that appear while the event is live.
	PerOutput
)

// Builder turns a raw signal into the event payload fields. The
// "event" field is added by the catalog.
type Builder func(sig ports.Signal) map[string]any

// Descriptor is one entry of the event catalog.
type Descriptor struct {
	// Name is the stable event name clients subscribe to.
	Name string

	// Scope is where the underlying signal attaches.
	Scope Scope

	// Signal is the signal name on the source adapter. Empty for
	// events that originate from the output lifecycle itself
	// (output-added, output-removed) rather than a connectable signal.
	Signal string

	build Builder
}

// Payload builds the full event payload, including the "event" field.
func (d Descriptor) Payload(sig ports.Signal) map[string]any {
	m := d.build(sig)
	m["event"] = d.Name
	return m
}

// Catalog is the immutable event table.
type Catalog struct {
	entries map[string]Descriptor
	names   []string
}

// Has reports whether name is a known event.
func (c *Catalog) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Get returns the descriptor for name.
func (c *Catalog) Get(name string) (Descriptor, bool) {
	d, ok := c.entries[name]
	return d, ok
}

// Names returns all event names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

func viewPayload(sig ports.Signal) map[string]any {
	return map[string]any{"view": sig.View}
}

func outputPayload(sig ports.Signal) map[string]any {
	return map[string]any{"output": sig.Output}
}

func outputIDOf(o *model.Output) int64 {
	if o == nil {
		return -1
	}
	return o.ID
}

func wsetIndexOf(w *model.Wset) int64 {
	if w == nil {
		return -1
	}
	return w.Index
}

// Default returns the catalog of all events this daemon can emit.
func Default() *Catalog {
	descriptors := []Descriptor{
		{Name: "view-mapped", Scope: Global, Signal: "view-mapped", build: viewPayload},
		{Name: "view-unmapped", Scope: Global, Signal: "view-unmapped", build: viewPayload},
		{Name: "view-focused", Scope: Global, Signal: "view-focused", build: viewPayload},
		{Name: "view-title-changed", Scope: Global, Signal: "view-title-changed", build: viewPayload},
		{Name: "view-app-id-changed", Scope: Global, Signal: "view-app-id-changed", build: viewPayload},
		{Name: "view-set-output", Scope: Global, Signal: "view-set-output", build: func(sig ports.Signal) map[string]any {
			return map[string]any{"view": sig.View, "output": sig.Output}
		}},
		{Name: "view-geometry-changed", Scope: Global, Signal: "view-geometry-changed", build: func(sig ports.Signal) map[string]any {
			return map[string]any{"view": sig.View, "old-geometry": sig.OldGeometry}
		}},
		{Name: "view-wset-changed", Scope: Global, Signal: "view-wset-changed", build: func(sig ports.Signal) map[string]any {
			return map[string]any{"view": sig.View, "old-wset": sig.OldWset, "new-wset": sig.NewWset}
		}},
		{Name: "plugin-activation-state-changed", Scope: Global, Signal: "plugin-activation-state-changed", build: func(sig ports.Signal) map[string]any {
			return map[string]any{
				"plugin":      sig.Plugin,
				"state":       sig.State,
				"output":      outputIDOf(sig.Output),
				"output-data": sig.Output,
			}
		}},
		{Name: "output-gain-focus", Scope: Global, Signal: "output-gain-focus", build: outputPayload},

		// Output lifecycle events have no connectable signal; the
		// multiplexer emits them while reconciling per-output
		// attachments.
		{Name: "output-added", Scope: Global, build: outputPayload},
		{Name: "output-removed", Scope: Global, build: outputPayload},

		{Name: "view-tiled", Scope: PerOutput, Signal: "view-tiled", build: func(sig ports.Signal) map[string]any {
			return map[string]any{"view": sig.View, "old-edges": sig.OldEdges, "new-edges": sig.NewEdges}
		}},
		{Name: "view-minimized", Scope: PerOutput, Signal: "view-minimized", build: viewPayload},
		{Name: "view-fullscreened", Scope: PerOutput, Signal: "view-fullscreened", build: viewPayload},
		{Name: "view-sticky", Scope: PerOutput, Signal: "view-sticky", build: viewPayload},
		{Name: "view-workspace-changed", Scope: PerOutput, Signal: "view-workspace-changed", build: func(sig ports.Signal) map[string]any {
			return map[string]any{"view": sig.View, "from": sig.From, "to": sig.To}
		}},
		{Name: "output-wset-changed", Scope: PerOutput, Signal: "output-wset-changed", build: func(sig ports.Signal) map[string]any {
			return map[string]any{
				"new-wset":      wsetIndexOf(sig.NewWset),
				"output":        outputIDOf(sig.Output),
				"new-wset-data": sig.NewWset,
				"output-data":   sig.Output,
			}
		}},
		{Name: "wset-workspace-changed", Scope: PerOutput, Signal: "wset-workspace-changed", build: func(sig ports.Signal) map[string]any {
			return map[string]any{
				"previous-workspace": sig.From,
				"new-workspace":      sig.To,
				"output":             outputIDOf(sig.Output),
				"wset":               wsetIndexOf(sig.NewWset),
				"output-data":        sig.Output,
				"wset-data":          sig.NewWset,
			}
		}},
	}

	c := &Catalog{entries: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		c.entries[d.Name] = d
		c.names = append(c.names, d.Name)
	}
	sort.Strings(c.names)
	return c
}
