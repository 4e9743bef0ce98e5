package hub

import (
	"fmt"

	"github.com/lumenwm/lumen-ipc/internal/catalog"
	"github.com/lumenwm/lumen-ipc/internal/domain/model"
	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
	"github.com/rs/zerolog/log"
)

// incrementLocked raises the interest count for an event name and, on
// the 0→1 transition, connects the underlying signal: once globally,
// or once per existing output for per-output events.
func (h *Hub) incrementLocked(name string) {
	st := h.subs[name]
	if st == nil {
		st = &subscription{perOutput: make(map[int64]ports.Token)}
		h.subs[name] = st
	}

	st.refCount++
	if st.refCount > 1 {
		return
	}

	desc, ok := h.catalog.Get(name)
	if !ok || desc.Signal == "" {
		// Lifecycle events (output-added/removed) have nothing to
		// connect; they are emitted by the output reconciler below.
		return
	}

	emit := h.emitter(desc)
	switch desc.Scope {
	case catalog.Global:
		st.global = h.source.ConnectGlobal(desc.Signal, emit)
		st.hasGlobal = true
	case catalog.PerOutput:
		for id := range h.outputs {
			st.perOutput[id] = h.source.ConnectOutput(desc.Signal, id, emit)
		}
	}

	log.Debug().Str("event", name).Msg("event source attached")
}

// decrementLocked lowers the interest count and, on the 1→0
// transition, disconnects every token held for the event. A count
// going negative is a bug in the caller, never a client-input error.
func (h *Hub) decrementLocked(name string) {
	st := h.subs[name]
	if st == nil || st.refCount == 0 {
		panic(fmt.Sprintf("hub: subscription count underflow for event %q", name))
	}

	st.refCount--
	if st.refCount > 0 {
		return
	}

	if st.hasGlobal {
		h.source.Disconnect(st.global)
		st.hasGlobal = false
	}
	for id, tok := range st.perOutput {
		h.source.Disconnect(tok)
		delete(st.perOutput, id)
	}

	log.Debug().Str("event", name).Msg("event source detached")
}

// emitter builds the signal handler for a descriptor. The handler is
// invoked by the signal source outside the hub lock.
func (h *Hub) emitter(desc catalog.Descriptor) ports.SignalHandler {
	return func(sig ports.Signal) {
		h.Publish(desc.Name, desc.Payload(sig))
	}
}

// OutputAdded must be called by the host whenever an output appears,
// including once per output at startup. Live per-output subscriptions
// are replayed onto the new output before the output-added event is
// delivered.
func (h *Hub) OutputAdded(out *model.Output) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.outputs[out.ID] = struct{}{}
	for name, st := range h.subs {
		if st.refCount == 0 {
			continue
		}
		desc, ok := h.catalog.Get(name)
		if !ok || desc.Scope != catalog.PerOutput || desc.Signal == "" {
			continue
		}
		st.perOutput[out.ID] = h.source.ConnectOutput(desc.Signal, out.ID, h.emitter(desc))
	}

	h.publishLocked("output-added", ports.Signal{Output: out})
	log.Debug().Int64("output", out.ID).Msg("output tracked")
}

// OutputRemoved must be called by the host when an output goes away.
// The output-removed event is delivered before any token for the
// output is dropped, and tokens are explicitly disconnected before the
// scope is considered gone.
func (h *Hub) OutputRemoved(out *model.Output) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.publishLocked("output-removed", ports.Signal{Output: out})

	for _, st := range h.subs {
		if tok, ok := st.perOutput[out.ID]; ok {
			h.source.Disconnect(tok)
			delete(st.perOutput, out.ID)
		}
	}
	delete(h.outputs, out.ID)
	log.Debug().Int64("output", out.ID).Msg("output dropped")
}

// RefCount returns the current interest count for an event name.
func (h *Hub) RefCount(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if st := h.subs[name]; st != nil {
		return st.refCount
	}
	return 0
}

// Live reports whether the event's source is currently attached.
func (h *Hub) Live(name string) bool {
	return h.RefCount(name) > 0
}
