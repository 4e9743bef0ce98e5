package hub

import (
	"encoding/json"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
	"github.com/rs/zerolog/log"
)

// Publish delivers an event payload to every client whose subscription
// set contains the event name (or is the empty "everything" set). A
// failing send is logged and skipped; cleanup of dead clients happens
// on their disconnect path, never here.
func (h *Hub) Publish(name string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event", name).Msg("failed to serialize event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliverLocked(name, data)
}

// publishLocked builds and delivers a catalog event from a raw signal.
// Callers must hold h.mu.
func (h *Hub) publishLocked(name string, sig ports.Signal) {
	desc, ok := h.catalog.Get(name)
	if !ok {
		return
	}

	data, err := json.Marshal(desc.Payload(sig))
	if err != nil {
		log.Error().Err(err).Str("event", name).Msg("failed to serialize event")
		return
	}
	h.deliverLocked(name, data)
}

func (h *Hub) deliverLocked(name string, data []byte) {
	for id, entry := range h.clients {
		if entry.names == nil {
			continue
		}
		if len(entry.names) > 0 {
			if _, ok := entry.names[name]; !ok {
				continue
			}
		}
		if err := entry.sub.Send(data); err != nil {
			log.Warn().
				Str("client_id", id).
				Str("event", name).
				Err(err).
				Msg("failed to send event to client")
		}
	}
}
