package hub

import (
	"errors"
	"sort"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
	"github.com/rs/zerolog/log"
)

// ErrUnknownClient is returned by Watch for a client id that is not
// registered (never connected, or already disconnected).
var ErrUnknownClient = errors.New("unknown client")

// AddClient registers a connected client. The client receives no
// events until its first Watch call.
func (h *Hub) AddClient(sub ports.Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[sub.ID()] = &clientEntry{sub: sub}
	log.Debug().Str("client_id", sub.ID()).Msg("client registered")
}

// Watch replaces the client's subscription set with the given event
// names. Unknown names are dropped. An empty or nil list, or a list
// that filters down to nothing, subscribes the client to the full
// catalog; resolving "all" eagerly keeps the per-event reference
// counts exact on disconnect.
//
// The previous set is fully released before the new one is acquired,
// so repeated Watch calls never leak or double-count interest.
func (h *Hub) Watch(clientID string, names []string) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.clients[clientID]
	if !ok {
		return nil, ErrUnknownClient
	}

	next := make(map[string]struct{})
	for _, name := range names {
		if h.catalog.Has(name) {
			next[name] = struct{}{}
		}
	}
	if len(next) == 0 {
		for _, name := range h.catalog.Names() {
			next[name] = struct{}{}
		}
	}

	for name := range entry.names {
		h.decrementLocked(name)
	}
	for name := range next {
		h.incrementLocked(name)
	}
	entry.names = next

	resolved := make([]string, 0, len(next))
	for name := range next {
		resolved = append(resolved, name)
	}
	sort.Strings(resolved)

	log.Debug().
		Str("client_id", clientID).
		Int("events", len(resolved)).
		Msg("subscription set replaced")
	return resolved, nil
}

// Disconnect releases every subscription the client held and removes
// it. Safe to call for ids that were never registered.
func (h *Hub) Disconnect(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.clients[clientID]
	if !ok {
		return
	}

	for name := range entry.names {
		h.decrementLocked(name)
	}
	delete(h.clients, clientID)
	_ = entry.sub.Close()

	log.Debug().Str("client_id", clientID).Msg("client removed")
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Subscriptions returns the client's current event names, sorted.
// The second result is false for unknown clients; a nil slice with
// true means the client has not called watch yet.
func (h *Hub) Subscriptions(clientID string) ([]string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.clients[clientID]
	if !ok {
		return nil, false
	}
	if entry.names == nil {
		return nil, true
	}
	names := make([]string, 0, len(entry.names))
	for name := range entry.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}
