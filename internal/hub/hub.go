// Package hub implements the subscription core of the IPC surface: it
// reference-counts client interest per event name, attaches to the
// compositor's signals lazily (exactly while at least one client
// cares) and fans fired events out to the subscribed clients.
package hub

import (
	"sync"

	"github.com/lumenwm/lumen-ipc/internal/catalog"
	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
)

// Hub owns all subscription state. A single mutex guards the
// subscription table and the client map so that watch, disconnect,
// attach/detach and publish never interleave.
type Hub struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	source  ports.SignalSource

	// subs holds one entry per event name that has ever been
	// subscribed. Invariant: an entry is attached iff refCount > 0.
	subs map[string]*subscription

	// clients maps client id to its subscriber handle and chosen
	// event names.
	clients map[string]*clientEntry

	// outputs is the set of currently existing outputs, maintained
	// through OutputAdded/OutputRemoved.
	outputs map[int64]struct{}
}

type subscription struct {
	refCount  int
	global    ports.Token
	hasGlobal bool
	perOutput map[int64]ports.Token
}

type clientEntry struct {
	sub ports.Subscriber

	// names is nil until the client's first watch call. A client
	// without a watch receives no events at all.
	names map[string]struct{}
}

// New creates a hub over the given catalog and signal source.
func New(cat *catalog.Catalog, source ports.SignalSource) *Hub {
	return &Hub{
		catalog: cat,
		source:  source,
		subs:    make(map[string]*subscription),
		clients: make(map[string]*clientEntry),
		outputs: make(map[int64]struct{}),
	}
}

// Catalog returns the event catalog the hub serves.
func (h *Hub) Catalog() *catalog.Catalog {
	return h.catalog
}
