package ports

import "github.com/lumenwm/lumen-ipc/internal/domain/model"

// Token identifies a single signal connection. Tokens are only valid
// with the SignalSource that issued them.
type Token uint64

// Signal is the raw notification delivered by the signal source. Only
// the fields relevant to the fired signal are populated; pointer
// fields serialize to null when absent.
type Signal struct {
	View        *model.View
	Output      *model.Output
	OldGeometry *model.Geometry
	OldEdges    uint32
	NewEdges    uint32
	OldWset     *model.Wset
	NewWset     *model.Wset
	From        *model.Point
	To          *model.Point
	Plugin      string
	State       bool
}

// SignalHandler receives a fired signal. Handlers run synchronously on
// the emitting goroutine and must not block.
type SignalHandler func(sig Signal)

// SignalSource is the host's notification mechanism. Connect calls are
// synchronous; a handler may fire as soon as Connect returns.
type SignalSource interface {
	// ConnectGlobal attaches a handler to a compositor-wide signal.
	ConnectGlobal(signal string, fn SignalHandler) Token

	// ConnectOutput attaches a handler to a signal of one output.
	ConnectOutput(signal string, outputID int64, fn SignalHandler) Token

	// Disconnect detaches a previously connected handler. Unknown
	// tokens are ignored.
	Disconnect(tok Token)
}
