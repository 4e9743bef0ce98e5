package memory

import (
	"sync"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
)

// signalTable implements the connect/disconnect side of
// ports.SignalSource. It has its own lock: handlers are snapshotted
// under the lock and invoked outside it, so a handler may safely call
// back into the state or the hub.
type signalTable struct {
	mu        sync.Mutex
	nextToken ports.Token
	global    map[string]map[ports.Token]ports.SignalHandler
	perOutput map[string]map[int64]map[ports.Token]ports.SignalHandler
	index     map[ports.Token]tokenRef
}

type tokenRef struct {
	signal   string
	outputID int64
	global   bool
}

func (t *signalTable) init() {
	t.global = make(map[string]map[ports.Token]ports.SignalHandler)
	t.perOutput = make(map[string]map[int64]map[ports.Token]ports.SignalHandler)
	t.index = make(map[ports.Token]tokenRef)
}

// ConnectGlobal implements ports.SignalSource.
func (s *State) ConnectGlobal(signal string, fn ports.SignalHandler) ports.Token {
	t := &s.signals
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextToken++
	tok := t.nextToken
	if t.global[signal] == nil {
		t.global[signal] = make(map[ports.Token]ports.SignalHandler)
	}
	t.global[signal][tok] = fn
	t.index[tok] = tokenRef{signal: signal, global: true}
	return tok
}

// ConnectOutput implements ports.SignalSource.
func (s *State) ConnectOutput(signal string, outputID int64, fn ports.SignalHandler) ports.Token {
	t := &s.signals
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextToken++
	tok := t.nextToken
	if t.perOutput[signal] == nil {
		t.perOutput[signal] = make(map[int64]map[ports.Token]ports.SignalHandler)
	}
	if t.perOutput[signal][outputID] == nil {
		t.perOutput[signal][outputID] = make(map[ports.Token]ports.SignalHandler)
	}
	t.perOutput[signal][outputID][tok] = fn
	t.index[tok] = tokenRef{signal: signal, outputID: outputID}
	return tok
}

// Disconnect implements ports.SignalSource. Unknown tokens are ignored.
func (s *State) Disconnect(tok ports.Token) {
	t := &s.signals
	t.mu.Lock()
	defer t.mu.Unlock()

	ref, ok := t.index[tok]
	if !ok {
		return
	}
	delete(t.index, tok)
	if ref.global {
		delete(t.global[ref.signal], tok)
		return
	}
	if byOutput := t.perOutput[ref.signal]; byOutput != nil {
		delete(byOutput[ref.outputID], tok)
	}
}

func (t *signalTable) emitGlobal(signal string, sig ports.Signal) {
	t.mu.Lock()
	handlers := make([]ports.SignalHandler, 0, len(t.global[signal]))
	for _, fn := range t.global[signal] {
		handlers = append(handlers, fn)
	}
	t.mu.Unlock()

	for _, fn := range handlers {
		fn(sig)
	}
}

func (t *signalTable) emitOutput(signal string, outputID int64, sig ports.Signal) {
	t.mu.Lock()
	var handlers []ports.SignalHandler
	if byOutput := t.perOutput[signal]; byOutput != nil {
		for _, fn := range byOutput[outputID] {
			handlers = append(handlers, fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range handlers {
		fn(sig)
	}
}
