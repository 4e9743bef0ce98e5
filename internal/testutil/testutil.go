// Package testutil provides shared test utilities and mocks.
package testutil

import (
	"sync"
	"testing"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
)

// MockSubscriber implements ports.Subscriber for testing.
type MockSubscriber struct {
	id       string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
	sendErr  error
	done     chan struct{}
}

// NewMockSubscriber creates a new mock subscriber.
func NewMockSubscriber(id string) *MockSubscriber {
	return &MockSubscriber{
		id:   id,
		done: make(chan struct{}),
	}
}

// ID returns the subscriber ID.
func (m *MockSubscriber) ID() string {
	return m.id
}

// Send records the message and returns any configured error.
func (m *MockSubscriber) Send(message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}

	cp := make([]byte, len(message))
	copy(cp, message)
	m.messages = append(m.messages, cp)
	return nil
}

// Close marks the subscriber as closed.
func (m *MockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

// Done returns a channel that's closed when the subscriber is done.
func (m *MockSubscriber) Done() <-chan struct{} {
	return m.done
}

// Messages returns all received messages.
func (m *MockSubscriber) Messages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([][]byte, len(m.messages))
	copy(result, m.messages)
	return result
}

// MessageCount returns the number of received messages.
func (m *MockSubscriber) MessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// IsClosed returns whether the subscriber was closed.
func (m *MockSubscriber) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SetSendError configures an error to return on Send.
func (m *MockSubscriber) SetSendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

// ClearMessages removes all recorded messages.
func (m *MockSubscriber) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = m.messages[:0]
}

// Ensure MockSubscriber implements ports.Subscriber.
var _ ports.Subscriber = (*MockSubscriber)(nil)

// RecordingSource implements ports.SignalSource and records every
// connect and disconnect, so tests can assert on exactly which signals
// are attached while clients come and go.
type RecordingSource struct {
	mu        sync.Mutex
	nextToken ports.Token
	global    map[ports.Token]SourceConn
	perOutput map[ports.Token]SourceConn
	handlers  map[ports.Token]ports.SignalHandler
}

// SourceConn describes one live connection on a RecordingSource.
type SourceConn struct {
	Signal   string
	OutputID int64
}

// NewRecordingSource creates an empty recording source.
func NewRecordingSource() *RecordingSource {
	return &RecordingSource{
		global:    make(map[ports.Token]SourceConn),
		perOutput: make(map[ports.Token]SourceConn),
		handlers:  make(map[ports.Token]ports.SignalHandler),
	}
}

// ConnectGlobal implements ports.SignalSource.
func (r *RecordingSource) ConnectGlobal(signal string, fn ports.SignalHandler) ports.Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextToken++
	r.global[r.nextToken] = SourceConn{Signal: signal}
	r.handlers[r.nextToken] = fn
	return r.nextToken
}

// ConnectOutput implements ports.SignalSource.
func (r *RecordingSource) ConnectOutput(signal string, outputID int64, fn ports.SignalHandler) ports.Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextToken++
	r.perOutput[r.nextToken] = SourceConn{Signal: signal, OutputID: outputID}
	r.handlers[r.nextToken] = fn
	return r.nextToken
}

// Disconnect implements ports.SignalSource.
func (r *RecordingSource) Disconnect(tok ports.Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.global, tok)
	delete(r.perOutput, tok)
	delete(r.handlers, tok)
}

// GlobalCount returns the number of live global connections for a signal.
func (r *RecordingSource) GlobalCount(signal string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.global {
		if c.Signal == signal {
			n++
		}
	}
	return n
}

// OutputCount returns the number of live per-output connections for a
// signal on an output.
func (r *RecordingSource) OutputCount(signal string, outputID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.perOutput {
		if c.Signal == signal && c.OutputID == outputID {
			n++
		}
	}
	return n
}

// ConnCount returns the total number of live connections.
func (r *RecordingSource) ConnCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.global) + len(r.perOutput)
}

// Fire invokes every live handler connected to the signal, global and
// per-output alike.
func (r *RecordingSource) Fire(signal string, sig ports.Signal) {
	r.mu.Lock()
	var fns []ports.SignalHandler
	for tok, c := range r.global {
		if c.Signal == signal {
			fns = append(fns, r.handlers[tok])
		}
	}
	for tok, c := range r.perOutput {
		if c.Signal == signal {
			fns = append(fns, r.handlers[tok])
		}
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(sig)
	}
}

// FireOutput invokes handlers connected to the signal on one output.
func (r *RecordingSource) FireOutput(signal string, outputID int64, sig ports.Signal) {
	r.mu.Lock()
	var fns []ports.SignalHandler
	for tok, c := range r.perOutput {
		if c.Signal == signal && c.OutputID == outputID {
			fns = append(fns, r.handlers[tok])
		}
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(sig)
	}
}

// Ensure RecordingSource implements ports.SignalSource.
var _ ports.SignalSource = (*RecordingSource)(nil)

// AssertEqual is a simple equality assertion helper.
func AssertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// AssertTrue asserts that a condition is true.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Errorf("%s: expected true, got false", msg)
	}
}

// AssertNoError asserts that an error is nil.
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", msg, err)
	}
}

// AssertError asserts that an error is not nil.
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected error, got nil", msg)
	}
}
