// Package handler provides the method repository and the request
// dispatcher.
package handler

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ClientIDKey is the context key carrying the issuing client's id.
const ClientIDKey ContextKey = "client_id"

// ClientID extracts the issuing client's id from a request context.
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(ClientIDKey).(string)
	return id
}

// HandlerFunc is the signature for method handlers. It receives the
// raw request data and returns either a JSON-shaped result or a
// structured error.
type HandlerFunc func(ctx context.Context, data json.RawMessage) (any, *message.Error)

// MiddlewareFunc is a function that wraps a HandlerFunc.
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Registry holds registered methods and provides lookup.
type Registry struct {
	mu         sync.RWMutex
	handlers   map[string]HandlerFunc
	middleware []MiddlewareFunc
}

// NewRegistry creates an empty method registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register registers a handler under a method name. Registering the
// same name twice is a bug in the wiring, not a runtime condition, and
// panics.
func (r *Registry) Register(method string, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.handlers[method]; dup {
		panic("handler: duplicate method registration: " + method)
	}
	r.handlers[method] = handler
}

// Unregister removes a method. Removing an absent name is a no-op.
func (r *Registry) Unregister(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, method)
}

// Use adds middleware. Middleware is applied in the order it is added.
func (r *Registry) Use(mw MiddlewareFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw)
}

// Get returns the handler for a method with all middleware applied,
// or nil if the method is not registered.
func (r *Registry) Get(method string) HandlerFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[method]
	if !ok {
		return nil
	}

	// Apply middleware in reverse order (last added = innermost).
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}
	return handler
}

// Has returns true if a handler is registered for the method.
func (r *Registry) Has(method string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[method]
	return ok
}

// Methods returns all registered method names.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods := make([]string, 0, len(r.handlers))
	for method := range r.handlers {
		methods = append(methods, method)
	}
	return methods
}

// MethodService is implemented by services that register a group of
// related methods.
type MethodService interface {
	RegisterMethods(r *Registry)
}

// RegisterService registers all methods from a MethodService.
func (r *Registry) RegisterService(svc MethodService) {
	svc.RegisterMethods(r)
}
