package handler

import (
	"context"
	"encoding/json"

	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
	"github.com/rs/zerolog/log"
)

// Dispatcher routes requests to registered handlers and shapes the
// response envelope. Handlers run synchronously on the caller's
// goroutine.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Registry returns the underlying registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch resolves and invokes the handler for a request. The return
// value is the response envelope, ready for serialization.
func (d *Dispatcher) Dispatch(ctx context.Context, req *message.Request) any {
	log.Debug().
		Str("method", req.Method).
		Str("client_id", ClientID(ctx)).
		Msg("dispatching request")

	handler := d.registry.Get(req.Method)
	if handler == nil {
		log.Warn().Str("method", req.Method).Msg("method not found")
		return message.ErrMethodNotFound(req.Method).Envelope()
	}

	result, rpcErr := handler(ctx, req.Data)
	if rpcErr != nil {
		log.Debug().
			Str("method", req.Method).
			Str("code", rpcErr.Code).
			Str("error", rpcErr.Message).
			Msg("request failed")
		return rpcErr.Envelope()
	}

	if result == nil {
		return message.Ok()
	}
	return result
}

// DispatchBytes parses a request envelope and dispatches it, returning
// the serialized response. Malformed requests yield an error envelope,
// never a dropped response.
func (d *Dispatcher) DispatchBytes(ctx context.Context, data []byte) []byte {
	req, err := message.ParseRequest(data)
	if err != nil {
		log.Debug().Err(err).Msg("failed to parse request")
		return mustMarshal(message.ErrInvalidParameter("could not parse request: " + err.Error()).Envelope())
	}

	resp := d.Dispatch(ctx, req)
	out, err := json.Marshal(resp)
	if err != nil {
		log.Error().
			Str("method", req.Method).
			Err(err).
			Msg("failed to marshal response")
		return mustMarshal(message.ErrUnsupported("failed to serialize response").Envelope())
	}
	return out
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// Envelopes are maps of plain values; this cannot fail.
		panic(err)
	}
	return data
}
