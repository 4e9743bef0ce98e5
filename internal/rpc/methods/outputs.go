package methods

import (
	"context"
	"encoding/json"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
	"github.com/lumenwm/lumen-ipc/internal/rpc/handler"
	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
)

// OutputsService serves output enumeration and introspection.
type OutputsService struct {
	comp ports.Compositor
}

// NewOutputsService creates an outputs service.
func NewOutputsService(comp ports.Compositor) *OutputsService {
	return &OutputsService{comp: comp}
}

// RegisterMethods registers the output methods.
func (s *OutputsService) RegisterMethods(r *handler.Registry) {
	r.Register("entities/list-outputs", s.ListOutputs)
	r.Register("entities/output-info", s.OutputInfo)
	r.Register("entities/get-focused-output", s.GetFocusedOutput)
}

// ListOutputs enumerates all outputs as a bare array.
func (s *OutputsService) ListOutputs(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	return s.comp.Outputs(), nil
}

// OutputInfo describes one output by id. The description is returned
// bare, without a result envelope, for wire compatibility.
func (s *OutputsService) OutputInfo(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	id, err := message.RequireInt(data, "id")
	if err != nil {
		return nil, err
	}

	out := s.comp.Output(id)
	if out == nil {
		return nil, message.ErrNotFound("output not found")
	}
	return out, nil
}

// GetFocusedOutput returns the focused output, or null when no output
// has focus.
func (s *OutputsService) GetFocusedOutput(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	return message.OkInfo(s.comp.FocusedOutput()), nil
}
