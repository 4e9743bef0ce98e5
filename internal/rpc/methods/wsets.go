package methods

import (
	"context"
	"encoding/json"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
	"github.com/lumenwm/lumen-ipc/internal/rpc/handler"
	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
)

// WsetsService serves workspace set enumeration and introspection.
type WsetsService struct {
	comp ports.Compositor
}

// NewWsetsService creates a workspace set service.
func NewWsetsService(comp ports.Compositor) *WsetsService {
	return &WsetsService{comp: comp}
}

// RegisterMethods registers the workspace set methods.
func (s *WsetsService) RegisterMethods(r *handler.Registry) {
	r.Register("entities/list-wsets", s.ListWsets)
	r.Register("entities/wset-info", s.WsetInfo)
}

// ListWsets enumerates all workspace sets as a bare array.
func (s *WsetsService) ListWsets(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	return s.comp.Wsets(), nil
}

// WsetInfo describes one workspace set by index. Like OutputInfo, the
// description is returned bare for wire compatibility.
func (s *WsetsService) WsetInfo(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	id, err := message.RequireInt(data, "id")
	if err != nil {
		return nil, err
	}

	wset := s.comp.Wset(id)
	if wset == nil {
		return nil, message.ErrNotFound("workspace set not found")
	}
	return wset, nil
}
