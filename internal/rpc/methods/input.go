package methods

import (
	"context"
	"encoding/json"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
	"github.com/lumenwm/lumen-ipc/internal/rpc/handler"
	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
)

// InputService serves input device enumeration and configuration.
type InputService struct {
	comp ports.Compositor
}

// NewInputService creates an input service.
func NewInputService(comp ports.Compositor) *InputService {
	return &InputService{comp: comp}
}

// RegisterMethods registers the input methods.
func (s *InputService) RegisterMethods(r *handler.Registry) {
	r.Register("input/list-devices", s.ListDevices)
	r.Register("input/configure-device", s.ConfigureDevice)
}

// ListDevices enumerates all input devices as a bare array.
func (s *InputService) ListDevices(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	return s.comp.InputDevices(), nil
}

// ConfigureDevice enables or disables one input device.
func (s *InputService) ConfigureDevice(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	id, err := message.RequireInt(data, "id")
	if err != nil {
		return nil, err
	}
	enabled, err := message.RequireBool(data, "enabled")
	if err != nil {
		return nil, err
	}

	if !s.comp.SetDeviceEnabled(id, enabled) {
		return nil, message.ErrNotFound("Unknown input device!")
	}
	return message.Ok(), nil
}
