package methods

import (
	"context"
	"encoding/json"

	"github.com/lumenwm/lumen-ipc/internal/rpc/handler"
	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
	"github.com/tidwall/gjson"
)

// Watcher is the subscription surface of the hub used by the watch
// method.
type Watcher interface {
	// Watch replaces the client's subscription set; see hub.Watch.
	Watch(clientID string, names []string) ([]string, error)
}

// EventsService serves event subscription management.
type EventsService struct {
	watcher Watcher
}

// NewEventsService creates an events service.
func NewEventsService(watcher Watcher) *EventsService {
	return &EventsService{watcher: watcher}
}

// RegisterMethods registers the event methods.
func (s *EventsService) RegisterMethods(r *handler.Registry) {
	r.Register("events/watch", s.Watch)
}

// Watch replaces the calling client's subscription set. An absent or
// empty "events" list subscribes to everything; unknown names are
// dropped silently.
func (s *EventsService) Watch(ctx context.Context, data json.RawMessage) (any, *message.Error) {
	entries, _, err := message.OptionalArray(data, "events")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type != gjson.String {
			return nil, message.ErrInvalidParameter("Event list contains non-string entries!")
		}
		names = append(names, entry.String())
	}

	clientID := handler.ClientID(ctx)
	if clientID == "" {
		return nil, message.ErrUnsupported("watch requires a connected client")
	}

	if _, werr := s.watcher.Watch(clientID, names); werr != nil {
		return nil, message.ErrUnsupported(werr.Error())
	}
	return message.Ok(), nil
}
