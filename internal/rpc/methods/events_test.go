package methods

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lumenwm/lumen-ipc/internal/catalog"
	"github.com/lumenwm/lumen-ipc/internal/hub"
	"github.com/lumenwm/lumen-ipc/internal/rpc/handler"
	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
	"github.com/lumenwm/lumen-ipc/internal/testutil"
)

func newWatchFixture(t *testing.T) (*EventsService, *hub.Hub, context.Context) {
	t.Helper()
	h := hub.New(catalog.Default(), testutil.NewRecordingSource())
	h.AddClient(testutil.NewMockSubscriber("c1"))
	ctx := context.WithValue(context.Background(), handler.ClientIDKey, "c1")
	return NewEventsService(h), h, ctx
}

func TestWatchSubscribesClient(t *testing.T) {
	svc, h, ctx := newWatchFixture(t)

	result, errResp := svc.Watch(ctx, json.RawMessage(`{"events": ["view-mapped", "view-focused"]}`))
	if errResp != nil {
		t.Fatalf("unexpected error: %v", errResp)
	}
	if env := result.(map[string]any); env["result"] != "ok" {
		t.Fatalf("unexpected envelope: %v", env)
	}

	names, ok := h.Subscriptions("c1")
	if !ok || len(names) != 2 {
		t.Fatalf("expected 2 subscriptions, got %v", names)
	}
}

func TestWatchWithoutEventsSubscribesToEverything(t *testing.T) {
	svc, h, ctx := newWatchFixture(t)

	if _, errResp := svc.Watch(ctx, nil); errResp != nil {
		t.Fatalf("unexpected error: %v", errResp)
	}
	names, _ := h.Subscriptions("c1")
	if len(names) != h.Catalog().Len() {
		t.Fatalf("expected full catalog, got %d events", len(names))
	}
}

func TestWatchWithEmptyListSubscribesToEverything(t *testing.T) {
	svc, h, ctx := newWatchFixture(t)

	// An explicitly empty list behaves exactly like an absent field.
	if _, errResp := svc.Watch(ctx, json.RawMessage(`{"events": []}`)); errResp != nil {
		t.Fatalf("unexpected error: %v", errResp)
	}
	names, _ := h.Subscriptions("c1")
	if len(names) != h.Catalog().Len() {
		t.Fatalf("expected full catalog, got %d events", len(names))
	}
}

func TestWatchRejectsNonStringEntries(t *testing.T) {
	svc, h, ctx := newWatchFixture(t)

	_, errResp := svc.Watch(ctx, json.RawMessage(`{"events": ["view-mapped", 5]}`))
	if errResp == nil || errResp.Message != "Event list contains non-string entries!" {
		t.Fatalf("expected non-string entries error, got %v", errResp)
	}
	if errResp.Code != message.CodeInvalidParameter {
		t.Fatalf("expected invalid-parameter code, got %q", errResp.Code)
	}

	// The rejected call must not have touched the subscription set.
	if names, _ := h.Subscriptions("c1"); names != nil {
		t.Fatalf("subscription set changed by rejected watch: %v", names)
	}
}

func TestWatchRequiresConnectedClient(t *testing.T) {
	svc, _, _ := newWatchFixture(t)

	_, errResp := svc.Watch(context.Background(), json.RawMessage(`{"events": []}`))
	if errResp == nil || errResp.Code != message.CodeUnsupported {
		t.Fatalf("expected unsupported-operation without a client, got %v", errResp)
	}
}

func TestWatchUnknownClientID(t *testing.T) {
	svc, _, _ := newWatchFixture(t)

	ctx := context.WithValue(context.Background(), handler.ClientIDKey, "ghost")
	_, errResp := svc.Watch(ctx, nil)
	if errResp == nil {
		t.Fatal("expected error for unregistered client")
	}
}
