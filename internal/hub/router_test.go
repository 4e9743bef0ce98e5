package hub

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lumenwm/lumen-ipc/internal/domain/model"
	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
	"github.com/lumenwm/lumen-ipc/internal/testutil"
)

func TestNeverWatchedClientReceivesNothing(t *testing.T) {
	h, _ := newTestHub()

	silent := testutil.NewMockSubscriber("silent")
	h.AddClient(silent)

	h.Publish("view-mapped", map[string]any{"event": "view-mapped"})

	if silent.MessageCount() != 0 {
		t.Fatalf("client without a watch call received %d messages", silent.MessageCount())
	}
}

func TestFanOutMatchesSubscriptionSets(t *testing.T) {
	h, _ := newTestHub()

	mapped := testutil.NewMockSubscriber("mapped")
	focused := testutil.NewMockSubscriber("focused")
	everything := testutil.NewMockSubscriber("everything")
	h.AddClient(mapped)
	h.AddClient(focused)
	h.AddClient(everything)

	mustWatch(t, h, "mapped", []string{"view-mapped"})
	mustWatch(t, h, "focused", []string{"view-focused"})
	mustWatch(t, h, "everything", nil)

	h.Publish("view-mapped", map[string]any{"event": "view-mapped"})

	if mapped.MessageCount() != 1 {
		t.Fatalf("matching client got %d messages, want 1", mapped.MessageCount())
	}
	if focused.MessageCount() != 0 {
		t.Fatalf("non-matching client got %d messages, want 0", focused.MessageCount())
	}
	if everything.MessageCount() != 1 {
		t.Fatalf("watch-all client got %d messages, want 1", everything.MessageCount())
	}
}

func TestSendFailureDoesNotAbortDelivery(t *testing.T) {
	h, _ := newTestHub()

	broken := testutil.NewMockSubscriber("broken")
	broken.SetSendError(errors.New("connection reset"))
	healthy := testutil.NewMockSubscriber("healthy")
	h.AddClient(broken)
	h.AddClient(healthy)
	mustWatch(t, h, "broken", []string{"view-mapped"})
	mustWatch(t, h, "healthy", []string{"view-mapped"})

	h.Publish("view-mapped", map[string]any{"event": "view-mapped"})

	if healthy.MessageCount() != 1 {
		t.Fatalf("healthy client got %d messages, want 1", healthy.MessageCount())
	}
	if h.ClientCount() != 2 {
		t.Fatal("publish must not remove clients")
	}
}

func TestSignalFiringDeliversCatalogPayload(t *testing.T) {
	h, source := newTestHub()

	c := testutil.NewMockSubscriber("c")
	h.AddClient(c)
	mustWatch(t, h, "c", []string{"view-mapped"})

	source.Fire("view-mapped", ports.Signal{
		View: &model.View{ID: 42, Title: "editor", Role: model.RoleToplevel},
	})

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	var payload struct {
		Event string `json:"event"`
		View  struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"view"`
	}
	if err := json.Unmarshal(msgs[0], &payload); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if payload.Event != "view-mapped" || payload.View.ID != 42 || payload.View.Title != "editor" {
		t.Fatalf("unexpected payload: %s", msgs[0])
	}
}

func TestDetachedSignalStopsDelivery(t *testing.T) {
	h, source := newTestHub()

	c := testutil.NewMockSubscriber("c")
	h.AddClient(c)
	mustWatch(t, h, "c", []string{"view-mapped"})
	h.Disconnect("c")

	// No handler should remain; firing must reach nobody.
	source.Fire("view-mapped", ports.Signal{View: &model.View{ID: 1}})

	if c.MessageCount() != 0 {
		t.Fatalf("disconnected client received %d messages", c.MessageCount())
	}
}
