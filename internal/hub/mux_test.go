package hub

import (
	"strings"
	"testing"

	"github.com/lumenwm/lumen-ipc/internal/catalog"
	"github.com/lumenwm/lumen-ipc/internal/compositor/memory"
	"github.com/lumenwm/lumen-ipc/internal/domain/model"
	"github.com/lumenwm/lumen-ipc/internal/testutil"
)

// The hub is the output lifecycle listener the compositor state drives.
var _ memory.OutputListener = (*Hub)(nil)

func newTestHub() (*Hub, *testutil.RecordingSource) {
	source := testutil.NewRecordingSource()
	return New(catalog.Default(), source), source
}

func TestWatchAttachesSignalOnce(t *testing.T) {
	h, source := newTestHub()

	c1 := testutil.NewMockSubscriber("c1")
	c2 := testutil.NewMockSubscriber("c2")
	h.AddClient(c1)
	h.AddClient(c2)

	if _, err := h.Watch("c1", []string{"view-mapped"}); err != nil {
		t.Fatalf("watch c1: %v", err)
	}
	if got := source.GlobalCount("view-mapped"); got != 1 {
		t.Fatalf("expected 1 global connection after first watcher, got %d", got)
	}

	if _, err := h.Watch("c2", []string{"view-mapped"}); err != nil {
		t.Fatalf("watch c2: %v", err)
	}
	if got := source.GlobalCount("view-mapped"); got != 1 {
		t.Fatalf("expected connection to stay at 1 for second watcher, got %d", got)
	}
	if got := h.RefCount("view-mapped"); got != 2 {
		t.Fatalf("expected refcount 2, got %d", got)
	}
}

func TestDetachOnLastRelease(t *testing.T) {
	h, source := newTestHub()

	c1 := testutil.NewMockSubscriber("c1")
	c2 := testutil.NewMockSubscriber("c2")
	h.AddClient(c1)
	h.AddClient(c2)
	mustWatch(t, h, "c1", []string{"view-focused"})
	mustWatch(t, h, "c2", []string{"view-focused"})

	h.Disconnect("c1")
	if got := source.GlobalCount("view-focused"); got != 1 {
		t.Fatalf("expected connection to survive first disconnect, got %d", got)
	}

	h.Disconnect("c2")
	if got := source.GlobalCount("view-focused"); got != 0 {
		t.Fatalf("expected connection dropped after last disconnect, got %d", got)
	}
	if h.Live("view-focused") {
		t.Fatal("event should not be live with no watchers")
	}
}

func TestPerOutputAttachmentFollowsOutputs(t *testing.T) {
	h, source := newTestHub()

	out1 := &model.Output{ID: 1, Name: "DP-1"}
	out2 := &model.Output{ID: 2, Name: "DP-2"}
	h.OutputAdded(out1)

	c := testutil.NewMockSubscriber("c")
	h.AddClient(c)
	mustWatch(t, h, "c", []string{"view-sticky"})

	if got := source.OutputCount("view-sticky", 1); got != 1 {
		t.Fatalf("expected attachment on existing output, got %d", got)
	}

	// A live subscription is replayed onto outputs that appear later.
	h.OutputAdded(out2)
	if got := source.OutputCount("view-sticky", 2); got != 1 {
		t.Fatalf("expected attachment replayed on new output, got %d", got)
	}

	h.OutputRemoved(out2)
	if got := source.OutputCount("view-sticky", 2); got != 0 {
		t.Fatalf("expected attachment dropped with output, got %d", got)
	}
	if got := source.OutputCount("view-sticky", 1); got != 1 {
		t.Fatalf("expected surviving output untouched, got %d", got)
	}
}

func TestOutputRemovedDeliveredBeforeDetach(t *testing.T) {
	h, _ := newTestHub()

	out := &model.Output{ID: 7, Name: "HDMI-1"}
	h.OutputAdded(out)

	c := testutil.NewMockSubscriber("c")
	h.AddClient(c)
	mustWatch(t, h, "c", []string{"output-removed"})

	h.OutputRemoved(out)

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if !strings.Contains(string(msgs[0]), `"event":"output-removed"`) {
		t.Fatalf("unexpected payload: %s", msgs[0])
	}
}

func TestOutputAddedDeliveredToWatchers(t *testing.T) {
	h, _ := newTestHub()

	c := testutil.NewMockSubscriber("c")
	h.AddClient(c)
	mustWatch(t, h, "c", []string{"output-added"})

	h.OutputAdded(&model.Output{ID: 3, Name: "eDP-1"})

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if !strings.Contains(string(msgs[0]), `"event":"output-added"`) {
		t.Fatalf("unexpected payload: %s", msgs[0])
	}
}

func TestLifecycleEventsHaveNoSignalAttachment(t *testing.T) {
	h, source := newTestHub()

	c := testutil.NewMockSubscriber("c")
	h.AddClient(c)
	mustWatch(t, h, "c", []string{"output-added", "output-removed"})

	if got := source.ConnCount(); got != 0 {
		t.Fatalf("lifecycle events must not connect signals, got %d connections", got)
	}
}

func TestReleaseUnderflowPanics(t *testing.T) {
	h, _ := newTestHub()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on refcount underflow")
		}
	}()
	h.decrementLocked("view-mapped")
}

func mustWatch(t *testing.T, h *Hub, clientID string, names []string) []string {
	t.Helper()
	resolved, err := h.Watch(clientID, names)
	if err != nil {
		t.Fatalf("watch %s: %v", clientID, err)
	}
	return resolved
}
