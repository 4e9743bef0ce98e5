package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lumenwm/lumen-ipc/internal/rpc/message"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	r := NewRegistry()
	r.Register("test/echo", func(ctx context.Context, data json.RawMessage) (any, *message.Error) {
		resp := message.Ok()
		resp["echo"] = json.RawMessage(data)
		return resp, nil
	})
	r.Register("test/fail", func(ctx context.Context, data json.RawMessage) (any, *message.Error) {
		return nil, message.ErrNotFound("no such view")
	})
	r.Register("test/nil", func(ctx context.Context, data json.RawMessage) (any, *message.Error) {
		return nil, nil
	})
	return NewDispatcher(r)
}

func TestDispatchMethodNotFound(t *testing.T) {
	d := newTestDispatcher(t)

	resp := d.Dispatch(context.Background(), &message.Request{Method: "test/missing"})
	env, ok := resp.(map[string]any)
	if !ok {
		t.Fatalf("expected envelope map, got %T", resp)
	}
	if env["result"] != "error" || env["error"] != "no such method: test/missing" {
		t.Fatalf("unexpected envelope: %v", env)
	}
}

func TestDispatchHandlerError(t *testing.T) {
	d := newTestDispatcher(t)

	resp := d.Dispatch(context.Background(), &message.Request{Method: "test/fail"})
	env := resp.(map[string]any)
	if env["result"] != "error" || env["error"] != "no such view" {
		t.Fatalf("unexpected envelope: %v", env)
	}
}

func TestDispatchNilResultBecomesOk(t *testing.T) {
	d := newTestDispatcher(t)

	resp := d.Dispatch(context.Background(), &message.Request{Method: "test/nil"})
	env := resp.(map[string]any)
	if env["result"] != "ok" {
		t.Fatalf("unexpected envelope: %v", env)
	}
}

func TestDispatchBytesRoundTrip(t *testing.T) {
	d := newTestDispatcher(t)

	out := d.DispatchBytes(context.Background(), []byte(`{"method":"test/echo","data":{"id":7}}`))

	var decoded struct {
		Result string          `json:"result"`
		Echo   json.RawMessage `json:"echo"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if decoded.Result != "ok" || string(decoded.Echo) != `{"id":7}` {
		t.Fatalf("unexpected response: %s", out)
	}
}

func TestDispatchBytesMalformedRequest(t *testing.T) {
	d := newTestDispatcher(t)

	for _, raw := range []string{`not json`, `{"data":{}}`} {
		out := d.DispatchBytes(context.Background(), []byte(raw))
		var decoded map[string]any
		if err := json.Unmarshal(out, &decoded); err != nil {
			t.Fatalf("response must be valid JSON, got %s", out)
		}
		if decoded["result"] != "error" {
			t.Fatalf("expected error envelope for %q, got %s", raw, out)
		}
	}
}
