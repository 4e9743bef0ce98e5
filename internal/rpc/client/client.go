// Package client implements a WebSocket client for the daemon's
// command and event protocol. It backs the call and listen
// subcommands and the integration tests.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
)

const defaultCallTimeout = 10 * time.Second

// Client is a connection to the daemon. Commands run synchronously;
// events received between a request and its response are buffered and
// handed to the event callback, never dropped.
type Client struct {
	conn *websocket.Conn

	mu      sync.Mutex
	onEvent func(name string, payload []byte)
	closed  bool
}

// Dial connects to the daemon at a ws:// or wss:// URL.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// OnEvent sets the callback invoked for every event frame. Must be set
// before Listen and before any Call that may interleave with events.
func (c *Client) OnEvent(fn func(name string, payload []byte)) {
	c.mu.Lock()
	c.onEvent = fn
	c.mu.Unlock()
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return c.conn.Close()
}

// Call sends one command and waits for its response. Event frames
// arriving first are routed to the event callback.
func (c *Client) Call(ctx context.Context, method string, data any) (json.RawMessage, error) {
	req := map[string]any{"method": method}
	if data != nil {
		req["data"] = data
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	deadline := time.Now().Add(defaultCallTimeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}

	_ = c.conn.SetWriteDeadline(deadline)
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	_ = c.conn.SetReadDeadline(deadline)
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("read response for %s: %w", method, err)
		}
		if name := gjson.GetBytes(frame, "event"); name.Exists() {
			c.dispatchEvent(name.String(), frame)
			continue
		}
		if errMsg := gjson.GetBytes(frame, "error"); errMsg.Exists() {
			return frame, fmt.Errorf("%s: %s", method, errMsg.String())
		}
		return frame, nil
	}
}

// Watch subscribes the connection to the given event names. An empty
// list subscribes to everything.
func (c *Client) Watch(ctx context.Context, events []string) error {
	var data any
	if len(events) > 0 {
		data = map[string]any{"events": events}
	}
	_, err := c.Call(ctx, "events/watch", data)
	return err
}

// Listen blocks reading event frames until the context is cancelled or
// the connection drops. Call Watch first.
func (c *Client) Listen(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Time{})
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		if name := gjson.GetBytes(frame, "event"); name.Exists() {
			c.dispatchEvent(name.String(), frame)
		}
	}
}

func (c *Client) dispatchEvent(name string, frame []byte) {
	c.mu.Lock()
	fn := c.onEvent
	c.mu.Unlock()
	if fn != nil {
		fn(name, frame)
	}
}
