// Package websocket implements the client-facing transport. Each
// connection carries request/response command traffic and the event
// stream for that client's subscription set, multiplexed over one
// socket.
//
// Message flow:
//   - Incoming: WebSocket → readPump → CommandHandler → response frame
//   - Outgoing: hub fan-out → Client.Send() → writePump → WebSocket
//
// Send() is safe from any goroutine, Close() is safe to call more than
// once, and each JSON document is written as its own text frame.
package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
)

// Client represents one WebSocket connection. It implements
// ports.Subscriber, so the hub delivers events straight to the
// connection's send queue.
type Client struct {
	id              string
	conn            *websocket.Conn
	send            chan []byte
	done            chan struct{}
	commandHandler  CommandHandler
	onClose         func(id string)
	maxMessageBytes int64

	mu     sync.Mutex
	closed bool
}

var _ ports.Subscriber = (*Client)(nil)

// NewClient creates a client for an upgraded connection.
func NewClient(conn *websocket.Conn, maxMessageBytes int64, commandHandler CommandHandler, onClose func(id string)) *Client {
	if maxMessageBytes <= 0 {
		maxMessageBytes = defaultMaxMessageSize
	}
	return &Client{
		id:              uuid.New().String(),
		conn:            conn,
		send:            make(chan []byte, sendBufferSize),
		done:            make(chan struct{}),
		commandHandler:  commandHandler,
		onClose:         onClose,
		maxMessageBytes: maxMessageBytes,
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() string {
	return c.id
}

// Start starts the client's read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// Send queues a message for delivery. A full queue drops the message
// rather than blocking the emitter.
func (c *Client) Send(message []byte) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ports.ErrSubscriberClosed
	}
	c.mu.Unlock()

	select {
	case c.send <- message:
		return nil
	default:
		log.Warn().Str("client_id", c.id).Msg("client send queue full, dropping message")
		return nil
	}
}

// Close shuts the connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.done)
	return nil
}

// Done returns a channel closed when the client has shut down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// readPump reads command frames and writes each handler response back
// onto the send queue.
func (c *Client) readPump() {
	defer func() {
		_ = c.Close()
		_ = c.conn.Close()
		if c.onClose != nil {
			c.onClose(c.id)
		}
	}()

	c.conn.SetReadLimit(c.maxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("websocket read error")
			}
			return
		}

		if c.commandHandler == nil {
			continue
		}
		if resp := c.commandHandler(context.Background(), c.id, message); resp != nil {
			_ = c.Send(resp)
		}
	}
}

// writePump drains the send queue onto the connection and keeps the
// ping/pong cycle alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return

		case message, ok := <-c.send:
			if !ok {
				return
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("client_id", c.id).Msg("write error")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("client_id", c.id).Msg("ping error")
				return
			}
		}
	}
}
