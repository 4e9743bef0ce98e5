package websocket

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/lumenwm/lumen-ipc/internal/domain/ports"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 15 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 90 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer when no limit is
	// configured.
	defaultMaxMessageSize = 512 * 1024

	// Send buffer size per client. Sized for event bursts such as a
	// scene reload remapping every view.
	sendBufferSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The daemon binds loopback by default; origin checks add
		// nothing for non-browser IPC clients.
		return true
	},
}

// CommandHandler processes one command frame and returns the response
// frame, or nil for no response.
type CommandHandler func(ctx context.Context, clientID string, message []byte) []byte

// ClientHub is the part of the event hub the server drives: client
// registration on connect and teardown on disconnect.
type ClientHub interface {
	AddClient(sub ports.Subscriber)
	Disconnect(clientID string)
}

// Server accepts WebSocket connections and wires each one into the
// command dispatcher and the event hub.
type Server struct {
	addr            string
	server          *http.Server
	commandHandler  CommandHandler
	hub             ClientHub
	maxMessageBytes int64

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewServer creates a server listening on host:port. Incoming frames
// larger than maxMessageBytes close the offending connection; zero
// falls back to the built-in default.
func NewServer(host string, port int, maxMessageBytes int64, commandHandler CommandHandler, hub ClientHub) *Server {
	if maxMessageBytes <= 0 {
		maxMessageBytes = defaultMaxMessageSize
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	s := &Server{
		addr:            addr,
		commandHandler:  commandHandler,
		hub:             hub,
		maxMessageBytes: maxMessageBytes,
		clients:         make(map[string]*Client),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWebSocket)

	s.server = &http.Server{
		Addr:    addr,
		Handler: mux,
		// No ReadTimeout/WriteTimeout: those apply to the underlying
		// HTTP connection and would cut long-lived sockets. The pumps
		// manage their own deadlines.
	}

	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Start starts serving in the background.
func (s *Server) Start() error {
	log.Info().Str("addr", s.addr).Msg("websocket server starting")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("websocket server error")
		}
	}()

	return nil
}

// Stop closes every client and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("websocket server stopping")

	s.mu.Lock()
	for _, client := range s.clients {
		_ = client.Close()
	}
	s.clients = make(map[string]*Client)
	s.mu.Unlock()

	return s.server.Shutdown(ctx)
}

// handleWebSocket upgrades the connection and registers the client
// with the hub. The client receives no events until it watches.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade connection")
		return
	}

	client := NewClient(conn, s.maxMessageBytes, s.commandHandler, func(id string) {
		if s.hub != nil {
			s.hub.Disconnect(id)
		}
		s.removeClient(id)
	})

	s.mu.Lock()
	s.clients[client.ID()] = client
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.AddClient(client)
	}

	log.Info().
		Str("client_id", client.ID()).
		Str("remote_addr", conn.RemoteAddr().String()).
		Msg("client connected")

	client.Start()
}

// removeClient removes a client from the server.
func (s *Server) removeClient(id string) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
	log.Info().Str("client_id", id).Msg("client disconnected")
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
