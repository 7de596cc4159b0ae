// Package inspect streams document mutations to WebSocket clients.
//
// A Hub fans messages out to every connected client. A Recorder collects
// the mutations a document reports between flushes so that each render
// pass reaches clients as one message:
//
//	hub := inspect.NewHub(inspect.WithSnapshot(currentHTML))
//	rec := hub.Record(doc)
//	defer rec.Close()
//
//	r.Render(root, tree, nil)
//	rec.Flush(pass)
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
)

// MessageType represents the type of a stream message.
type MessageType string

const (
	TypeSnapshot  MessageType = "snapshot"
	TypeMutations MessageType = "mutations"
	TypeError     MessageType = "error"
)

// Message is sent to clients via WebSocket.
type Message struct {
	Type      MessageType        `json:"type"`
	Pass      int                `json:"pass,omitempty"`
	HTML      string             `json:"html,omitempty"`
	Mutations []htmldoc.Mutation `json:"mutations,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// Option configures a Hub.
type Option func(*Hub)

// WithAllowedOrigins permits cross-origin clients from origins. Without it
// only same-origin clients may connect.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Hub) {
		if len(origins) == 0 {
			return
		}
		allowed := make(map[string]bool, len(origins))
		for _, o := range origins {
			allowed[o] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin] || sameOrigin(r, origin)
		}
	}
}

// WithLogger sets the logger for connection events.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) { h.logger = logger }
}

// WithSnapshot sets the function producing the HTML sent to each client
// when it connects.
func WithSnapshot(fn func() string) Option {
	return func(h *Hub) { h.snapshot = fn }
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages WebSocket connections of inspection clients.
type Hub struct {
	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
	snapshot func() string
}

// NewHub creates a new hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("inspect upgrade failed", "remote", req.RemoteAddr, "error", err)
		return
	}
	c := &client{conn: conn}

	if h.snapshot != nil {
		data, err := json.Marshal(Message{Type: TypeSnapshot, HTML: h.snapshot()})
		if err == nil {
			err = c.write(data)
		}
		if err != nil {
			conn.Close()
			return
		}
	}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	h.logger.Debug("inspect client connected", "remote", req.RemoteAddr)

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(c)
	h.logger.Debug("inspect client disconnected", "remote", req.RemoteAddr)
}

// Publish sends msg to all clients.
func (h *Hub) Publish(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("inspect message encoding failed", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.drop(c)
		}
	}
}

// NotifyError sends an error message to all clients.
func (h *Hub) NotifyError(err error) {
	h.Publish(Message{Type: TypeError, Error: err.Error()})
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}

func sameOrigin(r *http.Request, origin string) bool {
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
