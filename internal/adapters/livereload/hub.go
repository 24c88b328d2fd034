// Package livereload serves the output directory and pushes rebuild events
// to connected browsers over a websocket.
package livereload

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/kiln/internal/core/domain"
)

// clientBuffer is the number of pending events a client may fall behind by
// before it is dropped.
const clientBuffer = 16

type client struct {
	id   string
	send chan []byte
}

// Hub fans reload events out to connected clients.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	closed  bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

func (h *Hub) register() *client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &client{id: uuid.NewString(), send: make(chan []byte, clientBuffer)}
	if h.closed {
		close(c.send)
		return c
	}
	h.clients[c.id] = c
	return c
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.send)
	}
}

// Broadcast queues event for every client. Clients whose buffer is full are
// disconnected; the browser script reconnects and reloads.
func (h *Hub) Broadcast(event domain.ReloadEvent) {
	if event.Paths == nil {
		event.Paths = []string{}
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, id)
			close(c.send)
		}
	}
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}
