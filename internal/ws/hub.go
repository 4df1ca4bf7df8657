// Package ws streams game events to spectator websocket clients. The
// hub is broadcast-only; spectators never write game state.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"bingo-hall/internal/store"
)

const (
	writeWait     = 10 * time.Second
	clientBacklog = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Event is one spectator-feed frame.
type Event struct {
	Type         string   `json:"type"`
	HostID       string   `json:"host_id"`
	Number       int      `json:"number,omitempty"`
	NumbersDrawn []int    `json:"numbers_drawn,omitempty"`
	Players      []string `json:"players,omitempty"`
	WinnerID     string   `json:"winner_id,omitempty"`
}

type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*client]bool
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  map[*client]bool{},
	}
}

// HandleWS upgrades the request and keeps the connection until the
// client goes away. Inbound frames are drained and discarded.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, send: make(chan []byte, clientBacklog)}
	h.register(c)
	go h.writeLoop(c)
	h.readLoop(c)
}

// Broadcast fans an event out to every connected spectator. Clients
// that cannot keep up are dropped rather than blocking the caller.
func (h *Hub) Broadcast(ev Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("encode spectator event")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- raw:
		default:
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// NumberDrawn and DrawsExhausted satisfy the draw scheduler's
// Notifier interface so the hub can sit behind the same fan-out as
// the chat announcer.
func (h *Hub) NumberDrawn(_ context.Context, sess *store.Session, number int) {
	h.Broadcast(Event{
		Type:         "draw",
		HostID:       sess.HostID,
		Number:       number,
		NumbersDrawn: sess.NumbersDrawn,
	})
}

func (h *Hub) DrawsExhausted(_ context.Context, hostID string) {
	h.Broadcast(Event{Type: "draw_exhausted", HostID: hostID})
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for raw := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
