package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The analysis feed is read-only telemetry; cross-origin viewers are fine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProgressEvent is one message on the analysis feed.
type ProgressEvent struct {
	Event    string `json:"event"` // "depth", "done"
	JobID    string `json:"job_id"`
	Depth    int    `json:"depth"`
	Score    int    `json:"score"`
	BestMove string `json:"best_move"`
	Nodes    uint64 `json:"nodes"`
	TimeMs   int64  `json:"time_ms"`
}

// Hub fans analysis progress out to connected WebSocket clients.
type Hub struct {
	log       zerolog.Logger
	mu        sync.Mutex
	clients   map[*wsClient]struct{}
	broadcast chan ProgressEvent
}

type wsClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:       log,
		clients:   make(map[*wsClient]struct{}),
		broadcast: make(chan ProgressEvent, 64),
	}
}

// Run pumps broadcasts to clients until done closes.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.log.Error().Err(err).Msg("marshal progress event")
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow consumer; drop the event rather than block the feed.
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event, dropping it if the feed is saturated.
func (h *Hub) Publish(event ProgressEvent) {
	select {
	case h.broadcast <- event:
	default:
	}
}

// ServeWS upgrades the request and registers the client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &wsClient{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()
}

func (h *Hub) remove(client *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

func (c *wsClient) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			c.hub.remove(c)
			return
		}
	}
}

// readPump discards inbound messages; it exists to detect disconnects.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
