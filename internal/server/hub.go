package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/models"
)

const (
	defaultRefresh = 10 * time.Second
	writeWait      = 5 * time.Second
	fetchTimeout   = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type message struct {
	Type string    `json:"type"`
	Data *snapshot `json:"data"`
}

type snapshot struct {
	*models.DashboardMetrics
	Timestamp int64 `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Hub pushes executive snapshots to every connected browser.
type Hub struct {
	fetch    func(ctx context.Context) (*models.DashboardMetrics, error)
	interval time.Duration

	clientsMu sync.RWMutex
	clients   map[*client]struct{}
}

func NewHub(fetch func(ctx context.Context) (*models.DashboardMetrics, error), interval time.Duration) *Hub {
	if interval <= 0 {
		interval = defaultRefresh
	}
	return &Hub{
		fetch:    fetch,
		interval: interval,
		clients:  make(map[*client]struct{}),
	}
}

func (h *Hub) Interval() time.Duration { return h.interval }

func (h *Hub) Clients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &client{conn: conn}

	first := message{Type: "init", Data: h.snapshot(r.Context())}

	// Hold the write lock across registration so no update can overtake init.
	c.mu.Lock()
	h.clientsMu.Lock()
	h.clients[c] = struct{}{}
	h.clientsMu.Unlock()
	metrics.ActiveWebSocketConnections.Inc()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err = conn.WriteJSON(first)
	c.mu.Unlock()

	defer h.remove(c)
	if err != nil {
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.clientsMu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.clientsMu.Unlock()
	if ok {
		metrics.ActiveWebSocketConnections.Dec()
		_ = c.conn.Close()
	}
}

// Run refreshes and broadcasts on every tick until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.refresh(ctx)
		}
	}
}

func (h *Hub) refresh(ctx context.Context) {
	if h.Clients() == 0 {
		return
	}
	snap := h.snapshot(ctx)
	if snap == nil {
		return
	}
	h.broadcast(message{Type: "update", Data: snap})
}

func (h *Hub) snapshot(ctx context.Context) *snapshot {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	m, err := h.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("live refresh fetch failed")
		return nil
	}
	return &snapshot{DashboardMetrics: m, Timestamp: time.Now().Unix()}
}

func (h *Hub) broadcast(msg message) {
	h.clientsMu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.clientsMu.RUnlock()

	for _, c := range targets {
		if err := c.send(msg); err != nil {
			log.Debug().Err(err).Msg("dropping websocket client")
			h.remove(c)
		}
	}
}

func (h *Hub) closeAll() {
	h.clientsMu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.clientsMu.RUnlock()
	for _, c := range targets {
		h.remove(c)
	}
}
