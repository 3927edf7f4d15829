package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kalshiwhale/tracker/internal/feed"
	"github.com/kalshiwhale/tracker/internal/model"
)

// WebSocket frame types sent to dashboard clients.
const (
	msgInitialData  = "initial_data"
	msgMarketUpdate = "market_update"
	msgWhaleAlerts  = "whale_alerts"
	msgHeartbeat    = "heartbeat"
)

const clientSendBuffer = 16

// wsMessage is the envelope for all frames pushed to clients.
type wsMessage struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans snapshot updates out to connected WebSocket clients. New clients
// get the latest snapshot replayed as an initial_data frame; all clients get
// periodic heartbeats so dead connections are detected and pruned.
type Hub struct {
	store     *feed.Store
	alertsCfg feed.AlertsConfig
	heartbeat time.Duration
	logger    *slog.Logger
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// NewHub creates a Hub reading initial data from store.
func NewHub(store *feed.Store, alertsCfg feed.AlertsConfig, heartbeat time.Duration, allowedOrigins []string, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}

	return &Hub{
		store:     store,
		alertsCfg: alertsCfg,
		heartbeat: heartbeat,
		logger:    logger,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowedOrigins) == 0 {
					return true
				}
				for _, o := range allowedOrigins {
					if o == origin {
						return true
					}
				}
				return false
			},
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// Run emits heartbeat frames until ctx is cancelled, then closes all
// connections.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.broadcast(msgHeartbeat, map[string]any{
				"connections": h.ConnectionCount(),
			})
		}
	}
}

// ServeWS upgrades the request and services the connection until it drops.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &wsClient{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}
	h.register(c)

	// Replay the latest snapshot so the client renders immediately.
	if snap, _ := h.store.Current(); snap != nil {
		if frame, err := marshalFrame(msgInitialData, feed.Markets(snap)); err == nil {
			h.trySend(c, frame)
		}
	}

	go c.writeLoop()
	h.readLoop(c)
}

// BroadcastSnapshot pushes a market_update frame for snap, plus a
// whale_alerts frame when any rollup carries whale activity.
func (h *Hub) BroadcastSnapshot(snap *model.Snapshot) {
	h.broadcast(msgMarketUpdate, feed.Markets(snap))

	alerts := feed.Alerts(snap, h.alertsCfg)
	if alerts.Count > 0 {
		h.broadcast(msgWhaleAlerts, alerts)
	}
}

// ConnectionCount returns the number of registered clients.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("websocket connected", "connections", count)
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info("websocket disconnected", "connections", count)
	}
}

// trySend enqueues a frame for one client under the registration lock.
// Unregistering closes the send channel, so an unguarded send could race a
// concurrent shutdown and panic.
func (h *Hub) trySend(c *wsClient, frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

func (h *Hub) broadcast(msgType string, data any) {
	frame, err := marshalFrame(msgType, data)
	if err != nil {
		h.logger.Error("marshal websocket frame", "type", msgType, "error", err)
		return
	}

	h.mu.Lock()
	var stalled []*wsClient
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			// Client is not draining its buffer; drop it.
			stalled = append(stalled, c)
		}
	}
	h.mu.Unlock()

	for _, c := range stalled {
		h.unregister(c)
		c.conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(time.Second),
		)
		h.unregister(c)
		c.conn.Close()
	}
}

// readLoop consumes inbound frames (clients do not send meaningful data)
// and unregisters the client when the connection drops.
func (h *Hub) readLoop(c *wsClient) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(1024)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writeLoop() {
	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			c.conn.Close()
			return
		}
	}
}

func marshalFrame(msgType string, data any) ([]byte, error) {
	return json.Marshal(wsMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}
