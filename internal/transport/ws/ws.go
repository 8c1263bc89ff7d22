package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/alanyang/listingcraft/internal/domain/event"
	"github.com/alanyang/listingcraft/internal/metrics"
	"github.com/alanyang/listingcraft/internal/transport/authn"
)

const writeWait = 5 * time.Second

// client serialises writes; gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans domain events out to the browser sessions of the user they belong to.
type Hub struct {
	upgrader websocket.Upgrader
	clients  map[uuid.UUID]map[*client]struct{}
	mu       sync.RWMutex
}

// NewHub returns a Hub. An empty allowedOrigins list accepts any origin.
func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{clients: make(map[uuid.UUID]map[*client]struct{})}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Register mounts the websocket endpoint. The group must run authn.RequireSession.
func (h *Hub) Register(rg *gin.RouterGroup) {
	rg.GET("", h.handleWS)
}

func (h *Hub) handleWS(c *gin.Context) {
	u, ok := authn.User(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	cl := &client{conn: conn}
	h.add(u.ID, cl)
	defer func() {
		h.remove(u.ID, cl)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) add(userID uuid.UUID, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[userID] = set
	}
	set[cl] = struct{}{}
	metrics.WebsocketClients.Inc()
}

func (h *Hub) remove(userID uuid.UUID, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[userID]
	if _, ok := set[cl]; !ok {
		return
	}
	delete(set, cl)
	if len(set) == 0 {
		delete(h.clients, userID)
	}
	metrics.WebsocketClients.Dec()
}

// Clients reports how many connections userID currently has open.
func (h *Hub) Clients(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends e to every connection owned by e.UserID. Events for users with
// no open connection are dropped.
func (h *Hub) Publish(e event.Event) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[e.UserID]))
	for cl := range h.clients[e.UserID] {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("websocket publish marshal failed", "error", err)
		return
	}

	for _, cl := range targets {
		if err := cl.write(data); err != nil {
			slog.Warn("websocket write failed", "user_id", e.UserID, "error", err)
		}
	}
}
