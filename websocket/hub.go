package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
)

// Message types pushed to clients.
const (
	TypeNotification = "notification"
	TypePong         = "pong"
)

// Message is the envelope written to every client.
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub tracks the live connections of each user. A user may hold several.
type Hub struct {
	clients map[uint]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	stopOnce   sync.Once
	done       chan struct{}

	log *zap.Logger
	mu  sync.RWMutex
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        logger.OrNop(log).Named("ws"),
	}
}

// Run processes registrations until Stop is called.
func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case <-h.stop:
			h.closeAll()
			return
		}
	}
}

// Stop disconnects every client and ends Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("client registered", zap.Uint("user_id", c.UserID))
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(c)
}

// drop must be called with mu held.
func (h *Hub) drop(c *Client) {
	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
	close(c.send)
	h.log.Debug("client unregistered", zap.Uint("user_id", c.UserID))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.clients {
		for c := range set {
			h.drop(c)
		}
	}
}

// Connected reports how many live connections a user has.
func (h *Hub) Connected(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// SendToUser queues msg on every connection of the user. Connections whose
// buffer is full are dropped.
func (h *Hub) SendToUser(userID uint, msg *Message) int {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal message", zap.Error(err))
		return 0
	}

	var stale []*Client
	sent := 0
	h.mu.RLock()
	for c := range h.clients[userID] {
		select {
		case c.send <- data:
			sent++
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	if len(stale) > 0 {
		h.mu.Lock()
		for _, c := range stale {
			h.drop(c)
		}
		h.mu.Unlock()
		h.log.Warn("dropped slow clients", zap.Uint("user_id", userID), zap.Int("count", len(stale)))
	}
	return sent
}

// reply queues msg on a single connection if it is still registered.
func (h *Hub) reply(c *Client, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c.UserID][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// PushNotification sends a stored notification to the user's open connections.
func (h *Hub) PushNotification(userID uint, n *models.Notification) {
	h.SendToUser(userID, &Message{
		Type:      TypeNotification,
		Data:      n,
		Timestamp: time.Now(),
	})
}
