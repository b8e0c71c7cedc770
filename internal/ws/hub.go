package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Hub tracks connected clients, indexed by the user they authenticated as
// (possibly empty for anonymous listeners of broadcasts).
type Hub struct {
	clients    map[*Client]struct{}
	byUser     map[string]map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byUser:     make(map[string]map[*Client]struct{}),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			if client.userID != "" {
				set, ok := h.byUser[client.userID]
				if !ok {
					set = make(map[*Client]struct{})
					h.byUser[client.userID] = set
				}
				set[client] = struct{}{}
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("WS connected", zap.String("user_id", client.userID), zap.Int("total_clients", total))

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.removeLocked(client)
			total := len(h.clients)
			h.mutex.Unlock()
			h.logger.Debug("WS disconnected", zap.Int("total_clients", total))

		case message := <-h.broadcast:
			clients := h.snapshot()
			for _, client := range clients {
				if !client.enqueue(message) {
					h.Unregister(client)
				}
			}
			h.logger.Debug("WS broadcast", zap.Int("clients", len(clients)))
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	if set, ok := h.byUser[client.userID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.byUser, client.userID)
		}
	}
	client.closeSend()
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) snapshot() []*Client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	out := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	default:
		h.logger.Warn("WS unregister dropped", zap.String("reason", "buffer_full"))
	}
}

// Broadcast queues message for every client. It never blocks; when the
// broadcast buffer is full the message is dropped and false is returned.
func (h *Hub) Broadcast(message []byte) bool {
	if h == nil {
		return false
	}
	select {
	case h.broadcast <- message:
		return true
	default:
		h.logger.Warn("WS broadcast dropped", zap.String("reason", "buffer_full"))
		return false
	}
}

// SendTo delivers message to every connection of userID and reports whether
// at least one connection accepted it.
func (h *Hub) SendTo(userID string, message []byte) bool {
	if h == nil || userID == "" {
		return false
	}
	h.mutex.RLock()
	targets := make([]*Client, 0, len(h.byUser[userID]))
	for c := range h.byUser[userID] {
		targets = append(targets, c)
	}
	h.mutex.RUnlock()

	delivered := false
	for _, c := range targets {
		if c.enqueue(message) {
			delivered = true
		} else {
			h.Unregister(c)
		}
	}
	return delivered
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
