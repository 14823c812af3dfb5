package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// Hub maps player handles to live connections.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "ws-hub"),
		clients: make(map[string]*client),
	}
}

// Send queues event for the connection behind handle. It never blocks.
func (that *Hub) Send(handle string, event entity.Event) {
	that.mu.RLock()
	c, ok := that.clients[handle]
	that.mu.RUnlock()

	if !ok {
		that.logger.Debug("connection not found, dropping event", "playerID", handle, "action", event.Action)
		return
	}

	if !c.enqueue(event) {
		that.logger.Debug("connection is closing, event dropped", "playerID", handle, "action", event.Action)
	}
}

// Len returns the number of registered connections.
func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// CloseAll asks every connection to close. Used on shutdown.
func (that *Hub) CloseAll() {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, c := range that.clients {
		c.close()
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Hub) unregister(handle string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.clients, handle)
}
