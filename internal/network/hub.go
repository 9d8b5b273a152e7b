// Package network distributes live sensor ticks to WebSocket clients.
// Each client subscribes to exactly one farm; the hub keeps a room per
// farm and fans every tick out to that room only.
package network

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/agrinexus/farm-twin/internal/engine"
	"github.com/agrinexus/farm-twin/internal/platform/logger"
	"github.com/agrinexus/farm-twin/internal/platform/metrics"
)

type farmMessage struct {
	farmID  string
	payload []byte
}

// Hub maintains the set of active clients grouped by farm and
// broadcasts tick payloads to them.
type Hub struct {
	rooms      map[string]map[*Client]bool
	broadcast  chan farmMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
}

// NewHub initializes a new WebSocket Hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan farmMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
	}
}

// Run starts the Hub's main loop to handle client connections and
// broadcasts. Call in a goroutine; it returns on context cancellation.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.farmID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.farmID] = room
			}
			room[client] = true
			h.mu.Unlock()
			metrics.Get().WSConnect()
			h.logger.Info("Client " + client.id + " connected to farm " + client.farmID)
		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.farmID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					metrics.Get().WSDisconnect()
					h.logger.Info("Client " + client.id + " disconnected from farm " + client.farmID)
				}
				if len(room) == 0 {
					delete(h.rooms, client.farmID)
				}
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[message.farmID] {
				select {
				case client.send <- message.payload:
					metrics.Get().WSMessage()
				default:
					// Slow reader: drop it rather than stall the room.
					close(client.send)
					delete(h.rooms[message.farmID], client)
					metrics.Get().WSDisconnect()
					metrics.Get().WSDropped()
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for farmID, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, farmID)
	}
}

// BroadcastTick serializes a tick payload and routes it to the farm's
// room. It never blocks the tick loop: if the hub's queue is full the
// tick is skipped, the next one carries fresher data anyway.
func (h *Hub) BroadcastTick(payload engine.TickPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to serialize tick payload for WebSocket broadcast: " + err.Error())
		return
	}
	select {
	case h.broadcast <- farmMessage{farmID: payload.FarmID, payload: data}:
	default:
		h.logger.Warn("WebSocket broadcast queue full, dropping tick for farm " + payload.FarmID)
	}
}

// ClientCount reports the connected clients for a farm.
func (h *Hub) ClientCount(farmID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[farmID])
}
