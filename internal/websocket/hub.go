// Package websocket streams bus events, chiefly newly recorded change-log
// entries, to connected browsers.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"

	"go-fridge-tracker/internal/event"
)

type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	bus    event.Bus
	logger *slog.Logger
}

func NewHub(bus event.Bus, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		bus:        bus,
		logger:     logger,
	}
}

// Run fans bus events out to clients until ctx is done. Clients that cannot
// keep up are disconnected rather than slowing the others down.
func (h *Hub) Run(ctx context.Context) {
	events, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			h.drop(client)
		case e, ok := <-events:
			if !ok {
				return
			}

			message, err := json.Marshal(e)
			if err != nil {
				h.logger.Error("failed to marshal event", "type", e.Type, "error", err)
				continue
			}

			for client := range h.clients {
				if !client.wants(e.Type) {
					continue
				}
				select {
				case client.send <- message:
				default:
					h.logger.Warn("dropping slow change feed client", "remote", client.remote)
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) closeAll() {
	for client := range h.clients {
		h.drop(client)
	}
}
