// Package ws pushes newsletter document updates to connected guest views so
// an already-open page refreshes without polling.
package ws

import (
	"context"
	"sync"

	"github.com/guestlink/newsletter-backend/internal/models"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

const (
	// MessageTypeDocument carries the full newsletter document.
	MessageTypeDocument = "document"
	MessageTypePing     = "ping"
	MessageTypePong     = "pong"
)

// Message is the wire envelope for hub-to-client traffic.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub maintains the set of connected clients and fans document updates out to
// them. Slow clients are dropped rather than allowed to stall the rest.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 64),
	}
}

// Run processes client lifecycle and broadcast events until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	log := logger.FromContext(ctx)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Info("guest view connected", "total_clients", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Info("guest view disconnected", "total_clients", total)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					delete(h.clients, client)
					close(client.send)
					log.Warn("dropping slow guest view")
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Info("websocket hub stopped")
			return
		}
	}
}

// BroadcastDocument queues a document update for every connected client. The
// hub queue is bounded; under sustained backpressure the newest update wins
// and the stale one is dropped, since each message carries the full document.
func (h *Hub) BroadcastDocument(doc models.NewsletterDocument) {
	msg := Message{Type: MessageTypeDocument, Data: doc}
	select {
	case h.broadcast <- msg:
	default:
		select {
		case <-h.broadcast:
		default:
		}
		select {
		case h.broadcast <- msg:
		default:
		}
	}
}

// ClientCount reports the number of connected guest views.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
