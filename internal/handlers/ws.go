package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/guestlink/newsletter-backend/internal/ws"
	"github.com/guestlink/newsletter-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Guest views are served from the property captive portal; origin
	// enforcement happens at the edge.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsHandlers struct {
	Hub *ws.Hub
}

func NewWSHandlers(deps *Deps) *wsHandlers {
	return &wsHandlers{Hub: deps.Hub}
}

// Serve upgrades the connection and attaches it to the hub. The client
// immediately starts receiving document updates as they are published.
func (h *wsHandlers) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromContext(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}
	ws.NewClient(h.Hub, conn).Start()
}
