package services

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	ws "github.com/resumeiq/backend/websocket"
)

// EventStreamHandler upgrades dashboard connections and attaches them to the
// hub, which pushes every analysis event as one JSON text frame.
type EventStreamHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewEventStreamHandler(hub *ws.Hub, allowedOrigins string) *EventStreamHandler {
	return &EventStreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return CheckOrigin(r, allowedOrigins)
			},
		},
	}
}

func (h *EventStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := "anonymous"
	if user, ok := UserFromContext(r.Context()); ok {
		userID = user.ID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	slog.Info("WebSocket connection established", "user_id", userID)

	client := h.hub.RegisterClient(conn, userID)
	go client.WritePump()
	client.ReadPump()
}
