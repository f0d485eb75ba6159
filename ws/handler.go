package ws

import (
	"net/http"
	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/middleware"
	"tourbay_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	Manager  *WebSocketManager
	Realtime services.RealtimeService
}

func NewWebSocketHandler(manager *WebSocketManager, realtime services.RealtimeService) *WebSocketHandler {
	return &WebSocketHandler{
		Manager:  manager,
		Realtime: realtime,
	}
}

// ServeWS upgrades an authenticated request to a websocket connection.
// The socket starts with no subscriptions; the client must present a
// grant for each private channel it wants to join.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade error", "error", err)
		return
	}

	client := newClient(uuid.NewString(), userID, conn, h.Manager, h.Realtime)

	h.Manager.register <- client

	go client.writePump()
	go client.readPump()

	// The client needs its socket ID to request channel grants.
	client.queue(Event{
		Event: "connection:established",
		Data:  gin.H{"socket_id": client.SocketID},
	})
}
