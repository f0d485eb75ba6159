package ws

import (
	"encoding/json"
	"time"
	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/services"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 256
)

type IncomingWSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type subscribePayload struct {
	Channel string `json:"channel"`
	Auth    string `json:"auth"`
}

type Client struct {
	SocketID string
	UserID   string
	Conn     *websocket.Conn
	Send     chan Event

	Manager  *WebSocketManager
	Realtime services.RealtimeService

	// done is closed by the hub on unregister. Send is never closed;
	// pumps and frame handlers watch done instead, so a frame arriving
	// after a drop cannot hit a closed channel.
	done chan struct{}
}

func newClient(socketID, userID string, conn *websocket.Conn, manager *WebSocketManager, realtime services.RealtimeService) *Client {
	return &Client{
		SocketID: socketID,
		UserID:   userID,
		Conn:     conn,
		Send:     make(chan Event, sendBufferSize),
		Manager:  manager,
		Realtime: realtime,
		done:     make(chan struct{}),
	}
}

// queue hands an event to the write pump. It reports false when the
// client is already unregistered or its buffer is full.
func (c *Client) queue(event Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.Send <- event:
		return true
	default:
		return false
	}
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", "socket_id", c.SocketID, "error", err)
			}
			break
		}

		var msg IncomingWSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Warn("websocket frame parse error", "socket_id", c.SocketID, "error", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case event := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteJSON(event); err != nil {
				logger.Warn("websocket write error", "socket_id", c.SocketID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg IncomingWSMessage) {
	switch msg.Event {

	case "subscribe":
		var payload subscribePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.sendError(payload.Channel, "Invalid subscribe payload")
			return
		}
		if !c.Realtime.ValidateGrant(c.SocketID, payload.Channel, payload.Auth) {
			logger.Warn("websocket subscription rejected",
				"socket_id", c.SocketID, "channel", payload.Channel)
			c.sendError(payload.Channel, "Subscription rejected")
			return
		}
		c.Manager.Subscribe(c, payload.Channel)
		c.queue(Event{
			Channel: payload.Channel,
			Event:   "subscription:succeeded",
		})

	case "unsubscribe":
		var payload subscribePayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		c.Manager.Unsubscribe(c, payload.Channel)

	default:
		logger.Warn("websocket unhandled event", "event", msg.Event)
	}
}

func (c *Client) sendError(channelName, message string) {
	c.queue(Event{Channel: channelName, Event: "subscription:error", Data: message})
}
