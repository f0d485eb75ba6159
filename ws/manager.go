package ws

import (
	"sync"
	"tourbay_backend/internal/logger"
)

// Event is the frame pushed to subscribed sockets.
type Event struct {
	Channel string      `json:"channel"`
	Event   string      `json:"event"`
	Data    interface{} `json:"data"`
}

// WebSocketManager tracks connected sockets and their channel
// subscriptions. Subscribing to a private channel requires a grant
// issued by the realtime auth endpoint, so membership checks happen
// once over HTTP and the hub only verifies the signature.
type WebSocketManager struct {
	clients  map[string]*Client
	channels map[string]map[string]*Client

	register   chan *Client
	unregister chan *Client
	publish    chan Event
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		channels:   make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan Event, 64),
	}
}

func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.SocketID] = client
			manager.mu.Unlock()
			logger.Info("websocket client registered",
				"socket_id", client.SocketID, "user_id", client.UserID,
				"total", manager.ClientCount())

		case client := <-manager.unregister:
			manager.removeClient(client)

		case event := <-manager.publish:
			manager.deliver(event)
		}
	}
}

// Publish pushes an event to every socket subscribed to the channel.
// It satisfies services.EventPublisher and never blocks the caller.
func (manager *WebSocketManager) Publish(channelName, eventName string, payload interface{}) {
	manager.publish <- Event{Channel: channelName, Event: eventName, Data: payload}
}

// Subscribe adds the client to a channel after its grant was verified.
// Clients already unregistered are ignored so a late subscribe frame
// cannot resurrect a dropped connection.
func (manager *WebSocketManager) Subscribe(client *Client, channelName string) {
	select {
	case <-client.done:
		return
	default:
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	subscribers, ok := manager.channels[channelName]
	if !ok {
		subscribers = make(map[string]*Client)
		manager.channels[channelName] = subscribers
	}
	subscribers[client.SocketID] = client
}

// Unsubscribe removes the client from a channel.
func (manager *WebSocketManager) Unsubscribe(client *Client, channelName string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.dropSubscription(client, channelName)
}

func (manager *WebSocketManager) dropSubscription(client *Client, channelName string) {
	subscribers, ok := manager.channels[channelName]
	if !ok {
		return
	}
	delete(subscribers, client.SocketID)
	if len(subscribers) == 0 {
		delete(manager.channels, channelName)
	}
}

func (manager *WebSocketManager) removeClient(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if _, ok := manager.clients[client.SocketID]; !ok {
		return
	}
	close(client.done)
	delete(manager.clients, client.SocketID)
	for channelName := range manager.channels {
		manager.dropSubscription(client, channelName)
	}
	logger.Info("websocket client unregistered",
		"socket_id", client.SocketID, "total", len(manager.clients))
}

func (manager *WebSocketManager) deliver(event Event) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	subscribers, ok := manager.channels[event.Channel]
	if !ok {
		return
	}
	for socketID, client := range subscribers {
		select {
		case client.Send <- event:
		default:
			// Slow consumer, drop the connection.
			logger.Warn("websocket send buffer full, dropping client", "socket_id", socketID)
			go func(c *Client) {
				manager.unregister <- c
			}(client)
		}
	}
}

// ClientCount returns the number of connected sockets.
func (manager *WebSocketManager) ClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

// IsSubscribed reports whether the socket is subscribed to the channel.
func (manager *WebSocketManager) IsSubscribed(socketID, channelName string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	subscribers, ok := manager.channels[channelName]
	if !ok {
		return false
	}
	_, exists := subscribers[socketID]
	return exists
}
