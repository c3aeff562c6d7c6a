package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/config"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/domain"
	pkglog "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

// DisconnectHandler is called when a client disconnects.
type DisconnectHandler func(*Client)

// Client represents a connected WebSocket client.
type Client struct {
	ID                string
	Hub               *Hub
	Conn              *websocket.Conn
	Send              chan []byte
	Session           *domain.Session
	disconnectHandler DisconnectHandler
}

// NewClient creates a client for an upgraded connection.
func NewClient(id string, h *Hub, conn *websocket.Conn, session *domain.Session) *Client {
	return &Client{
		ID:      id,
		Hub:     h,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Session: session,
	}
}

// SetDisconnectHandler sets the handler to be called on disconnect.
func (c *Client) SetDisconnectHandler(handler DisconnectHandler) {
	c.disconnectHandler = handler
}

// Hub manages all WebSocket connections. It owns transport-level room
// membership; the per-client index keeps leave and disconnect cleanup
// proportional to the rooms that client actually joined.
type Hub struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client // roomKey -> clientID -> client
	membership map[string]map[string]struct{} // clientID -> roomKeys
	register   chan *Client
	unregister chan *Client
	broadcast  chan *RoomMessage
	mu         sync.RWMutex
	config     config.WebSocketConfig
}

// RoomMessage is a message to be broadcast to a room.
type RoomMessage struct {
	RoomID  string
	Message []byte
	Exclude string // Client ID to exclude from broadcast
}

// NewHub creates a new Hub.
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		membership: make(map[string]map[string]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *RoomMessage, 256),
		config:     cfg,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			pkglog.L().Info().Str(pkglog.FieldClientID, client.ID).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				for roomKey := range h.membership[client.ID] {
					h.dropMember(roomKey, client.ID)
				}
				delete(h.membership, client.ID)
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			pkglog.L().Info().Str(pkglog.FieldClientID, client.ID).Msg("client unregistered")

		case msg := <-h.broadcast:
			h.mu.RLock()
			if roomClients, ok := h.rooms[msg.RoomID]; ok {
				for clientID, client := range roomClients {
					if clientID == msg.Exclude {
						continue
					}
					select {
					case client.Send <- msg.Message:
					default:
						// Client's send buffer is full
						go h.removeClient(client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom adds a client to a room. It reports whether the membership
// is new; a repeated join of the same room is a no-op.
func (h *Hub) JoinRoom(client *Client, roomKey string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.membership[client.ID][roomKey]; ok {
		return false
	}
	if _, ok := h.rooms[roomKey]; !ok {
		h.rooms[roomKey] = make(map[string]*Client)
	}
	h.rooms[roomKey][client.ID] = client
	if _, ok := h.membership[client.ID]; !ok {
		h.membership[client.ID] = make(map[string]struct{})
	}
	h.membership[client.ID][roomKey] = struct{}{}

	pkglog.L().Info().Str(pkglog.FieldClientID, client.ID).Str(pkglog.FieldRoomID, roomKey).Msg("client joined room")
	return true
}

// LeaveRoom removes a client from a room.
func (h *Hub) LeaveRoom(client *Client, roomKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropMember(roomKey, client.ID)
	if members, ok := h.membership[client.ID]; ok {
		delete(members, roomKey)
		if len(members) == 0 {
			delete(h.membership, client.ID)
		}
	}
	pkglog.L().Info().Str(pkglog.FieldClientID, client.ID).Str(pkglog.FieldRoomID, roomKey).Msg("client left room")
}

// dropMember removes a client from a room's member set and collects the
// room when it empties. Callers hold h.mu.
func (h *Hub) dropMember(roomKey, clientID string) {
	if roomClients, ok := h.rooms[roomKey]; ok {
		delete(roomClients, clientID)
		if len(roomClients) == 0 {
			delete(h.rooms, roomKey)
		}
	}
}

// BroadcastToRoom sends a message to all clients in a room.
func (h *Hub) BroadcastToRoom(roomKey string, message interface{}, exclude string) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.broadcast <- &RoomMessage{
		RoomID:  roomKey,
		Message: data,
		Exclude: exclude,
	}
	return nil
}

// SendToClient sends a message to a specific client.
func (h *Hub) SendToClient(clientID string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	h.mu.RLock()
	client, ok := h.clients[clientID]
	h.mu.RUnlock()

	if !ok {
		return nil
	}

	select {
	case client.Send <- data:
	default:
		go h.removeClient(client)
	}
	return nil
}

// RoomClientCount returns the number of clients currently in a room.
func (h *Hub) RoomClientCount(roomKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomKey])
}

func (h *Hub) removeClient(client *Client) {
	h.unregister <- client
}

// ReadPump pumps messages from the WebSocket connection to the hub.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		// Call disconnect handler before unregistering
		if c.disconnectHandler != nil {
			c.disconnectHandler(c)
		}
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Hub.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Hub.config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Hub.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				pkglog.L().Error().Err(err).Msg("websocket error")
			}
			break
		}

		handler(c, message)
	}
}

// WritePump pumps messages from the hub to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.Hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.config.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage sends a message directly to the client.
func (c *Client) SendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	select {
	case c.Send <- data:
	default:
		return nil
	}
	return nil
}
