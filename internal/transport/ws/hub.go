package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Event names pushed to clients.
const (
	EventPopup = "popup"
)

// Message is the WebSocket envelope format.
type Message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents one client listening to a session.
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage targets every connection of one session.
type BroadcastMessage struct {
	SessionID string
	Message   *Message
}

// Hub manages WebSocket connections grouped by session. All state changes go
// through the run loop; public methods only push onto channels.
type Hub struct {
	conns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// NewHub creates the hub and starts its run loop.
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SessionID] == nil {
				h.conns[conn.SessionID] = make(map[*Connection]bool)
			}
			h.conns[conn.SessionID][conn] = true
			log.Printf("Client connected to session %s", conn.SessionID)
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.conns[conn.SessionID]; ok && clients[conn] {
				delete(clients, conn)
				close(conn.Send)
				if len(clients) == 0 {
					delete(h.conns, conn.SessionID)
				}
				log.Printf("Client disconnected from session %s", conn.SessionID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Emit sends an event to every client of the session (implements
// service.Broadcaster).
func (h *Hub) Emit(sessionID, event string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Event:   event,
			Payload: data,
		},
	}
}
