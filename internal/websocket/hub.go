package statusws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

const (
	MessageTypeStatus  = "subscription_status"
	MessageTypeRefresh = "refresh"
	MessageTypeError   = "error"
)

// Hub fans subscription status changes out to every open connection of the
// affected phone.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	phone string
	send  chan []byte

	// mu guards send against a write racing the hub closing it.
	mu     sync.Mutex
	closed bool
}

type statusReader interface {
	Status(ctx context.Context, phone string) (models.SubscriptionStatus, error)
}

type Message struct {
	Type         string `json:"type"`
	Phone        string `json:"phone,omitempty"`
	IsSubscribed *bool  `json:"is_subscribed,omitempty"`
	Error        string `json:"error,omitempty"`
	Timestamp    string `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, phone string) *Client {
	return &Client{
		hub:   hub,
		conn:  conn,
		phone: phone,
		send:  make(chan []byte, 8),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.phone]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.phone] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.phone]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				client.close()
			}
			if len(set) == 0 {
				delete(h.clients, client.phone)
			}
		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// PublishStatus queues a status change. It drops the update when the queue is
// full rather than blocking the caller.
func (h *Hub) PublishStatus(phone string, isSubscribed bool) {
	select {
	case h.broadcast <- statusMessage(phone, isSubscribed):
	default:
		log.Printf("status hub: queue full, dropping update for %s", phone)
	}
}

func (h *Hub) deliver(message *Message) {
	encoded, err := json.Marshal(message)
	if err != nil {
		log.Printf("status hub encode message: %v", err)
		return
	}

	set, ok := h.clients[message.Phone]
	if !ok {
		return
	}
	for client := range set {
		if !client.enqueue(encoded) {
			delete(set, client)
			client.close()
		}
	}
	if len(set) == 0 {
		delete(h.clients, message.Phone)
	}
}

func statusMessage(phone string, isSubscribed bool) *Message {
	return &Message{
		Type:         MessageTypeStatus,
		Phone:        phone,
		IsSubscribed: &isSubscribed,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
}

// ReadPump answers refresh requests with the client's current status until the
// connection closes.
func (c *Client) ReadPump(statuses statusReader) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeError(c, "invalid message payload")
		} else if incoming.Type != MessageTypeRefresh {
			writeError(c, "unsupported message type")
		} else {
			c.SendStatus(statuses)
		}
		if c.isClosed() {
			return
		}
	}
}

// SendStatus writes the current status to this client only.
func (c *Client) SendStatus(statuses statusReader) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := statuses.Status(ctx, c.phone)
	if err != nil {
		writeError(c, "failed to load subscription status")
		return
	}
	write(c, statusMessage(c.phone, status.IsSubscribed))
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func writeError(client *Client, message string) {
	write(client, &Message{
		Type:      MessageTypeError,
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func write(client *Client, message *Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}
	if !client.enqueue(payload) {
		client.hub.Unregister(client)
		client.close()
	}
}

// enqueue reports false when the client is closed or its buffer is full.
func (c *Client) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
