package chat

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Message struct {
	ID         int    `json:"id,omitempty"`
	SenderID   int    `json:"sender_id"`
	ReceiverID int    `json:"receiver_id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
}

type Client struct {
	Conn *websocket.Conn
	ID   int
	mu   sync.Mutex
}

// Write sends a JSON payload to the client. The mutex serializes
// writers; gorilla/websocket supports only one concurrent writer per
// connection, and forwards and broadcasts run on other goroutines.
func (c *Client) Write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

var (
	Clients    = make(map[int]*Client)
	ClientsMux sync.Mutex
)
