package chat

import (
	"fmt"
	"log"
	"net/http"

	"campusnet/user"
)

// HandleConnections upgrades to a websocket, authenticates the viewer
// with their JWT, and keeps the connection registered for live message
// delivery until it drops.
func HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Chat] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	var authData struct {
		Token string `json:"token"`
	}
	if err := conn.ReadJSON(&authData); err != nil {
		log.Println("[Chat] Failed to read authentication data:", err)
		conn.WriteJSON(map[string]string{"error": "Invalid token data"})
		return
	}

	userID, err := user.ExtractUserIDFromToken(authData.Token)
	if err != nil {
		log.Println("[Chat] Invalid token:", err)
		conn.WriteJSON(map[string]string{"error": "Unauthorized"})
		return
	}

	client := &Client{Conn: conn, ID: userID}
	ClientsMux.Lock()
	Clients[userID] = client
	ClientsMux.Unlock()

	log.Printf("[Chat] User %d connected", userID)
	BroadcastOnlineUsers()

	defer func() {
		ClientsMux.Lock()
		delete(Clients, userID)
		ClientsMux.Unlock()
		log.Printf("[Chat] User %d disconnected", userID)
		BroadcastOnlineUsers()
	}()

	client.Write(map[string]string{"status": "connected", "user_id": fmt.Sprintf("%d", userID)})

	// Messages arriving over the socket go through the same validated
	// write path as the HTTP handler.
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Println("[Chat] Read error:", err)
			break
		}

		msgID, err := Send(userID, msg.ReceiverID, msg.Content)
		if err == ErrMissingReceiver || err == ErrEmptyContent {
			client.Write(map[string]string{"error": err.Error()})
			continue
		} else if err != nil {
			log.Printf("[Chat] Message insert failed: %v", err)
			continue
		}

		msg.ID = msgID
		msg.SenderID = userID
		ForwardPrivateMessage(msg)
	}
}

// ForwardPrivateMessage delivers a saved message to the receiver if
// they are online. Offline receivers read it from the thread later.
func ForwardPrivateMessage(msg Message) {
	ClientsMux.Lock()
	receiver, exists := Clients[msg.ReceiverID]
	ClientsMux.Unlock()

	if !exists {
		return
	}
	if err := receiver.Write(msg); err != nil {
		log.Printf("[Chat] Forward to user %d failed: %v", msg.ReceiverID, err)
	}
}

// BroadcastOnlineUsers pushes the current online user ids to everyone.
func BroadcastOnlineUsers() {
	ClientsMux.Lock()
	online := make([]int, 0, len(Clients))
	for id := range Clients {
		online = append(online, id)
	}
	conns := make([]*Client, 0, len(Clients))
	for _, c := range Clients {
		conns = append(conns, c)
	}
	ClientsMux.Unlock()

	payload := map[string]interface{}{"type": "online_users", "users": online}
	for _, c := range conns {
		if err := c.Write(payload); err != nil {
			log.Printf("[Chat] Broadcast to user %d failed: %v", c.ID, err)
		}
	}
}
