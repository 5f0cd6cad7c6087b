package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"campusnet/db"
	"campusnet/user"
)

var (
	ErrMissingReceiver = errors.New("receiver is required")
	ErrEmptyContent    = errors.New("message content is required")
)

// Send validates and appends a message. Validation runs before any
// write so a bad request never touches the store.
func Send(senderID, receiverID int, content string) (int, error) {
	if receiverID <= 0 {
		return 0, ErrMissingReceiver
	}
	if content == "" {
		return 0, ErrEmptyContent
	}

	res, err := db.Instance.Exec(`INSERT INTO messages (sender_id, receiver_id, content) VALUES (?, ?, ?)`,
		senderID, receiverID, content)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// Thread returns the full conversation between two users, both
// directions, oldest first. A transcript reads top to bottom, the
// opposite of the feed.
func Thread(userA, userB int) ([]Message, error) {
	rows, err := db.Instance.Query(`
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.created_at, u.name
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE (m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?)
		ORDER BY m.created_at ASC, m.id ASC`,
		userA, userB, userB, userA)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt, &m.SenderName); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	viewerID, err := user.ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ReceiverID int    `json:"receiver_id"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	msgID, err := Send(viewerID, req.ReceiverID, req.Content)
	if err == ErrMissingReceiver || err == ErrEmptyContent {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		log.Printf("[Chat] Message insert failed: %v", err)
		http.Error(w, "Message failed", http.StatusInternalServerError)
		return
	}

	msg := Message{ID: msgID, SenderID: viewerID, ReceiverID: req.ReceiverID, Content: req.Content}
	ForwardPrivateMessage(msg)

	log.Printf("[Chat] User %d sent message %d to user %d", viewerID, msgID, req.ReceiverID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// ThreadHandler handles GET /chat/{receiverId}.
func ThreadHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, err := user.ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	otherID, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/chat/"))
	if err != nil {
		http.Error(w, "Invalid receiver ID", http.StatusBadRequest)
		return
	}

	messages, err := Thread(viewerID, otherID)
	if err != nil {
		log.Printf("[Chat] Thread query failed: %v", err)
		http.Error(w, "Error retrieving messages", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}
