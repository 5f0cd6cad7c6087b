package comment

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"campusnet/db"
	"campusnet/user"
)

type Comment struct {
	ID         int    `json:"id"`
	PostID     int    `json:"post_id"`
	UserID     int    `json:"user_id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	AuthorName string `json:"author_name"`
}

// Add appends a comment to a post. Referential integrity is not
// enforced here; a comment on an unknown post inserts an orphan row
// that never joins back into any listing.
func Add(postID, authorID int, content string) error {
	_, err := db.Instance.Exec(`INSERT INTO comments (post_id, user_id, content) VALUES (?, ?, ?)`,
		postID, authorID, content)
	return err
}

// ListForPost returns a post's comments oldest first with author names.
func ListForPost(postID int) ([]Comment, error) {
	rows, err := db.Instance.Query(`
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at, u.name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateCommentHandler handles POST /comment/{postId}.
func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	viewerID, err := user.ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/comment/"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	if err := Add(postID, viewerID, req.Content); err != nil {
		log.Printf("[Comments] Insert failed: %v", err)
		http.Error(w, "Comment failed", http.StatusInternalServerError)
		return
	}

	log.Printf("[Comments] User %d commented on post %d", viewerID, postID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Comment added"})
}

// ListCommentsHandler handles GET /comments/{postId}.
func ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := user.ViewerID(r); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/comments/"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := ListForPost(postID)
	if err != nil {
		log.Printf("[Comments] Query failed: %v", err)
		http.Error(w, "Error retrieving comments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comments)
}
