package post

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"campusnet/db"
	"campusnet/user"
)

// PublicGroup is the sentinel group selector marking a post as public.
const PublicGroup = "public"

// Create writes a new post. Public and group-scoped are mutually
// exclusive and the write path enforces it: a public post gets a NULL
// group regardless of any group supplied, and a post without a group is
// always public.
func Create(authorID int, content, image string, groupID *int, isPublic bool) (int, error) {
	if isPublic {
		groupID = nil
	}
	if groupID == nil {
		isPublic = true
	}

	var gid interface{}
	if groupID != nil {
		gid = *groupID
	}
	res, err := db.Instance.Exec(`INSERT INTO posts (user_id, group_id, content, image, is_public) VALUES (?, ?, ?, ?, ?)`,
		authorID, gid, content, image, boolToInt(isPublic))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// Feed resolves every post the viewer may see, most recent first. A
// post is visible iff it is public, its author is followed as a user,
// or its group is followed as a group. Membership status plays no part
// here. One query keeps the read a consistent snapshot; same-timestamp
// posts fall back to insertion order (id ascending) so the ordering
// stays deterministic.
func Feed(viewerID int) ([]Post, error) {
	rows, err := db.Instance.Query(`
		SELECT p.id, p.user_id, p.group_id, p.content, p.image, p.is_public, p.likes, p.created_at,
		       u.name, g.name
		FROM posts p
		JOIN users u ON p.user_id = u.id
		LEFT JOIN groups g ON p.group_id = g.id
		WHERE p.is_public = 1
		   OR p.user_id IN (SELECT follow_id FROM follows WHERE user_id = ? AND type = 'user')
		   OR p.group_id IN (SELECT follow_id FROM follows WHERE user_id = ? AND type = 'group')
		ORDER BY p.created_at DESC, p.id ASC`, viewerID, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		var groupID sql.NullInt64
		var image, groupName sql.NullString
		if err := rows.Scan(&p.ID, &p.UserID, &groupID, &p.Content, &image, &p.IsPublic, &p.Likes,
			&p.CreatedAt, &p.AuthorName, &groupName); err != nil {
			return nil, err
		}
		if groupID.Valid {
			val := int(groupID.Int64)
			p.GroupID = &val
		}
		p.Image = image.String
		if groupName.Valid {
			p.GroupName = &groupName.String
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	viewerID, err := user.ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	content := r.FormValue("content")
	groupField := r.FormValue("group_id")
	if content == "" {
		http.Error(w, "Content is required", http.StatusBadRequest)
		return
	}

	isPublic := groupField == PublicGroup || groupField == ""
	var groupID *int
	if !isPublic {
		gid, err := strconv.Atoi(groupField)
		if err != nil {
			http.Error(w, "Invalid group ID", http.StatusBadRequest)
			return
		}
		groupID = &gid
	}

	image, err := SaveFile(r, "image")
	if err != nil {
		log.Printf("[Posts] Image upload failed: %v", err)
		http.Error(w, "Image upload failed", http.StatusInternalServerError)
		return
	}

	postID, err := Create(viewerID, content, image, groupID, isPublic)
	if err != nil {
		log.Printf("[Posts] Insert failed: %v", err)
		http.Error(w, "Error saving post", http.StatusInternalServerError)
		return
	}

	log.Printf("[Posts] User %d created new post (ID: %d)", viewerID, postID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(Post{
		ID:       postID,
		UserID:   viewerID,
		GroupID:  groupID,
		Content:  content,
		Image:    image,
		IsPublic: isPublic,
	})
}

func FeedHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, err := user.ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	posts, err := Feed(viewerID)
	if err != nil {
		log.Printf("[Posts] Feed query failed: %v", err)
		http.Error(w, "Error retrieving posts", http.StatusInternalServerError)
		return
	}

	log.Printf("[Posts] Returning %d posts for user %d", len(posts), viewerID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
