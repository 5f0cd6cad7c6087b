package post

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"campusnet/db"
	"campusnet/user"
)

// IncrementLike bumps the like counter by one in a single atomic
// statement; there is no decrement path. The returned flag reports
// whether a row was actually touched, so an unknown post id surfaces
// internally while the caller-visible behavior stays a vacuous success.
func IncrementLike(postID int) (bool, error) {
	res, err := db.Instance.Exec(`UPDATE posts SET likes = likes + 1 WHERE id = ?`, postID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// LikeHandler handles POST /like/{postId}.
func LikeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	viewerID, err := user.ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/like/"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	applied, err := IncrementLike(postID)
	if err != nil {
		log.Printf("[Posts] Like failed: %v", err)
		http.Error(w, "Like failed", http.StatusInternalServerError)
		return
	}
	if !applied {
		log.Printf("[Posts] Like on unknown post %d ignored", postID)
	} else {
		log.Printf("[Posts] User %d liked post %d", viewerID, postID)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Liked"})
}
