package follower

import (
	"encoding/json"
	"log"
	"net/http"

	"campusnet/db"
	"campusnet/user"
)

// AddFollow inserts a directed follow edge if absent. Duplicate calls
// are no-ops, enforced by the unique index over (user_id, follow_id,
// type); target existence is not checked at this layer.
func AddFollow(viewerID, targetID int, kind string) error {
	_, err := db.Instance.Exec(`INSERT OR IGNORE INTO follows (user_id, follow_id, type) VALUES (?, ?, ?)`,
		viewerID, targetID, kind)
	return err
}

// FollowedUserIDs returns the ids of users the viewer follows.
func FollowedUserIDs(viewerID int) ([]int, error) {
	return followedIDs(viewerID, KindUser)
}

// FollowedGroupIDs returns the ids of groups the viewer follows.
func FollowedGroupIDs(viewerID int) ([]int, error) {
	return followedIDs(viewerID, KindGroup)
}

func followedIDs(viewerID int, kind string) ([]int, error) {
	rows, err := db.Instance.Query(`SELECT follow_id FROM follows WHERE user_id = ? AND type = ?`,
		viewerID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func FollowHandler(w http.ResponseWriter, r *http.Request) {
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
		FollowID int    `json:"follow_id"`
		Type     string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Type != KindUser && req.Type != KindGroup {
		http.Error(w, "Type must be 'user' or 'group'", http.StatusBadRequest)
		return
	}
	if req.FollowID <= 0 {
		http.Error(w, "Follow target is required", http.StatusBadRequest)
		return
	}

	if err := AddFollow(viewerID, req.FollowID, req.Type); err != nil {
		log.Printf("[Follow] Insert failed: %v", err)
		http.Error(w, "Follow failed", http.StatusInternalServerError)
		return
	}

	log.Printf("[Follow] User %d followed %s %d", viewerID, req.Type, req.FollowID)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Followed successfully"})
}
