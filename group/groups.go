package group

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"campusnet/db"
	"campusnet/user"
)

// Create registers a user-created group.
func Create(name string, creatorID int) (int, error) {
	res, err := db.Instance.Exec(`INSERT INTO groups (name, creator_id, is_pre_created) VALUES (?, ?, 0)`,
		name, creatorID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// SeedGroup ensures a system group exists. Insert-or-ignore on the
// unique name keeps repeated bootstraps from duplicating it.
func SeedGroup(name string, creatorID int) error {
	_, err := db.Instance.Exec(`INSERT OR IGNORE INTO groups (name, creator_id, is_pre_created) VALUES (?, ?, 1)`,
		name, creatorID)
	return err
}

// ListForViewer returns every group regardless of membership, each
// annotated with the viewer's own membership status when one exists.
func ListForViewer(viewerID int) ([]Group, error) {
	rows, err := db.Instance.Query(`
		SELECT g.id, g.name, g.creator_id, g.is_pre_created, u.name, COALESCE(gm.status, '')
		FROM groups g
		JOIN users u ON g.creator_id = u.id
		LEFT JOIN group_members gm ON g.id = gm.group_id AND gm.user_id = ?
		ORDER BY g.id`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatorID, &g.IsPreCreated, &g.CreatorName, &g.Status); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CreatorOf returns the creator of a group.
func CreatorOf(groupID int) (int, error) {
	var creatorID int
	err := db.Instance.QueryRow(`SELECT creator_id FROM groups WHERE id = ?`, groupID).Scan(&creatorID)
	return creatorID, err
}

func CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
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
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	groupID, err := Create(req.Name, viewerID)
	if err != nil {
		log.Printf("[Groups] Insert failed: %v", err)
		http.Error(w, "Error creating group", http.StatusInternalServerError)
		return
	}

	log.Printf("[Groups] User %d created new group (ID: %d)", viewerID, groupID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(Group{ID: groupID, Name: req.Name, CreatorID: viewerID})
}

func ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, err := user.ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	groups, err := ListForViewer(viewerID)
	if err != nil && err != sql.ErrNoRows {
		log.Printf("[Groups] Query failed: %v", err)
		http.Error(w, "Error retrieving groups", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(groups)
}
