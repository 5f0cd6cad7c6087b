package group

import (
	"database/sql"
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
	ErrNotCreator = errors.New("only the group creator can respond to join requests")
	ErrNoRequest  = errors.New("no pending join request for that user")
)

// RequestJoin creates a pending membership edge if none exists for the
// pair. A duplicate request is a no-op, not an error.
func RequestJoin(groupID, userID int) error {
	_, err := db.Instance.Exec(`INSERT OR IGNORE INTO group_members (group_id, user_id, status) VALUES (?, ?, ?)`,
		groupID, userID, StatusPending)
	return err
}

// MembershipStatus returns the viewer's status for a group, or the
// empty string when no edge exists.
func MembershipStatus(groupID, userID int) (string, error) {
	var status string
	err := db.Instance.QueryRow(`SELECT status FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return status, err
}

// Respond lets the group creator act on a pending join request.
// Accept moves the edge to approved; reject deletes it so the user may
// request again later. Acting on an already-approved member or a
// missing request fails with ErrNoRequest.
func Respond(groupID, targetUserID, approverID int, accept bool) error {
	creatorID, err := CreatorOf(groupID)
	if err == sql.ErrNoRows {
		return ErrNoRequest
	} else if err != nil {
		return err
	}
	if creatorID != approverID {
		return ErrNotCreator
	}

	var res sql.Result
	if accept {
		res, err = db.Instance.Exec(`UPDATE group_members SET status = ? WHERE group_id = ? AND user_id = ? AND status = ?`,
			StatusApproved, groupID, targetUserID, StatusPending)
	} else {
		res, err = db.Instance.Exec(`DELETE FROM group_members WHERE group_id = ? AND user_id = ? AND status = ?`,
			groupID, targetUserID, StatusPending)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRequest
	}
	return nil
}

// Members lists the approved roster of a group with user names.
func Members(groupID int) ([]Membership, error) {
	rows, err := db.Instance.Query(`
		SELECT gm.id, gm.group_id, gm.user_id, gm.status, u.name
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = ? AND gm.status = ?
		ORDER BY gm.id`, groupID, StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Membership
	for rows.Next() {
		var m Membership
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Status, &m.Name); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func RequestJoinHandler(w http.ResponseWriter, r *http.Request) {
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
		GroupID int `json:"group_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.GroupID <= 0 {
		http.Error(w, "Group ID is required", http.StatusBadRequest)
		return
	}

	if err := RequestJoin(req.GroupID, viewerID); err != nil {
		log.Printf("[Groups] Join request failed: %v", err)
		http.Error(w, "Error sending join request", http.StatusInternalServerError)
		return
	}

	log.Printf("[Groups] User %d requested to join group %d", viewerID, req.GroupID)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Join request sent successfully"})
}

func RespondToJoinRequestHandler(w http.ResponseWriter, r *http.Request) {
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
		GroupID      int    `json:"group_id"`
		TargetUserID int    `json:"target_user_id"`
		Action       string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Action != "accept" && req.Action != "reject" {
		http.Error(w, "Action must be 'accept' or 'reject'", http.StatusBadRequest)
		return
	}

	err = Respond(req.GroupID, req.TargetUserID, viewerID, req.Action == "accept")
	switch {
	case err == ErrNotCreator:
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case err == ErrNoRequest:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("[Groups] Respond failed: %v", err)
		http.Error(w, "Error responding to join request", http.StatusInternalServerError)
		return
	}

	log.Printf("[Groups] User %d %sed join request of user %d for group %d",
		viewerID, req.Action, req.TargetUserID, req.GroupID)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Request " + req.Action + "ed"})
}

// MembersHandler serves the approved roster: GET /group/{id}/members.
func MembersHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := user.ViewerID(r); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/group/"), "/")
	if len(parts) != 2 || parts[1] != "members" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	groupID, err := strconv.Atoi(parts[0])
	if err != nil {
		http.Error(w, "Invalid group ID", http.StatusBadRequest)
		return
	}

	members, err := Members(groupID)
	if err != nil {
		log.Printf("[Groups] Members query failed: %v", err)
		http.Error(w, "Error retrieving members", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(members)
}
