package group

// Membership statuses. A join request starts pending; only the group
// creator moves it to approved. Approval does not gate post visibility,
// which is governed by follow edges (see post.Feed).
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

type Group struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	CreatorID    int    `json:"creator_id"`
	IsPreCreated bool   `json:"is_pre_created"`
	CreatorName  string `json:"creator_name,omitempty"`
	// Status is the viewer's own membership status, empty when the
	// viewer never requested to join.
	Status string `json:"status,omitempty"`
}

type Membership struct {
	ID      int    `json:"id"`
	GroupID int    `json:"group_id"`
	UserID  int    `json:"user_id"`
	Status  string `json:"status"`
	Name    string `json:"name,omitempty"`
}
