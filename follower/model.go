package follower

// Edge kinds. A follow edge is directed and never reciprocal by itself.
const (
	KindUser  = "user"
	KindGroup = "group"
)

type Follow struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	FollowID int    `json:"follow_id"`
	Type     string `json:"type"`
}
