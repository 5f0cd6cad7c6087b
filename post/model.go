package post

type Post struct {
	ID         int     `json:"id"`
	UserID     int     `json:"user_id"`
	GroupID    *int    `json:"group_id"`
	Content    string  `json:"content"`
	Image      string  `json:"image,omitempty"`
	IsPublic   bool    `json:"is_public"`
	Likes      int     `json:"likes"`
	CreatedAt  string  `json:"created_at"`
	AuthorName string  `json:"author_name"`
	GroupName  *string `json:"group_name"`
}
