package user

type User struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Name       string `json:"name"`
	Course     string `json:"course"`
	Batch      string `json:"batch"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profile_pic"`
}

// UserRef is the directory entry shown in follow and message pickers.
type UserRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
