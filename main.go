package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"campusnet/chat"
	"campusnet/comment"
	"campusnet/config"
	"campusnet/db"
	"campusnet/follower"
	"campusnet/group"
	"campusnet/pkg/db/sqlite"
	"campusnet/post"
	"campusnet/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file, using environment")
	}
	cfg := config.Load()

	user.SetJWTSecret(cfg.JWTSecret)
	user.EmailDomain = cfg.EmailDomain
	user.AvatarDir = cfg.UploadDir
	post.UploadDir = cfg.UploadDir

	db.InitDB(cfg.DBPath)
	sqlite.ApplyMigrations(cfg.DBPath)
	if err := db.Seed(); err != nil {
		log.Fatal(err)
	}
	defer db.Instance.Close()

	// Serve uploaded images
	fs := http.FileServer(http.Dir(cfg.UploadDir))
	http.Handle("/uploads/", http.StripPrefix("/uploads/", fs))

	http.HandleFunc("/register", disableCORS(user.RegisterHandler))
	http.HandleFunc("/login", disableCORS(user.LoginHandler))

	http.HandleFunc("/posts", disableCORS(user.JwtMiddleware(post.FeedHandler)))
	http.HandleFunc("/post", disableCORS(user.JwtMiddleware(post.CreatePostHandler)))
	http.HandleFunc("/like/", disableCORS(user.JwtMiddleware(post.LikeHandler)))
	http.HandleFunc("/comment/", disableCORS(user.JwtMiddleware(comment.CreateCommentHandler)))
	http.HandleFunc("/comments/", disableCORS(user.JwtMiddleware(comment.ListCommentsHandler)))

	http.HandleFunc("/groups", disableCORS(user.JwtMiddleware(group.ListGroupsHandler)))
	http.HandleFunc("/create-group", disableCORS(user.JwtMiddleware(group.CreateGroupHandler)))
	http.HandleFunc("/join-group", disableCORS(user.JwtMiddleware(group.RequestJoinHandler)))
	http.HandleFunc("/groups/respond", disableCORS(user.JwtMiddleware(group.RespondToJoinRequestHandler)))
	http.HandleFunc("/group/", disableCORS(user.JwtMiddleware(group.MembersHandler)))

	http.HandleFunc("/follow", disableCORS(user.JwtMiddleware(follower.FollowHandler)))

	http.HandleFunc("/user", disableCORS(user.JwtMiddleware(user.CurrentUserHandler)))
	http.HandleFunc("/update-profile", disableCORS(user.JwtMiddleware(user.UpdateProfileHandler)))
	http.HandleFunc("/users", disableCORS(user.JwtMiddleware(user.ListUsersHandler)))

	http.HandleFunc("/ws", disableCORS(chat.HandleConnections))
	http.HandleFunc("/send-message", disableCORS(user.JwtMiddleware(chat.SendMessageHandler)))
	http.HandleFunc("/chat/", disableCORS(user.JwtMiddleware(chat.ThreadHandler)))

	fmt.Println("Server running on", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}

func disableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}
