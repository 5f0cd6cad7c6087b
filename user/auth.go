package user

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"campusnet/db"
)

// EmailDomain gates registration and login to campus addresses.
var EmailDomain = "@aimsr.edu"

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var user User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Printf("[Register] JSON decode error: %v", err)
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	if user.Email == "" || user.Password == "" || user.Name == "" {
		http.Error(w, "Email, password and name are required", http.StatusBadRequest)
		return
	}
	if !strings.HasSuffix(user.Email, EmailDomain) {
		http.Error(w, "Only campus emails allowed", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Register] Password hash error: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	_, err = db.Instance.Exec(`
        INSERT INTO users (email, password, name, course, batch, bio)
        VALUES (?, ?, ?, ?, ?, '')`,
		user.Email, string(hashed), user.Name, user.Course, user.Batch)
	if err != nil {
		log.Printf("[Register] DB insert error: %v", err)
		http.Error(w, "Registration failed. Email might be taken.", http.StatusConflict)
		return
	}

	log.Printf("[Register] User %s registered successfully", user.Email)
	w.WriteHeader(http.StatusCreated)
	fmt.Fprintln(w, "User registered successfully")
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var req User
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if !strings.HasSuffix(req.Email, EmailDomain) {
		http.Error(w, "Only campus emails allowed", http.StatusBadRequest)
		return
	}

	var storedPassword string
	var userID int
	err := db.Instance.QueryRow(`SELECT id, password FROM users WHERE email = ?`, req.Email).Scan(&userID, &storedPassword)
	if err != nil {
		log.Printf("[Login] User not found: %v", err)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(req.Password)); err != nil {
		log.Printf("[Login] Invalid password for id=%d", userID)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := GenerateJWT(userID, req.Email)
	if err != nil {
		log.Printf("[Login] Token generation failed: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	log.Printf("[Login] User %d logged in", userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}
