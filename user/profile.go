package user

import (
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"campusnet/db"
)

var AvatarDir = "uploads"

// ByID loads a single profile, password hash excluded.
func ByID(id int) (User, error) {
	var u User
	err := db.Instance.QueryRow(`SELECT id, email, name, course, batch, bio, profile_pic
		FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.Course, &u.Batch, &u.Bio, &u.ProfilePic)
	return u, err
}

// Directory lists every user except the viewer, for the follow and
// message pickers.
func Directory(viewerID int) ([]UserRef, error) {
	rows, err := db.Instance.Query(`SELECT id, name FROM users WHERE id != ?`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserRef
	for rows.Next() {
		var u UserRef
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile sets the bio and, when picPath is non-empty, the
// profile picture.
func UpdateProfile(viewerID int, bio, picPath string) error {
	var pic interface{}
	if picPath != "" {
		pic = picPath
	}
	_, err := db.Instance.Exec(`UPDATE users SET bio = ?, profile_pic = COALESCE(?, profile_pic) WHERE id = ?`,
		bio, pic, viewerID)
	return err
}

func CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, err := ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := ByID(viewerID)
	if err == sql.ErrNoRows {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Printf("[Profile] Lookup failed: %v", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	viewerID, err := ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	bio := r.FormValue("bio")
	picPath, err := saveProfilePic(r)
	if err != nil {
		log.Printf("[Profile] Picture upload failed: %v", err)
		http.Error(w, "Picture upload failed", http.StatusInternalServerError)
		return
	}

	if err := UpdateProfile(viewerID, bio, picPath); err != nil {
		log.Printf("[Profile] Update failed: %v", err)
		http.Error(w, "Update failed", http.StatusInternalServerError)
		return
	}

	log.Printf("[Profile] User %d updated profile", viewerID)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Profile updated"})
}

func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	viewerID, err := ViewerID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	users, err := Directory(viewerID)
	if err != nil {
		log.Printf("[Profile] Directory query failed: %v", err)
		http.Error(w, "Error retrieving users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func saveProfilePic(r *http.Request) (string, error) {
	file, header, err := r.FormFile("profile_pic")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if _, err := os.Stat(AvatarDir); os.IsNotExist(err) {
		os.MkdirAll(AvatarDir, os.ModePerm)
	}

	fileName := uuid.New().String() + filepath.Ext(header.Filename)
	filePath := filepath.Join(AvatarDir, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return filePath, nil
}
