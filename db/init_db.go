package db

import (
	"database/sql"
	"log"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

var Instance *sql.DB

// InitDB opens the SQLite database and applies the recommended pragmas.
func InitDB(path string) {
	var err error
	Instance, err = sql.Open("sqlite3", path)
	if err != nil {
		log.Fatal(err)
	}

	// WAL keeps readers from blocking the writer; the busy timeout waits
	// instead of failing with "database is locked".
	Instance.Exec(`PRAGMA journal_mode=WAL;`)
	Instance.Exec(`PRAGMA busy_timeout=3000;`)
}

// Seed inserts the demonstration users and the pre-created batch group.
// Every statement is insert-or-ignore on a natural key (email, group
// name), so rerunning the bootstrap leaves the rows untouched.
func Seed() error {
	seedUsers := []struct {
		email, password, name, course, batch, bio string
	}{
		{"student1@aimsr.edu", "pass123", "Student One", "MCA", "2023", "Hey!"},
		{"student2@aimsr.edu", "pass123", "Student Two", "BCA", "2024", "Hi there!"},
	}

	for _, u := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = Instance.Exec(`INSERT OR IGNORE INTO users (email, password, name, course, batch, bio)
			VALUES (?, ?, ?, ?, ?, ?)`,
			u.email, string(hashed), u.name, u.course, u.batch, u.bio)
		if err != nil {
			return err
		}
	}

	_, err := Instance.Exec(`INSERT OR IGNORE INTO groups (name, creator_id, is_pre_created)
		VALUES (?, ?, 1)`, "Batch 2023", 1)
	if err != nil {
		return err
	}

	log.Println("[DB] Seed data ensured")
	return nil
}
