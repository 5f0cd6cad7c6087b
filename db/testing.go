package db

import (
	"database/sql"
	"testing"
)

// testSchema mirrors pkg/db/migrations/sqlite/000001_init.up.sql.
const testSchema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    name TEXT NOT NULL,
    course TEXT,
    batch TEXT,
    bio TEXT DEFAULT '',
    profile_pic TEXT DEFAULT 'default-profile.png'
);
CREATE TABLE posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    group_id INTEGER,
    content TEXT,
    image TEXT,
    is_public INTEGER NOT NULL DEFAULT 0,
    likes INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id INTEGER NOT NULL,
    user_id INTEGER NOT NULL,
    content TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE groups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    creator_id INTEGER NOT NULL,
    is_pre_created INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE group_members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    group_id INTEGER NOT NULL,
    user_id INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    UNIQUE (group_id, user_id)
);
CREATE TABLE follows (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    follow_id INTEGER NOT NULL,
    type TEXT NOT NULL,
    UNIQUE (user_id, follow_id, type)
);
CREATE TABLE messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sender_id INTEGER NOT NULL,
    receiver_id INTEGER NOT NULL,
    content TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// OpenTest points Instance at a fresh in-memory database with the full
// schema applied. The previous Instance is restored on cleanup so tests
// cannot leak state into each other.
func OpenTest(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := conn.Exec(testSchema); err != nil {
		t.Fatalf("apply test schema: %v", err)
	}

	prev := Instance
	Instance = conn
	t.Cleanup(func() {
		Instance = prev
		conn.Close()
	})
	return conn
}
