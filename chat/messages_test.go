package chat

import (
	"database/sql"
	"testing"

	"campusnet/db"
)

func seedUser(t *testing.T, conn *sql.DB, name string) int {
	t.Helper()
	res, err := conn.Exec(`INSERT INTO users (email, password, name) VALUES (?, 'x', ?)`,
		name+"@aimsr.edu", name)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

func TestSendValidation(t *testing.T) {
	conn := db.OpenTest(t)

	cases := []struct {
		name       string
		receiverID int
		content    string
		wantErr    error
	}{
		{"missing receiver", 0, "hi", ErrMissingReceiver},
		{"empty content", 2, "", ErrEmptyContent},
	}
	for _, c := range cases {
		if _, err := Send(1, c.receiverID, c.content); err != c.wantErr {
			t.Fatalf("%s: expected %v, got %v", c.name, c.wantErr, err)
		}
	}

	// Validation failures never reach the store.
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expected no messages written, got %d", count)
	}

	if _, err := Send(1, 2, "hi"); err != nil {
		t.Fatalf("valid send failed: %v", err)
	}
}

func TestThreadBothDirectionsOldestFirst(t *testing.T) {
	conn := db.OpenTest(t)
	alice := seedUser(t, conn, "alice")
	bob := seedUser(t, conn, "bob")
	carol := seedUser(t, conn, "carol")

	script := []struct {
		sender, receiver int
		content          string
	}{
		{alice, bob, "hey bob"},
		{bob, alice, "hey alice"},
		{alice, bob, "lunch?"},
		{alice, carol, "unrelated"},
	}
	for _, s := range script {
		if _, err := Send(s.sender, s.receiver, s.content); err != nil {
			t.Fatal(err)
		}
	}

	thread, err := Thread(alice, bob)
	if err != nil {
		t.Fatal(err)
	}
	if len(thread) != 3 {
		t.Fatalf("expected 3 messages in thread, got %d", len(thread))
	}

	want := []string{"hey bob", "hey alice", "lunch?"}
	for i, m := range thread {
		if m.Content != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], m.Content)
		}
	}
	if thread[1].SenderName != "bob" {
		t.Fatalf("expected sender name joined, got %q", thread[1].SenderName)
	}

	// Symmetric for the other participant.
	reverse, err := Thread(bob, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(reverse) != 3 {
		t.Fatalf("expected same thread from the other side, got %d messages", len(reverse))
	}
}
