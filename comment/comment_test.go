package comment

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

func TestAddAndListOldestFirst(t *testing.T) {
	conn := db.OpenTest(t)
	alice := seedUser(t, conn, "alice")
	bob := seedUser(t, conn, "bob")

	for _, c := range []struct {
		author  int
		content string
	}{
		{alice, "first"},
		{bob, "second"},
		{alice, "third"},
	} {
		if err := Add(1, c.author, c.content); err != nil {
			t.Fatal(err)
		}
	}

	comments, err := ListForPost(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}

	want := []string{"first", "second", "third"}
	for i, c := range comments {
		if c.Content != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], c.Content)
		}
	}
	if comments[1].AuthorName != "bob" {
		t.Fatalf("expected author name joined, got %q", comments[1].AuthorName)
	}

	// Another post has no comments.
	other, err := ListForPost(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no comments for post 2, got %d", len(other))
	}
}
