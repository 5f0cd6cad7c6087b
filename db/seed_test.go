package db

import "testing"

func TestSeedIdempotent(t *testing.T) {
	conn := OpenTest(t)

	for i := 0; i < 2; i++ {
		if err := Seed(); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}

	var users int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		t.Fatal(err)
	}
	if users != 2 {
		t.Fatalf("expected exactly two seed users, got %d", users)
	}

	var groups int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM groups WHERE name = 'Batch 2023'`).Scan(&groups); err != nil {
		t.Fatal(err)
	}
	if groups != 1 {
		t.Fatalf("expected exactly one 'Batch 2023' group, got %d", groups)
	}
}
