package group

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

func TestSeedGroupIdempotent(t *testing.T) {
	conn := db.OpenTest(t)

	for i := 0; i < 2; i++ {
		if err := SeedGroup("Batch 2023", 1); err != nil {
			t.Fatalf("seed attempt %d: %v", i, err)
		}
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM groups WHERE name = 'Batch 2023'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one seeded group, got %d", count)
	}

	var pre bool
	if err := conn.QueryRow(`SELECT is_pre_created FROM groups WHERE name = 'Batch 2023'`).Scan(&pre); err != nil {
		t.Fatal(err)
	}
	if !pre {
		t.Fatal("seeded group should be marked pre-created")
	}
}

func TestRequestJoinTwiceSinglePendingEdge(t *testing.T) {
	conn := db.OpenTest(t)

	for i := 0; i < 2; i++ {
		if err := RequestJoin(1, 42); err != nil {
			t.Fatalf("join attempt %d: %v", i, err)
		}
	}

	var count int
	var status string
	if err := conn.QueryRow(`SELECT COUNT(*) FROM group_members`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected one membership edge, got %d", count)
	}
	if err := conn.QueryRow(`SELECT status FROM group_members WHERE group_id = 1 AND user_id = 42`).Scan(&status); err != nil {
		t.Fatal(err)
	}
	if status != StatusPending {
		t.Fatalf("expected pending status, got %q", status)
	}
}

func TestRespondTransitions(t *testing.T) {
	conn := db.OpenTest(t)
	creator := seedUser(t, conn, "creator")
	member := seedUser(t, conn, "member")

	groupID, err := Create("Study Circle", creator)
	if err != nil {
		t.Fatal(err)
	}
	if err := RequestJoin(groupID, member); err != nil {
		t.Fatal(err)
	}

	// Only the creator may respond.
	if err := Respond(groupID, member, member, true); err != ErrNotCreator {
		t.Fatalf("expected ErrNotCreator, got %v", err)
	}

	if err := Respond(groupID, member, creator, true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	status, err := MembershipStatus(groupID, member)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusApproved {
		t.Fatalf("expected approved, got %q", status)
	}

	// Approving again is not a pending request anymore.
	if err := Respond(groupID, member, creator, true); err != ErrNoRequest {
		t.Fatalf("expected ErrNoRequest on second approve, got %v", err)
	}
}

func TestRespondRejectAllowsRetry(t *testing.T) {
	conn := db.OpenTest(t)
	creator := seedUser(t, conn, "creator")
	member := seedUser(t, conn, "member")

	groupID, err := Create("Chess Club", creator)
	if err != nil {
		t.Fatal(err)
	}
	if err := RequestJoin(groupID, member); err != nil {
		t.Fatal(err)
	}
	if err := Respond(groupID, member, creator, false); err != nil {
		t.Fatalf("reject: %v", err)
	}

	status, err := MembershipStatus(groupID, member)
	if err != nil {
		t.Fatal(err)
	}
	if status != "" {
		t.Fatalf("expected no edge after reject, got %q", status)
	}

	// A fresh request starts pending again.
	if err := RequestJoin(groupID, member); err != nil {
		t.Fatal(err)
	}
	status, err = MembershipStatus(groupID, member)
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusPending {
		t.Fatalf("expected pending after re-request, got %q", status)
	}
}

func TestListForViewerAnnotatesStatus(t *testing.T) {
	conn := db.OpenTest(t)
	creator := seedUser(t, conn, "creator")
	viewer := seedUser(t, conn, "viewer")

	g1, err := Create("Batch 2023", creator)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Create("Robotics", creator); err != nil {
		t.Fatal(err)
	}
	if err := RequestJoin(g1, viewer); err != nil {
		t.Fatal(err)
	}

	groups, err := ListForViewer(viewer)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected both groups listed, got %d", len(groups))
	}

	byName := map[string]Group{}
	for _, g := range groups {
		byName[g.Name] = g
	}
	if byName["Batch 2023"].Status != StatusPending {
		t.Fatalf("expected pending status on joined group, got %q", byName["Batch 2023"].Status)
	}
	if byName["Robotics"].Status != "" {
		t.Fatalf("expected empty status on untouched group, got %q", byName["Robotics"].Status)
	}
	if byName["Robotics"].CreatorName != "creator" {
		t.Fatalf("expected creator name joined, got %q", byName["Robotics"].CreatorName)
	}
}
