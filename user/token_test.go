package user

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT(42, "student1@aimsr.edu")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	id, err := ExtractUserIDFromToken(token)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected user id 42, got %d", id)
	}
}

func TestJWTRejectsGarbageAndWrongKey(t *testing.T) {
	SetJWTSecret("test-secret")

	if _, err := ExtractUserIDFromToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}

	token, err := GenerateJWT(7, "student2@aimsr.edu")
	if err != nil {
		t.Fatal(err)
	}
	SetJWTSecret("different-secret")
	if _, err := ExtractUserIDFromToken(token); err == nil {
		t.Fatal("expected error for token signed with another key")
	}
}
