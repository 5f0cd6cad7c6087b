package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campusnet/db"
)

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterEmailDomainGate(t *testing.T) {
	db.OpenTest(t)

	cases := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"foreign domain", `{"email":"x@gmail.com","password":"pass123","name":"X"}`, http.StatusBadRequest},
		{"missing name", `{"email":"x@aimsr.edu","password":"pass123"}`, http.StatusBadRequest},
		{"campus email", `{"email":"x@aimsr.edu","password":"pass123","name":"X"}`, http.StatusCreated},
		{"duplicate email", `{"email":"x@aimsr.edu","password":"other","name":"Y"}`, http.StatusConflict},
	}
	for _, c := range cases {
		rec := postJSON(RegisterHandler, c.body)
		if rec.Code != c.wantCode {
			t.Fatalf("%s: expected status %d, got %d (%s)", c.name, c.wantCode, rec.Code, rec.Body.String())
		}
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	db.OpenTest(t)
	SetJWTSecret("test-secret")

	rec := postJSON(RegisterHandler, `{"email":"s@aimsr.edu","password":"pass123","name":"S"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	rec = postJSON(LoginHandler, `{"email":"s@aimsr.edu","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %d", rec.Code)
	}

	rec = postJSON(LoginHandler, `{"email":"s@aimsr.edu","password":"pass123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d (%s)", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if _, err := ExtractUserIDFromToken(resp["token"]); err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
}
