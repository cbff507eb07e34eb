package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	edura "github.com/edura-app/edura-go"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := edura.New(edura.Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("edura.New: %v", err)
	}
	client = c
}

// Requirement: a 200 login response carrying only a token is tolerated; the
// command falls back to the username argument instead of crashing on the
// missing profile.
func TestLoginCommandTokenOnlyResponse(t *testing.T) {
	newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"abc123"}`))
	})

	flagPassword = "secret"
	defer func() { flagPassword = "" }()

	loginCmd.SetContext(context.Background())
	if err := loginCmd.RunE(loginCmd, []string{"bob"}); err != nil {
		t.Fatalf("login command: %v", err)
	}
	if client.Session.Token() != "abc123" {
		t.Errorf("session token = %q, want abc123", client.Session.Token())
	}
	if client.Session.User() != nil {
		t.Errorf("session user = %+v, want nil", client.Session.User())
	}
}

func TestLoginCommandWithProfile(t *testing.T) {
	newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"abc123","user":{"username":"bob","fullName":"Bob"}}`))
	})

	flagPassword = "secret"
	defer func() { flagPassword = "" }()

	loginCmd.SetContext(context.Background())
	if err := loginCmd.RunE(loginCmd, []string{"bob"}); err != nil {
		t.Fatalf("login command: %v", err)
	}
	if user := client.Session.User(); user == nil || user.Username != "bob" {
		t.Errorf("session user = %+v, want bob", user)
	}
}
