package edura

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrBaseURLRequired) {
		t.Errorf("New() error = %v, want ErrBaseURLRequired", err)
	}
}

func TestNewWiresAllServices(t *testing.T) {
	client, err := New(Config{BaseURL: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if client.Session == nil {
		t.Error("Session is nil")
	}
	if client.Auth == nil || client.Documents == nil || client.Favorites == nil ||
		client.Profile == nil || client.Quizzes == nil || client.Payments == nil ||
		client.Chat == nil || client.Admin == nil || client.Lookups == nil {
		t.Error("a service was left unwired")
	}
	if client.NewSavedList() == nil {
		t.Error("NewSavedList() = nil")
	}
	searcher := client.NewSearcher(0, func([]Document, error) {})
	if searcher == nil {
		t.Fatal("NewSearcher() = nil")
	}
	searcher.Stop()
}

// Requirement: the client and its services share one session store, so a
// login through Auth is visible on the next Documents request.
func TestClientSharesOneSession(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			w.Write([]byte(`{"token":"abc123","user":{"username":"bob"}}`))
		default:
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := client.Auth.Login(context.Background(), "bob", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if client.Session.Token() != "abc123" {
		t.Errorf("Session token = %q, want abc123", client.Session.Token())
	}

	if _, err := client.Documents.List(context.Background(), "", DocumentFilters{}, 1, 12); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization = %q, want Bearer abc123", gotAuth)
	}
}
