package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edura-app/edura-go/core"
)

func newTestDispatcher(t *testing.T, baseURL string, session core.SessionStore) *Dispatcher {
	t.Helper()
	if session == nil {
		session = NewFakeSessionStore()
	}
	d, err := NewDispatcher(core.Config{
		BaseURL: baseURL,
		Session: session,
	})
	if err != nil {
		t.Fatalf("NewDispatcher: %v", err)
	}
	return d
}

// Requirement: non-2xx responses become APIErrors whose message comes from
// the payload's error/message field, falling back to "HTTP <status>".
func TestDispatcherErrorNormalization(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "error field",
			status:      400,
			body:        `{"error":"title is required"}`,
			wantMessage: "title is required",
		},
		{
			name:        "message field",
			status:      403,
			body:        `{"message":"forbidden"}`,
			wantMessage: "forbidden",
		},
		{
			name:        "error preferred over message",
			status:      400,
			body:        `{"error":"X","message":"Y"}`,
			wantMessage: "X",
		},
		{
			name:        "unparseable body falls back to status",
			status:      500,
			body:        `<html>Internal Server Error</html>`,
			wantMessage: "HTTP 500",
		},
		{
			name:        "empty body falls back to status",
			status:      502,
			body:        ``,
			wantMessage: "HTTP 502",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				w.Write([]byte(test.body))
			}))
			defer server.Close()

			d := newTestDispatcher(t, server.URL, nil)
			_, err := d.Do(context.Background(), "GET", "/api/documents", nil)

			var apiErr *core.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Do() error = %v, want *core.APIError", err)
			}
			if apiErr.Status != test.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, test.status)
			}
			if apiErr.Message != test.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, test.wantMessage)
			}
		})
	}
}

// Requirement: a 401 always leaves the session store empty afterward,
// regardless of its prior contents.
func TestDispatcher401ClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer server.Close()

	session := NewFakeSessionStore()
	session.Set("stale-token", &core.User{Username: "bob"})

	d := newTestDispatcher(t, server.URL, session)
	_, err := d.Do(context.Background(), "GET", "/api/profile/me", nil)

	if !core.IsUnauthorized(err) {
		t.Fatalf("Do() error = %v, want 401 APIError", err)
	}
	if session.Token() != "" || session.User() != nil {
		t.Error("session was not cleared after 401")
	}
	if session.ClearCalls == 0 {
		t.Error("session Clear was never called")
	}
}

// Requirement: a non-401 failure leaves the session alone.
func TestDispatcherNon401KeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	session := NewFakeSessionStore()
	session.Set("good-token", &core.User{Username: "bob"})

	d := newTestDispatcher(t, server.URL, session)
	d.Do(context.Background(), "GET", "/api/documents", nil)

	if session.Token() != "good-token" {
		t.Error("session was cleared by a non-401 error")
	}
}

// Requirement: when a token exists it is attached as a bearer credential;
// without one, no Authorization header is sent.
func TestDispatcherBearerAttachment(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	session := NewFakeSessionStore()
	d := newTestDispatcher(t, server.URL, session)

	d.Do(context.Background(), "GET", "/api/documents", nil)
	if gotAuth != "" {
		t.Errorf("anonymous call sent Authorization %q", gotAuth)
	}

	session.Set("abc123", &core.User{Username: "bob"})
	d.Do(context.Background(), "GET", "/api/documents", nil)
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer abc123")
	}
}

// Requirement: JSON bodies get a JSON content type; multipart payloads keep
// the boundary content type the form chose.
func TestDispatcherBodySerialization(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = buf
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	d := newTestDispatcher(t, server.URL, nil)

	if _, err := d.Do(context.Background(), "POST", "/api/auth/login", map[string]string{"username": "bob"}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("JSON content type = %q", gotContentType)
	}
	var decoded map[string]string
	if err := json.Unmarshal(gotBody, &decoded); err != nil || decoded["username"] != "bob" {
		t.Errorf("body = %s, want username bob", gotBody)
	}

	form := NewForm().AddField("title", "notes")
	if _, err := d.DoForm(context.Background(), "POST", "/api/documents/upload", form); err != nil {
		t.Fatalf("DoForm: %v", err)
	}
	if gotContentType == "application/json" || gotContentType == "" {
		t.Errorf("multipart content type = %q, want a multipart boundary", gotContentType)
	}
}

// Requirement: body-less requests still carry the JSON content type; only
// multipart requests differ.
func TestDispatcherContentTypeWithoutBody(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	d := newTestDispatcher(t, server.URL, nil)
	if _, err := d.Do(context.Background(), "GET", "/api/documents", nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
}

// Requirement: empty and non-JSON success bodies degrade to an empty
// payload, not an error.
func TestDispatcherEmptyBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no body", ""},
		{"non-json body", "OK"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(test.body))
			}))
			defer server.Close()

			d := newTestDispatcher(t, server.URL, nil)
			payload, err := d.Do(context.Background(), "POST", "/api/documents/1/view", nil)
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			if string(payload) != "{}" {
				t.Errorf("payload = %s, want {}", payload)
			}
		})
	}
}

// Requirement: a request that never reaches a server fails with a
// NetworkError, and no JSON parsing is attempted.
func TestDispatcherNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close() // connection refused from here on

	d := newTestDispatcher(t, baseURL, nil)
	_, err := d.Do(context.Background(), "GET", "/api/documents", nil)

	var netErr *core.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Do() error = %v, want *core.NetworkError", err)
	}
	if !netErr.Unreachable {
		t.Errorf("Unreachable = false for a refused connection")
	}
}

// Requirement: cancelling the context aborts the call with the context's
// own error, not a NetworkError.
func TestDispatcherContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	d := newTestDispatcher(t, server.URL, nil)
	_, err := d.Do(ctx, "GET", "/api/documents", nil)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}

func TestNewDispatcherRequiresBaseURL(t *testing.T) {
	_, err := NewDispatcher(core.Config{})
	if !errors.Is(err, core.ErrBaseURLRequired) {
		t.Errorf("NewDispatcher() error = %v, want ErrBaseURLRequired", err)
	}
}
