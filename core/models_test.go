package core

import (
	"encoding/json"
	"testing"
)

// Requirement: the document identifier resolves "_id" first, then "id".
func TestDocumentKey(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"mongo id preferred", Document{MongoID: "abc", ID: "123"}, "abc"},
		{"plain id fallback", Document{ID: "123"}, "123"},
		{"no identifier", Document{}, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.doc.Key(); got != test.want {
				t.Errorf("Key() = %q, want %q", got, test.want)
			}
		})
	}
}

// Requirement: decoding coalesces the backend's field-name aliases
// (imageUrl/image_url, uploader/uploaderName, createdAt/created_at).
func TestDocumentUnmarshalAliases(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantImage    string
		wantUploader string
		wantCreated  string
	}{
		{
			name:         "snake case",
			payload:      `{"title":"A","image_url":"/a.png","uploader":"bob","created_at":"2024-01-01"}`,
			wantImage:    "/a.png",
			wantUploader: "bob",
			wantCreated:  "2024-01-01",
		},
		{
			name:         "camel case aliases",
			payload:      `{"title":"A","imageUrl":"/b.png","uploaderName":"eve","createdAt":"2024-02-02"}`,
			wantImage:    "/b.png",
			wantUploader: "eve",
			wantCreated:  "2024-02-02",
		},
		{
			name:         "canonical wins when both present",
			payload:      `{"title":"A","image_url":"/a.png","imageUrl":"/b.png"}`,
			wantImage:    "/a.png",
			wantUploader: "",
			wantCreated:  "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var doc Document
			if err := json.Unmarshal([]byte(test.payload), &doc); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if doc.ImageURL != test.wantImage {
				t.Errorf("ImageURL = %q, want %q", doc.ImageURL, test.wantImage)
			}
			if doc.Uploader != test.wantUploader {
				t.Errorf("Uploader = %q, want %q", doc.Uploader, test.wantUploader)
			}
			if doc.CreatedAt != test.wantCreated {
				t.Errorf("CreatedAt = %q, want %q", doc.CreatedAt, test.wantCreated)
			}
		})
	}
}
