package core

import (
	"net/url"
	"testing"
)

// Requirement: empty filter values are omitted entirely - an empty search
// must not appear as "search=" in the encoded query.
func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   map[string]string // expected decoded parameters
	}{
		{
			name:   "drops empty values",
			params: map[string]string{"search": "", "type": "pdf", "page": "1"},
			want:   map[string]string{"type": "pdf", "page": "1"},
		},
		{
			name:   "all empty yields empty query",
			params: map[string]string{"search": "", "language": ""},
			want:   map[string]string{},
		},
		{
			name:   "escapes values",
			params: map[string]string{"search": "linear algebra"},
			want:   map[string]string{"search": "linear algebra"},
		},
		{
			name:   "nil map",
			params: nil,
			want:   map[string]string{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoded := EncodeQuery(test.params)

			decoded, err := url.ParseQuery(encoded)
			if err != nil {
				t.Fatalf("ParseQuery(%q): %v", encoded, err)
			}
			if len(decoded) != len(test.want) {
				t.Fatalf("EncodeQuery() = %q, want %d parameters, got %d", encoded, len(test.want), len(decoded))
			}
			for key, want := range test.want {
				if got := decoded.Get(key); got != want {
					t.Errorf("parameter %s = %q, want %q", key, got, want)
				}
			}
		})
	}
}
