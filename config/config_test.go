package config

import (
	"strings"
	"testing"
	"time"
)

// Requirement: unset fields fall back to the built-in defaults; set fields
// win.
func TestNewFromReaderMergesDefaults(t *testing.T) {
	yaml := `
baseURL: http://localhost:8080
verbose: true
`
	c, err := NewFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}

	if c.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if !c.Verbose {
		t.Error("Verbose = false, want true")
	}
	if c.Timeout != Default.Timeout {
		t.Errorf("Timeout = %v, want default %v", c.Timeout, Default.Timeout)
	}
	if c.SearchDebounce != Default.SearchDebounce {
		t.Errorf("SearchDebounce = %v, want default %v", c.SearchDebounce, Default.SearchDebounce)
	}
}

func TestNewFromReaderEmptyYieldsDefaults(t *testing.T) {
	c, err := NewFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}
	if *c != Default {
		t.Errorf("config = %+v, want defaults %+v", *c, Default)
	}
}

func TestNewFromReaderDurations(t *testing.T) {
	yaml := `
baseURL: http://localhost:8080
timeout: 5s
searchDebounce: 150ms
`
	c, err := NewFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("NewFromReader: %v", err)
	}
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.Timeout)
	}
	if c.SearchDebounce != 150*time.Millisecond {
		t.Errorf("SearchDebounce = %v, want 150ms", c.SearchDebounce)
	}
}

// Requirement: a config that fails validation is rejected, not silently
// patched up.
func TestNewFromReaderValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"base url not a url", `baseURL: "not a url"`},
		{"malformed yaml", `baseURL: [`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := NewFromReader(strings.NewReader(test.yaml)); err == nil {
				t.Error("NewFromReader() succeeded, want an error")
			}
		})
	}
}

func TestSessionPathPrefersConfigured(t *testing.T) {
	c := Default
	c.SessionFile = "/tmp/custom-session"

	path, err := c.SessionPath()
	if err != nil {
		t.Fatalf("SessionPath: %v", err)
	}
	if path != "/tmp/custom-session" {
		t.Errorf("SessionPath() = %q", path)
	}
}
