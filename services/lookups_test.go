package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/edura-app/edura-go/core"
)

// Requirement: the full school list is served from the cache within its
// TTL; only the first call hits the backend.
func TestLookupSchoolsCached(t *testing.T) {
	var requests int
	d := newCannedDispatcher(t, nil, DoerFunc(func(req *http.Request) (*http.Response, error) {
		requests++
		return cannedResponse(200, `[{"id":"hust","name":"HUST"},{"id":"vnu","name":"VNU"}]`), nil
	}))

	lookups := NewLookupService(d, core.NewLookupCache(core.CacheConfig{TTL: time.Minute}))

	for i := 0; i < 3; i++ {
		schools, err := lookups.Schools(context.Background())
		if err != nil {
			t.Fatalf("Schools: %v", err)
		}
		if len(schools) != 2 || schools[0].ID != "hust" {
			t.Fatalf("Schools() = %+v", schools)
		}
	}
	if requests != 1 {
		t.Errorf("backend requests = %d, want 1", requests)
	}
	if stats := lookups.Stats(); stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 2 hits and 1 miss", stats)
	}
}

// Requirement: a failed fetch is not cached; the next call retries.
func TestLookupFetchFailureNotCached(t *testing.T) {
	var requests int
	d := newCannedDispatcher(t, nil, DoerFunc(func(req *http.Request) (*http.Response, error) {
		requests++
		if requests == 1 {
			return cannedResponse(500, `{"error":"lookup backend down"}`), nil
		}
		return cannedResponse(200, `{"categories":[{"id":"math","name":"Mathematics"}]}`), nil
	}))

	lookups := NewLookupService(d, core.NewLookupCache(core.CacheConfig{TTL: time.Minute}))

	if _, err := lookups.Categories(context.Background()); err == nil {
		t.Fatal("first Categories() succeeded, want an error")
	}
	categories, err := lookups.Categories(context.Background())
	if err != nil {
		t.Fatalf("second Categories: %v", err)
	}
	if len(categories) != 1 || categories[0].ID != "math" {
		t.Errorf("Categories() = %+v", categories)
	}
	if requests != 2 {
		t.Errorf("backend requests = %d, want 2", requests)
	}
}

// Requirement: school search always hits the backend with the query and
// limit; it is never served from the list cache.
func TestLookupSearchSchoolsBypassesCache(t *testing.T) {
	var paths []string
	d := newCannedDispatcher(t, nil, DoerFunc(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.RequestURI())
		return cannedResponse(200, `[]`), nil
	}))

	lookups := NewLookupService(d, nil)
	lookups.SearchSchools(context.Background(), "hanoi", 0)
	lookups.SearchSchools(context.Background(), "hanoi", 0)

	if len(paths) != 2 {
		t.Fatalf("backend requests = %d, want 2", len(paths))
	}
	for _, path := range paths {
		if path != "/api/lookups/schools/search?limit=8&q=hanoi" {
			t.Errorf("request path = %q", path)
		}
	}
}
