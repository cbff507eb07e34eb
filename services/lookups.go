package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/edura-app/edura-go/core"
)

// LookupService covers the /api/lookups endpoints. The full school and
// category lists rarely change, so they are cached with a TTL; the search
// and by-id lookups always hit the backend.
type LookupService struct {
	d     *Dispatcher
	cache *core.LookupCache
}

func NewLookupService(d *Dispatcher, cache *core.LookupCache) *LookupService {
	if cache == nil {
		cache = core.NewLookupCache(core.CacheConfig{})
	}
	return &LookupService{d: d, cache: cache}
}

// Seed asks the backend to (re)seed its lookup tables. payload may be nil.
func (s *LookupService) Seed(ctx context.Context, payload any) error {
	return s.d.DoJSON(ctx, "POST", "/api/lookups/seed", payload, nil)
}

func (s *LookupService) Schools(ctx context.Context) ([]core.School, error) {
	raw, err := s.cached(ctx, "schools", "/api/lookups/schools")
	if err != nil {
		return nil, err
	}
	return decodeSchools(raw)
}

func (s *LookupService) Categories(ctx context.Context) ([]core.Category, error) {
	raw, err := s.cached(ctx, "categories", "/api/lookups/categories")
	if err != nil {
		return nil, err
	}
	list := core.ExtractList(raw, "categories", "data")
	var categories []core.Category
	if list != nil {
		if err := json.Unmarshal(list, &categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories: %w", err)
		}
	}
	return categories, nil
}

func (s *LookupService) PopularSchools(ctx context.Context, limit int) ([]core.School, error) {
	if limit <= 0 {
		limit = 12
	}
	raw, err := s.d.Do(ctx, "GET", "/api/lookups/schools/popular?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, err
	}
	return decodeSchools(raw)
}

func (s *LookupService) SearchSchools(ctx context.Context, query string, limit int) ([]core.School, error) {
	if limit <= 0 {
		limit = 8
	}
	encoded := core.EncodeQuery(map[string]string{
		"q":     query,
		"limit": strconv.Itoa(limit),
	})
	raw, err := s.d.Do(ctx, "GET", "/api/lookups/schools/search?"+encoded, nil)
	if err != nil {
		return nil, err
	}
	return decodeSchools(raw)
}

func (s *LookupService) SchoolByID(ctx context.Context, schoolID string) (*core.School, error) {
	var school core.School
	if err := s.d.DoJSON(ctx, "GET", "/api/lookups/schools/"+schoolID, nil, &school); err != nil {
		return nil, err
	}
	return &school, nil
}

// Stats exposes the lookup cache counters for diagnostics.
func (s *LookupService) Stats() core.CacheStats {
	return s.cache.Stats()
}

func (s *LookupService) cached(ctx context.Context, key, path string) (json.RawMessage, error) {
	if raw, err := s.cache.Get(key); err == nil {
		return raw, nil
	}
	raw, err := s.d.Do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(key, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func decodeSchools(raw json.RawMessage) ([]core.School, error) {
	list := core.ExtractList(raw, "schools", "data")
	var schools []core.School
	if list != nil {
		if err := json.Unmarshal(list, &schools); err != nil {
			return nil, fmt.Errorf("failed to decode schools: %w", err)
		}
	}
	return schools, nil
}
