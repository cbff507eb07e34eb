package services

import (
	"context"

	"github.com/edura-app/edura-go/core"
)

// FavoriteService covers the saved/favorite relation. No client-side cache
// of this relation persists across views: every view that needs it fetches
// the authoritative set through Saved.
type FavoriteService struct {
	d *Dispatcher
}

func NewFavoriteService(d *Dispatcher) *FavoriteService {
	return &FavoriteService{d: d}
}

// Toggle sets the saved state of a document to the given value. The caller
// always states the desired end state; there is no toggle-in-place
// semantic, so retries are idempotent.
func (s *FavoriteService) Toggle(ctx context.Context, documentID string, favorite bool) error {
	return s.d.DoJSON(ctx, "POST", "/api/mobile/documents/favorite/"+documentID, map[string]bool{
		"favorite": favorite,
	}, nil)
}

// Saved fetches the authoritative saved set for the current user.
func (s *FavoriteService) Saved(ctx context.Context) ([]core.Document, error) {
	raw, err := s.d.Do(ctx, "GET", "/api/mobile/documents/saved", nil)
	if err != nil {
		return nil, err
	}
	// The endpoint wraps its list under "items"; run it through the
	// normalizer anyway so a contract drift does not break the view.
	return core.NormalizeDocuments(raw), nil
}
