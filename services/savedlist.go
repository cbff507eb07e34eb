package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/edura-app/edura-go/core"
)

// SavedList is the view-side model of the saved-documents screen. Each view
// owns its own instance; cross-view consistency comes from every instance
// re-fetching the authoritative set on Load, never from shared memory.
//
// Unsave removes the item from this list optimistically for responsiveness,
// then reconciles against the backend. If the reconciliation fetch fails
// the last known-good list is preserved - the list is never silently
// emptied by a failed refresh.
type SavedList struct {
	mu        sync.Mutex
	favorites *FavoriteService
	items     []core.Document
	loaded    bool
}

func NewSavedList(favorites *FavoriteService) *SavedList {
	return &SavedList{favorites: favorites}
}

// Load fetches the authoritative saved set. Call it on mount; a prior
// view's state is never assumed valid.
func (l *SavedList) Load(ctx context.Context) error {
	items, err := l.favorites.Saved(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.items = items
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// Items returns a copy of the current list.
func (l *SavedList) Items() []core.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Document, len(l.items))
	copy(out, l.items)
	return out
}

func (l *SavedList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Unsave toggles the document off, removes it from this list, then issues a
// reconciliation fetch to pick up any concurrent changes (another tab may
// have modified the set). The optimistic removal is scoped to this instance
// only.
func (l *SavedList) Unsave(ctx context.Context, documentID string) error {
	if err := l.favorites.Toggle(ctx, documentID, false); err != nil {
		// The toggle itself failed; the list stays as it was.
		return err
	}

	l.removeLocal(documentID)

	items, err := l.favorites.Saved(ctx)
	if err != nil {
		// Keep the last known-good list rather than emptying it. The
		// backend state is already correct; only the refresh failed.
		return fmt.Errorf("document unsaved, but the saved list could not be refreshed: %w", err)
	}

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

func (l *SavedList) removeLocal(documentID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.items[:0]
	for _, doc := range l.items {
		if doc.Key() != documentID {
			kept = append(kept, doc)
		}
	}
	l.items = kept
}
