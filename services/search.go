package services

import (
	"context"
	"sync"
	"time"

	"github.com/edura-app/edura-go/core"
)

// DefaultSearchDebounce matches the keystroke coalescing delay of the web
// client.
const DefaultSearchDebounce = 300 * time.Millisecond

// Searcher coalesces rapid query/filter changes into a single fetch. Every
// Update restarts the debounce timer, cancels any in-flight request, and
// bumps a generation counter; a response is delivered only while its
// generation is still current. A slow early response therefore can never
// overwrite the results of a later query.
type Searcher struct {
	docs    *DocumentService
	delay   time.Duration
	deliver func([]core.Document, error)

	page  int
	limit int

	mu      sync.Mutex
	timer   *time.Timer
	cancel  context.CancelFunc
	gen     uint64
	query   string
	filters DocumentFilters
	stopped bool

	// deliverMu gates the staleness check and the callback as one unit, so
	// Stop can wait out a delivery that already passed the check.
	deliverMu sync.Mutex
}

// NewSearcher builds a searcher that reports results (or the fetch error)
// through deliver. deliver is called from a background goroutine, at most
// once per generation.
func NewSearcher(docs *DocumentService, delay time.Duration, deliver func([]core.Document, error)) *Searcher {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Searcher{
		docs:    docs,
		delay:   delay,
		deliver: deliver,
		page:    1,
		limit:   12,
	}
}

// SetPage adjusts pagination for subsequent fetches.
func (s *Searcher) SetPage(page, limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page > 0 {
		s.page = page
	}
	if limit > 0 {
		s.limit = limit
	}
}

// Update records the newest query and filters and (re)schedules the fetch.
// A pending timer is cancelled, as is any request already in flight.
func (s *Searcher) Update(query string, filters DocumentFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	s.gen++
	gen := s.gen
	s.query = query
	s.filters = filters

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.run(gen)
	})
}

// Flush skips the remaining debounce delay and fetches the pending query
// immediately. Useful for an explicit submit action. It opens a fresh
// generation of its own: a timer-fired fetch already in flight is
// superseded, never doubled.
func (s *Searcher) Flush() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.run(gen)
}

// Stop cancels the pending timer and any in-flight request. No deliveries
// happen after Stop returns: a delivery already past its staleness check is
// waited out. deliver must therefore not call Stop.
func (s *Searcher) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.gen++ // invalidate anything in flight
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.deliverMu.Lock()
	s.deliverMu.Unlock()
}

func (s *Searcher) run(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.stopped {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	query := s.query
	filters := s.filters
	page := s.page
	limit := s.limit
	s.mu.Unlock()

	docs, err := s.docs.List(ctx, query, filters, page, limit)
	cancel()

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	stale := gen != s.gen || s.stopped
	s.mu.Unlock()
	if stale {
		// A newer query superseded this one while it was in flight.
		return
	}

	s.deliver(docs, err)
}
