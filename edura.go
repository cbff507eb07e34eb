// Package edura is a Go client for the Edura document-sharing platform.
//
// All network traffic flows through a single dispatcher that attaches the
// bearer credential, normalizes errors, and invalidates the local session on
// any 401. List responses go through a normalizer that tolerates the
// backend's inconsistent envelope shapes.
package edura

import (
	"time"

	"github.com/edura-app/edura-go/core"
	"github.com/edura-app/edura-go/services"
)

// interfaces
type (
	SessionStore = core.SessionStore
	Doer         = core.Doer
)

// structs
type (
	Config      = core.Config
	CacheConfig = core.CacheConfig
	CacheStats  = core.CacheStats
)

type (
	User        = core.User
	Document    = core.Document
	Session     = core.Session
	LoginResult = core.LoginResult
	School      = core.School
	Category    = core.Category
	Quiz        = core.Quiz
	Payment     = core.Payment

	APIError     = core.APIError
	NetworkError = core.NetworkError

	DocumentFilters = services.DocumentFilters
	SavedList       = services.SavedList
	Searcher        = services.Searcher
)

// Constructors & helpers (convenience re-exports)
var (
	NewMemoryStore     = core.NewMemoryStore
	NewLookupCache     = core.NewLookupCache
	NormalizeDocuments = core.NormalizeDocuments
	IsUnauthorized     = core.IsUnauthorized
)

var (
	ErrNoTokenInResponse = core.ErrNoTokenInResponse
	ErrNotLoggedIn       = core.ErrNotLoggedIn
	ErrBaseURLRequired   = core.ErrBaseURLRequired
)

// Client bundles the resource services behind one dispatcher and one
// session store.
type Client struct {
	Session SessionStore

	Auth      *services.AuthService
	Documents *services.DocumentService
	Favorites *services.FavoriteService
	Profile   *services.ProfileService
	Quizzes   *services.QuizService
	Payments  *services.PaymentService
	Chat      *services.ChatService
	Admin     *services.AdminService
	Lookups   *services.LookupService

	dispatcher *services.Dispatcher
}

func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	// Set Defaults

	if config.Session == nil {
		config.Session = core.NewMemoryStore()
	}

	lookupTTL := config.LookupTTL
	if lookupTTL == 0 {
		lookupTTL = 5 * time.Minute
	}

	dispatcher, err := services.NewDispatcher(config)
	if err != nil {
		return nil, err
	}

	cache := core.NewLookupCache(core.CacheConfig{TTL: lookupTTL})

	return &Client{
		Session:    config.Session,
		Auth:       services.NewAuthService(dispatcher),
		Documents:  services.NewDocumentService(dispatcher),
		Favorites:  services.NewFavoriteService(dispatcher),
		Profile:    services.NewProfileService(dispatcher),
		Quizzes:    services.NewQuizService(dispatcher),
		Payments:   services.NewPaymentService(dispatcher),
		Chat:       services.NewChatService(dispatcher),
		Admin:      services.NewAdminService(dispatcher),
		Lookups:    services.NewLookupService(dispatcher, cache),
		dispatcher: dispatcher,
	}, nil
}

// NewSavedList builds a fresh saved-documents view model. Each view should
// hold its own instance and call Load on mount.
func (c *Client) NewSavedList() *SavedList {
	return services.NewSavedList(c.Favorites)
}

// NewSearcher builds a debounced document searcher delivering through the
// given callback. A zero delay uses the default.
func (c *Client) NewSearcher(delay time.Duration, deliver func([]Document, error)) *Searcher {
	return services.NewSearcher(c.Documents, delay, deliver)
}
