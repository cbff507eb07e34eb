// Package mockapi is an in-process fake of the Edura backend. It implements
// just enough of the HTTP contract the client consumes - login, document
// listings in every envelope shape the real deployments have produced,
// the saved/favorite relation, profile, and lookups - to develop and demo
// against without a backend.
package mockapi

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/edura-app/edura-go/core"
)

// Envelope selects the shape documents listings are wrapped in, mirroring
// the inconsistency of real deployments.
type Envelope string

const (
	EnvelopeBare      Envelope = "bare"      // [...]
	EnvelopeDocuments Envelope = "documents" // {"documents":[...]}
	EnvelopeData      Envelope = "data"      // {"data":[...],"total":N}
	EnvelopeOther     Envelope = "other"     // {"total":N,"results":[...]}
)

type Options struct {
	// Users maps username to password. Empty means one default user
	// ("bob" / "secret").
	Users map[string]string
	// Envelope for document listings; defaults to EnvelopeData.
	Envelope Envelope
	// Documents seeds the listing; empty means a small fixture set.
	Documents []core.Document
}

// Server holds the mutable fake state behind the fiber app.
type Server struct {
	mu       sync.Mutex
	users    map[string]string
	tokens   map[string]string // token -> username
	docs     []core.Document
	saved    map[string]map[string]bool // username -> doc key set
	envelope Envelope
}

// New builds the fake backend and its fiber app.
func New(opts Options) (*Server, *fiber.App) {
	users := opts.Users
	if len(users) == 0 {
		users = map[string]string{"bob": "secret"}
	}
	docs := opts.Documents
	if len(docs) == 0 {
		docs = []core.Document{
			{ID: "1", Title: "Calculus I Lecture Notes", Views: 120, Pages: 34, SchoolName: "HUST"},
			{ID: "2", Title: "Organic Chemistry Summary", Views: 87, Pages: 12, SchoolName: "VNU"},
			{ID: "3", Title: "Data Structures Cheat Sheet", Views: 301, Pages: 6, SchoolName: "HUST"},
		}
	}
	envelope := opts.Envelope
	if envelope == "" {
		envelope = EnvelopeData
	}

	s := &Server{
		users:    users,
		tokens:   make(map[string]string),
		docs:     docs,
		saved:    make(map[string]map[string]bool),
		envelope: envelope,
	}

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/login", s.login)
	api.Get("/documents", s.listDocuments)
	api.Get("/documents/:id", s.getDocument)
	api.Post("/documents/:id/view", s.incrementViews)
	api.Post("/mobile/documents/favorite/:id", s.toggleFavorite)
	api.Get("/mobile/documents/saved", s.listSaved)
	api.Get("/profile/me", s.me)
	api.Get("/lookups/schools", s.schools)
	api.Get("/lookups/categories", s.categories)

	return s, app
}

func (s *Server) login(c fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	password, ok := s.users[input.Username]
	if !ok || password != input.Password {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid username or password",
		})
	}

	token := uuid.NewString()
	s.tokens[token] = input.Username

	return c.JSON(fiber.Map{
		"token": token,
		"user":  core.User{Username: input.Username, FullName: displayName(input.Username)},
	})
}

func (s *Server) listDocuments(c fiber.Ctx) error {
	search := strings.ToLower(c.Query("search"))

	s.mu.Lock()
	matched := make([]core.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if search == "" || strings.Contains(strings.ToLower(doc.Title), search) {
			matched = append(matched, doc)
		}
	}
	envelope := s.envelope
	s.mu.Unlock()

	switch envelope {
	case EnvelopeBare:
		return c.JSON(matched)
	case EnvelopeDocuments:
		return c.JSON(fiber.Map{"documents": matched})
	case EnvelopeOther:
		return c.JSON(fiber.Map{"total": len(matched), "results": matched})
	default:
		return c.JSON(fiber.Map{"data": matched, "total": len(matched)})
	}
}

func (s *Server) getDocument(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.Key() == c.Params("id") {
			return c.JSON(doc)
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "document not found",
	})
}

func (s *Server) incrementViews(c fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].Key() == c.Params("id") {
			s.docs[i].Views++
			return c.JSON(fiber.Map{"views": s.docs[i].Views})
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "document not found",
	})
}

func (s *Server) toggleFavorite(c fiber.Ctx) error {
	username, ok := s.authenticate(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	var input struct {
		Favorite bool `json:"favorite"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.saved[username]
	if set == nil {
		set = make(map[string]bool)
		s.saved[username] = set
	}
	if input.Favorite {
		set[c.Params("id")] = true
	} else {
		delete(set, c.Params("id"))
	}
	return c.JSON(fiber.Map{"favorite": input.Favorite})
}

func (s *Server) listSaved(c fiber.Ctx) error {
	username, ok := s.authenticate(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]core.Document, 0)
	for _, doc := range s.docs {
		if s.saved[username][doc.Key()] {
			items = append(items, doc)
		}
	}
	return c.JSON(fiber.Map{"items": items})
}

func (s *Server) me(c fiber.Ctx) error {
	username, ok := s.authenticate(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}
	return c.JSON(core.User{Username: username, FullName: displayName(username)})
}

func (s *Server) schools(c fiber.Ctx) error {
	return c.JSON([]core.School{
		{ID: "hust", Name: "Hanoi University of Science and Technology"},
		{ID: "vnu", Name: "Vietnam National University"},
	})
}

func (s *Server) categories(c fiber.Ctx) error {
	return c.JSON([]core.Category{
		{ID: "math", Name: "Mathematics"},
		{ID: "chem", Name: "Chemistry"},
		{ID: "cs", Name: "Computer Science"},
	})
}

// authenticate resolves the bearer token to a username.
func (s *Server) authenticate(c fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) <= 7 || authHeader[:7] != "Bearer " {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.tokens[authHeader[7:]]
	return username, ok
}

// SetEnvelope switches the listing envelope at runtime, for exercising the
// client's normalizer against every shape.
func (s *Server) SetEnvelope(e Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelope = e
}

// SaveFor marks a document as saved for a user directly, bypassing HTTP.
func (s *Server) SaveFor(username, docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.saved[username]
	if set == nil {
		set = make(map[string]bool)
		s.saved[username] = set
	}
	set[docID] = true
}

func displayName(username string) string {
	if username == "" {
		return ""
	}
	return strings.ToUpper(username[:1]) + username[1:]
}
