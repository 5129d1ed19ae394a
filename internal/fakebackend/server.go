// Package fakebackend is an in-memory stand-in for the JotMe PHP backend and
// its OAuth2 token endpoint. Tests mount Router on an httptest.Server;
// cmd/fakebackend serves it for local runs of the CLI.
package fakebackend

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/jotme/internal/client/models"
	"github.com/dmitrijs2005/jotme/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// TimeLayout is the backend's timestamp format.
const TimeLayout = "2006-01-02 15:04:05"

// RecordedRequest is what the server saw of one call.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Form          url.Values
	FileName      string
	FileType      string
	FileSize      int64
}

type failure struct {
	status int
	body   string
}

type userRecord struct {
	id    int64
	name  string
	email string
}

// Server holds all backend state. Its zero value is not usable; use New.
type Server struct {
	mu sync.Mutex

	log        logging.Logger
	now        func() time.Time
	signingKey []byte
	idName     string
	idEmail    string
	openAuth   bool

	tokens    map[string]bool
	users     map[string]*userRecord
	jots      map[string][]models.Jot
	todos     map[string][]models.Todo
	questions map[string][]models.QandA
	failures  map[string][]failure
	requests  []RecordedRequest
	nextID    int64
}

type Option func(*Server)

// WithClock sets the time source for created_at fields.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLogger sets the server's logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithIdentity sets the name and email put into issued ID tokens.
func WithIdentity(name, email string) Option {
	return func(s *Server) {
		s.idName = name
		s.idEmail = email
	}
}

// WithSigningKey sets the HMAC key for issued ID tokens.
func WithSigningKey(key []byte) Option {
	return func(s *Server) { s.signingKey = key }
}

// WithOpenAuth makes the backend accept any non-empty bearer token.
func WithOpenAuth() Option {
	return func(s *Server) { s.openAuth = true }
}

func New(opts ...Option) *Server {
	s := &Server{
		log:        logging.Nop(),
		now:        time.Now,
		signingKey: []byte("fakebackend-signing-key"),
		idName:     "Jot Tester",
		idEmail:    "tester@example.com",
		tokens:     make(map[string]bool),
		users:      make(map[string]*userRecord),
		jots:       make(map[string][]models.Jot),
		todos:      make(map[string][]models.Todo),
		questions:  make(map[string][]models.QandA),
		failures:   make(map[string][]failure),
		nextID:     1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Router returns the HTTP handler. Backend routes live under prefix, which
// may be "" or a path such as "/jotme".
func (s *Server) Router(prefix string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/oauth/token", s.handleToken)

	r.Route(prefix+"/", func(api chi.Router) {
		api.Use(s.record)
		api.Use(s.injectFailures)
		api.Use(s.requireBearer)

		api.Post("/jots/addJotForUser.php", s.handleAddJot)
		api.Get("/jots/getUserJots.php", s.handleHistory)
		api.Post("/jots/getUserJots.php", s.handleHistory)
		api.Post("/jots/completeTodo.php", s.handleCompleteTodo)
		api.Post("/qa/askQuestion.php", s.handleAsk)
		api.Post("/user/register.php", s.handleRegister)
		api.Post("/user/startup.php", s.handleStartup)
	})

	return r
}

// AcceptToken marks token as valid for bearer auth.
func (s *Server) AcceptToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = true
}

// RevokeTokens invalidates every token issued so far, as if they expired.
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]bool)
}

// FailNext makes the next call to path (without the router prefix) answer
// with status and body. Calls queue up.
func (s *Server) FailNext(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = append(s.failures[path], failure{status: status, body: body})
}

// Requests returns every recorded backend call in arrival order.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// SeedJot stores a jot for email and returns it.
func (s *Server) SeedJot(email, text, createdAt string) models.Jot {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := models.Jot{ID: s.id(), Text: text, CreatedAt: createdAt}
	s.jots[email] = append(s.jots[email], j)
	return j
}

// SeedTodo stores an open todo for email and returns it.
func (s *Server) SeedTodo(email, text string, due *string) models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := models.Todo{ID: s.id(), Text: text, DueDate: due}
	s.todos[email] = append(s.todos[email], t)
	return t
}

// RegisterUser creates (or returns) the backend user for email.
func (s *Server) RegisterUser(name, email string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.register(name, email).id
}

// Todos returns the todos stored for email, completed ones included.
func (s *Server) Todos(email string) []models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Todo, len(s.todos[email]))
	copy(out, s.todos[email])
	return out
}

// id must be called with mu held.
func (s *Server) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// register must be called with mu held.
func (s *Server) register(name, email string) *userRecord {
	key := strings.ToLower(email)
	if u, ok := s.users[key]; ok {
		if name != "" {
			u.name = name
		}
		return u
	}
	u := &userRecord{id: s.id(), name: name, email: email}
	s.users[key] = u
	return u
}
