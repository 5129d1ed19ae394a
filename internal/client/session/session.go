// Package session holds the process-wide authentication state of the JotMe
// client: the identity fields and the current bearer token.
//
// Store is safe for concurrent use. Readers take a Snapshot, an immutable
// copy, so a request built from it never observes a half-applied refresh.
package session

import "sync"

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	UserID        *int64
	UserName      string
	UserEmail     string
	AccessToken   string
	Authenticated bool
}

// UserIDOrZero returns the backend user id, or 0 when the user has not been
// registered yet.
func (s Snapshot) UserIDOrZero() int64 {
	if s.UserID == nil {
		return 0
	}
	return *s.UserID
}

// HasToken reports whether a bearer token is present.
func (s Snapshot) HasToken() bool {
	return s.AccessToken != ""
}

// Identity is what a sign-in or restore yields.
type Identity struct {
	UserName    string
	UserEmail   string
	AccessToken string
}

type Store struct {
	mu    sync.RWMutex
	state Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	if s.state.UserID != nil {
		id := *s.state.UserID
		snap.UserID = &id
	}
	return snap
}

// SignIn marks the session authenticated with the given identity. Empty
// fields in id keep their current values, except AccessToken, which is
// always replaced.
func (s *Store) SignIn(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id.UserName != "" {
		s.state.UserName = id.UserName
	}
	if id.UserEmail != "" {
		s.state.UserEmail = id.UserEmail
	}
	s.state.AccessToken = id.AccessToken
	s.state.Authenticated = true
}

// SetAccessToken replaces the bearer token only.
func (s *Store) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.AccessToken = token
}

// SetUser stores the backend user record, as returned by registration or
// loaded from local settings.
func (s *Store) SetUser(userID int64, userName, userEmail string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserID = &userID
	s.state.UserName = userName
	s.state.UserEmail = userEmail
	s.state.Authenticated = true
}

// ClearUser drops the backend user record (id, name and email) and keeps the
// token. Used when the signed-in identity no longer matches the stored user.
func (s *Store) ClearUser() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserID = nil
	s.state.UserName = ""
	s.state.UserEmail = ""
}

// Clear resets the session to its signed-out state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Snapshot{}
}
