package client

import (
	"sync"

	"github.com/mediakeep/mediakeep"
	"github.com/mediakeep/mediakeep/internal/auth"
)

// Session gates the client UI behind a static credential check. The server
// API itself is unauthenticated; this flag lives only in client memory and
// is lost on restart.
type Session struct {
	// credentials maps username to a bcrypt hash.
	credentials map[string]string

	mu       sync.Mutex
	loggedIn bool
	username string
}

// NewSession creates a session over the fixed credential list.
func NewSession(credentials map[string]string) *Session {
	creds := make(map[string]string, len(credentials))
	for user, hash := range credentials {
		creds[user] = hash
	}
	return &Session{credentials: creds}
}

// Login verifies the credentials and flips the session flag. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *Session) Login(username, password string) error {
	hash, ok := s.credentials[username]
	if !ok {
		return mediakeep.Unauthorized("invalid username or password")
	}
	if err := auth.VerifyPassword(password, hash); err != nil {
		return mediakeep.Unauthorized("invalid username or password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.username = username
	return nil
}

// Logout clears the session flag.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.username = ""
}

// LoggedIn reports whether a login succeeded this session.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Username returns the logged-in user, or "" when logged out.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}
