// Package session holds the rendering-side view of the authenticated
// identity, so clients can skip redundant profile fetches.
package session

import (
	"errors"
	"fmt"
	"net/mail"
	"sync"
)

// ErrInvalidSession reports a payload that fails the session schema.
var ErrInvalidSession = errors.New("invalid session payload")

// Session is the display-only identity projection kept client-side. It never
// carries the password hash.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Validate enforces the fixed session schema before anything is cached.
func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidSession)
	}
	if s.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidSession)
	}
	if _, err := mail.ParseAddress(s.Email); err != nil {
		return fmt.Errorf("%w: malformed email", ErrInvalidSession)
	}
	return nil
}

// Cache holds the currently known identity for one client. Its lifetime is
// bound to the client session; nothing is persisted. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	current *Session
}

func NewCache() *Cache { return &Cache{} }

// Login validates and stores the identity. On validation failure the error
// propagates and the previously held identity is kept.
func (c *Cache) Login(s Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &s
	return nil
}

// Logout clears the held identity.
func (c *Cache) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Current returns the cached identity, if any.
func (c *Cache) Current() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Session{}, false
	}
	return *c.current, true
}
