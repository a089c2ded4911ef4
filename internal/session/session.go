// Package session holds the client-side view of the signed-in identity.
// Tokens are issued by the external identity provider; the client stores
// the bearer token, reads identity claims out of it for pre-filling forms
// and role-gating commands, and attaches it to API requests. Token
// verification is the backend's job, not ours.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/bookcourier/bookcourier/pkg/errors"
)

// Role constants define the roles the backend assigns to accounts.
const (
	RoleUser      = "user"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

// ValidRoles returns the set of valid user roles.
func ValidRoles() []string {
	return []string{RoleUser, RoleLibrarian, RoleAdmin}
}

// IsValidRole checks whether the given role string is a valid user role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// Identity is the subset of token claims the client cares about.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

// claims mirrors the identity provider's token payload.
type claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Session manages the persisted bearer token and the identity derived
// from it. Safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	tokenPath string
	token     string
	identity  Identity
	expiresAt time.Time
}

// Open loads any previously persisted token from tokenPath. A missing or
// unreadable token file yields an unauthenticated session, not an error.
func Open(tokenPath string) *Session {
	s := &Session{tokenPath: tokenPath}

	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return s
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return s
	}
	if err := s.adopt(token); err != nil {
		// Corrupt or unparseable stored token: start signed out.
		return &Session{tokenPath: tokenPath}
	}
	return s
}

// SignIn adopts and persists a bearer token obtained from the identity
// provider.
func (s *Session) SignIn(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperrors.InvalidInput("token is required")
	}

	if err := s.adopt(token); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.tokenPath, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// SignOut clears the in-memory session and removes the persisted token.
func (s *Session) SignOut() error {
	s.mu.Lock()
	s.token = ""
	s.identity = Identity{}
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// adopt parses the token claims and stores them. The signature is NOT
// verified here: the client has no signing secret, and the backend rejects
// forged tokens anyway. Expired tokens are rejected so the user gets a
// clear "please sign in" instead of a backend 401.
func (s *Session) adopt(token string) error {
	var c claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return apperrors.InvalidInput("token is not a valid JWT")
	}

	id := Identity{
		UserID: c.UserID,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.Role,
	}
	if id.UserID == "" {
		id.UserID = c.Subject
	}
	if id.Role == "" {
		id.Role = RoleUser
	}

	var expiresAt time.Time
	if c.ExpiresAt != nil {
		expiresAt = c.ExpiresAt.Time
		if time.Now().After(expiresAt) {
			return apperrors.Unauthorized("token has expired, please sign in again")
		}
	}

	s.mu.Lock()
	s.token = token
	s.identity = id
	s.expiresAt = expiresAt
	s.mu.Unlock()
	return nil
}

// Authenticated reports whether a usable token is present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return false
	}
	return true
}

// Token returns the bearer token, or empty when signed out or expired.
func (s *Session) Token() string {
	if !s.Authenticated() {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the identity claims of the signed-in user.
func (s *Session) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Role returns the signed-in user's role, or empty when signed out.
func (s *Session) Role() string {
	if !s.Authenticated() {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.Role
}

// HasRole reports whether the signed-in user holds one of the given roles.
func (s *Session) HasRole(roles ...string) bool {
	current := s.Role()
	if current == "" {
		return false
	}
	for _, r := range roles {
		if current == r {
			return true
		}
	}
	return false
}
