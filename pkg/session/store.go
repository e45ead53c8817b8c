// Package session tracks who the assistant is talking to. Contexts are kept
// per session id so concurrent users never share identity; nothing here is
// persisted and every context is rebuilt when a session starts.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Role is the account type bound to a session.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
)

// Context is the identity for one conversational session.
type Context struct {
	UserID      string `json:"userId"`
	Role        Role   `json:"role"`
	SessionID   string `json:"sessionId"`
	CandidateID string `json:"candidateId,omitempty"`
	CompanyID   string `json:"companyId,omitempty"`
}

// Update carries a partial set of context fields to merge. Nil fields are
// left untouched.
type Update struct {
	Role        *Role
	CandidateID *string
	CompanyID   *string
}

// Store holds the live contexts keyed by session id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Context
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]Context)}
}

// Option customizes a context at creation time.
type Option func(*Context)

func WithCandidateID(id string) Option {
	return func(c *Context) { c.CandidateID = id }
}

func WithCompanyID(id string) Option {
	return func(c *Context) { c.CompanyID = id }
}

// Create builds a fresh context and stores it. The session id derives from the
// user id and creation time, which keeps concurrent sessions for the same user
// distinct in practice.
func (s *Store) Create(userID string, role Role, opts ...Option) Context {
	ctx := Context{
		UserID:    userID,
		Role:      role,
		SessionID: fmt.Sprintf("sess-%s-%d", userID, time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(&ctx)
	}

	s.mu.Lock()
	s.sessions[ctx.SessionID] = ctx
	s.mu.Unlock()
	return ctx
}

// Get returns the live context for a session. Callers must treat a false
// result as a hard precondition failure for any identity-requiring operation.
func (s *Store) Get(sessionID string) (Context, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, ok := s.sessions[sessionID]
	return ctx, ok
}

// Apply merges partial fields into the live context. Updating a session that
// does not exist is a no-op, not an error.
func (s *Store) Apply(sessionID string, upd Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	if upd.Role != nil {
		ctx.Role = *upd.Role
	}
	if upd.CandidateID != nil {
		ctx.CandidateID = *upd.CandidateID
	}
	if upd.CompanyID != nil {
		ctx.CompanyID = *upd.CompanyID
	}
	s.sessions[sessionID] = ctx
}

// Clear drops a session's context. Clearing twice is fine.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// ActiveIDs lists the live session ids, mostly for diagnostics.
func (s *Store) ActiveIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// IsCandidate reports whether the context belongs to a candidate account with
// a bound candidate id.
func (c Context) IsCandidate() bool {
	return c.Role == RoleCandidate && strings.TrimSpace(c.CandidateID) != ""
}

// IsCompany reports whether the context belongs to a company account with a
// bound company id.
func (c Context) IsCompany() bool {
	return c.Role == RoleCompany && strings.TrimSpace(c.CompanyID) != ""
}
