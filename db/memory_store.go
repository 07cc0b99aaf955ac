package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"student-aid-matcher/models"
)

// MemoryStore keeps sessions in process memory. It is used when no Redis
// address is configured.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   models.Session
	expiresAt time.Time
}

// NewMemoryStore creates a store whose sessions expire after ttl
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

// Save stores a session and restarts its expiry
func (s *MemoryStore) Save(_ context.Context, session models.Session) error {
	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.sessions[session.ID] = memoryEntry{session: session, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Load returns the session, or nil if it is missing or expired
func (s *MemoryStore) Load(_ context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}
	session := e.session
	return &session, nil
}

// Delete removes a session
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// List returns the live sessions, newest first
func (s *MemoryStore) List(_ context.Context) ([]models.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	out := make([]models.SessionSummary, 0, len(s.sessions))
	for _, e := range s.sessions {
		out = append(out, e.session.Summary())
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) evictLocked() {
	now := s.now()
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
}
