package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/fretwork/internal/apperr"
)

// Session is one client's page state.
type Session struct {
	ID      uuid.UUID `json:"id"`
	State   State     `json:"state"`
	Updated time.Time `json:"updated"`
}

// Sessions keeps page state per client in memory.
type Sessions struct {
	mu    sync.Mutex
	items map[uuid.UUID]*Session
	now   func() time.Time
}

// NewSessions returns an empty store.
func NewSessions() *Sessions {
	return &Sessions{items: make(map[uuid.UUID]*Session), now: time.Now}
}

// Create starts a session in the default state.
func (s *Sessions) Create() Session {
	sess := &Session{ID: uuid.New(), State: DefaultState(), Updated: s.now()}
	s.mu.Lock()
	s.items[sess.ID] = sess
	s.mu.Unlock()
	return *sess
}

// Get returns a copy of the session.
func (s *Sessions) Get(id uuid.UUID) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[id]
	if !ok {
		return Session{}, fmt.Errorf("ui: session %s: %w", id, apperr.ErrNotFound)
	}
	return *sess, nil
}

// Apply runs e against the session's state and stores the result.
func (s *Sessions) Apply(id uuid.UUID, e Event) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[id]
	if !ok {
		return Session{}, fmt.Errorf("ui: session %s: %w", id, apperr.ErrNotFound)
	}
	next, err := Apply(sess.State, e)
	if err != nil {
		return *sess, err
	}
	sess.State = next
	sess.Updated = s.now()
	return *sess, nil
}

// Delete drops a session. Unknown ids are ignored.
func (s *Sessions) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Len is the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Prune removes sessions idle for longer than ttl and returns how many
// were removed.
func (s *Sessions) Prune(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.items {
		if sess.Updated.Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	return n
}
