// Package session holds in-flight onboarding conversations in memory.
// Sessions are keyed by phone number and are intentionally not persisted:
// an engine restart loses them and the user simply starts over.
package session

import (
	"sync"
	"time"

	"github.com/investbot-app/investbot/internal/model"
)

// Store is a concurrency-safe registry of onboarding sessions.
type Store struct {
	now      func() time.Time
	sessions map[string]*model.OnboardingSession
	mu       sync.RWMutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*model.OnboardingSession),
		now:      time.Now,
	}
}

// Get returns the session for a phone number, or nil when none exists.
// The returned value is a copy; mutations must go through Put.
func (s *Store) Get(phone string) *model.OnboardingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[phone]
	if !ok {
		return nil
	}
	copied := *sess
	return &copied
}

// Put stores or replaces the session for its phone number.
func (s *Store) Put(sess *model.OnboardingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	copied.UpdatedAt = s.now()
	s.sessions[sess.Phone] = &copied
}

// Delete removes the session for a phone number, if any.
func (s *Store) Delete(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, phone)
}

// Count returns the number of in-flight sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
