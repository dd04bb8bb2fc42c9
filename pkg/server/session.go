package server

import (
	"sync"
	"time"

	"github.com/matst80/learn-finder/pkg/app"
)

type AppFactory func(sessionId string) *app.App

type sessionEntry struct {
	app      *app.App
	lastSeen time.Time
}

// SessionStore keeps one App per session cookie.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	factory  AppFactory
	now      func() time.Time
}

func NewSessionStore(factory AppFactory) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		factory:  factory,
		now:      time.Now,
	}
}

// Get returns the App for the session, creating it on first use.
func (s *SessionStore) Get(sessionId string) *app.App {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionId]
	if !ok {
		entry = &sessionEntry{app: s.factory(sessionId)}
		s.sessions[sessionId] = entry
		activeSessions.Inc()
	}
	entry.lastSeen = s.now()
	return entry.app
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune closes and forgets sessions idle for longer than maxIdle.
func (s *SessionStore) Prune(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)
	s.mu.Lock()
	expired := make([]*app.App, 0)
	for id, entry := range s.sessions {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, entry.app)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
	for _, a := range expired {
		a.Close()
	}
	activeSessions.Sub(float64(len(expired)))
	return len(expired)
}

// PruneEvery runs Prune on an interval until stop is closed.
func (s *SessionStore) PruneEvery(interval, maxIdle time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Prune(maxIdle)
		}
	}
}

func (s *SessionStore) Close() {
	s.mu.Lock()
	apps := make([]*app.App, 0, len(s.sessions))
	for _, entry := range s.sessions {
		apps = append(apps, entry.app)
	}
	activeSessions.Sub(float64(len(s.sessions)))
	s.sessions = make(map[string]*sessionEntry)
	s.mu.Unlock()
	for _, a := range apps {
		a.Close()
	}
}
