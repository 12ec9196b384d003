package api

import (
	"net/http"
	"sync"
	"time"

	"postscout/session"

	"github.com/google/uuid"
)

const sessionCookie = "postscout_session"

// sessionEntry serialises actions on one interactive session.
type sessionEntry struct {
	mu       sync.Mutex
	state    *session.State
	lastSeen time.Time
}

// SessionStore keeps per-browser search state in memory.
type SessionStore struct {
	mu       sync.Mutex
	entries  map[string]*sessionEntry
	ttl      time.Duration
	newState func() *session.State
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration, newState func() *session.State) *SessionStore {
	return &SessionStore{
		entries:  make(map[string]*sessionEntry),
		ttl:      ttl,
		newState: newState,
		now:      time.Now,
	}
}

// Get returns the session named by the request cookie, creating one (and
// setting the cookie) when it is missing or expired.
func (s *SessionStore) Get(w http.ResponseWriter, r *http.Request) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evict(now)

	if c, err := r.Cookie(sessionCookie); err == nil {
		if e, ok := s.entries[c.Value]; ok {
			e.lastSeen = now
			return e
		}
	}

	id := uuid.NewString()
	e := &sessionEntry{state: s.newState(), lastSeen: now}
	s.entries[id] = e
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return e
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *SessionStore) evict(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
		}
	}
}
