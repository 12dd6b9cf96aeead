package server

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/talentscout/screener/internal/interview"
)

// Session pairs a conversation state with its own mutex, so concurrent
// requests for the same session are serialized while different sessions stay
// fully independent.
type Session struct {
	mu    sync.Mutex
	State *interview.State
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionRepository keeps live sessions in memory with a TTL, so abandoned
// conversations expire on their own.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Save(session *Session) {
	r.cache.Set(session.State.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *SessionRepository) Len() int {
	return r.cache.ItemCount()
}
