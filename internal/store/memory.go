package store

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"pos-kiosk-demo/internal/model"
)

// memoryStore keeps sessions in process memory. Sessions are lost on restart.
type memoryStore struct {
	mu    sync.Mutex
	items *cache.Cache
}

// NewMemoryStore creates an in-memory store. A zero ttl keeps sessions for the
// lifetime of the process.
func NewMemoryStore(ttl time.Duration) Store {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, 2*ttl
	}
	return &memoryStore{items: cache.New(expiration, cleanup)}
}

func (s *memoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*model.Session).Clone(), nil
}

func (s *memoryStore) Put(_ context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set(session.Clone())
	return nil
}

func (s *memoryStore) Update(_ context.Context, id string, upsert bool, fn MutateFunc) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session *model.Session
	if v, ok := s.items.Get(id); ok {
		session = v.(*model.Session).Clone()
	} else if upsert {
		session = model.NewSession(id)
	} else {
		return nil, ErrNotFound
	}

	fn(session)
	s.set(session)
	return session.Clone(), nil
}

func (s *memoryStore) Close() error {
	s.items.Flush()
	return nil
}

// set must be called with mu held.
func (s *memoryStore) set(session *model.Session) {
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	s.items.Set(session.ID, session, cache.DefaultExpiration)
}
