package notification

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"pos-kiosk-demo/internal/model"
)

// Registry holds the push subscriptions attached to each session.
type Registry struct {
	mu   sync.Mutex
	subs *cache.Cache // session ID -> map[endpoint]model.PushSubscription
}

// NewRegistry creates an empty registry. A zero ttl keeps subscriptions until removed.
func NewRegistry(ttl time.Duration) *Registry {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, 2*ttl
	}
	return &Registry{subs: cache.New(expiration, cleanup)}
}

// Add creates or replaces the subscription for (SessionID, Endpoint).
func (r *Registry) Add(sub model.PushSubscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	byEndpoint := r.endpoints(sub.SessionID)
	byEndpoint[sub.Endpoint] = sub
	r.subs.Set(sub.SessionID, byEndpoint, cache.DefaultExpiration)
}

// Remove deletes one subscription and reports whether it existed.
func (r *Registry) Remove(sessionID, endpoint string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	byEndpoint := r.endpoints(sessionID)
	if _, ok := byEndpoint[endpoint]; !ok {
		return false
	}
	delete(byEndpoint, endpoint)
	if len(byEndpoint) == 0 {
		r.subs.Delete(sessionID)
	} else {
		r.subs.Set(sessionID, byEndpoint, cache.DefaultExpiration)
	}
	return true
}

// List returns a snapshot of the subscriptions for a session.
func (r *Registry) List(sessionID string) []model.PushSubscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	byEndpoint := r.endpoints(sessionID)
	out := make([]model.PushSubscription, 0, len(byEndpoint))
	for _, sub := range byEndpoint {
		out = append(out, sub)
	}
	return out
}

// endpoints must be called with mu held. The returned map is a private copy.
func (r *Registry) endpoints(sessionID string) map[string]model.PushSubscription {
	out := make(map[string]model.PushSubscription)
	if v, ok := r.subs.Get(sessionID); ok {
		for k, sub := range v.(map[string]model.PushSubscription) {
			out[k] = sub
		}
	}
	return out
}
