package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seckatie/launchwatch/internal/core/spacex"
)

// DefaultSessionTTL is how long an idle page keeps its state.
const DefaultSessionTTL = 30 * time.Minute

// Registry maps page sessions to controllers. Every page load gets a new
// session, so nothing survives a reload.
type Registry struct {
	fetcher   spacex.Fetcher
	ttl       time.Duration
	now       func() time.Time
	listeners listeners

	mu       sync.RWMutex
	sessions map[string]*Controller
}

// NewRegistry creates a registry. A ttl <= 0 uses DefaultSessionTTL.
func NewRegistry(fetcher spacex.Fetcher, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		fetcher:   fetcher,
		ttl:       ttl,
		now:       time.Now,
		listeners: make(listeners),
		sessions:  make(map[string]*Controller),
	}
}

// RegisterEventListener registers a listener on every controller the
// registry creates. Call it before serving requests.
func (r *Registry) RegisterEventListener(kind EventKind, listener EventListener) {
	r.listeners[kind] = append(r.listeners[kind], listener)
}

// New creates a session and returns its id and controller. The controller
// gets its own copy of the registry's listeners.
func (r *Registry) New() (string, *Controller) {
	id := uuid.NewString()
	c := newController(r.fetcher, r.now, r.listeners.clone())

	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()
	return id, c
}

// GetOrNew returns the controller for id, or a new session when id is
// unknown or has expired.
func (r *Registry) GetOrNew(id string) (string, *Controller) {
	if c, ok := r.Get(id); ok {
		return id, c
	}
	return r.New()
}

// Reissue moves the controller for id to a fresh id, so the old id can only
// be used once.
func (r *Registry) Reissue(id string) (string, *Controller, bool) {
	newID := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sessions[id]
	if !ok {
		return "", nil, false
	}
	delete(r.sessions, id)
	r.sessions[newID] = c
	return newID, c, true
}

// Touch marks the session as active. It reports whether the session exists.
func (r *Registry) Touch(id string) bool {
	c, ok := r.Get(id)
	if ok {
		c.touch()
	}
	return ok
}

// Get returns the controller for id.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[id]
	return c, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, c := range r.sessions {
		if c.LastActive().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("Expired %d idle dashboard session(s)", n)
			}
		}
	}
}
