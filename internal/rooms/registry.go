// Package rooms tracks which room identifiers are currently valid.
package rooms

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is the authoritative set of live room ids. Every mutating
// canvas event is validated against it before any state changes.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]time.Time),
	}
}

// Create mints a fresh room id, marks it valid and returns it.
func (r *Registry) Create() string {
	id := uuid.New().String()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[id] = time.Now()
	return id
}

// Exists reports whether id was created and not yet removed.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rooms[id]
	return ok
}

// Remove invalidates id. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
}

// CreatedAt returns when id was created, if it is still valid.
func (r *Registry) CreatedAt(id string) (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.rooms[id]
	return t, ok
}

// ListAll returns every valid room id. Diagnostics only.
func (r *Registry) ListAll() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rooms))
	for id := range r.rooms {
		ids = append(ids, id)
	}
	return ids
}
