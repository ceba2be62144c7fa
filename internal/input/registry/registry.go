// Package registry maps logical key names to the boolean handlers that
// actions register for them.
//
// Every entry records the owner that created it, so an action can tear
// down exactly its own handlers and an action set can drop everything at
// once. Handlers for one name run in registration order.
package registry

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Handler receives the pressed state of a logical key.
type Handler func(pressed bool)

// Entry is one registration record.
type Entry struct {
	Name    string
	Owner   uuid.UUID
	Handler Handler
}

// Registry holds handler entries keyed by logical key name.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string][]Entry),
	}
}

// Register appends handler to the list for name.
// A nil handler is ignored.
func (r *Registry) Register(name string, owner uuid.UUID, handler Handler) {
	if handler == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = append(r.entries[name], Entry{
		Name:    name,
		Owner:   owner,
		Handler: handler,
	})
}

// Invoke calls every handler registered under name, in order, and reports
// whether any existed. An unknown name is a no-op.
//
// Handlers run outside the lock on a snapshot of the list. They must not
// register or remove entries; such changes belong to the next event.
func (r *Registry) Invoke(name string, pressed bool) bool {
	r.mu.RLock()
	list := r.entries[name]
	if len(list) == 0 {
		r.mu.RUnlock()
		return false
	}
	snapshot := make([]Handler, len(list))
	for i, e := range list {
		snapshot[i] = e.Handler
	}
	r.mu.RUnlock()

	for _, h := range snapshot {
		h(pressed)
	}
	return true
}

// Has reports whether any handler is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[name]) > 0
}

// Count returns the number of handlers registered under name.
func (r *Registry) Count(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[name])
}

// Len returns the total number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, list := range r.entries {
		n += len(list)
	}
	return n
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemoveOwner deletes every entry created by owner and returns how many
// were removed. Order of the remaining entries is preserved.
func (r *Registry) RemoveOwner(owner uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for name, list := range r.entries {
		kept := list[:0]
		for _, e := range list {
			if e.Owner == owner {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(r.entries, name)
			continue
		}
		// Clear the tail so dropped closures can be collected.
		for i := len(kept); i < len(list); i++ {
			list[i] = Entry{}
		}
		r.entries[name] = kept
	}
	return removed
}

// InvalidateAll removes every entry. Safe to call repeatedly.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entries)
}
