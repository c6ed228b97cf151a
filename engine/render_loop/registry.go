package render_loop

import (
	"iter"
	"slices"
	"sync"
)

// Registry is an insertion-ordered set of plugins keyed by a stable string ID.
// Registering an existing ID replaces the plugin and keeps its position.
type Registry struct {
	mu      *sync.RWMutex
	ids     []string
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:      &sync.RWMutex{},
		plugins: make(map[string]Plugin),
	}
}

// Register adds p under id, or replaces the plugin already registered under id.
//
// Parameters:
//   - id: the stable plugin ID
//   - p: the plugin
//
// Returns:
//   - *Registry: the registry, for chaining
func (r *Registry) Register(id string, p Plugin) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plugins[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.plugins[id] = p
	return r
}

// Get returns the plugin registered under id.
func (r *Registry) Get(id string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	return p, ok
}

// Lookup returns the plugin registered under id if it has type T.
//
// Parameters:
//   - r: the registry
//   - id: the plugin ID
//
// Returns:
//   - T: the plugin
//   - bool: false if id is missing or the plugin is not a T
func Lookup[T Plugin](r *Registry, id string) (T, bool) {
	p, ok := r.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := p.(T)
	return t, ok
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}

// IDs returns the plugin IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.ids)
}

// All yields the plugins in registration order. It iterates over a snapshot,
// so plugins may register others while being visited.
func (r *Registry) All() iter.Seq2[string, Plugin] {
	ids, plugins := r.snapshot()
	return func(yield func(string, Plugin) bool) {
		for i, id := range ids {
			if !yield(id, plugins[i]) {
				return
			}
		}
	}
}

// Backward yields the plugins in reverse registration order.
func (r *Registry) Backward() iter.Seq2[string, Plugin] {
	ids, plugins := r.snapshot()
	return func(yield func(string, Plugin) bool) {
		for i := len(ids) - 1; i >= 0; i-- {
			if !yield(ids[i], plugins[i]) {
				return
			}
		}
	}
}

// Replace swaps the contents of r for a copy of other's.
func (r *Registry) Replace(other *Registry) {
	ids, plugins := other.snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = ids
	r.plugins = make(map[string]Plugin, len(ids))
	for i, id := range ids {
		r.plugins[id] = plugins[i]
	}
}

func (r *Registry) snapshot() ([]string, []Plugin) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := slices.Clone(r.ids)
	plugins := make([]Plugin, len(ids))
	for i, id := range ids {
		plugins[i] = r.plugins[id]
	}
	return ids, plugins
}
