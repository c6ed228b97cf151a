package scene

import (
	"iter"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/gpu"
)

// Renderable is anything a scene can draw: a bare drawable.Drawable, an
// Object3D or an InstanceGroup.
type Renderable interface {
	Render(pass gpu.RenderPass)
}

// Handle is a stable index into an Arena.
type Handle int

// Arena owns renderables and hands out stable handles to them. Items are
// never removed, so a handle stays valid for the arena's lifetime. Several
// scenes may hold handles into the same arena.
type Arena struct {
	mu    *sync.RWMutex
	items []Renderable
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{mu: &sync.RWMutex{}}
}

// Add stores r and returns its handle.
func (a *Arena) Add(r Renderable) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = append(a.items, r)
	return Handle(len(a.items) - 1)
}

// Get returns the renderable behind h.
func (a *Arena) Get(h Handle) (Renderable, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if h < 0 || int(h) >= len(a.items) {
		return nil, false
	}
	return a.items[h], true
}

// Lookup returns the renderable behind h if it has type T.
//
// Parameters:
//   - a: the arena
//   - h: the handle
//
// Returns:
//   - T: the renderable
//   - bool: false if h is out of range or the renderable is not a T
func Lookup[T Renderable](a *Arena, h Handle) (T, bool) {
	r, ok := a.Get(h)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := r.(T)
	return t, ok
}

// Len returns the number of stored renderables.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}

// All yields every handle and renderable in insertion order.
func (a *Arena) All() iter.Seq2[Handle, Renderable] {
	a.mu.RLock()
	items := append([]Renderable(nil), a.items...)
	a.mu.RUnlock()
	return func(yield func(Handle, Renderable) bool) {
		for i, r := range items {
			if !yield(Handle(i), r) {
				return
			}
		}
	}
}
