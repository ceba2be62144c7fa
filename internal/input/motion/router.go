package motion

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NameMouse is the logical name mouse motion is delivered under.
const NameMouse = "Mouse"

// AxisHandler receives a two axis value. For the mouse the values are
// deltas; for sticks and pads they are absolute positions in [-1, 1].
type AxisHandler func(x, y float64)

// DragHandler receives mouse deltas and reports whether it used them.
// A drag that is not held returns false so routing continues.
type DragHandler func(dx, dy float64) bool

type axisEntry struct {
	owner   uuid.UUID
	handler AxisHandler
}

type dragEntry struct {
	owner   uuid.UUID
	handler DragHandler
}

// Router dispatches analog input to registered handlers.
type Router struct {
	mu      sync.RWMutex
	axes    map[string][]axisEntry
	drags   []dragEntry
	stopped bool
}

// NewRouter creates a running router with no handlers.
func NewRouter() *Router {
	return &Router{
		axes: make(map[string][]axisEntry),
	}
}

// RegisterAxis appends an axis handler for name.
func (r *Router) RegisterAxis(name string, owner uuid.UUID, h AxisHandler) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.axes[name] = append(r.axes[name], axisEntry{owner: owner, handler: h})
}

// RegisterDrag appends a drag handler.
func (r *Router) RegisterDrag(owner uuid.UUID, h DragHandler) {
	if h == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drags = append(r.drags, dragEntry{owner: owner, handler: h})
}

// RemoveOwner drops every handler registered by owner.
func (r *Router) RemoveOwner(owner uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for name, list := range r.axes {
		kept := make([]axisEntry, 0, len(list))
		for _, e := range list {
			if e.owner == owner {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(r.axes, name)
		} else {
			r.axes[name] = kept
		}
	}

	kept := make([]dragEntry, 0, len(r.drags))
	for _, e := range r.drags {
		if e.owner == owner {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.drags = kept
	return removed
}

// Reset drops every handler. The running state is unchanged.
func (r *Router) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.axes)
	r.drags = nil
}

// Stop drops every handler and ignores input until Start.
func (r *Router) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.axes)
	r.drags = nil
	r.stopped = true
}

// Start resumes routing after Stop.
func (r *Router) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = false
}

// Running reports whether the router delivers input.
func (r *Router) Running() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.stopped
}

// HasAxis reports whether any axis handler is registered under name.
func (r *Router) HasAxis(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.axes[name]) > 0
}

// Names returns the names that have axis handlers, sorted.
func (r *Router) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.axes))
	for name := range r.axes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of axis and drag handlers.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.drags)
	for _, list := range r.axes {
		n += len(list)
	}
	return n
}

// HandleMouseMoved routes mouse motion with mouse mapping enabled.
// A held drag takes the motion; otherwise it goes to NameMouse.
func (r *Router) HandleMouseMoved(dx, dy float64) {
	if r.drag(dx, dy) {
		return
	}
	r.axis(NameMouse, dx, dy)
}

// HandleFakeMouseMoved routes mouse motion with mouse mapping disabled.
// Only drags see it.
func (r *Router) HandleFakeMouseMoved(dx, dy float64) {
	r.drag(dx, dy)
}

// HandleDirectionPad routes a pad or stick position to the axis handlers
// registered under its name and reports whether any existed.
func (r *Router) HandleDirectionPad(name string, x, y float64) bool {
	return r.axis(name, x, y)
}

func (r *Router) drag(dx, dy float64) bool {
	r.mu.RLock()
	if r.stopped || len(r.drags) == 0 {
		r.mu.RUnlock()
		return false
	}
	snapshot := make([]DragHandler, len(r.drags))
	for i, e := range r.drags {
		snapshot[i] = e.handler
	}
	r.mu.RUnlock()

	used := false
	for _, h := range snapshot {
		if h(dx, dy) {
			used = true
		}
	}
	return used
}

func (r *Router) axis(name string, x, y float64) bool {
	r.mu.RLock()
	list := r.axes[name]
	if r.stopped || len(list) == 0 {
		r.mu.RUnlock()
		return false
	}
	snapshot := make([]AxisHandler, len(list))
	for i, e := range list {
		snapshot[i] = e.handler
	}
	r.mu.RUnlock()

	for _, h := range snapshot {
		h(x, y)
	}
	return true
}
