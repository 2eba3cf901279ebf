// Package signal provides typed callback registries with removable handles.
package signal

// Handle allows removing a registered callback. The zero Handle is valid and
// Remove on it is a no-op. Remove is idempotent.
type Handle struct {
	remove func()
}

// Remove unregisters the callback so it no longer fires.
func (h Handle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// NewHandle wraps an arbitrary removal function.
func NewHandle(remove func()) Handle {
	return Handle{remove: remove}
}

type entry[T any] struct {
	id uint32
	fn func(T)
}

// Registry is an ordered list of callbacks taking a T payload.
// Not safe for concurrent use; scrollfx is single-threaded.
type Registry[T any] struct {
	handlers []entry[T]
	nextID   uint32
	emitting int
	stale    bool
}

// Add registers fn and returns a handle that removes it.
func (r *Registry[T]) Add(fn func(T)) Handle {
	r.nextID++
	id := r.nextID
	r.handlers = append(r.handlers, entry[T]{id: id, fn: fn})
	removed := false
	return Handle{remove: func() {
		if removed {
			return
		}
		removed = true
		r.remove(id)
	}}
}

// Emit calls every registered callback in registration order. Callbacks may
// remove themselves or others while Emit runs.
func (r *Registry[T]) Emit(v T) {
	r.emitting++
	n := len(r.handlers)
	for i := 0; i < n && i < len(r.handlers); i++ {
		if fn := r.handlers[i].fn; fn != nil {
			fn(v)
		}
	}
	r.emitting--
	if r.emitting == 0 && r.stale {
		r.compact()
	}
}

// Len returns the number of live callbacks.
func (r *Registry[T]) Len() int {
	n := 0
	for i := range r.handlers {
		if r.handlers[i].fn != nil {
			n++
		}
	}
	return n
}

// Clear removes every callback.
func (r *Registry[T]) Clear() {
	if r.emitting > 0 {
		for i := range r.handlers {
			r.handlers[i].fn = nil
		}
		r.stale = true
		return
	}
	clear(r.handlers)
	r.handlers = r.handlers[:0]
}

func (r *Registry[T]) remove(id uint32) {
	for i := range r.handlers {
		if r.handlers[i].id != id {
			continue
		}
		if r.emitting > 0 {
			// Compacting now would shift entries under the running Emit loop.
			r.handlers[i].fn = nil
			r.stale = true
			return
		}
		copy(r.handlers[i:], r.handlers[i+1:])
		r.handlers[len(r.handlers)-1] = entry[T]{}
		r.handlers = r.handlers[:len(r.handlers)-1]
		return
	}
}

func (r *Registry[T]) compact() {
	out := r.handlers[:0]
	for _, h := range r.handlers {
		if h.fn != nil {
			out = append(out, h)
		}
	}
	clear(r.handlers[len(out):])
	r.handlers = out
	r.stale = false
}
