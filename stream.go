package question

import "sync"

// Stream is a subscribable sequence of values. Every subscriber sees every
// value published after it subscribed, in publication order.
type Stream[T any] interface {
	// Subscribe registers fn and returns a function that removes it.
	// The returned function is safe to call more than once.
	Subscribe(fn func(T)) (unsubscribe func())
}

// emitter is the broadcast point behind every Stream. Publishing never
// holds the lock while a handler runs, so handlers may subscribe or
// unsubscribe from inside a callback.
type emitter[T any] struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(T)
	order    []int
}

func newEmitter[T any]() *emitter[T] {
	return &emitter[T]{handlers: make(map[int]func(T))}
}

func (e *emitter[T]) Subscribe(fn func(T)) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = fn
	e.order = append(e.order, id)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.handlers, id)
			for i, v := range e.order {
				if v == id {
					e.order = append(e.order[:i:i], e.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (e *emitter[T]) emit(v T) {
	e.mu.Lock()
	fns := make([]func(T), 0, len(e.order))
	for _, id := range e.order {
		fns = append(fns, e.handlers[id])
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (e *emitter[T]) len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.order)
}

// streamFunc adapts a subscribe function to the Stream interface.
type streamFunc[T any] func(fn func(T)) func()

func (f streamFunc[T]) Subscribe(fn func(T)) func() { return f(fn) }

// Map returns a stream that applies fn to every value of s. fn runs once per
// value and subscriber.
func Map[T, U any](s Stream[T], fn func(T) U) Stream[U] {
	return streamFunc[U](func(sub func(U)) func() {
		return s.Subscribe(func(v T) { sub(fn(v)) })
	})
}

// Filter returns a stream with only the values of s for which keep is true.
func Filter[T any](s Stream[T], keep func(T) bool) Stream[T] {
	return streamFunc[T](func(sub func(T)) func() {
		return s.Subscribe(func(v T) {
			if keep(v) {
				sub(v)
			}
		})
	})
}
