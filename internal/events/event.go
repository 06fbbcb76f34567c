package events

import (
	"sync"
)

// Event is a pub/sub point carrying values of type T. Listeners register
// either a channel (non-blocking sends, full channels are skipped) or a
// callback (invoked synchronously on the notifying goroutine).
type Event[T any] struct {
	mu        sync.RWMutex
	channels  map[uint64]chan<- T
	callbacks map[uint64]func(T)
	nextID    uint64

	// replay remembers the last value and hands it to new listeners
	replay    bool
	last      T
	hasLatest bool
}

// NewEvent creates an Event. With replay set, listeners registered after the
// first Notify receive the most recent value straight away.
func NewEvent[T any](replay bool) *Event[T] {
	return &Event[T]{
		channels:  make(map[uint64]chan<- T),
		callbacks: make(map[uint64]func(T)),
		replay:    replay,
	}
}

// Listen registers a channel and returns its deregistration function
func (e *Event[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.channels[id] = ch
	last, send := e.last, e.replay && e.hasLatest
	e.mu.Unlock()

	if send {
		select {
		case ch <- last:
		default:
		}
	}

	return func() {
		e.mu.Lock()
		delete(e.channels, id)
		e.mu.Unlock()
	}
}

// Subscribe registers a callback and returns its deregistration function
func (e *Event[T]) Subscribe(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.callbacks[id] = callback
	last, send := e.last, e.replay && e.hasLatest
	e.mu.Unlock()

	// Outside the lock so the callback may re-enter the event
	if send {
		callback(last)
	}

	return func() {
		e.mu.Lock()
		delete(e.callbacks, id)
		e.mu.Unlock()
	}
}

// Notify delivers value to every listener
func (e *Event[T]) Notify(value T) {
	e.mu.Lock()
	if e.replay {
		e.last = value
		e.hasLatest = true
	}
	channels := make([]chan<- T, 0, len(e.channels))
	for _, ch := range e.channels {
		channels = append(channels, ch)
	}
	callbacks := make([]func(T), 0, len(e.callbacks))
	for _, cb := range e.callbacks {
		callbacks = append(callbacks, cb)
	}
	e.mu.Unlock()

	for _, ch := range channels {
		select {
		case ch <- value:
		default:
		}
	}
	for _, cb := range callbacks {
		cb(value)
	}
}

// Latest returns the last notified value when replay is enabled
func (e *Event[T]) Latest() (T, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last, e.hasLatest
}

// ListenerCount returns the number of registered channels and callbacks
func (e *Event[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.channels) + len(e.callbacks)
}
