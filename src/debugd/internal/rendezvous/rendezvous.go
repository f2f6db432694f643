// Package rendezvous provides a single value hand-off between a blocked consumer and
// producers that must never block.
package rendezvous

import "sync"

// Slot holds at most one pending value. Offer, Force, Drain and Close are serialized
// by one mutex, so a forced value can never race a regular offer.
type Slot[T any] struct {
	mu     sync.Mutex
	ch     chan T
	closed bool
}

// New returns an empty, open Slot.
func New[T any]() *Slot[T] {
	return &Slot[T]{ch: make(chan T, 1)}
}

// Offer stores v when the slot is open and empty. It never blocks and reports whether v was stored.
func (s *Slot[T]) Offer(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- v:
		return true
	default:
		return false
	}
}

// Force replaces any pending value with v. It is a no-op on a closed slot.
func (s *Slot[T]) Force(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.drain()
	s.ch <- v
}

// Drain discards the pending value, if any.
func (s *Slot[T]) Drain() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.drain()
	}
}

// Close makes further offers fail. A value stored before Close is still delivered.
func (s *Slot[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// Closed reports whether Close was called.
func (s *Slot[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Receive blocks until a value is available. It returns false once the slot is closed and empty.
func (s *Slot[T]) Receive() (T, bool) {
	v, ok := <-s.ch
	return v, ok
}

func (s *Slot[T]) drain() {
	select {
	case <-s.ch:
	default:
	}
}
