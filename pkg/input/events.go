// Package input normalizes pointer and touch events from display space
// into an effect's internal coordinate space and routes them to the
// components that opted into interactivity.
package input

import "sync"

// PointerEvent is a pointer or touch position in display (client) pixels,
// relative to the mount point's top-left corner.
type PointerEvent struct {
	X float64
	Y float64
}

// Source fans pointer and touch movement out to subscribers. A mount point
// owns one source; the router subscribes during mount and unsubscribes on
// teardown, so no listener outlives the mount.
type Source struct {
	mu      sync.Mutex
	nextID  int
	pointer map[int]func(PointerEvent)
	touch   map[int]func(PointerEvent)
}

// NewSource creates an empty event source.
func NewSource() *Source {
	return &Source{
		pointer: make(map[int]func(PointerEvent)),
		touch:   make(map[int]func(PointerEvent)),
	}
}

// OnPointerMove subscribes to pointer movement. The returned function
// cancels the subscription.
func (s *Source) OnPointerMove(fn func(PointerEvent)) func() {
	return s.subscribe(s.pointer, fn)
}

// OnTouchMove subscribes to touch movement. The returned function cancels
// the subscription.
func (s *Source) OnTouchMove(fn func(PointerEvent)) func() {
	return s.subscribe(s.touch, fn)
}

func (s *Source) subscribe(m map[int]func(PointerEvent), fn func(PointerEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	m[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(m, id)
	}
}

// PointerMove dispatches a pointer movement to all subscribers.
func (s *Source) PointerMove(x, y float64) {
	for _, fn := range s.snapshot(s.pointer) {
		fn(PointerEvent{X: x, Y: y})
	}
}

// TouchMove dispatches a touch movement to all subscribers. It returns
// true when at least one subscriber consumed the event, in which case the
// embedder should suppress the default scroll behavior.
func (s *Source) TouchMove(x, y float64) bool {
	listeners := s.snapshot(s.touch)
	for _, fn := range listeners {
		fn(PointerEvent{X: x, Y: y})
	}
	return len(listeners) > 0
}

func (s *Source) snapshot(m map[int]func(PointerEvent)) []func(PointerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]func(PointerEvent), 0, len(m))
	for _, fn := range m {
		out = append(out, fn)
	}
	return out
}

// ListenerCount returns the number of live subscriptions across both
// event kinds.
func (s *Source) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pointer) + len(s.touch)
}

// PointerState is an explicitly shared, passively-read pointer location.
// Components that want the legacy ambient position opt in by holding a
// reference to the same PointerState; nothing is stored on a global or on
// the scene root.
type PointerState struct {
	mu   sync.Mutex
	x, y float64
	set  bool
}

// Record stores the latest raw offset.
func (p *PointerState) Record(x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x, p.y = x, y
	p.set = true
}

// Last returns the most recent offset, and whether one was ever recorded.
func (p *PointerState) Last() (x, y float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y, p.set
}
