package core

import (
	"slices"

	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/store"
)

// ResizeEvent is the store event whose subscribers are also called once at
// subscription time, so components can size themselves on connect.
const ResizeEvent = "resize"

// Store is the store handed to connect procedures. It embeds the shared
// store and replaces its subscription methods with tracked versions:
// subscriptions made while a component connects are released when that
// component's element disconnects.
//
// Subscriptions made later (from timers, goroutines, event handlers) are not
// tracked. Keep the returned function and call it yourself.
type Store struct {
	*store.Store
	stack *Stack
}

func newStore(s *store.Store, stack *Stack) *Store {
	return &Store{Store: s, stack: stack}
}

// On subscribes h to a store event. See Subscribe.
func (s *Store) On(event string, h store.Handler) func() {
	return s.Subscribe([]string{event}, h)
}

// Subscribe subscribes h to store events and returns the unsubscribe
// function. Subscribing to ResizeEvent also calls h immediately with the
// current state.
func (s *Store) Subscribe(events []string, h store.Handler) func() {
	off := s.Store.Subscribe(events, h)
	s.stack.Capture(off)
	if h != nil && slices.Contains(events, ResizeEvent) {
		h(s.Get(), nil)
	}
	return off
}

// Listen attaches a native event listener to target and returns the
// function that detaches it.
func (s *Store) Listen(target dom.EventTarget, typ string, fn dom.Listener, opts ...dom.ListenerOption) func() {
	off := dom.On(target, typ, fn, opts...)
	s.stack.Capture(off)
	return off
}
