package store

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/go-drift/pico/pkg/errors"
)

// Wildcard is the event name that receives every state-affecting broadcast.
const Wildcard = "*"

// Handler receives the post-update state snapshot and the transient payload
// passed to Emit (nil for Set commits).
type Handler func(state State, transient any)

type entry struct {
	handler  Handler
	canceled atomic.Bool
}

// Store is a mutable key/value container with named subscriptions.
type Store struct {
	mu       sync.Mutex
	state    State
	handlers map[string][]*entry
	reporter errors.Handler
}

// Option configures a Store.
type Option func(*Store)

// WithErrorHandler routes input diagnostics to h instead of the global handler.
func WithErrorHandler(h errors.Handler) Option {
	return func(s *Store) {
		s.reporter = h
	}
}

// New creates a store seeded with a copy of initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state:    initial.Clone(),
		handlers: make(map[string][]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a shallow snapshot of the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Set merges partial into state immediately and returns a commit function.
// Calling commit fires "*" and every key of partial with the state as it is
// at commit time. Each call of commit broadcasts again.
func (s *Store) Set(partial State) func() {
	if partial == nil {
		s.malformed("store.Set")
		return func() {}
	}

	s.mu.Lock()
	keys := s.mergeLocked(partial)
	s.mu.Unlock()

	names := append([]string{Wildcard}, keys...)
	return func() {
		s.fire(names, nil)
	}
}

// Hydrate is Set under the name used by attribute-scanning apps.
func (s *Store) Hydrate(partial State) func() {
	return s.Set(partial)
}

// On registers h under a single event name.
func (s *Store) On(event string, h Handler) func() {
	return s.Subscribe([]string{event}, h)
}

// Subscribe registers h under each event name and returns a function that
// removes exactly those registrations. The returned function is idempotent.
func (s *Store) Subscribe(events []string, h Handler) func() {
	if h == nil || len(events) == 0 {
		s.malformed("store.Subscribe")
		return func() {}
	}

	created := make([]*entry, 0, len(events))

	s.mu.Lock()
	for _, ev := range events {
		e := &entry{handler: h}
		s.handlers[ev] = append(s.handlers[ev], e)
		created = append(created, e)
	}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, ev := range events {
				e := created[i]
				e.canceled.Store(true)
				s.handlers[ev] = slices.DeleteFunc(s.handlers[ev], func(x *entry) bool {
					return x == e
				})
				if len(s.handlers[ev]) == 0 {
					delete(s.handlers, ev)
				}
			}
		})
	}
}

// Emit broadcasts a single event name. See EmitAll.
func (s *Store) Emit(event string, patch Patch, transient any) {
	if event == Wildcard {
		s.emit(nil, patch, transient)
		return
	}
	s.emit([]string{event}, patch, transient)
}

// EmitAll applies patch (if any) and broadcasts "*", every name in events and
// every key of the applied patch. Each distinct name fires once per call;
// a handler registered under several matched names runs once per name.
func (s *Store) EmitAll(events []string, patch Patch, transient any) {
	s.emit(events, patch, transient)
}

func (s *Store) emit(events []string, patch Patch, transient any) {
	names := append([]string{Wildcard}, events...)

	if patch != nil {
		update := patch.resolve(s.Get())
		if update != nil {
			s.mu.Lock()
			keys := s.mergeLocked(update)
			s.mu.Unlock()
			names = append(names, keys...)
		}
	}

	s.fire(names, transient)
}

// Len returns the number of handlers registered under event.
func (s *Store) Len(event string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers[event])
}

// mergeLocked shallow-merges partial and returns its keys in sorted order.
func (s *Store) mergeLocked(partial State) []string {
	keys := make([]string, 0, len(partial))
	for k, v := range partial {
		s.state[k] = v
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// fire invokes handlers for each distinct name in first-seen order. The
// handler lists are snapshotted up front; entries canceled mid-pass are
// skipped. Each handler gets its own copy of the state current at its call.
func (s *Store) fire(names []string, transient any) {
	seen := make(map[string]bool, len(names))

	s.mu.Lock()
	var pass []*entry
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		pass = append(pass, s.handlers[name]...)
	}
	s.mu.Unlock()

	for _, e := range pass {
		if e.canceled.Load() {
			continue
		}
		e.handler(s.Get(), transient)
	}
}

func (s *Store) malformed(op string) {
	errors.ReportTo(s.reporter, &errors.PicoError{
		Op:   op,
		Kind: errors.KindInput,
		Err:  errors.ErrMalformedInput,
	})
}
