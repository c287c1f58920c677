package dom

import (
	"slices"
	"sync/atomic"
)

// Event is dispatched to listeners registered on an EventTarget.
type Event struct {
	// Type is the event type, e.g. "click".
	Type string
	// Detail carries an arbitrary payload.
	Detail any
	// Bubbles makes the event propagate from an element to its ancestors and
	// finally to the owning document.
	Bubbles bool

	target        EventTarget
	currentTarget EventTarget
	stopped       bool
}

// NewEvent creates a bubbling event of the given type.
func NewEvent(typ string, detail any) *Event {
	return &Event{Type: typ, Detail: detail, Bubbles: true}
}

// Target returns the target the event was dispatched on.
func (e *Event) Target() EventTarget { return e.target }

// CurrentTarget returns the target whose listeners are running.
func (e *Event) CurrentTarget() EventTarget { return e.currentTarget }

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles a dispatched event.
type Listener func(*Event)

// ListenerOption configures a listener registration.
type ListenerOption func(*listener)

// Once removes the listener after its first invocation.
func Once() ListenerOption {
	return func(l *listener) { l.once = true }
}

// EventTarget is anything listeners can be attached to.
type EventTarget interface {
	// AddEventListener registers fn for events of type typ and returns a
	// function that removes it. The returned function is idempotent.
	AddEventListener(typ string, fn Listener, opts ...ListenerOption) func()
	// Dispatch delivers ev to this target (and, if it bubbles, its ancestors).
	Dispatch(ev *Event)
}

// On attaches fn to target and returns the function that detaches it.
// It is the low-level listener utility that components use through
// core.Store.Listen.
func On(target EventTarget, typ string, fn Listener, opts ...ListenerOption) func() {
	if target == nil || fn == nil {
		return func() {}
	}
	return target.AddEventListener(typ, fn, opts...)
}

type listener struct {
	fn       Listener
	once     bool
	canceled atomic.Bool
}

// listeners is the registry embedded by Element and Document.
type listeners struct {
	byType map[string][]*listener
}

func (t *listeners) add(typ string, fn Listener, opts []ListenerOption) func() {
	if fn == nil {
		return func() {}
	}
	l := &listener{fn: fn}
	for _, opt := range opts {
		opt(l)
	}
	if t.byType == nil {
		t.byType = make(map[string][]*listener)
	}
	t.byType[typ] = append(t.byType[typ], l)

	return func() {
		if l.canceled.CompareAndSwap(false, true) {
			t.remove(typ, l)
		}
	}
}

func (t *listeners) remove(typ string, l *listener) {
	t.byType[typ] = slices.DeleteFunc(t.byType[typ], func(x *listener) bool {
		return x == l
	})
	if len(t.byType[typ]) == 0 {
		delete(t.byType, typ)
	}
}

// invoke runs a snapshot of the listeners for ev.Type.
func (t *listeners) invoke(ev *Event) {
	subs := slices.Clone(t.byType[ev.Type])
	for _, l := range subs {
		if l.canceled.Load() {
			continue
		}
		if l.once && l.canceled.CompareAndSwap(false, true) {
			t.remove(ev.Type, l)
		}
		l.fn(ev)
	}
}

// count returns the number of listeners for typ.
func (t *listeners) count(typ string) int {
	return len(t.byType[typ])
}
