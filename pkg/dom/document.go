package dom

import "sync/atomic"

// Observer is told when elements join or leave a document.
type Observer interface {
	Connected(el *Element)
	Disconnected(el *Element)
}

// ObserverFuncs adapts two functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnConnected    func(el *Element)
	OnDisconnected func(el *Element)
}

// Connected implements Observer.
func (o ObserverFuncs) Connected(el *Element) {
	if o.OnConnected != nil {
		o.OnConnected(el)
	}
}

// Disconnected implements Observer.
func (o ObserverFuncs) Disconnected(el *Element) {
	if o.OnDisconnected != nil {
		o.OnDisconnected(el)
	}
}

type observerEntry struct {
	observer Observer
	canceled atomic.Bool
}

// Document is a live tree rooted at a body element.
type Document struct {
	listeners

	body      *Element
	observers []*observerEntry
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.body = NewElement("body")
	d.body.owner = d
	return d
}

// Body returns the document's root element.
func (d *Document) Body() *Element { return d.body }

// Elements returns every connected element below the body in pre-order.
func (d *Document) Elements() []*Element { return d.body.Descendants() }

// Observe registers o for connection notifications and returns a function
// that unregisters it. The returned function is idempotent.
func (d *Document) Observe(o Observer) func() {
	if o == nil {
		return func() {}
	}
	entry := &observerEntry{observer: o}
	d.observers = append(d.observers, entry)
	return func() {
		if !entry.canceled.CompareAndSwap(false, true) {
			return
		}
		for i, e := range d.observers {
			if e == entry {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				break
			}
		}
	}
}

// AddEventListener implements EventTarget. Document listeners receive their
// own events and every bubbling event dispatched inside the document.
func (d *Document) AddEventListener(typ string, fn Listener, opts ...ListenerOption) func() {
	return d.listeners.add(typ, fn, opts)
}

// ListenerCount returns the number of listeners registered for typ.
func (d *Document) ListenerCount(typ string) int { return d.listeners.count(typ) }

// Dispatch delivers ev to the document's own listeners.
func (d *Document) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	ev.target = d
	ev.currentTarget = d
	d.listeners.invoke(ev)
}

// notifyConnected announces root's subtree in pre-order. The subtree is
// captured before the first callback so elements appended by a callback are
// announced once, by their own Append. Elements removed by an earlier
// callback are skipped.
func (d *Document) notifyConnected(root *Element) {
	nodes := append([]*Element{root}, root.Descendants()...)
	for _, n := range nodes {
		if n.Document() != d {
			continue
		}
		for _, o := range d.snapshotObservers() {
			o.Connected(n)
		}
	}
}

// notifyDisconnected announces root's subtree in pre-order.
func (d *Document) notifyDisconnected(root *Element) {
	nodes := append([]*Element{root}, root.Descendants()...)
	for _, n := range nodes {
		if n.IsConnected() {
			continue
		}
		for _, o := range d.snapshotObservers() {
			o.Disconnected(n)
		}
	}
}

func (d *Document) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(d.observers))
	for _, e := range d.observers {
		if !e.canceled.Load() {
			out = append(out, e.observer)
		}
	}
	return out
}
