package dom

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node in the document tree.
type Element struct {
	listeners

	id       uuid.UUID
	tag      string
	attrs    []Attr
	text     string
	parent   *Element
	children []*Element

	// owner is set only on a document's body.
	owner *Document
}

// ElementOption configures a new element.
type ElementOption func(*Element)

// WithAttr sets an attribute on the new element.
func WithAttr(name, value string) ElementOption {
	return func(e *Element) { e.SetAttr(name, value) }
}

// WithText sets the element's text content.
func WithText(text string) ElementOption {
	return func(e *Element) { e.text = text }
}

// Is marks the element as a customized built-in, e.g.
// NewElement("button", Is("x-button")).
func Is(name string) ElementOption {
	return WithAttr("is", name)
}

// NewElement creates a detached element with the given tag name.
func NewElement(tag string, opts ...ElementOption) *Element {
	e := &Element{
		id:  uuid.New(),
		tag: strings.ToLower(tag),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the element's unique identity.
func (e *Element) ID() uuid.UUID { return e.id }

// TagName returns the lower-cased tag name.
func (e *Element) TagName() string { return e.tag }

// IsName returns the value of the "is" attribute, or "" if absent.
func (e *Element) IsName() string {
	v, _ := e.Attr("is")
	return v
}

// Text returns the element's own text content.
func (e *Element) Text() string { return e.text }

// SetText replaces the element's own text content.
func (e *Element) SetText(text string) { e.text = text }

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// HasAttributes reports whether the element carries any attribute.
func (e *Element) HasAttributes() bool { return len(e.attrs) > 0 }

// Attributes returns a copy of the attribute list in document order.
func (e *Element) Attributes() []Attr { return slices.Clone(e.attrs) }

// SetAttr sets or replaces an attribute, keeping its original position.
func (e *Element) SetAttr(name, value string) {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	e.attrs = slices.DeleteFunc(e.attrs, func(a Attr) bool { return a.Name == name })
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// Document returns the document the element is connected to, or nil.
func (e *Element) Document() *Document {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	if root.owner != nil && root.owner.body == root {
		return root.owner
	}
	return nil
}

// IsConnected reports whether the element is part of a live document.
func (e *Element) IsConnected() bool { return e.Document() != nil }

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Append adds children at the end of e's child list. A child that already
// has a parent is moved. Children that become connected are announced to
// the document's observers.
func (e *Element) Append(children ...*Element) {
	for _, child := range children {
		if child == nil || child == e || child.Contains(e) {
			continue
		}
		if child.parent != nil {
			child.Remove()
		}
		child.parent = e
		e.children = append(e.children, child)
		if doc := e.Document(); doc != nil {
			doc.notifyConnected(child)
		}
	}
}

// Remove detaches e from its parent. If e was connected, observers are told
// that its subtree left the document.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	doc := e.Document()
	parent := e.parent
	parent.children = slices.DeleteFunc(parent.children, func(c *Element) bool { return c == e })
	e.parent = nil
	if doc != nil {
		doc.notifyDisconnected(e)
	}
}

// RemoveChildren detaches every child of e.
func (e *Element) RemoveChildren() {
	for _, child := range e.Children() {
		child.Remove()
	}
}

// SetInnerHTML replaces e's children with the elements parsed from markup.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := Parse(markup)
	if err != nil {
		return err
	}
	e.RemoveChildren()
	e.Append(nodes...)
	return nil
}

// Walk visits e and its descendants in pre-order. Returning false from fn
// skips the children of the visited element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, child := range e.Children() {
		child.Walk(fn)
	}
}

// Descendants returns every descendant of e in pre-order.
func (e *Element) Descendants() []*Element {
	var out []*Element
	e.Walk(func(n *Element) bool {
		if n != e {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindAll returns the descendants of e that satisfy pred, in document order.
func (e *Element) FindAll(pred func(*Element) bool) []*Element {
	var out []*Element
	for _, n := range e.Descendants() {
		if pred(n) {
			out = append(out, n)
		}
	}
	return out
}

// ByAttr returns the descendants of e carrying the named attribute.
func (e *Element) ByAttr(name string) []*Element {
	return e.FindAll(func(n *Element) bool { return n.HasAttr(name) })
}

// ByTag returns the descendants of e with the given tag name.
func (e *Element) ByTag(tag string) []*Element {
	tag = strings.ToLower(tag)
	return e.FindAll(func(n *Element) bool { return n.tag == tag })
}

// AddEventListener implements EventTarget.
func (e *Element) AddEventListener(typ string, fn Listener, opts ...ListenerOption) func() {
	return e.listeners.add(typ, fn, opts)
}

// ListenerCount returns the number of listeners registered for typ.
func (e *Element) ListenerCount(typ string) int { return e.listeners.count(typ) }

// Dispatch delivers ev to e, then to its ancestors and the owning document
// while ev.Bubbles is set and propagation was not stopped.
func (e *Element) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	ev.target = e
	for n := e; n != nil; n = n.parent {
		ev.currentTarget = n
		n.listeners.invoke(ev)
		if !ev.Bubbles || ev.stopped {
			return
		}
		if n.parent == nil && n.owner != nil && n.owner.body == n {
			ev.currentTarget = n.owner
			n.owner.listeners.invoke(ev)
			return
		}
	}
}

// Click dispatches a bubbling "click" event.
func (e *Element) Click() {
	e.Dispatch(NewEvent("click", nil))
}

func (e *Element) String() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(e.tag)
	for _, a := range e.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	return sb.String()
}
