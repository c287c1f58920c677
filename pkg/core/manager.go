package core

import (
	"log/slog"
	"slices"

	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/errors"
	"github.com/go-drift/pico/pkg/store"
)

// InstanceState is the lifecycle state of a component instance.
type InstanceState int

const (
	// Unconnected means no component instance is bound to the element.
	Unconnected InstanceState = iota
	// Connecting means the connect procedure is running.
	Connecting
	// Connected means the connect procedure has returned.
	Connected
	// Disconnected means teardown is running. It is terminal.
	Disconnected
)

func (s InstanceState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "unconnected"
	}
}

type instance struct {
	name       string
	state      InstanceState
	disconnect Disconnect
	// removed is set when the element leaves the tree while connecting.
	removed bool
	// reinserted is set when it comes back before connect returns.
	reinserted bool
}

type observed struct {
	doc    *dom.Document
	cancel func()
}

// Manager binds registered components to elements as the host reports them
// joining and leaving the live tree.
type Manager struct {
	store     *store.Store
	facade    *Store
	stack     *Stack
	defs      map[string]*Definition
	instances map[*dom.Element]*instance
	docs      []*observed
	marker    string
	logger    *slog.Logger
	reporter  errors.Handler
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRefMarker changes the reference attribute (default "@ref").
func WithRefMarker(marker string) ManagerOption {
	return func(m *Manager) {
		if marker != "" {
			m.marker = marker
		}
	}
}

// WithLogger sets the logger used for lifecycle records.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithErrorHandler routes reports to h instead of the global handler.
func WithErrorHandler(h errors.Handler) ManagerOption {
	return func(m *Manager) {
		m.reporter = h
	}
}

// WithStack installs a caller-owned context stack.
func WithStack(stack *Stack) ManagerOption {
	return func(m *Manager) {
		if stack != nil {
			m.stack = stack
		}
	}
}

// NewManager creates a manager around s. A nil s gets an empty store.
func NewManager(s *store.Store, opts ...ManagerOption) *Manager {
	if s == nil {
		s = store.New(nil)
	}
	m := &Manager{
		store:     s,
		stack:     NewStack(),
		defs:      make(map[string]*Definition),
		instances: make(map[*dom.Element]*instance),
		marker:    DefaultRefMarker,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.stack.reporter = m.reporter
	m.facade = newStore(s, m.stack)
	return m
}

// Store returns the tracked store handed to connect procedures.
func (m *Manager) Store() *Store { return m.facade }

// Stack returns the manager's context stack.
func (m *Manager) Stack() *Stack { return m.stack }

// RefMarker returns the reference attribute name.
func (m *Manager) RefMarker() string { return m.marker }

// Define registers a component. Invalid and duplicate names are reported as
// registration errors and returned. Matching elements already connected to
// an observed document are connected immediately, in document order.
func (m *Manager) Define(name string, connect ConnectFunc, opts ...DefineOption) error {
	def, err := newDefinition(name, connect, opts)
	if err == nil {
		if _, exists := m.defs[def.Name]; exists {
			err = errors.ErrDuplicate
		}
	}
	if err != nil {
		perr := &errors.PicoError{
			Op:        "core.Define",
			Kind:      errors.KindRegistration,
			Component: def.Name,
			Err:       err,
		}
		errors.ReportTo(m.reporter, perr)
		return perr
	}

	m.defs[def.Name] = def
	m.logger.Debug("component defined",
		slog.String("component", def.Name),
		slog.String("extends", def.Extends),
	)

	for _, o := range slices.Clone(m.docs) {
		m.upgrade(o.doc, def)
	}
	return nil
}

// Lookup returns the definition registered under name.
func (m *Manager) Lookup(name string) (*Definition, bool) {
	def, ok := m.defs[name]
	return def, ok
}

// Names returns the registered component names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.defs))
	for name := range m.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefinitionFor returns the definition matching el: its "is" attribute for
// customized built-ins, otherwise its tag name.
func (m *Manager) DefinitionFor(el *dom.Element) (*Definition, bool) {
	if el == nil {
		return nil, false
	}
	if is := el.IsName(); is != "" {
		if def, ok := m.defs[is]; ok && def.Extends == el.TagName() {
			return def, true
		}
	}
	if def, ok := m.defs[el.TagName()]; ok && def.Extends == "" {
		return def, true
	}
	return nil, false
}

// Observe connects matching elements of doc now and as they join it, and
// disconnects them as they leave. The returned function stops observing.
func (m *Manager) Observe(doc *dom.Document) func() {
	if doc == nil {
		return func() {}
	}
	o := &observed{doc: doc}
	o.cancel = doc.Observe(dom.ObserverFuncs{
		OnConnected: func(el *dom.Element) {
			_ = m.NotifyConnected(el)
		},
		OnDisconnected: m.NotifyDisconnected,
	})
	m.docs = append(m.docs, o)

	for _, el := range doc.Elements() {
		if def, ok := m.DefinitionFor(el); ok && el.IsConnected() {
			_ = m.connect(el, def.Name, def.Connect)
		}
	}

	return func() {
		o.cancel()
		m.docs = slices.DeleteFunc(m.docs, func(x *observed) bool { return x == o })
	}
}

func (m *Manager) upgrade(doc *dom.Document, def *Definition) {
	for _, el := range doc.Elements() {
		if match, ok := m.DefinitionFor(el); ok && match == def && el.IsConnected() {
			_ = m.connect(el, def.Name, def.Connect)
		}
	}
}

// NotifyConnected tells the manager el joined the live tree. Elements with
// no matching definition are ignored. A connect failure is reported and
// also returned.
func (m *Manager) NotifyConnected(el *dom.Element) error {
	def, ok := m.DefinitionFor(el)
	if !ok {
		return nil
	}
	return m.connect(el, def.Name, def.Connect)
}

// ConnectAs connects el under an explicit component, bypassing name
// matching. It is used by hosts that discover components another way.
func (m *Manager) ConnectAs(el *dom.Element, name string, connect ConnectFunc) error {
	if el == nil || connect == nil {
		perr := &errors.PicoError{
			Op:        "core.ConnectAs",
			Kind:      errors.KindInput,
			Component: name,
			Err:       errors.ErrMalformedInput,
		}
		errors.ReportTo(m.reporter, perr)
		return perr
	}
	return m.connect(el, name, connect)
}

func (m *Manager) connect(el *dom.Element, name string, connect ConnectFunc) error {
	if inst, ok := m.instances[el]; ok && inst.state != Disconnected {
		if inst.state == Connecting && inst.removed {
			inst.reinserted = true
		}
		return nil
	}

	inst := &instance{name: name, state: Connecting}
	m.instances[el] = inst

	var perr *errors.PicoError
	frame := m.stack.Push(el)
	func() {
		defer m.stack.Settle(frame)
		defer func() {
			if r := recover(); r != nil {
				perr = &errors.PicoError{
					Op:         "core.connect",
					Kind:       errors.KindConnect,
					Component:  name,
					Err:        errors.FromPanic("core.connect", r),
					StackTrace: errors.CaptureStack(),
				}
			}
		}()
		refs := CollectRefs(el, m.marker)
		inst.disconnect = connect(refs, m.facade)
	}()
	inst.state = Connected

	m.logger.Debug("component connected",
		slog.String("component", name),
		slog.String("element", el.ID().String()),
		slog.Int("subscriptions", frame.Len()),
	)

	if perr != nil {
		errors.ReportTo(m.reporter, perr)
	}
	if inst.removed {
		m.teardown(el, inst)
		if inst.reinserted && el.IsConnected() {
			if err := m.connect(el, name, connect); perr == nil && err != nil {
				return err
			}
		}
	}
	if perr != nil {
		return perr
	}
	return nil
}

// NotifyDisconnected tells the manager el left the live tree. Captured
// subscriptions are released first, then the disconnect procedure runs.
// Calling it again for the same instance does nothing.
func (m *Manager) NotifyDisconnected(el *dom.Element) {
	inst, ok := m.instances[el]
	if !ok {
		return
	}
	switch inst.state {
	case Connecting:
		inst.removed = true
	case Connected:
		m.teardown(el, inst)
	}
}

// Disconnect is NotifyDisconnected for hosts that drop an element without
// removing it from a tree.
func (m *Manager) Disconnect(el *dom.Element) {
	m.NotifyDisconnected(el)
}

func (m *Manager) teardown(el *dom.Element, inst *instance) {
	inst.state = Disconnected
	released := m.stack.Release(el)

	if inst.disconnect != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					errors.ReportTo(m.reporter, &errors.PicoError{
						Op:         "core.disconnect",
						Kind:       errors.KindDisconnect,
						Component:  inst.name,
						Err:        errors.FromPanic("core.disconnect", r),
						StackTrace: errors.CaptureStack(),
					})
				}
			}()
			inst.disconnect()
		}()
	}

	if m.instances[el] == inst {
		delete(m.instances, el)
	}
	m.logger.Debug("component disconnected",
		slog.String("component", inst.name),
		slog.String("element", el.ID().String()),
		slog.Int("released", released),
	)
}

// State returns the lifecycle state of el's component instance. Elements
// without an instance, including ones already torn down, are Unconnected.
func (m *Manager) State(el *dom.Element) InstanceState {
	if inst, ok := m.instances[el]; ok {
		return inst.state
	}
	return Unconnected
}

// Connected returns the elements with a live instance, in no particular order.
func (m *Manager) Connected() []*dom.Element {
	out := make([]*dom.Element, 0, len(m.instances))
	for el, inst := range m.instances {
		if inst.state == Connected {
			out = append(out, el)
		}
	}
	return out
}
