// Package mount discovers components by attribute instead of tag name.
//
// Markup marks an element with data-<type>="<component>" (type defaults to
// "component"). Mount scans a document for such markers, connects each
// element once through the lifecycle manager and strips the marker so a
// later scan skips it. Unmount sweeps instances whose elements have left the
// tree. Subscriptions are tracked exactly as for tag-matched components.
//
//	sc := mount.New(manager)
//	sc.Add(core.Components{"header": header, "slider": slider})
//	sc.Mount(doc)
//	// after a page swap
//	sc.Unmount()
//	sc.Mount(doc)
package mount

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/go-drift/pico/pkg/core"
	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/errors"
)

// DefaultType is the marker type scanned when Mount gets none.
const DefaultType = "component"

// Scanner mounts attribute-marked components.
type Scanner struct {
	manager    *core.Manager
	components core.Components
	mounted    map[*dom.Element]string
	order      []*dom.Element
	reporter   errors.Handler
	logger     *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithErrorHandler routes diagnostics to h instead of the global handler.
func WithErrorHandler(h errors.Handler) Option {
	return func(s *Scanner) { s.reporter = h }
}

// WithLogger sets the logger for mount records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a scanner that connects through m.
func New(m *core.Manager, opts ...Option) *Scanner {
	s := &Scanner{
		manager:    m,
		components: make(core.Components),
		mounted:    make(map[*dom.Element]string),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers component maps. When several maps name the same component
// the first map wins. A nil map is reported as malformed input.
func (s *Scanner) Add(sets ...core.Components) {
	for i := len(sets) - 1; i >= 0; i-- {
		if sets[i] == nil {
			s.malformed("mount.Add")
			continue
		}
		for name, connect := range sets[i] {
			s.components[name] = connect
		}
	}
}

// Components returns the registered names, sorted.
func (s *Scanner) Components() []string {
	return slices.Sorted(maps.Keys(s.components))
}

// Mount scans doc for data-<type> markers, one type after another, and
// connects every marked element whose value names a registered component.
// Markers of unknown components are left in place. It returns the elements
// carrying the last type's marker at scan time.
func (s *Scanner) Mount(doc *dom.Document, types ...string) []*dom.Element {
	if doc == nil {
		s.malformed("mount.Mount")
		return nil
	}
	if len(types) == 0 {
		types = []string{DefaultType}
	}

	var nodes []*dom.Element
	for _, typ := range types {
		if typ == "" {
			s.malformed("mount.Mount")
			nodes = nil
			continue
		}
		attr := "data-" + typ
		nodes = doc.Body().ByAttr(attr)

		for _, el := range nodes {
			name, _ := el.Attr(attr)
			connect, ok := s.components[name]
			if !ok {
				continue
			}
			el.RemoveAttr(attr)
			if err := s.manager.ConnectAs(el, name, connect); err != nil {
				s.logger.Warn("mount failed", slog.String("component", name), slog.Any("err", err))
			}
			if _, seen := s.mounted[el]; !seen {
				s.order = append(s.order, el)
			}
			s.mounted[el] = name
		}
	}
	return nodes
}

// Get reports whether el is mounted and under which component.
func (s *Scanner) Get(el *dom.Element) (string, bool) {
	name, ok := s.mounted[el]
	return name, ok
}

// Len returns the number of mounted elements.
func (s *Scanner) Len() int { return len(s.mounted) }

// Unmount disconnects the given elements. With no arguments it sweeps every
// mounted element that is no longer connected to a document. It returns the
// number of live instances it disconnected; instances the manager already
// tore down are forgotten without being counted.
func (s *Scanner) Unmount(nodes ...*dom.Element) int {
	if len(nodes) == 0 {
		for _, el := range s.order {
			if !el.IsConnected() {
				nodes = append(nodes, el)
			}
		}
	}

	count := 0
	for _, el := range nodes {
		if _, ok := s.mounted[el]; !ok {
			continue
		}
		delete(s.mounted, el)
		if s.manager.State(el) == core.Unconnected {
			continue
		}
		s.manager.Disconnect(el)
		count++
	}
	s.order = slices.DeleteFunc(s.order, func(el *dom.Element) bool {
		_, ok := s.mounted[el]
		return !ok
	})
	return count
}

func (s *Scanner) malformed(op string) {
	errors.ReportTo(s.reporter, &errors.PicoError{
		Op:   op,
		Kind: errors.KindInput,
		Err:  errors.ErrMalformedInput,
	})
}
