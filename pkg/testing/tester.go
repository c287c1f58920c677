package testing

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/go-drift/pico/pkg/core"
	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/errors"
	"github.com/go-drift/pico/pkg/pico"
	"github.com/go-drift/pico/pkg/store"
)

// ComponentTester runs components against an in-memory document without a
// host. Errors reported by the app are recorded instead of logged.
type ComponentTester struct {
	app      *pico.App
	doc      *dom.Document
	recorder *errors.Recorder
}

// Option configures a ComponentTester.
type Option func(*pico.Config)

// WithState seeds the store.
func WithState(state store.State) Option {
	return func(c *pico.Config) { c.State = state }
}

// WithComponents registers component maps at construction.
func WithComponents(sets ...core.Components) Option {
	return func(c *pico.Config) { c.Components = append(c.Components, sets...) }
}

// WithRefMarker overrides the ref attribute name.
func WithRefMarker(marker string) Option {
	return func(c *pico.Config) { c.RefMarker = marker }
}

// WithLogger replaces the default discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *pico.Config) { c.Logger = logger }
}

// NewComponentTester creates a tester with an observed empty document.
// Call Cleanup() when done, or use NewComponentTesterWithT() instead.
func NewComponentTester(opts ...Option) *ComponentTester {
	rec := &errors.Recorder{}
	doc := dom.NewDocument()
	cfg := pico.Config{
		Document:     doc,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		ErrorHandler: rec,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &ComponentTester{
		app:      pico.New(cfg),
		doc:      doc,
		recorder: rec,
	}
}

// NewComponentTesterWithT creates a tester that auto-cleans up via
// t.Cleanup(). This is the recommended constructor for tests.
func NewComponentTesterWithT(t *testing.T, opts ...Option) *ComponentTester {
	tester := NewComponentTester(opts...)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup removes everything from the document, disconnecting every
// component, and stops observing it.
func (t *ComponentTester) Cleanup() {
	t.doc.Body().RemoveChildren()
	t.app.Close()
}

// App returns the app under test.
func (t *ComponentTester) App() *pico.App { return t.app }

// Document returns the observed document.
func (t *ComponentTester) Document() *dom.Document { return t.doc }

// Store returns the app store.
func (t *ComponentTester) Store() *core.Store { return t.app.Store }

// Define registers a component on the app.
func (t *ComponentTester) Define(name string, connect core.ConnectFunc, opts ...core.DefineOption) error {
	return t.app.Component(name, connect, opts...)
}

// PumpMarkup parses markup and appends it to the document body. Components
// in it connect before PumpMarkup returns.
func (t *ComponentTester) PumpMarkup(markup string) ([]*dom.Element, error) {
	els, err := dom.Parse(markup)
	if err != nil {
		return nil, err
	}
	t.doc.Body().Append(els...)
	return els, nil
}

// Pump appends els to the document body.
func (t *ComponentTester) Pump(els ...*dom.Element) {
	t.doc.Body().Append(els...)
}

// Remove detaches the first element matched by finder.
func (t *ComponentTester) Remove(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Remove: finder matched no elements: %s", finder.Description())
	}
	result.First().Remove()
	return nil
}

// Find evaluates finder against the document body.
func (t *ComponentTester) Find(finder Finder) FinderResult {
	return FinderResult{elements: finder.Evaluate(t.doc.Body()), finder: finder}
}

// State reports the lifecycle state of the first element matched by finder.
func (t *ComponentTester) State(finder Finder) core.InstanceState {
	result := t.Find(finder)
	if !result.Exists() {
		return core.Unconnected
	}
	return t.app.Manager().State(result.First())
}

// Errors returns the errors reported so far.
func (t *ComponentTester) Errors() []*errors.PicoError {
	return t.recorder.Errors()
}

// Kinds returns the kinds of the errors reported so far.
func (t *ComponentTester) Kinds() []errors.ErrorKind {
	return t.recorder.Kinds()
}
