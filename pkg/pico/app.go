package pico

import (
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/go-drift/pico/pkg/config"
	"github.com/go-drift/pico/pkg/core"
	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/errors"
	"github.com/go-drift/pico/pkg/mount"
	"github.com/go-drift/pico/pkg/store"
)

// Config holds the options recognised by New.
type Config struct {
	// State is the initial store state. Nil means empty.
	State store.State
	// Components are registered in slice order.
	Components []core.Components
	// Factories are called once at construction and their results
	// registered after Components.
	Factories []func() core.Components
	// Document, when set, is observed from construction on.
	Document *dom.Document
	// RefMarker overrides core.DefaultRefMarker.
	RefMarker string
	// Logger receives lifecycle logs. Nil uses slog.Default().
	Logger *slog.Logger
	// ErrorHandler receives reported errors. Nil uses errors.Current().
	ErrorHandler errors.Handler
}

// App owns one store, one context stack and one lifecycle manager.
// Store operations (On, Subscribe, Listen, Emit, EmitAll, Get, Set, Hydrate)
// are promoted from the embedded store.
type App struct {
	*core.Store

	manager *core.Manager
	scanner *mount.Scanner

	mu      sync.Mutex
	cancels []func()
}

// New constructs an app from cfg.
func New(cfg Config) *App {
	var storeOpts []store.Option
	var managerOpts []core.ManagerOption
	var scannerOpts []mount.Option
	if cfg.ErrorHandler != nil {
		storeOpts = append(storeOpts, store.WithErrorHandler(cfg.ErrorHandler))
		managerOpts = append(managerOpts, core.WithErrorHandler(cfg.ErrorHandler))
		scannerOpts = append(scannerOpts, mount.WithErrorHandler(cfg.ErrorHandler))
	}
	if cfg.Logger != nil {
		managerOpts = append(managerOpts, core.WithLogger(cfg.Logger))
		scannerOpts = append(scannerOpts, mount.WithLogger(cfg.Logger))
	}
	if cfg.RefMarker != "" {
		managerOpts = append(managerOpts, core.WithRefMarker(cfg.RefMarker))
	}

	m := core.NewManager(store.New(cfg.State, storeOpts...), managerOpts...)
	app := &App{
		Store:   m.Store(),
		manager: m,
		scanner: mount.New(m, scannerOpts...),
	}

	for _, set := range cfg.Components {
		app.register(set)
	}
	for _, factory := range cfg.Factories {
		if factory == nil {
			continue
		}
		app.register(factory())
	}

	if cfg.Document != nil {
		app.Observe(cfg.Document)
	}
	return app
}

// FromConfig resolves pico.yaml in dir and builds an app from it. Values in
// the file's state section override keys of cfg.State. The file's ref
// marker applies unless cfg.RefMarker is set; its logger is used unless
// cfg.Logger is set.
func FromConfig(dir string, cfg Config) (*App, *config.Resolved, error) {
	resolved, err := config.Resolve(dir)
	if err != nil {
		return nil, nil, err
	}

	state := cfg.State.Clone()
	maps.Copy(state, resolved.State)
	cfg.State = state

	if cfg.RefMarker == "" {
		cfg.RefMarker = resolved.RefMarker
	}
	if cfg.Logger == nil {
		cfg.Logger = resolved.Logger(os.Stderr)
	}
	return New(cfg), resolved, nil
}

// register defines every entry of set in name order. Failures are reported
// by the manager and skipped.
func (a *App) register(set core.Components) {
	for _, name := range slices.Sorted(maps.Keys(set)) {
		_ = a.manager.Define(name, set[name])
	}
}

// Component registers a connect procedure under name.
func (a *App) Component(name string, connect core.ConnectFunc, opts ...core.DefineOption) error {
	return a.manager.Define(name, connect, opts...)
}

// Observe connects defined elements already in doc and follows its
// future insertions and removals. The returned function stops observing.
func (a *App) Observe(doc *dom.Document) func() {
	cancel := a.manager.Observe(doc)
	a.mu.Lock()
	a.cancels = append(a.cancels, cancel)
	a.mu.Unlock()
	return cancel
}

// NotifyConnected tells the app el was inserted.
func (a *App) NotifyConnected(el *dom.Element) error {
	return a.manager.NotifyConnected(el)
}

// NotifyDisconnected tells the app el was removed.
func (a *App) NotifyDisconnected(el *dom.Element) {
	a.manager.NotifyDisconnected(el)
}

// Add registers attribute-mode components. Earlier maps win on conflicts.
func (a *App) Add(sets ...core.Components) { a.scanner.Add(sets...) }

// Mount connects elements of doc marked with data-<type> attributes.
func (a *App) Mount(doc *dom.Document, types ...string) []*dom.Element {
	return a.scanner.Mount(doc, types...)
}

// Unmount disconnects mounted elements. See mount.Scanner.Unmount.
func (a *App) Unmount(nodes ...*dom.Element) int { return a.scanner.Unmount(nodes...) }

// Manager returns the app's lifecycle manager.
func (a *App) Manager() *core.Manager { return a.manager }

// Scanner returns the app's attribute-mode scanner.
func (a *App) Scanner() *mount.Scanner { return a.scanner }

// Close stops observing every document passed to Observe. Connected
// instances stay connected.
func (a *App) Close() {
	a.mu.Lock()
	cancels := a.cancels
	a.cancels = nil
	a.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}
