// Package pico assembles a store, a context stack and a lifecycle manager
// into one app instance.
//
// Components are connect procedures keyed by custom element name. When an
// element with a defined name joins an observed document, its connect
// procedure runs with the element's refs and the app store. Store
// subscriptions and DOM listeners registered during connect are released
// automatically when the element leaves the document.
//
//	app := pico.New(pico.Config{
//		State: store.State{"count": 0},
//		Components: []core.Components{{
//			"x-counter": counter,
//		}},
//		Document: doc,
//	})
//
// Apps that mark components with data attributes instead of custom element
// names use Add, Mount and Unmount.
package pico
