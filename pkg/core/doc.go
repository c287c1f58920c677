// Package core binds components to elements and manages their lifecycle.
//
// A component is a named connect procedure. When an element matching the
// name joins a live document, the Manager pushes a context frame, collects
// the element's references, and calls the connect procedure with the refs
// and a tracked Store:
//
//	m := core.NewManager(store.New(store.State{"count": 0}))
//	m.Define("x-counter", func(refs core.Refs, s *core.Store) core.Disconnect {
//	    s.Listen(refs.Get("button"), "click", func(*dom.Event) {
//	        s.Emit("increment", store.Update(inc), nil)
//	    })
//	    s.On("count", func(st store.State, _ any) {
//	        refs.Get("label").SetText(fmt.Sprint(st["count"]))
//	    })
//	    return nil
//	})
//	m.Observe(doc)
//
// # Tracked subscriptions
//
// Every subscription made through the Store while a connect procedure runs
// synchronously, including inside helpers it calls, is captured by the
// innermost running frame. When the element leaves the tree the captured
// release functions run in registration order, then the returned Disconnect
// (if any) runs. Frames that captured nothing are dropped right away.
//
// Connections nest: a connect procedure that appends other components gets
// their connections resolved before it returns, each in its own frame.
//
// # References
//
// Descendants carrying the reference marker ("@ref" by default) are
// collected into Refs by name. The connecting element is always RootRef.
//
// # Failures
//
// A panicking connect procedure is reported as a connect error; whatever it
// subscribed before panicking is still released on disconnect. A panicking
// Disconnect is reported and never propagates into host teardown.
package core
