// Package store provides a small shared key/value state container with
// event-style change notification.
//
// State is a flat map. Updates are shallow merges: nested values are replaced,
// never deep-merged. Subscribers register under event names; the wildcard
// name "*" receives every state-affecting broadcast.
//
//	s := store.New(store.State{"count": 0})
//	off := s.On("count", func(state store.State, _ any) {
//	    fmt.Println(state["count"])
//	})
//	defer off()
//
//	s.Emit("increment", store.Update(func(st store.State) store.State {
//	    return store.State{"count": st["count"].(int) + 1}
//	}), nil)
//
// Every Emit (and every commit returned by Set) applies and broadcasts
// synchronously. Nothing is batched or deduplicated across calls.
//
// Handler panics are not recovered. They propagate to the caller of Emit or
// the commit function and abort the remaining handlers of that pass.
package store
