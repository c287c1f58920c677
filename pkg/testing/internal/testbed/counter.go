// Package testbed provides internal test components for the testing framework.
package testbed

import (
	"fmt"

	"github.com/go-drift/pico/pkg/core"
	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/store"
)

// CounterMarkup is the inner markup Counter expects.
const CounterMarkup = `<button @ref="inc">+</button><span @ref="value">0</span>`

// Counter increments the "count" key when its "inc" ref is clicked and
// renders the count into its "value" ref.
func Counter(refs core.Refs, s *core.Store) core.Disconnect {
	render := func(state store.State, _ any) {
		if value := refs.Get("value"); value != nil {
			value.SetText(fmt.Sprint(state["count"]))
		}
	}
	if inc := refs.Get("inc"); inc != nil {
		s.Listen(inc, "click", func(*dom.Event) {
			s.Emit("count", store.Update(func(prev store.State) store.State {
				n, _ := prev["count"].(int)
				return store.State{"count": n + 1}
			}), nil)
		})
	}
	s.On("count", render)
	render(s.Get(), nil)
	return nil
}

// Toggle flips the "open" key on click and mirrors it as an "open"
// attribute on its root. Disconnecting clears the attribute.
func Toggle(refs core.Refs, s *core.Store) core.Disconnect {
	root := refs.Root()
	s.Listen(root, "click", func(*dom.Event) {
		open, _ := s.Get()["open"].(bool)
		s.Set(store.State{"open": !open})()
	})
	s.On("open", func(state store.State, _ any) {
		if open, _ := state["open"].(bool); open {
			root.SetAttr("open", "")
		} else {
			root.RemoveAttr("open")
		}
	})
	return func() { root.RemoveAttr("open") }
}

// Faulty panics during connect after subscribing to "tick".
func Faulty(_ core.Refs, s *core.Store) core.Disconnect {
	s.On("tick", func(store.State, any) {})
	panic("faulty component")
}
