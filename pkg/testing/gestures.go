package testing

import (
	"fmt"

	"github.com/go-drift/pico/pkg/dom"
)

// Tap dispatches a bubbling click on the first element matched by finder.
func (t *ComponentTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no elements: %s", finder.Description())
	}
	result.First().Click()
	return nil
}

// Fire dispatches a bubbling event of type typ carrying detail on the first
// element matched by finder.
func (t *ComponentTester) Fire(finder Finder, typ string, detail any) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Fire: finder matched no elements: %s", finder.Description())
	}
	result.First().Dispatch(dom.NewEvent(typ, detail))
	return nil
}
