// Package testing provides a component testing framework for pico.
//
// # Quick Start
//
// Create a tester, define a component, pump markup and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := picotest.NewComponentTesterWithT(t, picotest.WithState(store.State{"count": 0}))
//	    tester.Define("x-counter", counter)
//	    tester.PumpMarkup(`<x-counter><button @ref="inc">+</button></x-counter>`)
//
//	    tester.Tap(picotest.ByRef("inc"))
//
//	    if tester.Store().Get()["count"] != 1 {
//	        t.Error("expected count 1")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture the document and store and compare against a golden file:
//
//	tester.CaptureSnapshot().MatchesGolden(t, "counter")
//
// Update snapshots with:
//
//	go test ./... -update
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import picotest "github.com/go-drift/pico/pkg/testing"
package testing
