package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/pico/pkg/core"
	"github.com/go-drift/pico/pkg/dom"
)

// Finder locates elements in the document.
type Finder interface {
	// Evaluate returns all matching descendants of root in pre-order.
	Evaluate(root *dom.Element) []*dom.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []*dom.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *dom.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("Finder found no elements: %s", r.description()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *dom.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *dom.Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.elements), r.description()))
	}
	return r.elements[index]
}

// All returns all matches in document order.
func (r FinderResult) All() []*dom.Element { return r.elements }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.elements) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.elements) > 0 }

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

type predicateFinder struct {
	match func(*dom.Element) bool
	desc  string
}

func (f *predicateFinder) Evaluate(root *dom.Element) []*dom.Element {
	return root.FindAll(f.match)
}

func (f *predicateFinder) Description() string { return f.desc }

// ByTag matches elements with the given tag name.
func ByTag(tag string) Finder {
	tag = strings.ToLower(tag)
	return &predicateFinder{
		match: func(el *dom.Element) bool { return el.TagName() == tag },
		desc:  fmt.Sprintf("ByTag(%s)", tag),
	}
}

// ByComponent matches elements named name by tag or by "is" attribute.
func ByComponent(name string) Finder {
	return &predicateFinder{
		match: func(el *dom.Element) bool { return el.TagName() == name || el.IsName() == name },
		desc:  fmt.Sprintf("ByComponent(%s)", name),
	}
}

// ByAttr matches elements whose attribute name equals value.
func ByAttr(name, value string) Finder {
	return &predicateFinder{
		match: func(el *dom.Element) bool {
			v, ok := el.Attr(name)
			return ok && v == value
		},
		desc: fmt.Sprintf("ByAttr(%s=%q)", name, value),
	}
}

// ByRef matches elements carrying the default ref marker with name.
func ByRef(name string) Finder {
	f := ByAttr(core.DefaultRefMarker, name).(*predicateFinder)
	f.desc = fmt.Sprintf("ByRef(%s)", name)
	return f
}

// ByText matches elements whose own text equals text.
func ByText(text string) Finder {
	return &predicateFinder{
		match: func(el *dom.Element) bool { return el.Text() == text },
		desc:  fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining matches elements whose own text contains substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		match: func(el *dom.Element) bool { return strings.Contains(el.Text(), substring) },
		desc:  fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByPredicate matches elements for which fn returns true.
func ByPredicate(fn func(*dom.Element) bool) Finder {
	return &predicateFinder{match: fn, desc: "ByPredicate"}
}

type descendantFinder struct {
	of, matching Finder
}

func (f *descendantFinder) Evaluate(root *dom.Element) []*dom.Element {
	var out []*dom.Element
	seen := make(map[*dom.Element]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, el := range f.matching.Evaluate(ancestor) {
			if !seen[el] {
				seen[el] = true
				out = append(out, el)
			}
		}
	}
	return out
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant matches elements found by matching beneath any element found
// by of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}
