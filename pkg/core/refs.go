package core

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/go-drift/pico/pkg/dom"
)

// DefaultRefMarker is the attribute that tags an element as a reference.
const DefaultRefMarker = "@ref"

// RootRef is the reserved reference name of the connecting element.
const RootRef = "root"

// Refs maps reference names to the elements that carry them.
// A name holds one element, or several in document order.
type Refs struct {
	root  *dom.Element
	named map[string][]*dom.Element
}

// CollectRefs walks every descendant of root in pre-order and gathers the
// elements carrying marker. Nested component boundaries are not respected.
// The root itself is always available as RootRef; descendants tagged with
// that name are appended after it.
func CollectRefs(root *dom.Element, marker string) Refs {
	if marker == "" {
		marker = DefaultRefMarker
	}
	refs := Refs{
		root:  root,
		named: map[string][]*dom.Element{RootRef: {root}},
	}
	if root == nil {
		return refs
	}
	for _, el := range root.Descendants() {
		if !el.HasAttributes() {
			continue
		}
		for _, attr := range el.Attributes() {
			if attr.Name != marker {
				continue
			}
			name := norm.NFC.String(attr.Value)
			refs.named[name] = append(refs.named[name], el)
		}
	}
	return refs
}

// Root returns the connecting element.
func (r Refs) Root() *dom.Element { return r.root }

// Get returns the first element registered under name, or nil.
func (r Refs) Get(name string) *dom.Element {
	els := r.named[norm.NFC.String(name)]
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// All returns every element registered under name in document order.
func (r Refs) All(name string) []*dom.Element {
	return slices.Clone(r.named[norm.NFC.String(name)])
}

// IsList reports whether name was used by more than one element.
func (r Refs) IsList(name string) bool {
	return len(r.named[norm.NFC.String(name)]) > 1
}

// Has reports whether any element carries name.
func (r Refs) Has(name string) bool {
	return len(r.named[norm.NFC.String(name)]) > 0
}

// Names returns the collected names, sorted.
func (r Refs) Names() []string {
	names := make([]string, 0, len(r.named))
	for name := range r.named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
