// Package dom provides a small synthetic document tree for hosting pico
// components.
//
// It models exactly what the lifecycle manager needs from a host: elements
// with ordered attributes and children, a notion of being connected to a
// live document, observers told when subtrees join or leave that document,
// and event targets with removable listeners.
//
// Markup can be parsed into elements with Parse or Element.SetInnerHTML.
// Attribute names are kept verbatim (lower-cased by the HTML tokenizer), so
// markers such as "@ref" survive parsing.
//
// The tree is not safe for concurrent use. Like the rest of pico it expects
// to be driven from a single goroutine.
package dom
