package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML fragment in a body context and returns its top-level
// elements. Text is attached to the enclosing element; comments are dropped.
func Parse(markup string) ([]*Element, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	var out []*Element
	for _, n := range nodes {
		if el := convert(n); el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// static markup.
func MustParse(markup string) []*Element {
	out, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return out
}

func convert(n *html.Node) *Element {
	if n.Type != html.ElementNode {
		return nil
	}
	el := NewElement(n.Data)
	for _, a := range n.Attr {
		el.attrs = append(el.attrs, Attr{Name: a.Key, Value: a.Val})
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			if child := convert(c); child != nil {
				child.parent = el
				el.children = append(el.children, child)
			}
		}
	}
	el.text = strings.TrimSpace(text.String())
	return el
}
