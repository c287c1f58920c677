package testing

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/go-drift/pico/pkg/core"
	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/store"
)

// SnapshotDir is where MatchesGolden keeps snapshot files.
const SnapshotDir = "testdata/snapshots"

// Snapshot captures the document tree, the lifecycle state of component
// elements and the store state.
type Snapshot struct {
	Body  *Node       `json:"body"`
	State store.State `json:"state"`
}

// Node is a serialized element.
type Node struct {
	Tag       string      `json:"tag"`
	Attrs     [][2]string `json:"attrs,omitempty"`
	Text      string      `json:"text,omitempty"`
	Lifecycle string      `json:"lifecycle,omitempty"`
	Children  []*Node     `json:"children,omitempty"`
}

// CaptureSnapshot captures the current document and store.
func (t *ComponentTester) CaptureSnapshot() *Snapshot {
	return &Snapshot{
		Body:  captureNode(t.doc.Body(), t.app.Manager()),
		State: t.app.Get(),
	}
}

// Marshal returns the indented JSON form of s.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// MatchesGolden compares s against testdata/snapshots/<name>.snapshot.json.
// Run the test with -update to rewrite the file.
func (s *Snapshot) MatchesGolden(t *testing.T, name string) {
	t.Helper()
	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir(SnapshotDir),
		goldie.WithNameSuffix(".snapshot.json"),
	)
	g.Assert(t, name, data)
}

func captureNode(el *dom.Element, m *core.Manager) *Node {
	node := &Node{Tag: el.TagName(), Text: el.Text()}
	for _, a := range el.Attributes() {
		node.Attrs = append(node.Attrs, [2]string{a.Name, a.Value})
	}
	if _, ok := m.DefinitionFor(el); ok {
		node.Lifecycle = m.State(el).String()
	}
	for _, child := range el.Children() {
		node.Children = append(node.Children, captureNode(child, m))
	}
	return node
}
