package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/pico/pkg/dom"
)

func TestCollectRefsListsAndSingles(t *testing.T) {
	root := dom.NewElement("x-c")
	require.NoError(t, root.SetInnerHTML(`<ul @ref="list">
		<li @ref="items">1</li>
		<li @ref="items">2</li>
		<li @ref="items">3</li>
	</ul>`))

	refs := CollectRefs(root, "")

	assert.Same(t, root, refs.Root())
	assert.Same(t, root, refs.Get(RootRef))
	assert.Same(t, root.ByTag("ul")[0], refs.Get("list"))
	assert.False(t, refs.IsList("list"))

	items := refs.All("items")
	assert.Equal(t, root.ByTag("li"), items)
	assert.True(t, refs.IsList("items"))
	assert.Equal(t, "1", items[0].Text())
	assert.Equal(t, "3", items[2].Text())

	assert.Equal(t, []string{"items", "list", "root"}, refs.Names())
}

func TestCollectRefsSkipsRootMarker(t *testing.T) {
	root := dom.NewElement("x-a", dom.WithAttr("@ref", "self"))
	refs := CollectRefs(root, DefaultRefMarker)

	assert.False(t, refs.Has("self"))
	assert.Equal(t, []string{"root"}, refs.Names())
}

func TestCollectRefsCrossesNestedComponents(t *testing.T) {
	root := dom.NewElement("x-outer")
	require.NoError(t, root.SetInnerHTML(`<p @ref="a"></p><x-inner><span @ref="a"></span></x-inner>`))

	refs := CollectRefs(root, DefaultRefMarker)

	a := refs.All("a")
	require.Len(t, a, 2)
	assert.Equal(t, "p", a[0].TagName())
	assert.Equal(t, "span", a[1].TagName())
}

func TestCollectRefsRootNameAppends(t *testing.T) {
	root := dom.NewElement("x-a")
	require.NoError(t, root.SetInnerHTML(`<i @ref="root"></i>`))

	refs := CollectRefs(root, DefaultRefMarker)

	assert.Same(t, root, refs.Get(RootRef))
	assert.Len(t, refs.All(RootRef), 2)
}

func TestCollectRefsCustomMarker(t *testing.T) {
	root := dom.NewElement("x-a")
	require.NoError(t, root.SetInnerHTML(`<i data-ref="icon" @ref="ignored"></i>`))

	refs := CollectRefs(root, "data-ref")

	assert.True(t, refs.Has("icon"))
	assert.False(t, refs.Has("ignored"))
}

func TestCollectRefsNormalizesNames(t *testing.T) {
	root := dom.NewElement("x-a")
	root.Append(
		dom.NewElement("i", dom.WithAttr("@ref", "caf\u00e9")),
		dom.NewElement("i", dom.WithAttr("@ref", "cafe\u0301")),
	)

	refs := CollectRefs(root, DefaultRefMarker)

	assert.Len(t, refs.All("caf\u00e9"), 2)
	assert.Len(t, refs.All("cafe\u0301"), 2)
}

func TestRefsMissingName(t *testing.T) {
	refs := CollectRefs(dom.NewElement("x-a"), DefaultRefMarker)
	assert.Nil(t, refs.Get("missing"))
	assert.Empty(t, refs.All("missing"))
}

func TestRefsAllReturnsCopy(t *testing.T) {
	root := dom.NewElement("x-a")
	root.Append(dom.NewElement("i", dom.WithAttr("@ref", "x")))
	refs := CollectRefs(root, DefaultRefMarker)

	all := refs.All("x")
	all[0] = nil

	assert.NotNil(t, refs.Get("x"))
}
