package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/pico/pkg/dom"
	"github.com/go-drift/pico/pkg/store"
)

func TestTrackedStoreOutsideConnect(t *testing.T) {
	m := NewManager(store.New(store.State{"w": 1}))
	s := m.Store()

	var resized []store.State
	off := s.On(ResizeEvent, func(st store.State, transient any) {
		assert.Nil(t, transient)
		resized = append(resized, st)
	})
	require.Len(t, resized, 1)
	assert.Equal(t, store.State{"w": 1}, resized[0])
	assert.Equal(t, 0, m.Stack().RetainedLen())

	s.Emit(ResizeEvent, store.Merge(store.State{"w": 2}), nil)
	assert.Len(t, resized, 2)

	off()
	s.Emit(ResizeEvent, nil, nil)
	assert.Len(t, resized, 2)
}

func TestTrackedStoreCapturesDuringConnect(t *testing.T) {
	m := NewManager(nil)
	s := m.Store()
	el := dom.NewElement("x-a")
	target := dom.NewElement("button")

	f := m.Stack().Push(el)
	s.On("a", func(store.State, any) {})
	s.Subscribe([]string{"b", "c"}, func(store.State, any) {})
	s.Listen(target, "click", func(*dom.Event) {})
	m.Stack().Settle(f)

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, 1, target.ListenerCount("click"))

	m.Stack().Release(el)
	assert.Equal(t, 0, s.Len("a"))
	assert.Equal(t, 0, s.Len("c"))
	assert.Equal(t, 0, target.ListenerCount("click"))
}

func TestTrackedStoreExposesSharedState(t *testing.T) {
	shared := store.New(nil)
	m := NewManager(shared)

	m.Store().Set(store.State{"k": "v"})()
	assert.Equal(t, "v", shared.Get()["k"])

	m.Store().Hydrate(store.State{"k": "w"})
	assert.Equal(t, "w", shared.Get()["k"])
}
