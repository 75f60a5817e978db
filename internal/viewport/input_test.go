package viewport_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ErikKalkoken/spacemap/internal/viewport"
	"github.com/ErikKalkoken/spacemap/internal/xassert"
)

func newReducer() *viewport.Reducer {
	size := viewport.V(1000, 800)
	return viewport.NewReducer(viewport.NewState(100, size), size)
}

func TestReducer(t *testing.T) {
	t.Run("should start idle with pointer in center", func(t *testing.T) {
		r := newReducer()
		assert.False(t, r.Drag.Dragging)
		assert.Equal(t, viewport.V(500, 400), r.Pointer)
	})
	t.Run("should pan while dragging", func(t *testing.T) {
		// given
		r := newReducer()
		pan := r.State.PanOffset
		// when
		dirty1 := r.Handle(viewport.PointerDown{Pos: viewport.V(10, 10)})
		dirty2 := r.Handle(viewport.PointerMove{Pos: viewport.V(30, 5)})
		// then
		assert.False(t, dirty1)
		assert.True(t, dirty2)
		assert.True(t, r.Drag.Dragging)
		assert.Equal(t, pan.Add(viewport.V(20, -5)), r.State.PanOffset)
	})
	t.Run("should retain pan offset after drag ended", func(t *testing.T) {
		// given
		r := newReducer()
		r.Handle(viewport.PointerDown{Pos: viewport.V(10, 10)})
		r.Handle(viewport.PointerMove{Pos: viewport.V(60, 110)})
		want := r.State.PanOffset
		// when
		dirty := r.Handle(viewport.PointerUp{})
		// then
		assert.False(t, dirty)
		assert.False(t, r.Drag.Dragging)
		assert.Equal(t, want, r.State.PanOffset)
	})
	t.Run("should continue from current pan offset on next drag", func(t *testing.T) {
		// given
		r := newReducer()
		pan := r.State.PanOffset
		r.Handle(viewport.PointerDown{Pos: viewport.V(0, 0)})
		r.Handle(viewport.PointerMove{Pos: viewport.V(10, 0)})
		r.Handle(viewport.PointerUp{})
		// when
		r.Handle(viewport.PointerDown{Pos: viewport.V(500, 500)})
		r.Handle(viewport.PointerMove{Pos: viewport.V(500, 520)})
		// then
		assert.Equal(t, pan.Add(viewport.V(10, 20)), r.State.PanOffset)
	})
	t.Run("should not pan when pointer moves while idle", func(t *testing.T) {
		// given
		r := newReducer()
		want := r.State
		// when
		dirty := r.Handle(viewport.PointerMove{Pos: viewport.V(123, 456)})
		// then
		assert.False(t, dirty)
		assert.Equal(t, want, r.State)
		assert.Equal(t, viewport.V(123, 456), r.Pointer)
	})
	t.Run("should not report change when pointer did not move while dragging", func(t *testing.T) {
		r := newReducer()
		r.Handle(viewport.PointerDown{Pos: viewport.V(10, 10)})
		assert.False(t, r.Handle(viewport.PointerMove{Pos: viewport.V(10, 10)}))
	})
	t.Run("should zoom around last pointer position", func(t *testing.T) {
		// given
		r := newReducer()
		anchor := viewport.V(250, 100)
		r.Handle(viewport.PointerMove{Pos: anchor})
		world := r.State.ScreenToWorld(anchor)
		// when
		dirty := r.Handle(viewport.Wheel{Delta: 3})
		// then
		assert.True(t, dirty)
		assert.InDelta(t, math.Exp(0.3), r.State.ZoomScale, 1e-9)
		xassert.EqualVec(t, anchor, r.State.WorldToScreen(world), tolerance)
	})
	t.Run("should map zoom keys to wheel steps", func(t *testing.T) {
		r := newReducer()
		assert.True(t, r.Handle(viewport.KeyZoom{In: true}))
		assert.InDelta(t, math.Exp(0.1), r.State.ZoomScale, 1e-9)
		assert.True(t, r.Handle(viewport.KeyZoom{In: false}))
		assert.InDelta(t, 1, r.State.ZoomScale, 1e-9)
	})
	t.Run("should use custom sensitivity", func(t *testing.T) {
		r := newReducer()
		r.Sensitivity = 0.5
		r.Handle(viewport.Wheel{Delta: 1})
		assert.InDelta(t, math.Exp(0.5), r.State.ZoomScale, 1e-9)
	})
	t.Run("should not report change for zero wheel delta", func(t *testing.T) {
		r := newReducer()
		assert.False(t, r.Handle(viewport.Wheel{Delta: 0}))
	})
	t.Run("should zoom while dragging without changing drag state", func(t *testing.T) {
		r := newReducer()
		r.Handle(viewport.PointerDown{Pos: viewport.V(10, 10)})
		r.Handle(viewport.Wheel{Delta: 1})
		assert.True(t, r.Drag.Dragging)
	})
	t.Run("should ignore pointer up while idle", func(t *testing.T) {
		r := newReducer()
		want := *r
		assert.False(t, r.Handle(viewport.PointerUp{}))
		assert.Equal(t, want, *r)
	})
}
