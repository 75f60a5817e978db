package viewport_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ErikKalkoken/spacemap/internal/viewport"
	"github.com/ErikKalkoken/spacemap/internal/xassert"
)

const tolerance = 1e-4

func TestFitScale(t *testing.T) {
	cases := []struct {
		name   string
		radius float64
		size   viewport.Vec2
		want   float64
	}{
		{"landscape", 100, viewport.V(1024, 768), 3.84},
		{"portrait", 50, viewport.V(300, 900), 3},
		{"empty galaxy", 0, viewport.V(1024, 768), 1},
		{"negative radius", -5, viewport.V(1024, 768), 1},
		{"empty viewport", 100, viewport.V(0, 0), 1},
		{"nan radius", math.NaN(), viewport.V(1024, 768), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, viewport.FitScale(tc.radius, tc.size), 1e-9)
		})
	}
}

func TestNewState(t *testing.T) {
	t.Run("should show galaxy origin in the center", func(t *testing.T) {
		s := viewport.NewState(100, viewport.V(1024, 768))
		assert.Equal(t, 1.0, s.ZoomScale)
		assert.Equal(t, viewport.Vec2{}, s.ZoomOffset)
		xassert.EqualVec(t, viewport.V(512, 384), s.WorldToScreen(viewport.Vec2{}), 1e-9)
	})
	t.Run("should fit the galaxy into the viewport", func(t *testing.T) {
		s := viewport.NewState(100, viewport.V(1024, 768))
		xassert.EqualVec(t, viewport.V(512, 0), s.WorldToScreen(viewport.V(0, -100)), 1e-9)
		xassert.EqualVec(t, viewport.V(512, 768), s.WorldToScreen(viewport.V(0, 100)), 1e-9)
	})
	t.Run("should use scale 1 for empty galaxy", func(t *testing.T) {
		s := viewport.NewState(0, viewport.V(1024, 768))
		assert.Equal(t, 1.0, s.BaseScale)
	})
}

func TestWorldToScreen(t *testing.T) {
	t.Run("should apply pan before zoom", func(t *testing.T) {
		s := viewport.State{
			BaseScale:  2,
			ZoomScale:  3,
			ZoomOffset: viewport.V(5, 7),
			PanOffset:  viewport.V(10, 20),
		}
		got := s.WorldToScreen(viewport.V(1, 2))
		xassert.EqualVec(t, viewport.V((1*2+10)*3+5, (2*2+20)*3+7), got, 1e-9)
	})
	t.Run("should be inverted by ScreenToWorld", func(t *testing.T) {
		s := viewport.State{
			BaseScale:  0.05,
			ZoomScale:  4.2,
			ZoomOffset: viewport.V(-120, 33),
			PanOffset:  viewport.V(512, 384),
		}
		p := viewport.V(-3456, 7890)
		xassert.EqualVec(t, p, s.ScreenToWorld(s.WorldToScreen(p)), 1e-6)
	})
}

func TestZoomFactor(t *testing.T) {
	t.Run("should clamp large deltas", func(t *testing.T) {
		assert.InDelta(t, math.E, viewport.ZoomFactor(1000, 0.1), 1e-9)
		assert.InDelta(t, 1/math.E, viewport.ZoomFactor(-1000, 0.1), 1e-9)
	})
	t.Run("should return 1 for zero delta", func(t *testing.T) {
		assert.Equal(t, 1.0, viewport.ZoomFactor(0, 0.1))
	})
	t.Run("should ignore invalid delta", func(t *testing.T) {
		assert.Equal(t, 1.0, viewport.ZoomFactor(math.NaN(), 0.1))
	})
	t.Run("should always be positive", func(t *testing.T) {
		for _, d := range []float64{-1e9, -10, -1, 0, 1, 10, 1e9, math.Inf(-1), math.Inf(1)} {
			assert.Greater(t, viewport.ZoomFactor(d, 0.1), 0.0)
		}
	})
}

func TestApplyZoom(t *testing.T) {
	t.Run("should zoom around anchor", func(t *testing.T) {
		// given
		s := viewport.State{BaseScale: 1, ZoomScale: 1}
		anchor := viewport.V(100, 100)
		world := viewport.V(100, 100)
		xassert.EqualVec(t, anchor, s.WorldToScreen(world), 1e-9)
		// when
		got := s.ApplyZoom(1.0, anchor)
		// then
		assert.InDelta(t, 1.10517, got.ZoomScale, 1e-5)
		xassert.EqualVec(t, viewport.V(-10.517, -10.517), got.ZoomOffset, 1e-3)
		xassert.EqualVec(t, anchor, got.WorldToScreen(world), tolerance)
	})
	t.Run("should not change original state", func(t *testing.T) {
		s := viewport.State{BaseScale: 1, ZoomScale: 1}
		s.ApplyZoom(5, viewport.V(10, 10))
		assert.Equal(t, viewport.State{BaseScale: 1, ZoomScale: 1}, s)
	})
	t.Run("should keep point under anchor fixed", func(t *testing.T) {
		r := rand.New(rand.NewPCG(42, 1))
		for range 1000 {
			s := viewport.State{
				BaseScale:  0.001 + r.Float64()*10,
				ZoomScale:  0.01 + r.Float64()*100,
				ZoomOffset: viewport.V(r.Float64()*2000-1000, r.Float64()*2000-1000),
				PanOffset:  viewport.V(r.Float64()*2000-1000, r.Float64()*2000-1000),
			}
			anchor := viewport.V(r.Float64()*1024, r.Float64()*768)
			delta := r.Float64()*40 - 20
			world := s.ScreenToWorld(anchor)
			got := s.ApplyZoom(delta, anchor)
			xassert.EqualVec(t, anchor, got.WorldToScreen(world), tolerance)
		}
	})
	t.Run("should compose zooms by multiplication", func(t *testing.T) {
		r := rand.New(rand.NewPCG(7, 3))
		for range 100 {
			s := viewport.State{BaseScale: 1, ZoomScale: 0.5 + r.Float64()*5}
			anchor := viewport.V(r.Float64()*1024, r.Float64()*768)
			d1, d2 := r.Float64()*20-10, r.Float64()*20-10
			want := s.ZoomScale * viewport.ZoomFactor(d1, 0.1) * viewport.ZoomFactor(d2, 0.1)
			got := s.ApplyZoom(d1, anchor).ApplyZoom(d2, anchor)
			assert.InDelta(t, want, got.ZoomScale, 1e-9)
			single := s.ApplyZoomFactor(viewport.ZoomFactor(d1, 0.1)*viewport.ZoomFactor(d2, 0.1), anchor)
			assert.InDelta(t, single.ZoomScale, got.ZoomScale, 1e-9)
			xassert.EqualVec(t, single.ZoomOffset, got.ZoomOffset, 1e-6)
		}
	})
	t.Run("should not zoom out below floor", func(t *testing.T) {
		// given
		s := viewport.State{BaseScale: 1, ZoomScale: 1}
		anchor := viewport.V(300, 200)
		world := s.ScreenToWorld(anchor)
		// when
		for range 100 {
			s = s.ApplyZoom(-10, anchor)
		}
		// then
		assert.Equal(t, viewport.MinZoomScale, s.ZoomScale)
		xassert.EqualVec(t, anchor, s.WorldToScreen(world), tolerance)
	})
	t.Run("should ignore invalid factors", func(t *testing.T) {
		s := viewport.State{BaseScale: 1, ZoomScale: 2}
		assert.Equal(t, s, s.ApplyZoomFactor(0, viewport.V(1, 1)))
		assert.Equal(t, s, s.ApplyZoomFactor(-1, viewport.V(1, 1)))
		assert.Equal(t, s, s.ApplyZoomFactor(math.NaN(), viewport.V(1, 1)))
	})
}

func TestVisible(t *testing.T) {
	s := viewport.NewState(100, viewport.V(200, 200))
	size := viewport.V(200, 200)
	cases := []struct {
		name   string
		p      viewport.Vec2
		margin float64
		want   bool
	}{
		{"center", viewport.V(0, 0), 0, true},
		{"edge", viewport.V(100, 0), 0, true},
		{"outside", viewport.V(101, 0), 0, false},
		{"outside within margin", viewport.V(101, 0), 2, true},
		{"far away", viewport.V(-5000, 5000), 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Visible(tc.p, size, tc.margin))
		})
	}
}
