// Package viewport maps the world coordinates of the galaxy onto the screen.
//
// The projection combines a fit scale, which is computed once from the extent of the galaxy,
// with a pan offset and a zoom which are changed interactively:
//
//	screen = ((world * BaseScale) + PanOffset) * ZoomScale + ZoomOffset
//
// Zooming keeps the point under the anchor (usually the mouse cursor) at the same position on screen.
// All functions in this package are pure and not safe for concurrent use of the same [Reducer].
package viewport

import (
	"math"
)

const (
	// DefaultSensitivity converts a raw wheel delta into the exponent of a zoom factor.
	DefaultSensitivity = 0.1
	// MinZoomFactor is the smallest factor a single zoom step can apply.
	MinZoomFactor = 0.01
	// MinZoomScale is the floor of the zoom scale.
	MinZoomScale = 1e-6
)

// State is the projection from world to screen coordinates.
type State struct {
	BaseScale  float64 // fits the galaxy into the viewport. Never changed after creation.
	ZoomScale  float64
	ZoomOffset Vec2
	PanOffset  Vec2
}

// NewState returns the initial state for a galaxy with the given radius
// shown in a viewport of the given size.
// The origin of the galaxy is shown in the center of the viewport.
func NewState(radius float64, size Vec2) State {
	return State{
		BaseScale: FitScale(radius, size),
		ZoomScale: 1,
		PanOffset: size.Scale(0.5),
	}
}

// FitScale returns the scale at which a circle with radius fits into a viewport of the given size.
// Returns 1 when the radius or the viewport is degenerated, e.g. for an empty galaxy.
func FitScale(radius float64, size Vec2) float64 {
	m := min(size.X, size.Y)
	if !(radius > 0) || !(m > 0) || math.IsInf(radius, 0) {
		return 1
	}
	return m / (2 * radius)
}

// WorldToScreen returns the screen position of the world point p.
func (s State) WorldToScreen(p Vec2) Vec2 {
	return p.Scale(s.BaseScale).Add(s.PanOffset).Scale(s.ZoomScale).Add(s.ZoomOffset)
}

// ScreenToWorld returns the world point shown at the screen position p.
func (s State) ScreenToWorld(p Vec2) Vec2 {
	return p.Sub(s.ZoomOffset).Scale(1 / s.ZoomScale).Sub(s.PanOffset).Scale(1 / s.BaseScale)
}

// Scale returns the total scale from world to screen units.
func (s State) Scale() float64 {
	return s.BaseScale * s.ZoomScale
}

// ZoomFactor returns the multiplicative zoom factor for a raw wheel delta.
// Positive deltas zoom in. The factor of a single step is between 1/e and e.
func ZoomFactor(delta, sensitivity float64) float64 {
	x := delta * sensitivity
	if math.IsNaN(x) {
		return 1
	}
	return max(math.Exp(min(max(x, -1), 1)), MinZoomFactor)
}

// ApplyZoom returns a new state zoomed by a raw wheel delta around anchor
// using [DefaultSensitivity].
func (s State) ApplyZoom(delta float64, anchor Vec2) State {
	return s.ApplyZoomFactor(ZoomFactor(delta, DefaultSensitivity), anchor)
}

// ApplyZoomFactor returns a new state zoomed by factor f around anchor.
//
// The world point shown at anchor is shown at the same screen position after the zoom.
// The zoom scale never drops below [MinZoomScale].
func (s State) ApplyZoomFactor(f float64, anchor Vec2) State {
	if !(f > 0) || math.IsInf(f, 0) {
		return s
	}
	z := s.ZoomScale * f
	if z < MinZoomScale {
		z = MinZoomScale
		f = z / s.ZoomScale
	}
	s.ZoomScale = z
	s.ZoomOffset = s.ZoomOffset.Scale(f).Add(anchor.Scale(1 - f))
	return s
}

// Visible reports whether the world point p is shown within a screen of the given size.
// The screen is grown by margin on all sides, so that objects with a size are not cut off.
func (s State) Visible(p Vec2, size Vec2, margin float64) bool {
	q := s.WorldToScreen(p)
	return q.X >= -margin && q.X <= size.X+margin && q.Y >= -margin && q.Y <= size.Y+margin
}
