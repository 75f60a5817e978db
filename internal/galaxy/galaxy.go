// Package galaxy prepares the systems of a snapshot for drawing.
package galaxy

import (
	"image/color"

	"github.com/ErikKalkoken/spacemap/internal/app"
	"github.com/ErikKalkoken/spacemap/internal/viewport"
)

const (
	// DetailZoom is the zoom scale above which systems are drawn with their waypoints.
	DetailZoom = 6.5
	// DetailDistance is the normalized distance from the center beyond which systems can be drawn with details.
	// The core of the galaxy is too crowded for details.
	DetailDistance = 0.16
	// WaypointSize is the size of waypoint markers in world units.
	WaypointSize = 30
	// PointSize is the size of systems drawn without details in pixels.
	PointSize = 2
)

// Body is a system prepared for drawing.
type Body struct {
	System   app.System
	Pos      viewport.Vec2
	Size     float64 // in world units
	Distance float64 // normalized distance from the galaxy center between 0 and 1
	Color    color.Color
}

// ShowDetail reports whether the body is drawn with its waypoints at the zoom scale z.
func (b Body) ShowDetail(z float64) bool {
	return z > DetailZoom && b.Distance > DetailDistance
}

// Galaxy is the drawable model of a snapshot.
type Galaxy struct {
	bodies []Body
	radius float64
}

// New returns a new galaxy from a snapshot.
func New(snapshot *app.Snapshot) *Galaxy {
	g := &Galaxy{radius: snapshot.Radius()}
	g.bodies = make([]Body, 0, snapshot.Len())
	for _, s := range snapshot.All() {
		var d float64
		if g.radius > 0 {
			d = s.Distance() / g.radius
		}
		g.bodies = append(g.bodies, Body{
			System:   s,
			Pos:      viewport.V(float64(s.X), float64(s.Y)),
			Size:     s.Size(),
			Distance: d,
			Color:    SystemColor(s.Type, d),
		})
	}
	return g
}

// Radius returns the largest distance of a system from the galaxy center.
func (g *Galaxy) Radius() float64 {
	return g.radius
}

func (g *Galaxy) Len() int {
	return len(g.bodies)
}

// Bodies returns the bodies in snapshot order.
func (g *Galaxy) Bodies() []Body {
	return g.bodies
}

// Nearest returns the body closest to the world point p within maxDistance.
func (g *Galaxy) Nearest(p viewport.Vec2, maxDistance float64) (Body, bool) {
	var best Body
	var found bool
	bestDistance := maxDistance
	for _, b := range g.bodies {
		d := b.Pos.Sub(p).Len()
		if d <= bestDistance {
			best, bestDistance, found = b, d, true
		}
	}
	return best, found
}
