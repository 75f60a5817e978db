package galaxy

import (
	"image/color"

	"github.com/ErikKalkoken/spacemap/internal/viewport"
)

// ShapeKind is the kind of a shape.
type ShapeKind uint

const (
	Point ShapeKind = iota
	Disc
	Square
)

// Shape is a primitive to be drawn on screen.
// Center and Size are in screen units.
type Shape struct {
	Kind   ShapeKind
	Center viewport.Vec2
	Size   float64 // edge length for squares and points, radius for discs
	Color  color.Color
}

// Frame returns the shapes for drawing the galaxy with the projection s on a screen of the given size.
// Bodies outside the screen are skipped.
func (g *Galaxy) Frame(s viewport.State, size viewport.Vec2) []Shape {
	scale := s.Scale()
	shapes := make([]Shape, 0, len(g.bodies))
	for _, b := range g.bodies {
		r := b.Size * scale
		if !s.Visible(b.Pos, size, max(r, PointSize)) {
			continue
		}
		center := s.WorldToScreen(b.Pos)
		if !b.ShowDetail(s.ZoomScale) {
			shapes = append(shapes, Shape{Kind: Point, Center: center, Size: PointSize, Color: b.Color})
			continue
		}
		shapes = append(shapes, Shape{Kind: Disc, Center: center, Size: r, Color: b.Color})
		for _, w := range b.System.Waypoints {
			shapes = append(shapes, Shape{
				Kind:   Square,
				Center: center.Add(viewport.V(float64(w.X), float64(w.Y)).Scale(scale)),
				Size:   WaypointSize * scale,
				Color:  color.White,
			})
		}
	}
	return shapes
}
