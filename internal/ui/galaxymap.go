package ui

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ErikKalkoken/spacemap/internal/galaxy"
	"github.com/ErikKalkoken/spacemap/internal/viewport"
)

// scrollUnitsPerStep is the number of scrolled units reported by fyne for one wheel step.
const scrollUnitsPerStep = 10

// hoverRadius is the max distance in pixels between the pointer and a system for hovering.
const hoverRadius = 6

// GalaxyMap is a widget for exploring a galaxy with pan and zoom.
type GalaxyMap struct {
	widget.BaseWidget

	// OnChanged is called after the projection has changed.
	OnChanged func(s viewport.State)
	// OnHovered is called when the pointer moved onto a system or away from it.
	OnHovered func(b galaxy.Body, ok bool)
	// OnSelected is called when a system was tapped.
	OnSelected func(b galaxy.Body)

	galaxy  *galaxy.Galaxy
	hovered string
	raster  *canvas.Raster
	reducer *viewport.Reducer
}

var _ desktop.Hoverable = (*GalaxyMap)(nil)
var _ desktop.Mouseable = (*GalaxyMap)(nil)
var _ fyne.Draggable = (*GalaxyMap)(nil)
var _ fyne.Scrollable = (*GalaxyMap)(nil)
var _ fyne.Tappable = (*GalaxyMap)(nil)

// NewGalaxyMap returns a new galaxy map.
// The galaxy is fitted into a viewport of the given size.
func NewGalaxyMap(g *galaxy.Galaxy, size fyne.Size, sensitivity float64) *GalaxyMap {
	vs := toVec(size)
	r := viewport.NewReducer(viewport.NewState(g.Radius(), vs), vs)
	if sensitivity > 0 {
		r.Sensitivity = sensitivity
	}
	w := &GalaxyMap{
		galaxy:  g,
		reducer: r,
	}
	w.raster = canvas.NewRaster(w.draw)
	w.ExtendBaseWidget(w)
	return w
}

// State returns the current projection.
func (w *GalaxyMap) State() viewport.State {
	return w.reducer.State
}

// Zoom zooms in or out around the last known pointer position.
func (w *GalaxyMap) Zoom(in bool) {
	w.handle(viewport.KeyZoom{In: in})
}

func (w *GalaxyMap) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.raster)
}

func (w *GalaxyMap) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	w.handle(viewport.PointerDown{Pos: toVec(ev.Position)})
}

func (w *GalaxyMap) MouseUp(ev *desktop.MouseEvent) {
	w.handle(viewport.PointerUp{})
}

func (w *GalaxyMap) Dragged(ev *fyne.DragEvent) {
	if !w.reducer.Drag.Dragging {
		w.handle(viewport.PointerDown{Pos: toVec(ev.Position.Subtract(ev.Dragged))})
	}
	w.handle(viewport.PointerMove{Pos: toVec(ev.Position)})
}

func (w *GalaxyMap) DragEnd() {
	w.handle(viewport.PointerUp{})
}

func (w *GalaxyMap) MouseIn(ev *desktop.MouseEvent) {
	w.handle(viewport.PointerMove{Pos: toVec(ev.Position)})
}

func (w *GalaxyMap) MouseMoved(ev *desktop.MouseEvent) {
	w.handle(viewport.PointerMove{Pos: toVec(ev.Position)})
	if !w.reducer.Drag.Dragging {
		w.updateHover()
	}
}

func (w *GalaxyMap) MouseOut() {
	if w.hovered != "" {
		w.hovered = ""
		if w.OnHovered != nil {
			w.OnHovered(galaxy.Body{}, false)
		}
	}
}

func (w *GalaxyMap) Scrolled(ev *fyne.ScrollEvent) {
	w.handle(viewport.PointerMove{Pos: toVec(ev.Position)})
	w.handle(viewport.Wheel{Delta: float64(ev.Scrolled.DY) / scrollUnitsPerStep})
}

func (w *GalaxyMap) Tapped(ev *fyne.PointEvent) {
	b, ok := w.bodyAt(toVec(ev.Position))
	if !ok {
		return
	}
	slog.Debug("System selected", "symbol", b.System.Symbol)
	if w.OnSelected != nil {
		w.OnSelected(b)
	}
}

// handle passes an event to the reducer and redraws the map when needed.
func (w *GalaxyMap) handle(ev viewport.Event) {
	if !w.reducer.Handle(ev) {
		return
	}
	w.raster.Refresh()
	if w.OnChanged != nil {
		w.OnChanged(w.reducer.State)
	}
}

func (w *GalaxyMap) updateHover() {
	b, ok := w.bodyAt(w.reducer.Pointer)
	var symbol string
	if ok {
		symbol = b.System.Symbol.String()
	}
	if symbol == w.hovered {
		return
	}
	w.hovered = symbol
	if w.OnHovered != nil {
		w.OnHovered(b, ok)
	}
}

// bodyAt returns the body shown at screen position p.
func (w *GalaxyMap) bodyAt(p viewport.Vec2) (galaxy.Body, bool) {
	s := w.reducer.State
	return w.galaxy.Nearest(s.ScreenToWorld(p), hoverRadius/s.Scale())
}

// draw renders the galaxy into an image of w x h pixels.
func (w *GalaxyMap) draw(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	size := w.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return img
	}
	// pixels per fyne unit
	f := float64(width) / float64(size.Width)
	for _, s := range w.galaxy.Frame(w.reducer.State, toVec(size)) {
		c := s.Center.Scale(f)
		switch s.Kind {
		case galaxy.Point:
			fillRect(img, c.X, c.Y, s.Size*f, s.Color)
		case galaxy.Square:
			d := s.Size * f
			fillRect(img, c.X-d/2, c.Y-d/2, d, s.Color)
		case galaxy.Disc:
			fillCircle(img, c.X, c.Y, s.Size*f, s.Color)
		}
	}
	return img
}

func fillRect(img *image.RGBA, x, y, size float64, c color.Color) {
	size = max(size, 1)
	b := img.Bounds()
	r := image.Rect(
		toPixel(x, b.Min.X, b.Max.X),
		toPixel(y, b.Min.Y, b.Max.Y),
		toPixel(x+size, b.Min.X, b.Max.X),
		toPixel(y+size, b.Min.Y, b.Max.Y),
	)
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func fillCircle(img *image.RGBA, cx, cy, radius float64, c color.Color) {
	radius = max(radius, 1)
	ib := img.Bounds()
	b := image.Rect(
		toPixel(cx-radius, ib.Min.X, ib.Max.X),
		toPixel(cy-radius, ib.Min.Y, ib.Max.Y),
		toPixel(cx+radius+1, ib.Min.X, ib.Max.X),
		toPixel(cy+radius+1, ib.Min.Y, ib.Max.Y),
	)
	r2 := radius * radius
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := float64(y) + 0.5 - cy
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				img.Set(x, y, c)
			}
		}
	}
}

// toPixel converts v into a pixel coordinate within [lo, hi].
// Values far outside the image would overflow when converted directly.
func toPixel(v float64, lo, hi int) int {
	if !(v > float64(lo)) {
		return lo
	}
	if v >= float64(hi) {
		return hi
	}
	return int(v)
}

func toVec(v fyne.Vector2) viewport.Vec2 {
	x, y := v.Components()
	return viewport.V(float64(x), float64(y))
}
