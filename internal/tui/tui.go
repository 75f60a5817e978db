// Package tui is a terminal viewer of the galaxy map.
//
// Each terminal cell shows two pixels stacked on top of each other,
// which roughly gives square pixels.
package tui

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ErikKalkoken/spacemap/internal/galaxy"
	"github.com/ErikKalkoken/spacemap/internal/viewport"
)

// hoverRadius is the max distance in pixels between the pointer and a system for hovering.
const hoverRadius = 2

// Viewer shows a galaxy on a terminal screen.
type Viewer struct {
	galaxy  *galaxy.Galaxy
	hovered string
	pressed bool
	reducer *viewport.Reducer
	screen  tcell.Screen
}

// New returns a new viewer for the galaxy g on an initialized screen.
func New(screen tcell.Screen, g *galaxy.Galaxy, sensitivity float64) *Viewer {
	size := mapSize(screen)
	r := viewport.NewReducer(viewport.NewState(g.Radius(), size), size)
	if sensitivity > 0 {
		r.Sensitivity = sensitivity
	}
	return &Viewer{
		galaxy:  g,
		reducer: r,
		screen:  screen,
	}
}

// State returns the current projection.
func (v *Viewer) State() viewport.State {
	return v.reducer.State
}

// Run draws the galaxy and processes events until the user quits.
func (v *Viewer) Run() {
	v.screen.EnableMouse()
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		dirty, quit := v.HandleEvent(ev)
		if quit {
			return
		}
		if dirty {
			v.Draw()
		}
	}
}

// HandleEvent processes a terminal event.
// It reports whether the screen must be redrawn and whether the user asked to quit.
func (v *Viewer) HandleEvent(ev tcell.Event) (dirty bool, quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		return true, false
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false, true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false, true
			case '=', '+':
				return v.reducer.Handle(viewport.KeyZoom{In: true}), false
			case '-':
				return v.reducer.Handle(viewport.KeyZoom{In: false}), false
			}
		}
	case *tcell.EventMouse:
		return v.handleMouse(ev), false
	}
	return false, false
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	p := cellToPixel(x, y)
	b := ev.Buttons()
	var dirty bool
	if v.reducer.Handle(viewport.PointerMove{Pos: p}) {
		dirty = true
	}
	switch pressed := b&tcell.Button1 != 0; {
	case pressed && !v.pressed:
		v.reducer.Handle(viewport.PointerDown{Pos: p})
	case !pressed && v.pressed:
		v.reducer.Handle(viewport.PointerUp{})
	}
	v.pressed = b&tcell.Button1 != 0
	if b&tcell.WheelUp != 0 && v.reducer.Handle(viewport.Wheel{Delta: 1}) {
		dirty = true
	}
	if b&tcell.WheelDown != 0 && v.reducer.Handle(viewport.Wheel{Delta: -1}) {
		dirty = true
	}
	if !v.pressed && v.updateHover() {
		dirty = true
	}
	return dirty
}

// updateHover updates the hovered system and reports whether it has changed.
func (v *Viewer) updateHover() bool {
	s := v.reducer.State
	b, ok := v.galaxy.Nearest(s.ScreenToWorld(v.reducer.Pointer), hoverRadius/s.Scale())
	var symbol string
	if ok {
		symbol = b.System.Symbol.String()
	}
	if symbol == v.hovered {
		return false
	}
	v.hovered = symbol
	if ok {
		slog.Debug("System hovered", "symbol", symbol)
	}
	return true
}

// Draw renders the galaxy and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	size := mapSize(v.screen)
	c := newCanvas(int(size.X), int(size.Y))
	for _, s := range v.galaxy.Frame(v.reducer.State, size) {
		switch s.Kind {
		case galaxy.Point:
			c.set(int(s.Center.X), int(s.Center.Y), s.Color)
		case galaxy.Disc:
			c.fillCircle(s.Center.X, s.Center.Y, s.Size, s.Color)
		case galaxy.Square:
			c.fillRect(s.Center.X-s.Size/2, s.Center.Y-s.Size/2, s.Size, s.Color)
		}
	}
	for y := 0; y < h-1; y++ {
		for x := range w {
			top, bottom := c.at(x, 2*y), c.at(x, 2*y+1)
			if top == nil && bottom == nil {
				continue
			}
			style := tcell.StyleDefault.Background(toColor(bottom)).Foreground(toColor(top))
			v.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	if h > 0 {
		v.drawText(0, h-1, w, v.statusText(), tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

func (v *Viewer) statusText() string {
	s := fmt.Sprintf(
		" %s systems │ zoom %sx │ drag to pan, wheel or +/- to zoom, q to quit",
		humanize.Comma(int64(v.galaxy.Len())),
		humanize.FtoaWithDigits(v.reducer.State.ZoomScale, 2),
	)
	if v.hovered != "" {
		s = " " + v.hovered + " │" + s
	}
	return s
}

// drawText draws a line of text starting at column x and truncates it to width.
func (v *Viewer) drawText(x, y, width int, text string, style tcell.Style) {
	text = runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
	col := x
	for _, r := range text {
		v.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

// mapSize returns the size of the map in pixels. The last row is reserved for the status line.
func mapSize(screen tcell.Screen) viewport.Vec2 {
	w, h := screen.Size()
	return viewport.V(float64(w), float64(2*max(h-1, 0)))
}

// cellToPixel returns the pixel in the center of a cell.
func cellToPixel(x, y int) viewport.Vec2 {
	return viewport.V(float64(x)+0.5, float64(2*y)+1)
}

func toColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorBlack
	}
	return tcell.FromImageColor(c)
}
