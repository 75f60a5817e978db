package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	kxlayout "github.com/ErikKalkoken/fyne-kx/layout"
	"github.com/dustin/go-humanize"

	"github.com/ErikKalkoken/spacemap/internal/galaxy"
)

const (
	detailsLabelWidth = 90
	detailsWidth      = 320
)

// details shows the properties of the selected system.
type details struct {
	widget.BaseWidget

	OnClosed func()

	distance  *widget.Label
	position  *widget.Label
	sector    *widget.Label
	symbol    *widget.Label
	typ       *widget.Label
	waypoints *widget.Label
}

func newDetails() *details {
	a := &details{
		distance:  widget.NewLabel(""),
		position:  widget.NewLabel(""),
		sector:    widget.NewLabel(""),
		symbol:    widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		typ:       widget.NewLabel(""),
		waypoints: widget.NewLabel(""),
	}
	a.waypoints.Wrapping = fyne.TextWrapWord
	a.ExtendBaseWidget(a)
	return a
}

func (a *details) CreateRenderer() fyne.WidgetRenderer {
	columns := kxlayout.NewColumns(detailsLabelWidth)
	row := func(label string, value fyne.CanvasObject) fyne.CanvasObject {
		return container.New(columns, widget.NewLabel(label), value)
	}
	closeButton := widget.NewButtonWithIcon("", theme.WindowCloseIcon(), func() {
		if a.OnClosed != nil {
			a.OnClosed()
		}
	})
	c := container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, nil, closeButton, a.symbol),
			row("Sector", a.sector),
			row("Type", a.typ),
			row("Position", a.position),
			row("Distance", a.distance),
			widget.NewSeparator(),
			widget.NewLabel("Waypoints"),
		),
		nil,
		nil,
		nil,
		container.NewVScroll(a.waypoints),
	)
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(detailsWidth, 0))
	return widget.NewSimpleRenderer(container.NewStack(spacer, c))
}

func (a *details) set(b galaxy.Body) {
	s := b.System
	a.symbol.SetText(s.Symbol.String())
	a.sector.SetText(s.SectorSymbol.String())
	a.typ.SetText(s.Type.Display())
	a.position.SetText(fmt.Sprintf("%s, %s", humanize.Comma(int64(s.X)), humanize.Comma(int64(s.Y))))
	a.distance.SetText(fmt.Sprintf("%s (%.0f%%)", humanize.Comma(int64(s.Distance())), b.Distance*100))
	lines := make([]string, 0, len(s.Waypoints))
	for _, w := range s.Waypoints {
		lines = append(lines, fmt.Sprintf("%s  %s  (%d, %d)", w.Symbol.Waypoint, w.Type.Display(), w.X, w.Y))
	}
	if len(lines) == 0 {
		lines = append(lines, "None")
	}
	a.waypoints.SetText(strings.Join(lines, "\n"))
}
