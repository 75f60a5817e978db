// Package ui is the desktop viewer of the galaxy map.
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/ErikKalkoken/spacemap/internal/app"
	"github.com/ErikKalkoken/spacemap/internal/galaxy"
	"github.com/ErikKalkoken/spacemap/internal/viewport"
)

const windowTitle = "Space Map"

type Params struct {
	// Agent is shown in the status bar when set.
	Agent *app.Agent
	// Size of the window.
	Size fyne.Size
	// Sensitivity of the zoom. Uses the default when 0.
	Sensitivity float64
}

// UI is the desktop viewer.
type UI struct {
	app       fyne.App
	details   *details
	galaxyMap *GalaxyMap
	statusBar *statusBar
	window    fyne.Window
}

// New returns a new desktop viewer for the galaxy g.
func New(fyneApp fyne.App, g *galaxy.Galaxy, arg Params) *UI {
	if arg.Size.IsZero() {
		arg.Size = fyne.NewSize(1024, 768)
	}
	u := &UI{
		app:       fyneApp,
		details:   newDetails(),
		galaxyMap: NewGalaxyMap(g, arg.Size, arg.Sensitivity),
		statusBar: newStatusBar(g),
		window:    fyneApp.NewWindow(windowTitle),
	}
	if arg.Agent != nil {
		u.statusBar.setAgent(*arg.Agent)
	}
	u.galaxyMap.OnChanged = func(s viewport.State) {
		u.statusBar.setZoom(s.ZoomScale)
	}
	u.galaxyMap.OnHovered = u.statusBar.setHover
	u.galaxyMap.OnSelected = func(b galaxy.Body) {
		u.details.set(b)
		u.details.Show()
	}
	u.details.OnClosed = u.details.Hide
	u.details.Hide()

	c := container.NewBorder(nil, u.statusBar, nil, u.details, u.galaxyMap)
	u.window.SetContent(fynetooltip.AddWindowToolTipLayer(c, u.window.Canvas()))
	u.window.Canvas().SetOnTypedRune(u.typedRune)
	u.window.Resize(arg.Size)
	u.window.SetMaster()
	return u
}

func (u *UI) typedRune(r rune) {
	switch r {
	case '=', '+':
		u.galaxyMap.Zoom(true)
	case '-':
		u.galaxyMap.Zoom(false)
	}
}

// ShowAndRun shows the viewer and blocks until it is closed.
func (u *UI) ShowAndRun() {
	u.window.ShowAndRun()
}
