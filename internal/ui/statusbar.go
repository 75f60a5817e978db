package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/ErikKalkoken/spacemap/internal/app"
	"github.com/ErikKalkoken/spacemap/internal/galaxy"
)

type statusBar struct {
	widget.BaseWidget

	agent   *ttwidget.Label
	hover   *widget.Label
	systems *ttwidget.Label
	zoom    *widget.Label
}

func newStatusBar(g *galaxy.Galaxy) *statusBar {
	a := &statusBar{
		agent:   ttwidget.NewLabel(""),
		hover:   widget.NewLabel(""),
		systems: ttwidget.NewLabel(humanize.Comma(int64(g.Len())) + " systems"),
		zoom:    widget.NewLabel(""),
	}
	a.ExtendBaseWidget(a)
	a.systems.SetToolTip(fmt.Sprintf("Galaxy radius: %s", humanize.Comma(int64(g.Radius()))))
	a.agent.Hide()
	a.setZoom(1)
	return a
}

func (a *statusBar) CreateRenderer() fyne.WidgetRenderer {
	c := container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(
			a.hover,
			layout.NewSpacer(),
			a.agent,
			widget.NewSeparator(),
			a.systems,
			widget.NewSeparator(),
			a.zoom,
		))
	return widget.NewSimpleRenderer(c)
}

func (a *statusBar) setZoom(z float64) {
	a.zoom.SetText(fmt.Sprintf("Zoom %sx", humanize.FtoaWithDigits(z, 2)))
}

func (a *statusBar) setHover(b galaxy.Body, ok bool) {
	if !ok {
		a.hover.SetText("")
		return
	}
	a.hover.SetText(fmt.Sprintf("%s • %s", b.System.Symbol, b.System.Type.Display()))
}

func (a *statusBar) setAgent(x app.Agent) {
	a.agent.SetText(x.Symbol)
	a.agent.SetToolTip(fmt.Sprintf(
		"%s • HQ %s • %s credits • %d ships",
		x.StartingFaction,
		x.Headquarters,
		humanize.Comma(x.Credits),
		x.ShipCount,
	))
	a.agent.Show()
}
