package galaxy

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ErikKalkoken/spacemap/internal/app"
)

// rdPu are the stops of the ColorBrewer RdPu scheme.
var rdPu = []colorful.Color{
	mustParseHex("#fff7f3"),
	mustParseHex("#fde0dd"),
	mustParseHex("#fcc5c0"),
	mustParseHex("#fa9fb5"),
	mustParseHex("#f768a1"),
	mustParseHex("#dd3497"),
	mustParseHex("#ae017e"),
	mustParseHex("#7a0177"),
	mustParseHex("#49006a"),
}

func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Gradient returns the color at position t of the galaxy gradient.
// t is clamped to [0, 1].
func Gradient(t float64) colorful.Color {
	if !(t > 0) {
		return rdPu[0]
	}
	if t >= 1 {
		return rdPu[len(rdPu)-1]
	}
	x := t * float64(len(rdPu)-1)
	i := int(x)
	return rdPu[i].BlendLab(rdPu[i+1], x-float64(i)).Clamped()
}

// SystemColor returns the color of a system at the normalized distance from the galaxy center.
func SystemColor(t app.SystemType, distance float64) color.Color {
	if t == app.SystemBlackHole {
		return color.Black
	}
	r, g, b := Gradient(distance).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
