package tui

import "image/color"

// canvas is a pixel buffer. Pixels which have not been set are nil.
type canvas struct {
	width, height int
	pixels        []color.Color
}

func newCanvas(width, height int) *canvas {
	return &canvas{width: width, height: height, pixels: make([]color.Color, width*height)}
}

func (c *canvas) at(x, y int) color.Color {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return c.pixels[y*c.width+x]
}

func (c *canvas) set(x, y int, col color.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] = col
}

func (c *canvas) fillRect(x, y, size float64, col color.Color) {
	size = max(size, 1)
	for py := toPixel(y, c.height); py < toPixel(y+size, c.height); py++ {
		for px := toPixel(x, c.width); px < toPixel(x+size, c.width); px++ {
			c.set(px, py, col)
		}
	}
}

func (c *canvas) fillCircle(cx, cy, radius float64, col color.Color) {
	radius = max(radius, 0.5)
	r2 := radius * radius
	for py := toPixel(cy-radius, c.height); py < toPixel(cy+radius+1, c.height); py++ {
		dy := float64(py) + 0.5 - cy
		for px := toPixel(cx-radius, c.width); px < toPixel(cx+radius+1, c.width); px++ {
			dx := float64(px) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.set(px, py, col)
			}
		}
	}
}

// toPixel converts v into a pixel coordinate within [0, n].
func toPixel(v float64, n int) int {
	if !(v > 0) {
		return 0
	}
	if v >= float64(n) {
		return n
	}
	return int(v)
}
