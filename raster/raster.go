// Package raster draws shapes, text and images on an addressable-window display.
//
// Every operation is translated into one or more address window selections,
// each immediately followed by exactly as many RGB565 pixels as the window
// holds. Coordinates are device pixels with the origin at the top left.
//
// Out-of-range coordinates, negative ones included, are clipped. With
// ClipSilent (the default) nothing is reported. With ClipStrict the call
// returns ErrOutOfBounds: FillRect and Image then draw nothing, while
// pixel-stepped primitives (lines, circles, text) stop at the first
// offending pixel and keep what they already drew.
package raster

import (
	"errors"
	"image"

	"github.com/flavioheleno/st7735/rgb565"
)

// Device is the display surface the rasterizer writes to.
type Device interface {
	// Bounds returns the drawable area; Min must be the origin.
	Bounds() image.Rectangle
	// SetAddressWindow selects the inclusive rectangle for the next pixels.
	SetAddressWindow(x0, y0, x1, y1 int) error
	// WriteData streams pixel bytes into the current window.
	WriteData(data []byte) error
}

// ClipPolicy decides what happens to drawing outside the display.
type ClipPolicy uint8

const (
	// ClipSilent clips out-of-range drawing without reporting it.
	ClipSilent ClipPolicy = iota
	// ClipStrict rejects out-of-range drawing with ErrOutOfBounds.
	ClipStrict
)

// ErrOutOfBounds is returned under ClipStrict for drawing outside the display.
var ErrOutOfBounds = errors.New("raster: out of bounds")

// Opts is the configuration for a Canvas.
type Opts struct {
	Clip ClipPolicy
}

// chunkPixels is the number of repeated pixels sent per WriteData call.
const chunkPixels = 1024

// Canvas draws on a Device. It is not safe for concurrent use.
type Canvas struct {
	dev  Device
	w, h int
	clip ClipPolicy
	buf  []byte
}

// New returns a Canvas drawing on dev. opts can be nil.
func New(dev Device, opts *Opts) *Canvas {
	b := dev.Bounds()
	c := &Canvas{dev: dev, w: b.Dx(), h: b.Dy()}
	if opts != nil {
		c.clip = opts.Clip
	}
	return c
}

// Size returns the display size in pixels.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// Bounds returns the drawable area.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.w, c.h)
}

func (c *Canvas) outside() error {
	if c.clip == ClipStrict {
		return ErrOutOfBounds
	}
	return nil
}

// fill selects the inclusive window and streams one color into all of it.
func (c *Canvas) fill(x0, y0, x1, y1 int, col rgb565.Color) error {
	if err := c.dev.SetAddressWindow(x0, y0, x1, y1); err != nil {
		return err
	}
	return c.repeat(col, (x1-x0+1)*(y1-y0+1))
}

// repeat streams n copies of col.
func (c *Canvas) repeat(col rgb565.Color, n int) error {
	if c.buf == nil {
		c.buf = make([]byte, 2*chunkPixels)
	}
	hi, lo := col.Bytes()
	for i := 0; i < min(n, chunkPixels); i++ {
		c.buf[2*i], c.buf[2*i+1] = hi, lo
	}
	for n > 0 {
		k := min(n, chunkPixels)
		if err := c.dev.WriteData(c.buf[:2*k]); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

// SetPixel sets one pixel.
func (c *Canvas) SetPixel(x, y int, col rgb565.Color) error {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return c.outside()
	}
	return c.fill(x, y, x, y, col)
}

// FillRect fills the w×h rectangle whose top left corner is (x, y).
// The part outside the display is clipped.
func (c *Canvas) FillRect(x, y, w, h int, col rgb565.Color) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	r, cut := c.clipRect(x, y, w, h)
	if cut {
		if err := c.outside(); err != nil {
			return err
		}
	}
	if r.Empty() {
		return nil
	}
	return c.fill(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1, col)
}

// clipRect returns the visible part of the w×h rectangle at (x, y) and
// whether any of it was cut off. w and h must be positive.
func (c *Canvas) clipRect(x, y, w, h int) (image.Rectangle, bool) {
	x0, x1, cutX := span(x, w, c.w)
	y0, y1, cutY := span(y, h, c.h)
	if x0 >= x1 || y0 >= y1 {
		return image.Rectangle{}, true
	}
	return image.Rect(x0, y0, x1, y1), cutX || cutY
}

// span clips the n pixels starting at pos to [0, limit) without computing
// pos+n past the limit.
func span(pos, n, limit int) (lo, hi int, cut bool) {
	switch {
	case pos >= limit:
		return 0, 0, true
	case pos < 0:
		// pos+n cannot overflow with pos negative.
		return 0, max(0, min(pos+n, limit)), true
	}
	return pos, pos + min(n, limit-pos), n > limit-pos
}

// Clear fills the whole display.
func (c *Canvas) Clear(col rgb565.Color) error {
	return c.FillRect(0, 0, c.w, c.h, col)
}

// HLine draws a horizontal line of w pixels starting at (x, y).
func (c *Canvas) HLine(x, y, w int, col rgb565.Color) error {
	return c.FillRect(x, y, w, 1, col)
}

// VLine draws a vertical line of h pixels starting at (x, y).
func (c *Canvas) VLine(x, y, h int, col rgb565.Color) error {
	return c.FillRect(x, y, 1, h, col)
}

// Line draws a line from (x0, y0) to (x1, y1), both ends included.
//
// Axis-aligned lines become a single window. Other lines use integer
// Bresenham stepping along the dominant axis, always walking from the end
// with the smaller dominant coordinate so that swapping the endpoints plots
// the same pixels.
func (c *Canvas) Line(x0, y0, x1, y1 int, col rgb565.Color) error {
	switch {
	case x0 == x1:
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		return c.VLine(x0, y0, y1-y0+1, col)
	case y0 == y1:
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		return c.HLine(x0, y0, x1-x0+1, col)
	}

	dx, dy := abs(x1-x0), abs(y1-y0)
	if dx >= dy {
		if x1 < x0 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		step := 1
		if y1 < y0 {
			step = -1
		}
		e := 2*dy - dx
		for x, y := x0, y0; ; x++ {
			if err := c.SetPixel(x, y, col); err != nil {
				return err
			}
			if x == x1 {
				return nil
			}
			if e >= 0 {
				y += step
				e -= 2 * dx
			}
			e += 2 * dy
		}
	}

	if y1 < y0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	step := 1
	if x1 < x0 {
		step = -1
	}
	e := 2*dx - dy
	for x, y := x0, y0; ; y++ {
		if err := c.SetPixel(x, y, col); err != nil {
			return err
		}
		if y == y1 {
			return nil
		}
		if e >= 0 {
			x += step
			e -= 2 * dy
		}
		e += 2 * dx
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
