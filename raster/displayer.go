package raster

import (
	"image/color"

	"github.com/flavioheleno/st7735/rgb565"
	"tinygo.org/x/drivers"
)

// Displayer adapts a Canvas to the tinygo drivers.Displayer interface so that
// tinygo drawing packages can target it. Pixels are written immediately;
// Display only reports the first error seen since the previous call.
type Displayer struct {
	c   *Canvas
	err error
}

var _ drivers.Displayer = (*Displayer)(nil)

// Displayer returns a drivers.Displayer drawing on c.
func (c *Canvas) Displayer() *Displayer {
	return &Displayer{c: c}
}

// Size implements drivers.Displayer.
func (d *Displayer) Size() (x, y int16) {
	return int16(d.c.w), int16(d.c.h)
}

// SetPixel implements drivers.Displayer.
func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if d.err != nil {
		return
	}
	d.err = d.c.SetPixel(int(x), int(y), rgb565.Pack(c.R, c.G, c.B))
}

// Display implements drivers.Displayer.
func (d *Displayer) Display() error {
	err := d.err
	d.err = nil
	return err
}
