package raster

import (
	"github.com/flavioheleno/st7735/bitfont"
	"github.com/flavioheleno/st7735/rgb565"
)

// Text draws s with a bitmap font, starting with the top left corner of the
// first glyph at (x, y).
//
// Glyphs advance by scale*f.Width+1 pixels. When a glyph would cross the right
// edge of the display, or on '\n', drawing continues scale*f.Height+1 pixels
// lower at the starting x. Characters the font does not cover are left blank
// but still take up a cell. With scale > 1 every set bit becomes a
// scale×scale square.
func (c *Canvas) Text(x, y int, s string, f *bitfont.Font, col rgb565.Color, scale int) error {
	if f == nil {
		return nil
	}
	if scale < 1 {
		scale = 1
	}
	gw, gh := scale*f.Width, scale*f.Height

	px := x
	for _, r := range s {
		if r == '\n' {
			y += gh + 1
			px = x
			continue
		}
		if px != x && px+gw > c.w {
			y += gh + 1
			px = x
		}
		if err := c.glyph(px, y, r, f, col, scale); err != nil {
			return err
		}
		px += gw + 1
	}
	return nil
}

// TextSize returns the width and height s would take on a single line.
func TextSize(s string, f *bitfont.Font, scale int) (w, h int) {
	if f == nil {
		return 0, 0
	}
	if scale < 1 {
		scale = 1
	}
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return n*(scale*f.Width+1) - 1, scale * f.Height
}

func (c *Canvas) glyph(x, y int, r rune, f *bitfont.Font, col rgb565.Color, scale int) error {
	cols, ok := f.Glyph(r)
	if !ok {
		return nil
	}
	for i, bits := range cols {
		for row := 0; row < f.Height; row++ {
			if bits&(1<<row) == 0 {
				continue
			}
			var err error
			if scale == 1 {
				err = c.SetPixel(x+i, y+row, col)
			} else {
				err = c.FillRect(x+i*scale, y+row*scale, scale, scale, col)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
