package raster

import (
	"image"

	"github.com/flavioheleno/st7735/rgb565"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Image copies src to the display with its top left corner at (x, y), using
// a single address window for the visible part.
func (c *Canvas) Image(x, y int, src image.Image) error {
	b := src.Bounds()
	if b.Empty() {
		return nil
	}
	clipped, cut := c.clipRect(x, y, b.Dx(), b.Dy())
	if cut {
		if err := c.outside(); err != nil {
			return err
		}
	}
	if clipped.Empty() {
		return nil
	}
	// Visible pixels keep clipped.Min-x below b.Dx(), so this cannot overflow.
	sp := b.Min.Add(image.Pt(clipped.Min.X-x, clipped.Min.Y-y))
	w, h := clipped.Dx(), clipped.Dy()

	buf := make([]byte, 0, 2*w*h)
	if img, ok := src.(*rgb565.Image); ok {
		for row := 0; row < h; row++ {
			i := img.PixOffset(sp.X, sp.Y+row)
			buf = append(buf, img.Pix[i:i+2*w]...)
		}
	} else {
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				p := rgb565.Model.Convert(src.At(sp.X+col, sp.Y+row)).(rgb565.Color)
				hi, lo := p.Bytes()
				buf = append(buf, hi, lo)
			}
		}
	}

	if err := c.dev.SetAddressWindow(clipped.Min.X, clipped.Min.Y, clipped.Max.X-1, clipped.Max.Y-1); err != nil {
		return err
	}
	return c.dev.WriteData(buf)
}

// TextFace draws s with an x/image font face on a bg box sized to the text.
// (x, y) is the top left corner of the box; the baseline sits one ascent
// below it.
func (c *Canvas) TextFace(x, y int, s string, face font.Face, fg, bg rgb565.Color) error {
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w <= 0 || h <= 0 {
		return nil
	}

	img := rgb565.NewImage(image.Rect(0, 0, w, h))
	img.Fill(bg)
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(s)
	return c.Image(x, y, img)
}
