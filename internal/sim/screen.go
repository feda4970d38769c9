package sim

import (
	"image"

	"github.com/flavioheleno/st7735/rgb565"
)

// Screen is an addressable-window surface backed by memory. It has the method
// set of raster.Device and stands in for the driver in tests of code that
// only draws.
type Screen struct {
	fb      *rgb565.Image
	win     image.Rectangle
	x, y    int
	hi      byte
	haveHi  bool
	windows int
}

// NewScreen returns a black w×h screen.
func NewScreen(w, h int) *Screen {
	return &Screen{fb: rgb565.NewImage(image.Rect(0, 0, w, h))}
}

// Bounds returns the screen size.
func (s *Screen) Bounds() image.Rectangle {
	return s.fb.Rect
}

// SetAddressWindow selects the inclusive window for the following pixels.
func (s *Screen) SetAddressWindow(x0, y0, x1, y1 int) error {
	s.win = image.Rect(x0, y0, x1, y1)
	s.x, s.y = x0, y0
	s.haveHi = false
	s.windows++
	return nil
}

// WriteData stores big-endian RGB565 pixels at the cursor.
func (s *Screen) WriteData(data []byte) error {
	for _, b := range data {
		if !s.haveHi {
			s.hi, s.haveHi = b, true
			continue
		}
		s.haveHi = false
		s.fb.SetRGB565(s.x, s.y, rgb565.Color(uint16(s.hi)<<8|uint16(b)))
		s.x++
		if s.x > s.win.Max.X {
			s.x = s.win.Min.X
			s.y++
		}
	}
	return nil
}

// Pixel returns the color at (x, y).
func (s *Screen) Pixel(x, y int) rgb565.Color {
	return s.fb.RGB565At(x, y)
}

// Windows returns the number of windows selected so far.
func (s *Screen) Windows() int {
	return s.windows
}

// Image returns the backing image.
func (s *Screen) Image() *rgb565.Image {
	return s.fb
}
