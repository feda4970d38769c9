package rgb565

import (
	"image"
	"image/color"
)

// Color is a packed 16-bit RGB565 value.
type Color uint16

// Common colors.
const (
	Black   Color = 0x0000
	Blue    Color = 0x001F
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F
	Yellow  Color = 0xFFE0
	White   Color = 0xFFFF
	Crimson Color = 0xB861
)

// Pack converts 8-bit red, green and blue channels into a Color.
// The low 3 bits of red and blue and the low 2 bits of green are dropped.
func Pack(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b>>3))
}

// Bytes returns the wire representation of c: high byte, then low byte.
func (c Color) Bytes() (hi, lo byte) {
	return byte(c >> 8), byte(c)
}

// Components returns the 8-bit channels of c, replicating the high bits
// into the dropped low bits so that White expands to 0xFF everywhere.
func (c Color) Components() (r, g, b uint8) {
	r5 := uint8(c>>11) & 0x1F
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Components()
	return uint32(r8) * 0x101, uint32(g8) * 0x101, uint32(b8) * 0x101, 0xFFFF
}

func toRGB565(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return Pack(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts colors to Color.
var Model = color.ModelFunc(toRGB565)

// Image is an in-memory RGB565 image. Pixels are stored big-endian, two bytes
// per pixel, which matches the byte order the controller expects.
type Image struct {
	Pix    []byte          // Pixel data (2 bytes per pixel)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a new Image with the specified bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Image{Rect: r}
	}
	return &Image{
		Pix:    make([]byte, 2*w*h),
		Stride: 2 * w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the packed color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	i := p.PixOffset(x, y)
	return Color(uint16(p.Pix[i])<<8 | uint16(p.Pix[i+1]))
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, Model.Convert(c).(Color))
}

// SetRGB565 sets the packed color of the pixel at (x, y) without conversion.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1] = c.Bytes()
}

// Fill sets every pixel of the image to c.
func (p *Image) Fill(c Color) {
	hi, lo := c.Bytes()
	for i := 0; i+1 < len(p.Pix); i += 2 {
		p.Pix[i], p.Pix[i+1] = hi, lo
	}
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}
