// Package rgb565 provides the 16-bit packed color format used by the ST7735 controller.
//
// Each pixel is 5 bits of red, 6 bits of green and 5 bits of blue packed into a
// uint16. On the wire every pixel is sent as two bytes, high byte first, which is
// also the memory layout of the Image type in this package:
//
//	Color:  0xF800 (pure red)
//	Bits:   RRRRRGGG GGGBBBBB
//	Bytes:  0xF8     0x00
//
// This package provides:
//
// - Color: a color.Color holding a packed RGB565 value
// - Model: a color model for converting standard Go colors to Color
// - Image: a draw.Image whose Pix slice can be streamed to the panel unchanged
//
// Example usage:
//
//	img := rgb565.NewImage(image.Rect(0, 0, 128, 160))
//	img.SetRGB565(10, 20, rgb565.Pack(0xFF, 0x80, 0x00))
//	draw.Draw(img, img.Bounds(), image.NewUniform(rgb565.Black), image.Point{}, draw.Src)
package rgb565
