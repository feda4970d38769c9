// Package st7735 controls an ST7735 TFT display via SPI.
//
// The ST7735 is a 262K color TFT controller with 132×162 pixels of internal RAM.
// This driver talks to it in the 16-bit RGB565 format and implements the
// display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 16-bit color (RGB565), two bytes per pixel, high byte first
// - Common panels are 128×160, 160×128 (rotated) and 80×160
// - Four orientations selected through the memory access control register
// - Row and column margins for panels that do not start at RAM origin
// - Display on/off, color inversion and an optional backlight pin
//
// # Hardware Connection
//
// Connect the ST7735 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/SCK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC/A0       → GPIO (any available pin)
//	CS          → GPIO, or the SPI chip select
//	RES/RST     → GPIO (required)
//	BL/LED      → Optional: GPIO for the backlight
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"github.com/flavioheleno/st7735"
//		"github.com/flavioheleno/st7735/raster"
//		"github.com/flavioheleno/st7735/rgb565"
//		"github.com/flavioheleno/st7735/bitfont"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		spiBus, _ := spireg.Open("")
//		dc := gpioreg.ByName("GPIO25")
//		rst := gpioreg.ByName("GPIO24")
//
//		// CS nil: the SPI port drives chip select
//		dev, _ := st7735.NewSPI(spiBus, dc, nil, rst, &st7735.Opts{
//			W:           160,
//			H:           128,
//			Orientation: st7735.Landscape,
//		})
//		defer dev.Halt()
//
//		c := raster.New(dev, nil)
//		c.Clear(rgb565.Black)
//		c.Circle(80, 64, 30, rgb565.Yellow)
//		c.Text(4, 4, "Hello", bitfont.Terminal, rgb565.White, 2)
//	}
//
// # Addressing
//
// Every pixel transfer goes through an address window. SetAddressWindow selects
// an inclusive rectangle and enables RAM writes; the controller then expects
// exactly (x1-x0+1)*(y1-y0+1) pixels, filled row by row:
//
//	dev.SetAddressWindow(10, 10, 19, 19) // 10×10 pixels
//	dev.WriteData(pixels)                // 200 bytes
//
// Draw does the same for any image.Image, and Write sends a whole frame.
// Package raster builds lines, circles and text on top of these primitives.
//
// # Bus Access
//
// Each primitive drives DC, asserts CS, transfers and deasserts CS while
// holding a lock, so concurrent callers cannot interleave half commands. Large
// buffers are split according to conn.Limits with CS held for the whole
// buffer. Window selection followed by pixel data is still two primitives; a
// single goroutine should own drawing.
//
// # Datasheet
//
// For register descriptions and timing information, see:
// https://www.displayfuture.com/Display/datasheet/controller/ST7735.pdf
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
package st7735
