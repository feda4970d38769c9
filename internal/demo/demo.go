// Package demo holds the scenes shown by the example programs.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/flavioheleno/st7735/bitfont"
	"github.com/flavioheleno/st7735/raster"
	"github.com/flavioheleno/st7735/rgb565"
	"github.com/flavioheleno/st7735/widget"
	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Scene draws one demonstration. wait pauses between animation steps.
type Scene struct {
	Name string
	Run  func(c *raster.Canvas, wait func(time.Duration)) error
}

// Scenes lists every scene in the order "all" runs them.
var Scenes = []Scene{
	{"gradient", runGradient},
	{"patterns", runPatterns},
	{"shapes", runShapes},
	{"text", runText},
	{"pixels", runPixels},
	{"gauge", runGauge},
}

// Lookup returns the scene called name.
func Lookup(name string) (Scene, bool) {
	for _, s := range Scenes {
		if s.Name == name {
			return s, true
		}
	}
	return Scene{}, false
}

// Run runs the scene called name, or every scene for "all", pausing for hold
// after each one.
func Run(c *raster.Canvas, name string, hold time.Duration, wait func(time.Duration)) error {
	scenes := Scenes
	if name != "all" {
		s, ok := Lookup(name)
		if !ok {
			return fmt.Errorf("demo: unknown scene %q", name)
		}
		scenes = []Scene{s}
	}
	for _, s := range scenes {
		if err := s.Run(c, wait); err != nil {
			return fmt.Errorf("demo: %s: %w", s.Name, err)
		}
		wait(hold)
	}
	return nil
}

// runGradient blits a red to blue gradient fading to black at the bottom.
func runGradient(c *raster.Canvas, _ func(time.Duration)) error {
	b := c.Bounds()
	img := image.NewRGBA(b)
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 255 - y*255/h
			img.Set(x, y, color.RGBA{
				R: uint8((w - x) * v / w),
				G: uint8(y * 255 / h / 2),
				B: uint8(x * v / w),
				A: 255,
			})
		}
	}
	return c.Image(0, 0, img)
}

// runPatterns draws a checkerboard with a row of color bars across the middle.
func runPatterns(c *raster.Canvas, _ func(time.Duration)) error {
	const check = 8
	w, h := c.Size()
	for y := 0; y < h; y += check {
		for x := 0; x < w; x += check {
			col := rgb565.Black
			if (x/check+y/check)%2 == 0 {
				col = rgb565.White
			}
			if err := c.FillRect(x, y, check, check, col); err != nil {
				return err
			}
		}
	}

	bars := []rgb565.Color{
		rgb565.Red, rgb565.Green, rgb565.Blue, rgb565.Cyan,
		rgb565.Magenta, rgb565.Yellow, rgb565.Crimson, rgb565.White,
	}
	bw := w / len(bars)
	for i, col := range bars {
		if err := c.FillRect(i*bw, h/3, bw, h/3, col); err != nil {
			return err
		}
	}
	return nil
}

// runShapes draws a fan of lines, nested circles and the four quadrants.
func runShapes(c *raster.Canvas, wait func(time.Duration)) error {
	w, h := c.Size()
	if err := c.Clear(rgb565.Black); err != nil {
		return err
	}
	for x := 0; x < w; x += 8 {
		if err := c.Line(0, h-1, x, 0, rgb565.Cyan); err != nil {
			return err
		}
	}
	wait(500 * time.Millisecond)

	cx, cy := w/2, h/2
	r := min(w, h) / 3
	if err := c.CircleFilledColor(cx, cy, r, rgb565.White, rgb565.Blue); err != nil {
		return err
	}
	if err := c.CircleFilled(cx, cy, r/3, rgb565.Yellow); err != nil {
		return err
	}
	quadrants := []struct {
		q   raster.Quadrant
		col rgb565.Color
	}{
		{raster.UL, rgb565.Red},
		{raster.UR, rgb565.Green},
		{raster.LR, rgb565.Magenta},
		{raster.LL, rgb565.Yellow},
	}
	for _, q := range quadrants {
		if err := c.CircleSegment(cx, cy, r+6, q.col, q.q); err != nil {
			return err
		}
		wait(250 * time.Millisecond)
	}
	if err := c.HLine(0, cy, w, rgb565.Crimson); err != nil {
		return err
	}
	return c.VLine(cx, 0, h, rgb565.Crimson)
}

// runText shows the built-in bitmap font at three scales, a tinyfont font drawn
// through the drivers.Displayer adapter and an x/image face.
func runText(c *raster.Canvas, _ func(time.Duration)) error {
	if err := c.Clear(rgb565.White); err != nil {
		return err
	}
	y := 2
	for scale := 1; scale <= 3; scale++ {
		if err := c.Text(2, y, fmt.Sprintf("Size %d", scale), bitfont.Terminal, rgb565.Black, scale); err != nil {
			return err
		}
		_, th := raster.TextSize("S", bitfont.Terminal, scale)
		y += th + 4
	}
	if err := c.Text(2, y, "The quick brown fox jumps over the lazy dog.", bitfont.Terminal, rgb565.Blue, 1); err != nil {
		return err
	}

	// tinyfont positions text by its baseline.
	d := c.Displayer()
	tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, 2, int16(y+40), "tinyfont proggy", color.RGBA{G: 0x80, A: 0xFF})
	if err := d.Display(); err != nil {
		return err
	}

	_, h := c.Size()
	return c.TextFace(2, h-16, "basicfont 7x13", basicfont.Face7x13, rgb565.Yellow, rgb565.Crimson)
}

// runPixels plots a color wheel pixel by pixel through the drivers.Displayer
// adapter.
func runPixels(c *raster.Canvas, _ func(time.Duration)) error {
	if err := c.Clear(rgb565.Black); err != nil {
		return err
	}
	var d drivers.Displayer = c.Displayer()
	w, h := d.Size()
	const size = 48
	x0, y0 := (w-size)/2, (h-size)/2
	for y := int16(0); y < size; y++ {
		for x := int16(0); x < size; x++ {
			d.SetPixel(x0+x, y0+y, color.RGBA{
				R: uint8(x * 255 / size),
				G: uint8(y * 255 / size),
				B: uint8((size - x) * 255 / size),
				A: 255,
			})
		}
	}
	return d.Display()
}

// runGauge sweeps the thermometer over its scale and back.
func runGauge(c *raster.Canvas, wait func(time.Duration)) error {
	if err := c.Clear(rgb565.White); err != nil {
		return err
	}
	th := widget.NewThermometer(c)
	if err := th.Init(); err != nil {
		return err
	}
	for t := float64(widget.ThermoMin); t <= widget.ThermoMax; t += 0.5 {
		if err := th.SetTemperature(t); err != nil {
			return err
		}
		wait(100 * time.Millisecond)
	}
	for t := float64(widget.ThermoMax); t >= widget.ThermoMin; t -= 2.5 {
		if err := th.SetTemperature(t); err != nil {
			return err
		}
		wait(100 * time.Millisecond)
	}
	return nil
}
