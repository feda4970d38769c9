package widget

import (
	"math"
	"strconv"

	"github.com/flavioheleno/st7735/bitfont"
	"github.com/flavioheleno/st7735/raster"
	"github.com/flavioheleno/st7735/rgb565"
)

// Thermometer geometry, in pixels, for a 128×160 portrait panel.
const (
	thermoTop     = 5
	thermoBottom  = 155
	thermoX       = 110
	thermoBulbR   = 10
	thermoMajor   = 5
	thermoMinor   = 2
	thermoLabelDX = 20

	// Scale range in °C.
	ThermoMin = 15
	ThermoMax = 25
)

// Top left corner of the numeric readout.
const readoutX, readoutY = 10, 10

// Thermometer is a tube-and-bulb gauge from ThermoMin to ThermoMax drawn on a
// white background.
type Thermometer struct {
	c *raster.Canvas

	tubeW       int
	x0, x1      int
	top, bottom int
	pxPerDegree int
	current     float64

	readoutW, readoutH int
}

// NewThermometer returns a Thermometer drawing on c. Call Init before
// SetTemperature.
func NewThermometer(c *raster.Canvas) *Thermometer {
	tubeW := (thermoBulbR/2 - 2) * 2
	t := &Thermometer{
		c:       c,
		tubeW:   tubeW,
		x0:      thermoX - tubeW/2,
		x1:      thermoX + tubeW/2,
		top:     thermoTop + tubeW/2,
		current: math.NaN(),
	}
	t.readoutW, t.readoutH = raster.TextSize("88.8", bitfont.Terminal, 2)
	return t
}

// Init draws the bulb, the tube outline and the scale.
func (t *Thermometer) Init() error {
	bulbY := thermoBottom - thermoBulbR
	tubeEnd := bulbY - thermoBulbR

	if err := t.c.CircleFilledColor(thermoX, bulbY, thermoBulbR, rgb565.Black, rgb565.Crimson); err != nil {
		return err
	}
	if err := t.c.Circle(thermoX, bulbY, thermoBulbR, rgb565.Black); err != nil {
		return err
	}
	if err := t.c.FillRect(t.x0, tubeEnd, t.tubeW, thermoBulbR, rgb565.Crimson); err != nil {
		return err
	}

	// Rounded top and tube walls
	if err := t.c.CircleSegment(thermoX, t.top, t.tubeW/2, rgb565.Black, raster.UL|raster.UR); err != nil {
		return err
	}
	if err := t.c.VLine(t.x0, t.top, tubeEnd-t.top, rgb565.Black); err != nil {
		return err
	}
	if err := t.c.VLine(t.x1, t.top, tubeEnd-t.top, rgb565.Black); err != nil {
		return err
	}

	degrees := ThermoMax - ThermoMin
	t.pxPerDegree = (tubeEnd - t.top) / degrees
	for i := 0; i <= degrees; i++ {
		y := t.top + i*t.pxPerDegree
		if err := t.c.HLine(t.x0-thermoMajor, y, thermoMajor, rgb565.Black); err != nil {
			return err
		}
		label := strconv.Itoa(ThermoMax - i)
		if err := t.c.Text(t.x0-thermoLabelDX, y-3, label, bitfont.Terminal, rgb565.Black, 1); err != nil {
			return err
		}
		if i > 0 {
			if err := t.c.HLine(t.x0-thermoMinor, y-t.pxPerDegree/2, thermoMinor, rgb565.Black); err != nil {
				return err
			}
		}
	}
	t.bottom = t.top + degrees*t.pxPerDegree
	return nil
}

// SetTemperature redraws the column and the readout for temp, clamped to the
// scale. Repeating the current value or passing NaN draws nothing.
func (t *Thermometer) SetTemperature(temp float64) error {
	if math.IsNaN(temp) || temp == t.current {
		return nil
	}
	t.current = temp
	temp = math.Max(ThermoMin, math.Min(ThermoMax, temp))

	whole := math.Floor(temp)
	fill := t.pxPerDegree*(int(whole)-ThermoMin) + int(math.Round(float64(t.pxPerDegree)*(temp-whole)))
	height := t.bottom - t.top

	if err := t.c.FillRect(t.x0+1, t.top, t.tubeW-1, height, rgb565.White); err != nil {
		return err
	}
	// The column runs one degree past the bottom mark to join the bulb.
	if err := t.c.FillRect(t.x0+1, t.top+height-fill, t.tubeW-1, fill+t.pxPerDegree, rgb565.Crimson); err != nil {
		return err
	}

	if err := t.c.FillRect(readoutX, readoutY, t.readoutW, t.readoutH, rgb565.White); err != nil {
		return err
	}
	return t.c.Text(readoutX, readoutY, strconv.FormatFloat(temp, 'f', 1, 64), bitfont.Terminal, rgb565.Black, 2)
}
