package st7735

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/flavioheleno/st7735/rgb565"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Opts is the configuration for the ST7735 display.
type Opts struct {
	// Display dimensions in pixels, as seen after rotation
	W int // Width (default: 128, must be ≤162)
	H int // Height (default: 160, must be ≤162)

	// Memory access control layout
	Orientation Orientation

	// Margins added to every row and column address, for panels that do not
	// start at the origin of the controller RAM
	RowOffset int
	ColOffset int

	// Optional backlight pin
	BL gpio.PinOut

	// SPI clock (default: 8MHz)
	Freq physic.Frequency
}

// DefaultOpts is a 128x160 portrait panel without margins.
var DefaultOpts = Opts{W: 128, H: 160}

// State is the bring-up stage of a device session.
type State uint8

// Bring-up stages, in order.
const (
	StateUninitialized State = iota
	StateResetting
	StateConfiguring
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateResetting:
		return "Resetting"
	case StateConfiguring:
		return "Configuring"
	case StateReady:
		return "Ready"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

var (
	// ErrHalted is returned by every operation after Halt.
	ErrHalted = errors.New("st7735: halted")
	// ErrNotReady is returned when the bring-up sequence has not completed.
	ErrNotReady = errors.New("st7735: not ready")
	// ErrNoBacklight is returned by Backlight when no backlight pin is wired.
	ErrNoBacklight = errors.New("st7735: no backlight pin")
)

// resetHold is the settle time after each edge of the reset line.
const resetHold = 500 * time.Millisecond

// sleep is overridden by tests.
var sleep = time.Sleep

// Dev is the device handle for the ST7735 display.
type Dev struct {
	// mu serializes bus primitives: DC drive, CS assert, transfer, CS deassert.
	mu sync.Mutex

	// Communication
	c     conn.Conn
	dc    gpio.PinOut
	cs    gpio.PinOut // nil when the SPI port drives chip select
	rst   gpio.PinOut
	bl    gpio.PinOut // optional
	maxTx int         // 0 means unlimited

	// Display geometry
	rect        image.Rectangle
	orientation Orientation
	rowOffset   int
	colOffset   int

	// State
	state    State
	powered  bool
	inverted bool
	backlit  bool
	halted   bool
}

var _ display.Drawer = (*Dev)(nil)

// NewSPI creates a new ST7735 device connected via SPI and runs the bring-up
// sequence.
//
// The SPI port is configured for 8MHz by default, Mode2 (CPOL=1, CPHA=0), 8-bit
// transfers. dc and rst are required. cs may be nil when the SPI port drives
// chip select itself.
//
// opts can be nil to use DefaultOpts.
//
// An error means the panel is in an undefined configuration; discard the
// handle and call NewSPI again.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("st7735: DC pin is required")
	}
	if rst == nil {
		return nil, errors.New("st7735: RST pin is required")
	}

	freq := opts.Freq
	if freq == 0 {
		freq = 8 * physic.MegaHertz
	}
	c, err := p.Connect(freq, spi.Mode2, 8)
	if err != nil {
		return nil, fmt.Errorf("st7735: failed to connect: %w", err)
	}

	d := &Dev{
		c:           c,
		dc:          dc,
		cs:          cs,
		rst:         rst,
		bl:          opts.BL,
		rect:        image.Rect(0, 0, opts.W, opts.H),
		orientation: opts.Orientation,
		rowOffset:   opts.RowOffset,
		colOffset:   opts.ColOffset,
	}
	if l, ok := c.(conn.Limits); ok {
		d.maxTx = l.MaxTxSize()
	}

	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (o *Opts) validate() error {
	if o.W <= 0 || o.W > 162 {
		return errors.New("st7735: width must be between 1 and 162")
	}
	if o.H <= 0 || o.H > 162 {
		return errors.New("st7735: height must be between 1 and 162")
	}
	if o.Orientation > Landscape2 {
		return fmt.Errorf("st7735: invalid orientation %d", o.Orientation)
	}
	if o.RowOffset < 0 || o.ColOffset < 0 {
		return errors.New("st7735: offsets must not be negative")
	}
	return nil
}

// init resets the controller and sends the bring-up sequence.
func (d *Dev) init() error {
	if d.cs != nil {
		if err := d.cs.Out(gpio.High); err != nil {
			return fmt.Errorf("st7735: failed to deselect CS: %w", err)
		}
	}
	if d.bl != nil {
		if err := d.bl.Out(gpio.High); err != nil {
			return fmt.Errorf("st7735: failed to enable backlight: %w", err)
		}
		d.backlit = true
	}

	d.state = StateResetting
	if err := d.reset(); err != nil {
		return err
	}

	d.state = StateConfiguring
	for _, s := range d.initSequence() {
		if err := d.transfer(gpio.Low, []byte{byte(s.cmd)}); err != nil {
			return fmt.Errorf("st7735: bring-up %s: %w", s.cmd, err)
		}
		if len(s.data) > 0 {
			if err := d.transfer(gpio.High, s.data); err != nil {
				return fmt.Errorf("st7735: bring-up %s parameters: %w", s.cmd, err)
			}
		}
		if s.delay > 0 {
			sleep(s.delay)
		}
	}

	d.state = StateReady
	d.powered = true
	d.inverted = false
	return nil
}

// reset toggles the reset line high, low, high, holding each level for
// resetHold.
func (d *Dev) reset() error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("st7735: failed to pull DC low: %w", err)
	}
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := d.rst.Out(l); err != nil {
			return fmt.Errorf("st7735: failed to drive RST %s: %w", l, err)
		}
		sleep(resetHold)
	}
	return nil
}

// transfer drives DC to level and writes b with chip select asserted. Large
// buffers are split according to the connection limits; CS stays asserted for
// the whole buffer.
func (d *Dev) transfer(level gpio.Level, b []byte) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.dc.Out(level); err != nil {
		return err
	}
	if d.cs != nil {
		if err := d.cs.Out(gpio.Low); err != nil {
			return err
		}
		defer func() {
			if e := d.cs.Out(gpio.High); err == nil {
				err = e
			}
		}()
	}

	for len(b) > 0 {
		n := len(b)
		if d.maxTx > 0 && n > d.maxTx {
			n = d.maxTx
		}
		if err := d.c.Tx(b[:n], nil); err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// writeCommand sends a single command byte.
func (d *Dev) writeCommand(cmd Command) error {
	if err := d.transfer(gpio.Low, []byte{byte(cmd)}); err != nil {
		return fmt.Errorf("st7735: write command %s: %w", cmd, err)
	}
	return nil
}

// writeData sends parameter or pixel bytes.
func (d *Dev) writeData(data []byte) error {
	if err := d.transfer(gpio.High, data); err != nil {
		return fmt.Errorf("st7735: write data: %w", err)
	}
	return nil
}

// setWindow sets the RAM window and leaves the controller in memory write mode.
func (d *Dev) setWindow(x0, y0, x1, y1 int) error {
	if err := d.writeCommand(RASET); err != nil {
		return err
	}
	if err := d.writeData(addressRange(y0+d.rowOffset, y1+d.rowOffset)); err != nil {
		return err
	}
	if err := d.writeCommand(CASET); err != nil {
		return err
	}
	if err := d.writeData(addressRange(x0+d.colOffset, x1+d.colOffset)); err != nil {
		return err
	}
	return d.writeCommand(RAMWR)
}

func (d *Dev) usable() error {
	if d.halted {
		return ErrHalted
	}
	if d.state != StateReady {
		return ErrNotReady
	}
	return nil
}

// WriteCommand sends a raw command byte.
func (d *Dev) WriteCommand(cmd Command) error {
	if err := d.usable(); err != nil {
		return err
	}
	return d.writeCommand(cmd)
}

// WriteData sends raw parameter or pixel bytes.
func (d *Dev) WriteData(data []byte) error {
	if err := d.usable(); err != nil {
		return err
	}
	return d.writeData(data)
}

// SetAddressWindow selects the inclusive rectangle (x0, y0)-(x1, y1) and
// enables RAM writes. The caller must then send exactly
// (x1-x0+1)*(y1-y0+1) pixels, two bytes each, high byte first.
//
// Coordinates are not validated.
func (d *Dev) SetAddressWindow(x0, y0, x1, y1 int) error {
	if err := d.usable(); err != nil {
		return err
	}
	return d.setWindow(x0, y0, x1, y1)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// State returns the bring-up stage of the session.
func (d *Dev) State() State {
	return d.state
}

// Write writes raw RGB565 pixel data for the whole display.
// The data must be exactly d.Bounds().Dx() * d.Bounds().Dy() * 2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.usable(); err != nil {
		return 0, err
	}
	if len(pixels) != 2*d.rect.Dx()*d.rect.Dy() {
		return 0, errors.New("st7735: invalid buffer size")
	}
	if err := d.setWindow(0, 0, d.rect.Dx()-1, d.rect.Dy()-1); err != nil {
		return 0, err
	}
	if err := d.writeData(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw draws an image onto the display.
// The dst rectangle is clipped to the display; src is read from sp onwards.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.usable(); err != nil {
		return err
	}

	clipped := dst.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(dst.Min))

	w, h := clipped.Dx(), clipped.Dy()
	buf := make([]byte, 0, 2*w*h)

	// Fast path: the source already has the wire layout
	if img, ok := src.(*rgb565.Image); ok && image.Rect(sp.X, sp.Y, sp.X+w, sp.Y+h).In(img.Rect) {
		for y := 0; y < h; y++ {
			i := img.PixOffset(sp.X, sp.Y+y)
			buf = append(buf, img.Pix[i:i+2*w]...)
		}
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := rgb565.Model.Convert(src.At(sp.X+x, sp.Y+y)).(rgb565.Color)
				hi, lo := c.Bytes()
				buf = append(buf, hi, lo)
			}
		}
	}

	if err := d.setWindow(clipped.Min.X, clipped.Min.Y, clipped.Max.X-1, clipped.Max.Y-1); err != nil {
		return err
	}
	return d.writeData(buf)
}

// Power turns the display output on or off. RAM content is kept.
func (d *Dev) Power(on bool) error {
	if err := d.usable(); err != nil {
		return err
	}
	cmd := DISPOFF
	if on {
		cmd = DISPON
	}
	if err := d.writeCommand(cmd); err != nil {
		return err
	}
	d.powered = on
	return nil
}

// Powered reports whether the display output is on.
func (d *Dev) Powered() bool {
	return d.powered
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if err := d.usable(); err != nil {
		return err
	}
	cmd := INVOFF
	if invert {
		cmd = INVON
	}
	if err := d.writeCommand(cmd); err != nil {
		return err
	}
	d.inverted = invert
	return nil
}

// Inverted reports whether the display colors are inverted.
func (d *Dev) Inverted() bool {
	return d.inverted
}

// Backlight switches the backlight pin. It returns ErrNoBacklight if no
// backlight pin was provided in Opts.
func (d *Dev) Backlight(on bool) error {
	if err := d.usable(); err != nil {
		return err
	}
	if d.bl == nil {
		return ErrNoBacklight
	}
	l := gpio.Low
	if on {
		l = gpio.High
	}
	if err := d.bl.Out(l); err != nil {
		return fmt.Errorf("st7735: failed to drive backlight: %w", err)
	}
	d.backlit = on
	return nil
}

// BacklightOn reports the backlight state. supported is false when no
// backlight pin is wired.
func (d *Dev) BacklightOn() (on, supported bool) {
	if d.bl == nil {
		return false, false
	}
	return d.backlit, true
}

// Halt turns the display off and puts the controller to sleep.
// After calling Halt, the display will not respond to further commands
// until a new device is created.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	d.powered = false
	if err := d.writeCommand(DISPOFF); err != nil {
		return err
	}
	if err := d.writeCommand(SLPIN); err != nil {
		return err
	}
	if d.bl != nil {
		d.backlit = false
		return d.bl.Out(gpio.Low)
	}
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7735.Dev{%dx%d, %s}", d.rect.Dx(), d.rect.Dy(), d.orientation)
}
