// Package sim emulates an ST7735 controller on the far side of an SPI bus.
//
// A Panel decodes the command/data stream the driver sends into controller
// state and an RGB565 copy of the display RAM. It implements spi.Port and
// spi.Conn so it can be handed to st7735.NewSPI in place of real hardware,
// and records every command with its parameters for inspection.
//
// The framebuffer is kept in the column/row address space seen on the wire.
// The MADCTL row/column exchange bit swaps that space between 132x162 and
// 162x132 and transposes its content; the mirror bits are only recorded.
package sim

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/flavioheleno/st7735/rgb565"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Controller RAM size.
const (
	Width  = 132
	Height = 162
)

// Command codes the panel acts on. Everything else is only recorded.
const (
	cmdSWRESET = 0x01
	cmdSLPIN   = 0x10
	cmdSLPOUT  = 0x11
	cmdINVOFF  = 0x20
	cmdINVON   = 0x21
	cmdDISPOFF = 0x28
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
	cmdCOLMOD  = 0x3A
)

// madctlMV is the MADCTL row/column exchange bit.
const madctlMV = 0x20

// ErrDeselected is returned by Tx when chip select is high.
var ErrDeselected = errors.New("sim: transfer while chip select is deasserted")

// Op is one command and the parameter bytes that followed it.
type Op struct {
	Cmd  byte
	Data []byte
}

// Panel is a software ST7735.
type Panel struct {
	mu sync.Mutex

	dc, cs, rst, bl *gpiotest.Pin

	// Bus
	freq      physic.Frequency
	mode      spi.Mode
	maxTx     int
	transfers int
	version   uint64

	// Decoder
	ops    []Op
	hi     byte
	haveHi bool

	// Controller state
	fb             *rgb565.Image
	x0, y0, x1, y1 int
	x, y           int
	sleeping       bool
	on             bool
	inverted       bool
	madctl         byte
	colmod         byte
}

// New returns a panel in its power-on state: asleep, display off, CS high.
func New() *Panel {
	p := &Panel{
		dc:  &gpiotest.Pin{N: "DC", Num: 25},
		cs:  &gpiotest.Pin{N: "CS", Num: 8, L: gpio.High},
		rst: &gpiotest.Pin{N: "RST", Num: 24, L: gpio.High},
		bl:  &gpiotest.Pin{N: "BL", Num: 18},
		fb:  rgb565.NewImage(image.Rect(0, 0, Width, Height)),
	}
	p.swreset()
	return p
}

// DC returns the data/command select line.
func (p *Panel) DC() *gpiotest.Pin { return p.dc }

// CS returns the chip select line.
func (p *Panel) CS() *gpiotest.Pin { return p.cs }

// RST returns the reset line.
func (p *Panel) RST() *gpiotest.Pin { return p.rst }

// BL returns the backlight line.
func (p *Panel) BL() *gpiotest.Pin { return p.bl }

// SetMaxTxSize limits the size of a single transfer, as reported through
// conn.Limits. 0 means unlimited.
func (p *Panel) SetMaxTxSize(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxTx = n
}

// MaxTxSize implements conn.Limits.
func (p *Panel) MaxTxSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxTx
}

func (p *Panel) String() string {
	return "sim.Panel"
}

// Connect implements spi.Port.
func (p *Panel) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if bits != 8 {
		return nil, fmt.Errorf("sim: unsupported word size %d", bits)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.freq = f
	p.mode = mode
	return p, nil
}

// LimitSpeed implements spi.Port.
func (p *Panel) LimitSpeed(f physic.Frequency) error {
	return nil
}

// Duplex implements conn.Conn.
func (p *Panel) Duplex() conn.Duplex {
	return conn.Half
}

// TxPackets implements spi.Conn.
func (p *Panel) TxPackets(pkts []spi.Packet) error {
	for _, pkt := range pkts {
		if err := p.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

// Tx implements conn.Conn. The DC line decides whether w holds command bytes
// or parameter/pixel bytes.
func (p *Panel) Tx(w, r []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cs.Read() == gpio.High {
		return ErrDeselected
	}
	if len(r) != 0 {
		return errors.New("sim: reads are not supported")
	}
	if p.maxTx > 0 && len(w) > p.maxTx {
		return fmt.Errorf("sim: transfer of %d bytes exceeds limit %d", len(w), p.maxTx)
	}
	p.transfers++
	p.version++

	if p.dc.Read() == gpio.Low {
		for _, b := range w {
			p.command(b)
		}
		return nil
	}
	if len(p.ops) == 0 {
		return errors.New("sim: data before any command")
	}
	p.data(w)
	return nil
}

func (p *Panel) command(b byte) {
	p.ops = append(p.ops, Op{Cmd: b})
	p.haveHi = false
	switch b {
	case cmdSWRESET:
		p.swreset()
	case cmdSLPIN:
		p.sleeping = true
	case cmdSLPOUT:
		p.sleeping = false
	case cmdINVOFF:
		p.inverted = false
	case cmdINVON:
		p.inverted = true
	case cmdDISPOFF:
		p.on = false
	case cmdDISPON:
		p.on = true
	case cmdRAMWR:
		p.x, p.y = p.x0, p.y0
	}
}

func (p *Panel) data(w []byte) {
	op := &p.ops[len(p.ops)-1]
	op.Data = append(op.Data, w...)

	switch op.Cmd {
	case cmdCASET:
		if len(op.Data) == 4 {
			p.x0, p.x1 = decodeRange(op.Data)
		}
	case cmdRASET:
		if len(op.Data) == 4 {
			p.y0, p.y1 = decodeRange(op.Data)
		}
	case cmdMADCTL:
		p.setMADCTL(op.Data[0])
	case cmdCOLMOD:
		p.colmod = op.Data[0]
	case cmdRAMWR:
		p.pixels(w)
	}
}

// pixels stores incoming pixel bytes at the write cursor, which wraps inside
// the current window. A pixel may be split across transfers.
func (p *Panel) pixels(w []byte) {
	for _, b := range w {
		if !p.haveHi {
			p.hi, p.haveHi = b, true
			continue
		}
		p.haveHi = false
		p.fb.SetRGB565(p.x, p.y, rgb565.Color(uint16(p.hi)<<8|uint16(b)))
		p.x++
		if p.x > p.x1 {
			p.x = p.x0
			p.y++
			if p.y > p.y1 {
				p.y = p.y0
			}
		}
	}
}

func (p *Panel) swreset() {
	p.sleeping = true
	p.on = false
	p.inverted = false
	p.setMADCTL(0)
	p.colmod = 0x06
	p.x0, p.y0, p.x1, p.y1 = 0, 0, Width-1, Height-1
	p.x, p.y = 0, 0
}

// setMADCTL records b and transposes the framebuffer when the row/column
// exchange bit changes.
func (p *Panel) setMADCTL(b byte) {
	if (b^p.madctl)&madctlMV != 0 {
		r := p.fb.Rect
		t := rgb565.NewImage(image.Rect(0, 0, r.Dy(), r.Dx()))
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				t.SetRGB565(y, x, p.fb.RGB565At(x, y))
			}
		}
		p.fb = t
	}
	p.madctl = b
}

func decodeRange(b []byte) (start, end int) {
	return int(b[0])<<8 | int(b[1]), int(b[2])<<8 | int(b[3])
}

// Ops returns a copy of every command received so far.
func (p *Panel) Ops() []Op {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Op, len(p.ops))
	for i, op := range p.ops {
		out[i] = Op{Cmd: op.Cmd, Data: append([]byte(nil), op.Data...)}
	}
	return out
}

// Commands returns the command bytes received so far, in order.
func (p *Panel) Commands() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, len(p.ops))
	for i, op := range p.ops {
		out[i] = op.Cmd
	}
	return out
}

// ClearLog forgets recorded commands. Controller state and RAM are kept.
func (p *Panel) ClearLog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = nil
	p.transfers = 0
}

// Transfers returns the number of Tx calls since the last ClearLog.
func (p *Panel) Transfers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transfers
}

// Version increases on every transfer; viewers poll it to detect changes.
func (p *Panel) Version() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Bus returns the clock frequency and mode passed to Connect.
func (p *Panel) Bus() (physic.Frequency, spi.Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freq, p.mode
}

// Pixel returns the RAM content at column x, row y.
func (p *Panel) Pixel(x, y int) rgb565.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fb.RGB565At(x, y)
}

// Bounds returns the current column/row address space.
func (p *Panel) Bounds() image.Rectangle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fb.Rect
}

// Snapshot returns a copy of the region r of the display RAM.
func (p *Panel) Snapshot(r image.Rectangle) *rgb565.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	r = r.Intersect(p.fb.Rect)
	img := rgb565.NewImage(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := p.fb.PixOffset(r.Min.X, y)
		dst := img.PixOffset(r.Min.X, y)
		copy(img.Pix[dst:dst+2*r.Dx()], p.fb.Pix[src:])
	}
	return img
}

// Window returns the current inclusive RAM window.
func (p *Panel) Window() image.Rectangle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return image.Rect(p.x0, p.y0, p.x1+1, p.y1+1)
}

// Sleeping reports whether the controller is in sleep mode.
func (p *Panel) Sleeping() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sleeping
}

// On reports whether the display output is enabled.
func (p *Panel) On() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.on
}

// Inverted reports whether color inversion is enabled.
func (p *Panel) Inverted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inverted
}

// MADCTL returns the last memory access control byte.
func (p *Panel) MADCTL() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.madctl
}

// COLMOD returns the last interface pixel format byte.
func (p *Panel) COLMOD() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.colmod
}
