package st7735

import (
	"fmt"
	"time"
)

// Command is an ST7735 command code.
type Command byte

// System function commands.
const (
	NOP     Command = 0x00 // No operation
	SWRESET Command = 0x01 // Software reset
	RDDID   Command = 0x04 // Read display ID
	RDDST   Command = 0x09 // Read display status
	SLPIN   Command = 0x10 // Sleep in & booster off
	SLPOUT  Command = 0x11 // Sleep out & booster on
	PTLON   Command = 0x12 // Partial mode on
	NORON   Command = 0x13 // Partial off (normal)
	INVOFF  Command = 0x20 // Display inversion off
	INVON   Command = 0x21 // Display inversion on
	DISPOFF Command = 0x28 // Display off
	DISPON  Command = 0x29 // Display on
	CASET   Command = 0x2A // Column address set
	RASET   Command = 0x2B // Row address set
	RAMWR   Command = 0x2C // Memory write
	RAMRD   Command = 0x2E // Memory read
	PTLAR   Command = 0x30 // Partial start/end address set
	MADCTL  Command = 0x36 // Memory data access control
	COLMOD  Command = 0x3A // Interface pixel format
)

// Panel function commands.
const (
	FRMCTR1 Command = 0xB1 // Frame rate control, normal mode (full colors)
	FRMCTR2 Command = 0xB2 // Frame rate control, idle mode (8 colors)
	FRMCTR3 Command = 0xB3 // Frame rate control, partial mode + full colors
	INVCTR  Command = 0xB4 // Display inversion control
	PWCTR1  Command = 0xC0 // Power control 1
	PWCTR2  Command = 0xC1 // Power control 2
	PWCTR3  Command = 0xC2 // Power control 3, normal mode
	PWCTR4  Command = 0xC3 // Power control 4, idle mode
	PWCTR5  Command = 0xC4 // Power control 5, partial mode
	VMCTR1  Command = 0xC5 // VCOM control
	RDID1   Command = 0xDA // Read ID1
	RDID2   Command = 0xDB // Read ID2
	RDID3   Command = 0xDC // Read ID3
	RDID4   Command = 0xDD // Read ID4
	GMCTRP1 Command = 0xE0 // Positive gamma correction
	GMCTRN1 Command = 0xE1 // Negative gamma correction
)

var commandNames = map[Command]string{
	NOP: "NOP", SWRESET: "SWRESET", RDDID: "RDDID", RDDST: "RDDST",
	SLPIN: "SLPIN", SLPOUT: "SLPOUT", PTLON: "PTLON", NORON: "NORON",
	INVOFF: "INVOFF", INVON: "INVON", DISPOFF: "DISPOFF", DISPON: "DISPON",
	CASET: "CASET", RASET: "RASET", RAMWR: "RAMWR", RAMRD: "RAMRD",
	PTLAR: "PTLAR", MADCTL: "MADCTL", COLMOD: "COLMOD",
	FRMCTR1: "FRMCTR1", FRMCTR2: "FRMCTR2", FRMCTR3: "FRMCTR3", INVCTR: "INVCTR",
	PWCTR1: "PWCTR1", PWCTR2: "PWCTR2", PWCTR3: "PWCTR3", PWCTR4: "PWCTR4", PWCTR5: "PWCTR5",
	VMCTR1: "VMCTR1", RDID1: "RDID1", RDID2: "RDID2", RDID3: "RDID3", RDID4: "RDID4",
	GMCTRP1: "GMCTRP1", GMCTRN1: "GMCTRN1",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Command(0x%02X)", byte(c))
}

// Orientation selects one of the four memory access control layouts.
type Orientation uint8

// Supported orientations, clockwise.
const (
	Portrait    Orientation = iota // Upper left, printing right
	Landscape                      // 90°
	Portrait2                      // 180°
	Landscape2                     // 270°
)

// madctl maps an Orientation to its MADCTL parameter byte.
var madctl = [...]byte{0x00, 0x60, 0xC0, 0xA0}

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "Portrait"
	case Landscape:
		return "Landscape"
	case Portrait2:
		return "Portrait2"
	case Landscape2:
		return "Landscape2"
	}
	return fmt.Sprintf("Orientation(%d)", uint8(o))
}

// step is one entry of the bring-up sequence.
type step struct {
	cmd   Command
	data  []byte
	delay time.Duration
}

// initSequence returns the ordered command list that takes the controller from
// reset to an addressable, powered, non-inverted state.
func (d *Dev) initSequence() []step {
	w, h := d.rect.Dx(), d.rect.Dy()
	return []step{
		{cmd: SWRESET, delay: 150 * time.Millisecond},
		{cmd: SLPOUT, delay: 255 * time.Millisecond},
		{cmd: FRMCTR1, data: []byte{0x01, 0x2C, 0x2D}},
		{cmd: FRMCTR2, data: []byte{0x01, 0x2C, 0x2D}},
		{cmd: FRMCTR3, data: []byte{0x01, 0x2C, 0x2D, 0x01, 0x2C, 0x2D}, delay: 10 * time.Millisecond},
		{cmd: INVCTR, data: []byte{0x07}},
		{cmd: PWCTR1, data: []byte{0xA2, 0x02, 0x84}},
		{cmd: PWCTR2, data: []byte{0xC5}},
		{cmd: PWCTR3, data: []byte{0x8A, 0x00}},
		{cmd: PWCTR4, data: []byte{0x8A, 0x2A}},
		{cmd: PWCTR5, data: []byte{0x8A, 0xEE}},
		{cmd: VMCTR1, data: []byte{0x0E}},
		{cmd: INVOFF},
		{cmd: MADCTL, data: []byte{madctl[d.orientation]}},
		{cmd: COLMOD, data: []byte{0x05}}, // 16-bit color
		{cmd: CASET, data: addressRange(d.colOffset, d.colOffset+w-1)},
		{cmd: RASET, data: addressRange(d.rowOffset, d.rowOffset+h-1)},
		{cmd: GMCTRP1, data: []byte{
			0x02, 0x1C, 0x07, 0x12, 0x37, 0x32, 0x29, 0x2D,
			0x29, 0x25, 0x2B, 0x39, 0x00, 0x01, 0x03, 0x10,
		}},
		{cmd: GMCTRN1, data: []byte{
			0x03, 0x1D, 0x07, 0x06, 0x2E, 0x2C, 0x29, 0x2D,
			0x2E, 0x2E, 0x37, 0x3F, 0x00, 0x00, 0x02, 0x10,
		}},
		{cmd: NORON, delay: 10 * time.Millisecond},
		{cmd: DISPON, delay: 100 * time.Millisecond},
	}
}

// addressRange encodes a CASET/RASET parameter block: start and end as
// big-endian 16-bit values.
func addressRange(start, end int) []byte {
	return []byte{byte(start >> 8), byte(start), byte(end >> 8), byte(end)}
}
