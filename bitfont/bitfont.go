// Package bitfont describes monospace bitmap fonts stored column-major.
//
// Each glyph is Width bytes, one byte per column, bit 0 being the topmost
// row. Glyphs are stored back to back for every character from Start to End
// inclusive, so Data is exactly Width*(End-Start+1) bytes long.
package bitfont

import (
	"errors"
	"fmt"
)

// Font is an immutable monospace bitmap font.
type Font struct {
	Width  int    // Glyph width in pixels (bytes per glyph)
	Height int    // Glyph height in pixels, at most 8
	Start  rune   // First covered character
	End    rune   // Last covered character, inclusive
	Data   []byte // Column-major glyph bitmaps
}

// Validate reports whether the font is internally consistent.
func (f *Font) Validate() error {
	if f == nil {
		return errors.New("bitfont: nil font")
	}
	if f.Width <= 0 {
		return errors.New("bitfont: width must be positive")
	}
	if f.Height <= 0 || f.Height > 8 {
		return errors.New("bitfont: height must be between 1 and 8")
	}
	if f.End < f.Start {
		return errors.New("bitfont: end precedes start")
	}
	if want := f.Width * int(f.End-f.Start+1); len(f.Data) != want {
		return fmt.Errorf("bitfont: data is %d bytes, want %d", len(f.Data), want)
	}
	return nil
}

// Covers reports whether r has a glyph in the font.
func (f *Font) Covers(r rune) bool {
	return r >= f.Start && r <= f.End
}

// Glyph returns the column bytes for r, or false if r is not covered.
// The returned slice aliases the font data and must not be modified.
func (f *Font) Glyph(r rune) ([]byte, bool) {
	if !f.Covers(r) {
		return nil, false
	}
	i := int(r-f.Start) * f.Width
	if i+f.Width > len(f.Data) {
		return nil, false
	}
	return f.Data[i : i+f.Width], true
}
