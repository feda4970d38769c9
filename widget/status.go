// Package widget draws small composite displays on a raster.Canvas.
package widget

import (
	"github.com/flavioheleno/st7735/bitfont"
	"github.com/flavioheleno/st7735/raster"
	"github.com/flavioheleno/st7735/rgb565"
)

const (
	statusResultX    = 90
	statusLineHeight = 10
)

// StatusLogger prints one line per task with an [OK] or [NOK] marker at the
// right, top to bottom.
type StatusLogger struct {
	c *raster.Canvas
	y int
}

// NewStatusLogger returns a StatusLogger writing on c.
func NewStatusLogger(c *raster.Canvas) *StatusLogger {
	return &StatusLogger{c: c}
}

// Init clears the display to black and starts again at the top.
func (l *StatusLogger) Init() error {
	l.y = 0
	return l.c.Clear(rgb565.Black)
}

// LogTaskStart prints text on the current line.
func (l *StatusLogger) LogTaskStart(text string) error {
	return l.c.Text(0, l.y, text, bitfont.Terminal, rgb565.White, 1)
}

// LogTaskResult marks the current line and moves to the next one.
func (l *StatusLogger) LogTaskResult(ok bool) error {
	text, col := "[NOK]", rgb565.Red
	if ok {
		text, col = "[OK]", rgb565.Green
	}
	err := l.c.Text(statusResultX, l.y, text, bitfont.Terminal, col, 1)
	l.y += statusLineHeight
	return err
}
