package widget

import (
	"image"
	"math"
	"testing"

	"github.com/flavioheleno/st7735/internal/sim"
	"github.com/flavioheleno/st7735/raster"
	"github.com/flavioheleno/st7735/rgb565"
)

func countColor(s *sim.Screen, r image.Rectangle, c rgb565.Color) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if s.Pixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestStatusLogger(t *testing.T) {
	s := sim.NewScreen(128, 160)
	s.Image().Fill(rgb565.Blue)
	l := NewStatusLogger(raster.New(s, nil))

	if err := l.Init(); err != nil {
		t.Fatal(err)
	}
	if n := countColor(s, s.Bounds(), rgb565.Black); n != 128*160 {
		t.Fatalf("Init left %d non-black pixels", 128*160-n)
	}

	steps := []struct {
		task string
		ok   bool
		want rgb565.Color
	}{
		{"Wifi", true, rgb565.Green},
		{"Server", false, rgb565.Red},
		{"Sensor", true, rgb565.Green},
	}
	for i, st := range steps {
		if err := l.LogTaskStart(st.task); err != nil {
			t.Fatal(err)
		}
		if err := l.LogTaskResult(st.ok); err != nil {
			t.Fatal(err)
		}
		y := i * statusLineHeight
		if n := countColor(s, image.Rect(0, y, statusResultX, y+8), rgb565.White); n == 0 {
			t.Errorf("line %d: task text not drawn", i)
		}
		// '[' has a full column one pixel right of its origin.
		for row := 0; row < 7; row++ {
			if c := s.Pixel(statusResultX+1, y+row); c != st.want {
				t.Errorf("line %d: marker pixel row %d = 0x%04X, want 0x%04X", i, row, c, st.want)
			}
		}
	}
	if n := countColor(s, image.Rect(0, 3*statusLineHeight, 128, 160), rgb565.Black); n != 128*(160-30) {
		t.Error("nothing should be drawn below the last line")
	}
}

func newThermometer(t *testing.T) (*Thermometer, *sim.Screen) {
	t.Helper()
	s := sim.NewScreen(128, 160)
	s.Image().Fill(rgb565.White)
	th := NewThermometer(raster.New(s, nil))
	if err := th.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	return th, s
}

func TestThermometerInit(t *testing.T) {
	_, s := newThermometer(t)

	tests := []struct {
		name string
		x, y int
		want rgb565.Color
	}{
		{"bulb center", 110, 145, rgb565.Crimson},
		{"bulb outline", 119, 145, rgb565.Black},
		{"bulb neck", 110, 136, rgb565.Crimson},
		{"left wall", 107, 50, rgb565.Black},
		{"right wall", 113, 50, rgb565.Black},
		{"rounded top", 110, 6, rgb565.Black},
		{"top major mark", 102, 8, rgb565.Black},
		{"bottom major mark", 106, 128, rgb565.Black},
		{"minor mark", 105, 14, rgb565.Black},
		{"empty tube", 110, 60, rgb565.White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := s.Pixel(tt.x, tt.y); c != tt.want {
				t.Errorf("pixel (%d, %d) = 0x%04X, want 0x%04X", tt.x, tt.y, c, tt.want)
			}
		})
	}

	if n := countColor(s, image.Rect(87, 5, 98, 13), rgb565.Black); n == 0 {
		t.Error("label 25 not drawn")
	}
	if n := countColor(s, image.Rect(87, 125, 98, 133), rgb565.Black); n == 0 {
		t.Error("label 15 not drawn")
	}
}

func TestThermometerSetTemperature(t *testing.T) {
	th, s := newThermometer(t)

	tests := []struct {
		temp     float64
		topEmpty int // last white row in the tube, -1 for none
		topFill  int // first crimson row
	}{
		{20, 67, 68},
		{21.5, 49, 50},
		{30, -1, 8},
		{10, 127, 128},
		{25, -1, 8},
	}
	for _, tt := range tests {
		if err := th.SetTemperature(tt.temp); err != nil {
			t.Fatalf("SetTemperature(%v) = %v", tt.temp, err)
		}
		if tt.topEmpty >= 0 {
			if c := s.Pixel(110, tt.topEmpty); c != rgb565.White {
				t.Errorf("SetTemperature(%v): (110, %d) = 0x%04X, want white", tt.temp, tt.topEmpty, c)
			}
		}
		if c := s.Pixel(110, tt.topFill); c != rgb565.Crimson {
			t.Errorf("SetTemperature(%v): (110, %d) = 0x%04X, want crimson", tt.temp, tt.topFill, c)
		}
		if c := s.Pixel(110, 139); c != rgb565.Crimson {
			t.Errorf("SetTemperature(%v): column should join the bulb", tt.temp)
		}
		if n := countColor(s, image.Rect(readoutX, readoutY, readoutX+th.readoutW, readoutY+th.readoutH), rgb565.Black); n == 0 {
			t.Errorf("SetTemperature(%v): readout not drawn", tt.temp)
		}
	}

	before := s.Windows()
	if err := th.SetTemperature(25); err != nil {
		t.Fatal(err)
	}
	if s.Windows() != before {
		t.Error("repeating the current temperature should not draw")
	}

	if err := th.SetTemperature(math.NaN()); err != nil {
		t.Fatalf("SetTemperature(NaN) = %v", err)
	}
	if s.Windows() != before {
		t.Error("NaN should not draw")
	}
	if c := s.Pixel(110, 8); c != rgb565.Crimson {
		t.Errorf("NaN changed the column: (110, 8) = 0x%04X, want crimson", c)
	}
}
