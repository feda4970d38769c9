package rgb565

import (
	"image"
	"image/color"
	"testing"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Color
	}{
		{"white", 0xFF, 0xFF, 0xFF, 0xFFFF},
		{"black", 0x00, 0x00, 0x00, 0x0000},
		{"red field only", 0xF8, 0x00, 0x00, 0xF800},
		{"green field only", 0x00, 0xFC, 0x00, 0x07E0},
		{"blue field only", 0x00, 0x00, 0xF8, 0x001F},
		{"dropped low bits", 0x07, 0x03, 0x07, 0x0000},
		{"crimson", 0xB8, 0x0C, 0x08, Crimson},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pack(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("Pack(0x%02X, 0x%02X, 0x%02X) = 0x%04X, want 0x%04X", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestPackRedIsolation(t *testing.T) {
	c := Pack(0xF8, 0, 0)
	if c&^0xF800 != 0 {
		t.Errorf("Pack(0xF8, 0, 0) = 0x%04X leaks outside the red field", c)
	}
	if c>>11 != 0x1F {
		t.Errorf("red field = 0x%X, want 0x1F", c>>11)
	}
}

func TestColorBytes(t *testing.T) {
	hi, lo := Color(0xB861).Bytes()
	if hi != 0xB8 || lo != 0x61 {
		t.Errorf("Bytes() = (0x%02X, 0x%02X), want (0xB8, 0x61)", hi, lo)
	}
}

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		name       string
		c          Color
		r, g, b, a uint32
	}{
		{"white", White, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
		{"black", Black, 0, 0, 0, 0xFFFF},
		{"red", Red, 0xFFFF, 0, 0, 0xFFFF},
		{"green", Green, 0, 0xFFFF, 0, 0xFFFF},
		{"blue", Blue, 0, 0, 0xFFFF, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, %x)", r, g, b, a, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
}

func TestModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Color
	}{
		{"passthrough", Crimson, Crimson},
		{"black", color.Black, Black},
		{"white", color.White, White},
		{"rgba red", color.RGBA{0xFF, 0, 0, 0xFF}, Red},
		{"rgba yellow", color.RGBA{0xFF, 0xFF, 0, 0xFF}, Yellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Model.Convert(tt.input).(Color)
			if got != tt.want {
				t.Errorf("Model.Convert(%v) = 0x%04X, want 0x%04X", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewImage(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantStride int
		wantPixLen int
	}{
		{"128x160", image.Rect(0, 0, 128, 160), 256, 40960},
		{"1x1", image.Rect(0, 0, 1, 1), 2, 2},
		{"offset rect", image.Rect(10, 20, 13, 22), 6, 12},
		{"empty", image.Rect(0, 0, 0, 5), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewImage(tt.rect)
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestImageWireLayout(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 2, 1))
	img.SetRGB565(0, 0, 0x1234)
	img.SetRGB565(1, 0, Crimson)

	want := []byte{0x12, 0x34, 0xB8, 0x61}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Errorf("Pix[%d] = 0x%02X, want 0x%02X", i, img.Pix[i], b)
		}
	}
}

func TestImageSetAt(t *testing.T) {
	img := NewImage(image.Rect(100, 50, 104, 52))

	img.Set(100, 50, color.White)
	img.SetRGB565(103, 51, Cyan)

	if got := img.RGB565At(100, 50); got != White {
		t.Errorf("RGB565At(100, 50) = 0x%04X, want 0xFFFF", got)
	}
	c, ok := img.At(103, 51).(Color)
	if !ok {
		t.Fatalf("At(103, 51) returned %T, want Color", img.At(103, 51))
	}
	if c != Cyan {
		t.Errorf("At(103, 51) = 0x%04X, want 0x%04X", c, Cyan)
	}
	if img.ColorModel() != Model {
		t.Error("ColorModel() did not return Model")
	}
}

func TestImageOutOfBounds(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 4, 4))

	img.SetRGB565(-1, 0, White)
	img.SetRGB565(0, 4, White)
	img.SetRGB565(4, 0, White)

	for _, b := range img.Pix {
		if b != 0 {
			t.Fatal("out-of-bounds SetRGB565 modified Pix")
		}
	}
	if got := img.RGB565At(-1, -1); got != Black {
		t.Errorf("RGB565At(-1, -1) = 0x%04X, want 0", got)
	}
}

func TestImageFill(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 3, 2))
	img.Fill(Magenta)

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := img.RGB565At(x, y); got != Magenta {
				t.Errorf("RGB565At(%d, %d) = 0x%04X, want 0x%04X", x, y, got, Magenta)
			}
		}
	}
}
