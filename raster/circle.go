package raster

import "github.com/flavioheleno/st7735/rgb565"

// Quadrant selects parts of a circle. Quadrants combine with |.
type Quadrant uint8

// Circle quadrants, named from the center in screen coordinates.
const (
	UL Quadrant = 1 << iota // upper left
	UR                      // upper right
	LL                      // lower left
	LR                      // lower right

	AllQuadrants = UL | UR | LL | LR
)

// Circle draws the outline of a circle centered on (cx, cy).
func (c *Canvas) Circle(cx, cy, r int, col rgb565.Color) error {
	return c.circle(cx, cy, r, col, AllQuadrants, false, col)
}

// CircleSegment draws only the quadrants in q of a circle outline.
// q == 0 draws all of them.
func (c *Canvas) CircleSegment(cx, cy, r int, col rgb565.Color, q Quadrant) error {
	return c.circle(cx, cy, r, col, q, false, col)
}

// CircleFilled draws a disc in a single color.
func (c *Canvas) CircleFilled(cx, cy, r int, col rgb565.Color) error {
	return c.circle(cx, cy, r, col, AllQuadrants, true, col)
}

// CircleFilledColor draws a disc filled with fill and outlined with outline.
func (c *Canvas) CircleFilledColor(cx, cy, r int, outline, fill rgb565.Color) error {
	return c.circle(cx, cy, r, outline, AllQuadrants, true, fill)
}

// circle runs the midpoint algorithm over one octant, starting at (r-1, 0),
// and mirrors each step into the selected quadrants. With fill set, four
// horizontal spans joining mirrored points are drawn before the outline.
func (c *Canvas) circle(cx, cy, r int, col rgb565.Color, q Quadrant, fill bool, fillCol rgb565.Color) error {
	if q == 0 {
		q = AllQuadrants
	}
	x, y := r-1, 0
	dx, dy := 1, 1
	e := dx - 2*r

	for x >= y {
		if fill {
			spans := [4][3]int{
				{cx - y, cx + y, cy - x},
				{cx - x, cx + x, cy - y},
				{cx - x, cx + x, cy + y},
				{cx - y, cx + y, cy + x},
			}
			for _, s := range spans {
				if err := c.Line(s[0], s[2], s[1], s[2], fillCol); err != nil {
					return err
				}
			}
		}

		points := [...]struct {
			q    Quadrant
			x, y int
		}{
			{LR, cx + x, cy + y},
			{LR, cx + y, cy + x},
			{LL, cx - y, cy + x},
			{LL, cx - x, cy + y},
			{UL, cx - x, cy - y},
			{UL, cx - y, cy - x},
			{UR, cx + y, cy - x},
			{UR, cx + x, cy - y},
		}
		for _, p := range points {
			if q&p.q == 0 {
				continue
			}
			if err := c.SetPixel(p.x, p.y, col); err != nil {
				return err
			}
		}

		if e <= 0 {
			y++
			e += dy
			dy += 2
		}
		if e > 0 {
			x--
			dx += 2
			e += dx - 2*r
		}
	}
	return nil
}
