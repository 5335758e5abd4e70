package viz

import (
	"math"
	"strings"

	"github.com/san-kum/pullswitch/internal/rope"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels; dots outside it are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Projection maps layout units onto canvas sub-pixels.
type Projection struct {
	OriginX, OriginY int
	UnitX, UnitY     float64 // layout units per sub-pixel
}

func (p Projection) Apply(pt rope.Point) (int, int) {
	return p.OriginX + int(math.Round(pt.X/p.UnitX)), p.OriginY + int(math.Round(pt.Y/p.UnitY))
}

func (c *Canvas) DrawPolyline(pts []rope.Point, proj Projection) {
	for i := 1; i < len(pts); i++ {
		x0, y0 := proj.Apply(pts[i-1])
		x1, y1 := proj.Apply(pts[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// FillCircle fills a disc given in layout units.
func (c *Canvas) FillCircle(center rope.Point, radius float64, proj Projection) {
	cx, cy := proj.Apply(center)
	rx := int(math.Ceil(radius / proj.UnitX))
	ry := int(math.Ceil(radius / proj.UnitY))
	for y := -ry; y <= ry; y++ {
		for x := -rx; x <= rx; x++ {
			fx := float64(x) * proj.UnitX
			fy := float64(y) * proj.UnitY
			if fx*fx+fy*fy <= radius*radius {
				c.Set(cx+x, cy+y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
