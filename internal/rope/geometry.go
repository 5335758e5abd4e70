// Package rope turns a pull pose into the curve a renderer draws: a cubic
// Bézier hanging from a fixed anchor down to the knob.
//
// Coordinates are layout units with the anchor at the origin, x to the right
// and y pointing down.
package rope

import (
	"math"

	"github.com/san-kum/pullswitch/internal/pull"
)

const (
	minRopeHeight = 80.0
	maxFold       = 32.0
)

type Point struct {
	X, Y float64
}

type Geometry struct {
	TopLength float64
	Width     float64
	KnobSize  float64
}

func DefaultGeometry() Geometry {
	return Geometry{
		TopLength: 210,
		Width:     70,
		KnobSize:  44,
	}
}

// Height is the rope length from the anchor to the top of the knob.
func (g Geometry) Height(p pull.Pose) float64 {
	return math.Max(minRopeHeight, g.TopLength+p.KnobY())
}

// Knob is the knob centre.
func (g Geometry) Knob(p pull.Pose) Point {
	return Point{X: p.LateralOffset, Y: g.Height(p) + g.KnobSize/2}
}

// Curve is the rope for a pose. The control points lean with the sway so the
// rope bows like a thread, and slack folds the upper half down.
func (g Geometry) Curve(p pull.Pose) Curve {
	h := g.Height(p)
	sway := p.LateralOffset
	fold := math.Min(maxFold, math.Max(0, -p.VerticalOffset))

	return Curve{
		Start: Point{0, 0},
		C1:    Point{sway * 1.2, h*0.30 + fold},
		C2:    Point{-sway * 0.35, h*0.74 + fold*0.45},
		End:   Point{sway * 0.65, h + g.KnobSize*0.22},
	}
}

type Curve struct {
	Start, C1, C2, End Point
}

func (c Curve) At(t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Point{
		X: a*c.Start.X + b*c.C1.X + d*c.C2.X + e*c.End.X,
		Y: a*c.Start.Y + b*c.C1.Y + d*c.C2.Y + e*c.End.Y,
	}
}

// Sample returns n+1 evenly spaced points from Start to End.
func (c Curve) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = c.At(float64(i) / float64(n))
	}
	return pts
}

// HitKnob reports whether pt lies on the knob, allowing slop units of
// tolerance around its edge.
func (g Geometry) HitKnob(p pull.Pose, pt Point, slop float64) bool {
	k := g.Knob(p)
	r := g.KnobSize/2 + slop
	dx, dy := pt.X-k.X, pt.Y-k.Y
	return dx*dx+dy*dy <= r*r
}
