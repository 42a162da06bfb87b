// Package geometry holds the pure math behind the editor: points, boxes,
// the smoothed spline used by arrows and drawings, and the bounds that
// cover it.
package geometry

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// Point is a position in board space, or in an element's local space when
// stored inside element data.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Curve returns p as a curve point.
func (p Point) Curve() curve.Point {
	return curve.Point(p)
}

func (p Point) Add(o Point) Point {
	return Point(p.Curve().Translate(curve.Vec2(o)))
}

// Sub computes p−o.
func (p Point) Sub(o Point) Point {
	return Point(p.Curve().Sub(o.Curve()))
}

func (p Point) Scale(f float64) Point {
	return Point(curve.Vec2(p).Mul(f))
}

// Rotate turns p about the origin by deg degrees, clockwise on a y-down
// screen.
func (p Point) Rotate(deg float64) Point {
	return p.Transform(curve.Rotate(deg * math.Pi / 180))
}

func (p Point) Transform(aff curve.Affine) Point {
	return Point(p.Curve().Transform(aff))
}

// Round returns a new point with x and y rounded to the nearest integers.
func (p Point) Round() Point {
	return Point(p.Curve().Round())
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return p.Curve().Distance(o.Curve())
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Bearing is the angle in degrees of the ray from center to p, measured
// from the positive x axis with y growing downward.
func Bearing(center, p Point) float64 {
	return p.Curve().Sub(center.Curve()).Angle() * 180 / math.Pi
}
