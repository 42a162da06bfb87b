package geometry

import (
	"math"

	"honnef.co/go/curve"
)

// Bounds is an axis-aligned extent given by its corners.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether p lies inside b, allowing eps of slack on every
// side.
func (b Bounds) Contains(p Point, eps float64) bool {
	return p.X >= b.MinX-eps && p.X <= b.MaxX+eps &&
		p.Y >= b.MinY-eps && p.Y <= b.MaxY+eps
}

// Union returns the smallest bounds covering both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return boundsOf(b.Curve().Union(o.Curve()))
}

// Curve returns b as a curve rectangle.
func (b Bounds) Curve() curve.Rect {
	return curve.Rect{X0: b.MinX, Y0: b.MinY, X1: b.MaxX, Y1: b.MaxY}
}

func boundsOf(r curve.Rect) Bounds {
	return Bounds{MinX: r.X0, MinY: r.Y0, MaxX: r.X1, MaxY: r.Y1}
}

// Rect returns b as an origin and size.
func (b Bounds) Rect() Rect {
	return Rect{X: b.MinX, Y: b.MinY, Width: b.Width(), Height: b.Height()}
}

func (b Bounds) extend(p Point) Bounds {
	return boundsOf(b.Curve().UnionPoint(p.Curve()))
}

// Rect is a box given by its top-left corner and size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Bounds() Bounds {
	return Bounds{MinX: r.X, MinY: r.Y, MaxX: r.X + r.Width, MaxY: r.Y + r.Height}
}

// Contains reports whether p falls inside r once r is rotated by deg
// degrees about its center.
func (r Rect) Contains(p Point, deg float64) bool {
	c := r.Center()
	local := p.Sub(c).Rotate(-deg)
	return math.Abs(local.X) <= r.Width/2 && math.Abs(local.Y) <= r.Height/2
}
