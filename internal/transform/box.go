// Package transform turns pointer sessions into element geometry: drag,
// rotation-aware resize with optional aspect lock, and rotate.
package transform

import (
	"math"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/geometry"
)

type Point = geometry.Point

// MinSize is the smallest width or height a resize may produce.
const MinSize = 30.0

// RotateHandleOffset is the distance of the rotate handle above the top
// edge, in board units.
const RotateHandleOffset = 24.0

// Box is the geometric part of an element.
type Box struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64
}

func BoxOf(e board.Element) Box {
	return Box{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height, Rotation: e.Rotation}
}

func (b Box) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

func (b Box) Rect() geometry.Rect {
	return geometry.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Contains reports whether p lies inside the rotated box.
func (b Box) Contains(p Point) bool {
	return b.Rect().Contains(p, b.Rotation)
}

// local maps a point given relative to the box center, in the unrotated
// frame, into board space.
func (b Box) local(lx, ly float64) Point {
	return Point{X: lx, Y: ly}.Rotate(b.Rotation).Add(b.Center())
}

// HandlePoint returns where handle h sits in board space.
func (b Box) HandlePoint(h Handle) Point {
	sx, sy := h.Signs()
	return b.local(float64(sx)*b.Width/2, float64(sy)*b.Height/2)
}

// RotateHandlePoint returns the rotate grip above the top edge.
func (b Box) RotateHandlePoint() Point {
	return b.local(0, -b.Height/2-RotateHandleOffset)
}

// Corners returns the four rotated corners clockwise from the top-left.
func (b Box) Corners() [4]Point {
	return [4]Point{
		b.HandlePoint(NW),
		b.HandlePoint(NE),
		b.HandlePoint(SE),
		b.HandlePoint(SW),
	}
}

// Handle names one of the eight resize grips by compass direction.
type Handle string

const (
	N  Handle = "n"
	S  Handle = "s"
	E  Handle = "e"
	W  Handle = "w"
	NE Handle = "ne"
	NW Handle = "nw"
	SE Handle = "se"
	SW Handle = "sw"
)

var Handles = []Handle{NW, N, NE, E, SE, S, SW, W}

// Signs returns which edges h moves: +1 for the east or south edge, -1 for
// west or north, 0 when the axis is untouched.
func (h Handle) Signs() (sx, sy int) {
	for _, r := range h {
		switch r {
		case 'e':
			sx = 1
		case 'w':
			sx = -1
		case 's':
			sy = 1
		case 'n':
			sy = -1
		}
	}
	return sx, sy
}

// IsCorner reports whether h moves two edges at once.
func (h Handle) IsCorner() bool {
	sx, sy := h.Signs()
	return sx != 0 && sy != 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
