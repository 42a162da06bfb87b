package transform

import (
	"math"

	"github.com/saichandra-1/white-board/internal/geometry"
)

// AspectLock constrains a resize to a uniform scale. With Ratio zero the
// start box's own proportions are kept; otherwise height follows
// width/Ratio.
type AspectLock struct {
	Enabled bool
	Ratio   float64
}

func LockRatio(r float64) AspectLock {
	return AspectLock{Enabled: true, Ratio: r}
}

// Translate offsets the start box by a board-space delta.
func Translate(start Box, delta Point) Box {
	start.X += delta.X
	start.Y += delta.Y
	return start
}

// Resize computes the box produced by dragging handle h by delta, where
// delta is already in board units. The delta is read along the box's own
// axes and the edge opposite the handle stays put in the rotated frame.
func Resize(start Box, h Handle, delta Point, lock AspectLock, minSize float64) Box {
	if minSize <= 0 {
		minSize = MinSize
	}
	sx, sy := h.Signs()
	local := delta.Rotate(-start.Rotation)

	w, ht := start.Width, start.Height
	if sx != 0 {
		w = start.Width + local.X*float64(sx)
	}
	if sy != 0 {
		ht = start.Height + local.Y*float64(sy)
	}

	if lock.Enabled {
		w, ht = lockedSize(start, h, w, ht, lock, minSize)
	} else {
		w = math.Max(minSize, w)
		ht = math.Max(minSize, ht)
	}

	shift := Point{
		X: float64(sx) * (w - start.Width) / 2,
		Y: float64(sy) * (ht - start.Height) / 2,
	}.Rotate(start.Rotation)
	center := start.Center().Add(shift)

	return Box{
		X:        center.X - w/2,
		Y:        center.Y - ht/2,
		Width:    w,
		Height:   ht,
		Rotation: start.Rotation,
	}
}

// lockedSize picks one scale factor and applies it to both sides. A corner
// handle follows whichever axis moved further from its start size.
func lockedSize(start Box, handle Handle, w, h float64, lock AspectLock, minSize float64) (float64, float64) {
	baseW := math.Max(1, start.Width)
	baseH := math.Max(1, start.Height)
	if lock.Ratio > 0 && finite(lock.Ratio) {
		baseH = math.Max(1, baseW/lock.Ratio)
	}

	sx, sy := handle.Signs()
	scale := 1.0
	switch {
	case handle.IsCorner():
		fromW, fromH := w/baseW, h/baseH
		if math.Abs(fromW-1) >= math.Abs(fromH-1) {
			scale = fromW
		} else {
			scale = fromH
		}
	case sx != 0:
		scale = w / baseW
	case sy != 0:
		scale = h / baseH
	}
	if !finite(scale) || scale <= 0 {
		scale = 1
	}
	if minScale := math.Max(minSize/baseW, minSize/baseH); scale < minScale {
		scale = minScale
	}
	return baseW * scale, baseH * scale
}

// Rotate returns the rotation after the pointer moved from `from` to `to`
// around center, normalized into [0, 360).
func Rotate(startRotation float64, center, from, to Point) float64 {
	delta := geometry.Bearing(center, to) - geometry.Bearing(center, from)
	return geometry.NormalizeDegrees(startRotation + delta)
}
