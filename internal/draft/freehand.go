package draft

import (
	"math"
	"time"

	"github.com/saichandra-1/white-board/internal/board"
)

// Freehand tracks one pen stroke. The drawing element exists from the
// first press; each sample grows its box and appends one local point.
type Freehand struct {
	ID       string
	throttle Throttle
	active   bool
}

// BeginFreehand creates the stroke element at the rounded press position
// with a single point at its local origin.
func BeginFreehand(at Point, zIndex int, theme board.Theme, now time.Time) (*Freehand, board.Element) {
	stroke := board.DrawingStrokeLight
	if theme == board.ThemeDark {
		stroke = board.DrawingStrokeDark
	}
	el := board.Element{
		ID:     board.NewID(),
		X:      math.Round(at.X),
		Y:      math.Round(at.Y),
		Width:  1,
		Height: 1,
		ZIndex: zIndex,
		Data: board.DrawingData{Paths: []board.DrawingPath{{
			Points:      []Point{{X: 0, Y: 0}},
			StrokeColor: stroke,
			StrokeWidth: board.DrawingStrokeWidth,
		}}},
	}
	f := &Freehand{ID: el.ID, throttle: Throttle{Interval: SampleInterval}, active: true}
	f.throttle.Reset(now)
	return f, el
}

func (f *Freehand) Active() bool { return f != nil && f.active }

func (f *Freehand) End() {
	f.active = false
}

// Sample extends current, the stroke's element as last committed, toward
// the board point p. A point left of or above the box moves the origin
// and shifts every recorded point by the same amount; a point past the
// right or bottom edge stretches the box. ok is false when the sample is
// throttled or current is not this stroke.
func (f *Freehand) Sample(current board.Element, p Point, now time.Time) (board.Patch, bool) {
	if !f.Active() || current.ID != f.ID {
		return board.Patch{}, false
	}
	data, isDrawing := current.Data.(board.DrawingData)
	if !isDrawing || len(data.Paths) == 0 {
		return board.Patch{}, false
	}
	if !f.throttle.Allow(now) {
		return board.Patch{}, false
	}

	x, y := current.X, current.Y
	w, h := current.Width, current.Height
	local := Point{X: p.X - current.X, Y: p.Y - current.Y}

	var shift Point
	if local.X < 0 {
		shift.X = -local.X
		x -= shift.X
		w += shift.X
		local.X = 0
	} else if local.X > w {
		w = local.X
	}
	if local.Y < 0 {
		shift.Y = -local.Y
		y -= shift.Y
		h += shift.Y
		local.Y = 0
	} else if local.Y > h {
		h = local.Y
	}

	path := data.Paths[0]
	pts := make([]Point, len(path.Points), len(path.Points)+1)
	for i, pt := range path.Points {
		pts[i] = pt.Add(shift)
	}
	path.Points = append(pts, local)

	return board.Patch{
		X:      board.F(math.Round(x)),
		Y:      board.F(math.Round(y)),
		Width:  board.F(math.Max(1, math.Round(w))),
		Height: board.F(math.Max(1, math.Round(h))),
		Data:   board.DrawingData{Paths: []board.DrawingPath{path}},
	}, true
}
