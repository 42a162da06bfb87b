package draft

import (
	"time"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/geometry"
)

type Point = geometry.Point

type Style struct {
	StrokeColor string
	FillColor   string
	StrokeWidth float64
}

func DefaultArrowStyle() Style {
	return Style{
		StrokeColor: board.ArrowStroke,
		FillColor:   board.ArrowFill,
		StrokeWidth: board.ArrowStrokeWidth,
	}
}

// Arrow is a multi-click arrow under construction. Clicks append to the
// committed points; hovering only moves the preview.
type Arrow struct {
	ID        string
	Style     Style
	committed []Point
	preview   Point
	throttle  Throttle
}

// NewArrow starts a draft at the first click.
func NewArrow(at Point) *Arrow {
	return &Arrow{
		ID:        board.NewID(),
		Style:     DefaultArrowStyle(),
		committed: []Point{at},
		preview:   at,
		throttle:  Throttle{Interval: PreviewInterval},
	}
}

func (a *Arrow) Click(at Point) {
	a.committed = append(a.committed, at)
	a.preview = at
}

// Hover moves the preview point, at most once per PreviewInterval. It
// reports whether the preview changed.
func (a *Arrow) Hover(at Point, now time.Time) bool {
	if !a.throttle.Allow(now) {
		return false
	}
	a.preview = at
	return true
}

func (a *Arrow) Preview() Point { return a.preview }

// Committed returns a copy of the clicked points.
func (a *Arrow) Committed() []Point {
	return append([]Point(nil), a.committed...)
}

// Points is the committed trail plus the preview when it differs from the
// last click, with repeats removed.
func (a *Arrow) Points() []Point {
	pts := a.Committed()
	if len(pts) == 0 || pts[len(pts)-1] != a.preview {
		pts = append(pts, a.preview)
	}
	return geometry.DedupePoints(pts)
}

// Outline returns the box and local points the arrow would get if
// finalized now. ok is false while there are fewer than two points.
func (a *Arrow) Outline() (geometry.Rect, []Point, bool) {
	pts := a.Points()
	if len(pts) < 2 {
		return geometry.Rect{}, nil, false
	}
	box, rel := geometry.Normalize(pts, geometry.DefaultPadding)
	return box, rel, true
}

// Finalize builds the arrow element. With fewer than two distinct points
// there is nothing to build and ok is false.
func (a *Arrow) Finalize(zIndex int) (board.Element, bool) {
	box, rel, ok := a.Outline()
	if !ok {
		return board.Element{}, false
	}
	return board.Element{
		ID:     a.ID,
		X:      box.X,
		Y:      box.Y,
		Width:  box.Width,
		Height: box.Height,
		ZIndex: zIndex,
		Data: board.ShapeData{
			ShapeType:   board.ShapeArrow,
			FillColor:   a.Style.FillColor,
			StrokeColor: a.Style.StrokeColor,
			StrokeWidth: a.Style.StrokeWidth,
			Points:      rel,
		},
	}, true
}
