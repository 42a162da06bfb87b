package transform

import (
	"math"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/geometry"
)

// Mode is the interaction an element is in. Exactly one applies at a time.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
	Rotating
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	case Rotating:
		return "rotating"
	default:
		return "idle"
	}
}

// Options carry the view state a session needs. Pointer positions handed
// to a session are in screen units and are divided by Zoom.
type Options struct {
	Zoom    float64
	Lock    AspectLock
	MinSize float64
}

func (o Options) zoom() float64 {
	if o.Zoom <= 0 || !finite(o.Zoom) {
		return 1
	}
	return o.Zoom
}

// Session is one pointer interaction with an element. Move returns the
// preview to draw; End returns the patch to commit, if any.
type Session interface {
	Mode() Mode
	Move(p Point) Box
	Preview() (Box, bool)
	End() (board.Patch, bool)
}

type dragSession struct {
	start  Box
	origin Point
	zoom   float64
	offset Point
}

// NewDrag starts a translate session with the pointer at `at`.
func NewDrag(start Box, at Point, opts Options) Session {
	return &dragSession{start: start, origin: at, zoom: opts.zoom()}
}

func (s *dragSession) Mode() Mode { return Dragging }

func (s *dragSession) Move(p Point) Box {
	s.offset = p.Sub(s.origin).Scale(1 / s.zoom)
	return Translate(s.start, s.offset)
}

func (s *dragSession) Preview() (Box, bool) {
	return Translate(s.start, s.offset), s.offset != Point{}
}

func (s *dragSession) End() (board.Patch, bool) {
	if s.offset == (Point{}) {
		return board.Patch{}, false
	}
	moved := Translate(s.start, s.offset)
	s.offset = Point{}
	return board.Patch{
		X: board.F(math.Round(moved.X)),
		Y: board.F(math.Round(moved.Y)),
	}, true
}

type resizeSession struct {
	start   Box
	handle  Handle
	origin  Point
	opts    Options
	preview *Box
}

// NewResize starts a resize from handle h with the pointer at `at`.
func NewResize(start Box, h Handle, at Point, opts Options) Session {
	return &resizeSession{start: start, handle: h, origin: at, opts: opts}
}

func (s *resizeSession) Mode() Mode { return Resizing }

func (s *resizeSession) Move(p Point) Box {
	delta := p.Sub(s.origin).Scale(1 / s.opts.zoom())
	b := Resize(s.start, s.handle, delta, s.opts.Lock, s.opts.MinSize)
	s.preview = &b
	return b
}

func (s *resizeSession) Preview() (Box, bool) {
	if s.preview == nil {
		return s.start, false
	}
	return *s.preview, true
}

func (s *resizeSession) End() (board.Patch, bool) {
	if s.preview == nil {
		return board.Patch{}, false
	}
	b := *s.preview
	s.preview = nil
	minSize := s.opts.MinSize
	if minSize <= 0 {
		minSize = MinSize
	}
	return board.Patch{
		X:      board.F(math.Round(b.X)),
		Y:      board.F(math.Round(b.Y)),
		Width:  board.F(math.Max(minSize, math.Round(b.Width))),
		Height: board.F(math.Max(minSize, math.Round(b.Height))),
	}, true
}

type rotateSession struct {
	start   Box
	center  Point
	origin  Point
	preview *float64
}

// NewRotate starts a rotate session around center. center and the pointer
// positions must share one coordinate space.
func NewRotate(start Box, center, at Point) Session {
	return &rotateSession{start: start, center: center, origin: at}
}

func (s *rotateSession) Mode() Mode { return Rotating }

func (s *rotateSession) Move(p Point) Box {
	r := Rotate(s.start.Rotation, s.center, s.origin, p)
	s.preview = &r
	b := s.start
	b.Rotation = r
	return b
}

func (s *rotateSession) Preview() (Box, bool) {
	if s.preview == nil {
		return s.start, false
	}
	b := s.start
	b.Rotation = *s.preview
	return b, true
}

func (s *rotateSession) End() (board.Patch, bool) {
	if s.preview == nil {
		return board.Patch{}, false
	}
	r := geometry.NormalizeDegrees(math.Round(*s.preview))
	s.preview = nil
	return board.Patch{Rotation: board.F(r)}, true
}
