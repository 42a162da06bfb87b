package render

import (
	"image/color"
	"math"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/geometry"
)

type style struct {
	fill   color.Color
	stroke color.Color
	width  float64
}

type textStyle struct {
	color color.Color
	size  float64
	align board.TextAlign
}

// surface is a drawing backend. Between begin and end, coordinates are
// local to the element: (0, 0) is its top-left corner before rotation.
type surface interface {
	begin(e board.Element, origin Point)
	end()
	rect(x, y, w, h float64, st style)
	ellipse(cx, cy, rx, ry float64, st style)
	polygon(pts []Point, st style)
	curve(p geometry.Path, st style)
	polyline(pts []Point, st style)
	text(s string, x, y, w float64, ts textStyle)
}

const (
	// notePadding insets note content from the box edge.
	notePadding = 12
	lineSpacing = 1.3
)

// paint draws every element of the scene in order.
func paint(s Scene, out surface) {
	for _, e := range s.Elements {
		origin := Point{X: e.X - s.Bounds.MinX, Y: e.Y - s.Bounds.MinY}
		out.begin(e, origin)
		paintElement(e, s.Theme, out)
		out.end()
	}
}

func paintElement(e board.Element, theme board.Theme, out surface) {
	switch d := e.Data.(type) {
	case board.StickyNoteData:
		fill := parseColor(d.Color, parseColor(board.NoteColor, color.White))
		out.rect(0, 0, e.Width, e.Height, style{fill: fill, stroke: darken(fill), width: 1})
		out.text(d.Content, notePadding, notePadding, e.Width-2*notePadding, textStyle{
			color: color.Black,
			size:  fontSize(d.FontSize, board.NoteFontSize),
			align: board.AlignLeft,
		})

	case board.ShapeData:
		st := style{
			fill:   parseColor(d.FillColor, nil),
			stroke: parseColor(d.StrokeColor, nil),
			width:  d.StrokeWidth,
		}
		switch d.ShapeType {
		case board.ShapeRectangle:
			out.rect(0, 0, e.Width, e.Height, st)
		case board.ShapeCircle:
			out.ellipse(e.Width/2, e.Height/2, e.Width/2, e.Height/2, st)
		case board.ShapeTriangle:
			out.polygon([]Point{{X: e.Width / 2, Y: 0}, {X: e.Width, Y: e.Height}, {X: 0, Y: e.Height}}, st)
		case board.ShapeArrow:
			paintArrow(d, out)
		}

	case board.TextBoxData:
		fallback := board.TextColorLight
		if theme == board.ThemeDark {
			fallback = board.TextColorDark
		}
		out.text(d.Content, 0, 0, e.Width, textStyle{
			color: parseColor(d.Color, parseColor(fallback, color.Black)),
			size:  fontSize(d.FontSize, board.TextFontSize),
			align: d.TextAlign,
		})

	case board.DrawingData:
		for _, p := range d.Paths {
			out.polyline(p.Points, style{
				stroke: parseColor(p.StrokeColor, color.Black),
				width:  math.Max(1, p.StrokeWidth),
			})
		}
	}
}

// paintArrow strokes the smoothed trail and closes it with a head that
// follows the final tangent.
func paintArrow(d board.ShapeData, out surface) {
	pts := geometry.DedupePoints(d.Points)
	if len(pts) < 2 {
		return
	}
	stroke := parseColor(d.StrokeColor, parseColor(board.ArrowStroke, color.Black))
	width := math.Max(1, d.StrokeWidth)
	path := geometry.BuildSmoothPath(pts)
	out.curve(path, style{stroke: stroke, width: width})

	if head := arrowHead(path, width); head != nil {
		out.polygon(head, style{fill: stroke, stroke: stroke, width: 1})
	}
}

// arrowHead returns the three corners of the head at the end of path.
func arrowHead(path geometry.Path, width float64) []Point {
	flat := path.Flatten(16)
	if len(flat) < 2 {
		return nil
	}
	tip := flat[len(flat)-1]
	var from Point
	found := false
	for i := len(flat) - 2; i >= 0; i-- {
		if flat[i].Distance(tip) > 1e-6 {
			from, found = flat[i], true
			break
		}
	}
	if !found {
		return nil
	}
	dir := tip.Sub(from)
	dir = dir.Scale(1 / math.Hypot(dir.X, dir.Y))
	size := 8 + 2*width
	base := tip.Sub(dir.Scale(size))
	normal := Point{X: -dir.Y, Y: dir.X}.Scale(size / 2)
	return []Point{tip, base.Add(normal), base.Sub(normal)}
}

func fontSize(size, fallback float64) float64 {
	if size <= 0 || math.IsNaN(size) {
		return fallback
	}
	return size
}
