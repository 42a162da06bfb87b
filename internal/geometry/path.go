package geometry

import "honnef.co/go/curve"

const (
	// Tension scales the neighbor difference used for each control point.
	// Lower than the textbook Catmull-Rom value so sharp turns overshoot less.
	Tension = 0.3

	// DefaultPadding is added around curve bounds when a point trail is
	// turned into an element box.
	DefaultPadding = 10.0
)

// DedupePoints drops every point that equals its immediate predecessor.
// The first point is always kept and order is preserved.
func DedupePoints(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	out := make([]Point, 0, len(points))
	out = append(out, points[0])
	for i := 1; i < len(points); i++ {
		if points[i] == points[i-1] {
			continue
		}
		out = append(out, points[i])
	}
	return out
}

// controlPoints returns the two cubic control points of the segment from
// points[i] to points[i+1]. Neighbors past either end of the slice are
// clamped to the segment's own endpoints.
func controlPoints(points []Point, i int) (Point, Point) {
	p1 := points[i]
	p2 := points[i+1]
	p0 := p1
	if i > 0 {
		p0 = points[i-1]
	}
	p3 := p2
	if i+2 < len(points) {
		p3 = points[i+2]
	}
	cp1 := p1.Add(p2.Sub(p0).Scale(Tension))
	cp2 := p2.Sub(p3.Sub(p1).Scale(Tension))
	return cp1, cp2
}

// Path is the Bézier path drawn through a point trail.
type Path curve.BezPath

// BuildSmoothPath returns a path through every point. Fewer than two points
// give an empty path, two give a straight line, and longer inputs give one
// cubic per consecutive pair.
func BuildSmoothPath(points []Point) Path {
	if len(points) < 2 {
		return nil
	}
	path := make(curve.BezPath, 0, len(points))
	path.MoveTo(points[0].Curve())
	if len(points) == 2 {
		path.LineTo(points[1].Curve())
		return Path(path)
	}
	for i := 0; i < len(points)-1; i++ {
		cp1, cp2 := controlPoints(points, i)
		path.CubicTo(cp1.Curve(), cp2.Curve(), points[i+1].Curve())
	}
	return Path(path)
}

// Flatten samples the path into a polyline. Every cubic contributes steps
// points; line segments contribute their endpoint only.
func (p Path) Flatten(steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	var out []Point
	for seg := range curve.BezPath(p).Segments() {
		if out == nil {
			out = append(out, Point(seg.P0))
		}
		switch seg.Kind {
		case curve.LineKind:
			out = append(out, Point(seg.P1))
		case curve.CubicKind:
			cb := seg.Cubic()
			for k := 1; k < steps; k++ {
				out = append(out, Point(cb.Eval(float64(k)/float64(steps))))
			}
			out = append(out, Point(cb.P3))
		}
	}
	return out
}

// CalculateCurveBounds returns the extent of the curve BuildSmoothPath would
// draw through points. For three or more points every control point is
// included, which covers the rendered cubics by the convex hull property.
func CalculateCurveBounds(points []Point) Bounds {
	if len(points) < 2 {
		return Bounds{}
	}
	b := Bounds{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, pt := range points[1:] {
		b = b.extend(pt)
	}
	if len(points) > 2 {
		for i := 0; i < len(points)-1; i++ {
			cp1, cp2 := controlPoints(points, i)
			b = b.extend(cp1).extend(cp2)
		}
	}
	return b
}

// Normalize converts a board-space point trail into an element box and the
// same points relative to that box. The curve bounds are grown by padding
// on every side and the size never drops below 1.
func Normalize(points []Point, padding float64) (Rect, []Point) {
	b := CalculateCurveBounds(points)
	origin := Point{X: b.MinX - padding, Y: b.MinY - padding}
	r := Rect{
		X:      origin.X,
		Y:      origin.Y,
		Width:  max(1, b.Width()+2*padding),
		Height: max(1, b.Height()+2*padding),
	}
	rel := make([]Point, len(points))
	for i, pt := range points {
		rel[i] = pt.Sub(origin)
	}
	return r, rel
}
