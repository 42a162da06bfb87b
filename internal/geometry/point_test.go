package geometry

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(3, 5), Pt(1, 2).Add(Pt(2, 3)))
	diff(t, Pt(-1, -1), Pt(1, 2).Sub(Pt(2, 3)))
	diff(t, Pt(2, 4), Pt(1, 2).Scale(2))
	diff(t, Pt(2, -3), Pt(1.6, -2.6).Round())
}

func TestPointRotate(t *testing.T) {
	got := Pt(10, 0).Rotate(90)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("got %v, want (0, 10)", got)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, 0},
		{90, 90},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-720, 0},
		{math.NaN(), 0},
	} {
		if got := NormalizeDegrees(tc.in); got != tc.want {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBearing(t *testing.T) {
	c := Pt(50, 50)
	for _, tc := range []struct {
		p    Point
		want float64
	}{
		{Pt(100, 50), 0},
		{Pt(50, 100), 90},
		{Pt(50, 0), -90},
		{Pt(0, 50), 180},
	} {
		if got := Bearing(c, tc.p); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Bearing(%v, %v) = %v, want %v", c, tc.p, got, tc.want)
		}
	}
}

func TestRectContainsRotated(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 20}
	if !r.Contains(Pt(90, 10), 0) {
		t.Error("unrotated rect should contain (90, 10)")
	}
	if r.Contains(Pt(90, 10), 90) {
		t.Error("rect rotated 90 should not contain (90, 10)")
	}
	if !r.Contains(Pt(50, 50), 90) {
		t.Error("rect rotated 90 should contain (50, 50)")
	}
}

func TestBoundsUnion(t *testing.T) {
	a := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Bounds{MinX: -5, MinY: 4, MaxX: 6, MaxY: 20}
	diff(t, Bounds{MinX: -5, MinY: 0, MaxX: 10, MaxY: 20}, a.Union(b))
	diff(t, Bounds{MinX: 0, MinY: -3, MaxX: 12, MaxY: 10}, a.extend(Pt(12, -3)))
}
