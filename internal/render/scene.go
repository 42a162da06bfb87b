// Package render draws a board to PNG and PDF for export.
package render

import (
	"errors"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/geometry"
)

var ErrNothingToExport = errors.New("board has no elements to export")

type Point = geometry.Point

// Options control an export. Zero values pick the defaults.
type Options struct {
	// Scale is output units per board unit.
	Scale float64
	// Padding is added around the elements, in board units.
	Padding float64
	Theme   board.Theme
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Padding < 0 || math.IsNaN(o.Padding) {
		o.Padding = 0
	} else if o.Padding == 0 {
		o.Padding = 20
	}
	if !o.Theme.Valid() {
		o.Theme = board.ThemeLight
	}
	return o
}

// Scene is a board laid out for drawing: elements in paint order inside
// the bounds that cover all of them.
type Scene struct {
	Elements []board.Element
	Bounds   geometry.Bounds
	Theme    board.Theme
}

// NewScene fails with ErrNothingToExport for an empty board.
func NewScene(els []board.Element, opts Options) (Scene, error) {
	opts = opts.withDefaults()
	if len(els) == 0 {
		return Scene{}, ErrNothingToExport
	}
	sorted := board.ByZIndex(els)
	b := ElementBounds(sorted[0])
	for _, e := range sorted[1:] {
		b = b.Union(ElementBounds(e))
	}
	b.MinX -= opts.Padding
	b.MinY -= opts.Padding
	b.MaxX += opts.Padding
	b.MaxY += opts.Padding
	return Scene{Elements: sorted, Bounds: b, Theme: opts.Theme}, nil
}

// ElementBounds covers the element's box after rotation.
func ElementBounds(e board.Element) geometry.Bounds {
	c := e.Box().Center()
	hw, hh := e.Width/2, e.Height/2
	var b geometry.Bounds
	for i, off := range []Point{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}} {
		p := c.Add(off.Rotate(e.Rotation))
		if i == 0 {
			b = geometry.Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			continue
		}
		b = b.Union(geometry.Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y})
	}
	return b
}

func background(t board.Theme) color.Color {
	if t == board.ThemeDark {
		return parseColor("#111827", color.Black)
	}
	return color.White
}

// parseColor reads a #rgb or #rrggbb string, falling back when it is
// empty or malformed.
func parseColor(hex string, fallback color.Color) color.Color {
	if hex == "" || hex == "transparent" {
		return fallback
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c.Clamped()
}

// darken returns c with its lightness reduced, for note borders.
func darken(c color.Color) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	h, s, l := cf.Hsl()
	return colorful.Hsl(h, s, math.Max(0, l-0.25)).Clamped()
}
