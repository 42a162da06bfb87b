package render

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"honnef.co/go/curve"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/geometry"
)

// MaxPixels bounds the PNG canvas so a stray element far from the rest
// cannot ask for gigabytes.
const MaxPixels = 64 << 20

// PNG renders els and writes the image to w.
func PNG(w io.Writer, els []board.Element, opts Options) error {
	opts = opts.withDefaults()
	scene, err := NewScene(els, opts)
	if err != nil {
		return err
	}
	width := int(math.Ceil(scene.Bounds.Width() * opts.Scale))
	height := int(math.Ceil(scene.Bounds.Height() * opts.Scale))
	if width*height > MaxPixels {
		return fmt.Errorf("png export of %dx%d pixels is too large", width, height)
	}

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(background(scene.Theme))
	dc.Clear()
	dc.Scale(opts.Scale, opts.Scale)

	paint(scene, &pngSurface{dc: dc, ttf: ttf, faces: make(map[float64]font.Face)})
	return dc.EncodePNG(w)
}

type pngSurface struct {
	dc    *gg.Context
	ttf   *truetype.Font
	faces map[float64]font.Face
}

func (s *pngSurface) begin(e board.Element, origin Point) {
	s.dc.Push()
	s.dc.Translate(origin.X+e.Width/2, origin.Y+e.Height/2)
	s.dc.Rotate(gg.Radians(e.Rotation))
	s.dc.Translate(-e.Width/2, -e.Height/2)
}

func (s *pngSurface) end() {
	s.dc.Pop()
}

// finish fills then strokes whatever path is current.
func (s *pngSurface) finish(st style) {
	if st.fill != nil {
		s.dc.SetColor(st.fill)
		if st.stroke != nil && st.width > 0 {
			s.dc.FillPreserve()
		} else {
			s.dc.Fill()
		}
	}
	if st.stroke != nil && st.width > 0 {
		s.dc.SetColor(st.stroke)
		s.dc.SetLineWidth(st.width)
		s.dc.Stroke()
	}
	s.dc.ClearPath()
}

func (s *pngSurface) rect(x, y, w, h float64, st style) {
	s.dc.DrawRectangle(x, y, w, h)
	s.finish(st)
}

func (s *pngSurface) ellipse(cx, cy, rx, ry float64, st style) {
	s.dc.DrawEllipse(cx, cy, rx, ry)
	s.finish(st)
}

func (s *pngSurface) polygon(pts []Point, st style) {
	if len(pts) == 0 {
		return
	}
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
	s.finish(st)
}

func (s *pngSurface) curve(p geometry.Path, st style) {
	for _, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			s.dc.MoveTo(el.P0.X, el.P0.Y)
		case curve.LineToKind:
			s.dc.LineTo(el.P0.X, el.P0.Y)
		case curve.CubicToKind:
			s.dc.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		}
	}
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	st.fill = nil
	s.finish(st)
}

func (s *pngSurface) polyline(pts []Point, st style) {
	switch len(pts) {
	case 0:
		return
	case 1:
		// A single press still leaves a dot.
		if st.stroke != nil {
			s.dc.DrawCircle(pts[0].X, pts[0].Y, st.width/2)
			s.finish(style{fill: st.stroke})
		}
		return
	}
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	st.fill = nil
	s.finish(st)
}

func (s *pngSurface) face(size float64) font.Face {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(s.ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.faces[size] = f
	return f
}

func (s *pngSurface) text(str string, x, y, w float64, ts textStyle) {
	if str == "" {
		return
	}
	s.dc.SetFontFace(s.face(ts.size))
	s.dc.SetColor(ts.color)
	align := gg.AlignLeft
	switch ts.align {
	case board.AlignCenter:
		align = gg.AlignCenter
	case board.AlignRight:
		align = gg.AlignRight
	}
	s.dc.DrawStringWrapped(str, x, y, 0, 0, w, lineSpacing, align)
}
