package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
	"honnef.co/go/curve"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/geometry"
)

// PDF renders els onto a single page sized to the board and writes the
// document to w. One board unit is one point times the scale.
func PDF(w io.Writer, els []board.Element, opts Options) error {
	opts = opts.withDefaults()
	scene, err := NewScene(els, opts)
	if err != nil {
		return err
	}
	width := scene.Bounds.Width() * opts.Scale
	height := scene.Bounds.Height() * opts.Scale

	// Portrait keeps the custom size as given; landscape would swap it.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.AddPage()

	s := &pdfSurface{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	s.setFill(background(scene.Theme))
	pdf.Rect(0, 0, width, height, "F")

	pdf.TransformBegin()
	pdf.TransformScale(opts.Scale*100, opts.Scale*100, 0, 0)
	paint(scene, s)
	pdf.TransformEnd()

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf export: %w", err)
	}
	return nil
}

type pdfSurface struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	origin Point
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func (s *pdfSurface) setFill(c color.Color) {
	r, g, b := rgb(c)
	s.pdf.SetFillColor(r, g, b)
}

func (s *pdfSurface) setStroke(c color.Color, width float64) {
	r, g, b := rgb(c)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetLineWidth(width)
}

// prepare sets colors for st and returns the matching gofpdf style
// string, or "" when there is nothing to draw.
func (s *pdfSurface) prepare(st style) string {
	var mode string
	if st.fill != nil {
		s.setFill(st.fill)
		mode = "F"
	}
	if st.stroke != nil && st.width > 0 {
		s.setStroke(st.stroke, st.width)
		mode += "D"
	}
	return mode
}

func (s *pdfSurface) at(x, y float64) (float64, float64) {
	return s.origin.X + x, s.origin.Y + y
}

func (s *pdfSurface) begin(e board.Element, origin Point) {
	s.origin = origin
	s.pdf.TransformBegin()
	// gofpdf turns counter-clockwise; element rotation is clockwise.
	s.pdf.TransformRotate(-e.Rotation, origin.X+e.Width/2, origin.Y+e.Height/2)
}

func (s *pdfSurface) end() {
	s.pdf.TransformEnd()
}

func (s *pdfSurface) rect(x, y, w, h float64, st style) {
	if mode := s.prepare(st); mode != "" {
		x, y = s.at(x, y)
		s.pdf.Rect(x, y, w, h, mode)
	}
}

func (s *pdfSurface) ellipse(cx, cy, rx, ry float64, st style) {
	if mode := s.prepare(st); mode != "" {
		cx, cy = s.at(cx, cy)
		s.pdf.Ellipse(cx, cy, rx, ry, 0, mode)
	}
}

func (s *pdfSurface) polygon(pts []Point, st style) {
	mode := s.prepare(st)
	if mode == "" || len(pts) == 0 {
		return
	}
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = s.at(p.X, p.Y)
	}
	s.pdf.Polygon(out, mode)
}

func (s *pdfSurface) curve(p geometry.Path, st style) {
	st.fill = nil
	if s.prepare(st) == "" || len(p) == 0 {
		return
	}
	s.pdf.SetLineCapStyle("round")
	s.pdf.SetLineJoinStyle("round")
	for _, el := range p {
		switch el.Kind {
		case curve.MoveToKind:
			s.pdf.MoveTo(s.at(el.P0.X, el.P0.Y))
		case curve.LineToKind:
			s.pdf.LineTo(s.at(el.P0.X, el.P0.Y))
		case curve.CubicToKind:
			c1x, c1y := s.at(el.P0.X, el.P0.Y)
			c2x, c2y := s.at(el.P1.X, el.P1.Y)
			x, y := s.at(el.P2.X, el.P2.Y)
			s.pdf.CurveBezierCubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	s.pdf.DrawPath("D")
}

func (s *pdfSurface) polyline(pts []Point, st style) {
	switch len(pts) {
	case 0:
		return
	case 1:
		if st.stroke != nil {
			s.ellipse(pts[0].X, pts[0].Y, st.width/2, st.width/2, style{fill: st.stroke})
		}
		return
	}
	st.fill = nil
	if s.prepare(st) == "" {
		return
	}
	s.pdf.SetLineCapStyle("round")
	s.pdf.SetLineJoinStyle("round")
	x, y := s.at(pts[0].X, pts[0].Y)
	s.pdf.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = s.at(p.X, p.Y)
		s.pdf.LineTo(x, y)
	}
	s.pdf.DrawPath("D")
}

func (s *pdfSurface) text(str string, x, y, w float64, ts textStyle) {
	if str == "" {
		return
	}
	r, g, b := rgb(ts.color)
	s.pdf.SetTextColor(r, g, b)
	s.pdf.SetFont("Helvetica", "", ts.size)
	align := "L"
	switch ts.align {
	case board.AlignCenter:
		align = "C"
	case board.AlignRight:
		align = "R"
	}
	x, y = s.at(x, y)
	s.pdf.SetXY(x, y)
	s.pdf.MultiCell(w, ts.size*lineSpacing, s.tr(str), "", align, false)
}
