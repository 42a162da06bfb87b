package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/geometry"
	"github.com/saichandra-1/white-board/internal/transform"
)

const (
	accentColor    = "#2563eb"
	draftColor     = "#a78bfa"
	noteTextColor  = "#1f2937"
	lightCanvasBg  = "#ffffff"
	darkCanvasBg   = "#111827"
	handleRune     = '■'
	rotateRune     = '●'
	waypointRune   = '◆'
	strokeRune     = '•'
	flattenSteps   = 8
	textInsetCells = 1
)

type cell struct {
	ch   rune
	fg   string
	bg   string
	bold bool
}

// raster is the visible part of the board as a grid of terminal cells.
type raster struct {
	width  int
	height int
	cells  [][]cell
	canvas board.CanvasState
}

func newRaster(width, height int, canvas board.CanvasState, bg string) *raster {
	r := &raster{width: width, height: height, canvas: canvas}
	r.cells = make([][]cell, height)
	for y := range r.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{ch: ' ', bg: bg}
		}
		r.cells[y] = row
	}
	return r
}

func (r *raster) isValidPos(x, y int) bool {
	return y >= 0 && y < r.height && x >= 0 && x < r.width
}

func (r *raster) set(x, y int, ch rune, fg string) {
	if r.isValidPos(x, y) {
		c := &r.cells[y][x]
		c.ch, c.fg = ch, fg
	}
}

func (r *raster) paint(x, y int, bg string) {
	if r.isValidPos(x, y) {
		c := &r.cells[y][x]
		c.ch, c.bg = ' ', bg
	}
}

// at is the board point under the middle of cell (x, y).
func (r *raster) at(x, y int) board.Point {
	return r.canvas.ScreenToBoard(cellCenter(point{X: x, Y: y}))
}

func (r *raster) cellOf(p board.Point) point {
	return screenToCell(r.canvas.BoardToScreen(p))
}

// lines renders the grid with one lipgloss style per run of equal cells.
func (r *raster) lines() []string {
	type key struct {
		fg, bg string
		bold   bool
	}
	styles := make(map[key]lipgloss.Style)
	styleFor := func(k key) lipgloss.Style {
		s, ok := styles[k]
		if !ok {
			s = lipgloss.NewStyle().Bold(k.bold)
			if k.fg != "" {
				s = s.Foreground(lipgloss.Color(k.fg))
			}
			if k.bg != "" {
				s = s.Background(lipgloss.Color(k.bg))
			}
			styles[k] = s
		}
		return s
	}

	out := make([]string, r.height)
	for y, row := range r.cells {
		var sb strings.Builder
		var run []rune
		var cur key
		flush := func() {
			if len(run) > 0 {
				sb.WriteString(styleFor(cur).Render(string(run)))
				run = run[:0]
			}
		}
		for _, c := range row {
			k := key{fg: c.fg, bg: c.bg, bold: c.bold}
			if k != cur {
				flush()
				cur = k
			}
			run = append(run, c.ch)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

// insideFunc reports whether a point given in the element's local frame,
// relative to its center, is inside a w x h shape.
type insideFunc func(l board.Point, w, h float64) bool

func insideRect(l board.Point, w, h float64) bool {
	return math.Abs(l.X) <= w/2 && math.Abs(l.Y) <= h/2
}

func insideEllipse(l board.Point, w, h float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	nx, ny := l.X/(w/2), l.Y/(h/2)
	return nx*nx+ny*ny <= 1
}

// insideTriangle tests against the apex-up triangle that fills the box.
func insideTriangle(l board.Point, w, h float64) bool {
	if h <= 0 || math.Abs(l.Y) > h/2 {
		return false
	}
	return math.Abs(l.X) <= (l.Y+h/2)/h*w/2
}

func local(box transform.Box, p board.Point) board.Point {
	return p.Sub(box.Center()).Rotate(-box.Rotation)
}

// span returns the cell rectangle that covers box after rotation, clipped
// to the raster.
func (r *raster) span(box transform.Box) (x0, y0, x1, y1 int) {
	x0, y0 = r.width, r.height
	x1, y1 = -1, -1
	for _, p := range box.Corners() {
		c := r.cellOf(p)
		x0, y0 = min(x0, c.X), min(y0, c.Y)
		x1, y1 = max(x1, c.X), max(y1, c.Y)
	}
	return max(0, x0-1), max(0, y0-1), min(r.width-1, x1+1), min(r.height-1, y1+1)
}

// fillShape paints the cells inside box with fill and the cells on its
// outline with stroke. An empty fill leaves the interior alone.
func (r *raster) fillShape(box transform.Box, inside insideFunc, fill, stroke string) {
	in := func(x, y int) bool {
		return inside(local(box, r.at(x, y)), box.Width, box.Height)
	}
	x0, y0, x1, y1 := r.span(box)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !in(x, y) {
				continue
			}
			edge := !in(x-1, y) || !in(x+1, y) || !in(x, y-1) || !in(x, y+1)
			switch {
			case edge && stroke != "":
				r.paint(x, y, stroke)
			case fill != "":
				r.paint(x, y, fill)
			}
		}
	}
}

// drawText lays content out horizontally inside box, wrapped to its width
// in cells and centered vertically.
func (r *raster) drawText(box transform.Box, content string, align board.TextAlign, fg string, inset int) {
	zoom := r.canvas.Zoom
	cols := int(box.Width*zoom/cellWidth) - 2*inset
	rows := int(box.Height*zoom/cellHeight) - 2*inset
	if cols < 1 || rows < 1 {
		return
	}
	lines := wrapText(content, cols)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	center := r.cellOf(box.Center())
	left := center.X - cols/2
	top := center.Y - len(lines)/2
	for i, line := range lines {
		w := runewidth.StringWidth(line)
		x := left
		switch align {
		case board.AlignCenter:
			x = left + (cols-w)/2
		case board.AlignRight:
			x = left + cols - w
		}
		for _, ch := range line {
			r.set(x, top+i, ch, fg)
			x += max(1, runewidth.RuneWidth(ch))
		}
	}
}

// wrapText breaks text into lines no wider than width cells, splitting on
// spaces where it can.
func wrapText(text string, width int) []string {
	if width < 1 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					break
				}
				out = append(out, head)
				word = strings.TrimPrefix(word, head)
			}
			switch {
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return out
}

// drawPolyline connects consecutive board points with line cells and,
// when head is set, ends in an arrowhead.
func (r *raster) drawPolyline(pts []board.Point, fg string, head bool) {
	if len(pts) == 0 {
		return
	}
	cells := make([]point, 0, len(pts))
	for _, p := range pts {
		c := r.cellOf(p)
		if n := len(cells); n > 0 && cells[n-1] == c {
			continue
		}
		cells = append(cells, c)
	}
	if len(cells) == 1 {
		r.set(cells[0].X, cells[0].Y, strokeRune, fg)
		return
	}
	for i := 1; i < len(cells); i++ {
		r.drawLineSegment(cells[i-1], cells[i], fg)
	}
	if head {
		a, b := cells[len(cells)-2], cells[len(cells)-1]
		r.set(b.X, b.Y, arrowRune(b.X-a.X, b.Y-a.Y), fg)
	}
}

// drawLineSegment walks from a to b with Bresenham's algorithm.
func (r *raster) drawLineSegment(a, b point, fg string) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	ch := lineRune(b.X-a.X, b.Y-a.Y)
	x, y := a.X, a.Y
	e := dx + dy
	for {
		r.set(x, y, ch, fg)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func lineRune(dx, dy int) rune {
	// Cells are twice as tall as they are wide.
	ax, ay := abs(dx), 2*abs(dy)
	switch {
	case ay < ax/2:
		return '─'
	case ax < ay/2:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func arrowRune(dx, dy int) rune {
	ax, ay := abs(dx), 2*abs(dy)
	switch {
	case ay < ax/2 && dx >= 0:
		return '▶'
	case ay < ax/2:
		return '◀'
	case ax < ay/2 && dy >= 0:
		return '▼'
	case ax < ay/2:
		return '▲'
	case dx > 0 && dy > 0:
		return '◢'
	case dx > 0:
		return '◥'
	case dy > 0:
		return '◣'
	default:
		return '◤'
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// placePoints maps points stored relative to e onto box, which may be a
// live preview of e with another size or rotation.
func placePoints(e board.Element, box transform.Box, rel []board.Point) []board.Point {
	sx, sy := 1.0, 1.0
	if e.Width > 0 {
		sx = box.Width / e.Width
	}
	if e.Height > 0 {
		sy = box.Height / e.Height
	}
	center := box.Center()
	out := make([]board.Point, len(rel))
	for i, p := range rel {
		q := board.Point{X: box.X + p.X*sx, Y: box.Y + p.Y*sy}
		out[i] = q.Sub(center).Rotate(box.Rotation).Add(center)
	}
	return out
}

// shade darkens a hex color for outlines. Colors that do not parse fall
// back to the given default.
func shade(hex, fallback string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, math.Max(0, l-0.25)).Clamped().Hex()
}

func canvasBackground(t board.Theme) string {
	if t == board.ThemeDark {
		return darkCanvasBg
	}
	return lightCanvasBg
}

// drawElement paints e at box, its committed box or a live preview.
func (r *raster) drawElement(e board.Element, box transform.Box, text string) {
	switch d := e.Data.(type) {
	case board.StickyNoteData:
		r.fillShape(box, insideRect, d.Color, shade(d.Color, "#d97706"))
		r.drawText(box, text, board.AlignLeft, noteTextColor, textInsetCells)

	case board.ShapeData:
		switch d.ShapeType {
		case board.ShapeRectangle:
			r.fillShape(box, insideRect, d.FillColor, d.StrokeColor)
		case board.ShapeCircle:
			r.fillShape(box, insideEllipse, d.FillColor, d.StrokeColor)
		case board.ShapeTriangle:
			r.fillShape(box, insideTriangle, d.FillColor, d.StrokeColor)
		case board.ShapeArrow:
			pts := geometry.DedupePoints(d.Points)
			if len(pts) >= 2 {
				flat := geometry.BuildSmoothPath(pts).Flatten(flattenSteps)
				r.drawPolyline(placePoints(e, box, flat), d.StrokeColor, true)
			}
		}

	case board.TextBoxData:
		r.drawText(box, text, d.TextAlign, d.Color, 0)

	case board.DrawingData:
		for _, p := range d.Paths {
			r.drawPolyline(placePoints(e, box, p.Points), p.StrokeColor, false)
		}
	}
}

// drawHandles marks the resize grips and the rotate grip of a selected
// element.
func (r *raster) drawHandles(box transform.Box) {
	for _, h := range transform.Handles {
		c := r.cellOf(box.HandlePoint(h))
		r.set(c.X, c.Y, handleRune, accentColor)
	}
	c := r.cellOf(box.RotateHandlePoint())
	r.set(c.X, c.Y, rotateRune, accentColor)
}

// content is the text an element shows, the edit buffer while it is being
// edited.
func (m *model) content(e board.Element) string {
	if m.mode == ModeEditing && e.ID == m.editID {
		return m.editText + "█"
	}
	switch d := e.Data.(type) {
	case board.StickyNoteData:
		return d.Content
	case board.TextBoxData:
		return d.Content
	}
	return ""
}

// renderCanvas draws the visible board.
func (m *model) renderCanvas(width, height int) []string {
	canvas := m.board.Canvas()
	r := newRaster(width, height, canvas, canvasBackground(m.theme))

	els := board.ByZIndex(m.board.Elements())
	for _, e := range els {
		r.drawElement(e, m.views.preview(e), m.content(e))
	}
	for _, e := range els {
		if canvas.IsSelected(e.ID) {
			r.drawHandles(m.views.preview(e))
		}
	}

	if m.arrow != nil {
		if box, rel, ok := m.arrow.Outline(); ok {
			pts := make([]board.Point, len(rel))
			for i, p := range rel {
				pts[i] = p.Add(box.Origin())
			}
			r.drawPolyline(geometry.BuildSmoothPath(pts).Flatten(flattenSteps), draftColor, true)
		}
		for _, p := range m.arrow.Committed() {
			c := r.cellOf(p)
			r.set(c.X, c.Y, waypointRune, draftColor)
		}
	}

	if r.isValidPos(m.cursorX, m.cursorY) {
		c := &r.cells[m.cursorY][m.cursorX]
		if c.ch == ' ' {
			c.ch = '+'
		}
		c.fg, c.bold = accentColor, true
	}
	return r.lines()
}

// grip is what sits under a cell of the selection overlay.
type grip struct {
	id     string
	handle transform.Handle
	rotate bool
}

// gripAt finds the resize or rotate grip of a selected element at cell c.
// Later selections win, matching the order they are drawn in.
func (m *model) gripAt(c point) (grip, bool) {
	canvas := m.board.Canvas()
	els := board.ByZIndex(m.board.Elements())
	for i := len(els) - 1; i >= 0; i-- {
		e := els[i]
		if !canvas.IsSelected(e.ID) {
			continue
		}
		box := m.views.preview(e)
		if m.cellAt(box.RotateHandlePoint()) == c {
			return grip{id: e.ID, rotate: true}, true
		}
		for _, h := range transform.Handles {
			if m.cellAt(box.HandlePoint(h)) == c {
				return grip{id: e.ID, handle: h}, true
			}
		}
	}
	return grip{}, false
}

// elementAt returns the topmost element under cell c.
func (m *model) elementAt(c point) (board.Element, bool) {
	return board.TopmostAt(m.board.Elements(), m.boardPointAt(c))
}
