package board

import "slices"

type Tool string

const (
	ToolSelect    Tool = "select"
	ToolNote      Tool = "note"
	ToolDraw      Tool = "draw"
	ToolText      Tool = "text"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolTriangle  Tool = "triangle"
	ToolArrow     Tool = "arrow"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolNote, ToolDraw, ToolText, ToolRectangle, ToolCircle, ToolTriangle, ToolArrow}

func (t Tool) Valid() bool {
	return slices.Contains(Tools, t)
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// CanvasState is the view over the board. It is never part of undo
// history.
type CanvasState struct {
	Zoom               float64   `json:"zoom"`
	Pan                Point     `json:"pan"`
	SelectedElementIDs []string  `json:"selectedElementIds"`
	Clipboard          []Element `json:"clipboard"`
}

func DefaultCanvasState() CanvasState {
	return CanvasState{
		Zoom:               1,
		SelectedElementIDs: []string{},
		Clipboard:          []Element{},
	}
}

// Normalized fills unset fields with their defaults.
func (c CanvasState) Normalized() CanvasState {
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
	if c.SelectedElementIDs == nil {
		c.SelectedElementIDs = []string{}
	}
	if c.Clipboard == nil {
		c.Clipboard = []Element{}
	}
	return c
}

func (c CanvasState) Clone() CanvasState {
	c.SelectedElementIDs = slices.Clone(c.SelectedElementIDs)
	c.Clipboard = CloneElements(c.Clipboard)
	return c
}

func (c CanvasState) IsSelected(id string) bool {
	return slices.Contains(c.SelectedElementIDs, id)
}

// Primary returns the first selected id.
func (c CanvasState) Primary() (string, bool) {
	if len(c.SelectedElementIDs) == 0 {
		return "", false
	}
	return c.SelectedElementIDs[0], true
}

// ScreenToBoard converts a viewport position into board space.
func (c CanvasState) ScreenToBoard(p Point) Point {
	return p.Sub(c.Pan).Scale(1 / c.Zoom)
}

func (c CanvasState) BoardToScreen(p Point) Point {
	return p.Scale(c.Zoom).Add(c.Pan)
}

// ZoomAt scales the view by factor while keeping the board point under
// the screen position at fixed.
func (c CanvasState) ZoomAt(at Point, factor float64) CanvasState {
	zoom := min(MaxZoom, max(MinZoom, c.Zoom*factor))
	anchor := c.ScreenToBoard(at)
	c.Zoom = zoom
	c.Pan = at.Sub(anchor.Scale(zoom))
	return c
}

// CanvasPatch is a partial canvas update. Nil fields are left alone.
type CanvasPatch struct {
	Zoom               *float64
	Pan                *Point
	SelectedElementIDs *[]string
	Clipboard          *[]Element
}

func (p CanvasPatch) Apply(c CanvasState) CanvasState {
	if p.Zoom != nil {
		c.Zoom = *p.Zoom
	}
	if p.Pan != nil {
		c.Pan = *p.Pan
	}
	if p.SelectedElementIDs != nil {
		c.SelectedElementIDs = slices.Clone(*p.SelectedElementIDs)
	}
	if p.Clipboard != nil {
		c.Clipboard = CloneElements(*p.Clipboard)
	}
	return c
}
