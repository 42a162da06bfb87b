// Package board defines the whiteboard data model: the element union, the
// partial patches applied to it, the canvas view state and the persisted
// snapshot.
package board

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/bytedance/sonic"

	"github.com/saichandra-1/white-board/internal/geometry"
)

type Point = geometry.Point

type Kind string

const (
	KindStickyNote Kind = "stickyNote"
	KindShape      Kind = "shape"
	KindTextBox    Kind = "textbox"
	KindDrawing    Kind = "drawing"
)

type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeTriangle  ShapeType = "triangle"
	ShapeArrow     ShapeType = "arrow"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

var (
	ErrUnknownKind = errors.New("unknown element type")
	ErrMissingData = errors.New("element has no data")
)

// Data is the kind-specific payload of an element. The set of
// implementations is closed; callers switch over the concrete types.
type Data interface {
	Kind() Kind
	clone() Data
}

type StickyNoteData struct {
	Content  string  `json:"content"`
	Color    string  `json:"color"`
	FontSize float64 `json:"fontSize"`
}

type ShapeData struct {
	ShapeType   ShapeType `json:"shapeType"`
	FillColor   string    `json:"fillColor"`
	StrokeColor string    `json:"strokeColor"`
	StrokeWidth float64   `json:"strokeWidth"`
	// Points is set for arrows only, relative to the element origin.
	Points []Point `json:"points,omitempty"`
}

type TextBoxData struct {
	Content    string    `json:"content"`
	FontSize   float64   `json:"fontSize"`
	FontFamily string    `json:"fontFamily"`
	Color      string    `json:"color"`
	TextAlign  TextAlign `json:"textAlign"`
}

type DrawingPath struct {
	Points      []Point `json:"points"`
	StrokeColor string  `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
}

type DrawingData struct {
	Paths []DrawingPath `json:"paths"`
}

func (StickyNoteData) Kind() Kind { return KindStickyNote }
func (ShapeData) Kind() Kind      { return KindShape }
func (TextBoxData) Kind() Kind    { return KindTextBox }
func (DrawingData) Kind() Kind    { return KindDrawing }

func (d StickyNoteData) clone() Data { return d }
func (d TextBoxData) clone() Data    { return d }

func (d ShapeData) clone() Data {
	d.Points = clonePoints(d.Points)
	return d
}

func (d DrawingData) clone() Data {
	if d.Paths == nil {
		return d
	}
	paths := make([]DrawingPath, len(d.Paths))
	for i, p := range d.Paths {
		p.Points = clonePoints(p.Points)
		paths[i] = p
	}
	d.Paths = paths
	return d
}

func clonePoints(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

// Element is one object on the board. Its kind is carried by Data.
type Element struct {
	ID       string
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64
	ZIndex   int
	Data     Data
}

func (e Element) Kind() Kind {
	if e.Data == nil {
		return ""
	}
	return e.Data.Kind()
}

// Box returns the unrotated element box.
func (e Element) Box() geometry.Rect {
	return geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Clone returns a deep copy; slices inside Data are not shared.
func (e Element) Clone() Element {
	if e.Data != nil {
		e.Data = e.Data.clone()
	}
	return e
}

// AspectRatio reports the width/height ratio the element must keep while
// resizing, if any.
func (e Element) AspectRatio() (float64, bool) {
	if d, ok := e.Data.(ShapeData); ok && d.ShapeType == ShapeCircle {
		return 1, true
	}
	return 0, false
}

func CloneElements(els []Element) []Element {
	if els == nil {
		return nil
	}
	out := make([]Element, len(els))
	for i, e := range els {
		out[i] = e.Clone()
	}
	return out
}

// Contains reports whether the board point p lies inside the element's
// rotated box.
func (e Element) Contains(p Point) bool {
	return e.Box().Contains(p, e.Rotation)
}

// ByZIndex returns a copy of els in paint order, lowest zIndex first.
// Elements sharing a zIndex keep their list order.
func ByZIndex(els []Element) []Element {
	out := slices.Clone(els)
	slices.SortStableFunc(out, func(a, b Element) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return out
}

// TopmostAt returns the last-painted element containing p.
func TopmostAt(els []Element, p Point) (Element, bool) {
	sorted := ByZIndex(els)
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Contains(p) {
			return sorted[i], true
		}
	}
	return Element{}, false
}

// IndexOf returns the position of the element with the given id, or -1.
func IndexOf(els []Element, id string) int {
	for i, e := range els {
		if e.ID == id {
			return i
		}
	}
	return -1
}

type elementJSON struct {
	ID       string          `json:"id"`
	Type     Kind            `json:"type"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Rotation float64         `json:"rotation"`
	ZIndex   int             `json:"zIndex"`
	Data     json.RawMessage `json:"data"`
}

func (e Element) MarshalJSON() ([]byte, error) {
	if e.Data == nil {
		return nil, fmt.Errorf("element %s: %w", e.ID, ErrMissingData)
	}
	data, err := sonic.ConfigStd.Marshal(e.Data)
	if err != nil {
		return nil, fmt.Errorf("element %s: %w", e.ID, err)
	}
	return sonic.ConfigStd.Marshal(elementJSON{
		ID:       e.ID,
		Type:     e.Data.Kind(),
		X:        e.X,
		Y:        e.Y,
		Width:    e.Width,
		Height:   e.Height,
		Rotation: e.Rotation,
		ZIndex:   e.ZIndex,
		Data:     data,
	})
}

func (e *Element) UnmarshalJSON(b []byte) error {
	var raw elementJSON
	if err := sonic.ConfigStd.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return fmt.Errorf("element %s: %w", raw.ID, ErrMissingData)
	}
	data, err := decodeData(raw.Type, raw.Data)
	if err != nil {
		return fmt.Errorf("element %s: %w", raw.ID, err)
	}
	*e = Element{
		ID:       raw.ID,
		X:        raw.X,
		Y:        raw.Y,
		Width:    raw.Width,
		Height:   raw.Height,
		Rotation: raw.Rotation,
		ZIndex:   raw.ZIndex,
		Data:     data,
	}
	return nil
}

func decodeData(kind Kind, b []byte) (Data, error) {
	switch kind {
	case KindStickyNote:
		var d StickyNoteData
		err := sonic.ConfigStd.Unmarshal(b, &d)
		return d, err
	case KindShape:
		var d ShapeData
		err := sonic.ConfigStd.Unmarshal(b, &d)
		return d, err
	case KindTextBox:
		var d TextBoxData
		err := sonic.ConfigStd.Unmarshal(b, &d)
		return d, err
	case KindDrawing:
		var d DrawingData
		err := sonic.ConfigStd.Unmarshal(b, &d)
		return d, err
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}
