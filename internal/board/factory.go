package board

import (
	"github.com/google/uuid"
)

// Default styling for newly placed elements.
const (
	NoteColor    = "#fef3c7"
	NoteFontSize = 14

	TextFontFamily = "Arial, sans-serif"
	TextFontSize   = 16
	TextColorLight = "#111827"
	TextColorDark  = "#FFFFFF"

	ArrowStroke      = "#8b5cf6"
	ArrowFill        = "#f3e8ff"
	ArrowStrokeWidth = 2

	DrawingStrokeLight = "#ef4444"
	DrawingStrokeDark  = "#fca5a5"
	DrawingStrokeWidth = 3
)

func NewID() string {
	return uuid.NewString()
}

// NewStickyNote centers a 200x150 note on at.
func NewStickyNote(at Point, zIndex int) Element {
	return Element{
		ID:     NewID(),
		X:      at.X - 100,
		Y:      at.Y - 75,
		Width:  200,
		Height: 150,
		ZIndex: zIndex,
		Data: StickyNoteData{
			Content:  "New note",
			Color:    NoteColor,
			FontSize: NoteFontSize,
		},
	}
}

// NewShape centers a closed shape on at. Arrows are built from a draft
// instead and yield ok=false here.
func NewShape(st ShapeType, at Point, zIndex int) (Element, bool) {
	var w, h float64
	var fill, stroke string
	switch st {
	case ShapeRectangle:
		w, h, fill, stroke = 150, 100, "#dbeafe", "#3b82f6"
	case ShapeCircle:
		w, h, fill, stroke = 120, 120, "#fecaca", "#ef4444"
	case ShapeTriangle:
		w, h, fill, stroke = 150, 100, "#dcfce7", "#22c55e"
	default:
		return Element{}, false
	}
	return Element{
		ID:     NewID(),
		X:      at.X - w/2,
		Y:      at.Y - h/2,
		Width:  w,
		Height: h,
		ZIndex: zIndex,
		Data: ShapeData{
			ShapeType:   st,
			FillColor:   fill,
			StrokeColor: stroke,
			StrokeWidth: 2,
		},
	}, true
}

func NewTextBox(at Point, zIndex int, theme Theme) Element {
	color := TextColorLight
	if theme == ThemeDark {
		color = TextColorDark
	}
	return Element{
		ID:     NewID(),
		X:      at.X - 100,
		Y:      at.Y - 25,
		Width:  200,
		Height: 50,
		ZIndex: zIndex,
		Data: TextBoxData{
			Content:    "New Text",
			FontSize:   TextFontSize,
			FontFamily: TextFontFamily,
			Color:      color,
			TextAlign:  AlignCenter,
		},
	}
}

// ShapeForTool maps a placement tool to the shape it creates.
func ShapeForTool(t Tool) (ShapeType, bool) {
	switch t {
	case ToolRectangle:
		return ShapeRectangle, true
	case ToolCircle:
		return ShapeCircle, true
	case ToolTriangle:
		return ShapeTriangle, true
	}
	return "", false
}

// SampleNotes returns the onboarding notes placed on an empty board.
func SampleNotes() []Element {
	note := func(x, y, rot float64, z int, content, color string) Element {
		return Element{
			ID:       NewID(),
			X:        x,
			Y:        y,
			Width:    200,
			Height:   150,
			Rotation: rot,
			ZIndex:   z,
			Data:     StickyNoteData{Content: content, Color: color, FontSize: NoteFontSize},
		}
	}
	return []Element{
		note(100, 100, 0, 1, "Welcome to the whiteboard!\n\nPress enter on a note to edit it.", "#fef3c7"),
		note(350, 150, 358, 2, "Keyboard shortcuts:\n• n - New note\n• v - Select tool\n• d - Draw tool", "#dbeafe"),
		note(200, 320, 1, 3, "Drag notes around\nResize with corner handles\nUndo/Redo with Ctrl+Z/Y", "#dcfce7"),
	}
}
