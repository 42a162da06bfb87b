package main

import (
	"time"

	"github.com/saichandra-1/white-board/internal/board"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeTitle
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpSavePNG
	FileOpSavePDF
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmClearBoard
	ConfirmOverwriteFile
)

// gesture is what the held mouse button is doing.
type gesture int

const (
	gestureNone gesture = iota
	gestureTransform
	gesturePan
	gestureStroke
)

// A terminal cell stands for cellWidth x cellHeight screen pixels at zoom 1.
const (
	cellWidth  = 8
	cellHeight = 16
)

const (
	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
	panStep       = 4 // cells per pan key press
)

// Two clicks count as a double click when they land this close in time
// and space.
const (
	doubleClickInterval = 400 * time.Millisecond
	doubleClickCells    = 1
)

// toolKeys maps the toolbar shortcuts to their tools.
var toolKeys = map[string]board.Tool{
	"v": board.ToolSelect,
	"n": board.ToolNote,
	"d": board.ToolDraw,
	"t": board.ToolText,
	"r": board.ToolRectangle,
	"c": board.ToolCircle,
	"3": board.ToolTriangle,
	"a": board.ToolArrow,
}
