package main

import "github.com/saichandra-1/white-board/internal/board"

// handleNavigation moves the cursor, pans or zooms. It reports whether key
// was one of its bindings.
func (m *model) handleNavigation(key string) bool {
	switch key {
	case "h", "left", "l", "right", "k", "up", "j", "down":
		m.handleCursorMove(key, 1)
	case "H", "shift+left", "L", "shift+right", "K", "shift+up", "J", "shift+down":
		m.handlePan(key, panStep)
	case "+", "=":
		m.zoomAt(point{X: m.cursorX, Y: m.cursorY}, zoomInFactor)
	case "-", "_":
		m.zoomAt(point{X: m.cursorX, Y: m.cursorY}, zoomOutFactor)
	case "0":
		zoom := 1.0
		pan := board.Point{}
		m.board.UpdateCanvasState(board.CanvasPatch{Zoom: &zoom, Pan: &pan})
	default:
		return false
	}
	if m.gesture != gestureNone {
		m.pointerMove(point{X: m.cursorX, Y: m.cursorY})
	}
	return true
}

// handlePan scrolls the view so the board moves opposite to the key, the
// way the cursor would travel across it.
func (m *model) handlePan(key string, speed int) {
	pan := m.board.Canvas().Pan
	dx := float64(speed * cellWidth)
	dy := float64(speed * cellHeight / 2)
	switch key {
	case "H", "shift+left":
		pan.X += dx
	case "L", "shift+right":
		pan.X -= dx
	case "K", "shift+up":
		pan.Y += dy
	case "J", "shift+down":
		pan.Y -= dy
	}
	m.board.UpdateCanvasState(board.CanvasPatch{Pan: &pan})
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left":
		m.cursorX -= speed
	case "l", "right":
		m.cursorX += speed
	case "k", "up":
		m.cursorY -= speed
	case "j", "down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

// zoomAt scales the view by factor about cell c, keeping the board point
// under it in place. Zoom stays within [board.MinZoom, board.MaxZoom].
func (m *model) zoomAt(c point, factor float64) {
	canvas := m.board.Canvas()
	next := canvas.ZoomAt(cellCenter(c), factor)
	if next.Zoom == canvas.Zoom && next.Pan == canvas.Pan {
		return
	}
	m.board.UpdateCanvasState(board.CanvasPatch{Zoom: &next.Zoom, Pan: &next.Pan})
}
