package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/draft"
	"github.com/saichandra-1/white-board/internal/transform"
)

// handleMouse routes on the event action. A drag with the button held
// arrives as a motion event whose Type still names the button.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	c := point{X: msg.X, Y: msg.Y}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.zoomAt(c, zoomInFactor)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.zoomAt(c, zoomOutFactor)
		return m, nil
	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if c.Y >= m.canvasHeight() {
			m.clickToolBar(c)
			return m, nil
		}
		m.cursorX, m.cursorY = c.X, c.Y
		m.press(c, msg.Shift)
	case tea.MouseActionMotion:
		if c.Y < m.canvasHeight() {
			m.cursorX, m.cursorY = c.X, c.Y
		}
		m.pointerMove(c)
	case tea.MouseActionRelease:
		m.pointerUp(c)
	}
	return m, nil
}

func (m *model) clickToolBar(c point) {
	if c.Y != m.canvasHeight() {
		return
	}
	for _, item := range toolBarItems() {
		if c.X >= item.start && c.X < item.end {
			m.setTool(item.tool)
			return
		}
	}
}

// tap is a press and release at the same cell, used by the keyboard.
func (m *model) tap(c point) {
	m.press(c, false)
	m.pointerUp(c)
}

// isDoubleClick records a click at c and reports whether it completes a
// double click.
func (m *model) isDoubleClick(c point) bool {
	now := m.now()
	double := !m.lastClick.IsZero() &&
		now.Sub(m.lastClick) <= doubleClickInterval &&
		abs(c.X-m.lastClickAt.X) <= doubleClickCells &&
		abs(c.Y-m.lastClickAt.Y) <= doubleClickCells
	m.lastClick, m.lastClickAt = now, c
	if double {
		m.lastClick = time.Time{}
	}
	return double
}

// press starts whatever the current tool does on a button press at c.
func (m *model) press(c point, shift bool) {
	if m.gesture != gestureNone {
		m.pointerUp(c)
	}
	double := m.isDoubleClick(c)
	p := m.boardPointAt(c)
	m.errorMessage = ""

	switch tool := m.board.Tool(); tool {
	case board.ToolSelect:
		m.pressSelect(c, shift, double)

	case board.ToolNote:
		m.board.SelectElements()
		m.board.AddElement(board.NewStickyNote(p, m.board.NextZIndex()))

	case board.ToolText:
		m.board.SelectElements()
		m.board.AddElement(board.NewTextBox(p, m.board.NextZIndex(), m.theme))

	case board.ToolRectangle, board.ToolCircle, board.ToolTriangle:
		st, _ := board.ShapeForTool(tool)
		if el, ok := board.NewShape(st, p, m.board.NextZIndex()); ok {
			m.board.SelectElements()
			m.board.AddElement(el)
		}

	case board.ToolDraw:
		stroke, el := draft.BeginFreehand(p, m.board.NextZIndex(), m.theme, m.now())
		m.board.AddElement(el)
		m.stroke = stroke
		m.gesture = gestureStroke
		m.gestureID = el.ID

	case board.ToolArrow:
		switch {
		case m.arrow == nil:
			m.arrow = draft.NewArrow(p)
		case double:
			m.finalizeArrow()
		default:
			m.arrow.Click(p)
		}
	}
}

func (m *model) pressSelect(c point, shift, double bool) {
	if g, ok := m.gripAt(c); ok && !shift {
		m.beginGrip(g, c)
		return
	}

	e, ok := m.elementAt(c)
	if !ok {
		m.board.SelectElements()
		m.gesture = gesturePan
		m.panFrom = c
		m.panStart = m.board.Canvas().Pan
		return
	}

	canvas := m.board.Canvas()
	switch {
	case shift:
		ids := make([]string, 0, len(canvas.SelectedElementIDs)+1)
		for _, id := range canvas.SelectedElementIDs {
			if id != e.ID {
				ids = append(ids, id)
			}
		}
		if !canvas.IsSelected(e.ID) {
			ids = append(ids, e.ID)
		}
		m.board.SelectElements(ids...)
	case double:
		m.board.SelectElements(e.ID)
		m.startEditing()
	default:
		if !canvas.IsSelected(e.ID) {
			m.board.SelectElements(e.ID)
		}
		m.beginDrag(e, c)
	}
}

// sessionOptions carries the view zoom and the element's aspect lock into
// a transform session.
func (m *model) sessionOptions(e board.Element) transform.Options {
	opts := transform.Options{Zoom: m.board.Canvas().Zoom, MinSize: transform.MinSize}
	if r, ok := e.AspectRatio(); ok {
		opts.Lock = transform.LockRatio(r)
	}
	return opts
}

func (m *model) beginDrag(e board.Element, c point) {
	ctl := m.views.controller(e.ID)
	if err := ctl.BeginDrag(transform.BoxOf(e), cellCenter(c), m.sessionOptions(e)); err != nil {
		m.log.WithError(err).WithField("id", e.ID).Debug("drag not started")
		return
	}
	m.gesture = gestureTransform
	m.gestureID = e.ID
}

func (m *model) beginGrip(g grip, c point) {
	e, ok := m.board.Element(g.id)
	if !ok {
		return
	}
	box := transform.BoxOf(e)
	ctl := m.views.controller(e.ID)
	var err error
	if g.rotate {
		center := m.board.Canvas().BoardToScreen(box.Center())
		err = ctl.BeginRotate(box, center, cellCenter(c))
	} else {
		err = ctl.BeginResize(box, g.handle, cellCenter(c), m.sessionOptions(e))
	}
	if err != nil {
		m.log.WithError(err).WithField("id", e.ID).Debug("transform not started")
		return
	}
	m.gesture = gestureTransform
	m.gestureID = e.ID
}

// pointerMove feeds a pointer position to the active gesture, or to the
// arrow preview when no button is held.
func (m *model) pointerMove(c point) {
	switch m.gesture {
	case gestureTransform:
		m.views.bus.Dispatch(transform.PointerEvent{Kind: transform.PointerMove, At: cellCenter(c)})

	case gesturePan:
		pan := m.panStart.Add(cellCenter(c).Sub(cellCenter(m.panFrom)))
		if pan != m.board.Canvas().Pan {
			m.board.UpdateCanvasState(board.CanvasPatch{Pan: &pan})
		}

	case gestureStroke:
		current, ok := m.board.Element(m.gestureID)
		if !ok {
			m.cancelGesture()
			return
		}
		if patch, ok := m.stroke.Sample(current, m.boardPointAt(c), m.now()); ok {
			m.board.UpdateElement(m.gestureID, patch)
		}

	default:
		if m.arrow != nil {
			m.arrow.Hover(m.boardPointAt(c), m.now())
		}
	}
}

// pointerUp ends the gesture. A transform session commits its single
// patch here.
func (m *model) pointerUp(c point) {
	switch m.gesture {
	case gestureTransform:
		m.views.bus.Dispatch(transform.PointerEvent{Kind: transform.PointerUp, At: cellCenter(c)})
	case gestureStroke:
		m.stroke.End()
		m.stroke = nil
	}
	m.gesture = gestureNone
	m.gestureID = ""
}

// cancelGesture abandons the gesture without committing a transform.
func (m *model) cancelGesture() {
	switch m.gesture {
	case gestureTransform:
		if ctl, ok := m.views.active(); ok {
			ctl.Cancel()
		}
	case gestureStroke:
		if m.stroke != nil {
			m.stroke.End()
		}
		m.stroke = nil
	}
	m.gesture = gestureNone
	m.gestureID = ""
}
