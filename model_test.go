package main

import (
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/persist"
	"github.com/saichandra-1/white-board/internal/whiteboard"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestModel(t *testing.T) (model, *clock, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	clk := &clock{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}

	b := whiteboard.New(whiteboard.Options{Store: persist.Nop{}, Logger: logger, Now: clk.now})
	config := defaultConfig()
	config.SaveDirectory = t.TempDir()
	m := initialModel(b, config, logger)
	m.now = clk.now
	t.Cleanup(m.close)

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, clk, hook
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// The mouse helpers build the events bubbletea decodes from the terminal:
// a motion with the left button held keeps Type MouseLeft.

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Type: tea.MouseLeft, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func shiftPress(x, y int) tea.MouseMsg {
	msg := press(x, y)
	msg.Shift = true
	return msg
}

func drag(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Type: tea.MouseLeft, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
}

func hover(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Type: tea.MouseMotion, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Type: tea.MouseRelease, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}
}

func wheel(x, y int, button tea.MouseButton) tea.MouseMsg {
	typ := tea.MouseWheelUp
	if button == tea.MouseButtonWheelDown {
		typ = tea.MouseWheelDown
	}
	return tea.MouseMsg{X: x, Y: y, Type: typ, Button: button, Action: tea.MouseActionPress}
}

func click(x, y int) []tea.Msg {
	return []tea.Msg{press(x, y), release(x, y)}
}

func onlyElement(t *testing.T, m model) board.Element {
	t.Helper()
	els := m.board.Elements()
	if len(els) != 1 {
		t.Fatalf("got %d elements, want 1", len(els))
	}
	return els[0]
}

func TestNoteToolPlacesNoteUnderPointer(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("n"))
	m = send(t, m, click(20, 10)...)

	e := onlyElement(t, m)
	if e.Kind() != board.KindStickyNote {
		t.Fatalf("kind = %v, want sticky note", e.Kind())
	}
	// Cell (20,10) is centred on screen pixel (164,168).
	if e.X != 64 || e.Y != 93 {
		t.Errorf("note at (%v,%v), want (64,93)", e.X, e.Y)
	}
	if m.board.Tool() != board.ToolNote {
		t.Errorf("tool = %v, want note to stay active", m.board.Tool())
	}
}

func TestDragMovesElementWithOneHistoryEntry(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{X: 164, Y: 168}, 1))

	m = send(t, m, press(20, 10), drag(22, 11), drag(25, 12))
	if got := onlyElement(t, m); got.X != 64 || got.Y != 93 {
		t.Fatalf("element moved to (%v,%v) before release", got.X, got.Y)
	}
	m = send(t, m, release(25, 12))

	e := onlyElement(t, m)
	if e.X != 104 || e.Y != 125 {
		t.Errorf("after drag at (%v,%v), want (104,125)", e.X, e.Y)
	}
	if diff := cmp.Diff([]string{e.ID}, m.board.Canvas().SelectedElementIDs); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	m = send(t, m, runes("u"))
	if e := onlyElement(t, m); e.X != 64 || e.Y != 93 {
		t.Errorf("after undo at (%v,%v), want (64,93)", e.X, e.Y)
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{X: 164, Y: 168}, 1))

	m = send(t, m, press(20, 10), drag(30, 15), tea.KeyMsg{Type: tea.KeyEscape}, release(30, 15))

	if e := onlyElement(t, m); e.X != 64 || e.Y != 93 {
		t.Errorf("cancelled drag moved element to (%v,%v)", e.X, e.Y)
	}
	if m.gesture != gestureNone {
		t.Errorf("gesture = %v after escape", m.gesture)
	}
}

func TestResizeGripFollowsHeldButton(t *testing.T) {
	m, _, _ := newTestModel(t)
	note := board.NewStickyNote(board.Point{X: 164, Y: 168}, 1)
	m.board.AddElement(note)
	m.board.SelectElements(note.ID)

	// The south-east grip at (264,243) falls in cell (33,15).
	m = send(t, m, press(33, 15), drag(35, 16), drag(38, 18), release(38, 18))

	e := onlyElement(t, m)
	want := []float64{64, 93, 240, 198}
	if diff := cmp.Diff(want, []float64{e.X, e.Y, e.Width, e.Height}); diff != "" {
		t.Errorf("resized box mismatch (-want +got):\n%s", diff)
	}
	if n := len(m.board.Elements()); n != 1 {
		t.Errorf("resize created elements, got %d", n)
	}
}

func TestRotateGripFollowsHeldButton(t *testing.T) {
	m, _, _ := newTestModel(t)
	note := board.NewStickyNote(board.Point{X: 164, Y: 168}, 1)
	m.board.AddElement(note)
	m.board.SelectElements(note.ID)

	// The rotate grip sits in cell (20,4), straight above the center
	// (164,168); cell (32,10) is straight to its right.
	m = send(t, m, press(20, 4), drag(26, 5), drag(32, 10), release(32, 10))

	e := onlyElement(t, m)
	if e.Rotation != 90 {
		t.Errorf("rotation = %v, want 90", e.Rotation)
	}
	if e.X != 64 || e.Y != 93 {
		t.Errorf("rotate moved the note to (%v,%v)", e.X, e.Y)
	}
}

func TestHoverDoesNotDrag(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{X: 164, Y: 168}, 1))

	m = send(t, m, click(20, 10)...)
	m = send(t, m, hover(25, 12), hover(30, 14))

	if e := onlyElement(t, m); e.X != 64 || e.Y != 93 {
		t.Errorf("hover moved the note to (%v,%v)", e.X, e.Y)
	}
	if m.cursorX != 30 || m.cursorY != 14 {
		t.Errorf("cursor = (%d,%d), want it to follow the pointer", m.cursorX, m.cursorY)
	}
}

func TestRightButtonIsIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("n"))
	m = send(t, m, tea.MouseMsg{X: 20, Y: 10, Type: tea.MouseRight, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})

	if n := len(m.board.Elements()); n != 0 {
		t.Errorf("right click placed %d elements", n)
	}
}

func TestArrowClicksThenEnterCreatesArrow(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("a"))
	m = send(t, m, click(10, 5)...)
	m = send(t, m, click(30, 5)...)
	if len(m.board.Elements()) != 0 {
		t.Fatal("arrow added before it was finished")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	e := onlyElement(t, m)
	data, ok := e.Data.(board.ShapeData)
	if !ok || data.ShapeType != board.ShapeArrow {
		t.Fatalf("data = %#v, want an arrow", e.Data)
	}
	want := []float64{74, 78, 180, 20}
	if diff := cmp.Diff(want, []float64{e.X, e.Y, e.Width, e.Height}); diff != "" {
		t.Errorf("arrow box mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]board.Point{{X: 10, Y: 10}, {X: 170, Y: 10}}, data.Points); diff != "" {
		t.Errorf("arrow points mismatch (-want +got):\n%s", diff)
	}
	if m.arrow != nil {
		t.Error("draft kept after finalizing")
	}
	if diff := cmp.Diff([]string{e.ID}, m.board.Canvas().SelectedElementIDs); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestArrowDoubleClickFinalizes(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("a"))
	m = send(t, m, click(10, 5)...)
	m = send(t, m, click(30, 5)...)
	m = send(t, m, click(30, 5)...)

	if e := onlyElement(t, m); e.Kind() != board.KindShape {
		t.Errorf("kind = %v, want shape", e.Kind())
	}
	if m.arrow != nil {
		t.Error("draft kept after double click")
	}
}

func TestEscapeDiscardsArrowDraft(t *testing.T) {
	m, _, hook := newTestModel(t)
	m = send(t, m, runes("a"))
	m = send(t, m, click(10, 5)...)
	m = send(t, m, click(30, 5)...)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEscape})

	if m.arrow != nil {
		t.Fatal("draft kept after escape")
	}
	if n := len(m.board.Elements()); n != 0 {
		t.Errorf("got %d elements, want none", n)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Message != "arrow draft discarded" {
		t.Errorf("last log entry = %v, want the discard", entry)
	}
}

func TestSingleClickArrowIsDropped(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("a"))
	m = send(t, m, click(10, 5)...)
	m = send(t, m, runes("v"))

	if n := len(m.board.Elements()); n != 0 {
		t.Errorf("got %d elements from a one point arrow", n)
	}
	if m.board.Tool() != board.ToolSelect {
		t.Errorf("tool = %v", m.board.Tool())
	}
}

func TestFreehandStrokeGrowsWithPointer(t *testing.T) {
	m, clk, _ := newTestModel(t)
	m = send(t, m, runes("d"))
	m = send(t, m, press(10, 5))
	clk.advance(40 * time.Millisecond)
	m = send(t, m, drag(15, 8))
	m = send(t, m, release(15, 8))

	e := onlyElement(t, m)
	want := []float64{84, 88, 40, 48}
	if diff := cmp.Diff(want, []float64{e.X, e.Y, e.Width, e.Height}); diff != "" {
		t.Errorf("stroke box mismatch (-want +got):\n%s", diff)
	}
	data := e.Data.(board.DrawingData)
	if diff := cmp.Diff([]board.Point{{X: 0, Y: 0}, {X: 40, Y: 48}}, data.Paths[0].Points); diff != "" {
		t.Errorf("stroke points mismatch (-want +got):\n%s", diff)
	}
	if m.stroke != nil || m.gesture != gestureNone {
		t.Error("stroke still active after release")
	}
}

func TestFreehandStrokeKeepsOneElementAcrossSamples(t *testing.T) {
	m, clk, _ := newTestModel(t)
	m = send(t, m, runes("d"))
	m = send(t, m, press(10, 5))
	for _, c := range []point{{12, 6}, {15, 8}, {18, 6}, {20, 5}} {
		clk.advance(40 * time.Millisecond)
		m = send(t, m, drag(c.X, c.Y))
	}
	m = send(t, m, release(20, 5))

	e := onlyElement(t, m)
	data := e.Data.(board.DrawingData)
	if len(data.Paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(data.Paths))
	}
	if n := len(data.Paths[0].Points); n != 5 {
		t.Errorf("stroke has %d points, want 5", n)
	}
	if e.Width <= 1 || e.Height <= 1 {
		t.Errorf("stroke box %vx%v did not grow", e.Width, e.Height)
	}
}

func TestArrowPreviewFollowsHover(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("a"))
	m = send(t, m, click(10, 5)...)
	m = send(t, m, hover(30, 5))

	if m.arrow == nil {
		t.Fatal("no arrow draft")
	}
	if got, want := m.arrow.Preview(), m.boardPointAt(point{X: 30, Y: 5}); got != want {
		t.Errorf("preview = %v, want %v", got, want)
	}
	if n := len(m.arrow.Committed()); n != 1 {
		t.Errorf("hover committed points, got %d", n)
	}
}

func TestDoubleClickEditsNote(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{X: 164, Y: 168}, 1))

	m = send(t, m, click(20, 10)...)
	m = send(t, m, click(20, 10)...)
	if m.mode != ModeEditing {
		t.Fatalf("mode = %v, want editing", m.mode)
	}
	m = send(t, m, runes("!"), tea.KeyMsg{Type: tea.KeyEnter})

	data := onlyElement(t, m).Data.(board.StickyNoteData)
	if data.Content != "New note!" {
		t.Errorf("content = %q", data.Content)
	}
	if m.mode != ModeNormal {
		t.Errorf("mode = %v after enter", m.mode)
	}

	m = send(t, m, runes("u"))
	if data := onlyElement(t, m).Data.(board.StickyNoteData); data.Content != "New note" {
		t.Errorf("content = %q after undoing the edit", data.Content)
	}
}

func TestEditEscapeKeepsContent(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{X: 164, Y: 168}, 1))
	m.board.SelectElements(m.board.Elements()[0].ID)

	m = send(t, m, runes("e"), runes("xyz"), tea.KeyMsg{Type: tea.KeyEscape})

	if data := onlyElement(t, m).Data.(board.StickyNoteData); data.Content != "New note" {
		t.Errorf("content = %q after cancelled edit", data.Content)
	}
}

func TestShiftClickTogglesSelection(t *testing.T) {
	m, _, _ := newTestModel(t)
	a := board.NewStickyNote(board.Point{X: 164, Y: 168}, 1)
	b := board.NewStickyNote(board.Point{X: 644, Y: 168}, 2)
	m.board.AddElement(a)
	m.board.AddElement(b)

	m = send(t, m, click(20, 10)...)
	m = send(t, m, shiftPress(80, 10), release(80, 10))
	if diff := cmp.Diff([]string{a.ID, b.ID}, m.board.Canvas().SelectedElementIDs); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	m = send(t, m, shiftPress(20, 10), release(20, 10))
	if diff := cmp.Diff([]string{b.ID}, m.board.Canvas().SelectedElementIDs); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyCanvasDragPans(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, press(10, 10), drag(14, 12), release(14, 12))

	if diff := cmp.Diff(board.Point{X: 32, Y: 32}, m.board.Canvas().Pan); diff != "" {
		t.Errorf("pan mismatch (-want +got):\n%s", diff)
	}
}

func TestWheelZoomKeepsPointUnderPointer(t *testing.T) {
	m, _, _ := newTestModel(t)
	before := m.boardPointAt(point{X: 10, Y: 5})
	m = send(t, m, wheel(10, 5, tea.MouseButtonWheelUp))

	canvas := m.board.Canvas()
	if math.Abs(canvas.Zoom-1.1) > 1e-9 {
		t.Errorf("zoom = %v, want 1.1", canvas.Zoom)
	}
	after := m.boardPointAt(point{X: 10, Y: 5})
	if math.Abs(after.X-before.X) > 1e-9 || math.Abs(after.Y-before.Y) > 1e-9 {
		t.Errorf("point under pointer moved from %v to %v", before, after)
	}
}

func TestZoomKeysClampAndReset(t *testing.T) {
	m, _, _ := newTestModel(t)
	for range 100 {
		m = send(t, m, runes("-"))
	}
	if z := m.board.Canvas().Zoom; z != board.MinZoom {
		t.Errorf("zoom = %v, want clamped to %v", z, board.MinZoom)
	}
	m = send(t, m, runes("0"))
	canvas := m.board.Canvas()
	if canvas.Zoom != 1 || canvas.Pan != (board.Point{}) {
		t.Errorf("reset gave zoom %v pan %v", canvas.Zoom, canvas.Pan)
	}
}

func TestCursorKeysStayOnCanvas(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("h"), runes("k"))
	if m.cursorX != 0 || m.cursorY != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", m.cursorX, m.cursorY)
	}
	for range 50 {
		m = send(t, m, runes("j"))
	}
	if m.cursorY != m.canvasHeight()-1 {
		t.Errorf("cursorY = %d, want %d", m.cursorY, m.canvasHeight()-1)
	}
}

func TestSpaceTapsAtCursor(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.cursorX, m.cursorY = 20, 10
	m = send(t, m, runes("r"), tea.KeyMsg{Type: tea.KeySpace})

	e := onlyElement(t, m)
	if data, ok := e.Data.(board.ShapeData); !ok || data.ShapeType != board.ShapeRectangle {
		t.Errorf("data = %#v, want a rectangle", e.Data)
	}
}

func TestToolBarClickSwitchesTool(t *testing.T) {
	m, _, _ := newTestModel(t)
	for _, item := range toolBarItems() {
		m = send(t, m, click(item.start, m.canvasHeight())...)
		if got := m.board.Tool(); got != item.tool {
			t.Errorf("click at column %d selected %v, want %v", item.start, got, item.tool)
		}
	}
	if n := len(m.board.Elements()); n != 0 {
		t.Errorf("tool bar clicks placed %d elements", n)
	}
}

func TestDeleteCopyPaste(t *testing.T) {
	m, _, _ := newTestModel(t)
	note := board.NewStickyNote(board.Point{X: 164, Y: 168}, 1)
	m.board.AddElement(note)
	m.board.SelectElements(note.ID)

	m.copySelection()
	m = send(t, m, runes("p"))
	els := board.ByZIndex(m.board.Elements())
	if len(els) != 2 {
		t.Fatalf("got %d elements after paste, want 2", len(els))
	}
	pasted := els[1]
	if pasted.ID == note.ID || pasted.X != note.X+20 || pasted.Y != note.Y+20 {
		t.Errorf("pasted copy = %+v", pasted)
	}
	if diff := cmp.Diff([]string{pasted.ID}, m.board.Canvas().SelectedElementIDs); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	m = send(t, m, runes("x"))
	if e := onlyElement(t, m); e.ID != note.ID {
		t.Errorf("remaining element = %s, want the original", e.ID)
	}
	m = send(t, m, runes("u"))
	if n := len(m.board.Elements()); n != 2 {
		t.Errorf("got %d elements after undoing the delete, want 2", n)
	}
}

func TestUndoWithEmptyHistory(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("u"))
	if m.successMessage != "Nothing to undo" {
		t.Errorf("message = %q", m.successMessage)
	}
}

func TestClearBoardAsksFirst(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{}, 1))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.mode != ModeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	m = send(t, m, runes("n"))
	if n := len(m.board.Elements()); n != 1 {
		t.Fatalf("declined clear removed elements, %d left", n)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN}, runes("y"))
	if n := len(m.board.Elements()); n != 0 {
		t.Errorf("got %d elements after clearing", n)
	}
}

func TestTitleEdit(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("T"))
	for range len([]rune(m.titleText)) {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = send(t, m, runes("Roadmap"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.board.Title(); got != "Roadmap" {
		t.Errorf("title = %q", got)
	}
}

func TestElementRemovalClosesController(t *testing.T) {
	m, _, _ := newTestModel(t)
	note := board.NewStickyNote(board.Point{X: 164, Y: 168}, 1)
	m.board.AddElement(note)

	m = send(t, m, press(20, 10), drag(25, 12))
	if _, ok := m.views.byID[note.ID]; !ok {
		t.Fatal("no controller for the grabbed element")
	}
	m.board.DeleteElement(note.ID)
	if _, ok := m.views.byID[note.ID]; ok {
		t.Error("controller kept after its element was deleted")
	}
	m = send(t, m, release(25, 12))
	if n := len(m.board.Elements()); n != 0 {
		t.Errorf("release recreated the element, %d elements", n)
	}
}

func TestViewShowsToolBarAndStatus(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{X: 164, Y: 168}, 1))
	lines := splitLines(m.View())
	if len(lines) != 40 {
		t.Fatalf("view has %d lines, want 40", len(lines))
	}
	if !containsPlain(lines[38], "n:note") {
		t.Errorf("tool bar line = %q", stripANSI(lines[38]))
	}
	if !containsPlain(lines[39], "Elements: 1") {
		t.Errorf("status line = %q", stripANSI(lines[39]))
	}
}
