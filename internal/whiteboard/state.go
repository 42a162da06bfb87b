// Package whiteboard holds the editor state: the element history, the
// canvas view, the active tool and the board title, and the Board that
// owns them for the running program.
package whiteboard

import (
	"slices"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/history"
)

// DefaultTitle names a board nobody has titled yet.
const DefaultTitle = "Untitled Board"

type State struct {
	Tool    board.Tool
	Canvas  board.CanvasState
	History history.Stack
	Title   string

	// Hydrated is set once the stored board has been read.
	Hydrated bool

	// SeedSample asks for the welcome notes to be placed.
	SeedSample bool
}

func Initial() State {
	return State{
		Tool:       board.ToolSelect,
		Canvas:     board.DefaultCanvasState(),
		History:    history.New([]board.Element{}),
		Title:      DefaultTitle,
		SeedSample: true,
	}
}

// Elements is the present element list.
func (s State) Elements() []board.Element {
	return s.History.Present
}

// Clone copies everything reachable from s. History entries are shared
// because Reduce never writes to them.
func (s State) Clone() State {
	s.Canvas = s.Canvas.Clone()
	s.History.Present = board.CloneElements(s.History.Present)
	s.History.Past = slices.Clone(s.History.Past)
	s.History.Future = slices.Clone(s.History.Future)
	return s
}

// Snapshot captures s for persistence.
func (s State) Snapshot(updatedAt string) board.Snapshot {
	els := board.CloneElements(s.History.Present)
	if els == nil {
		els = []board.Element{}
	}
	return board.Snapshot{
		Version:     board.FormatVersion,
		Elements:    els,
		CanvasState: s.Canvas.Clone().Normalized(),
		CurrentTool: s.Tool,
		BoardTitle:  s.Title,
		UpdatedAt:   updatedAt,
	}
}

// Action is one transition of State.
type Action interface {
	isAction()
}

type AddElement struct{ Element board.Element }

type UpdateElement struct {
	ID    string
	Patch board.Patch
}

// DeleteElement removes the element and drops it from the selection.
type DeleteElement struct{ ID string }

type SelectElements struct{ IDs []string }

// SetTool switches the tool and clears the selection.
type SetTool struct{ Tool board.Tool }

type UpdateCanvas struct{ Patch board.CanvasPatch }

// SetElements replaces the element list and forgets history.
type SetElements struct{ Elements []board.Element }

type SetBoardTitle struct{ Title string }

// ResetBoard empties the board. The sample request survives only when
// KeepSampleSeed is set.
type ResetBoard struct{ KeepSampleSeed bool }

// Hydrate installs a stored or loaded snapshot. A nil Snapshot only marks
// the board hydrated.
type Hydrate struct {
	Snapshot   *board.Snapshot
	SeedSample bool
}

type MarkSampleSeeded struct{}

type Undo struct{}

type Redo struct{}

func (AddElement) isAction()       {}
func (UpdateElement) isAction()    {}
func (DeleteElement) isAction()    {}
func (SelectElements) isAction()   {}
func (SetTool) isAction()          {}
func (UpdateCanvas) isAction()     {}
func (SetElements) isAction()      {}
func (SetBoardTitle) isAction()    {}
func (ResetBoard) isAction()       {}
func (Hydrate) isAction()          {}
func (MarkSampleSeeded) isAction() {}
func (Undo) isAction()             {}
func (Redo) isAction()             {}

// Reduce returns the state after a. It never mutates s. Selection and the
// rest of the canvas view stay out of the element history.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddElement:
		s.History = history.Reduce(s.History, history.Add{Element: a.Element})

	case UpdateElement:
		s.History = history.Reduce(s.History, history.Update{ID: a.ID, Patch: a.Patch})

	case DeleteElement:
		s.History = history.Reduce(s.History, history.Delete{ID: a.ID})
		s.Canvas.SelectedElementIDs = slices.DeleteFunc(slices.Clone(s.Canvas.SelectedElementIDs), func(id string) bool {
			return id == a.ID
		})

	case SelectElements:
		ids := slices.Clone(a.IDs)
		if ids == nil {
			ids = []string{}
		}
		s.Canvas.SelectedElementIDs = ids

	case SetTool:
		s.Tool = a.Tool
		s.Canvas.SelectedElementIDs = []string{}

	case UpdateCanvas:
		s.Canvas = a.Patch.Apply(s.Canvas)

	case SetElements:
		s.History = history.Reduce(s.History, history.Replace{Elements: a.Elements})

	case SetBoardTitle:
		s.Title = a.Title

	case ResetBoard:
		s.Tool = board.ToolSelect
		s.Canvas = board.DefaultCanvasState()
		s.History = history.New([]board.Element{})
		s.SeedSample = a.KeepSampleSeed && s.SeedSample

	case Hydrate:
		s.Hydrated = true
		s.SeedSample = a.SeedSample
		if a.Snapshot == nil {
			return s
		}
		snap := a.Snapshot
		if snap.CurrentTool.Valid() {
			s.Tool = snap.CurrentTool
		}
		canvas := snap.CanvasState.Clone()
		if canvas.Zoom <= 0 {
			canvas.Zoom = s.Canvas.Zoom
		}
		s.Canvas = canvas.Normalized()
		els := board.CloneElements(snap.Elements)
		if els == nil {
			els = []board.Element{}
		}
		s.History = history.New(els)
		if snap.BoardTitle != "" {
			s.Title = snap.BoardTitle
		}

	case MarkSampleSeeded:
		s.SeedSample = false

	case Undo:
		s.History = history.Reduce(s.History, history.Undo{})

	case Redo:
		s.History = history.Reduce(s.History, history.Redo{})
	}
	return s
}
