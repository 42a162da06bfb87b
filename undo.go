package main

import (
	"fmt"
	"strings"

	"github.com/saichandra-1/white-board/internal/board"
)

func (m *model) undo() {
	if !m.board.CanUndo() {
		m.successMessage = "Nothing to undo"
		return
	}
	m.discardDrafts()
	m.board.Undo()
	m.successMessage = ""
}

func (m *model) redo() {
	if !m.board.CanRedo() {
		m.successMessage = "Nothing to redo"
		return
	}
	m.discardDrafts()
	m.board.Redo()
	m.successMessage = ""
}

func (m *model) deleteSelected() {
	m.cancelGesture()
	n := m.board.DeleteSelected()
	if n == 0 {
		return
	}
	m.board.SelectElements()
	m.successMessage = fmt.Sprintf("Deleted %d", n)
}

// copySelection copies the selection to the canvas clipboard and, when it
// can, to the system clipboard too.
func (m *model) copySelection() {
	els := m.board.Copy()
	if len(els) == 0 {
		return
	}
	if err := writeClipboardElements(els); err != nil {
		m.log.WithError(err).Debug("system clipboard unavailable")
	}
	m.successMessage = fmt.Sprintf("Copied %d", len(els))
}

func (m *model) paste() {
	if n := len(m.board.Paste()); n > 0 {
		m.successMessage = fmt.Sprintf("Pasted %d", n)
	}
}

// pasteSystem pastes from the system clipboard. Copied elements are pasted
// as they are and any other text lands in a new note at the cursor.
func (m *model) pasteSystem() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = "clipboard: " + err.Error()
		return
	}
	els, plain := parseClipboard(text)
	if len(els) > 0 {
		m.successMessage = fmt.Sprintf("Pasted %d", len(m.board.PasteElements(els)))
		return
	}
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return
	}
	note := board.NewStickyNote(m.boardPointAt(point{X: m.cursorX, Y: m.cursorY}), m.board.NextZIndex())
	data := note.Data.(board.StickyNoteData)
	data.Content = plain
	note.Data = data
	m.board.AddElement(note)
	m.board.SelectElements(note.ID)
}
