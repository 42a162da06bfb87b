package whiteboard

import (
	"github.com/saichandra-1/white-board/internal/board"
)

// PasteOffset shifts pasted copies so they do not hide their originals.
var PasteOffset = board.Point{X: 20, Y: 20}

// Copy puts the selected elements on the canvas clipboard in paint order
// and returns them. An empty selection leaves the clipboard alone.
func (b *Board) Copy() []board.Element {
	canvas := b.Canvas()
	var picked []board.Element
	for _, e := range board.ByZIndex(b.Elements()) {
		if canvas.IsSelected(e.ID) {
			picked = append(picked, e)
		}
	}
	if len(picked) == 0 {
		return nil
	}
	b.UpdateCanvasState(board.CanvasPatch{Clipboard: &picked})
	return board.CloneElements(picked)
}

// Paste adds copies of the clipboard with fresh ids, offset from the
// originals and stacked above everything on the board. The copies become
// the selection.
func (b *Board) Paste() []board.Element {
	return b.PasteElements(b.Canvas().Clipboard)
}

// PasteElements pastes els as Paste does, for elements that came from
// outside the canvas clipboard.
func (b *Board) PasteElements(els []board.Element) []board.Element {
	if len(els) == 0 {
		return nil
	}
	z := b.NextZIndex()
	out := make([]board.Element, 0, len(els))
	ids := make([]string, 0, len(els))
	for i, e := range board.ByZIndex(els) {
		if e.Data == nil {
			continue
		}
		c := e.Clone()
		c.ID = board.NewID()
		c.X += PasteOffset.X
		c.Y += PasteOffset.Y
		c.ZIndex = z + i
		b.AddElement(c)
		out = append(out, c)
		ids = append(ids, c.ID)
	}
	b.SelectElements(ids...)
	return out
}
