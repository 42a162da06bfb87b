// Package history keeps the element list with linear undo and redo.
// Reduce is pure: it never mutates the stack or the slices it was given.
package history

import (
	"bytes"
	"slices"

	"github.com/bytedance/sonic"

	"github.com/saichandra-1/white-board/internal/board"
)

const (
	// MaxDepth caps past and future.
	MaxDepth = 50
	// UpdateDepth caps past when an update records an entry.
	UpdateDepth = 20
)

type Stack struct {
	Past    [][]board.Element
	Present []board.Element
	Future  [][]board.Element
}

func New(elements []board.Element) Stack {
	return Stack{Present: elements}
}

func (s Stack) CanUndo() bool { return len(s.Past) > 0 }
func (s Stack) CanRedo() bool { return len(s.Future) > 0 }

// Find returns the present element with the given id.
func (s Stack) Find(id string) (board.Element, bool) {
	if i := board.IndexOf(s.Present, id); i >= 0 {
		return s.Present[i], true
	}
	return board.Element{}, false
}

// Action is one transition of the stack.
type Action interface {
	isAction()
}

// Add appends an element.
type Add struct{ Element board.Element }

// Update applies a patch to the element with the given id.
type Update struct {
	ID    string
	Patch board.Patch
}

type Delete struct{ ID string }

// Replace swaps the whole list and forgets all history.
type Replace struct{ Elements []board.Element }

type Undo struct{}

type Redo struct{}

func (Add) isAction()     {}
func (Update) isAction()  {}
func (Delete) isAction()  {}
func (Replace) isAction() {}
func (Undo) isAction()    {}
func (Redo) isAction()    {}

func Reduce(s Stack, a Action) Stack {
	switch a := a.(type) {
	case Add:
		present := append(slices.Clone(s.Present), a.Element.Clone())
		return Stack{Past: push(s.Past, s.Present, MaxDepth), Present: present}

	case Update:
		i := board.IndexOf(s.Present, a.ID)
		if i < 0 || !a.Patch.Changes(s.Present[i]) {
			return s
		}
		present := slices.Clone(s.Present)
		present[i] = a.Patch.Apply(present[i])
		if n := len(s.Past); n > 0 && equal(present, s.Past[n-1]) {
			return Stack{Past: s.Past, Present: present, Future: s.Future}
		}
		return Stack{Past: push(s.Past, s.Present, UpdateDepth), Present: present}

	case Delete:
		present := slices.DeleteFunc(slices.Clone(s.Present), func(e board.Element) bool {
			return e.ID == a.ID
		})
		return Stack{Past: push(s.Past, s.Present, MaxDepth), Present: present}

	case Replace:
		return Stack{Present: board.CloneElements(a.Elements)}

	case Undo:
		n := len(s.Past)
		if n == 0 {
			return s
		}
		future := make([][]board.Element, 0, min(len(s.Future)+1, MaxDepth))
		future = append(future, s.Present)
		future = append(future, s.Future[:min(len(s.Future), MaxDepth-1)]...)
		return Stack{Past: slices.Clone(s.Past[:n-1]), Present: s.Past[n-1], Future: future}

	case Redo:
		if len(s.Future) == 0 {
			return s
		}
		return Stack{
			Past:    push(s.Past, s.Present, MaxDepth),
			Present: s.Future[0],
			Future:  slices.Clone(s.Future[1:]),
		}
	}
	return s
}

// push appends entry to the last limit-1 entries of past, so the result
// holds at most limit entries.
func push(past [][]board.Element, entry []board.Element, limit int) [][]board.Element {
	keep := past[max(0, len(past)-(limit-1)):]
	out := make([][]board.Element, 0, len(keep)+1)
	out = append(out, keep...)
	return append(out, entry)
}

// equal compares two element lists by their serialized form, the same
// notion of sameness Patch.Changes uses.
func equal(a, b []board.Element) bool {
	if len(a) != len(b) {
		return false
	}
	ea, err := sonic.ConfigStd.Marshal(a)
	if err != nil {
		return false
	}
	eb, err := sonic.ConfigStd.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}
