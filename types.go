package main

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/draft"
	"github.com/saichandra-1/white-board/internal/transform"
	"github.com/saichandra-1/white-board/internal/whiteboard"
)

type model struct {
	width             int
	height            int
	cursorX           int
	cursorY           int
	mode              Mode
	help              bool
	helpScroll        int
	board             *whiteboard.Board
	views             *elementViews
	theme             board.Theme
	gesture           gesture
	gestureID         string
	panFrom           point
	panStart          board.Point
	arrow             *draft.Arrow
	stroke            *draft.Freehand
	lastClick         time.Time
	lastClickAt       point
	editID            string
	editText          string
	editCursorPos     int
	originalEditText  string
	titleText         string
	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction
	pendingPath       string
	errorMessage      string
	successMessage    string
	config            *Config
	log               log.FieldLogger
	now               func() time.Time
	unsubscribe       func()
}

// point is a terminal cell position.
type point struct {
	X, Y int
}

// elementViews holds one transform controller per element on screen. A
// controller is created the first time its element is grabbed and closed
// when the element leaves the board.
type elementViews struct {
	bus   *transform.Bus
	board *whiteboard.Board
	byID  map[string]*transform.Controller
}

func newElementViews(b *whiteboard.Board) *elementViews {
	return &elementViews{
		bus:   transform.NewBus(),
		board: b,
		byID:  make(map[string]*transform.Controller),
	}
}

func (v *elementViews) controller(id string) *transform.Controller {
	c, ok := v.byID[id]
	if !ok {
		c = transform.NewController(id, v.bus, v.board)
		v.byID[id] = c
	}
	return c
}

// active returns the controller that is in the middle of a session.
func (v *elementViews) active() (*transform.Controller, bool) {
	for _, c := range v.byID {
		if c.Mode() != transform.Idle {
			return c, true
		}
	}
	return nil, false
}

// sync closes the controllers whose element is gone.
func (v *elementViews) sync(els []board.Element) {
	present := make(map[string]bool, len(els))
	for _, e := range els {
		present[e.ID] = true
	}
	for id, c := range v.byID {
		if !present[id] {
			c.Close()
			delete(v.byID, id)
		}
	}
}

func (v *elementViews) closeAll() {
	for id, c := range v.byID {
		c.Close()
		delete(v.byID, id)
	}
}

// preview returns the box to draw for e, following any live session.
func (v *elementViews) preview(e board.Element) transform.Box {
	box := transform.BoxOf(e)
	if c, ok := v.byID[e.ID]; ok {
		return c.Preview(box)
	}
	return box
}
