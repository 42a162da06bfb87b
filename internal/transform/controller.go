package transform

import (
	"errors"

	"github.com/saichandra-1/white-board/internal/board"
)

var ErrSessionActive = errors.New("transform: a session is already active")

// Updater receives the single patch a finished session commits.
type Updater interface {
	UpdateElement(id string, p board.Patch)
}

// Controller owns the interaction state of one element view. It holds at
// most one session and is subscribed to the bus only while that session
// lives.
type Controller struct {
	id      string
	bus     *Bus
	target  Updater
	session Session
	release func()
}

func NewController(id string, bus *Bus, target Updater) *Controller {
	return &Controller{id: id, bus: bus, target: target}
}

func (c *Controller) ID() string { return c.id }

func (c *Controller) Mode() Mode {
	if c.session == nil {
		return Idle
	}
	return c.session.Mode()
}

func (c *Controller) BeginDrag(start Box, at Point, opts Options) error {
	return c.begin(NewDrag(start, at, opts))
}

func (c *Controller) BeginResize(start Box, h Handle, at Point, opts Options) error {
	return c.begin(NewResize(start, h, at, opts))
}

func (c *Controller) BeginRotate(start Box, center, at Point) error {
	return c.begin(NewRotate(start, center, at))
}

func (c *Controller) begin(s Session) error {
	if c.session != nil {
		return ErrSessionActive
	}
	c.session = s
	c.release = c.bus.Subscribe(c.handle)
	return nil
}

func (c *Controller) handle(ev PointerEvent) {
	if c.session == nil {
		return
	}
	switch ev.Kind {
	case PointerMove:
		c.session.Move(ev.At)
	case PointerUp:
		c.end(true)
	}
}

// end finishes the session. The bus subscription is dropped even if the
// commit panics.
func (c *Controller) end(commit bool) {
	s := c.session
	defer c.finish()
	if !commit || s == nil {
		return
	}
	if p, ok := s.End(); ok && c.target != nil {
		c.target.UpdateElement(c.id, p)
	}
}

func (c *Controller) finish() {
	if c.release != nil {
		c.release()
	}
	c.release = nil
	c.session = nil
}

// Cancel drops the active session without committing.
func (c *Controller) Cancel() {
	c.end(false)
}

// Close releases everything the controller holds. Use it when the element
// view goes away.
func (c *Controller) Close() {
	c.end(false)
	c.target = nil
}

// Preview returns the box to draw: the live preview while a session has
// one, otherwise committed.
func (c *Controller) Preview(committed Box) Box {
	if c.session == nil {
		return committed
	}
	if b, ok := c.session.Preview(); ok {
		return b
	}
	return committed
}
