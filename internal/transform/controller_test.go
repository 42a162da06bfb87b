package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/saichandra-1/white-board/internal/board"
)

type recorder struct {
	ids     []string
	patches []board.Patch
}

func (r *recorder) UpdateElement(id string, p board.Patch) {
	r.ids = append(r.ids, id)
	r.patches = append(r.patches, p)
}

func TestControllerCommitsOncePerSession(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}
	c := NewController("el", bus, rec)

	if err := c.BeginDrag(Box{X: 10, Y: 10, Width: 40, Height: 40}, Point{}, Options{Zoom: 1}); err != nil {
		t.Fatalf("BeginDrag failed: %v", err)
	}
	if err := c.BeginRotate(Box{}, Point{}, Point{X: 1}); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("second session: got %v, want ErrSessionActive", err)
	}
	if c.Mode() != Dragging {
		t.Fatalf("mode = %s, want dragging", c.Mode())
	}
	if bus.Len() != 1 {
		t.Fatalf("bus has %d listeners during session, want 1", bus.Len())
	}

	for i := 1; i <= 5; i++ {
		bus.Dispatch(PointerEvent{Kind: PointerMove, At: Point{X: float64(i), Y: float64(2 * i)}})
	}
	if got := c.Preview(Box{}); got.X != 15 || got.Y != 20 {
		t.Errorf("preview at (%v, %v), want (15, 20)", got.X, got.Y)
	}
	if len(rec.patches) != 0 {
		t.Fatal("moves committed before pointer up")
	}

	bus.Dispatch(PointerEvent{Kind: PointerUp, At: Point{X: 5, Y: 10}})
	if len(rec.patches) != 1 || rec.ids[0] != "el" {
		t.Fatalf("got %d commits, want 1", len(rec.patches))
	}
	if *rec.patches[0].X != 15 || *rec.patches[0].Y != 20 {
		t.Errorf("committed %+v", rec.patches[0])
	}
	if bus.Len() != 0 {
		t.Errorf("bus still has %d listeners after pointer up", bus.Len())
	}
	if c.Mode() != Idle {
		t.Errorf("mode = %s after pointer up, want idle", c.Mode())
	}

	bus.Dispatch(PointerEvent{Kind: PointerUp})
	if len(rec.patches) != 1 {
		t.Error("stray pointer up committed again")
	}
}

func TestControllerCloseReleasesListener(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}
	c := NewController("el", bus, rec)
	if err := c.BeginResize(Box{Width: 100, Height: 100}, SE, Point{}, Options{Zoom: 1}); err != nil {
		t.Fatalf("BeginResize failed: %v", err)
	}
	bus.Dispatch(PointerEvent{Kind: PointerMove, At: Point{X: 20, Y: 20}})
	c.Close()

	if bus.Len() != 0 {
		t.Fatalf("bus has %d listeners after Close", bus.Len())
	}
	bus.Dispatch(PointerEvent{Kind: PointerUp})
	if len(rec.patches) != 0 {
		t.Error("closed controller committed")
	}
}

func TestControllerCancelThenRestart(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}
	c := NewController("el", bus, rec)
	start := Box{Width: 100, Height: 100}

	if err := c.BeginRotate(start, start.Center(), Point{X: 100, Y: 50}); err != nil {
		t.Fatal(err)
	}
	bus.Dispatch(PointerEvent{Kind: PointerMove, At: Point{X: 50, Y: 100}})
	if got := c.Preview(start).Rotation; math.Abs(got-90) > 1e-9 {
		t.Errorf("preview rotation %v, want 90", got)
	}
	c.Cancel()
	if got := c.Preview(start).Rotation; got != 0 {
		t.Errorf("after cancel preview rotation %v, want 0", got)
	}

	if err := c.BeginRotate(start, start.Center(), Point{X: 100, Y: 50}); err != nil {
		t.Fatalf("restart after cancel: %v", err)
	}
	bus.Dispatch(PointerEvent{Kind: PointerMove, At: Point{X: 50, Y: 100}})
	bus.Dispatch(PointerEvent{Kind: PointerUp})
	if len(rec.patches) != 1 || *rec.patches[0].Rotation != 90 {
		t.Fatalf("got %+v", rec.patches)
	}
}

func TestBusUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()
	calls := 0
	unsub := bus.Subscribe(func(PointerEvent) { calls++ })
	other := bus.Subscribe(func(PointerEvent) {})
	unsub()
	unsub()
	if bus.Len() != 1 {
		t.Fatalf("len = %d, want 1", bus.Len())
	}
	bus.Dispatch(PointerEvent{})
	if calls != 0 {
		t.Error("removed listener was called")
	}
	other()
}
