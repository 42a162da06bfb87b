package whiteboard

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/persist"
)

type Options struct {
	// Store keeps the working copy between runs. Nil disables persistence.
	Store persist.Store
	// Logger defaults to the standard logrus logger.
	Logger log.FieldLogger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Board owns the editor state. Every mutation goes through Reduce; once
// the board is hydrated each mutation is written back to the store.
type Board struct {
	mu    sync.RWMutex
	state State

	store persist.Store
	log   log.FieldLogger
	now   func() time.Time

	subMu sync.Mutex
	subs  map[int]func(State)
	next  int
}

func New(opts Options) *Board {
	b := &Board{
		state: Initial(),
		store: opts.Store,
		log:   opts.Logger,
		now:   opts.Now,
		subs:  make(map[int]func(State)),
	}
	if b.store == nil {
		b.store = persist.Nop{}
	}
	if b.log == nil {
		b.log = log.StandardLogger()
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// dispatch reduces a into the state, persists the result when save is set
// and the board is hydrated, then notifies subscribers.
func (b *Board) dispatch(a Action, save bool) State {
	b.mu.Lock()
	b.state = Reduce(b.state, a)
	st := b.state.Clone()
	b.mu.Unlock()

	if save && st.Hydrated {
		b.persist(st)
	}
	b.notify(st)
	return st
}

func (b *Board) persist(st State) {
	data, err := persist.EncodeSnapshot(st.Snapshot(board.Timestamp(b.now())))
	if err != nil {
		b.log.WithError(err).Error("failed to encode board for storage")
		return
	}
	if err := b.store.Save(context.Background(), persist.StorageKey, data); err != nil {
		b.log.WithError(err).WithField("key", persist.StorageKey).Error("failed to persist board")
	}
}

// Hydrate reads the stored board once. Missing, outdated or unreadable
// payloads leave the board empty and ask for the sample notes.
func (b *Board) Hydrate(ctx context.Context) {
	data, err := b.store.Load(ctx, persist.StorageKey)
	if err != nil {
		if !errors.Is(err, persist.ErrNotFound) {
			b.log.WithError(err).WithField("key", persist.StorageKey).Error("failed to read stored board")
		}
		b.dispatch(Hydrate{SeedSample: true}, true)
		return
	}

	snap, err := persist.DecodeSnapshot(data)
	switch {
	case errors.Is(err, persist.ErrVersion):
		b.log.WithField("key", persist.StorageKey).Warn("discarding stored board from another format version")
		if err := b.store.Clear(ctx, persist.StorageKey); err != nil {
			b.log.WithError(err).Error("failed to clear outdated board")
		}
		b.dispatch(Hydrate{SeedSample: true}, true)
	case err != nil:
		b.log.WithError(err).WithField("key", persist.StorageKey).Error("failed to decode stored board")
		b.dispatch(Hydrate{SeedSample: true}, true)
	default:
		b.log.WithField("elements", len(snap.Elements)).Debug("restored board")
		b.dispatch(Hydrate{Snapshot: &snap, SeedSample: len(snap.Elements) == 0}, true)
	}
}

// SeedSample places the welcome notes when the hydrated board asks for
// them and is still empty. It reports whether notes were placed.
func (b *Board) SeedSample() bool {
	b.mu.RLock()
	want := b.state.Hydrated && b.state.SeedSample && len(b.state.Elements()) == 0
	b.mu.RUnlock()
	if !want {
		return false
	}
	b.dispatch(SetElements{Elements: board.SampleNotes()}, false)
	b.MarkSampleSeeded()
	return true
}

func (b *Board) MarkSampleSeeded() {
	b.dispatch(MarkSampleSeeded{}, true)
}

func (b *Board) AddElement(e board.Element) {
	b.dispatch(AddElement{Element: e}, true)
}

// UpdateElement applies p to the element with the given id. Unknown ids
// and patches that change nothing are ignored.
func (b *Board) UpdateElement(id string, p board.Patch) {
	b.dispatch(UpdateElement{ID: id, Patch: p}, true)
}

func (b *Board) DeleteElement(id string) {
	b.dispatch(DeleteElement{ID: id}, true)
}

// DeleteSelected deletes every selected element, one history entry each,
// and returns how many were removed.
func (b *Board) DeleteSelected() int {
	ids := b.Canvas().SelectedElementIDs
	n := 0
	for _, id := range ids {
		if _, ok := b.Element(id); !ok {
			continue
		}
		b.DeleteElement(id)
		n++
	}
	return n
}

func (b *Board) SelectElements(ids ...string) {
	b.dispatch(SelectElements{IDs: ids}, true)
}

// SelectAll selects every element in paint order.
func (b *Board) SelectAll() {
	els := board.ByZIndex(b.Elements())
	ids := make([]string, len(els))
	for i, e := range els {
		ids[i] = e.ID
	}
	b.SelectElements(ids...)
}

func (b *Board) SetTool(t board.Tool) {
	b.dispatch(SetTool{Tool: t}, true)
}

func (b *Board) Undo() {
	b.dispatch(Undo{}, true)
}

func (b *Board) Redo() {
	b.dispatch(Redo{}, true)
}

func (b *Board) UpdateCanvasState(p board.CanvasPatch) {
	b.dispatch(UpdateCanvas{Patch: p}, true)
}

// SetElements replaces the board contents and forgets history.
func (b *Board) SetElements(els []board.Element) {
	b.dispatch(SetElements{Elements: els}, true)
}

func (b *Board) SetBoardTitle(title string) {
	b.dispatch(SetBoardTitle{Title: title}, true)
}

// CreateSnapshot captures the board as it is now.
func (b *Board) CreateSnapshot() board.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.Snapshot(board.Timestamp(b.now()))
}

// LoadSnapshot replaces the board with snap and drops history.
func (b *Board) LoadSnapshot(snap board.Snapshot) {
	snap = snap.Clone()
	b.dispatch(Hydrate{Snapshot: &snap, SeedSample: false}, true)
}

type ClearOptions struct {
	// KeepSampleSeed keeps a pending request for the welcome notes.
	KeepSampleSeed bool
}

// ClearBoard empties the board and removes the stored copy.
func (b *Board) ClearBoard(opts ClearOptions) {
	b.dispatch(ResetBoard{KeepSampleSeed: opts.KeepSampleSeed}, false)
	if err := b.store.Clear(context.Background(), persist.StorageKey); err != nil {
		b.log.WithError(err).WithField("key", persist.StorageKey).Error("failed to clear stored board")
	}
}

// NextZIndex is the zIndex a newly placed element receives.
func (b *Board) NextZIndex() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.state.Elements()) + 1
}

func (b *Board) Element(id string) (board.Element, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.state.History.Find(id)
	return e.Clone(), ok
}

func (b *Board) Elements() []board.Element {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return board.CloneElements(b.state.Elements())
}

func (b *Board) Canvas() board.CanvasState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.Canvas.Clone()
}

func (b *Board) Tool() board.Tool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.Tool
}

func (b *Board) Title() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.Title
}

func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.Clone()
}

func (b *Board) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.History.CanUndo()
}

func (b *Board) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state.History.CanRedo()
}

// Subscribe registers fn to receive the state after every change. The
// returned function removes it.
func (b *Board) Subscribe(fn func(State)) (unsubscribe func()) {
	b.subMu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.subMu.Lock()
			delete(b.subs, id)
			b.subMu.Unlock()
		})
	}
}

func (b *Board) notify(st State) {
	b.subMu.Lock()
	fns := make([]func(State), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.subMu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}
