package transform

import (
	"slices"
	"sync"
)

type EventKind int

const (
	PointerMove EventKind = iota
	PointerUp
)

// PointerEvent is a document-level pointer event in screen units.
type PointerEvent struct {
	Kind EventKind
	At   Point
}

type Listener func(PointerEvent)

// Bus fans pointer events out to whoever is subscribed. Sessions listen
// here rather than on their element so the pointer may leave the element
// mid-gesture.
type Bus struct {
	mu        sync.Mutex
	next      int
	listeners map[int]Listener
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns the function that removes it. The
// returned function is safe to call more than once.
func (b *Bus) Subscribe(l Listener) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.listeners[id] = l
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Dispatch delivers ev to every listener in subscription order. Listeners
// may unsubscribe while being called.
func (b *Bus) Dispatch(ev PointerEvent) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, b.listeners[id])
	}
	b.mu.Unlock()

	for _, l := range ls {
		l(ev)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
