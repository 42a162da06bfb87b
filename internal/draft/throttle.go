// Package draft accumulates in-progress pointer input, multi-click arrows
// and freehand strokes, and turns it into elements.
package draft

import "time"

const (
	// PreviewInterval bounds arrow preview updates to about 60 Hz.
	PreviewInterval = 16 * time.Millisecond
	// SampleInterval bounds freehand samples to about 30 Hz.
	SampleInterval = 32 * time.Millisecond
)

// Throttle admits at most one event per Interval, by wall clock. The caller
// supplies the time so tests can drive it.
type Throttle struct {
	Interval time.Duration
	last     time.Time
}

// Allow reports whether an event at now may pass and, if so, records it.
func (t *Throttle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	return true
}

// Reset records now as the last admitted event.
func (t *Throttle) Reset(now time.Time) {
	t.last = now
}
