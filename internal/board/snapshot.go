package board

import "time"

const FormatVersion = 1

// TimeLayout is the ISO-8601 form used for every persisted timestamp.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in UTC with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Snapshot is the whole persisted board.
type Snapshot struct {
	Version     int         `json:"version"`
	Elements    []Element   `json:"elements"`
	CanvasState CanvasState `json:"canvasState"`
	CurrentTool Tool        `json:"currentTool"`
	BoardTitle  string      `json:"boardTitle"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
}

func (s Snapshot) Clone() Snapshot {
	s.Elements = CloneElements(s.Elements)
	s.CanvasState = s.CanvasState.Clone()
	return s
}
