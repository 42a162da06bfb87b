// Package persist turns board snapshots into export files and local
// storage payloads, and stores those payloads.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/saichandra-1/white-board/internal/board"
)

const (
	// ExportType tags the current export file format.
	ExportType = "designboard-export"
	// FileSuffix is appended to every exported board file name.
	FileSuffix = ".designboard.json"
	// LoadedTitle names a legacy board that carried no title.
	LoadedTitle = "Loaded Board"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrVersion marks a local payload written by another format version.
	ErrVersion = errors.New("unsupported snapshot version")
)

// ExportFile is the on-disk form of a saved board.
type ExportFile struct {
	Type     string         `json:"type"`
	Version  int            `json:"version"`
	Snapshot board.Snapshot `json:"snapshot"`
	Theme    board.Theme    `json:"theme,omitempty"`
	SavedAt  string         `json:"savedAt"`
}

// probe holds just enough of a document to tell the formats apart.
type probe struct {
	Type     string          `json:"type"`
	Version  *float64        `json:"version"`
	Snapshot json.RawMessage `json:"snapshot"`
	Elements json.RawMessage `json:"elements"`
	Theme    board.Theme     `json:"theme"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// Encode writes snap as an indented export file. savedAt is used only when
// the snapshot carries no updatedAt of its own.
func Encode(snap board.Snapshot, theme board.Theme, savedAt time.Time) ([]byte, error) {
	snap = normalize(snap.Clone(), savedAt, "")
	f := ExportFile{
		Type:     ExportType,
		Version:  board.FormatVersion,
		Snapshot: snap,
		SavedAt:  snap.UpdatedAt,
	}
	if theme.Valid() {
		f.Theme = theme
	}
	out, err := sonic.ConfigStd.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return out, nil
}

// Decode reads an export file in the current tagged format or the legacy
// untagged one. The returned theme is empty when the file names none.
// Every failure wraps ErrUnsupportedFormat.
func Decode(data []byte, now time.Time) (board.Snapshot, board.Theme, error) {
	var p probe
	if err := sonic.ConfigStd.Unmarshal(data, &p); err != nil {
		return board.Snapshot{}, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if p.Version == nil || *p.Version != board.FormatVersion {
		return board.Snapshot{}, "", ErrUnsupportedFormat
	}

	var snap board.Snapshot
	var defaultTitle string
	switch {
	case p.Type == ExportType && present(p.Snapshot):
		if err := sonic.ConfigStd.Unmarshal(p.Snapshot, &snap); err != nil {
			return board.Snapshot{}, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
	case present(p.Elements):
		if err := sonic.ConfigStd.Unmarshal(data, &snap); err != nil {
			return board.Snapshot{}, "", fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		defaultTitle = LoadedTitle
	default:
		return board.Snapshot{}, "", ErrUnsupportedFormat
	}

	theme := p.Theme
	if !theme.Valid() {
		theme = ""
	}
	return normalize(snap, now, defaultTitle), theme, nil
}

// normalize fills the fields a file may leave out.
func normalize(s board.Snapshot, now time.Time, title string) board.Snapshot {
	s.Version = board.FormatVersion
	if s.Elements == nil {
		s.Elements = []board.Element{}
	}
	s.CanvasState = s.CanvasState.Normalized()
	if !s.CurrentTool.Valid() {
		s.CurrentTool = board.ToolSelect
	}
	if s.BoardTitle == "" {
		s.BoardTitle = title
	}
	if s.UpdatedAt == "" {
		s.UpdatedAt = board.Timestamp(now)
	}
	return s
}

// EncodeSnapshot is the compact payload kept in local storage.
func EncodeSnapshot(snap board.Snapshot) ([]byte, error) {
	snap.Version = board.FormatVersion
	if snap.Elements == nil {
		snap.Elements = []board.Element{}
	}
	snap.CanvasState = snap.CanvasState.Normalized()
	return sonic.ConfigStd.Marshal(snap)
}

// DecodeSnapshot reads a local storage payload. A payload from another
// format version yields ErrVersion and should be discarded.
func DecodeSnapshot(data []byte) (board.Snapshot, error) {
	var p probe
	if err := sonic.ConfigStd.Unmarshal(data, &p); err != nil {
		return board.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if p.Version == nil || *p.Version != board.FormatVersion {
		return board.Snapshot{}, ErrVersion
	}
	var snap board.Snapshot
	if err := sonic.ConfigStd.Unmarshal(data, &snap); err != nil {
		return board.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.CanvasState = snap.CanvasState.Normalized()
	return snap, nil
}

// ExportFilename derives the file name for a board title. Every character
// outside ASCII letters and digits becomes an underscore.
func ExportFilename(title string) string {
	if title == "" {
		title = "whiteboard"
	}
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, title)
	return strings.ToLower(name) + FileSuffix
}
