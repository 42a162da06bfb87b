package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/render"
)

func TestExportName(t *testing.T) {
	tests := []struct {
		title, format, want string
	}{
		{"My Board", "png", "my_board.png"},
		{"My Board", "pdf", "my_board.pdf"},
		{"My Board", "json", "my_board.designboard.json"},
		{"", "png", "whiteboard.png"},
		{"Q3 – plan", "pdf", "q3___plan.pdf"},
	}
	for _, tt := range tests {
		if got := exportName(tt.title, tt.format); got != tt.want {
			t.Errorf("exportName(%q, %q) = %q, want %q", tt.title, tt.format, got, tt.want)
		}
	}
}

func sampleSnapshot() board.Snapshot {
	return board.Snapshot{
		Version:     board.FormatVersion,
		Elements:    board.SampleNotes(),
		CanvasState: board.DefaultCanvasState(),
		BoardTitle:  "Sample",
	}
}

func TestExportBoardFormats(t *testing.T) {
	dir := t.TempDir()
	snap := sampleSnapshot()

	tests := []struct {
		format string
		magic  []byte
	}{
		{"png", []byte("\x89PNG")},
		{"pdf", []byte("%PDF")},
		{"json", []byte("{")},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, "nested", "board."+tt.format)
			if err := exportBoard(path, tt.format, snap, render.Options{Theme: board.ThemeLight}); err != nil {
				t.Fatalf("exportBoard: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, tt.magic) {
				t.Errorf("file starts with %q, want %q", data[:min(len(data), 8)], tt.magic)
			}
		})
	}
}

func TestExportBoardErrors(t *testing.T) {
	dir := t.TempDir()
	if err := exportBoard(filepath.Join(dir, "x.gif"), "gif", sampleSnapshot(), render.Options{}); err == nil {
		t.Error("unknown format exported")
	}

	path := filepath.Join(dir, "empty.png")
	if err := exportBoard(path, "png", board.Snapshot{}, render.Options{}); err == nil {
		t.Error("empty board exported as png")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("failed export left a file behind")
	}
}

func TestExportPath(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.SetBoardTitle("Plan")
	dir := m.config.SaveDirectory

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{"", FileOpSave, filepath.Join(dir, "plan.designboard.json")},
		{"notes", FileOpSave, filepath.Join(dir, "notes.designboard.json")},
		{"notes", FileOpSavePNG, filepath.Join(dir, "notes.png")},
		{"notes.pdf", FileOpSavePDF, filepath.Join(dir, "notes.pdf")},
		{"/tmp/abs", FileOpSavePDF, "/tmp/abs.pdf"},
	}
	for _, tt := range tests {
		if got := m.exportPath(tt.name, tt.op); got != tt.want {
			t.Errorf("exportPath(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestSaveThenOpenRoundTrip(t *testing.T) {
	m, _, _ := newTestModel(t)
	note := board.NewStickyNote(board.Point{X: 50, Y: 50}, 1)
	m.board.AddElement(note)
	m.board.SetBoardTitle("Round Trip")
	m.theme = board.ThemeDark

	path := m.exportPath("trip", FileOpSave)
	if err := m.writeExport(path, FileOpSave); err != nil {
		t.Fatalf("writeExport: %v", err)
	}

	other, _, _ := newTestModel(t)
	if err := other.openFile(path); err != nil {
		t.Fatalf("openFile: %v", err)
	}
	els := other.board.Elements()
	if len(els) != 1 || els[0].ID != note.ID {
		t.Fatalf("opened elements = %+v", els)
	}
	if other.board.Title() != "Round Trip" {
		t.Errorf("title = %q", other.board.Title())
	}
	if other.theme != board.ThemeDark {
		t.Errorf("theme = %v, want dark", other.theme)
	}
}

func TestOpenFileKeepsBoardOnError(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{}, 1))

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"version": 7}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.openFile(path); err == nil {
		t.Fatal("bad file opened")
	}
	if n := len(m.board.Elements()); n != 1 {
		t.Errorf("board has %d elements after a failed open", n)
	}
}

func TestExportCmdReportsResult(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.board.AddElement(board.NewStickyNote(board.Point{}, 1))
	path := filepath.Join(m.config.SaveDirectory, "out.png")

	msg := m.exportCmd(path, FileOpSavePNG)()
	done, ok := msg.(exportDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("export result = %#v", msg)
	}
	m = send(t, m, done)
	if m.successMessage != "Saved out.png" {
		t.Errorf("message = %q", m.successMessage)
	}
}
