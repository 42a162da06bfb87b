package main

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"

	"github.com/saichandra-1/white-board/internal/board"
)

func TestCellCenterRoundTrip(t *testing.T) {
	for _, c := range []point{{0, 0}, {3, 7}, {119, 37}} {
		if got := screenToCell(cellCenter(c)); got != c {
			t.Errorf("screenToCell(cellCenter(%v)) = %v", c, got)
		}
	}
	if got := cellCenter(point{X: 1, Y: 1}); got != (board.Point{X: 12, Y: 24}) {
		t.Errorf("cellCenter(1,1) = %v", got)
	}
}

func TestBoardPointFollowsView(t *testing.T) {
	m, _, _ := newTestModel(t)
	zoom := 2.0
	pan := board.Point{X: 40, Y: -16}
	m.board.UpdateCanvasState(board.CanvasPatch{Zoom: &zoom, Pan: &pan})

	p := m.boardPointAt(point{X: 5, Y: 2})
	if p != (board.Point{X: 2, Y: 28}) {
		t.Errorf("boardPointAt = %v, want (2,28)", p)
	}
	if c := m.cellAt(p); c != (point{X: 5, Y: 2}) {
		t.Errorf("cellAt = %v, want (5,2)", c)
	}
}

func TestParseClipboard(t *testing.T) {
	note := board.NewStickyNote(board.Point{X: 10, Y: 10}, 3)
	data, err := sonic.ConfigStd.MarshalToString(clipboardPayload{Type: clipboardType, Elements: []board.Element{note}})
	if err != nil {
		t.Fatal(err)
	}

	els, text := parseClipboard(data)
	if text != "" {
		t.Errorf("copied elements parsed as text %q", text)
	}
	if diff := cmp.Diff([]board.Element{note}, els); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}

	els, text = parseClipboard(`{"type":"something-else"}`)
	if els != nil || text != `{"type":"something-else"}` {
		t.Errorf("foreign json = %v, %q", els, text)
	}

	els, text = parseClipboard("buy milk\r\nand eggs")
	if els != nil || text != "buy milk\nand eggs" {
		t.Errorf("plain text = %v, %q", els, text)
	}
}

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"control characters", "a\x00b\x07c\td", "abc\td"},
		{"old mac line endings", "a\rb", "a\nb"},
		{"rtf", `{\rtf1\ansi hello\par world}`, "hello\nworld"},
		{"rtf escapes", `{\rtf1 \'41BC \{x\}}`, "ABC {x}"},
		{"html", "<p>a &amp; b</p>", "a & b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanClipboardText(tt.in); got != tt.want {
				t.Errorf("cleanClipboardText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseClipboardHTML(t *testing.T) {
	els, text := parseClipboard("<div>Ship it</div>")
	if els != nil {
		t.Fatalf("html parsed as elements")
	}
	if text != "Ship it" {
		t.Fatalf("text = %q", text)
	}
}
