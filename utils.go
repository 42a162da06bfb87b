package main

import (
	"math"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/bytedance/sonic"

	"github.com/saichandra-1/white-board/internal/board"
)

// cellCenter is the screen position, in pixels, of the middle of a cell.
func cellCenter(c point) board.Point {
	return board.Point{
		X: float64(c.X*cellWidth) + cellWidth/2,
		Y: float64(c.Y*cellHeight) + cellHeight/2,
	}
}

// screenToCell returns the cell holding a screen position.
func screenToCell(p board.Point) point {
	return point{
		X: int(math.Floor(p.X / cellWidth)),
		Y: int(math.Floor(p.Y / cellHeight)),
	}
}

// boardPointAt converts a cell into board coordinates under the current
// pan and zoom.
func (m *model) boardPointAt(c point) board.Point {
	return m.board.Canvas().ScreenToBoard(cellCenter(c))
}

func (m *model) cellAt(p board.Point) point {
	return screenToCell(m.board.Canvas().BoardToScreen(p))
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for the tool bar and status line
	maxY := m.canvasHeight() - 1
	if maxY < 0 {
		maxY = 0
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

// clipboardType tags element lists copied to the system clipboard.
const clipboardType = "designboard-clipboard"

type clipboardPayload struct {
	Type     string          `json:"type"`
	Elements []board.Element `json:"elements"`
}

func writeClipboardElements(els []board.Element) error {
	data, err := sonic.ConfigStd.Marshal(clipboardPayload{Type: clipboardType, Elements: els})
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}

// parseClipboard reads text from the system clipboard either as copied
// elements or, failing that, as plain text for a new note.
func parseClipboard(text string) ([]board.Element, string) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		var p clipboardPayload
		if err := sonic.ConfigStd.UnmarshalFromString(trimmed, &p); err == nil && p.Type == clipboardType {
			return p.Elements, ""
		}
	}
	return nil, cleanClipboardText(text)
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") &&
		(strings.Contains(t, "<html") || strings.Contains(t, "<body") || strings.Contains(t, "<div") || strings.Contains(t, "<p"))
}

// cleanClipboardText turns rich clipboard content into plain text with
// unix line endings and no control characters.
func cleanClipboardText(text string) string {
	switch {
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r >= 32 && r != 127 {
			return r
		}
		return -1
	}, text)
}

// extractTextFromRTF keeps the visible text of an RTF document. \par and
// \line become newlines, \tab a tab and \'hh the escaped byte.
func extractTextFromRTF(rtf string) string {
	var out strings.Builder
	out.Grow(len(rtf))
	for i := 0; i < len(rtf); i++ {
		c := rtf[i]
		switch c {
		case '{', '}', '\r', '\n':
			continue
		case '\\':
		default:
			out.WriteByte(c)
			continue
		}
		if i+1 >= len(rtf) {
			break
		}
		next := rtf[i+1]
		switch {
		case next == '\\' || next == '{' || next == '}':
			out.WriteByte(next)
			i++
		case next == '\'' && i+3 < len(rtf):
			if v, err := strconv.ParseUint(rtf[i+2:i+4], 16, 8); err == nil {
				out.WriteByte(byte(v))
			}
			i += 3
		case isASCIILetter(next):
			j := i + 1
			for j < len(rtf) && isASCIILetter(rtf[j]) {
				j++
			}
			word := rtf[i+1 : j]
			for j < len(rtf) && (rtf[j] == '-' || rtf[j] >= '0' && rtf[j] <= '9') {
				j++
			}
			if j < len(rtf) && rtf[j] == ' ' {
				j++
			}
			switch word {
			case "par", "line":
				out.WriteByte('\n')
			case "tab":
				out.WriteByte('\t')
			}
			i = j - 1
		default:
			i++
		}
	}
	return out.String()
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

func extractTextFromHTML(html string) string {
	var out strings.Builder
	out.Grow(len(html))
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return htmlEntities.Replace(out.String())
}
