package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/persist"
	"github.com/saichandra-1/white-board/internal/whiteboard"
)

func initialModel(b *whiteboard.Board, config *Config, logger log.FieldLogger) model {
	if config == nil {
		config = defaultConfig()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	views := newElementViews(b)
	m := model{
		board:             b,
		views:             views,
		theme:             config.Theme,
		config:            config,
		log:               logger,
		now:               time.Now,
		selectedFileIndex: -1,
	}
	m.unsubscribe = b.Subscribe(func(st whiteboard.State) {
		views.sync(st.Elements())
	})
	return m
}

// close releases the board subscription and every element controller.
func (m *model) close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.views.closeAll()
}

func (m model) Init() tea.Cmd {
	return nil
}

// exportDoneMsg reports an export that ran in the background.
type exportDoneMsg struct {
	path string
	err  error
}

func (m model) exportCmd(path string, op FileOperation) tea.Cmd {
	return func() tea.Msg {
		return exportDoneMsg{path: path, err: m.writeExport(path, op)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			m.successMessage = ""
		} else {
			m.errorMessage = ""
			m.successMessage = "Saved " + filepath.Base(msg.path)
		}
		return m, nil

	case tea.MouseMsg:
		if m.help || m.mode != ModeNormal {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeEditing:
			return m.handleEditKey(msg)
		case ModeTitle:
			return m.handleTitleKey(msg)
		case ModeFileInput:
			return m.handleFileKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		switch {
		case m.arrow != nil:
			m.log.WithField("id", m.arrow.ID).Debug("arrow draft discarded")
			m.arrow = nil
		case m.gesture != gestureNone:
			m.cancelGesture()
		default:
			m.board.SelectElements()
		}
		m.errorMessage = ""
		m.successMessage = ""
		return m, nil
	}

	key := msg.String()
	if t, ok := toolKeys[key]; ok {
		m.setTool(t)
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		m.finalizeArrow()
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
		return m, nil
	case "enter":
		if m.arrow != nil {
			m.finalizeArrow()
			return m, nil
		}
		m.startEditing()
		return m, nil
	case "e":
		m.startEditing()
		return m, nil
	case " ", "space":
		m.tap(point{X: m.cursorX, Y: m.cursorY})
		return m, nil
	case "ctrl+z", "u":
		m.undo()
		return m, nil
	case "ctrl+y", "ctrl+shift+z", "U":
		m.redo()
		return m, nil
	case "delete", "backspace", "x":
		m.deleteSelected()
		return m, nil
	case "ctrl+a":
		m.board.SelectAll()
		return m, nil
	case "y":
		m.copySelection()
		return m, nil
	case "p":
		m.paste()
		return m, nil
	case "ctrl+v":
		m.pasteSystem()
		return m, nil
	case "T":
		m.mode = ModeTitle
		m.titleText = m.board.Title()
		return m, nil
	case "ctrl+t":
		if m.theme == board.ThemeDark {
			m.theme = board.ThemeLight
		} else {
			m.theme = board.ThemeDark
		}
		return m, nil
	case "ctrl+n":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClearBoard
			return m, nil
		}
		m.clearBoard()
		return m, nil
	case "s":
		m.startFileInput(FileOpSave)
		return m, nil
	case "S":
		m.startFileInput(FileOpSavePNG)
		return m, nil
	case "X":
		m.startFileInput(FileOpSavePDF)
		return m, nil
	case "o":
		m.startFileInput(FileOpOpen)
		m.scanBoardFiles()
		return m, nil
	}

	m.handleNavigation(key)
	return m, nil
}

// setTool switches tools. Leaving the arrow tool turns the draft into an
// arrow.
func (m *model) setTool(t board.Tool) {
	if t != board.ToolArrow {
		m.finalizeArrow()
	}
	m.board.SetTool(t)
	m.successMessage = ""
}

// finalizeArrow adds the arrow draft to the board. A draft with fewer than
// two distinct points is dropped.
func (m *model) finalizeArrow() {
	if m.arrow == nil {
		return
	}
	a := m.arrow
	m.arrow = nil
	el, ok := a.Finalize(m.board.NextZIndex())
	if !ok {
		m.log.WithField("id", a.ID).Debug("arrow draft discarded, fewer than two points")
		return
	}
	m.board.AddElement(el)
	m.board.SelectElements(el.ID)
}

// discardDrafts drops every in-progress gesture and draft.
func (m *model) discardDrafts() {
	m.arrow = nil
	m.cancelGesture()
}

func (m *model) startEditing() {
	id, ok := m.board.Canvas().Primary()
	if !ok {
		return
	}
	e, ok := m.board.Element(id)
	if !ok {
		return
	}
	switch d := e.Data.(type) {
	case board.StickyNoteData:
		m.editText = d.Content
	case board.TextBoxData:
		m.editText = d.Content
	default:
		return
	}
	m.mode = ModeEditing
	m.editID = id
	m.originalEditText = m.editText
	m.editCursorPos = len([]rune(m.editText))
}

// commitEdit writes the edit buffer back as one content patch.
func (m *model) commitEdit() {
	e, ok := m.board.Element(m.editID)
	if ok && m.editText != m.originalEditText {
		edited := e.Clone()
		switch d := e.Data.(type) {
		case board.StickyNoteData:
			d.Content = m.editText
			edited.Data = d
		case board.TextBoxData:
			d.Content = m.editText
			edited.Data = d
		}
		if p := board.Diff(e, edited); !p.IsEmpty() {
			m.board.UpdateElement(m.editID, p)
		}
	}
	m.mode = ModeNormal
	m.editID = ""
	m.editText = ""
	m.originalEditText = ""
}

func (m model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.editID = ""
		m.editText = ""
		return m, nil
	case "enter", "ctrl+s":
		m.commitEdit()
		return m, nil
	case "alt+enter", "ctrl+j":
		m.editText, m.editCursorPos = insertAt(m.editText, m.editCursorPos, "\n")
		return m, nil
	}
	m.editText, m.editCursorPos = editLine(m.editText, m.editCursorPos, msg)
	return m, nil
}

func (m model) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.titleText = ""
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.titleText)
		if title == "" {
			title = whiteboard.DefaultTitle
		}
		m.board.SetBoardTitle(title)
		m.mode = ModeNormal
		m.titleText = ""
		return m, nil
	}
	pos := len([]rune(m.titleText))
	m.titleText, _ = editLine(m.titleText, pos, msg)
	return m, nil
}

// editLine applies a key to a text buffer with a rune cursor.
func editLine(text string, pos int, msg tea.KeyMsg) (string, int) {
	runes := []rune(text)
	pos = max(0, min(pos, len(runes)))
	switch msg.Type {
	case tea.KeyBackspace:
		if pos > 0 {
			runes = append(runes[:pos-1], runes[pos:]...)
			pos--
		}
	case tea.KeyDelete:
		if pos < len(runes) {
			runes = append(runes[:pos], runes[pos+1:]...)
		}
	case tea.KeyLeft:
		pos = max(0, pos-1)
	case tea.KeyRight:
		pos = min(len(runes), pos+1)
	case tea.KeyHome:
		pos = 0
	case tea.KeyEnd:
		pos = len(runes)
	case tea.KeySpace:
		return insertAt(text, pos, " ")
	case tea.KeyRunes:
		return insertAt(text, pos, string(msg.Runes))
	}
	return string(runes), pos
}

func insertAt(text string, pos int, s string) (string, int) {
	runes := []rune(text)
	pos = max(0, min(pos, len(runes)))
	ins := []rune(s)
	out := make([]rune, 0, len(runes)+len(ins))
	out = append(out, runes[:pos]...)
	out = append(out, ins...)
	out = append(out, runes[pos:]...)
	return string(out), pos + len(ins)
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	m.errorMessage = ""
	m.successMessage = ""
	if op != FileOpOpen {
		format := formatFor(op)
		name := strings.TrimSuffix(exportName(m.board.Title(), format), persist.FileSuffix)
		m.filename = strings.TrimSuffix(name, "."+format)
	}
}

// scanBoardFiles lists the saved boards in the save directory.
func (m *model) scanBoardFiles() {
	m.fileList = []string{}
	m.selectedFileIndex = -1

	dir := m.config.SaveDirectory
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(name), ".json") {
			m.fileList = append(m.fileList, name)
		}
	}
	sort.Strings(m.fileList)
	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = m.fileList[0]
	}
}

func (m model) handleFileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m, nil
	case "up", "down":
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			step := 1
			if msg.String() == "up" {
				step = len(m.fileList) - 1
			}
			m.selectedFileIndex = (max(0, m.selectedFileIndex) + step) % len(m.fileList)
			m.filename = m.fileList[m.selectedFileIndex]
		}
		return m, nil
	case "enter":
		return m.confirmFile()
	}
	pos := len([]rune(m.filename))
	m.filename, _ = editLine(m.filename, pos, msg)
	return m, nil
}

func (m model) confirmFile() (tea.Model, tea.Cmd) {
	if m.fileOp == FileOpOpen {
		path := strings.TrimSpace(m.filename)
		if path == "" {
			m.errorMessage = "no file name"
			return m, nil
		}
		if !filepath.IsAbs(path) && m.config.SaveDirectory != "" {
			path = filepath.Join(m.config.SaveDirectory, path)
		}
		if err := m.openFile(path); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.mode = ModeNormal
		m.errorMessage = ""
		m.successMessage = "Opened " + filepath.Base(path)
		return m, nil
	}

	path := m.exportPath(m.filename, m.fileOp)
	if _, err := os.Stat(path); err == nil && m.config.Confirmations {
		m.pendingPath = path
		m.mode = ModeConfirm
		m.confirmAction = ConfirmOverwriteFile
		return m, nil
	}
	m.mode = ModeNormal
	m.successMessage = "Saving..."
	return m, m.exportCmd(path, m.fileOp)
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			m.finalizeArrow()
			return m, tea.Quit
		case ConfirmClearBoard:
			m.clearBoard()
		case ConfirmOverwriteFile:
			path := m.pendingPath
			m.pendingPath = ""
			m.successMessage = "Saving..."
			return m, m.exportCmd(path, m.fileOp)
		}
		return m, nil
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
		return m, nil
	}
	return m, nil
}

// clearBoard empties the board and forgets the stored copy.
func (m *model) clearBoard() {
	m.discardDrafts()
	m.views.closeAll()
	m.board.ClearBoard(whiteboard.ClearOptions{})
	m.successMessage = "Board cleared"
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		m.helpScroll++
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
	return m, nil
}

// canvasHeight is the number of rows left for the board under the tool
// bar and status line.
func (m model) canvasHeight() int {
	return max(1, m.height-2)
}

var (
	toolBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb")).Background(lipgloss.Color("#374151"))
	activeToolStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color(accentColor))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	width := max(1, m.width)
	lines := m.renderCanvas(width, m.canvasHeight())

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(m.toolBar(width))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

// toolBarItem is one tool button and the columns it covers.
type toolBarItem struct {
	tool       board.Tool
	label      string
	start, end int
}

func toolBarItems() []toolBarItem {
	keys := make(map[board.Tool]string, len(toolKeys))
	for k, t := range toolKeys {
		keys[t] = k
	}
	items := make([]toolBarItem, 0, len(board.Tools))
	col := 0
	for _, t := range board.Tools {
		label := fmt.Sprintf(" %s:%s ", keys[t], t)
		items = append(items, toolBarItem{tool: t, label: label, start: col, end: col + len(label)})
		col += len(label)
	}
	return items
}

func (m model) toolBar(width int) string {
	current := m.board.Tool()
	var sb strings.Builder
	for _, item := range toolBarItems() {
		if item.tool == current {
			sb.WriteString(activeToolStyle.Render(item.label))
		} else {
			sb.WriteString(toolBarStyle.Render(item.label))
		}
	}
	undo, redo := "-", "-"
	if m.board.CanUndo() {
		undo = "u"
	}
	if m.board.CanRedo() {
		redo = "U"
	}
	sb.WriteString(toolBarStyle.Render(fmt.Sprintf(" undo:%s redo:%s | %s ", undo, redo, m.theme)))
	return lipgloss.NewStyle().MaxWidth(width).Render(sb.String())
}

func (m model) statusLine() string {
	canvas := m.board.Canvas()
	title := m.board.Title()
	switch m.mode {
	case ModeEditing:
		return statusStyle.Render(fmt.Sprintf("Mode: EDIT | Text: %s | Enter=save, Alt+Enter=newline, Esc=cancel",
			withCursor(strings.ReplaceAll(m.editText, "\n", "⏎"), m.editCursorPos)))
	case ModeTitle:
		return statusStyle.Render(fmt.Sprintf("Mode: TITLE | %s | Enter=confirm, Esc=cancel", withCursor(m.titleText, len([]rune(m.titleText)))))
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpSave:
			opStr = "Save"
		case FileOpOpen:
			opStr = "Open"
		case FileOpSavePNG:
			opStr = "Export PNG"
		case FileOpSavePDF:
			opStr = "Export PDF"
		}
		status := fmt.Sprintf("Mode: FILE | %s filename: %s", opStr, withCursor(m.filename, len([]rune(m.filename))))
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			status += fmt.Sprintf(" (%d/%d) | ↑/↓=browse", m.selectedFileIndex+1, len(m.fileList))
		}
		status += " | Enter=confirm, Esc=cancel"
		if m.errorMessage != "" {
			return errorStyle.Render("ERROR: "+m.errorMessage) + " " + statusStyle.Render(status)
		}
		return statusStyle.Render(status)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit? (y/n)"
		case ConfirmClearBoard:
			message = "Clear the whole board? This cannot be undone. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("%s exists. Overwrite? (y/n)", filepath.Base(m.pendingPath))
		}
		return errorStyle.Render(message)
	}

	status := fmt.Sprintf("%s | Mode: %s | Zoom: %d%% | Elements: %d", title, m.modeString(), int(canvas.Zoom*100+0.5), len(m.board.Elements()))
	if n := len(canvas.SelectedElementIDs); n > 0 {
		status += fmt.Sprintf(" | Selected: %d", n)
	}
	if m.arrow != nil {
		status += fmt.Sprintf(" | Arrow: %d points, Enter=finish, Esc=discard", len(m.arrow.Committed()))
	}
	out := statusStyle.Render(status)
	switch {
	case m.errorMessage != "":
		out += " " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		out += " " + successStyle.Render(m.successMessage)
	default:
		out += statusStyle.Render(" | ? for help | q to quit")
	}
	return out
}

func withCursor(text string, pos int) string {
	runes := []rune(text)
	pos = max(0, min(pos, len(runes)))
	return string(runes[:pos]) + "█" + string(runes[pos:])
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return strings.ToUpper(string(m.board.Tool()))
	case ModeEditing:
		return "EDIT"
	case ModeTitle:
		return "TITLE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"designboard Help",
	"================",
	"",
	"Tools:",
	"------",
	"  v                Select: click to select, drag to move, drag empty space to pan",
	"  n                Sticky note: click to place",
	"  d                Draw: drag to draw a freehand stroke",
	"  t                Text: click to place a text box",
	"  r / c / 3        Rectangle / circle / triangle: click to place",
	"  a                Arrow: click to add points, double click or Enter to finish",
	"",
	"Selection:",
	"----------",
	"  Shift+click      Add or remove an element from the selection",
	"  ■ grips          Drag to resize (circles keep their proportions)",
	"  ● grip           Drag to rotate",
	"  Ctrl+A           Select everything",
	"  Esc              Clear selection, cancel a drag or discard an arrow",
	"  x / Delete       Delete the selection",
	"  e / Enter        Edit the text of the selected note or text box",
	"  Double click     Edit a note or text box",
	"",
	"Clipboard:",
	"----------",
	"  y                Copy the selection",
	"  p                Paste the copied elements",
	"  Ctrl+V           Paste from the system clipboard",
	"",
	"View:",
	"-----",
	"  h/←/j/↓/k/↑/l/→  Move the cursor",
	"  H/J/K/L          Pan the board",
	"  Space            Click at the cursor",
	"  + / -            Zoom in / out at the cursor",
	"  0                Reset zoom and pan",
	"  Mouse wheel      Zoom toward the pointer",
	"",
	"Board:",
	"------",
	"  u / Ctrl+Z       Undo",
	"  U / Ctrl+Y       Redo",
	"  T                Rename the board",
	"  Ctrl+T           Toggle light and dark theme",
	"  Ctrl+N           Clear the board",
	"",
	"Files:",
	"------",
	"  s                Save as a board file",
	"  o                Open a board file",
	"  S                Export PNG",
	"  X                Export PDF",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := max(1, m.height-1)
	startLine := min(m.helpScroll, max(0, len(helpLines)-visibleHeight))
	endLine := min(len(helpLines), startLine+visibleHeight)

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
