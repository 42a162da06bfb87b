package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/persist"
	"github.com/saichandra-1/white-board/internal/render"
)

// exportName derives an output file name for the given format from the
// board title.
func exportName(title, format string) string {
	name := persist.ExportFilename(title)
	if format == "json" {
		return name
	}
	return strings.TrimSuffix(name, persist.FileSuffix) + "." + format
}

// exportBoard writes snap to path as a PNG image, a PDF page or an export
// file. Nothing is written when encoding fails.
func exportBoard(path, format string, snap board.Snapshot, opts render.Options) error {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := render.PNG(&buf, snap.Elements, opts); err != nil {
			return fmt.Errorf("export png: %w", err)
		}
	case "pdf":
		if err := render.PDF(&buf, snap.Elements, opts); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
	case "json":
		data, err := persist.Encode(snap, opts.Theme, time.Now())
		if err != nil {
			return err
		}
		buf.Write(data)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// formatFor maps a file operation to its export format.
func formatFor(op FileOperation) string {
	switch op {
	case FileOpSavePNG:
		return "png"
	case FileOpSavePDF:
		return "pdf"
	default:
		return "json"
	}
}

// exportPath resolves the name typed at the file prompt into a path in the
// save directory with the extension the format expects.
func (m *model) exportPath(name string, op FileOperation) string {
	format := formatFor(op)
	name = strings.TrimSpace(name)
	if name == "" {
		name = exportName(m.board.Title(), format)
	}
	ext := "." + format
	if format == "json" {
		ext = persist.FileSuffix
	}
	if filepath.Ext(name) == "" {
		name += ext
	}
	if filepath.IsAbs(name) {
		return name
	}
	return m.config.GetSavePath(name)
}

// writeExport saves the board at path in the format op names.
func (m *model) writeExport(path string, op FileOperation) error {
	snap := m.board.CreateSnapshot()
	opts := render.Options{Theme: m.theme}
	if err := exportBoard(path, formatFor(op), snap, opts); err != nil {
		m.log.WithError(err).WithField("path", path).Error("export failed")
		return err
	}
	m.log.WithField("path", path).WithField("elements", len(snap.Elements)).Info("board exported")
	return nil
}

// openFile replaces the board with the file at path. The board is left
// alone when the file cannot be read or decoded.
func (m *model) openFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	snap, theme, err := persist.Decode(data, m.now())
	if err != nil {
		m.log.WithError(err).WithField("path", path).Warn("could not load board file")
		return err
	}
	m.discardDrafts()
	m.views.closeAll()
	m.board.LoadSnapshot(snap)
	if theme != "" {
		m.theme = theme
	}
	m.log.WithField("path", path).WithField("elements", len(snap.Elements)).Info("board loaded")
	return nil
}
