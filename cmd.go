package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saichandra-1/white-board/internal/board"
	"github.com/saichandra-1/white-board/internal/persist"
	"github.com/saichandra-1/white-board/internal/render"
	"github.com/saichandra-1/white-board/internal/whiteboard"
)

var (
	// Global flags
	configPath    string
	storageFlag   string
	themeFlag     string
	verbose       bool
	exportOut     string
	exportScale   float64
	exportPadding float64
)

var rootCmd = &cobra.Command{
	Use:   "designboard",
	Short: "designboard - a whiteboard in your terminal",
	Long: `designboard is a whiteboard for sticky notes, shapes, text, freehand
drawings and multi-point arrows, edited with the mouse in the terminal.

Examples:
  designboard                               # Open the board
  designboard export png plan.designboard.json -o plan.png
  designboard export pdf                    # Export the working board
  designboard info plan.designboard.json
  designboard convert old.json new.designboard.json`,
	Version:       "0.4.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var exportCmd = &cobra.Command{
	Use:   "export <png|pdf|json> [board-file]",
	Short: "Export a board as PNG, PDF or an export file",
	Long: `Export renders a saved board file, or the working board when no file is
given, as a PNG image, a PDF page or a designboard export file.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

var infoCmd = &cobra.Command{
	Use:   "info [board-file]",
	Short: "Show what a board contains",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

var convertCmd = &cobra.Command{
	Use:   "convert <in> [out]",
	Short: "Rewrite a board file in the current export format",
	Long: `Convert reads a board file in the current or the legacy untagged format and
writes it back as a tagged export file. Without [out] the name is derived
from the board title.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/"+configFileName+")")
	rootCmd.PersistentFlags().StringVar(&storageFlag, "storage", "", "working copy storage: file, redis or none")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "light or dark")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default derived from the board title)")
	exportCmd.Flags().Float64Var(&exportScale, "scale", 1, "pixels per board unit")
	exportCmd.Flags().Float64Var(&exportPadding, "padding", 20, "margin around the elements in board units")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(convertCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settings resolves the config file and the flags that override it.
func settings() (*Config, error) {
	config := loadConfig(configPath)
	if storageFlag != "" {
		switch s := strings.ToLower(storageFlag); s {
		case "file", "redis", "none":
			config.Storage = s
		default:
			return nil, fmt.Errorf("unknown storage %q", storageFlag)
		}
	}
	if themeFlag != "" {
		t := board.Theme(strings.ToLower(themeFlag))
		if !t.Valid() {
			return nil, fmt.Errorf("unknown theme %q", themeFlag)
		}
		config.Theme = t
	}
	if verbose {
		config.LogLevel = log.DebugLevel
	}
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		config.LogLevel = log.DebugLevel
	}
	return config, nil
}

// setupLogging sends the standard logger to stderr, or to the log file
// while the TUI owns the terminal. The returned function closes the file.
func setupLogging(config *Config, toFile bool) func() {
	log.SetLevel(config.LogLevel)
	if !toFile {
		log.SetOutput(os.Stderr)
		return func() {}
	}
	path := config.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	return func() { f.Close() }
}

// openStore builds the working copy store the config asks for.
func openStore(ctx context.Context, config *Config) (persist.Store, func(), error) {
	switch config.Storage {
	case "none":
		return persist.Nop{}, func() {}, nil
	case "redis":
		rc := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx).Err(); err != nil {
			rc.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", config.RedisAddr, err)
		}
		return persist.NewRedisStore(rc, "designboard:"), func() { rc.Close() }, nil
	default:
		return persist.NewFileStore(config.StorageDir()), func() {}, nil
	}
}

// openBoard returns a hydrated board over the configured store.
func openBoard(ctx context.Context, config *Config, logger log.FieldLogger) (*whiteboard.Board, func(), error) {
	store, closeStore, err := openStore(ctx, config)
	if err != nil {
		return nil, nil, err
	}
	b := whiteboard.New(whiteboard.Options{Store: store, Logger: logger})
	b.Hydrate(ctx)
	return b, closeStore, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	config, err := settings()
	if err != nil {
		return err
	}
	closeLog := setupLogging(config, true)
	defer closeLog()

	b, closeStore, err := openBoard(cmd.Context(), config, log.StandardLogger())
	if err != nil {
		log.WithError(err).Error("failed to open storage")
		return err
	}
	defer closeStore()
	if config.Samples && b.SeedSample() {
		log.Debug("placed sample notes")
	}

	m := initialModel(b, config, log.StandardLogger())
	defer m.close()
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("program exited with an error")
		return err
	}
	return nil
}

// source loads the board named by args, or the working board when args is
// empty.
func source(ctx context.Context, config *Config, args []string) (board.Snapshot, board.Theme, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return board.Snapshot{}, "", err
		}
		snap, theme, err := persist.Decode(data, time.Now())
		if err != nil {
			return board.Snapshot{}, "", fmt.Errorf("%s: %w", args[0], err)
		}
		return snap, theme, nil
	}
	snap, err := loadStored(ctx, config)
	return snap, "", err
}

// loadStored reads the working board without hydrating it, so the store is
// neither rewritten nor cleared. Nothing stored reads as a fresh board.
func loadStored(ctx context.Context, config *Config) (board.Snapshot, error) {
	store, closeStore, err := openStore(ctx, config)
	if err != nil {
		return board.Snapshot{}, err
	}
	defer closeStore()

	data, err := store.Load(ctx, persist.StorageKey)
	if errors.Is(err, persist.ErrNotFound) {
		return whiteboard.New(whiteboard.Options{}).CreateSnapshot(), nil
	}
	if err != nil {
		return board.Snapshot{}, err
	}
	snap, err := persist.DecodeSnapshot(data)
	if err != nil {
		return board.Snapshot{}, fmt.Errorf("stored board: %w", err)
	}
	if snap.BoardTitle == "" {
		snap.BoardTitle = whiteboard.DefaultTitle
	}
	return snap, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	config, err := settings()
	if err != nil {
		return err
	}
	defer setupLogging(config, false)()

	format := strings.ToLower(args[0])
	snap, theme, err := source(cmd.Context(), config, args[1:])
	if err != nil {
		return err
	}
	if theme == "" || themeFlag != "" {
		theme = config.Theme
	}

	out := exportOut
	if out == "" {
		out = exportName(snap.BoardTitle, format)
	}
	opts := render.Options{Scale: exportScale, Padding: exportPadding, Theme: theme}
	if err := exportBoard(out, format, snap, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	config, err := settings()
	if err != nil {
		return err
	}
	defer setupLogging(config, false)()

	snap, theme, err := source(cmd.Context(), config, args)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Title:    %s\n", snap.BoardTitle)
	fmt.Fprintf(w, "Updated:  %s\n", snap.UpdatedAt)
	fmt.Fprintf(w, "Tool:     %s\n", snap.CurrentTool)
	fmt.Fprintf(w, "Zoom:     %.2f\n", snap.CanvasState.Zoom)
	if theme != "" {
		fmt.Fprintf(w, "Theme:    %s\n", theme)
	}
	fmt.Fprintf(w, "Elements: %d\n", len(snap.Elements))

	counts := kindCounts(snap.Elements)
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-12s %d\n", k, counts[k])
	}
	if scene, err := render.NewScene(snap.Elements, render.Options{Padding: -1}); err == nil {
		bb := scene.Bounds
		fmt.Fprintf(w, "Bounds:   (%.0f, %.0f) %.0fx%.0f\n", bb.MinX, bb.MinY, bb.Width(), bb.Height())
	}
	return nil
}

// kindCounts tallies elements by kind, with shapes split by shape type.
func kindCounts(els []board.Element) map[string]int {
	counts := make(map[string]int)
	for _, e := range els {
		switch d := e.Data.(type) {
		case board.ShapeData:
			counts[string(d.ShapeType)]++
		case board.StickyNoteData, board.TextBoxData, board.DrawingData:
			counts[string(e.Kind())]++
		}
	}
	return counts
}

func runConvert(cmd *cobra.Command, args []string) error {
	config, err := settings()
	if err != nil {
		return err
	}
	defer setupLogging(config, false)()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	snap, theme, err := persist.Decode(data, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if themeFlag != "" {
		theme = config.Theme
	}
	out := persist.ExportFilename(snap.BoardTitle)
	if len(args) > 1 {
		out = args[1]
	}
	if err := exportBoard(out, "json", snap, render.Options{Theme: theme}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	return nil
}
