package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/stride/internal/calendar"
	"github.com/five82/stride/internal/config"
	"github.com/five82/stride/internal/prefs"
	"github.com/five82/stride/internal/schedule"
	"github.com/five82/stride/internal/ui"
)

// Options configure the stride application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/stride/prefs.toml
	Today      string // YYYY-MM-DD; empty follows the system clock
}

// Run boots the stride TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Printf("prefs: %v", err)
	}

	var clock calendar.Clock = calendar.SystemClock{}
	if s := strings.TrimSpace(opts.Today); s != "" {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return fmt.Errorf("parse -today: %w", err)
		}
		clock = calendar.FixedClock(d)
	}

	sched, err := schedule.Load(cfg.Workouts, cfg.ICSFile)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}
	log.Printf("stride: starting on %s, weeks start %s, %d workout entries", clock.Today(), cfg.WeekStartsOn, sched.Len())

	err = ui.Run(ui.Options{
		Context:   ctx,
		Config:    cfg,
		Clock:     clock,
		Schedule:  sched,
		ThemeName: userPrefs.Theme,
		Tab:       userPrefs.Tab,
		PrefsPath: opts.PrefsPath,
	})
	if err != nil && ctx.Err() != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled)) {
		log.Printf("stride: stopped by signal")
		return nil
	}
	return err
}

// setupLogging routes the standard logger to path, or discards it when no
// log file is configured. Anything written to stderr would corrupt the
// alternate screen.
func setupLogging(path string) (func(), error) {
	if strings.TrimSpace(path) == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "stride")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
