package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/stride/internal/calendar"
	"github.com/five82/stride/internal/schedule"
)

// Gesture holds the calendar's drag geometry in engine units.
type Gesture struct {
	Threshold        float64
	ClosedHeight     float64
	OpenHeight       float64
	ActivationOffset float64
	RowUnits         float64 // engine units per terminal row
	ColumnUnits      float64 // engine units per terminal column
	Damping          float64
	Frequency        float64
}

// Config captures stride's runtime settings.
type Config struct {
	WeekStartsOn    time.Weekday
	InitialSelected *calendar.Date
	Gesture         Gesture
	LogFile         string
	ICSFile         string
	Workouts        []schedule.Rule
}

const (
	defaultConfigPath = "~/.config/stride/config.toml"

	defaultThreshold        = calendar.DefaultThreshold
	defaultClosedHeight     = calendar.DefaultClosedHeight
	defaultOpenHeight       = calendar.DefaultOpenHeight
	defaultActivationOffset = calendar.DefaultActivationOffset
	defaultRowUnits         = 10
	defaultColumnUnits      = 10
	defaultDamping          = 0.7
	defaultFrequency        = 6
)

type rawGesture struct {
	Threshold        float64 `toml:"threshold" yaml:"threshold"`
	ClosedHeight     float64 `toml:"closed_height" yaml:"closed_height"`
	OpenHeight       float64 `toml:"open_height" yaml:"open_height"`
	ActivationOffset float64 `toml:"activation_offset" yaml:"activation_offset"`
	RowUnits         float64 `toml:"row_units" yaml:"row_units"`
	ColumnUnits      float64 `toml:"column_units" yaml:"column_units"`
	Damping          float64 `toml:"damping" yaml:"damping"`
	Frequency        float64 `toml:"frequency" yaml:"frequency"`
}

type rawWorkout struct {
	Name  string `toml:"name" yaml:"name"`
	RRule string `toml:"rrule" yaml:"rrule"`
	Start string `toml:"start" yaml:"start"`
}

type rawConfig struct {
	WeekStartsOn    string       `toml:"week_starts_on" yaml:"week_starts_on"`
	InitialSelected string       `toml:"initial_selected" yaml:"initial_selected"`
	Gesture         rawGesture   `toml:"gesture" yaml:"gesture"`
	LogFile         string       `toml:"log_file" yaml:"log_file"`
	ICSFile         string       `toml:"ics_file" yaml:"ics_file"`
	Workouts        []rawWorkout `toml:"workouts" yaml:"workouts"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		WeekStartsOn: time.Sunday,
		Gesture: Gesture{
			Threshold:        defaultThreshold,
			ClosedHeight:     defaultClosedHeight,
			OpenHeight:       defaultOpenHeight,
			ActivationOffset: defaultActivationOffset,
			RowUnits:         defaultRowUnits,
			ColumnUnits:      defaultColumnUnits,
			Damping:          defaultDamping,
			Frequency:        defaultFrequency,
		},
	}
}

// Load locates and parses the stride config, falling back to defaults when
// missing. Files ending in .yaml or .yml are read as YAML, anything else as
// TOML.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		err = toml.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := apply(&cfg, raw); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func apply(cfg *Config, raw rawConfig) error {
	if s := strings.TrimSpace(raw.WeekStartsOn); s != "" {
		wd, err := ParseWeekday(s)
		if err != nil {
			return err
		}
		cfg.WeekStartsOn = wd
	}

	if s := strings.TrimSpace(raw.InitialSelected); s != "" {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return fmt.Errorf("initial_selected: %w", err)
		}
		cfg.InitialSelected = &d
	}

	g := &cfg.Gesture
	setPositive(&g.Threshold, raw.Gesture.Threshold)
	setPositive(&g.ClosedHeight, raw.Gesture.ClosedHeight)
	setPositive(&g.OpenHeight, raw.Gesture.OpenHeight)
	setPositive(&g.ActivationOffset, raw.Gesture.ActivationOffset)
	setPositive(&g.RowUnits, raw.Gesture.RowUnits)
	setPositive(&g.ColumnUnits, raw.Gesture.ColumnUnits)
	setPositive(&g.Damping, raw.Gesture.Damping)
	setPositive(&g.Frequency, raw.Gesture.Frequency)
	if g.OpenHeight <= g.ClosedHeight {
		return fmt.Errorf("gesture: open_height %.0f must exceed closed_height %.0f", g.OpenHeight, g.ClosedHeight)
	}

	if s := strings.TrimSpace(raw.LogFile); s != "" {
		cfg.LogFile = mustExpand(s)
	}
	if s := strings.TrimSpace(raw.ICSFile); s != "" {
		cfg.ICSFile = mustExpand(s)
	}

	for i, w := range raw.Workouts {
		rule := schedule.Rule{Name: strings.TrimSpace(w.Name), RRule: strings.TrimSpace(w.RRule)}
		if s := strings.TrimSpace(w.Start); s != "" {
			d, err := calendar.ParseDate(s)
			if err != nil {
				return fmt.Errorf("workouts[%d]: %w", i, err)
			}
			rule.Start = d
		}
		cfg.Workouts = append(cfg.Workouts, rule)
	}
	return nil
}

// ParseWeekday accepts full or three-letter English day names.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if key == name || key == name[:3] {
			return wd, nil
		}
	}
	return time.Sunday, fmt.Errorf("week_starts_on: unknown weekday %q", s)
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
