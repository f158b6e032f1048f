// Package config loads and validates editor configuration from a TOML
// file. The file lives at DefaultPath (typically
// $XDG_CONFIG_HOME/texteditor/config.toml) and is optional: when it
// does not exist, Load returns the built-in defaults. A companion
// Watcher re-reads the file when it changes on disk so settings can be
// applied without restarting the editor.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Validation errors returned by Load and Validate.
var (
	ErrInvalidValue = errors.New("config: invalid value")
	ErrInvalidColor = errors.New("config: invalid color")
)

// Config holds every user-tunable setting.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Theme  ThemeConfig  `toml:"theme"`
	Log    LogConfig    `toml:"log"`
}

// EditorConfig controls buffer and viewport behavior.
type EditorConfig struct {
	// WordWrap enables soft wrapping at the view width.
	WordWrap bool `toml:"word_wrap"`
	// TabWidth is the number of spaces inserted per indent level.
	TabWidth int `toml:"tab_width"`
	// ScrollOff keeps this many rows visible above and below the caret.
	ScrollOff int `toml:"scrolloff"`
	// UndoCoalesceMs is the pause, in milliseconds, after which further
	// edits start a new undo group.
	UndoCoalesceMs int `toml:"undo_coalesce_ms"`
}

// ThemeConfig holds display colors as "#rrggbb" hex strings. An empty
// string keeps the built-in default for that element.
type ThemeConfig struct {
	Background     string `toml:"background"`
	Foreground     string `toml:"foreground"`
	SelectionBg    string `toml:"selection_bg"`
	SelectionFg    string `toml:"selection_fg"`
	MatchBg        string `toml:"match_bg"`
	MatchFg        string `toml:"match_fg"`
	CurrentMatchBg string `toml:"current_match_bg"`
	CurrentMatchFg string `toml:"current_match_fg"`
	StatusBg       string `toml:"status_bg"`
	StatusFg       string `toml:"status_fg"`
	VirtualFg      string `toml:"virtual_fg"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", or "error".
	Level string `toml:"level"`
	// File is the log destination path. Empty disables file logging.
	File string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			WordWrap:       true,
			TabWidth:       4,
			ScrollOff:      3,
			UndoCoalesceMs: 1000,
		},
		Theme: ThemeConfig{
			SelectionBg:    "#0000d7",
			SelectionFg:    "#ffffff",
			MatchBg:        "#008700",
			MatchFg:        "#000000",
			CurrentMatchBg: "#ffd700",
			CurrentMatchFg: "#000000",
			StatusBg:       "#3a3a3a",
			StatusFg:       "#ffffff",
			VirtualFg:      "#6c6c6c",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the standard location of the config file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "texteditor", "config.toml"), nil
}

// Load reads and validates the config file at path. A missing file is
// not an error; the defaults are returned. On any other failure the
// defaults are returned alongside the error so the caller always holds
// a usable configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks field ranges and color formats.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("%w: editor.tab_width %d (want 1-16)", ErrInvalidValue, c.Editor.TabWidth)
	}
	if c.Editor.ScrollOff < 0 {
		return fmt.Errorf("%w: editor.scrolloff %d (want >= 0)", ErrInvalidValue, c.Editor.ScrollOff)
	}
	if c.Editor.UndoCoalesceMs < 0 {
		return fmt.Errorf("%w: editor.undo_coalesce_ms %d (want >= 0)", ErrInvalidValue, c.Editor.UndoCoalesceMs)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (want debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	colors := []struct {
		key   string
		value string
	}{
		{"theme.background", c.Theme.Background},
		{"theme.foreground", c.Theme.Foreground},
		{"theme.selection_bg", c.Theme.SelectionBg},
		{"theme.selection_fg", c.Theme.SelectionFg},
		{"theme.match_bg", c.Theme.MatchBg},
		{"theme.match_fg", c.Theme.MatchFg},
		{"theme.current_match_bg", c.Theme.CurrentMatchBg},
		{"theme.current_match_fg", c.Theme.CurrentMatchFg},
		{"theme.status_bg", c.Theme.StatusBg},
		{"theme.status_fg", c.Theme.StatusFg},
		{"theme.virtual_fg", c.Theme.VirtualFg},
	}
	for _, cv := range colors {
		if cv.value == "" {
			continue
		}
		if _, err := ParseColor(cv.value); err != nil {
			return fmt.Errorf("%s: %w", cv.key, err)
		}
	}
	return nil
}

// CoalesceWindow converts UndoCoalesceMs to a duration. Zero falls
// back to one second.
func (e EditorConfig) CoalesceWindow() time.Duration {
	if e.UndoCoalesceMs <= 0 {
		return time.Second
	}
	return time.Duration(e.UndoCoalesceMs) * time.Millisecond
}

// ParseColor parses a "#rrggbb" or "#rgb" hex color string.
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}
