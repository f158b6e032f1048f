package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Editor.WordWrap {
		t.Error("WordWrap = false, want true")
	}
	if cfg.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.ScrollOff != 3 {
		t.Errorf("ScrollOff = %d, want 3", cfg.Editor.ScrollOff)
	}
	if cfg.Editor.UndoCoalesceMs != 1000 {
		t.Errorf("UndoCoalesceMs = %d, want 1000", cfg.Editor.UndoCoalesceMs)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v, want nil for missing file", err)
	}
	if cfg != Default() {
		t.Errorf("Load missing file = %+v, want defaults", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfigFile(t, `
[editor]
word_wrap = false
tab_width = 2
scrolloff = 5
undo_coalesce_ms = 250

[theme]
selection_bg = "#ff0000"

[log]
level = "debug"
file = "/tmp/editor.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Editor.WordWrap {
		t.Error("WordWrap = true, want false")
	}
	if cfg.Editor.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", cfg.Editor.TabWidth)
	}
	if cfg.Editor.ScrollOff != 5 {
		t.Errorf("ScrollOff = %d, want 5", cfg.Editor.ScrollOff)
	}
	if cfg.Editor.UndoCoalesceMs != 250 {
		t.Errorf("UndoCoalesceMs = %d, want 250", cfg.Editor.UndoCoalesceMs)
	}
	if cfg.Theme.SelectionBg != "#ff0000" {
		t.Errorf("SelectionBg = %q, want %q", cfg.Theme.SelectionBg, "#ff0000")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.File != "/tmp/editor.log" {
		t.Errorf("Log.File = %q, want %q", cfg.Log.File, "/tmp/editor.log")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, "[editor]\ntab_width = 8\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	// Everything else stays at the defaults.
	if !cfg.Editor.WordWrap {
		t.Error("WordWrap = false, want default true")
	}
	if cfg.Editor.ScrollOff != 3 {
		t.Errorf("ScrollOff = %d, want default 3", cfg.Editor.ScrollOff)
	}
	if cfg.Theme.SelectionBg != Default().Theme.SelectionBg {
		t.Errorf("SelectionBg = %q, want default %q", cfg.Theme.SelectionBg, Default().Theme.SelectionBg)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfigFile(t, "tab_width = [broken\n")

	cfg, err := Load(path)
	if err == nil {
		t.Fatal("Load error = nil, want parse error")
	}
	if cfg != Default() {
		t.Errorf("Load with parse error = %+v, want defaults", cfg)
	}
}

func TestLoadInvalidValueReturnsDefaults(t *testing.T) {
	path := writeConfigFile(t, "[editor]\ntab_width = 0\n")

	cfg, err := Load(path)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Load error = %v, want ErrInvalidValue", err)
	}
	if cfg != Default() {
		t.Errorf("Load with invalid value = %+v, want defaults", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"tab width zero", func(c *Config) { c.Editor.TabWidth = 0 }, ErrInvalidValue},
		{"tab width too large", func(c *Config) { c.Editor.TabWidth = 17 }, ErrInvalidValue},
		{"negative scrolloff", func(c *Config) { c.Editor.ScrollOff = -1 }, ErrInvalidValue},
		{"negative coalesce window", func(c *Config) { c.Editor.UndoCoalesceMs = -5 }, ErrInvalidValue},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidValue},
		{"named color rejected", func(c *Config) { c.Theme.MatchBg = "green" }, ErrInvalidColor},
		{"truncated hex rejected", func(c *Config) { c.Theme.StatusFg = "#ff00" }, ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAcceptsEmptyColors(t *testing.T) {
	cfg := Default()
	cfg.Theme = ThemeConfig{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with empty theme error = %v", err)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	if err != nil {
		t.Fatalf("ParseColor(#ff0000) error = %v", err)
	}
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("ParseColor(#ff0000) = %v, want pure red", c)
	}

	if _, err := ParseColor("#abc"); err != nil {
		t.Errorf("ParseColor(#abc) error = %v, want short form accepted", err)
	}

	for _, bad := range []string{"", "red", "#12", "#12345", "ff0000"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestCoalesceWindow(t *testing.T) {
	e := EditorConfig{UndoCoalesceMs: 250}
	if got := e.CoalesceWindow(); got != 250*time.Millisecond {
		t.Errorf("CoalesceWindow() = %v, want 250ms", got)
	}

	e.UndoCoalesceMs = 0
	if got := e.CoalesceWindow(); got != time.Second {
		t.Errorf("CoalesceWindow() with zero = %v, want 1s", got)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error = %v", err)
	}
	want := filepath.Join("texteditor", "config.toml")
	if !strings.HasSuffix(path, want) {
		t.Errorf("DefaultPath() = %q, want suffix %q", path, want)
	}
}
