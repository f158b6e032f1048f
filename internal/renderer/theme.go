package renderer

import (
	"github.com/ThymeKeeper/texteditor/internal/config"
	"github.com/ThymeKeeper/texteditor/internal/renderer/backend"
)

// Theme is the resolved style set the renderer paints with.
type Theme struct {
	// Text is the base style for buffer content. Zero colors keep the
	// terminal defaults.
	Text backend.Style

	Selection    backend.Style
	Match        backend.Style
	CurrentMatch backend.Style
	Status       backend.Style

	// Virtual styles the "~" markers on rows outside the document.
	Virtual backend.Style

	// Dim styles the find bar chrome while the buffer has focus.
	Dim backend.Style

	// Field and FieldActive style prompt input fields.
	Field       backend.Style
	FieldActive backend.Style
}

func defaultTheme() Theme {
	return Theme{
		Selection:    backend.Style{BG: backend.RGB(0, 0, 215), FG: backend.RGB(255, 255, 255)},
		Match:        backend.Style{BG: backend.RGB(0, 135, 0), FG: backend.RGB(0, 0, 0)},
		CurrentMatch: backend.Style{BG: backend.RGB(255, 215, 0), FG: backend.RGB(0, 0, 0)},
		Status:       backend.Style{BG: backend.RGB(58, 58, 58), FG: backend.RGB(255, 255, 255)},
		Virtual:      backend.Style{FG: backend.RGB(108, 108, 108)},
		Dim:          backend.Style{FG: backend.RGB(108, 108, 108)},
		Field:        backend.Style{Underline: true},
		FieldActive:  backend.Style{Underline: true},
	}
}

// NewTheme resolves a theme config into concrete styles. Empty or
// invalid color specs keep the built-in defaults.
func NewTheme(cfg config.ThemeConfig) Theme {
	t := defaultTheme()

	apply := func(dst *backend.Color, spec string) {
		if spec == "" {
			return
		}
		c, err := config.ParseColor(spec)
		if err != nil {
			return
		}
		r, g, b := c.RGB255()
		*dst = backend.RGB(r, g, b)
	}

	apply(&t.Text.FG, cfg.Foreground)
	apply(&t.Text.BG, cfg.Background)
	apply(&t.Selection.BG, cfg.SelectionBg)
	apply(&t.Selection.FG, cfg.SelectionFg)
	apply(&t.Match.BG, cfg.MatchBg)
	apply(&t.Match.FG, cfg.MatchFg)
	apply(&t.CurrentMatch.BG, cfg.CurrentMatchBg)
	apply(&t.CurrentMatch.FG, cfg.CurrentMatchFg)
	apply(&t.Status.BG, cfg.StatusBg)
	apply(&t.Status.FG, cfg.StatusFg)
	apply(&t.Virtual.FG, cfg.VirtualFg)

	// Chrome follows the configured palette: dim chrome shares the
	// virtual color, fields sit on the text background, and the active
	// field accent borrows the current match color.
	t.Dim.FG = t.Virtual.FG
	t.Dim.BG = t.Text.BG
	t.Virtual.BG = t.Text.BG
	t.Field.FG = t.Text.FG
	t.Field.BG = t.Text.BG
	t.FieldActive.FG = t.CurrentMatch.BG
	t.FieldActive.BG = t.Text.BG

	return t
}
