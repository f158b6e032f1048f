// Package app wires the editor engine, renderer, and input handling
// into a running terminal application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ThymeKeeper/texteditor/internal/clipboard"
	"github.com/ThymeKeeper/texteditor/internal/config"
	"github.com/ThymeKeeper/texteditor/internal/engine"
	"github.com/ThymeKeeper/texteditor/internal/input"
	"github.com/ThymeKeeper/texteditor/internal/renderer"
	"github.com/ThymeKeeper/texteditor/internal/renderer/backend"
	"github.com/ThymeKeeper/texteditor/internal/renderer/viewport"
)

// Clipboard is the system clipboard surface the application needs.
// Satisfied by clipboard.Clipboard; tests substitute an in-memory one.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Options configures a new application.
type Options struct {
	// ConfigPath overrides the default configuration file location.
	ConfigPath string
	// File is opened on startup. It does not need to exist; the name
	// is kept so the first save writes there.
	File string
}

// App owns the editor state and runs the event loop. It is not safe
// for concurrent use; everything happens on the loop goroutine.
type App struct {
	cfg     config.Config
	cfgPath string

	logger  *Logger
	logFile *os.File

	backend backend.Backend
	rend    *renderer.Renderer

	editor *engine.Editor
	vp     *viewport.Viewport
	keymap *input.Keymap
	clip   Clipboard

	// prompt is the open dialog or find bar, nil in normal editing.
	prompt *input.Prompt

	// filePath is the full path of the current file; the engine only
	// knows the base name shown in the title.
	filePath string
	workDir  string

	watcher  *config.Watcher
	dragging bool

	sessionID string
	running   atomic.Bool
	done      chan struct{}
}

// New creates an application. Configuration problems are logged and
// replaced with defaults rather than failing startup.
func New(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	cfg, cfgErr := config.Load(cfgPath)

	logger, logFile := openLogger(cfg.Log)

	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	a := &App{
		cfg:     cfg,
		cfgPath: cfgPath,
		logger:  logger,
		logFile: logFile,
		editor: engine.New(
			engine.WithWrap(cfg.Editor.WordWrap),
			engine.WithTabWidth(cfg.Editor.TabWidth),
			engine.WithCoalesceWindow(cfg.Editor.CoalesceWindow()),
		),
		vp:        viewport.New(80, 24),
		keymap:    input.DefaultKeymap(),
		clip:      clipboard.New(),
		workDir:   workDir,
		sessionID: uuid.NewString(),
	}
	a.vp.SetScrollOff(cfg.Editor.ScrollOff)

	if cfgErr != nil {
		a.logger.Warn("config %s: %v", cfgPath, cfgErr)
	}
	if opts.File != "" {
		a.openFile(opts.File)
	}
	return a, nil
}

// openLogger builds the logger described by the log configuration. The
// returned file is non-nil when a log file was opened.
func openLogger(cfg config.LogConfig) (*Logger, *os.File) {
	lcfg := LoggerConfig{
		Level:  ParseLogLevel(cfg.Level),
		Output: io.Discard,
	}
	if cfg.File == "" {
		return NewLogger(lcfg), nil
	}
	f, err := OpenLogFile(cfg.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file %s: %v\n", cfg.File, err)
		return NewLogger(lcfg), nil
	}
	lcfg.Output = f
	return NewLogger(lcfg), f
}

// SetBackend sets the rendering backend. It must be called before Run.
func (a *App) SetBackend(b backend.Backend) error {
	if a.running.Load() {
		return ErrAlreadyRunning
	}
	a.backend = b
	a.rend = renderer.New(b, renderer.NewTheme(a.cfg.Theme))
	return nil
}

// Run initializes the backend and processes events until the user
// quits or the backend closes. A clean quit returns nil.
func (a *App) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if a.backend == nil {
		return ErrNoBackend
	}

	// Registered before the backend defers so the terminal is restored
	// before anything is printed about the crash file.
	defer func() {
		if r := recover(); r != nil {
			if path, err := a.writeCrashFile(); err == nil {
				fmt.Fprintf(os.Stderr, "panic: buffer saved to %s\n", path)
			}
			panic(r)
		}
	}()

	if err := a.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer a.backend.Fini()

	a.done = make(chan struct{})
	defer close(a.done)

	a.backend.SetTitle(a.editor.DisplayName())
	a.logger.Info("session %s started", a.sessionID)

	var configs <-chan config.Config
	var watchErrs <-chan error
	if a.cfgPath != "" {
		w, err := config.Watch(a.cfgPath, config.DefaultDebounce)
		if err != nil {
			a.logger.Warn("config watch: %v", err)
		} else {
			a.watcher = w
			configs = w.Configs()
			watchErrs = w.Errors()
			defer w.Close()
		}
	}

	events := a.pollEvents(a.done)
	a.draw()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				a.logger.Info("backend closed")
				return nil
			}
			if err := a.handleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					a.logger.Info("session %s ended", a.sessionID)
					return nil
				}
				return err
			}
			a.draw()
		case cfg, ok := <-configs:
			if !ok {
				configs = nil
				continue
			}
			a.applyConfig(cfg)
			a.draw()
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			a.logger.Warn("config reload: %v", err)
		}
	}
}

// pollEvents pumps backend events into a channel the select loop can
// read alongside config reloads.
func (a *App) pollEvents(done <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := a.backend.PollEvent()
			if ev.Type == backend.EventClosed {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// Quit asks a running event loop to exit. Unsaved changes are not
// confirmed; this is the path for termination signals.
func (a *App) Quit() {
	if a.backend != nil {
		a.backend.PostEvent(backend.Event{Type: backend.EventClosed})
	}
}

// Close releases resources held outside Run.
func (a *App) Close() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// draw lays out the viewport for the current terminal size, scrolls
// the caret into view, and paints a frame. The caret is followed every
// frame, matching how the screen tracks it after any event.
func (a *App) draw() {
	if a.rend == nil {
		return
	}
	w, h := a.backend.Size()
	if w <= 0 || h <= 0 {
		return
	}
	a.editor.SetViewWidth(w)
	a.vp.Resize(w, renderer.EditorHeight(h, a.findBarOpen()))
	row, col := a.editor.CaretPosition()
	a.vp.Follow(row, col, a.editor.Wrap())
	a.rend.Draw(renderer.View{
		Editor:   a.editor,
		Viewport: a.vp,
		Prompt:   a.prompt,
	})
}

// applyConfig applies a reloaded configuration to the live session.
func (a *App) applyConfig(cfg config.Config) {
	prev := a.cfg
	a.cfg = cfg

	a.editor.SetWrap(cfg.Editor.WordWrap)
	a.editor.SetTabWidth(cfg.Editor.TabWidth)
	a.editor.SetCoalesceWindow(cfg.Editor.CoalesceWindow())
	a.vp.SetScrollOff(cfg.Editor.ScrollOff)
	if a.rend != nil {
		a.rend.SetTheme(renderer.NewTheme(cfg.Theme))
	}
	a.logger.SetLevel(ParseLogLevel(cfg.Log.Level))

	if cfg.Log.File != prev.Log.File {
		var out io.Writer = io.Discard
		var f *os.File
		if cfg.Log.File != "" {
			nf, err := OpenLogFile(cfg.Log.File)
			if err != nil {
				a.logger.Warn("log file %s: %v", cfg.Log.File, err)
			} else {
				out = nf
				f = nf
			}
		}
		a.logger.SetOutput(out)
		if a.logFile != nil {
			a.logFile.Close()
		}
		a.logFile = f
	}

	a.logger.Info("config reloaded")
}

// findBarOpen reports whether the find bar is claiming screen rows.
func (a *App) findBarOpen() bool {
	return a.prompt != nil && a.prompt.Kind() == input.KindFindReplace
}

// inputMode selects the keymap table for the current prompt state.
func (a *App) inputMode() input.Mode {
	switch {
	case a.prompt == nil:
		return input.ModeEdit
	case a.prompt.Kind() == input.KindFindReplace && a.prompt.Focus() == input.FocusBuffer:
		return input.ModeFindBuffer
	default:
		return input.ModePrompt
	}
}
