package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after a file event before the
// config is re-read. Editors often emit several events per save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher re-loads the config file whenever it changes on disk. It
// watches the containing directory rather than the file itself, so
// save strategies that replace the file via rename keep working.
type Watcher struct {
	path     string
	debounce time.Duration

	fsw     *fsnotify.Watcher
	configs chan Config
	errs    chan error

	closeOnce sync.Once
	closeCh   chan struct{}
	closedWg  sync.WaitGroup
}

// Watch starts watching the config file at path. A debounce of zero
// selects DefaultDebounce.
func Watch(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching config dir %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		fsw:      fsw,
		configs:  make(chan Config, 1),
		errs:     make(chan error, 8),
		closeCh:  make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Configs delivers the most recent successfully loaded configuration.
// Only the newest pending config is kept; slow readers never see stale
// settings applied after fresh ones.
func (w *Watcher) Configs() <-chan Config {
	return w.configs
}

// Errors delivers load and watch failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		w.closedWg.Wait()
		close(w.configs)
		close(w.errs)
	})
	return err
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	var reload *time.Timer
	var fire <-chan time.Time
	defer func() {
		if reload != nil {
			reload.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if reload == nil {
				reload = time.NewTimer(w.debounce)
			} else {
				if !reload.Stop() {
					select {
					case <-reload.C:
					default:
					}
				}
				reload.Reset(w.debounce)
			}
			fire = reload.C

		case <-fire:
			fire = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.sendError(err)
				continue
			}
			w.sendConfig(cfg)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// relevant reports whether the event touches the watched file. Remove
// counts: deleting the config reverts the editor to defaults.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename) ||
		event.Op.Has(fsnotify.Remove)
}

func (w *Watcher) sendConfig(cfg Config) {
	for {
		select {
		case w.configs <- cfg:
			return
		default:
		}
		// Full: discard the stale pending config and retry.
		select {
		case <-w.configs:
		default:
		}
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
