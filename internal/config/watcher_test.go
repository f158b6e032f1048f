package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, initial string) (*Watcher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	w, err := Watch(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, path
}

// waitForTabWidth drains Configs until a config with the wanted tab
// width arrives. Intermediate deliveries are allowed.
func waitForTabWidth(t *testing.T, w *Watcher, want int) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Configs():
			if cfg.Editor.TabWidth == want {
				return
			}
		case <-timeout:
			t.Fatalf("timeout waiting for config with tab_width = %d", want)
		}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	w, path := newTestWatcher(t, "[editor]\ntab_width = 8\n")

	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 2\n"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	waitForTabWidth(t, w, 2)
}

func TestWatcherSurvivesRenameReplace(t *testing.T) {
	w, path := newTestWatcher(t, "[editor]\ntab_width = 8\n")

	// Save the way many editors do: write a sibling, rename over the
	// target.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte("[editor]\ntab_width = 6\n"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename error = %v", err)
	}

	waitForTabWidth(t, w, 6)
}

func TestWatcherRemoveRevertsToDefaults(t *testing.T) {
	w, path := newTestWatcher(t, "[editor]\ntab_width = 2\n")

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove error = %v", err)
	}

	waitForTabWidth(t, w, Default().Editor.TabWidth)
}

func TestWatcherReportsParseErrors(t *testing.T) {
	w, path := newTestWatcher(t, "[editor]\ntab_width = 8\n")

	if err := os.WriteFile(path, []byte("tab_width = [broken\n"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case err := <-w.Errors():
			if err != nil {
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for parse error")
		}
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	w, path := newTestWatcher(t, "[editor]\ntab_width = 8\n")

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	if err := os.WriteFile(other, []byte("unrelated"), 0644); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	select {
	case cfg := <-w.Configs():
		t.Errorf("unexpected config delivery %+v for sibling file", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	w, _ := newTestWatcher(t, "[editor]\ntab_width = 8\n")

	if err := w.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close again error = %v", err)
	}

	// Both channels end up closed; drain whatever was pending.
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-w.Configs():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("Configs channel not closed after Close")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.toml")
	if _, err := Watch(path, 0); err == nil {
		t.Error("Watch error = nil, want error for missing directory")
	}
}
