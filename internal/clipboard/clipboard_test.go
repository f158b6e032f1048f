package clipboard

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestUnavailableWithEmptyPath(t *testing.T) {
	t.Setenv("PATH", "")

	c := New()
	if c.Available() {
		t.Error("expected no helpers on an empty PATH")
	}
	if err := c.Write("text"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if _, err := c.Read(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestNilClipboard(t *testing.T) {
	var c *Clipboard
	if c.Available() {
		t.Error("nil clipboard should not be available")
	}
	if err := c.Write("text"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

// installFakeHelper puts a shell script named name on the PATH, ahead
// of any real helper of the same name.
func installFakeHelper(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestReadTrimsTrailingNewline(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell helpers require a POSIX shell")
	}

	dir := t.TempDir()
	installFakeHelper(t, dir, "pbpaste", `printf 'copied text\n'`)

	c := New()
	got, err := c.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "copied text" {
		t.Errorf("expected trailing newline trimmed, got %q", got)
	}
}

func TestReadKeepsInteriorNewlines(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell helpers require a POSIX shell")
	}

	dir := t.TempDir()
	installFakeHelper(t, dir, "pbpaste", `printf 'line one\nline two\n'`)

	c := New()
	got, err := c.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "line one\nline two" {
		t.Errorf("expected interior newlines kept, got %q", got)
	}
}

func TestWriteReachesHelper(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell helpers require a POSIX shell")
	}

	dir := t.TempDir()
	sink := filepath.Join(dir, "sink.txt")
	installFakeHelper(t, dir, "pbcopy", `cat > `+sink)

	c := New()
	if !c.Available() {
		t.Fatal("expected helper to be found")
	}
	if err := c.Write("hello clipboard"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(sink)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello clipboard" {
		t.Errorf("expected text passed through, got %q", data)
	}
}
