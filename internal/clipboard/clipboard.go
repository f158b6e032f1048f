// Package clipboard bridges copy and paste to the system clipboard
// through external helper commands.
package clipboard

import (
	"errors"
	"os/exec"
	"strings"
)

// ErrUnavailable is returned when no helper command works.
var ErrUnavailable = errors.New("clipboard: no helper command available")

// Clipboard shells out to the first helper that succeeds. The probe
// list covers macOS (pbcopy/pbpaste), X11 (xclip, xsel), Wayland
// (wl-copy/wl-paste), and WSL (clip.exe, powershell.exe).
type Clipboard struct {
	readers   [][]string
	writers   [][]string
	available bool
}

// New probes the PATH for known clipboard helpers.
func New() *Clipboard {
	readers := [][]string{
		{"pbpaste"},
		{"xclip", "-selection", "clipboard", "-o"},
		{"xsel", "--clipboard", "--output"},
		{"wl-paste", "--no-newline"},
		{"wl-paste"},
		{"powershell.exe", "-NoProfile", "-Command", "Get-Clipboard"},
	}
	writers := [][]string{
		{"pbcopy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"wl-copy"},
		{"clip.exe"},
	}

	available := false
	seen := make(map[string]struct{})
	for _, cmd := range append(append([][]string{}, readers...), writers...) {
		name := cmd[0]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		if _, err := exec.LookPath(name); err == nil {
			available = true
		}
	}

	return &Clipboard{
		readers:   readers,
		writers:   writers,
		available: available,
	}
}

// Available reports whether any helper command was found on the PATH.
func (c *Clipboard) Available() bool {
	return c != nil && c.available
}

// Write places text on the system clipboard.
func (c *Clipboard) Write(text string) error {
	if c == nil {
		return ErrUnavailable
	}
	for _, args := range c.writers {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return ErrUnavailable
}

// Read returns the clipboard text. Helpers that append a trailing
// newline to the output have it trimmed.
func (c *Clipboard) Read() (string, error) {
	if c == nil {
		return "", ErrUnavailable
	}
	for _, args := range c.readers {
		cmd := exec.Command(args[0], args[1:]...)
		out, err := cmd.Output()
		if err != nil {
			continue
		}
		return strings.TrimRight(string(out), "\r\n"), nil
	}
	return "", ErrUnavailable
}
