package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// openFile loads path into the buffer. The name is adopted before
// reading so that opening a file that does not exist yet still names
// the buffer; the first save then creates it.
func (a *App) openFile(path string) {
	a.filePath = path
	a.editor.SetFileName(filepath.Base(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			a.logger.Warn("open %s: %v", path, err)
		}
		return
	}
	a.editor.SetText(string(data))
	a.workDir = filepath.Dir(path)
	a.logger.Info("opened %s (%d bytes)", path, len(data))
}

// save writes to the current file, or asks for a path when the buffer
// has none yet.
func (a *App) save() {
	if a.filePath == "" {
		a.openSaveAs()
		return
	}
	if err := a.saveTo(a.filePath); err != nil {
		a.logger.Error("save %s: %v", a.filePath, err)
	}
}

func (a *App) saveTo(path string) error {
	if err := os.WriteFile(path, []byte(a.editor.Text()), 0o644); err != nil {
		return err
	}
	a.editor.MarkSaved()
	a.logger.Info("saved %s", path)
	return nil
}

// saveAs writes to path and, on success, adopts it as the current
// file. A failed write leaves the old name in place.
func (a *App) saveAs(path string) error {
	if err := os.WriteFile(path, []byte(a.editor.Text()), 0o644); err != nil {
		return err
	}
	a.filePath = path
	a.editor.SetFileName(filepath.Base(path))
	a.editor.MarkSaved()
	a.logger.Info("saved %s", path)
	return nil
}

// savePathSuggestion seeds the save-as field: the current file's full
// path, or the working directory with a trailing separator so only the
// name needs typing.
func (a *App) savePathSuggestion() string {
	if a.filePath != "" {
		return a.filePath
	}
	dir := a.workDir
	if !strings.HasSuffix(dir, string(os.PathSeparator)) {
		dir += string(os.PathSeparator)
	}
	return dir
}

// writeCrashFile dumps the buffer to a session-tagged file in the temp
// directory so a panic never loses edits.
func (a *App) writeCrashFile() (string, error) {
	name := fmt.Sprintf("texteditor-crash-%s.txt", a.sessionID[:8])
	path := filepath.Join(os.TempDir(), name)
	if err := os.WriteFile(path, []byte(a.editor.Text()), 0o600); err != nil {
		a.logger.Error("crash save %s: %v", path, err)
		return "", err
	}
	a.logger.Error("crash save %s", path)
	return path, nil
}
