package buffer

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/ThymeKeeper/texteditor/internal/engine/rope"
)

// Buffer owns the document text for an editor session. It wraps a Rope with
// revision tracking and boundary validation. Content is stored verbatim; the
// buffer never rewrites line endings or any other bytes.
type Buffer struct {
	mu       sync.RWMutex
	rope     rope.Rope
	revision RevisionID
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{
		rope:     rope.New(),
		revision: NewRevisionID(),
	}
}

// FromString creates a buffer with initial content.
func FromString(s string) *Buffer {
	if !utf8.ValidString(s) {
		panic("buffer: content is not valid UTF-8")
	}
	return &Buffer{
		rope:     rope.FromString(s),
		revision: NewRevisionID(),
	}
}

// FromReader creates a buffer by consuming a reader.
func FromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("buffer: content is not valid UTF-8")
	}
	return FromString(string(data)), nil
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.String()
}

// Slice returns the text in the byte range [start, end).
func (b *Buffer) Slice(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.checkRange("Slice", start, end)
	return b.rope.Slice(start, end)
}

// Len returns the total byte length.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Len()
}

// Chars returns the total number of Unicode code points.
func (b *Buffer) Chars() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.Chars()
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines (newlines + 1).
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineCount()
}

// LineText returns the text of a 0-indexed line, excluding the newline.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineText(line)
}

// LineStart returns the byte offset where a 0-indexed line begins.
func (b *Buffer) LineStart(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineStartOffset(line)
}

// LineEnd returns the byte offset where a 0-indexed line ends, before the
// trailing newline.
func (b *Buffer) LineEnd(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rope.LineEndOffset(line)
}

// ByteToLine returns the 0-indexed line containing the byte offset.
func (b *Buffer) ByteToLine(offset ByteOffset) uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.checkOffset("ByteToLine", offset)
	return b.rope.LineAtOffset(offset)
}

// ByteToChar converts a byte offset to a character index.
func (b *Buffer) ByteToChar(offset ByteOffset) int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.checkOffset("ByteToChar", offset)
	return b.rope.OffsetToChar(offset)
}

// CharToByte converts a character index to a byte offset.
func (b *Buffer) CharToByte(char int64) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if char < 0 || char > b.rope.Chars() {
		panic(fmt.Sprintf("buffer: CharToByte: char %d out of range [0, %d]", char, b.rope.Chars()))
	}
	return b.rope.CharToOffset(char)
}

// OffsetToPoint converts a byte offset to a line/column position.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.checkOffset("OffsetToPoint", offset)
	return b.rope.OffsetToPoint(offset)
}

// RuneAt returns the rune beginning at the byte offset and its size.
// It returns size 0 at the end of the buffer.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.checkOffset("RuneAt", offset)

	end := offset + utf8.UTFMax
	if max := b.rope.Len(); end > max {
		end = max
	}
	if offset == end {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.rope.Slice(offset, end))
}

// RuneBefore returns the rune ending at the byte offset and its size.
// It returns size 0 at the start of the buffer.
func (b *Buffer) RuneBefore(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	b.checkOffset("RuneBefore", offset)

	start := offset - utf8.UTFMax
	if start < 0 {
		start = 0
	}
	if start == offset {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(b.rope.Slice(start, offset))
}

// Insert inserts text at the byte offset and returns the offset just past
// the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) ByteOffset {
	if len(text) == 0 {
		return offset
	}
	if !utf8.ValidString(text) {
		panic("buffer: Insert: text is not valid UTF-8")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.checkOffset("Insert", offset)

	b.rope = b.rope.Insert(offset, text)
	b.revision = NewRevisionID()
	return offset + ByteOffset(len(text))
}

// Remove deletes the byte range [start, end) and returns the removed text.
func (b *Buffer) Remove(start, end ByteOffset) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.checkRange("Remove", start, end)

	if start == end {
		return ""
	}
	removed := b.rope.Slice(start, end)
	b.rope = b.rope.Delete(start, end)
	b.revision = NewRevisionID()
	return removed
}

// SetText replaces the entire content. Used when loading a file.
func (b *Buffer) SetText(s string) {
	if !utf8.ValidString(s) {
		panic("buffer: SetText: content is not valid UTF-8")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rope = rope.FromString(s)
	b.revision = NewRevisionID()
}

// Revision returns the current revision ID.
func (b *Buffer) Revision() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Snapshot returns an immutable view of the current state. Ropes are
// persistent, so this is O(1) and the snapshot never changes.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{rope: b.rope, revision: b.revision}
}

// checkOffset panics when offset is out of range or splits a rune.
// Callers derive offsets from buffer queries, so a bad offset is a bug.
func (b *Buffer) checkOffset(op string, offset ByteOffset) {
	if offset < 0 || offset > b.rope.Len() {
		panic(fmt.Sprintf("buffer: %s: offset %d out of range [0, %d]", op, offset, b.rope.Len()))
	}
	if !b.rope.IsBoundary(offset) {
		panic(fmt.Sprintf("buffer: %s: offset %d splits a UTF-8 sequence", op, offset))
	}
}

func (b *Buffer) checkRange(op string, start, end ByteOffset) {
	if start > end {
		panic(fmt.Sprintf("buffer: %s: inverted range [%d, %d)", op, start, end))
	}
	b.checkOffset(op, start)
	b.checkOffset(op, end)
}
