package buffer

import "github.com/ThymeKeeper/texteditor/internal/engine/rope"

// Snapshot is a read-only view of the buffer at one revision. It is a value
// over the immutable rope, so it stays valid and unchanged however the
// buffer is edited afterwards.
type Snapshot struct {
	rope     rope.Rope
	revision RevisionID
}

// Text returns the full snapshot content.
func (s Snapshot) Text() string {
	return s.rope.String()
}

// Slice returns the text in the byte range [start, end).
func (s Snapshot) Slice(start, end ByteOffset) string {
	return s.rope.Slice(start, end)
}

// Len returns the total byte length.
func (s Snapshot) Len() ByteOffset {
	return s.rope.Len()
}

// LineCount returns the number of lines.
func (s Snapshot) LineCount() uint32 {
	return s.rope.LineCount()
}

// LineText returns the text of a 0-indexed line, excluding the newline.
func (s Snapshot) LineText(line uint32) string {
	return s.rope.LineText(line)
}

// LineStart returns the byte offset where a 0-indexed line begins.
func (s Snapshot) LineStart(line uint32) ByteOffset {
	return s.rope.LineStartOffset(line)
}

// Revision returns the revision this snapshot was taken at.
func (s Snapshot) Revision() RevisionID {
	return s.revision
}
