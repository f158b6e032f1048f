package history

import (
	"fmt"

	"github.com/ThymeKeeper/texteditor/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset.
type ByteOffset = buffer.ByteOffset

// OpKind discriminates edit operations.
type OpKind uint8

const (
	// OpInsert inserts Text at Pos.
	OpInsert OpKind = iota
	// OpDelete removes Text starting at Pos.
	OpDelete
)

// Op is a single primitive edit. For OpInsert, Text is the inserted
// content; for OpDelete, Text is the removed content, so every op
// carries enough to reverse itself.
type Op struct {
	Kind OpKind
	Pos  ByteOffset
	Text string
}

// Insert builds an insert op.
func Insert(pos ByteOffset, text string) Op {
	return Op{Kind: OpInsert, Pos: pos, Text: text}
}

// Delete builds a delete op recording the removed text.
func Delete(pos ByteOffset, text string) Op {
	return Op{Kind: OpDelete, Pos: pos, Text: text}
}

// End returns the offset just past the op's text.
func (op Op) End() ByteOffset {
	return op.Pos + ByteOffset(len(op.Text))
}

// Invert returns the op that reverses this one.
func (op Op) Invert() Op {
	switch op.Kind {
	case OpInsert:
		return Op{Kind: OpDelete, Pos: op.Pos, Text: op.Text}
	default:
		return Op{Kind: OpInsert, Pos: op.Pos, Text: op.Text}
	}
}

// Apply replays the op against the buffer. Positions must be valid for
// the buffer's current state; replaying a group in recorded order (or
// its inverse in reverse order) guarantees that.
func (op Op) Apply(buf *buffer.Buffer) {
	switch op.Kind {
	case OpInsert:
		buf.Insert(op.Pos, op.Text)
	case OpDelete:
		buf.Remove(op.Pos, op.End())
	}
}

// String returns a debug representation.
func (op Op) String() string {
	kind := "insert"
	if op.Kind == OpDelete {
		kind = "delete"
	}
	return fmt.Sprintf("%s@%d(%q)", kind, op.Pos, op.Text)
}
