package buffer

import (
	"sync/atomic"

	"github.com/ThymeKeeper/texteditor/internal/engine/rope"
)

// ByteOffset is a byte position in the buffer. It aliases the rope's offset
// type so the engine packages share one coordinate system.
type ByteOffset = rope.ByteOffset

// Point is a 0-indexed line/column position; Column is measured in bytes
// from the start of the line.
type Point = rope.Point

// RevisionID identifies one buffer revision. Every mutation produces a new
// revision, which derived state (layout, search matches) uses to detect
// staleness.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
