// Package buffer provides the document buffer built on top of the rope.
//
// The buffer owns the document text for one editor session. It exposes the
// byte, character, and line coordinate conversions the rest of the engine
// works in, tracks a revision number that changes on every mutation, and
// hands out immutable snapshots for readers that must not observe edits.
//
// Every offset passed to a buffer method must lie on a UTF-8 rune boundary.
// Offsets are always derived from the buffer's own queries, so a violation is
// a programming error and the buffer panics rather than returning an error.
//
// Basic usage:
//
//	buf := buffer.FromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")      // "Hello, Beautiful World!"
//	removed := buf.Remove(0, 7)      // removed = "Hello, "
//
// All methods are safe for concurrent use; the editor nevertheless serializes
// mutations on a single goroutine.
package buffer
