// Package rope provides an immutable rope for storing and editing document text.
//
// The rope is a B+ tree variant: leaf nodes hold bounded text chunks and
// internal nodes carry aggregated metrics (bytes, characters, newlines) for
// their subtrees. Edits split and reconcatenate subtrees, so insert, delete,
// and the byte/character/line conversions all run in O(log n).
//
// Operations return new Rope values; a Rope is never modified in place. This
// makes snapshots free and allows concurrent readers without locking.
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")           // "hello, world"
//	r = r.Delete(0, 6)             // "world"
//	text := r.String()             // "world"
package rope
