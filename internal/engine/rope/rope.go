package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Rope is an immutable rope. Operations return new Rope values; the original
// is never modified, so snapshots are free and concurrent reads are safe.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader creates a rope by consuming an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// buildFromChunks builds a balanced rope over a slice of chunks.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	return Rope{root: buildNodeFromChildren(leaves)}
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// Chars returns the total number of Unicode code points.
func (r Rope) Chars() int64 {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() uint32 {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// String returns the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
func (r Rope) Slice(start, end ByteOffset) string {
	if r.root == nil || start >= end {
		return ""
	}
	if start < 0 {
		start = 0
	}
	return r.root.textInRange(start, end)
}

// ByteAt returns the byte at the given offset, or false when out of range.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if r.root == nil || offset < 0 || offset >= r.Len() {
		return 0, false
	}

	node := r.root
	for !node.IsLeaf() {
		idx, rel := node.findChildByOffset(offset)
		node = node.children[idx]
		offset = rel
	}

	for _, chunk := range node.chunks {
		if offset < ByteOffset(chunk.Len()) {
			return chunk.String()[offset], true
		}
		offset -= ByteOffset(chunk.Len())
	}
	return 0, false
}

// IsBoundary reports whether the offset lies on a UTF-8 rune boundary
// (including 0 and Len()).
func (r Rope) IsBoundary(offset ByteOffset) bool {
	if offset <= 0 || offset >= r.Len() {
		return offset == 0 || offset == r.Len()
	}
	b, ok := r.ByteAt(offset)
	return ok && isRuneStart(b)
}

// Insert inserts text at the given byte offset and returns the new rope.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}
	if offset <= 0 {
		return FromString(text).Concat(r)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes the byte range [start, end) and returns the new rope.
func (r Rope) Delete(start, end ByteOffset) Rope {
	if r.root == nil || start >= end {
		return r
	}

	ropeLen := r.Len()
	if start < 0 {
		start = 0
	}
	if start >= ropeLen {
		return r
	}
	if end > ropeLen {
		end = ropeLen
	}

	if start == 0 && end >= ropeLen {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end >= ropeLen {
		left, _ := r.Split(start)
		return left
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace substitutes the byte range [start, end) with new text.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	if start >= end {
		return r.Insert(start, text)
	}
	if len(text) == 0 {
		return r.Delete(start, end)
	}
	return r.Delete(start, end).Insert(start, text)
}

// Split divides the rope at offset: left holds [0, offset), right the rest.
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// OffsetToChar converts a byte offset to a character index.
func (r Rope) OffsetToChar(offset ByteOffset) int64 {
	if r.root == nil || offset <= 0 {
		return 0
	}
	if offset >= r.Len() {
		return r.Chars()
	}

	node := r.root
	var chars int64
	for !node.IsLeaf() {
		idx, rel := node.findChildByOffset(offset)
		for i := 0; i < idx; i++ {
			chars += node.childSummaries[i].Chars
		}
		node = node.children[idx]
		offset = rel
	}

	for _, chunk := range node.chunks {
		if offset < ByteOffset(chunk.Len()) {
			return chars + int64(utf8.RuneCountInString(chunk.String()[:offset]))
		}
		chars += chunk.Summary().Chars
		offset -= ByteOffset(chunk.Len())
	}
	return chars
}

// CharToOffset converts a character index to a byte offset.
func (r Rope) CharToOffset(char int64) ByteOffset {
	if r.root == nil || char <= 0 {
		return 0
	}
	if char >= r.Chars() {
		return r.Len()
	}

	node := r.root
	var offset ByteOffset
	for !node.IsLeaf() {
		idx, rel := node.findChildByChar(char)
		for i := 0; i < idx; i++ {
			offset += node.childSummaries[i].Bytes
		}
		node = node.children[idx]
		char = rel
	}

	for _, chunk := range node.chunks {
		if char < chunk.Summary().Chars {
			text := chunk.String()
			pos := 0
			for ; char > 0; char-- {
				_, size := utf8.DecodeRuneInString(text[pos:])
				pos += size
			}
			return offset + ByteOffset(pos)
		}
		char -= chunk.Summary().Chars
		offset += ByteOffset(chunk.Len())
	}
	return offset
}

// LineAtOffset returns the 0-indexed line containing the byte offset.
func (r Rope) LineAtOffset(offset ByteOffset) uint32 {
	if r.root == nil || offset <= 0 {
		return 0
	}
	if offset >= r.Len() {
		return r.LineCount() - 1
	}

	node := r.root
	var lines uint32
	for !node.IsLeaf() {
		idx, rel := node.findChildByOffset(offset)
		for i := 0; i < idx; i++ {
			lines += node.childSummaries[i].Lines
		}
		node = node.children[idx]
		offset = rel
	}

	for _, chunk := range node.chunks {
		if offset < ByteOffset(chunk.Len()) {
			return lines + uint32(chunk.NewlinesBefore(int(offset)))
		}
		lines += chunk.Summary().Lines
		offset -= ByteOffset(chunk.Len())
	}
	return lines
}

// LineStartOffset returns the byte offset of the start of a 0-indexed line.
// Lines past the end clamp to Len().
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	if r.root == nil || line == 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}

	// Find the position just after the line-th newline.
	node := r.root
	var offset ByteOffset
	remaining := line
	for !node.IsLeaf() {
		idx, rel := node.findChildByLine(remaining)
		for i := 0; i < idx; i++ {
			offset += node.childSummaries[i].Bytes
		}
		node = node.children[idx]
		remaining = rel
	}

	for _, chunk := range node.chunks {
		if chunk.Summary().Lines >= remaining {
			pos := chunk.Newline(int(remaining) - 1)
			if pos < 0 {
				return r.Len()
			}
			return offset + ByteOffset(pos) + 1
		}
		remaining -= chunk.Summary().Lines
		offset += ByteOffset(chunk.Len())
	}
	return r.Len()
}

// LineEndOffset returns the byte offset of the end of a 0-indexed line,
// excluding the trailing newline.
func (r Rope) LineEndOffset(line uint32) ByteOffset {
	if r.root == nil {
		return 0
	}

	lineCount := r.LineCount()
	if line >= lineCount-1 {
		return r.Len()
	}

	next := r.LineStartOffset(line + 1)
	if next > 0 {
		return next - 1
	}
	return 0
}

// LineText returns the text of a 0-indexed line, excluding the newline.
func (r Rope) LineText(line uint32) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// OffsetToPoint converts a byte offset to a line/column position. Column is
// a byte offset within the line.
func (r Rope) OffsetToPoint(offset ByteOffset) Point {
	if r.root == nil || offset <= 0 {
		return Point{}
	}
	if offset > r.Len() {
		offset = r.Len()
	}

	line := r.LineAtOffset(offset)
	return Point{
		Line:   line,
		Column: uint32(offset - r.LineStartOffset(line)),
	}
}

// PointToOffset converts a line/column position to a byte offset, clamping
// the column to the line length.
func (r Rope) PointToOffset(p Point) ByteOffset {
	if r.root == nil {
		return 0
	}

	start := r.LineStartOffset(p.Line)
	end := r.LineEndOffset(p.Line)
	if ByteOffset(p.Column) >= end-start {
		return end
	}
	return start + ByteOffset(p.Column)
}

// Height returns the height of the tree. Useful for balance testing.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of chunks. Useful for debugging.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}
