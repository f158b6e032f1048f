package rope

import "unicode/utf8"

// Chunk size constants control the granularity of text storage.
const (
	// MinChunkSize is the minimum bytes per chunk (except for the last chunk).
	MinChunkSize = 128

	// MaxChunkSize is the maximum bytes per chunk before splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is a bounded, immutable run of text stored in leaf nodes. The summary
// and newline positions are computed once at construction so that seeks never
// rescan chunk text.
type Chunk struct {
	data     string
	summary  TextSummary
	newlines []uint16 // byte positions of '\n' within data
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	c := Chunk{
		data:    s,
		summary: ComputeSummary(s),
	}
	if c.summary.Lines > 0 {
		c.newlines = make([]uint16, 0, c.summary.Lines)
		for i := 0; i < len(s); i++ {
			if s[i] == '\n' {
				c.newlines = append(c.newlines, uint16(i))
			}
		}
	}
	return c
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty reports whether the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// Newline returns the byte position of the nth newline (0-indexed), or -1 if
// the chunk has fewer newlines than that.
func (c Chunk) Newline(n int) int {
	if n < 0 || n >= len(c.newlines) {
		return -1
	}
	return int(c.newlines[n])
}

// NewlineBefore returns the position of the last newline strictly before the
// given byte offset, or -1 if there is none.
func (c Chunk) NewlineBefore(offset int) int {
	for i := len(c.newlines) - 1; i >= 0; i-- {
		if int(c.newlines[i]) < offset {
			return int(c.newlines[i])
		}
	}
	return -1
}

// NewlinesBefore returns how many newlines occur strictly before the given
// byte offset.
func (c Chunk) NewlinesBefore(offset int) int {
	count := 0
	for _, pos := range c.newlines {
		if int(pos) >= offset {
			break
		}
		count++
	}
	return count
}

// Split splits a chunk at a byte offset, which must lie on a UTF-8 boundary.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}

	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// Append concatenates another chunk onto this one, splitting the result into
// multiple chunks when it exceeds MaxChunkSize.
func (c Chunk) Append(other Chunk) []Chunk {
	if c.IsEmpty() {
		if other.IsEmpty() {
			return nil
		}
		return []Chunk{other}
	}
	if other.IsEmpty() {
		return []Chunk{c}
	}

	combined := c.data + other.data
	if len(combined) <= MaxChunkSize {
		return []Chunk{NewChunk(combined)}
	}

	return splitIntoChunks(combined)
}

// splitIntoChunks splits a string into chunks of appropriate size.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []Chunk{NewChunk(s)}
	}

	var chunks []Chunk
	remaining := s

	for len(remaining) > 0 {
		if len(remaining) <= MaxChunkSize {
			chunks = append(chunks, NewChunk(remaining))
			break
		}

		split := findSplitBoundary(remaining, TargetChunkSize)
		chunks = append(chunks, NewChunk(remaining[:split]))
		remaining = remaining[split:]
	}

	return chunks
}

// findSplitBoundary finds a UTF-8 boundary near the target position,
// preferring to split just after a newline so lines stay chunk-local.
func findSplitBoundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}
	if target <= 0 {
		return 0
	}

	searchStart := target - MinChunkSize/4
	if searchStart < 0 {
		searchStart = 0
	}
	searchEnd := target + MinChunkSize/4
	if searchEnd > len(s) {
		searchEnd = len(s)
	}

	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	// No newline nearby, settle for the nearest rune boundary.
	pos := target
	for pos < len(s) && !isRuneStart(s[pos]) {
		pos++
	}
	if pos > target+utf8.UTFMax || pos >= len(s) {
		pos = target
		for pos > 0 && !isRuneStart(s[pos]) {
			pos--
		}
	}

	return pos
}

// isRuneStart reports whether the byte begins a UTF-8 sequence.
// Continuation bytes have the form 10xxxxxx.
func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
