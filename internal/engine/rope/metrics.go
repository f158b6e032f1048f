package rope

import "unicode/utf8"

// ByteOffset is an absolute byte position in the rope. It is signed so that
// distance arithmetic cannot underflow.
type ByteOffset int64

// Point is a line/column position. Line and Column are 0-indexed; Column is
// a byte offset within the line.
type Point struct {
	Line   uint32
	Column uint32
}

// TextSummary aggregates the metrics kept for every chunk and subtree. It is
// a monoid under Add, which is what lets the tree answer byte, character, and
// line queries without touching the text.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// Chars is the Unicode code point count.
	Chars int64

	// Lines is the number of newline characters.
	Lines uint32

	// Flags record text properties used for fast paths.
	Flags TextFlags
}

// TextFlags mark properties of a text span.
type TextFlags uint8

const (
	// FlagASCII is set when every byte is ASCII (< 128).
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines is set when the span contains at least one '\n'.
	FlagHasNewlines
)

// Add combines two summaries. Called when concatenating rope sections.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		// ASCII only if both sides are ASCII; newlines if either side has one.
		Flags: (s.Flags & other.Flags & FlagASCII) |
			((s.Flags | other.Flags) & FlagHasNewlines),
	}
}

// Zero returns the identity element for the summary monoid.
func (TextSummary) Zero() TextSummary {
	return TextSummary{Flags: FlagASCII}
}

// IsZero reports whether this is the identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates the metrics for a string.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{Flags: FlagASCII}
	}

	sum := TextSummary{
		Bytes: ByteOffset(len(s)),
		Flags: FlagASCII,
	}

	for i := 0; i < len(s); {
		b := s[i]
		if b < utf8.RuneSelf {
			sum.Chars++
			if b == '\n' {
				sum.Lines++
				sum.Flags |= FlagHasNewlines
			}
			i++
			continue
		}
		sum.Flags &^= FlagASCII
		_, size := utf8.DecodeRuneInString(s[i:])
		sum.Chars++
		i += size
	}

	return sum
}
