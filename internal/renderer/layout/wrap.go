package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Width returns the display width of s in terminal cells, summing the
// width of each rune.
func Width(s string) int {
	w := 0
	for _, r := range s {
		w += runewidth.RuneWidth(r)
	}
	return w
}

// span is a byte range [start, end) within a line's content.
type span struct {
	start, end int
}

// wrapLine splits content into visual row spans no wider than width.
// Rows break after the last space, hyphen, or slash that fits; a word
// wider than the row is broken mid-word. Continuation rows lose indent
// columns of width. Spaces at a break point are skipped, so their
// bytes belong to no row. Every row holds at least one rune, so the
// split always makes progress even at degenerate widths.
func wrapLine(content string, width, indent int) []span {
	var segs []span
	start := 0
	first := true

	for start < len(content) {
		avail := width
		if !first {
			avail -= indent
		}
		if avail < 1 {
			avail = 1
		}

		w := 0
		end := start
		lastBreak := start
		n := 0

		for i, r := range content[start:] {
			rw := runewidth.RuneWidth(r)
			if w+rw > avail && n > 0 {
				if lastBreak > start {
					end = lastBreak
				} else {
					end = start + i
				}
				break
			}
			w += rw
			next := start + i + utf8.RuneLen(r)
			if r == ' ' || r == '-' || r == '/' {
				lastBreak = next
			}
			end = next
			n++
		}

		segs = append(segs, span{start, end})
		start = end
		first = false

		for start < len(content) && content[start] == ' ' {
			start++
		}
	}

	return segs
}

// continuationIndent returns the indent for a line's continuation
// rows: the width of its leading whitespace, plus four columns when
// the line opens with a list marker ("- ", "* ", "+ ", or an
// alphanumeric label followed by "." or ")" and a space) so wrapped
// text aligns under the item body.
func continuationIndent(line string) int {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	base := Width(line[:len(line)-len(trimmed)])

	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "+ ") {
		return base + 4
	}

	s := trimmed
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
			continue
		}
		if n > 0 && (r == '.' || r == ')') {
			if next, _ := utf8.DecodeRuneInString(s); next == ' ' {
				return base + 4
			}
		}
		break
	}

	return base
}
