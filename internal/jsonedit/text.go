// Package jsonedit holds the editing core of the quiz JSON editor: the
// selection model, bracket/quote pairing, smart indentation, validation and
// the bookkeeping that keeps the gutter and error overlay in step with the
// edit surface. It knows nothing about terminals; every operation takes the
// current document by value and returns a new one.
//
// All offsets are rune offsets into the document string.
package jsonedit

import "strings"

// Selection is a [Start, End) rune range into a document. Start == End is a
// caret.
type Selection struct {
	Start int
	End   int
}

// Caret returns a collapsed selection at offset n.
func Caret(n int) Selection { return Selection{Start: n, End: n} }

// Collapsed reports whether the selection is a caret.
func (s Selection) Collapsed() bool { return s.Start == s.End }

// Len returns the number of selected runes.
func (s Selection) Len() int { return s.End - s.Start }

// Clamp orders the selection and clamps both ends into [0, length].
func (s Selection) Clamp(length int) Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	s.Start = clamp(s.Start, 0, length)
	s.End = clamp(s.End, 0, length)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LineCount returns the number of lines in doc (newlines + 1).
func LineCount(doc string) int {
	return strings.Count(doc, "\n") + 1
}

// Lines splits doc into its lines. An empty document has one empty line.
func Lines(doc string) []string {
	return strings.Split(doc, "\n")
}

// LineStart returns the offset of the first rune of the 1-indexed line.
// Lines past the end map to the start of the last line.
func LineStart(doc string, line int) int {
	lines := Lines(doc)
	line = clamp(line, 1, len(lines))
	off := 0
	for _, l := range lines[:line-1] {
		off += runeLen(l) + 1
	}
	return off
}

// LineAt returns the 1-indexed line containing offset.
func LineAt(doc string, offset int) int {
	r := []rune(doc)
	offset = clamp(offset, 0, len(r))
	n := 1
	for _, c := range r[:offset] {
		if c == '\n' {
			n++
		}
	}
	return n
}

// OffsetToLineCol converts an offset into a 0-indexed row and rune column.
func OffsetToLineCol(doc string, offset int) (row, col int) {
	r := []rune(doc)
	offset = clamp(offset, 0, len(r))
	for _, c := range r[:offset] {
		if c == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return row, col
}

// LineColToOffset converts a 0-indexed row and column back into an offset.
// Both are clamped to the document.
func LineColToOffset(doc string, row, col int) int {
	lines := Lines(doc)
	row = clamp(row, 0, len(lines)-1)
	off := 0
	for _, l := range lines[:row] {
		off += runeLen(l) + 1
	}
	return off + clamp(col, 0, runeLen(lines[row]))
}

// Replace returns doc with the runes in sel replaced by text.
func Replace(doc string, sel Selection, text string) string {
	r := []rune(doc)
	sel = sel.Clamp(len(r))
	var b strings.Builder
	b.Grow(len(doc) + len(text))
	b.WriteString(string(r[:sel.Start]))
	b.WriteString(text)
	b.WriteString(string(r[sel.End:]))
	return b.String()
}

// Slice returns the text covered by sel.
func Slice(doc string, sel Selection) string {
	r := []rune(doc)
	sel = sel.Clamp(len(r))
	return string(r[sel.Start:sel.End])
}

func runeLen(s string) int { return len([]rune(s)) }
