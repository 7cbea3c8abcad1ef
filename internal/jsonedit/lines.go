package jsonedit

import (
	"regexp"
	"sort"
	"strconv"
)

var (
	positionRe = regexp.MustCompile(`(?i)\b(?:position|at)\s+(\d+)`)
	// English and Portuguese.
	lineRe = regexp.MustCompile(`(?i)\b(?:line|linha)\s+(\d+)`)
)

// ExtractLine finds the 1-indexed line an error message points at. A
// number after "position" or "at" is a character offset into doc and wins
// over a number after "line"/"linha", which is taken literally.
func ExtractLine(msg, doc string) (int, bool) {
	if m := positionRe.FindStringSubmatch(msg); m != nil {
		if off, err := strconv.Atoi(m[1]); err == nil {
			return LineAt(doc, off), true
		}
	}
	if m := lineRe.FindStringSubmatch(msg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}

// LineSet is a set of 1-indexed line numbers.
type LineSet map[int]struct{}

// Has reports whether line is in the set.
func (s LineSet) Has(line int) bool {
	_, ok := s[line]
	return ok
}

// Sorted returns the lines in ascending order.
func (s LineSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// ErrorLines builds the set of lines to flag from the syntax error (may be
// nil) and the externally supplied messages. It is rebuilt from scratch on
// every call.
func ErrorLines(doc string, syntax *SyntaxError, external []string) LineSet {
	set := make(LineSet)
	if syntax != nil && syntax.Line > 0 {
		set[syntax.Line] = struct{}{}
	}
	for _, msg := range external {
		if line, ok := ExtractLine(msg, doc); ok && line > 0 {
			set[line] = struct{}{}
		}
	}
	return set
}
