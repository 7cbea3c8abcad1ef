package jsonedit

import "strconv"

// Summary is the status line content for a document.
type Summary struct {
	Lines  int
	Status Status
}

// Label is the three-state validity label.
func (s Summary) Label() string { return s.Status.String() }

// Analysis is everything derived from one (document, external errors) pair.
type Analysis struct {
	Result     Result
	ErrorLines LineSet
	Summary    Summary
	Messages   []string
}

// Analyze validates doc and derives the flagged lines, the summary and the
// message list. It is a pure function of its arguments.
func Analyze(doc string, external []string) Analysis {
	res := Validate(doc)
	return Analysis{
		Result:     res,
		ErrorLines: ErrorLines(doc, res.Err, external),
		Summary:    Summary{Lines: LineCount(doc), Status: res.Status},
		Messages:   Messages(res, external),
	}
}

// Messages lists the syntax error first, prefixed with its line when known,
// then the external errors verbatim and in order.
func Messages(res Result, external []string) []string {
	out := make([]string, 0, len(external)+1)
	if res.Err != nil {
		msg := res.Err.Message
		if res.Err.Line > 0 {
			msg = "Line " + strconv.Itoa(res.Err.Line) + ": " + msg
		}
		out = append(out, msg)
	}
	return append(out, external...)
}
