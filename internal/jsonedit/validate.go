package jsonedit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Status is the validity of a document.
type Status int

const (
	StatusEmpty Status = iota
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "empty"
	}
}

// SyntaxError describes the latest parse failure of a document.
type SyntaxError struct {
	Message string
	Line    int // 1-indexed, 0 when unknown
}

// Result is the outcome of validating one document.
type Result struct {
	Status Status
	Err    *SyntaxError
}

// Validate parses doc as JSON. Only syntax decides validity: numbers are
// not converted, so out-of-range literals such as 1e999 are valid. It keeps
// no state between calls.
func Validate(doc string) Result {
	if strings.TrimSpace(doc) == "" {
		return Result{Status: StatusEmpty}
	}

	var raw json.RawMessage
	err := json.Unmarshal([]byte(doc), &raw)
	if err == nil {
		return Result{Status: StatusValid}
	}

	msg := describe(doc, err)
	se := &SyntaxError{Message: msg}
	if line, ok := ExtractLine(msg, doc); ok {
		se.Line = line
	}
	return Result{Status: StatusInvalid, Err: se}
}

// describe renders a parser failure with the character position it
// happened at, in the same grammar external errors use.
func describe(doc string, err error) string {
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return err.Error()
	}
	// Offset counts the bytes read including the offending one; at EOF it is
	// the document length.
	off := int(se.Offset)
	if !strings.HasPrefix(se.Error(), "unexpected end") && off > 0 {
		off--
	}
	if off > len(doc) {
		off = len(doc)
	}
	pos := utf8.RuneCountInString(doc[:off])
	return fmt.Sprintf("%s at position %d", se.Error(), pos)
}
