package jsonedit

import (
	"fmt"
	"strings"
	"testing"
)

func TestScrollSyncFollowers(t *testing.T) {
	var s ScrollSync
	if s.SetEditOffset(0) {
		t.Error("setting the current offset should be a no-op")
	}
	if !s.SetEditOffset(7) {
		t.Fatal("offset change not reported")
	}
	if s.EditOffset() != 7 || s.GutterOffset() != 7 || s.OverlayOffset() != 7 {
		t.Errorf("offsets = %d/%d/%d, want 7/7/7", s.EditOffset(), s.GutterOffset(), s.OverlayOffset())
	}
	if s.SetEditOffset(7) {
		t.Error("re-applying 7 should be a no-op")
	}
	s.ScrollBy(-20)
	if s.EditOffset() != 0 || s.GutterOffset() != 0 || s.OverlayOffset() != 0 {
		t.Errorf("negative scroll not clamped: %+v", s)
	}
}

func TestJumpToLine(t *testing.T) {
	var lines []string
	for i := 1; i <= 20; i++ {
		lines = append(lines, fmt.Sprintf("line-%02d", i))
	}
	doc := strings.Join(lines, "\n")

	tests := []struct {
		line    int
		wantTop int
		wantSel string
	}{
		{1, 0, "line-01"},
		{4, 0, "line-04"},
		{5, 1, "line-05"},
		{12, 8, "line-12"},
		{20, 16, "line-20"},
		{99, 16, "line-20"},
		{0, 0, "line-01"},
	}
	for _, tt := range tests {
		sel, top := JumpToLine(doc, tt.line)
		if top != tt.wantTop {
			t.Errorf("line %d: top = %d, want %d", tt.line, top, tt.wantTop)
		}
		if got := Slice(doc, sel); got != tt.wantSel {
			t.Errorf("line %d: selected %q, want %q", tt.line, got, tt.wantSel)
		}
	}

	sel, _ := JumpToLine(doc, 3)
	if sel.Start != 16 {
		t.Errorf("line 3 starts at %d, want 16", sel.Start)
	}
}

func TestJumpToEmptyLine(t *testing.T) {
	sel, top := JumpToLine("a\n\nb", 2)
	if sel != Caret(2) || top != 0 {
		t.Errorf("sel=%+v top=%d", sel, top)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		external []string
		label    string
		lines    []int
		messages []string
	}{
		{
			name:  "empty document",
			doc:   "",
			label: "empty",
		},
		{
			name:     "syntax error first",
			doc:      `{"a": 1`,
			external: []string{"line 1: root: missing sections"},
			label:    "invalid",
			lines:    []int{1},
			messages: []string{
				"Line 1: unexpected end of JSON input at position 7",
				"line 1: root: missing sections",
			},
		},
		{
			name:     "external only",
			doc:      "{\n  \"sections\": 1\n}",
			external: []string{"line 2: sections: expected an array", "import rejected"},
			label:    "valid",
			lines:    []int{2},
			messages: []string{"line 2: sections: expected an array", "import rejected"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.doc, tt.external)
			if a.Summary.Label() != tt.label {
				t.Errorf("label = %q, want %q", a.Summary.Label(), tt.label)
			}
			if a.Summary.Lines != LineCount(tt.doc) {
				t.Errorf("lines = %d", a.Summary.Lines)
			}
			if got := a.ErrorLines.Sorted(); !equalInts(got, tt.lines) && !(len(got) == 0 && len(tt.lines) == 0) {
				t.Errorf("error lines = %v, want %v", got, tt.lines)
			}
			if strings.Join(a.Messages, "|") != strings.Join(tt.messages, "|") {
				t.Errorf("messages = %q, want %q", a.Messages, tt.messages)
			}
		})
	}
}

func TestLineHelpers(t *testing.T) {
	doc := "ab\ncdé\n\nf"
	if n := LineCount(doc); n != 4 {
		t.Errorf("LineCount = %d", n)
	}
	if n := LineCount(""); n != 1 {
		t.Errorf("LineCount(\"\") = %d", n)
	}
	if off := LineStart(doc, 2); off != 3 {
		t.Errorf("LineStart(2) = %d", off)
	}
	if off := LineStart(doc, 4); off != 8 {
		t.Errorf("LineStart(4) = %d", off)
	}
	row, col := OffsetToLineCol(doc, 6)
	if row != 1 || col != 3 {
		t.Errorf("OffsetToLineCol(6) = %d,%d", row, col)
	}
	if off := LineColToOffset(doc, 1, 99); off != 6 {
		t.Errorf("LineColToOffset clamp = %d", off)
	}
	if got := Replace(doc, Selection{3, 6}, "X"); got != "ab\nX\n\nf" {
		t.Errorf("Replace = %q", got)
	}
	if s := (Selection{5, 2}).Clamp(3); s != (Selection{2, 3}) {
		t.Errorf("Clamp = %+v", s)
	}
}
