// Package editor is the quiz JSON editing widget for bubbletea. It owns the
// document text and the selection, routes structural keys through the
// jsonedit engine, and renders three surfaces side by side: a line-number
// gutter, an error overlay behind the text, and the edit surface itself.
// The gutter and overlay never scroll on their own; they follow the edit
// surface through a jsonedit.ScrollSync.
package editor

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/quizedit/internal/jsonedit"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// ChangeMsg carries the complete document after every accepted edit.
type ChangeMsg struct {
	Value string
}

// caretMsg applies a selection computed by the engine once the edited
// document has been rendered. Messages from an older generation are stale.
type caretMsg struct {
	gen int
	sel jsonedit.Selection
}

// ---------------------------------------------------------------------------
// Gutter markers
// ---------------------------------------------------------------------------

// GutterMark is a change marker shown in the gutter's marker column.
type GutterMark int

const (
	GutterNone GutterMark = iota
	GutterAdd
	GutterChange
	GutterDelete
)

const defaultWheelLines = 3

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the editing widget.
type Model struct {
	// Placeholder is shown on the first row when the document is empty.
	Placeholder string
	// WheelLines is how many rows one wheel notch scrolls.
	WheelLines int

	styles Styles

	doc      string
	anchor   int // selection end that stays put while extending
	head     int // selection end that moves; the caret
	external []string
	analysis jsonedit.Analysis
	sync     jsonedit.ScrollSync
	hscroll  int

	gen        int
	pending    jsonedit.Selection
	hasPending bool

	markers map[int]GutterMark

	width    int
	height   int
	focus    bool
	dragging bool
}

// New creates an empty editor.
func New(styles Styles) Model {
	m := Model{styles: styles, WheelLines: defaultWheelLines}
	m.analysis = jsonedit.Analyze("", nil)
	return m
}

func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
	m.clampScroll()
}

func (m *Model) SetStyles(s Styles) { m.styles = s }

func (m *Model) Focus()        { m.focus = true }
func (m *Model) Blur()         { m.focus = false }
func (m Model) Focused() bool  { return m.focus }
func (m Model) Width() int     { return m.width }
func (m Model) Height() int    { return m.height }
func (m Model) Value() string  { return m.doc }
func (m Model) LineCount() int { return jsonedit.LineCount(m.doc) }

// SetValue replaces the document, resets the caret to the start and
// discards any pending caret. It does not emit a ChangeMsg.
func (m *Model) SetValue(s string) {
	m.doc = normalizeNewlines(s)
	m.anchor, m.head = 0, 0
	m.hasPending = false
	m.gen++
	m.hscroll = 0
	m.sync.SetEditOffset(0)
	m.reanalyze()
}

// SetExternalErrors replaces the host-supplied error list. The list is kept
// verbatim; only line numbers are read from it.
func (m *Model) SetExternalErrors(errs []string) {
	m.external = append([]string(nil), errs...)
	m.reanalyze()
}

// ExternalErrors returns the host-supplied errors as last set.
func (m Model) ExternalErrors() []string { return m.external }

// Analysis returns validation status, flagged lines, summary and messages
// for the current document and external errors.
func (m Model) Analysis() jsonedit.Analysis { return m.analysis }

// Status is the one-line summary: line count and validity label.
func (m Model) Status() string {
	s := m.analysis.Summary
	unit := " lines"
	if s.Lines == 1 {
		unit = " line"
	}
	return strconv.Itoa(s.Lines) + unit + " · " + s.Label()
}

// Selection returns the current selection, ordered.
func (m Model) Selection() jsonedit.Selection {
	return jsonedit.Selection{Start: m.anchor, End: m.head}.Clamp(m.runeLen())
}

// Caret returns the caret offset.
func (m Model) Caret() int { return m.head }

// SetSelection moves the selection, clamped to the document, and scrolls
// the caret into view.
func (m *Model) SetSelection(sel jsonedit.Selection) {
	n := m.runeLen()
	m.anchor = clampInt(sel.Start, 0, n)
	m.head = clampInt(sel.End, 0, n)
	m.ensureCaretVisible()
}

// HasSelection reports whether a non-empty range is selected.
func (m Model) HasSelection() bool { return m.anchor != m.head }

// SelectedText returns the selected text.
func (m Model) SelectedText() string { return jsonedit.Slice(m.doc, m.Selection()) }

// ScrollOffsets returns the edit, gutter and overlay offsets.
func (m Model) ScrollOffsets() (edit, gutter, overlay int) {
	return m.sync.EditOffset(), m.sync.GutterOffset(), m.sync.OverlayOffset()
}

// ScrollTo scrolls the edit surface (and with it the followers) so that the
// 0-indexed row top is the first visible row.
func (m *Model) ScrollTo(top int) bool {
	return m.sync.SetEditOffset(clampInt(top, 0, m.maxScroll()))
}

// JumpToLine selects the 1-indexed line and scrolls so it sits a few rows
// below the top of the surface.
func (m *Model) JumpToLine(line int) {
	m.hasPending = false
	sel, top := jsonedit.JumpToLine(m.doc, line)
	m.anchor, m.head = sel.Start, sel.End
	m.ScrollTo(top)
	m.hscroll = 0
}

// NextErrorLine jumps to the first flagged line after the caret's line,
// wrapping around. It reports false when no line is flagged.
func (m *Model) NextErrorLine() (int, bool) {
	return m.stepErrorLine(1)
}

// PrevErrorLine jumps to the last flagged line before the caret's line,
// wrapping around.
func (m *Model) PrevErrorLine() (int, bool) {
	return m.stepErrorLine(-1)
}

func (m *Model) stepErrorLine(dir int) (int, bool) {
	lines := m.analysis.ErrorLines.Sorted()
	if len(lines) == 0 {
		return 0, false
	}
	cur := jsonedit.LineAt(m.doc, m.head)
	target := lines[0]
	if dir < 0 {
		target = lines[len(lines)-1]
	}
	if dir > 0 {
		for _, l := range lines {
			if l > cur {
				target = l
				break
			}
		}
	} else {
		for i := len(lines) - 1; i >= 0; i-- {
			if lines[i] < cur {
				target = lines[i]
				break
			}
		}
	}
	m.JumpToLine(target)
	return target, true
}

// SetChangeMarkers sets the gutter change markers keyed by 0-indexed row.
func (m *Model) SetChangeMarkers(markers map[int]GutterMark) { m.markers = markers }

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

func (m *Model) reanalyze() {
	m.analysis = jsonedit.Analyze(m.doc, m.external)
}

func (m Model) runeLen() int { return len([]rune(m.doc)) }

// gutterWidth is digits + space + marker column.
func (m Model) gutterWidth() int {
	digits := len(strconv.Itoa(m.LineCount()))
	if digits < 2 {
		digits = 2
	}
	return digits + 2
}

// textWidth returns the width available for the edit surface.
func (m Model) textWidth() int {
	w := m.width - m.gutterWidth()
	if w < 1 {
		w = 1
	}
	return w
}

func (m Model) maxScroll() int {
	if m.height <= 0 {
		return 0
	}
	n := m.LineCount() - m.height
	if n < 0 {
		return 0
	}
	return n
}

func (m *Model) clampScroll() {
	m.sync.SetEditOffset(clampInt(m.sync.EditOffset(), 0, m.maxScroll()))
}

// ensureCaretVisible scrolls vertically and horizontally so the caret cell
// is on screen.
func (m *Model) ensureCaretVisible() {
	row, col := jsonedit.OffsetToLineCol(m.doc, m.head)
	top := m.sync.EditOffset()
	if m.height > 0 {
		if row < top {
			top = row
		}
		if row >= top+m.height {
			top = row - m.height + 1
		}
	}
	m.ScrollTo(top)

	tw := m.textWidth()
	if col < m.hscroll {
		m.hscroll = col
	}
	runes := []rune(jsonedit.Lines(m.doc)[row])
	cw := 1
	if col < len(runes) {
		cw = runeCells(runes[col])
	}
	for m.hscroll < col && cellsBetween(runes, m.hscroll, col)+cw > tw {
		m.hscroll++
	}
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// changed returns the command announcing the current document.
func (m Model) changed() tea.Cmd {
	v := m.doc
	return func() tea.Msg { return ChangeMsg{Value: v} }
}
