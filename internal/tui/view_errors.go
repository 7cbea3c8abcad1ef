package tui

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/quizedit/internal/jsonedit"
)

// errorRow is one rendered row of the error pane. entry is the index of the
// error it belongs to, or -1 for the header.
type errorRow struct {
	text  string
	entry int
}

// errorRows wraps every error entry to the pane width. The first row is
// the header.
func (m Model) errorRows(width int) []errorRow {
	entries := m.errorEntries()
	header := "No errors"
	if len(entries) > 0 {
		header = "Errors (" + strconv.Itoa(len(entries)) + ")"
	}
	rows := []errorRow{{text: " " + header, entry: -1}}

	bodyW := max(width-3, 1)
	for i, e := range entries {
		wrapped := strings.Split(ansi.Wrap(e.msg, bodyW, ""), "\n")
		for j, line := range wrapped {
			prefix := "   "
			if j == 0 {
				prefix = " • "
			}
			rows = append(rows, errorRow{text: prefix + line, entry: i})
		}
	}
	return rows
}

// errorScroll returns the first visible row so the selected entry stays on
// screen.
func (m Model) errorScroll(rows []errorRow, height int) int {
	if height <= 0 || len(rows) <= height {
		return 0
	}
	last := -1
	for i, r := range rows {
		if r.entry == m.errSel {
			last = i
		}
	}
	if last < height {
		return 0
	}
	return min(last-height+1, len(rows)-height)
}

// renderErrorPane renders height rows of exactly width cells.
func (m Model) renderErrorPane(width, height int) []string {
	rows := m.errorRows(width)
	start := m.errorScroll(rows, height)
	status := m.editor.Analysis().Summary.Status

	out := make([]string, height)
	for i := range height {
		idx := start + i
		if idx >= len(rows) {
			out[i] = m.styles.BgFill.Render(strings.Repeat(" ", width))
			continue
		}
		r := rows[idx]
		style := m.styles.Error
		switch {
		case r.entry < 0 && len(rows) == 1:
			style = m.styles.Valid
			if status == jsonedit.StatusEmpty {
				style = m.styles.Dim
			}
		case r.entry < 0:
			style = m.styles.Title
		case r.entry == m.errSel:
			style = m.styles.Selected
		}
		text := ansi.Truncate(r.text, width, "…")
		if pad := width - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		out[i] = style.Render(text)
	}
	return out
}
