package editor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/quizedit/internal/jsonedit"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders height rows of exactly width cells. Each row is the gutter
// row at the gutter offset, then the edit row at the edit offset drawn over
// the overlay row at the overlay offset.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	lines := jsonedit.Lines(m.doc)
	flagged := m.analysis.ErrorLines
	gw := m.gutterWidth()
	tw := m.textWidth()
	edit, gutter, overlay := m.ScrollOffsets()

	// Caret and selection in row/col space.
	sel := m.Selection()
	selStartRow, selStartCol := jsonedit.OffsetToLineCol(m.doc, sel.Start)
	selEndRow, selEndCol := jsonedit.OffsetToLineCol(m.doc, sel.End)
	caretRow, caretCol := jsonedit.OffsetToLineCol(m.doc, m.head)

	var b strings.Builder
	for vi := 0; vi < m.height; vi++ {
		if vi > 0 {
			b.WriteByte('\n')
		}

		// -- Gutter ----------------------------------------------------------
		b.WriteString(m.renderGutter(gutter+vi, len(lines), gw, flagged))

		// -- Overlay ---------------------------------------------------------
		base := m.styles.Text
		if flagged.Has(overlay + vi + 1) {
			base = m.styles.Band
		}

		// -- Edit surface ----------------------------------------------------
		row := edit + vi
		if row >= len(lines) {
			b.WriteString(base.Render(strings.Repeat(" ", tw)))
			continue
		}
		if row == 0 && m.doc == "" && m.Placeholder != "" {
			b.WriteString(m.renderPlaceholder(tw, base))
			continue
		}

		lo, hi := -1, -1
		if !sel.Collapsed() && row >= selStartRow && row <= selEndRow {
			lo, hi = 0, len([]rune(lines[row]))+1
			if row == selStartRow {
				lo = selStartCol
			}
			if row == selEndRow {
				hi = selEndCol
			}
		}
		cc := -1
		if m.focus && row == caretRow {
			cc = caretCol
		}
		b.WriteString(m.renderLine(lines[row], tw, base, lo, hi, cc))
	}
	return b.String()
}

// renderGutter renders the line number and change marker for a 0-indexed
// row. Flagged lines get the error band.
func (m Model) renderGutter(row, lineCount, gw int, flagged jsonedit.LineSet) string {
	if row >= lineCount {
		return m.styles.Gutter.Render(strings.Repeat(" ", gw))
	}
	sty := m.styles.Gutter
	if flagged.Has(row + 1) {
		sty = m.styles.GutterError
	}
	num := sty.Render(fmt.Sprintf("%*d ", gw-2, row+1))
	mark, markSty := m.styles.mark(m.markers[row])
	return num + markSty.Render(mark)
}

const (
	cellText = iota
	cellSelected
	cellCaret
)

// renderLine renders the visible window of one line. [lo, hi) is the
// selected column range (-1 for none) and cc the caret column (-1 for none).
// The cell after the last rune is selected when hi extends past it, which
// marks the selected newline.
func (m Model) renderLine(line string, tw int, base lipgloss.Style, lo, hi, cc int) string {
	runes := []rune(line)
	styles := [...]lipgloss.Style{
		cellText:     base,
		cellSelected: m.styles.Selection,
		cellCaret:    m.styles.Cursor,
	}

	var b strings.Builder
	var run []rune
	kind := cellText
	flush := func() {
		if len(run) > 0 {
			b.WriteString(styles[kind].Render(string(run)))
			run = run[:0]
		}
	}

	width := 0
	for col := m.hscroll; width < tw; col++ {
		ch, cw := ' ', 1
		if col < len(runes) {
			ch, cw = runes[col], runeCells(runes[col])
			if ch == '\t' {
				ch = ' '
			}
		}
		if width+cw > tw {
			break
		}
		k := cellText
		switch {
		case col == cc:
			k = cellCaret
		case col >= lo && col < hi && col <= len(runes):
			k = cellSelected
		}
		if col > len(runes) && k == cellText && cc < col {
			// Rest of the row is padding.
			break
		}
		if k != kind {
			flush()
			kind = k
		}
		run = append(run, ch)
		width += cw
	}
	flush()

	out := b.String()
	if w := lipgloss.Width(out); w > tw {
		out = ansi.Truncate(out, tw, "")
	}
	if w := lipgloss.Width(out); w < tw {
		out += base.Render(strings.Repeat(" ", tw-w))
	}
	return out
}

// runeCells is the display width of one rune. Tabs draw as one cell.
func runeCells(r rune) int {
	if r == '\t' {
		return 1
	}
	return ansi.StringWidth(string(r))
}

// cellsBetween is the display width of runes[from:to].
func cellsBetween(runes []rune, from, to int) int {
	n := 0
	for i := max(from, 0); i < to && i < len(runes); i++ {
		n += runeCells(runes[i])
	}
	return n
}

// colAtCell returns the rune column drawn at cell x of a row whose first
// visible column is from. Cells past the end of the line map past it.
func colAtCell(runes []rune, from, x int) int {
	col, cells := from, 0
	for col < len(runes) {
		w := runeCells(runes[col])
		if cells+w > x {
			return col
		}
		cells += w
		col++
	}
	return col + x - cells
}

func (m Model) renderPlaceholder(tw int, base lipgloss.Style) string {
	ph := []rune(m.Placeholder)
	var out string
	if m.focus {
		out = m.styles.Cursor.Render(string(ph[0])) + m.styles.Placeholder.Render(string(ph[1:]))
	} else {
		out = m.styles.Placeholder.Render(m.Placeholder)
	}
	out = ansi.Truncate(out, tw, "")
	if w := lipgloss.Width(out); w < tw {
		out += base.Render(strings.Repeat(" ", tw-w))
	}
	return out
}
