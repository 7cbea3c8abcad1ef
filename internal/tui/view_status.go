package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// renderStatusBar writes the status separator and bar.
func (m Model) renderStatusBar(b *strings.Builder, bgFill lipgloss.Style) {
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	// -- Left segments --
	name := m.fileName()
	if m.dirty {
		name += "*"
	}
	left := strings.Join([]string{
		m.styles.Accent.Render(" " + name),
		m.styles.StatusText.Render(m.editor.Status()),
	}, m.styles.StatusText.Render("  "))

	// -- Right segments --
	var rightParts []string
	if m.lastAction != "" {
		style := m.styles.StatusText
		if m.actionErr {
			style = m.styles.Error
		}
		rightParts = append(rightParts, style.Render(ansi.Truncate(m.lastAction, 40, "…")))
	}
	if m.user.Name != "" {
		rightParts = append(rightParts, m.styles.Dim.Render(m.user.Name+"@"+string(m.user.Role)))
	}
	right := strings.Join(rightParts, m.styles.StatusText.Render("  "))

	// -- Compose: left + gap + right + trailing space --
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		right = ""
		gap = max(m.width-leftW-1, 0)
	}
	b.WriteString(left)
	b.WriteString(bgFill.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
	b.WriteString(bgFill.Render(" "))
}
