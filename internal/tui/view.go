package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	content := m.renderContent()
	switch {
	case m.errorModal != nil:
		content = m.errorModal.View(m.width, m.height)
	case m.helpModal != nil:
		content = m.helpModal.View(m.width, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	ly := m.layout
	contentH := ly.editor.Dy()
	var b strings.Builder

	editorLines := strings.Split(m.editor.View(), "\n")
	errW := ly.errors.Dx()
	var errLines []string
	if errW > 0 {
		errLines = m.renderErrorPane(errW, contentH)
	}
	bgFill := m.styles.BgFill

	for row := 0; row < contentH; row++ {
		m.renderEditorRow(&b, editorLines, row, ly.editor.Dx(), bgFill)
		if errW > 0 {
			b.WriteString(m.styles.Border.Render("│"))
			b.WriteString(errLines[row])
		}
		b.WriteByte('\n')
	}

	m.renderStatusBar(&b, bgFill)
	return b.String()
}

// renderEditorRow writes one editor row padded to width.
func (m Model) renderEditorRow(b *strings.Builder, lines []string, row, width int, bgFill lipgloss.Style) {
	line := ""
	if row < len(lines) {
		line = lines[row]
	}
	b.WriteString(line)
	if pad := width - lipgloss.Width(line); pad > 0 {
		b.WriteString(bgFill.Render(strings.Repeat(" ", pad)))
	}
}
