package modal

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// TextView is a read-only scrollable modal, used for the key help.
type TextView struct {
	title   string
	content string
	scroll  int
	colors  Colors
}

// NewTextView creates a text view modal.
func NewTextView(title, content string, colors Colors) TextView {
	return TextView{title: title, content: content, colors: colors}
}

// HandleMsg processes key events. Returns ActionClose when the modal should close.
func (t *TextView) HandleMsg(msg tea.Msg) Action {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.Keystroke() {
		case "esc", "q", "enter", "ctrl+h":
			return ActionClose{}
		case keyUp, "k":
			t.scroll--
		case keyDown, "j":
			t.scroll++
		case "pgup":
			t.scroll -= 10
		case "pgdown":
			t.scroll += 10
		}
	case tea.MouseWheelMsg:
		if msg.Button == tea.MouseWheelUp {
			t.scroll--
		} else if msg.Button == tea.MouseWheelDown {
			t.scroll++
		}
	}
	t.scroll = max(t.scroll, 0)
	return nil
}

// Scroll returns the first visible content row.
func (t *TextView) Scroll() int { return t.scroll }

// View renders the modal centered in the terminal at appWidth x appHeight.
func (t *TextView) View(appWidth, appHeight int) string {
	w, h, innerW := boxSize(appWidth, appHeight)

	bg := lipgloss.Color(t.colors.Bg)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.colors.Dim)).Background(bg)
	fgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.colors.Fg)).Background(bg)

	wrapped := strings.Split(ansi.Hardwrap(t.content, innerW, true), "\n")

	listH := max(h-4, 1) // border (2) + title (1) + divider (1)
	maxScroll := max(len(wrapped)-listH, 0)
	t.scroll = min(t.scroll, maxScroll)

	title := truncate(t.title, innerW)
	switch {
	case t.scroll > 0 && t.scroll < maxScroll:
		title += "  ↑↓"
	case t.scroll > 0:
		title += "  ↑"
	case maxScroll > 0:
		title += "  ↓"
	}

	var sb strings.Builder
	sb.WriteString(fgStyle.Bold(true).Render(title))
	sb.WriteByte('\n')
	sb.WriteString(dimStyle.Render(strings.Repeat("─", innerW)))

	end := min(t.scroll+listH, len(wrapped))
	for _, l := range wrapped[t.scroll:end] {
		sb.WriteByte('\n')
		sb.WriteString(fgStyle.Render(padRight(l, innerW)))
	}
	for i := end - t.scroll; i < listH; i++ {
		sb.WriteByte('\n')
		sb.WriteString(fgStyle.Render(strings.Repeat(" ", innerW)))
	}

	return t.colors.box(appWidth, appHeight, w, sb.String())
}
