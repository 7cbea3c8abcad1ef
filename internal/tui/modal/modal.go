// Package modal provides the overlay dialogs of the editor: a filterable
// picker list and a scrollable read-only text view.
package modal

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Action is the result of handling a message. nil means no action.
type Action any

// ActionClose signals the modal should be dismissed.
type ActionClose struct{}

// ActionSelect signals an item was chosen.
type ActionSelect struct{ Item Item }

// Item is a single entry in the list.
type Item struct {
	Name string
	Desc string
	// Line is the 1-indexed document line the item points at, 0 for none.
	Line int
}

// Colors holds the theme colors for the modal.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
}

const (
	keyUp   = "up"
	keyDown = "down"
)

// Model is a filter input over a fixed list of items.
type Model struct {
	input    []rune
	cursor   int
	all      []Item
	items    []Item // all, filtered by input
	selected int

	colors Colors

	// Prompt shown before the input text.
	Prompt string
	// Title shown above the input when set.
	Title string
}

// New creates a picker over items.
func New(items []Item, prompt string, colors Colors) Model {
	m := Model{all: items, Prompt: prompt, colors: colors}
	m.filter()
	return m
}

// Items returns the items matching the current query.
func (m *Model) Items() []Item { return m.items }

// Query returns the current filter text.
func (m *Model) Query() string { return string(m.input) }

// filter keeps the items whose name or description contains every
// whitespace-separated word of the query, case-insensitively.
func (m *Model) filter() {
	words := strings.Fields(strings.ToLower(string(m.input)))
	m.items = m.items[:0]
	for _, it := range m.all {
		hay := strings.ToLower(it.Name + " " + it.Desc)
		ok := true
		for _, w := range words {
			if !strings.Contains(hay, w) {
				ok = false
				break
			}
		}
		if ok {
			m.items = append(m.items, it)
		}
	}
	if m.selected >= len(m.items) {
		m.selected = max(len(m.items)-1, 0)
	}
}

// HandleMsg processes a tea.Msg and returns an optional Action.
func (m *Model) HandleMsg(msg tea.Msg) Action {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.MouseWheelMsg:
		if msg.Button == tea.MouseWheelUp {
			m.move(-1)
		} else if msg.Button == tea.MouseWheelDown {
			m.move(1)
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) Action {
	switch msg.Keystroke() {
	case "esc":
		return ActionClose{}
	case "enter":
		if len(m.items) == 0 {
			return nil
		}
		return ActionSelect{Item: m.items[m.selected]}
	case keyUp, "ctrl+p":
		m.move(-1)
	case keyDown, "ctrl+n":
		m.move(1)
	case "backspace":
		if m.cursor > 0 {
			m.input = append(m.input[:m.cursor-1], m.input[m.cursor:]...)
			m.cursor--
			m.filter()
		}
	case "delete":
		if m.cursor < len(m.input) {
			m.input = append(m.input[:m.cursor], m.input[m.cursor+1:]...)
			m.filter()
		}
	case "ctrl+u":
		m.input = m.input[m.cursor:]
		m.cursor = 0
		m.filter()
	case "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor < len(m.input) {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = len(m.input)
	default:
		if msg.Text != "" {
			for _, r := range msg.Text {
				m.input = append(m.input[:m.cursor], append([]rune{r}, m.input[m.cursor:]...)...)
				m.cursor++
			}
			m.selected = 0
			m.filter()
		}
	}
	return nil
}

func (m *Model) move(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.items)-1)
}

// View renders the modal centered at the given app width and height.
func (m *Model) View(appWidth, appHeight int) string {
	w, h, innerW := boxSize(appWidth, appHeight)

	prompt := m.Prompt
	if prompt == "" {
		prompt = "> "
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim))
	var lines []string
	if m.Title != "" {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(truncate(m.Title, innerW)))
	}
	lines = append(lines, m.renderInput(prompt), dimStyle.Render(strings.Repeat("─", innerW)))

	listHeight := max(h-2-len(lines), 1) // border top/bottom
	lines = append(lines, m.renderList(innerW, listHeight)...)

	return m.colors.box(appWidth, appHeight, w, strings.Join(lines, "\n"))
}

func (m *Model) renderInput(prompt string) string {
	before := string(m.input[:m.cursor])
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	cursorChar := " "
	after := ""
	if m.cursor < len(m.input) {
		cursorChar = string(m.input[m.cursor])
		after = string(m.input[m.cursor+1:])
	}
	count := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim)).
		Render("  " + strconv.Itoa(len(m.items)) + "/" + strconv.Itoa(len(m.all)))
	return prompt + before + cursorStyle.Render(cursorChar) + after + count
}

func (m *Model) renderList(innerW, listHeight int) []string {
	scrollOff := 0
	if m.selected >= listHeight {
		scrollOff = m.selected - listHeight + 1
	}

	bg := lipgloss.Color(m.colors.Bg)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.Dim)).
		Background(bg)
	selStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.SelFg)).
		Background(lipgloss.Color(m.colors.SelBg))

	var lines []string
	for i := scrollOff; i < len(m.items) && len(lines) < listHeight; i++ {
		item := m.items[i]
		if i == m.selected {
			lines = append(lines, selStyle.Render(padRight(truncate(item.Name, innerW), innerW)))
			continue
		}
		line := truncate(item.Name, innerW)
		if item.Desc != "" && lipgloss.Width(line)+2 < innerW {
			line += dimStyle.Render(truncate("  "+item.Desc, innerW-lipgloss.Width(line)))
		}
		lines = append(lines, padRight(line, innerW))
	}

	for len(lines) < listHeight {
		lines = append(lines, strings.Repeat(" ", innerW))
	}
	return lines
}

// boxSize returns the outer box width and height and the inner text width
// for a modal taking 80% of the app.
func boxSize(appWidth, appHeight int) (w, h, innerW int) {
	w = max(appWidth*80/100, 30)
	h = max(appHeight*80/100, 8)
	innerW = max(w-6, 10) // border + padding
	return w, h, innerW
}

// box draws content in a rounded border centered in the app area.
func (c Colors) box(appWidth, appHeight, w int, content string) string {
	bg := lipgloss.Color(c.Bg)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Border)).
		BorderBackground(bg).
		Foreground(lipgloss.Color(c.Fg)).
		Background(bg).
		Padding(0, 1).
		Width(w - 2).
		Render(content)

	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
}

func padRight(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func truncate(s string, maxW int) string {
	return ansi.Truncate(s, maxW, "…")
}
