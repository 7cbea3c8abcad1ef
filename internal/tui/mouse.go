package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse routing via layout rects.
// ---------------------------------------------------------------------------

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.errorModal != nil || m.helpModal != nil {
		return m, nil
	}
	mouse := msg.Mouse()
	x, y := mouse.X, mouse.Y

	// Releases always reach the editor so a drag that leaves it ends.
	if _, ok := msg.(tea.MouseReleaseMsg); ok || inRect(x, y, m.layout.editor) {
		return m.forwardToEditor(translateMouse(msg, m.layout.editor.Min.X, m.layout.editor.Min.Y))
	}
	if _, ok := msg.(tea.MouseMotionMsg); ok {
		return m.forwardToEditor(translateMouse(msg, m.layout.editor.Min.X, m.layout.editor.Min.Y))
	}

	if inRect(x, y, m.layout.errors) {
		if click, ok := msg.(tea.MouseClickMsg); ok && click.Button == tea.MouseLeft {
			return m, m.clickErrorRow(y - m.layout.errors.Min.Y)
		}
	}
	return m, nil
}

// clickErrorRow selects the error entry drawn on the given pane row and
// jumps to its line.
func (m *Model) clickErrorRow(row int) tea.Cmd {
	rows := m.errorRows(m.layout.errors.Dx())
	row += m.errorScroll(rows, m.layout.errors.Dy())
	if row < 0 || row >= len(rows) || rows[row].entry < 0 {
		return nil
	}
	idx := rows[row].entry
	m.errSel = idx
	if line := m.errorEntries()[idx].line; line > 0 {
		m.editor.JumpToLine(line)
		return m.usageCmd("jump")
	}
	return nil
}

// translateMouse offsets a mouse message's coordinates for child components.
func translateMouse(msg tea.MouseMsg, offX, offY int) tea.Msg {
	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseMotionMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseReleaseMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	case tea.MouseWheelMsg:
		ev.X -= offX
		ev.Y -= offY
		return ev
	}
	return msg
}
