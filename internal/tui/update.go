package tui

import (
	"errors"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/quizedit/internal/auth"
	"github.com/xonecas/quizedit/internal/tui/editor"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	// -- Modals take all input while open ------------------------------------
	case tea.KeyPressMsg, tea.MouseWheelMsg:
		if m.errorModal != nil || m.helpModal != nil {
			return m.updateModals(msg)
		}
	}

	switch msg := msg.(type) {
	// -- Paste (clipboard read or bracketed paste) ---------------------------
	case tea.ClipboardMsg:
		return m.forwardToEditor(tea.PasteMsg{Content: msg.String()})

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		return m.handleMouse(msg)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		if mdl, cmd, handled := m.handleKeyPress(msg); handled {
			return mdl, cmd
		}

	// -- Editor output -------------------------------------------------------
	case editor.ChangeMsg:
		m.handleChange(msg.Value)
		return m, nil

	// -- Actions -------------------------------------------------------------
	case savedMsg:
		m.handleSaved(msg)
		return m, nil
	case importedMsg:
		m.handleImported(msg)
		return m, nil
	}

	return m.forwardToEditor(msg)
}

func (m Model) forwardToEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// handleChange tracks the dirty flag and change markers for a new document.
func (m *Model) handleChange(text string) {
	m.dirty = text != m.saved
	m.editor.SetChangeMarkers(ChangeMarkers(m.saved, text))
	m.clampErrSel()
}

func (m *Model) handleSaved(msg savedMsg) {
	if msg.err != nil {
		m.setAction("save failed: "+msg.err.Error(), true)
		return
	}
	m.saved = msg.text
	m.dirty = m.editor.Value() != m.saved
	m.editor.SetChangeMarkers(ChangeMarkers(m.saved, m.editor.Value()))
	m.setAction("saved "+m.fileName(), false)
}

// handleImported feeds import problems back into the editor as external
// errors. A clean import clears them.
func (m *Model) handleImported(msg importedMsg) {
	switch {
	case len(msg.problems) > 0:
		m.editor.SetExternalErrors(msg.problems)
		m.errSel = 0
		n := len(msg.problems)
		noun := " problems"
		if n == 1 {
			noun = " problem"
		}
		m.setAction("import rejected: "+strconv.Itoa(n)+noun, true)
	case errors.Is(msg.err, auth.ErrForbidden):
		m.setAction("import: "+auth.ErrForbidden.Error(), true)
	case msg.err != nil:
		m.setAction("import failed: "+msg.err.Error(), true)
	default:
		m.editor.SetExternalErrors(nil)
		m.errSel = 0
		id := msg.quizID
		if len(id) > 8 {
			id = id[:8]
		}
		m.setAction("imported quiz "+id, false)
	}
}
