package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/quizedit/internal/auth"
)

// keyMap holds the application bindings. Everything else goes to the editor.
type keyMap struct {
	Save      key.Binding
	Import    key.Binding
	NextError key.Binding
	PrevError key.Binding
	ErrorList key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Import:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "check and import quiz")),
		NextError: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next error line")),
		PrevError: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous error line")),
		ErrorList: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "pick an error")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+c"), key.WithHelp("ctrl+y", "copy selection")),
		Help:      key.NewBinding(key.WithKeys("ctrl+h"), key.WithHelp("ctrl+h", "keys")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	}
}

type keyHandler struct {
	binding key.Binding
	handle  func(*Model) (Model, tea.Cmd)
}

func (m *Model) keyPressHandlers() []keyHandler {
	return []keyHandler{
		{m.keys.Save, (*Model).handleSave},
		{m.keys.Import, (*Model).handleImport},
		{m.keys.NextError, (*Model).handleNextError},
		{m.keys.PrevError, (*Model).handlePrevError},
		{m.keys.ErrorList, (*Model).handleErrorList},
		{m.keys.Copy, (*Model).handleCopy},
		{m.keys.Help, (*Model).handleHelp},
		{m.keys.Quit, (*Model).handleQuit},
	}
}

// handleKeyPress processes application keys. Returns (model, cmd, true) if handled.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	for _, h := range m.keyPressHandlers() {
		if key.Matches(msg, h.binding) {
			if !key.Matches(msg, m.keys.Quit) {
				m.quitArmed = false
			}
			mdl, cmd := h.handle(m)
			return mdl, cmd, true
		}
	}
	m.quitArmed = false
	return Model{}, nil, false
}

func (m *Model) handleSave() (Model, tea.Cmd) {
	if m.path == "" {
		m.setAction("no file name: start quizedit with a path", true)
		return *m, nil
	}
	return *m, tea.Batch(saveCmd(m.path, m.editor.Value()), m.usageCmd("save"))
}

func (m *Model) handleImport() (Model, tea.Cmd) {
	if m.store == nil {
		m.setAction("import unavailable: no record store", true)
		return *m, nil
	}
	if !m.user.Role.CanImport() {
		m.setAction(fmt.Sprintf("import: %s as %s", auth.ErrForbidden, m.user.Role), true)
		return *m, nil
	}
	m.setAction("importing…", false)
	return *m, tea.Batch(m.importCmd(m.editor.Value()), m.usageCmd("import"))
}

func (m *Model) handleNextError() (Model, tea.Cmd) {
	return m.stepError(m.editor.NextErrorLine)
}

func (m *Model) handlePrevError() (Model, tea.Cmd) {
	return m.stepError(m.editor.PrevErrorLine)
}

func (m *Model) stepError(step func() (int, bool)) (Model, tea.Cmd) {
	line, ok := step()
	if !ok {
		m.setAction("no errors", false)
		return *m, nil
	}
	m.selectErrorForLine(line)
	return *m, m.usageCmd("jump")
}

func (m *Model) handleErrorList() (Model, tea.Cmd) {
	m.openErrorModal()
	return *m, nil
}

func (m *Model) handleCopy() (Model, tea.Cmd) {
	cmd := m.copySelection()
	if cmd == nil {
		m.setAction("nothing selected", false)
		return *m, nil
	}
	m.setAction("copied", false)
	return *m, tea.Batch(cmd, m.usageCmd("copy"))
}

func (m *Model) handleHelp() (Model, tea.Cmd) {
	m.openHelpModal()
	return *m, nil
}

func (m *Model) handleQuit() (Model, tea.Cmd) {
	if m.dirty && !m.quitArmed {
		m.quitArmed = true
		m.setAction("unsaved changes: press again to quit", true)
		return *m, nil
	}
	return *m, tea.Quit
}

// helpText lists the application and editor keys.
func (m Model) helpText() string {
	rows := [][2]string{}
	for _, h := range m.keyPressHandlers() {
		help := h.binding.Help()
		rows = append(rows, [2]string{help.Key, help.Desc})
	}
	rows = append(rows,
		[2]string{"{ [ \"", "insert pair, or wrap the selection"},
		[2]string{"} ] \"", "step over a matching closer"},
		[2]string{"enter", "newline with indent, split {} and []"},
		[2]string{"tab", "indent two spaces"},
		[2]string{"shift+arrows", "extend selection"},
		[2]string{"home/end", "line start/end"},
		[2]string{"pgup/pgdown", "page"},
		[2]string{"ctrl+home/ctrl+end", "document start/end"},
		[2]string{"ctrl+v", "paste"},
	)
	w := 0
	for _, r := range rows {
		w = max(w, len(r[0]))
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s  %s", w, r[0], r[1])
	}
	return b.String()
}
