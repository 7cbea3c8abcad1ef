package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/quizedit/internal/jsonedit"
	"github.com/xonecas/quizedit/internal/tui/modal"
)

// openErrorModal lists the current error messages for picking.
func (m *Model) openErrorModal() {
	entries := m.errorEntries()
	items := make([]modal.Item, len(entries))
	for i, e := range entries {
		items[i] = modal.Item{Name: e.msg, Line: e.line}
	}
	md := modal.New(items, "Filter: ", modalColors(m.palette))
	md.Title = "Errors"
	m.errorModal = &md
}

func (m *Model) openHelpModal() {
	tv := modal.NewTextView("Keys", m.helpText(), modalColors(m.palette))
	m.helpModal = &tv
}

// updateModals routes input to the open modal and applies its action.
func (m Model) updateModals(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.errorModal != nil:
		switch a := m.errorModal.HandleMsg(msg).(type) {
		case modal.ActionClose:
			m.errorModal = nil
		case modal.ActionSelect:
			m.errorModal = nil
			if a.Item.Line > 0 {
				m.editor.JumpToLine(a.Item.Line)
				m.selectErrorForLine(a.Item.Line)
				return m, m.usageCmd("jump")
			}
		}
	case m.helpModal != nil:
		if _, ok := m.helpModal.HandleMsg(msg).(modal.ActionClose); ok {
			m.helpModal = nil
		}
	}
	return m, nil
}

// errorEntry is one message of the error list with the line it flags.
type errorEntry struct {
	msg  string
	line int // 0 when no line could be read from the message
}

// errorEntries pairs every message of the current analysis with its line,
// read with the same grammar that flags the gutter.
func (m Model) errorEntries() []errorEntry {
	msgs := m.editor.Analysis().Messages
	doc := m.editor.Value()
	out := make([]errorEntry, len(msgs))
	for i, msg := range msgs {
		line, _ := jsonedit.ExtractLine(msg, doc)
		out[i] = errorEntry{msg: msg, line: line}
	}
	return out
}
