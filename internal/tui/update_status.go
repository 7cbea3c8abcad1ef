package tui

import "github.com/rs/zerolog/log"

// setAction records the last action for the status bar.
func (m *Model) setAction(text string, isErr bool) {
	m.lastAction = text
	m.actionErr = isErr
	if isErr {
		log.Debug().Str("action", text).Msg("action failed")
	}
}

// selectErrorForLine highlights the first error list entry for line.
func (m *Model) selectErrorForLine(line int) {
	for i, e := range m.errorEntries() {
		if e.line == line {
			m.errSel = i
			return
		}
	}
}

func (m *Model) clampErrSel() {
	n := len(m.editor.Analysis().Messages)
	m.errSel = max(min(m.errSel, n-1), 0)
}
