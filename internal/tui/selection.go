package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

// copySelection copies the editor selection to the clipboard using both
// OSC 52 (for SSH/tmux) and the native clipboard.
func (m *Model) copySelection() tea.Cmd {
	text := m.editor.SelectedText()
	if text == "" {
		return nil
	}
	native := func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			log.Debug().Err(err).Msg("native clipboard unavailable")
		}
		return nil
	}
	return tea.Batch(tea.SetClipboard(text), native)
}
