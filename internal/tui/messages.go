package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/quizedit/internal/quiz"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// savedMsg reports the outcome of a save.
type savedMsg struct {
	path string
	text string
	err  error
}

// importedMsg reports the outcome of an import attempt. problems holds the
// quiz shape errors; err is a store or permission failure.
type importedMsg struct {
	quizID   string
	problems []string
	err      error
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// saveCmd writes text to path atomically.
func saveCmd(path, text string) tea.Cmd {
	return func() tea.Msg {
		err := SaveFile(path, text)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("save failed")
		} else {
			log.Info().Str("path", path).Int("bytes", len(text)).Msg("saved")
		}
		return savedMsg{path: path, text: text, err: err}
	}
}

// importCmd checks text as a quiz and stores it when it has no problems.
func (m Model) importCmd(text string) tea.Cmd {
	st, user, source := m.store, m.user, m.path
	return func() tea.Msg {
		q, problems := quiz.Check(text)
		if len(problems) > 0 {
			log.Info().Int("problems", len(problems)).Msg("import rejected")
			return importedMsg{problems: problems}
		}
		id, err := st.ImportQuiz(user, q, source)
		if err != nil {
			log.Warn().Err(err).Str("user", user.Name).Msg("import failed")
		}
		return importedMsg{quizID: id, err: err}
	}
}

// usageCmd records a feature-usage event off the update loop.
func (m Model) usageCmd(feature string) tea.Cmd {
	if m.store == nil {
		return nil
	}
	st, name := m.store, m.user.Name
	return func() tea.Msg {
		st.RecordUsage(feature, name)
		return nil
	}
}
