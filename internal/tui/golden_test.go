package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/xonecas/quizedit/internal/auth"
)

func TestAppViewGolden(t *testing.T) {
	m := New(Options{
		Path: "quiz.json",
		Text: "{\n  \"sections\": {}\n}",
		User: auth.User{Name: "ana", Role: auth.RoleAuthor},
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = updated.(Model)
	m.editor.SetExternalErrors([]string{"line 2: expected array"})

	golden.RequireEqual(t, []byte(ansi.Strip(m.renderContent())))
}
