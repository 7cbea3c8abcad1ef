package editor

import (
	"charm.land/lipgloss/v2"
	"github.com/xonecas/quizedit/internal/theme"
)

// Styles are the widget's render styles.
type Styles struct {
	Text        lipgloss.Style // Edit surface
	Band        lipgloss.Style // Overlay band behind a flagged line
	Gutter      lipgloss.Style // Line numbers
	GutterError lipgloss.Style // Line numbers of flagged lines
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style
	MarkAdd     lipgloss.Style
	MarkChange  lipgloss.Style
	MarkDelete  lipgloss.Style
}

// StylesFromPalette builds the widget styles for a theme palette.
func StylesFromPalette(p theme.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	band := lipgloss.Color(p.ErrorBand)
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Fg)).Background(bg),
		Band:        lipgloss.NewStyle().Foreground(lipgloss.Color(p.Fg)).Background(band),
		Gutter:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)).Background(bg),
		GutterError: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Background(band),
		Selection:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Fg)).Background(lipgloss.Color(p.SelBg)),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)).Background(bg),
		MarkAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Added)).Background(bg),
		MarkChange:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Changed)).Background(bg),
		MarkDelete:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Background(bg),
	}
}

func (s Styles) mark(g GutterMark) (string, lipgloss.Style) {
	switch g {
	case GutterAdd:
		return "+", s.MarkAdd
	case GutterChange:
		return "~", s.MarkChange
	case GutterDelete:
		return "-", s.MarkDelete
	}
	return " ", s.Gutter
}
