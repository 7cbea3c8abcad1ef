package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/xonecas/quizedit/internal/theme"
	"github.com/xonecas/quizedit/internal/tui/modal"
)

// Styles are the application chrome styles derived from the palette.
type Styles struct {
	BgFill     lipgloss.Style
	Border     lipgloss.Style
	Title      lipgloss.Style
	Text       lipgloss.Style
	Dim        lipgloss.Style
	StatusText lipgloss.Style
	Accent     lipgloss.Style
	Error      lipgloss.Style
	Valid      lipgloss.Style
	Selected   lipgloss.Style
}

// NewStyles builds the chrome styles for p.
func NewStyles(p theme.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	base := lipgloss.NewStyle().Background(bg)
	return Styles{
		BgFill:     base,
		Border:     base.Foreground(lipgloss.Color(p.Border)),
		Title:      base.Foreground(lipgloss.Color(p.Fg)).Bold(true),
		Text:       base.Foreground(lipgloss.Color(p.Fg)),
		Dim:        base.Foreground(lipgloss.Color(p.Dim)),
		StatusText: base.Foreground(lipgloss.Color(p.Muted)),
		Accent:     base.Foreground(lipgloss.Color(p.Accent)),
		Error:      base.Foreground(lipgloss.Color(p.Error)),
		Valid:      base.Foreground(lipgloss.Color(p.Added)),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Fg)).Background(lipgloss.Color(p.SelBg)),
	}
}

// modalColors maps the palette onto modal colors.
func modalColors(p theme.Palette) modal.Colors {
	return modal.Colors{
		Fg:     p.Fg,
		Bg:     p.Bg,
		Dim:    p.Dim,
		SelFg:  p.Bg,
		SelBg:  p.Fg,
		Border: p.Border,
	}
}
