// Package tui is the quizedit terminal application: the JSON editor pane,
// the error list, the status bar and the save/import actions around them.
package tui

import (
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/quizedit/internal/auth"
	"github.com/xonecas/quizedit/internal/store"
	"github.com/xonecas/quizedit/internal/theme"
	"github.com/xonecas/quizedit/internal/tui/editor"
	"github.com/xonecas/quizedit/internal/tui/modal"
)

// Options configures a new application model.
type Options struct {
	Path        string // File being edited
	Text        string // Its current contents ("" for a new file)
	SyntaxTheme string // Chroma style name for the UI palette
	WheelLines  int
	Store       *store.Store // nil disables import and usage records
	User        auth.User
}

// Model is the application model.
type Model struct {
	width  int
	height int
	layout layout

	palette theme.Palette
	styles  Styles
	keys    keyMap

	editor editor.Model

	path  string
	saved string // contents as last loaded or saved
	dirty bool

	errSel     int // selected entry in the error list
	lastAction string
	actionErr  bool
	quitArmed  bool

	store *store.Store
	user  auth.User

	errorModal *modal.Model
	helpModal  *modal.TextView
}

// New creates the application model.
func New(opts Options) Model {
	themeName := opts.SyntaxTheme
	if themeName == "" {
		themeName = theme.Default
	}
	palette := theme.ThemePalette(themeName)

	ed := editor.New(editor.StylesFromPalette(palette))
	ed.Placeholder = "Paste or type quiz JSON…"
	if opts.WheelLines > 0 {
		ed.WheelLines = opts.WheelLines
	}
	ed.SetValue(opts.Text)
	ed.Focus()

	m := Model{
		palette: palette,
		styles:  NewStyles(palette),
		keys:    defaultKeyMap(),
		editor:  ed,
		path:    opts.Path,
		saved:   opts.Text,
		store:   opts.Store,
		user:    opts.User,
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// fileName is the base name shown in the status bar.
func (m Model) fileName() string {
	if m.path == "" {
		return "[no file]"
	}
	return filepath.Base(m.path)
}

// Editor returns the editor widget.
func (m Model) Editor() editor.Model { return m.editor }
