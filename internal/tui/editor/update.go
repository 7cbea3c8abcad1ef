package editor

import (
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/xonecas/quizedit/internal/jsonedit"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case caretMsg:
		if m.hasPending && msg.gen == m.gen {
			m.hasPending = false
			m.SetSelection(msg.sel)
		}
		return m, nil

	case tea.KeyPressMsg:
		if !m.focus {
			return m, nil
		}
		m.flushCaret()
		return m.handleKey(msg)

	case tea.PasteMsg:
		if !m.focus {
			return m, nil
		}
		m.flushCaret()
		return m.insert(msg.Content)

	case tea.MouseClickMsg:
		if !m.focus || msg.Button != tea.MouseLeft {
			return m, nil
		}
		off, ok := m.screenToOffset(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.flushCaret()
		m.dragging = true
		m.anchor, m.head = off, off

	case tea.MouseMotionMsg:
		if m.dragging {
			if off, ok := m.screenToOffset(msg.X, msg.Y); ok {
				m.head = off
			}
		}

	case tea.MouseReleaseMsg:
		m.dragging = false

	case tea.MouseWheelMsg:
		if !m.focus {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseWheelUp:
			m.ScrollTo(m.sync.EditOffset() - m.wheelLines())
		case tea.MouseWheelDown:
			m.ScrollTo(m.sync.EditOffset() + m.wheelLines())
		}
	}
	return m, nil
}

func (m Model) wheelLines() int {
	if m.WheelLines > 0 {
		return m.WheelLines
	}
	return defaultWheelLines
}

// flushCaret applies a pending caret immediately so the next key acts on
// the selection the engine computed.
func (m *Model) flushCaret() {
	if m.hasPending {
		m.applyPending()
	}
}

func (m *Model) applyPending() {
	m.hasPending = false
	m.SetSelection(m.pending)
}

// engineKey maps a key press onto the engine's key set.
func engineKey(msg tea.KeyPressMsg) (jsonedit.Key, bool) {
	switch msg.Keystroke() {
	case "tab":
		return jsonedit.Key{Code: jsonedit.KeyTab}, true
	case "enter":
		return jsonedit.Key{Code: jsonedit.KeyEnter}, true
	}
	r := []rune(msg.Text)
	if len(r) != 1 {
		return jsonedit.Key{}, false
	}
	k := jsonedit.RuneKey(r[0])
	return k, jsonedit.Intercepts(k)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	if k, ok := engineKey(msg); ok {
		if edit, ok := jsonedit.HandleKey(m.doc, m.Selection(), k); ok {
			return m.applyEdit(edit)
		}
	}

	n := m.runeLen()
	switch msg.Keystroke() {
	// --- Shift+navigation: extend selection ---
	case "shift+left":
		m.moveHead(m.head-1, true)
	case "shift+right":
		m.moveHead(m.head+1, true)
	case "shift+up":
		m.moveHead(m.verticalOffset(-1), true)
	case "shift+down":
		m.moveHead(m.verticalOffset(1), true)
	case "shift+home":
		m.moveHead(m.lineEdge(false), true)
	case "shift+end":
		m.moveHead(m.lineEdge(true), true)
	case "shift+pgup":
		m.moveHead(m.verticalOffset(-m.page()), true)
	case "shift+pgdown":
		m.moveHead(m.verticalOffset(m.page()), true)

	// --- Plain navigation: collapse selection ---
	case "left":
		if m.HasSelection() {
			m.moveHead(m.Selection().Start, false)
		} else {
			m.moveHead(m.head-1, false)
		}
	case "right":
		if m.HasSelection() {
			m.moveHead(m.Selection().End, false)
		} else {
			m.moveHead(m.head+1, false)
		}
	case "up":
		m.moveHead(m.verticalOffset(-1), false)
	case "down":
		m.moveHead(m.verticalOffset(1), false)
	case "home":
		m.moveHead(m.lineEdge(false), false)
	case "end":
		m.moveHead(m.lineEdge(true), false)
	case "pgup":
		m.moveHead(m.verticalOffset(-m.page()), false)
	case "pgdown":
		m.moveHead(m.verticalOffset(m.page()), false)
	case "ctrl+home":
		m.moveHead(0, false)
	case "ctrl+end":
		m.moveHead(n, false)

	// --- Editing ---
	case "backspace":
		sel := m.Selection()
		if sel.Collapsed() {
			if sel.Start == 0 {
				return m, nil
			}
			sel.Start--
		}
		return m.replace(sel, "")
	case "delete", "ctrl+d":
		sel := m.Selection()
		if sel.Collapsed() {
			if sel.End == n {
				return m, nil
			}
			sel.End++
		}
		return m.replace(sel, "")
	case "ctrl+v":
		return m, readClipboard

	default:
		if msg.Text != "" {
			return m.insert(msg.Text)
		}
	}
	return m, nil
}

// readClipboard reads the system clipboard and delivers it as a paste.
func readClipboard() tea.Msg {
	text, err := clipboard.ReadAll()
	if err != nil || text == "" {
		return tea.ReadClipboard()
	}
	return tea.PasteMsg{Content: text}
}

// applyEdit replaces the document with an engine edit and defers the
// caret until after the next render.
func (m Model) applyEdit(edit jsonedit.Edit) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if edit.Text != m.doc {
		m.doc = edit.Text
		m.reanalyze()
		cmds = append(cmds, m.changed())
	}
	m.gen++
	m.pending = edit.Sel
	m.hasPending = true
	n := m.runeLen()
	m.anchor = clampInt(m.anchor, 0, n)
	m.head = clampInt(m.head, 0, n)
	m.clampScroll()

	gen, sel := m.gen, edit.Sel
	cmds = append(cmds, func() tea.Msg { return caretMsg{gen: gen, sel: sel} })
	return m, tea.Batch(cmds...)
}

// insert replaces the selection with text and places the caret after it.
func (m Model) insert(text string) (Model, tea.Cmd) {
	text = normalizeNewlines(text)
	if text == "" {
		return m, nil
	}
	return m.replace(m.Selection(), text)
}

func (m Model) replace(sel jsonedit.Selection, text string) (Model, tea.Cmd) {
	doc := jsonedit.Replace(m.doc, sel, text)
	if doc == m.doc {
		return m, nil
	}
	m.doc = doc
	m.reanalyze()
	caret := sel.Start + len([]rune(text))
	m.anchor, m.head = caret, caret
	m.clampScroll()
	m.ensureCaretVisible()
	return m, m.changed()
}

// moveHead moves the caret to off. With extend the anchor stays put.
func (m *Model) moveHead(off int, extend bool) {
	m.head = clampInt(off, 0, m.runeLen())
	if !extend {
		m.anchor = m.head
	}
	m.ensureCaretVisible()
}

// verticalOffset returns the offset delta rows away from the caret, keeping
// the column where the target line is long enough.
func (m Model) verticalOffset(delta int) int {
	row, col := jsonedit.OffsetToLineCol(m.doc, m.head)
	target := row + delta
	if target < 0 {
		return 0
	}
	if target >= m.LineCount() {
		return m.runeLen()
	}
	return jsonedit.LineColToOffset(m.doc, target, col)
}

// lineEdge returns the offset of the start or end of the caret's line.
func (m Model) lineEdge(end bool) int {
	row, _ := jsonedit.OffsetToLineCol(m.doc, m.head)
	if end {
		return jsonedit.LineColToOffset(m.doc, row, 1<<30)
	}
	return jsonedit.LineColToOffset(m.doc, row, 0)
}

func (m Model) page() int {
	if m.height > 1 {
		return m.height
	}
	return 1
}

// screenToOffset converts widget-relative x,y into a document offset.
// Clicks on the gutter do not map to the document.
func (m Model) screenToOffset(x, y int) (int, bool) {
	gw := m.gutterWidth()
	if x < gw || y < 0 || (m.height > 0 && y >= m.height) {
		return 0, false
	}
	row := m.sync.EditOffset() + y
	if row >= m.LineCount() {
		return m.runeLen(), true
	}
	runes := []rune(jsonedit.Lines(m.doc)[row])
	return jsonedit.LineColToOffset(m.doc, row, colAtCell(runes, m.hscroll, x-gw)), true
}
