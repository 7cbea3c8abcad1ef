package tui

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/quizedit/internal/auth"
	"github.com/xonecas/quizedit/internal/jsonedit"
	"github.com/xonecas/quizedit/internal/store"
)

const goodQuiz = `{
  "title": "Capitals",
  "sections": [
    {
      "id": "eu",
      "questions": [
        {"question": "Capital of Portugal?", "options": ["Lisbon", "Porto"], "answer": 0}
      ]
    }
  ]
}`

var author = auth.User{Name: "ana", Role: auth.RoleAuthor}

func newApp(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

// send delivers msg and runs every resulting command, feeding the messages
// back in. It reports whether the program asked to quit.
func send(t *testing.T, m Model, msg tea.Msg) (Model, bool) {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	quit := false
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch out := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, out...)
		case tea.QuitMsg:
			quit = true
		default:
			updated, next := m.Update(out)
			m = updated.(Model)
			queue = append(queue, next)
		}
	}
	return m, quit
}

// arrayDoc is a valid JSON array over n lines (n >= 3), one value per line.
func arrayDoc(n int) string {
	lines := make([]string, n)
	lines[0], lines[n-1] = "[", "]"
	for i := 1; i < n-1; i++ {
		lines[i] = "  " + strconv.Itoa(i) + ","
	}
	lines[n-2] = strings.TrimSuffix(lines[n-2], ",")
	return strings.Join(lines, "\n")
}

func ctrl(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl} }

func typeRune(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "quizedit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestTypingMarksDirty(t *testing.T) {
	m := newApp(t, Options{Path: "quiz.json", Text: "{}"})
	m.editor.SetSelection(jsonedit.Caret(1))
	m, _ = send(t, m, typeRune('['))
	if got := m.editor.Value(); got != "{[]}" {
		t.Fatalf("value = %q", got)
	}
	if !m.dirty {
		t.Error("expected dirty after an edit")
	}
	if got := ChangeMarkers(m.saved, m.editor.Value()); len(got) != 1 {
		t.Errorf("markers = %v", got)
	}
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	m := newApp(t, Options{Path: path, Text: "{}"})
	m.editor.SetSelection(jsonedit.Caret(1))
	m, _ = send(t, m, typeRune('['))
	m, _ = send(t, m, ctrl('s'))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "{[]}" {
		t.Errorf("saved %q", data)
	}
	if m.dirty || m.actionErr {
		t.Errorf("dirty=%v actionErr=%v", m.dirty, m.actionErr)
	}
	if m.lastAction != "saved quiz.json" {
		t.Errorf("action = %q", m.lastAction)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	m := newApp(t, Options{Text: "{}"})
	m, _ = send(t, m, ctrl('s'))
	if !m.actionErr || !strings.Contains(m.lastAction, "no file name") {
		t.Errorf("action = %q (err=%v)", m.lastAction, m.actionErr)
	}
}

func TestImportRejectionFlagsLines(t *testing.T) {
	st := openTestStore(t)
	m := newApp(t, Options{Text: "{\n  \"sections\": {}\n}", Store: st, User: author})
	m, _ = send(t, m, ctrl('r'))

	a := m.editor.Analysis()
	if !a.ErrorLines.Has(2) {
		t.Errorf("flagged = %v, want line 2", a.ErrorLines.Sorted())
	}
	if len(a.Messages) != 1 || !strings.HasPrefix(a.Messages[0], "line 2: sections:") {
		t.Errorf("messages = %q", a.Messages)
	}
	if !m.actionErr || m.lastAction != "import rejected: 1 problem" {
		t.Errorf("action = %q", m.lastAction)
	}
	recs, _ := st.List(store.Quizzes)
	if len(recs) != 0 {
		t.Errorf("stored %d quizzes", len(recs))
	}
}

func TestImportStoresQuiz(t *testing.T) {
	st := openTestStore(t)
	m := newApp(t, Options{Path: "capitals.json", Text: goodQuiz, Store: st, User: author})
	m.editor.SetExternalErrors([]string{"line 3: stale"})
	m, _ = send(t, m, ctrl('r'))

	if m.actionErr || !strings.HasPrefix(m.lastAction, "imported quiz ") {
		t.Fatalf("action = %q", m.lastAction)
	}
	if got := m.editor.ExternalErrors(); len(got) != 0 {
		t.Errorf("external errors kept: %q", got)
	}
	recs, err := st.List(store.Quizzes)
	if err != nil || len(recs) != 1 {
		t.Fatalf("quizzes = %d, %v", len(recs), err)
	}
	var q store.QuizRecord
	if err := recs[0].Decode(&q); err != nil {
		t.Fatal(err)
	}
	if q.Title != "Capitals" || q.Questions != 1 || q.Source != "capitals.json" || q.Author != "ana" {
		t.Errorf("record = %+v", q)
	}
	usage, _ := st.Filter(store.FeatureUsage, "feature", "import")
	if len(usage) != 1 {
		t.Errorf("import usage records = %d", len(usage))
	}
}

func TestImportNeedsRole(t *testing.T) {
	st := openTestStore(t)
	m := newApp(t, Options{Text: goodQuiz, Store: st, User: auth.User{Name: "vi", Role: auth.RoleViewer}})
	m, _ = send(t, m, ctrl('r'))
	if !m.actionErr || !strings.Contains(m.lastAction, auth.ErrForbidden.Error()) {
		t.Errorf("action = %q", m.lastAction)
	}
	recs, _ := st.List(store.Quizzes)
	if len(recs) != 0 {
		t.Errorf("stored %d quizzes", len(recs))
	}
}

func TestImportWithoutStore(t *testing.T) {
	m := newApp(t, Options{Text: goodQuiz, User: author})
	m, _ = send(t, m, ctrl('r'))
	if !m.actionErr || !strings.Contains(m.lastAction, "no record store") {
		t.Errorf("action = %q", m.lastAction)
	}
}

func TestNextErrorSelectsEntry(t *testing.T) {
	doc := arrayDoc(30)
	m := newApp(t, Options{Text: doc})
	m.editor.SetExternalErrors([]string{"line 5: first", "line 20: second"})

	m, _ = send(t, m, ctrl('n'))
	if got := jsonedit.LineAt(m.editor.Value(), m.editor.Caret()); got != 5 {
		t.Fatalf("caret line = %d, want 5", got)
	}
	m, _ = send(t, m, ctrl('n'))
	if got := jsonedit.LineAt(m.editor.Value(), m.editor.Caret()); got != 20 {
		t.Fatalf("caret line = %d, want 20", got)
	}
	if m.errSel != 1 {
		t.Errorf("errSel = %d, want 1", m.errSel)
	}
	m, _ = send(t, m, ctrl('p'))
	if got := jsonedit.LineAt(m.editor.Value(), m.editor.Caret()); got != 5 || m.errSel != 0 {
		t.Errorf("caret line = %d errSel = %d", got, m.errSel)
	}
}

func TestErrorModalJumps(t *testing.T) {
	doc := arrayDoc(30)
	m := newApp(t, Options{Text: doc})
	m.editor.SetExternalErrors([]string{"line 5: first", "line 20: second"})

	m, _ = send(t, m, ctrl('e'))
	if m.errorModal == nil {
		t.Fatal("error modal not open")
	}
	m, _ = send(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = send(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.errorModal != nil {
		t.Fatal("modal still open")
	}
	if got := jsonedit.LineAt(m.editor.Value(), m.editor.Caret()); got != 20 {
		t.Errorf("caret line = %d, want 20", got)
	}
	if m.errSel != 1 {
		t.Errorf("errSel = %d", m.errSel)
	}
}

func TestClickErrorRowJumps(t *testing.T) {
	doc := arrayDoc(30)
	m := newApp(t, Options{Text: doc})
	m.editor.SetExternalErrors([]string{"line 5: first", "line 20: second"})

	// Row 0 is the header, then one row per short message.
	x := m.layout.errors.Min.X + 2
	m, _ = send(t, m, tea.MouseClickMsg{X: x, Y: 2, Button: tea.MouseLeft})
	if m.errSel != 1 {
		t.Errorf("errSel = %d, want 1", m.errSel)
	}
	if got := jsonedit.LineAt(m.editor.Value(), m.editor.Caret()); got != 20 {
		t.Errorf("caret line = %d, want 20", got)
	}
}

func TestQuitNeedsSecondPressWhenDirty(t *testing.T) {
	m := newApp(t, Options{Text: "{}"})
	m, quit := send(t, m, ctrl('q'))
	if !quit {
		t.Fatal("clean document should quit at once")
	}

	m.editor.SetSelection(jsonedit.Caret(1))
	m, _ = send(t, m, typeRune('['))
	m, quit = send(t, m, ctrl('q'))
	if quit || !m.quitArmed {
		t.Fatalf("quit=%v armed=%v", quit, m.quitArmed)
	}
	// Any other key disarms.
	m, _ = send(t, m, tea.KeyPressMsg{Code: tea.KeyLeft})
	if m.quitArmed {
		t.Fatal("still armed after another key")
	}
	m, _ = send(t, m, ctrl('q'))
	_, quit = send(t, m, ctrl('q'))
	if !quit {
		t.Error("second press should quit")
	}
}

func TestHelpModal(t *testing.T) {
	m := newApp(t, Options{Text: "{}"})
	m, _ = send(t, m, ctrl('h'))
	if m.helpModal == nil {
		t.Fatal("help not open")
	}
	out := ansi.Strip(m.helpModal.View(m.width, m.height))
	if !strings.Contains(out, "check and import quiz") {
		t.Errorf("help view missing bindings:\n%s", out)
	}
	m, _ = send(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.helpModal != nil {
		t.Error("help still open")
	}
}

func TestLayoutDropsErrorPaneWhenNarrow(t *testing.T) {
	ly := generateLayout(50, 20)
	if !ly.errors.Empty() || ly.editor.Dx() != 50 || ly.editor.Dy() != 18 {
		t.Errorf("narrow layout = %+v", ly)
	}
	ly = generateLayout(100, 20)
	if ly.errors.Dx() != 35 || ly.editor.Dx() != 64 {
		t.Errorf("wide layout = %+v", ly)
	}
}

func TestViewRowsFitWidth(t *testing.T) {
	m := newApp(t, Options{Path: "quiz.json", Text: "{\n  \"sections\": [\n}", User: author})
	for i, line := range strings.Split(m.renderContent(), "\n") {
		if w := ansi.StringWidth(line); w != 100 {
			t.Errorf("row %d width = %d", i, w)
		}
	}
}

func TestErrorPaneListsSyntaxErrorFirst(t *testing.T) {
	m := newApp(t, Options{Text: "{\n  \"sections\": x\n}"})
	m.editor.SetExternalErrors([]string{"line 1: root: stale"})

	entries := m.errorEntries()
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].line != 2 || !strings.HasPrefix(entries[0].msg, "Line 2: ") {
		t.Errorf("first entry = %+v, want the syntax error on line 2", entries[0])
	}
	if entries[1].line != 1 || entries[1].msg != "line 1: root: stale" {
		t.Errorf("second entry = %+v", entries[1])
	}
	rows := m.errorRows(m.layout.errors.Dx())
	if rows[0].text != " Errors (2)" || rows[1].entry != 0 {
		t.Errorf("rows = %+v", rows[:2])
	}
}
