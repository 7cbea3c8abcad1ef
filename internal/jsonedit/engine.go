package jsonedit

import "strings"

// Indent is one indentation level.
const Indent = "  "

// KeyCode classifies a key event for the engine.
type KeyCode int

const (
	// KeyRune is a printable character; Key.Rune holds it.
	KeyRune KeyCode = iota
	KeyTab
	KeyEnter
)

// Key is a single key event as seen by the engine.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the key for a printable character.
func RuneKey(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Edit is the result of an intercepted key: the complete new document and
// the selection to apply once the host has rendered it.
type Edit struct {
	Text string
	Sel  Selection
}

// Intercepts reports whether k belongs to the set of keys the engine may
// take over. Every other key is left to the host's default text input.
func Intercepts(k Key) bool {
	switch k.Code {
	case KeyTab, KeyEnter:
		return true
	case KeyRune:
		return IsOpener(k.Rune) || IsCloser(k.Rune)
	}
	return false
}

// HandleKey decides whether k replaces the default insertion behavior. When
// it does, the returned Edit holds the new document and selection and the
// bool is true. When it returns false the host inserts the key itself.
func HandleKey(doc string, sel Selection, k Key) (Edit, bool) {
	r := []rune(doc)
	sel = sel.Clamp(len(r))

	switch k.Code {
	case KeyTab:
		return Edit{
			Text: Replace(doc, sel, Indent),
			Sel:  Caret(sel.Start + len(Indent)),
		}, true
	case KeyEnter:
		return newline(doc, r, sel), true
	case KeyRune:
		return handleRune(doc, r, sel, k.Rune)
	}
	return Edit{}, false
}

func handleRune(doc string, r []rune, sel Selection, c rune) (Edit, bool) {
	// Pair-skip: typing the closer that already sits after the caret.
	if sel.Collapsed() && IsCloser(c) && sel.Start < len(r) && r[sel.Start] == c {
		return Edit{Text: doc, Sel: Caret(sel.Start + 1)}, true
	}

	closer, ok := CloserFor(c)
	if !ok {
		return Edit{}, false
	}

	if !sel.Collapsed() {
		var b strings.Builder
		b.WriteString(string(r[:sel.Start]))
		b.WriteRune(c)
		b.WriteString(string(r[sel.Start:sel.End]))
		b.WriteRune(closer)
		b.WriteString(string(r[sel.End:]))
		return Edit{
			Text: b.String(),
			Sel:  Selection{Start: sel.Start + 1, End: sel.End + 1},
		}, true
	}

	return Edit{
		Text: Replace(doc, sel, string(c)+string(closer)),
		Sel:  Caret(sel.Start + 1),
	}, true
}

// newline implements smart Enter. Between an empty {} or [] pair the pair
// is split over three lines with the caret on the indented middle line.
// Otherwise the current indent is copied, plus one level after an opener.
// Nesting and string literals are not tracked.
func newline(doc string, r []rune, sel Selection) Edit {
	indent := leadingIndent(r, sel.Start)

	var prev, next rune
	if sel.Start > 0 {
		prev = r[sel.Start-1]
	}
	if sel.End < len(r) {
		next = r[sel.End]
	}

	if isBlockOpener(prev) {
		if closer, _ := CloserFor(prev); next == closer {
			inner := "\n" + indent + Indent
			return Edit{
				Text: Replace(doc, sel, inner+"\n"+indent),
				Sel:  Caret(sel.Start + runeLen(inner)),
			}
		}
	}

	ins := "\n" + indent
	if isBlockOpener(prev) {
		ins += Indent
	}
	return Edit{
		Text: Replace(doc, sel, ins),
		Sel:  Caret(sel.Start + runeLen(ins)),
	}
}

// leadingIndent returns the run of spaces and tabs that starts the line
// containing caret, stopping at the caret.
func leadingIndent(r []rune, caret int) string {
	start := caret
	for start > 0 && r[start-1] != '\n' {
		start--
	}
	end := start
	for end < caret && (r[end] == ' ' || r[end] == '\t') {
		end++
	}
	return string(r[start:end])
}
