package jsonedit

// JumpMargin is how many lines stay visible above a jump target.
const JumpMargin = 3

// ScrollSync keeps the gutter and the error overlay scrolled exactly like
// the edit surface. Only the edit surface can be scrolled; the other two
// follow it.
type ScrollSync struct {
	edit    int
	gutter  int
	overlay int
}

// SetEditOffset scrolls the edit surface and both followers to off (never
// below zero). It reports whether anything moved.
func (s *ScrollSync) SetEditOffset(off int) bool {
	if off < 0 {
		off = 0
	}
	if s.edit == off && s.gutter == off && s.overlay == off {
		return false
	}
	s.edit = off
	s.gutter = off
	s.overlay = off
	return true
}

// ScrollBy moves the edit surface by delta rows.
func (s *ScrollSync) ScrollBy(delta int) bool { return s.SetEditOffset(s.edit + delta) }

func (s ScrollSync) EditOffset() int    { return s.edit }
func (s ScrollSync) GutterOffset() int  { return s.gutter }
func (s ScrollSync) OverlayOffset() int { return s.overlay }

// JumpToLine selects the whole 1-indexed line and returns the scroll offset
// that puts it JumpMargin rows below the top of the surface.
func JumpToLine(doc string, line int) (Selection, int) {
	lines := Lines(doc)
	line = clamp(line, 1, len(lines))
	start := LineStart(doc, line)
	sel := Selection{Start: start, End: start + runeLen(lines[line-1])}
	top := line - 1 - JumpMargin
	if top < 0 {
		top = 0
	}
	return sel, top
}
