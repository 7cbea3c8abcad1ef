package tui

import (
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/xonecas/quizedit/internal/tui/editor"
)

// ChangeMarkers diffs the saved text against the current document and
// returns gutter markers keyed by 0-indexed line in the current document.
// Returns nil when nothing changed.
func ChangeMarkers(saved, current string) map[int]editor.GutterMark {
	if saved == current {
		return nil
	}
	// Line diffs need a trailing newline on both sides.
	a, b := withNewline(saved), withNewline(current)
	edits := myers.ComputeEdits(span.URIFromPath("saved"), a, b)
	unified := gotextdiff.ToUnified("saved", "current", a, edits)

	markers := make(map[int]editor.GutterMark)
	for _, h := range unified.Hunks {
		next := h.ToLine - 1 // 0-indexed row of the next line in the current text
		deleted, inserted := 0, []int(nil)
		flush := func() {
			switch {
			case len(inserted) > 0 && deleted > 0:
				for _, row := range inserted {
					markers[row] = editor.GutterChange
				}
			case len(inserted) > 0:
				for _, row := range inserted {
					markers[row] = editor.GutterAdd
				}
			case deleted > 0:
				// Pure deletion: mark the line above the gap.
				row := max(next-1, 0)
				if _, ok := markers[row]; !ok {
					markers[row] = editor.GutterDelete
				}
			}
			deleted, inserted = 0, nil
		}
		for _, l := range h.Lines {
			switch l.Kind {
			case gotextdiff.Delete:
				deleted++
			case gotextdiff.Insert:
				inserted = append(inserted, next)
				next++
			default:
				flush()
				next++
			}
		}
		flush()
	}

	if len(markers) == 0 {
		return nil
	}
	return markers
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
