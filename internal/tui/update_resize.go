package tui

import (
	"image"

	tea "charm.land/bubbletea/v2"
)

const (
	statusRows   = 2 // separator + bar
	minEditorW   = 30
	minErrorPane = 24
)

// layout holds the screen rectangles of each region.
type layout struct {
	editor image.Rectangle
	div    image.Rectangle
	errors image.Rectangle
	status image.Rectangle
}

// generateLayout splits the screen into the editor, a divider, the error
// list and the status rows. Narrow screens drop the error list.
func generateLayout(width, height int) layout {
	contentH := max(height-statusRows, 0)
	errW := width * 35 / 100
	if errW < minErrorPane || width-errW-1 < minEditorW {
		errW = 0
	}
	edW := width
	if errW > 0 {
		edW = width - errW - 1
	}

	ly := layout{
		editor: image.Rect(0, 0, edW, contentH),
		status: image.Rect(0, contentH, width, height),
	}
	if errW > 0 {
		ly.div = image.Rect(edW, 0, edW+1, contentH)
		ly.errors = image.Rect(edW+1, 0, width, contentH)
	}
	return ly
}

// handleResize applies a window size change and re-derives layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.layout = generateLayout(m.width, m.height)
	m.updateComponentSizes()
}

// updateComponentSizes pushes layout dimensions to sub-models.
func (m *Model) updateComponentSizes() {
	m.editor.SetSize(m.layout.editor.Dx(), m.layout.editor.Dy())
}

func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}
