package ui

// sidePanelWidth is the fixed width of the session side panel in wide layout.
const sidePanelWidth = 36

func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 80 || rows < 24 {
		return LayoutTooSmall
	}
	if cols >= 120 && rows >= 30 {
		return LayoutWide
	}
	return LayoutMedium
}

// CanvasSize reports the figure viewport for a terminal of the given size:
// the interior of the canvas panel after the header row, status row, and
// panel borders are taken out. Controllers use it to size the engine canvas
// so that view coordinates and figure coordinates line up.
func CanvasSize(cols, rows int) (int, int) {
	switch DetermineLayoutMode(cols, rows) {
	case LayoutTooSmall:
		return 0, 0
	case LayoutWide:
		return cols - sidePanelWidth - 2, rows - 4
	default:
		return cols - 2, rows - 4
	}
}
