package engine

import (
	"plotdojo/internal/content"
	"plotdojo/internal/zones"
)

// EmptyZoneMessage is shown when a zone has no applicable rubric items:
// the picker still opens, with only the dismiss action under it.
const EmptyZoneMessage = "No rubric items apply to this region."

// DismissLabel is the no-finding escape hatch every picker offers.
const DismissLabel = "No issue here"

// Picker is the floating selection menu's transient state. At most one
// exists; opening another replaces it. X and Y are the placed top-left in
// canvas coordinates, Width and Height the outer panel size.
type Picker struct {
	Zone    zones.Zone
	AnchorX int
	AnchorY int
	X       int
	Y       int
	Width   int
	Height  int
	Items   []PickerItem
	Message string
}

// PickerItem is one claimable rubric row. Used rows stay visible but
// refuse selection, so a rubric item cannot be claimed twice in one zone.
type PickerItem struct {
	RubricID  string
	ShortName string
	Category  string
	Used      bool
}

func (p *Picker) ItemAt(row int) (PickerItem, bool) {
	if p == nil || row < 0 || row >= len(p.Items) {
		return PickerItem{}, false
	}
	return p.Items[row], true
}

// buildPicker assembles the menu for a zone click: the rubric filtered to
// the zone's claimable set, in rubric order, with already-claimed rows
// marked used.
func buildPicker(z zones.Zone, rubric []content.RubricItem, claimed func(zoneID, rubricID string) bool, anchorX, anchorY, viewW, viewH int) *Picker {
	p := &Picker{Zone: z, AnchorX: anchorX, AnchorY: anchorY}
	for _, r := range rubric {
		if !z.Claimable(r.ID) {
			continue
		}
		p.Items = append(p.Items, PickerItem{
			RubricID:  r.ID,
			ShortName: r.ShortName,
			Category:  r.Category,
			Used:      claimed(z.ID, r.ID),
		})
	}
	if len(p.Items) == 0 {
		p.Message = EmptyZoneMessage
	}
	p.Width, p.Height = pickerSize(p)
	p.X, p.Y = placeMenu(anchorX, anchorY, p.Width, p.Height, viewW, viewH)
	return p
}

// pickerSize is the outer panel footprint: every row plus the dismiss
// action, inside a one-cell border.
func pickerSize(p *Picker) (int, int) {
	w := len([]rune(DismissLabel))
	if n := len([]rune(p.Zone.ID)); n > w {
		w = n
	}
	for _, it := range p.Items {
		if n := len([]rune(it.ShortName)); n > w {
			w = n
		}
	}
	if p.Message != "" {
		if n := len([]rune(p.Message)); n > w {
			w = n
		}
	}
	rows := len(p.Items) + 1
	if p.Message != "" {
		rows++
	}
	// two border columns plus marker-and-space gutter on each row
	return w + 6, rows + 2
}

// placeMenu anchors the menu beside the click: to the right when it fits,
// flipped to the left otherwise, clamped against the bottom edge and never
// above the top edge. The menu always lands fully inside the viewport.
func placeMenu(clickX, clickY, menuW, menuH, viewW, viewH int) (int, int) {
	x := clickX + 1
	if x+menuW > viewW {
		x = clickX - menuW
	}
	if x < 0 {
		x = 0
	}
	if x+menuW > viewW {
		x = viewW - menuW
		if x < 0 {
			x = 0
		}
	}

	y := clickY
	if y+menuH > viewH {
		y = viewH - menuH
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
