package zones

// Rect is an axis-aligned rectangle in canvas cell coordinates.
// W and H may be zero or negative, in which case the rect contains nothing.
type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clip returns the part of r inside bounds, which may be empty.
func (r Rect) Clip(bounds Rect) Rect {
	x0 := max(r.X, bounds.X)
	y0 := max(r.Y, bounds.Y)
	x1 := min(r.X+r.W, bounds.X+bounds.W)
	y1 := min(r.Y+r.H, bounds.Y+bounds.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Zone is a clickable region of the rendered figure. RubricIDs is the
// exact set of rubric items claimable inside it; the picker never offers
// anything outside this set for the zone.
type Zone struct {
	ID        string
	Rect      Rect
	RubricIDs []string
}

func (z Zone) Claimable(rubricID string) bool {
	for _, id := range z.RubricIDs {
		if id == rubricID {
			return true
		}
	}
	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
