package canvas

// Tint classifies a cell for the renderer. The engine and the figure
// provider write tints; the UI theme decides what each one looks like, so
// no styling escapes into engine state.
type Tint uint8

const (
	TintNone Tint = iota
	TintAccent
	TintReference
	TintDim
	TintHover
	TintMarker
	TintCorrect
	TintWrong
	TintMissed
	TintSpotlight
)

// Canvas is the drawing surface: a rune grid with a parallel tint layer,
// both in cell coordinates. Out-of-bounds writes are clipped silently so
// providers can draw without bounds arithmetic at every call site.
type Canvas struct {
	w     int
	h     int
	cells []rune
	tints []Tint
}

func New(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{w: w, h: h, cells: make([]rune, w*h), tints: make([]Tint, w*h)}
	c.Reset()
	return c
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// Reset blanks every cell. The render coordinator calls it before base
// content on every redraw so overlays never composite onto stale cells.
func (c *Canvas) Reset() {
	for i := range c.cells {
		c.cells[i] = ' '
		c.tints[i] = TintNone
	}
}

func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

func (c *Canvas) Set(x, y int, r rune) {
	if !c.InBounds(x, y) {
		return
	}
	c.cells[y*c.w+x] = r
}

func (c *Canvas) SetTint(x, y int, t Tint) {
	if !c.InBounds(x, y) {
		return
	}
	c.tints[y*c.w+x] = t
}

func (c *Canvas) Rune(x, y int) rune {
	if !c.InBounds(x, y) {
		return ' '
	}
	return c.cells[y*c.w+x]
}

func (c *Canvas) Tint(x, y int) Tint {
	if !c.InBounds(x, y) {
		return TintNone
	}
	return c.tints[y*c.w+x]
}

func (c *Canvas) WriteString(x, y int, s string) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r)
	}
}

func (c *Canvas) WriteStringTint(x, y int, s string, t Tint) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r)
		c.SetTint(x+i, y, t)
	}
}

func (c *Canvas) Fill(x, y, w, h int, r rune) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.Set(xx, yy, r)
		}
	}
}

func (c *Canvas) TintRect(x, y, w, h int, t Tint) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.SetTint(xx, yy, t)
		}
	}
}

// TintOutline tints only the perimeter cells of the rect. Review uses it
// for missed-issue outlines.
func (c *Canvas) TintOutline(x, y, w, h int, t Tint) {
	if w <= 0 || h <= 0 {
		return
	}
	for xx := x; xx < x+w; xx++ {
		c.SetTint(xx, y, t)
		c.SetTint(xx, y+h-1, t)
	}
	for yy := y; yy < y+h; yy++ {
		c.SetTint(x, yy, t)
		c.SetTint(x+w-1, yy, t)
	}
}

// TintOutside tints every cell not inside the rect. The tutorial spotlight
// is a dim-outside with the step's zone as the cutout.
func (c *Canvas) TintOutside(x, y, w, h int, t Tint) {
	for yy := 0; yy < c.h; yy++ {
		for xx := 0; xx < c.w; xx++ {
			if xx >= x && xx < x+w && yy >= y && yy < y+h {
				continue
			}
			c.tints[yy*c.w+xx] = t
		}
	}
}

func (c *Canvas) TintAll(t Tint) {
	for i := range c.tints {
		c.tints[i] = t
	}
}

// Row returns the runes of one row, for the renderer. The slice aliases
// the canvas backing; callers must not mutate it.
func (c *Canvas) Row(y int) []rune {
	if y < 0 || y >= c.h {
		return nil
	}
	return c.cells[y*c.w : (y+1)*c.w]
}
