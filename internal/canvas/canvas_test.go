package canvas

import "testing"

func TestNewCanvasBlank(t *testing.T) {
	c := New(4, 2)
	if c.Width() != 4 || c.Height() != 2 {
		t.Fatalf("expected 4x2, got %dx%d", c.Width(), c.Height())
	}
	if c.Rune(0, 0) != ' ' || c.Tint(3, 1) != TintNone {
		t.Fatalf("expected blank cells")
	}
}

func TestOutOfBoundsWritesClipped(t *testing.T) {
	c := New(3, 3)
	c.Set(-1, 0, 'x')
	c.Set(3, 0, 'x')
	c.Set(0, 3, 'x')
	c.SetTint(9, 9, TintHover)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c.Rune(x, y) != ' ' {
				t.Fatalf("expected cell (%d,%d) untouched", x, y)
			}
		}
	}
	if c.Rune(-5, -5) != ' ' || c.Tint(-5, -5) != TintNone {
		t.Fatalf("expected out-of-bounds reads to return blanks")
	}
}

func TestWriteStringClips(t *testing.T) {
	c := New(5, 1)
	c.WriteString(3, 0, "depth")
	if c.Rune(3, 0) != 'd' || c.Rune(4, 0) != 'e' {
		t.Fatalf("expected clipped write to keep in-bounds prefix")
	}
}

func TestResetClearsRunesAndTints(t *testing.T) {
	c := New(2, 2)
	c.WriteStringTint(0, 0, "ab", TintAccent)
	c.Reset()
	if c.Rune(0, 0) != ' ' || c.Tint(1, 0) != TintNone {
		t.Fatalf("expected reset to blank runes and tints")
	}
}

func TestTintOutlinePerimeterOnly(t *testing.T) {
	c := New(6, 6)
	c.TintOutline(1, 1, 4, 4, TintMissed)
	if c.Tint(1, 1) != TintMissed || c.Tint(4, 4) != TintMissed || c.Tint(4, 1) != TintMissed {
		t.Fatalf("expected perimeter tinted")
	}
	if c.Tint(2, 2) != TintNone || c.Tint(3, 3) != TintNone {
		t.Fatalf("expected interior untouched")
	}
	if c.Tint(0, 0) != TintNone || c.Tint(5, 5) != TintNone {
		t.Fatalf("expected outside untouched")
	}
}

func TestTintOutsideLeavesCutout(t *testing.T) {
	c := New(5, 5)
	c.TintOutside(1, 1, 3, 3, TintDim)
	if c.Tint(0, 0) != TintDim || c.Tint(4, 4) != TintDim {
		t.Fatalf("expected outside dimmed")
	}
	if c.Tint(1, 1) != TintNone || c.Tint(3, 3) != TintNone || c.Tint(2, 2) != TintNone {
		t.Fatalf("expected cutout untouched")
	}
}

func TestTintAll(t *testing.T) {
	c := New(3, 2)
	c.TintAll(TintDim)
	if c.Tint(0, 0) != TintDim || c.Tint(2, 1) != TintDim {
		t.Fatalf("expected every cell dimmed")
	}
}

func TestRowAliasesBacking(t *testing.T) {
	c := New(3, 2)
	c.WriteString(0, 1, "abc")
	row := c.Row(1)
	if string(row) != "abc" {
		t.Fatalf("expected row abc, got %q", string(row))
	}
	if c.Row(2) != nil || c.Row(-1) != nil {
		t.Fatalf("expected nil for out-of-range rows")
	}
}
