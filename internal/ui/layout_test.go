package ui

import "testing"

func TestDetermineLayoutMode(t *testing.T) {
	if got := DetermineLayoutMode(79, 24); got != LayoutTooSmall {
		t.Fatalf("expected too-small by width, got %v", got)
	}
	if got := DetermineLayoutMode(80, 23); got != LayoutTooSmall {
		t.Fatalf("expected too-small by height, got %v", got)
	}
	if got := DetermineLayoutMode(80, 24); got != LayoutMedium {
		t.Fatalf("expected medium at the minimum size, got %v", got)
	}
	if got := DetermineLayoutMode(119, 30); got != LayoutMedium {
		t.Fatalf("expected medium below the wide threshold, got %v", got)
	}
	if got := DetermineLayoutMode(120, 29); got != LayoutMedium {
		t.Fatalf("expected medium when rows fall short, got %v", got)
	}
	if got := DetermineLayoutMode(120, 30); got != LayoutWide {
		t.Fatalf("expected wide, got %v", got)
	}
}

func TestCanvasSizeTracksLayout(t *testing.T) {
	w, h := CanvasSize(120, 30)
	if w != 82 || h != 26 {
		t.Fatalf("expected 82x26 figure viewport in wide layout, got %dx%d", w, h)
	}
	w, h = CanvasSize(80, 24)
	if w != 78 || h != 20 {
		t.Fatalf("expected 78x20 figure viewport in medium layout, got %dx%d", w, h)
	}
	w, h = CanvasSize(40, 10)
	if w != 0 || h != 0 {
		t.Fatalf("expected zero viewport when too small, got %dx%d", w, h)
	}
}
