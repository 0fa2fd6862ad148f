package tutorial

import (
	"testing"

	"plotdojo/internal/content"
)

func steps(n int) []content.TutorialStep {
	out := make([]content.TutorialStep, n)
	for i := range out {
		out[i] = content.TutorialStep{Label: "step", TextMD: "text"}
	}
	return out
}

func TestWalkerStartsAtZeroVisited(t *testing.T) {
	w := NewWalker(steps(3))
	_, idx := w.Current()
	if idx != 0 {
		t.Fatalf("expected current 0, got %d", idx)
	}
	if !w.Visited(0) {
		t.Fatalf("expected step 0 visited on construction")
	}
	if w.Visited(1) {
		t.Fatalf("expected step 1 unvisited")
	}
}

func TestPrevUnavailableAtStart(t *testing.T) {
	w := NewWalker(steps(3))
	if w.Prev() {
		t.Fatalf("expected prev to refuse at step 0")
	}
	if _, idx := w.Current(); idx != 0 {
		t.Fatalf("expected current unchanged, got %d", idx)
	}
}

func TestNextAdvancesAndMarks(t *testing.T) {
	w := NewWalker(steps(3))
	if !w.Next() {
		t.Fatalf("expected next to advance")
	}
	if _, idx := w.Current(); idx != 1 {
		t.Fatalf("expected current 1, got %d", idx)
	}
	if !w.Visited(1) {
		t.Fatalf("expected step 1 visited after next")
	}
}

func TestNextRefusesAtEnd(t *testing.T) {
	w := NewWalker(steps(2))
	w.Next()
	if !w.AtEnd() {
		t.Fatalf("expected at end after one advance of two steps")
	}
	if w.Next() {
		t.Fatalf("expected next to refuse at the last step")
	}
	if _, idx := w.Current(); idx != 1 {
		t.Fatalf("expected current clamped at last step, got %d", idx)
	}
}

func TestJumpMarksVisited(t *testing.T) {
	w := NewWalker(steps(4))
	if !w.Jump(3) {
		t.Fatalf("expected jump to succeed")
	}
	if _, idx := w.Current(); idx != 3 {
		t.Fatalf("expected current 3, got %d", idx)
	}
	if !w.Visited(3) {
		t.Fatalf("expected jumped step visited")
	}
	if w.Visited(1) || w.Visited(2) {
		t.Fatalf("expected skipped steps unvisited")
	}
}

func TestJumpOutOfRangeIsNoop(t *testing.T) {
	w := NewWalker(steps(2))
	if w.Jump(-1) || w.Jump(2) {
		t.Fatalf("expected out-of-range jump to refuse")
	}
	if _, idx := w.Current(); idx != 0 {
		t.Fatalf("expected current unchanged, got %d", idx)
	}
}

func TestSingleStepTutorialIsStartAndEnd(t *testing.T) {
	w := NewWalker(steps(1))
	if !w.AtStart() || !w.AtEnd() {
		t.Fatalf("expected single step to be both start and end")
	}
	if w.Next() || w.Prev() {
		t.Fatalf("expected no movement possible")
	}
}
