package progress

import "testing"

func TestUnmarkedIndicesAreIncomplete(t *testing.T) {
	tr := NewTracker()
	if tr.Completed(0) || tr.Completed(7) {
		t.Fatalf("expected fresh tracker to report nothing completed")
	}
	if tr.Count() != 0 {
		t.Fatalf("expected count 0, got %d", tr.Count())
	}
}

func TestMarkCompletedIsSticky(t *testing.T) {
	tr := NewTracker()
	tr.MarkCompleted(2)
	tr.MarkCompleted(2)
	if !tr.Completed(2) {
		t.Fatalf("expected index 2 completed")
	}
	if tr.Count() != 1 {
		t.Fatalf("expected repeated marks to count once, got %d", tr.Count())
	}
}

func TestMarksAreIndependent(t *testing.T) {
	tr := NewTracker()
	tr.MarkCompleted(1)
	tr.MarkCompleted(3)
	if !tr.Completed(1) || !tr.Completed(3) {
		t.Fatalf("expected both marked indices completed")
	}
	if tr.Completed(2) {
		t.Fatalf("expected unmarked index incomplete")
	}
}
