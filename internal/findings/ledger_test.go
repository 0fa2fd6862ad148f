package findings

import "testing"

func TestAddMintsIncreasingIDs(t *testing.T) {
	l := NewLedger()
	a := l.Add("missing-x-label", "x-axis", 4, 18)
	b := l.Add("axis-units", "y-axis", 1, 6)
	if b.ID <= a.ID {
		t.Fatalf("expected increasing ids, got %d then %d", a.ID, b.ID)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 findings, got %d", l.Len())
	}
}

func TestIDsNeverReusedAcrossRemovals(t *testing.T) {
	l := NewLedger()
	a := l.Add("clipped-peak", "plot", 10, 5)
	if !l.Remove(a.ID) {
		t.Fatalf("expected remove of live finding to succeed")
	}
	b := l.Add("clipped-peak", "plot", 10, 5)
	if b.ID <= a.ID {
		t.Fatalf("expected fresh id after removal, got %d after %d", b.ID, a.ID)
	}
}

func TestIDsSurviveClear(t *testing.T) {
	l := NewLedger()
	a := l.Add("wrong-title", "title", 3, 0)
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger after clear, got %d", l.Len())
	}
	b := l.Add("wrong-title", "title", 3, 0)
	if b.ID <= a.ID {
		t.Fatalf("expected monotonic ids across clear, got %d after %d", b.ID, a.ID)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	l := NewLedger()
	l.Add("legend-swapped", "legend", 30, 2)
	if l.Remove(999999) {
		t.Fatalf("expected remove of unknown id to report false")
	}
	if l.Len() != 1 {
		t.Fatalf("expected ledger unchanged, got %d findings", l.Len())
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	l := NewLedger()
	a := l.Add("a", "z1", 0, 0)
	b := l.Add("b", "z2", 5, 5)
	c := l.Add("c", "z3", 9, 9)
	_ = a
	l.Remove(b.ID)
	all := l.All()
	if len(all) != 2 || all[0].RubricID != "a" || all[1].RubricID != "c" {
		t.Fatalf("expected creation order preserved, got %+v", all)
	}
	if all[1].ID != c.ID {
		t.Fatalf("expected surviving ids intact")
	}
}

func TestAtUsesToggleRadius(t *testing.T) {
	l := NewLedger()
	f := l.Add("gridline-clutter", "plot", 12, 7)
	if got, ok := l.At(13, 8); !ok || got.ID != f.ID {
		t.Fatalf("expected hit one cell away, got ok=%v", ok)
	}
	if _, ok := l.At(12+ToggleRadius+1, 7); ok {
		t.Fatalf("expected miss outside radius")
	}
}

func TestAtPrefersNewestMarker(t *testing.T) {
	l := NewLedger()
	l.Add("first", "plot", 6, 6)
	second := l.Add("second", "plot", 6, 6)
	got, ok := l.At(6, 6)
	if !ok || got.ID != second.ID {
		t.Fatalf("expected newest marker on stacked anchors, got %+v ok=%v", got, ok)
	}
}

func TestClaimedMatchesZoneAndRubric(t *testing.T) {
	l := NewLedger()
	l.Add("axis-units", "y-axis", 1, 6)
	if !l.Claimed("y-axis", "axis-units") {
		t.Fatalf("expected claim to be recorded")
	}
	if l.Claimed("x-axis", "axis-units") {
		t.Fatalf("expected different zone to be unclaimed")
	}
	if l.Claimed("y-axis", "wrong-title") {
		t.Fatalf("expected different rubric to be unclaimed")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Add("a", "z", 0, 0)
	all := l.All()
	all[0].RubricID = "mutated"
	if l.All()[0].RubricID != "a" {
		t.Fatalf("expected ledger isolated from caller mutation")
	}
}
