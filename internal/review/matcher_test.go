package review

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"plotdojo/internal/content"
	"plotdojo/internal/findings"
)

func TestGreedyMatchClaimsFirstUnclaimedEntry(t *testing.T) {
	key := []content.AnswerEntry{
		{RubricID: "x-label", ZoneID: "x-axis", ExplanationMD: "E1"},
		{RubricID: "x-label", ZoneID: "x-axis", ExplanationMD: "E2"},
	}
	found := []findings.Finding{
		{ID: 1, RubricID: "x-label", ZoneID: "x-axis"},
	}

	r := Match("ch", found, key)

	if len(r.Findings) != 1 {
		t.Fatalf("expected 1 classified finding, got %d", len(r.Findings))
	}
	cf := r.Findings[0]
	if cf.Verdict != VerdictCorrect {
		t.Fatalf("expected correct verdict, got %q", cf.Verdict)
	}
	if cf.ExplanationMD != "E1" || cf.EntryIndex != 0 {
		t.Fatalf("expected first unclaimed entry E1, got %q index %d", cf.ExplanationMD, cf.EntryIndex)
	}
	if len(r.Missed) != 1 || r.Missed[0].ExplanationMD != "E2" {
		t.Fatalf("expected E2 reported missed, got %+v", r.Missed)
	}
}

func TestMatchIgnoresZoneID(t *testing.T) {
	key := []content.AnswerEntry{
		{RubricID: "axis-units", ZoneID: "y-axis", ExplanationMD: "units missing"},
	}
	found := []findings.Finding{
		{ID: 1, RubricID: "axis-units", ZoneID: "x-axis"},
	}
	r := Match("ch", found, key)
	if r.Findings[0].Verdict != VerdictCorrect {
		t.Fatalf("expected wrong-zone right-rubric finding to count, got %q", r.Findings[0].Verdict)
	}
	if len(r.Missed) != 0 {
		t.Fatalf("expected no missed entries, got %d", len(r.Missed))
	}
}

func TestUnmatchedFindingIsFalsePositive(t *testing.T) {
	key := []content.AnswerEntry{
		{RubricID: "clipped-peak", ZoneID: "plot", ExplanationMD: "peak clipped"},
	}
	found := []findings.Finding{
		{ID: 1, RubricID: "legend-swapped", ZoneID: "legend"},
	}
	r := Match("ch", found, key)
	cf := r.Findings[0]
	if cf.Verdict != VerdictFalsePositive {
		t.Fatalf("expected false positive, got %q", cf.Verdict)
	}
	if cf.ExplanationMD != FalsePositiveText || cf.EntryIndex != -1 {
		t.Fatalf("expected generic explanation and no entry, got %q index %d", cf.ExplanationMD, cf.EntryIndex)
	}
	if len(r.Missed) != 1 {
		t.Fatalf("expected the real issue missed, got %d", len(r.Missed))
	}
}

func TestFindingsProcessedInCreationOrder(t *testing.T) {
	key := []content.AnswerEntry{
		{RubricID: "dup", ZoneID: "a", ExplanationMD: "first"},
		{RubricID: "dup", ZoneID: "b", ExplanationMD: "second"},
	}
	found := []findings.Finding{
		{ID: 10, RubricID: "dup", ZoneID: "b"},
		{ID: 11, RubricID: "dup", ZoneID: "a"},
	}
	r := Match("ch", found, key)
	if r.Findings[0].ExplanationMD != "first" || r.Findings[1].ExplanationMD != "second" {
		t.Fatalf("expected entries claimed in finding order, got %q then %q",
			r.Findings[0].ExplanationMD, r.Findings[1].ExplanationMD)
	}
}

func TestEmptyKeyNoFindingsIsCleanFigure(t *testing.T) {
	r := Match("ch", nil, []content.AnswerEntry{})
	if !r.CleanFigure {
		t.Fatalf("expected clean figure flag")
	}
	if r.TrickQuestion {
		t.Fatalf("expected no trick question flag")
	}
	if r.Score.Percent != 100 {
		t.Fatalf("expected perfect score on clean figure, got %d", r.Score.Percent)
	}
}

func TestEmptyKeyWithFindingsIsTrickQuestion(t *testing.T) {
	found := []findings.Finding{
		{ID: 1, RubricID: "missing-x-label", ZoneID: "x-axis"},
	}
	r := Match("ch", found, []content.AnswerEntry{})
	if !r.TrickQuestion {
		t.Fatalf("expected trick question flag")
	}
	if r.CleanFigure {
		t.Fatalf("expected clean figure flag unset")
	}
	if r.Findings[0].Verdict != VerdictFalsePositive {
		t.Fatalf("expected finding classified false positive, got %q", r.Findings[0].Verdict)
	}
	if r.Score.Percent != 0 {
		t.Fatalf("expected zero score, got %d", r.Score.Percent)
	}
}

func TestMatchIsIdempotent(t *testing.T) {
	key := []content.AnswerEntry{
		{RubricID: "truncated-baseline", ZoneID: "y-axis", ExplanationMD: "baseline cut"},
		{RubricID: "legend-swapped", ZoneID: "legend", ExplanationMD: "legend swapped"},
	}
	found := []findings.Finding{
		{ID: 1, RubricID: "legend-swapped", ZoneID: "legend"},
		{ID: 2, RubricID: "gridline-clutter", ZoneID: "plot"},
	}
	first := Match("ch", found, key)
	second := Match("ch", found, key)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical reports (-first +second):\n%s", diff)
	}
}

func TestScoreCounts(t *testing.T) {
	key := []content.AnswerEntry{
		{RubricID: "a", ZoneID: "z1", ExplanationMD: "1"},
		{RubricID: "b", ZoneID: "z2", ExplanationMD: "2"},
		{RubricID: "c", ZoneID: "z3", ExplanationMD: "3"},
		{RubricID: "d", ZoneID: "z4", ExplanationMD: "4"},
	}
	found := []findings.Finding{
		{ID: 1, RubricID: "a", ZoneID: "z1"},
		{ID: 2, RubricID: "b", ZoneID: "z2"},
		{ID: 3, RubricID: "x", ZoneID: "z9"},
	}
	r := Match("ch", found, key)
	want := Score{Correct: 2, Missed: 2, FalsePositives: 1, Percent: 50}
	if r.Score != want {
		t.Fatalf("expected %+v, got %+v", want, r.Score)
	}
}
