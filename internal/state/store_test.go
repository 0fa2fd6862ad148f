package state

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	s, err := NewSessionStore()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return s
}

func TestRecordCheckKeepsBestPercent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	if err := s.RecordCheck(ctx, CheckRecord{
		SessionID: "sess-1", ChallengeIndex: 1, ChallengeID: "warmup",
		Correct: 1, Missed: 1, Percent: 50, CheckedAt: at,
	}); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := s.RecordCheck(ctx, CheckRecord{
		SessionID: "sess-1", ChallengeIndex: 1, ChallengeID: "warmup",
		Correct: 2, Percent: 100, CheckedAt: at.Add(time.Minute),
	}); err != nil {
		t.Fatalf("record second: %v", err)
	}
	if err := s.RecordCheck(ctx, CheckRecord{
		SessionID: "sess-1", ChallengeIndex: 1, ChallengeID: "warmup",
		Correct: 0, Missed: 2, Percent: 0, CheckedAt: at.Add(2 * time.Minute),
	}); err != nil {
		t.Fatalf("record third: %v", err)
	}

	best, err := s.BestByIndex(ctx)
	if err != nil {
		t.Fatalf("best by index: %v", err)
	}
	if best[1] != 100 {
		t.Fatalf("expected best 100 after worse later attempt, got %d", best[1])
	}
}

func TestSummaryCountsDistinctChallenges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	records := []CheckRecord{
		{SessionID: "sess-1", ChallengeIndex: 1, ChallengeID: "warmup", Percent: 50, CheckedAt: at},
		{SessionID: "sess-1", ChallengeIndex: 1, ChallengeID: "warmup", Percent: 75, CheckedAt: at},
		{SessionID: "sess-1", ChallengeIndex: 3, ChallengeID: "trick", Percent: 100, CheckedAt: at},
	}
	for i, rec := range records {
		if err := s.RecordCheck(ctx, rec); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	sum, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", sum.Attempts)
	}
	if sum.ChallengesChecked != 2 {
		t.Fatalf("expected 2 distinct challenges, got %d", sum.ChallengesChecked)
	}
}

func TestBestByIndexOmitsUnchecked(t *testing.T) {
	s := newTestStore(t)
	best, err := s.BestByIndex(context.Background())
	if err != nil {
		t.Fatalf("best by index: %v", err)
	}
	if len(best) != 0 {
		t.Fatalf("expected empty map, got %v", best)
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second ensure schema: %v", err)
	}
}
