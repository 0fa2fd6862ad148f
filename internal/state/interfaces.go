package state

import (
	"context"
	"time"
)

// Recorder journals check attempts for the running session. Nothing behind
// it survives process exit.
type Recorder interface {
	EnsureSchema(ctx context.Context) error
	RecordCheck(ctx context.Context, rec CheckRecord) error
	BestByIndex(ctx context.Context) (map[int]int, error)
	Summary(ctx context.Context) (Summary, error)
	Close() error
}

type CheckRecord struct {
	SessionID      string
	ChallengeIndex int
	ChallengeID    string
	Correct        int
	Missed         int
	FalsePositives int
	Percent        int
	CheckedAt      time.Time
}

type Summary struct {
	Attempts          int
	ChallengesChecked int
}
