package state

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// SessionStore keeps the check-attempt journal in an in-memory SQLite
// database. Summary queries are plain SQL; the journal lives only as long
// as the process.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore() (*SessionStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Each pool connection would open its own empty in-memory database.
	// Pin the pool to one connection so schema and data share a home.
	db.SetMaxOpenConns(1)
	return &SessionStore{db: db}, nil
}

func (s *SessionStore) EnsureSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS check_attempts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	challenge_index INTEGER NOT NULL,
	challenge_id TEXT NOT NULL,
	correct INTEGER NOT NULL,
	missed INTEGER NOT NULL,
	false_positives INTEGER NOT NULL,
	percent INTEGER NOT NULL,
	checked_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS challenge_best (
	challenge_index INTEGER PRIMARY KEY,
	challenge_id TEXT NOT NULL,
	best_percent INTEGER NOT NULL,
	attempts INTEGER NOT NULL DEFAULT 0
);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// RecordCheck journals one check and folds it into the per-challenge best
// row in the same transaction.
func (s *SessionStore) RecordCheck(ctx context.Context, rec CheckRecord) error {
	if rec.CheckedAt.IsZero() {
		rec.CheckedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO check_attempts (session_id, challenge_index, challenge_id, correct, missed, false_positives, percent, checked_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.ChallengeIndex, rec.ChallengeID,
		rec.Correct, rec.Missed, rec.FalsePositives, rec.Percent,
		rec.CheckedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO challenge_best (challenge_index, challenge_id, best_percent, attempts)
VALUES (?, ?, ?, 1)
ON CONFLICT(challenge_index) DO UPDATE SET
	best_percent = MAX(best_percent, excluded.best_percent),
	attempts = attempts + 1`,
		rec.ChallengeIndex, rec.ChallengeID, rec.Percent)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// BestByIndex returns the best percent per checked challenge index. The
// summary overlay reads it; unchecked challenges are simply absent.
func (s *SessionStore) BestByIndex(ctx context.Context) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT challenge_index, best_percent FROM challenge_best`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int]int{}
	for rows.Next() {
		var idx, pct int
		if err := rows.Scan(&idx, &pct); err != nil {
			return nil, err
		}
		out[idx] = pct
	}
	return out, rows.Err()
}

func (s *SessionStore) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
SELECT
	(SELECT COUNT(*) FROM check_attempts),
	(SELECT COUNT(*) FROM challenge_best)`).Scan(&sum.Attempts, &sum.ChallengesChecked)
	return sum, err
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}
