package review

import (
	"plotdojo/internal/findings"
)

const (
	ReportKind    = "review_report"
	SchemaVersion = 1
)

// Verdict classifies one finding against the answer key.
type Verdict string

const (
	VerdictCorrect       Verdict = "correct"
	VerdictFalsePositive Verdict = "false_positive"
)

// FalsePositiveText is the generic explanation attached to findings that
// claim no real issue.
const FalsePositiveText = "Not an actual issue in this figure."

// CleanFigureText is the single congratulatory entry shown when the key is
// empty and the student placed no findings.
const CleanFigureText = "Nothing to flag. This figure is correct as drawn."

type ClassifiedFinding struct {
	Finding       findings.Finding `json:"finding"`
	Verdict       Verdict          `json:"verdict"`
	ExplanationMD string           `json:"explanation_md"`
	EntryIndex    int              `json:"entry_index"` // claimed key entry, -1 for false positives
}

type MissedIssue struct {
	EntryIndex    int    `json:"entry_index"`
	RubricID      string `json:"rubric_id"`
	ZoneID        string `json:"zone_id"`
	ExplanationMD string `json:"explanation_md"`
}

type Score struct {
	Correct        int `json:"correct"`
	Missed         int `json:"missed"`
	FalsePositives int `json:"false_positives"`
	Percent        int `json:"percent"`
}

// Report is the full outcome of one check. It is pure data held by the
// engine for the rest of the challenge load; panels and the dev endpoint
// read it but never mutate it.
type Report struct {
	Kind          string              `json:"kind"`
	SchemaVersion int                 `json:"schema_version"`
	ChallengeID   string              `json:"challenge_id"`
	Findings      []ClassifiedFinding `json:"findings"`
	Missed        []MissedIssue       `json:"missed"`
	CleanFigure   bool                `json:"clean_figure"`
	TrickQuestion bool                `json:"trick_question"`
	Score         Score               `json:"score"`
}
