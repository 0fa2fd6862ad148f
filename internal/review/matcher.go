package review

import (
	"plotdojo/internal/content"
	"plotdojo/internal/findings"
)

// Match diffs findings against the answer key. Single pass, greedy:
// findings claim key entries in creation order, and the match key is rubric
// id equality alone. Zone id is informational and deliberately not part of
// the key, so a finding on the wrong zone with the right rubric id counts.
//
// Pure function of its inputs. Calling it twice with the same ledger and
// key yields an identical report.
func Match(challengeID string, found []findings.Finding, key []content.AnswerEntry) Report {
	report := Report{
		Kind:          ReportKind,
		SchemaVersion: SchemaVersion,
		ChallengeID:   challengeID,
	}

	claimed := make([]bool, len(key))
	for _, f := range found {
		idx := -1
		for i, e := range key {
			if !claimed[i] && e.RubricID == f.RubricID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			claimed[idx] = true
			report.Findings = append(report.Findings, ClassifiedFinding{
				Finding:       f,
				Verdict:       VerdictCorrect,
				ExplanationMD: key[idx].ExplanationMD,
				EntryIndex:    idx,
			})
			continue
		}
		report.Findings = append(report.Findings, ClassifiedFinding{
			Finding:       f,
			Verdict:       VerdictFalsePositive,
			ExplanationMD: FalsePositiveText,
			EntryIndex:    -1,
		})
	}

	for i, e := range key {
		if claimed[i] {
			continue
		}
		report.Missed = append(report.Missed, MissedIssue{
			EntryIndex:    i,
			RubricID:      e.RubricID,
			ZoneID:        e.ZoneID,
			ExplanationMD: e.ExplanationMD,
		})
	}

	report.CleanFigure = len(key) == 0 && len(found) == 0
	report.TrickQuestion = len(key) == 0 && len(found) > 0
	report.Score = scoreOf(report.Findings, len(key))
	return report
}

// scoreOf summarizes a classification. Percent is the share of real issues
// found; a clean figure left unmarked scores 100, a trick question fallen
// for scores 0.
func scoreOf(classified []ClassifiedFinding, keyLen int) Score {
	s := Score{}
	for _, cf := range classified {
		switch cf.Verdict {
		case VerdictCorrect:
			s.Correct++
		case VerdictFalsePositive:
			s.FalsePositives++
		}
	}
	s.Missed = keyLen - s.Correct
	if keyLen > 0 {
		s.Percent = 100 * s.Correct / keyLen
	} else if s.FalsePositives == 0 {
		s.Percent = 100
	}
	return s
}
