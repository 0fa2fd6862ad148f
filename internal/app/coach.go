package app

import (
	"fmt"
	"strings"

	"plotdojo/internal/content"
	"plotdojo/internal/review"
)

// buildCoachText turns a review report into the plain-text walkthrough shown
// in the coach overlay. Pure function over the report; no engine access.
func buildCoachText(rep review.Report, rubric map[string]content.RubricItem) string {
	var b strings.Builder

	b.WriteString("Review\n")
	switch {
	case rep.CleanFigure:
		b.WriteString("You called this figure clean, and it is. Well done.\n")
	case rep.TrickQuestion:
		b.WriteString("This figure is correct as drawn. Every claim placed here counts against you.\n")
	default:
		b.WriteString(fmt.Sprintf("%d correct, %d missed, %d false positive(s). Score %d%%.\n",
			rep.Score.Correct, rep.Score.Missed, rep.Score.FalsePositives, rep.Score.Percent))
	}

	if len(rep.Findings) > 0 {
		b.WriteString("\nWhat you claimed\n")
		for i, cf := range rep.Findings {
			mark := "+"
			if cf.Verdict != review.VerdictCorrect {
				mark = "-"
			}
			name := shortNameFor(rubric, cf.Finding.RubricID)
			b.WriteString(fmt.Sprintf("%d. [%s] %s (%s)\n", i+1, mark, name, cf.Finding.ZoneID))
		}
	}

	if len(rep.Missed) > 0 {
		b.WriteString("\nWhat you missed\n")
		for _, m := range rep.Missed {
			b.WriteString(fmt.Sprintf("- %s (%s)\n", shortNameFor(rubric, m.RubricID), m.ZoneID))
		}
	}

	if advice := categoryAdvice(rep, rubric); len(advice) > 0 {
		b.WriteString("\nWhere to look next time\n")
		for _, line := range advice {
			b.WriteString("- " + line + "\n")
		}
	} else if !rep.CleanFigure && !rep.TrickQuestion && rep.Score.Missed == 0 && rep.Score.FalsePositives == 0 {
		b.WriteString("\nWhere to look next time\n")
		b.WriteString("- Nothing. That was a full read of the figure; try a harder one.\n")
	}

	return strings.TrimSpace(b.String())
}

// categoryAdvice maps the report's mistakes onto per-category coaching
// lines, missed issues first. A category that produced both a miss and a
// false positive only gets the missed-issue line.
func categoryAdvice(rep review.Report, rubric map[string]content.RubricItem) []string {
	missed := map[string]int{}
	for _, m := range rep.Missed {
		if it, ok := rubric[m.RubricID]; ok {
			missed[it.Category]++
		}
	}
	claimed := map[string]int{}
	for _, cf := range rep.Findings {
		if cf.Verdict != review.VerdictFalsePositive {
			continue
		}
		if it, ok := rubric[cf.Finding.RubricID]; ok {
			claimed[it.Category]++
		}
	}

	order := []string{content.CategoryAxes, content.CategoryData, content.CategoryLabels, content.CategoryStyle}
	var out []string
	for _, cat := range order {
		if missed[cat] > 0 {
			out = append(out, missedAdvice(cat))
		}
	}
	for _, cat := range order {
		if claimed[cat] > 0 && missed[cat] == 0 {
			out = append(out, falsePositiveAdvice(cat))
		}
	}
	if rep.TrickQuestion {
		out = append(out, `When nothing looks wrong, trust the read. "No issue here" can be the right call for a whole figure.`)
	}
	return out
}

func missedAdvice(category string) string {
	switch category {
	case content.CategoryAxes:
		return "Walk both axes before the data: read each label, unit, and tick range end to end."
	case content.CategoryData:
		return "Trace the plotted series against the reference lines; clipping and offsets hide at the extremes."
	case content.CategoryLabels:
		return "Cross-check every text element against the data it names; titles and legends lie the most quietly."
	case content.CategoryStyle:
		return "Step back and take in the figure as a whole; clutter shows up at a distance."
	default:
		return "Revisit the rubric for this category before the next attempt."
	}
}

func falsePositiveAdvice(category string) string {
	switch category {
	case content.CategoryAxes:
		return "An axis claim needs a concrete defect: name the missing label or the wrong range before clicking."
	case content.CategoryData:
		return "Unusual data is not wrong data; claim a data issue only when the figure contradicts itself."
	case content.CategoryLabels:
		return "Read label text twice before flagging it; near-misses are designed to look wrong."
	case content.CategoryStyle:
		return "Style claims are for genuine interference with reading, not taste."
	default:
		return "Check the rubric description before claiming this category again."
	}
}

func shortNameFor(rubric map[string]content.RubricItem, id string) string {
	if it, ok := rubric[id]; ok {
		return it.ShortName
	}
	return id
}
