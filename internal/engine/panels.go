package engine

import (
	"fmt"

	"plotdojo/internal/content"
	"plotdojo/internal/review"
)

// Primary action ids. The presentation layer maps these to key bindings and
// button labels; the engine only reports which one applies right now.
const (
	ActionCheck         = "check"
	ActionNextChallenge = "next"
	ActionSummary       = "summary"
	ActionTutorialNext  = "tutorial_next"
)

const (
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
)

// PanelSet is the full side-panel snapshot for one frame. It is rebuilt
// from engine state on demand and holds no references back into it.
type PanelSet struct {
	Nav      NavPanel
	Hints    HintsPanel
	Rubric   RubricPanel
	Findings FindingsPanel
	Tutorial *TutorialPanel
	Actions  ActionsPanel
}

type NavPanel struct {
	Title      string
	Difficulty string
	Position   string
	CanPrev    bool
	CanNext    bool
}

type HintsPanel struct {
	Revealed  []string
	Remaining int
	CanReveal bool
}

type RubricPanel struct {
	Groups []RubricGroup
}

type RubricGroup struct {
	Category string
	Items    []RubricLine
}

type RubricLine struct {
	ID        string
	ShortName string
}

// FindingsPanel lists claims in creation order. Before review the verdict
// fields are empty; after review each row carries its verdict and the
// missed list is populated from the unclaimed answer entries.
type FindingsPanel struct {
	Rows          []FindingRow
	Missed        []MissedRow
	Reviewed      bool
	CleanFigure   bool
	CleanText     string
	TrickQuestion bool
	Score         *review.Score
}

type FindingRow struct {
	Marker        string
	FindingID     int64
	RubricID      string
	ShortName     string
	ZoneID        string
	Verdict       string
	ExplanationMD string
}

type MissedRow struct {
	RubricID      string
	ShortName     string
	ZoneID        string
	ExplanationMD string
}

type TutorialPanel struct {
	Steps     []StepLine
	TextMD    string
	NextLabel string
	CanPrev   bool
}

type StepLine struct {
	Index   int
	Label   string
	Current bool
	Visited bool
}

type ActionsPanel struct {
	PrimaryID    string
	PrimaryLabel string
	CanClear     bool
}

// SummaryView backs the session summary overlay. Only critique challenges
// appear as rows; the walkthrough has nothing to complete.
type SummaryView struct {
	Rows      []SummaryRow
	Completed int
	Total     int
}

// BestPercent is -1 when no check has ever been recorded for the row.
type SummaryRow struct {
	Index       int
	ChallengeID string
	Title       string
	Difficulty  string
	Status      string
	BestPercent int
}

// BuildPanels assembles the side-panel snapshot for the current state.
func (e *Engine) BuildPanels() PanelSet {
	ch := e.challenges[e.index]
	ps := PanelSet{
		Nav: NavPanel{
			Title:      ch.Title,
			Difficulty: ch.Difficulty,
			Position:   fmt.Sprintf("%d/%d", e.index+1, len(e.challenges)),
			CanPrev:    e.index > 0,
			CanNext:    e.index+1 < len(e.challenges),
		},
		Hints:    e.buildHintsPanel(ch),
		Rubric:   buildRubricPanel(e.rubric),
		Findings: e.buildFindingsPanel(),
		Actions:  e.buildActions(),
	}
	if e.mode == ModeTutorial && e.walker != nil {
		tp := e.buildTutorialPanel()
		ps.Tutorial = &tp
	}
	return ps
}

func (e *Engine) buildHintsPanel(ch content.Challenge) HintsPanel {
	shown := e.hintsShown
	if shown > len(ch.Hints) {
		shown = len(ch.Hints)
	}
	return HintsPanel{
		Revealed:  append([]string(nil), ch.Hints[:shown]...),
		Remaining: len(ch.Hints) - shown,
		CanReveal: e.mode == ModeActive && shown < len(ch.Hints),
	}
}

// buildRubricPanel groups the rubric by category in a fixed order, keeping
// declaration order within each group. Empty groups are omitted.
func buildRubricPanel(rubric []content.RubricItem) RubricPanel {
	order := []string{content.CategoryAxes, content.CategoryData, content.CategoryLabels, content.CategoryStyle}
	var rp RubricPanel
	for _, cat := range order {
		g := RubricGroup{Category: cat}
		for _, it := range rubric {
			if it.Category == cat {
				g.Items = append(g.Items, RubricLine{ID: it.ID, ShortName: it.ShortName})
			}
		}
		if len(g.Items) > 0 {
			rp.Groups = append(rp.Groups, g)
		}
	}
	return rp
}

func (e *Engine) buildFindingsPanel() FindingsPanel {
	var fp FindingsPanel
	if e.report == nil {
		for i, f := range e.ledger.All() {
			fp.Rows = append(fp.Rows, FindingRow{
				Marker:    string(markerGlyph(i)),
				FindingID: f.ID,
				RubricID:  f.RubricID,
				ShortName: e.shortName(f.RubricID),
				ZoneID:    f.ZoneID,
			})
		}
		return fp
	}
	fp.Reviewed = true
	fp.CleanFigure = e.report.CleanFigure
	fp.TrickQuestion = e.report.TrickQuestion
	if fp.CleanFigure {
		fp.CleanText = review.CleanFigureText
	}
	sc := e.report.Score
	fp.Score = &sc
	for i, cf := range e.report.Findings {
		fp.Rows = append(fp.Rows, FindingRow{
			Marker:        string(markerGlyph(i)),
			FindingID:     cf.Finding.ID,
			RubricID:      cf.Finding.RubricID,
			ShortName:     e.shortName(cf.Finding.RubricID),
			ZoneID:        cf.Finding.ZoneID,
			Verdict:       string(cf.Verdict),
			ExplanationMD: cf.ExplanationMD,
		})
	}
	for _, m := range e.report.Missed {
		fp.Missed = append(fp.Missed, MissedRow{
			RubricID:      m.RubricID,
			ShortName:     e.shortName(m.RubricID),
			ZoneID:        m.ZoneID,
			ExplanationMD: m.ExplanationMD,
		})
	}
	return fp
}

func (e *Engine) buildTutorialPanel() TutorialPanel {
	step, cur := e.walker.Current()
	tp := TutorialPanel{
		TextMD:    step.TextMD,
		NextLabel: "Next",
		CanPrev:   !e.walker.AtStart(),
	}
	if e.walker.AtEnd() {
		tp.NextLabel = "Start Critiques"
	}
	for i := 0; i < e.walker.Len(); i++ {
		s, _ := e.walker.Step(i)
		tp.Steps = append(tp.Steps, StepLine{
			Index:   i,
			Label:   s.Label,
			Current: i == cur,
			Visited: e.walker.Visited(i),
		})
	}
	return tp
}

func (e *Engine) buildActions() ActionsPanel {
	switch e.mode {
	case ModeTutorial:
		label := "Next"
		if e.walker != nil && e.walker.AtEnd() {
			label = "Start Critiques"
		}
		return ActionsPanel{PrimaryID: ActionTutorialNext, PrimaryLabel: label}
	case ModeReview:
		if e.index+1 < len(e.challenges) {
			return ActionsPanel{PrimaryID: ActionNextChallenge, PrimaryLabel: "Next Challenge"}
		}
		return ActionsPanel{PrimaryID: ActionSummary, PrimaryLabel: "View Summary"}
	default:
		return ActionsPanel{
			PrimaryID:    ActionCheck,
			PrimaryLabel: "Check Answers",
			CanClear:     e.ledger.Len() > 0,
		}
	}
}

// BuildSummary assembles the session summary. Completion is sticky for the
// session: a challenge counts as completed once its answers have been
// checked, no matter the score or later navigation.
func (e *Engine) BuildSummary() SummaryView {
	best := e.bestScores()
	var sv SummaryView
	for i, ch := range e.challenges {
		if ch.Type != content.TypeCritique {
			continue
		}
		row := SummaryRow{
			Index:       i,
			ChallengeID: ch.ChallengeID,
			Title:       ch.Title,
			Difficulty:  ch.Difficulty,
			Status:      StatusSkipped,
			BestPercent: -1,
		}
		if e.tracker.Completed(i) {
			row.Status = StatusCompleted
		}
		if p, ok := best[i]; ok {
			row.BestPercent = p
		}
		sv.Rows = append(sv.Rows, row)
		sv.Total++
		if row.Status == StatusCompleted {
			sv.Completed++
		}
	}
	return sv
}

func (e *Engine) shortName(rubricID string) string {
	if it, ok := e.rubricByID[rubricID]; ok {
		return it.ShortName
	}
	return rubricID
}
