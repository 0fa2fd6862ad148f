package engine

import (
	"context"
	"fmt"

	"plotdojo/internal/canvas"
	"plotdojo/internal/content"
	"plotdojo/internal/findings"
	"plotdojo/internal/progress"
	"plotdojo/internal/review"
	"plotdojo/internal/state"
	"plotdojo/internal/telemetry"
	"plotdojo/internal/tutorial"
	"plotdojo/internal/zones"
)

// Config is the construction-time capability set: the rubric and challenge
// sequences, the content provider, initial canvas dimensions, and the
// optional collaborators. Rubric and challenges are read-only for the
// engine's lifetime.
type Config struct {
	Rubric     []content.RubricItem
	Challenges []content.Challenge
	Provider   ContentProvider
	Width      int
	Height     int
	Hooks      Hooks
	Logger     *telemetry.JSONLogger
	Recorder   state.Recorder
	SessionID  string
}

// Engine composes the per-challenge machinery (zone index, finding ledger,
// picker, tutorial walker) under one navigation state machine. All methods
// run synchronously on the event loop; the engine owns no goroutines and
// no timers.
type Engine struct {
	rubric     []content.RubricItem
	rubricByID map[string]content.RubricItem
	challenges []content.Challenge
	provider   ContentProvider
	hooks      Hooks
	log        *telemetry.JSONLogger
	recorder   state.Recorder
	sessionID  string

	width  int
	height int
	canvas *canvas.Canvas

	mode    Mode
	index   int
	zoneIdx *zones.Index
	ledger  *findings.Ledger
	walker  *tutorial.Walker
	tracker *progress.Tracker
	picker  *Picker
	report  *review.Report

	hintsShown  int
	hoverZoneID string
	summaryOpen bool
	started     bool
}

func New(cfg Config) (*Engine, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("engine: content provider is required")
	}
	if len(cfg.Challenges) == 0 {
		return nil, fmt.Errorf("engine: challenge sequence is empty")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("engine: canvas dimensions must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return &Engine{
		rubric:     cfg.Rubric,
		rubricByID: content.RubricByID(cfg.Rubric),
		challenges: cfg.Challenges,
		provider:   cfg.Provider,
		hooks:      cfg.Hooks,
		log:        cfg.Logger,
		recorder:   cfg.Recorder,
		sessionID:  cfg.SessionID,
		width:      cfg.Width,
		height:     cfg.Height,
		canvas:     canvas.New(cfg.Width, cfg.Height),
		zoneIdx:    zones.NewIndex(nil),
		ledger:     findings.NewLedger(),
		tracker:    progress.NewTracker(),
	}, nil
}

// Start loads challenge 0. Input binding belongs to the host event loop;
// the engine only consumes the events it forwards.
func (e *Engine) Start() error {
	e.started = true
	return e.LoadChallenge(0)
}

// LoadChallenge is the sole entry point for switching challenges. The
// target is validated before any state is touched, so a malformed
// challenge halts the load and leaves the current one intact. On success
// every per-challenge scope resets: ledger contents, hint count, picker,
// tutorial state, hover, and the zone index for current dimensions.
func (e *Engine) LoadChallenge(index int) error {
	if index < 0 || index >= len(e.challenges) {
		return fmt.Errorf("challenge index %d out of range (have %d)", index, len(e.challenges))
	}
	ch := e.challenges[index]
	if err := ch.Validate(); err != nil {
		e.logError("challenge_invalid", map[string]any{"index": index, "error": err.Error()})
		return fmt.Errorf("load challenge %d: %w", index, err)
	}

	e.index = index
	e.ledger.Clear()
	e.hintsShown = 0
	e.picker = nil
	e.report = nil
	e.hoverZoneID = ""
	e.walker = nil
	if ch.Type == content.TypeTutorial {
		e.walker = tutorial.NewWalker(ch.TutorialSteps)
		e.mode = ModeTutorial
	} else {
		e.mode = ModeActive
	}
	e.zoneIdx = zones.NewIndex(e.provider.ComputeZones(e.width, e.height, ch))
	e.redraw()

	e.logInfo("challenge_loaded", map[string]any{
		"index": index, "challenge_id": ch.ChallengeID, "type": ch.Type, "zones": e.zoneIdx.Len(),
	})
	if e.hooks.ChallengeLoaded != nil {
		e.hooks.ChallengeLoaded(index, ch)
	}
	if e.mode == ModeTutorial {
		e.fireTutorialStepHook()
	}
	return nil
}

func (e *Engine) NextChallenge() error {
	if e.index+1 >= len(e.challenges) {
		return nil
	}
	return e.LoadChallenge(e.index + 1)
}

func (e *Engine) PrevChallenge() error {
	if e.index == 0 {
		return nil
	}
	return e.LoadChallenge(e.index - 1)
}

// PointerMoved drives hover highlighting. Hover only exists while actively
// critiquing, and is suppressed entirely while the picker is open.
func (e *Engine) PointerMoved(x, y int) {
	if e.mode != ModeActive || e.picker != nil {
		return
	}
	id := ""
	if z, ok := e.zoneIdx.HitTest(x, y); ok {
		id = z.ID
	}
	if id == e.hoverZoneID {
		return
	}
	e.hoverZoneID = id
	e.redraw()
}

// PointerDown handles a canvas click. Order matters: an open picker eats
// the click and closes; a marker within toggle radius removes its finding
// before any zone hit-test runs; only then may a zone open the picker.
func (e *Engine) PointerDown(x, y int) {
	if e.summaryOpen {
		return
	}
	if e.picker != nil {
		e.picker = nil
		e.redraw()
		return
	}
	if e.mode != ModeActive {
		return
	}
	if f, ok := e.ledger.At(x, y); ok {
		e.ledger.Remove(f.ID)
		e.logInfo("finding_removed", map[string]any{"finding_id": f.ID, "via": "marker_toggle"})
		e.redraw()
		return
	}
	if z, ok := e.zoneIdx.HitTest(x, y); ok {
		e.hoverZoneID = ""
		e.picker = buildPicker(z, e.rubric, e.ledger.Claimed, x, y, e.width, e.height)
		e.redraw()
	}
}

// PickRubric resolves a picker selection. Used rows refuse to create a
// duplicate claim and leave the picker open.
func (e *Engine) PickRubric(rubricID string) {
	if e.picker == nil {
		return
	}
	for _, it := range e.picker.Items {
		if it.RubricID != rubricID {
			continue
		}
		if it.Used {
			return
		}
		p := e.picker
		e.picker = nil
		e.addFinding(rubricID, p.Zone.ID, p.AnchorX, p.AnchorY)
		return
	}
}

func (e *Engine) DismissPicker() {
	if e.picker == nil {
		return
	}
	e.picker = nil
	e.redraw()
}

// AddFinding appends a claim directly, bypassing the picker. Review mode
// permits no edits, and a rubric item cannot be claimed twice in one zone.
func (e *Engine) AddFinding(rubricID, zoneID string, x, y int) (findings.Finding, bool) {
	if e.mode == ModeReview {
		return findings.Finding{}, false
	}
	if e.ledger.Claimed(zoneID, rubricID) {
		return findings.Finding{}, false
	}
	return e.addFinding(rubricID, zoneID, x, y), true
}

func (e *Engine) addFinding(rubricID, zoneID string, x, y int) findings.Finding {
	f := e.ledger.Add(rubricID, zoneID, x, y)
	e.logInfo("finding_added", map[string]any{
		"finding_id": f.ID, "rubric_id": rubricID, "zone_id": zoneID,
	})
	e.redraw()
	return f
}

// RemoveFinding removes by id. Stale ids are a silent no-op.
func (e *Engine) RemoveFinding(id int64) {
	if e.mode == ModeReview {
		return
	}
	if e.ledger.Remove(id) {
		e.logInfo("finding_removed", map[string]any{"finding_id": id, "via": "panel"})
		e.redraw()
	}
}

// ClearFindings empties the ledger in one step.
func (e *Engine) ClearFindings() {
	if e.mode != ModeActive || e.ledger.Len() == 0 {
		return
	}
	e.ledger.Clear()
	e.logInfo("findings_cleared", nil)
	e.redraw()
}

// RevealHint reveals the next hint in order, capped at the challenge's
// hint count. No-op once exhausted or in review.
func (e *Engine) RevealHint() {
	if e.mode == ModeReview {
		return
	}
	if e.hintsShown >= len(e.challenges[e.index].Hints) {
		return
	}
	e.hintsShown++
	e.logInfo("hint_revealed", map[string]any{"hints_shown": e.hintsShown})
}

// CheckAnswers runs the review matcher and enters Review mode, marking the
// challenge completed regardless of score. Only valid from Active; calling
// it again while reviewed changes nothing.
func (e *Engine) CheckAnswers() {
	if e.mode != ModeActive {
		return
	}
	ch := e.challenges[e.index]
	rep := review.Match(ch.ChallengeID, e.ledger.All(), ch.AnswerKey)
	e.report = &rep
	e.mode = ModeReview
	e.picker = nil
	e.hoverZoneID = ""
	e.tracker.MarkCompleted(e.index)
	e.recordCheck(rep)
	e.redraw()
}

// TutorialNext advances the walkthrough. At the last step it becomes the
// terminal action and loads the next challenge index instead.
func (e *Engine) TutorialNext() {
	if e.mode != ModeTutorial || e.walker == nil {
		return
	}
	if e.walker.AtEnd() {
		if err := e.LoadChallenge(e.index + 1); err != nil {
			e.logError("start_critiques_failed", map[string]any{"error": err.Error()})
		}
		return
	}
	e.walker.Next()
	e.fireTutorialStepHook()
	e.redraw()
}

func (e *Engine) TutorialPrev() {
	if e.mode != ModeTutorial || e.walker == nil {
		return
	}
	if e.walker.Prev() {
		e.fireTutorialStepHook()
		e.redraw()
	}
}

func (e *Engine) TutorialJump(step int) {
	if e.mode != ModeTutorial || e.walker == nil {
		return
	}
	if e.walker.Jump(step) {
		e.fireTutorialStepHook()
		e.redraw()
	}
}

func (e *Engine) fireTutorialStepHook() {
	if e.hooks.TutorialStep == nil || e.walker == nil {
		return
	}
	s, idx := e.walker.Current()
	e.hooks.TutorialStep(idx, s)
}

// OpenSummary and CloseSummary toggle the overlay without touching the
// navigation state underneath.
func (e *Engine) OpenSummary() {
	e.summaryOpen = true
}

func (e *Engine) CloseSummary() {
	e.summaryOpen = false
}

// Resize rebuilds the canvas backing and recomputes zones for the new
// dimensions. Zones are never interpolated across a resize, and any
// placed picker is discarded along with them.
func (e *Engine) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if w == e.width && h == e.height {
		return
	}
	e.width, e.height = w, h
	e.canvas = canvas.New(w, h)
	e.picker = nil
	e.hoverZoneID = ""
	if e.started {
		e.zoneIdx = zones.NewIndex(e.provider.ComputeZones(w, h, e.challenges[e.index]))
	}
	e.redraw()
}

func (e *Engine) recordCheck(rep review.Report) {
	e.logInfo("answers_checked", map[string]any{
		"challenge_id":    rep.ChallengeID,
		"correct":         rep.Score.Correct,
		"missed":          rep.Score.Missed,
		"false_positives": rep.Score.FalsePositives,
		"percent":         rep.Score.Percent,
		"trick_question":  rep.TrickQuestion,
	})
	if e.recorder == nil {
		return
	}
	err := e.recorder.RecordCheck(context.Background(), state.CheckRecord{
		SessionID:      e.sessionID,
		ChallengeIndex: e.index,
		ChallengeID:    rep.ChallengeID,
		Correct:        rep.Score.Correct,
		Missed:         rep.Score.Missed,
		FalsePositives: rep.Score.FalsePositives,
		Percent:        rep.Score.Percent,
	})
	if err != nil {
		e.logError("record_check_failed", map[string]any{"error": err.Error()})
	}
}

func (e *Engine) bestScores() map[int]int {
	if e.recorder == nil {
		return nil
	}
	best, err := e.recorder.BestByIndex(context.Background())
	if err != nil {
		e.logError("best_scores_failed", map[string]any{"error": err.Error()})
		return nil
	}
	return best
}

func (e *Engine) logInfo(msg string, fields map[string]any) {
	if e.log != nil {
		e.log.Info(msg, fields)
	}
}

func (e *Engine) logError(msg string, fields map[string]any) {
	if e.log != nil {
		e.log.Error(msg, fields)
	}
}

// Read-side accessors for the presentation layer.

func (e *Engine) Mode() Mode                  { return e.mode }
func (e *Engine) Index() int                  { return e.index }
func (e *Engine) ChallengeCount() int         { return len(e.challenges) }
func (e *Engine) Challenge() content.Challenge { return e.challenges[e.index] }
func (e *Engine) Canvas() *canvas.Canvas      { return e.canvas }
func (e *Engine) Picker() *Picker             { return e.picker }
func (e *Engine) Report() *review.Report      { return e.report }
func (e *Engine) SummaryOpen() bool           { return e.summaryOpen }
func (e *Engine) HoverZoneID() string         { return e.hoverZoneID }
func (e *Engine) Width() int                  { return e.width }
func (e *Engine) Height() int                 { return e.height }
func (e *Engine) Zones() []zones.Zone         { return e.zoneIdx.Zones() }
