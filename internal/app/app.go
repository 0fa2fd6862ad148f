package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"plotdojo/internal/canvas"
	"plotdojo/internal/content"
	"plotdojo/internal/devtools"
	"plotdojo/internal/engine"
	"plotdojo/internal/figures"
	"plotdojo/internal/figures/depthplot"
	"plotdojo/internal/state"
	"plotdojo/internal/telemetry"
	"plotdojo/internal/ui"
	"plotdojo/internal/zones"

	"github.com/google/uuid"
)

// App owns the session: it loads packs, builds one engine per pack session,
// translates controller callbacks into engine operations, and pushes fresh
// view models after every mutation. Engine methods are not safe for
// concurrent use, so every callback serializes on mu.
type App struct {
	cfg Config

	logger  *telemetry.JSONLogger
	loader  *content.FSLoader
	figures *figures.Registry
	demo    devtools.Demo

	view ui.View

	sessionID string
	packs     []content.Pack

	mu        sync.Mutex
	eng       *engine.Engine
	store     *state.SessionStore
	pack      content.Pack
	active    bool
	cols      int
	rows      int
	startedAt time.Time
	zoneFocus int

	devMu     sync.Mutex
	devServer *http.Server
	demoMu    sync.Mutex
	devState  struct {
		State     string
		Demo      string
		RenderSeq int
		Rendered  bool
		Pending   bool
		Error     string
	}
}

func New(cfg Config) (*App, error) {
	logger, err := telemetry.NewJSONLogger(cfg.LogPath, cfg.Debug)
	if err != nil {
		return nil, err
	}

	loader := content.NewLoader()
	packs, err := loader.LoadPacks(context.Background(), cfg.PacksDir)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	if len(packs) == 0 {
		_ = logger.Close()
		return nil, fmt.Errorf("no packs available under %s/", cfg.PacksDir)
	}

	reg := figures.NewRegistry()
	reg.Register(depthplot.Kind, depthplot.New())
	for _, p := range packs {
		if err := reg.CheckChallenges(p.LoadedChallenges); err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("pack %s: %w", p.PackID, err)
		}
	}

	view := ui.New(ui.Options{
		ASCIIOnly:    cfg.ASCIIOnly,
		Debug:        cfg.Debug,
		StyleVariant: cfg.UI.StyleVariant,
		MotionLevel:  cfg.UI.MotionLevel,
		MouseScope:   cfg.UI.MouseScope,
	})

	a := &App{
		cfg:       cfg,
		logger:    logger,
		loader:    loader,
		figures:   reg,
		demo:      devtools.NewManager(),
		view:      view,
		sessionID: uuid.NewString(),
		packs:     packs,
		cols:      120,
		rows:      30,
		zoneFocus: -1,
	}
	view.SetController(a)
	view.SetCatalog(a.catalogState())
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("app.start", map[string]any{"session": a.sessionID, "packs": len(a.packs)})

	if a.cfg.PackID != "" {
		a.mu.Lock()
		err := a.startSession(a.cfg.PackID, 0)
		a.mu.Unlock()
		if err != nil {
			a.logger.Error("session.start_failed", map[string]any{"pack": a.cfg.PackID, "error": err.Error()})
			a.view.SetSetupError("Cannot start pack "+a.cfg.PackID, err.Error())
			return a.view.Run()
		}
	} else {
		a.view.SetScreen(ui.ScreenCatalog)
	}

	if a.cfg.Dev {
		if err := a.startDevHTTP(); err != nil {
			return err
		}
		if a.cfg.DemoScenario != "" {
			if _, err := a.runDemoScenario(ctx, a.cfg.DemoScenario); err != nil {
				a.logger.Error("dev.demo.initial_failed", map[string]any{"demo": a.cfg.DemoScenario, "error": err.Error()})
			}
		} else {
			a.setDevState("catalog", "")
			_ = a.demo.SetState(ctx, a.cfg.DevCacheDir, "catalog", true)
		}
	}

	return a.view.Run()
}

func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.devServer != nil {
		_ = a.devServer.Shutdown(ctx)
	}
	a.mu.Lock()
	if a.store != nil {
		if sum, err := a.store.Summary(ctx); err == nil {
			a.logger.Info("app.close", map[string]any{
				"attempts": sum.Attempts, "challenges_checked": sum.ChallengesChecked,
			})
		}
		_ = a.store.Close()
		a.store = nil
	}
	a.mu.Unlock()
	_ = a.logger.Close()
}

// startSession starts or re-enters a pack session. Re-entering the active
// pack keeps the engine and its journal; switching packs rebuilds both.
// Callers hold mu.
func (a *App) startSession(packID string, index int) error {
	pack, err := a.loader.FindPack(a.packs, packID)
	if err != nil {
		return err
	}

	if a.active && a.pack.PackID == pack.PackID {
		if err := a.eng.LoadChallenge(index); err != nil {
			return err
		}
		a.afterMutation()
		a.view.SetScreen(ui.ScreenSession)
		return nil
	}

	store, err := state.NewSessionStore()
	if err != nil {
		return err
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		_ = store.Close()
		return err
	}

	w, h := ui.CanvasSize(a.cols, a.rows)
	if w <= 0 || h <= 0 {
		w, h = ui.CanvasSize(120, 30)
	}
	eng, err := engine.New(engine.Config{
		Rubric:     pack.Rubric,
		Challenges: pack.LoadedChallenges,
		Provider:   a.figures,
		Width:      w,
		Height:     h,
		Hooks: engine.Hooks{
			ChallengeLoaded: func(idx int, ch content.Challenge) {
				a.zoneFocus = -1
				a.startedAt = time.Now()
			},
		},
		Logger:    a.logger,
		Recorder:  store,
		SessionID: a.sessionID,
	})
	if err != nil {
		_ = store.Close()
		return err
	}

	if a.store != nil {
		_ = a.store.Close()
	}
	a.store = store
	a.eng = eng
	a.pack = pack
	a.active = true

	if err := eng.Start(); err != nil {
		return err
	}
	if index > 0 {
		if err := eng.LoadChallenge(index); err != nil {
			return err
		}
	}

	a.logger.Info("session.start", map[string]any{
		"pack": pack.PackID, "version": pack.Version, "challenges": len(pack.LoadedChallenges),
	})
	a.afterMutation()
	a.view.SetScreen(ui.ScreenSession)
	a.view.FlashStatus("Challenge ready")
	return nil
}

// afterMutation pushes the rebuilt session and summary view models.
// Callers hold mu.
func (a *App) afterMutation() {
	if !a.active {
		return
	}
	a.view.SetSession(a.sessionState())
	a.view.SetSummary(a.summaryState())
	a.syncDevState("")
}

func (a *App) OnStartChallenge(packID string, index int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.startSession(packID, index); err != nil {
		a.logger.Error("session.start_failed", map[string]any{
			"pack": packID, "index": index, "error": err.Error(),
		})
		a.view.FlashStatus("Start failed: " + err.Error())
	}
}

func (a *App) OnBackToCatalog() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view.SetCatalog(a.catalogState())
	a.view.SetScreen(ui.ScreenCatalog)
	a.setDevState("catalog", "")
	if a.cfg.Dev {
		_ = a.demo.SetState(context.Background(), a.cfg.DevCacheDir, "catalog", true)
	}
}

func (a *App) OnCanvasClick(x, y int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.PointerDown(x, y)
	a.afterMutation()
}

func (a *App) OnCanvasHover(x, y int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	before := a.eng.HoverZoneID()
	a.eng.PointerMoved(x, y)
	if a.eng.HoverZoneID() == before {
		return
	}
	a.view.SetSession(a.sessionState())
}

func (a *App) OnPickRubric(rubricID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.PickRubric(rubricID)
	a.afterMutation()
}

func (a *App) OnDismissPicker() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.DismissPicker()
	a.afterMutation()
}

// OnCycleZone is the keyboard path onto the figure: it moves a focus
// cursor through the zone list and parks the hover on the focused zone's
// center, so the highlight tracks focus exactly as it tracks the mouse.
func (a *App) OnCycleZone(delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active || a.eng.Mode() != engine.ModeActive || a.eng.Picker() != nil {
		return
	}
	zs := a.eng.Zones()
	if len(zs) == 0 {
		return
	}
	switch {
	case a.zoneFocus < 0 && delta >= 0:
		a.zoneFocus = 0
	case a.zoneFocus < 0:
		a.zoneFocus = len(zs) - 1
	default:
		a.zoneFocus = ((a.zoneFocus+delta)%len(zs) + len(zs)) % len(zs)
	}
	cx, cy := rectCenter(zs[a.zoneFocus].Rect)
	a.eng.PointerMoved(cx, cy)
	a.view.SetSession(a.sessionState())
}

func (a *App) OnActivateZone() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active || a.zoneFocus < 0 {
		return
	}
	zs := a.eng.Zones()
	if a.zoneFocus >= len(zs) {
		return
	}
	cx, cy := rectCenter(zs[a.zoneFocus].Rect)
	a.eng.PointerDown(cx, cy)
	a.afterMutation()
}

func (a *App) OnCheck() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		a.view.SetChecking(false)
		return
	}
	a.eng.CheckAnswers()
	if rep := a.eng.Report(); rep != nil {
		if rep.CleanFigure {
			a.view.FlashStatus("Correct. This figure is clean.")
		} else {
			a.view.FlashStatus(fmt.Sprintf("Score %d%%", rep.Score.Percent))
		}
	}
	a.afterMutation()
	a.view.SetCatalog(a.catalogState())
}

func (a *App) OnClearFindings() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.ClearFindings()
	a.afterMutation()
}

func (a *App) OnRemoveFinding(findingID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.RemoveFinding(findingID)
	a.afterMutation()
}

func (a *App) OnRevealHint() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.RevealHint()
	a.afterMutation()
}

func (a *App) OnNextChallenge() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	if err := a.eng.NextChallenge(); err != nil {
		a.view.FlashStatus("Next failed: " + err.Error())
		return
	}
	a.afterMutation()
}

func (a *App) OnPrevChallenge() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	if err := a.eng.PrevChallenge(); err != nil {
		a.view.FlashStatus("Previous failed: " + err.Error())
		return
	}
	a.afterMutation()
}

func (a *App) OnTutorialNext() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.TutorialNext()
	a.afterMutation()
}

func (a *App) OnTutorialPrev() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.TutorialPrev()
	a.afterMutation()
}

func (a *App) OnTutorialJump(step int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.eng.TutorialJump(step)
	a.afterMutation()
}

func (a *App) OnToggleSummary() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	if a.eng.SummaryOpen() {
		a.eng.CloseSummary()
	} else {
		a.eng.OpenSummary()
	}
	a.afterMutation()
}

func (a *App) OnResize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cols, a.rows = cols, rows
	if !a.active {
		return
	}
	w, h := ui.CanvasSize(cols, rows)
	if w <= 0 || h <= 0 {
		return
	}
	if w == a.eng.Width() && h == a.eng.Height() {
		return
	}
	a.eng.Resize(w, h)
	a.zoneFocus = -1
	a.afterMutation()
}

func (a *App) OnQuit() {
	a.view.Stop()
}

// sessionState rebuilds the full session view model from the engine.
// Callers hold mu.
func (a *App) sessionState() ui.SessionState {
	ps := a.eng.BuildPanels()
	return ui.SessionState{
		ModeLabel:      modeLabel(a.eng.Mode()),
		ChallengeTitle: ps.Nav.Title,
		Difficulty:     ps.Nav.Difficulty,
		Position:       ps.Nav.Position,
		StartedAt:      a.startedAt,
		Frame:          frameState(a.eng.Canvas()),
		Picker:         pickerState(a.eng.Picker()),
		Nav:            ui.NavState{CanPrev: ps.Nav.CanPrev, CanNext: ps.Nav.CanNext},
		Hints: ui.HintsState{
			Revealed:  ps.Hints.Revealed,
			Remaining: ps.Hints.Remaining,
			CanReveal: ps.Hints.CanReveal,
		},
		Rubric:   rubricGroups(ps.Rubric, claimedSet(ps.Findings)),
		Findings: findingsState(ps.Findings, a.coachText()),
		Tutorial: tutorialState(ps.Tutorial),
		Actions: ui.ActionsState{
			PrimaryID:    ps.Actions.PrimaryID,
			PrimaryLabel: ps.Actions.PrimaryLabel,
			CanClear:     ps.Actions.CanClear,
		},
	}
}

func (a *App) summaryState() ui.SummaryState {
	sv := a.eng.BuildSummary()
	out := ui.SummaryState{Open: a.eng.SummaryOpen(), Completed: sv.Completed, Total: sv.Total}
	for _, row := range sv.Rows {
		out.Rows = append(out.Rows, ui.SummaryRowState{
			Title:       row.Title,
			Difficulty:  row.Difficulty,
			Status:      row.Status,
			BestPercent: row.BestPercent,
		})
	}
	return out
}

func (a *App) coachText() string {
	rep := a.eng.Report()
	if rep == nil {
		return ""
	}
	return buildCoachText(*rep, content.RubricByID(a.pack.Rubric))
}

func (a *App) catalogState() ui.CatalogState {
	var cs ui.CatalogState
	for _, p := range a.packs {
		card := ui.PackCard{
			PackID:        p.PackID,
			Title:         p.Title,
			Version:       p.Version,
			Tags:          append([]string(nil), p.Tags...),
			DescriptionMD: p.DescriptionMD,
		}
		best := map[int]int{}
		completed := map[int]bool{}
		if a.active && a.pack.PackID == p.PackID {
			for _, row := range a.eng.BuildSummary().Rows {
				best[row.Index] = row.BestPercent
				completed[row.Index] = row.Status == engine.StatusCompleted
			}
		}
		for i, ch := range p.LoadedChallenges {
			cc := ui.ChallengeCard{
				ChallengeID: ch.ChallengeID,
				Title:       ch.Title,
				Type:        ch.Type,
				Difficulty:  ch.Difficulty,
				SummaryMD:   ch.SummaryMD,
				Completed:   completed[i],
				BestPercent: -1,
			}
			if pct, ok := best[i]; ok {
				cc.BestPercent = pct
			}
			card.Challenges = append(card.Challenges, cc)
		}
		cs.Packs = append(cs.Packs, card)
	}
	return cs
}

func modeLabel(m engine.Mode) string {
	switch m {
	case engine.ModeTutorial:
		return "Walkthrough"
	case engine.ModeReview:
		return "Review"
	default:
		return "Critique"
	}
}

func frameState(c *canvas.Canvas) ui.FrameState {
	fs := ui.FrameState{Width: c.Width(), Height: c.Height()}
	fs.Cells = make([][]rune, fs.Height)
	fs.Tints = make([][]canvas.Tint, fs.Height)
	for y := 0; y < fs.Height; y++ {
		cells := make([]rune, fs.Width)
		tints := make([]canvas.Tint, fs.Width)
		for x := 0; x < fs.Width; x++ {
			cells[x] = c.Rune(x, y)
			tints[x] = c.Tint(x, y)
		}
		fs.Cells[y] = cells
		fs.Tints[y] = tints
	}
	return fs
}

func pickerState(p *engine.Picker) *ui.PickerState {
	if p == nil {
		return nil
	}
	out := &ui.PickerState{
		ZoneID:       p.Zone.ID,
		X:            p.X,
		Y:            p.Y,
		Width:        p.Width,
		Height:       p.Height,
		Message:      p.Message,
		DismissLabel: engine.DismissLabel,
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, ui.PickerItemState{
			RubricID:  it.RubricID,
			ShortName: it.ShortName,
			Used:      it.Used,
		})
	}
	return out
}

func rubricGroups(rp engine.RubricPanel, claimed map[string]bool) []ui.RubricGroupState {
	out := make([]ui.RubricGroupState, 0, len(rp.Groups))
	for _, g := range rp.Groups {
		group := ui.RubricGroupState{Category: g.Category}
		for _, it := range g.Items {
			group.Items = append(group.Items, ui.RubricLineState{
				RubricID:  it.ID,
				ShortName: it.ShortName,
				Claimed:   claimed[it.ID],
			})
		}
		out = append(out, group)
	}
	return out
}

func claimedSet(fp engine.FindingsPanel) map[string]bool {
	out := map[string]bool{}
	for _, row := range fp.Rows {
		out[row.RubricID] = true
	}
	return out
}

func findingsState(fp engine.FindingsPanel, coach string) ui.FindingsState {
	fs := ui.FindingsState{
		Reviewed:  fp.Reviewed,
		CleanText: fp.CleanText,
		CoachText: coach,
		Percent:   -1,
	}
	for _, row := range fp.Rows {
		fs.Rows = append(fs.Rows, ui.FindingRowState{
			Marker:      row.Marker,
			FindingID:   row.FindingID,
			ShortName:   row.ShortName,
			ZoneID:      row.ZoneID,
			Verdict:     row.Verdict,
			Explanation: row.ExplanationMD,
		})
	}
	for _, m := range fp.Missed {
		fs.Missed = append(fs.Missed, ui.MissedRowState{
			ShortName:   m.ShortName,
			ZoneID:      m.ZoneID,
			Explanation: m.ExplanationMD,
		})
	}
	if fp.Score != nil {
		fs.Correct = fp.Score.Correct
		fs.MissedN = fp.Score.Missed
		fs.False = fp.Score.FalsePositives
		fs.Percent = fp.Score.Percent
	}
	return fs
}

func tutorialState(tp *engine.TutorialPanel) *ui.TutorialState {
	if tp == nil {
		return nil
	}
	out := &ui.TutorialState{BodyMD: tp.TextMD, NextLabel: tp.NextLabel, CanPrev: tp.CanPrev}
	for _, s := range tp.Steps {
		out.Steps = append(out.Steps, ui.TutorialStepState{
			Label:   s.Label,
			Current: s.Current,
			Visited: s.Visited,
		})
	}
	return out
}

func rectCenter(r zones.Rect) (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// syncDevState derives the external dev state name from engine state.
// Callers hold mu.
func (a *App) syncDevState(demo string) {
	name := "catalog"
	if a.active {
		switch {
		case a.eng.SummaryOpen():
			name = "summary"
		case a.eng.Picker() != nil:
			name = "picker_open"
		case a.eng.Mode() == engine.ModeTutorial:
			name = "tutorial"
		case a.eng.Mode() == engine.ModeReview:
			name = "review"
		default:
			name = "session"
		}
	}
	a.setDevState(name, demo)
	if a.cfg.Dev {
		_ = a.demo.SetState(context.Background(), a.cfg.DevCacheDir, name, true)
	}
}

func (a *App) setDevState(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = true
	a.devState.Pending = false
	a.devState.Error = ""
	a.devState.RenderSeq++
}

func (a *App) setDevPending(state, demo string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = false
	a.devState.Pending = true
	a.devState.Error = ""
	a.devState.RenderSeq++
}

func (a *App) setDevError(state, demo, errText string) {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	a.devState.State = state
	a.devState.Demo = demo
	a.devState.Rendered = false
	a.devState.Pending = false
	a.devState.Error = errText
	a.devState.RenderSeq++
}

func (a *App) getDevState() map[string]any {
	a.devMu.Lock()
	defer a.devMu.Unlock()
	return map[string]any{
		"ok":         true,
		"state":      a.devState.State,
		"demo":       a.devState.Demo,
		"render_seq": a.devState.RenderSeq,
		"rendered":   a.devState.Rendered,
		"pending":    a.devState.Pending,
		"error":      a.devState.Error,
	}
}

// snapshotState is the full /__dev/state payload, including the latest
// review report when one exists.
func (a *App) snapshotState() map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := map[string]any{
		"ok":      true,
		"session": a.sessionID,
		"active":  a.active,
	}
	if !a.active {
		return out
	}
	out["pack"] = a.pack.PackID
	out["challenge"] = a.eng.Challenge().ChallengeID
	out["index"] = a.eng.Index()
	out["mode"] = a.eng.Mode().String()
	out["summary_open"] = a.eng.SummaryOpen()
	out["picker_open"] = a.eng.Picker() != nil
	out["canvas"] = map[string]int{"width": a.eng.Width(), "height": a.eng.Height()}
	if rep := a.eng.Report(); rep != nil {
		out["report"] = rep
	}
	return out
}

func (a *App) runDemoScenario(ctx context.Context, requested string) (string, error) {
	resolved := a.demo.Resolve(requested).Name
	a.logger.Info("dev.demo.begin", map[string]any{"requested": requested, "resolved": resolved})
	a.setDevPending(resolved, requested)

	a.demoMu.Lock()
	defer a.demoMu.Unlock()

	if err := a.applyDemoScenario(requested); err != nil {
		a.logger.Error("dev.demo.apply_failed", map[string]any{
			"requested": requested, "resolved": resolved, "error": err.Error(),
		})
		a.setDevError(resolved, requested, err.Error())
		_ = a.demo.SetState(ctx, a.cfg.DevCacheDir, resolved, false)
		return resolved, err
	}
	a.view.RequestDraw()
	a.setDevState(resolved, requested)
	_ = a.demo.SetState(ctx, a.cfg.DevCacheDir, resolved, true)
	a.logger.Info("dev.demo.done", map[string]any{"requested": requested, "resolved": resolved})
	return resolved, nil
}

func (a *App) applyDemoScenario(requested string) error {
	s := a.demo.Resolve(requested)
	a.mu.Lock()
	defer a.mu.Unlock()

	if s.Name == "catalog" {
		a.view.SetCatalog(a.catalogState())
		a.view.SetScreen(ui.ScreenCatalog)
		return nil
	}

	packID := a.cfg.PackID
	if packID == "" {
		packID = a.packs[0].PackID
	}
	pack, err := a.loader.FindPack(a.packs, packID)
	if err != nil {
		return err
	}
	index, err := scenarioIndex(pack, s)
	if err != nil {
		return err
	}
	if err := a.startSession(packID, index); err != nil {
		return err
	}

	if s.PickerOpen {
		zs := a.eng.Zones()
		if len(zs) == 0 {
			return fmt.Errorf("challenge %s has no zones", a.eng.Challenge().ChallengeID)
		}
		cx, cy := rectCenter(zs[0].Rect)
		a.eng.PointerDown(cx, cy)
	}
	if s.Solve {
		rectByID := map[string]zones.Rect{}
		for _, z := range a.eng.Zones() {
			rectByID[z.ID] = z.Rect
		}
		for _, entry := range a.eng.Challenge().AnswerKey {
			r, ok := rectByID[entry.ZoneID]
			if !ok {
				return fmt.Errorf("answer key zone %q not present at this size", entry.ZoneID)
			}
			cx, cy := rectCenter(r)
			a.eng.AddFinding(entry.RubricID, entry.ZoneID, cx, cy)
		}
	}
	if s.Check {
		a.eng.CheckAnswers()
	}
	if s.SummaryOpen {
		a.eng.OpenSummary()
	}
	a.afterMutation()
	return nil
}

// scenarioIndex picks the challenge a scenario should land on.
func scenarioIndex(pack content.Pack, s devtools.Scenario) (int, error) {
	if s.Target == "" {
		return 0, nil
	}
	if s.Trick {
		for i, ch := range pack.LoadedChallenges {
			if ch.Type == content.TypeCritique && len(ch.AnswerKey) == 0 {
				return i, nil
			}
		}
		return 0, fmt.Errorf("pack %s has no trick challenge", pack.PackID)
	}
	for i, ch := range pack.LoadedChallenges {
		if ch.Type != s.Target {
			continue
		}
		if s.Solve && len(ch.AnswerKey) == 0 {
			continue
		}
		return i, nil
	}
	return 0, fmt.Errorf("no %s challenge in pack %s", s.Target, pack.PackID)
}

func (a *App) startDevHTTP() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/__dev/ready", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a.getDevState())
	})
	mux.HandleFunc("/__dev/state", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a.snapshotState())
	})
	mux.HandleFunc("/__dev/demo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Demo string `json:"demo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "invalid json"})
			return
		}
		req.Demo = strings.TrimSpace(req.Demo)
		if req.Demo == "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "demo is required"})
			return
		}
		a.logger.Info("dev.demo.request", map[string]any{"demo": req.Demo})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resolved, err := a.runDemoScenario(ctx, req.Demo)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": err.Error(), "state": resolved})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "state": resolved, "requested": req.Demo})
	})

	a.devServer = &http.Server{Addr: a.cfg.DevHTTP, Handler: mux}
	go func() {
		if err := a.devServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("dev_http.listen_failed", map[string]any{"error": err.Error(), "addr": a.cfg.DevHTTP})
		}
	}()
	return nil
}

var _ ui.Controller = (*App)(nil)
