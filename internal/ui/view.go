package ui

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	lipgloss "github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"plotdojo/internal/canvas"
)

type applyMsg struct {
	fn func(*Root)
}

type drawMsg struct{}
type clockMsg time.Time
type animateMsg time.Time

type sessionKeyMap struct {
	Hint    key.Binding
	Panels  key.Binding
	Detail  key.Binding
	Coach   key.Binding
	Check   key.Binding
	Clear   key.Binding
	Summary key.Binding
	Catalog key.Binding
}

func (k sessionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hint, k.Panels, k.Detail, k.Check, k.Clear, k.Summary, k.Catalog}
}

func (k sessionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Hint, k.Panels, k.Detail, k.Coach}, {k.Check, k.Clear, k.Summary, k.Catalog}}
}

// Local tint values for the picker splice. The figure itself never produces
// these; they only exist between blitPicker and the style pass.
const (
	tintPickerBorder canvas.Tint = 0x80 + iota
	tintPickerItem
	tintPickerUsed
	tintPickerSelected
)

type Root struct {
	theme        Theme
	ascii        bool
	debug        bool
	ctrl         Controller
	styleVariant string
	motionLevel  string
	mouseScope   string

	mu      sync.Mutex
	program *tea.Program
	running bool

	screen Screen
	layout LayoutMode
	cols   int
	rows   int

	forceTooSmall bool
	tooSmallCols  int
	tooSmallRows  int

	catalog CatalogState
	session SessionState
	summary SummaryState

	setupMsg     string
	setupDetails string
	statusFlash  string
	flashUntil   time.Time
	checking     bool
	pulse        bool

	packIndex      int
	challengeIndex int
	pickerIndex    int
	findingIndex   int

	panelsOpen  bool
	detailOpen  bool
	helpOpen    bool
	detailTitle string
	detailText  string

	help       help.Model
	keymap     sessionKeyMap
	completion progress.Model
	checkSpin  spinner.Model
	markdown   *glamour.TermRenderer
	logger     *clog.Logger
	overlayPos float64
	overlayVel float64
	spring     harmonica.Spring

	drawPending atomic.Bool

	lastInputEvent string
}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	MotionLevel  string
	MouseScope   string
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "plotdojo-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(64),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	motionLevel := normalizeMotionLevel(opts.MotionLevel)
	mouseScope := normalizeMouseScope(opts.MouseScope)
	styleVariant := normalizeStyleVariant(opts.StyleVariant)
	theme := ThemeForVariant(styleVariant)
	spring := harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8)
	switch motionLevel {
	case "reduced":
		spring = harmonica.NewSpring(harmonica.FPS(30), 9.0, 0.92)
	case "off":
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}
	completion := progress.New(
		progress.WithWidth(20),
		progress.WithScaledGradient("#5FD7EB", "#7BE6A4"),
	)
	if motionLevel == "off" {
		completion.SetSpringOptions(1000.0, 1.0)
	}
	checkSpin := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(theme.Accent),
	)

	r := &Root{
		theme:        theme,
		ascii:        opts.ASCIIOnly,
		debug:        opts.Debug,
		styleVariant: styleVariant,
		motionLevel:  motionLevel,
		mouseScope:   mouseScope,
		screen:       ScreenCatalog,
		layout:       LayoutWide,
		cols:         120,
		rows:         30,
		help:         h,
		completion:   completion,
		checkSpin:    checkSpin,
		markdown:     renderer,
		logger:       logger,
		spring:       spring,
		session: SessionState{
			ModeLabel: "Critique",
			StartedAt: time.Now(),
		},
	}
	r.keymap = sessionKeyMap{
		Hint:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "Hint")),
		Panels:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "Panels")),
		Detail:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Detail")),
		Coach:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Coach")),
		Check:   key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "Check")),
		Clear:   key.NewBinding(key.WithKeys("f6"), key.WithHelp("F6", "Clear")),
		Summary: key.NewBinding(key.WithKeys("f9"), key.WithHelp("F9", "Summary")),
		Catalog: key.NewBinding(key.WithKeys("f10"), key.WithHelp("F10", "Catalog")),
	}
	return r
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), animateTickCmd(), spinnerTickCmd(r.checkSpin))
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		r.help.Width = max(0, r.cols-8)
		if r.layout != LayoutTooSmall {
			r.forceTooSmall = false
		}
		if r.screen == ScreenSession {
			r.dispatchController(func(c Controller) { c.OnResize(msg.Width, msg.Height) })
		}
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case drawMsg:
		r.drawPending.Store(false)
		return r, nil
	case clockMsg:
		r.pulse = !r.pulse
		return r, clockTickCmd()
	case animateMsg:
		target := 0.0
		if r.panelsOpen && r.layout == LayoutMedium {
			target = 1.0
		}
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		if target == 0 {
			r.overlayPos = 0
			r.overlayVel = 0
		}
		return r, nil
	case spinner.TickMsg:
		var c tea.Cmd
		r.checkSpin, c = r.checkSpin.Update(msg)
		return r, c
	case tea.KeyMsg:
		return r.handleKey(msg)
	case tea.MouseMsg:
		return r.handleMouse(msg)
	}
	return r, nil
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	switch r.mouseScope {
	case "off":
	case "scoped":
		opts = append(opts, tea.WithMouseCellMotion())
	default:
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(r, opts...)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetScreen(screen Screen) {
	r.apply(func(m *Root) {
		m.screen = screen
		m.detailOpen = false
		m.helpOpen = false
		if screen == ScreenSession {
			if m.session.StartedAt.IsZero() {
				m.session.StartedAt = time.Now()
			}
			cols, rows := m.cols, m.rows
			m.dispatchController(func(c Controller) { c.OnResize(cols, rows) })
		}
	})
}

func (r *Root) SetCatalog(state CatalogState) {
	r.apply(func(m *Root) {
		m.catalog = state
		m.packIndex = wrapIndex(m.packIndex, len(state.Packs))
		if pack := m.currentPack(); pack != nil {
			m.challengeIndex = wrapIndex(m.challengeIndex, len(pack.Challenges))
		} else {
			m.challengeIndex = 0
		}
	})
}

func (r *Root) SetSession(state SessionState) {
	r.apply(func(m *Root) {
		m.session = state
		m.checking = false
		if state.Picker == nil {
			m.pickerIndex = 0
		} else {
			m.pickerIndex = clampInt(m.pickerIndex, 0, len(state.Picker.Items))
		}
		total := len(state.Findings.Rows) + len(state.Findings.Missed)
		if total == 0 {
			m.findingIndex = 0
		} else {
			m.findingIndex = clampInt(m.findingIndex, 0, total-1)
		}
	})
}

func (r *Root) SetSummary(state SummaryState) {
	r.apply(func(m *Root) {
		m.summary = state
	})
}

func (r *Root) SetChecking(checking bool) {
	r.apply(func(m *Root) {
		m.checking = checking
	})
}

func (r *Root) SetTooSmall(cols, rows int) {
	r.apply(func(m *Root) {
		m.forceTooSmall = true
		m.tooSmallCols = cols
		m.tooSmallRows = rows
	})
}

func (r *Root) SetSetupError(msg, details string) {
	r.apply(func(m *Root) {
		m.setupMsg = msg
		m.setupDetails = details
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
		m.flashUntil = time.Now().Add(4 * time.Second)
	})
}

func (r *Root) RequestDraw() {
	r.mu.Lock()
	p := r.program
	running := r.running
	r.mu.Unlock()
	if !running || p == nil {
		return
	}
	if !r.drawPending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(16*time.Millisecond, func() {
		r.mu.Lock()
		p := r.program
		running := r.running
		r.mu.Unlock()
		if !running || p == nil {
			r.drawPending.Store(false)
			return
		}
		p.Send(drawMsg{})
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func (r *Root) dispatchController(fn func(Controller)) {
	if fn == nil || r.ctrl == nil {
		return
	}
	ctrl := r.ctrl
	go fn(ctrl)
}

func (r *Root) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent("key:" + msg.String())

	s := msg.String()
	if s == "ctrl+q" || s == "ctrl+c" {
		r.dispatchController(func(c Controller) { c.OnQuit() })
		return r, nil
	}
	if r.setupMsg != "" {
		switch s {
		case "q", "esc", "enter":
			r.dispatchController(func(c Controller) { c.OnQuit() })
		}
		return r, nil
	}
	if s == "?" {
		r.helpOpen = !r.helpOpen
		return r, nil
	}
	if top := r.topOverlay(); top != "" {
		return r.handleOverlayKey(top, s)
	}
	if r.screen == ScreenCatalog {
		return r.handleCatalogKey(s)
	}
	return r.handleSessionKey(msg, s)
}

func (r *Root) handleOverlayKey(top, s string) (tea.Model, tea.Cmd) {
	switch top {
	case "detail":
		switch s {
		case "esc", "q", "enter", "d":
			r.detailOpen = false
		}
	case "help":
		switch s {
		case "esc", "q", "enter":
			r.helpOpen = false
		}
	case "summary":
		switch s {
		case "esc", "q", "enter", "f9":
			r.dispatchController(func(c Controller) { c.OnToggleSummary() })
		}
	}
	return r, nil
}

func (r *Root) handleCatalogKey(s string) (tea.Model, tea.Cmd) {
	pack := r.currentPack()
	switch s {
	case "up", "k":
		if pack != nil {
			r.challengeIndex = wrapIndex(r.challengeIndex-1, len(pack.Challenges))
		}
	case "down", "j":
		if pack != nil {
			r.challengeIndex = wrapIndex(r.challengeIndex+1, len(pack.Challenges))
		}
	case "left", "[":
		r.packIndex = wrapIndex(r.packIndex-1, len(r.catalog.Packs))
		r.challengeIndex = 0
	case "right", "]":
		r.packIndex = wrapIndex(r.packIndex+1, len(r.catalog.Packs))
		r.challengeIndex = 0
	case "enter":
		if pack != nil && len(pack.Challenges) > 0 {
			packID := pack.PackID
			index := r.challengeIndex
			r.dispatchController(func(c Controller) { c.OnStartChallenge(packID, index) })
		}
	case "q", "esc":
		r.dispatchController(func(c Controller) { c.OnQuit() })
	}
	return r, nil
}

func (r *Root) handleSessionKey(msg tea.KeyMsg, s string) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keymap.Hint):
		r.dispatchController(func(c Controller) { c.OnRevealHint() })
		return r, nil
	case key.Matches(msg, r.keymap.Panels):
		if r.layout == LayoutMedium {
			r.panelsOpen = !r.panelsOpen
			return r, animateTickCmd()
		}
		r.flash("Panels are docked in this layout")
		return r, nil
	case key.Matches(msg, r.keymap.Detail):
		r.openDetail()
		return r, nil
	case key.Matches(msg, r.keymap.Coach):
		r.openCoach()
		return r, nil
	case key.Matches(msg, r.keymap.Check):
		r.checking = true
		r.dispatchController(func(c Controller) { c.OnCheck() })
		return r, nil
	case key.Matches(msg, r.keymap.Clear):
		r.dispatchController(func(c Controller) { c.OnClearFindings() })
		return r, nil
	case key.Matches(msg, r.keymap.Summary):
		r.dispatchController(func(c Controller) { c.OnToggleSummary() })
		return r, nil
	case key.Matches(msg, r.keymap.Catalog):
		r.dispatchController(func(c Controller) { c.OnBackToCatalog() })
		return r, nil
	}

	if p := r.session.Picker; p != nil {
		return r.handlePickerKey(p, s)
	}
	if t := r.session.Tutorial; t != nil {
		return r.handleTutorialKey(t, s)
	}

	switch s {
	case "tab":
		r.dispatchController(func(c Controller) { c.OnCycleZone(1) })
	case "shift+tab":
		r.dispatchController(func(c Controller) { c.OnCycleZone(-1) })
	case "enter":
		switch r.session.Actions.PrimaryID {
		case "next":
			r.dispatchController(func(c Controller) { c.OnNextChallenge() })
		case "summary":
			r.dispatchController(func(c Controller) { c.OnToggleSummary() })
		default:
			r.dispatchController(func(c Controller) { c.OnActivateZone() })
		}
	case "up":
		r.moveFindingSelection(-1)
	case "down":
		r.moveFindingSelection(1)
	case "backspace", "delete":
		rows := r.session.Findings.Rows
		if !r.session.Findings.Reviewed && r.findingIndex < len(rows) && len(rows) > 0 {
			id := rows[r.findingIndex].FindingID
			r.dispatchController(func(c Controller) { c.OnRemoveFinding(id) })
		}
	case "n":
		r.dispatchController(func(c Controller) { c.OnNextChallenge() })
	case "p":
		r.dispatchController(func(c Controller) { c.OnPrevChallenge() })
	case "h":
		r.dispatchController(func(c Controller) { c.OnRevealHint() })
	case "q", "esc":
		r.dispatchController(func(c Controller) { c.OnBackToCatalog() })
	}
	return r, nil
}

func (r *Root) handlePickerKey(p *PickerState, s string) (tea.Model, tea.Cmd) {
	selectable := len(p.Items) + 1
	switch s {
	case "up":
		r.pickerIndex = wrapIndex(r.pickerIndex-1, selectable)
	case "down":
		r.pickerIndex = wrapIndex(r.pickerIndex+1, selectable)
	case "enter":
		r.activatePickerRow(p, r.pickerIndex)
	case "esc":
		r.dispatchController(func(c Controller) { c.OnDismissPicker() })
	case "0":
		r.dispatchController(func(c Controller) { c.OnDismissPicker() })
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			idx := int(s[0] - '1')
			if idx < len(p.Items) {
				r.activatePickerRow(p, idx)
			}
		}
	}
	return r, nil
}

func (r *Root) activatePickerRow(p *PickerState, idx int) {
	if idx >= 0 && idx < len(p.Items) {
		item := p.Items[idx]
		if item.Used {
			r.flash("Already claimed in this zone")
			return
		}
		id := item.RubricID
		r.dispatchController(func(c Controller) { c.OnPickRubric(id) })
		return
	}
	r.dispatchController(func(c Controller) { c.OnDismissPicker() })
}

func (r *Root) handleTutorialKey(t *TutorialState, s string) (tea.Model, tea.Cmd) {
	switch s {
	case "enter", "right", "n":
		r.dispatchController(func(c Controller) { c.OnTutorialNext() })
	case "left", "p":
		r.dispatchController(func(c Controller) { c.OnTutorialPrev() })
	case "q", "esc":
		r.dispatchController(func(c Controller) { c.OnBackToCatalog() })
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			step := int(s[0] - '1')
			if step < len(t.Steps) {
				r.dispatchController(func(c Controller) { c.OnTutorialJump(step) })
			}
		}
	}
	return r, nil
}

func (r *Root) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if r.mouseScope == "off" {
		return r, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		r.recordInputEvent(fmt.Sprintf("mouse:press x=%d y=%d b=%d", msg.X, msg.Y, msg.Button))
		switch msg.Button {
		case tea.MouseButtonLeft:
			return r.handleLeftClick(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			return r.handleWheel(-1)
		case tea.MouseButtonWheelDown:
			return r.handleWheel(1)
		}
	case tea.MouseActionMotion:
		if r.screen == ScreenSession && r.topOverlay() == "" {
			cx, cy, inside := r.canvasCoords(msg.X, msg.Y)
			if inside {
				r.dispatchController(func(c Controller) { c.OnCanvasHover(cx, cy) })
			} else {
				r.dispatchController(func(c Controller) { c.OnCanvasHover(-1, -1) })
			}
		}
	}
	return r, nil
}

func (r *Root) handleWheel(delta int) (tea.Model, tea.Cmd) {
	if r.screen == ScreenCatalog {
		if pack := r.currentPack(); pack != nil {
			r.challengeIndex = wrapIndex(r.challengeIndex+delta, len(pack.Challenges))
		}
		return r, nil
	}
	if r.topOverlay() == "" {
		r.moveFindingSelection(delta)
	}
	return r, nil
}

func (r *Root) handleLeftClick(x, y int) (tea.Model, tea.Cmd) {
	if r.topOverlay() != "" {
		switch r.topOverlay() {
		case "detail":
			r.detailOpen = false
		case "help":
			r.helpOpen = false
		case "summary":
			r.dispatchController(func(c Controller) { c.OnToggleSummary() })
		}
		return r, nil
	}
	if r.screen == ScreenCatalog {
		return r.handleCatalogClick(x, y)
	}

	cx, cy, inside := r.canvasCoords(x, y)
	if p := r.session.Picker; p != nil && inside {
		if cx >= p.X && cx < p.X+p.Width && cy >= p.Y && cy < p.Y+p.Height {
			msgRows := 0
			if p.Message != "" {
				msgRows = 1
			}
			idx := cy - (p.Y + 1 + msgRows)
			if idx >= 0 && idx <= len(p.Items) {
				r.pickerIndex = idx
				r.activatePickerRow(p, idx)
			}
			return r, nil
		}
	}
	if inside {
		r.dispatchController(func(c Controller) { c.OnCanvasClick(cx, cy) })
		return r, nil
	}
	if r.session.Picker != nil {
		r.dispatchController(func(c Controller) { c.OnDismissPicker() })
	}
	return r, nil
}

func (r *Root) handleCatalogClick(x, y int) (tea.Model, tea.Cmd) {
	// Interior rows of both catalog panels start at screen row 2.
	row := y - 2
	if row < 0 {
		return r, nil
	}
	if x < catalogPackPanelWidth {
		if row < len(r.catalog.Packs) && row != r.packIndex {
			r.packIndex = row
			r.challengeIndex = 0
		}
		return r, nil
	}
	pack := r.currentPack()
	if pack == nil || row >= len(pack.Challenges) {
		return r, nil
	}
	if row == r.challengeIndex {
		packID := pack.PackID
		index := row
		r.dispatchController(func(c Controller) { c.OnStartChallenge(packID, index) })
		return r, nil
	}
	r.challengeIndex = row
	return r, nil
}

// canvasCoords converts a terminal cell to figure coordinates. The figure
// panel interior starts one column in and below the header plus border.
func (r *Root) canvasCoords(x, y int) (int, int, bool) {
	cx := x - 1
	cy := y - 2
	w, h := CanvasSize(r.cols, r.rows)
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return cx, cy, false
	}
	return cx, cy, true
}

func (r *Root) moveFindingSelection(delta int) {
	total := len(r.session.Findings.Rows) + len(r.session.Findings.Missed)
	if total == 0 {
		return
	}
	r.findingIndex = wrapIndex(r.findingIndex+delta, total)
}

func (r *Root) openDetail() {
	if t := r.session.Tutorial; t != nil {
		title := "Walkthrough"
		for i, st := range t.Steps {
			if st.Current {
				title = fmt.Sprintf("Step %d: %s", i+1, st.Label)
				break
			}
		}
		r.detailTitle = title
		r.detailText = r.renderMarkdown(t.BodyMD)
		r.detailOpen = true
		return
	}
	f := r.session.Findings
	if !f.Reviewed {
		r.flash("Explanations unlock after checking")
		return
	}
	total := len(f.Rows) + len(f.Missed)
	if total == 0 {
		r.flash("Nothing to inspect")
		return
	}
	idx := clampInt(r.findingIndex, 0, total-1)
	if idx < len(f.Rows) {
		row := f.Rows[idx]
		r.detailTitle = row.ShortName
		body := row.Explanation
		if row.Verdict != "" {
			body = "Verdict: " + row.Verdict + "\n\n" + body
		}
		r.detailText = r.renderMarkdown(body)
	} else {
		row := f.Missed[idx-len(f.Rows)]
		r.detailTitle = "Missed: " + row.ShortName
		r.detailText = r.renderMarkdown(row.Explanation)
	}
	r.detailOpen = true
}

func (r *Root) openCoach() {
	f := r.session.Findings
	if !f.Reviewed {
		r.flash("Coach notes unlock after checking")
		return
	}
	if strings.TrimSpace(f.CoachText) == "" {
		r.flash("No coach notes for this challenge")
		return
	}
	r.detailTitle = "Review Coach"
	r.detailText = f.CoachText
	r.detailOpen = true
}

func (r *Root) renderMarkdown(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	if r.markdown != nil {
		if out, err := r.markdown.Render(src); err == nil {
			return strings.TrimSpace(out)
		}
	}
	return src
}

func (r *Root) flash(msg string) {
	r.statusFlash = msg
	r.flashUntil = time.Now().Add(4 * time.Second)
}

func (r *Root) topOverlay() string {
	switch {
	case r.detailOpen:
		return "detail"
	case r.helpOpen:
		return "help"
	case r.summary.Open:
		return "summary"
	}
	return ""
}

func (r *Root) View() (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			out = r.theme.Wrong.Render("plotdojo hit a drawing error; resize the terminal to repaint")
		}
	}()

	if r.forceTooSmall || r.layout == LayoutTooSmall {
		return r.renderTooSmall()
	}
	if r.setupMsg != "" {
		return r.renderSetupError()
	}

	var base string
	if r.screen == ScreenCatalog {
		base = r.renderCatalog()
	} else {
		base = r.renderSession()
	}

	if top := r.topOverlay(); top != "" {
		if spec, ok := r.overlaySpec(top); ok {
			overlay := r.drawPanel(spec.title, spec.lines, spec.width, spec.height)
			base = composeOverlayAt(base, overlay, r.cols, r.rows, spec.startRow, spec.startCol)
		}
	}
	return base
}

func (r *Root) renderTooSmall() string {
	cols, rows := r.cols, r.rows
	if r.forceTooSmall {
		cols, rows = r.tooSmallCols, r.tooSmallRows
	}
	lines := []string{
		"This layout needs at least 80x24.",
		fmt.Sprintf("Current size: %dx%d", cols, rows),
		"",
		"Resize the terminal to continue.",
	}
	panel := r.drawPanel("Resize Required", lines, min(46, max(24, r.cols)), 8)
	return lipgloss.Place(max(1, r.cols), max(1, r.rows), lipgloss.Center, lipgloss.Center, panel)
}

func (r *Root) renderSetupError() string {
	lines := []string{r.setupMsg}
	if strings.TrimSpace(r.setupDetails) != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(ansi.Wordwrap(r.setupDetails, min(56, max(20, r.cols-8)), " "), "\n")...)
	}
	lines = append(lines, "", "q: Quit")
	panel := r.drawPanel("Setup Error", lines, min(64, max(24, r.cols)), len(lines)+4)
	return lipgloss.Place(max(1, r.cols), max(1, r.rows), lipgloss.Center, lipgloss.Center, panel)
}

const catalogPackPanelWidth = 38

func (r *Root) renderCatalog() string {
	header := r.theme.Header.Width(r.cols).Render(trimForWidth("Plot Dojo · Figure Critique", r.cols-2))
	bodyH := r.rows - 2

	var body string
	if len(r.catalog.Packs) == 0 {
		panel := r.drawPanel("No Packs", []string{
			"No challenge packs were found.",
			"",
			"Point --packs at a directory of pack.yaml bundles.",
		}, min(56, r.cols), 7)
		body = lipgloss.Place(r.cols, bodyH, lipgloss.Center, lipgloss.Center, panel)
	} else {
		left := r.drawPanel("Packs", r.packPanelLines(catalogPackPanelWidth-2), catalogPackPanelWidth, bodyH)
		right := r.drawPanel("Challenges", r.challengePanelLines(r.cols-catalogPackPanelWidth-2), r.cols-catalogPackPanelWidth, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := r.catalogStatusLine()
	return header + "\n" + body + "\n" + status
}

func (r *Root) packPanelLines(width int) []string {
	var lines []string
	for i, pack := range r.catalog.Packs {
		prefix := "  "
		if i == r.packIndex {
			prefix = r.arrowGlyph() + " "
		}
		lines = append(lines, trimForWidth(prefix+pack.Title, width))
	}
	pack := r.currentPack()
	if pack == nil {
		return lines
	}
	lines = append(lines, "")
	lines = append(lines, trimForWidth("ID: "+pack.PackID, width))
	if pack.Version != "" {
		lines = append(lines, trimForWidth("Version: "+pack.Version, width))
	}
	if len(pack.Tags) > 0 {
		lines = append(lines, trimForWidth("Tags: "+strings.Join(pack.Tags, ", "), width))
	}
	if strings.TrimSpace(pack.DescriptionMD) != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(ansi.Wordwrap(strings.TrimSpace(pack.DescriptionMD), width, " "), "\n")...)
	}
	return lines
}

func (r *Root) challengePanelLines(width int) []string {
	pack := r.currentPack()
	if pack == nil {
		return []string{"Select a pack."}
	}
	check := r.checkGlyph()
	var lines []string
	for i, ch := range pack.Challenges {
		prefix := "  "
		if i == r.challengeIndex {
			prefix = r.arrowGlyph() + " "
		}
		status := ""
		if ch.Completed {
			status = " " + check
			if ch.BestPercent >= 0 {
				status += fmt.Sprintf(" %d%%", ch.BestPercent)
			}
		}
		label := fmt.Sprintf("%s[%s] %s%s", prefix, ch.Type, ch.Title, status)
		lines = append(lines, trimForWidth(label, width))
	}
	if len(pack.Challenges) == 0 {
		lines = append(lines, "This pack has no challenges.")
		return lines
	}
	sel := pack.Challenges[wrapIndex(r.challengeIndex, len(pack.Challenges))]
	lines = append(lines, "")
	lines = append(lines, trimForWidth(fmt.Sprintf("%s · %s", sel.ChallengeID, sel.Difficulty), width))
	if strings.TrimSpace(sel.SummaryMD) != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(ansi.Wordwrap(strings.TrimSpace(sel.SummaryMD), width, " "), "\n")...)
	}
	lines = append(lines, "", "Enter: Start")
	return lines
}

func (r *Root) catalogStatusLine() string {
	parts := []string{"up/down select", "left/right pack", "enter start", "q quit"}
	line := strings.Join(parts, " · ")
	if r.summary.Total > 0 {
		frac := float64(r.summary.Completed) / float64(r.summary.Total)
		bar := r.completionBar(16, frac)
		line = fmt.Sprintf("%s   Completed %d/%d %s", line, r.summary.Completed, r.summary.Total, bar)
	}
	if flash := r.activeFlash(); flash != "" {
		line += "   " + flash
	}
	return r.theme.Status.Width(r.cols).Render(line)
}

func (r *Root) completionBar(width int, frac float64) string {
	m := r.completion
	m.Width = max(8, width)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return m.ViewAs(frac)
}

func (r *Root) renderSession() string {
	bodyH := r.rows - 2
	header := r.sessionHeaderLine()
	status := r.sessionStatusLine()

	var body string
	if r.layout == LayoutWide {
		fig := r.renderFigurePanel(r.cols-sidePanelWidth, bodyH)
		side := r.drawPanel("Session", r.sessionPanelLines(sidePanelWidth-2), sidePanelWidth, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, fig, side)
	} else {
		body = r.renderFigurePanel(r.cols, bodyH)
	}

	out := header + "\n" + body + "\n" + status
	if r.layout == LayoutMedium {
		if drawer, drawW := r.renderPanelDrawer(bodyH); drawer != "" {
			out = composeOverlayAt(out, drawer, r.cols, r.rows, 1, r.cols-drawW)
		}
	}
	return out
}

func (r *Root) sessionHeaderLine() string {
	s := r.session
	elapsed := s.ElapsedLabel
	if strings.TrimSpace(elapsed) == "" {
		d := time.Since(s.StartedAt).Truncate(time.Second)
		elapsed = fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
	}
	parts := []string{"Plot Dojo", firstNonEmptyStr(s.ModeLabel, "Session")}
	if s.Position != "" {
		parts = append(parts, s.Position)
	}
	if s.ChallengeTitle != "" {
		parts = append(parts, s.ChallengeTitle)
	}
	if s.Difficulty != "" {
		parts = append(parts, s.Difficulty)
	}
	parts = append(parts, elapsed)
	return r.theme.Header.Width(r.cols).Render(trimForWidth(strings.Join(parts, " · "), r.cols-2))
}

func (r *Root) sessionStatusLine() string {
	parts := []string{r.help.View(r.keymap)}
	if r.checking {
		parts = append(parts, r.checkSpin.View()+" checking")
	}
	if flash := r.activeFlash(); flash != "" {
		parts = append(parts, r.theme.Accent.Render(flash))
	}
	return r.theme.Status.Width(r.cols).Render(strings.Join(parts, "   "))
}

func (r *Root) activeFlash() string {
	if r.statusFlash == "" || time.Now().After(r.flashUntil) {
		return ""
	}
	return r.statusFlash
}

func (r *Root) renderPanelDrawer(bodyHeight int) (string, int) {
	progress := r.overlayPos
	if r.panelsOpen && progress < 0.2 {
		progress = 0.2
	}
	if !r.panelsOpen && progress < 0.05 {
		return "", 0
	}
	drawW := int(float64(sidePanelWidth+2) * maxFloat(progress, 0))
	if drawW < 18 {
		return "", 0
	}
	lines := r.sessionPanelLines(drawW - 2)
	lines = append(lines, "", "F2 closes the drawer")
	return r.drawPanel("Session", lines, drawW, bodyHeight), drawW
}

func (r *Root) renderFigurePanel(width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	frame := r.session.Frame
	cells := make([][]rune, innerH)
	tints := make([][]canvas.Tint, innerH)
	for y := 0; y < innerH; y++ {
		cells[y] = make([]rune, innerW)
		tints[y] = make([]canvas.Tint, innerW)
		for x := 0; x < innerW; x++ {
			cells[y][x] = ' '
			if y < len(frame.Cells) && x < len(frame.Cells[y]) {
				cells[y][x] = frame.Cells[y][x]
			}
			if y < len(frame.Tints) && x < len(frame.Tints[y]) {
				tints[y][x] = frame.Tints[y][x]
			}
			if r.ascii {
				cells[y][x] = asciiRune(cells[y][x])
			}
		}
	}
	if p := r.session.Picker; p != nil {
		r.blitPicker(cells, tints, p)
	}

	hGlyph, vGlyph := "─", "│"
	tl, tr, bl, br := "┌", "┐", "└", "┘"
	if r.ascii {
		hGlyph, vGlyph = "-", "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(hGlyph, innerW) + tr
	if innerW > 10 {
		t := " Figure "
		runes := []rune(top)
		for i, ch := range []rune(t) {
			runes[1+i] = ch
		}
		top = string(runes)
	}

	pulse := r.pulse && r.motionLevel != "off"
	out := make([]string, 0, height)
	out = append(out, r.theme.PanelBorder.Render(top))
	for y := 0; y < innerH; y++ {
		var b strings.Builder
		b.WriteString(r.theme.PanelBorder.Render(vGlyph))
		x := 0
		for x < innerW {
			t := tints[y][x]
			start := x
			for x < innerW && tints[y][x] == t {
				x++
			}
			b.WriteString(r.styleFor(t, pulse).Render(string(cells[y][start:x])))
		}
		b.WriteString(r.theme.PanelBorder.Render(vGlyph))
		out = append(out, b.String())
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(hGlyph, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) styleFor(t canvas.Tint, pulse bool) lipgloss.Style {
	switch t {
	case tintPickerBorder:
		return r.theme.PickerBorder
	case tintPickerItem:
		return r.theme.PickerItem
	case tintPickerUsed:
		return r.theme.PickerUsed
	case tintPickerSelected:
		return r.theme.PickerSelected
	default:
		return r.theme.TintStyle(t, pulse)
	}
}

// blitPicker writes the claim menu into the figure cell grid so the style
// pass can paint it like any other region.
func (r *Root) blitPicker(cells [][]rune, tints [][]canvas.Tint, p *PickerState) {
	innerH := len(cells)
	if innerH == 0 {
		return
	}
	innerW := len(cells[0])

	hGlyph, vGlyph := '─', '│'
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if r.ascii {
		hGlyph, vGlyph = '-', '|'
		tl, tr, bl, br = '+', '+', '+', '+'
	}

	put := func(x, y int, ch rune, t canvas.Tint) {
		if y < 0 || y >= innerH || x < 0 || x >= innerW {
			return
		}
		cells[y][x] = ch
		tints[y][x] = t
	}
	putLine := func(y int, text string, t canvas.Tint) {
		row := []rune(padRune(text, p.Width-2))
		for i, ch := range row {
			put(p.X+1+i, y, ch, t)
		}
		put(p.X, y, vGlyph, tintPickerBorder)
		put(p.X+p.Width-1, y, vGlyph, tintPickerBorder)
	}

	title := []rune(" " + p.ZoneID + " ")
	for x := 0; x < p.Width; x++ {
		ch := hGlyph
		switch x {
		case 0:
			ch = tl
		case p.Width - 1:
			ch = tr
		default:
			if x-1 < len(title) && p.Width > len(title)+2 {
				ch = title[x-1]
			}
		}
		put(p.X+x, p.Y, ch, tintPickerBorder)
	}

	row := p.Y + 1
	if p.Message != "" {
		putLine(row, " "+trimForWidth(p.Message, p.Width-4), tintPickerUsed)
		row++
	}
	for i, item := range p.Items {
		t := tintPickerItem
		label := fmt.Sprintf(" %d) %s", i+1, item.ShortName)
		if item.Used {
			t = tintPickerUsed
			label = " " + r.checkGlyph() + "  " + item.ShortName
		}
		if i == r.pickerIndex {
			t = tintPickerSelected
		}
		putLine(row, trimForWidth(label, p.Width-2), t)
		row++
	}
	dismiss := firstNonEmptyStr(p.DismissLabel, "No issue here")
	t := tintPickerItem
	if r.pickerIndex == len(p.Items) {
		t = tintPickerSelected
	}
	putLine(row, trimForWidth(" 0) "+dismiss, p.Width-2), t)
	row++

	for x := 0; x < p.Width; x++ {
		ch := hGlyph
		if x == 0 {
			ch = bl
		} else if x == p.Width-1 {
			ch = br
		}
		put(p.X+x, row, ch, tintPickerBorder)
	}
}

func (r *Root) sessionPanelLines(width int) []string {
	s := r.session
	check := r.checkGlyph()
	cross := r.crossGlyph()
	bullet := r.bulletGlyph()
	arrow := r.arrowGlyph()

	if t := s.Tutorial; t != nil {
		var lines []string
		lines = append(lines, "Walkthrough")
		for i, st := range t.Steps {
			marker := bullet
			if st.Visited {
				marker = check
			}
			prefix := "  "
			if st.Current {
				prefix = arrow + " "
			}
			lines = append(lines, trimForWidth(fmt.Sprintf("%s%s %d. %s", prefix, marker, i+1, st.Label), width))
		}
		if strings.TrimSpace(t.BodyMD) != "" {
			lines = append(lines, "")
			lines = append(lines, strings.Split(ansi.Wordwrap(strings.TrimSpace(t.BodyMD), width, " "), "\n")...)
		}
		lines = append(lines, "")
		next := "Enter: " + t.NextLabel
		if t.CanPrev {
			next += "   Left: Back"
		}
		lines = append(lines, trimForWidth(next, width))
		lines = append(lines, trimForWidth("d: Read this step in full", width))
		return lines
	}

	var lines []string

	lines = append(lines, fmt.Sprintf("Hints (%d left)", s.Hints.Remaining))
	for _, hint := range s.Hints.Revealed {
		wrapped := ansi.Wordwrap(hint, max(4, width-2), " ")
		for j, ln := range strings.Split(wrapped, "\n") {
			if j == 0 {
				lines = append(lines, trimForWidth(bullet+" "+ln, width))
			} else {
				lines = append(lines, trimForWidth("  "+ln, width))
			}
		}
	}
	if s.Hints.CanReveal {
		lines = append(lines, "F1: Reveal next hint")
	}
	lines = append(lines, "")

	lines = append(lines, "Rubric")
	for _, g := range s.Rubric {
		lines = append(lines, trimForWidth(g.Category+":", width))
		for _, it := range g.Items {
			mark := " "
			if it.Claimed {
				mark = check
			}
			lines = append(lines, trimForWidth(fmt.Sprintf(" %s %s", mark, it.ShortName), width))
		}
	}
	lines = append(lines, "")

	f := s.Findings
	title := fmt.Sprintf("Findings (%d)", len(f.Rows))
	if f.Reviewed {
		title = "Review"
	}
	lines = append(lines, title)
	selectable := len(f.Rows) + len(f.Missed)
	for i, row := range f.Rows {
		prefix := "  "
		if selectable > 0 && i == r.findingIndex {
			prefix = arrow + " "
		}
		verdict := ""
		switch row.Verdict {
		case "correct":
			verdict = check + " "
		case "false_positive":
			verdict = cross + " "
		}
		lines = append(lines, trimForWidth(fmt.Sprintf("%s%s%s %s @%s", prefix, verdict, row.Marker, row.ShortName, row.ZoneID), width))
	}
	for i, row := range f.Missed {
		prefix := "  "
		if selectable > 0 && len(f.Rows)+i == r.findingIndex {
			prefix = arrow + " "
		}
		lines = append(lines, trimForWidth(fmt.Sprintf("%s! missed %s @%s", prefix, row.ShortName, row.ZoneID), width))
	}
	if f.CleanText != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(ansi.Wordwrap(f.CleanText, width, " "), "\n")...)
	}
	if f.Reviewed {
		lines = append(lines, "")
		lines = append(lines, trimForWidth(fmt.Sprintf("%s %d  %s %d  ! %d", check, f.Correct, cross, f.False, f.MissedN), width))
		if f.Percent >= 0 {
			lines = append(lines, fmt.Sprintf("Score: %d%%", f.Percent))
		}
	}
	lines = append(lines, "")

	switch s.Actions.PrimaryID {
	case "check":
		lines = append(lines, "F5: "+s.Actions.PrimaryLabel)
	case "next", "summary":
		lines = append(lines, "Enter: "+s.Actions.PrimaryLabel)
	}
	if s.Actions.CanClear {
		lines = append(lines, "F6: Clear findings")
	}
	if s.Nav.CanPrev || s.Nav.CanNext {
		lines = append(lines, "n/p: Switch challenge")
	}
	return lines
}

type overlaySpec struct {
	title    string
	lines    []string
	width    int
	height   int
	startRow int
	startCol int
}

func (r *Root) overlaySpec(top string) (overlaySpec, bool) {
	if top == "" {
		return overlaySpec{}, false
	}
	w := min(max(56, r.cols-12), r.cols)
	h := min(max(10, r.rows/2), max(8, r.rows-4))

	var title string
	var lines []string
	switch top {
	case "summary":
		title = "Session Summary"
		lines = r.summaryLines(w - 4)
		lines = append(lines, "", "Enter/Esc: Close")
	case "detail":
		title = firstNonEmptyStr(r.detailTitle, "Detail")
		lines = strings.Split(strings.TrimSuffix(r.detailText, "\n"), "\n")
		lines = append(lines, "", "Esc/q: Close")
	case "help":
		title = "Keys"
		full := r.help
		full.ShowAll = true
		lines = strings.Split(full.View(r.keymap), "\n")
		lines = append(lines,
			"",
			"Tab: Cycle zones    Enter: Open picker",
			"Arrows: Select finding    Del: Remove finding",
			"n/p: Next/previous challenge    q: Catalog",
			"",
			"Esc: Close")
	default:
		return overlaySpec{}, false
	}
	if len(lines) == 0 {
		lines = []string{"(empty)"}
	}
	needH := len(lines) + 2
	maxH := max(8, r.rows-4)
	if needH > h {
		h = min(needH, maxH)
	}
	return overlaySpec{
		title:    title,
		lines:    lines,
		width:    w,
		height:   h,
		startRow: (r.rows - h) / 2,
		startCol: (r.cols - w) / 2,
	}, true
}

func (r *Root) summaryLines(width int) []string {
	check := r.checkGlyph()
	bullet := r.bulletGlyph()
	var lines []string
	for _, row := range r.summary.Rows {
		marker := bullet
		if row.Status == "completed" {
			marker = check
		}
		best := "not checked"
		if row.BestPercent >= 0 {
			best = fmt.Sprintf("best %d%%", row.BestPercent)
		}
		lines = append(lines, trimForWidth(fmt.Sprintf("%s %s (%s)  %s", marker, row.Title, row.Difficulty, best), width))
	}
	if len(lines) == 0 {
		lines = append(lines, "No critique challenges in this pack.")
	}
	lines = append(lines, "")
	frac := 0.0
	if r.summary.Total > 0 {
		frac = float64(r.summary.Completed) / float64(r.summary.Total)
	}
	bar := ansi.Strip(r.completionBar(min(24, max(8, width-18)), frac))
	lines = append(lines, trimForWidth(fmt.Sprintf("Completed %d/%d %s", r.summary.Completed, r.summary.Total, bar), width))
	return lines
}

func (r *Root) drawPanel(title string, lines []string, width, height int) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h := "─"
	v := "│"
	tl := "┌"
	tr := "┐"
	bl := "└"
	br := "┘"
	if r.ascii {
		h = "-"
		v = "|"
		tl, tr, bl, br = "+", "+", "+", "+"
	}

	top := tl + strings.Repeat(h, innerW) + tr
	if title != "" && innerW > 2 {
		t := " " + title + " "
		runes := []rune(top)
		start := 1
		for i, ch := range []rune(t) {
			pos := start + i
			if pos >= len(runes)-1 {
				break
			}
			runes[pos] = ch
		}
		top = string(runes)
	}

	out := make([]string, 0, height)
	out = append(out, r.theme.PanelBorder.Render(top))
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		line = padRune(line, innerW)
		out = append(out, r.theme.PanelBorder.Render(v)+r.theme.PanelBody.Render(line)+r.theme.PanelBorder.Render(v))
	}
	out = append(out, r.theme.PanelBorder.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) animateIfNeeded() tea.Cmd {
	target := 0.0
	if r.panelsOpen && r.layout == LayoutMedium {
		target = 1.0
	}
	if r.shouldAnimate(target) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	if r.motionLevel == "off" {
		return false
	}
	if target > 0 {
		return r.overlayPos < 0.999 || abs(r.overlayVel) > 0.001
	}
	return r.overlayPos > 0.001 || abs(r.overlayVel) > 0.001
}

func (r *Root) currentPack() *PackCard {
	if len(r.catalog.Packs) == 0 {
		return nil
	}
	return &r.catalog.Packs[wrapIndex(r.packIndex, len(r.catalog.Packs))]
}

func (r *Root) checkGlyph() string {
	if r.ascii {
		return "v"
	}
	return "✓"
}

func (r *Root) crossGlyph() string {
	if r.ascii {
		return "x"
	}
	return "✗"
}

func (r *Root) bulletGlyph() string {
	if r.ascii {
		return "o"
	}
	return "•"
}

func (r *Root) arrowGlyph() string {
	if r.ascii {
		return ">"
	}
	return "▸"
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func spinnerTickCmd(model spinner.Model) tea.Cmd {
	return func() tea.Msg {
		return model.Tick()
	}
}

func firstNonEmptyStr(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func asciiRune(ch rune) rune {
	switch ch {
	case '✓':
		return 'v'
	case '✗':
		return 'x'
	case '•':
		return '*'
	case '·':
		return '.'
	case '┄':
		return '-'
	case '│':
		return '|'
	case '─':
		return '-'
	case '┌', '┐', '└', '┘', '┤', '┬', '├', '┴':
		return '+'
	case '▸':
		return '>'
	default:
		return ch
	}
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

func composeOverlayAt(base, overlay string, cols, rows, startRow, startCol int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	base = ansi.Strip(base)
	overlay = ansi.Strip(overlay)
	baseLines := strings.Split(base, "\n")
	if len(baseLines) < rows {
		pad := make([]string, rows-len(baseLines))
		baseLines = append(baseLines, pad...)
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	if len(overlayLines) == 0 {
		return strings.Join(baseLines[:rows], "\n")
	}
	ow := 1
	for _, line := range overlayLines {
		lw := len([]rune(line))
		if lw > ow {
			ow = lw
		}
	}
	if ow > cols {
		ow = cols
	}
	if startRow < 0 {
		startRow = 0
	}
	if startCol < 0 {
		startCol = 0
	}

	for i, line := range overlayLines {
		row := startRow + i
		if row < 0 || row >= rows {
			continue
		}
		dst := []rune(baseLines[row])
		src := []rune(line)
		if len(src) > ow {
			src = src[:ow]
		}
		for j := 0; j < ow && startCol+j < len(dst); j++ {
			dst[startCol+j] = ' '
		}
		for j := 0; j < len(src) && startCol+j < len(dst); j++ {
			dst[startCol+j] = src[j]
		}
		baseLines[row] = string(dst)
	}
	return strings.Join(baseLines[:rows], "\n")
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "studio", "chalkboard", "mono":
		return strings.TrimSpace(v)
	default:
		return "studio"
	}
}

func normalizeMotionLevel(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "reduced", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func normalizeMouseScope(v string) string {
	switch strings.TrimSpace(v) {
	case "off", "scoped", "full":
		return strings.TrimSpace(v)
	default:
		return "full"
	}
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
		r.flashUntil = time.Now().Add(10 * time.Second)
	}

	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"message_type", msgType,
		"screen", int(r.screen),
		"layout", int(r.layout),
		"cols", r.cols,
		"rows", r.rows,
		"overlay", r.topOverlay(),
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
