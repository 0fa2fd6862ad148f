package ui

import (
	"time"

	"plotdojo/internal/canvas"
)

// Controller receives user intent from the view. Implementations own the
// session; the view never mutates engine state directly. Callbacks may run on
// view goroutines and must be safe to call concurrently.
type Controller interface {
	OnStartChallenge(packID string, index int)
	OnBackToCatalog()

	OnCanvasClick(x, y int)
	OnCanvasHover(x, y int)
	OnPickRubric(rubricID string)
	OnDismissPicker()
	OnCycleZone(delta int)
	OnActivateZone()

	OnCheck()
	OnClearFindings()
	OnRemoveFinding(findingID int64)
	OnRevealHint()
	OnNextChallenge()
	OnPrevChallenge()
	OnTutorialNext()
	OnTutorialPrev()
	OnTutorialJump(step int)
	OnToggleSummary()

	OnResize(cols, rows int)
	OnQuit()
}

// View is the surface the controller pushes state into. The Set methods are
// safe to call from any goroutine; the view repaints on its own schedule.
type View interface {
	Run() error
	Stop()
	SetController(Controller)
	SetScreen(screen Screen)
	SetCatalog(state CatalogState)
	SetSession(state SessionState)
	SetSummary(state SummaryState)
	SetChecking(checking bool)
	SetTooSmall(cols, rows int)
	SetSetupError(msg, details string)
	FlashStatus(msg string)
	RequestDraw()
}

type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenSession
)

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutMedium
	LayoutTooSmall
)

// CatalogState lists the loaded packs and their challenges.
type CatalogState struct {
	Packs []PackCard
}

type PackCard struct {
	PackID        string
	Title         string
	Version       string
	Tags          []string
	DescriptionMD string
	Challenges    []ChallengeCard
}

type ChallengeCard struct {
	ChallengeID string
	Title       string
	Type        string
	Difficulty  string
	SummaryMD   string
	Completed   bool
	// BestPercent is -1 until the challenge has been checked at least once.
	BestPercent int
}

// SessionState is the full view model for the session screen. The controller
// rebuilds and pushes it after every engine mutation.
type SessionState struct {
	ModeLabel      string
	ChallengeTitle string
	Difficulty     string
	Position       string
	// ElapsedLabel overrides live timer rendering when set (used by deterministic demos).
	ElapsedLabel string
	StartedAt    time.Time

	Frame    FrameState
	Picker   *PickerState
	Nav      NavState
	Hints    HintsState
	Rubric   []RubricGroupState
	Findings FindingsState
	Tutorial *TutorialState
	Actions  ActionsState
}

// FrameState is a snapshot of the rendered figure. Cells and Tints are
// row-major and share dimensions.
type FrameState struct {
	Width  int
	Height int
	Cells  [][]rune
	Tints  [][]canvas.Tint
}

// PickerState mirrors the open claim menu. Coordinates are figure-local.
type PickerState struct {
	ZoneID       string
	X            int
	Y            int
	Width        int
	Height       int
	Items        []PickerItemState
	Message      string
	DismissLabel string
}

type PickerItemState struct {
	RubricID  string
	ShortName string
	Used      bool
}

type NavState struct {
	CanPrev bool
	CanNext bool
}

type HintsState struct {
	Revealed  []string
	Remaining int
	CanReveal bool
}

type RubricGroupState struct {
	Category string
	Items    []RubricLineState
}

type RubricLineState struct {
	RubricID  string
	ShortName string
	Claimed   bool
}

type FindingsState struct {
	Rows     []FindingRowState
	Missed   []MissedRowState
	Reviewed bool
	// CleanText is non-empty after review when the figure had no defects.
	CleanText string
	// CoachText is the plain-text review walkthrough, set after checking.
	CoachText string
	Correct   int
	MissedN   int
	False     int
	// Percent is -1 before review.
	Percent int
}

type FindingRowState struct {
	Marker    string
	FindingID int64
	ShortName string
	ZoneID    string
	// Verdict is "" before review, then "correct" or "false_positive".
	Verdict     string
	Explanation string
}

type MissedRowState struct {
	ShortName   string
	ZoneID      string
	Explanation string
}

type TutorialState struct {
	Steps     []TutorialStepState
	BodyMD    string
	NextLabel string
	CanPrev   bool
}

type TutorialStepState struct {
	Label   string
	Current bool
	Visited bool
}

type ActionsState struct {
	PrimaryID    string
	PrimaryLabel string
	CanClear     bool
}

// SummaryState backs the session summary overlay.
type SummaryState struct {
	Open      bool
	Rows      []SummaryRowState
	Completed int
	Total     int
}

type SummaryRowState struct {
	Title      string
	Difficulty string
	Status     string
	// BestPercent is -1 when the challenge was never checked.
	BestPercent int
}
