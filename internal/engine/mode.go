package engine

// Mode is the navigation state for the loaded challenge. The summary
// overlay is deliberately not a mode: it opens and closes without touching
// the navigation state underneath.
type Mode int

const (
	ModeTutorial Mode = iota
	ModeActive
	ModeReview
)

func (m Mode) String() string {
	switch m {
	case ModeTutorial:
		return "tutorial"
	case ModeActive:
		return "active"
	case ModeReview:
		return "review"
	default:
		return "unknown"
	}
}
