package devtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"plotdojo/internal/content"
)

// Scenario is a deterministic session state for screenshots and automation.
// Fields are declarative; the app interprets them against the loaded pack.
type Scenario struct {
	Name   string
	Target string

	// PickerOpen opens the claim picker on the first zone of the figure.
	PickerOpen bool
	// Solve places one finding per answer-key entry before any check.
	Solve bool
	// Check runs the review after any staged findings.
	Check bool
	// Trick prefers a critique whose answer key is empty.
	Trick bool
	// SummaryOpen opens the session summary overlay last.
	SummaryOpen bool
}

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

func (m *Manager) Resolve(name string) Scenario {
	switch name {
	case "catalog":
		return Scenario{Name: name}
	case "tutorial":
		return Scenario{Name: name, Target: content.TypeTutorial}
	case "session", "active":
		return Scenario{Name: "session", Target: content.TypeCritique}
	case "picker_open":
		return Scenario{Name: name, Target: content.TypeCritique, PickerOpen: true}
	case "review_pass":
		return Scenario{Name: name, Target: content.TypeCritique, Solve: true, Check: true}
	case "review_fail":
		return Scenario{Name: name, Target: content.TypeCritique, Check: true}
	case "review_trick":
		return Scenario{Name: name, Target: content.TypeCritique, Trick: true, Check: true}
	case "summary":
		return Scenario{Name: name, Target: content.TypeCritique, Solve: true, Check: true, SummaryOpen: true}
	default:
		return Scenario{Name: "session", Target: content.TypeCritique}
	}
}

// ScenarioNames lists the recognized demo scenarios in a stable order.
func ScenarioNames() []string {
	return []string{
		"catalog",
		"tutorial",
		"session",
		"picker_open",
		"review_pass",
		"review_fail",
		"review_trick",
		"summary",
	}
}

func (m *Manager) SetState(ctx context.Context, cacheDir string, state string, rendered bool) error {
	_ = ctx
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		cacheDir = filepath.Join(home, ".cache", "plotdojo")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	payload := map[string]any{
		"state":    strings.TrimSpace(state),
		"rendered": rendered,
	}
	b, _ := json.Marshal(payload)
	return os.WriteFile(filepath.Join(cacheDir, "dev_state.json"), b, 0o644)
}
