package content

import (
	"fmt"
	"regexp"
)

const (
	PackKind               = "pack"
	ChallengeKind          = "challenge"
	SupportedSchemaVersion = 1
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	TypeTutorial = "tutorial"
	TypeCritique = "critique"
)

// Rubric categories are a fixed small set used only for grouping in the
// reference panel.
const (
	CategoryAxes   = "axes"
	CategoryData   = "data"
	CategoryLabels = "labels"
	CategoryStyle  = "style"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,63}$`)

type Pack struct {
	Kind          string         `yaml:"kind"`
	SchemaVersion int            `yaml:"schema_version"`
	PackID        string         `yaml:"pack_id"`
	Title         string         `yaml:"title"`
	Version       string         `yaml:"version"`
	DescriptionMD string         `yaml:"description_md"`
	Tags          []string       `yaml:"tags"`
	Rubric        []RubricItem   `yaml:"rubric"`
	Challenges    []ChallengeRef `yaml:"challenges"`

	Path             string      `yaml:"-"`
	LoadedChallenges []Challenge `yaml:"-"`
}

// RubricItem is one claimable issue kind. Immutable once loaded.
type RubricItem struct {
	ID            string `yaml:"id"`
	Category      string `yaml:"category"`
	ShortName     string `yaml:"short_name"`
	DescriptionMD string `yaml:"description_md"`
}

type ChallengeRef struct {
	ChallengeID string `yaml:"challenge_id"`
	Path        string `yaml:"path"`
	Enabled     *bool  `yaml:"enabled"`
}

type Challenge struct {
	Kind          string         `yaml:"kind"`
	SchemaVersion int            `yaml:"schema_version"`
	ChallengeID   string         `yaml:"challenge_id"`
	Title         string         `yaml:"title"`
	Difficulty    string         `yaml:"difficulty"`
	Type          string         `yaml:"type"`
	SummaryMD     string         `yaml:"summary_md"`
	Figure        FigureSpec     `yaml:"figure"`
	Hints         []string       `yaml:"hints"`
	AnswerKey     []AnswerEntry  `yaml:"answer_key"`
	TutorialSteps []TutorialStep `yaml:"tutorial_steps"`

	Path string `yaml:"-"`
}

// FigureSpec selects the figure provider and the defects it plants. The
// engine never reads it; only the provider does.
type FigureSpec struct {
	Kind    string             `yaml:"kind"`
	Defects []string           `yaml:"defects"`
	Params  map[string]float64 `yaml:"params"`
}

// AnswerEntry is one ground-truth issue. Rubric ids may repeat across
// entries; each entry is claimable at most once during review.
type AnswerEntry struct {
	RubricID      string `yaml:"rubric_id"`
	ZoneID        string `yaml:"zone_id"`
	ExplanationMD string `yaml:"explanation_md"`
}

// TutorialStep is one stage of the guided walkthrough. A step with a
// ZoneID spotlights that zone; PanelTarget marks steps that point at a
// panel instead of the canvas, which dim the whole figure uniformly.
type TutorialStep struct {
	Label       string `yaml:"label"`
	TextMD      string `yaml:"text_md"`
	ZoneID      string `yaml:"zone_id"`
	PanelTarget bool   `yaml:"panel_target"`
}

func (p Pack) Validate() error {
	if p.Kind != PackKind {
		return fmt.Errorf("kind must be %q", PackKind)
	}
	if p.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if p.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported pack schema_version %d (max supported %d)", p.SchemaVersion, SupportedSchemaVersion)
	}
	if !idPattern.MatchString(p.PackID) {
		return fmt.Errorf("invalid pack_id %q", p.PackID)
	}
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Version == "" {
		return fmt.Errorf("version is required")
	}
	if len(p.Rubric) == 0 {
		return fmt.Errorf("rubric must contain at least one item")
	}
	seenRubric := map[string]struct{}{}
	for _, r := range p.Rubric {
		if !idPattern.MatchString(r.ID) {
			return fmt.Errorf("invalid rubric id %q", r.ID)
		}
		if _, ok := seenRubric[r.ID]; ok {
			return fmt.Errorf("duplicate rubric id %q", r.ID)
		}
		seenRubric[r.ID] = struct{}{}
		switch r.Category {
		case CategoryAxes, CategoryData, CategoryLabels, CategoryStyle:
		default:
			return fmt.Errorf("rubric %q: invalid category %q", r.ID, r.Category)
		}
		if r.ShortName == "" {
			return fmt.Errorf("rubric %q: short_name is required", r.ID)
		}
	}
	seen := map[string]struct{}{}
	for _, c := range p.Challenges {
		if c.ChallengeID == "" {
			return fmt.Errorf("challenges[].challenge_id is required")
		}
		if _, ok := seen[c.ChallengeID]; ok {
			return fmt.Errorf("duplicate challenge_id %q in pack.yaml", c.ChallengeID)
		}
		seen[c.ChallengeID] = struct{}{}
	}
	return nil
}

// Validate is the fail-fast gate for a challenge: the engine calls it again
// on every load so a malformed challenge halts the load instead of reaching
// the panels half-built.
func (c Challenge) Validate() error {
	if c.Kind != ChallengeKind {
		return fmt.Errorf("kind must be %q", ChallengeKind)
	}
	if c.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if c.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported challenge schema_version %d (max supported %d)", c.SchemaVersion, SupportedSchemaVersion)
	}
	if !idPattern.MatchString(c.ChallengeID) {
		return fmt.Errorf("invalid challenge_id %q", c.ChallengeID)
	}
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	switch c.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("difficulty must be one of easy, medium, hard")
	}
	if c.Figure.Kind == "" {
		return fmt.Errorf("figure.kind is required")
	}
	switch c.Type {
	case TypeTutorial:
		if len(c.TutorialSteps) == 0 {
			return fmt.Errorf("tutorial challenge %q requires tutorial_steps", c.ChallengeID)
		}
		for i, s := range c.TutorialSteps {
			if s.Label == "" {
				return fmt.Errorf("tutorial_steps[%d]: label is required", i)
			}
			if s.TextMD == "" {
				return fmt.Errorf("tutorial_steps[%d]: text_md is required", i)
			}
		}
	case TypeCritique:
		if c.Hints == nil {
			return fmt.Errorf("critique challenge %q requires a hints list (may be empty)", c.ChallengeID)
		}
		if c.AnswerKey == nil {
			return fmt.Errorf("critique challenge %q requires an answer_key (may be empty)", c.ChallengeID)
		}
		for i, e := range c.AnswerKey {
			if e.RubricID == "" {
				return fmt.Errorf("answer_key[%d]: rubric_id is required", i)
			}
			if e.ZoneID == "" {
				return fmt.Errorf("answer_key[%d]: zone_id is required", i)
			}
		}
	default:
		return fmt.Errorf("type must be %q or %q", TypeTutorial, TypeCritique)
	}
	return nil
}

// ValidateRubricRefs cross-checks a challenge's answer key against the pack
// rubric so a typoed rubric id fails at load, not at review time.
func ValidateRubricRefs(c Challenge, rubric []RubricItem) error {
	known := make(map[string]struct{}, len(rubric))
	for _, r := range rubric {
		known[r.ID] = struct{}{}
	}
	for _, e := range c.AnswerKey {
		if _, ok := known[e.RubricID]; !ok {
			return fmt.Errorf("challenge %q: answer_key references unknown rubric id %q", c.ChallengeID, e.RubricID)
		}
	}
	return nil
}

// RubricByID returns the rubric lookup table the picker and panels use.
func RubricByID(rubric []RubricItem) map[string]RubricItem {
	out := make(map[string]RubricItem, len(rubric))
	for _, r := range rubric {
		out[r.ID] = r
	}
	return out
}
