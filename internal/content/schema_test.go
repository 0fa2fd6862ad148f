package content

import "testing"

func validPack() Pack {
	return Pack{
		Kind:          PackKind,
		SchemaVersion: 1,
		PackID:        "plot-critique-101",
		Title:         "Plot Critique",
		Version:       "0.1.0",
		Rubric: []RubricItem{
			{ID: "missing-x-label", Category: CategoryLabels, ShortName: "X axis label"},
		},
	}
}

func validCritique() Challenge {
	return Challenge{
		Kind:          ChallengeKind,
		SchemaVersion: 1,
		ChallengeID:   "warmup-labels",
		Title:         "Warm-up",
		Difficulty:    DifficultyEasy,
		Type:          TypeCritique,
		Figure:        FigureSpec{Kind: "depth-step"},
		Hints:         []string{"Look at the axes."},
		AnswerKey: []AnswerEntry{
			{RubricID: "missing-x-label", ZoneID: "x-axis", ExplanationMD: "The x axis has no label."},
		},
	}
}

func TestPackValidateRejectsUnsupportedSchemaVersion(t *testing.T) {
	p := validPack()
	p.SchemaVersion = SupportedSchemaVersion + 1
	if err := p.Validate(); err == nil {
		t.Fatalf("expected unsupported schema version error")
	}
}

func TestPackValidateRejectsBadRubricCategory(t *testing.T) {
	p := validPack()
	p.Rubric[0].Category = "vibes"
	if err := p.Validate(); err == nil {
		t.Fatalf("expected invalid category error")
	}
}

func TestPackValidateRejectsDuplicateRubricID(t *testing.T) {
	p := validPack()
	p.Rubric = append(p.Rubric, p.Rubric[0])
	if err := p.Validate(); err == nil {
		t.Fatalf("expected duplicate rubric id error")
	}
}

func TestPackValidateRejectsEmptyRubric(t *testing.T) {
	p := validPack()
	p.Rubric = nil
	if err := p.Validate(); err == nil {
		t.Fatalf("expected empty rubric error")
	}
}

func TestChallengeValidateAcceptsCritique(t *testing.T) {
	if err := validCritique().Validate(); err != nil {
		t.Fatalf("expected valid critique, got %v", err)
	}
}

func TestChallengeValidateRequiresHintsList(t *testing.T) {
	c := validCritique()
	c.Hints = nil
	if err := c.Validate(); err == nil {
		t.Fatalf("expected missing hints error")
	}
}

func TestChallengeValidateAcceptsEmptyHintsList(t *testing.T) {
	c := validCritique()
	c.Hints = []string{}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected empty hints list to be valid, got %v", err)
	}
}

func TestChallengeValidateRequiresAnswerKey(t *testing.T) {
	c := validCritique()
	c.AnswerKey = nil
	if err := c.Validate(); err == nil {
		t.Fatalf("expected missing answer key error")
	}
}

func TestChallengeValidateAcceptsEmptyAnswerKey(t *testing.T) {
	c := validCritique()
	c.AnswerKey = []AnswerEntry{}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected empty answer key to be valid, got %v", err)
	}
}

func TestChallengeValidateRequiresTutorialSteps(t *testing.T) {
	c := validCritique()
	c.Type = TypeTutorial
	c.TutorialSteps = nil
	if err := c.Validate(); err == nil {
		t.Fatalf("expected missing tutorial steps error")
	}
}

func TestChallengeValidateRejectsBadDifficulty(t *testing.T) {
	c := validCritique()
	c.Difficulty = "brutal"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected invalid difficulty error")
	}
}

func TestChallengeValidateRequiresFigureKind(t *testing.T) {
	c := validCritique()
	c.Figure.Kind = ""
	if err := c.Validate(); err == nil {
		t.Fatalf("expected missing figure kind error")
	}
}

func TestValidateRubricRefsCatchesUnknownID(t *testing.T) {
	c := validCritique()
	c.AnswerKey[0].RubricID = "not-in-rubric"
	err := ValidateRubricRefs(c, validPack().Rubric)
	if err == nil {
		t.Fatalf("expected unknown rubric id error")
	}
}

func TestRubricByID(t *testing.T) {
	m := RubricByID(validPack().Rubric)
	if _, ok := m["missing-x-label"]; !ok {
		t.Fatalf("expected rubric item in lookup table")
	}
}
