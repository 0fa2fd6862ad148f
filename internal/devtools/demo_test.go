package devtools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"plotdojo/internal/content"
)

func TestResolveReviewPassStagesSolveAndCheck(t *testing.T) {
	m := NewManager()
	s := m.Resolve("review_pass")
	if s.Target != content.TypeCritique {
		t.Fatalf("expected critique target, got %q", s.Target)
	}
	if !s.Solve || !s.Check {
		t.Fatalf("expected solve+check, got %#v", s)
	}
	if s.SummaryOpen {
		t.Fatalf("review_pass must not open the summary")
	}
}

func TestResolvePickerOpen(t *testing.T) {
	m := NewManager()
	s := m.Resolve("picker_open")
	if !s.PickerOpen {
		t.Fatalf("expected picker to open, got %#v", s)
	}
	if s.Check {
		t.Fatalf("picker_open must not check")
	}
}

func TestResolveTrickPrefersEmptyKey(t *testing.T) {
	m := NewManager()
	s := m.Resolve("review_trick")
	if !s.Trick || !s.Check {
		t.Fatalf("expected trick+check, got %#v", s)
	}
	if s.Solve {
		t.Fatalf("trick scenario places no findings")
	}
}

func TestResolveFallsBackToSession(t *testing.T) {
	m := NewManager()
	s := m.Resolve("definitely-not-a-scenario")
	if s.Name != "session" {
		t.Fatalf("expected session fallback, got %q", s.Name)
	}
}

func TestScenarioNamesRoundTripThroughResolve(t *testing.T) {
	m := NewManager()
	for _, name := range ScenarioNames() {
		s := m.Resolve(name)
		if s.Name == "" {
			t.Fatalf("scenario %q resolved empty", name)
		}
	}
}

func TestSetStateWritesStateFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager()
	if err := m.SetState(context.Background(), dir, "summary", true); err != nil {
		t.Fatal(err)
	}
	body, err := os.ReadFile(filepath.Join(dir, "dev_state.json"))
	if err != nil {
		t.Fatal(err)
	}
	var payload struct {
		State    string `json:"state"`
		Rendered bool   `json:"rendered"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.State != "summary" || !payload.Rendered {
		t.Fatalf("unexpected payload %+v", payload)
	}
}
