package progress

// Tracker is the session-scoped completed set: challenge indices on which
// check-answers has fired. It lives for the engine instance and is never
// reset by challenge navigation.
type Tracker struct {
	completed map[int]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{completed: map[int]struct{}{}}
}

// MarkCompleted records a checked challenge. Completion is sticky and
// independent of score.
func (t *Tracker) MarkCompleted(index int) {
	t.completed[index] = struct{}{}
}

func (t *Tracker) Completed(index int) bool {
	_, ok := t.completed[index]
	return ok
}

func (t *Tracker) Count() int {
	return len(t.completed)
}
