package findings

import "sync/atomic"

// ToggleRadius is the marker hit distance in cells. A pointer-down within
// this Chebyshev distance of a finding's anchor removes the finding instead
// of opening the picker.
const ToggleRadius = 1

var idCounter atomic.Int64

// nextID mints ids unique for the process lifetime, so a stale marker click
// after a reset can never alias a finding created later, in this engine
// instance or any other.
func nextID() int64 {
	return idCounter.Add(1)
}

// Finding is one user-placed claim: a rubric issue anchored to a zone and
// the cell the user clicked.
type Finding struct {
	ID       int64
	RubricID string
	ZoneID   string
	X        int
	Y        int
}

// Ledger owns the findings for the currently loaded challenge. Slice order
// is creation order; the review matcher depends on it.
type Ledger struct {
	items []Finding
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Add(rubricID, zoneID string, x, y int) Finding {
	f := Finding{ID: nextID(), RubricID: rubricID, ZoneID: zoneID, X: x, Y: y}
	l.items = append(l.items, f)
	return f
}

// Remove deletes by id. A missing id is a no-op, never an error: stale
// marker clicks land here after challenge reloads.
func (l *Ledger) Remove(id int64) bool {
	for i, f := range l.items {
		if f.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Ledger) Clear() {
	l.items = nil
}

func (l *Ledger) Len() int {
	return len(l.items)
}

func (l *Ledger) All() []Finding {
	out := make([]Finding, len(l.items))
	copy(out, l.items)
	return out
}

// At returns the finding whose marker covers the point, newest first so
// stacked markers toggle the one placed last.
func (l *Ledger) At(x, y int) (Finding, bool) {
	for i := len(l.items) - 1; i >= 0; i-- {
		f := l.items[i]
		if abs(f.X-x) <= ToggleRadius && abs(f.Y-y) <= ToggleRadius {
			return f, true
		}
	}
	return Finding{}, false
}

// Claimed reports whether the zone already holds a finding for the rubric
// item. The picker shows such items as used rows.
func (l *Ledger) Claimed(zoneID, rubricID string) bool {
	for _, f := range l.items {
		if f.ZoneID == zoneID && f.RubricID == rubricID {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
