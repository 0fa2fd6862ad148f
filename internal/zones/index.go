package zones

// Index answers point hit-tests over a fixed zone list. The list is
// computed fresh on every challenge load and after every resize; an Index
// is never carried across either.
type Index struct {
	zones []Zone
}

func NewIndex(list []Zone) *Index {
	out := make([]Zone, len(list))
	copy(out, list)
	return &Index{zones: out}
}

func (ix *Index) Len() int {
	return len(ix.zones)
}

func (ix *Index) Zones() []Zone {
	out := make([]Zone, len(ix.zones))
	copy(out, ix.zones)
	return out
}

func (ix *Index) ByID(id string) (Zone, bool) {
	for _, z := range ix.zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// HitTest returns the zone containing the point. When zones overlap the
// smallest area wins, so nested regions resolve to the most specific one;
// equal areas resolve to the zone declared first.
func (ix *Index) HitTest(x, y int) (Zone, bool) {
	best := -1
	for i, z := range ix.zones {
		if !z.Rect.Contains(x, y) {
			continue
		}
		if best < 0 || z.Rect.Area() < ix.zones[best].Rect.Area() {
			best = i
		}
	}
	if best < 0 {
		return Zone{}, false
	}
	return ix.zones[best], true
}
