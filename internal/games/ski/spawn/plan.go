package spawn

import (
	"sort"
)

// Plan is the distance-sorted spawn list for a run plus the set of entries
// already consumed. Entries are never removed or edited once added.
type Plan struct {
	entries   []Entry
	consumed  map[int]bool
	coveredTo float64
}

// NewPlan wraps entries planned up to coveredTo meters.
func NewPlan(entries []Entry, coveredTo float64) *Plan {
	p := &Plan{consumed: make(map[int]bool)}
	p.Extend(entries, coveredTo)
	return p
}

// Extend appends a forward chunk and records the new planned end.
func (p *Plan) Extend(more []Entry, coveredTo float64) {
	sorted := len(p.entries) == 0 || len(more) == 0 ||
		more[0].DistanceMeters >= p.entries[len(p.entries)-1].DistanceMeters
	p.entries = append(p.entries, more...)
	if !sorted {
		sort.SliceStable(p.entries, func(i, j int) bool {
			return p.entries[i].DistanceMeters < p.entries[j].DistanceMeters
		})
	}
	if coveredTo > p.coveredTo {
		p.coveredTo = coveredTo
	}
}

// End returns the distance up to which slots have been planned.
func (p *Plan) End() float64 {
	if p == nil {
		return 0
	}
	return p.coveredTo
}

// Len returns the number of planned entries.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// NextID returns the id the next planned chunk should start from.
func (p *Plan) NextID() int {
	if p == nil || len(p.entries) == 0 {
		return 1
	}
	maxID := 0
	for _, e := range p.entries {
		maxID = max(maxID, e.ID)
	}
	return maxID + 1
}

// Entries returns all entries. Callers must not modify the slice.
func (p *Plan) Entries() []Entry {
	if p == nil {
		return nil
	}
	return p.entries
}

// Window returns the entries with distance in [from, to], located by
// binary search. Beyond the planned range it is simply empty.
func (p *Plan) Window(from, to float64) []Entry {
	if p == nil || to < from {
		return nil
	}
	lo := sort.Search(len(p.entries), func(i int) bool {
		return p.entries[i].DistanceMeters >= from
	})
	hi := sort.Search(len(p.entries), func(i int) bool {
		return p.entries[i].DistanceMeters > to
	})
	return p.entries[lo:hi]
}

// Consume marks an entry used. It returns true only the first time.
func (p *Plan) Consume(id int) bool {
	if p == nil || p.consumed[id] {
		return false
	}
	p.consumed[id] = true
	return true
}

// Consumed reports whether an entry has been used.
func (p *Plan) Consumed(id int) bool {
	if p == nil {
		return false
	}
	return p.consumed[id]
}

// ConsumedCount returns how many entries have been used.
func (p *Plan) ConsumedCount() int {
	if p == nil {
		return 0
	}
	return len(p.consumed)
}
