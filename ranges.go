package hexutil

import (
	"fmt"
	"sort"
)

// AddressRange is a half-open span [Start, End) of written addresses. The
// bounds are widened to 64 bits so that a span ending at the top of the
// 32-bit address space can be expressed.
type AddressRange struct {
	Start uint64
	End   uint64
}

func NewAddressRange(start uint32, size int) AddressRange {
	return AddressRange{Start: uint64(start), End: uint64(start) + uint64(size)}
}

func (r AddressRange) Len() uint64 { return r.End - r.Start }

func (r AddressRange) String() string {
	return fmt.Sprintf("[0x%08X-0x%08X)", r.Start, r.End)
}

// touches reports whether r and o overlap or are adjacent.
func (r AddressRange) touches(o AddressRange) bool {
	return r.End >= o.Start && o.End >= r.Start
}

// merge widens r to cover o if the two touch.
func (r *AddressRange) merge(o AddressRange) bool {
	if !r.touches(o) {
		return false
	}
	r.Start = min(r.Start, o.Start)
	r.End = max(r.End, o.End)
	return true
}

type sortByStart []AddressRange

func (rs sortByStart) Len() int           { return len(rs) }
func (rs sortByStart) Swap(i, j int)      { rs[i], rs[j] = rs[j], rs[i] }
func (rs sortByStart) Less(i, j int) bool { return rs[i].Start < rs[j].Start }

// RangeTracker keeps the set of spans known to hold written bytes. Stored
// ranges never overlap or touch each other and are ordered by Start.
type RangeTracker struct {
	ranges []AddressRange
}

func NewRangeTracker() *RangeTracker {
	return &RangeTracker{}
}

// MergeOrInsert folds r into the tracked set. It returns true when r was
// merged into an existing range, false when it was added as a new one.
func (t *RangeTracker) MergeOrInsert(r AddressRange) bool {
	idx := -1
	for i := range t.ranges {
		if t.ranges[i].merge(r) {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.ranges = append(t.ranges, r)
		sort.Sort(sortByStart(t.ranges))
		return false
	}

	// the widened range may now reach its neighbours
	for i := 0; i < len(t.ranges); {
		if i != idx && t.ranges[idx].merge(t.ranges[i]) {
			t.ranges = append(t.ranges[:i], t.ranges[i+1:]...)
			if i < idx {
				idx--
			}
			i = 0
			continue
		}
		i++
	}
	sort.Sort(sortByStart(t.ranges))
	return true
}

// Ranges returns a copy of the tracked ranges in address order.
func (t *RangeTracker) Ranges() []AddressRange {
	out := make([]AddressRange, len(t.ranges))
	copy(out, t.ranges)
	return out
}

func (t *RangeTracker) Len() int { return len(t.ranges) }
