package raptor

// MarkedSet is M_k: stops whose label improved last round and therefore
// must be scanned this round. present[] makes "insert if absent" O(1); the
// stack preserves insertion order for no particular reason other than
// determinism of iteration, which Phase 1/3 do not otherwise require.
type MarkedSet struct {
	present []bool
	stack   []int
}

// NewMarkedSet allocates a marked set over n dense stop indices, initially
// empty.
func NewMarkedSet(n int) *MarkedSet {
	return &MarkedSet{present: make([]bool, n)}
}

// Mark inserts a dense stop index if not already present.
func (m *MarkedSet) Mark(denseIdx int) {
	if m.present[denseIdx] {
		return
	}
	m.present[denseIdx] = true
	m.stack = append(m.stack, denseIdx)
}

// Drain empties the set and returns everything that was in it, for Phase 1
// (route collection), which consumes the previous round's marks in full.
func (m *MarkedSet) Drain() []int {
	out := m.stack
	for _, idx := range out {
		m.present[idx] = false
	}
	m.stack = nil
	return out
}

// Snapshot returns a copy of the currently marked stops without clearing
// them. Phase 3 (footpath relaxation) snapshots before relaxing so that
// targets relaxed during this same pass do not themselves trigger further
// relaxation within the round (single-hop-per-round policy); newly marked
// stops still accumulate in the live set for the next round's Drain.
func (m *MarkedSet) Snapshot() []int {
	out := make([]int, len(m.stack))
	copy(out, m.stack)
	return out
}

// Len reports how many stops are currently marked.
func (m *MarkedSet) Len() int { return len(m.stack) }

// Reset clears the set entirely, for reuse across independent queries.
func (m *MarkedSet) Reset() {
	for _, idx := range m.stack {
		m.present[idx] = false
	}
	m.stack = nil
}
