package vision

// HashSet accumulates page fingerprints for a single document run. It is
// scoped to one run and discarded afterwards; the fingerprint list only
// grows. It is not safe for concurrent writers — callers must keep the
// filter step single-threaded or guard it externally.
type HashSet struct {
	fingerprints []Fingerprint
}

// NewHashSet creates an empty run-scoped fingerprint set.
func NewHashSet() *HashSet {
	return &HashSet{fingerprints: make([]Fingerprint, 0)}
}

// Observe checks f against every fingerprint seen so far in the run. If a
// near-duplicate exists it returns true; otherwise it records f for future
// pages and returns false. The scan is linear — documents are bounded in
// page count, so no index is warranted.
func (s *HashSet) Observe(f Fingerprint) bool {
	for _, seen := range s.fingerprints {
		if Duplicates(seen, f) {
			return true
		}
	}
	s.fingerprints = append(s.fingerprints, f)
	return false
}

// Len returns the number of distinct fingerprints recorded.
func (s *HashSet) Len() int {
	return len(s.fingerprints)
}
