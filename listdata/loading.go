package listdata

import "github.com/puzpuzpuz/xsync/v3"

// LoadingSet tracks which entities have a mutation of one kind in flight,
// so a row can disable the matching control while the backend confirms.
// Membership is counted: overlapping mutations on one entity keep it
// pending until the last one settles, and each settle releases exactly one
// count.
type LoadingSet struct {
	counts *xsync.MapOf[string, int]
}

// NewLoadingSet returns an empty set.
func NewLoadingSet() *LoadingSet {
	return &LoadingSet{counts: xsync.NewMapOf[string, int]()}
}

// Add marks one in-flight mutation for id.
func (s *LoadingSet) Add(id string) {
	s.counts.Compute(id, func(cur int, _ bool) (int, bool) {
		return cur + 1, false
	})
}

// Remove releases one in-flight mutation for id. The id stays pending
// while other mutations still hold it; removing an absent id is a no-op.
func (s *LoadingSet) Remove(id string) {
	s.counts.Compute(id, func(cur int, loaded bool) (int, bool) {
		if !loaded || cur <= 1 {
			return 0, true
		}
		return cur - 1, false
	})
}

// Contains reports whether id has at least one mutation in flight.
func (s *LoadingSet) Contains(id string) bool {
	_, ok := s.counts.Load(id)
	return ok
}

// Len returns how many entities are pending.
func (s *LoadingSet) Len() int {
	return s.counts.Size()
}
