package question

import "math/rand/v2"

// Selector picks the next quiz question from a candidate pool.
type Selector struct {
	intn func(n int) int
}

// NewSelector returns a Selector drawing from intn, which must return a
// uniform value in [0, n). A nil intn uses math/rand/v2.
func NewSelector(intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{intn: intn}
}

// Pick excludes every question whose id is in seen and returns one of the
// rest uniformly at random, or nil when none remain.
func (s *Selector) Pick(pool []Question, seen []int) *Question {
	excluded := make(map[int]struct{}, len(seen))
	for _, id := range seen {
		excluded[id] = struct{}{}
	}

	remaining := make([]Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := excluded[q.ID]; ok {
			continue
		}
		remaining = append(remaining, q)
	}
	if len(remaining) == 0 {
		return nil
	}

	picked := remaining[s.intn(len(remaining))]
	return &picked
}
