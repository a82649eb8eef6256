package battle

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness seam for dice rolls, narrative selection and odds simulation.
// *rand.Rand satisfies it; tests inject deterministic sequences.
type Source interface {
	// Intn returns a uniformly distributed integer in [0, n)
	Intn(n int) int
}

// lockedSource guards a *rand.Rand, which is not safe for concurrent use
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource creates a goroutine-safe seeded source.
// A zero seed derives the seed from the current time.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{r: rand.New(rand.NewSource(seed))} //nolint:gosec,G404
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}
