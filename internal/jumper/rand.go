package jumper

import "math/rand"

// Rand is the seeded source every random decision of a session draws from.
// Sharing one source keeps a session reproducible from its seed.
type Rand struct {
	r *rand.Rand
}

// NewRand creates a source seeded with seed.
func NewRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Range returns a uniform integer in [min, max).
// An empty or inverted range yields min.
func (r *Rand) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.Intn(max-min)
}
