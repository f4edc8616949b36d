package policy

import "math/rand"

// RNG is the deterministic seeded source backing fairness-window and
// top-move-variety tie-breaks. spec.md §6 requires "same seed + same state
// ⇒ same move", which rules out the global math/rand source (shared,
// unseeded-by-caller); an explicit rand.New(rand.NewSource(seed)) is the
// plain stdlib answer, and nothing in the corpus adds a library on top of
// it for this.
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a fresh RNG. seed 0 is a valid, deterministic seed like any
// other — callers wanting nondeterminism must supply a seed themselves.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform value in [0, n).
func (g *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.Intn(n)
}
