package game

import "math/rand/v2"

// RNG abstracts random number generation so tests can supply fixed sequences.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// NewRNG returns a generator seeded with seed, or an auto-seeded one when seed is 0.
func NewRNG(seed int64) RNG {
	if seed == 0 {
		return stdRNG{}
	}
	return &seededRNG{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// stdRNG delegates to the auto-seeded math/rand/v2 source.
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

type seededRNG struct {
	r *rand.Rand
}

func (s *seededRNG) Intn(n int) int { return s.r.IntN(n) }
