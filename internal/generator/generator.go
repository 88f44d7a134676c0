package generator

// DefaultRevealProbability hides roughly half the pieces: each piece is
// revealed iff an independent uniform draw exceeds the threshold.
const DefaultRevealProbability = 0.5

// RandomGenerator fills the grid with uniformly random shapes and an
// independent per-piece reveal flip. There is no solvability
// constraint: this is a random-fill puzzle, not a constraint-solved
// one.
type RandomGenerator struct {
	RevealProbability float64
}

// NewRandom returns a generator with the default reveal probability.
func NewRandom() *RandomGenerator {
	return &RandomGenerator{RevealProbability: DefaultRevealProbability}
}

// Note: the Generate method lives in random.go.
