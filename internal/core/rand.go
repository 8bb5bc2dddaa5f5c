package core

import "math/rand"

// Random is the single randomness source used by the simulation.
// *rand.Rand satisfies it; tests inject fixed sequences.
type Random interface {
	Float64() float64
}

// NewRandom returns a seeded pseudo-random source.
func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}

// FixedRandom always returns the same value. 0.5 makes every symmetric
// jitter term exactly zero.
type FixedRandom float64

// Float64 returns the fixed value.
func (f FixedRandom) Float64() float64 {
	return float64(f)
}

// SequenceRandom cycles through a fixed list of values.
type SequenceRandom struct {
	Values []float64
	pos    int
}

// Float64 returns the next value in the sequence, wrapping around.
func (s *SequenceRandom) Float64() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

// Jitter returns a symmetric random offset in [-amplitude/2, amplitude/2).
func Jitter(r Random, amplitude float64) float64 {
	return (r.Float64() - 0.5) * amplitude
}
