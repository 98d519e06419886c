// internal/random/source.go
package random

import (
	"errors"
	"fmt"
	"math/rand"
)

// Names accepted by ByName.
const (
	NameOneThroughTen        = "1-10"
	NameOneThroughOneHundred = "1-100"
)

var (
	// ErrInvalidRange indicates a Range whose lower bound exceeds its upper bound.
	ErrInvalidRange = errors.New("range minimum must not exceed maximum")

	// ErrUnknownSource indicates ByName was given a name it does not know.
	ErrUnknownSource = errors.New("unknown random source")
)

// Source produces a random integer on demand. The range and distribution of
// the values are up to the implementation. Sources are not safe for
// concurrent use.
type Source interface {
	Random() int
}

// Func adapts a plain function into a Source.
type Func func() int

// Random calls f.
func (f Func) Random() int {
	return f()
}

// Range is a Source uniform over the closed interval [Min, Max].
type Range struct {
	Min int
	Max int
	rng *rand.Rand
}

// NewRange builds a Range seeded with seed. The same seed always yields the
// same stream of values.
func NewRange(min, max int, seed int64) (*Range, error) {
	if min > max {
		return nil, fmt.Errorf("new range [%d,%d]: %w", min, max, ErrInvalidRange)
	}
	return &Range{
		Min: min,
		Max: max,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Random returns a value in [Min, Max].
func (r *Range) Random() int {
	return r.Min + r.rng.Intn(r.Max-r.Min+1)
}

// OneThroughTen returns a Source uniform over [1, 10].
func OneThroughTen(seed int64) *Range {
	r, _ := NewRange(1, 10, seed)
	return r
}

// OneThroughOneHundred returns a Source uniform over [1, 100].
func OneThroughOneHundred(seed int64) *Range {
	r, _ := NewRange(1, 100, seed)
	return r
}

// ByName resolves one of the named sources (NameOneThroughTen,
// NameOneThroughOneHundred) seeded with seed.
func ByName(name string, seed int64) (Source, error) {
	switch name {
	case NameOneThroughTen:
		return OneThroughTen(seed), nil
	case NameOneThroughOneHundred:
		return OneThroughOneHundred(seed), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownSource)
	}
}

// Sequence replays a fixed list of values, wrapping around at the end.
// An empty Sequence always returns 0.
type Sequence struct {
	values []int
	pos    int
}

// NewSequence returns a Sequence over values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

// Random returns the next value of the sequence.
func (s *Sequence) Random() int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Calls reports how many values have been drawn so far.
func (s *Sequence) Calls() int {
	return s.pos
}

// Mod reduces v into [0, n) for any sign of v. n must be positive.
func Mod(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}
