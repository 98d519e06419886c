// internal/dice/dice.go
package dice

import (
	"errors"
	"fmt"

	"github.com/jason-s-yu/knockout/internal/random"
)

// ErrInvalidSides indicates a die was requested with zero or negative sides.
var ErrInvalidSides = errors.New("die must have at least one side")

// ErrMissingSource indicates a die was requested without a random source.
var ErrMissingSource = errors.New("die needs a random source")

// Die rolls values in [1, Sides] from an injected random.Source.
//
// A roll reduces the raw source value modulo the side count. When the span of
// the source is not a multiple of the side count (e.g. a 1-10 source behind a
// six-sided die) the lower faces come up slightly more often. That skew is
// accepted for this game and is not corrected with rejection sampling.
type Die struct {
	sides  int
	source random.Source
}

// New builds a die with the given number of sides drawing from src.
func New(sides int, src random.Source) (*Die, error) {
	if sides <= 0 {
		return nil, fmt.Errorf("new die with %d sides: %w", sides, ErrInvalidSides)
	}
	if src == nil {
		return nil, ErrMissingSource
	}
	return &Die{sides: sides, source: src}, nil
}

// Sides returns the number of faces on the die.
func (d *Die) Sides() int {
	return d.sides
}

// Roll returns a value in [1, Sides].
func (d *Die) Roll() int {
	return random.Mod(d.source.Random(), d.sides) + 1
}
