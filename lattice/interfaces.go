package lattice

import (
	"io"
)

// Input opens one input stream. The closer must be called once the reader
// is exhausted.
type Input func() (reader io.Reader, closer func())

// Frequency is the support of a pattern. Frequencies form a commutative
// monoid under Add with Zero as the identity and are totally ordered by
// Compare.
type Frequency interface {
	Add(Frequency) Frequency
	Compare(Frequency) int
	Zero() Frequency
	Float() float64
	String() string
}
