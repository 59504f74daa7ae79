package lattice

import (
	"fmt"
	"math"
)

// Int counts occurrences. It is the frequency used when the database graphs
// carry no weights.
type Int int

// Weighted sums graph weights.
type Weighted float64

func (i Int) Add(o Frequency) Frequency {
	if j, ok := o.(Int); ok {
		return i + j
	}
	return Weighted(float64(i) + o.Float())
}

func (i Int) Compare(o Frequency) int {
	if j, ok := o.(Int); ok {
		if i < j {
			return -1
		} else if i > j {
			return 1
		}
		return 0
	}
	return compareFloats(float64(i), o.Float())
}

func (i Int) Zero() Frequency {
	return Int(0)
}

func (i Int) Float() float64 {
	return float64(i)
}

func (i Int) String() string {
	return fmt.Sprintf("%d", int(i))
}

func (w Weighted) Add(o Frequency) Frequency {
	return w + Weighted(o.Float())
}

func (w Weighted) Compare(o Frequency) int {
	return compareFloats(float64(w), o.Float())
}

func (w Weighted) Zero() Frequency {
	return Weighted(0)
}

func (w Weighted) Float() float64 {
	return float64(w)
}

func (w Weighted) String() string {
	return fmt.Sprintf("%g", float64(w))
}

func compareFloats(a, b float64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// Sum adds up the frequencies starting from zero.
func Sum(zero Frequency, fs ...Frequency) Frequency {
	total := zero
	for _, f := range fs {
		total = total.Add(f)
	}
	return total
}

// Percent is the smallest frequency of the same kind as total which is at
// least pct percent of total.
func Percent(total Frequency, pct float64) Frequency {
	x := total.Float() * pct / 100
	if _, ok := total.(Int); ok {
		return Int(math.Ceil(x - 1e-9))
	}
	return Weighted(x)
}
