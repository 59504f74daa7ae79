package lattice

import "testing"
import "github.com/stretchr/testify/assert"

func TestIntFrequency(t *testing.T) {
	x := assert.New(t)
	var f Frequency = Int(2)
	x.Equal(Int(5), f.Add(Int(3)))
	x.Equal(Int(2), f.Add(f.Zero()))
	x.Equal(-1, f.Compare(Int(3)))
	x.Equal(0, f.Compare(Int(2)))
	x.Equal(1, f.Compare(Int(1)))
	x.Equal("2", f.String())
}

func TestWeightedFrequency(t *testing.T) {
	x := assert.New(t)
	var f Frequency = Weighted(1.5)
	x.Equal(Weighted(3.5), f.Add(Int(2)))
	x.Equal(Weighted(3.5), Int(2).Add(f))
	x.Equal(1, Int(2).Compare(f))
	x.Equal(-1, f.Compare(Int(2)))
	x.Equal(Weighted(0), f.Zero())
}

func TestSumAndPercent(t *testing.T) {
	x := assert.New(t)
	x.Equal(Int(6), Sum(Int(0), Int(1), Int(2), Int(3)))
	x.Equal(Int(0), Sum(Int(0)))
	x.Equal(Int(3), Percent(Int(10), 25))
	x.Equal(Int(5), Percent(Int(10), 50))
	x.Equal(Weighted(2.5), Percent(Weighted(10), 25))
}
