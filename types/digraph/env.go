package digraph

import (
	"github.com/timtadh/data-structures/set"
)

// Env is the state owned by one worker. Nothing in it is shared.
type Env struct {
	Thread int
	Search *Search
	Ints   *IntPool
	exts   *set.SortedSet // *Extension ordered by ExtKey
	err    error
}

// Fail records the first error a step hit while processing a node. The
// worker owning the env stops once it sees it.
func (env *Env) Fail(err error) {
	if env.err == nil {
		env.err = err
	}
}

func (env *Env) Err() error {
	return env.err
}

// IntPool recycles []int32 scratch maps. Every slice in the pool holds -1
// in every position, callers must restore that before Put.
type IntPool struct {
	free [][]int32
}

func NewIntPool() *IntPool {
	return &IntPool{free: make([][]int32, 0, 4)}
}

// Get returns a slice of length n filled with -1.
func (p *IntPool) Get(n int) []int32 {
	for i := len(p.free) - 1; i >= 0; i-- {
		if cap(p.free[i]) >= n {
			s := p.free[i][:n]
			p.free[i] = p.free[len(p.free)-1]
			p.free = p.free[:len(p.free)-1]
			return s
		}
	}
	s := make([]int32, n)
	for i := range s {
		s[i] = -1
	}
	return s
}

func (p *IntPool) Put(s []int32) {
	p.free = append(p.free, s[:cap(s)])
}
