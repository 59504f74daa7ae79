// Package canon computes canonical codes for patterns. Two patterns get the
// same code exactly when they are isomorphic (labels and edge directions
// included). Codes are found by partition refinement followed by a search
// over individualizations of the remaining ambiguous cells, keeping the
// lexicographically least adjacency signature.
package canon

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

import (
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Form is the canonical form of a pattern. Order lists the nodes by
// canonical position and Pos maps a node index back to its position (-1
// for unused slots).
type Form struct {
	Code  []byte
	Order []graph.Node
	Pos   []int
}

func (f *Form) String() string {
	return fmt.Sprintf("<Form %x>", f.Code)
}

// Canonize returns the canonical form of g. The result is cached on the
// graph until g changes and must not be modified.
func Canonize(g *graph.Graph) *Form {
	return g.Cached("canon.form", func() interface{} {
		return canonize(g)
	}).(*Form)
}

func Code(g *graph.Graph) []byte {
	return Canonize(g).Code
}

func canonize(g *graph.Graph) *Form {
	m := NewMatrix(g)
	c := &canonizer{m: m}
	c.search(nil)
	f := &Form{
		Code:  c.best,
		Order: make([]graph.Node, len(c.order)),
		Pos:   make([]int, g.MaxNodeIndex()),
	}
	for i := range f.Pos {
		f.Pos[i] = -1
	}
	for p, v := range c.order {
		n := m.Nodes[v]
		f.Order[p] = n
		f.Pos[n.Idx] = p
	}
	return f
}

type canonizer struct {
	m     *Matrix
	best  []byte
	order []int
}

func (c *canonizer) search(colors []int) {
	colors = Refine(c.m, colors)
	cell := firstCell(colors)
	if cell == nil {
		order := make([]int, len(colors))
		for v, col := range colors {
			order[col] = v
		}
		code := c.m.Code(order)
		if c.best == nil || bytes.Compare(code, c.best) < 0 {
			c.best = code
			c.order = order
		}
		return
	}
	tried := make([]int, 0, len(cell))
	for _, v := range cell {
		if c.twinOfAny(v, tried) {
			continue
		}
		tried = append(tried, v)
		c.search(Individualize(colors, v))
	}
}

func (c *canonizer) twinOfAny(v int, tried []int) bool {
	for _, u := range tried {
		if c.m.Twins(u, v) {
			return true
		}
	}
	return false
}

// Code is the adjacency signature of the matrix read in the given order:
// node and edge counts, then per position the node label, its self loop
// and for every earlier position the out, in and undirected edge labels.
func (m *Matrix) Code(order []int) []byte {
	n := len(order)
	code := make([]byte, 4*(2+2*n+3*n*(n-1)/2))
	i := 0
	put := func(x int) {
		binary.BigEndian.PutUint32(code[i:i+4], uint32(x))
		i += 4
	}
	put(n)
	put(m.Edges)
	for p, v := range order {
		put(m.Labels[v])
		put(int(m.Dir[v][v]))
		for q := 0; q < p; q++ {
			u := order[q]
			put(int(m.Dir[v][u]))
			put(int(m.Dir[u][v]))
			put(int(m.Und[v][u]))
		}
	}
	return code
}
