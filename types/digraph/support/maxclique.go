package support

import (
	"github.com/bits-and-blooms/bitset"
)

import (
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// MaxClique finds a clique of g with the greatest total weight. Edge
// directions and labels are ignored. When weight is nil every node weighs
// one, so the result is a maximum cardinality clique. The returned set
// holds node indices.
//
// The search is branch and bound. Candidates are greedily colored at every
// level and the sum of the heaviest node of each color class bounds what
// the remaining candidates can still add.
func MaxClique(g *graph.Graph, weight func(graph.Node) float64) *bitset.BitSet {
	size := uint(g.MaxNodeIndex())
	if weight == nil {
		weight = func(graph.Node) float64 { return 1 }
	}
	n := g.NodeCount()
	if n <= 1 || n*(n-1) == 2*g.EdgeCount() {
		all := bitset.New(size)
		for v, next := g.Nodes()(); next != nil; v, next = next() {
			all.Set(uint(v.Idx))
		}
		return all
	}
	m := &cliqueSearch{
		g:         g,
		neighbors: make([]*bitset.BitSet, size),
		weights:   make([]float64, size),
		best:      bitset.New(size),
		bestW:     -1,
	}
	candidates := bitset.New(size)
	for v, next := g.Nodes()(); next != nil; v, next = next() {
		adj := bitset.New(size)
		for _, eidx := range g.Adj(v) {
			o := g.Other(g.EdgeAt(eidx), v)
			if o.Idx != v.Idx {
				adj.Set(uint(o.Idx))
			}
		}
		m.neighbors[v.Idx] = adj
		m.weights[v.Idx] = weight(v)
		candidates.Set(uint(v.Idx))
	}
	m.expand(bitset.New(size), 0, candidates)
	return m.best
}

type cliqueSearch struct {
	g         *graph.Graph
	neighbors []*bitset.BitSet
	weights   []float64
	best      *bitset.BitSet
	bestW     float64
}

func (m *cliqueSearch) expand(clique *bitset.BitSet, w float64, candidates *bitset.BitSet) {
	if !candidates.Any() {
		if w > m.bestW {
			m.best = clique.Clone()
			m.bestW = w
		}
		return
	}
	order, bounds := m.color(candidates)
	for i := len(order) - 1; i >= 0; i-- {
		if w+bounds[i] <= m.bestW {
			return
		}
		v := order[i]
		clique.Set(v)
		m.expand(clique, w+m.weights[v], candidates.Intersection(m.neighbors[v]))
		clique.Clear(v)
		candidates.Clear(v)
	}
}

// color partitions the candidates into independent sets. order lists the
// candidates class by class and bounds[i] is the summed class maxima of
// every class up to and including the class of order[i].
func (m *cliqueSearch) color(candidates *bitset.BitSet) (order []uint, bounds []float64) {
	uncolored := candidates.Clone()
	order = make([]uint, 0, candidates.Count())
	bounds = make([]float64, 0, candidates.Count())
	total := 0.0
	for uncolored.Any() {
		class := uncolored.Clone()
		start := len(order)
		max := 0.0
		for v, ok := class.NextSet(0); ok; v, ok = class.NextSet(v + 1) {
			order = append(order, v)
			uncolored.Clear(v)
			class.InPlaceDifference(m.neighbors[v])
			if m.weights[v] > max {
				max = m.weights[v]
			}
		}
		total += max
		for i := start; i < len(order); i++ {
			bounds = append(bounds, total)
		}
	}
	return order, bounds
}
