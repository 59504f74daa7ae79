package support

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/parsemis-sub001/types/digraph/subgraph"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Reduce picks a largest subset of pairwise non overlapping embeddings in
// each database graph. Embeddings of different graphs never conflict, so
// the graphs are solved independently. ignore, when not nil, marks
// database nodes which may be shared. The relative order of the input is
// kept.
func Reduce(embs []*subgraph.Embedding, ignore func(g int, n int32) bool) []*subgraph.Embedding {
	if len(embs) <= 1 {
		return embs
	}
	groups := hashtable.NewLinearHash()
	for i, emb := range embs {
		var group []int
		if groups.Has(types.Int(emb.Graph)) {
			v, _ := groups.Get(types.Int(emb.Graph))
			group = v.([]int)
		}
		groups.Put(types.Int(emb.Graph), append(group, i))
	}
	keep := make([]bool, len(embs))
	for k, v, next := groups.Iterate()(); next != nil; k, v, next = next() {
		gid := int(k.(types.Int))
		group := v.([]int)
		var skip func(int32) bool
		if ignore != nil {
			skip = func(n int32) bool { return ignore(gid, n) }
		}
		if len(group) == 1 || Disjoint(embs, group, skip) {
			for _, i := range group {
				keep[i] = true
			}
			continue
		}
		compat := Compatibility(embs, group, skip)
		clique := MaxClique(compat, nil)
		for i, ok := clique.NextSet(0); ok; i, ok = clique.NextSet(i + 1) {
			keep[group[compat.NodeLabel(compat.NodeAt(int32(i)))]] = true
		}
	}
	reduced := make([]*subgraph.Embedding, 0, len(embs))
	for i, emb := range embs {
		if keep[i] {
			reduced = append(reduced, emb)
		}
	}
	return reduced
}

// Disjoint tells whether no two embeddings of the group share a database
// node which is not ignored.
func Disjoint(embs []*subgraph.Embedding, group []int, ignore func(int32) bool) bool {
	seen := bitset.New(0)
	for _, i := range group {
		for _, n := range embs[i].Nodes {
			if n < 0 || (ignore != nil && ignore(n)) {
				continue
			}
			if seen.Test(uint(n)) {
				return false
			}
		}
		for _, n := range embs[i].Nodes {
			if n >= 0 {
				seen.Set(uint(n))
			}
		}
	}
	return true
}

// Compatibility builds the graph with one node per embedding of the group
// (labelled with its position in the group) and an undirected edge between
// every two embeddings which do not overlap.
func Compatibility(embs []*subgraph.Embedding, group []int, ignore func(int32) bool) *graph.Graph {
	c := graph.New(len(group), len(group)*(len(group)-1)/2)
	nodes := make([]graph.Node, len(group))
	for i := range group {
		nodes[i] = c.AddNode(i)
	}
	for i := range group {
		for j := i + 1; j < len(group); j++ {
			if !embs[group[i]].Overlaps(embs[group[j]], ignore) {
				c.AddEdge(nodes[i], nodes[j], 0, graph.Undirected)
			}
		}
	}
	return c
}
