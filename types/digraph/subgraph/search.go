package subgraph

import (
	"github.com/timtadh/parsemis-sub001/types/graph"
)

type EmbIterator func() (*Embedding, EmbIterator)

// matchStep is one position in the order pattern nodes are matched in. The
// anchor is an already matched neighbor (NoNode starts a new component) and
// edge is the pattern edge joining them.
type matchStep struct {
	node   graph.Node
	anchor graph.Node
	edge   graph.Edge
}

type entry struct {
	nodes []int32
	k     int
}

func pop(stack []entry) (entry, []entry) {
	return stack[len(stack)-1], stack[0 : len(stack)-1]
}

// Search enumerates every embedding of pattern into db. Each distinct node
// mapping is produced once, so automorphic images of the same database
// subgraph are all returned.
func Search(pattern, db *graph.Graph, graphIdx int) (ei EmbIterator) {
	order := matchOrder(pattern)
	if len(order) == 0 {
		return func() (*Embedding, EmbIterator) { return nil, nil }
	}
	start := make([]int32, pattern.MaxNodeIndex())
	for i := range start {
		start[i] = -1
	}
	stack := make([]entry, 0, 10)
	stack = append(stack, entry{start, 0})
	ei = func() (*Embedding, EmbIterator) {
		for len(stack) > 0 {
			var i entry
			i, stack = pop(stack)
			if i.k >= len(order) {
				return New(graphIdx, i.nodes), ei
			}
			s := &order[i.k]
			for _, cand := range candidates(pattern, db, i.nodes, s) {
				if !feasible(pattern, db, i.nodes, s.node, cand) {
					continue
				}
				nodes := make([]int32, len(i.nodes))
				copy(nodes, i.nodes)
				nodes[s.node.Idx] = cand
				stack = append(stack, entry{nodes, i.k + 1})
			}
		}
		return nil, nil
	}
	return ei
}

// matchOrder walks the pattern breadth first so every node after the first
// of its component is matched next to an already matched node.
func matchOrder(pattern *graph.Graph) []matchStep {
	order := make([]matchStep, 0, pattern.NodeCount())
	placed := make([]bool, pattern.MaxNodeIndex())
	for root, next := pattern.Nodes()(); next != nil; root, next = next() {
		if placed[root.Idx] {
			continue
		}
		placed[root.Idx] = true
		order = append(order, matchStep{node: root, anchor: graph.NoNode, edge: graph.NoEdge})
		for q := len(order) - 1; q < len(order); q++ {
			u := order[q].node
			for _, eidx := range pattern.Adj(u) {
				e := pattern.EdgeAt(eidx)
				v := pattern.Other(e, u)
				if placed[v.Idx] {
					continue
				}
				placed[v.Idx] = true
				order = append(order, matchStep{node: v, anchor: u, edge: e})
			}
		}
	}
	return order
}

func candidates(pattern, db *graph.Graph, nodes []int32, s *matchStep) []int32 {
	label := pattern.NodeLabel(s.node)
	cands := make([]int32, 0, 4)
	if s.anchor == graph.NoNode {
		for n, next := db.Nodes()(); next != nil; n, next = next() {
			if db.NodeLabel(n) == label {
				cands = append(cands, n.Idx)
			}
		}
		return cands
	}
	dir := pattern.DirectionFrom(s.edge, s.anchor)
	elabel := pattern.EdgeLabel(s.edge)
	v := db.NodeAt(nodes[s.anchor.Idx])
	for _, eidx := range db.Adj(v) {
		e := db.EdgeAt(eidx)
		if db.EdgeLabel(e) != elabel || db.DirectionFrom(e, v) != dir {
			continue
		}
		w := db.Other(e, v)
		if db.NodeLabel(w) == label {
			cands = append(cands, w.Idx)
		}
	}
	return cands
}

// feasible checks injectivity and that every pattern edge between u and an
// already matched node exists in the database.
func feasible(pattern, db *graph.Graph, nodes []int32, u graph.Node, cand int32) bool {
	for _, n := range nodes {
		if n == cand {
			return false
		}
	}
	w := db.NodeAt(cand)
	for _, eidx := range pattern.Adj(u) {
		e := pattern.EdgeAt(eidx)
		o := pattern.Other(e, u)
		mapped := nodes[o.Idx]
		if o.Idx == u.Idx {
			mapped = cand
		} else if mapped < 0 {
			continue
		}
		dbe, has := db.EdgeBetween(w, db.NodeAt(mapped), pattern.DirectionFrom(e, u))
		if !has || db.EdgeLabel(dbe) != pattern.EdgeLabel(e) {
			return false
		}
	}
	return true
}
