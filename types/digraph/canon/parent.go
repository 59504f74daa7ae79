package canon

import (
	"bytes"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// CanonicalParent is the unique pattern every pattern is grown from. When
// g has an edge which is not a bridge the parent drops the one whose
// endpoints have the greatest canonical positions. Otherwise g is a tree
// and the parent drops the leaf with the greatest canonical position. A
// single node has no parent (nil).
func CanonicalParent(g *graph.Graph, form *Form) *graph.Graph {
	if g.NodeCount() <= 1 {
		return nil
	}
	found := false
	var best graph.Edge
	var bestKey []int
	for e, next := g.Edges()(); next != nil; e, next = next() {
		if !graph.ConnectedWithout(g, e) {
			continue
		}
		key := edgeKey(g, form, e)
		if !found || compareInts(key, bestKey) > 0 {
			found = true
			best = e
			bestKey = key
		}
	}
	p := g.Clone()
	if found {
		p.RemoveEdge(best)
		return p
	}
	for pos := len(form.Order) - 1; pos >= 0; pos-- {
		n := form.Order[pos]
		if g.Degree(n) == 1 {
			p.RemoveNode(n)
			return p
		}
	}
	panic(errors.Errorf("pattern %v has no removable edge or leaf", g))
}

func edgeKey(g *graph.Graph, form *Form, e graph.Edge) []int {
	src, targ := g.Endpoints(e)
	ps, pt := form.Pos[src.Idx], form.Pos[targ.Idx]
	hi, lo := ps, pt
	if pt > ps {
		hi, lo = pt, ps
	}
	dir := 0
	if g.Directed(e) {
		if ps == hi {
			dir = 1
		} else {
			dir = 2
		}
	}
	return []int{hi, lo, dir, g.EdgeLabel(e)}
}

// IsCanonical reports whether parentCode is the code of the canonical
// parent of child. It also returns the canonical form of child.
func IsCanonical(parentCode []byte, child *graph.Graph) (bool, *Form) {
	form := Canonize(child)
	p := CanonicalParent(child, form)
	if p == nil {
		return parentCode == nil, form
	}
	return bytes.Equal(Code(p), parentCode), form
}
