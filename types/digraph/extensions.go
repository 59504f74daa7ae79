package digraph

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/parsemis-sub001/types/digraph/subgraph"
)

// extend finds every growth of n by one edge (and possibly one node) which
// occurs in the database. Growths reached from several embeddings are
// merged. The result is sorted by ExtKey.
func (env *Env) extend(n *Node) []*Extension {
	s := env.Search
	if s.Mode.Has(EmbeddingBased) {
		for _, emb := range n.Fragment.Embeddings() {
			env.grow(n, emb)
		}
	} else {
		graphs := n.Fragment.Graphs()
		for g, ok := graphs.NextSet(0); ok; g, ok = graphs.NextSet(g + 1) {
			ei := subgraph.Search(n.Pattern(), s.DB.Graph(int(g)), int(g))
			for emb, next := ei(); next != nil; emb, next = next() {
				env.grow(n, emb)
			}
		}
	}
	exts := make([]*Extension, 0, env.exts.Size())
	for i, next := env.exts.Items()(); next != nil; i, next = next() {
		exts = append(exts, i.(*Extension))
	}
	env.exts.Clear()
	s.Counters.Add(&s.Counters.Extensions, len(exts))
	return exts
}

func (env *Env) grow(n *Node, emb *subgraph.Embedding) {
	s := env.Search
	pattern := n.Pattern()
	G := s.DB.Graph(emb.Graph)
	rev := env.Ints.Get(G.MaxNodeIndex())
	for u, v := range emb.Nodes {
		if v >= 0 {
			rev[v] = int32(u)
		}
	}
	for u, next := pattern.Nodes()(); next != nil; u, next = next() {
		v := G.NodeAt(emb.Nodes[u.Idx])
		for _, eidx := range G.Adj(v) {
			e := G.EdgeAt(eidx)
			el := G.EdgeLabel(e)
			if !s.DB.FrequentEdge(el) {
				continue
			}
			w := G.Other(e, v)
			if w.Idx == v.Idx {
				continue
			}
			dir := G.DirectionFrom(e, v)
			if up := rev[w.Idx]; up < 0 {
				nl := G.NodeLabel(w)
				if !s.DB.FrequentNode(nl) {
					continue
				}
				key := ExtKey{
					Kind:      InsertNode,
					From:      u.Idx,
					To:        int32(pattern.MaxNodeIndex()),
					EdgeLabel: el,
					Dir:       dir,
					NodeLabel: nl,
				}
				env.add(n, key, emb.Extend(w.Idx))
			} else if u.Idx < up {
				if _, has := pattern.EdgeBetween(u, pattern.NodeAt(up), dir); has {
					continue
				}
				key := ExtKey{
					Kind:      InsertEdge,
					From:      u.Idx,
					To:        up,
					EdgeLabel: el,
					Dir:       dir,
					NodeLabel: -1,
				}
				env.add(n, key, subgraph.New(emb.Graph, emb.Nodes))
			}
		}
	}
	for _, v := range emb.Nodes {
		if v >= 0 {
			rev[v] = -1
		}
	}
	env.Ints.Put(rev)
}

func (env *Env) add(n *Node, key ExtKey, emb *subgraph.Embedding) {
	var ext *Extension
	i, has, err := env.exts.Find(key)
	if err == nil && has {
		var item types.Hashable
		item, err = env.exts.Get(i)
		if err == nil {
			ext = item.(*Extension)
		}
	} else if err == nil {
		ext = &Extension{
			ExtKey: key,
			Child:  env.Search.NewFragment(key.Apply(n.Pattern())),
		}
		err = env.exts.Add(ext)
	}
	if err != nil {
		env.Fail(errors.Errorf("could not add extension %v: %v", key, err))
		return
	}
	ext.Child.Add(emb)
	if env.Search.Mode.Has(EmbeddingBased) {
		env.Search.Counters.Inc(&env.Search.Counters.Embeddings)
	}
}
