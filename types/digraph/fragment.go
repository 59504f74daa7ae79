package digraph

import (
	"fmt"
)

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/hashtable"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/parsemis-sub001/lattice"
	"github.com/timtadh/parsemis-sub001/types/digraph/subgraph"
	"github.com/timtadh/parsemis-sub001/types/digraph/support"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Fragment is a pattern together with its occurrences. Which occurrences
// are kept depends on the support semantics of the run: EmbeddingFragment
// keeps every embedding, GraphFragment only the set of graphs.
type Fragment interface {
	Pattern() *graph.Graph
	Frequency() lattice.Frequency
	Graphs() *bitset.BitSet
	Embeddings() []*subgraph.Embedding
	Add(emb *subgraph.Embedding)
	Finalize()
	Finalized() bool
	String() string
}

type EmbeddingFragment struct {
	pattern   *graph.Graph
	db        Database
	ignore    func(g int, n int32) bool
	embs      []*subgraph.Embedding
	seen      *hashtable.LinearHash
	reduced   []*subgraph.Embedding
	freq      lattice.Frequency
	final     []*subgraph.Embedding
	finalized bool
}

func NewEmbeddingFragment(pattern *graph.Graph, db Database, ignore func(g int, n int32) bool) *EmbeddingFragment {
	return &EmbeddingFragment{
		pattern: pattern,
		db:      db,
		ignore:  ignore,
		embs:    make([]*subgraph.Embedding, 0, 10),
		seen:    hashtable.NewLinearHash(),
	}
}

func (f *EmbeddingFragment) Pattern() *graph.Graph {
	return f.pattern
}

// Add records an embedding. Embeddings equal to one already recorded are
// ignored.
func (f *EmbeddingFragment) Add(emb *subgraph.Embedding) {
	if f.finalized {
		panic(errors.Errorf("cannot add %v to the finalized fragment %v", emb, f))
	}
	label := types.ByteSlice(emb.Serialize())
	if f.seen.Has(label) {
		return
	}
	if err := f.seen.Put(label, nil); err != nil {
		panic(err)
	}
	f.embs = append(f.embs, emb)
	f.reduced = nil
	f.freq = nil
}

func (f *EmbeddingFragment) Embeddings() []*subgraph.Embedding {
	return f.embs
}

// RawFrequency counts every embedding, overlapping or not.
func (f *EmbeddingFragment) RawFrequency() lattice.Frequency {
	total := f.db.Zero()
	for _, emb := range f.embs {
		total = total.Add(f.db.FrequencyOf(emb.Graph))
	}
	return total
}

// NonOverlapping is a largest set of embeddings which share no database
// node. It is computed on first use and kept until an embedding is added.
func (f *EmbeddingFragment) NonOverlapping() []*subgraph.Embedding {
	if f.reduced == nil {
		f.reduced = support.Reduce(f.embs, f.ignore)
	}
	return f.reduced
}

// Frequency is the frequency of the non overlapping embeddings.
func (f *EmbeddingFragment) Frequency() lattice.Frequency {
	if f.freq == nil {
		total := f.db.Zero()
		for _, emb := range f.NonOverlapping() {
			total = total.Add(f.db.FrequencyOf(emb.Graph))
		}
		f.freq = total
	}
	return f.freq
}

func (f *EmbeddingFragment) Graphs() *bitset.BitSet {
	graphs := bitset.New(uint(f.db.Len()))
	for _, emb := range f.embs {
		graphs.Set(uint(emb.Graph))
	}
	return graphs
}

// SetFinal fixes the embeddings reported for this fragment.
func (f *EmbeddingFragment) SetFinal(embs []*subgraph.Embedding) {
	f.final = embs
}

// Final is the list given to SetFinal or every embedding when SetFinal was
// never called.
func (f *EmbeddingFragment) Final() []*subgraph.Embedding {
	if f.final != nil {
		return f.final
	}
	return f.embs
}

// Finalize drops the data only needed while the fragment is extended.
func (f *EmbeddingFragment) Finalize() {
	if f.finalized {
		return
	}
	f.Frequency()
	for _, emb := range f.embs {
		emb.FreeUnusedInfo()
	}
	f.seen = nil
	f.finalized = true
}

func (f *EmbeddingFragment) Finalized() bool {
	return f.finalized
}

func (f *EmbeddingFragment) String() string {
	return fmt.Sprintf("<EmbeddingFragment %v embeddings %d>", f.pattern, len(f.embs))
}

type GraphFragment struct {
	pattern   *graph.Graph
	db        Database
	graphs    *bitset.BitSet
	freq      lattice.Frequency
	finalized bool
}

func NewGraphFragment(pattern *graph.Graph, db Database) *GraphFragment {
	return &GraphFragment{
		pattern: pattern,
		db:      db,
		graphs:  bitset.New(uint(db.Len())),
	}
}

func (f *GraphFragment) Pattern() *graph.Graph {
	return f.pattern
}

func (f *GraphFragment) AddGraph(g int) {
	if f.finalized {
		panic(errors.Errorf("cannot add graph %d to the finalized fragment %v", g, f))
	}
	if !f.graphs.Test(uint(g)) {
		f.graphs.Set(uint(g))
		f.freq = nil
	}
}

// Add only records the graph of the embedding.
func (f *GraphFragment) Add(emb *subgraph.Embedding) {
	f.AddGraph(emb.Graph)
}

func (f *GraphFragment) Embeddings() []*subgraph.Embedding {
	return nil
}

func (f *GraphFragment) Graphs() *bitset.BitSet {
	return f.graphs
}

func (f *GraphFragment) Frequency() lattice.Frequency {
	if f.freq == nil {
		total := f.db.Zero()
		for g, ok := f.graphs.NextSet(0); ok; g, ok = f.graphs.NextSet(g + 1) {
			total = total.Add(f.db.FrequencyOf(int(g)))
		}
		f.freq = total
	}
	return f.freq
}

func (f *GraphFragment) Finalize() {
	if f.finalized {
		return
	}
	f.Frequency()
	f.finalized = true
}

func (f *GraphFragment) Finalized() bool {
	return f.finalized
}

func (f *GraphFragment) String() string {
	return fmt.Sprintf("<GraphFragment %v graphs %d>", f.pattern, f.graphs.Count())
}
