package chain

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io"
	"strings"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/lattice"
	"github.com/timtadh/parsemis-sub001/types/digraph"
	"github.com/timtadh/parsemis-sub001/types/digraph/subgraph"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

const triangles = `
t # g0
v 0 A
v 1 B
v 2 C
e 0 1 x
e 1 2 y
e 2 0 z
t # g1
v 0 A
v 1 B
v 2 C
v 3 D
e 0 1 x
e 1 2 y
e 2 0 z
e 2 3 w
`

func search(t *testing.T, conf *config.Config, text string) *digraph.Search {
	input := func() (io.Reader, func()) {
		return strings.NewReader(text), func() {}
	}
	ds, err := digraph.NewLgLoader(conf).Load(input)
	if err != nil {
		t.Fatal(err)
	}
	s, err := digraph.NewSearch(conf, ds)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// walk is a serial depth first traversal returning the reported nodes.
func walk(t *testing.T, s *digraph.Search) []*digraph.Node {
	c := Build(s)
	env := s.NewEnv(0)
	stack := s.Roots()
	reported := make([]*digraph.Node, 0, 10)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		exts := c.Process(env, n)
		if !n.Discarded() {
			reported = append(reported, n)
		}
		for _, ext := range exts {
			stack = append(stack, ext.Materialize(n, env))
		}
		n.FinalizeIt()
	}
	if env.Err() != nil {
		t.Fatal(env.Err())
	}
	return reported
}

func codes(nodes []*digraph.Node) map[string]bool {
	seen := make(map[string]bool)
	for _, n := range nodes {
		seen[string(n.Code())] = true
	}
	return seen
}

func TestBuild(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	x.Equal(7, len(Build(s).Steps))
	conf := config.Default()
	conf.Closed = true
	conf.EmbeddingBased = true
	conf.TreesOnly = true
	conf.SingleRooted = true
	c := Build(search(t, conf, triangles))
	x.Equal(11, len(c.Steps))
	x.IsType(Extend{}, c.Steps[0])
	x.IsType(MaxClique{}, c.Steps[len(c.Steps)-1])
}

func TestTwoTriangles(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	nodes := walk(t, s)
	x.Equal(10, len(nodes))
	x.Equal(10, len(codes(nodes)))
	sizes := make(map[int]int)
	for _, n := range nodes {
		x.Equal(lattice.Int(2), n.Frequency())
		sizes[n.Pattern().EdgeCount()]++
	}
	x.Equal(map[int]int{0: 3, 1: 3, 2: 3, 3: 1}, sizes)
}

const sameLabelTriangles = `
t # g0
v 0 A
v 1 A
v 2 A
e 0 1 x
e 1 2 x
e 2 0 x
t # g1
v 0 A
v 1 A
v 2 A
e 0 1 x
e 1 2 x
e 2 0 x
`

func TestSameLabelTriangles(t *testing.T) {
	x := assert.New(t)
	for _, directed := range []bool{true, false} {
		conf := config.Default()
		conf.Directed = directed
		nodes := walk(t, search(t, conf, sameLabelTriangles))
		x.Equal(4, len(nodes), "directed %v", directed)
		x.Equal(4, len(codes(nodes)))
		sizes := make(map[int]int)
		for _, n := range nodes {
			x.Equal(lattice.Int(2), n.Frequency())
			x.True(n.Pattern().NodeCount() <= 3)
			sizes[n.Pattern().EdgeCount()]++
		}
		x.Equal(map[int]int{0: 1, 1: 1, 2: 1, 3: 1}, sizes)
	}
}

func TestNodeBounds(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.MinNodes = 2
	conf.MaxNodes = 2
	nodes := walk(t, search(t, conf, triangles))
	x.Equal(3, len(nodes))
	for _, n := range nodes {
		x.Equal(2, n.Pattern().NodeCount())
		x.Equal(1, n.Pattern().EdgeCount())
	}
}

func TestEdgeBounds(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.MinEdges = 2
	conf.MaxEdges = 2
	nodes := walk(t, search(t, conf, triangles))
	x.Equal(3, len(nodes))
	for _, n := range nodes {
		x.Equal(2, n.Pattern().EdgeCount())
	}
}

func TestShapes(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.PathsOnly = true
	x.Equal(9, len(walk(t, search(t, conf, triangles))))
	conf = config.Default()
	conf.TreesOnly = true
	x.Equal(9, len(walk(t, search(t, conf, triangles))))
}

func TestPathsSkipInteriorNodes(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Directed = false
	conf.Support = 1
	conf.PathsOnly = true
	s := search(t, conf, "t # star\nv 0 H\nv 1 L\nv 2 L\nv 3 L\ne 0 1 x\ne 0 2 x\ne 0 3 x\n")
	for _, n := range walk(t, s) {
		for u, next := n.Pattern().Nodes()(); next != nil; u, next = next() {
			x.True(n.Pattern().Degree(u) <= 2)
		}
	}
}

func TestClosed(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Closed = true
	nodes := walk(t, search(t, conf, triangles))
	x.Equal(1, len(nodes))
	x.Equal(3, nodes[0].Pattern().EdgeCount())
}

func TestClosedIgnoresSizeBounds(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Closed = true
	conf.MaxNodes = 2
	x.Equal(0, len(walk(t, search(t, conf, triangles))))
	conf = config.Default()
	conf.Closed = true
	conf.MaxEdges = 1
	x.Equal(0, len(walk(t, search(t, conf, triangles))))

	conf = config.Default()
	conf.Closed = true
	conf.MaxNodes = 2
	text := "t # g0\nv 0 A\nv 1 B\nv 2 C\ne 0 1 x\ne 1 2 y\nt # g1\nv 0 A\nv 1 B\ne 0 1 x\n"
	nodes := walk(t, search(t, conf, text))
	x.Equal(1, len(nodes))
	x.Equal(1, nodes[0].Pattern().EdgeCount())
	x.Equal(lattice.Int(2), nodes[0].Frequency())
}

func TestSingleRooted(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.SingleRooted = true
	nodes := walk(t, search(t, conf, triangles))
	x.Equal(9, len(nodes))
	for _, n := range nodes {
		x.Equal(1, len(graph.Roots(n.Pattern())))
	}
}

func TestMaxSupportHidesNodes(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Support = 1
	conf.MaxSupport = 1
	nodes := walk(t, search(t, conf, triangles))
	for _, n := range nodes {
		x.Equal(lattice.Int(1), n.Frequency())
	}
	// D and the seven patterns with the w edge only occur in g1
	x.Equal(8, len(nodes))
}

func TestFrequencyStopsInfrequentNode(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	d, _ := s.DB.NodeLabels().Lookup("D")
	pattern := graph.New(1, 0)
	pattern.AddNode(d)
	f := s.NewFragment(pattern)
	f.Add(subgraph.New(1, []int32{3}))
	n := digraph.NewRoot(f)
	exts, more := Frequency{}.Apply(s.NewEnv(0), n, nil)
	x.False(more)
	x.Nil(exts)
	x.True(n.Discarded())
	x.Equal(int64(1), s.Counters.Get(&s.Counters.Infrequent))
}

func TestDuplicateDropsRepeats(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	env := s.NewEnv(0)
	root := s.Roots()[0]
	all, _ := Extend{}.Apply(env, root, nil)
	x.True(len(all) > 0)
	again := append([]*digraph.Extension(nil), all...)
	kept, more := Duplicate{}.Apply(env, root, all)
	x.True(more)
	x.Equal(len(again), len(kept))
	kept, _ = Duplicate{}.Apply(env, root, again)
	x.Equal(0, len(kept))
	x.Equal(int64(len(again)), s.Counters.Get(&s.Counters.Duplicates))
}

func TestCanonicalKeepsOneParent(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	env := s.NewEnv(0)
	kept := 0
	for _, root := range s.Roots() {
		exts, _ := Extend{}.Apply(env, root, nil)
		exts, _ = Canonical{}.Apply(env, root, exts)
		kept += len(exts)
	}
	x.Equal(3, kept)
	x.Equal(int64(3), s.Counters.Get(&s.Counters.NonCanonical))
}

func TestEmbeddingBasedOverlap(t *testing.T) {
	x := assert.New(t)
	text := "t # g\nv 0 A\nv 1 B\nv 2 A\ne 0 1 x\ne 1 2 x\n"
	conf := config.Default()
	conf.Directed = false
	conf.EmbeddingBased = true
	conf.Support = 2
	nodes := walk(t, search(t, conf, text))
	x.Equal(1, len(nodes))
	x.Equal(1, nodes[0].Pattern().NodeCount())
	x.Equal(lattice.Int(2), nodes[0].Frequency())

	conf.Support = 1
	nodes = walk(t, search(t, conf, text))
	x.Equal(4, len(nodes))
	for _, n := range nodes {
		if n.Pattern().EdgeCount() > 0 {
			x.Equal(lattice.Int(1), n.Frequency())
			f := n.Fragment.(*digraph.EmbeddingFragment)
			x.Equal(1, len(f.Final()))
			x.Equal(2, len(f.Embeddings()))
		}
	}
}
