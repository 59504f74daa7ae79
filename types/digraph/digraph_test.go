package digraph

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"bytes"
	"io"
	"strings"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/lattice"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

const triangles = `
# two copies of a directed triangle
t # g0
v 0 A
v 1 B
v 2 C
e 0 1 x
e 1 2 y
e 2 0 z
t # g1
v 10 A
v 11 B
v 12 C
v 13 D
e 10 11 x
e 11 12 y
e 12 10 z
e 12 13 w
`

func input(text string) lattice.Input {
	return func() (io.Reader, func()) {
		return strings.NewReader(text), func() {}
	}
}

func load(t *testing.T, conf *config.Config, text string) *Dataset {
	ds, err := NewLgLoader(conf).Load(input(text))
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func search(t *testing.T, conf *config.Config, text string) *Search {
	s, err := NewSearch(conf, load(t, conf, text))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func rootWithLabel(s *Search, label string) *Node {
	color, _ := s.DB.NodeLabels().Lookup(label)
	for _, r := range s.Roots() {
		if r.Pattern().NodeLabel(r.Pattern().NodeAt(0)) == color {
			return r
		}
	}
	return nil
}

func TestLgLoad(t *testing.T) {
	x := assert.New(t)
	ds := load(t, config.Default(), triangles)
	x.Equal(2, ds.Len())
	x.Equal("g0", ds.Name(0))
	x.Equal("g1", ds.Name(1))
	x.Equal(3, ds.Graph(0).NodeCount())
	x.Equal(3, ds.Graph(0).EdgeCount())
	x.Equal(4, ds.Graph(1).NodeCount())
	x.Equal(4, ds.Graph(1).EdgeCount())
	x.Equal(4, ds.NodeLabels().Len())
	x.False(ds.Weighted())
	x.Equal(lattice.Int(2), ds.Total())
}

func TestVegLoad(t *testing.T) {
	x := assert.New(t)
	text := strings.Join([]string{
		`graph	{"name": "first", "weight": 2.5}`,
		`vertex	{"id": 1, "label": "A"}`,
		`vertex	{"id": 2, "label": "B"}`,
		`edge	{"src": 1, "targ": 2, "label": "x"}`,
		`graph	{"name": "second"}`,
		`vertex	{"id": 1, "label": "B"}`,
	}, "\n")
	ds, err := NewVegLoader(config.Default()).Load(input(text))
	x.Nil(err)
	x.Equal(2, ds.Len())
	x.Equal("first", ds.Name(0))
	x.Equal(1, ds.Graph(0).EdgeCount())
	x.Equal(1, ds.Graph(1).NodeCount())
	x.True(ds.Weighted())
	x.Equal(lattice.Weighted(3.5), ds.Total())
}

func TestVegLoadWithoutGraphLines(t *testing.T) {
	x := assert.New(t)
	text := "vertex\t{\"id\": 1, \"label\": \"A\"}\nvertex\t{\"id\": 2, \"label\": \"A\"}\n"
	ds, err := NewVegLoader(config.Default()).Load(input(text))
	x.Nil(err)
	x.Equal(1, ds.Len())
	x.Equal(2, ds.Graph(0).NodeCount())
}

func TestLoaderRejectsBadEdges(t *testing.T) {
	x := assert.New(t)
	_, err := NewLgLoader(config.Default()).Load(input("t # g\nv 0 A\nv 1 B\ne 0 1 x\ne 0 1 y\n"))
	x.NotNil(err)
	_, err = NewLgLoader(config.Default()).Load(input("t # g\nv 0 A\ne 0 0 x\n"))
	x.NotNil(err)
	_, err = NewLgLoader(config.Default()).Load(input("t # g\nv 0 A\ne 0 5 x\n"))
	x.NotNil(err)
	_, err = NewLgLoader(config.Default()).Load(input("t # g\nv 0 A\nv 0 B\n"))
	x.NotNil(err)
}

func TestUndirectedLoad(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Directed = false
	ds := load(t, conf, "t # g\nv 0 A\nv 1 B\ne 0 1 x\n")
	G := ds.Graph(0)
	e := G.EdgeAt(0)
	x.False(G.Directed(e))
	_, err := NewLgLoader(conf).Load(input("t # g\nv 0 A\nv 1 B\ne 0 1 x\ne 1 0 x\n"))
	x.NotNil(err)
}

func TestDagRejectsCycles(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.DAG = true
	_, err := NewLgLoader(conf).Load(input(triangles))
	x.NotNil(err)
	ds := load(t, conf, "t # g\nv 0 A\nv 1 B\nv 2 C\ne 0 1 x\ne 0 2 x\ne 1 2 x\n")
	x.Equal(1, ds.Len())
}

func TestPrepareFrequentLabels(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	d, _ := s.DB.NodeLabels().Lookup("D")
	w, _ := s.DB.EdgeLabels().Lookup("w")
	a, _ := s.DB.NodeLabels().Lookup("A")
	x.False(s.DB.FrequentNode(d))
	x.False(s.DB.FrequentEdge(w))
	x.True(s.DB.FrequentNode(a))
	x.Equal(3, len(s.DB.FrequentNodeLabels()))
	x.Equal(3, len(s.DB.FrequentEdgeLabels()))
	x.Equal(lattice.Int(1), s.DB.NodeFrequency(d))
	x.True(s.DB.NodeLabels().Frozen())
}

func TestSupportPercent(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Support = 50
	conf.SupportPercent = true
	s := search(t, conf, triangles)
	x.Equal(lattice.Int(1), s.Min)
	x.Equal(4, len(s.DB.FrequentNodeLabels()))
}

func TestRootExtensions(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	x.Equal(3, len(s.Roots()))
	root := rootWithLabel(s, "A")
	x.Equal(lattice.Int(2), root.Frequency())
	env := s.NewEnv(0)
	exts := root.Extensions(env)
	x.Equal(2, len(exts))
	x.Equal(Expanded, root.State())
	b, _ := s.DB.NodeLabels().Lookup("B")
	c, _ := s.DB.NodeLabels().Lookup("C")
	var out, in *Extension
	for _, ext := range exts {
		x.Equal(InsertNode, ext.Kind)
		x.Equal(int32(1), ext.To)
		x.Equal(lattice.Int(2), ext.Child.Frequency())
		x.Equal(2, ext.Child.Pattern().NodeCount())
		if ext.Dir == graph.Outgoing {
			out = ext
		} else {
			in = ext
		}
	}
	x.NotNil(out)
	x.NotNil(in)
	x.Equal(b, out.NodeLabel)
	x.Equal(c, in.NodeLabel)
	x.True(exts[0].Less(exts[1]))
}

func TestExtKeyHashable(t *testing.T) {
	x := assert.New(t)
	a := ExtKey{Kind: InsertNode, From: 0, To: 1, EdgeLabel: 3, Dir: graph.Outgoing, NodeLabel: 2}
	b := a
	c := a
	c.Dir = graph.Incoming
	x.True(a.Equals(b))
	x.True(a.Equals(&Extension{ExtKey: b}))
	x.False(a.Equals(c))
	x.Equal(a.Hash(), b.Hash())
	x.True(c.Less(a))
	x.False(a.Less(c))
	x.False(a.Less(b))
	x.True((&Extension{ExtKey: c}).Less(a))
	edge := ExtKey{Kind: InsertEdge, From: 0, To: 1, EdgeLabel: 0, Dir: graph.Outgoing, NodeLabel: -1}
	x.True(a.Less(edge))
	x.NotEqual(a.Label(), c.Label())
}

func TestExtensionsSortedAndMerged(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	env := s.NewEnv(0)
	for _, label := range []string{"A", "B", "C"} {
		root := rootWithLabel(s, label)
		exts := root.Extensions(env)
		x.NotEmpty(exts)
		for i := 1; i < len(exts); i++ {
			x.True(exts[i-1].Compare(exts[i]) < 0, "%v !< %v", exts[i-1], exts[i])
		}
		for _, ext := range exts {
			x.Equal(lattice.Int(2), ext.Child.Frequency())
		}
	}
	x.Equal(0, env.exts.Size())
	x.Nil(env.Err())
}

func TestInsertEdgeClosesTriangle(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	env := s.NewEnv(0)
	root := rootWithLabel(s, "A")
	var path *Node
	for _, ext := range root.Extensions(env) {
		if ext.Dir == graph.Outgoing {
			path = ext.Materialize(root, env)
		}
	}
	x.Equal(1, path.Level)
	x.Equal(InsertedNode, path.Action)
	var chain *Node
	for _, ext := range path.Extensions(env) {
		if ext.Kind == InsertNode && ext.From == 1 && ext.Dir == graph.Outgoing {
			chain = ext.Materialize(path, env)
		}
	}
	x.NotNil(chain)
	var closing *Extension
	for _, ext := range chain.Extensions(env) {
		if ext.Kind == InsertEdge {
			x.Nil(closing)
			closing = ext
		}
	}
	x.NotNil(closing)
	x.Equal(int32(0), closing.From)
	x.Equal(int32(2), closing.To)
	x.Equal(graph.Incoming, closing.Dir)
	x.Equal(3, closing.Child.Pattern().EdgeCount())
	x.Equal(lattice.Int(2), closing.Child.Frequency())
}

func TestEmbeddingFragmentOverlap(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Directed = false
	conf.EmbeddingBased = true
	conf.Support = 1
	s := search(t, conf, "t # g\nv 0 A\nv 1 B\nv 2 A\ne 0 1 x\ne 1 2 x\n")
	root := rootWithLabel(s, "A")
	x.Equal(lattice.Int(2), root.Frequency())
	exts := root.Extensions(s.NewEnv(0))
	x.Equal(1, len(exts))
	f := exts[0].Child.(*EmbeddingFragment)
	x.Equal(2, len(f.Embeddings()))
	x.Equal(lattice.Int(2), f.RawFrequency())
	x.Equal(lattice.Int(1), f.Frequency())
	x.Equal(1, len(f.NonOverlapping()))
	x.Equal(uint(1), f.Graphs().Count())
}

func TestIgnoreLabelsAllowSharing(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Directed = false
	conf.EmbeddingBased = true
	conf.Support = 1
	conf.IgnoreLabels = []string{"B", "Q"}
	s := search(t, conf, "t # g\nv 0 A\nv 1 B\nv 2 A\ne 0 1 x\ne 1 2 x\n")
	x.NotNil(s.Ignore())
	root := rootWithLabel(s, "A")
	exts := root.Extensions(s.NewEnv(0))
	x.Equal(lattice.Int(2), exts[0].Child.Frequency())
}

func TestNodeStates(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	env := s.NewEnv(0)
	root := rootWithLabel(s, "B")
	x.Equal(Unexpanded, root.State())
	root.Extensions(env)
	x.Panics(func() { root.Extensions(env) })
	root.FinalizeIt()
	x.Equal(Finalized, root.State())
	x.True(root.Fragment.Finalized())
	x.Panics(func() { root.Fragment.(*GraphFragment).AddGraph(0) })
	x.False(root.Discarded())
	root.Discard()
	x.True(root.Discarded())
}

func TestFinalizedEmbeddingFragment(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.EmbeddingBased = true
	s := search(t, conf, triangles)
	root := rootWithLabel(s, "C")
	embs := root.Fragment.Embeddings()
	root.FinalizeIt()
	x.Equal(lattice.Int(2), root.Frequency())
	x.Panics(func() { root.Fragment.Add(embs[0]) })
}

func TestDups(t *testing.T) {
	x := assert.New(t)
	d, err := NewDups(config.Default())
	x.Nil(err)
	seen, err := d.Seen([]byte("abc"), 0)
	x.Nil(err)
	x.False(seen)
	seen, err = d.Seen([]byte("abc"), 1)
	x.Nil(err)
	x.True(seen)
	x.Equal(1, d.Size())
	x.Nil(d.Close())
}

func TestIntPool(t *testing.T) {
	x := assert.New(t)
	p := NewIntPool()
	s := p.Get(4)
	x.Equal([]int32{-1, -1, -1, -1}, s)
	p.Put(s)
	x.Equal([]int32{-1, -1}, p.Get(2))
}

func TestLgFormatterRoundTrip(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	env := s.NewEnv(0)
	root := rootWithLabel(s, "A")
	exts := root.Extensions(env)
	n := exts[0].Materialize(root, env)
	f := NewLgFormatter(s.DB)
	var buf bytes.Buffer
	x.Nil(f.FormatPattern(&buf, n))
	x.True(strings.HasPrefix(buf.String(), "t # 2\n"))
	ds := load(t, config.Default(), buf.String())
	x.Equal(1, ds.Len())
	x.True(len(n.Code()) > 0)
	x.Equal(2, ds.Graph(0).NodeCount())
	x.Equal(1, ds.Graph(0).EdgeCount())
	buf.Reset()
	x.Nil(f.FormatEmbeddings(&buf, n))
	x.Equal(2, strings.Count(buf.String(), "#=> "))
}

func TestDotFormatter(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	root := rootWithLabel(s, "A")
	f := NewDotFormatter(s.DB)
	x.Equal(".dot", f.FileExt())
	var buf bytes.Buffer
	x.Nil(f.FormatPattern(&buf, root))
	x.Contains(buf.String(), `graph "pattern"`)
	buf.Reset()
	x.Nil(f.FormatEmbeddings(&buf, root))
	x.Contains(buf.String(), `"g1"`)
}

func TestFragments(t *testing.T) {
	x := assert.New(t)
	s := search(t, config.Default(), triangles)
	roots := s.Roots()
	count := 0
	for n, next := Fragments(roots)(); next != nil; n, next = next() {
		x.NotNil(n)
		count++
	}
	x.Equal(len(roots), count)
}

func TestModeString(t *testing.T) {
	x := assert.New(t)
	x.Equal("graph-based", Mode(0).String())
	conf := config.Default()
	conf.EmbeddingBased = true
	conf.Closed = true
	m := ModeOf(conf)
	x.True(m.Has(Closed))
	x.False(m.Has(DAG))
	x.Equal("embedding-based|closed", m.String())
}
