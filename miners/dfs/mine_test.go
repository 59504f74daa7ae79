package dfs

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/lattice"
	"github.com/timtadh/parsemis-sub001/miners/reporters"
	"github.com/timtadh/parsemis-sub001/types/digraph"
	"github.com/timtadh/parsemis-sub001/types/digraph/canon"
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

const molecules = `
t # m0
v 0 C
v 1 C
v 2 O
v 3 N
v 4 C
v 5 O
e 0 1 s
e 1 2 d
e 1 3 s
e 3 4 s
e 4 5 d
e 4 0 s
t # m1
v 0 C
v 1 C
v 2 O
v 3 N
v 4 C
e 0 1 s
e 1 2 d
e 1 3 s
e 3 4 s
e 0 4 s
t # m2
v 0 N
v 1 C
v 2 C
v 3 O
v 4 C
e 0 1 s
e 1 2 s
e 2 3 d
e 2 4 s
e 4 0 s
`

func mine(t *testing.T, conf *config.Config, text string) (*digraph.Search, []*digraph.Node) {
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
	c := &reporters.Collector{}
	m := NewMiner(conf)
	if err := m.Mine(s, c); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	return s, c.Nodes
}

func codes(nodes []*digraph.Node) map[string]lattice.Frequency {
	freqs := make(map[string]lattice.Frequency)
	for _, n := range nodes {
		freqs[string(n.Code())] = n.Frequency()
	}
	return freqs
}

func TestTwoTriangles(t *testing.T) {
	x := assert.New(t)
	for _, workers := range []int{0, 1, 4} {
		conf := config.Default()
		conf.Parallelism = workers
		s, nodes := mine(t, conf, triangles)
		x.Equal(10, len(nodes))
		x.Equal(10, len(codes(nodes)))
		x.Equal(int64(10), s.Counters.Get(&s.Counters.Reported))
		for _, n := range nodes {
			x.Equal(lattice.Int(2), n.Frequency())
			x.Equal(digraph.Finalized, n.State())
		}
	}
}

func TestSameLabelTriangles(t *testing.T) {
	x := assert.New(t)
	text := "t # g0\nv 0 A\nv 1 A\nv 2 A\ne 0 1 x\ne 1 2 x\ne 2 0 x\n" +
		"t # g1\nv 0 A\nv 1 A\nv 2 A\ne 0 1 x\ne 1 2 x\ne 2 0 x\n"
	for _, directed := range []bool{true, false} {
		for _, workers := range []int{0, 3} {
			conf := config.Default()
			conf.Directed = directed
			conf.Parallelism = workers
			_, nodes := mine(t, conf, text)
			x.Equal(4, len(nodes), "directed %v workers %d", directed, workers)
			x.Equal(4, len(codes(nodes)))
			for _, n := range nodes {
				x.Equal(lattice.Int(2), n.Frequency())
				x.NotEqual(4, n.Pattern().NodeCount())
			}
		}
	}
}

func TestOverlappingEmbeddings(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Directed = false
	conf.EmbeddingBased = true
	conf.Support = 1
	_, nodes := mine(t, conf, "t # g\nv 0 A\nv 1 B\nv 2 A\ne 0 1 x\ne 1 2 x\n")
	found := false
	for _, n := range nodes {
		if n.Pattern().EdgeCount() == 1 {
			f := n.Fragment.(*digraph.EmbeddingFragment)
			x.Equal(lattice.Int(2), f.RawFrequency())
			x.Equal(lattice.Int(1), n.Frequency())
			found = true
		}
	}
	x.True(found)
}

func TestNodeBoundsGiveFrequentEdges(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.MinNodes = 2
	conf.MaxNodes = 2
	_, nodes := mine(t, conf, molecules)
	x.True(len(nodes) > 0)
	labels := make(map[string]bool)
	for _, n := range nodes {
		x.Equal(2, n.Pattern().NodeCount())
		x.Equal(1, n.Pattern().EdgeCount())
		labels[string(n.Code())] = true
	}
	x.Equal(len(nodes), len(labels))
	// C-s->C, C-d->O, C-s->N, N-s->C
	x.Equal(4, len(nodes))
}

func TestAntiMonotone(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Directed = false
	conf.Parallelism = 3
	_, nodes := mine(t, conf, molecules)
	freqs := codes(nodes)
	x.Equal(len(nodes), len(freqs))
	for _, n := range nodes {
		if n.Pattern().NodeCount() == 1 {
			continue
		}
		parent := canon.CanonicalParent(n.Pattern(), n.Form())
		pf, has := freqs[string(canon.Code(parent))]
		x.True(has, "missing parent of %v", n)
		if has {
			x.True(pf.Compare(n.Frequency()) >= 0)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	x := assert.New(t)
	for _, directed := range []bool{true, false} {
		serial := config.Default()
		serial.Directed = directed
		_, expected := mine(t, serial, molecules)
		parallel := serial.Copy()
		parallel.Parallelism = 4
		_, got := mine(t, parallel, molecules)
		x.Equal(codes(expected), codes(got))
	}
}

func TestWeightedSupport(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Support = 1.5
	text := "t # a 0.5\nv 0 A\nv 1 B\ne 0 1 x\nt # b 1.0\nv 0 A\nv 1 B\ne 0 1 x\nt # c 1\nv 0 A\n"
	_, nodes := mine(t, conf, text)
	x.Equal(3, len(nodes))
	for _, n := range nodes {
		if n.Pattern().EdgeCount() == 1 {
			x.Equal(lattice.Weighted(1.5), n.Frequency())
		}
	}
}

type failing struct{}

func (failing) Report(n *digraph.Node) error {
	return errors.Errorf("disk full")
}

func (failing) Close() error {
	return nil
}

type closeFailing struct {
	reporters.Collector
}

func (closeFailing) Close() error {
	return errors.Errorf("close failed")
}

func TestCloseReturnsReporterError(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	input := func() (io.Reader, func()) {
		return strings.NewReader(triangles), func() {}
	}
	ds, err := digraph.NewLgLoader(conf).Load(input)
	x.Nil(err)
	s, err := digraph.NewSearch(conf, ds)
	x.Nil(err)
	m := NewMiner(conf)
	x.Nil(m.Mine(s, &closeFailing{}))
	err = m.Close()
	x.NotNil(err)
	if err != nil {
		x.Contains(err.Error(), "close failed")
	}
}

func TestReporterErrorStopsMining(t *testing.T) {
	x := assert.New(t)
	conf := config.Default()
	conf.Parallelism = 2
	input := func() (io.Reader, func()) {
		return strings.NewReader(molecules), func() {}
	}
	ds, err := digraph.NewLgLoader(conf).Load(input)
	x.Nil(err)
	s, err := digraph.NewSearch(conf, ds)
	x.Nil(err)
	m := NewMiner(conf)
	x.NotNil(m.Mine(s, failing{}))
	x.Nil(m.Close())
}

func TestStack(t *testing.T) {
	x := assert.New(t)
	a, b := &digraph.Node{Level: 1}, &digraph.Node{Level: 2}
	s := NewStack()
	s.Push(a)
	s.Push(b)
	x.Equal(2, s.Len())
	x.Equal(b, s.Pop())
	x.Equal(a, s.Pop())
	s.Done()
	done := make(chan *digraph.Node)
	go func() {
		done <- s.Pop()
	}()
	s.Done()
	x.Nil(<-done)
	x.Nil(s.Pop())
}

func TestStackClose(t *testing.T) {
	x := assert.New(t)
	s := NewStack()
	s.Push(&digraph.Node{})
	s.Close()
	x.Nil(s.Pop())
}
