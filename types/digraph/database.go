package digraph

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/parsemis-sub001/lattice"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Database is the read only view of the input graphs used while mining.
type Database interface {
	Len() int
	Graph(i int) *graph.Graph
	Name(i int) string
	NodeLabels() *graph.Labels
	EdgeLabels() *graph.Labels
	FrequentNodeLabels() []int
	FrequentEdgeLabels() []int
	FrequentNode(label int) bool
	FrequentEdge(label int) bool
	FrequencyOf(i int) lattice.Frequency
	NodeFrequency(label int) lattice.Frequency
	EdgeFrequency(label int) lattice.Frequency
	Total() lattice.Frequency
	Zero() lattice.Frequency
}

// Dataset holds the loaded graphs. Graphs are added during loading, then
// Prepare freezes the label dictionaries and counts the label frequencies.
// A prepared Dataset is never mutated again.
type Dataset struct {
	graphs     []*graph.Graph
	names      []string
	weights    []float64
	weighted   bool
	dag        bool
	nodeLabels *graph.Labels
	edgeLabels *graph.Labels
	nodeFreq   []lattice.Frequency
	edgeFreq   []lattice.Frequency
	freqNodes  []int
	freqEdges  []int
	prepared   bool
}

func NewDataset(dag bool) *Dataset {
	return &Dataset{
		graphs:     make([]*graph.Graph, 0, 10),
		names:      make([]string, 0, 10),
		weights:    make([]float64, 0, 10),
		dag:        dag,
		nodeLabels: graph.NewLabels(),
		edgeLabels: graph.NewLabels(),
	}
}

// Add appends a database graph. A weight of 0 means unweighted. In DAG
// mode a graph with a directed cycle is rejected.
func (d *Dataset) Add(name string, g *graph.Graph, weight float64) error {
	if d.prepared {
		panic(errors.Errorf("cannot add graph %v to a prepared dataset", name))
	}
	if d.dag && !graph.Acyclic(g) {
		return errors.Errorf("graph %v has a cycle but dag mining was requested", name)
	}
	if weight == 0 {
		weight = 1
	} else if weight < 0 {
		return errors.Errorf("graph %v has a negative weight %v", name, weight)
	}
	if weight != 1 {
		d.weighted = true
	}
	d.graphs = append(d.graphs, g)
	d.names = append(d.names, name)
	d.weights = append(d.weights, weight)
	return nil
}

// Prepare freezes the dictionaries and finds the frequent labels. With
// embeddingBased every occurrence of a label counts, otherwise every graph
// containing it counts once. Both are upper bounds for the support of any
// pattern containing the label.
func (d *Dataset) Prepare(min lattice.Frequency, embeddingBased bool) {
	d.nodeLabels.Freeze()
	d.edgeLabels.Freeze()
	d.nodeFreq = make([]lattice.Frequency, d.nodeLabels.Len())
	d.edgeFreq = make([]lattice.Frequency, d.edgeLabels.Len())
	for i := range d.nodeFreq {
		d.nodeFreq[i] = d.Zero()
	}
	for i := range d.edgeFreq {
		d.edgeFreq[i] = d.Zero()
	}
	for i, g := range d.graphs {
		f := d.FrequencyOf(i)
		nodes := make(map[int]bool)
		edges := make(map[int]bool)
		for n, next := g.Nodes()(); next != nil; n, next = next() {
			l := g.NodeLabel(n)
			if embeddingBased || !nodes[l] {
				d.nodeFreq[l] = d.nodeFreq[l].Add(f)
			}
			nodes[l] = true
		}
		for e, next := g.Edges()(); next != nil; e, next = next() {
			l := g.EdgeLabel(e)
			if embeddingBased || !edges[l] {
				d.edgeFreq[l] = d.edgeFreq[l].Add(f)
			}
			edges[l] = true
		}
	}
	d.freqNodes = frequent(d.nodeFreq, min)
	d.freqEdges = frequent(d.edgeFreq, min)
	d.prepared = true
}

func frequent(freqs []lattice.Frequency, min lattice.Frequency) []int {
	labels := make([]int, 0, len(freqs))
	for l, f := range freqs {
		if f.Compare(min) >= 0 {
			labels = append(labels, l)
		}
	}
	sort.Ints(labels)
	return labels
}

func (d *Dataset) Len() int {
	return len(d.graphs)
}

func (d *Dataset) Graph(i int) *graph.Graph {
	return d.graphs[i]
}

func (d *Dataset) Name(i int) string {
	return d.names[i]
}

func (d *Dataset) NodeLabels() *graph.Labels {
	return d.nodeLabels
}

func (d *Dataset) EdgeLabels() *graph.Labels {
	return d.edgeLabels
}

func (d *Dataset) Weighted() bool {
	return d.weighted
}

func (d *Dataset) FrequentNodeLabels() []int {
	return d.freqNodes
}

func (d *Dataset) FrequentEdgeLabels() []int {
	return d.freqEdges
}

func (d *Dataset) FrequentNode(label int) bool {
	i := sort.SearchInts(d.freqNodes, label)
	return i < len(d.freqNodes) && d.freqNodes[i] == label
}

func (d *Dataset) FrequentEdge(label int) bool {
	i := sort.SearchInts(d.freqEdges, label)
	return i < len(d.freqEdges) && d.freqEdges[i] == label
}

func (d *Dataset) FrequencyOf(i int) lattice.Frequency {
	if d.weighted {
		return lattice.Weighted(d.weights[i])
	}
	return lattice.Int(1)
}

func (d *Dataset) NodeFrequency(label int) lattice.Frequency {
	if label < 0 || label >= len(d.nodeFreq) {
		return d.Zero()
	}
	return d.nodeFreq[label]
}

func (d *Dataset) EdgeFrequency(label int) lattice.Frequency {
	if label < 0 || label >= len(d.edgeFreq) {
		return d.Zero()
	}
	return d.edgeFreq[label]
}

// Total is the frequency of a pattern found in every graph.
func (d *Dataset) Total() lattice.Frequency {
	total := d.Zero()
	for i := range d.graphs {
		total = total.Add(d.FrequencyOf(i))
	}
	return total
}

func (d *Dataset) Zero() lattice.Frequency {
	if d.weighted {
		return lattice.Weighted(0)
	}
	return lattice.Int(0)
}
