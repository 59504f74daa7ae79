package canon

import (
	"sort"
)

import (
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Matrix is a dense view of a pattern. Nodes are renumbered 0..N-1 in
// index order. Dir[i][j] is the label+1 of the directed edge i->j and
// Und[i][j] the label+1 of the undirected edge between i and j, 0 when
// there is no such edge.
type Matrix struct {
	Nodes  []graph.Node
	Labels []int
	Dir    [][]int32
	Und    [][]int32
	Edges  int
}

func NewMatrix(g *graph.Graph) *Matrix {
	nodes := g.NodeList()
	n := len(nodes)
	at := make([]int, g.MaxNodeIndex())
	m := &Matrix{
		Nodes:  nodes,
		Labels: make([]int, n),
		Dir:    make([][]int32, n),
		Und:    make([][]int32, n),
		Edges:  g.EdgeCount(),
	}
	for i, v := range nodes {
		at[v.Idx] = i
		m.Labels[i] = g.NodeLabel(v)
		m.Dir[i] = make([]int32, n)
		m.Und[i] = make([]int32, n)
	}
	for e, next := g.Edges()(); next != nil; e, next = next() {
		src, targ := g.Endpoints(e)
		i, j := at[src.Idx], at[targ.Idx]
		l := int32(g.EdgeLabel(e)) + 1
		if g.Directed(e) {
			m.Dir[i][j] = l
		} else {
			m.Und[i][j] = l
			m.Und[j][i] = l
		}
	}
	return m
}

func (m *Matrix) Len() int {
	return len(m.Nodes)
}

// Twins reports whether swapping u and v maps the matrix onto itself.
func (m *Matrix) Twins(u, v int) bool {
	if m.Labels[u] != m.Labels[v] || m.Dir[u][u] != m.Dir[v][v] || m.Dir[u][v] != m.Dir[v][u] {
		return false
	}
	for w := range m.Nodes {
		if w == u || w == v {
			continue
		}
		if m.Dir[u][w] != m.Dir[v][w] || m.Dir[w][u] != m.Dir[w][v] || m.Und[u][w] != m.Und[v][w] {
			return false
		}
	}
	return true
}

const (
	outEdge = iota
	inEdge
	undEdge
)

// Refine computes the coarsest equitable coloring finer than colors. A nil
// colors starts from the (label, in-degree, out-degree, undirected degree)
// coloring. Every color is the first position of its cell when the nodes
// are sorted by color, so colors do not depend on the node numbering.
func Refine(m *Matrix, colors []int) []int {
	if colors == nil {
		colors = initial(m)
	}
	cells := countCells(colors)
	for cells < m.Len() {
		keys := make([][]int, m.Len())
		for v := range keys {
			keys[v] = m.neighborhood(v, colors)
		}
		next := cellStarts(keys)
		n := countCells(next)
		if n == cells {
			break
		}
		colors, cells = next, n
	}
	return colors
}

func initial(m *Matrix) []int {
	keys := make([][]int, m.Len())
	for v := range keys {
		in, out, und := 0, 0, 0
		for u := range m.Nodes {
			if m.Dir[v][u] > 0 {
				out++
			}
			if m.Dir[u][v] > 0 {
				in++
			}
			if m.Und[v][u] > 0 {
				und++
			}
		}
		keys[v] = []int{m.Labels[v], in, out, und}
	}
	return cellStarts(keys)
}

// neighborhood is the color of v followed by the sorted (kind, label,
// color) triples of its edges.
func (m *Matrix) neighborhood(v int, colors []int) []int {
	triples := make([][3]int, 0, 4)
	for u := range m.Nodes {
		if l := m.Dir[v][u]; l > 0 {
			triples = append(triples, [3]int{outEdge, int(l), colors[u]})
		}
		if l := m.Dir[u][v]; l > 0 {
			triples = append(triples, [3]int{inEdge, int(l), colors[u]})
		}
		if l := m.Und[v][u]; l > 0 {
			triples = append(triples, [3]int{undEdge, int(l), colors[u]})
		}
	}
	sort.Slice(triples, func(i, j int) bool {
		return compareInts(triples[i][:], triples[j][:]) < 0
	})
	key := make([]int, 0, 1+3*len(triples))
	key = append(key, colors[v])
	for _, t := range triples {
		key = append(key, t[0], t[1], t[2])
	}
	return key
}

// Individualize splits v out of its cell. v keeps the cell's color and the
// rest of the cell moves one position up.
func Individualize(colors []int, v int) []int {
	next := make([]int, len(colors))
	c := colors[v]
	for u, col := range colors {
		if col == c && u != v {
			next[u] = c + 1
		} else {
			next[u] = col
		}
	}
	return next
}

func cellStarts(keys [][]int) []int {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return compareInts(keys[idx[i]], keys[idx[j]]) < 0
	})
	colors := make([]int, len(keys))
	for i, v := range idx {
		if i > 0 && compareInts(keys[idx[i-1]], keys[v]) == 0 {
			colors[v] = colors[idx[i-1]]
		} else {
			colors[v] = i
		}
	}
	return colors
}

func countCells(colors []int) int {
	seen := make(map[int]bool, len(colors))
	for _, c := range colors {
		seen[c] = true
	}
	return len(seen)
}

// firstCell lists the members of the non singleton cell with the smallest
// color, nil when the coloring is discrete.
func firstCell(colors []int) []int {
	sizes := make([]int, len(colors))
	for _, c := range colors {
		sizes[c]++
	}
	for c, size := range sizes {
		if size > 1 {
			cell := make([]int, 0, size)
			for v, col := range colors {
				if col == c {
					cell = append(cell, v)
				}
			}
			return cell
		}
	}
	return nil
}

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	if len(a) < len(b) {
		return -1
	} else if len(a) > len(b) {
		return 1
	}
	return 0
}
