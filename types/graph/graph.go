package graph

import (
	"fmt"
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Direction of an edge as seen from one of its endpoints.
type Direction int8

const (
	Incoming   Direction = -1
	Undirected Direction = 0
	Outgoing   Direction = 1
)

func (d Direction) Reverse() Direction {
	return -d
}

func (d Direction) String() string {
	switch d {
	case Incoming:
		return "<-"
	case Outgoing:
		return "->"
	default:
		return "--"
	}
}

// Node is a handle on a node slot. It is only valid while the slot holds
// the generation the handle was issued with.
type Node struct {
	Idx int32
	Gen uint32
}

// Edge is a handle on an edge slot, see Node.
type Edge struct {
	Idx int32
	Gen uint32
}

var NoNode = Node{Idx: -1}
var NoEdge = Edge{Idx: -1}

type nodeSlot struct {
	label int
	gen   uint32
	live  bool
	next  int32
	adj   []int32
	in    int32
	out   int32
}

type edgeSlot struct {
	label    int
	gen      uint32
	live     bool
	next     int32
	src      int32
	targ     int32
	directed bool
}

// Graph is an arena backed mutable graph. Node and edge slots are kept in
// dense arrays. Deleted slots are chained into a free list threaded through
// the slots themselves and are handed out again by the next add.
//
// A Graph is not safe for concurrent mutation. Concurrent readers are fine
// once mutation has stopped (database graphs are never mutated after they
// are loaded).
type Graph struct {
	nodes     []nodeSlot
	edges     []edgeSlot
	freeNodes int32
	freeEdges int32
	nodeCount int
	edgeCount int
	version   uint64
	mu        sync.Mutex
	cache     map[string]interface{}
}

type NodeIterator func() (Node, NodeIterator)
type EdgeIterator func() (Edge, EdgeIterator)

func New(nodeCap, edgeCap int) *Graph {
	return &Graph{
		nodes:     make([]nodeSlot, 0, nodeCap),
		edges:     make([]edgeSlot, 0, edgeCap),
		freeNodes: -1,
		freeEdges: -1,
	}
}

func (g *Graph) NodeCount() int {
	return g.nodeCount
}

func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// MaxNodeIndex is one past the largest node index ever handed out.
func (g *Graph) MaxNodeIndex() int {
	return len(g.nodes)
}

func (g *Graph) MaxEdgeIndex() int {
	return len(g.edges)
}

// Version increases on every structural mutation.
func (g *Graph) Version() uint64 {
	return g.version
}

func (g *Graph) AddNode(label int) Node {
	var idx int32
	if g.freeNodes >= 0 {
		idx = g.freeNodes
		s := &g.nodes[idx]
		g.freeNodes = s.next
		s.label = label
		s.live = true
		s.next = -1
		s.adj = s.adj[:0]
		s.in = 0
		s.out = 0
	} else {
		idx = int32(len(g.nodes))
		g.nodes = append(g.nodes, nodeSlot{label: label, live: true, next: -1})
	}
	g.nodeCount++
	g.changed()
	return Node{Idx: idx, Gen: g.nodes[idx].gen}
}

// AddEdge connects a and b. The direction is relative to a, so
// AddEdge(a, b, l, Incoming) creates the edge b->a.
func (g *Graph) AddEdge(a, b Node, label int, dir Direction) Edge {
	if !g.ValidNode(a) || !g.ValidNode(b) {
		panic(errors.Errorf("AddEdge with a stale node handle %v %v", a, b))
	}
	src, targ := a.Idx, b.Idx
	directed := true
	switch dir {
	case Outgoing:
	case Incoming:
		src, targ = b.Idx, a.Idx
	default:
		directed = false
	}
	var idx int32
	if g.freeEdges >= 0 {
		idx = g.freeEdges
		s := &g.edges[idx]
		g.freeEdges = s.next
		s.label = label
		s.live = true
		s.next = -1
		s.src = src
		s.targ = targ
		s.directed = directed
	} else {
		idx = int32(len(g.edges))
		g.edges = append(g.edges, edgeSlot{
			label:    label,
			live:     true,
			next:     -1,
			src:      src,
			targ:     targ,
			directed: directed,
		})
	}
	g.nodes[src].adj = append(g.nodes[src].adj, idx)
	if targ != src {
		g.nodes[targ].adj = append(g.nodes[targ].adj, idx)
	}
	if directed {
		g.nodes[src].out++
		g.nodes[targ].in++
	}
	g.edgeCount++
	g.changed()
	return Edge{Idx: idx, Gen: g.edges[idx].gen}
}

// AddNodeAndEdge grows the graph by one node attached to from.
func (g *Graph) AddNodeAndEdge(from Node, nodeLabel, edgeLabel int, dir Direction) (Node, Edge) {
	if !g.ValidNode(from) {
		panic(errors.Errorf("AddNodeAndEdge with a stale node handle %v", from))
	}
	n := g.AddNode(nodeLabel)
	e := g.AddEdge(from, n, edgeLabel, dir)
	return n, e
}

func (g *Graph) RemoveEdge(e Edge) bool {
	if !g.ValidEdge(e) {
		return false
	}
	s := &g.edges[e.Idx]
	g.nodes[s.src].adj = dropIdx(g.nodes[s.src].adj, e.Idx)
	if s.targ != s.src {
		g.nodes[s.targ].adj = dropIdx(g.nodes[s.targ].adj, e.Idx)
	}
	if s.directed {
		g.nodes[s.src].out--
		g.nodes[s.targ].in--
	}
	s.live = false
	s.gen++
	s.next = g.freeEdges
	g.freeEdges = e.Idx
	g.edgeCount--
	g.changed()
	return true
}

// RemoveNode removes the node and every edge incident to it.
func (g *Graph) RemoveNode(n Node) bool {
	if !g.ValidNode(n) {
		return false
	}
	s := &g.nodes[n.Idx]
	incident := make([]int32, len(s.adj))
	copy(incident, s.adj)
	for _, eidx := range incident {
		g.RemoveEdge(Edge{Idx: eidx, Gen: g.edges[eidx].gen})
	}
	s.live = false
	s.gen++
	s.adj = s.adj[:0]
	s.next = g.freeNodes
	g.freeNodes = n.Idx
	g.nodeCount--
	g.changed()
	return true
}

func dropIdx(list []int32, idx int32) []int32 {
	for i, x := range list {
		if x == idx {
			copy(list[i:], list[i+1:])
			return list[:len(list)-1]
		}
	}
	return list
}

// Clone makes a deep copy. The copy shares no storage with g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:     make([]nodeSlot, len(g.nodes), len(g.nodes)+1),
		edges:     make([]edgeSlot, len(g.edges), len(g.edges)+1),
		freeNodes: g.freeNodes,
		freeEdges: g.freeEdges,
		nodeCount: g.nodeCount,
		edgeCount: g.edgeCount,
		version:   g.version,
	}
	copy(c.edges, g.edges)
	for i := range g.nodes {
		c.nodes[i] = g.nodes[i]
		adj := make([]int32, len(g.nodes[i].adj), len(g.nodes[i].adj)+1)
		copy(adj, g.nodes[i].adj)
		c.nodes[i].adj = adj
	}
	return c
}

func (g *Graph) ValidNode(n Node) bool {
	return n.Idx >= 0 && int(n.Idx) < len(g.nodes) && g.nodes[n.Idx].live && g.nodes[n.Idx].gen == n.Gen
}

func (g *Graph) ValidEdge(e Edge) bool {
	return e.Idx >= 0 && int(e.Idx) < len(g.edges) && g.edges[e.Idx].live && g.edges[e.Idx].gen == e.Gen
}

// Node returns the current handle for a live node index.
func (g *Graph) Node(idx int) (Node, bool) {
	if idx < 0 || idx >= len(g.nodes) || !g.nodes[idx].live {
		return NoNode, false
	}
	return Node{Idx: int32(idx), Gen: g.nodes[idx].gen}, true
}

func (g *Graph) Edge(idx int) (Edge, bool) {
	if idx < 0 || idx >= len(g.edges) || !g.edges[idx].live {
		return NoEdge, false
	}
	return Edge{Idx: int32(idx), Gen: g.edges[idx].gen}, true
}

// NodeAt is Node for callers that know the index is live.
func (g *Graph) NodeAt(idx int32) Node {
	n, ok := g.Node(int(idx))
	if !ok {
		panic(errors.Errorf("node %d is not live", idx))
	}
	return n
}

func (g *Graph) EdgeAt(idx int32) Edge {
	e, ok := g.Edge(int(idx))
	if !ok {
		panic(errors.Errorf("edge %d is not live", idx))
	}
	return e
}

func (g *Graph) node(n Node) *nodeSlot {
	if !g.ValidNode(n) {
		panic(errors.Errorf("stale node handle %v", n))
	}
	return &g.nodes[n.Idx]
}

func (g *Graph) edge(e Edge) *edgeSlot {
	if !g.ValidEdge(e) {
		panic(errors.Errorf("stale edge handle %v", e))
	}
	return &g.edges[e.Idx]
}

func (g *Graph) NodeLabel(n Node) int {
	return g.node(n).label
}

func (g *Graph) EdgeLabel(e Edge) int {
	return g.edge(e).label
}

func (g *Graph) Degree(n Node) int {
	return len(g.node(n).adj)
}

func (g *Graph) InDegree(n Node) int {
	return int(g.node(n).in)
}

func (g *Graph) OutDegree(n Node) int {
	return int(g.node(n).out)
}

// Adj is the list of edge indices incident to n. Callers must not modify
// it.
func (g *Graph) Adj(n Node) []int32 {
	return g.node(n).adj
}

func (g *Graph) Directed(e Edge) bool {
	return g.edge(e).directed
}

// Endpoints returns the source and target. For undirected edges they are
// in insertion order.
func (g *Graph) Endpoints(e Edge) (src, targ Node) {
	s := g.edge(e)
	return g.NodeAt(s.src), g.NodeAt(s.targ)
}

func (g *Graph) Other(e Edge, n Node) Node {
	s := g.edge(e)
	if s.src == n.Idx {
		return g.NodeAt(s.targ)
	}
	return g.NodeAt(s.src)
}

func (g *Graph) DirectionFrom(e Edge, n Node) Direction {
	s := g.edge(e)
	if !s.directed {
		return Undirected
	} else if s.src == n.Idx {
		return Outgoing
	}
	return Incoming
}

// EdgeBetween finds an edge from a to b with the given direction relative
// to a.
func (g *Graph) EdgeBetween(a, b Node, dir Direction) (Edge, bool) {
	for _, eidx := range g.node(a).adj {
		s := &g.edges[eidx]
		var other int32
		var d Direction
		if s.src == a.Idx {
			other = s.targ
			d = Outgoing
		} else {
			other = s.src
			d = Incoming
		}
		if !s.directed {
			d = Undirected
		}
		if other == b.Idx && d == dir {
			return Edge{Idx: eidx, Gen: s.gen}, true
		}
	}
	return NoEdge, false
}

func (g *Graph) Nodes() (it NodeIterator) {
	i := 0
	it = func() (Node, NodeIterator) {
		for ; i < len(g.nodes); i++ {
			if g.nodes[i].live {
				n := Node{Idx: int32(i), Gen: g.nodes[i].gen}
				i++
				return n, it
			}
		}
		return NoNode, nil
	}
	return it
}

func (g *Graph) Edges() (it EdgeIterator) {
	i := 0
	it = func() (Edge, EdgeIterator) {
		for ; i < len(g.edges); i++ {
			if g.edges[i].live {
				e := Edge{Idx: int32(i), Gen: g.edges[i].gen}
				i++
				return e, it
			}
		}
		return NoEdge, nil
	}
	return it
}

func (g *Graph) NodeList() []Node {
	list := make([]Node, 0, g.nodeCount)
	for n, next := g.Nodes()(); next != nil; n, next = next() {
		list = append(list, n)
	}
	return list
}

func (g *Graph) EdgeList() []Edge {
	list := make([]Edge, 0, g.edgeCount)
	for e, next := g.Edges()(); next != nil; e, next = next() {
		list = append(list, e)
	}
	return list
}

// Cached returns the value stored under key, computing it on a miss. The
// cache is dropped on every mutation. compute must not call Cached on the
// same graph.
func (g *Graph) Cached(key string, compute func() interface{}) interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	if v, has := g.cache[key]; has {
		return v
	}
	v := compute()
	if g.cache == nil {
		g.cache = make(map[string]interface{})
	}
	g.cache[key] = v
	return v
}

func (g *Graph) changed() {
	g.version++
	g.mu.Lock()
	g.cache = nil
	g.mu.Unlock()
}

// Equal reports whether two graphs have the same live slots with the same
// labels and wiring.
func (g *Graph) Equal(o *Graph) bool {
	if g.nodeCount != o.nodeCount || g.edgeCount != o.edgeCount {
		return false
	}
	if len(g.nodes) != len(o.nodes) || len(g.edges) != len(o.edges) {
		return false
	}
	for i := range g.nodes {
		a, b := &g.nodes[i], &o.nodes[i]
		if a.live != b.live {
			return false
		} else if !a.live {
			continue
		}
		if a.label != b.label || a.in != b.in || a.out != b.out || len(a.adj) != len(b.adj) {
			return false
		}
		for j := range a.adj {
			if a.adj[j] != b.adj[j] {
				return false
			}
		}
	}
	for i := range g.edges {
		a, b := &g.edges[i], &o.edges[i]
		if a.live != b.live {
			return false
		} else if !a.live {
			continue
		}
		if a.label != b.label || a.src != b.src || a.targ != b.targ || a.directed != b.directed {
			return false
		}
	}
	return true
}

func (g *Graph) String() string {
	return fmt.Sprintf("<Graph %s>", Format(g, nil, nil))
}
