package graph

// Connected reports whether g is weakly connected. The empty graph is
// connected.
func Connected(g *Graph) bool {
	return connected(g, -1)
}

// ConnectedWithout reports whether g stays weakly connected when e is
// ignored, which is to say whether e is not a bridge.
func ConnectedWithout(g *Graph, e Edge) bool {
	if !g.ValidEdge(e) {
		return Connected(g)
	}
	return connected(g, e.Idx)
}

func connected(g *Graph, skip int32) bool {
	if g.nodeCount <= 1 {
		return true
	}
	seen := make([]bool, len(g.nodes))
	stack := make([]int32, 0, g.nodeCount)
	for i := range g.nodes {
		if g.nodes[i].live {
			stack = append(stack, int32(i))
			seen[i] = true
			break
		}
	}
	count := 0
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, eidx := range g.nodes[n].adj {
			if eidx == skip {
				continue
			}
			s := &g.edges[eidx]
			other := s.src
			if other == n {
				other = s.targ
			}
			if !seen[other] {
				seen[other] = true
				stack = append(stack, other)
			}
		}
	}
	return count == g.nodeCount
}

// Acyclic reports whether the directed edges of g form no cycle.
// Undirected edges are ignored.
func Acyclic(g *Graph) bool {
	indeg := make([]int32, len(g.nodes))
	queue := make([]int32, 0, g.nodeCount)
	for i := range g.nodes {
		if !g.nodes[i].live {
			continue
		}
		indeg[i] = g.nodes[i].in
		if indeg[i] == 0 {
			queue = append(queue, int32(i))
		}
	}
	visited := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visited++
		for _, eidx := range g.nodes[n].adj {
			s := &g.edges[eidx]
			if !s.directed || s.src != n {
				continue
			}
			indeg[s.targ]--
			if indeg[s.targ] == 0 {
				queue = append(queue, s.targ)
			}
		}
	}
	return visited == g.nodeCount
}

// Roots lists the nodes without incoming directed edges.
func Roots(g *Graph) []Node {
	roots := make([]Node, 0, 1)
	for n, next := g.Nodes()(); next != nil; n, next = next() {
		if g.InDegree(n) == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}
