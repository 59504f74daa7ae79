package graph

import (
	"fmt"
	"strings"
)

// Serializer renders a graph for diagnostics.
type Serializer func(*Graph) string

// Format writes g as {E:V}(idx:label)...[src->targ:label]... When a
// dictionary is nil the raw integer colors are printed.
func Format(g *Graph, nodeLabels, edgeLabels *Labels) string {
	name := func(l *Labels, color int) string {
		return l.Label(color)
	}
	V := make([]string, 0, g.NodeCount())
	E := make([]string, 0, g.EdgeCount())
	for n, next := g.Nodes()(); next != nil; n, next = next() {
		V = append(V, fmt.Sprintf("(%d:%s)", n.Idx, name(nodeLabels, g.NodeLabel(n))))
	}
	for e, next := g.Edges()(); next != nil; e, next = next() {
		src, targ := g.Endpoints(e)
		arrow := "->"
		if !g.Directed(e) {
			arrow = "--"
		}
		E = append(E, fmt.Sprintf("[%d%s%d:%s]", src.Idx, arrow, targ.Idx, name(edgeLabels, g.EdgeLabel(e))))
	}
	return fmt.Sprintf("{%d:%d}%s%s", g.EdgeCount(), g.NodeCount(), strings.Join(V, ""), strings.Join(E, ""))
}

// Serialize returns the default Serializer for a pair of dictionaries.
func Serialize(nodeLabels, edgeLabels *Labels) Serializer {
	return func(g *Graph) string {
		return Format(g, nodeLabels, edgeLabels)
	}
}

// Dot renders g in graphviz dot syntax.
func Dot(g *Graph, nodeLabels, edgeLabels *Labels, name string) string {
	directed := false
	for e, next := g.Edges()(); next != nil; e, next = next() {
		if g.Directed(e) {
			directed = true
			break
		}
	}
	kind, arrow := "graph", "--"
	if directed {
		kind, arrow = "digraph", "->"
	}
	lines := make([]string, 0, g.NodeCount()+g.EdgeCount()+2)
	lines = append(lines, fmt.Sprintf("%s %q {", kind, name))
	for n, next := g.Nodes()(); next != nil; n, next = next() {
		lines = append(lines, fmt.Sprintf("    n%d [label=%q];", n.Idx, nodeLabels.Label(g.NodeLabel(n))))
	}
	for e, next := g.Edges()(); next != nil; e, next = next() {
		src, targ := g.Endpoints(e)
		lines = append(lines, fmt.Sprintf("    n%d %s n%d [label=%q];", src.Idx, arrow, targ.Idx, edgeLabels.Label(g.EdgeLabel(e))))
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n") + "\n"
}
