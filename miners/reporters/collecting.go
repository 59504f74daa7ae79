package reporters

import (
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

type Collector struct {
	Nodes []*digraph.Node
}

func (c *Collector) Report(n *digraph.Node) error {
	c.Nodes = append(c.Nodes, n)
	return nil
}

// Fragments iterates over the collected nodes in the order they were
// reported.
func (c *Collector) Fragments() digraph.FragmentIterator {
	return digraph.Fragments(c.Nodes)
}

func (c *Collector) Close() error {
	return nil
}
