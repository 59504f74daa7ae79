// Package chain is the list of mining steps every search lattice node is
// pushed through. The first step generates the candidate growths of the
// node, every later step may drop growths, mark the node as not to be
// reported, or stop the processing of the node altogether.
package chain

import (
	"github.com/timtadh/parsemis-sub001/types/digraph"
	"github.com/timtadh/parsemis-sub001/types/digraph/canon"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Step gets a node with the growths the earlier steps forwarded. It
// returns the growths to forward and false if processing should stop. A
// stopped node has no children.
type Step interface {
	Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool)
}

type Chain struct {
	Steps []Step
}

// Build picks the steps the configuration of s asks for.
func Build(s *digraph.Search) *Chain {
	conf := s.Config
	steps := make([]Step, 0, 12)
	steps = append(steps, Extend{})
	if s.Mode.Has(digraph.Closed) {
		steps = append(steps, Closed{})
	}
	steps = append(steps, &NodeCount{Min: conf.MinNodes, Max: conf.MaxNodes})
	steps = append(steps, &EdgeCount{Min: conf.MinEdges, Max: conf.MaxEdges})
	if s.Mode.Has(digraph.PathsOnly) || s.Mode.Has(digraph.TreesOnly) {
		steps = append(steps, &Shape{Paths: s.Mode.Has(digraph.PathsOnly)})
	}
	steps = append(steps, Frequency{})
	if s.Mode.Has(digraph.SingleRooted) {
		steps = append(steps, SingleRooted{})
	}
	steps = append(steps, Connected{})
	steps = append(steps, Canonical{})
	steps = append(steps, Duplicate{})
	if s.Mode.Has(digraph.EmbeddingBased) {
		steps = append(steps, MaxClique{})
	}
	return &Chain{Steps: steps}
}

// Process runs n through every step and returns the surviving growths.
func (c *Chain) Process(env *digraph.Env, n *digraph.Node) []*digraph.Extension {
	var exts []*digraph.Extension
	for _, step := range c.Steps {
		var more bool
		exts, more = step.Apply(env, n, exts)
		if !more || env.Err() != nil {
			return nil
		}
	}
	return exts
}

type Extend struct{}

func (Extend) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	return n.Extensions(env), true
}

// NodeCount bounds the number of pattern nodes. A zero Max is unbounded.
type NodeCount struct {
	Min, Max int
}

func (c *NodeCount) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	count := n.Pattern().NodeCount()
	if c.Max > 0 && count > c.Max {
		n.Discard()
		return nil, false
	}
	if count < c.Min {
		n.Discard()
	}
	if c.Max > 0 && count == c.Max {
		return filter(exts, func(ext *digraph.Extension) bool {
			return ext.Kind != digraph.InsertNode
		}), true
	}
	return exts, true
}

// EdgeCount bounds the number of pattern edges. A zero Max is unbounded.
type EdgeCount struct {
	Min, Max int
}

func (c *EdgeCount) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	count := n.Pattern().EdgeCount()
	if c.Max > 0 && count > c.Max {
		n.Discard()
		return nil, false
	}
	if count < c.Min {
		n.Discard()
	}
	if c.Max > 0 && count == c.Max {
		return nil, true
	}
	return exts, true
}

// Shape keeps the search to trees, or to paths when Paths is set.
type Shape struct {
	Paths bool
}

func (c *Shape) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	pattern := n.Pattern()
	return filter(exts, func(ext *digraph.Extension) bool {
		if ext.Kind == digraph.InsertEdge {
			return false
		}
		return !c.Paths || pattern.Degree(pattern.NodeAt(ext.From)) < 2
	}), true
}

// Frequency stops infrequent nodes, hides too frequent ones and drops the
// infrequent growths.
type Frequency struct{}

func (Frequency) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	s := env.Search
	f := n.Frequency()
	if !s.Frequent(f) {
		n.Discard()
		s.Counters.Inc(&s.Counters.Infrequent)
		return nil, false
	}
	if s.TooFrequent(f) {
		n.Discard()
	}
	before := len(exts)
	exts = filter(exts, func(ext *digraph.Extension) bool {
		return s.Frequent(ext.Child.Frequency())
	})
	s.Counters.Add(&s.Counters.Infrequent, before-len(exts))
	return exts, true
}

// Closed hides a node when one of its growths is as frequent as the node.
// It sees every growth, also those the size and shape bounds drop later.
type Closed struct{}

func (Closed) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	f := n.Frequency()
	for _, ext := range exts {
		if ext.Child.Frequency().Compare(f) == 0 {
			n.Discard()
			break
		}
	}
	return exts, true
}

// SingleRooted hides patterns with more than one node without incoming
// edges.
type SingleRooted struct{}

func (SingleRooted) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	if len(graph.Roots(n.Pattern())) != 1 {
		n.Discard()
	}
	return exts, true
}

type Connected struct{}

func (Connected) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	if !graph.Connected(n.Pattern()) {
		n.Discard()
	}
	return exts, true
}

// Canonical keeps the growths whose grown pattern has n as its canonical
// parent. Every other growth is reached from another node.
type Canonical struct{}

func (Canonical) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	s := env.Search
	code := n.Code()
	before := len(exts)
	exts = filter(exts, func(ext *digraph.Extension) bool {
		ok, form := canon.IsCanonical(code, ext.Child.Pattern())
		ext.SetForm(form)
		return ok
	})
	s.Counters.Add(&s.Counters.NonCanonical, before-len(exts))
	return exts, true
}

// Duplicate drops growths whose pattern was already handed out, by this
// node or by any other worker.
type Duplicate struct{}

func (Duplicate) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	s := env.Search
	before := len(exts)
	exts = filter(exts, func(ext *digraph.Extension) bool {
		seen, err := s.Dups.Seen(ext.Form().Code, env.Thread)
		if err != nil {
			env.Fail(err)
			return false
		}
		return !seen
	})
	s.Counters.Add(&s.Counters.Duplicates, before-len(exts))
	return exts, true
}

// MaxClique fixes the non overlapping embeddings as the ones reported.
type MaxClique struct{}

func (MaxClique) Apply(env *digraph.Env, n *digraph.Node, exts []*digraph.Extension) ([]*digraph.Extension, bool) {
	if f, ok := n.Fragment.(*digraph.EmbeddingFragment); ok {
		f.SetFinal(f.NonOverlapping())
	}
	return exts, true
}

// filter keeps the extensions for which keep is true. It reuses the
// backing array of exts.
func filter(exts []*digraph.Extension, keep func(*digraph.Extension) bool) []*digraph.Extension {
	kept := exts[:0]
	for _, ext := range exts {
		if keep(ext) {
			kept = append(kept, ext)
		}
	}
	return kept
}
