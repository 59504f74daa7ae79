package digraph

import (
	"fmt"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/parsemis-sub001/lattice"
	"github.com/timtadh/parsemis-sub001/types/digraph/canon"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

type State int

const (
	Unexpanded State = iota
	Expanded
	Finalized
)

func (s State) String() string {
	switch s {
	case Unexpanded:
		return "unexpanded"
	case Expanded:
		return "expanded"
	default:
		return "finalized"
	}
}

// Action records how a node was derived from its parent.
type Action int

const (
	Root Action = iota
	InsertedNode
	InsertedEdge
)

// Node is a search lattice node. A node is expanded once, when its
// extensions are generated, and finalized once the children are handed
// off. A finalized node may still be reported.
type Node struct {
	Fragment  Fragment
	Level     int
	Thread    int
	Action    Action
	form      *canon.Form
	state     State
	discarded bool
}

// NewRoot is the single node pattern of a frequent node label.
func NewRoot(f Fragment) *Node {
	return &Node{
		Fragment: f,
		Action:   Root,
	}
}

func (n *Node) Pattern() *graph.Graph {
	return n.Fragment.Pattern()
}

func (n *Node) Frequency() lattice.Frequency {
	return n.Fragment.Frequency()
}

func (n *Node) Form() *canon.Form {
	if n.form == nil {
		n.form = canon.Canonize(n.Pattern())
	}
	return n.form
}

func (n *Node) Code() []byte {
	return n.Form().Code
}

func (n *Node) State() State {
	return n.state
}

// Extensions generates the candidate growths. It may only be called on an
// unexpanded node.
func (n *Node) Extensions(env *Env) []*Extension {
	if n.state != Unexpanded {
		panic(errors.Errorf("cannot extend %v node %v", n.state, n))
	}
	exts := env.extend(n)
	n.state = Expanded
	return exts
}

// FinalizeIt releases the occurrence data only needed for extending.
func (n *Node) FinalizeIt() {
	if n.state == Finalized {
		return
	}
	n.Fragment.Finalize()
	n.state = Finalized
}

// Discard marks the node as not to be reported. A discarded node may still
// be extended.
func (n *Node) Discard() {
	n.discarded = true
}

func (n *Node) Discarded() bool {
	return n.discarded
}

func (n *Node) String() string {
	return fmt.Sprintf("<Node %v level %d freq %v>", n.Pattern(), n.Level, n.Frequency())
}
