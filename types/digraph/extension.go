package digraph

import (
	"encoding/binary"
	"fmt"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/parsemis-sub001/types/digraph/canon"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

type Kind int8

const (
	InsertNode Kind = iota // a new node joined by a new edge
	InsertEdge             // a new edge between two existing nodes
)

func (k Kind) String() string {
	if k == InsertNode {
		return "node"
	}
	return "edge"
}

// ExtKey identifies a growth of a pattern. Dir is relative to From. For
// InsertNode To is the index the new node will get and NodeLabel its
// label. For InsertEdge NodeLabel is -1 and From < To.
type ExtKey struct {
	Kind      Kind
	From, To  int32
	EdgeLabel int
	Dir       graph.Direction
	NodeLabel int
}

// Compare orders keys by (Kind, From, To, EdgeLabel, Dir, NodeLabel).
func (k ExtKey) Compare(o ExtKey) int {
	cmp := func(a, b int) int {
		if a < b {
			return -1
		} else if a > b {
			return 1
		}
		return 0
	}
	if c := cmp(int(k.Kind), int(o.Kind)); c != 0 {
		return c
	}
	if c := cmp(int(k.From), int(o.From)); c != 0 {
		return c
	}
	if c := cmp(int(k.To), int(o.To)); c != 0 {
		return c
	}
	if c := cmp(k.EdgeLabel, o.EdgeLabel); c != 0 {
		return c
	}
	if c := cmp(int(k.Dir), int(o.Dir)); c != 0 {
		return c
	}
	return cmp(k.NodeLabel, o.NodeLabel)
}

func keyOf(o types.Equatable) (ExtKey, bool) {
	switch b := o.(type) {
	case ExtKey:
		return b, true
	case *Extension:
		return b.ExtKey, true
	}
	return ExtKey{}, false
}

func (k ExtKey) Equals(o types.Equatable) bool {
	b, ok := keyOf(o)
	return ok && k == b
}

func (k ExtKey) Less(o types.Sortable) bool {
	b, ok := keyOf(o)
	return ok && k.Compare(b) < 0
}

func (k ExtKey) Hash() int {
	return types.ByteSlice(k.Label()).Hash()
}

// Label packs the key into 22 bytes.
func (k ExtKey) Label() []byte {
	buf := make([]byte, 22)
	buf[0] = byte(k.Kind)
	binary.BigEndian.PutUint32(buf[1:5], uint32(k.From))
	binary.BigEndian.PutUint32(buf[5:9], uint32(k.To))
	binary.BigEndian.PutUint64(buf[9:17], uint64(k.EdgeLabel))
	buf[17] = byte(k.Dir)
	binary.BigEndian.PutUint32(buf[18:22], uint32(k.NodeLabel))
	return buf
}

// Apply builds the grown pattern. parent is not modified.
func (k ExtKey) Apply(parent *graph.Graph) *graph.Graph {
	child := parent.Clone()
	from := child.NodeAt(k.From)
	switch k.Kind {
	case InsertNode:
		n, _ := child.AddNodeAndEdge(from, k.NodeLabel, k.EdgeLabel, k.Dir)
		if n.Idx != k.To {
			panic(errors.Errorf("pattern %v has deleted node slots", parent))
		}
	case InsertEdge:
		child.AddEdge(from, child.NodeAt(k.To), k.EdgeLabel, k.Dir)
	}
	return child
}

func (k ExtKey) String() string {
	if k.Kind == InsertNode {
		return fmt.Sprintf("+node(%d %v %d:%d, label %d)", k.From, k.Dir, k.To, k.EdgeLabel, k.NodeLabel)
	}
	return fmt.Sprintf("+edge(%d %v %d:%d)", k.From, k.Dir, k.To, k.EdgeLabel)
}

// Extension is one candidate growth of a search lattice node together with
// the occurrences of the grown pattern.
type Extension struct {
	ExtKey
	Child Fragment
	form  *canon.Form
}

func (e *Extension) Key() ExtKey {
	return e.ExtKey
}

func (e *Extension) Compare(o *Extension) int {
	return e.ExtKey.Compare(o.ExtKey)
}

// Form is the canonical form of the grown pattern.
func (e *Extension) Form() *canon.Form {
	if e.form == nil {
		e.form = canon.Canonize(e.Child.Pattern())
	}
	return e.form
}

// SetForm records an already computed canonical form of the grown pattern.
func (e *Extension) SetForm(form *canon.Form) {
	e.form = form
}

// Materialize turns the extension into the child search lattice node.
func (e *Extension) Materialize(parent *Node, env *Env) *Node {
	action := InsertedNode
	if e.Kind == InsertEdge {
		action = InsertedEdge
	}
	return &Node{
		Fragment: e.Child,
		Level:    parent.Level + 1,
		Thread:   env.Thread,
		Action:   action,
		form:     e.form,
	}
}

func (e *Extension) String() string {
	return fmt.Sprintf("<Extension %v -> %v>", e.ExtKey, e.Child)
}
