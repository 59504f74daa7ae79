package subgraph

import (
	"encoding/binary"
	"fmt"
	"strings"
)

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Embedding maps the nodes of a pattern onto the nodes of one database
// graph. Nodes[i] is the database node the pattern node with index i is
// mapped to, or -1 when that pattern slot is unused.
type Embedding struct {
	Graph int
	Nodes []int32
	used  *bitset.BitSet
}

func New(graph int, nodes []int32) *Embedding {
	return &Embedding{
		Graph: graph,
		Nodes: nodes,
	}
}

// Extend derives the embedding of a pattern grown by one node, the new
// pattern node being the next index.
func (emb *Embedding) Extend(dbNode int32) *Embedding {
	nodes := make([]int32, len(emb.Nodes)+1)
	copy(nodes, emb.Nodes)
	nodes[len(emb.Nodes)] = dbNode
	return &Embedding{
		Graph: emb.Graph,
		Nodes: nodes,
	}
}

// Used is the bit-vector of database nodes covered by the embedding. It is
// built on first use and dropped by FreeUnusedInfo.
func (emb *Embedding) Used() *bitset.BitSet {
	if emb.used == nil {
		max := int32(0)
		for _, n := range emb.Nodes {
			if n > max {
				max = n
			}
		}
		used := bitset.New(uint(max) + 1)
		for _, n := range emb.Nodes {
			if n >= 0 {
				used.Set(uint(n))
			}
		}
		emb.used = used
	}
	return emb.used
}

func (emb *Embedding) Uses(dbNode int32) bool {
	if dbNode < 0 {
		return false
	}
	return emb.Used().Test(uint(dbNode))
}

// Overlaps reports whether both embeddings live in the same graph and map
// some pattern node onto the same database node. Database nodes for which
// ignore returns true do not count.
func (emb *Embedding) Overlaps(o *Embedding, ignore func(dbNode int32) bool) bool {
	if emb.Graph != o.Graph {
		return false
	}
	if ignore == nil {
		return emb.Used().IntersectionCardinality(o.Used()) > 0
	}
	for _, n := range emb.Nodes {
		if n >= 0 && o.Uses(n) && !ignore(n) {
			return true
		}
	}
	return false
}

// FreeUnusedInfo drops the used node bit-vector. It is rebuilt if the
// embedding is queried again.
func (emb *Embedding) FreeUnusedInfo() {
	emb.used = nil
}

// Valid checks that the embedding is injective and that every node and
// edge of the pattern is matched by a database node or edge with the same
// label and direction.
func (emb *Embedding) Valid(pattern, db *graph.Graph) bool {
	if len(emb.Nodes) < pattern.MaxNodeIndex() {
		return false
	}
	seen := make(map[int32]bool, len(emb.Nodes))
	for n, next := pattern.Nodes()(); next != nil; n, next = next() {
		v := emb.Nodes[n.Idx]
		dbn, ok := db.Node(int(v))
		if !ok || seen[v] {
			return false
		}
		seen[v] = true
		if db.NodeLabel(dbn) != pattern.NodeLabel(n) {
			return false
		}
	}
	for e, next := pattern.Edges()(); next != nil; e, next = next() {
		src, targ := pattern.Endpoints(e)
		dir := pattern.DirectionFrom(e, src)
		dbe, has := db.EdgeBetween(db.NodeAt(emb.Nodes[src.Idx]), db.NodeAt(emb.Nodes[targ.Idx]), dir)
		if !has || db.EdgeLabel(dbe) != pattern.EdgeLabel(e) {
			return false
		}
	}
	return true
}

func (emb *Embedding) Serialize() []byte {
	label := make([]byte, 8+len(emb.Nodes)*4)
	binary.BigEndian.PutUint32(label[0:4], uint32(emb.Graph))
	binary.BigEndian.PutUint32(label[4:8], uint32(len(emb.Nodes)))
	for i, n := range emb.Nodes {
		s := 8 + i*4
		binary.BigEndian.PutUint32(label[s:s+4], uint32(n))
	}
	return label
}

func Deserialize(label []byte) (*Embedding, error) {
	if len(label) < 8 {
		return nil, errors.Errorf("embedding label too small %v < 8", len(label))
	}
	g := int(binary.BigEndian.Uint32(label[0:4]))
	size := int(binary.BigEndian.Uint32(label[4:8]))
	if len(label) != 8+size*4 {
		return nil, errors.Errorf("embedding label has the wrong size %v != %v", len(label), 8+size*4)
	}
	nodes := make([]int32, size)
	for i := range nodes {
		s := 8 + i*4
		nodes[i] = int32(binary.BigEndian.Uint32(label[s : s+4]))
	}
	return New(g, nodes), nil
}

func (emb *Embedding) String() string {
	ids := make([]string, 0, len(emb.Nodes))
	for i, n := range emb.Nodes {
		if n >= 0 {
			ids = append(ids, fmt.Sprintf("%d:%d", i, n))
		}
	}
	return fmt.Sprintf("<Embedding %d (%s)>", emb.Graph, strings.Join(ids, ", "))
}
