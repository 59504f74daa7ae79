package digraph

import (
	"strings"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
)

type Mode uint64

const (
	EmbeddingBased Mode = 1 << iota // support counts non overlapping embeddings
	SingleRooted                    // only report patterns with one source node
	PathsOnly                       // only grow paths
	TreesOnly                       // only grow trees
	Closed                          // only report closed patterns
	DAG                             // database graphs are acyclic
)

var modeNames = []string{"embedding-based", "single-rooted", "paths-only", "trees-only", "closed", "dag"}

func ModeOf(c *config.Config) Mode {
	var m Mode
	if c.EmbeddingBased {
		m |= EmbeddingBased
	}
	if c.SingleRooted {
		m |= SingleRooted
	}
	if c.PathsOnly {
		m |= PathsOnly
	}
	if c.TreesOnly {
		m |= TreesOnly
	}
	if c.Closed {
		m |= Closed
	}
	if c.DAG {
		m |= DAG
	}
	return m
}

func (m Mode) Has(o Mode) bool {
	return m&o == o
}

func (m Mode) String() string {
	names := make([]string, 0, len(modeNames))
	for i, name := range modeNames {
		if m.Has(Mode(1) << uint(i)) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "graph-based"
	}
	return strings.Join(names, "|")
}
