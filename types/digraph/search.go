package digraph

import (
	"math"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/lattice"
	"github.com/timtadh/parsemis-sub001/stats"
	"github.com/timtadh/parsemis-sub001/types/digraph/subgraph"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Search is the state shared by every worker of a run. Everything but the
// duplicate set and the counters is read only once NewSearch returns.
type Search struct {
	Config     *config.Config
	Mode       Mode
	DB         Database
	Min        lattice.Frequency
	Max        lattice.Frequency
	Serializer graph.Serializer
	Dups       *Dups
	Counters   *stats.Counters
	ignore     *set.SortedSet
}

// NewSearch computes the thresholds, prepares the dataset and sets up the
// shared structures. Max is nil when no maximum frequency is configured.
func NewSearch(conf *config.Config, db *Dataset) (*Search, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	min := threshold(conf.Support, conf.SupportPercent, db)
	var max lattice.Frequency
	if conf.MaxSupport > 0 {
		max = threshold(conf.MaxSupport, conf.SupportPercent, db)
	}
	db.Prepare(min, conf.EmbeddingBased)
	ignore := set.NewSortedSet(len(conf.IgnoreLabels))
	for _, label := range conf.IgnoreLabels {
		if color, has := db.NodeLabels().Lookup(label); has {
			if err := ignore.Add(types.Int(color)); err != nil {
				return nil, err
			}
		} else {
			errors.Logf("INFO", "ignore label %q does not occur in the database", label)
		}
	}
	dups, err := NewDups(conf)
	if err != nil {
		return nil, err
	}
	s := &Search{
		Config:     conf,
		Mode:       ModeOf(conf),
		DB:         db,
		Min:        min,
		Max:        max,
		Serializer: graph.Serialize(db.NodeLabels(), db.EdgeLabels()),
		Dups:       dups,
		Counters:   new(stats.Counters),
		ignore:     ignore,
	}
	return s, nil
}

func threshold(support float64, percent bool, db *Dataset) lattice.Frequency {
	if percent {
		return lattice.Percent(db.Total(), support)
	} else if db.Weighted() {
		return lattice.Weighted(support)
	}
	return lattice.Int(int(math.Ceil(support)))
}

// Ignore tells whether a database node may be shared by non overlapping
// embeddings. It is nil when no ignore labels are configured.
func (s *Search) Ignore() func(g int, n int32) bool {
	if s.ignore.Size() == 0 {
		return nil
	}
	return func(g int, n int32) bool {
		G := s.DB.Graph(g)
		return s.ignore.Has(types.Int(G.NodeLabel(G.NodeAt(n))))
	}
}

func (s *Search) NewFragment(pattern *graph.Graph) Fragment {
	if s.Mode.Has(EmbeddingBased) {
		return NewEmbeddingFragment(pattern, s.DB, s.Ignore())
	}
	return NewGraphFragment(pattern, s.DB)
}

// Roots are the single node patterns of the frequent node labels. Their
// frequency has not been checked yet.
func (s *Search) Roots() []*Node {
	roots := make([]*Node, 0, len(s.DB.FrequentNodeLabels()))
	for _, label := range s.DB.FrequentNodeLabels() {
		pattern := graph.New(1, 0)
		pattern.AddNode(label)
		f := s.NewFragment(pattern)
		for i := 0; i < s.DB.Len(); i++ {
			G := s.DB.Graph(i)
			for n, next := G.Nodes()(); next != nil; n, next = next() {
				if G.NodeLabel(n) == label {
					f.Add(subgraph.New(i, []int32{n.Idx}))
					s.Counters.Inc(&s.Counters.Embeddings)
				}
			}
		}
		roots = append(roots, NewRoot(f))
	}
	return roots
}

// Frequent tells whether f reaches the minimum frequency.
func (s *Search) Frequent(f lattice.Frequency) bool {
	return f.Compare(s.Min) >= 0
}

// TooFrequent tells whether f exceeds the maximum frequency.
func (s *Search) TooFrequent(f lattice.Frequency) bool {
	return s.Max != nil && f.Compare(s.Max) > 0
}

func (s *Search) NewEnv(thread int) *Env {
	return &Env{
		Thread: thread,
		Search: s,
		Ints:   NewIntPool(),
		exts:   set.NewSortedSet(10),
	}
}

func (s *Search) Close() error {
	return s.Dups.Close()
}
