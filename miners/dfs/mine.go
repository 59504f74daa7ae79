// Package dfs mines frequent subgraphs with a depth first walk of the
// search lattice. Workers share one stack of lattice nodes; every worker
// pushes the children of the nodes it processes and hands reported nodes
// to a single reporting goroutine.
package dfs

import (
	"context"
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
	"golang.org/x/sync/errgroup"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/miners"
	"github.com/timtadh/parsemis-sub001/types/digraph"
	"github.com/timtadh/parsemis-sub001/types/digraph/chain"
)

type Miner struct {
	Config *config.Config
	Search *digraph.Search
	Rptr   miners.Reporter
	Chain  *chain.Chain
}

func NewMiner(conf *config.Config) *Miner {
	return &Miner{
		Config: conf,
	}
}

func (m *Miner) Init(s *digraph.Search, rptr miners.Reporter) error {
	errors.Logf("INFO", "about to load singleton nodes")
	m.Search = s
	m.Rptr = rptr
	m.Chain = chain.Build(s)
	errors.Logf("INFO", "mode %v, %d frequent node labels, %d frequent edge labels, min frequency %v",
		s.Mode, len(s.DB.FrequentNodeLabels()), len(s.DB.FrequentEdgeLabels()), s.Min)
	return nil
}

func (m *Miner) Close() error {
	errs := make(chan error)
	go func() {
		errs <- m.Search.Close()
	}()
	go func() {
		errs <- m.Rptr.Close()
	}()
	var first error
	for i := 0; i < 2; i++ {
		err := <-errs
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *Miner) Mine(s *digraph.Search, rptr miners.Reporter) error {
	err := m.Init(s, rptr)
	if err != nil {
		return err
	}
	errors.Logf("INFO", "finished initialization, starting walk")
	err = m.mine(context.Background())
	if err != nil {
		return err
	}
	errors.Logf("INFO", "exiting Mine %v", m.Search.Counters)
	return nil
}

func (m *Miner) mine(ctx context.Context) error {
	workers := m.Config.Workers()
	stack := NewStack()
	for _, root := range m.Search.Roots() {
		stack.Push(root)
	}
	g, ctx := errgroup.WithContext(ctx)
	reports := make(chan *digraph.Node, 100)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		tid := i
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			err := m.work(ctx, tid, stack, reports)
			if err != nil {
				stack.Close()
			}
			return err
		})
	}
	go func() {
		wg.Wait()
		close(reports)
	}()
	g.Go(func() error {
		for n := range reports {
			err := m.Rptr.Report(n)
			if err != nil {
				stack.Close()
				return err
			}
		}
		return nil
	})
	return g.Wait()
}

// work processes nodes until the stack runs dry. A node is finalized
// before it is reported and never touched by the worker afterwards.
func (m *Miner) work(ctx context.Context, tid int, stack *Stack, reports chan<- *digraph.Node) error {
	env := m.Search.NewEnv(tid)
	counters := m.Search.Counters
	for {
		n := stack.Pop()
		if n == nil {
			return nil
		}
		counters.Inc(&counters.Nodes)
		exts := m.Chain.Process(env, n)
		if err := env.Err(); err != nil {
			return err
		}
		for _, ext := range exts {
			stack.Push(ext.Materialize(n, env))
		}
		n.FinalizeIt()
		if n.Discarded() {
			counters.Inc(&counters.Discarded)
		} else {
			counters.Inc(&counters.Reported)
			select {
			case reports <- n:
			case <-ctx.Done():
				return nil
			}
		}
		stack.Done()
	}
}
