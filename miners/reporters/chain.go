package reporters

import (
	"github.com/timtadh/parsemis-sub001/miners"
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

type Chain struct {
	Reporters []miners.Reporter
}

func (r *Chain) Report(n *digraph.Node) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(n)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes every reporter even if one of them fails and returns the
// first error.
func (r *Chain) Close() error {
	var first error
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}
