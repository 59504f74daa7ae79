package miners

import (
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

// Note: the miner's Close function should close both the reporter and the
// search that were passed into it.
type Miner interface {
	Mine(*digraph.Search, Reporter) error
	Close() error
}

// Reporter receives every reported search lattice node. Report is only
// called from one goroutine at a time.
type Reporter interface {
	Report(*digraph.Node) error
	Close() error
}
