package reporters

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/miners"
	"github.com/timtadh/parsemis-sub001/stores/bytes_int"
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

// Unique forwards a pattern only the first time its canonical code is
// seen. The codes live in a B+tree, on disk when a cache is configured.
type Unique struct {
	Seen     bytes_int.MultiMap
	Reporter miners.Reporter
}

func NewUnique(c *config.Config, reporter miners.Reporter) (*Unique, error) {
	seen, err := c.BytesIntMultiMap("unique")
	if err != nil {
		return nil, err
	}
	r := &Unique{
		Seen:     seen,
		Reporter: reporter,
	}
	return r, nil
}

func (r *Unique) Report(n *digraph.Node) error {
	has, err := r.Seen.TestAndAdd(n.Code(), int32(n.Thread))
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	return r.Reporter.Report(n)
}

func (r *Unique) Close() error {
	err := r.Seen.Delete()
	if err != nil {
		r.Reporter.Close()
		return err
	}
	return r.Reporter.Close()
}
