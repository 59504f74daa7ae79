package reporters

import (
	"io"
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

// HeapProfile writes a heap profile every time a node is reported. Put it
// behind a Skip to keep the file small.
type HeapProfile struct {
	f io.WriteCloser
}

func NewHeapProfile(path string) (*HeapProfile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	hp := &HeapProfile{f: f}
	return hp, nil
}

func (hp *HeapProfile) Report(n *digraph.Node) error {
	return pprof.WriteHeapProfile(hp.f)
}

func (hp *HeapProfile) Close() error {
	return hp.f.Close()
}
