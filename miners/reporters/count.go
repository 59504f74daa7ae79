package reporters

import (
	"fmt"
	"os"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

// Count writes the number of reported patterns, and how many of them have
// each edge count, into a file when closed.
type Count struct {
	config   *config.Config
	count    int
	sizes    map[int]int
	filename string
}

func NewCount(c *config.Config, filename string) (*Count, error) {
	r := &Count{
		config:   c,
		sizes:    make(map[int]int),
		filename: filename,
	}
	return r, nil
}

func (r *Count) Report(n *digraph.Node) error {
	r.count++
	r.sizes[n.Pattern().EdgeCount()]++
	return nil
}

func (r *Count) Count() int {
	return r.count
}

func (r *Count) Close() error {
	f, err := os.Create(r.config.OutputFile(r.filename))
	if err != nil {
		return err
	}
	_, perr := fmt.Fprintf(f, "%v\n", r.count)
	for edges := 0; perr == nil && len(r.sizes) > 0; edges++ {
		if c, has := r.sizes[edges]; has {
			_, perr = fmt.Fprintf(f, "%d edges: %d\n", edges, c)
			delete(r.sizes, edges)
		}
	}
	err = f.Close()
	if perr != nil {
		return perr
	}
	if err != nil {
		return err
	}
	return nil
}
