package reporters

import (
	"fmt"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

// Dir writes every pattern into its own numbered directory:
//
//	<n>/pattern.name
//	<n>/pattern<ext>
//	<n>/embeddings<ext>
//	<n>/frequency
//
// and the number of patterns into count when closed.
type Dir struct {
	config *config.Config
	fmt    digraph.Formatter
	dir    string
	count  int
}

func NewDir(c *config.Config, fmt digraph.Formatter, dirname string) (*Dir, error) {
	patterns := c.OutputFile(dirname)
	err := os.MkdirAll(patterns, 0775)
	if err != nil {
		return nil, err
	}
	r := &Dir{
		config: c,
		fmt:    fmt,
		dir:    patterns,
	}
	return r, nil
}

func (r *Dir) Report(n *digraph.Node) error {
	dir := filepath.Join(r.dir, fmt.Sprintf("%d", r.count))
	err := os.MkdirAll(dir, 0775)
	if err != nil {
		return err
	}
	r.count++
	name, err := os.Create(filepath.Join(dir, "pattern.name"))
	if err != nil {
		return err
	}
	defer name.Close()
	fmt.Fprintf(name, "%s\n", r.fmt.PatternName(n))
	freq, err := os.Create(filepath.Join(dir, "frequency"))
	if err != nil {
		return err
	}
	defer freq.Close()
	fmt.Fprintf(freq, "%v\n", n.Frequency())
	pattern, err := os.Create(filepath.Join(dir, "pattern"+r.fmt.FileExt()))
	if err != nil {
		return err
	}
	defer pattern.Close()
	err = r.fmt.FormatPattern(pattern, n)
	if err != nil {
		return err
	}
	embeddings, err := os.Create(filepath.Join(dir, "embeddings"+r.fmt.FileExt()))
	if err != nil {
		return err
	}
	defer embeddings.Close()
	return r.fmt.FormatEmbeddings(embeddings, n)
}

func (r *Dir) Close() error {
	count, err := os.Create(filepath.Join(r.dir, "count"))
	if err != nil {
		return err
	}
	defer count.Close()
	_, err = fmt.Fprintf(count, "%d\n", r.count)
	return err
}
