package reporters

import (
	"io"
	"os"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

// File writes every pattern to one file and its embeddings to another,
// both inside the output directory.
type File struct {
	config     *config.Config
	fmt        digraph.Formatter
	patterns   io.WriteCloser
	embeddings io.WriteCloser
}

func NewFile(c *config.Config, fmt digraph.Formatter, patternsFilename, embeddingsFilename string) (*File, error) {
	patterns, err := os.Create(c.OutputFile(patternsFilename + fmt.FileExt()))
	if err != nil {
		return nil, err
	}
	embeddings, err := os.Create(c.OutputFile(embeddingsFilename + fmt.FileExt()))
	if err != nil {
		patterns.Close()
		return nil, err
	}
	r := &File{
		config:     c,
		fmt:        fmt,
		patterns:   patterns,
		embeddings: embeddings,
	}
	return r, nil
}

func (r *File) Report(n *digraph.Node) error {
	err := r.fmt.FormatPattern(r.patterns, n)
	if err != nil {
		return err
	}
	return r.fmt.FormatEmbeddings(r.embeddings, n)
}

func (r *File) Close() error {
	err := r.patterns.Close()
	if err != nil {
		return err
	}
	err = r.embeddings.Close()
	if err != nil {
		return err
	}
	return nil
}
