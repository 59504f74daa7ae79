package digraph

import (
	"fmt"
	"io"
	"strings"
)

import (
	"github.com/timtadh/parsemis-sub001/types/digraph/subgraph"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

// Formatter renders reported nodes for the file reporters.
type Formatter interface {
	FileExt() string
	PatternName(n *Node) string
	FormatPattern(w io.Writer, n *Node) error
	FormatEmbeddings(w io.Writer, n *Node) error
}

// witnesses are the embeddings written out for n: the final ones in
// embedding based mode, one embedding per supporting graph otherwise.
func witnesses(db Database, n *Node) []*subgraph.Embedding {
	if f, ok := n.Fragment.(*EmbeddingFragment); ok {
		return f.Final()
	}
	graphs := n.Fragment.Graphs()
	embs := make([]*subgraph.Embedding, 0, graphs.Count())
	for g, ok := graphs.NextSet(0); ok; g, ok = graphs.NextSet(g + 1) {
		emb, _ := subgraph.Search(n.Pattern(), db.Graph(int(g)), int(g))()
		if emb != nil {
			embs = append(embs, emb)
		}
	}
	return embs
}

type DotFormatter struct {
	db Database
}

func NewDotFormatter(db Database) *DotFormatter {
	return &DotFormatter{db: db}
}

func (f *DotFormatter) FileExt() string {
	return ".dot"
}

func (f *DotFormatter) PatternName(n *Node) string {
	return graph.Format(n.Pattern(), f.db.NodeLabels(), f.db.EdgeLabels())
}

func (f *DotFormatter) FormatPattern(w io.Writer, n *Node) error {
	dot := graph.Dot(n.Pattern(), f.db.NodeLabels(), f.db.EdgeLabels(), "pattern")
	_, err := fmt.Fprintf(w, "// %s\n// frequency %v\n\n%s\n", f.PatternName(n), n.Frequency(), dot)
	return err
}

func (f *DotFormatter) FormatEmbeddings(w io.Writer, n *Node) error {
	embs := make([]string, 0, 10)
	for _, emb := range witnesses(f.db, n) {
		embs = append(embs, f.embedding(n.Pattern(), emb))
	}
	_, err := fmt.Fprintf(w, "// %s\n\n%s\n\n", f.PatternName(n), strings.Join(embs, "\n"))
	return err
}

func (f *DotFormatter) embedding(pattern *graph.Graph, emb *subgraph.Embedding) string {
	G := f.db.Graph(emb.Graph)
	lines := make([]string, 0, pattern.NodeCount()+pattern.EdgeCount()+2)
	directed := false
	for e, next := pattern.Edges()(); next != nil; e, next = next() {
		directed = directed || pattern.Directed(e)
	}
	kind, undirected := "graph", "--"
	if directed {
		kind, undirected = "digraph", "->"
	}
	lines = append(lines, fmt.Sprintf("%s %q {", kind, f.db.Name(emb.Graph)))
	for u, next := pattern.Nodes()(); next != nil; u, next = next() {
		v := G.NodeAt(emb.Nodes[u.Idx])
		lines = append(lines, fmt.Sprintf("    n%d [label=%q];", v.Idx, f.db.NodeLabels().Label(G.NodeLabel(v))))
	}
	for e, next := pattern.Edges()(); next != nil; e, next = next() {
		src, targ := pattern.Endpoints(e)
		arrow, attrs := "->", ""
		if !pattern.Directed(e) {
			arrow = undirected
			if directed {
				attrs = ", dir=none"
			}
		}
		lines = append(lines, fmt.Sprintf("    n%d %s n%d [label=%q%s];", emb.Nodes[src.Idx], arrow, emb.Nodes[targ.Idx], f.db.EdgeLabels().Label(pattern.EdgeLabel(e)), attrs))
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

// LgFormatter writes patterns in the line graph input format so results
// can be fed back to the loader. Each embedding is a "#=> <graph> <ids>"
// line.
type LgFormatter struct {
	db Database
}

func NewLgFormatter(db Database) *LgFormatter {
	return &LgFormatter{db: db}
}

func (f *LgFormatter) FileExt() string {
	return ".lg"
}

func (f *LgFormatter) PatternName(n *Node) string {
	return graph.Format(n.Pattern(), f.db.NodeLabels(), f.db.EdgeLabels())
}

func (f *LgFormatter) FormatPattern(w io.Writer, n *Node) error {
	p := n.Pattern()
	form := n.Form()
	lines := make([]string, 0, p.NodeCount()+p.EdgeCount()+1)
	lines = append(lines, fmt.Sprintf("t # %v", n.Frequency()))
	for pos, u := range form.Order {
		lines = append(lines, fmt.Sprintf("v %d %s", pos, f.db.NodeLabels().Label(p.NodeLabel(u))))
	}
	for e, next := p.Edges()(); next != nil; e, next = next() {
		src, targ := p.Endpoints(e)
		lines = append(lines, fmt.Sprintf("e %d %d %s", form.Pos[src.Idx], form.Pos[targ.Idx], f.db.EdgeLabels().Label(p.EdgeLabel(e))))
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Join(lines, "\n"))
	return err
}

func (f *LgFormatter) FormatEmbeddings(w io.Writer, n *Node) error {
	form := n.Form()
	for _, emb := range witnesses(f.db, n) {
		ids := make([]string, 0, len(form.Order))
		for _, u := range form.Order {
			ids = append(ids, fmt.Sprintf("%d", emb.Nodes[u.Idx]))
		}
		if _, err := fmt.Fprintf(w, "#=> %s %s\n", f.db.Name(emb.Graph), strings.Join(ids, " ")); err != nil {
			return err
		}
	}
	return nil
}

// FragmentIterator walks reported fragments. No order is promised.
type FragmentIterator func() (*Node, FragmentIterator)

func Fragments(nodes []*Node) (it FragmentIterator) {
	i := 0
	it = func() (*Node, FragmentIterator) {
		if i >= len(nodes) {
			return nil, nil
		}
		n := nodes[i]
		i++
		return n, it
	}
	return it
}
