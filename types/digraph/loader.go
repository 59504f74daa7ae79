package digraph

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/lattice"
	"github.com/timtadh/parsemis-sub001/types/graph"
)

type ErrorList []error

func (self ErrorList) Error() string {
	var s []string
	for _, err := range self {
		s = append(s, err.Error())
	}
	return "Errors [" + strings.Join(s, ", ") + "]"
}

// Loader reads a graph database.
type Loader interface {
	Load(input lattice.Input) (*Dataset, error)
}

// baseLoader builds one transaction graph at a time and hands finished
// graphs to the dataset.
type baseLoader struct {
	ds     *Dataset
	dir    graph.Direction
	g      *graph.Graph
	name   string
	weight float64
	ids    map[int64]graph.Node
	count  int
}

func newBaseLoader(ds *Dataset, directed bool) *baseLoader {
	dir := graph.Undirected
	if directed {
		dir = graph.Outgoing
	}
	return &baseLoader{ds: ds, dir: dir}
}

func (l *baseLoader) startGraph(name string, weight float64) error {
	if err := l.finishGraph(); err != nil {
		return err
	}
	if name == "" {
		name = strconv.Itoa(l.count)
	}
	l.g = graph.New(10, 10)
	l.name = name
	l.weight = weight
	l.ids = make(map[int64]graph.Node)
	return nil
}

func (l *baseLoader) finishGraph() error {
	if l.g == nil {
		return nil
	}
	g, name, weight := l.g, l.name, l.weight
	l.g = nil
	l.count++
	return l.ds.Add(name, g, weight)
}

func (l *baseLoader) addNode(id int64, label string) error {
	if l.g == nil {
		if err := l.startGraph("", 0); err != nil {
			return err
		}
	}
	if _, has := l.ids[id]; has {
		return errors.Errorf("graph %v: duplicate node id %v", l.name, id)
	}
	l.ids[id] = l.g.AddNode(l.ds.NodeLabels().Color(label))
	return nil
}

func (l *baseLoader) addEdge(src, targ int64, label string) error {
	if l.g == nil {
		return errors.Errorf("edge (%v, %v) before any node", src, targ)
	}
	s, has := l.ids[src]
	if !has {
		return errors.Errorf("graph %v: unknown src id %v", l.name, src)
	}
	t, has := l.ids[targ]
	if !has {
		return errors.Errorf("graph %v: unknown targ id %v", l.name, targ)
	}
	if src == targ {
		return errors.Errorf("graph %v: self edge on %v", l.name, src)
	}
	if _, has := l.g.EdgeBetween(s, t, l.dir); has {
		return errors.Errorf("graph %v: parallel edge (%v, %v)", l.name, src, targ)
	}
	l.g.AddEdge(s, t, l.ds.EdgeLabels().Color(label), l.dir)
	return nil
}

// VegLoader reads lines of the form "<type>\t<json>". vertex lines carry
// an id and a label, edge lines src, targ and label. A graph line starts a
// new database graph and may carry a name and a weight; input without
// graph lines is one graph.
type VegLoader struct {
	conf *config.Config
}

func NewVegLoader(conf *config.Config) *VegLoader {
	return &VegLoader{conf: conf}
}

func (v *VegLoader) Load(input lattice.Input) (*Dataset, error) {
	var errs ErrorList
	ds := NewDataset(v.conf.DAG)
	b := newBaseLoader(ds, v.conf.Directed)
	in, closer := input()
	defer closer()
	err := processLines(in, func(line []byte) {
		if len(line) == 0 || !bytes.Contains(line, []byte("\t")) {
			return
		}
		lineType, data := parseLine(line)
		var err error
		switch lineType {
		case "graph":
			err = v.loadGraph(b, data)
		case "vertex":
			err = v.loadVertex(b, data)
		case "edge":
			err = v.loadEdge(b, data)
		default:
			err = errors.Errorf("Unknown line type %v", lineType)
		}
		if err != nil {
			errs = append(errs, err)
		}
	})
	if err != nil {
		return nil, err
	}
	if err := b.finishGraph(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return ds, nil
}

func (v *VegLoader) loadGraph(b *baseLoader, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	name, _ := obj["name"].(string)
	weight := 0.0
	if w, has := obj["weight"]; has {
		n, ok := w.(json.Number)
		if !ok {
			return errors.Errorf("graph %v: weight is not a number", name)
		}
		weight, err = n.Float64()
		if err != nil {
			return err
		}
	}
	return b.startGraph(strings.TrimSpace(name), weight)
}

func (v *VegLoader) loadVertex(b *baseLoader, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	id, err := jsonInt(obj, "id")
	if err != nil {
		return err
	}
	label, _ := obj["label"].(string)
	return b.addNode(id, strings.TrimSpace(label))
}

func (v *VegLoader) loadEdge(b *baseLoader, data []byte) error {
	obj, err := parseJson(data)
	if err != nil {
		return err
	}
	src, err := jsonInt(obj, "src")
	if err != nil {
		return err
	}
	targ, err := jsonInt(obj, "targ")
	if err != nil {
		return err
	}
	label, _ := obj["label"].(string)
	return b.addEdge(src, targ, strings.TrimSpace(label))
}

func jsonInt(obj map[string]interface{}, key string) (int64, error) {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0, errors.Errorf("missing numeric %q in %v", key, obj)
	}
	return n.Int64()
}

// LgLoader reads the line graph format:
//
//	t # <name> [weight]
//	v <idx> <label>
//	e <src> <targ> <label>
type LgLoader struct {
	conf *config.Config
}

func NewLgLoader(conf *config.Config) *LgLoader {
	return &LgLoader{conf: conf}
}

func (l *LgLoader) Load(input lattice.Input) (*Dataset, error) {
	var errs ErrorList
	ds := NewDataset(l.conf.DAG)
	b := newBaseLoader(ds, l.conf.Directed)
	in, closer := input()
	defer closer()
	lineno := 0
	err := processLines(in, func(line []byte) {
		lineno++
		fields := strings.Fields(string(line))
		if len(fields) == 0 || fields[0] == "#" {
			return
		}
		if err := l.loadLine(b, fields); err != nil {
			errs = append(errs, errors.Errorf("line %d: %v", lineno, err))
		}
	})
	if err != nil {
		return nil, err
	}
	if err := b.finishGraph(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return ds, nil
}

func (l *LgLoader) loadLine(b *baseLoader, fields []string) error {
	switch fields[0] {
	case "t":
		if len(fields) < 3 || fields[1] != "#" {
			return errors.Errorf("expected `t # <name>` got %v", fields)
		}
		weight := 0.0
		if len(fields) > 3 {
			w, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return err
			}
			weight = w
		}
		return b.startGraph(fields[2], weight)
	case "v":
		if len(fields) != 3 {
			return errors.Errorf("expected `v <idx> <label>` got %v", fields)
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return err
		}
		return b.addNode(id, fields[2])
	case "e":
		if len(fields) != 4 {
			return errors.Errorf("expected `e <src> <targ> <label>` got %v", fields)
		}
		src, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return err
		}
		targ, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return err
		}
		return b.addEdge(src, targ, fields[3])
	default:
		return errors.Errorf("unknown line type %v", fields[0])
	}
}

func processLines(in io.Reader, process func([]byte)) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		unsafe := scanner.Bytes()
		line := make([]byte, len(unsafe))
		copy(line, unsafe)
		process(line)
	}
	return scanner.Err()
}

func parseJson(data []byte) (obj map[string]interface{}, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseLine(line []byte) (lineType string, data []byte) {
	split := bytes.SplitN(line, []byte("\t"), 2)
	return strings.TrimSpace(string(split[0])), bytes.TrimSpace(split[1])
}
