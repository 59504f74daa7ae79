package stats

import (
	"fmt"
	"sync/atomic"
)

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counters are the run wide statistics. They are shared by every worker
// and only ever incremented atomically.
type Counters struct {
	Nodes        int64
	Extensions   int64
	Embeddings   int64
	NonCanonical int64
	Duplicates   int64
	Infrequent   int64
	Discarded    int64
	Reported     int64
}

func (c *Counters) Inc(counter *int64) {
	atomic.AddInt64(counter, 1)
}

func (c *Counters) Add(counter *int64, n int) {
	atomic.AddInt64(counter, int64(n))
}

func (c *Counters) Get(counter *int64) int64 {
	return atomic.LoadInt64(counter)
}

// Snapshot reads every counter. The values are read one at a time, so a
// snapshot taken while mining is running is not consistent across
// counters.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"nodes":         c.Get(&c.Nodes),
		"extensions":    c.Get(&c.Extensions),
		"embeddings":    c.Get(&c.Embeddings),
		"non_canonical": c.Get(&c.NonCanonical),
		"duplicates":    c.Get(&c.Duplicates),
		"infrequent":    c.Get(&c.Infrequent),
		"discarded":     c.Get(&c.Discarded),
		"reported":      c.Get(&c.Reported),
	}
}

func (c *Counters) String() string {
	s := c.Snapshot()
	return fmt.Sprintf(
		"nodes %d, extensions %d, embeddings %d, non-canonical %d, duplicates %d, infrequent %d, discarded %d, reported %d",
		s["nodes"], s["extensions"], s["embeddings"], s["non_canonical"],
		s["duplicates"], s["infrequent"], s["discarded"], s["reported"])
}

var counterHelp = map[string]string{
	"nodes":         "search lattice nodes processed",
	"extensions":    "candidate extensions generated",
	"embeddings":    "embeddings created",
	"non_canonical": "extensions pruned as non canonical",
	"duplicates":    "extensions pruned as already seen",
	"infrequent":    "extensions pruned as infrequent",
	"discarded":     "nodes discarded before reporting",
	"reported":      "fragments reported",
}

// Collector exports the counters as prometheus metrics.
type Collector struct {
	counters *Counters
	descs    map[string]*prometheus.Desc
}

func NewCollector(namespace string, c *Counters) *Collector {
	descs := make(map[string]*prometheus.Desc, len(counterHelp))
	for name, help := range counterHelp {
		descs[name] = prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name+"_total"), help, nil, nil)
	}
	return &Collector{counters: c, descs: descs}
}

func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range col.descs {
		ch <- d
	}
}

func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	for name, v := range col.counters.Snapshot() {
		ch <- prometheus.MustNewConstMetric(col.descs[name], prometheus.CounterValue, float64(v))
	}
}

// WriteMetrics writes the counters in the prometheus text format.
func WriteMetrics(path, namespace string, c *Counters) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(namespace, c)); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
