package config

import (
	"io/ioutil"
	"path/filepath"
	"runtime"
)

import (
	"github.com/google/uuid"
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
)

import (
	"github.com/timtadh/parsemis-sub001/stores/bytes_int"
)

// Config holds every setting of a mining run. Zero values for the maximum
// bounds mean unbounded.
type Config struct {
	Cache  string `yaml:"cache"`
	Output string `yaml:"output"`

	Support        float64 `yaml:"support"`
	SupportPercent bool    `yaml:"support-percent"`
	MaxSupport     float64 `yaml:"max-support"`

	MinNodes int `yaml:"min-nodes"`
	MaxNodes int `yaml:"max-nodes"`
	MinEdges int `yaml:"min-edges"`
	MaxEdges int `yaml:"max-edges"`

	EmbeddingBased bool     `yaml:"embedding-based"`
	IgnoreLabels   []string `yaml:"ignore-labels"`
	SingleRooted   bool     `yaml:"single-rooted"`
	Directed       bool     `yaml:"directed"`
	DAG            bool     `yaml:"dag"`
	PathsOnly      bool     `yaml:"paths-only"`
	TreesOnly      bool     `yaml:"trees-only"`
	Closed         bool     `yaml:"closed"`

	Parallelism int `yaml:"parallelism"`
}

func Default() *Config {
	return &Config{
		Support:  2,
		MinNodes: 1,
		Directed: true,
	}
}

// Load reads a YAML file over the settings already in c.
func (c *Config) Load(path string) error {
	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(bytes, c); err != nil {
		return errors.Errorf("could not parse config %v: %v", path, err)
	}
	return nil
}

func (c *Config) Copy() *Config {
	d := *c
	d.IgnoreLabels = append([]string(nil), c.IgnoreLabels...)
	return &d
}

// Validate rejects settings which contradict each other.
func (c *Config) Validate() error {
	if c.Support <= 0 {
		return errors.Errorf("support must be > 0 (got %v)", c.Support)
	}
	if c.SupportPercent && c.Support > 100 {
		return errors.Errorf("support percentage must be <= 100 (got %v)", c.Support)
	}
	if c.MaxSupport != 0 && c.MaxSupport < c.Support && !c.SupportPercent {
		return errors.Errorf("max-support (%v) < support (%v)", c.MaxSupport, c.Support)
	}
	if c.MinNodes < 0 || c.MinEdges < 0 || c.MaxNodes < 0 || c.MaxEdges < 0 {
		return errors.Errorf("node and edge bounds must be >= 0")
	}
	if c.MaxNodes != 0 && c.MaxNodes < c.MinNodes {
		return errors.Errorf("max-nodes (%v) < min-nodes (%v)", c.MaxNodes, c.MinNodes)
	}
	if c.MaxEdges != 0 && c.MaxEdges < c.MinEdges {
		return errors.Errorf("max-edges (%v) < min-edges (%v)", c.MaxEdges, c.MinEdges)
	}
	if c.PathsOnly && c.TreesOnly {
		return errors.Errorf("paths-only and trees-only are exclusive")
	}
	if c.DAG && !c.Directed {
		return errors.Errorf("dag mining needs directed graphs")
	}
	if c.SingleRooted && !c.Directed {
		return errors.Errorf("single-rooted mining needs directed graphs")
	}
	if len(c.IgnoreLabels) > 0 && !c.EmbeddingBased {
		return errors.Errorf("ignore-labels only applies to embedding based support")
	}
	if c.Parallelism < -1 {
		return errors.Errorf("parallelism must be >= -1 (got %v)", c.Parallelism)
	}
	return nil
}

func (c *Config) Workers() int {
	if c.Parallelism == 0 {
		return 1
	} else if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else {
		return c.Parallelism
	}
}

func (c *Config) CacheFile(name string) string {
	return filepath.Join(c.Cache, name)
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

// BytesIntMultiMap is anonymous memory when no cache directory is set and
// a fresh file in the cache directory otherwise.
func (c *Config) BytesIntMultiMap(name string) (bytes_int.MultiMap, error) {
	if c.Cache == "" {
		return bytes_int.AnonBpTree()
	} else {
		return bytes_int.NewBpTree(c.CacheFile(name + "-" + uuid.New().String() + ".bptree"))
	}
}
