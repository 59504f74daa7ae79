package config

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
)

func TestValidate(t *testing.T) {
	x := assert.New(t)
	x.Nil(Default().Validate())
	bad := []func(c *Config){
		func(c *Config) { c.Support = 0 },
		func(c *Config) { c.SupportPercent = true; c.Support = 150 },
		func(c *Config) { c.MaxSupport = 1; c.Support = 2 },
		func(c *Config) { c.MinNodes = 3; c.MaxNodes = 2 },
		func(c *Config) { c.MinEdges = 3; c.MaxEdges = 2 },
		func(c *Config) { c.PathsOnly = true; c.TreesOnly = true },
		func(c *Config) { c.Directed = false; c.DAG = true },
		func(c *Config) { c.Directed = false; c.SingleRooted = true },
		func(c *Config) { c.IgnoreLabels = []string{"C"} },
		func(c *Config) { c.Parallelism = -2 },
	}
	for i, mod := range bad {
		c := Default()
		mod(c)
		x.NotNil(c.Validate(), "case %d", i)
	}
}

func TestWorkers(t *testing.T) {
	x := assert.New(t)
	c := Default()
	x.Equal(1, c.Workers())
	c.Parallelism = -1
	x.Equal(runtime.NumCPU(), c.Workers())
	c.Parallelism = 3
	x.Equal(3, c.Workers())
}

func TestLoadYaml(t *testing.T) {
	x := assert.New(t)
	dir, err := ioutil.TempDir("", "config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "run.yaml")
	err = ioutil.WriteFile(path, []byte(`
support: 3
max-nodes: 4
embedding-based: true
ignore-labels: [C, D]
parallelism: -1
`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	c := Default()
	x.Nil(c.Load(path))
	x.Equal(3.0, c.Support)
	x.Equal(4, c.MaxNodes)
	x.True(c.EmbeddingBased)
	x.True(c.Directed, "unset keys keep their value")
	x.Equal([]string{"C", "D"}, c.IgnoreLabels)
	x.Nil(c.Validate())
	d := c.Copy()
	d.IgnoreLabels[0] = "E"
	x.Equal("C", c.IgnoreLabels[0])
	x.NotNil(c.Load(filepath.Join(dir, "missing.yaml")))
}

func TestBytesIntMultiMap(t *testing.T) {
	x := assert.New(t)
	dir, err := ioutil.TempDir("", "config-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	c := Default()
	c.Cache = dir
	a, err := c.BytesIntMultiMap("dups")
	x.Nil(err)
	b, err := c.BytesIntMultiMap("dups")
	x.Nil(err)
	files, _ := ioutil.ReadDir(dir)
	x.Equal(2, len(files), "every map gets its own file")
	x.Nil(a.Delete())
	x.Nil(b.Delete())
	files, _ = ioutil.ReadDir(dir)
	x.Equal(0, len(files))
}
