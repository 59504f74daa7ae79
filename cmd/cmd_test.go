package cmd

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/parsemis-sub001/config"
	"github.com/timtadh/parsemis-sub001/miners/reporters"
)

func TestParseSupport(t *testing.T) {
	x := assert.New(t)
	s, percent := ParseSupport("10%")
	x.Equal(10.0, s)
	x.True(percent)
	s, percent = ParseSupport(" 1.5 ")
	x.Equal(1.5, s)
	x.False(percent)
}

func TestParseList(t *testing.T) {
	x := assert.New(t)
	x.Equal([]string{"C", "H"}, ParseList("C, H,,"))
	x.Equal([]string{}, ParseList(""))
}

func TestInputDir(t *testing.T) {
	x := assert.New(t)
	dir := t.TempDir()
	x.Nil(ioutil.WriteFile(filepath.Join(dir, "a.lg"), []byte("t # a\n"), 0644))
	f, err := os.Create(filepath.Join(dir, "b.lg.gz"))
	x.Nil(err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("t # b\n"))
	x.Nil(err)
	x.Nil(gz.Close())
	x.Nil(f.Close())
	x.Nil(os.Mkdir(filepath.Join(dir, "sub"), 0775))

	r, closer := Input(dir)
	defer closer()
	bytes, err := ioutil.ReadAll(r)
	x.Nil(err)
	x.Equal("t # a\nt # b\n", string(bytes))
}

func TestAssertDirCreates(t *testing.T) {
	x := assert.New(t)
	dir := filepath.Join(t.TempDir(), "out", "nested")
	x.Equal(dir, AssertDir(dir))
	fi, err := os.Stat(dir)
	x.Nil(err)
	x.True(fi.IsDir())
}

func TestChainReporterStopsAtEndchain(t *testing.T) {
	x := assert.New(t)
	argv := []string{"log", "log", "-p", "x", "endchain", "rest"}
	rptr, rest := Reporters["chain"](Reporters, argv, nil, config.Default())
	chain, ok := rptr.(*reporters.Chain)
	x.True(ok)
	x.Equal(2, len(chain.Reporters))
	x.Equal([]string{"rest"}, rest)
}
