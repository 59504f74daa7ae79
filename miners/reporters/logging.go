package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/parsemis-sub001/types/digraph"
)

type Log struct {
	fmtr   digraph.Formatter
	level  string
	prefix string
	count  int
}

func NewLog(fmtr digraph.Formatter, level, prefix string) *Log {
	if level == "" {
		level = "INFO"
	}
	return &Log{fmtr: fmtr, level: level, prefix: prefix}
}

func (lr *Log) Report(n *digraph.Node) error {
	lr.count++
	if lr.prefix != "" {
		errors.Logf(lr.level, "%s %v freq %v %v", lr.prefix, lr.count, n.Frequency(), lr.fmtr.PatternName(n))
	} else {
		errors.Logf(lr.level, "%v freq %v %v", lr.count, n.Frequency(), lr.fmtr.PatternName(n))
	}
	return nil
}

func (lr *Log) Close() error {
	return nil
}
