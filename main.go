package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"os"
)

import (
	"github.com/timtadh/parsemis-sub001/cmd"
	"github.com/timtadh/parsemis-sub001/mine"
)

func init() {
	cmd.UsageMessage = "parsemis --help"
	cmd.ExtendedMessage = `
parsemis - mine the frequent connected subgraphs of a graph database

$ parsemis -o <path> [Global Options] \
    <type> [Type Options] <input-path> \
    <mode> [Mode Options] \
    [<reporter> [Reporter Options]]

Note: You must supply [Global Options] then [<type> [Type Options]] then
      <input-path> then [<mode> [Mode Options]]. Changes in ordering are not
      supported.

Note: You may supply the <input-path> as a regular file, a gzipped file or a
      directory of files. If supplying a gzip file the file extension must be
      '.gz'. Every file in a directory is read in name order.

Note: If you don't supply a reporter by default it will use 'chain log file'.
      See the the documentations for Reporters for details.


Global Options
    -h, --help                view this message
    --types                   show the available types
    --modes                   show the available modes
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (required)
                              NB: will overwrite contents of dir
    -c, --cache=<path>        path to cache directory (optional)
                              NB: will overwrite contents of dir
    -p, --parallelism=<int>   number of mining threads. 0 or 1 mines serially,
                              -1 uses one thread per cpu (default 0)
    --config=<path>           a yaml file of settings. flags override it.
    --support=<num>[%]        minimum support of patterns (default 2). With a
                              % suffix a percentage of the database.
    --max-support=<num>[%]    patterns above this support are explored but not
                              reported (default unbounded)
    --metrics=<path>          write the search counters in the prometheus text
                              format when mining finishes
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

Types
    digraph                   labeled graphs (directed by default)

    digraph Example
        $ parsemis -o /tmp/parsemis --support=10% \
            digraph --loader=lg --max-vertices=8 ./data/molecules.lg.gz \
            dfs --closed

    digraph Options
        -h, help                 view this message
        -l, loader=<name>        the loader to use (veg or lg, default veg)
        -f, format=<name>        the output format (dot or lg, default dot)
        --undirected             treat every edge as undirected
        --dag                    reject graphs with directed cycles
        --min-edges=<int>        minimum edges in a reported pattern
        --max-edges=<int>        maximum edges in a reported pattern
        --min-vertices=<int>     minimum vertices in a reported pattern
        --max-vertices=<int>     maximum vertices in a reported pattern
        --embedding-based        count non overlapping embeddings instead of
                                 supporting graphs
        --ignore-labels=<l,...>  nodes with these labels may be shared by
                                 embeddings (embedding based support only)

    digraph Loaders
        veg File Format
            vertex	{"id":136,"label":"C"}
            edge	{"src":23,"targ":25,"label":"s"}
            graph	{"name":"m0","weight":0.5}

            Note: the spaces between the line type and {...} are tabs
            Note: a graph line starts a new graph in the database. Without
                  graph lines the whole input is one graph.

        lg File Format
            t # <name> [<weight>]
            v <idx> <label>
            e <src-idx> <targ-idx> <label>

Modes
    dfs                       depth first search of the pattern lattice

    dfs Options
        --closed              only report patterns with no super pattern of
                              equal support
        --paths-only          only mine paths
        --trees-only          only mine trees
        --single-rooted       only report patterns with exactly one node
                              without incoming edges (directed only)

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log the patterns
    file                      write the patterns to a file in the output dir
    dir                       write patterns to a nested dir format
    count                     write the number of patterns per edge count
    unique                    takes an "inner reporter" but only passes the
                              unique patterns to inner reporter.
    skip                      pass every n-th pattern to an inner reporter
    heap-profile              write a heap profile as patterns are reported

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -p, patterns=<name>   the prefix of the name of the file in the output
                              directory to write the patterns
        -e, embeddings=<name> the prefix of the name of the file in the output
                              directory to write the embeddings

    dir Options
        -d, dir-name=<name>   the name of the directory in the output directory

    count Options
        -f, filename=<name>   the name of the file in the output directory

    skip Options
        -s, skip=<int>        report every n-th pattern (default 1)

    heap-profile Options
        -p, profile=<path>    where you want the heap-profile written
`
}

func main() {
	os.Exit(mine.Run(os.Args[1:]))
}
