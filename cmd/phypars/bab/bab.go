// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package bab implements a command to search
// all the most parsimonious trees
// using branch-and-bound.
package bab

import (
	"fmt"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/phypars/cmd/phypars/cli"
	"github.com/js-arias/phypars/search"
	"github.com/js-arias/phypars/tree"
)

var Command = &command.Command{
	Usage: `bab [--max <number>] [--timeout <duration>]
	[--cpu <number>] [-o|--output <file>] [--verbose]
	<project-file>`,
	Short: "search all the most parsimonious trees",
	Long: `
Command bab reads the alignment of a phypars project, and makes an exact
search of all the most parsimonious trees using branch-and-bound. Taxa are
added one at a time to every edge of each partial tree, and a partial tree is
discarded when its length is greater than the best score found so far.

The argument of the command is the name of the project file.

As the number of trees grows very fast with the number of taxa, the search is
only done in alignments with a small number of taxa. The flag --max defines
the maximum number of taxa (default 12).

The flag --timeout defines a time limit for the search (e.g., "90s" or
"10m"). If the limit is reached, or the search is interrupted, the best trees
found so far are reported, but they are not guaranteed to be optimal.

By default, all available processors are used to score the trees. Use the
flag --cpu to define a different number of processors.

All the most parsimonious trees are written as a tab-delimited tree file in
the standard output. Use the flag --output, or -o, to write the trees into a
file.

The options defined in the search configuration file of the project are used
as defaults. Use the flag --verbose to report the progress of the search.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var maxTaxa int
var timeout time.Duration
var numCPU int
var output string
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().IntVar(&maxTaxa, "max", 0, "")
	c.Flags().DurationVar(&timeout, "timeout", 0, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	_, d, err := cli.ReadData(args[0])
	if err != nil {
		return err
	}
	cfg, err := d.Config.ExactConfig()
	if err != nil {
		return err
	}
	if maxTaxa > 0 {
		cfg.MaxTaxa = maxTaxa
	}
	if numCPU > 0 {
		cfg.CPU = numCPU
	}
	if timeout <= 0 {
		timeout, err = d.Config.Timeout()
		if err != nil {
			return err
		}
	}
	l := cli.NewLogger(c.Stderr(), verbose)
	cfg.Logger = l

	ctx, stop := cli.Context(timeout)
	defer stop()

	pr := cli.NewProgress(l)
	r, err := search.Exact(ctx, d.Matrix, cfg)
	if err != nil {
		return err
	}
	if !r.Complete {
		l.Warn("search not complete: trees are not guaranteed to be optimal")
	}
	pr.Done("exact search done", "score", r.Score, "trees", r.Trees.Len())

	var trees []tree.Named
	for i, t := range r.Trees.Trees() {
		trees = append(trees, tree.Named{
			Name:  fmt.Sprintf("bab.%d", i),
			Score: r.Score,
			Tree:  t,
		})
	}
	return cli.WriteTrees(c.Stdout(), output, trees)
}
