// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ratchet implements a command to search
// the most parsimonious trees
// using the parsimony ratchet.
package ratchet

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phypars/cmd/phypars/cli"
	"github.com/js-arias/phypars/search"
	"github.com/js-arias/phypars/tree"
	"golang.org/x/exp/rand"
)

var Command = &command.Command{
	Usage: `ratchet [--iter <number>] [--stall <number>]
	[--seed <number>] [--ops <operators>] [--cpu <number>]
	[-o|--output <file>] [--verbose]
	<project-file>`,
	Short: "search trees with the parsimony ratchet",
	Long: `
Command ratchet reads the alignment of a phypars project, and makes a search
of the most parsimonious trees using the parsimony ratchet. At each iteration
of the ratchet, the sites of the alignment are resampled, and the current
best tree is perturbed by a hill-climbing search with the resampled sites.
The perturbed tree is then optimized with the original alignment, and if it
is better than the current best tree, it replaces it.

The argument of the command is the name of the project file.

If the project has trees, the first tree of the project is used as the
starting tree. Otherwise, the search starts from a stepwise addition tree.

The flag --iter defines the maximum number of iterations (default 1000). The
flag --stall defines the maximum number of consecutive iterations without an
improvement of the score (default 10). The search stops at whichever limit is
reached first.

The flag --seed defines the seed of the random number generator. It is also
used for a random addition sequence of the starting tree. If it is not
defined, the seed of the search configuration is used. If no seed is
defined, the current time is used as the seed, and the taxa of the starting
tree are added in the order of the alignment.

The flag --ops defines the tree rearrangements used in the search. Valid
values are "nni", "spr", and "both" (the default). By default, all available
processors are used to score the trees. Use the flag --cpu to define a
different number of processors.

All the distinct trees found with the best score are written as a
tab-delimited tree file in the standard output. Use the flag --output, or -o,
to write the trees into a file. A summary of the scores found at each
iteration is reported in the standard error.

The options defined in the search configuration file of the project are used
as defaults. Use the flag --verbose to report the progress of each iteration.
If the search is interrupted, the best trees found so far are reported.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var iterFlag int
var stallFlag int
var seedFlag int64
var opsFlag string
var numCPU int
var output string
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().IntVar(&iterFlag, "iter", 0, "")
	c.Flags().IntVar(&stallFlag, "stall", 0, "")
	c.Flags().Int64Var(&seedFlag, "seed", 0, "")
	c.Flags().StringVar(&opsFlag, "ops", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, d, err := cli.ReadData(args[0])
	if err != nil {
		return err
	}
	cfg, err := d.Config.RatchetConfig()
	if err != nil {
		return err
	}
	if iterFlag > 0 {
		cfg.Iterations = iterFlag
	}
	if stallFlag > 0 {
		cfg.Stall = stallFlag
	}
	if seedFlag != 0 {
		cfg.Src = rand.NewSource(uint64(seedFlag))
	}
	if opsFlag != "" {
		cfg.Ops, err = search.ParseOps(opsFlag)
		if err != nil {
			return err
		}
	}
	if numCPU > 0 {
		cfg.CPU = numCPU
	}
	l := cli.NewLogger(c.Stderr(), verbose)
	cfg.Logger = l

	start, err := cli.StartTrees(p, d.Matrix, d.Seed(seedFlag))
	if err != nil {
		return err
	}

	ctx, stop := cli.Context(0)
	defer stop()

	pr := cli.NewProgress(l)
	r, err := search.Ratchet(ctx, start[0].Tree, d.Matrix, cfg)
	if err != nil {
		return fmt.Errorf("tree %q: %w", start[0].Name, err)
	}
	if !r.Complete {
		l.Warn("search interrupted")
	}

	sum := search.Summarize(r.Candidates)
	l.Info("iteration scores", "best", sum.Best, "mean", fmt.Sprintf("%.2f", sum.Mean), "sd", fmt.Sprintf("%.2f", sum.SD), "median", sum.Median)
	pr.Done("ratchet done", "iterations", r.Iterations, "score", r.Score, "trees", r.Best.Len())

	var trees []tree.Named
	for i, t := range r.Best.Trees() {
		trees = append(trees, tree.Named{
			Name:  fmt.Sprintf("ratchet.%d", i),
			Score: r.Score,
			Tree:  t,
		})
	}
	return cli.WriteTrees(c.Stdout(), output, trees)
}
