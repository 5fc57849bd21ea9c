// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package climb implements a command to search
// the most parsimonious trees
// using hill-climbing.
package climb

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phypars/cmd/phypars/cli"
	"github.com/js-arias/phypars/search"
	"github.com/js-arias/phypars/tree"
)

var Command = &command.Command{
	Usage: `climb [--ops <operators>] [--cpu <number>]
	[--seed <number>] [-o|--output <file>] [--verbose]
	<project-file>`,
	Short: "search trees with hill-climbing",
	Long: `
Command climb reads the alignment of a phypars project, and makes a
hill-climbing search of the most parsimonious tree. At each round of the
search, all the rearrangements of the current tree are scored, and the best
one that improves the score replaces the current tree. The search ends when
no rearrangement improves the score.

The argument of the command is the name of the project file.

If the project has trees, a search is started from each tree. Otherwise, a
single search is started from a stepwise addition tree. By default the taxa
are added in the order of the alignment; use the flag --seed to define a seed
for a random addition sequence. If the flag is not defined, the seed of the
search configuration is used.

The flag --ops defines the tree rearrangements used in the search. Valid
values are "nni", "spr", and "both" (the default).

By default, all available processors are used to score the trees. Use the
flag --cpu to define a different number of processors.

The resulting trees are written as a tab-delimited tree file in the standard
output. Use the flag --output, or -o, to write the trees into a file.

The options defined in the search configuration file of the project are used
as defaults. Use the flag --verbose to report the progress of each round of
the search.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var opsFlag string
var numCPU int
var seedFlag int64
var output string
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&opsFlag, "ops", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().Int64Var(&seedFlag, "seed", 0, "")
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
	cfg, err := d.Config.Config()
	if err != nil {
		return err
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
	var trees []tree.Named
	for i, st := range start {
		r, err := search.Climb(ctx, st.Tree, d.Matrix, cfg)
		if err != nil {
			return fmt.Errorf("tree %q: %w", st.Name, err)
		}
		l.Info("climb", "start", st.Name, "score", r.Score, "rounds", r.Rounds)
		trees = append(trees, tree.Named{
			Name:  fmt.Sprintf("climb.%d", i),
			Score: r.Score,
			Tree:  r.Tree,
		})
		if ctx.Err() != nil {
			l.Warn("search interrupted")
			break
		}
	}
	pr.Done("climb done", "trees", len(trees))

	return cli.WriteTrees(c.Stdout(), output, trees)
}
