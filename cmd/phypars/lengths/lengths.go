// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lengths implements a command to set
// the branch lengths of the trees in a project
// as the number of changes.
package lengths

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phypars/cmd/phypars/cli"
	"github.com/js-arias/phypars/fitch"
	"github.com/js-arias/phypars/tree"
)

var Command = &command.Command{
	Usage: "lengths [-o|--output <file>] <project-file>",
	Short: "set parsimony branch lengths",
	Long: `
Command lengths reads the trees and the alignment of a phypars project, and
sets the length of each branch of the trees as the number of changes in the
branch, in a most parsimonious reconstruction of the states. The sum of the
branch lengths is the parsimony score of the tree.

The argument of the command is the name of the project file.

The trees are written as a tab-delimited tree file in the standard output.
Use the flag --output, or -o, to write the trees into a file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, d, err := cli.ReadData(args[0])
	if err != nil {
		return err
	}
	ls, err := p.Trees()
	if err != nil {
		return err
	}

	trees := make([]tree.Named, 0, len(ls))
	for _, t := range ls {
		lt, err := fitch.Lengths(t.Tree, d.Matrix)
		if err != nil {
			return fmt.Errorf("tree %q: %w", t.Name, err)
		}
		s, err := fitch.Score(t.Tree, d.Matrix)
		if err != nil {
			return fmt.Errorf("tree %q: %w", t.Name, err)
		}
		trees = append(trees, tree.Named{
			Name:  t.Name,
			Score: s,
			Tree:  lt,
		})
	}
	return cli.WriteTrees(c.Stdout(), output, trees)
}
