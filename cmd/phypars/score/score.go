// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package score implements a command to print
// the parsimony score of the trees in a project.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phypars/cmd/phypars/cli"
	"github.com/js-arias/phypars/fitch"
)

var Command = &command.Command{
	Usage: "score [--tree <name>] [--sites] <project-file>",
	Short: "print the parsimony score of the trees in a project",
	Long: `
Command score reads the trees and the alignment of a phypars project, and
prints the parsimony score, the consistency index (CI), and the retention
index (RI) of each tree in the standard output.

The argument of the command is the name of the project file.

By default, all the trees of the project are scored. Use the flag --tree to
score only the tree with the given name.

If the flag --sites is defined, the number of changes of each site pattern is
printed after the indices, in the order of the site patterns.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var sitesFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&sitesFlag, "sites", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, d, err := cli.ReadData(args[0])
	if err != nil {
		return err
	}
	trees, err := p.Trees()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "tree\tscore\tci\tri")
	if sitesFlag {
		fmt.Fprintf(c.Stdout(), "\tsites")
	}
	fmt.Fprintf(c.Stdout(), "\n")

	var found bool
	for _, t := range trees {
		if treeName != "" && t.Name != treeName {
			continue
		}
		found = true

		s, err := fitch.Score(t.Tree, d.Matrix)
		if err != nil {
			return fmt.Errorf("tree %q: %w", t.Name, err)
		}
		ci, err := fitch.CI(t.Tree, d.Matrix)
		if err != nil {
			return fmt.Errorf("tree %q: %w", t.Name, err)
		}
		ri, err := fitch.RI(t.Tree, d.Matrix)
		if err != nil {
			return fmt.Errorf("tree %q: %w", t.Name, err)
		}
		fmt.Fprintf(c.Stdout(), "%s\t%d\t%.4f\t%s", t.Name, s, ci, formatIndex(ri))

		if sitesFlag {
			sites, err := fitch.Sites(t.Tree, d.Matrix)
			if err != nil {
				return fmt.Errorf("tree %q: %w", t.Name, err)
			}
			ls := make([]string, len(sites))
			for i, v := range sites {
				ls[i] = fmt.Sprintf("%d", v)
			}
			fmt.Fprintf(c.Stdout(), "\t%s", strings.Join(ls, ","))
		}
		fmt.Fprintf(c.Stdout(), "\n")
	}
	if !found && treeName != "" {
		return fmt.Errorf("tree %q not found in project %q", treeName, args[0])
	}
	return nil
}

func formatIndex(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return fmt.Sprintf("%.4f", v)
}
