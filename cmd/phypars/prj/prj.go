// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/phypars/fitch"
	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/project"
	"github.com/js-arias/phypars/search"
)

var Command = &command.Command{
	Usage: "prj [--patterns] [--fasta] <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a phypars project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.

The flag --patterns prints the site patterns of the character matrix used in
the searches, as a tab-delimited table with the fields "pattern", "weight",
and one field for each taxon.

The flag --fasta prints the character matrix used in the searches in FASTA
format. It can be used to export the characters of a project with character
observations.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var patternsFlag bool
var fastaFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&patternsFlag, "patterns", false, "")
	c.Flags().BoolVar(&fastaFlag, "fasta", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if patternsFlag || fastaFlag {
		m, err := p.Matrix()
		if err != nil {
			return err
		}
		if patternsFlag {
			if err := m.TSV(c.Stdout()); err != nil {
				return err
			}
		}
		if fastaFlag {
			if err := m.Fasta(c.Stdout()); err != nil {
				return err
			}
		}
		return nil
	}

	cfg, err := p.Config()
	if err != nil {
		return err
	}
	if name := p.Path(project.Config); name != "" {
		printConfig(c.Stdout(), name, cfg)
	}

	if name := p.Path(project.Alignment); name != "" {
		m, err := p.Alignment()
		if err != nil {
			return err
		}
		printAlignment(c.Stdout(), name, m)
	}

	if name := p.Path(project.Traits); name != "" {
		m, err := p.Traits()
		if err != nil {
			return err
		}
		printAlignment(c.Stdout(), name, m)
	}

	if name := p.Path(project.Trees); name != "" {
		trees, err := p.Trees()
		if err != nil {
			return err
		}
		terms := make(map[string]bool)
		for _, t := range trees {
			for _, tx := range t.Tree.Terms() {
				terms[tx] = true
			}
		}
		fmt.Fprintf(c.Stdout(), "Trees:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", name)
		fmt.Fprintf(c.Stdout(), "\ttrees: %d\n", len(trees))
		fmt.Fprintf(c.Stdout(), "\tterminals: %d\n", len(terms))
		fmt.Fprintf(c.Stdout(), "\n")
	}
	return nil
}

func printConfig(w io.Writer, name string, cfg search.File) {
	fmt.Fprintf(w, "Search configuration:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	if cfg.Alphabet != "" {
		fmt.Fprintf(w, "\talphabet: %s\n", cfg.Alphabet)
	}
	if cfg.Ops != "" {
		fmt.Fprintf(w, "\trearrangements: %s\n", cfg.Ops)
	}
	if cfg.Ratchet.Iterations > 0 {
		fmt.Fprintf(w, "\tratchet iterations: %d\n", cfg.Ratchet.Iterations)
	}
	if cfg.Ratchet.Stall > 0 {
		fmt.Fprintf(w, "\tratchet stall: %d\n", cfg.Ratchet.Stall)
	}
	if cfg.Exact.MaxTaxa > 0 {
		fmt.Fprintf(w, "\texact search taxa: %d\n", cfg.Exact.MaxTaxa)
	}
	if cfg.Exact.Timeout != "" {
		fmt.Fprintf(w, "\texact search timeout: %s\n", cfg.Exact.Timeout)
	}
	fmt.Fprintf(w, "\n")
}

func printAlignment(w io.Writer, name string, m *matrix.Matrix) {
	lo, hi := fitch.Bounds(m)

	fmt.Fprintf(w, "Characters:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\talphabet: %s\n", m.Alphabet().Name())
	fmt.Fprintf(w, "\ttaxa: %d\n", m.NumTaxa())
	fmt.Fprintf(w, "\tsites: %d\n", m.Sites())
	fmt.Fprintf(w, "\tpatterns: %d\n", m.NumPatterns())
	fmt.Fprintf(w, "\tminimum length: %d\n", lo)
	fmt.Fprintf(w, "\tstar tree length: %d\n", hi)
	fmt.Fprintf(w, "\n")
}
