// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add
// an alignment or a configuration file
// to a phypars project.
package add

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phypars/cmd/phypars/cli"
	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/project"
	"github.com/js-arias/phypars/search"
)

var Command = &command.Command{
	Usage: `add [-a|--align <fasta-file>] [--traits <tsv-file>]
	[-c|--config <toml-file>] <project-file>`,
	Short: "add data files to a phypars project",
	Long: `
Command add adds an alignment file, a character observation file, or a search
configuration file to a phypars project.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

The flag --align, or -a, defines the file with the aligned sequences, in
FASTA format. The alignment is validated before it is added to the project,
using the alphabet defined in the search configuration of the project (DNA by
default).

The flag --traits defines a file with observations of discrete characters, in
the form of a tab-delimited file with the fields "taxon", "character", and
"state". Each character can have up to 10 states, and a taxon with more than
one state for a character is treated as polymorphic. If the project has an
alignment, the alignment is used instead of the character observations.

The flag --config, or -c, defines the search configuration file, in TOML
format. Use 'phypars help config' for a description of the configuration
options.

If a flag is given with an empty string, the file is removed from the
project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var alignFile string
var configFile string
var traitFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&alignFile, "align", "-", "")
	c.Flags().StringVar(&alignFile, "a", "-", "")
	c.Flags().StringVar(&traitFile, "traits", "-", "")
	c.Flags().StringVar(&configFile, "config", "-", "")
	c.Flags().StringVar(&configFile, "c", "-", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if alignFile == "-" && configFile == "-" && traitFile == "-" {
		return c.UsageError("expecting --align, --traits, or --config flag")
	}

	p, err := cli.OpenProject(args[0])
	if err != nil {
		return err
	}

	if configFile != "-" {
		if configFile != "" {
			if _, err := readConfig(configFile); err != nil {
				return err
			}
		}
		p.Add(project.Config, configFile)
	}

	if alignFile != "-" {
		prev := p.Add(project.Alignment, alignFile)
		if alignFile != "" {
			m, err := p.Alignment()
			if err != nil {
				p.Add(project.Alignment, prev)
				return err
			}
			fmt.Fprintf(c.Stdout(), "alignment %q: %d taxa, %d sites, %d patterns (%s)\n", alignFile, m.NumTaxa(), m.Sites(), m.NumPatterns(), m.Alphabet().Name())
		}
	}

	if traitFile != "-" {
		prev := p.Add(project.Traits, traitFile)
		if traitFile != "" {
			m, err := p.Traits()
			if err != nil {
				p.Add(project.Traits, prev)
				return err
			}
			fmt.Fprintf(c.Stdout(), "traits %q: %d taxa, %d characters, %d patterns\n", traitFile, m.NumTaxa(), m.Sites(), m.NumPatterns())
		}
	}

	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func readConfig(name string) (search.File, error) {
	f, err := os.Open(name)
	if err != nil {
		return search.File{}, err
	}
	defer f.Close()

	cfg, err := search.ReadConfig(f)
	if err != nil {
		return search.File{}, fmt.Errorf("on file %q: %v", name, err)
	}
	if _, err := matrix.ParseAlphabet(cfg.Alphabet); err != nil {
		return search.File{}, fmt.Errorf("on file %q: %v", name, err)
	}
	return cfg, nil
}
