// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package importcmd implements a command to add trees
// to a phypars project.
package importcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phypars/cmd/phypars/cli"
	"github.com/js-arias/phypars/project"
	"github.com/js-arias/phypars/tree"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `import [-f|--file <tree-file>]
	[--newick <name>] [--timetree]
	<project-file> [<tree-file>...]`,
	Short: "add trees to a phypars project",
	Long: `
Command import reads one or more trees from one or more tree files, and adds
the trees to a phypars project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

By default, the input is expected to be in the form of phypars tab-delimited
tree files (see 'phypars help tree-files'). To import newick trees (i.e.,
trees in parenthetical format), use the flag --newick with a name to be
defined for the trees found in the input files; each tree will be named with
that name and its index in the file. To import time calibrated trees from a
PhyGeo tree file, use the flag --timetree. Rooted trees are unrooted when
they are imported, and all trees must be binary.

By default the trees will be stored in the tree file currently defined for
the project. If the project does not have a tree file, a new one will be
created with the name 'trees.tab'. A different tree file name can be defined
using the flag --file, or -f. If this flag is used, and there is a tree file
already defined, then a new file with that name will be created, and used as
the tree file for the project (previously defined trees will be kept).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var newickName string
var timeTree bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&newickName, "newick", "", "")
	c.Flags().BoolVar(&timeTree, "timetree", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if newickName != "" && timeTree {
		return c.UsageError("flags --newick and --timetree are incompatible")
	}
	p, err := cli.OpenProject(args[0])
	if err != nil {
		return err
	}

	var trees []tree.Named
	names := make(map[string]bool)
	if p.Path(project.Trees) != "" {
		trees, err = p.Trees()
		if err != nil {
			return err
		}
		for _, t := range trees {
			names[t.Name] = true
		}
	}

	args = args[1:]
	if len(args) == 0 {
		args = append(args, "-")
	}
	for i, a := range args {
		fn := a
		if fn == "-" {
			fn = ""
			a = "stdin"
		}
		var nt []tree.Named
		switch {
		case newickName != "":
			tn := newickName
			if i > 0 {
				tn = fmt.Sprintf("%s.%d", newickName, i)
			}
			nt, err = readNewick(c.Stdin(), fn, tn)
		case timeTree:
			nt, err = readTimeTree(c.Stdin(), fn)
		default:
			nt, err = readTreeFile(c.Stdin(), fn)
		}
		if err != nil {
			return err
		}

		for _, t := range nt {
			if names[t.Name] {
				return fmt.Errorf("when adding trees from %q: tree %q already in project", a, t.Name)
			}
			names[t.Name] = true
			trees = append(trees, t)
		}
	}

	if treeFile == "" {
		treeFile = p.Path(project.Trees)
		if treeFile == "" {
			treeFile = "trees.tab"
		}
	}

	if err := project.WriteTrees(treeFile, trees); err != nil {
		return err
	}
	p.Add(project.Trees, treeFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func open(r io.Reader, name string) (io.Reader, func() error, string, error) {
	if name == "" {
		return r, func() error { return nil }, "stdin", nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, name, err
	}
	return f, f.Close, name, nil
}

func readTreeFile(r io.Reader, name string) ([]tree.Named, error) {
	r, closeFn, name, err := open(r, name)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	ls, err := tree.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return ls, nil
}

func readNewick(r io.Reader, name, treeName string) ([]tree.Named, error) {
	r, closeFn, name, err := open(r, name)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	ls, err := tree.ReadNewick(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	trees := make([]tree.Named, 0, len(ls))
	for i, t := range ls {
		trees = append(trees, tree.Named{
			Name:  fmt.Sprintf("%s.%d", treeName, i),
			Score: -1,
			Tree:  t,
		})
	}
	return trees, nil
}

func readTimeTree(r io.Reader, name string) ([]tree.Named, error) {
	r, closeFn, name, err := open(r, name)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	c, err := timetree.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	var trees []tree.Named
	for _, tn := range c.Names() {
		t, err := tree.FromTimeTree(c.Tree(tn))
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		trees = append(trees, tree.Named{
			Name:  tn,
			Score: -1,
			Tree:  t,
		})
	}
	return trees, nil
}
