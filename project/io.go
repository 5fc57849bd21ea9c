// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/search"
	"github.com/js-arias/phypars/trait"
	"github.com/js-arias/phypars/tree"
)

// Matrix returns the character matrix of a project.
// If the project has an alignment,
// the matrix is read from the alignment;
// otherwise it is built from the character observations.
func (p *Project) Matrix() (*matrix.Matrix, error) {
	if p.Path(Alignment) != "" {
		return p.Alignment()
	}
	if p.Path(Traits) != "" {
		return p.Traits()
	}
	return nil, fmt.Errorf("neither alignment nor traits defined in project %q", p.name)
}

// Alignment reads the aligned sequences
// as defined in a project.
// The alphabet is taken from the search configuration
// (DNA by default).
func (p *Project) Alignment() (*matrix.Matrix, error) {
	name := p.Path(Alignment)
	if name == "" {
		return nil, fmt.Errorf("alignment not defined in project %q", p.name)
	}

	cfg, err := p.Config()
	if err != nil {
		return nil, err
	}
	a := matrix.DNA
	if cfg.Alphabet != "" {
		a, err = matrix.ParseAlphabet(cfg.Alphabet)
		if err != nil {
			return nil, fmt.Errorf("on project %q: %v", p.name, err)
		}
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := matrix.ReadFasta(f, a)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return m, nil
}

// Config reads the search configuration
// as defined in a project.
// If the project does not have a configuration file,
// it returns an empty configuration.
func (p *Project) Config() (search.File, error) {
	name := p.Path(Config)
	if name == "" {
		return search.File{}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return search.File{}, err
	}
	defer f.Close()

	cfg, err := search.ReadConfig(f)
	if err != nil {
		return search.File{}, fmt.Errorf("on file %q: %w", name, err)
	}
	return cfg, nil
}

// Traits reads a file of character observations
// as defined in a project,
// and returns it as a character matrix.
func (p *Project) Traits() (*matrix.Matrix, error) {
	name := p.Path(Traits)
	if name == "" {
		return nil, fmt.Errorf("traits not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := trait.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	m, err := d.Matrix()
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return m, nil
}

// Trees reads a tree file
// as defined in a project.
func (p *Project) Trees() ([]tree.Named, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ls, err := tree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %w", name, err)
	}
	return ls, nil
}

// WriteTrees writes a list of trees
// into a file.
func WriteTrees(name string, trees []tree.Named) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tree.WriteTSV(f, trees); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
