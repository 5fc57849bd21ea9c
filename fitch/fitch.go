// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fitch implements the Fitch algorithm
// to score unordered parsimony
// of a character matrix on an unrooted tree.
package fitch

import (
	"errors"
	"fmt"

	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/tree"
)

// ErrMismatch is returned when the terminals of a tree
// are not the taxa of a matrix.
var ErrMismatch = errors.New("tree terminals do not match matrix taxa")

// Score returns the parsimony score of a tree
// for a character matrix.
// The terminals of the tree must be the same
// as the taxa in the matrix.
func Score(t *tree.Tree, m *matrix.Matrix) (int, error) {
	return ScoreFrom(t, m, t.Anchor())
}

// ScoreFrom returns the parsimony score of a tree
// using the indicated node as the starting point
// of the traversal.
// The score is the same for any node.
func ScoreFrom(t *tree.Tree, m *matrix.Matrix, anchor int) (int, error) {
	if err := match(t, m); err != nil {
		return 0, err
	}
	if anchor < 0 || anchor >= t.NumNodes() {
		return 0, fmt.Errorf("invalid anchor node %d", anchor)
	}
	s, err := newScorer(t, m)
	if err != nil {
		return 0, err
	}
	s.down(anchor, -1)
	return s.score(), nil
}

// Length returns the parsimony score of a tree
// whose terminals are a subset of the matrix taxa.
func Length(t *tree.Tree, m *matrix.Matrix) (int, error) {
	s, err := newScorer(t, m)
	if err != nil {
		return 0, err
	}
	s.down(t.Anchor(), -1)
	return s.score(), nil
}

// Sites returns the number of changes
// of each pattern of the matrix
// (without the pattern weight).
func Sites(t *tree.Tree, m *matrix.Matrix) ([]int, error) {
	if err := match(t, m); err != nil {
		return nil, err
	}
	s, err := newScorer(t, m)
	if err != nil {
		return nil, err
	}
	s.down(t.Anchor(), -1)
	return s.steps, nil
}

// A scorer keeps the state of a Fitch down-pass.
type scorer struct {
	t *tree.Tree
	m *matrix.Matrix

	// matrix row of each terminal
	rows []int

	// changes at each pattern
	steps []int

	// preliminary state sets
	// of each node,
	// only stored by a reconstruction
	prelim [][]matrix.State
}

func newScorer(t *tree.Tree, m *matrix.Matrix) (*scorer, error) {
	rows := make([]int, t.NumNodes())
	for id := range rows {
		rows[id] = -1
		if !t.IsTerm(id) {
			continue
		}
		r := m.Index(t.Taxon(id))
		if r < 0 {
			return nil, fmt.Errorf("%w: taxon %q not in matrix", ErrMismatch, t.Taxon(id))
		}
		rows[id] = r
	}
	return &scorer{
		t:     t,
		m:     m,
		rows:  rows,
		steps: make([]int, m.NumPatterns()),
	}, nil
}

// Down returns the preliminary state set
// of the subtree of id
// when the tree is oriented away from the node from.
// If from is -1,
// all the neighbors of id are descendants.
func (s *scorer) down(id, from int) []matrix.State {
	var set []matrix.State
	if r := s.rows[id]; r >= 0 {
		set = append([]matrix.State(nil), s.m.Row(r)...)
	}
	for _, v := range s.t.Neighbors(id) {
		if v == from {
			continue
		}
		desc := s.down(v, id)
		if set == nil {
			set = append([]matrix.State(nil), desc...)
			continue
		}
		s.join(set, desc)
	}
	if s.prelim != nil {
		s.prelim[id] = set
	}
	return set
}

// Join stores in set the Fitch combination
// of set and other.
func (s *scorer) join(set, other []matrix.State) {
	for p, st := range set {
		x := st & other[p]
		if x == 0 {
			set[p] = st | other[p]
			s.steps[p]++
			continue
		}
		set[p] = x
	}
}

func (s *scorer) score() int {
	var sum int
	for p, c := range s.steps {
		sum += c * s.m.Weight(p)
	}
	return sum
}

func match(t *tree.Tree, m *matrix.Matrix) error {
	if t.NumTerms() != m.NumTaxa() {
		return fmt.Errorf("%w: tree with %d terminals, matrix with %d taxa", ErrMismatch, t.NumTerms(), m.NumTaxa())
	}
	for _, tx := range m.Taxa() {
		if t.Term(tx) < 0 {
			return fmt.Errorf("%w: taxon %q not in tree", ErrMismatch, tx)
		}
	}
	return nil
}
