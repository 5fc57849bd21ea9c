// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package fitch

import (
	"math"

	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/tree"
)

// Bounds returns the minimum number of changes
// required by the matrix on any tree,
// and the number of changes on a star tree
// (the maximum for any tree).
func Bounds(m *matrix.Matrix) (lo, hi int) {
	n := m.Alphabet().Len()
	sets := make([]matrix.State, m.NumTaxa())
	for p := 0; p < m.NumPatterns(); p++ {
		w := m.Weight(p)
		for i := range sets {
			sets[i] = m.State(i, p)
		}

		// the minimum is the smallest set of states
		// present in every terminal, minus one
		best := n
		for sub := matrix.State(1); sub < 1<<n; sub++ {
			k := sub.Len()
			if k >= best {
				continue
			}
			if hits(sub, sets) {
				best = k
			}
		}
		lo += (best - 1) * w

		mx := len(sets)
		for i := 0; i < n; i++ {
			st := matrix.State(1 << i)
			var c int
			for _, s := range sets {
				if s&st == 0 {
					c++
				}
			}
			if c < mx {
				mx = c
			}
		}
		hi += mx * w
	}
	return lo, hi
}

func hits(sub matrix.State, sets []matrix.State) bool {
	for _, s := range sets {
		if s&sub == 0 {
			return false
		}
	}
	return true
}

// CI returns the consistency index
// of a tree for a matrix.
func CI(t *tree.Tree, m *matrix.Matrix) (float64, error) {
	score, err := Score(t, m)
	if err != nil {
		return 0, err
	}
	if score == 0 {
		return 1, nil
	}
	lo, _ := Bounds(m)
	return float64(lo) / float64(score), nil
}

// RI returns the retention index
// of a tree for a matrix.
// If the matrix has no informative patterns,
// it returns NaN.
func RI(t *tree.Tree, m *matrix.Matrix) (float64, error) {
	score, err := Score(t, m)
	if err != nil {
		return 0, err
	}
	lo, hi := Bounds(m)
	if hi == lo {
		return math.NaN(), nil
	}
	return float64(hi-score) / float64(hi-lo), nil
}

// Lengths returns a copy of a tree
// in which the length of each edge
// is the number of changes on the edge
// in a most parsimonious reconstruction.
// The sum of the lengths is the score of the tree.
func Lengths(t *tree.Tree, m *matrix.Matrix) (*tree.Tree, error) {
	if err := match(t, m); err != nil {
		return nil, err
	}
	s, err := newScorer(t, m)
	if err != nil {
		return nil, err
	}
	s.prelim = make([][]matrix.State, t.NumNodes())

	// the tree is rooted at the middle
	// of the first edge of the anchor
	a := t.Anchor()
	b := t.Neighbors(a)[0]
	pa := s.down(a, b)
	pb := s.down(b, a)

	root := make([]matrix.State, len(pa))
	for p := range root {
		x := pa[p] & pb[p]
		if x == 0 {
			x = pa[p] | pb[p]
		}
		root[p] = x.Lowest()
	}

	nt := t.Clone()
	fa := s.final(root, a)
	fb := s.final(root, b)
	nt.SetLen(tree.Edge{A: a, B: b}, float64(s.changes(root, fa)+s.changes(root, fb)))
	s.up(nt, a, b, fa)
	s.up(nt, b, a, fb)
	return nt, nil
}

// Final returns the final states of a node
// given the states of its ancestor.
func (s *scorer) final(anc []matrix.State, id int) []matrix.State {
	pre := s.prelim[id]
	st := make([]matrix.State, len(anc))
	for p, a := range anc {
		if a&pre[p] != 0 {
			st[p] = a
			continue
		}
		st[p] = pre[p].Lowest()
	}
	return st
}

func (s *scorer) up(t *tree.Tree, id, from int, states []matrix.State) {
	for _, v := range t.Neighbors(id) {
		if v == from {
			continue
		}
		fv := s.final(states, v)
		t.SetLen(tree.Edge{A: id, B: v}, float64(s.changes(states, fv)))
		s.up(t, v, id, fv)
	}
}

func (s *scorer) changes(a, b []matrix.State) int {
	var c int
	for p := range a {
		if a[p] != b[p] {
			c += s.m.Weight(p)
		}
	}
	return c
}
