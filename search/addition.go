// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package search

import (
	"runtime"

	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/tree"
	"golang.org/x/exp/rand"
)

// Addition builds a tree by stepwise addition:
// each taxon is added at the first edge
// that produces the shortest tree.
//
// If src is nil,
// taxa are added in the order of the matrix;
// otherwise the order is random.
func Addition(m *matrix.Matrix, src rand.Source) (*tree.Tree, error) {
	order := m.Taxa()
	if src != nil {
		perm := rand.New(src).Perm(len(order))
		taxa := order
		order = make([]string, len(taxa))
		for i, p := range perm {
			order[i] = taxa[p]
		}
	}
	return addition(m, order, runtime.NumCPU())
}

func addition(m *matrix.Matrix, order []string, cpu int) (*tree.Tree, error) {
	t, err := tree.New(order[0], order[1], order[2])
	if err != nil {
		return nil, err
	}
	for _, tx := range order[3:] {
		t, _, err = bestInsertion(t, tx, m, cpu)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// BestInsertion returns the first shortest tree
// made by the insertion of a taxon in a tree.
func bestInsertion(t *tree.Tree, taxon string, m *matrix.Matrix, cpu int) (*tree.Tree, int, error) {
	edges := t.Edges()
	cands := make([]*tree.Tree, 0, len(edges))
	for _, e := range edges {
		nt, err := t.Insert(e, taxon)
		if err != nil {
			return nil, 0, err
		}
		cands = append(cands, nt)
	}
	scores, err := scoreAll(cands, m, cpu)
	if err != nil {
		return nil, 0, err
	}

	best := 0
	for i, s := range scores {
		if s < scores[best] {
			best = i
		}
	}
	return cands[best], scores[best], nil
}
