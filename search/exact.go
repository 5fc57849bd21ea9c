// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/js-arias/phypars/fitch"
	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/tree"
)

// DefaultMaxTaxa is the default maximum number of taxa
// accepted by an exact search.
const DefaultMaxTaxa = 12

// ErrTooManyTaxa is returned when a matrix
// has too many taxa for an exact search.
var ErrTooManyTaxa = errors.New("too many taxa for exact search")

// ExactConfig is the configuration of an exact search.
type ExactConfig struct {
	Config

	// Maximum number of taxa.
	// If zero, DefaultMaxTaxa is used.
	MaxTaxa int
}

// ExactResult is the result of an exact search.
type ExactResult struct {
	// All the distinct most parsimonious trees.
	Trees *tree.Set

	Score int

	// Complete is false if the search was canceled,
	// so the trees are not proven to be optimal.
	Complete bool
}

// Exact makes a branch-and-bound search
// of all the most parsimonious trees of a matrix.
//
// Taxa are added one at a time
// into every edge of each partial tree.
// A partial tree is discarded
// when its length is greater than the best score found,
// so trees tied with the best score are kept.
// The initial bound is the score of a stepwise addition tree
// improved by a hill-climbing search.
//
// The context is checked before each expansion;
// if it is canceled,
// the best trees found so far are returned.
func Exact(ctx context.Context, m *matrix.Matrix, cfg ExactConfig) (ExactResult, error) {
	maxTaxa := cfg.MaxTaxa
	if maxTaxa <= 0 {
		maxTaxa = DefaultMaxTaxa
	}
	if m.NumTaxa() > maxTaxa {
		return ExactResult{}, fmt.Errorf("%w: %d taxa, maximum %d", ErrTooManyTaxa, m.NumTaxa(), maxTaxa)
	}
	ops, err := cfg.ops()
	if err != nil {
		return ExactResult{}, err
	}
	l := cfg.logger()
	cpu := cfg.cpu()

	order, start, err := taxonOrder(m, cpu)
	if err != nil {
		return ExactResult{}, err
	}
	score, err := fitch.Length(start, m)
	if err != nil {
		return ExactResult{}, err
	}
	if m.NumTaxa() == 3 {
		return ExactResult{
			Trees:    tree.Single(start),
			Score:    score,
			Complete: true,
		}, nil
	}

	h, err := climb(ctx, start, score, m, ops, cfg.Config)
	if err != nil {
		return ExactResult{}, err
	}
	l.Debug("exact: initial bound", "score", h.Score)

	b := &bab{
		m:     m,
		order: order,
		cpu:   cpu,
		best:  h.Score,
		trees: tree.Single(h.Tree),
		log:   l,
	}

	root, err := tree.New(order[0], order[1], order[2])
	if err != nil {
		return ExactResult{}, err
	}
	complete, err := b.expand(ctx, root, 3)
	if err != nil {
		return ExactResult{}, err
	}
	if !complete {
		l.Warn("exact search canceled", "score", b.best, "trees", b.trees.Len())
	}
	return ExactResult{
		Trees:    b.trees,
		Score:    b.best,
		Complete: complete,
	}, nil
}

// A bab keeps the state of a branch-and-bound search.
type bab struct {
	m     *matrix.Matrix
	order []string
	cpu   int

	best  int
	trees *tree.Set

	log *log.Logger
}

// Expand adds the k-th taxon into each edge of a partial tree.
// It returns false if the search was canceled.
func (b *bab) expand(ctx context.Context, t *tree.Tree, k int) (bool, error) {
	if ctx.Err() != nil {
		return false, nil
	}

	edges := t.Edges()
	cands := make([]*tree.Tree, 0, len(edges))
	for _, e := range edges {
		nt, err := t.Insert(e, b.order[k])
		if err != nil {
			return false, err
		}
		cands = append(cands, nt)
	}
	scores, err := scoreAll(cands, b.m, b.cpu)
	if err != nil {
		return false, err
	}

	last := k+1 == len(b.order)
	for i, nt := range cands {
		s := scores[i]
		if s > b.best {
			continue
		}
		if !last {
			ok, err := b.expand(ctx, nt, k+1)
			if err != nil || !ok {
				return ok, err
			}
			continue
		}
		if s < b.best {
			b.best = s
			b.trees = tree.NewSet()
			b.log.Debug("exact: new bound", "score", s)
		}
		b.trees.Add(nt)
	}
	return true, nil
}

// TaxonOrder returns the order in which taxa are added
// in an exact search:
// first the triplet with the longest tree,
// and then, at each step,
// the taxon whose cheapest insertion is the most expensive.
// It also returns the stepwise addition tree
// built with that order.
func taxonOrder(m *matrix.Matrix, cpu int) ([]string, *tree.Tree, error) {
	taxa := m.Taxa()
	n := len(taxa)

	var t *tree.Tree
	best := -1
	var first [3]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				nt, err := tree.New(taxa[i], taxa[j], taxa[k])
				if err != nil {
					return nil, nil, err
				}
				s, err := fitch.Length(nt, m)
				if err != nil {
					return nil, nil, err
				}
				if s > best {
					best = s
					t = nt
					first = [3]int{i, j, k}
				}
			}
		}
	}

	order := make([]string, 0, n)
	used := make([]bool, n)
	for _, i := range first {
		order = append(order, taxa[i])
		used[i] = true
	}

	for len(order) < n {
		var next *tree.Tree
		sel, cost := -1, -1
		for i, tx := range taxa {
			if used[i] {
				continue
			}
			nt, s, err := bestInsertion(t, tx, m, cpu)
			if err != nil {
				return nil, nil, err
			}
			if s > cost {
				sel, cost = i, s
				next = nt
			}
		}
		order = append(order, taxa[sel])
		used[sel] = true
		t = next
	}
	return order, t, nil
}
