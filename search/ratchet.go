// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package search

import (
	"context"
	"slices"
	"time"

	"github.com/js-arias/phypars/fitch"
	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/tree"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// Default values of a ratchet search.
const (
	DefaultIterations = 1000
	DefaultStall      = 10
)

// RatchetConfig is the configuration of a ratchet search.
type RatchetConfig struct {
	Config

	// Maximum number of iterations.
	// If zero, DefaultIterations is used.
	Iterations int

	// Maximum number of consecutive iterations
	// without improvement.
	// If zero, DefaultStall is used.
	Stall int

	// Src is the source of random numbers
	// used for resampling.
	// If nil,
	// a source seeded with the current time is used.
	Src rand.Source
}

// RatchetResult is the result of a ratchet search.
type RatchetResult struct {
	// Best tree found,
	// and its score.
	Tree  *tree.Tree
	Score int

	// All distinct trees found
	// with the best score.
	Best *tree.Set

	// Number of iterations done.
	Iterations int

	// Score of the best tree
	// after each iteration.
	Trace []int

	// Score of the tree found at each iteration.
	Candidates []int

	// Complete is false if the search
	// was canceled.
	Complete bool
}

// Ratchet makes a parsimony ratchet search
// starting from the given tree.
//
// At each iteration,
// a resampled matrix is used to perturb the current best tree
// with a hill-climbing search,
// and the perturbed tree is then optimized
// with the original matrix.
// If the optimized tree is strictly better
// it replaces the best tree.
//
// The search ends after the given number of iterations,
// or when the number of iterations without improvement
// reaches the stall limit,
// whichever happens first.
// The context is checked between iterations;
// if it is canceled,
// the best tree found so far is returned.
func Ratchet(ctx context.Context, t *tree.Tree, m *matrix.Matrix, cfg RatchetConfig) (RatchetResult, error) {
	ops, err := cfg.ops()
	if err != nil {
		return RatchetResult{}, err
	}
	score, err := fitch.Score(t, m)
	if err != nil {
		return RatchetResult{}, err
	}

	maxIter := cfg.Iterations
	if maxIter <= 0 {
		maxIter = DefaultIterations
	}
	maxStall := cfg.Stall
	if maxStall <= 0 {
		maxStall = DefaultStall
	}
	src := cfg.Src
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	l := cfg.logger()

	r := RatchetResult{
		Tree:     t.Clone(),
		Score:    score,
		Complete: true,
	}
	r.Best = tree.Single(r.Tree)

	var stall int
	for r.Iterations < maxIter {
		if ctx.Err() != nil {
			r.Complete = false
			l.Warn("ratchet canceled", "iterations", r.Iterations, "score", r.Score)
			break
		}
		r.Iterations++

		rep := m.Resample(src)
		repScore, err := fitch.Length(r.Tree, rep)
		if err != nil {
			return RatchetResult{}, err
		}
		perturbed, err := climb(ctx, r.Tree.Clone(), repScore, rep, ops, cfg.Config)
		if err != nil {
			return RatchetResult{}, err
		}
		pScore, err := fitch.Length(perturbed.Tree, m)
		if err != nil {
			return RatchetResult{}, err
		}
		cand, err := climb(ctx, perturbed.Tree, pScore, m, ops, cfg.Config)
		if err != nil {
			return RatchetResult{}, err
		}
		r.Candidates = append(r.Candidates, cand.Score)

		switch {
		case cand.Score < r.Score:
			r.Tree = cand.Tree
			r.Score = cand.Score
			r.Best = tree.Single(cand.Tree)
			stall = 0
			l.Info("ratchet", "iteration", r.Iterations, "score", r.Score)
		case cand.Score == r.Score:
			r.Best.Add(cand.Tree)
			stall++
		default:
			stall++
		}
		r.Trace = append(r.Trace, r.Score)
		l.Debug("ratchet iteration", "iteration", r.Iterations, "candidate", cand.Score, "best", r.Score, "stall", stall)

		if stall >= maxStall {
			l.Debug("ratchet stalled", "iterations", r.Iterations)
			break
		}
	}
	return r, nil
}

// Summary is a summary of the scores
// of the candidate trees of a ratchet search.
type Summary struct {
	Best   int
	Mean   float64
	SD     float64
	Median float64
}

// Summarize returns the summary of a set of scores.
func Summarize(scores []int) Summary {
	if len(scores) == 0 {
		return Summary{}
	}
	x := make([]float64, len(scores))
	for i, s := range scores {
		x[i] = float64(s)
	}
	slices.Sort(x)

	mean, sd := stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		sd = 0
	}
	return Summary{
		Best:   slices.Min(scores),
		Mean:   mean,
		SD:     sd,
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
	}
}
