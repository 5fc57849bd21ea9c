// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package search implements heuristic and exact searches
// of the most parsimonious trees
// for a character matrix.
//
// All searches take an explicit configuration.
// The character matrix is shared, read-only,
// by all the goroutines used to score the candidate trees,
// and each candidate is an independent copy of a tree.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/js-arias/phypars/fitch"
	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/tree"
	"golang.org/x/sync/errgroup"
)

// ErrOperator is returned when an unknown rearrangement
// is requested.
var ErrOperator = errors.New("invalid rearrangement operator")

// An Op is a set of tree rearrangement operators.
type Op int

// Valid rearrangement operators.
const (
	// Nearest-neighbor interchange.
	NNI Op = 1 << iota

	// Subtree pruning and regrafting.
	SPR
)

// AllOps uses both NNI and SPR rearrangements.
const AllOps = NNI | SPR

// ParseOps returns a set of operators from a string.
// Valid values are "nni", "spr",
// and "both" or "nni,spr" for both operators.
func ParseOps(s string) (Op, error) {
	var op Op
	for _, f := range strings.Split(strings.ToLower(s), ",") {
		switch strings.TrimSpace(f) {
		case "nni":
			op |= NNI
		case "spr":
			op |= SPR
		case "both", "all":
			op |= AllOps
		default:
			return 0, fmt.Errorf("%w: %q", ErrOperator, f)
		}
	}
	return op, nil
}

func (o Op) String() string {
	switch o {
	case NNI:
		return "nni"
	case SPR:
		return "spr"
	case AllOps:
		return "both"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Config is the configuration of a rearrangement search.
type Config struct {
	// Rearrangement operators.
	// The zero value uses both NNI and SPR.
	Ops Op

	// Number of goroutines used to score candidate trees.
	// If zero, it uses all available CPUs.
	CPU int

	// Logger receives the progress of the search.
	// If nil,
	// the progress is discarded.
	Logger *log.Logger
}

func (c Config) ops() (Op, error) {
	if c.Ops == 0 {
		return AllOps, nil
	}
	if c.Ops&^AllOps != 0 {
		return 0, fmt.Errorf("%w: %d", ErrOperator, int(c.Ops))
	}
	return c.Ops, nil
}

func (c Config) cpu() int {
	if c.CPU <= 0 {
		return runtime.NumCPU()
	}
	return c.CPU
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return c.Logger
}

// Result is the result of a hill-climbing search.
type Result struct {
	Tree  *tree.Tree
	Score int

	// Number of evaluated rounds of rearrangements,
	// including the last one,
	// in which no better tree was found.
	Rounds int
}

// Climb makes a hill-climbing search
// starting from the given tree.
//
// At each round,
// all the rearrangements of the current tree
// are scored,
// and the best tree that improves the current score
// (the first found in case of ties)
// replaces the current tree.
// The search ends when no rearrangement improves the score.
//
// The context is checked between rounds;
// if it is canceled,
// the best tree found so far is returned.
func Climb(ctx context.Context, t *tree.Tree, m *matrix.Matrix, cfg Config) (Result, error) {
	ops, err := cfg.ops()
	if err != nil {
		return Result{}, err
	}
	score, err := fitch.Score(t, m)
	if err != nil {
		return Result{}, err
	}
	return climb(ctx, t.Clone(), score, m, ops, cfg)
}

func climb(ctx context.Context, t *tree.Tree, score int, m *matrix.Matrix, ops Op, cfg Config) (Result, error) {
	l := cfg.logger()
	cpu := cfg.cpu()

	r := Result{
		Tree:  t,
		Score: score,
	}
	for {
		r.Rounds++
		cands := neighbors(r.Tree, ops)
		scores, err := scoreAll(cands, m, cpu)
		if err != nil {
			return Result{}, err
		}

		best := -1
		for i, s := range scores {
			if s >= r.Score {
				continue
			}
			if best < 0 || s < scores[best] {
				best = i
			}
		}
		if best < 0 {
			l.Debug("climb converged", "rounds", r.Rounds, "score", r.Score)
			return r, nil
		}
		r.Tree = cands[best]
		r.Score = scores[best]
		l.Debug("climb", "round", r.Rounds, "score", r.Score, "candidates", len(cands))

		if ctx.Err() != nil {
			l.Warn("climb canceled", "rounds", r.Rounds, "score", r.Score)
			return r, nil
		}
	}
}

// Neighbors returns the rearrangements of a tree,
// without duplicates.
func neighbors(t *tree.Tree, ops Op) []*tree.Tree {
	seen := tree.Single(t)

	var cands []*tree.Tree
	if ops&NNI != 0 {
		for _, nt := range t.NNI() {
			if seen.Add(nt) {
				cands = append(cands, nt)
			}
		}
	}
	if ops&SPR != 0 {
		for _, nt := range t.SPR() {
			if seen.Add(nt) {
				cands = append(cands, nt)
			}
		}
	}
	return cands
}

// ScoreAll returns the score of each tree,
// using cpu goroutines.
func scoreAll(trees []*tree.Tree, m *matrix.Matrix, cpu int) ([]int, error) {
	scores := make([]int, len(trees))

	var g errgroup.Group
	g.SetLimit(cpu)
	for i, t := range trees {
		g.Go(func() error {
			s, err := fitch.Length(t, m)
			if err != nil {
				return err
			}
			scores[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
