// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package fitch_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/js-arias/phypars/fitch"
	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/tree"
)

func newMatrix(t testing.TB, names, seqs []string) *matrix.Matrix {
	t.Helper()

	m, err := matrix.New(names, seqs, matrix.DNA)
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	return m
}

func newTree(t testing.TB, nw string) *tree.Tree {
	t.Helper()

	ls, err := tree.ReadNewick(strings.NewReader(nw))
	if err != nil {
		t.Fatalf("unable to read tree %q: %v", nw, err)
	}
	return ls[0]
}

func nested(t testing.TB) *matrix.Matrix {
	t.Helper()

	return newMatrix(t,
		[]string{"a", "b", "c", "d", "e", "f"},
		[]string{
			"CCCAAT",
			"CCCAAT",
			"ACCAAT",
			"AACAAT",
			"AAAAAT",
			"AAAAAT",
		},
	)
}

func TestScore(t *testing.T) {
	m := newMatrix(t,
		[]string{"a", "b", "c", "d"},
		[]string{"AAG", "AAG", "CCG", "CCT"},
	)

	tests := map[string]struct {
		tree  string
		score int
		sites []int
	}{
		"ab|cd": {"((a,b),(c,d));", 3, []int{1, 1}},
		"ac|bd": {"((a,c),(b,d));", 5, []int{2, 1}},
		"ad|bc": {"((a,d),(b,c));", 5, []int{2, 1}},
	}

	for name, test := range tests {
		tr := newTree(t, test.tree)
		s, err := fitch.Score(tr, m)
		if err != nil {
			t.Fatalf("%s: score: %v", name, err)
		}
		if s != test.score {
			t.Errorf("%s: score: got %d, want %d", name, s, test.score)
		}

		sites, err := fitch.Sites(tr, m)
		if err != nil {
			t.Fatalf("%s: sites: %v", name, err)
		}
		// the first pattern has weight 2
		for p, want := range test.sites {
			if sites[p] != want {
				t.Errorf("%s: pattern %d: got %d, want %d", name, p, sites[p], want)
			}
		}
	}
}

func TestAnchor(t *testing.T) {
	m := newMatrix(t,
		[]string{"a", "b", "c", "d", "e", "f", "g"},
		[]string{
			"ACGTACGTRA",
			"ACGTTCGAAA",
			"AGGTACCAAC",
			"TCGAACGTAC",
			"TCCAAGGT-C",
			"ACCAAGCTAG",
			"TCGTTCGAYG",
		},
	)

	trees := []*tree.Tree{newTree(t, "(a,(b,(c,(d,(e,(f,g))))));")}
	trees = append(trees, trees[0].SPR()...)

	for _, tr := range trees {
		want, err := fitch.Score(tr, m)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		for id := 0; id < tr.NumNodes(); id++ {
			s, err := fitch.ScoreFrom(tr, m, id)
			if err != nil {
				t.Fatalf("score from %d: %v", id, err)
			}
			if s != want {
				t.Errorf("tree %s: score from node %d: got %d, want %d", tr.Canon(), id, s, want)
			}
		}
	}
}

func TestZeroScore(t *testing.T) {
	same := newMatrix(t,
		[]string{"a", "b", "c", "d", "e"},
		[]string{"ACGTA", "ACGTA", "ACGTA", "ACGTA", "ACGTA"},
	)
	diff := newMatrix(t,
		[]string{"a", "b", "c", "d", "e"},
		[]string{"ACGTA", "ACGTA", "ACGTA", "ACGTA", "ACGTC"},
	)

	tr := newTree(t, "(a,(b,(c,(d,e))));")
	for _, nt := range append(tr.SPR(), tr) {
		s, err := fitch.Score(nt, same)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		if s != 0 {
			t.Errorf("identical taxa: tree %s: got %d, want %d", nt.Canon(), s, 0)
		}

		s, err = fitch.Score(nt, diff)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		if s <= 0 {
			t.Errorf("different taxa: tree %s: got %d, want > 0", nt.Canon(), s)
		}
	}
}

func TestSingleton(t *testing.T) {
	m := newMatrix(t,
		[]string{"a", "b", "c", "d"},
		[]string{"ACGT", "ACGT", "ACGT", "ACGA"},
	)

	// the three possible unrooted topologies
	for _, nw := range []string{"((a,b),(c,d));", "((a,c),(b,d));", "((a,d),(b,c));"} {
		s, err := fitch.Score(newTree(t, nw), m)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		if s != 1 {
			t.Errorf("tree %s: got %d, want %d", nw, s, 1)
		}
	}
}

func TestSwap(t *testing.T) {
	m := nested(t)
	tr := newTree(t, "(a,(b,(c,(d,(e,f)))));")
	want, _ := fitch.Score(tr, m)

	for _, e := range tr.InternalEdges() {
		a := other(tr.Neighbors(e.A), e.B)
		c := other(tr.Neighbors(e.B), e.A)
		nt, err := tr.Swap(e, a, c)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		back, err := nt.Swap(e, c, a)
		if err != nil {
			t.Fatalf("revert swap: %v", err)
		}
		s, err := fitch.Score(back, m)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		if s != want {
			t.Errorf("reverted swap on edge %v: got %d, want %d", e, s, want)
		}
	}
}

func other(nbr []int, except int) int {
	for _, v := range nbr {
		if v != except {
			return v
		}
	}
	return -1
}

func TestMismatch(t *testing.T) {
	m := newMatrix(t,
		[]string{"a", "b", "c", "d"},
		[]string{"ACGT", "ACGT", "ACGT", "ACGA"},
	)

	for _, nw := range []string{"(a,b,(c,e));", "(a,b,(c,(d,e)));", "(a,b,c);"} {
		if _, err := fitch.Score(newTree(t, nw), m); !errors.Is(err, fitch.ErrMismatch) {
			t.Errorf("tree %s: got error %v, want %v", nw, err, fitch.ErrMismatch)
		}
	}

	// a subset is valid for length
	l, err := fitch.Length(newTree(t, "(a,b,d);"), m)
	if err != nil {
		t.Fatalf("length: %v", err)
	}
	if l != 1 {
		t.Errorf("length: got %d, want %d", l, 1)
	}
	if _, err := fitch.Length(newTree(t, "(a,b,e);"), m); !errors.Is(err, fitch.ErrMismatch) {
		t.Errorf("length: got error %v, want %v", err, fitch.ErrMismatch)
	}
}

func TestIndex(t *testing.T) {
	m := nested(t)

	lo, hi := fitch.Bounds(m)
	if lo != 3 || hi != 7 {
		t.Errorf("bounds: got %d-%d, want %d-%d", lo, hi, 3, 7)
	}

	best := newTree(t, "(a,(b,(c,(d,(e,f)))));")
	ci, err := fitch.CI(best, m)
	if err != nil {
		t.Fatalf("ci: %v", err)
	}
	if ci != 1 {
		t.Errorf("ci: got %.3f, want %.3f", ci, 1.0)
	}
	ri, err := fitch.RI(best, m)
	if err != nil {
		t.Fatalf("ri: %v", err)
	}
	if ri != 1 {
		t.Errorf("ri: got %.3f, want %.3f", ri, 1.0)
	}

	// a tree against the nesting
	worst := newTree(t, "(a,(e,(c,(f,(b,d)))));")
	s, _ := fitch.Score(worst, m)
	ri, _ = fitch.RI(worst, m)
	if want := float64(hi-s) / float64(hi-lo); math.Abs(ri-want) > 1e-9 {
		t.Errorf("ri: got %.3f, want %.3f", ri, want)
	}

	flat := newMatrix(t,
		[]string{"a", "b", "c", "d"},
		[]string{"ACGT", "ACGT", "ACGT", "ACGA"},
	)
	ri, _ = fitch.RI(newTree(t, "((a,b),(c,d));"), flat)
	if !math.IsNaN(ri) {
		t.Errorf("ri without informative characters: got %.3f, want NaN", ri)
	}
}

func TestLengths(t *testing.T) {
	m := newMatrix(t,
		[]string{"a", "b", "c", "d", "e", "f", "g"},
		[]string{
			"ACGTACGTRA",
			"ACGTTCGAAA",
			"AGGTACCAAC",
			"TCGAACGTAC",
			"TCCAAGGT-C",
			"ACCAAGCTAG",
			"TCGTTCGAYG",
		},
	)

	tr := newTree(t, "(a,(b,(c,(d,(e,(f,g))))));")
	for _, nt := range append(tr.NNI(), tr) {
		want, _ := fitch.Score(nt, m)
		lt, err := fitch.Lengths(nt, m)
		if err != nil {
			t.Fatalf("lengths: %v", err)
		}
		var sum float64
		for _, e := range lt.Edges() {
			l, ok := lt.Len(e)
			if !ok {
				t.Errorf("tree %s: edge %v without length", nt.Canon(), e)
			}
			sum += l
		}
		if int(sum) != want {
			t.Errorf("tree %s: sum of lengths: got %.0f, want %d", nt.Canon(), sum, want)
		}
		if lt.Canon() != nt.Canon() {
			t.Errorf("lengths: topology changed")
		}
	}
}
