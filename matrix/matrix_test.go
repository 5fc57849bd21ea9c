// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package matrix_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phypars/matrix"
	"golang.org/x/exp/rand"
)

func newMatrix(t testing.TB) *matrix.Matrix {
	t.Helper()

	names := []string{"Acer campbellii", "Acer erythranthum", "Acer platanoides", "Acer saccharinum"}
	seqs := []string{
		"AACGTA",
		"AACGTT",
		"AAGGCA",
		"--GGCR",
	}
	m, err := matrix.New(names, seqs, matrix.DNA)
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	return m
}

func TestMatrix(t *testing.T) {
	m := newMatrix(t)
	testMatrix(t, "new matrix", m)
}

func TestFasta(t *testing.T) {
	m := newMatrix(t)

	var w bytes.Buffer
	if err := m.Fasta(&w); err != nil {
		t.Fatalf("unable to write FASTA data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	nm, err := matrix.ReadFasta(strings.NewReader(w.String()), matrix.DNA)
	if err != nil {
		t.Fatalf("unable to read FASTA data: %v", err)
	}
	testMatrix(t, "fasta", nm)

	// sequences in several lines
	in := `>Acer campbellii
AAC
GTA
>Acer erythranthum
AACGTT
>Acer platanoides
AAGG
CA
>Acer saccharinum
--GG
CR
`
	nm, err = matrix.ReadFasta(strings.NewReader(in), matrix.DNA)
	if err != nil {
		t.Fatalf("unable to read FASTA data: %v", err)
	}
	testMatrix(t, "multi-line fasta", nm)

	if _, err := matrix.ReadFasta(strings.NewReader(""), matrix.DNA); err == nil {
		t.Errorf("empty input: expecting error")
	}
}

func TestPatternTable(t *testing.T) {
	m := newMatrix(t)

	var w bytes.Buffer
	if err := m.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	tab := csv.NewReader(strings.NewReader(w.String()))
	tab.Comma = '\t'
	rows, err := tab.ReadAll()
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}
	head := append([]string{"pattern", "weight"}, m.Taxa()...)
	if !reflect.DeepEqual(rows[0], head) {
		t.Errorf("header: got %v, want %v", rows[0], head)
	}
	if len(rows) != m.NumPatterns()+1 {
		t.Fatalf("rows: got %d, want %d", len(rows), m.NumPatterns()+1)
	}
	want := []string{"0", "2", "A", "A", "A", "N"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("pattern 0: got %v, want %v", rows[1], want)
	}
}

func testMatrix(t testing.TB, name string, m *matrix.Matrix) {
	t.Helper()

	taxa := []string{"Acer campbellii", "Acer erythranthum", "Acer platanoides", "Acer saccharinum"}
	if g := m.Taxa(); !reflect.DeepEqual(g, taxa) {
		t.Errorf("%s: taxa: got %v, want %v", name, g, taxa)
	}

	// the first two columns share a pattern
	if g := m.NumPatterns(); g != 5 {
		t.Errorf("%s: patterns: got %d, want %d", name, g, 5)
	}
	if g := m.Sites(); g != 6 {
		t.Errorf("%s: sites: got %d, want %d", name, g, 6)
	}
	var sum int
	for _, w := range m.Weights() {
		sum += w
	}
	if sum != m.Sites() {
		t.Errorf("%s: sum of weights: got %d, want %d", name, sum, m.Sites())
	}

	all := matrix.DNA.All()
	if g := m.State(m.Index("Acer saccharinum"), 0); g != all {
		t.Errorf("%s: state of gap: got %b, want %b", name, g, all)
	}
	r, _ := matrix.DNA.Parse('R')
	if g := m.State(m.Index("Acer saccharinum"), m.NumPatterns()-1); g != r {
		t.Errorf("%s: state of ambiguity: got %b, want %b", name, g, r)
	}
	if g := m.Index("Acer rubrum"); g != -1 {
		t.Errorf("%s: index of unknown taxon: got %d, want %d", name, g, -1)
	}
}

func TestMalformed(t *testing.T) {
	tests := map[string]struct {
		names []string
		seqs  []string
	}{
		"unequal lengths": {
			names: []string{"a", "b", "c"},
			seqs:  []string{"ACGT", "ACG", "ACGT"},
		},
		"repeated taxon": {
			names: []string{"a", "b", "a"},
			seqs:  []string{"ACGT", "ACGT", "ACGT"},
		},
		"invalid symbol": {
			names: []string{"a", "b", "c"},
			seqs:  []string{"ACGT", "ACGT", "ACGJ"},
		},
		"few taxa": {
			names: []string{"a", "b"},
			seqs:  []string{"ACGT", "ACGT"},
		},
		"empty": {
			names: []string{"a", "b", "c"},
			seqs:  []string{"", "", ""},
		},
		"parenthesis in name": {
			names: []string{"a", "b", "(c,d)"},
			seqs:  []string{"ACGT", "ACGT", "ACGT"},
		},
		"colon in name": {
			names: []string{"a", "b", "c:1"},
			seqs:  []string{"ACGT", "ACGT", "ACGT"},
		},
		"underscore as blank": {
			names: []string{"Acer rubrum", "Acer_rubrum", "c"},
			seqs:  []string{"ACGT", "ACGT", "ACGT"},
		},
	}

	for name, test := range tests {
		_, err := matrix.New(test.names, test.seqs, matrix.DNA)
		if !errors.Is(err, matrix.ErrMalformed) {
			t.Errorf("%s: got error %v, want %v", name, err, matrix.ErrMalformed)
		}
	}
}

func TestTaxonNames(t *testing.T) {
	names := []string{"Acer_campbellii", "  Acer   platanoides ", "Acer saccharinum"}
	m, err := matrix.New(names, []string{"ACGT", "ACGA", "ACGG"}, matrix.DNA)
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	want := []string{"Acer campbellii", "Acer platanoides", "Acer saccharinum"}
	if g := m.Taxa(); !reflect.DeepEqual(g, want) {
		t.Errorf("taxa: got %v, want %v", g, want)
	}
}

func TestStandard(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	seqs := []string{"0120", "01?0", "1121", "9-21"}
	m, err := matrix.New(names, seqs, matrix.Standard)
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	if g := m.NumPatterns(); g != 4 {
		t.Errorf("patterns: got %d, want %d", g, 4)
	}
	if g := m.State(3, 0); g != 1<<9 {
		t.Errorf("state: got %b, want %b", g, 1<<9)
	}
	if g := m.State(3, 1); g != matrix.Standard.All() {
		t.Errorf("state: got %b, want %b", g, matrix.Standard.All())
	}
}

func TestResample(t *testing.T) {
	m := newMatrix(t)
	orig := m.Weights()

	src := rand.NewSource(1)
	for i := 0; i < 10; i++ {
		r := m.Resample(src)
		if r.NumPatterns() != m.NumPatterns() {
			t.Fatalf("replicate %d: patterns: got %d, want %d", i, r.NumPatterns(), m.NumPatterns())
		}
		var sum int
		for _, w := range r.Weights() {
			sum += w
		}
		if sum != m.Sites() {
			t.Errorf("replicate %d: sum of weights: got %d, want %d", i, sum, m.Sites())
		}
	}

	if g := m.Weights(); !reflect.DeepEqual(g, orig) {
		t.Errorf("original weights modified: got %v, want %v", g, orig)
	}

	a := m.Resample(rand.NewSource(7)).Weights()
	b := m.Resample(rand.NewSource(7)).Weights()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("replicates with the same seed: got %v and %v", a, b)
	}
}
