// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package matrix implements a character matrix
// of aligned sequences
// compressed into site patterns.
package matrix

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrMalformed is returned when an alignment
// can not be used as a character matrix.
var ErrMalformed = errors.New("malformed alignment")

// Matrix is an immutable character matrix.
//
// Identical columns of the alignment
// are stored as a single site pattern
// weighted by the number of columns
// with that pattern.
type Matrix struct {
	alpha Alphabet
	taxa  []string
	index map[string]int

	// states of each taxon
	// at each pattern
	states [][]State

	weights []int
	sites   int

	// pattern of each alignment column,
	// nil for a resampled matrix
	columns []int
}

// New creates a new matrix from a list of taxon names
// and its aligned sequences,
// using the given alphabet.
func New(names, seqs []string, a Alphabet) (*Matrix, error) {
	if len(names) != len(seqs) {
		return nil, fmt.Errorf("%w: %d names for %d sequences", ErrMalformed, len(names), len(seqs))
	}

	rows := make([][]State, len(seqs))
	for i, s := range seqs {
		rows[i] = make([]State, len(s))
		for c := 0; c < len(s); c++ {
			st, ok := a.Parse(s[c])
			if !ok {
				return nil, fmt.Errorf("%w: taxon %q: site %d: invalid %s symbol %q", ErrMalformed, names[i], c+1, a.Name(), s[c])
			}
			rows[i][c] = st
		}
	}
	return FromStates(names, rows, a)
}

// TreeChars are the characters
// with a meaning in parenthetical trees.
const treeChars = "(),:;[]"

// FromStates creates a new matrix from a list of taxon names
// and the state sets of each taxon
// at each site.
// A state set with more than one state
// is an ambiguous (or polymorphic) observation.
//
// Underscores in taxon names are read as blanks,
// and names with parenthesis, brackets, commas,
// colons or semicolons are invalid.
func FromStates(names []string, rows [][]State, a Alphabet) (*Matrix, error) {
	if len(names) != len(rows) {
		return nil, fmt.Errorf("%w: %d names for %d sequences", ErrMalformed, len(names), len(rows))
	}
	if len(names) < 3 {
		return nil, fmt.Errorf("%w: expecting at least 3 taxa, got %d", ErrMalformed, len(names))
	}

	m := &Matrix{
		alpha: a,
		taxa:  make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		n = strings.Join(strings.Fields(strings.ReplaceAll(n, "_", " ")), " ")
		if n == "" {
			return nil, fmt.Errorf("%w: taxon %d without name", ErrMalformed, i+1)
		}
		if strings.ContainsAny(n, treeChars) {
			return nil, fmt.Errorf("%w: taxon %q: invalid character in name", ErrMalformed, n)
		}
		if _, dup := m.index[n]; dup {
			return nil, fmt.Errorf("%w: taxon %q repeated", ErrMalformed, n)
		}
		m.index[n] = i
		m.taxa = append(m.taxa, n)
	}

	size := len(rows[0])
	if size == 0 {
		return nil, fmt.Errorf("%w: empty sequences", ErrMalformed)
	}
	for i, r := range rows {
		if len(r) != size {
			return nil, fmt.Errorf("%w: taxon %q: sequence length %d, want %d", ErrMalformed, m.taxa[i], len(r), size)
		}
	}

	all := a.All()
	m.states = make([][]State, len(m.taxa))
	m.columns = make([]int, size)
	patterns := make(map[string]int)
	var key strings.Builder
	for c := 0; c < size; c++ {
		key.Reset()
		for i, r := range rows {
			st := r[c]
			if st == 0 || st&^all != 0 {
				return nil, fmt.Errorf("%w: taxon %q: site %d: invalid %s state set %b", ErrMalformed, m.taxa[i], c+1, a.Name(), uint32(st))
			}
			fmt.Fprintf(&key, "%x.", uint32(st))
		}

		p, ok := patterns[key.String()]
		if !ok {
			p = len(m.weights)
			patterns[key.String()] = p
			for i, r := range rows {
				m.states[i] = append(m.states[i], r[c])
			}
			m.weights = append(m.weights, 0)
		}
		m.weights[p]++
		m.columns[c] = p
	}
	m.sites = size

	return m, nil
}

// Alphabet returns the alphabet of the matrix.
func (m *Matrix) Alphabet() Alphabet {
	return m.alpha
}

// Index returns the index of a taxon
// in the matrix.
// If the taxon is not in the matrix,
// it returns -1.
func (m *Matrix) Index(name string) int {
	i, ok := m.index[name]
	if !ok {
		return -1
	}
	return i
}

// NumPatterns returns the number of site patterns.
func (m *Matrix) NumPatterns() int {
	return len(m.weights)
}

// NumTaxa returns the number of taxa.
func (m *Matrix) NumTaxa() int {
	return len(m.taxa)
}

// Resample returns a bootstrap replicate of the matrix.
//
// The replicate has the same taxa and patterns,
// but the weights are the counts of drawing,
// with replacement,
// as many columns as the original alignment has.
// The receiver is not modified.
func (m *Matrix) Resample(src rand.Source) *Matrix {
	w := make([]float64, len(m.weights))
	for i, v := range m.weights {
		w[i] = float64(v)
	}
	cat := distuv.NewCategorical(w, src)

	weights := make([]int, len(m.weights))
	for i := 0; i < m.sites; i++ {
		weights[int(cat.Rand())]++
	}

	return &Matrix{
		alpha:   m.alpha,
		taxa:    m.taxa,
		index:   m.index,
		states:  m.states,
		weights: weights,
		sites:   m.sites,
	}
}

// Row returns the states of a taxon
// at each pattern.
// The returned slice must not be modified.
func (m *Matrix) Row(taxon int) []State {
	return m.states[taxon]
}

// Sites returns the number of columns
// of the alignment
// (i.e., the sum of the pattern weights).
func (m *Matrix) Sites() int {
	return m.sites
}

// State returns the state set of a taxon
// at a given pattern.
func (m *Matrix) State(taxon, pattern int) State {
	return m.states[taxon][pattern]
}

// Taxa returns the taxon names
// in the order of the matrix.
func (m *Matrix) Taxa() []string {
	taxa := make([]string, len(m.taxa))
	copy(taxa, m.taxa)
	return taxa
}

// Taxon returns the name of the i-th taxon.
func (m *Matrix) Taxon(i int) string {
	return m.taxa[i]
}

// Weight returns the weight of a pattern.
func (m *Matrix) Weight(pattern int) int {
	return m.weights[pattern]
}

// Weights returns the weights of all patterns.
func (m *Matrix) Weights() []int {
	w := make([]int, len(m.weights))
	copy(w, m.weights)
	return w
}
