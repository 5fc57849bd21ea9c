// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ReadFasta reads an aligned set of sequences
// in FASTA format,
// using the given alphabet.
//
// Here is an example file:
//
//	>Acer campbellii
//	ACGTTGCA
//	ACG-
//	>Acer platanoides
//	ACGTAGCAACGT
func ReadFasta(r io.Reader, a Alphabet) (*Matrix, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))

	var names []string
	var seqs []string
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("sequence %d: unexpected sequence type %T", len(seqs)+1, sc.Seq())
		}
		name := s.Name()
		if d := s.Description(); d != "" {
			name += " " + d
		}
		b := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			b[i] = byte(l)
		}
		names = append(names, name)
		seqs = append(seqs, string(b))
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("while reading data: %v", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("while reading data: %v", io.EOF)
	}
	return New(names, seqs, a)
}

// Fasta writes the alignment of the matrix
// in FASTA format.
// A resampled matrix is written
// with each pattern repeated by its weight.
func (m *Matrix) Fasta(w io.Writer) error {
	cols := m.columns
	if cols == nil {
		cols = make([]int, 0, m.sites)
		for p, wt := range m.weights {
			for i := 0; i < wt; i++ {
				cols = append(cols, p)
			}
		}
	}

	const lineSize = 60
	fw := fasta.NewWriter(w, lineSize)
	for i, tx := range m.taxa {
		ls := make([]alphabet.Letter, len(cols))
		for j, p := range cols {
			ls[j] = alphabet.Letter(m.alpha.Symbol(m.states[i][p]))
		}
		if _, err := fw.Write(linear.NewSeq(tx, ls, alphabet.DNAredundant)); err != nil {
			return fmt.Errorf("while writing data: taxon %q: %v", tx, err)
		}
	}
	return nil
}

// TSV writes the site patterns of the matrix
// as a TSV file.
//
// The TSV file contains the following fields:
//
//   - pattern, the index of the pattern
//   - weight, the number of columns with the pattern
//   - a field for each taxon, with the symbol of the taxon
//     at the pattern
func (m *Matrix) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := append([]string{"pattern", "weight"}, m.taxa...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	row := make([]string, len(header))
	for p, wt := range m.weights {
		row[0] = strconv.Itoa(p)
		row[1] = strconv.Itoa(wt)
		for i := range m.taxa {
			row[i+2] = string(m.alpha.Symbol(m.states[i][p]))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
