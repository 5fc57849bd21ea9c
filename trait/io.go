// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package trait

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadTSV reads a set of character observations
// in a set of taxa
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - taxon, the taxonomic name of the taxon
//   - character, the name of the character
//   - state, the name of the observed state
//
// Here is an example file:
//
//	taxon	character	state
//	Acer campbellii	habitat	temperate
//	Acer campbellii	habitat	tropical
//	Acer campbellii	leaf	lobed
//	Acer erythranthum	habitat	tropical
//	Acer platanoides	habitat	temperate
//	Acer platanoides	leaf	lobed
//	Acer saccharinum	habitat	temperate
//	Acer saccharinum	leaf	entire
func ReadTSV(r io.Reader) (*Data, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"taxon", "character", "state"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	d := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "taxon"
		tax := row[fields[f]]
		if strings.TrimSpace(tax) == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty taxon name", ln, f)
		}

		f = "character"
		char := row[fields[f]]

		f = "state"
		st := row[fields[f]]

		d.Add(tax, char, st)
	}
	return d, nil
}

// TSV writes the character observations as a TSV file.
func (d *Data) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	// header
	header := []string{"taxon", "character", "state"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, tx := range d.Taxa() {
		for _, c := range d.Chars() {
			for _, s := range d.Obs(tx, c) {
				row := []string{
					tx,
					c,
					s,
				}
				if err := tab.Write(row); err != nil {
					return fmt.Errorf("when writing data: %v", err)
				}
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
