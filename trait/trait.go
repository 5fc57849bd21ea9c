// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trait provides a list of observations
// of discrete characters (traits)
// for a taxon list.
package trait

import (
	"fmt"
	"slices"
	"strings"

	"github.com/js-arias/phypars/matrix"
)

// Data is a collection of character states
// observed in a set of taxa.
type Data struct {
	// taxon -> character -> states
	taxon map[string]map[string]map[string]bool
}

// New creates a new empty data set.
func New() *Data {
	return &Data{
		taxon: make(map[string]map[string]map[string]bool),
	}
}

// Add adds a new observation
// (i.e., a character state)
// for a given taxon.
// If a taxon has more than one state
// for the same character,
// the character is polymorphic in that taxon.
func (d *Data) Add(taxon, char, state string) {
	taxon = strings.Join(strings.Fields(taxon), " ")
	if taxon == "" {
		return
	}
	char = norm(char)
	if char == "" {
		return
	}
	state = norm(state)
	if state == "" {
		return
	}

	chars, ok := d.taxon[taxon]
	if !ok {
		chars = make(map[string]map[string]bool)
		d.taxon[taxon] = chars
	}
	obs, ok := chars[char]
	if !ok {
		obs = make(map[string]bool)
		chars[char] = obs
	}
	obs[state] = true
}

// Chars returns the characters defined
// in a data set.
func (d *Data) Chars() []string {
	cs := make(map[string]bool)
	for _, chars := range d.taxon {
		for c := range chars {
			cs[c] = true
		}
	}
	return sortedKeys(cs)
}

// Obs returns the observed states
// of a character for a taxon.
func (d *Data) Obs(taxon, char string) []string {
	taxon = strings.Join(strings.Fields(taxon), " ")
	chars, ok := d.taxon[taxon]
	if !ok {
		return nil
	}
	obs, ok := chars[norm(char)]
	if !ok {
		return nil
	}
	return sortedKeys(obs)
}

// States returns the states defined
// for a character.
func (d *Data) States(char string) []string {
	char = norm(char)
	st := make(map[string]bool)
	for _, chars := range d.taxon {
		for s := range chars[char] {
			st[s] = true
		}
	}
	return sortedKeys(st)
}

// Taxa returns the taxa with observed states
// in a data set.
func (d *Data) Taxa() []string {
	taxa := make([]string, 0, len(d.taxon))
	for tx := range d.taxon {
		taxa = append(taxa, tx)
	}
	slices.Sort(taxa)
	return taxa
}

// Matrix returns a character matrix
// with the standard alphabet
// from the data set.
// Characters are sorted by name,
// and the states of each character
// are coded in alphabetical order.
// A character without observations in a taxon
// is coded as missing.
func (d *Data) Matrix() (*matrix.Matrix, error) {
	chars := d.Chars()
	taxa := d.Taxa()
	a := matrix.Standard

	rows := make([][]matrix.State, len(taxa))
	for i := range rows {
		rows[i] = make([]matrix.State, len(chars))
	}
	for c, char := range chars {
		states := d.States(char)
		if len(states) > a.Len() {
			return nil, fmt.Errorf("%w: character %q: %d states, maximum %d", matrix.ErrMalformed, char, len(states), a.Len())
		}
		code := make(map[string]matrix.State, len(states))
		for i, s := range states {
			code[s] = 1 << i
		}

		for i, tx := range taxa {
			obs := d.taxon[tx][char]
			if len(obs) == 0 {
				rows[i][c] = a.All()
				continue
			}
			var st matrix.State
			for s := range obs {
				st |= code[s]
			}
			rows[i][c] = st
		}
	}
	return matrix.FromStates(taxa, rows, a)
}

func norm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "_", " "))), " ")
}

func sortedKeys(m map[string]bool) []string {
	ls := make([]string, 0, len(m))
	for k := range m {
		ls = append(ls, k)
	}
	slices.Sort(ls)
	return ls
}
