// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package trait_test

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/trait"
)

func TestData(t *testing.T) {
	d := newData()

	testData(t, "data", d)
}

func TestTSV(t *testing.T) {
	d := newData()

	var w bytes.Buffer
	if err := d.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	r := strings.NewReader(w.String())
	nd, err := trait.ReadTSV(r)
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}

	testData(t, "tsv", nd)
}

func TestMatrix(t *testing.T) {
	d := newData()

	m, err := d.Matrix()
	if err != nil {
		t.Fatalf("unable to build matrix: %v", err)
	}
	if m.Alphabet().Name() != matrix.Standard.Name() {
		t.Errorf("alphabet: got %q, want %q", m.Alphabet().Name(), matrix.Standard.Name())
	}
	if m.NumPatterns() != 2 || m.Sites() != 2 {
		t.Errorf("matrix: got %d patterns, %d sites, want %d, %d", m.NumPatterns(), m.Sites(), 2, 2)
	}

	// habitat: temperate = 1, tropical = 2
	// leaf: entire = 1, lobed = 2
	all := matrix.Standard.All()
	want := map[string][]matrix.State{
		"Acer campbellii":   {3, 2},
		"Acer erythranthum": {2, all},
		"Acer platanoides":  {1, 2},
		"Acer saccharinum":  {1, 1},
	}
	for tx, w := range want {
		i := m.Index(tx)
		if i < 0 {
			t.Errorf("taxon %q not in matrix", tx)
			continue
		}
		if g := m.Row(i); !reflect.DeepEqual(g, w) {
			t.Errorf("taxon %q: got %v, want %v", tx, g, w)
		}
	}
}

func TestMatrixStates(t *testing.T) {
	d := newData()
	for i := 0; i < 11; i++ {
		d.Add(fmt.Sprintf("Acer sp%d", i), "size", fmt.Sprintf("s%02d", i))
	}
	if _, err := d.Matrix(); !errors.Is(err, matrix.ErrMalformed) {
		t.Errorf("too many states: got error %v, want %v", err, matrix.ErrMalformed)
	}
}

func newData() *trait.Data {
	d := trait.New()

	d.Add("Acer platanoides", "habitat", "temperate")
	d.Add("Acer platanoides", "leaf", "lobed")
	d.Add("Acer saccharinum", "Habitat", "Temperate")
	d.Add("Acer saccharinum", "leaf", "entire")
	d.Add("Acer campbellii", "habitat", "temperate")
	d.Add("Acer campbellii", "habitat", "tropical")
	d.Add("Acer campbellii", "leaf", "lobed")
	d.Add("Acer erythranthum", "habitat", "tropical")
	return d
}

func testData(t testing.TB, name string, d *trait.Data) {
	t.Helper()

	taxa := []string{"Acer campbellii", "Acer erythranthum", "Acer platanoides", "Acer saccharinum"}
	if g := d.Taxa(); !reflect.DeepEqual(g, taxa) {
		t.Errorf("%s: taxa: got %v, want %v", name, g, taxa)
	}

	chars := []string{"habitat", "leaf"}
	if g := d.Chars(); !reflect.DeepEqual(g, chars) {
		t.Errorf("%s: characters: got %v, want %v", name, g, chars)
	}

	states := []string{"temperate", "tropical"}
	if g := d.States("habitat"); !reflect.DeepEqual(g, states) {
		t.Errorf("%s: states: got %v, want %v", name, g, states)
	}

	obs := map[string][]string{
		"Acer campbellii":   {"temperate", "tropical"},
		"Acer erythranthum": {"tropical"},
		"Acer platanoides":  {"temperate"},
		"Acer saccharinum":  {"temperate"},
	}
	for tx, w := range obs {
		if g := d.Obs(tx, "habitat"); !reflect.DeepEqual(g, w) {
			t.Errorf("%s: observations for %q: got %v, want %v", name, tx, g, w)
		}
	}
	if g := d.Obs("Acer erythranthum", "leaf"); g != nil {
		t.Errorf("%s: missing observation: got %v, want nil", name, g)
	}
}
