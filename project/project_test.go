// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/project"
	"github.com/js-arias/phypars/search"
	"github.com/js-arias/phypars/tree"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Alignment, "seqs.fasta"},
		{project.Config, "search.toml"},
		{project.Trees, "trees.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := filepath.Join(t.TempDir(), "project.tab")
	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)

	if prev := np.Add(project.Config, ""); prev != "search.toml" {
		t.Errorf("remove config: got previous %q, want %q", prev, "search.toml")
	}
	if path := np.Path(project.Config); path != "" {
		t.Errorf("remove config: got path %q", path)
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	// sets are given in the order of the project
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}

func TestProjectOrder(t *testing.T) {
	p := project.New()
	p.Add(project.Trees, "trees.tab")
	p.Add(project.Config, "search.toml")
	p.Add(project.Traits, "traits.tab")
	p.Add(project.Alignment, "seqs.fasta")

	want := []project.Dataset{project.Alignment, project.Traits, project.Config, project.Trees}
	if ls := p.Sets(); !reflect.DeepEqual(ls, want) {
		t.Errorf("sets: got %v, want %v", ls, want)
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown dataset": `dataset	path
alignment	seqs.fasta
ranges	ranges.tab
`,
		"repeated dataset": `dataset	path
alignment	seqs.fasta
alignment	other.fasta
`,
		"empty path": `dataset	path
alignment	seqs.fasta
trees	
`,
		"no path field": `dataset	file
alignment	seqs.fasta
`,
	}

	dir := t.TempDir()
	for name, data := range tests {
		f := filepath.Join(dir, "project.tab")
		writeFile(t, f, data)
		if _, err := project.Read(f); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestParseDataset(t *testing.T) {
	tests := map[string]project.Dataset{
		"alignment": project.Alignment,
		" Traits ":  project.Traits,
		"CONFIG":    project.Config,
		"trees":     project.Trees,
	}
	for in, want := range tests {
		set, err := project.ParseDataset(in)
		if err != nil {
			t.Errorf("dataset %q: unexpected error: %v", in, err)
			continue
		}
		if set != want {
			t.Errorf("dataset %q: got %q, want %q", in, set, want)
		}
	}
	if _, err := project.ParseDataset("landscape"); err == nil {
		t.Errorf("dataset %q: expecting error", "landscape")
	}
}

func writeFile(t testing.TB, name, data string) {
	t.Helper()

	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}
}

func TestProjectData(t *testing.T) {
	dir := t.TempDir()

	seqs := filepath.Join(dir, "seqs.fasta")
	writeFile(t, seqs, `>a
0011
>b
0011
>c
1100
>d
1?00
`)
	cfg := filepath.Join(dir, "search.toml")
	writeFile(t, cfg, `alphabet = "standard"
ops = "nni"

[ratchet]
stall = 4
`)

	p := project.New()
	p.SetName(filepath.Join(dir, "project.tab"))

	if _, err := p.Alignment(); err == nil {
		t.Errorf("alignment: expecting error on undefined dataset")
	}
	if f, err := p.Config(); err != nil || !reflect.DeepEqual(f, search.File{}) {
		t.Errorf("config: got %+v [%v], want empty configuration", f, err)
	}

	p.Add(project.Alignment, seqs)
	p.Add(project.Config, cfg)

	m, err := p.Alignment()
	if err != nil {
		t.Fatalf("alignment: %v", err)
	}
	if m.Alphabet().Name() != matrix.Standard.Name() {
		t.Errorf("alphabet: got %q, want %q", m.Alphabet().Name(), matrix.Standard.Name())
	}
	if m.NumTaxa() != 4 || m.Sites() != 4 {
		t.Errorf("alignment: got %d taxa, %d sites, want %d, %d", m.NumTaxa(), m.Sites(), 4, 4)
	}

	f, err := p.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	rc, err := f.RatchetConfig()
	if err != nil {
		t.Fatalf("ratchet config: %v", err)
	}
	if rc.Ops != search.NNI || rc.Stall != 4 {
		t.Errorf("ratchet config: got %v ops, %d stall, want %v, %d", rc.Ops, rc.Stall, search.NNI, 4)
	}

	ls, err := tree.ReadNewick(strings.NewReader("((a,b),(c,d));"))
	if err != nil {
		t.Fatalf("newick: %v", err)
	}
	trees := filepath.Join(dir, "trees.tab")
	if err := project.WriteTrees(trees, []tree.Named{{Name: "t0", Score: 2, Tree: ls[0]}}); err != nil {
		t.Fatalf("write trees: %v", err)
	}
	p.Add(project.Trees, trees)

	got, err := p.Trees()
	if err != nil {
		t.Fatalf("trees: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("trees: got %d trees, want %d", len(got), 1)
	}
	if got[0].Name != "t0" || got[0].Score != 2 || got[0].Tree.Canon() != ls[0].Canon() {
		t.Errorf("trees: got %s [%d] %s, want %s [%d] %s", got[0].Name, got[0].Score, got[0].Tree.Canon(), "t0", 2, ls[0].Canon())
	}
}

func TestProjectTraits(t *testing.T) {
	dir := t.TempDir()

	traits := filepath.Join(dir, "traits.tab")
	writeFile(t, traits, `taxon	character	state
a	habitat	forest
b	habitat	forest
c	habitat	desert
c	habitat	forest
d	habitat	desert
d	wings	absent
`)

	p := project.New()
	p.SetName(filepath.Join(dir, "project.tab"))
	if _, err := p.Matrix(); err == nil {
		t.Errorf("matrix: expecting error on undefined datasets")
	}

	p.Add(project.Traits, traits)
	m, err := p.Matrix()
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if !reflect.DeepEqual(m.Taxa(), []string{"a", "b", "c", "d"}) {
		t.Errorf("taxa: got %v", m.Taxa())
	}
	if m.Sites() != 2 {
		t.Errorf("characters: got %d, want %d", m.Sites(), 2)
	}
	// habitat: desert = 1, forest = 2
	if st := m.State(m.Index("c"), 0); st != 3 {
		t.Errorf("polymorphic state: got %b, want %b", st, 3)
	}
}
