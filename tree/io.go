// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/evolbioinfo/gotree/io/newick"
	gotree "github.com/evolbioinfo/gotree/tree"
	"github.com/js-arias/timetree"
)

// A graph is an undirected acyclic graph
// used to build a tree from other representations.
type graph struct {
	names []string
	adj   [][]int
	lens  map[Edge]float64
}

func newGraph(n int) *graph {
	return &graph{
		names: make([]string, n),
		adj:   make([][]int, n),
		lens:  make(map[Edge]float64),
	}
}

func (g *graph) connect(a, b int, l float64) {
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	if l >= 0 {
		g.lens[newEdge(a, b)] = l
	}
}

// Tree returns a tree from a graph,
// removing the nodes with two neighbors
// (e.g., the root of a rooted tree).
func (g *graph) tree() (*Tree, error) {
	removed := make([]bool, len(g.names))
	for v, nbr := range g.adj {
		if len(nbr) != 2 {
			continue
		}
		if g.names[v] != "" {
			return nil, fmt.Errorf("%w: terminal %q with two neighbors", ErrNotBinary, g.names[v])
		}
		a, b := nbr[0], nbr[1]
		replaceIn(g.adj[a], v, b)
		replaceIn(g.adj[b], v, a)
		la, okA := g.lens[newEdge(a, v)]
		lb, okB := g.lens[newEdge(v, b)]
		delete(g.lens, newEdge(a, v))
		delete(g.lens, newEdge(v, b))
		if okA && okB {
			g.lens[newEdge(a, b)] = la + lb
		}
		removed[v] = true
	}

	ids := make([]int, len(g.names))
	t := &Tree{
		terms: make(map[string]int),
	}
	for v, nbr := range g.adj {
		if removed[v] {
			ids[v] = -1
			continue
		}
		switch len(nbr) {
		case 1:
			if g.names[v] == "" {
				return nil, fmt.Errorf("terminal without name")
			}
			if _, dup := t.terms[g.names[v]]; dup {
				return nil, fmt.Errorf("%w: %q", ErrDuplicated, g.names[v])
			}
			t.terms[g.names[v]] = len(t.nodes)
			t.nodes = append(t.nodes, node{taxon: g.names[v]})
		case 3:
			t.nodes = append(t.nodes, node{})
		default:
			return nil, fmt.Errorf("%w: node with %d neighbors", ErrNotBinary, len(nbr))
		}
		ids[v] = len(t.nodes) - 1
	}
	if len(t.terms) < 3 {
		return nil, fmt.Errorf("expecting at least 3 terminals, got %d", len(t.terms))
	}

	for v, nbr := range g.adj {
		if removed[v] {
			continue
		}
		id := ids[v]
		for _, w := range nbr {
			t.nodes[id].nbr = append(t.nodes[id].nbr, ids[w])
		}
	}
	for e, l := range g.lens {
		t.SetLen(newEdge(ids[e.A], ids[e.B]), l)
	}
	return t, nil
}

func replaceIn(s []int, old, nw int) {
	for i, v := range s {
		if v == old {
			s[i] = nw
			return
		}
	}
}

// FromGoTree returns a tree
// from a gotree tree.
// If the tree is rooted,
// the root is removed.
func FromGoTree(gt *gotree.Tree) (*Tree, error) {
	nodes := gt.Nodes()
	idx := make(map[*gotree.Node]int, len(nodes))
	g := newGraph(len(nodes))
	for i, n := range nodes {
		idx[n] = i
		g.names[i] = taxonName(n.Name())
	}
	for _, e := range gt.Edges() {
		g.connect(idx[e.Left()], idx[e.Right()], e.Length())
	}
	return g.tree()
}

// FromTimeTree returns a tree
// from a time calibrated tree.
// Edge lengths are set in million years.
func FromTimeTree(tt *timetree.Tree) (*Tree, error) {
	nodes := tt.Nodes()
	idx := make(map[int]int, len(nodes))
	g := newGraph(len(nodes))
	for i, id := range nodes {
		idx[id] = i
		if tt.IsTerm(id) {
			g.names[i] = taxonName(tt.Taxon(id))
		}
	}
	for _, id := range nodes {
		for _, c := range tt.Children(id) {
			l := float64(tt.Age(id)-tt.Age(c)) / millionYears
			g.connect(idx[id], idx[c], l)
		}
	}
	t, err := g.tree()
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", tt.Name(), err)
	}
	return t, nil
}

const millionYears = 1_000_000

// TaxonName returns a taxon name
// read from a parenthetical tree,
// in which underscores are blanks.
func taxonName(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
}

// GoTree returns the tree as a gotree tree
// rooted at the anchor node.
// Blanks in taxon names are replaced by underscores.
func (t *Tree) GoTree() *gotree.Tree {
	gt := gotree.NewTree()
	nodes := make([]*gotree.Node, len(t.nodes))
	for id, n := range t.nodes {
		nodes[id] = gt.NewNode()
		if n.taxon != "" {
			nodes[id].SetName(strings.ReplaceAll(n.taxon, " ", "_"))
		}
	}
	root := t.Anchor()
	gt.SetRoot(nodes[root])
	t.connectGoTree(gt, nodes, root, -1)
	return gt
}

func (t *Tree) connectGoTree(gt *gotree.Tree, nodes []*gotree.Node, id, from int) {
	for _, v := range t.nodes[id].nbr {
		if v == from {
			continue
		}
		e := gt.ConnectNodes(nodes[id], nodes[v])
		if l, ok := t.lens[newEdge(id, v)]; ok {
			e.SetLength(l)
		}
		t.connectGoTree(gt, nodes, v, id)
	}
}

// Newick returns the tree in parenthetical format.
func (t *Tree) Newick() string {
	return t.GoTree().Newick()
}

// ReadNewick reads one or more trees
// in parenthetical format.
// As usual in parenthetical trees,
// underscores in taxon names are read as blanks.
func ReadNewick(r io.Reader) ([]*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var trees []*Tree
	for i, s := range strings.Split(string(data), ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		gt, err := newick.NewParser(strings.NewReader(s + ";")).Parse()
		if err != nil {
			return nil, fmt.Errorf("tree %d: %v", i+1, err)
		}
		t, err := FromGoTree(gt)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i+1, err)
		}
		trees = append(trees, t)
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("while reading data: %v", io.EOF)
	}
	return trees, nil
}

// Named is a tree with a name
// and a parsimony score.
// A negative score is an undefined score.
type Named struct {
	Name  string
	Score int
	Tree  *Tree
}

var headerFields = []string{
	"tree",
	"score",
	"newick",
}

// ReadTSV reads a list of trees
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - tree, the name of the tree
//   - score, the parsimony score of the tree (it can be empty)
//   - newick, the tree in parenthetical format
//
// Here is an example file:
//
//	tree	score	newick
//	ratchet.0	12	(Acer_campbellii,Acer_erythranthum,(Acer_platanoides,Acer_saccharinum));
func ReadTSV(r io.Reader) ([]Named, error) {
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
	for _, h := range headerFields {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var ls []Named
	names := make(map[string]bool)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "tree"
		name := strings.Join(strings.Fields(row[fields[f]]), " ")
		if name == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty tree name", ln, f)
		}
		if names[name] {
			return nil, fmt.Errorf("on row %d: field %q: tree %q repeated", ln, f, name)
		}
		names[name] = true

		f = "score"
		score := -1
		if v := strings.TrimSpace(row[fields[f]]); v != "" {
			score, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
		}

		f = "newick"
		trees, err := ReadNewick(strings.NewReader(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if len(trees) != 1 {
			return nil, fmt.Errorf("on row %d: field %q: expecting a single tree, got %d", ln, f, len(trees))
		}

		ls = append(ls, Named{
			Name:  name,
			Score: score,
			Tree:  trees[0],
		})
	}
	if len(ls) == 0 {
		return nil, fmt.Errorf("while reading data: %v", io.EOF)
	}
	return ls, nil
}

// WriteTSV writes a list of trees
// into a TSV file.
func WriteTSV(w io.Writer, trees []Named) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(headerFields); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, t := range trees {
		score := ""
		if t.Score >= 0 {
			score = strconv.Itoa(t.Score)
		}
		row := []string{
			t.Name,
			score,
			t.Tree.Newick(),
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
