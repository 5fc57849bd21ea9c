// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements unrooted binary trees
// used as topologies in a parsimony search.
//
// Terminal nodes are bound to a taxon,
// and internal nodes have exactly three neighbors.
// All rearrangements return a new tree,
// and the receiver is never modified.
package tree

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Errors returned when building a tree.
var (
	ErrDuplicated = errors.New("duplicated terminal")
	ErrNotBinary  = errors.New("tree is not binary")
)

// An Edge is a branch of the tree
// defined by the IDs of its nodes.
// In a valid edge A is smaller than B.
type Edge struct {
	A, B int
}

func newEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// A Tree is an unrooted binary tree.
type Tree struct {
	nodes []node
	terms map[string]int

	// edge lengths,
	// only defined edges are stored
	lens map[Edge]float64
}

type node struct {
	taxon string
	nbr   []int
}

// New returns a tree of three terminals
// joined to a single internal node.
func New(a, b, c string) (*Tree, error) {
	t := &Tree{
		nodes: []node{
			{taxon: a, nbr: []int{3}},
			{taxon: b, nbr: []int{3}},
			{taxon: c, nbr: []int{3}},
			{nbr: []int{0, 1, 2}},
		},
		terms: make(map[string]int, 3),
	}
	for i := 0; i < 3; i++ {
		tx := t.nodes[i].taxon
		if tx == "" {
			return nil, fmt.Errorf("terminal %d without name", i)
		}
		if _, dup := t.terms[tx]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicated, tx)
		}
		t.terms[tx] = i
	}
	return t, nil
}

// Caterpillar returns a pectinate tree
// with the taxa added in the given order,
// i.e., (((a,b),c),d)...
func Caterpillar(taxa []string) (*Tree, error) {
	if len(taxa) < 3 {
		return nil, fmt.Errorf("expecting at least 3 terminals, got %d", len(taxa))
	}
	t, err := New(taxa[0], taxa[1], taxa[2])
	if err != nil {
		return nil, err
	}
	for _, tx := range taxa[3:] {
		// the last added terminal is always the highest ID
		last := len(t.nodes) - 1
		if t.IsTerm(last - 1) {
			last--
		}
		t, err = t.Insert(newEdge(last, t.nodes[last].nbr[0]), tx)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Anchor returns the ID of the internal node
// used as the starting point of traversals.
func (t *Tree) Anchor() int {
	for id, n := range t.nodes {
		if n.taxon == "" {
			return id
		}
	}
	return 0
}

// Clone returns an independent copy of the tree.
func (t *Tree) Clone() *Tree {
	nt := &Tree{
		nodes: make([]node, len(t.nodes)),
		terms: make(map[string]int, len(t.terms)),
	}
	for i, n := range t.nodes {
		nt.nodes[i] = node{
			taxon: n.taxon,
			nbr:   slices.Clone(n.nbr),
		}
	}
	for tx, id := range t.terms {
		nt.terms[tx] = id
	}
	if len(t.lens) > 0 {
		nt.lens = make(map[Edge]float64, len(t.lens))
		for e, l := range t.lens {
			nt.lens[e] = l
		}
	}
	return nt
}

// Edges returns the edges of the tree
// sorted by its node IDs.
func (t *Tree) Edges() []Edge {
	edges := make([]Edge, 0, len(t.nodes)-1)
	for id, n := range t.nodes {
		for _, v := range n.nbr {
			if id < v {
				edges = append(edges, Edge{A: id, B: v})
			}
		}
	}
	slices.SortFunc(edges, compareEdge)
	return edges
}

// InternalEdges returns the edges
// that join two internal nodes.
func (t *Tree) InternalEdges() []Edge {
	var edges []Edge
	for _, e := range t.Edges() {
		if t.IsTerm(e.A) || t.IsTerm(e.B) {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// Insert adds a terminal into an edge of the tree,
// creating a new internal node.
// The returned tree has no edge lengths.
func (t *Tree) Insert(e Edge, taxon string) (*Tree, error) {
	if !t.isEdge(e) {
		return nil, fmt.Errorf("invalid edge %d-%d", e.A, e.B)
	}
	if taxon == "" {
		return nil, fmt.Errorf("terminal without name")
	}
	if _, dup := t.terms[taxon]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicated, taxon)
	}

	nt := t.Clone()
	nt.lens = nil

	term := len(nt.nodes)
	in := term + 1
	nt.nodes = append(nt.nodes,
		node{taxon: taxon, nbr: []int{in}},
		node{nbr: []int{e.A, e.B, term}},
	)
	nt.replace(e.A, e.B, in)
	nt.replace(e.B, e.A, in)
	nt.terms[taxon] = term
	return nt, nil
}

// IsTerm returns true if the node is a terminal.
func (t *Tree) IsTerm(id int) bool {
	return t.nodes[id].taxon != ""
}

// Len returns the length of an edge.
// If the edge has no length,
// it returns false.
func (t *Tree) Len(e Edge) (float64, bool) {
	l, ok := t.lens[newEdge(e.A, e.B)]
	return l, ok
}

// Neighbors returns the IDs of the neighbors of a node.
func (t *Tree) Neighbors(id int) []int {
	return slices.Clone(t.nodes[id].nbr)
}

// NumInternal returns the number of internal nodes.
func (t *Tree) NumInternal() int {
	return len(t.nodes) - len(t.terms)
}

// NumNodes returns the number of nodes.
// Node IDs go from 0 to NumNodes()-1.
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// NumTerms returns the number of terminals.
func (t *Tree) NumTerms() int {
	return len(t.terms)
}

// SetLen sets the length of an edge.
// A negative length removes the length of the edge.
func (t *Tree) SetLen(e Edge, l float64) {
	e = newEdge(e.A, e.B)
	if !t.isEdge(e) {
		return
	}
	if l < 0 {
		delete(t.lens, e)
		return
	}
	if t.lens == nil {
		t.lens = make(map[Edge]float64)
	}
	t.lens[e] = l
}

// Taxon returns the taxon of a node.
// For an internal node it returns an empty string.
func (t *Tree) Taxon(id int) string {
	return t.nodes[id].taxon
}

// Term returns the ID of the node
// bound to a taxon,
// or -1 if the taxon is not in the tree.
func (t *Tree) Term(taxon string) int {
	id, ok := t.terms[taxon]
	if !ok {
		return -1
	}
	return id
}

// Terms returns the taxon names of the terminals
// sorted alphabetically.
func (t *Tree) Terms() []string {
	terms := make([]string, 0, len(t.terms))
	for tx := range t.terms {
		terms = append(terms, tx)
	}
	slices.Sort(terms)
	return terms
}

// Canon returns a canonical representation
// of the tree topology.
// Two trees have the same canonical form
// if and only if they have the same unrooted topology
// (edge lengths are ignored).
// Taxon names are quoted,
// so names with commas or parenthesis
// do not collide with the tree structure.
func (t *Tree) Canon() string {
	terms := t.Terms()
	root := t.terms[terms[0]]

	var b strings.Builder
	b.WriteString(strconv.Quote(terms[0]))
	b.WriteString(t.canon(t.nodes[root].nbr[0], root))
	return b.String()
}

func (t *Tree) canon(id, from int) string {
	n := t.nodes[id]
	if n.taxon != "" {
		return strconv.Quote(n.taxon)
	}
	sub := make([]string, 0, len(n.nbr)-1)
	for _, v := range n.nbr {
		if v == from {
			continue
		}
		sub = append(sub, t.canon(v, id))
	}
	slices.Sort(sub)
	return "(" + strings.Join(sub, ",") + ")"
}

func (t *Tree) isEdge(e Edge) bool {
	if e.A < 0 || e.B < 0 || e.A >= len(t.nodes) || e.B >= len(t.nodes) {
		return false
	}
	return slices.Contains(t.nodes[e.A].nbr, e.B)
}

// Replace changes the neighbor old of a node
// to a new neighbor.
func (t *Tree) replace(id, old, nw int) {
	nbr := t.nodes[id].nbr
	for i, v := range nbr {
		if v == old {
			nbr[i] = nw
			return
		}
	}
}

func compareEdge(a, b Edge) int {
	if a.A != b.A {
		return a.A - b.A
	}
	return a.B - b.B
}
