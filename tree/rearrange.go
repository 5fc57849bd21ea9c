// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"slices"
)

// Swap returns a nearest-neighbor interchange
// of the tree
// across the internal edge e:
// the subtree of the neighbor a of e.A
// is exchanged with the subtree of the neighbor c of e.B.
//
// The swap is reverted by Swap(e, c, a).
// The returned tree has no edge lengths.
func (t *Tree) Swap(e Edge, a, c int) (*Tree, error) {
	e = newEdge(e.A, e.B)
	if !t.isEdge(e) || t.IsTerm(e.A) || t.IsTerm(e.B) {
		return nil, fmt.Errorf("invalid internal edge %d-%d", e.A, e.B)
	}
	if a == e.B || !slices.Contains(t.nodes[e.A].nbr, a) {
		return nil, fmt.Errorf("node %d is not a neighbor of %d across edge %d-%d", a, e.A, e.A, e.B)
	}
	if c == e.A || !slices.Contains(t.nodes[e.B].nbr, c) {
		return nil, fmt.Errorf("node %d is not a neighbor of %d across edge %d-%d", c, e.B, e.A, e.B)
	}

	nt := t.Clone()
	nt.lens = nil
	nt.replace(e.A, a, c)
	nt.replace(e.B, c, a)
	nt.replace(a, e.A, e.B)
	nt.replace(c, e.B, e.A)
	return nt, nil
}

// NNI returns all the trees
// that are a nearest-neighbor interchange
// of the tree.
//
// For each internal edge,
// in the order of Edges,
// the first neighbor of the lower node
// is swapped with each neighbor of the higher node.
func (t *Tree) NNI() []*Tree {
	edges := t.InternalEdges()
	trees := make([]*Tree, 0, 2*len(edges))
	for _, e := range edges {
		a := t.other(e.A, e.B)[0]
		for _, c := range t.other(e.B, e.A) {
			nt, err := t.Swap(e, a, c)
			if err != nil {
				continue
			}
			trees = append(trees, nt)
		}
	}
	return trees
}

// SPR returns all the trees
// that are a subtree pruning and regrafting
// of the tree.
//
// Each subtree,
// defined by a node and the internal node
// in which it is attached,
// is pruned
// and regrafted on every edge of the remaining tree,
// except the edge in which it was pruned.
// Trees are returned in a deterministic order,
// without duplicates,
// and never including the source tree.
// The returned trees have no edge lengths.
func (t *Tree) SPR() []*Tree {
	seen := Single(t)
	edges := t.Edges()

	var trees []*Tree
	for s := range t.nodes {
		for _, p := range t.nodes[s].nbr {
			if t.IsTerm(p) {
				continue
			}
			side := t.side(s, p)
			for _, e := range edges {
				if e.A == p || e.B == p || side[e.A] || side[e.B] {
					continue
				}
				nt := t.regraft(s, p, e)
				if seen.Add(nt) {
					trees = append(trees, nt)
				}
			}
		}
	}
	return trees
}

// Regraft prunes the subtree s attached to p,
// and reattach it, using p, on the edge e.
func (t *Tree) regraft(s, p int, e Edge) *Tree {
	nt := t.Clone()
	nt.lens = nil

	xy := t.other(p, s)
	x, y := xy[0], xy[1]
	nt.replace(x, p, y)
	nt.replace(y, p, x)

	nt.replace(e.A, e.B, p)
	nt.replace(e.B, e.A, p)
	nt.replace(p, x, e.A)
	nt.replace(p, y, e.B)
	return nt
}

// Other returns the neighbors of a node,
// except the given one.
func (t *Tree) other(id, except int) []int {
	o := make([]int, 0, len(t.nodes[id].nbr)-1)
	for _, v := range t.nodes[id].nbr {
		if v == except {
			continue
		}
		o = append(o, v)
	}
	return o
}

// Side returns the nodes
// of the subtree that includes id
// when the edge with from is removed.
func (t *Tree) side(id, from int) []bool {
	in := make([]bool, len(t.nodes))
	stack := []int{id}
	in[id] = true
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, w := range t.nodes[v].nbr {
			if w == from && v == id {
				continue
			}
			if in[w] {
				continue
			}
			in[w] = true
			stack = append(stack, w)
		}
	}
	return in
}
