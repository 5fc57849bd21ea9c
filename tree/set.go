// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

// A Set is a collection of distinct tree topologies,
// in the order in which they were added.
//
// A Set is used both for a single result,
// and for a collection of equally optimal trees.
type Set struct {
	trees []*Tree
	keys  map[string]bool
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{
		keys: make(map[string]bool),
	}
}

// Single returns a set with a single tree.
func Single(t *Tree) *Set {
	s := NewSet()
	s.Add(t)
	return s
}

// Add adds a tree to the set.
// It returns false if a tree with the same topology
// is already in the set.
func (s *Set) Add(t *Tree) bool {
	k := t.Canon()
	if s.keys[k] {
		return false
	}
	s.keys[k] = true
	s.trees = append(s.trees, t)
	return true
}

// Has returns true if a tree with the same topology
// is in the set.
func (s *Set) Has(t *Tree) bool {
	return s.keys[t.Canon()]
}

// Len returns the number of trees in the set.
func (s *Set) Len() int {
	return len(s.trees)
}

// Single returns the only tree of a set.
// If the set has zero or more than one tree,
// it returns nil.
func (s *Set) Single() *Tree {
	if len(s.trees) != 1 {
		return nil
	}
	return s.trees[0]
}

// Trees returns the trees in the set.
func (s *Set) Trees() []*Tree {
	trees := make([]*Tree, len(s.trees))
	copy(trees, s.trees)
	return trees
}
