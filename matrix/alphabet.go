// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package matrix

import (
	"fmt"
	"math/bits"
	"strings"
)

// A State is a set of character states
// coded as a bitset.
// An ambiguous observation has more than one bit set.
type State uint32

// Len returns the number of states in the set.
func (s State) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Lowest returns the set with only the lowest state
// of the receiver.
func (s State) Lowest() State {
	return s & -s
}

// An Alphabet defines the valid symbols
// of a character matrix
// and the state sets they code.
type Alphabet struct {
	name    string
	size    int
	symbols map[byte]State
	codes   map[State]byte
}

// Name returns the name of the alphabet.
func (a Alphabet) Name() string {
	return a.name
}

// Len returns the number of single states
// of the alphabet.
func (a Alphabet) Len() int {
	return a.size
}

// All returns the state set with all states
// (i.e., a missing or fully ambiguous observation).
func (a Alphabet) All() State {
	return State(1<<a.size - 1)
}

// Parse returns the state set of a symbol.
func (a Alphabet) Parse(c byte) (State, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	s, ok := a.symbols[c]
	return s, ok
}

// Symbol returns the symbol used for a state set.
func (a Alphabet) Symbol(s State) byte {
	if c, ok := a.codes[s]; ok {
		return c
	}
	return '?'
}

// DNA is the nucleotide alphabet,
// including IUPAC ambiguity codes.
// Gaps are treated as missing data.
var DNA = newAlphabet("dna", 4, []symbol{
	{'A', 1}, {'C', 2}, {'G', 4}, {'T', 8},
	{'M', 1 | 2}, {'R', 1 | 4}, {'W', 1 | 8},
	{'S', 2 | 4}, {'Y', 2 | 8}, {'K', 4 | 8},
	{'V', 1 | 2 | 4}, {'H', 1 | 2 | 8}, {'D', 1 | 4 | 8}, {'B', 2 | 4 | 8},
	{'N', 15}, {'U', 8}, {'X', 15}, {'?', 15}, {'-', 15},
})

// Standard is the alphabet for morphological
// (or any other discrete)
// characters,
// with states from 0 to 9.
var Standard = newAlphabet("standard", 10, []symbol{
	{'0', 1 << 0}, {'1', 1 << 1}, {'2', 1 << 2}, {'3', 1 << 3}, {'4', 1 << 4},
	{'5', 1 << 5}, {'6', 1 << 6}, {'7', 1 << 7}, {'8', 1 << 8}, {'9', 1 << 9},
	{'?', 1<<10 - 1}, {'-', 1<<10 - 1},
})

// ParseAlphabet returns an alphabet by its name.
// The empty name is the DNA alphabet.
func ParseAlphabet(name string) (Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dna", "nucleotide":
		return DNA, nil
	case "standard", "morphology":
		return Standard, nil
	}
	return Alphabet{}, fmt.Errorf("unknown alphabet %q", name)
}

type symbol struct {
	c byte
	s State
}

func newAlphabet(name string, size int, sym []symbol) Alphabet {
	a := Alphabet{
		name:    name,
		size:    size,
		symbols: make(map[byte]State, len(sym)),
		codes:   make(map[State]byte, len(sym)),
	}
	for _, s := range sym {
		a.symbols[s.c] = s.s
		if _, ok := a.codes[s.s]; !ok {
			a.codes[s.s] = s.c
		}
	}
	return a
}
