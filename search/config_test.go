// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package search_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/js-arias/phypars/search"
)

func TestReadConfig(t *testing.T) {
	data := `# search options
alphabet = "dna"
ops = "spr"
cpu = 2

[ratchet]
iterations = 50
stall = 5
seed = 42

[exact]
max-taxa = 9
timeout = "90s"
`

	f, err := search.ReadConfig(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if f.Alphabet != "dna" {
		t.Errorf("alphabet: got %q, want %q", f.Alphabet, "dna")
	}

	rc, err := f.RatchetConfig()
	if err != nil {
		t.Fatalf("ratchet config: %v", err)
	}
	if rc.Ops != search.SPR {
		t.Errorf("ops: got %v, want %v", rc.Ops, search.SPR)
	}
	if rc.CPU != 2 {
		t.Errorf("cpu: got %d, want %d", rc.CPU, 2)
	}
	if rc.Iterations != 50 || rc.Stall != 5 {
		t.Errorf("ratchet: got %d iterations, %d stall, want %d, %d", rc.Iterations, rc.Stall, 50, 5)
	}
	if rc.Src == nil {
		t.Errorf("ratchet: random source not set")
	}

	ec, err := f.ExactConfig()
	if err != nil {
		t.Fatalf("exact config: %v", err)
	}
	if ec.MaxTaxa != 9 {
		t.Errorf("max taxa: got %d, want %d", ec.MaxTaxa, 9)
	}
	d, err := f.Timeout()
	if err != nil {
		t.Fatalf("timeout: %v", err)
	}
	if d != 90*time.Second {
		t.Errorf("timeout: got %v, want %v", d, 90*time.Second)
	}
}

func TestReadConfigDefaults(t *testing.T) {
	f, err := search.ReadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	rc, err := f.RatchetConfig()
	if err != nil {
		t.Fatalf("ratchet config: %v", err)
	}
	if rc.Ops != 0 || rc.Iterations != 0 || rc.Stall != 0 || rc.Src != nil {
		t.Errorf("ratchet: got %+v, want zero values", rc)
	}
	if d, _ := f.Timeout(); d != 0 {
		t.Errorf("timeout: got %v, want %v", d, time.Duration(0))
	}
}

func TestReadConfigErrors(t *testing.T) {
	if _, err := search.ReadConfig(strings.NewReader(`ops = "tbr"`)); !errors.Is(err, search.ErrOperator) {
		t.Errorf("operator: got error %v, want %v", err, search.ErrOperator)
	}

	for _, data := range []string{
		`cpu = "four"`,
		`unknown = 1`,
		"[exact]\ntimeout = \"soon\"",
	} {
		if _, err := search.ReadConfig(strings.NewReader(data)); err == nil {
			t.Errorf("config %q: expecting error", data)
		}
	}
}
