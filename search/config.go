// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package search

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/rand"
)

// File is the content of a search configuration file.
//
// A configuration file is a TOML file,
// for example:
//
//	alphabet = "dna"
//	ops = "both"
//	cpu = 4
//
//	[ratchet]
//	iterations = 200
//	stall = 10
//	seed = 42
//
//	[exact]
//	max-taxa = 10
//	timeout = "10m"
type File struct {
	Alphabet string `toml:"alphabet"`
	Ops      string `toml:"ops"`
	CPU      int    `toml:"cpu"`

	Ratchet struct {
		Iterations int   `toml:"iterations"`
		Stall      int   `toml:"stall"`
		Seed       int64 `toml:"seed"`
	} `toml:"ratchet"`

	Exact struct {
		MaxTaxa int    `toml:"max-taxa"`
		Timeout string `toml:"timeout"`
	} `toml:"exact"`
}

// ReadConfig reads a search configuration file.
func ReadConfig(r io.Reader) (File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return File{}, fmt.Errorf("while reading config: %v", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return File{}, fmt.Errorf("while reading config: unknown key %q", keys[0].String())
	}
	if _, err := f.Config(); err != nil {
		return File{}, err
	}
	if _, err := f.Timeout(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Config returns the configuration
// of a hill-climbing search.
func (f File) Config() (Config, error) {
	var c Config
	if f.Ops != "" {
		op, err := ParseOps(f.Ops)
		if err != nil {
			return Config{}, err
		}
		c.Ops = op
	}
	c.CPU = f.CPU
	return c, nil
}

// RatchetConfig returns the configuration
// of a ratchet search.
// If the seed is not zero,
// it is used to seed the random source.
func (f File) RatchetConfig() (RatchetConfig, error) {
	c, err := f.Config()
	if err != nil {
		return RatchetConfig{}, err
	}
	rc := RatchetConfig{
		Config:     c,
		Iterations: f.Ratchet.Iterations,
		Stall:      f.Ratchet.Stall,
	}
	if f.Ratchet.Seed != 0 {
		rc.Src = rand.NewSource(uint64(f.Ratchet.Seed))
	}
	return rc, nil
}

// ExactConfig returns the configuration
// of an exact search.
func (f File) ExactConfig() (ExactConfig, error) {
	c, err := f.Config()
	if err != nil {
		return ExactConfig{}, err
	}
	return ExactConfig{
		Config:  c,
		MaxTaxa: f.Exact.MaxTaxa,
	}, nil
}

// Timeout returns the time limit of an exact search.
// A zero duration means no limit.
func (f File) Timeout() (time.Duration, error) {
	if f.Exact.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Exact.Timeout)
	if err != nil {
		return 0, fmt.Errorf("while reading config: invalid timeout %q: %v", f.Exact.Timeout, err)
	}
	return d, nil
}
