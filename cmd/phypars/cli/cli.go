// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cli contains the functions shared
// by the phypars commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/js-arias/phypars/matrix"
	"github.com/js-arias/phypars/project"
	"github.com/js-arias/phypars/search"
	"github.com/js-arias/phypars/tree"
	"golang.org/x/exp/rand"
)

// NewLogger returns a logger for the progress of a search.
// If verbose is true,
// the debug messages are also reported.
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Progress logs the elapsed time of an operation.
type Progress struct {
	logger *log.Logger
	start  time.Time
}

// NewProgress starts the timer of an operation.
func NewProgress(l *log.Logger) *Progress {
	return &Progress{logger: l, start: time.Now()}
}

// Done logs a message with the elapsed time.
func (p *Progress) Done(msg string, keyvals ...interface{}) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

// Context returns a context that is canceled
// when the user interrupts the program,
// or after the timeout, if it is greater than zero.
func Context(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if timeout <= 0 {
		return ctx, stop
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	return tctx, func() {
		cancel()
		stop()
	}
}

// OpenProject opens a project file.
// If the file does not exist,
// it returns a new empty project.
func OpenProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

// Data is the data of a project
// required by a search.
type Data struct {
	Matrix *matrix.Matrix
	Config search.File
}

// ReadData reads the character matrix
// and the search configuration of a project.
func ReadData(name string) (*project.Project, Data, error) {
	p, err := project.Read(name)
	if err != nil {
		return nil, Data{}, err
	}
	cfg, err := p.Config()
	if err != nil {
		return nil, Data{}, err
	}
	m, err := p.Matrix()
	if err != nil {
		return nil, Data{}, err
	}
	return p, Data{Matrix: m, Config: cfg}, nil
}

// Seed returns the seed of the random number generator
// used by a search.
// If the flag value is zero,
// the seed of the search configuration is used.
func (d Data) Seed(flag int64) int64 {
	if flag != 0 {
		return flag
	}
	return d.Config.Ratchet.Seed
}

// StartTrees returns the starting trees of a search.
// If the project has trees,
// those trees are used;
// otherwise a stepwise addition tree is built,
// with a random addition sequence
// if seed is not zero.
func StartTrees(p *project.Project, m *matrix.Matrix, seed int64) ([]tree.Named, error) {
	if p.Path(project.Trees) != "" {
		return p.Trees()
	}

	var src rand.Source
	if seed != 0 {
		src = rand.NewSource(uint64(seed))
	}
	t, err := search.Addition(m, src)
	if err != nil {
		return nil, err
	}
	return []tree.Named{{Name: "addition", Score: -1, Tree: t}}, nil
}

// WriteTrees writes trees into a file.
// If the name is empty,
// the trees are written into w.
func WriteTrees(w io.Writer, name string, trees []tree.Named) error {
	if name == "" {
		return tree.WriteTSV(w, trees)
	}
	return project.WriteTrees(name, trees)
}
