// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Phypars is a tool for maximum parsimony tree searches.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phypars/cmd/phypars/add"
	"github.com/js-arias/phypars/cmd/phypars/bab"
	"github.com/js-arias/phypars/cmd/phypars/climb"
	"github.com/js-arias/phypars/cmd/phypars/importcmd"
	"github.com/js-arias/phypars/cmd/phypars/lengths"
	"github.com/js-arias/phypars/cmd/phypars/prj"
	"github.com/js-arias/phypars/cmd/phypars/ratchet"
	"github.com/js-arias/phypars/cmd/phypars/score"
)

var app = &command.Command{
	Usage: "phypars <command> [<argument>...]",
	Short: "a tool for maximum parsimony tree searches",
}

func init() {
	app.Add(add.Command)
	app.Add(bab.Command)
	app.Add(climb.Command)
	app.Add(importcmd.Command)
	app.Add(lengths.Command)
	app.Add(prj.Command)
	app.Add(ratchet.Command)
	app.Add(score.Command)
}

func main() {
	app.Main()
}
