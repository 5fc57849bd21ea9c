// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(configGuide)
	app.Add(projectsGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Phypars uses several files to read the data and store the results of an
analysis. To reduce the burden of keeping track of many files, a single
project file is used to hold the reference of all files required in the
analysis. This guide explains the structure of the file, but most of the
time, the best and most secure way to edit or view this file is by using
phypars commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# phypars project files
	dataset	path
	alignment	seqs.fasta
	config	search.toml
	trees	trees.tab

The valid file types are:

- Aligned sequences. Defined by the dataset keyword "alignment". This file
  contains the aligned sequences in FASTA format. All sequences must have the
  same length. The recommended way to add an alignment is by using the
  command 'phypars add'.
- Character observations. Defined by the dataset keyword "traits". This file
  contains observations of discrete characters in the form of a tab-delimited
  file with the fields "taxon", "character", and "state". It is used when the
  project does not have an alignment. The recommended way to add a character
  observation file is by using the command 'phypars add'.
- Search configuration. Defined by the dataset keyword "config". This file
  contains the default options of the searches in TOML format. The
  recommended way to add a configuration file is by using the command
  'phypars add'.
- Trees. Defined by the dataset keyword "trees". This file contains one or
  more trees in the form of a tab-delimited file. The recommended way to add
  a tree file is by using the command 'phypars import'.
	`,
}

var configGuide = &command.Command{
	Usage: "config",
	Short: "about search configuration files",
	Long: `
The default options of the searches can be stored in a configuration file in
TOML format. The options given as command flags have precedence over the
options defined in the configuration file.

Here is an example file:

	# phypars search options
	alphabet = "dna"
	ops = "both"
	cpu = 4

	[ratchet]
	iterations = 200
	stall = 10
	seed = 42

	[exact]
	max-taxa = 10
	timeout = "10m"

The valid options are:

- alphabet, the alphabet of the aligned sequences. It can be "dna" (the
  default) for nucleotides with IUPAC ambiguity codes, or "standard" for
  discrete characters with states from 0 to 9. In both alphabets, '?' and '-'
  are treated as missing data.
- ops, the tree rearrangements used in hill-climbing searches. It can be
  "nni", "spr", or "both" (the default).
- cpu, the number of processes used to score the trees. By default, all
  available processors are used.
- [ratchet] iterations, the maximum number of ratchet iterations. The default
  is 1000.
- [ratchet] stall, the maximum number of consecutive iterations without
  improvement. The default is 10. The ratchet stops at whichever limit is
  reached first.
- [ratchet] seed, the seed of the random number generator. It is also used
  for a random addition sequence of the starting trees of climb and ratchet
  searches. If it is zero, the current time is used for the ratchet, and the
  taxa of a starting tree are added in the order of the data.
- [exact] max-taxa, the maximum number of taxa accepted by the exact search.
  The default is 12.
- [exact] timeout, the time limit of an exact search (e.g., "90s" or "10m").
  If the limit is reached, the best trees found are reported, but they are
  not guaranteed to be optimal.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In phypars, trees are stored in tab-delimited files with the following
fields:

	- tree    the name of the tree
	- score   the parsimony score of the tree (it can be empty)
	- newick  the tree in parenthetical (newick) format

Here is an example file:

	tree	score	newick
	ratchet.0	12	(a,b,((c,d),e));
	ratchet.1	12	(a,c,((b,d),e));

Trees are unrooted, and must be binary. As usual in the newick format,
blanks in taxon names are written as underscores, and underscores are read as
blanks (e.g., "Acer_rubrum" is the taxon "Acer rubrum"). Taxon names cannot
contain parenthesis, brackets, commas, colons, or semicolons. In the newick representation, the
tree is written from its first internal node. If the trees have branch
lengths, they are kept in the newick representation.
	`,
}
