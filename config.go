// Copyright (C) 2022-2026, VigilantDoomer
//
// This file is part of VigilantWalk program.
//
// VigilantWalk is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// VigilantWalk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VigilantWalk.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"os"

	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

const VERSION = "0.3a"

/*
vigilantwalk {-options} file.wad|scene.yaml|scene.msgpack

-l=NAME Level to index (default: first level in the wad)

-c=N Blockmap cell size in map units (default 128)

-t=x1,y1,x2,y2 Trace a path through the level. May be given many times.

-m=FLAGS What traces collect
	l Lines
	m Mobjs
	d Stop at destination
	(default: lm)

-q file.yaml Run probes (traces, box queries, moves, sight checks) from file

-o file.msgpack|file.yaml Export the indexed level as a scene

-j Print trace and probe results as JSON

-s Print index and metrics statistics

-v Add verbosity to text output. Use multiple times for increased verbosity.

--view Show the blockmap and trace paths in the terminal

--cpuprofile file Write CPU profile to file
*/

// TraceRequest is a trace asked for on the command line
type TraceRequest struct {
	From spatial.Vec2
	To   spatial.Vec2
}

type ProgramConfig struct {
	InputFileName  string
	OutputFileName string
	ProbeFileName  string
	LevelName      string // empty means the first level of the wad
	CellSize       int
	Traces         []TraceRequest
	TraceFlags     spatial.TraceFlags
	JSONOutput     bool
	Stats          bool
	View           bool
	Profile        bool
	ProfilePath    string
	VerbosityLevel int
}

var config *ProgramConfig

func defaultProgramConfig() *ProgramConfig {
	return &ProgramConfig{
		CellSize:       int(spatial.DEFAULT_CELL_SIZE),
		TraceFlags:     spatial.TraceAll,
		VerbosityLevel: 0,
	}
}

// IndexConfig derives the spatial index configuration from the program's
func (c *ProgramConfig) IndexConfig() spatial.Config {
	ic := spatial.DefaultConfig()
	ic.CellWidth = float64(c.CellSize)
	ic.CellHeight = float64(c.CellSize)
	return ic
}

// Configure initializes config with defaults, parses the command line and
// prints the banner. Must be called before config is accessed
func Configure() {
	config = defaultProgramConfig()
	if !config.FromCommandLine(os.Args[1:]) {
		Log.Printf("\n")
		os.Exit(1)
	}
	// JSON goes to stdout, so the banner would spoil it
	if !config.JSONOutput {
		printBanner()
	}

	// If input file name was not passed, print help
	if config.InputFileName == "" {
		PrintHelp()
		os.Exit(0)
	}
	Log.SetVerbosity(config.VerbosityLevel)
}

func printBanner() {
	Log.Printf("VigilantWalk ver %s\n", VERSION)
	Log.Printf("Copyright (c)   2022-2026 VigilantDoomer\n")
	Log.Printf("Blockmap and path traversal follow the design of the Doom engine\n")
	Log.Printf("by id Software, and are distributed under the terms of\n")
	Log.Printf(" GNU General Public License v2.\n")
	Log.Printf("\n")
}

func PrintHelp() {
	Log.Printf("Usage: vigilantwalk {-options} filename.wad {-o scene.msgpack}\n")
	Log.Printf("\n")
	Log.Printf("-l=NAME Level to index (default: first level in the wad)\n")
	Log.Printf("\n")
	Log.Printf("-c=N Blockmap cell size in map units (default %d)\n", int(spatial.DEFAULT_CELL_SIZE))
	Log.Printf("\n")
	Log.Printf("-t=x1,y1,x2,y2 Trace a path through the level. May be given many times.\n")
	Log.Printf("\n")
	Log.Printf("-m=FLAGS What traces collect\n")
	Log.Printf("	l Lines\n")
	Log.Printf("	m Mobjs\n")
	Log.Printf("	d Stop at destination\n")
	Log.Printf("	(default: lm)\n")
	Log.Printf("\n")
	Log.Printf("-q file.yaml Run probes (traces, box queries, moves, sight checks) from file\n")
	Log.Printf("\n")
	Log.Printf("-o file.msgpack Export the indexed level as a scene (.yaml also works)\n")
	Log.Printf("\n")
	Log.Printf("-j Print trace and probe results as JSON\n")
	Log.Printf("\n")
	Log.Printf("-s Print index and metrics statistics\n")
	Log.Printf("\n")
	Log.Printf("-v Add verbosity to text output. Use multiple times for increased verbosity.\n")
	Log.Printf("\n")
	Log.Printf("--view Show the blockmap and trace paths in the terminal\n")
	Log.Printf("\n")
	Log.Printf("--cpuprofile file Write CPU profile to file\n")
	Log.Printf("\n")
	Log.Printf("Example (1): vigilantwalk -l=MAP01 -t=0,0,1024,512 -s doom2.wad\n")
	Log.Printf("	Indexes MAP01, traces from (0,0) to (1024,512) printing every line\n")
	Log.Printf("	and mobj crossed in order, then prints index statistics.\n")
	Log.Printf("Example (2): vigilantwalk -c=64 -q probes.yaml -j level.yaml\n")
	Log.Printf("	Builds the index for a hand-written scene with 64 unit cells and\n")
	Log.Printf("	runs the probes listed in probes.yaml, printing results as JSON.\n")
	Log.Printf("\n")
}
