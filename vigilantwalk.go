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

// -- This file is where the program entry is.
// VigilantWalk indexes the geometry of a Doom-engine level (or of a scene
// file) in a blockmap, and answers the questions a game simulation asks of
// it: what lies along a path, in what order, what touches a box, and what
// a moving object is linked to. The spatial index itself lives in the
// spatial package, this program loads levels into it and runs queries
package main

import (
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

var Log = spatial.Log

func main() {
	timeStart := time.Now()

	// before config can be legitimately accessed, must call Configure()
	Configure()

	errors.Encoder = json.Marshal

	if config.Profile {
		f, err := os.Create(config.ProfilePath)
		if err != nil {
			Log.Printf("Could not create CPU profile: %s", err.Error())
		} else {
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				Log.Printf("Could not start CPU profile: %s", err.Error())
			} else {
				defer pprof.StopCPUProfile()
			}
		}
	}

	config.InputFileName, _ = filepath.Abs(config.InputFileName)
	if config.OutputFileName != "" {
		config.OutputFileName, _ = filepath.Abs(config.OutputFileName)
		// Output file colliding with input file would destroy the input
		// before it is read
		f1, err1 := os.Stat(config.InputFileName)
		f2, err2 := os.Stat(config.OutputFileName)
		if err1 == nil && err2 == nil {
			if os.SameFile(f1, f2) {
				Log.Error("You cannot specify output file that maps to the same input file (whether via same path and name, or hardlinks, or symlinks)\n")
				os.Exit(1)
			}
		}
	}

	mainFileControl := FileControl{}
	defer mainFileControl.Shutdown()
	abort := func(s string, a ...interface{}) {
		Log.Error(s, a...)
		mainFileControl.Shutdown()
		Log.Flush()
		os.Exit(1)
	}

	f, err := mainFileControl.OpenInputFile(config.InputFileName)
	if err != nil {
		abort("An error has occured while trying to read %s: %s\n",
			config.InputFileName, err)
	}

	scene, err := LoadScene(f, config.InputFileName, config.LevelName)
	if err != nil {
		abort("Couldn't load %s: %s\n", config.InputFileName, err)
	}
	world, err := scene.Build(config.IndexConfig())
	if err != nil {
		abort("Couldn't index %s: %s\n", scene.Name, err)
	}
	Log.Verbose(1, "Indexing %s took %s\n", scene.Name, time.Since(timeStart))

	probes := make([]Probe, 0, len(config.Traces))
	for _, tr := range config.Traces {
		probes = append(probes, Probe{
			Kind:    PROBE_TRACE,
			From:    ScenePoint{tr.From.X, tr.From.Y},
			To:      ScenePoint{tr.To.X, tr.To.Y},
			Collect: traceFlagsLetters(config.TraceFlags),
		})
	}
	if config.ProbeFileName != "" {
		pf, err := os.Open(config.ProbeFileName)
		if err != nil {
			abort("Couldn't open probe file %s: %s\n", config.ProbeFileName, err)
		}
		fileProbes, err := ReadProbes(pf)
		pf.Close()
		if err != nil {
			abort("Couldn't read probe file %s: %s\n", config.ProbeFileName, err)
		}
		probes = append(probes, fileProbes...)
	}
	if len(probes) > 0 {
		results := RunProbes(world, probes)
		if err := PrintResults(os.Stdout, results, config.JSONOutput); err != nil {
			abort("Couldn't print results: %s\n", err)
		}
	}

	if config.OutputFileName != "" {
		format, ok := SceneFormatFromName(config.OutputFileName)
		if !ok {
			format = SCENE_MSGPACK
		}
		fout, err := mainFileControl.OpenOutputFile(config.OutputFileName)
		if err != nil {
			abort("Couldn't create output file for %s: %s\n", config.OutputFileName, err)
		}
		if err := WriteScene(fout, world.Scene(), format); err != nil {
			abort("Couldn't write scene to %s: %s\n", config.OutputFileName, err)
		}
		Log.Verbose(1, "Scene written to %s\n", config.OutputFileName)
	}

	if config.View {
		if err := RunViewer(world, config.Traces); err != nil {
			abort("Couldn't open the terminal: %s\n", err)
		}
	}

	if config.Stats {
		if err := PrintStats(os.Stdout, world); err != nil {
			abort("Couldn't gather statistics: %s\n", err)
		}
	}

	if !mainFileControl.Success() {
		abort("Couldn't finish writing output\n")
	}
	Log.Flush()
	if !config.JSONOutput {
		Log.Printf("Total time: %s\n", time.Since(timeStart))
	}
}

// LoadScene reads the input: a scene file when the name says so, a wad
// otherwise. For wads, levelName picks the level, empty for the first one
func LoadScene(r io.ReadSeeker, fileName string, levelName string) (*Scene, error) {
	if format, ok := SceneFormatFromName(fileName); ok {
		return ReadScene(r, format)
	}
	wd, err := ReadWadDirectory(r)
	if err != nil {
		return nil, err
	}
	ll, err := wd.FindLevel(levelName)
	if err != nil {
		return nil, err
	}
	ld, err := LoadLevel(r, wd, ll)
	if err != nil {
		return nil, err
	}
	bounds := ld.GetBounds()
	Log.Verbose(1, "Level %s spans (%d,%d)-(%d,%d)\n", ld.Name,
		bounds.Xmin, bounds.Ymin, bounds.Xmax, bounds.Ymax)
	return ld.ToScene()
}
