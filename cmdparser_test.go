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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

func TestFromCommandLine(t *testing.T) {
	c := defaultProgramConfig()
	ok := c.FromCommandLine([]string{
		"-l=map07", "-c=64", "-t=0,0,10.5,-3", "-t=1,2,3,4", "-m=ld",
		"-j", "-s", "-vv", "-v", "-q", "probes.yaml", "-o", "out.msgpack",
		"--view", "--cpuprofile", "cpu.prof", "level.wad",
	})
	require.True(t, ok)
	require.Equal(t, "MAP07", c.LevelName)
	require.Equal(t, 64, c.CellSize)
	require.Equal(t, []TraceRequest{
		{From: spatial.Vec2{X: 0, Y: 0}, To: spatial.Vec2{X: 10.5, Y: -3}},
		{From: spatial.Vec2{X: 1, Y: 2}, To: spatial.Vec2{X: 3, Y: 4}},
	}, c.Traces)
	require.Equal(t, spatial.TraceLines|spatial.TraceStopAtDestination, c.TraceFlags)
	require.True(t, c.JSONOutput)
	require.True(t, c.Stats)
	require.Equal(t, 3, c.VerbosityLevel)
	require.Equal(t, "probes.yaml", c.ProbeFileName)
	require.Equal(t, "out.msgpack", c.OutputFileName)
	require.True(t, c.View)
	require.True(t, c.Profile)
	require.Equal(t, "cpu.prof", c.ProfilePath)
	require.Equal(t, "level.wad", c.InputFileName)

	ic := c.IndexConfig()
	require.Equal(t, 64.0, ic.CellWidth)
	require.Equal(t, 64.0, ic.CellHeight)
}

func TestFromCommandLineDefaults(t *testing.T) {
	c := defaultProgramConfig()
	require.True(t, c.FromCommandLine([]string{"scene.yaml"}))
	require.Equal(t, "scene.yaml", c.InputFileName)
	require.Equal(t, int(spatial.DEFAULT_CELL_SIZE), c.CellSize)
	require.Equal(t, spatial.TraceAll, c.TraceFlags)
	require.Empty(t, c.LevelName)
	require.False(t, c.JSONOutput)

	c = defaultProgramConfig()
	require.True(t, c.FromCommandLine([]string{"-j-", "-s+", "scene.yaml"}))
	require.False(t, c.JSONOutput)
	require.True(t, c.Stats)
}

func TestFromCommandLineErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"two inputs", []string{"a.wad", "b.wad"}},
		{"zero cell size", []string{"-c=0", "a.wad"}},
		{"cell size without value", []string{"-c", "a.wad"}},
		{"trace with three numbers", []string{"-t=1,2,3", "a.wad"}},
		{"trace not a number", []string{"-t=1,2,3,x", "a.wad"}},
		{"trace without equals", []string{"-t1,2,3,4", "a.wad"}},
		{"unknown collect letter", []string{"-m=lz", "a.wad"}},
		{"empty collect", []string{"-m=", "a.wad"}},
		{"empty level name", []string{"-l=", "a.wad"}},
		{"output without file", []string{"a.wad", "-o"}},
		{"output twice", []string{"-o", "x.yaml", "-o", "y.yaml", "a.wad"}},
		{"probe file twice", []string{"-q", "x.yaml", "-q", "y.yaml", "a.wad"}},
		{"output glued to file", []string{"-ox.yaml", "a.wad"}},
		{"profile without file", []string{"a.wad", "--cpuprofile"}},
		{"unknown long option", []string{"--fast", "a.wad"}},
		{"unknown option", []string{"-x", "a.wad"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := defaultProgramConfig()
			require.False(t, c.FromCommandLine(test.args))
		})
	}
}

func TestTraceFlagsLetters(t *testing.T) {
	tests := []struct {
		letters string
		flags   spatial.TraceFlags
	}{
		{"l", spatial.TraceLines},
		{"m", spatial.TraceMobjs},
		{"lm", spatial.TraceAll},
		{"lmd", spatial.TraceAll | spatial.TraceStopAtDestination},
		{"d", spatial.TraceStopAtDestination},
	}
	for _, test := range tests {
		t.Run(test.letters, func(t *testing.T) {
			flags, ok := traceFlagsFromLetters(test.letters)
			require.True(t, ok)
			require.Equal(t, test.flags, flags)
			require.Equal(t, test.letters, traceFlagsLetters(flags))
		})
	}

	flags, ok := traceFlagsFromLetters("dml")
	require.True(t, ok)
	require.Equal(t, "lmd", traceFlagsLetters(flags))
}
