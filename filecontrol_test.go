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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileControlSuccess(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(in, []byte(testSceneYAML), 0o644))
	out := filepath.Join(dir, "out.yaml")

	fc := FileControl{}
	defer fc.Shutdown()
	fin, err := fc.OpenInputFile(in)
	require.NoError(t, err)
	scene, err := LoadScene(fin, in, "")
	require.NoError(t, err)

	fout, err := fc.OpenOutputFile(out)
	require.NoError(t, err)
	require.NotEqual(t, out, fout.Name())
	require.NoError(t, WriteScene(fout, scene, SCENE_YAML))
	_, err = os.Stat(out)
	require.True(t, os.IsNotExist(err))

	require.True(t, fc.Success())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	written, err := ReadScene(f, SCENE_YAML)
	require.NoError(t, err)
	require.Equal(t, scene, written)
}

func TestFileControlShutdownRemovesTemporary(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.msgpack")

	fc := FileControl{}
	fout, err := fc.OpenOutputFile(out)
	require.NoError(t, err)
	_, err = fout.Write([]byte("partial"))
	require.NoError(t, err)
	fc.Shutdown()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFileControlMissingInput(t *testing.T) {
	fc := FileControl{}
	defer fc.Shutdown()
	_, err := fc.OpenInputFile(filepath.Join(t.TempDir(), "none.wad"))
	require.Error(t, err)
}
