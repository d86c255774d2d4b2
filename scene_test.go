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
	"bytes"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

func TestSceneFormatFromName(t *testing.T) {
	tests := []struct {
		name   string
		format int
		ok     bool
	}{
		{"level.yaml", SCENE_YAML, true},
		{"level.YML", SCENE_YAML, true},
		{"/tmp/out.msgpack", SCENE_MSGPACK, true},
		{"out.mp", SCENE_MSGPACK, true},
		{"doom2.wad", 0, false},
		{"noext", 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			format, ok := SceneFormatFromName(test.name)
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.format, format)
		})
	}
}

func TestSceneBuild(t *testing.T) {
	w := newTestWorld(t)
	require.Equal(t, "TEST", w.Name)

	stats := w.Map.Stats()
	require.Equal(t, 7, stats.Width)
	require.Equal(t, 7, stats.Height)
	require.Equal(t, 5, stats.Lines)
	require.Equal(t, 1, stats.Polyobjs)
	require.Equal(t, 2, stats.Mobjs)
	require.Equal(t, 1, stats.SubAreas)

	require.Equal(t, w.Polyobj(1), w.Line(6).Polyobj)
	require.Nil(t, w.Line(4).Polyobj)
	require.Nil(t, w.Line(42))
	require.Equal(t, 3001, w.Mobj(1).Type)
	require.Equal(t, 0, w.Mobj(0).LineCount())
}

func TestSceneBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		scene   string
		errType string
	}{
		{
			name: "duplicate line",
			scene: `
lines:
  - {id: 1, v1: {x: 0, y: 0}, v2: {x: 10, y: 0}}
  - {id: 1, v1: {x: 0, y: 0}, v2: {x: 0, y: 10}}
`,
			errType: ErrTypeBadScene,
		},
		{
			name: "duplicate mobj",
			scene: `
lines:
  - {id: 1, v1: {x: 0, y: 0}, v2: {x: 10, y: 0}}
mobjs:
  - {id: 3, pos: {x: 5, y: 5}, radius: 2}
  - {id: 3, pos: {x: 6, y: 6}, radius: 2}
`,
			errType: ErrTypeBadScene,
		},
		{
			name: "polyobj line missing",
			scene: `
lines:
  - {id: 1, v1: {x: 0, y: 0}, v2: {x: 10, y: 0}}
polyobjs:
  - {id: 1, lines: [1, 2]}
`,
			errType: ErrTypeBadScene,
		},
		{
			name: "line in two polyobjs",
			scene: `
lines:
  - {id: 1, v1: {x: 0, y: 0}, v2: {x: 10, y: 0}}
polyobjs:
  - {id: 1, lines: [1]}
  - {id: 2, lines: [1]}
`,
			errType: spatial.ErrTypeMalformedTopology,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			scene, err := ReadScene(strings.NewReader(test.scene), SCENE_YAML)
			require.NoError(t, err)
			_, err = scene.Build(defaultProgramConfig().IndexConfig())
			require.Error(t, err)
			require.Equal(t, test.errType, errors.Type(err))
		})
	}
}

func TestReadSceneMalformed(t *testing.T) {
	_, err := ReadScene(strings.NewReader("lines: [{id: one}]"), SCENE_YAML)
	require.Error(t, err)
	require.Equal(t, ErrTypeBadScene, errors.Type(err))

	_, err = ReadScene(bytes.NewReader([]byte{0xc1}), SCENE_MSGPACK)
	require.Error(t, err)
	require.Equal(t, ErrTypeBadScene, errors.Type(err))
}

func TestWorldSceneMatchesInput(t *testing.T) {
	scene := testScene(t)
	w := newTestWorld(t)
	require.Equal(t, scene, w.Scene())
}

func TestSceneRoundTrip(t *testing.T) {
	for _, format := range []int{SCENE_YAML, SCENE_MSGPACK} {
		w := newTestWorld(t)
		var buf bytes.Buffer
		require.NoError(t, WriteScene(&buf, w.Scene(), format))

		scene, err := ReadScene(&buf, format)
		require.NoError(t, err)
		require.Equal(t, testScene(t), scene)

		pc := defaultProgramConfig()
		pc.CellSize = 64
		w2, err := scene.Build(pc.IndexConfig())
		require.NoError(t, err)
		require.Equal(t, w.Map.Stats(), w2.Map.Stats())

		from := spatial.Vec2{X: 32, Y: 100}
		to := spatial.Vec2{X: 224, Y: 100}
		require.Equal(t,
			w.TraceIntercepts(from, to, spatial.TraceAll),
			w2.TraceIntercepts(from, to, spatial.TraceAll))
	}
}

func TestSceneExportKeepsMoves(t *testing.T) {
	w := newTestWorld(t)
	mo := w.Mobj(0)
	require.NoError(t, w.Map.MoveMobj(mo, spatial.Vec2{X: 120, Y: 100}, 24))

	scene := w.Scene()
	require.Equal(t, ScenePoint{120, 100}, scene.Mobjs[0].Pos)
	require.Equal(t, 24.0, scene.Mobjs[0].Radius)
}
