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
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

const testProbesYAML = `
probes:
  - {kind: trace, from: {x: 32, y: 100}, to: {x: 224, y: 100}}
  - {kind: trace, from: {x: 32, y: 100}, to: {x: 224, y: 100}, collect: ld}
  - {kind: first, from: {x: 32, y: 100}, to: {x: 224, y: 100}, collect: l}
  - {kind: sight, from: {x: 32, y: 100}, to: {x: 224, y: 100}}
  - {kind: sight, from: {x: 32, y: 100}, to: {x: 100, y: 100}}
  - {kind: move, mobj: 0, to: {x: 120, y: 100}}
  - {kind: box, box: [100, 90, 140, 110]}
  - {kind: warp}
  - {kind: move, mobj: 42, to: {x: 0, y: 0}}
  - {kind: box, box: [1, 2, 3]}
  - {kind: trace, from: {x: 32, y: 100}, to: {x: 224, y: 100}, collect: lq}
`

func interceptIDs(res []InterceptResult) []int {
	ids := make([]int, 0, len(res))
	for _, in := range res {
		ids = append(ids, in.ID)
	}
	return ids
}

func runTestProbes(t *testing.T) []ProbeResult {
	probes, err := ReadProbes(strings.NewReader(testProbesYAML))
	require.NoError(t, err)
	require.Len(t, probes, 11)
	return RunProbes(newTestWorld(t), probes)
}

func TestRunProbes(t *testing.T) {
	results := runTestProbes(t)
	require.Len(t, results, 11)
	for i, res := range results {
		require.Equal(t, i, res.Probe)
	}

	trace := results[0].Intercepts
	require.Equal(t, []int{0, 4, 8, 6, 1}, interceptIDs(trace))
	require.Equal(t, "mobj", trace[0].Kind)
	require.InDelta(t, 1.0/6, trace[0].Frac, 1e-9)
	require.InDelta(t, 64, trace[0].X, 1e-9)
	require.Equal(t, "line", trace[1].Kind)
	require.InDelta(t, 0.5, trace[1].Frac, 1e-9)
	require.InDelta(t, 128, trace[1].X, 1e-9)
	require.InDelta(t, 100, trace[1].Y, 1e-9)
	require.False(t, trace[1].Polyobj)
	require.True(t, trace[2].Polyobj)
	require.InDelta(t, 0.75, trace[2].Frac, 1e-9)
	require.True(t, trace[3].Polyobj)
	require.InDelta(t, 7.0/6, trace[4].Frac, 1e-9)
	for i := 1; i < len(trace); i++ {
		require.LessOrEqual(t, trace[i-1].Frac, trace[i].Frac)
	}

	// lines only, nothing past the destination
	require.Equal(t, []int{4, 8, 6}, interceptIDs(results[1].Intercepts))

	require.Equal(t, []int{4}, interceptIDs(results[2].Intercepts))

	require.NotNil(t, results[3].Visible)
	require.False(t, *results[3].Visible)
	require.NotNil(t, results[4].Visible)
	require.True(t, *results[4].Visible)

	require.Empty(t, results[5].Error)
	require.NotNil(t, results[5].LineCount)
	require.Equal(t, 1, *results[5].LineCount)
	require.Equal(t, []int{4}, results[5].Lines)

	require.Empty(t, results[6].Error)
	require.Contains(t, results[6].Lines, 4)
	require.Contains(t, results[6].Mobjs, 0)
	require.NotContains(t, results[6].Mobjs, 1)

	for _, i := range []int{7, 8, 9, 10} {
		require.NotEmpty(t, results[i].Error, "probe %d", i)
		require.Empty(t, results[i].Intercepts, "probe %d", i)
	}
}

func TestRunProbesMoveChangesRadius(t *testing.T) {
	w := newTestWorld(t)
	results := RunProbes(w, []Probe{
		{Kind: PROBE_MOVE, Mobj: 1, To: ScenePoint{140, 150}, Radius: 8},
		{Kind: PROBE_MOVE, Mobj: 1, To: ScenePoint{130, 150}},
	})
	require.Equal(t, 0, *results[0].LineCount)
	require.Empty(t, results[0].Lines)
	// radius 8 is kept by the second move
	require.Equal(t, 8.0, w.Mobj(1).Radius)
	require.Equal(t, 1, *results[1].LineCount)
	require.Equal(t, []int{4}, results[1].Lines)
}

func TestReadProbesMalformed(t *testing.T) {
	_, err := ReadProbes(strings.NewReader("probes: {kind: trace}"))
	require.Error(t, err)
	require.Equal(t, ErrTypeBadProbe, errors.Type(err))
}

func TestTraceInterceptsMobjsOnly(t *testing.T) {
	w := newTestWorld(t)
	from := spatial.Vec2{X: 32, Y: 100}
	to := spatial.Vec2{X: 224, Y: 100}
	res := w.TraceIntercepts(from, to, spatial.TraceMobjs)
	require.Equal(t, []int{0}, interceptIDs(res))
	require.Equal(t, "mobj", res[0].Kind)
}

func TestPrintResultsJSON(t *testing.T) {
	results := runTestProbes(t)
	var buf bytes.Buffer
	require.NoError(t, PrintResults(&buf, results, true))

	var decoded []ProbeResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, results, decoded)
}

func TestPrintResultsText(t *testing.T) {
	results := runTestProbes(t)
	var buf bytes.Buffer
	require.NoError(t, PrintResults(&buf, results, false))

	out := buf.String()
	require.Contains(t, out, "probe 0 trace: 5 intercepts\n")
	require.Contains(t, out, "  line 4 at 0.5000 (128.00,100.00)\n")
	require.Contains(t, out, "  line 8 (polyobj) at 0.7500 (176.00,100.00)\n")
	require.Contains(t, out, "probe 3 sight: visible=false\n")
	require.Contains(t, out, "probe 4 sight: visible=true\n")
	require.Contains(t, out, "probe 5 move: touches 1 lines [4]\n")
	require.Contains(t, out, "probe 7 warp: error: ")
}
