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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

func TestPrintStats(t *testing.T) {
	w := newTestWorld(t)
	w.TraceIntercepts(spatial.Vec2{X: 32, Y: 100}, spatial.Vec2{X: 224, Y: 100}, spatial.TraceAll)

	var buf bytes.Buffer
	require.NoError(t, PrintStats(&buf, w))
	out := buf.String()
	require.Contains(t, out, "Level TEST\n")
	require.Contains(t, out, "  blockmap: 7x7 cells of 64x64\n")
	require.Contains(t, out, "  lines: 5 in ")
	require.Contains(t, out, "  polyobjs: 1 in 2 cells\n")
	require.Contains(t, out, "  mobjs: 2 in ")
	require.Contains(t, out, "Metrics\n")
	require.Contains(t, out, "  "+METRICS_PREFIX+"traces_total{result=")
	require.Contains(t, out, "  "+METRICS_PREFIX+"link_nodes ")
}
