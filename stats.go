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

// stats
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const METRICS_PREFIX = "vigilantwalk_"

// PrintStats writes the index dimensions and usage, followed by the values
// of the program's metrics in the default prometheus registry
func PrintStats(out io.Writer, w *World) error {
	stats := w.Map.Stats()
	fmt.Fprintf(out, "Level %s\n", w.Name)
	fmt.Fprintf(out, "  blockmap: %dx%d cells of %gx%g\n",
		stats.Width, stats.Height, stats.CellW, stats.CellH)
	fmt.Fprintf(out, "  lines: %d in %d cells\n", stats.Lines, stats.LineCells)
	fmt.Fprintf(out, "  polyobjs: %d in %d cells\n", stats.Polyobjs, stats.PolyobjCells)
	fmt.Fprintf(out, "  mobjs: %d in %d cells\n", stats.Mobjs, stats.MobjCells)
	fmt.Fprintf(out, "  sub-areas: %d in %d cells\n", stats.SubAreas, stats.SubAreaCells)
	fmt.Fprintf(out, "  links: %d in use, %d free of %d\n",
		stats.LinksInUse, stats.LinksFree, stats.LinksCap)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), METRICS_PREFIX) {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			var value float64
			if m.GetCounter() != nil {
				value = m.GetCounter().GetValue()
			} else if m.GetGauge() != nil {
				value = m.GetGauge().GetValue()
			} else {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s %g", name, value))
		}
	}
	sort.Strings(lines)
	fmt.Fprintf(out, "Metrics\n")
	for _, l := range lines {
		fmt.Fprintf(out, "%s\n", l)
	}
	return nil
}
