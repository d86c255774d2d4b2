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

package spatial

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	poolLabel   = "pool"
	resultLabel = "result"
	kindLabel   = "kind"

	resultStopped   = "stopped"
	resultCompleted = "completed"
	resultRejected  = "rejected"
)

var (
	traceCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vigilantwalk_traces_total",
		Help: "The number of path traversals, by outcome.",
	}, []string{resultLabel})

	traceInterceptsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vigilantwalk_trace_intercepts_total",
		Help: "The number of intercepts handed to trace callbacks.",
	}, []string{kindLabel})

	traceCellsWalked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vigilantwalk_trace_cells_total",
		Help: "The number of blockmap cells visited by traces.",
	})

	traceStepCapHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vigilantwalk_trace_step_cap_hits_total",
		Help: "The number of traces that ran out of steps before reaching the destination cell.",
	})

	linkNodesInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vigilantwalk_link_nodes",
		Help: "The number of mobj-line link nodes in use.",
	})

	poolPagesAllocated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vigilantwalk_pool_pages_total",
		Help: "The number of storage pages allocated by pools.",
	}, []string{poolLabel})
)

// Per-label counters used by traces
var (
	tracesStopped   = traceCount.WithLabelValues(resultStopped)
	tracesCompleted = traceCount.WithLabelValues(resultCompleted)
	tracesRejected  = traceCount.WithLabelValues(resultRejected)

	interceptsDelivered = [interceptKinds]prometheus.Counter{
		INTERCEPT_LINE: traceInterceptsDelivered.WithLabelValues(INTERCEPT_LINE.String()),
		INTERCEPT_MOBJ: traceInterceptsDelivered.WithLabelValues(INTERCEPT_MOBJ.String()),
	}
)

func instrumentTrace(counter prometheus.Counter) {
	counter.Inc()
}

// instrumentIntercepts adds the per-kind delivery counts of one trace
func instrumentIntercepts(delivered [interceptKinds]int) {
	for kind, n := range delivered {
		if n > 0 {
			interceptsDelivered[kind].Add(float64(n))
		}
	}
}

func instrumentCellsWalked(n int) {
	traceCellsWalked.Add(float64(n))
}

func instrumentStepCapHit() {
	traceStepCapHits.Inc()
}

func instrumentLinkNodes(delta int) {
	linkNodesInUse.Add(float64(delta))
}

func instrumentPoolPage(pool string) {
	poolPagesAllocated.
		With(prometheus.Labels{poolLabel: pool}).
		Inc()
}
