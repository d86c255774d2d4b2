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

// trace
package spatial

import (
	"math"
	"sort"
)

type TraceFlags int

const (
	TraceLines TraceFlags = 1 << iota
	TraceMobjs
	// Stop replaying at the first intercept lying at or past the destination
	TraceStopAtDestination

	TraceAll = TraceLines | TraceMobjs
)

// Log slot used to report the latest trace that ran out of steps
const SLOT_STEPCAP = 0

// TraceContext is the state of one trace, handed to the callback along with
// each intercept
type TraceContext struct {
	Map *Map
	// Trace line: origin after the boundary nudge, direction towards the
	// requested (unclipped) destination. Fractions refer to it
	Trace Divline
	// Cell walk destination, after clipping to the level bounds
	Dest  Vec2
	Flags TraceFlags
	// Sorted intercepts. The slice is shared with later traces on the same
	// Map, so it is only valid inside the callback and is cleared when Trace
	// returns. Copy what needs to outlive the callback
	Intercepts []Intercept
	// Index of the intercept being delivered
	Index int
	// Cells visited, and whether the destination cell was among them
	Steps   int
	Reached bool
}

// PointAt returns the world position at fraction frac of the trace
func (tc *TraceContext) PointAt(frac float64) Vec2 {
	return tc.Trace.Origin.Add(tc.Trace.Dir.Scale(frac))
}

// TraceFunc receives intercepts in ascending fraction order, returns true to
// stop the trace
type TraceFunc func(in *Intercept, tc *TraceContext) bool

// onCellBoundary reports whether v lies on a cell boundary of the grid
// starting at origin with the given cell size
func onCellBoundary(v, origin, size, epsilon float64) bool {
	rel := (v - origin) / size
	return math.Abs(rel-math.Round(rel))*size <= epsilon
}

// outcode returns which sides of box p lies outside of, one bit per side
func outcode(p Vec2, box AABox) int {
	code := 0
	if p.X < box.MinX {
		code |= 1
	} else if p.X > box.MaxX {
		code |= 2
	}
	if p.Y < box.MinY {
		code |= 4
	} else if p.Y > box.MaxY {
		code |= 8
	}
	return code
}

// clipDestination pulls to back onto the level bounds along the segment. Each
// of the four edges is intersected with the segment itself, a hit counting
// only when it lies within 0..1 along the segment and on the edge's span. A
// later valid hit overrides an earlier one
func (m *Map) clipDestination(from, to Vec2) Vec2 {
	b := m.bounds
	d := to.Sub(from)
	clipped := to
	onSegment := func(t float64) bool {
		return t >= 0 && t <= 1
	}
	if to.X < b.MinX && d.X != 0 {
		t := (b.MinX - from.X) / d.X
		y := from.Y + d.Y*t
		if onSegment(t) && y >= b.MinY && y <= b.MaxY {
			clipped = Vec2{b.MinX, y}
		}
	}
	if to.X > b.MaxX && d.X != 0 {
		t := (b.MaxX - from.X) / d.X
		y := from.Y + d.Y*t
		if onSegment(t) && y >= b.MinY && y <= b.MaxY {
			clipped = Vec2{b.MaxX, y}
		}
	}
	if to.Y < b.MinY && d.Y != 0 {
		t := (b.MinY - from.Y) / d.Y
		x := from.X + d.X*t
		if onSegment(t) && x >= b.MinX && x <= b.MaxX {
			clipped = Vec2{x, b.MinY}
		}
	}
	if to.Y > b.MaxY && d.Y != 0 {
		t := (b.MaxY - from.Y) / d.Y
		x := from.X + d.X*t
		if onSegment(t) && x >= b.MinX && x <= b.MaxX {
			clipped = Vec2{x, b.MaxY}
		}
	}
	return clipped
}

// Trace walks the blockmap cells along from-to, collects intercepts with the
// categories in flags, sorts them by distance and hands them to fn in order.
// Returns true if fn stopped the trace.
//
// A trace starting outside the level bounds, or a zero-length one, sees
// nothing. An origin lying on a cell boundary is moved one unit along that
// axis first, as the original engine does, so that lines running along the
// boundary are seen consistently. fn may start other traces
func (m *Map) Trace(from, to Vec2, flags TraceFlags, fn TraceFunc) bool {
	if from == to {
		instrumentTrace(tracesRejected)
		return false
	}
	if outcode(from, m.bounds)&outcode(to, m.bounds) != 0 {
		instrumentTrace(tracesRejected)
		return false
	}
	if !m.bounds.Contains(from) {
		instrumentTrace(tracesRejected)
		return false
	}

	origin := m.lines.Origin()
	if onCellBoundary(from.X, origin.X, m.config.CellWidth, m.config.FudgeEpsilon) {
		from.X += 1
	}
	if onCellBoundary(from.Y, origin.Y, m.config.CellHeight, m.config.FudgeEpsilon) {
		from.Y += 1
	}

	tc := &TraceContext{
		Map:   m,
		Trace: DivlineFromPoints(from, to),
		Dest:  m.clipDestination(from, to),
		Flags: flags,
	}

	// A trace started from inside another trace's callback must not clobber
	// the intercepts the outer one is replaying
	nested := m.tracing
	var buf []Intercept
	if !nested {
		buf = m.scratch[:0]
	}

	stamp := m.nextValidCount()
	addLine := func(l *Line) {
		if l.validCount == stamp {
			return
		}
		l.validCount = stamp
		if frac, ok := lineIntercept(tc.Trace, l); ok {
			buf = append(buf, Intercept{Kind: INTERCEPT_LINE, Frac: frac, Line: l})
		}
	}

	tc.Steps, tc.Reached, _ = m.lines.IteratePath(tc.Trace.Origin, tc.Dest,
		m.config.MaxTraceSteps, func(cx, cy int) bool {
			if flags&TraceLines != 0 {
				m.polyobjs.IterateCell(cx, cy, func(po *Polyobj) bool {
					if po.validCount == stamp {
						return false
					}
					po.validCount = stamp
					for _, l := range po.Lines {
						addLine(l)
					}
					return false
				})
				m.lines.IterateCell(cx, cy, func(l *Line) bool {
					addLine(l)
					return false
				})
			}
			if flags&TraceMobjs != 0 {
				m.mobjs.IterateCell(cx, cy, func(mo *Mobj) bool {
					if mo.validCount == stamp {
						return false
					}
					mo.validCount = stamp
					if frac, ok := mobjIntercept(tc.Trace, mo); ok {
						buf = append(buf, Intercept{Kind: INTERCEPT_MOBJ, Frac: frac, Mobj: mo})
					}
					return false
				})
			}
			return false
		})
	instrumentCellsWalked(tc.Steps)
	if !tc.Reached {
		instrumentStepCapHit()
		Log.Push(SLOT_STEPCAP, "Trace %v -> %v gave up after %d cells\n",
			from, to, tc.Steps)
	}

	sort.Stable(InterceptsByFrac(buf))
	tc.Intercepts = buf

	m.tracing = true
	stopped := false
	var delivered [interceptKinds]int
	for i := range buf {
		in := &buf[i]
		if flags&TraceStopAtDestination != 0 && in.Frac >= 1 {
			break
		}
		tc.Index = i
		delivered[in.Kind]++
		if fn(in, tc) {
			stopped = true
			break
		}
	}
	m.tracing = nested
	if !nested {
		m.scratch = buf[:0]
	}
	tc.Intercepts = nil
	instrumentIntercepts(delivered)

	if stopped {
		instrumentTrace(tracesStopped)
	} else {
		instrumentTrace(tracesCompleted)
	}
	return stopped
}

// FirstIntercept returns the nearest intercept of the trace that lies before
// the destination
func (m *Map) FirstIntercept(from, to Vec2, flags TraceFlags) (Intercept, bool) {
	var first Intercept
	found := m.Trace(from, to, flags|TraceStopAtDestination,
		func(in *Intercept, tc *TraceContext) bool {
			first = *in
			return true
		})
	return first, found
}

// CheckLineOfSight reports whether no sight-blocking line stands between the
// two points
func (m *Map) CheckLineOfSight(from, to Vec2) bool {
	blocked := m.Trace(from, to, TraceLines|TraceStopAtDestination,
		func(in *Intercept, tc *TraceContext) bool {
			return in.Line.BlocksSight()
		})
	return !blocked
}
