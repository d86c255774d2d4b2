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

// intercept
package spatial

type InterceptKind int

const (
	INTERCEPT_LINE InterceptKind = iota
	INTERCEPT_MOBJ

	interceptKinds = iota
)

func (k InterceptKind) String() string {
	switch k {
	case INTERCEPT_LINE:
		return "line"
	case INTERCEPT_MOBJ:
		return "mobj"
	}
	return "unknown"
}

// Intercept is a crossing of the trace with a line or a mobj, Frac being the
// position along the trace (0 at origin, 1 at destination)
type Intercept struct {
	Kind InterceptKind
	Frac float64
	Line *Line
	Mobj *Mobj
}

// InterceptsByFrac sorts ascending by fraction. Used with sort.Stable, so
// that equal fractions keep the order they were collected in
type InterceptsByFrac []Intercept

func (x InterceptsByFrac) Len() int           { return len(x) }
func (x InterceptsByFrac) Less(i, j int) bool { return x[i].Frac < x[j].Frac }
func (x InterceptsByFrac) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

// lineIntercept computes where the trace crosses line l. ok is false when
// both ends of the line are on the same side of the trace or the crossing is
// behind the origin
func lineIntercept(trace Divline, l *Line) (frac float64, ok bool) {
	s1 := trace.PointOnSide(l.V1)
	s2 := trace.PointOnSide(l.V2)
	if s1 == s2 {
		return 0, false
	}
	frac = InterceptVector(trace, l.Divline())
	if frac < 0 {
		return 0, false
	}
	return frac, true
}

// mobjIntercept treats the mobj as the diagonal of its box that is most
// perpendicular to the trace
func mobjIntercept(trace Divline, m *Mobj) (frac float64, ok bool) {
	var a, b Vec2
	r := m.Radius
	tracePositive := (trace.Dir.X >= 0) == (trace.Dir.Y >= 0)
	if tracePositive {
		a = Vec2{m.Pos.X - r, m.Pos.Y + r}
		b = Vec2{m.Pos.X + r, m.Pos.Y - r}
	} else {
		a = Vec2{m.Pos.X - r, m.Pos.Y - r}
		b = Vec2{m.Pos.X + r, m.Pos.Y + r}
	}
	s1 := trace.PointOnSide(a)
	s2 := trace.PointOnSide(b)
	if s1 == s2 {
		return 0, false
	}
	frac = InterceptVector(trace, DivlineFromPoints(a, b))
	if frac < 0 {
		return 0, false
	}
	return frac, true
}
