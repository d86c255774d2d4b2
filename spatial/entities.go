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

// entities
package spatial

// Linedef flags the index knows about. Only LF_BLOCKING and LF_BLOCK_SIGHT
// influence helpers here, the rest is carried for callers
const (
	LF_BLOCKING      = 0x0001
	LF_BLOCKMONSTERS = 0x0002
	LF_TWOSIDED      = 0x0004
	LF_BLOCK_SIGHT   = 0x0020
)

// Line is a static boundary segment (a linedef), or a member line of a
// polyobj when Polyobj is set
type Line struct {
	V1, V2  Vec2
	Flags   uint16
	ID      int
	Polyobj *Polyobj

	mobjs      Ring // mobjs touching this line
	validCount int
	linked     bool
}

func (l *Line) Box() AABox {
	return BoxFromPoints(l.V1, l.V2)
}

func (l *Line) Divline() Divline {
	return DivlineFromPoints(l.V1, l.V2)
}

// TouchesBox is the exact shape test of a line against a rectangle
func (l *Line) TouchesBox(box AABox) bool {
	return LineTouchesBox(l.V1, l.V2, box)
}

// Blocking reports whether the line stops movement (one-sided lines always do)
func (l *Line) Blocking() bool {
	return l.Flags&LF_BLOCKING != 0 || l.Flags&LF_TWOSIDED == 0
}

// BlocksSight reports whether the line stops line of sight
func (l *Line) BlocksSight() bool {
	return l.Flags&LF_BLOCK_SIGHT != 0 || l.Flags&LF_TWOSIDED == 0
}

// MobjCount returns how many mobjs are linked to the line
func (l *Line) MobjCount() int {
	return l.mobjs.Len()
}

// Mobj is a movable object. Its shape is the square of half-size Radius
// around Pos
type Mobj struct {
	Pos    Vec2
	Radius float64
	ID     int
	Type   int

	lines      Ring // lines this mobj touches
	validCount int
	linked     bool
	linkedBox  AABox
}

func (m *Mobj) Box() AABox {
	return BoxAround(m.Pos, m.Radius)
}

func (m *Mobj) Linked() bool {
	return m.linked
}

// LineCount returns how many lines the mobj is linked to
func (m *Mobj) LineCount() int {
	return m.lines.Len()
}

// Polyobj is a compound object: a group of lines that moves as a unit
type Polyobj struct {
	ID    int
	Lines []*Line

	validCount int
	linked     bool
	box        AABox
}

// Box returns the bounding box of all member lines
func (po *Polyobj) Box() AABox {
	box := BoxFromPoints()
	for _, l := range po.Lines {
		box.AddPoint(l.V1)
		box.AddPoint(l.V2)
	}
	return box
}

// SubArea is a convex leaf of the level's partition (a subsector)
type SubArea struct {
	ID     int
	Points []Vec2

	validCount int
	linked     bool
	box        AABox
}

func (s *SubArea) Box() AABox {
	return BoxFromPoints(s.Points...)
}
