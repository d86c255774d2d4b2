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
	"fmt"
	"math"
)

// Vec2 is a point or a direction in world space. World units are the
// map units of the level (Doom uses 1 unit = 1 pixel of texture)
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%v,%v)", v.X, v.Y)
}

// AABox is an axis-aligned box. Both edges are inclusive: a point lying
// exactly on MaxX is inside
type AABox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxAround returns the box of half-size r centered on p (the way mobj
// radius is treated: a square, not a circle)
func BoxAround(p Vec2, r float64) AABox {
	return AABox{
		MinX: p.X - r,
		MinY: p.Y - r,
		MaxX: p.X + r,
		MaxY: p.Y + r,
	}
}

// BoxFromPoints returns the smallest box containing every point. Zero
// points yield an inverted (empty) box
func BoxFromPoints(pts ...Vec2) AABox {
	box := AABox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
	for _, p := range pts {
		box.AddPoint(p)
	}
	return box
}

func (b *AABox) AddPoint(p Vec2) {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

// Empty reports an inverted box (one that contains no point at all)
func (b AABox) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

func (b AABox) Contains(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

func (b AABox) Intersects(o AABox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Expand grows the box by d on every side
func (b AABox) Expand(d float64) AABox {
	return AABox{
		MinX: b.MinX - d,
		MinY: b.MinY - d,
		MaxX: b.MaxX + d,
		MaxY: b.MaxY + d,
	}
}

func (b AABox) Width() float64 {
	return b.MaxX - b.MinX
}

func (b AABox) Height() float64 {
	return b.MaxY - b.MinY
}

func (b AABox) String() string {
	return fmt.Sprintf("[(%v,%v)-(%v,%v)]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Divline is a line given by its origin and direction, the way traces and
// partition lines are represented since the days of Doom
type Divline struct {
	Origin Vec2
	Dir    Vec2
}

func DivlineFromPoints(a, b Vec2) Divline {
	return Divline{Origin: a, Dir: b.Sub(a)}
}

// PointOnSide returns 0 if p is on the front (right) side of the divline,
// or 1 if it is on the back side. Points exactly on the line are on the
// back side, except for axis-aligned divlines which keep the old engine's
// asymmetric rules
func (d Divline) PointOnSide(p Vec2) int {
	if d.Dir.X == 0 {
		if p.X <= d.Origin.X {
			if d.Dir.Y > 0 {
				return 1
			}
			return 0
		}
		if d.Dir.Y < 0 {
			return 1
		}
		return 0
	}
	if d.Dir.Y == 0 {
		if p.Y <= d.Origin.Y {
			if d.Dir.X < 0 {
				return 1
			}
			return 0
		}
		if d.Dir.X > 0 {
			return 1
		}
		return 0
	}
	left := d.Dir.Y * (p.X - d.Origin.X)
	right := (p.Y - d.Origin.Y) * d.Dir.X
	if right < left {
		return 0 // front side
	}
	return 1 // back side
}

// InterceptVector returns the fractional position along trace where it
// crosses line. Returns 0 when the two are parallel; callers reject
// parallel lines with a side test before asking
func InterceptVector(trace, line Divline) float64 {
	den := line.Dir.Y*trace.Dir.X - line.Dir.X*trace.Dir.Y
	if den == 0 {
		return 0
	}
	num := (line.Origin.X-trace.Origin.X)*line.Dir.Y +
		(trace.Origin.Y-line.Origin.Y)*line.Dir.X
	return num / den
}

// LineTouchesBox reports whether segment a-b has at least one point inside
// (or on the edge of) box. Parametric clipping against the four edges,
// the float counterpart of the old checkLinedefInsideBox
func LineTouchesBox(a, b Vec2, box AABox) bool {
	t0, t1 := 0.0, 1.0
	dx := b.X - a.X
	dy := b.Y - a.Y
	ps := [4]float64{-dx, dx, -dy, dy}
	qs := [4]float64{a.X - box.MinX, box.MaxX - a.X, a.Y - box.MinY, box.MaxY - a.Y}
	for i := 0; i < 4; i++ {
		p, q := ps[i], qs[i]
		if p == 0 {
			if q < 0 { // parallel to this edge and outside of it
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return true
}

// rounds the value _up_ to the nearest power of two.
func RoundPOW2(x int) int {
	if x <= 2 {
		return x
	}

	x--

	for tmp := x >> 1; tmp != 0; tmp >>= 1 {
		x |= tmp
	}

	return x + 1
}
