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

// pathwalk
package spatial

import (
	"math"
)

// IteratePath walks the cells crossed by segment from-to in the order the
// segment crosses them, the way Doom's P_PathTraverse does: two intercept
// accumulators track where the segment meets the next vertical and the next
// horizontal cell boundary, and whichever boundary comes first within the
// current cell decides the step. The walk ends when the cell of "to" is
// visited, when fn returns true, or after maxSteps cells (0 = twice the
// manhattan distance in cells plus slack). Both points are expected inside
// the blockmap, callers clip them beforehand
func (bm *Blockmap[T]) IteratePath(from, to Vec2, maxSteps int,
	fn func(cx, cy int) bool) (steps int, reached bool, stopped bool) {
	x1 := (from.X - bm.origin.X) / bm.cellW
	y1 := (from.Y - bm.origin.Y) / bm.cellH
	x2 := (to.X - bm.origin.X) / bm.cellW
	y2 := (to.Y - bm.origin.Y) / bm.cellH

	mapX := int(math.Floor(x1))
	mapY := int(math.Floor(y1))
	xt2 := int(math.Floor(x2))
	yt2 := int(math.Floor(y2))

	var mapXStep, mapYStep int
	var partial, xStep, yStep float64
	var xIntercept, yIntercept float64

	if xt2 > mapX {
		mapXStep = 1
		partial = float64(mapX+1) - x1
		yStep = (y2 - y1) / math.Abs(x2-x1)
		yIntercept = y1 + partial*yStep
	} else if xt2 < mapX {
		mapXStep = -1
		partial = x1 - float64(mapX)
		yStep = (y2 - y1) / math.Abs(x2-x1)
		yIntercept = y1 + partial*yStep
	} else {
		mapXStep = 0
		yIntercept = math.Inf(1) // never steps along x
	}

	if yt2 > mapY {
		mapYStep = 1
		partial = float64(mapY+1) - y1
		xStep = (x2 - x1) / math.Abs(y2-y1)
		xIntercept = x1 + partial*xStep
	} else if yt2 < mapY {
		mapYStep = -1
		partial = y1 - float64(mapY)
		xStep = (x2 - x1) / math.Abs(y2-y1)
		xIntercept = x1 + partial*xStep
	} else {
		mapYStep = 0
		xIntercept = math.Inf(1)
	}

	if maxSteps <= 0 {
		dx := xt2 - mapX
		if dx < 0 {
			dx = -dx
		}
		dy := yt2 - mapY
		if dy < 0 {
			dy = -dy
		}
		maxSteps = 2*(dx+dy) + 8
	}

	for steps < maxSteps {
		steps++
		if fn(mapX, mapY) {
			return steps, false, true
		}
		if mapX == xt2 && mapY == yt2 {
			return steps, true, false
		}
		if mapXStep != 0 && int(math.Floor(yIntercept)) == mapY {
			yIntercept += yStep
			mapX += mapXStep
		} else if mapYStep != 0 && int(math.Floor(xIntercept)) == mapX {
			xIntercept += xStep
			mapY += mapYStep
		} else if mapXStep != 0 && mapX != xt2 {
			// Segment crosses exactly through a cell corner (or rounding
			// disagrees with both tests): take the horizontal neighbour,
			// the next round picks the vertical one
			yIntercept += yStep
			mapX += mapXStep
		} else if mapYStep != 0 {
			xIntercept += xStep
			mapY += mapYStep
		}
	}
	return steps, false, false
}
