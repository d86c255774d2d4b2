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

// blockmap
package spatial

import (
	"math"
)

// cellList is the payload of a blockmap cell: an unordered list of
// references, removal swaps the last element in
type cellList[T comparable] struct {
	elems []T
}

func (l *cellList[T]) remove(elem T) bool {
	for i, e := range l.elems {
		if e == elem {
			last := len(l.elems) - 1
			l.elems[i] = l.elems[last]
			var zero T
			l.elems[last] = zero
			l.elems = l.elems[:last]
			return true
		}
	}
	return false
}

// Blockmap maps a world-space rectangle onto a grid of equally sized cells,
// each holding the references of entities whose shape overlaps it
type Blockmap[T comparable] struct {
	origin Vec2
	cellW  float64
	cellH  float64
	bounds AABox
	grid   *Gridmap[cellList[T]]
}

// NewBlockmap builds an empty blockmap covering bounds, its bottom-left
// corner being the origin. Cell size must be positive
func NewBlockmap[T comparable](bounds AABox, cellW, cellH float64) *Blockmap[T] {
	width := int(math.Floor(bounds.Width()/cellW)) + 1
	height := int(math.Floor(bounds.Height()/cellH)) + 1
	return &Blockmap[T]{
		origin: Vec2{bounds.MinX, bounds.MinY},
		cellW:  cellW,
		cellH:  cellH,
		bounds: bounds,
		grid:   NewGridmap[cellList[T]](width, height),
	}
}

func (bm *Blockmap[T]) Origin() Vec2 {
	return bm.origin
}

func (bm *Blockmap[T]) Bounds() AABox {
	return bm.bounds
}

func (bm *Blockmap[T]) CellSize() (float64, float64) {
	return bm.cellW, bm.cellH
}

func (bm *Blockmap[T]) Width() int {
	return bm.grid.Width()
}

func (bm *Blockmap[T]) Height() int {
	return bm.grid.Height()
}

// Allocated returns the number of cells that have a list
func (bm *Blockmap[T]) Allocated() int {
	return bm.grid.Count()
}

// IterateCells calls fn with the occupancy of every allocated cell
func (bm *Blockmap[T]) IterateCells(fn func(cx, cy, n int) bool) bool {
	return bm.grid.Iterate(func(x, y int, list *cellList[T]) bool {
		return fn(x, y, len(list.elems))
	})
}

func (bm *Blockmap[T]) Contains(p Vec2) bool {
	return bm.bounds.Contains(p)
}

// CellCoords converts a world point to cell coordinates, unclamped
func (bm *Blockmap[T]) CellCoords(p Vec2) (int, int) {
	return int(math.Floor((p.X - bm.origin.X) / bm.cellW)),
		int(math.Floor((p.Y - bm.origin.Y) / bm.cellH))
}

// CellCoordsClamped is CellCoords forced into the grid, reporting whether
// it had to be forced
func (bm *Blockmap[T]) CellCoordsClamped(p Vec2) (int, int, bool) {
	cx, cy := bm.CellCoords(p)
	clamped := false
	if cx < 0 {
		cx, clamped = 0, true
	} else if cx >= bm.Width() {
		cx, clamped = bm.Width()-1, true
	}
	if cy < 0 {
		cy, clamped = 0, true
	} else if cy >= bm.Height() {
		cy, clamped = bm.Height()-1, true
	}
	return cx, cy, clamped
}

// CellBlock returns the range of cells whose (closed) rectangle meets box,
// clipped to the grid. A box edge lying exactly on a cell boundary takes in
// the cells on both sides of it
func (bm *Blockmap[T]) CellBlock(box AABox) (CellBlock, bool) {
	block := CellBlock{
		MinX: int(math.Ceil((box.MinX-bm.origin.X)/bm.cellW)) - 1,
		MinY: int(math.Ceil((box.MinY-bm.origin.Y)/bm.cellH)) - 1,
	}
	block.MaxX, block.MaxY = bm.CellCoords(Vec2{box.MaxX, box.MaxY})
	clipped := bm.grid.ClipBlock(&block)
	return block, clipped
}

// CellBox returns the world rectangle of a cell
func (bm *Blockmap[T]) CellBox(cx, cy int) AABox {
	x := bm.origin.X + float64(cx)*bm.cellW
	y := bm.origin.Y + float64(cy)*bm.cellH
	return AABox{MinX: x, MinY: y, MaxX: x + bm.cellW, MaxY: y + bm.cellH}
}

// Link adds elem to every cell overlapping box. When touches is not nil, only
// cells whose rectangle it accepts are used. Returns the number of cells elem
// was added to
func (bm *Blockmap[T]) Link(box AABox, elem T, touches func(cell AABox) bool) int {
	if box.Empty() {
		return 0
	}
	block, _ := bm.CellBlock(box)
	linked := 0
	for cy := block.MinY; cy <= block.MaxY; cy++ {
		for cx := block.MinX; cx <= block.MaxX; cx++ {
			if touches != nil && !touches(bm.CellBox(cx, cy)) {
				continue
			}
			list := bm.grid.Cell(cx, cy, true)
			list.elems = append(list.elems, elem)
			linked++
		}
	}
	return linked
}

// Unlink removes elem from every cell overlapping box. Returns the number of
// cells it was removed from
func (bm *Blockmap[T]) Unlink(box AABox, elem T) int {
	if box.Empty() {
		return 0
	}
	block, _ := bm.CellBlock(box)
	unlinked := 0
	for cy := block.MinY; cy <= block.MaxY; cy++ {
		for cx := block.MinX; cx <= block.MaxX; cx++ {
			list := bm.grid.Cell(cx, cy, false)
			if list != nil && list.remove(elem) {
				unlinked++
			}
		}
	}
	return unlinked
}

// IterateBox calls fn for every reference stored in every cell box overlaps.
// An entity spanning several cells is reported once per cell. fn returns true
// to stop
func (bm *Blockmap[T]) IterateBox(box AABox, fn func(elem T) bool) bool {
	if box.Empty() {
		return false
	}
	block, _ := bm.CellBlock(box)
	stopped, _ := bm.grid.IterateBlock(block, func(_, _ int, list *cellList[T]) bool {
		for _, e := range list.elems {
			if fn(e) {
				return true
			}
		}
		return false
	})
	return stopped
}

// IterateCell calls fn for every reference stored in cell (cx, cy)
func (bm *Blockmap[T]) IterateCell(cx, cy int, fn func(elem T) bool) bool {
	list := bm.grid.Cell(cx, cy, false)
	if list == nil {
		return false
	}
	for _, e := range list.elems {
		if fn(e) {
			return true
		}
	}
	return false
}

// CellLen returns the number of references stored in cell (cx, cy)
func (bm *Blockmap[T]) CellLen(cx, cy int) int {
	list := bm.grid.Cell(cx, cy, false)
	if list == nil {
		return 0
	}
	return len(list.elems)
}
