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

// gridmap
package spatial

// Quadrants of a grid cell. Row 0 is the "top" row of the grid
const (
	QUAD_TOPLEFT = iota
	QUAD_TOPRIGHT
	QUAD_BOTTOMLEFT
	QUAD_BOTTOMRIGHT
)

// CellBlock is a rectangle of cell coordinates, both ends inclusive. A block
// with MinX > MaxX or MinY > MaxY is empty
type CellBlock struct {
	MinX, MinY int
	MaxX, MaxY int
}

func (b CellBlock) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

func (b CellBlock) Contains(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

type gridCell[T any] struct {
	x, y     int // top-left corner, in cells
	size     int // 1 for leaves
	children [4]*gridCell[T]
	data     *T
}

// Gridmap is a sparse two-dimensional array of *T addressed by cell
// coordinates. Storage is a quadtree over a power-of-two square that is
// subdivided only where something gets written, so large empty areas cost
// nothing
type Gridmap[T any] struct {
	width  int
	height int
	root   *gridCell[T]
	count  int
}

func NewGridmap[T any](width, height int) *Gridmap[T] {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	size := width
	if height > size {
		size = height
	}
	size = RoundPOW2(size)
	return &Gridmap[T]{
		width:  width,
		height: height,
		root:   &gridCell[T]{size: size},
	}
}

func (g *Gridmap[T]) Width() int {
	return g.width
}

func (g *Gridmap[T]) Height() int {
	return g.height
}

// Size returns the dimension of the square the root cell covers
func (g *Gridmap[T]) Size() int {
	return g.root.size
}

// Count returns the number of leaves that have their payload allocated
func (g *Gridmap[T]) Count() int {
	return g.count
}

func quadrantOf(x, y, midX, midY int) int {
	q := QUAD_TOPLEFT
	if x >= midX {
		q |= 1
	}
	if y >= midY {
		q |= 2
	}
	return q
}

// Cell returns payload of the cell at (x, y). With alloc set, missing
// subtrees and the payload itself are created on the way down. Returns nil
// for coordinates outside the grid and, without alloc, for cells never
// written to
func (g *Gridmap[T]) Cell(x, y int, alloc bool) *T {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	node := g.root
	for node.size > 1 {
		half := node.size >> 1
		q := quadrantOf(x, y, node.x+half, node.y+half)
		child := node.children[q]
		if child == nil {
			if !alloc {
				return nil
			}
			child = &gridCell[T]{
				x:    node.x + (q&1)*half,
				y:    node.y + (q>>1)*half,
				size: half,
			}
			node.children[q] = child
		}
		node = child
	}
	if node.data == nil && alloc {
		node.data = new(T)
		g.count++
	}
	return node.data
}

// Iterate calls fn for each allocated payload, depth-first in quadrant order.
// fn returns true to stop. Returns whether iteration was stopped
func (g *Gridmap[T]) Iterate(fn func(x, y int, data *T) bool) bool {
	return g.visit(g.root, nil, fn)
}

// ClipBlock clamps block to the grid. Returns true if anything had to be
// clamped. A block that lies entirely outside becomes empty
func (g *Gridmap[T]) ClipBlock(block *CellBlock) bool {
	clipped := false
	if block.MaxX < 0 || block.MaxY < 0 || block.MinX >= g.width ||
		block.MinY >= g.height {
		*block = CellBlock{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}
		return true
	}
	if block.MinX < 0 {
		block.MinX = 0
		clipped = true
	}
	if block.MinY < 0 {
		block.MinY = 0
		clipped = true
	}
	if block.MaxX >= g.width {
		block.MaxX = g.width - 1
		clipped = true
	}
	if block.MaxY >= g.height {
		block.MaxY = g.height - 1
		clipped = true
	}
	return clipped
}

// IterateBlock is Iterate restricted to the cells of block. Coordinates
// outside the grid are clamped; clipped reports whether that happened
func (g *Gridmap[T]) IterateBlock(block CellBlock,
	fn func(x, y int, data *T) bool) (stopped bool, clipped bool) {
	clipped = g.ClipBlock(&block)
	if block.Empty() {
		return false, clipped
	}
	return g.visit(g.root, &block, fn), clipped
}

func (g *Gridmap[T]) visit(node *gridCell[T], block *CellBlock,
	fn func(x, y int, data *T) bool) bool {
	if block != nil {
		last := node.size - 1
		if node.x > block.MaxX || node.x+last < block.MinX ||
			node.y > block.MaxY || node.y+last < block.MinY {
			return false
		}
	}
	if node.size == 1 {
		if node.data == nil {
			return false
		}
		return fn(node.x, node.y, node.data)
	}
	for _, child := range node.children {
		if child != nil && g.visit(child, block, fn) {
			return true
		}
	}
	return false
}
