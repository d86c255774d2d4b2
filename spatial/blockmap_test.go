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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockmapDimensions(t *testing.T) {
	bm := NewBlockmap[int](AABox{0, -32, 64, 32}, 16, 16)
	require.Equal(t, 5, bm.Width())
	require.Equal(t, 5, bm.Height())
	require.Equal(t, Vec2{0, -32}, bm.Origin())

	bm = NewBlockmap[int](AABox{-100, -100, 100, 50}, 128, 128)
	require.Equal(t, 2, bm.Width())
	require.Equal(t, 2, bm.Height())
}

func TestBlockmapCellCoords(t *testing.T) {
	bm := NewBlockmap[int](AABox{0, -32, 64, 32}, 16, 16)
	tests := []struct {
		p      Vec2
		cx, cy int
	}{
		{Vec2{0, -32}, 0, 0},
		{Vec2{15.9, -16.1}, 0, 0},
		{Vec2{16, -16}, 1, 1},
		{Vec2{64, 32}, 4, 4},
		{Vec2{-1, -33}, -1, -1},
	}
	for _, test := range tests {
		cx, cy := bm.CellCoords(test.p)
		require.Equal(t, test.cx, cx, "x of %v", test.p)
		require.Equal(t, test.cy, cy, "y of %v", test.p)
	}

	cx, cy, clamped := bm.CellCoordsClamped(Vec2{-50, 500})
	require.True(t, clamped)
	require.Equal(t, 0, cx)
	require.Equal(t, 4, cy)
}

func TestBlockmapCellBox(t *testing.T) {
	bm := NewBlockmap[int](AABox{0, -32, 64, 32}, 16, 16)
	require.Equal(t, AABox{16, -16, 32, 0}, bm.CellBox(1, 1))
}

// A line is stored in a cell exactly when it touches the cell's rectangle
func TestBlockmapLineCoverage(t *testing.T) {
	bounds := AABox{-256, -256, 256, 256}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		bm := NewBlockmap[int](bounds, 32, 32)
		v1 := Vec2{rng.Float64()*512 - 256, rng.Float64()*512 - 256}
		v2 := Vec2{rng.Float64()*512 - 256, rng.Float64()*512 - 256}
		bm.Link(BoxFromPoints(v1, v2), i, func(cell AABox) bool {
			return LineTouchesBox(v1, v2, cell)
		})
		for cy := 0; cy < bm.Height(); cy++ {
			for cx := 0; cx < bm.Width(); cx++ {
				want := 0
				if LineTouchesBox(v1, v2, bm.CellBox(cx, cy)) {
					want = 1
				}
				require.Equal(t, want, bm.CellLen(cx, cy),
					"line %v-%v cell (%d,%d)", v1, v2, cx, cy)
			}
		}
	}
}

func TestBlockmapLinkUnlinkBox(t *testing.T) {
	bm := NewBlockmap[string](AABox{0, 0, 128, 128}, 32, 32)
	box := AABox{10, 10, 40, 70}
	require.Equal(t, 6, bm.Link(box, "a", nil))
	require.Equal(t, 1, bm.Link(AABox{100, 100, 110, 110}, "b", nil))

	var got []string
	bm.IterateBox(AABox{0, 0, 128, 128}, func(e string) bool {
		got = append(got, e)
		return false
	})
	require.Len(t, got, 7, "one report per cell")

	require.Equal(t, 6, bm.Unlink(box, "a"))
	got = got[:0]
	bm.IterateBox(AABox{0, 0, 128, 128}, func(e string) bool {
		got = append(got, e)
		return false
	})
	require.Equal(t, []string{"b"}, got)
	require.Equal(t, 0, bm.Unlink(box, "a"))
}

func TestBlockmapIterateBoxClamps(t *testing.T) {
	bm := NewBlockmap[int](AABox{0, 0, 64, 64}, 32, 32)
	bm.Link(AABox{0, 0, 10, 10}, 1, nil)
	n := 0
	bm.IterateBox(AABox{-1000, -1000, 5, 5}, func(int) bool {
		n++
		return false
	})
	require.Equal(t, 1, n)

	n = 0
	bm.IterateBox(AABox{1000, 1000, 2000, 2000}, func(int) bool {
		n++
		return false
	})
	require.Equal(t, 0, n)
}

func TestBlockmapIteratePath(t *testing.T) {
	bm := NewBlockmap[int](AABox{0, 0, 128, 128}, 16, 16)

	tests := []struct {
		name     string
		from, to Vec2
		cells    [][2]int
	}{
		{"east", Vec2{1, 1}, Vec2{40, 1}, [][2]int{{0, 0}, {1, 0}, {2, 0}}},
		{"west", Vec2{40, 1}, Vec2{1, 1}, [][2]int{{2, 0}, {1, 0}, {0, 0}}},
		{"north", Vec2{5, 5}, Vec2{5, 50}, [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
		{"same cell", Vec2{5, 5}, Vec2{10, 10}, [][2]int{{0, 0}}},
		{"diagonal", Vec2{1, 1}, Vec2{33, 33}, [][2]int{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}}},
		{"shallow", Vec2{2, 4}, Vec2{60, 20}, [][2]int{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {3, 1}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var cells [][2]int
			steps, reached, stopped := bm.IteratePath(test.from, test.to, 0,
				func(cx, cy int) bool {
					cells = append(cells, [2]int{cx, cy})
					return false
				})
			require.True(t, reached)
			require.False(t, stopped)
			require.Equal(t, len(test.cells), steps)
			require.Equal(t, test.cells, cells)
		})
	}
}

func TestBlockmapIteratePathStepCap(t *testing.T) {
	bm := NewBlockmap[int](AABox{0, 0, 128, 128}, 16, 16)
	steps, reached, stopped := bm.IteratePath(Vec2{1, 1}, Vec2{120, 1}, 3,
		func(cx, cy int) bool {
			return false
		})
	require.Equal(t, 3, steps)
	require.False(t, reached)
	require.False(t, stopped)

	steps, reached, stopped = bm.IteratePath(Vec2{1, 1}, Vec2{120, 1}, 0,
		func(cx, cy int) bool {
			return cx == 2
		})
	require.Equal(t, 3, steps)
	require.False(t, reached)
	require.True(t, stopped)
}
