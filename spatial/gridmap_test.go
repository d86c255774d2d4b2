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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridmapSize(t *testing.T) {
	tests := []struct {
		w, h int
		size int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{5, 3, 8},
		{8, 8, 8},
		{9, 2, 16},
		{3, 70, 128},
	}
	for _, test := range tests {
		g := NewGridmap[int](test.w, test.h)
		require.Equal(t, test.size, g.Size(), "grid %dx%d", test.w, test.h)
	}
}

func TestGridmapLazyCells(t *testing.T) {
	g := NewGridmap[int](5, 3)
	require.Nil(t, g.Cell(1, 1, false))
	require.Equal(t, 0, g.Count())

	c := g.Cell(1, 1, true)
	require.NotNil(t, c)
	*c = 5
	require.Same(t, c, g.Cell(1, 1, false))
	require.Same(t, c, g.Cell(1, 1, true))
	require.Equal(t, 1, g.Count())

	// Neighbour shares a subtree, but has no payload of its own
	require.Nil(t, g.Cell(0, 1, false))

	require.Nil(t, g.Cell(-1, 0, true))
	require.Nil(t, g.Cell(5, 0, true))
	require.Nil(t, g.Cell(0, 3, true))
	require.Equal(t, 1, g.Count())
}

func TestGridmapIterateCoversEveryCell(t *testing.T) {
	g := NewGridmap[int](7, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			*g.Cell(x, y, true) = x + y*7
		}
	}
	seen := make(map[int]int)
	stopped := g.Iterate(func(x, y int, data *int) bool {
		require.Equal(t, x+y*7, *data)
		seen[*data]++
		return false
	})
	require.False(t, stopped)
	require.Len(t, seen, 35)
	for k, n := range seen {
		require.Equal(t, 1, n, "cell %d visited more than once", k)
	}
}

func TestGridmapIterateStops(t *testing.T) {
	g := NewGridmap[int](4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.Cell(x, y, true)
		}
	}
	visits := 0
	stopped := g.Iterate(func(x, y int, data *int) bool {
		visits++
		return visits == 3
	})
	require.True(t, stopped)
	require.Equal(t, 3, visits)
}

func TestGridmapIterateBlock(t *testing.T) {
	g := NewGridmap[int](6, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			g.Cell(x, y, true)
		}
	}

	count := func(block CellBlock) (int, bool) {
		n := 0
		_, clipped := g.IterateBlock(block, func(x, y int, data *int) bool {
			require.True(t, x >= 0 && x < 6 && y >= 0 && y < 6)
			n++
			return false
		})
		return n, clipped
	}

	n, clipped := count(CellBlock{1, 1, 2, 3})
	require.Equal(t, 6, n)
	require.False(t, clipped)

	n, clipped = count(CellBlock{-3, -1, 10, 1})
	require.Equal(t, 12, n)
	require.True(t, clipped)

	n, clipped = count(CellBlock{7, 0, 9, 5})
	require.Equal(t, 0, n)
	require.True(t, clipped)

	n, _ = count(CellBlock{3, 3, 2, 2})
	require.Equal(t, 0, n)
}

func TestGridmapClipBlock(t *testing.T) {
	g := NewGridmap[int](4, 3)
	b := CellBlock{-1, 1, 9, 9}
	require.True(t, g.ClipBlock(&b))
	require.Equal(t, CellBlock{0, 1, 3, 2}, b)

	b = CellBlock{-5, -5, -1, 2}
	require.True(t, g.ClipBlock(&b))
	require.True(t, b.Empty())

	b = CellBlock{0, 0, 3, 2}
	require.False(t, g.ClipBlock(&b))
}
