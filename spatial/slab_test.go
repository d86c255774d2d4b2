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

func TestSlabAllocGetRelease(t *testing.T) {
	s := NewSlab[int]("test", 4, 0, 0)
	require.Equal(t, 0, s.Cap())

	h, v, err := s.Alloc()
	require.NoError(t, err)
	require.False(t, h.IsNil())
	*v = 42
	require.Equal(t, 42, *s.Get(h))
	require.Equal(t, 1, s.Len())
	require.Equal(t, 4, s.Cap())

	require.True(t, s.Release(h))
	require.Nil(t, s.Get(h), "released handle must go stale")
	require.False(t, s.Release(h), "double release")
	require.Equal(t, 0, s.Len())

	h2, v2, err := s.Alloc()
	require.NoError(t, err)
	require.Equal(t, 0, *v2, "reused slot must be zeroed")
	require.NotEqual(t, h, h2)
	require.Nil(t, s.Get(h))
	require.NotNil(t, s.Get(h2))
}

func TestSlabNilHandle(t *testing.T) {
	s := NewSlab[int]("test", 4, 4, 0)
	require.True(t, Handle{}.IsNil())
	require.Nil(t, s.Get(Handle{}))
	require.False(t, s.Release(Handle{}))
}

func TestSlabPagesKeepPointers(t *testing.T) {
	s := NewSlab[int]("test", 2, 0, 0)
	h, first, err := s.Alloc()
	require.NoError(t, err)
	*first = 7
	for i := 0; i < 10; i++ {
		_, _, err := s.Alloc()
		require.NoError(t, err)
	}
	require.Equal(t, 12, s.Cap())
	require.Same(t, first, s.Get(h))
	require.Equal(t, 7, *first)
}

func TestSlabLimit(t *testing.T) {
	s := NewSlab[int]("test", 4, 0, 3)
	var handles []Handle
	for i := 0; i < 3; i++ {
		h, _, err := s.Alloc()
		require.NoError(t, err)
		handles = append(handles, h)
	}
	_, _, err := s.Alloc()
	require.Error(t, err)
	require.True(t, IsResourceExhausted(err))

	require.True(t, s.Release(handles[1]))
	_, _, err = s.Alloc()
	require.NoError(t, err)
}

func TestSlabReset(t *testing.T) {
	s := NewSlab[int]("test", 4, 8, 0)
	var handles []Handle
	for i := 0; i < 6; i++ {
		h, _, err := s.Alloc()
		require.NoError(t, err)
		handles = append(handles, h)
	}
	s.Reset()
	require.Equal(t, 0, s.Len())
	require.Equal(t, 8, s.Free())
	for _, h := range handles {
		require.Nil(t, s.Get(h))
	}
	h, _, err := s.Alloc()
	require.NoError(t, err)
	require.Equal(t, uint32(0), h.idx, "lowest slot is reused first")
}
