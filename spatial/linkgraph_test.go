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

type testOwner struct {
	name string
	ring Ring
}

type testTarget struct {
	name string
	ring Ring
}

func collectTargets(g *LinkGraph[*testOwner, *testTarget], o *testOwner) []string {
	var names []string
	g.Targets(&o.ring, func(t *testTarget) bool {
		names = append(names, t.name)
		return false
	})
	return names
}

func collectOwners(g *LinkGraph[*testOwner, *testTarget], t *testTarget) []string {
	var names []string
	g.Owners(&t.ring, func(o *testOwner) bool {
		names = append(names, o.name)
		return false
	})
	return names
}

func TestLinkGraphSymmetry(t *testing.T) {
	g := NewLinkGraph[*testOwner, *testTarget](16, 0)
	a, b, c := &testOwner{name: "a"}, &testOwner{name: "b"}, &testOwner{name: "c"}
	x, y := &testTarget{name: "x"}, &testTarget{name: "y"}

	require.NoError(t, g.Link(a, &a.ring, x, &x.ring))
	require.NoError(t, g.Link(a, &a.ring, y, &y.ring))
	require.NoError(t, g.Link(b, &b.ring, x, &x.ring))
	require.NoError(t, g.Link(c, &c.ring, y, &y.ring))

	require.Equal(t, []string{"y", "x"}, collectTargets(g, a), "most recent first")
	require.Equal(t, []string{"x"}, collectTargets(g, b))
	require.ElementsMatch(t, []string{"a", "b"}, collectOwners(g, x))
	require.ElementsMatch(t, []string{"a", "c"}, collectOwners(g, y))
	require.Equal(t, 2, a.ring.Len())
	require.Equal(t, 2, x.ring.Len())
	require.Equal(t, 4, g.InUse())

	require.True(t, g.Linked(&a.ring, x))
	require.False(t, g.Linked(&b.ring, y))

	// Unlinking from the target side clears the mirrored owner entries
	require.Equal(t, 2, g.UnlinkAll(&x.ring))
	require.True(t, x.ring.Empty())
	require.Equal(t, []string{"y"}, collectTargets(g, a))
	require.Empty(t, collectTargets(g, b))
	require.True(t, b.ring.Empty())
	require.ElementsMatch(t, []string{"a", "c"}, collectOwners(g, y))

	require.Equal(t, 1, g.UnlinkAll(&a.ring))
	require.Equal(t, []string{"c"}, collectOwners(g, y))
	require.Equal(t, 1, g.InUse())

	require.Equal(t, 0, g.UnlinkAll(&a.ring), "empty ring is a no-op")
}

func TestLinkGraphRingIsClosed(t *testing.T) {
	g := NewLinkGraph[*testOwner, *testTarget](0, 0)
	o := &testOwner{name: "o"}
	targets := make([]*testTarget, 5)
	for i := range targets {
		targets[i] = &testTarget{name: string(rune('a' + i))}
		require.NoError(t, g.Link(o, &o.ring, targets[i], &targets[i].ring))
	}
	// walk the raw ring both ways
	head := o.ring.head
	h := head
	for i := 0; i < 5; i++ {
		h = g.node(h).oNext
	}
	require.Equal(t, head, h)
	for i := 0; i < 5; i++ {
		h = g.node(h).oPrev
	}
	require.Equal(t, head, h)

	// removing a middle target keeps the ring closed
	g.UnlinkAll(&targets[2].ring)
	require.Equal(t, []string{"e", "d", "b", "a"}, collectTargets(g, o))
	h = o.ring.head
	for i := 0; i < 4; i++ {
		h = g.node(h).oNext
	}
	require.Equal(t, o.ring.head, h)
}

func TestLinkGraphStopsIteration(t *testing.T) {
	g := NewLinkGraph[*testOwner, *testTarget](0, 0)
	o := &testOwner{}
	for i := 0; i < 3; i++ {
		tt := &testTarget{}
		require.NoError(t, g.Link(o, &o.ring, tt, &tt.ring))
	}
	visits := 0
	stopped := g.Targets(&o.ring, func(*testTarget) bool {
		visits++
		return true
	})
	require.True(t, stopped)
	require.Equal(t, 1, visits)
}

func TestLinkGraphGrowsAndLimits(t *testing.T) {
	g := NewLinkGraph[*testOwner, *testTarget](0, LINK_PAGE_SIZE+10)
	o := &testOwner{}
	targets := make([]testTarget, LINK_PAGE_SIZE+11)
	for i := 0; i < LINK_PAGE_SIZE+10; i++ {
		require.NoError(t, g.Link(o, &o.ring, &targets[i], &targets[i].ring))
	}
	require.Equal(t, 2*LINK_PAGE_SIZE, g.Cap())

	last := &targets[LINK_PAGE_SIZE+10]
	err := g.Link(o, &o.ring, last, &last.ring)
	require.Error(t, err)
	require.True(t, IsResourceExhausted(err))
	require.True(t, last.ring.Empty(), "failed link must leave rings untouched")

	require.Equal(t, LINK_PAGE_SIZE+10, g.UnlinkAll(&o.ring))
	require.Equal(t, 0, g.InUse())
	require.Equal(t, g.Cap(), g.Free())
}

func TestLinkGraphReset(t *testing.T) {
	g := NewLinkGraph[*testOwner, *testTarget](8, 0)
	o, x := &testOwner{}, &testTarget{}
	require.NoError(t, g.Link(o, &o.ring, x, &x.ring))
	g.Reset()
	require.Equal(t, 0, g.InUse())
	require.Equal(t, g.Cap(), g.Free())
}
