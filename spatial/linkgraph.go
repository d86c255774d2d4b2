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

// linkgraph
package spatial

// Ring is the embeddable root of one side of the link graph: each mobj has
// one listing the lines it touches, each line has one listing the mobjs
// touching it. The zero Ring is empty
type Ring struct {
	head Handle
	size int
}

func (r *Ring) Len() int {
	return r.size
}

func (r *Ring) Empty() bool {
	return r.head.IsNil()
}

// A link node sits in two rings at once. Both rings are circular and doubly
// linked, so removing a node from both is O(1) and never needs to search the
// mirrored ring
type linkNode[O comparable, T comparable] struct {
	owner  O
	target T
	oRing  *Ring
	tRing  *Ring
	oPrev  Handle
	oNext  Handle
	tPrev  Handle
	tNext  Handle
}

// LinkGraph keeps the many-to-many relationship between owners (mobjs) and
// targets (lines). Owners and targets are identified by comparable values,
// normally pointers, and each brings its own Ring
type LinkGraph[O comparable, T comparable] struct {
	nodes *Slab[linkNode[O, T]]
}

// NewLinkGraph creates a graph with capacity nodes ready. A positive limit is
// the maximum of nodes in use, past which Link fails
func NewLinkGraph[O comparable, T comparable](capacity, limit int) *LinkGraph[O, T] {
	return &LinkGraph[O, T]{
		nodes: NewSlab[linkNode[O, T]]("links", LINK_PAGE_SIZE, capacity, limit),
	}
}

func (g *LinkGraph[O, T]) node(h Handle) *linkNode[O, T] {
	n := g.nodes.Get(h)
	if n == nil {
		Log.Panic("Stale link node handle %v\n", h)
	}
	return n
}

// Link records that owner o touches target t, pushing one node at the head of
// both rings
func (g *LinkGraph[O, T]) Link(o O, oRing *Ring, t T, tRing *Ring) error {
	h, n, err := g.nodes.Alloc()
	if err != nil {
		return err
	}
	n.owner = o
	n.target = t
	n.oRing = oRing
	n.tRing = tRing

	if oRing.head.IsNil() {
		n.oPrev, n.oNext = h, h
	} else {
		head := g.node(oRing.head)
		tail := g.node(head.oPrev)
		n.oNext = oRing.head
		n.oPrev = head.oPrev
		tail.oNext = h
		head.oPrev = h
	}
	oRing.head = h
	oRing.size++

	if tRing.head.IsNil() {
		n.tPrev, n.tNext = h, h
	} else {
		head := g.node(tRing.head)
		tail := g.node(head.tPrev)
		n.tNext = tRing.head
		n.tPrev = head.tPrev
		tail.tNext = h
		head.tPrev = h
	}
	tRing.head = h
	tRing.size++

	instrumentLinkNodes(1)
	return nil
}

func (g *LinkGraph[O, T]) detachOwner(h Handle, n *linkNode[O, T]) {
	r := n.oRing
	if n.oNext == h { // last one
		r.head = Handle{}
	} else {
		g.node(n.oPrev).oNext = n.oNext
		g.node(n.oNext).oPrev = n.oPrev
		if r.head == h {
			r.head = n.oNext
		}
	}
	r.size--
}

func (g *LinkGraph[O, T]) detachTarget(h Handle, n *linkNode[O, T]) {
	r := n.tRing
	if n.tNext == h {
		r.head = Handle{}
	} else {
		g.node(n.tPrev).tNext = n.tNext
		g.node(n.tNext).tPrev = n.tPrev
		if r.head == h {
			r.head = n.tNext
		}
	}
	r.size--
}

// UnlinkAll removes every relationship ring takes part in, from whichever
// side, releasing the nodes. ring ends up empty. Returns the number of nodes
// released
func (g *LinkGraph[O, T]) UnlinkAll(ring *Ring) int {
	released := 0
	for !ring.head.IsNil() {
		h := ring.head
		n := g.node(h)
		g.detachOwner(h, n)
		g.detachTarget(h, n)
		g.nodes.Release(h)
		released++
	}
	if released > 0 {
		instrumentLinkNodes(-released)
	}
	return released
}

// Targets calls fn for every target linked to owner ring oRing, most recently
// linked first. fn must not link or unlink. Returns whether fn stopped it
func (g *LinkGraph[O, T]) Targets(oRing *Ring, fn func(t T) bool) bool {
	if oRing.head.IsNil() {
		return false
	}
	h := oRing.head
	for {
		n := g.node(h)
		if n.oRing != oRing {
			// Owner and target rings are told apart by the ring pointer,
			// asking Targets of a target ring is a programming error
			Log.Panic("Targets called with a ring that is not an owner ring\n")
		}
		if fn(n.target) {
			return true
		}
		h = n.oNext
		if h == oRing.head {
			return false
		}
	}
}

// Owners calls fn for every owner linked to target ring tRing
func (g *LinkGraph[O, T]) Owners(tRing *Ring, fn func(o O) bool) bool {
	if tRing.head.IsNil() {
		return false
	}
	h := tRing.head
	for {
		n := g.node(h)
		if n.tRing != tRing {
			Log.Panic("Owners called with a ring that is not a target ring\n")
		}
		if fn(n.owner) {
			return true
		}
		h = n.tNext
		if h == tRing.head {
			return false
		}
	}
}

// Linked reports whether owner ring oRing holds a link to t
func (g *LinkGraph[O, T]) Linked(oRing *Ring, t T) bool {
	return g.Targets(oRing, func(x T) bool {
		return x == t
	})
}

// InUse returns the number of link nodes currently allocated
func (g *LinkGraph[O, T]) InUse() int {
	return g.nodes.Len()
}

// Free returns the number of nodes available without growing the pool
func (g *LinkGraph[O, T]) Free() int {
	return g.nodes.Free()
}

func (g *LinkGraph[O, T]) Cap() int {
	return g.nodes.Cap()
}

// Reset drops every link at once. Rings embedded in entities are not
// visited, the caller must zero them (rebuilding a level does that)
func (g *LinkGraph[O, T]) Reset() {
	inUse := g.nodes.Len()
	g.nodes.Reset()
	if inUse > 0 {
		instrumentLinkNodes(-inUse)
	}
}
