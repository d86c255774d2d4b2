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

// slab
package spatial

// Handle addresses a slot of a Slab. The zero Handle is nil and never
// resolves. A handle goes stale the moment its slot is released: the slot's
// generation moves on and Get returns nil for the old handle
type Handle struct {
	idx uint32
	gen uint32
}

func (h Handle) IsNil() bool {
	return h.gen == 0
}

type slabSlot[T any] struct {
	val      T
	gen      uint32
	used     bool
	nextFree int32
}

// Slab is a pool of T stored in fixed-size pages. Pages are never moved or
// freed until the slab dies, so pointers returned by Get stay valid while the
// slot is allocated, and the GC sees a handful of big arrays instead of
// thousands of small objects
type Slab[T any] struct {
	name     string
	pages    [][]slabSlot[T]
	pageSize int
	// Slots ever handed out (high-water mark), equals the index of the next
	// never-used slot
	top      int
	freeHead int32
	inUse    int
	limit    int
}

// NewSlab creates a slab with room for at least capacity elements. A positive
// limit caps the number of elements allocated at once
func NewSlab[T any](name string, pageSize, capacity, limit int) *Slab[T] {
	if pageSize <= 0 {
		pageSize = LINK_PAGE_SIZE
	}
	s := &Slab[T]{
		name:     name,
		pageSize: pageSize,
		freeHead: -1,
		limit:    limit,
	}
	for s.Cap() < capacity {
		s.addPage()
	}
	return s
}

func (s *Slab[T]) addPage() {
	s.pages = append(s.pages, make([]slabSlot[T], s.pageSize))
	instrumentPoolPage(s.name)
	if len(s.pages) > 1 {
		Log.Verbose(2, "Pool %s grew to %d slots\n", s.name, s.Cap())
	}
}

func (s *Slab[T]) slot(idx int) *slabSlot[T] {
	return &s.pages[idx/s.pageSize][idx%s.pageSize]
}

// Alloc hands out a zeroed element. Released slots are reused first, new
// pages are added when none are left. Fails with a resource exhausted error
// once the limit is reached
func (s *Slab[T]) Alloc() (Handle, *T, error) {
	if s.limit > 0 && s.inUse >= s.limit {
		return Handle{}, nil, errResourceExhausted(s.name, s.limit)
	}
	var idx int
	if s.freeHead >= 0 {
		idx = int(s.freeHead)
		s.freeHead = s.slot(idx).nextFree
	} else {
		if s.top == s.Cap() {
			s.addPage()
		}
		idx = s.top
		s.top++
	}
	sl := s.slot(idx)
	var zero T
	sl.val = zero
	sl.used = true
	sl.nextFree = -1
	if sl.gen == 0 {
		sl.gen = 1
	}
	s.inUse++
	return Handle{idx: uint32(idx), gen: sl.gen}, &sl.val, nil
}

// Get resolves a handle, nil if it is nil or stale
func (s *Slab[T]) Get(h Handle) *T {
	if h.gen == 0 || int(h.idx) >= s.top {
		return nil
	}
	sl := s.slot(int(h.idx))
	if !sl.used || sl.gen != h.gen {
		return nil
	}
	return &sl.val
}

// Release returns the slot to the free list. Returns false for nil or stale
// handles (double release is harmless)
func (s *Slab[T]) Release(h Handle) bool {
	if s.Get(h) == nil {
		return false
	}
	sl := s.slot(int(h.idx))
	var zero T
	sl.val = zero
	sl.used = false
	sl.gen++
	if sl.gen == 0 { // wrapped around
		sl.gen = 1
	}
	sl.nextFree = s.freeHead
	s.freeHead = int32(h.idx)
	s.inUse--
	return true
}

// Len returns the number of allocated elements
func (s *Slab[T]) Len() int {
	return s.inUse
}

// Cap returns the number of slots across all pages
func (s *Slab[T]) Cap() int {
	return len(s.pages) * s.pageSize
}

// Free returns the number of slots that can be allocated without adding a
// page
func (s *Slab[T]) Free() int {
	return s.Cap() - s.inUse
}

// Reset releases every element at once, keeping the pages. All outstanding
// handles go stale
func (s *Slab[T]) Reset() {
	var zero T
	for i := 0; i < s.top; i++ {
		sl := s.slot(i)
		if sl.used {
			sl.val = zero
			sl.used = false
			sl.gen++
			if sl.gen == 0 {
				sl.gen = 1
			}
		}
	}
	// Rebuild free list so that the lowest slots get reused first
	s.freeHead = -1
	for i := s.top - 1; i >= 0; i-- {
		s.slot(i).nextFree = s.freeHead
		s.freeHead = int32(i)
	}
	s.inUse = 0
}
