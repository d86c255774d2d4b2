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

// map
package spatial

// Map is the spatial index of one level: a blockmap per entity category, the
// mobj-line link graph and the state traces need. Build one per level with
// BuildMap, link the static geometry, then link mobjs and query.
//
// Entities are owned by the caller and must not move in memory while linked
// (keep them behind pointers, or in slices that are never appended to after
// linking). Callbacks must not link or unlink anything, and box queries must
// not be started from the callback of another box query
type Map struct {
	config Config
	bounds AABox

	lines    *Blockmap[*Line]
	mobjs    *Blockmap[*Mobj]
	polyobjs *Blockmap[*Polyobj]
	subAreas *Blockmap[*SubArea]
	links    *LinkGraph[*Mobj, *Line]

	validCount int
	scratch    []Intercept
	tracing    bool

	numLines    int
	numMobjs    int
	numPolyobjs int
	numSubAreas int
}

// BuildMap creates an empty index covering bounds
func BuildMap(bounds AABox, config Config) (*Map, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if bounds.Empty() {
		return nil, newError(ErrTypeInvalidConfig, "level bounds are empty",
			"bounds", bounds.String())
	}
	m := &Map{
		config:   config,
		bounds:   bounds,
		lines:    NewBlockmap[*Line](bounds, config.CellWidth, config.CellHeight),
		mobjs:    NewBlockmap[*Mobj](bounds, config.CellWidth, config.CellHeight),
		polyobjs: NewBlockmap[*Polyobj](bounds, config.CellWidth, config.CellHeight),
		subAreas: NewBlockmap[*SubArea](bounds, config.CellWidth, config.CellHeight),
		links:    NewLinkGraph[*Mobj, *Line](config.LinkCapacity, config.LinkLimit),
	}
	Log.Verbose(1, "Blockmap %dx%d cells of %vx%v at %v\n", m.lines.Width(),
		m.lines.Height(), config.CellWidth, config.CellHeight, m.lines.Origin())
	return m, nil
}

func (m *Map) Config() Config {
	return m.config
}

func (m *Map) Bounds() AABox {
	return m.bounds
}

// Lines, Mobjs, Polyobjs and SubAreas expose the per-category blockmaps for
// read-only use (statistics, drawing)
func (m *Map) Lines() *Blockmap[*Line] {
	return m.lines
}

func (m *Map) Mobjs() *Blockmap[*Mobj] {
	return m.mobjs
}

func (m *Map) Polyobjs() *Blockmap[*Polyobj] {
	return m.polyobjs
}

func (m *Map) SubAreas() *Blockmap[*SubArea] {
	return m.subAreas
}

func (m *Map) nextValidCount() int {
	m.validCount++
	return m.validCount
}

// LinkLine adds a static line. Polyobj member lines go through LinkPolyobj
func (m *Map) LinkLine(l *Line) error {
	if l.Polyobj != nil {
		return newError(ErrTypeMalformedTopology,
			"polyobj member line linked as a static line",
			"line", l.ID, "polyobj", l.Polyobj.ID)
	}
	if l.linked {
		return newError(ErrTypeAlreadyLinked, "line is already linked",
			"line", l.ID)
	}
	if !LineTouchesBox(l.V1, l.V2, m.bounds) {
		return newError(ErrTypeOutOfBounds, "line lies outside the level bounds",
			"line", l.ID, "v1", l.V1.String(), "v2", l.V2.String())
	}
	m.lines.Link(l.Box(), l, l.TouchesBox)
	l.linked = true
	m.numLines++
	return nil
}

// LinkPolyobj adds a polyobj by its bounding box. A polyobj that is already
// linked is relinked at its current position, which is how movement of a
// polyobj is reported
func (m *Map) LinkPolyobj(po *Polyobj) error {
	if len(po.Lines) == 0 {
		return newError(ErrTypeMalformedTopology, "polyobj has no lines",
			"polyobj", po.ID)
	}
	for _, l := range po.Lines {
		if l.Polyobj != po {
			return newError(ErrTypeMalformedTopology,
				"polyobj line does not point back to its polyobj",
				"polyobj", po.ID, "line", l.ID)
		}
	}
	m.UnlinkPolyobj(po)
	po.box = po.Box()
	m.polyobjs.Link(po.box, po, nil)
	po.linked = true
	m.numPolyobjs++
	return nil
}

// UnlinkPolyobj removes a polyobj, returns false if it was not linked
func (m *Map) UnlinkPolyobj(po *Polyobj) bool {
	if !po.linked {
		return false
	}
	m.polyobjs.Unlink(po.box, po)
	po.linked = false
	m.numPolyobjs--
	return true
}

// LinkSubArea adds a sub-area by its bounding box
func (m *Map) LinkSubArea(s *SubArea) error {
	if len(s.Points) == 0 {
		return newError(ErrTypeMalformedTopology, "sub-area has no points",
			"subarea", s.ID)
	}
	if s.linked {
		return newError(ErrTypeAlreadyLinked, "sub-area is already linked",
			"subarea", s.ID)
	}
	s.box = s.Box()
	m.subAreas.Link(s.box, s, nil)
	s.linked = true
	m.numSubAreas++
	return nil
}

// LinkMobj adds a mobj at its current position and links it with every static
// line its box touches
func (m *Map) LinkMobj(mo *Mobj) error {
	if mo.linked {
		return newError(ErrTypeAlreadyLinked, "mobj is already linked",
			"mobj", mo.ID)
	}
	box := mo.Box()
	m.mobjs.Link(box, mo, nil)
	mo.linkedBox = box
	mo.linked = true
	m.numMobjs++

	var err error
	stamp := m.nextValidCount()
	m.lines.IterateBox(box, func(l *Line) bool {
		if l.validCount == stamp {
			return false
		}
		l.validCount = stamp
		if !l.TouchesBox(box) {
			return false
		}
		err = m.links.Link(mo, &mo.lines, l, &l.mobjs)
		return err != nil
	})
	if err != nil {
		m.UnlinkMobj(mo)
		return err
	}
	return nil
}

// UnlinkMobj removes a mobj and all of its line links. Returns false if it
// was not linked
func (m *Map) UnlinkMobj(mo *Mobj) bool {
	if !mo.linked {
		return false
	}
	m.mobjs.Unlink(mo.linkedBox, mo)
	m.links.UnlinkAll(&mo.lines)
	mo.linked = false
	m.numMobjs--
	return true
}

// MoveMobj changes position and radius of a mobj, relinking it
func (m *Map) MoveMobj(mo *Mobj, pos Vec2, radius float64) error {
	m.UnlinkMobj(mo)
	mo.Pos = pos
	mo.Radius = radius
	return m.LinkMobj(mo)
}

// BoxLines calls fn once for every line in the cells box overlaps: member
// lines of polyobjs first, then static lines. fn returns true to stop.
// Returns whether fn stopped it
func (m *Map) BoxLines(box AABox, fn func(l *Line) bool) bool {
	stamp := m.nextValidCount()
	if m.boxPolyobjLines(box, stamp, fn) {
		return true
	}
	return m.lines.IterateBox(box, func(l *Line) bool {
		if l.validCount == stamp {
			return false
		}
		l.validCount = stamp
		return fn(l)
	})
}

func (m *Map) boxPolyobjLines(box AABox, stamp int, fn func(l *Line) bool) bool {
	return m.polyobjs.IterateBox(box, func(po *Polyobj) bool {
		if po.validCount == stamp {
			return false
		}
		po.validCount = stamp
		for _, l := range po.Lines {
			if l.validCount == stamp {
				continue
			}
			l.validCount = stamp
			if fn(l) {
				return true
			}
		}
		return false
	})
}

// BoxMobjs calls fn once for every mobj in the cells box overlaps
func (m *Map) BoxMobjs(box AABox, fn func(mo *Mobj) bool) bool {
	stamp := m.nextValidCount()
	return m.mobjs.IterateBox(box, func(mo *Mobj) bool {
		if mo.validCount == stamp {
			return false
		}
		mo.validCount = stamp
		return fn(mo)
	})
}

func (m *Map) BoxPolyobjs(box AABox, fn func(po *Polyobj) bool) bool {
	stamp := m.nextValidCount()
	return m.polyobjs.IterateBox(box, func(po *Polyobj) bool {
		if po.validCount == stamp {
			return false
		}
		po.validCount = stamp
		return fn(po)
	})
}

func (m *Map) BoxSubAreas(box AABox, fn func(s *SubArea) bool) bool {
	stamp := m.nextValidCount()
	return m.subAreas.IterateBox(box, func(s *SubArea) bool {
		if s.validCount == stamp {
			return false
		}
		s.validCount = stamp
		return fn(s)
	})
}

// MobjLines calls fn for every line the mobj is linked with
func (m *Map) MobjLines(mo *Mobj, fn func(l *Line) bool) bool {
	return m.links.Targets(&mo.lines, fn)
}

// LineMobjs calls fn for every mobj linked with the line
func (m *Map) LineMobjs(l *Line, fn func(mo *Mobj) bool) bool {
	return m.links.Owners(&l.mobjs, fn)
}

// MapStats is a snapshot of the index, for reporting
type MapStats struct {
	Width, Height int
	CellW, CellH  float64

	Lines    int
	Mobjs    int
	Polyobjs int
	SubAreas int

	LineCells    int
	MobjCells    int
	PolyobjCells int
	SubAreaCells int

	LinksInUse int
	LinksFree  int
	LinksCap   int
}

func (m *Map) Stats() MapStats {
	return MapStats{
		Width:        m.lines.Width(),
		Height:       m.lines.Height(),
		CellW:        m.config.CellWidth,
		CellH:        m.config.CellHeight,
		Lines:        m.numLines,
		Mobjs:        m.numMobjs,
		Polyobjs:     m.numPolyobjs,
		SubAreas:     m.numSubAreas,
		LineCells:    m.lines.Allocated(),
		MobjCells:    m.mobjs.Allocated(),
		PolyobjCells: m.polyobjs.Allocated(),
		SubAreaCells: m.subAreas.Allocated(),
		LinksInUse:   m.links.InUse(),
		LinksFree:    m.links.Free(),
		LinksCap:     m.links.Cap(),
	}
}
