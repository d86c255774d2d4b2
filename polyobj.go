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

// polyobj
package main

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

// LevelPolyobj is a polyobject found in a Hexen format level
type LevelPolyobj struct {
	Number int
	Lines  []int // linedef indices, in the order they were found
	// Translation from the anchor spot to the spawn spot. Zero when either
	// spot is missing
	Offset spatial.Vec2
}

type explicitLine struct {
	order   uint8
	linedef int
}

type explicitLines []explicitLine

func (x explicitLines) Len() int           { return len(x) }
func (x explicitLines) Less(i, j int) bool { return x[i].order < x[j].order }
func (x explicitLines) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

func errPolyobj(ld *LevelData, number int, msg string) error {
	return errors.New(msg).
		WithType(spatial.ErrTypeMalformedTopology).
		WithTag("level", ld.Name).
		WithTag("polyobj", number)
}

// DetectPolyobjs finds the polyobjects of a Hexen format level, defined
// either by a Polyobj_StartLine whose chain of lines closes on itself, or
// by a numbered list of Polyobj_ExplicitLine lines. Levels in other formats
// have no polyobjects
func DetectPolyobjs(ld *LevelData) ([]LevelPolyobj, error) {
	if ld.Format != FORMAT_HEXEN {
		return nil, nil
	}
	// First go through all lines to see if level contains any polyobjs
	hasRelevantActions := false
	for _, line := range ld.Linedefs {
		if line.Action == HEXEN_ACTION_POLY_START ||
			line.Action == HEXEN_ACTION_POLY_EXPLICIT {
			hasRelevantActions = true
			break
		}
	}
	if !hasRelevantActions {
		Log.Verbose(1, "No lines acting on polyobjects => no polyobjects.\n")
		return nil, nil
	}

	byNumber := make(map[uint8]*LevelPolyobj)
	for i, line := range ld.Linedefs {
		if line.Action != HEXEN_ACTION_POLY_START {
			continue
		}
		number := line.Args[0]
		if _, ok := byNumber[number]; ok {
			return nil, errPolyobj(ld, int(number), "polyobj has more than one start line")
		}
		chain, err := followPolyobjChain(ld, i)
		if err != nil {
			return nil, err
		}
		byNumber[number] = &LevelPolyobj{Number: int(number), Lines: chain}
	}

	explicit := make(map[uint8]explicitLines)
	for i, line := range ld.Linedefs {
		if line.Action != HEXEN_ACTION_POLY_EXPLICIT {
			continue
		}
		number := line.Args[0]
		if _, ok := byNumber[number]; ok {
			return nil, errPolyobj(ld, int(number), "polyobj has both a start line and explicit lines")
		}
		explicit[number] = append(explicit[number], explicitLine{
			order:   line.Args[1],
			linedef: i,
		})
	}
	for number, lines := range explicit {
		sort.Stable(lines)
		po := &LevelPolyobj{Number: int(number)}
		for _, el := range lines {
			po.Lines = append(po.Lines, el.linedef)
		}
		byNumber[number] = po
	}

	numbers := make(Uint8Slice, 0, len(byNumber))
	for number := range byNumber {
		numbers = append(numbers, number)
	}
	sort.Sort(numbers)

	placePolyobjs(ld, byNumber)

	res := make([]LevelPolyobj, 0, len(numbers))
	for _, number := range numbers {
		res = append(res, *byNumber[number])
	}
	Log.Verbose(1, "Found %d polyobjects.\n", len(res))
	return res, nil
}

// followPolyobjChain walks from the start line through lines that begin
// where the previous one ended, until it arrives back at the start
func followPolyobjChain(ld *LevelData, start int) ([]int, error) {
	number := int(ld.Linedefs[start].Args[0])
	first, ok := ld.vertex(ld.Linedefs[start].StartVertex)
	if !ok {
		return nil, errPolyobj(ld, number, "polyobj start line references a vertex that doesn't exist")
	}
	chain := []int{start}
	cur := start
	for {
		end, ok := ld.vertex(ld.Linedefs[cur].EndVertex)
		if !ok {
			return nil, errPolyobj(ld, number, "polyobj line references a vertex that doesn't exist")
		}
		if end == first {
			return chain, nil
		}
		if len(chain) > len(ld.Linedefs) {
			return nil, errPolyobj(ld, number, "polyobj chain never closes")
		}
		next := -1
		for i, line := range ld.Linedefs {
			if i == cur {
				continue
			}
			v, ok := ld.vertex(line.StartVertex)
			if ok && v == end {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, errPolyobj(ld, number, "polyobj chain never closes")
		}
		chain = append(chain, next)
		cur = next
	}
}

// placePolyobjs computes the translation of every polyobj from its anchor
// spot to its spawn spot. Both kinds of things carry the polyobj number in
// their angle field
//
// There's a conflict between Hexen polyobj thing types and Doom thing types.
// In Doom type 3001 is for Imp and 3002 for Demon. If any ZDoom polyobj
// spawner is found, ZDoom polyobj thing types are assumed, otherwise Hexen
// ones
func placePolyobjs(ld *LevelData, byNumber map[uint8]*LevelPolyobj) {
	hexenStyle := true
	for _, thing := range ld.Things {
		if thing.Type == ZDOOM_PO_SPAWN_TYPE ||
			thing.Type == ZDOOM_PO_SPAWNCRUSH_TYPE {
			hexenStyle = false
			break
		}
	}
	anchorType := int16(PO_ANCHOR_TYPE)
	spawnType := int16(PO_SPAWN_TYPE)
	spawnCrushType := int16(PO_SPAWNCRUSH_TYPE)
	if hexenStyle {
		Log.Verbose(1, "Using Hexen-style polyobj things.\n")
	} else {
		Log.Verbose(1, "Using Zdoom-style polyobj things.\n")
		anchorType = ZDOOM_PO_ANCHOR_TYPE
		spawnType = ZDOOM_PO_SPAWN_TYPE
		spawnCrushType = ZDOOM_PO_SPAWNCRUSH_TYPE
	}

	anchors := make(map[int]spatial.Vec2)
	spawns := make(map[int]spatial.Vec2)
	for i, thing := range ld.Things {
		spot := spatial.Vec2{X: float64(thing.XPos), Y: float64(thing.YPos)}
		switch thing.Type {
		case anchorType:
			anchors[int(thing.Angle)] = spot
		case spawnType, spawnCrushType:
			Log.Verbose(3, "Thing %d at (%d,%d) is a polyobj spawner\n",
				i, thing.XPos, thing.YPos)
			spawns[int(thing.Angle)] = spot
		}
	}

	for number, po := range byNumber {
		anchor, hasAnchor := anchors[int(number)]
		spawn, hasSpawn := spawns[int(number)]
		if !hasSpawn {
			Log.Verbose(1, "Polyobj %d has no spawn spot, its lines stay in place\n", number)
			continue
		}
		if !hasAnchor {
			Log.Verbose(1, "Polyobj %d has no anchor spot, its lines stay in place\n", number)
			continue
		}
		po.Offset = spawn.Sub(anchor)
	}
}
