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

// level
package main

import (
	"io"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

// LevelThing is a thing of either format, reduced to what indexing needs
type LevelThing struct {
	XPos  int16
	YPos  int16
	Angle int16 // polyobj number for polyobj anchors and spawners
	Type  int16
}

// LevelLine is a linedef of either format. Doom linedefs have zero Args
type LevelLine struct {
	StartVertex uint16
	EndVertex   uint16
	Flags       uint16
	Action      uint16
	Args        [5]uint8
	BackSdef    uint16
}

// LevelData is everything read from the lumps of one level
type LevelData struct {
	Name       string
	Format     int
	Things     []LevelThing
	Linedefs   []LevelLine
	Vertices   []Vertex
	Segs       []Seg
	SubSectors []SubSector
}

type LevelBounds struct {
	Xmin int16
	Ymin int16
	Xmax int16
	Ymax int16
}

// LoadLevel reads the lumps of the level found by FindLevel. SEGS and SSECTORS
// are optional; without them the level has no sub-areas
func LoadLevel(f io.ReadSeeker, wd *WadDirectory, ll *LevelLumps) (*LevelData, error) {
	for _, name := range LUMP_MUSTEXIST {
		if _, ok := ll.Lumps[name]; !ok {
			return nil, errors.New("level is missing a required lump").
				WithType(ErrTypeBadLevel).
				WithTag("level", ll.Name).
				WithTag("lump", name)
		}
	}
	ld := &LevelData{
		Name:   ll.Name,
		Format: ll.Format,
	}
	lumpErr := func(name string, err error) error {
		return errors.New("couldn't read lump").
			WithType(ErrTypeBadLevel).
			WithTag("level", ll.Name).
			WithTag("lump", name).
			Wrap(err)
	}

	var err error
	ld.Vertices, err = readLump[Vertex](f, wd.Lumps[ll.Lumps["VERTEXES"]], VERTEX_SIZE)
	if err != nil {
		return nil, lumpErr("VERTEXES", err)
	}

	thingsEntry := wd.Lumps[ll.Lumps["THINGS"]]
	linesEntry := wd.Lumps[ll.Lumps["LINEDEFS"]]
	if ld.Format == FORMAT_HEXEN {
		things, err := readLump[HexenThing](f, thingsEntry, HEXEN_THING_SIZE)
		if err != nil {
			return nil, lumpErr("THINGS", err)
		}
		ld.Things = make([]LevelThing, len(things))
		for i, t := range things {
			ld.Things[i] = LevelThing{XPos: t.XPos, YPos: t.YPos, Angle: t.Angle, Type: t.Type}
		}
		lines, err := readLump[HexenLinedef](f, linesEntry, HEXEN_LINEDEF_SIZE)
		if err != nil {
			return nil, lumpErr("LINEDEFS", err)
		}
		ld.Linedefs = make([]LevelLine, len(lines))
		for i, l := range lines {
			ld.Linedefs[i] = LevelLine{
				StartVertex: l.StartVertex,
				EndVertex:   l.EndVertex,
				Flags:       l.Flags,
				Action:      uint16(l.Action),
				Args:        [5]uint8{l.Arg1, l.Arg2, l.Arg3, l.Arg4, l.Arg5},
				BackSdef:    l.BackSdef,
			}
		}
	} else {
		things, err := readLump[Thing](f, thingsEntry, DOOM_THING_SIZE)
		if err != nil {
			return nil, lumpErr("THINGS", err)
		}
		ld.Things = make([]LevelThing, len(things))
		for i, t := range things {
			ld.Things[i] = LevelThing{XPos: t.XPos, YPos: t.YPos, Angle: t.Angle, Type: t.Type}
		}
		lines, err := readLump[Linedef](f, linesEntry, DOOM_LINEDEF_SIZE)
		if err != nil {
			return nil, lumpErr("LINEDEFS", err)
		}
		ld.Linedefs = make([]LevelLine, len(lines))
		for i, l := range lines {
			ld.Linedefs[i] = LevelLine{
				StartVertex: l.StartVertex,
				EndVertex:   l.EndVertex,
				Flags:       l.Flags,
				Action:      l.Action,
				BackSdef:    l.BackSdef,
			}
		}
	}

	segsIdx, hasSegs := ll.Lumps["SEGS"]
	ssIdx, hasSS := ll.Lumps["SSECTORS"]
	if hasSegs && hasSS {
		ld.Segs, err = readLump[Seg](f, wd.Lumps[segsIdx], SEG_SIZE)
		if err != nil {
			return nil, lumpErr("SEGS", err)
		}
		ld.SubSectors, err = readLump[SubSector](f, wd.Lumps[ssIdx], SUBSECTOR_SIZE)
		if err != nil {
			return nil, lumpErr("SSECTORS", err)
		}
	} else {
		Log.Verbose(1, "Level %s has no nodes built, sub-areas are not going to be indexed\n",
			ll.Name)
	}

	Log.Verbose(1, "Level %s: %d things, %d linedefs, %d vertices, %d segs, %d subsectors\n",
		ld.Name, len(ld.Things), len(ld.Linedefs), len(ld.Vertices),
		len(ld.Segs), len(ld.SubSectors))
	return ld, nil
}

// GetBounds returns the extent of the level's vertices
func (ld *LevelData) GetBounds() LevelBounds {
	bounds := LevelBounds{
		Xmin: math.MaxInt16,
		Ymin: math.MaxInt16,
		Xmax: math.MinInt16,
		Ymax: math.MinInt16,
	}
	for _, v := range ld.Vertices {
		if v.XPos < bounds.Xmin {
			bounds.Xmin = v.XPos
		}
		if v.YPos < bounds.Ymin {
			bounds.Ymin = v.YPos
		}
		if v.XPos > bounds.Xmax {
			bounds.Xmax = v.XPos
		}
		if v.YPos > bounds.Ymax {
			bounds.Ymax = v.YPos
		}
	}
	return bounds
}

func (ld *LevelData) vertex(idx uint16) (spatial.Vec2, bool) {
	if int(idx) >= len(ld.Vertices) {
		return spatial.Vec2{}, false
	}
	v := ld.Vertices[idx]
	return spatial.Vec2{X: float64(v.XPos), Y: float64(v.YPos)}, true
}

// lineFlags maps linedef flags onto the flags the index understands
func lineFlags(l LevelLine) uint16 {
	var flags uint16
	if l.Flags&LF_IMPASSABLE != 0 {
		flags |= spatial.LF_BLOCKING
	}
	if l.Flags&LF_BLOCK_MONSTER != 0 {
		flags |= spatial.LF_BLOCKMONSTERS
	}
	// a two-sided flag without a back sidedef is a mapping error the engine
	// treats as one-sided
	if l.Flags&LF_TWOSIDED != 0 && l.BackSdef != SIDEDEF_NONE {
		flags |= spatial.LF_TWOSIDED
	}
	return flags
}

// ToScene turns the level into a scene: linedefs become lines, things
// become mobjs, subsectors become sub-areas and Hexen polyobjects are
// detected and moved to their spawn spots
func (ld *LevelData) ToScene() (*Scene, error) {
	polyobjs, err := DetectPolyobjs(ld)
	if err != nil {
		return nil, err
	}
	offsets := make([]spatial.Vec2, len(ld.Linedefs))
	for _, po := range polyobjs {
		for _, lidx := range po.Lines {
			offsets[lidx] = po.Offset
		}
	}

	scene := &Scene{
		Name:  ld.Name,
		Lines: make([]SceneLine, 0, len(ld.Linedefs)),
	}
	for i, l := range ld.Linedefs {
		v1, ok1 := ld.vertex(l.StartVertex)
		v2, ok2 := ld.vertex(l.EndVertex)
		if !ok1 || !ok2 {
			return nil, errors.New("linedef references a vertex that doesn't exist").
				WithType(ErrTypeBadLevel).
				WithTag("level", ld.Name).
				WithTag("linedef", i)
		}
		v1 = v1.Add(offsets[i])
		v2 = v2.Add(offsets[i])
		scene.Lines = append(scene.Lines, SceneLine{
			ID:    i,
			V1:    ScenePoint{v1.X, v1.Y},
			V2:    ScenePoint{v2.X, v2.Y},
			Flags: lineFlags(l),
		})
	}

	for _, po := range polyobjs {
		scene.Polyobjs = append(scene.Polyobjs, ScenePolyobj{
			ID:    po.Number,
			Lines: append([]int(nil), po.Lines...),
		})
	}

	for i, t := range ld.Things {
		if ld.Format == FORMAT_HEXEN && IsPolyobjThing(t.Type) {
			continue
		}
		scene.Mobjs = append(scene.Mobjs, SceneMobj{
			ID:     i,
			Type:   int(t.Type),
			Pos:    ScenePoint{float64(t.XPos), float64(t.YPos)},
			Radius: ThingRadius(t.Type),
		})
	}

	for i, ss := range ld.SubSectors {
		sa := SceneSubArea{ID: i}
		for j := 0; j < int(ss.SegCount); j++ {
			segIdx := int(ss.FirstSeg) + j
			if segIdx >= len(ld.Segs) {
				return nil, errors.New("subsector references a seg that doesn't exist").
					WithType(ErrTypeBadLevel).
					WithTag("level", ld.Name).
					WithTag("subsector", i)
			}
			v, ok := ld.vertex(ld.Segs[segIdx].StartVertex)
			if !ok {
				return nil, errors.New("seg references a vertex that doesn't exist").
					WithType(ErrTypeBadLevel).
					WithTag("level", ld.Name).
					WithTag("seg", segIdx)
			}
			sa.Points = append(sa.Points, ScenePoint{v.X, v.Y})
		}
		if len(sa.Points) == 0 {
			Log.Verbose(2, "Subsector %d has no segs, skipping it\n", i)
			continue
		}
		scene.SubAreas = append(scene.SubAreas, sa)
	}
	return scene, nil
}
