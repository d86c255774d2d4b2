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

// Wad specifications for Doom-engine family of games
// (including Heretic, Hexen, etc.), reduced to what the level loader reads
package main

import (
	"regexp"
)

// Both brought in accordance with Prboom-Plus 2.6.1um map name ranges, except
// that E1M0x is possible (when it is probably shouldn't be) since I don't
// want to complicate these regexp's (and E9M97 is perfectly legal, for example)
var MAP_SEQUEL *regexp.Regexp = regexp.MustCompile(`^MAP[0-9][0-9]$`)
var MAP_ExMx *regexp.Regexp = regexp.MustCompile(`^E[1-9]M[0-9][0-9]?$`)

// This constant group is for internal program usage only
const (
	FORMAT_DOOM = iota
	FORMAT_HEXEN
)

const IWAD_MAGIC_SIG = uint32(0x44415749) // ASCII - 'IWAD'
const PWAD_MAGIC_SIG = uint32(0x44415750) // ASCII - 'PWAD'

// Linedef flags common to all formats
const LF_IMPASSABLE = uint16(0x0001)
const LF_BLOCK_MONSTER = uint16(0x0002)
const LF_TWOSIDED = uint16(0x0004)
const LF_SECRET = uint16(0x0020) // shown as 1-sided on automap
const LF_BLOCK_SOUND = uint16(0x0040)

const SIDEDEF_NONE = uint16(0xFFFF)

const DOOM_THING_SIZE = 10
const HEXEN_THING_SIZE = 20
const DOOM_LINEDEF_SIZE = 14  // Size of "Linedef" struct
const HEXEN_LINEDEF_SIZE = 16 // Size of "HexenLinedef" struct
const VERTEX_SIZE = 4
const SEG_SIZE = 12
const SUBSECTOR_SIZE = 4

const HEXEN_ACTION_POLY_START = 1
const HEXEN_ACTION_POLY_EXPLICIT = 5

const PO_ANCHOR_TYPE = 3000
const PO_SPAWN_TYPE = 3001
const PO_SPAWNCRUSH_TYPE = 3002

const ZDOOM_PO_ANCHOR_TYPE = 9300
const ZDOOM_PO_SPAWN_TYPE = 9301
const ZDOOM_PO_SPAWNCRUSH_TYPE = 9302

// Wad header, 12 bytes.
type WadHeader struct {
	MagicSig       uint32
	LumpCount      uint32 // vanilla treats this as signed int32
	DirectoryStart uint32 // vanilla treats this as signed int32
}

// Lump entries listed one after another comprise the directory,
// the first such lump entry is found at WadHeader.DirectoryStart offset into
// the wad file.
// Each lump entry is 16 bytes long
type LumpEntry struct {
	FilePos uint32 // vanilla treats this as signed int32
	Size    uint32 // vanilla treats this as signed int32
	Name    [8]byte
}

// This is Doom/Heretic/Strife thing. Not Hexen thing
type Thing struct {
	XPos  int16
	YPos  int16
	Angle int16
	Type  int16
	Flags int16
}

// Hexen Thing
type HexenThing struct {
	TID            int16
	XPos           int16
	YPos           int16
	StartingHeight int16
	Angle          int16
	Type           int16
	Flags          int16
	Action         uint8
	Args           [5]byte
}

// Doom/Heretic linedef format
type Linedef struct {
	// Vanilla treats ALL fields as signed int16
	StartVertex uint16
	EndVertex   uint16
	Flags       uint16
	Action      uint16
	Tag         uint16
	FrontSdef   uint16 // Front Sidedef number
	BackSdef    uint16 // Back Sidedef number (0xFFFF special value for one-sided line)
}

// Hexen linedef format
type HexenLinedef struct {
	// Vanilla treats ALL fields as signed
	StartVertex uint16
	EndVertex   uint16
	Flags       uint16
	Action      uint8
	Arg1        uint8 // polyobj number for polyobj actions
	Arg2        uint8 // ordering of explicit polyobj lines
	Arg3        uint8
	Arg4        uint8
	Arg5        uint8
	FrontSdef   uint16
	BackSdef    uint16
}

type Vertex struct {
	XPos int16
	YPos int16
}

type Seg struct {
	// Vanilla treats ALL fields as signed int16
	StartVertex uint16
	EndVertex   uint16
	Angle       int16
	Linedef     uint16
	Flip        int16  // 0 - seg follows same direction as linedef, 1 - the opposite
	Offset      uint16 // distance along linedef to start of seg
}

// Each subsector has only these two fields, yes. And the segs in SEGS lump
// follow the order so that consecutive segs in FirstSeg...FirstSeq+SeqCount-1
// all belong to this subsector. So each seg is a part of one and only one subsector
type SubSector struct {
	// Vanilla treats ALL fields as signed int16
	SegCount uint16 // number of Segs in this SubSector
	FirstSeg uint16 // first Seg number
}

// Returns whether the string in lumpName represents Doom level marker,
// i.e. MAP02, E3M1
func IsALevel(lumpName []byte) bool {
	return MAP_SEQUEL.Match(lumpName) || MAP_ExMx.Match(lumpName)
}

// Radii of Doom things that move or block, by thing type. Everything not
// listed gets DEFAULT_THING_RADIUS
const DEFAULT_THING_RADIUS = 20.0

var THING_RADIUS = map[int16]float64{
	1:    16,  // player 1 start
	2:    16,  // player 2 start
	3:    16,  // player 3 start
	4:    16,  // player 4 start
	11:   16,  // deathmatch start
	7:    128, // spider mastermind
	16:   40,  // cyberdemon
	58:   30,  // spectre
	64:   20,  // arch-vile
	65:   20,  // heavy weapon dude
	66:   20,  // revenant
	67:   48,  // mancubus
	68:   64,  // arachnotron
	69:   24,  // hell knight
	71:   31,  // pain elemental
	84:   20,  // wolfenstein ss
	2035: 10,  // barrel
	3001: 20,  // imp
	3002: 30,  // demon
	3003: 24,  // baron of hell
	3004: 20,  // zombieman
	3005: 31,  // cacodemon
	3006: 16,  // lost soul
	9:    20,  // shotgun guy
}

// ThingRadius returns the radius the thing gets as a mobj
func ThingRadius(thingType int16) float64 {
	if r, ok := THING_RADIUS[thingType]; ok {
		return r
	}
	return DEFAULT_THING_RADIUS
}

// IsPolyobjThing reports thing types that only mark polyobj positions and
// never become mobjs in Hexen format levels
func IsPolyobjThing(thingType int16) bool {
	switch thingType {
	case PO_ANCHOR_TYPE, PO_SPAWN_TYPE, PO_SPAWNCRUSH_TYPE,
		ZDOOM_PO_ANCHOR_TYPE, ZDOOM_PO_SPAWN_TYPE, ZDOOM_PO_SPAWNCRUSH_TYPE:
		return true
	}
	return false
}
