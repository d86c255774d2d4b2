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

package main

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

const (
	ErrTypeBadWad        = "bad_wad"
	ErrTypeLevelNotFound = "level_not_found"
	ErrTypeBadLevel      = "bad_level"
)

// Lumps that belong to a level when they follow its marker
var LEVEL_LUMPS = []string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS",
	"SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP", "BEHAVIOR", "SCRIPTS"}

// Lumps without which a level can't be indexed
var LUMP_MUSTEXIST = []string{"THINGS", "LINEDEFS", "VERTEXES"}

type WadDirectory struct {
	Header WadHeader
	Lumps  []LumpEntry
}

// LevelLumps locates the lumps of one level in the directory
type LevelLumps struct {
	Name   string
	Marker int // directory index of the marker lump
	Format int
	Lumps  map[string]int
}

// ByteSliceBeforeTerm returns a part of the original bytes
// excluding everything that starts with zero-byte character.
// This allows string operations (such as pattern matching) to be performed
// correctly on returned value
func ByteSliceBeforeTerm(b []byte) []byte {
	i := bytes.IndexByte(b, 0)
	if i == -1 {
		return b
	} else {
		return b[:i]
	}
}

// ReadWadDirectory reads header and directory of a wad
func ReadWadDirectory(f io.ReadSeeker) (*WadDirectory, error) {
	wd := new(WadDirectory)
	err := binary.Read(f, binary.LittleEndian, &wd.Header)
	if err != nil {
		return nil, errors.New("couldn't read file header").
			WithType(ErrTypeBadWad).
			Wrap(err)
	}
	if wd.Header.MagicSig == IWAD_MAGIC_SIG {
		Log.Verbose(1, "The input file is an IWAD\n")
	} else if wd.Header.MagicSig == PWAD_MAGIC_SIG {
		Log.Verbose(1, "The input file is a PWAD\n")
	} else {
		return nil, errors.New("the input file is NOT a wad").
			WithType(ErrTypeBadWad)
	}
	Log.Verbose(1, "The directory contains %d lumps and starts at %d byte offset\n",
		wd.Header.LumpCount, wd.Header.DirectoryStart)

	_, err = f.Seek(int64(wd.Header.DirectoryStart), io.SeekStart)
	if err != nil {
		return nil, errors.New("couldn't move to wad's directory structure").
			WithType(ErrTypeBadWad).
			WithTag("offset", wd.Header.DirectoryStart).
			Wrap(err)
	}

	// Read in whole directory at once
	wd.Lumps = make([]LumpEntry, wd.Header.LumpCount)
	err = binary.Read(f, binary.LittleEndian, wd.Lumps)
	if err != nil {
		return nil, errors.New("failed to read lump info from a wad's directory").
			WithType(ErrTypeBadWad).
			Wrap(err)
	}
	return wd, nil
}

func isLevelLump(name []byte) bool {
	for _, s := range LEVEL_LUMPS {
		if bytes.Equal([]byte(s), name) {
			return true
		}
	}
	return false
}

// FindLevels identifies every level in the directory: a marker lump named
// like a level followed by the lumps a level is made of
func (wd *WadDirectory) FindLevels() []LevelLumps {
	var levels []LevelLumps
	var current *LevelLumps
	for i, entry := range wd.Lumps {
		// exclude zero byte and all that follows it from string for pattern
		// matching to work correctly
		bname := ByteSliceBeforeTerm(entry.Name[:])
		if IsALevel(bname) {
			levels = append(levels, LevelLumps{
				Name:   string(bname),
				Marker: i,
				Format: FORMAT_DOOM,
				Lumps:  make(map[string]int),
			})
			current = &levels[len(levels)-1]
			continue
		}
		if current == nil {
			continue
		}
		if !isLevelLump(bname) {
			current = nil // level ended
			continue
		}
		if bytes.Equal([]byte("BEHAVIOR"), bname) {
			current.Format = FORMAT_HEXEN
		}
		current.Lumps[string(bname)] = i
	}
	return levels
}

// FindLevel returns the lumps of the named level. An empty name picks the
// first level in the wad
func (wd *WadDirectory) FindLevel(name string) (*LevelLumps, error) {
	levels := wd.FindLevels()
	if len(levels) == 0 {
		return nil, errors.New("unable to find any valid levels").
			WithType(ErrTypeLevelNotFound)
	}
	if name == "" {
		return &levels[0], nil
	}
	for i := range levels {
		if levels[i].Name == name {
			return &levels[i], nil
		}
	}
	return nil, errors.New("level is not in the wad").
		WithType(ErrTypeLevelNotFound).
		WithTag("level", name)
}

// readLump reads a lump as an array of fixed-size records
func readLump[T any](f io.ReadSeeker, entry LumpEntry, recordSize int) ([]T, error) {
	count := int(entry.Size) / recordSize
	res := make([]T, count)
	if count == 0 {
		return res, nil
	}
	_, err := f.Seek(int64(entry.FilePos), io.SeekStart)
	if err != nil {
		return nil, err
	}
	err = binary.Read(f, binary.LittleEndian, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}
