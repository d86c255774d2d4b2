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
	"math"
)

const (
	// Default blockmap cell size in world units, same as Doom's MAPBLOCKUNITS
	DEFAULT_CELL_SIZE = 128.0
	// Number of link nodes a page of the link pool holds
	LINK_PAGE_SIZE = 1024
	// Origin coordinates within this distance of a cell boundary get nudged
	// by one unit before a trace starts (1/FRACUNIT)
	DEFAULT_FUDGE_EPSILON = 1.0 / 65536.0
)

// Config holds the tunables of a Map. Zero values in LinkLimit and
// MaxTraceSteps mean "no limit" and "automatic" respectively
type Config struct {
	CellWidth  float64
	CellHeight float64
	// Link nodes preallocated when the map is built
	LinkCapacity int
	// Hard limit on link nodes in use, 0 = unlimited
	LinkLimit int
	// Cap on cells visited per trace, 0 = derived from trace length
	MaxTraceSteps int
	FudgeEpsilon  float64
}

func DefaultConfig() Config {
	return Config{
		CellWidth:     DEFAULT_CELL_SIZE,
		CellHeight:    DEFAULT_CELL_SIZE,
		LinkCapacity:  LINK_PAGE_SIZE,
		LinkLimit:     0,
		MaxTraceSteps: 0,
		FudgeEpsilon:  DEFAULT_FUDGE_EPSILON,
	}
}

// Validate checks that config describes a usable map
func (c Config) Validate() error {
	if !(c.CellWidth > 0) || math.IsInf(c.CellWidth, 0) {
		return newError(ErrTypeInvalidConfig, "cell width must be positive",
			"cell_width", c.CellWidth)
	}
	if !(c.CellHeight > 0) || math.IsInf(c.CellHeight, 0) {
		return newError(ErrTypeInvalidConfig, "cell height must be positive",
			"cell_height", c.CellHeight)
	}
	if c.LinkCapacity < 0 {
		return newError(ErrTypeInvalidConfig, "link capacity can't be negative",
			"link_capacity", c.LinkCapacity)
	}
	if c.LinkLimit < 0 {
		return newError(ErrTypeInvalidConfig, "link limit can't be negative",
			"link_limit", c.LinkLimit)
	}
	if c.LinkLimit > 0 && c.LinkCapacity > c.LinkLimit {
		return newError(ErrTypeInvalidConfig, "link capacity exceeds link limit",
			"link_capacity", c.LinkCapacity, "link_limit", c.LinkLimit)
	}
	if c.MaxTraceSteps < 0 {
		return newError(ErrTypeInvalidConfig, "trace step cap can't be negative",
			"max_trace_steps", c.MaxTraceSteps)
	}
	if c.FudgeEpsilon < 0 || math.IsNaN(c.FudgeEpsilon) {
		return newError(ErrTypeInvalidConfig, "fudge epsilon can't be negative",
			"fudge_epsilon", c.FudgeEpsilon)
	}
	return nil
}
