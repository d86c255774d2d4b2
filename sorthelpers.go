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

// sorthelpers
package main

// Implementations of sort.Interface for _stock_ Go types go here.
// Note: don't add implementations of sort.Interface of types invented for
// the project, keep those in the file where those are declared

type Uint8Slice []uint8

func (x Uint8Slice) Len() int           { return len(x) }
func (x Uint8Slice) Less(i, j int) bool { return x[i] < x[j] }
func (x Uint8Slice) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }
