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
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

// World is a scene indexed for queries. It owns the entities linked into
// the map; they must stay where they are in memory for as long as they
// are linked
type World struct {
	Name     string
	Map      *spatial.Map
	Lines    []*spatial.Line
	Polyobjs []*spatial.Polyobj
	Mobjs    []*spatial.Mobj
	SubAreas []*spatial.SubArea

	lineByID  map[int]*spatial.Line
	mobjByID  map[int]*spatial.Mobj
	polyByID  map[int]*spatial.Polyobj
	subAreaBy map[int]*spatial.SubArea
}

func (w *World) Line(id int) *spatial.Line {
	return w.lineByID[id]
}

func (w *World) Mobj(id int) *spatial.Mobj {
	return w.mobjByID[id]
}

func (w *World) Polyobj(id int) *spatial.Polyobj {
	return w.polyByID[id]
}

// Scene captures the current state of the world, mobjs where they have been
// moved to
func (w *World) Scene() *Scene {
	s := &Scene{
		Name:  w.Name,
		Lines: make([]SceneLine, 0, len(w.Lines)),
	}
	for _, l := range w.Lines {
		s.Lines = append(s.Lines, SceneLine{
			ID:    l.ID,
			V1:    ScenePoint{l.V1.X, l.V1.Y},
			V2:    ScenePoint{l.V2.X, l.V2.Y},
			Flags: l.Flags,
		})
	}
	for _, po := range w.Polyobjs {
		sp := ScenePolyobj{ID: po.ID}
		for _, l := range po.Lines {
			sp.Lines = append(sp.Lines, l.ID)
		}
		s.Polyobjs = append(s.Polyobjs, sp)
	}
	for _, mo := range w.Mobjs {
		s.Mobjs = append(s.Mobjs, SceneMobj{
			ID:     mo.ID,
			Type:   mo.Type,
			Pos:    ScenePoint{mo.Pos.X, mo.Pos.Y},
			Radius: mo.Radius,
		})
	}
	for _, sa := range w.SubAreas {
		ss := SceneSubArea{ID: sa.ID}
		for _, p := range sa.Points {
			ss.Points = append(ss.Points, ScenePoint{p.X, p.Y})
		}
		s.SubAreas = append(s.SubAreas, ss)
	}
	return s
}
