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

// scene
package main

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

const ErrTypeBadScene = "bad_scene"

const (
	SCENE_YAML = iota
	SCENE_MSGPACK
)

// Scene is a level reduced to what the index stores, in a form that can be
// written by hand (YAML) or exported compactly (msgpack). Lines that belong
// to a polyobj are listed by id in that polyobj
type Scene struct {
	Name     string         `yaml:"name" msgpack:"name"`
	Lines    []SceneLine    `yaml:"lines" msgpack:"lines"`
	Polyobjs []ScenePolyobj `yaml:"polyobjs,omitempty" msgpack:"polyobjs,omitempty"`
	Mobjs    []SceneMobj    `yaml:"mobjs,omitempty" msgpack:"mobjs,omitempty"`
	SubAreas []SceneSubArea `yaml:"subareas,omitempty" msgpack:"subareas,omitempty"`
}

type ScenePoint struct {
	X float64 `yaml:"x" msgpack:"x"`
	Y float64 `yaml:"y" msgpack:"y"`
}

func (p ScenePoint) Vec2() spatial.Vec2 {
	return spatial.Vec2{X: p.X, Y: p.Y}
}

type SceneLine struct {
	ID    int        `yaml:"id" msgpack:"id"`
	V1    ScenePoint `yaml:"v1,flow" msgpack:"v1"`
	V2    ScenePoint `yaml:"v2,flow" msgpack:"v2"`
	Flags uint16     `yaml:"flags,omitempty" msgpack:"flags,omitempty"`
}

type ScenePolyobj struct {
	ID    int   `yaml:"id" msgpack:"id"`
	Lines []int `yaml:"lines,flow" msgpack:"lines"`
}

type SceneMobj struct {
	ID     int        `yaml:"id" msgpack:"id"`
	Type   int        `yaml:"type,omitempty" msgpack:"type,omitempty"`
	Pos    ScenePoint `yaml:"pos,flow" msgpack:"pos"`
	Radius float64    `yaml:"radius" msgpack:"radius"`
}

type SceneSubArea struct {
	ID     int          `yaml:"id" msgpack:"id"`
	Points []ScenePoint `yaml:"points,flow" msgpack:"points"`
}

// SceneFormatFromName picks the scene format by file extension. Returns
// false for files that are not scenes (wads, for instance)
func SceneFormatFromName(name string) (int, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return SCENE_YAML, true
	case ".msgpack", ".mp":
		return SCENE_MSGPACK, true
	}
	return 0, false
}

func ReadScene(r io.Reader, format int) (*Scene, error) {
	scene := new(Scene)
	var err error
	if format == SCENE_MSGPACK {
		err = msgpack.NewDecoder(r).Decode(scene)
	} else {
		err = yaml.NewDecoder(r).Decode(scene)
	}
	if err != nil {
		return nil, errors.New("couldn't decode scene").
			WithType(ErrTypeBadScene).
			Wrap(err)
	}
	return scene, nil
}

func WriteScene(w io.Writer, scene *Scene, format int) error {
	if format == SCENE_MSGPACK {
		return msgpack.NewEncoder(w).Encode(scene)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scene); err != nil {
		return err
	}
	return enc.Close()
}

// Bounds returns the box around everything in the scene
func (s *Scene) Bounds() spatial.AABox {
	box := spatial.BoxFromPoints()
	for _, l := range s.Lines {
		box.AddPoint(l.V1.Vec2())
		box.AddPoint(l.V2.Vec2())
	}
	for _, mo := range s.Mobjs {
		mbox := spatial.BoxAround(mo.Pos.Vec2(), mo.Radius)
		box.AddPoint(spatial.Vec2{X: mbox.MinX, Y: mbox.MinY})
		box.AddPoint(spatial.Vec2{X: mbox.MaxX, Y: mbox.MaxY})
	}
	for _, sa := range s.SubAreas {
		for _, p := range sa.Points {
			box.AddPoint(p.Vec2())
		}
	}
	return box
}

func errScene(msg string, kind string, id int) error {
	return errors.New(msg).
		WithType(ErrTypeBadScene).
		WithTag(kind, id)
}

// Build indexes the scene. Level bounds are the scene's bounds padded by one
// cell on every side, so that everything on the edge has a cell around it
func (s *Scene) Build(config spatial.Config) (*World, error) {
	padding := config.CellWidth
	if config.CellHeight > padding {
		padding = config.CellHeight
	}
	m, err := spatial.BuildMap(s.Bounds().Expand(padding), config)
	if err != nil {
		return nil, err
	}
	w := &World{
		Name:      s.Name,
		Map:       m,
		Lines:     make([]*spatial.Line, 0, len(s.Lines)),
		Mobjs:     make([]*spatial.Mobj, 0, len(s.Mobjs)),
		lineByID:  make(map[int]*spatial.Line, len(s.Lines)),
		mobjByID:  make(map[int]*spatial.Mobj, len(s.Mobjs)),
		polyByID:  make(map[int]*spatial.Polyobj, len(s.Polyobjs)),
		subAreaBy: make(map[int]*spatial.SubArea, len(s.SubAreas)),
	}

	for _, sl := range s.Lines {
		if _, ok := w.lineByID[sl.ID]; ok {
			return nil, errScene("duplicate line id", "line", sl.ID)
		}
		l := &spatial.Line{
			V1:    sl.V1.Vec2(),
			V2:    sl.V2.Vec2(),
			Flags: sl.Flags,
			ID:    sl.ID,
		}
		w.Lines = append(w.Lines, l)
		w.lineByID[sl.ID] = l
	}

	for _, sp := range s.Polyobjs {
		if _, ok := w.polyByID[sp.ID]; ok {
			return nil, errScene("duplicate polyobj id", "polyobj", sp.ID)
		}
		po := &spatial.Polyobj{ID: sp.ID}
		for _, id := range sp.Lines {
			l, ok := w.lineByID[id]
			if !ok {
				return nil, errors.New("polyobj references a line that doesn't exist").
					WithType(ErrTypeBadScene).
					WithTag("polyobj", sp.ID).
					WithTag("line", id)
			}
			if l.Polyobj != nil {
				return nil, errors.New("line belongs to more than one polyobj").
					WithType(spatial.ErrTypeMalformedTopology).
					WithTag("polyobj", sp.ID).
					WithTag("line", id)
			}
			l.Polyobj = po
			po.Lines = append(po.Lines, l)
		}
		w.Polyobjs = append(w.Polyobjs, po)
		w.polyByID[sp.ID] = po
	}

	for _, l := range w.Lines {
		if l.Polyobj != nil {
			continue
		}
		if err := m.LinkLine(l); err != nil {
			return nil, err
		}
	}
	for _, po := range w.Polyobjs {
		if err := m.LinkPolyobj(po); err != nil {
			return nil, err
		}
	}

	for _, ss := range s.SubAreas {
		if _, ok := w.subAreaBy[ss.ID]; ok {
			return nil, errScene("duplicate sub-area id", "subarea", ss.ID)
		}
		sa := &spatial.SubArea{ID: ss.ID}
		for _, p := range ss.Points {
			sa.Points = append(sa.Points, p.Vec2())
		}
		if err := m.LinkSubArea(sa); err != nil {
			return nil, err
		}
		w.SubAreas = append(w.SubAreas, sa)
		w.subAreaBy[ss.ID] = sa
	}

	// mobjs go last so that they find every line they touch
	for _, sm := range s.Mobjs {
		if _, ok := w.mobjByID[sm.ID]; ok {
			return nil, errScene("duplicate mobj id", "mobj", sm.ID)
		}
		mo := &spatial.Mobj{
			Pos:    sm.Pos.Vec2(),
			Radius: sm.Radius,
			ID:     sm.ID,
			Type:   sm.Type,
		}
		if err := m.LinkMobj(mo); err != nil {
			return nil, err
		}
		w.Mobjs = append(w.Mobjs, mo)
		w.mobjByID[sm.ID] = mo
	}

	stats := m.Stats()
	Log.Verbose(1, "Indexed %s: %dx%d blockmap, %d lines, %d polyobjs, %d mobjs, %d sub-areas, %d links\n",
		s.Name, stats.Width, stats.Height, stats.Lines, stats.Polyobjs,
		stats.Mobjs, stats.SubAreas, stats.LinksInUse)
	return w, nil
}
