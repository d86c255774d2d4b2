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

// probes
package main

import (
	"fmt"
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
	"gopkg.in/yaml.v3"
)

const ErrTypeBadProbe = "bad_probe"

// Probe kinds
const (
	PROBE_TRACE = "trace" // every intercept along from-to
	PROBE_FIRST = "first" // the nearest intercept before to
	PROBE_SIGHT = "sight" // line of sight between from and to
	PROBE_BOX   = "box"   // lines and mobjs touching box
	PROBE_MOVE  = "move"  // move mobj to "to", optionally changing radius
)

type ProbeFile struct {
	Probes []Probe `yaml:"probes"`
}

type Probe struct {
	Kind string     `yaml:"kind"`
	From ScenePoint `yaml:"from,flow,omitempty"`
	To   ScenePoint `yaml:"to,flow,omitempty"`
	// Letters as in -m: l - lines, m - mobjs, d - stop at destination.
	// Empty means lines and mobjs
	Collect string    `yaml:"collect,omitempty"`
	Box     []float64 `yaml:"box,flow,omitempty"` // minx, miny, maxx, maxy
	Mobj    int       `yaml:"mobj,omitempty"`
	Radius  float64   `yaml:"radius,omitempty"`
}

type InterceptResult struct {
	Kind    string  `json:"kind"`
	ID      int     `json:"id"`
	Frac    float64 `json:"frac"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Polyobj bool    `json:"polyobj,omitempty"`
}

type ProbeResult struct {
	Probe      int               `json:"probe"`
	Kind       string            `json:"kind"`
	Intercepts []InterceptResult `json:"intercepts,omitempty"`
	Lines      []int             `json:"lines,omitempty"`
	Mobjs      []int             `json:"mobjs,omitempty"`
	Visible    *bool             `json:"visible,omitempty"`
	LineCount  *int              `json:"line_count,omitempty"` // lines the moved mobj touches
	Error      string            `json:"error,omitempty"`
}

func ReadProbes(r io.Reader) ([]Probe, error) {
	var pf ProbeFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil {
		return nil, errors.New("couldn't decode probes").
			WithType(ErrTypeBadProbe).
			Wrap(err)
	}
	return pf.Probes, nil
}

func interceptResult(in *spatial.Intercept, tc *spatial.TraceContext) InterceptResult {
	p := tc.PointAt(in.Frac)
	res := InterceptResult{
		Kind: in.Kind.String(),
		Frac: in.Frac,
		X:    p.X,
		Y:    p.Y,
	}
	if in.Kind == spatial.INTERCEPT_LINE {
		res.ID = in.Line.ID
		res.Polyobj = in.Line.Polyobj != nil
	} else {
		res.ID = in.Mobj.ID
	}
	return res
}

// TraceIntercepts runs a trace and collects every intercept it delivers
func (w *World) TraceIntercepts(from, to spatial.Vec2, flags spatial.TraceFlags) []InterceptResult {
	var res []InterceptResult
	w.Map.Trace(from, to, flags, func(in *spatial.Intercept, tc *spatial.TraceContext) bool {
		res = append(res, interceptResult(in, tc))
		return false
	})
	return res
}

// RunProbes runs the probes in order; moves affect the probes that follow.
// A malformed probe yields a result carrying the error, the rest still run
func RunProbes(w *World, probes []Probe) []ProbeResult {
	results := make([]ProbeResult, 0, len(probes))
	for i, p := range probes {
		res := ProbeResult{Probe: i, Kind: p.Kind}
		if err := w.runProbe(&p, &res); err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results
}

func (w *World) runProbe(p *Probe, res *ProbeResult) error {
	from, to := p.From.Vec2(), p.To.Vec2()
	switch p.Kind {
	case PROBE_TRACE, PROBE_FIRST:
		flags := spatial.TraceAll
		if p.Collect != "" {
			var ok bool
			flags, ok = traceFlagsFromLetters(p.Collect)
			if !ok {
				return errors.New("unknown letters in collect").
					WithType(ErrTypeBadProbe).
					WithTag("collect", p.Collect)
			}
		}
		if p.Kind == PROBE_TRACE {
			res.Intercepts = w.TraceIntercepts(from, to, flags)
			return nil
		}
		w.Map.Trace(from, to, flags|spatial.TraceStopAtDestination,
			func(in *spatial.Intercept, tc *spatial.TraceContext) bool {
				res.Intercepts = append(res.Intercepts, interceptResult(in, tc))
				return true
			})
	case PROBE_SIGHT:
		visible := w.Map.CheckLineOfSight(from, to)
		res.Visible = &visible
	case PROBE_BOX:
		if len(p.Box) != 4 {
			return errors.New("box needs four numbers: minx, miny, maxx, maxy").
				WithType(ErrTypeBadProbe)
		}
		box := spatial.AABox{MinX: p.Box[0], MinY: p.Box[1], MaxX: p.Box[2], MaxY: p.Box[3]}
		w.Map.BoxLines(box, func(l *spatial.Line) bool {
			res.Lines = append(res.Lines, l.ID)
			return false
		})
		w.Map.BoxMobjs(box, func(mo *spatial.Mobj) bool {
			res.Mobjs = append(res.Mobjs, mo.ID)
			return false
		})
	case PROBE_MOVE:
		mo := w.Mobj(p.Mobj)
		if mo == nil {
			return errors.New("no such mobj").
				WithType(ErrTypeBadProbe).
				WithTag("mobj", p.Mobj)
		}
		radius := mo.Radius
		if p.Radius > 0 {
			radius = p.Radius
		}
		if err := w.Map.MoveMobj(mo, to, radius); err != nil {
			return err
		}
		w.Map.MobjLines(mo, func(l *spatial.Line) bool {
			res.Lines = append(res.Lines, l.ID)
			return false
		})
		n := mo.LineCount()
		res.LineCount = &n
	default:
		return errors.New("unknown probe kind").
			WithType(ErrTypeBadProbe).
			WithTag("kind", p.Kind)
	}
	return nil
}

// PrintResults writes results as indented JSON or as plain text
func PrintResults(out io.Writer, results []ProbeResult, asJSON bool) error {
	if asJSON {
		b, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", b)
		return err
	}
	for _, res := range results {
		if res.Error != "" {
			fmt.Fprintf(out, "probe %d %s: error: %s\n", res.Probe, res.Kind, res.Error)
			continue
		}
		switch res.Kind {
		case PROBE_TRACE, PROBE_FIRST:
			fmt.Fprintf(out, "probe %d %s: %d intercepts\n", res.Probe, res.Kind, len(res.Intercepts))
			for _, in := range res.Intercepts {
				po := ""
				if in.Polyobj {
					po = " (polyobj)"
				}
				fmt.Fprintf(out, "  %s %d%s at %.4f (%.2f,%.2f)\n", in.Kind, in.ID, po, in.Frac, in.X, in.Y)
			}
		case PROBE_SIGHT:
			fmt.Fprintf(out, "probe %d %s: visible=%v\n", res.Probe, res.Kind, *res.Visible)
		case PROBE_BOX:
			fmt.Fprintf(out, "probe %d %s: lines %v mobjs %v\n", res.Probe, res.Kind, res.Lines, res.Mobjs)
		case PROBE_MOVE:
			fmt.Fprintf(out, "probe %d %s: touches %d lines %v\n", res.Probe, res.Kind, *res.LineCount, res.Lines)
		}
	}
	return nil
}
