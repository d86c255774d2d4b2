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

// view
package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/vigilantdoomer/vigilantwalk/spatial"
)

var (
	styleEmpty = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLines = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMobjs = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePath  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBar   = tcell.StyleDefault.Reverse(true)
)

type cellKey struct {
	cx, cy int
}

// Viewer draws the line blockmap of a world in the terminal, one character
// per zoom x zoom block of cells, with north up. Digits count the lines
// referenced by the block, 'o' marks blocks holding mobjs and '*' the cells
// walked by the requested traces
type Viewer struct {
	screen tcell.Screen
	world  *World
	path   map[cellKey]bool
	offX   int // cell drawn at the bottom left corner
	offY   int
	zoom   int
}

func NewViewer(screen tcell.Screen, w *World, traces []TraceRequest) *Viewer {
	v := &Viewer{
		screen: screen,
		world:  w,
		path:   make(map[cellKey]bool),
		zoom:   1,
	}
	bm := w.Map.Lines()
	bounds := bm.Bounds()
	for _, tr := range traces {
		from := clampToBox(tr.From, bounds)
		to := clampToBox(tr.To, bounds)
		bm.IteratePath(from, to, 0, func(cx, cy int) bool {
			v.path[cellKey{cx, cy}] = true
			return false
		})
	}
	v.Fit()
	return v
}

func clampToBox(p spatial.Vec2, box spatial.AABox) spatial.Vec2 {
	return spatial.Vec2{
		X: math.Max(box.MinX, math.Min(box.MaxX, p.X)),
		Y: math.Max(box.MinY, math.Min(box.MaxY, p.Y)),
	}
}

// Fit picks the smallest zoom at which the whole blockmap is on screen
func (v *Viewer) Fit() {
	sw, sh := v.screen.Size()
	rows := sh - 1
	if sw < 1 || rows < 1 {
		v.zoom = 1
		return
	}
	bm := v.world.Map.Lines()
	zx := (bm.Width() + sw - 1) / sw
	zy := (bm.Height() + rows - 1) / rows
	v.zoom = 1
	for v.zoom < zx || v.zoom < zy {
		v.zoom *= 2
	}
	v.offX = 0
	v.offY = 0
}

func (v *Viewer) Zoom() int {
	return v.zoom
}

func (v *Viewer) glyph(cx0, cy0 int) (rune, tcell.Style) {
	bm := v.world.Map.Lines()
	if cx0 >= bm.Width() || cy0 >= bm.Height() || cx0 < 0 || cy0 < 0 {
		return ' ', tcell.StyleDefault
	}
	lines, mobjs := 0, 0
	onPath := false
	for cy := cy0; cy < cy0+v.zoom; cy++ {
		for cx := cx0; cx < cx0+v.zoom; cx++ {
			lines += bm.CellLen(cx, cy)
			mobjs += v.world.Map.Mobjs().CellLen(cx, cy)
			if v.path[cellKey{cx, cy}] {
				onPath = true
			}
		}
	}
	switch {
	case onPath:
		return '*', stylePath
	case mobjs > 0:
		return 'o', styleMobjs
	case lines > 9:
		return '#', styleLines
	case lines > 0:
		return rune('0' + lines), styleLines
	}
	return '.', styleEmpty
}

// Draw renders the blockmap and the status bar
func (v *Viewer) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	rows := sh - 1
	for row := 0; row < rows; row++ {
		for col := 0; col < sw; col++ {
			cx := v.offX + col*v.zoom
			cy := v.offY + (rows-1-row)*v.zoom
			ch, style := v.glyph(cx, cy)
			v.screen.SetContent(col, row, ch, nil, style)
		}
	}
	bm := v.world.Map.Lines()
	status := fmt.Sprintf(" %s %dx%d cells, zoom %d, at (%d,%d)  arrows pan, +/- zoom, q quit ",
		v.world.Name, bm.Width(), bm.Height(), v.zoom, v.offX, v.offY)
	col := 0
	for _, r := range status {
		if col >= sw {
			break
		}
		v.screen.SetContent(col, rows, r, nil, styleBar)
		col++
	}
	v.screen.Show()
}

// HandleEvent applies a key press or resize. Returns false when the viewer
// should close
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.offX -= v.zoom
		case tcell.KeyRight:
			v.offX += v.zoom
		case tcell.KeyUp:
			v.offY += v.zoom
		case tcell.KeyDown:
			v.offY -= v.zoom
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '+':
				if v.zoom > 1 {
					v.zoom /= 2
				}
			case '-':
				v.zoom *= 2
			case 'f':
				v.Fit()
			}
		}
		if v.offX < 0 {
			v.offX = 0
		}
		if v.offY < 0 {
			v.offY = 0
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Run draws and handles events until the user quits
func (v *Viewer) Run() {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if !v.HandleEvent(ev) {
			return
		}
		v.Draw()
	}
}

// RunViewer opens the terminal, shows the world and restores the terminal
// on exit
func RunViewer(w *World, traces []TraceRequest) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	NewViewer(screen, w, traces).Run()
	return nil
}
