// Package view renders the simulation for a human observer. It is
// strictly read-only over the maze and swarm getters: the GUI steps the
// swarm between frames and draws walls, robots, survivors and, once
// discovery completes, the reconstructed path.
package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"dispersion/maze"
	"dispersion/swarm"
)

const pixelsPerMeter = 60 // increase for better visibility

var (
	colBg       = color.RGBA{245, 245, 240, 255} // paper
	colWall     = color.RGBA{130, 130, 130, 255} // obstacle grey
	colSource   = color.RGBA{140, 20, 20, 255}   // deep red entry square
	colSurvivor = color.RGBA{200, 30, 30, 255}
	colRoaming  = color.RGBA{40, 40, 40, 255}
	colSettled  = color.RGBA{120, 180, 235, 255} // light blue chain member
	colPath     = color.RGBA{200, 30, 30, 255}
)

// Game drives the simulation under the ebiten loop.
type Game struct {
	m             *maze.Maze
	s             *swarm.Swarm
	source        maze.Point
	stepsPerFrame int
	rec           *Recorder
	done          bool
}

// NewGame wraps a maze and swarm for interactive display. stepsPerFrame
// controls the simulation speed; rec may be nil.
func NewGame(m *maze.Maze, s *swarm.Swarm, source maze.Point, stepsPerFrame int, rec *Recorder) *Game {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return &Game{m: m, s: s, source: source, stepsPerFrame: stepsPerFrame, rec: rec}
}

// Update advances the simulation a few ticks per frame.
func (g *Game) Update() error {
	if g.done {
		return nil
	}
	for i := 0; i < g.stepsPerFrame; i++ {
		if g.s.RandStepUpdate(g.m) {
			g.done = true
			break
		}
	}
	if g.rec != nil {
		if err := g.rec.Capture(g.m, g.s, g.source); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the current world state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)
	paint(g.m, g.s, g.source, screen.Set)
}

// Layout reports the logical screen size in pixels.
func (g *Game) Layout(outW, outH int) (int, int) {
	return int(g.m.Width() * pixelsPerMeter), int(g.m.Height() * pixelsPerMeter)
}

// Run opens the window and hands control to ebiten.
func Run(g *Game) error {
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(fmt.Sprintf(
		"dispersion | %gx%g m | robots=%d", g.m.Width(), g.m.Height(), g.s.Num()))
	return ebiten.RunGame(g)
}

// paint draws the world through a pixel setter, so the GUI and the frame
// recorder share one renderer. World y points up; pixel y points down.
func paint(m *maze.Maze, s *swarm.Swarm, source maze.Point, set func(x, y int, c color.Color)) {
	heightPx := int(m.Height() * pixelsPerMeter)
	cellPx := int(m.GridLength() * pixelsPerMeter)

	block := func(px, py, half int, c color.Color) {
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				set(px+dx, py+dy, c)
			}
		}
	}
	atMeters := func(p maze.Point) (int, int) {
		return int(p.X * pixelsPerMeter), heightPx - 1 - int(p.Y*pixelsPerMeter)
	}

	// Wall cells.
	for _, c := range m.Walls() {
		x0 := c.I * cellPx
		y0 := heightPx - (c.J+1)*cellPx
		for dy := 0; dy < cellPx; dy++ {
			for dx := 0; dx < cellPx; dx++ {
				set(x0+dx, y0+dy, colWall)
			}
		}
	}

	// Source entry square.
	px, py := atMeters(source)
	block(px, py, 4, colSource)

	// Robots: settled chain members are filled light blue, all other robots
	// that have entered (roaming or crashed) dark.
	for id := 1; id <= s.Num(); id++ {
		if !s.ActivatedOnce(id) {
			continue
		}
		loc, _ := s.Geometry(id)
		px, py := atMeters(loc)
		if r, _ := s.Robot(id); r.Status() == swarm.StatusSettled {
			block(px, py, 2, colSettled)
		} else {
			block(px, py, 2, colRoaming)
		}
	}

	// Survivors.
	for _, p := range m.Survivors() {
		px, py := atMeters(p)
		block(px, py, 4, colSurvivor)
	}

	// Discovered path.
	if path, err := s.PathToSurvivor(m); err == nil {
		for _, p := range path {
			px, py := atMeters(p)
			block(px, py, 1, colPath)
		}
	}
}
