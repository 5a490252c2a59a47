// Package scenario ships the two benchmark worlds the simulator is tuned
// on: a small 7x8 m maze and the large 10x15 m maze. Both are plain
// sequences of calls on the maze construction API.
package scenario

import (
	"fmt"

	"dispersion/maze"
)

// Scenario holds the parameters that go with a built maze: its size, the
// source point and the robot count. The maze itself is returned beside it.
type Scenario struct {
	Name   string
	Height float64
	Width  float64
	Source maze.Point
	Robots int
}

// ByName returns the named benchmark scenario.
func ByName(name string) (Scenario, *maze.Maze, error) {
	switch name {
	case "small":
		sc, m := Small()
		return sc, m, nil
	case "large":
		sc, m := Large()
		return sc, m, nil
	}
	return Scenario{}, nil, fmt.Errorf("unknown scenario %q", name)
}

// Small builds the 7x8 m maze with 1500 robots entering at (5.25, 3.75)
// and a single survivor at (1.2, 1.937).
func Small() (Scenario, *maze.Maze) {
	m := maze.New(8, 7, 0.5)

	m.AddRect(0.0, 0.0, 0.1, 8.0)
	m.AddRect(0.0, 0.0, 7.0, 0.1)
	m.AddRect(0.0, 7.9, 7.0, 8.0)
	m.AddRect(6.9, 0.0, 7.0, 8.0)
	m.AddRect(4.6, 3.1, 6.6, 3.45)
	m.AddRect(4.6, 3.1, 4.95, 5.4)
	m.AddRect(4.6, 5.05, 6.6, 5.4)
	m.AddRect(6.25, 3.1, 6.6, 4.0)
	m.AddRect(6.25, 4.5, 6.6, 5.4)
	m.AddRect(3.2, 0.0, 3.4, 1.1)
	m.AddRect(3.2, 1.6, 3.4, 2.1)
	m.AddRect(0.7, 3.65, 4.6, 3.8)
	m.AddRect(0.7, 1.6, 0.85, 3.8)
	m.AddRect(0.7, 1.6, 2.6, 1.75)
	m.AddRect(2.9, 1.6, 3.2, 1.75)
	m.AddRect(1.6, 1.6, 1.75, 3.1)
	m.AddRect(0.0, 0.6, 0.6, 0.75)
	m.AddRect(0.0, 4.6, 1.0, 4.8)
	m.AddRect(3.1, 5.25, 4.6, 5.4)
	m.AddRect(3.1, 4.4, 3.25, 5.4)
	m.AddRect(3.1, 3.75, 3.24, 4.1)
	m.AddRect(2.2, 3.7, 2.35, 5.14)
	m.AddRect(4.6, 0.0, 4.75, 1.8)
	m.AddRect(5.4, 1.65, 7.0, 1.8)
	m.AddRect(5.55, 0.4, 5.7, 1.8)
	m.AddRect(5.4, 0.4, 6.3, 0.7)
	m.AddRect(6.06, 1.8, 6.21, 2.64)
	m.AddRect(5.08, 2.36, 5.23, 3.2)

	m.AddTriangle(4.6, 5.4, 4.85, 5.4, 3.1, 8.0)
	m.AddTriangle(4.85, 5.4, 3.1, 8.0, 3.3, 8.0)
	m.AddTriangle(3.2, 2.1, 3.4, 2.1, 4.6, 3.1)
	m.AddTriangle(3.2, 2.1, 4.6, 3.1, 4.6, 3.5)
	m.AddTriangle(0.7, 1.6, 2.6, 1.6, 1.8, 0.4)
	m.AddTriangle(3.2, 1.1, 3.2, 0.0, 2.3, 0.0)
	m.AddTriangle(2.7, 6.7, 2.9, 6.7, 1.0, 4.8)
	m.AddTriangle(2.7, 6.7, 0.8, 4.8, 1.0, 4.8)
	m.AddTriangle(2.7, 6.7, 2.9, 6.7, 2.8, 6.83)
	m.AddTriangle(1.0, 4.6, 1.0, 4.8, 1.25, 5.2)
	m.AddTriangle(0.0, 7.9, 3.1, 7.9, 1.9, 7.3)
	m.AddTriangle(6.196, 6.1, 6.446, 6.1, 5.1, 8.0)
	m.AddTriangle(6.446, 6.1, 5.1, 8.0, 5.3, 8.0)
	m.AddTriangle(4.71, 7.1, 5.1, 7.24, 5.5, 6.1)
	m.AddTriangle(5.35, 6.3, 5.5, 6.3, 5.5, 6.1)
	m.AddTriangle(0.1, 7.9, 1.3, 7.9, 1.2, 7.31)

	m.AddCircle(0.9, 6.1, 0.5)

	m.AddSurvivor(1.2, 1.937)

	return Scenario{
		Name:   "small",
		Height: 8,
		Width:  7,
		Source: maze.Point{X: 5.25, Y: 3.75},
		Robots: 1500,
	}, m
}

// Large builds the 10x15 m maze with 3000 robots entering at (0.25, 13.75)
// and a single survivor at (9.61, 6.8).
func Large() (Scenario, *maze.Maze) {
	m := maze.New(15, 10, 0.5)

	m.AddRect(0.0, 0.0, 0.15, 12.5)
	m.AddRect(0.0, 0.0, 10.0, 0.1)
	m.AddRect(9.85, 0.0, 10.0, 15.0)
	m.AddRect(0.0, 14.9, 10.0, 15.0)
	m.AddRect(1.25, 0.0, 1.6, 2.5)
	m.AddRect(1.25, 2.15, 2.3, 2.5)
	m.AddRect(3.0, 2.15, 3.75, 2.5)
	m.AddRect(3.4, 0.0, 3.75, 2.5)
	m.AddRect(0.0, 3.15, 3.75, 3.5)
	m.AddRect(0.0, 8.5, 3.75, 8.85)
	m.AddRect(0.0, 12.15, 3.75, 12.5)
	m.AddRect(3.4, 8.5, 3.75, 11.0)
	m.AddRect(3.4, 11.5, 3.75, 12.5)
	m.AddRect(3.4, 3.15, 3.75, 6.0)
	m.AddRect(3.4, 6.5, 3.75, 8.5)
	m.AddRect(4.75, 11.53, 10, 11.88)
	m.AddRect(4.75, 8.9, 8.0, 9.25)
	m.AddRect(8.5, 8.9, 10.0, 9.25)
	m.AddRect(4.75, 8.9, 5.1, 10.5)
	m.AddRect(4.75, 11.0, 5.1, 11.88)
	m.AddRect(6.75, 8.9, 7.1, 9.5)
	m.AddRect(6.75, 10.0, 7.1, 11.88)
	m.AddRect(7.4, 6.4, 7.75, 6.75)
	m.AddRect(7.4, 6.4, 7.75, 8.9)
	m.AddRect(7.4, 6.4, 10.0, 6.75)
	m.AddRect(7.4, 7.55, 8.5, 7.9)
	m.AddRect(9.0, 7.55, 10.0, 7.9)
	m.AddRect(8.5, 4.5, 10.0, 4.85)
	m.AddRect(0.0, 5.0, 2.9, 5.2)
	m.AddRect(4.9, 0.0, 5.25, 2.0)

	m.AddCircle(1.25, 4.0, 0.4)
	m.AddCircle(1.25, 5.9, 0.4)
	m.AddCircle(1.25, 7.8, 0.4)
	m.AddCircle(1.25, 9.7, 0.4)
	m.AddCircle(1.25, 11.6, 0.4)
	m.AddCircle(5.6, 2.0, 0.7)
	m.AddCircle(7.55, 2.0, 0.7)

	m.AddTriangle(7.1, 9.25, 8.0, 9.25, 8.0, 10.0)
	m.AddTriangle(2.7, 13.1, 6.3, 14.0, 5.0, 14.4)
	m.AddTriangle(2.7, 13.1, 1.9, 14.2, 4.25, 14.0)
	m.AddTriangle(6.6, 3.7, 9.55, 4.6, 5.9, 6.4)
	m.AddTriangle(7.1, 15.0, 7.3, 15.0, 8.4, 12.6)
	m.AddTriangle(8.4, 12.6, 8.6, 12.8, 7.3, 15.0)
	m.AddTriangle(5.5, 11.88, 5.7, 11.88, 6.6, 13.66)
	m.AddTriangle(6.6, 13.66, 6.8, 13.77, 5.7, 11.88)
	m.AddTriangle(7.2, 2.4, 10.0, 0.0, 10.0, 3.54)
	m.AddTriangle(7.6, 1.5, 10.0, 2.5, 10.0, 0.0)
	m.AddTriangle(7.1, 9.5, 7.1, 9.0, 8.0, 10.0)
	m.AddTriangle(4.75, 4.37, 5.25, 4.37, 6.6, 6.6)
	m.AddTriangle(6.4, 4.9, 6.7, 6.4, 6.6, 6.6)
	m.AddTriangle(6.6, 6.6, 6.6, 6.0, 6.2, 6.0)
	m.AddTriangle(6.25, 6.25, 5.4, 8.0, 5.6, 8.0)
	m.AddTriangle(6.4, 6.25, 6.6, 6.6, 5.6, 8.0)
	m.AddTriangle(6.25, 6.25, 6.5, 6.25, 5.6, 7.9)

	m.AddSurvivor(9.61, 6.8)

	return Scenario{
		Name:   "large",
		Height: 15,
		Width:  10,
		Source: maze.Point{X: 0.25, Y: 13.75},
		Robots: 3000,
	}, m
}
