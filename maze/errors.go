package maze

import "errors"

var (
	// ErrOutOfMap indicates a mark targeted a cell outside the grid.
	ErrOutOfMap = errors.New("target cell is outside the map")
	// ErrCellFull indicates a mark targeted a cell already holding two robots.
	ErrCellFull = errors.New("target cell already holds two robots")
	// ErrNoSettledNeighbor indicates the inspected cell holds no settled robot.
	ErrNoSettledNeighbor = errors.New("no settled robot in the inspected cell")
)
