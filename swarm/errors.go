package swarm

import "errors"

var (
	// ErrTooManyRobots indicates a batch would push the swarm past MaxRobots.
	ErrTooManyRobots = errors.New("cannot add, too many robots")
	// ErrSwarmDone indicates robots were added after the survivor was found.
	ErrSwarmDone = errors.New("swarm is done, cannot add robots")
	// ErrBrokenPath indicates path reconstruction died mid-chain, e.g. at a
	// crashed link.
	ErrBrokenPath = errors.New("settled chain is broken")
	// ErrUnknownRobot indicates an id outside the swarm's robot list.
	ErrUnknownRobot = errors.New("unknown robot id")
)
