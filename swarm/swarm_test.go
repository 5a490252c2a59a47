package swarm

import (
	"errors"
	"math"
	"testing"

	"dispersion/maze"
	"dispersion/scenario"
)

// runUntilDone ticks the swarm until discovery or the step cap.
func runUntilDone(t *testing.T, m *maze.Maze, s *Swarm, maxSteps int) bool {
	t.Helper()
	for i := 0; i < maxSteps; i++ {
		if s.RandStepUpdate(m) {
			return true
		}
	}
	return false
}

func TestSingleRobotFindsAdjacentSurvivor(t *testing.T) {
	// Empty 2x2 m room, survivor 0.283 m from the source: the first robot
	// settles at the source and senses it the same tick it activates.
	m := maze.New(2, 2, 0.5)
	m.AddSurvivor(1.2, 1.2)

	s := New(0.01, 0, 42)
	source := maze.Point{X: 1.0, Y: 1.0}
	if err := s.AddRobotBatch(1, source); err != nil {
		t.Fatal(err)
	}

	if !runUntilDone(t, m, s, 100000) {
		t.Fatal("survivor never found")
	}
	if s.SourceID() != 1 {
		t.Errorf("source id = %d, want 1", s.SourceID())
	}
	if s.CountFirstActivated() != 1 {
		t.Errorf("activated = %d, want 1", s.CountFirstActivated())
	}
	if s.Time() <= 0 {
		t.Errorf("discovery time = %v, want > 0", s.Time())
	}

	path, err := s.PathToSurvivor(m)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if len(path) != 1 {
		t.Fatalf("path length = %d, want 1", len(path))
	}
	if math.Abs(path[0].X-1.0) > maze.Epsilon || math.Abs(path[0].Y-1.0) > maze.Epsilon {
		t.Errorf("path[0] = %v, want the source", path[0])
	}

	// Done swarms refuse new robots and report done forever.
	if err := s.AddRobotBatch(1, source); !errors.Is(err, ErrSwarmDone) {
		t.Errorf("add after done: err = %v, want ErrSwarmDone", err)
	}
	if !s.RandStepUpdate(m) {
		t.Error("step after done reported continuing")
	}
}

func TestPropagationStampsReverseHops(t *testing.T) {
	m := maze.New(3, 3, 0.5)
	m.AddSurvivor(1.1, 0.25) // sensed by the chain tip only

	source := maze.Point{X: 0.25, Y: 0.25}
	s := New(0.01, 0, 1)
	if err := s.AddRobotBatch(2, source); err != nil {
		t.Fatal(err)
	}
	s.sourceID = 1
	plantSettled(t, m, s.robots[0], source, maze.DirNone)
	plantSettled(t, m, s.robots[1], maze.Point{X: 0.75, Y: 0.25}, maze.DirLeft)

	if !s.RandStepUpdate(m) {
		t.Fatal("discovery did not complete")
	}

	// The upstream robot's hop is the reverse of the sender's direction.
	if got := s.robots[0].nextInPath; got != maze.DirRight {
		t.Errorf("source nextInPath = %v, want DirRight", got)
	}
	if !s.robots[0].findSurv || !s.robots[1].findSurv {
		t.Error("chain members missing the found flag")
	}
	if got := s.robots[1].nextInPath; got != maze.DirNone {
		t.Errorf("sensor nextInPath = %v, want DirNone", got)
	}

	path, err := s.PathToSurvivor(m)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("path length = %d, want 2", len(path))
	}
	// Consecutive path points are neighbouring cells.
	if d := maze.Dist(path[0], path[1]); d > math.Sqrt2*0.5+maze.Epsilon {
		t.Errorf("path hop distance = %v, want <= sqrt(2)*g", d)
	}
}

func TestCrashedLinkBreaksPropagation(t *testing.T) {
	m := maze.New(3, 3, 0.5)
	m.AddSurvivor(1.6, 0.25) // sensed only by the chain tip

	source := maze.Point{X: 0.25, Y: 0.25}
	s := New(0.01, 0, 1)
	if err := s.AddRobotBatch(3, source); err != nil {
		t.Fatal(err)
	}
	s.sourceID = 1
	plantSettled(t, m, s.robots[0], source, maze.DirNone)
	plantSettled(t, m, s.robots[1], maze.Point{X: 0.75, Y: 0.25}, maze.DirLeft)
	plantSettled(t, m, s.robots[2], maze.Point{X: 1.25, Y: 0.25}, maze.DirLeft)

	// Kill the mid-chain link. Settled robots never crash in the lottery,
	// so demote it first, as if it had been rebuilt into a rover.
	s.robots[1].status = StatusResting
	s.robots[1].crash(m)

	// The tip senses the survivor but the signal cannot reach the source.
	if s.RandStepUpdate(m) {
		t.Fatal("discovery completed across a crashed link")
	}
	if !s.robots[2].findSurv {
		t.Error("chain tip did not flag the survivor")
	}
	if s.robots[0].findSurv {
		t.Error("found flag crossed the crashed link")
	}

	// Forcing reconstruction from the source flags the break instead of
	// silently truncating.
	s.survivorFound = true
	if _, err := s.PathToSurvivor(m); !errors.Is(err, ErrBrokenPath) {
		t.Errorf("err = %v, want ErrBrokenPath", err)
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() (*Swarm, *maze.Maze) {
		sc, m := scenario.Small()
		s := New(0.01, 0, 7)
		s.SetCrashRate(0.05)
		if err := s.AddRobotBatch(100, sc.Source); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 4000; i++ {
			if s.RandStepUpdate(m) {
				break
			}
		}
		return s, m
	}

	a, _ := run()
	b, _ := run()

	if a.Time() != b.Time() {
		t.Errorf("final t differs: %v vs %v", a.Time(), b.Time())
	}
	if a.CountFirstActivated() != b.CountFirstActivated() {
		t.Errorf("activated differs: %d vs %d", a.CountFirstActivated(), b.CountFirstActivated())
	}
	if a.CountCrashed() != b.CountCrashed() {
		t.Errorf("crashed differs: %d vs %d", a.CountCrashed(), b.CountCrashed())
	}
	for i := range a.robots {
		if a.robots[i].location != b.robots[i].location {
			t.Fatalf("robot %d location differs: %v vs %v", i+1, a.robots[i].location, b.robots[i].location)
		}
		if a.robots[i].status != b.robots[i].status {
			t.Fatalf("robot %d status differs: %v vs %v", i+1, a.robots[i].status, b.robots[i].status)
		}
	}
}

func TestAddRobotBatchRefusesOversize(t *testing.T) {
	s := New(0.01, 0, 1)
	if err := s.AddRobotBatch(maze.MaxRobots+1, maze.Point{X: 1, Y: 1}); !errors.Is(err, ErrTooManyRobots) {
		t.Fatalf("err = %v, want ErrTooManyRobots", err)
	}
	if s.Num() != 0 {
		t.Errorf("robots added despite refusal: %d", s.Num())
	}

	// Two batches may not cross the cap together either.
	if err := s.AddRobotBatch(maze.MaxRobots, maze.Point{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddRobotBatch(1, maze.Point{X: 1, Y: 1}); !errors.Is(err, ErrTooManyRobots) {
		t.Errorf("err = %v, want ErrTooManyRobots", err)
	}
}

func TestDispersionFormsAChain(t *testing.T) {
	// No survivor: robots keep entering and settling outward. After a
	// while the chain has grown and every settled robot besides the source
	// faces a compass direction.
	m := maze.New(3, 3, 0.5)
	s := New(0.01, 0, 11)
	source := maze.Point{X: 1.25, Y: 1.25}
	if err := s.AddRobotBatch(10, source); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 60000; i++ {
		s.RandStepUpdate(m)
	}
	if s.CountSettled() < 2 {
		t.Fatalf("settled = %d, want at least the source and one link", s.CountSettled())
	}
	for _, r := range s.robots {
		if r.status != StatusSettled || r.id == s.sourceID {
			continue
		}
		if r.direction == maze.DirNone {
			t.Errorf("settled robot %d has no direction", r.id)
		}
	}
}
