package swarm

import (
	"log"
	"math"
	"math/rand"

	"dispersion/maze"
)

// DefaultStepLength is the simulation tick in seconds.
const DefaultStepLength = 0.01

// crashPeriodSeconds is how much simulated time passes between crash
// lottery rounds.
const crashPeriodSeconds = 30.0

// Swarm holds the robot list and drives the lockstep simulation. Robot
// ids are 1-based on the public surface and 0-based internally.
type Swarm struct {
	robots         []*Robot
	survivorFound  bool
	lastHasEntered int // cursor over never-entered robots
	stepLength     float64
	t              float64
	stepCount      int
	sourceID       int // id of the settled source-of-chain robot, -1 until known
	stepPerCrash   int
	activationRate float64
	crashRate      float64
	activationRNG  *rand.Rand
	crashRNG       *rand.Rand
}

// New creates an empty swarm. A non-positive stepLength selects the
// default 0.01 s tick. The seed feeds two independent streams (activation
// and crash draws) so runs replay deterministically.
func New(stepLength, startTime float64, seed int64) *Swarm {
	if stepLength <= 0 {
		stepLength = DefaultStepLength
	}
	return &Swarm{
		stepLength:     stepLength,
		t:              startTime,
		sourceID:       -1,
		stepPerCrash:   int(math.Round(crashPeriodSeconds / stepLength)),
		activationRate: 1.0,
		activationRNG:  rand.New(rand.NewSource(seed)),
		crashRNG:       rand.New(rand.NewSource(seed + 1)),
	}
}

// SetCrashRate applies a per-robot crash probability, drawn once per crash
// round. Rates at or below 0.002 disable crashing.
func (s *Swarm) SetCrashRate(rate float64) {
	s.crashRate = rate
	for _, r := range s.robots {
		r.crashRate = rate
	}
}

// AddRobot appends one robot. Additions are refused once the survivor has
// been found.
func (s *Swarm) AddRobot(r *Robot) error {
	if s.survivorFound {
		return ErrSwarmDone
	}
	s.robots = append(s.robots, r)
	return nil
}

// AddRobotBatch creates n robots at the sentinel location, all referencing
// the same source point. The whole batch is refused if it would push the
// swarm past MaxRobots.
func (s *Swarm) AddRobotBatch(n int, source maze.Point) error {
	if len(s.robots)+n > maze.MaxRobots {
		return ErrTooManyRobots
	}
	for i := 0; i < n; i++ {
		r := newRobot(len(s.robots)+1, source, maze.DefaultGridLength, s.stepLength)
		r.crashRate = s.crashRate
		if err := s.AddRobot(r); err != nil {
			return err
		}
	}
	return nil
}

// RandStepUpdate advances the simulation by one tick: sample activations,
// then tick every robot in ascending id order (crash lottery on crash
// ticks, motion, survivor sensing). It reports true once the survivor
// discovery has propagated back to the source.
func (s *Swarm) RandStepUpdate(m *maze.Maze) bool {
	if s.survivorFound {
		return true
	}
	s.t += s.stepLength
	s.stepCount++
	s.randActivation(m)
	crashTick := s.stepCount%s.stepPerCrash == 0
	for _, r := range s.robots {
		if crashTick {
			r.crashWithProb(m, s.crashRNG)
		}
		r.contMove(m, s)
		if s.searchSurvivor(m, r) {
			s.survivorFound = true
			log.Printf("swarm: dispersion ends at %g s", s.t)
			return true
		}
	}
	return false
}

// randActivation thins a Poisson process at the tick interval: each robot
// draws an exponential waiting time and is a candidate when the draw falls
// inside the tick. Robots that have entered the maze before may re-enter
// the lottery freely; a never-entered robot is admitted only when the
// entry cursor points at it, which serializes first entries in id order.
func (s *Swarm) randActivation(m *maze.Maze) {
	for i, r := range s.robots {
		x := s.activationRNG.ExpFloat64() / s.activationRate
		if x >= s.stepLength {
			continue
		}
		if r.firstActivated {
			r.activate(m)
			continue
		}
		if s.lastHasEntered != i {
			continue
		}
		if id := r.activate(m); id != 0 {
			s.sourceID = id
		}
		if r.firstActivated {
			s.lastHasEntered++
		}
	}
}

// searchSurvivor runs survivor sensing for one settled robot and, on a
// hit, propagates the discovery back along the chain. It reports true
// when the propagation reached the source.
func (s *Swarm) searchSurvivor(m *maze.Maze, r *Robot) bool {
	if r.status != StatusSettled {
		return false
	}
	if !m.RobotInquirySurvivor(r.location, r.sensorRange) {
		return false
	}
	r.findSurv = true
	return s.propagate(m, r)
}

// propagate walks the settled chain from the sensing robot back toward
// the source, stamping on each upstream link the direction the signal
// came in from. The walk is iterative: chains can span thousands of
// robots in a large maze. A broken chain (crashed link) stops the walk
// and leaves the simulation running.
func (s *Swarm) propagate(m *maze.Maze, sensor *Robot) bool {
	cur := sensor
	for hops := 0; hops <= len(s.robots); hops++ {
		if maze.Dist(cur.location, cur.source) < maze.Epsilon {
			log.Printf("swarm: survivor info has reached the source")
			return true
		}
		nextID, err := m.SettledNeighborID(cur.location, cur.direction)
		if err != nil {
			log.Printf("swarm: propagation stopped at robot %d: %v", cur.id, err)
			return false
		}
		next := s.robots[nextID-1]
		next.findSurv = true
		next.nextInPath = cur.direction.Opposite()
		cur = next
	}
	log.Printf("swarm: propagation from robot %d did not terminate", sensor.id)
	return false
}

// PathToSurvivor reconstructs the discovered path by walking the stamped
// hops forward from the source robot. It returns nil before discovery,
// and the partial path with ErrBrokenPath when the walk dies mid-chain.
func (s *Swarm) PathToSurvivor(m *maze.Maze) ([]maze.Point, error) {
	if !s.survivorFound {
		return nil, nil
	}
	if s.sourceID < 1 || s.sourceID > len(s.robots) {
		return nil, ErrBrokenPath
	}
	r := s.robots[s.sourceID-1]
	path := []maze.Point{r.location}
	for r.nextInPath != maze.DirNone {
		id, err := m.SettledNeighborID(r.location, r.nextInPath)
		if err != nil {
			return path, ErrBrokenPath
		}
		r = s.robots[id-1]
		path = append(path, r.location)
	}
	if !r.findSurv {
		// A -1 hop on a robot that never sensed the survivor means the
		// chain was truncated, not completed.
		return path, ErrBrokenPath
	}
	return path, nil
}

// Census and observer getters.

// Num returns the number of robots in the swarm.
func (s *Swarm) Num() int { return len(s.robots) }

// Time returns the simulation clock in seconds.
func (s *Swarm) Time() float64 { return s.t }

// StepCount returns the number of ticks run so far.
func (s *Swarm) StepCount() int { return s.stepCount }

// SurvivorFound reports whether discovery has completed.
func (s *Swarm) SurvivorFound() bool { return s.survivorFound }

// SourceID returns the id of the source-of-chain robot, or -1.
func (s *Swarm) SourceID() int { return s.sourceID }

// CountFirstActivated counts robots that have entered the maze at least
// once.
func (s *Swarm) CountFirstActivated() int {
	count := 0
	for _, r := range s.robots {
		if r.firstActivated {
			count++
		}
	}
	return count
}

// CountCrashed counts permanently failed robots.
func (s *Swarm) CountCrashed() int {
	count := 0
	for _, r := range s.robots {
		if r.status == StatusCrashed {
			count++
		}
	}
	return count
}

// CountSettled counts committed chain members.
func (s *Swarm) CountSettled() int {
	count := 0
	for _, r := range s.robots {
		if r.status == StatusSettled {
			count++
		}
	}
	return count
}

// Geometry returns a robot's location and drawn radius.
func (s *Swarm) Geometry(id int) (maze.Point, float64) {
	return s.robots[id-1].location, DrawnRadius
}

// RobotDirection returns the compass direction a settled robot points at,
// or DirNone. It satisfies maze.DirectionLookup.
func (s *Swarm) RobotDirection(id int) maze.Direction {
	return s.robots[id-1].direction
}

// ActivatedOnce reports whether a robot has ever entered the maze.
func (s *Swarm) ActivatedOnce(id int) bool {
	return s.robots[id-1].firstActivated
}

// Robot returns the robot with the given 1-based id.
func (s *Swarm) Robot(id int) (*Robot, error) {
	if id < 1 || id > len(s.robots) {
		return nil, ErrUnknownRobot
	}
	return s.robots[id-1], nil
}
