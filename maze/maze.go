// Package maze implements the occupancy map of the dispersion simulator:
// a geometric obstacle view used by observers, a grid view of the same
// obstacles inflated by the robot radius, and the per-cell mark table
// through which robots discover and claim cells.
package maze

import "math"

// Circle is a disk obstacle.
type Circle struct {
	Center Point
	R      float64
}

// Triangle is a triangular obstacle. Rectangles are stored as two
// triangles sharing a diagonal.
type Triangle struct {
	P1, P2, P3 Point
}

// Marker is the view of a robot the map needs to place its marks.
type Marker interface {
	ID() int
	Location() Point
	PrevLocation() Point
	Moving() bool
	Settled() bool
	Crashed() bool
}

// DirectionLookup resolves a settled robot's direction by id. The swarm
// implements it.
type DirectionLookup interface {
	RobotDirection(id int) Direction
}

// Maze is the main representation of the world. Obstacles and survivors
// are appended during setup; afterwards only the mark table mutates.
type Maze struct {
	height, width float64
	gridLength    float64
	circles       []Circle
	triangles     []Triangle
	survivors     []Point
	grid          *markGrid
}

// New creates a maze of the given dimensions in meters. A non-positive
// gridLength selects the default 0.5 m grid.
func New(height, width, gridLength float64) *Maze {
	if gridLength <= 0 {
		gridLength = DefaultGridLength
	}
	w := int(math.Floor(width / gridLength))
	h := int(math.Floor(height / gridLength))
	return &Maze{
		height:     height,
		width:      width,
		gridLength: gridLength,
		grid:       newMarkGrid(w, h, gridLength),
	}
}

// AddRect adds an axis-aligned rectangular obstacle spanning the corners
// (x1,y1) and (x2,y2), stored as two triangles sharing the diagonal.
func (m *Maze) AddRect(x1, y1, x2, y2 float64) {
	m.AddTriangle(x1, y1, x2, y2, x1, y2)
	m.AddTriangle(x1, y1, x2, y2, x2, y1)
}

// AddCircle adds a disk obstacle and rasterizes it eagerly.
func (m *Maze) AddCircle(x, y, r float64) {
	if r > 0 {
		m.circles = append(m.circles, Circle{Center: Point{x, y}, R: r})
	}
	m.grid.rasterizeCircle(x, y, r)
}

// AddTriangle adds a triangular obstacle and rasterizes it eagerly.
func (m *Maze) AddTriangle(x1, y1, x2, y2, x3, y3 float64) {
	p1, p2, p3 := Point{x1, y1}, Point{x2, y2}, Point{x3, y3}
	m.triangles = append(m.triangles, Triangle{p1, p2, p3})
	m.grid.rasterizeTriangle(p1, p2, p3)
}

// AddSurvivor places a stationary survivor at (x,y).
func (m *Maze) AddSurvivor(x, y float64) {
	m.survivors = append(m.survivors, Point{x, y})
}

// Observer getters.

func (m *Maze) Height() float64 { return m.height }
func (m *Maze) Width() float64 { return m.width }
func (m *Maze) GridLength() float64 { return m.gridLength }
func (m *Maze) Circles() []Circle { return m.circles }
func (m *Maze) Triangles() []Triangle { return m.triangles }
func (m *Maze) Walls() []GridCell { return m.grid.walls }
func (m *Maze) Survivors() []Point { return m.survivors }

// CellOf returns the grid cell containing p, by floor division. This is
// the membership discretization; mark placement rounds first (see
// MarkRobot).
func (m *Maze) CellOf(p Point) GridCell {
	return GridCell{
		I: int(math.Floor(p.X / m.gridLength)),
		J: int(math.Floor(p.Y / m.gridLength)),
	}
}

// cellAt is the mark-placement discretization: coordinates are rounded to
// prec decimals before the floor division, so a robot mid-move resolves
// stably onto its transition cell.
func (m *Maze) cellAt(p Point, prec int) GridCell {
	return GridCell{
		I: int(math.Floor(roundTo(p.X, prec) / m.gridLength)),
		J: int(math.Floor(roundTo(p.Y, prec) / m.gridLength)),
	}
}

// OccupantCount returns the number of robots marked in c. Out-of-bounds
// cells count zero.
func (m *Maze) OccupantCount(c GridCell) int {
	s, ok := m.grid.slots(c)
	if !ok {
		return 0
	}
	return s.count()
}

// Occupants returns the non-empty mark slots of c.
func (m *Maze) Occupants(c GridCell) []Occupant {
	s, ok := m.grid.slots(c)
	if !ok {
		return nil
	}
	var out []Occupant
	for _, o := range s {
		if o.ID > 0 {
			out = append(out, o)
		}
	}
	return out
}

// IsWall reports whether c is labelled as a wall.
func (m *Maze) IsWall(c GridCell) bool {
	return !m.grid.passable(c)
}

// MarkRobot moves a robot's mark from its previous cell to its current
// cell. Moving robots resolve their cells at 4-decimal precision, all
// others at 1 decimal. Crashed robots are removed and never re-added. On
// an out-of-map or full target cell the mark is not placed and the error
// is returned; the caller decides to crash the robot.
func (m *Maze) MarkRobot(r Marker) error {
	prec := 1
	if r.Moving() {
		prec = 4
	}
	m.grid.removeID(m.cellAt(r.PrevLocation(), prec), r.ID())
	if r.Crashed() {
		// A robot crashed mid-move carries its mark under the 4-decimal
		// discretization; sweep both so no stale mark survives it.
		m.grid.removeID(m.cellAt(r.PrevLocation(), 4), r.ID())
		return nil
	}
	return m.grid.addID(m.cellAt(r.Location(), prec), r.ID(), r.Settled())
}

// RobotInquiryGeneral reports the local view of the 12-cell neighbourhood
// around loc: per-index wall flags, occupancy counts and, where a cell
// holds exactly one settled robot, that robot's direction. Counts and
// directions are computed only for the 8 axis-cardinal template positions.
func (m *Maze) RobotInquiryGeneral(loc Point, dirs DirectionLookup) (isWall [12]bool, count [12]int, dir [12]Direction) {
	for i := range dir {
		dir[i] = DirNone
	}
	tmpl := neighborTemplate(m.CellOf(loc))
	passable := [12]bool{}
	for i, c := range tmpl {
		passable[i] = m.grid.inBounds(c) && m.grid.passable(c)
		isWall[i] = !passable[i]
	}
	for _, i := range cardinalIndices {
		if !passable[i] {
			continue
		}
		s, _ := m.grid.slots(tmpl[i])
		n := s.count()
		count[i] = n
		if n == 1 {
			if o, ok := s.settled(); ok {
				dir[i] = dirs.RobotDirection(o.ID)
			}
		}
	}
	return isWall, count, dir
}

// SettledNeighborID returns the id of the settled robot occupying the cell
// one step from loc in direction d.
func (m *Maze) SettledNeighborID(loc Point, d Direction) (int, error) {
	c := m.CellOf(loc).Shift(d)
	s, ok := m.grid.slots(c)
	if !ok {
		return 0, ErrOutOfMap
	}
	o, ok := s.settled()
	if !ok {
		return 0, ErrNoSettledNeighbor
	}
	return o.ID, nil
}

// RobotInquirySurvivor reports whether any survivor lies strictly within
// sensorRange of loc.
func (m *Maze) RobotInquirySurvivor(loc Point, sensorRange float64) bool {
	for _, s := range m.survivors {
		dx, dy := s.X-loc.X, s.Y-loc.Y
		if dx*dx+dy*dy < sensorRange*sensorRange {
			return true
		}
	}
	return false
}

// IsSourceOpen reports whether the cell containing (x,y) has a free mark
// slot.
func (m *Maze) IsSourceOpen(x, y float64) bool {
	return m.OccupantCount(m.CellOf(Point{x, y})) < 2
}
