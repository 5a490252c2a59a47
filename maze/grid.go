package maze

import (
	"log"
	"math"
	"sync"
)

// GridCell is an integer cell index into the discrete grid.
type GridCell struct {
	I, J int
}

// Direction is a compass index over the grid: 0 left, 1 down, 2 right,
// 3 up. DirNone marks "no direction".
type Direction int

const (
	DirNone  Direction = -1
	DirLeft  Direction = 0
	DirDown  Direction = 1
	DirRight Direction = 2
	DirUp    Direction = 3
)

// Opposite returns the reverse compass direction.
func (d Direction) Opposite() Direction {
	if d == DirNone {
		return DirNone
	}
	return (d + 2) % 4
}

// Unit returns the unit vector of d in the continuous plane.
func (d Direction) Unit() Point {
	switch d {
	case DirLeft:
		return Point{-1, 0}
	case DirDown:
		return Point{0, -1}
	case DirRight:
		return Point{1, 0}
	case DirUp:
		return Point{0, 1}
	}
	return Point{}
}

// Shift returns the cell one step from c in direction d.
func (c GridCell) Shift(d Direction) GridCell {
	switch d {
	case DirLeft:
		return GridCell{c.I - 1, c.J}
	case DirDown:
		return GridCell{c.I, c.J - 1}
	case DirRight:
		return GridCell{c.I + 1, c.J}
	case DirUp:
		return GridCell{c.I, c.J + 1}
	}
	return c
}

// Occupant is one mark slot: the id of a robot standing in the cell and
// whether that robot is settled. A zero id means the slot is empty.
type Occupant struct {
	ID      int
	Settled bool
}

// cellSlots is the mark pair of one cell. A cell holds at most two robots.
type cellSlots [2]Occupant

func (c *cellSlots) count() int {
	n := 0
	for _, o := range c {
		if o.ID > 0 {
			n++
		}
	}
	return n
}

func (c *cellSlots) remove(id int) {
	for i, o := range c {
		if o.ID == id {
			c[i] = Occupant{}
			return
		}
	}
}

// insert places id into a free slot; it reports false when the cell is
// already full.
func (c *cellSlots) insert(id int, settled bool) bool {
	if c.count() >= 2 {
		return false
	}
	for i, o := range c {
		if o.ID == 0 {
			c[i] = Occupant{ID: id, Settled: settled}
			return true
		}
	}
	return false
}

// settled returns the settled occupant with the largest id, if any.
func (c *cellSlots) settled() (Occupant, bool) {
	var best Occupant
	for _, o := range c {
		if o.ID > 0 && o.Settled && o.ID > best.ID {
			best = o
		}
	}
	return best, best.ID > 0
}

// squareGrid is the discrete view of the world: bounds, wall labels, and
// the 12-neighbour template.
type squareGrid struct {
	width, height int // in cells
	gridLength    float64
	walls         []GridCell // append-only; duplicates permitted
	wallSet       map[GridCell]bool
}

func newSquareGrid(width, height int, gridLength float64) squareGrid {
	return squareGrid{
		width:      width,
		height:     height,
		gridLength: gridLength,
		wallSet:    make(map[GridCell]bool),
	}
}

func (g *squareGrid) inBounds(c GridCell) bool {
	return c.I >= 0 && c.I < g.width && c.J >= 0 && c.J < g.height
}

func (g *squareGrid) passable(c GridCell) bool {
	return !g.wallSet[c]
}

func (g *squareGrid) addWall(c GridCell) {
	g.walls = append(g.walls, c)
	g.wallSet[c] = true
}

// neighborTemplate lists the 12 cells of the diamond-of-radius-2 around c.
// The index positions are part of the inquiry contract:
//
//	            (x, y+2)             0
//	 (x-1,y+1)  (x, y+1)  (x+1,y+1)  1  2  3
//	 (x-2,y) (x-1,y)  (x+1,y) (x+2,y)   4 5 6 7
//	 (x-1,y-1)  (x, y-1)  (x+1,y-1)  8  9 10
//	            (x, y-2)             11
func neighborTemplate(c GridCell) [12]GridCell {
	x, y := c.I, c.J
	return [12]GridCell{
		{x, y + 2},
		{x - 1, y + 1}, {x, y + 1}, {x + 1, y + 1},
		{x - 2, y}, {x - 1, y}, {x + 1, y}, {x + 2, y},
		{x - 1, y - 1}, {x, y - 1}, {x + 1, y - 1},
		{x, y - 2},
	}
}

// twelveNeighbors returns the passable in-bounds cells of the template, in
// template order.
func (g *squareGrid) twelveNeighbors(c GridCell) []GridCell {
	tmpl := neighborTemplate(c)
	out := make([]GridCell, 0, len(tmpl))
	for _, n := range tmpl {
		if g.inBounds(n) && g.passable(n) {
			out = append(out, n)
		}
	}
	return out
}

// cardinalIndices are the template positions inspected for occupancy: the
// four adjacent cells and the four cells two steps out on each axis.
var cardinalIndices = [8]int{0, 2, 4, 5, 6, 7, 9, 11}

// rasterize tests every cell centre of [lo,hi) against hit and labels the
// hits as walls. Tall bounding boxes are split into row strips processed
// concurrently; strip results are committed in order so the wall list stays
// deterministic.
func (g *squareGrid) rasterize(lo, hi GridCell, hit func(Point) bool) {
	rows := hi.J - lo.J
	if rows <= 0 || hi.I-lo.I <= 0 {
		return
	}
	if rows < minParallelRows {
		for i := lo.I; i < hi.I; i++ {
			for j := lo.J; j < hi.J; j++ {
				if hit(g.center(GridCell{i, j})) {
					g.addWall(GridCell{i, j})
				}
			}
		}
		return
	}

	segs := splitRows(lo.J, hi.J, rasterWorkers)
	found := make([][]GridCell, len(segs))
	var wg sync.WaitGroup
	for k, seg := range segs {
		wg.Add(1)
		go func(k, j0, j1 int) {
			defer wg.Done()
			var cells []GridCell
			for i := lo.I; i < hi.I; i++ {
				for j := j0; j < j1; j++ {
					if hit(g.center(GridCell{i, j})) {
						cells = append(cells, GridCell{i, j})
					}
				}
			}
			found[k] = cells
		}(k, seg[0], seg[1])
	}
	wg.Wait()
	for _, cells := range found {
		for _, c := range cells {
			g.addWall(c)
		}
	}
}

const (
	minParallelRows = 16
	rasterWorkers   = 4
)

// splitRows divides the rows [j0,j1) as evenly as possible among workers.
func splitRows(j0, j1, workers int) [][2]int {
	n := j1 - j0
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	base := n / workers
	rem := n % workers

	segs := make([][2]int, 0, workers)
	j := j0
	for i := 0; i < workers; i++ {
		h := base
		if rem > 0 {
			h++
			rem--
		}
		segs = append(segs, [2]int{j, j + h})
		j += h
	}
	return segs
}

// center returns the continuous centre of cell c.
func (g *squareGrid) center(c GridCell) Point {
	return Point{
		X: g.gridLength * (float64(c.I) + 0.5),
		Y: g.gridLength * (float64(c.J) + 0.5),
	}
}

// markGrid adds the per-cell occupancy marks to the discrete grid.
type markGrid struct {
	squareGrid
	marks [][]cellSlots // indexed [i][j]
}

func newMarkGrid(width, height int, gridLength float64) *markGrid {
	m := &markGrid{squareGrid: newSquareGrid(width, height, gridLength)}
	m.marks = make([][]cellSlots, width)
	for i := range m.marks {
		m.marks[i] = make([]cellSlots, height)
	}
	return m
}

// removeID clears id's mark in c. Out-of-bounds cells are ignored.
func (m *markGrid) removeID(c GridCell, id int) {
	if !m.inBounds(c) {
		return
	}
	m.marks[c.I][c.J].remove(id)
}

// addID marks id in c. The caller decides whether a failure crashes the
// robot.
func (m *markGrid) addID(c GridCell, id int, settled bool) error {
	if !m.inBounds(c) {
		log.Printf("maze: out of map, crashing the robot at %v", c)
		return ErrOutOfMap
	}
	if !m.marks[c.I][c.J].insert(id, settled) {
		log.Printf("maze: vertex %v full, deleting robot no.%d", c, id)
		return ErrCellFull
	}
	return nil
}

func (m *markGrid) slots(c GridCell) (cellSlots, bool) {
	if !m.inBounds(c) {
		return cellSlots{}, false
	}
	return m.marks[c.I][c.J], true
}

// rasterizeCircle labels every cell whose centre lies within the circle
// inflated by the robot radius.
func (m *markGrid) rasterizeCircle(x, y, r float64) {
	g := m.gridLength
	lo := GridCell{
		I: max(0, int(math.Floor((x-r)/g))),
		J: max(0, int(math.Floor((y-r)/g))),
	}
	hi := GridCell{
		I: min(m.width, int(math.Floor((x+r)/g))+1),
		J: min(m.height, int(math.Floor((y+r)/g))+1),
	}
	rm := r + RobotRadius
	m.rasterize(lo, hi, func(p Point) bool {
		dx, dy := x-p.X, y-p.Y
		return dx*dx+dy*dy < rm*rm
	})
}

// rasterizeTriangle labels every cell whose centre passes the inflated
// triangle inclusion test.
func (m *markGrid) rasterizeTriangle(p1, p2, p3 Point) {
	g := m.gridLength
	lo := GridCell{
		I: max(0, int(math.Floor(math.Min(p1.X, math.Min(p2.X, p3.X))/g))),
		J: max(0, int(math.Floor(math.Min(p1.Y, math.Min(p2.Y, p3.Y))/g))),
	}
	hi := GridCell{
		I: min(m.width, int(math.Floor(math.Max(p1.X, math.Max(p2.X, p3.X))/g))+1),
		J: min(m.height, int(math.Floor(math.Max(p1.Y, math.Max(p2.Y, p3.Y))/g))+1),
	}
	m.rasterize(lo, hi, func(p Point) bool {
		return inTriMargin(p1, p2, p3, p)
	})
}
