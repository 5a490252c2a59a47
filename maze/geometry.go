package maze

import (
	"log"
	"math"
)

// Physical constants of the simulation. These are part of the contract
// between the map, the robots and the observers.
const (
	// MaxRobots bounds the number of robots a swarm may hold. It is a
	// sizing parameter only; marks store an explicit settled flag.
	MaxRobots = 20000
	// RobotRadius is the body radius used to inflate obstacles during
	// rasterization, in meters.
	RobotRadius = 0.1
	// SensorRange is the survivor sensing radius, in meters.
	SensorRange = 0.65
	// DefaultGridLength is the side of one grid cell, in meters.
	DefaultGridLength = 0.5
	// Epsilon is the shared distance tolerance for geometric equality
	// and arrival tests.
	Epsilon = 1e-3
)

// Point is a position in the continuous plane, in meters. X grows to the
// right, Y upward.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 { return p.Sub(q).Norm() }

func dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

// PointLineDist returns the perpendicular distance from p to the infinite
// line through l1 and l2. A degenerate segment is reported and yields the
// sentinel -1; it does not occur with well-formed obstacles.
func PointLineDist(l1, l2, p Point) float64 {
	d := l2.Sub(l1)
	if d.Norm() < Epsilon {
		log.Printf("maze: invalid points on a line: %v %v", l1, l2)
		return -1.0
	}
	// 2D cross product of (l2-l1) and (l1-p).
	cross := d.X*(l1.Y-p.Y) - d.Y*(l1.X-p.X)
	return math.Abs(cross) / d.Norm()
}

// PointSegmentDist returns the distance from p to the segment v1-v2,
// falling back to the endpoint distances outside the segment's span.
func PointSegmentDist(v1, v2, p Point) float64 {
	if dot(v2.Sub(v1), p.Sub(v1)) < -Epsilon {
		return p.Sub(v1).Norm()
	}
	if dot(v1.Sub(v2), p.Sub(v2)) < -Epsilon {
		return p.Sub(v2).Norm()
	}
	return PointLineDist(v1, v2, p)
}

func triArea(p1, p2, p3 Point) float64 {
	return math.Abs((p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y)) / 2.0)
}

// inTriMargin reports whether p lies inside the triangle p1-p2-p3 or within
// RobotRadius of one of its edges. The inclusion test compares the
// barycentric areas; the margin inflates the obstacle by the robot body.
func inTriMargin(p1, p2, p3, p Point) bool {
	a := triArea(p1, p2, p3)
	a1 := triArea(p, p2, p3)
	a2 := triArea(p1, p, p3)
	a3 := triArea(p1, p2, p)
	if math.Abs(a-a1-a2-a3) < Epsilon {
		return true
	}
	return PointSegmentDist(p1, p2, p) < RobotRadius ||
		PointSegmentDist(p1, p3, p) < RobotRadius ||
		PointSegmentDist(p2, p3, p) < RobotRadius
}

// roundTo rounds v to prec decimal places.
func roundTo(v float64, prec int) float64 {
	p := math.Pow10(prec)
	return math.Round(v*p) / p
}
