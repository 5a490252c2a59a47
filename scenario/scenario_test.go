package scenario

import (
	"testing"

	"dispersion/maze"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"small", "large"} {
		sc, m, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if sc.Name != name || m == nil {
			t.Fatalf("ByName(%q) = %+v", name, sc)
		}
	}
	if _, _, err := ByName("bogus"); err == nil {
		t.Fatal("unknown scenario accepted")
	}
}

func TestScenariosAreRunnable(t *testing.T) {
	cases := []struct {
		name  string
		build func() (Scenario, *maze.Maze)
	}{
		{"small", Small},
		{"large", Large},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc, m := tc.build()

			if len(m.Walls()) == 0 {
				t.Fatal("scenario has no walls")
			}
			if len(m.Survivors()) != 1 {
				t.Fatalf("survivor count = %d, want 1", len(m.Survivors()))
			}
			if sc.Robots <= 0 || sc.Robots > maze.MaxRobots {
				t.Fatalf("robot count %d out of range", sc.Robots)
			}

			// The entry point must be usable: inside the map, not a wall
			// cell, with free mark slots.
			src := m.CellOf(sc.Source)
			if m.IsWall(src) {
				t.Fatalf("source cell %v is a wall", src)
			}
			if !m.IsSourceOpen(sc.Source.X, sc.Source.Y) {
				t.Fatal("source cell is not open")
			}
			if sc.Source.X < 0 || sc.Source.X > sc.Width || sc.Source.Y < 0 || sc.Source.Y > sc.Height {
				t.Fatal("source outside the map")
			}

			// Survivors sit inside the map.
			for _, p := range m.Survivors() {
				if p.X < 0 || p.X > sc.Width || p.Y < 0 || p.Y > sc.Height {
					t.Fatalf("survivor %v outside the map", p)
				}
			}
		})
	}
}

func TestSmallMazeKnownWalls(t *testing.T) {
	_, m := Small()

	// The disk at (0.9, 6.1) with r=0.5 inflates to 0.6 and must cover the
	// nearby cell centres.
	for _, c := range []maze.GridCell{{I: 1, J: 12}, {I: 1, J: 11}, {I: 2, J: 12}} {
		if !m.IsWall(c) {
			t.Errorf("cell %v should be a wall under the disk obstacle", c)
		}
	}
	// The source cell stays clear.
	if m.IsWall(maze.GridCell{I: 10, J: 7}) {
		t.Error("source cell (10,7) must stay passable")
	}
}
