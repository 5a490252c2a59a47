package view

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"dispersion/maze"
	"dispersion/swarm"
)

// Recorder writes one PNG per captured frame into a per-run directory, so
// headless runs can be turned into animations afterwards.
type Recorder struct {
	dir   string
	frame int
}

// NewRecorder creates the frame directory under base, named by a fresh
// run id.
func NewRecorder(base string) (*Recorder, error) {
	dir := filepath.Join(base, "run-"+uuid.New().String()[:8])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Recorder{dir: dir}, nil
}

// Dir returns the directory frames are written into.
func (r *Recorder) Dir() string { return r.dir }

// Capture renders the current world state and writes it as the next
// frame.
func (r *Recorder) Capture(m *maze.Maze, s *swarm.Swarm, source maze.Point) error {
	w := int(m.Width() * pixelsPerMeter)
	h := int(m.Height() * pixelsPerMeter)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, colBg)
		}
	}
	paint(m, s, source, func(x, y int, c color.Color) {
		if x >= 0 && x < w && y >= 0 && y < h {
			img.Set(x, y, c)
		}
	})

	name := filepath.Join(r.dir, fmt.Sprintf("frame_%06d.png", r.frame))
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	r.frame++
	return nil
}
