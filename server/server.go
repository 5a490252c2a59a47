// Package server pushes read-only simulation snapshots to a browser over
// a websocket, so a long headless run can be watched live.
package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"dispersion/maze"
	"dispersion/swarm"
)

var upgrader = websocket.Upgrader{}

const (
	// Time allowed to write a message to the peer.
	writeWait = 1 * time.Second
	// Minimum interval between pushed snapshots; faster updates are dropped.
	pushResolution = 200 * time.Millisecond
)

// RobotSnapshot is one robot's observable state.
type RobotSnapshot struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Settled bool    `json:"settled"`
}

// Snapshot is one tick's observable world state.
type Snapshot struct {
	T         float64         `json:"t"`
	Step      int             `json:"step"`
	Activated int             `json:"activated"`
	Crashed   int             `json:"crashed"`
	Found     bool            `json:"found"`
	Robots    []RobotSnapshot `json:"robots"`
	Path      [][2]float64    `json:"path,omitempty"`
}

// Snap builds a snapshot from the observer getters. Inactive robots are
// omitted.
func Snap(m *maze.Maze, s *swarm.Swarm) Snapshot {
	snap := Snapshot{
		T:         s.Time(),
		Step:      s.StepCount(),
		Activated: s.CountFirstActivated(),
		Crashed:   s.CountCrashed(),
		Found:     s.SurvivorFound(),
	}
	for id := 1; id <= s.Num(); id++ {
		if !s.ActivatedOnce(id) {
			continue
		}
		loc, _ := s.Geometry(id)
		r, _ := s.Robot(id)
		snap.Robots = append(snap.Robots, RobotSnapshot{
			X:       loc.X,
			Y:       loc.Y,
			Settled: r.Status() == swarm.StatusSettled,
		})
	}
	if path, err := s.PathToSurvivor(m); err == nil {
		for _, p := range path {
			snap.Path = append(snap.Path, [2]float64{p.X, p.Y})
		}
	}
	return snap
}

// Server serves the live view. One producer feeds the snapshot channel;
// one browser client is assumed, as with any debugging view.
type Server struct {
	addr      string
	snapshots <-chan Snapshot
}

// New wires a server to a snapshot stream.
func New(addr string, snapshots <-chan Snapshot) *Server {
	return &Server{addr: addr, snapshots: snapshots}
}

// Serve blocks on the HTTP listener.
func (srv *Server) Serve() error {
	http.HandleFunc("/", srv.serveIndex)
	http.HandleFunc("/ws", srv.serveWebsocket)
	if err := http.ListenAndServe(srv.addr, nil); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (srv *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		log.Println("upgrade:", err)
		return
	}
	defer srv.closeWebsocket(ws)
	srv.publishUpdates(ws)
}

// publishUpdates forwards snapshots to the client, dropping frames when
// they arrive faster than the push resolution.
func (srv *Server) publishUpdates(ws *websocket.Conn) {
	last := time.Time{}
	for snap := range srv.snapshots {
		if time.Since(last) < pushResolution {
			continue
		}
		last = time.Now()
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Println("ws:", err)
			return
		}
		if err := ws.WriteJSON(snap); err != nil {
			log.Println("ws:", err)
			return
		}
	}
}

func (srv *Server) closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	ws.Close()
}

func (srv *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(indexPage))
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>dispersion live view</title></head>
<body>
<pre id="stats">waiting for data...</pre>
<canvas id="world" width="600" height="900"></canvas>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
const canvas = document.getElementById("world");
const ctx = canvas.getContext("2d");
ws.onmessage = (ev) => {
  const s = JSON.parse(ev.data);
  document.getElementById("stats").textContent =
    "t=" + s.t.toFixed(2) + "s step=" + s.step +
    " activated=" + s.activated + " crashed=" + s.crashed +
    (s.found ? " FOUND" : "");
  ctx.clearRect(0, 0, canvas.width, canvas.height);
  const scale = 60;
  for (const r of s.robots || []) {
    ctx.fillStyle = r.settled ? "#78b4eb" : "#282828";
    ctx.fillRect(r.x * scale - 2, canvas.height - r.y * scale - 2, 4, 4);
  }
  ctx.strokeStyle = "#c81e1e";
  ctx.beginPath();
  for (const [i, p] of (s.path || []).entries()) {
    const x = p[0] * scale, y = canvas.height - p[1] * scale;
    if (i === 0) ctx.moveTo(x, y); else ctx.lineTo(x, y);
  }
  ctx.stroke();
};
</script>
</body>
</html>
`
