package cmd

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"dispersion/scenario"
	"dispersion/server"
	"dispersion/swarm"
	"dispersion/view"
)

var (
	runScenario    string
	runRobots      int
	runSteps       int
	runSeed        int64
	runCrashRate   float64
	runStatsEvery  int
	runQuiet       bool
	runGUI         bool
	runServeAddr   string
	runRecordDir   string
	runRecordEvery int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a dispersion scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, m, err := scenario.ByName(runScenario)
		if err != nil {
			return err
		}

		n := runRobots
		if n == 0 {
			n = sc.Robots
		}
		seed := runSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		sw := swarm.New(swarm.DefaultStepLength, 0.0, seed)
		sw.SetCrashRate(runCrashRate)
		if err := sw.AddRobotBatch(n, sc.Source); err != nil {
			return err
		}
		if runQuiet {
			log.SetOutput(io.Discard)
		} else {
			fmt.Printf("scenario=%s robots=%d seed=%d crash-rate=%g\n",
				sc.Name, n, seed, runCrashRate)
		}

		var rec *view.Recorder
		if runRecordDir != "" {
			rec, err = view.NewRecorder(runRecordDir)
			if err != nil {
				return err
			}
			if !runQuiet {
				fmt.Printf("recording frames to %s\n", rec.Dir())
			}
		}

		if runGUI {
			return view.Run(view.NewGame(m, sw, sc.Source, 10, rec))
		}

		var snaps chan server.Snapshot
		if runServeAddr != "" {
			snaps = make(chan server.Snapshot, 1)
			srv := server.New(runServeAddr, snaps)
			go func() {
				if err := srv.Serve(); err != nil {
					log.Println("server:", err)
				}
			}()
		}

		sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		sp.Suffix = " simulating..."
		_ = sp.Color("cyan", "bold")
		if !runQuiet {
			sp.Start()
		}

		found := false
		for i := 0; i < runSteps; i++ {
			if sw.RandStepUpdate(m) {
				found = true
				break
			}
			if runStatsEvery > 0 && sw.StepCount()%runStatsEvery == 0 {
				sp.Suffix = fmt.Sprintf(" t=%.1fs activated=%d settled=%d crashed=%d",
					sw.Time(), sw.CountFirstActivated(), sw.CountSettled(), sw.CountCrashed())
			}
			if snaps != nil {
				select {
				case snaps <- server.Snap(m, sw):
				default: // never stall the simulation on a slow client
				}
			}
			if rec != nil && sw.StepCount()%runRecordEvery == 0 {
				if err := rec.Capture(m, sw, sc.Source); err != nil {
					sp.Stop()
					return err
				}
			}
		}
		sp.Stop()
		if snaps != nil {
			select {
			case snaps <- server.Snap(m, sw):
			default:
			}
			close(snaps)
		}

		fmt.Printf("# activated at least once: %d\n", sw.CountFirstActivated())
		fmt.Printf("# crashed: %d\n", sw.CountCrashed())
		if !found {
			fmt.Printf("no discovery within %d steps (t=%.2f s)\n", runSteps, sw.Time())
			return nil
		}
		fmt.Printf("survivor found at t=%.2f s\n", sw.Time())
		path, err := sw.PathToSurvivor(m)
		if err != nil {
			return fmt.Errorf("path reconstruction: %w", err)
		}
		fmt.Printf("path length: %d settled robots\n", len(path))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runScenario, "scenario", "large", "scenario to run (small or large)")
	runCmd.Flags().IntVar(&runRobots, "robots", 0, "robot count (0 = scenario default)")
	runCmd.Flags().IntVar(&runSteps, "steps", 1000000, "maximum number of ticks")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "random seed (0 = time-based)")
	runCmd.Flags().Float64Var(&runCrashRate, "crash-rate", 0, "per-robot crash probability per crash round")
	runCmd.Flags().IntVar(&runStatsEvery, "stats-every", 1000, "refresh progress stats every N steps (0 = never)")
	runCmd.Flags().BoolVar(&runQuiet, "quiet", false, "suppress console prints")
	runCmd.Flags().BoolVar(&runGUI, "gui", false, "show GUI window")
	runCmd.Flags().StringVar(&runServeAddr, "serve", "", "serve a live view on this address (e.g. :8080)")
	runCmd.Flags().StringVar(&runRecordDir, "record", "", "write PNG frames under this directory")
	runCmd.Flags().IntVar(&runRecordEvery, "record-every", 100, "capture a frame every N steps")
	rootCmd.AddCommand(runCmd)
}
