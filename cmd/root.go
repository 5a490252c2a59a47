// Package cmd wires the command line interface of the simulator.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dispersion",
	Short: "Dispersive multi-robot swarm simulator",
	Long: `Simulates a swarm of locally sensing robots dispersing through a
cluttered maze from a single entry point until one of them senses the
survivor and the discovery propagates back along the settled chain.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
