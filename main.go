// Package main is the entry point for the dispersion swarm simulator.
package main

import "dispersion/cmd"

func main() {
	cmd.Execute()
}
