package main

import (
	"github.com/ScottSallinen/gravel/graph"
)

// Launch point: breadth-first search benchmark (direction-optimizing).
func main() {
	opts := graph.FlagsToOptions(1)
	g := graph.MakeGraph[graph.NodeID](&opts)
	graph.BenchmarkKernel(&opts, g, BFSBench, PrintBFSStats, BFSVerifyBench)
}
