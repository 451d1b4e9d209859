package main

import (
	"github.com/ScottSallinen/gravel/graph"
)

// Launch point: connected components benchmark (Afforest sampling).
// Directed inputs are labelled by weak connectivity.
func main() {
	opts := graph.FlagsToOptions(1)
	g := graph.MakeGraph[graph.NodeID](&opts)
	graph.BenchmarkKernel(&opts, g, CCBench, PrintCompStats, CCVerifyBench)
}
