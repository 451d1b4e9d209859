package main

import (
	"github.com/ScottSallinen/gravel/graph"
)

// Launch point: single-source shortest paths benchmark (delta-stepping).
func main() {
	opts := graph.FlagsToOptions(1)
	g := graph.MakeGraph[graph.WNode](&opts)
	graph.BenchmarkKernel(&opts, g, SSSPBench(&opts), PrintSSSPStats, SSSPVerifyBench)
}
