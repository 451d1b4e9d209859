package main

import (
	"github.com/ScottSallinen/gravel/graph"
)

// Launch point: betweenness centrality benchmark (approximate Brandes
// over -k sampled sources).
func main() {
	opts := graph.FlagsToOptions(1)
	g := graph.MakeGraph[graph.NodeID](&opts)
	graph.BenchmarkKernel(&opts, g, BCBench(&opts), PrintTopScores, BCVerifyBench(&opts))
}
