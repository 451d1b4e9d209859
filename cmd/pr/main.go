package main

import (
	"flag"

	"github.com/ScottSallinen/gravel/graph"
)

// Launch point: PageRank benchmark (pull direction).
func main() {
	tolerancePtr := flag.Float64("t", 1e-4, "Convergence tolerance; 0 runs all iterations.")
	opts := graph.FlagsToOptions(20)
	g := graph.MakeGraph[graph.NodeID](&opts)
	verify := func(g *graph.CSR[graph.NodeID], _ *graph.SourcePicker[graph.NodeID], scores []float64) bool {
		return PRVerifier(g, scores, *tolerancePtr)
	}
	graph.BenchmarkKernel(&opts, g, PRBench(&opts, *tolerancePtr), PrintTopScores, verify)
}
