package main

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/graph"
)

// Launch point: triangle counting benchmark (ordered intersection).
// Requires undirected input; generate with -s or load a symmetric graph.
func main() {
	opts := graph.FlagsToOptions(1)
	g := graph.MakeGraph[graph.NodeID](&opts)
	if g.Directed() {
		log.Error().Msg("Input graph is directed but triangle counting requires undirected.")
		graph.Quit(-2)
	}
	graph.BenchmarkKernel(&opts, g, TCBench, PrintTriangleStats, TCVerifyBench)
}
