package main

import (
	"math"

	"github.com/intel/forGoParallel/parallel"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/graph"
	"github.com/ScottSallinen/gravel/utils"
)

const kDamp = 0.85

// Pull-direction PageRank: every vertex gathers contributions from its
// in-neighbors, so score updates need no atomics. Dangling vertices
// contribute nothing (no uniform redistribution).
func PageRankPull(g *graph.CSR[graph.NodeID], maxIters int, epsilon float64) []float64 {
	initScore := 1.0 / float64(g.NumNodes())
	baseScore := (1.0 - kDamp) / float64(g.NumNodes())
	scores := make([]float64, g.NumNodes())
	utils.Fill(scores, initScore)
	outgoingContrib := make([]float64, g.NumNodes())

	for iter := 0; iter < maxIters; iter++ {
		var errorSum float64
		parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
			for u := low; u < high; u++ {
				if degree := g.OutDegree(graph.NodeID(u)); degree > 0 {
					outgoingContrib[u] = scores[u] / float64(degree)
				} else {
					outgoingContrib[u] = 0
				}
			}
		})
		parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
			local := float64(0)
			for u := low; u < high; u++ {
				incomingTotal := float64(0)
				for _, v := range g.InNeigh(graph.NodeID(u)) {
					incomingTotal += outgoingContrib[v]
				}
				oldScore := scores[u]
				scores[u] = baseScore + kDamp*incomingTotal
				local += math.Abs(scores[u] - oldScore)
			}
			utils.AtomicAddFloat64(&errorSum, local)
		})
		log.Info().Msg(utils.F("%2d", iter) + "    " + utils.F("%f", errorSum))
		if errorSum < epsilon {
			break
		}
	}
	return scores
}

func PRBench(opts *graph.BenchOptions, epsilon float64) func(*graph.CSR[graph.NodeID], *graph.SourcePicker[graph.NodeID]) []float64 {
	return func(g *graph.CSR[graph.NodeID], _ *graph.SourcePicker[graph.NodeID]) []float64 {
		return PageRankPull(g, opts.Iterations, epsilon)
	}
}

func PrintTopScores(g *graph.CSR[graph.NodeID], scores []float64) {
	for _, p := range utils.FindTopNInArray(scores, 5) {
		log.Info().Msg(utils.V(p.First) + ": " + utils.F("%f", p.Second))
	}
}
