package main

import (
	"math"

	"github.com/ScottSallinen/gravel/graph"
)

// Serial fixpoint residual: one more pull iteration should move the
// scores by less than the target error.
func PRVerifier(g *graph.CSR[graph.NodeID], scores []float64, targetError float64) bool {
	baseScore := (1.0 - kDamp) / float64(g.NumNodes())
	incomingSums := make([]float64, g.NumNodes())
	for u := 0; u < g.NumNodes(); u++ {
		if degree := g.OutDegree(graph.NodeID(u)); degree > 0 {
			outgoingContrib := scores[u] / float64(degree)
			for _, v := range g.OutNeigh(graph.NodeID(u)) {
				incomingSums[v] += outgoingContrib
			}
		}
	}
	errorSum := float64(0)
	for u := 0; u < g.NumNodes(); u++ {
		errorSum += math.Abs(baseScore + kDamp*incomingSums[u] - scores[u])
	}
	return errorSum < targetError
}
