package main

import (
	"github.com/ScottSallinen/gravel/graph"
	"github.com/ScottSallinen/gravel/utils"
)

// Textbook serial Brandes over the same sources, with explicit
// predecessor lists instead of the successor bitmap.
func BCVerifier(g *graph.CSR[graph.NodeID], sources []graph.NodeID, scores []float32) bool {
	n := g.NumNodes()
	oracle := make([]float64, n)
	for _, source := range sources {
		sigma := make([]float64, n)
		dist := make([]int64, n)
		preds := make([][]graph.NodeID, n)
		for u := range dist {
			dist[u] = -1
		}
		sigma[source] = 1
		dist[source] = 0
		var order []graph.NodeID
		frontier := []graph.NodeID{source}
		for len(frontier) > 0 {
			var next []graph.NodeID
			for _, u := range frontier {
				order = append(order, u)
				for _, v := range g.OutNeigh(u) {
					if dist[v] == -1 {
						dist[v] = dist[u] + 1
						next = append(next, v)
					}
					if dist[v] == dist[u]+1 {
						sigma[v] += sigma[u]
						preds[v] = append(preds[v], u)
					}
				}
			}
			frontier = next
		}
		delta := make([]float64, n)
		for i := len(order) - 1; i >= 0; i-- {
			u := order[i]
			for _, p := range preds[u] {
				delta[p] += sigma[p] / sigma[u] * (1 + delta[u])
			}
			oracle[u] += delta[u]
		}
	}

	biggest := float64(0)
	for u := range oracle {
		biggest = utils.Max(biggest, oracle[u])
	}
	if biggest > 0 {
		for u := range oracle {
			oracle[u] /= biggest
		}
	}
	for u := range scores {
		if !utils.FloatEquals(float64(scores[u]), oracle[u]) {
			return false
		}
	}
	return true
}

func BCVerifyBench(opts *graph.BenchOptions) func(*graph.CSR[graph.NodeID], *graph.SourcePicker[graph.NodeID], []float32) bool {
	return func(g *graph.CSR[graph.NodeID], vsp *graph.SourcePicker[graph.NodeID], scores []float32) bool {
		sources := make([]graph.NodeID, opts.Iterations)
		for i := range sources {
			sources[i] = vsp.PickNext()
		}
		return BCVerifier(g, sources, scores)
	}
}
