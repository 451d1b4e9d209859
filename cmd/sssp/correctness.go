package main

import (
	"math"

	"github.com/intel/forGoParallel/parallel"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/ScottSallinen/gravel/graph"
)

// Independent oracle: rebuild the graph for gonum and compare against a
// textbook Dijkstra. Distances are integral, so the comparison is exact.
func SSSPVerifier(g *graph.CSR[graph.WNode], source graph.NodeID, dist []graph.Weight) bool {
	oracle := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for u := 0; u < g.NumNodes(); u++ {
		oracle.AddNode(simple.Node(u))
	}
	for u := 0; u < g.NumNodes(); u++ {
		for _, wn := range g.OutNeigh(graph.NodeID(u)) {
			oracle.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(u), T: simple.Node(wn.Dst), W: float64(wn.W),
			})
		}
	}
	shortest := path.DijkstraFrom(simple.Node(source), oracle)
	return parallel.RangeAnd(0, g.NumNodes(), 0, func(low, high int) bool {
		for u := low; u < high; u++ {
			expect := shortest.WeightTo(int64(u))
			if math.IsInf(expect, 1) {
				if dist[u] != kDistInf {
					return false
				}
			} else if int64(dist[u]) != int64(expect) {
				return false
			}
		}
		return true
	})
}

func SSSPVerifyBench(g *graph.CSR[graph.WNode], vsp *graph.SourcePicker[graph.WNode], dist []graph.Weight) bool {
	return SSSPVerifier(g, vsp.PickNext(), dist)
}
