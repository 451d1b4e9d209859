package main

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ScottSallinen/gravel/graph"
)

func edgesOf(pairs [][2]graph.NodeID) (el graph.EdgeList[graph.NodeID]) {
	for _, p := range pairs {
		el = append(el, graph.Edge[graph.NodeID]{U: p[0], V: p[1]})
	}
	return el
}

// Independent linear-algebra oracle: triangles = trace(A^3) / 6 for a
// symmetric adjacency matrix.
func traceOracle(g *graph.CSR[graph.NodeID]) int64 {
	n := g.NumNodes()
	a := mat.NewDense(n, n, nil)
	for u := 0; u < n; u++ {
		for _, v := range g.OutNeigh(graph.NodeID(u)) {
			a.Set(u, int(v), 1)
		}
	}
	var squared, cubed mat.Dense
	squared.Mul(a, a)
	cubed.Mul(&squared, a)
	trace := float64(0)
	for i := 0; i < n; i++ {
		trace += cubed.At(i, i)
	}
	return int64(trace+0.5) / 6
}

func Test_TCClique(t *testing.T) {
	g := graph.MakeGraphFromEdges(edgesOf([][2]graph.NodeID{
		{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
	}), true)
	if count := OrderedCount(g); count != 4 {
		t.Error("clique should have 4 triangles, got ", count)
	}
	if !TCVerifier(g, 4) {
		t.Error("verifier rejected the clique count")
	}
}

func Test_TCStar(t *testing.T) {
	star := [][2]graph.NodeID{}
	for leaf := graph.NodeID(1); leaf <= 10; leaf++ {
		star = append(star, [2]graph.NodeID{0, leaf})
	}
	g := graph.MakeGraphFromEdges(edgesOf(star), true)
	if count := OrderedCount(g); count != 0 {
		t.Error("star should be triangle free, got ", count)
	}
}

func Test_TCBipartite(t *testing.T) {
	// K3,3 has cycles but, being bipartite, no triangles.
	el := graph.EdgeList[graph.NodeID]{}
	for u := graph.NodeID(0); u < 3; u++ {
		for v := graph.NodeID(3); v < 6; v++ {
			el = append(el, graph.Edge[graph.NodeID]{U: u, V: v})
		}
	}
	g := graph.MakeGraphFromEdges(el, true)
	if count := OrderedCount(g); count != 0 {
		t.Error("bipartite graph should be triangle free, got ", count)
	}
}

func Test_TCEmptyGraph(t *testing.T) {
	g := graph.MakeGraphFromEdgesN(graph.EdgeList[graph.NodeID]{}, 4, true)
	if count := Hybrid(g); count != 0 {
		t.Error("empty graph should count zero, got ", count)
	}
}

func Test_TCRandomAgainstTrace(t *testing.T) {
	for _, scale := range []int{5, 6, 7} {
		el := graph.NewGenerator[graph.NodeID](scale, 8).GenerateRMATEL()
		g := graph.MakeGraphFromEdges(el, true)
		count := OrderedCount(g)
		if oracle := traceOracle(g); count != oracle {
			t.Error("scale ", scale, ": counted ", count, " but trace gives ", oracle)
		}
		if !TCVerifier(g, count) {
			t.Error("verifier rejected scale ", scale)
		}
	}
}

func Test_TCRelabelingInvariant(t *testing.T) {
	el := graph.NewGenerator[graph.NodeID](7, 12).GenerateRMATEL()
	g := graph.MakeGraphFromEdges(el, true)
	direct := OrderedCount(g)
	relabeled := OrderedCount(graph.RelabelByDegree(g))
	if direct != relabeled {
		t.Error("relabeling changed the count: ", direct, " vs ", relabeled)
	}
	if hybrid := Hybrid(g); hybrid != direct {
		t.Error("hybrid path changed the count: ", hybrid, " vs ", direct)
	}
}
