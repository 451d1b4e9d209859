package main

import (
	"testing"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/ScottSallinen/gravel/graph"
)

func edgesOf(pairs [][2]graph.NodeID) (el graph.EdgeList[graph.NodeID]) {
	for _, p := range pairs {
		el = append(el, graph.Edge[graph.NodeID]{U: p[0], V: p[1]})
	}
	return el
}

func Test_CCClique(t *testing.T) {
	g := graph.MakeGraphFromEdges(edgesOf([][2]graph.NodeID{
		{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
	}), true)
	comp := Afforest(g)
	for u := range comp {
		if comp[u] != 0 {
			t.Error("clique label at ", u, " is ", comp[u], " expected 0")
		}
	}
	if !CCVerifier(g, comp) {
		t.Error("verifier rejected clique labels")
	}
}

func Test_CCIsolatedVertex(t *testing.T) {
	g := graph.MakeGraphFromEdgesN(edgesOf([][2]graph.NodeID{
		{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
	}), 6, true)
	comp := Afforest(g)
	labels := make(map[graph.NodeID]bool)
	for u := range comp {
		labels[comp[u]] = true
	}
	if len(labels) != 3 {
		t.Error("expected clique plus two isolated labels, got ", len(labels))
	}
	if comp[5] == comp[0] {
		t.Error("isolated vertex shares the clique label")
	}
	if !CCVerifier(g, comp) {
		t.Error("verifier rejected labels with isolated vertices")
	}
}

func Test_CCTwoComponents(t *testing.T) {
	g := graph.MakeGraphFromEdges(edgesOf([][2]graph.NodeID{
		{0, 3}, {3, 7}, {7, 8}, {8, 9}, {9, 0},
		{1, 2}, {2, 4}, {4, 5}, {5, 6}, {6, 1},
	}), true)
	comp := Afforest(g)
	expectations := []graph.NodeID{0, 1, 1, 0, 1, 1, 1, 0, 0, 0}
	for u := range expectations {
		if (comp[u] == comp[0]) != (expectations[u] == 0) {
			t.Error("partition mismatch at ", u)
		}
	}
	if !CCVerifier(g, comp) {
		t.Error("verifier rejected two-component labels")
	}
}

func Test_CCDirectedWeak(t *testing.T) {
	// One-way chain plus a detached one-way pair: weak connectivity.
	g := graph.MakeGraphFromEdgesN(edgesOf([][2]graph.NodeID{
		{0, 1}, {1, 2}, {4, 3},
	}), 5, false)
	comp := Afforest(g)
	if comp[0] != comp[2] {
		t.Error("chain should be weakly connected")
	}
	if comp[3] != comp[4] {
		t.Error("pair should be weakly connected")
	}
	if comp[0] == comp[3] {
		t.Error("chain and pair should differ")
	}
	if !CCVerifier(g, comp) {
		t.Error("verifier rejected weak connectivity labels")
	}
}

func Test_CCEmptyGraph(t *testing.T) {
	g := graph.MakeGraphFromEdgesN(graph.EdgeList[graph.NodeID]{}, 4, true)
	comp := Afforest(g)
	for u := range comp {
		if comp[u] != graph.NodeID(u) {
			t.Error("edgeless vertices should keep their own label, at ", u)
		}
	}
	if !CCVerifier(g, comp) {
		t.Error("verifier rejected identity labels")
	}
}

func Test_CCRandomAgainstGonum(t *testing.T) {
	for _, scale := range []int{6, 8} {
		el := graph.NewGenerator[graph.NodeID](scale, 2).GenerateUniformEL()
		g := graph.MakeGraphFromEdges(el, true)
		comp := Afforest(g)
		if !CCVerifier(g, comp) {
			t.Error("verifier rejected random graph at scale ", scale)
		}

		oracle := simple.NewUndirectedGraph()
		for u := 0; u < g.NumNodes(); u++ {
			oracle.AddNode(simple.Node(u))
		}
		for u := 0; u < g.NumNodes(); u++ {
			for _, v := range g.OutNeigh(graph.NodeID(u)) {
				if graph.NodeID(u) != v {
					oracle.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
				}
			}
		}
		labels := make(map[graph.NodeID]bool)
		for u := range comp {
			labels[comp[u]] = true
		}
		components := topo.ConnectedComponents(oracle)
		if len(components) != len(labels) {
			t.Error("component count ", len(labels), " disagrees with oracle ", len(components))
		}
	}
}
