package graph

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/ScottSallinen/gravel/utils"
)

func assertEqual(_ *testing.T, expected any, actual any, prefix string) {
	if reflect.DeepEqual(expected, actual) {
		return
	}
	str := prefix + ": Expected: " + utils.V(expected) + "; != given: " + utils.V(actual)
	panic(str)
}

func edgesOf(pairs [][2]NodeID) (el EdgeList[NodeID]) {
	for _, p := range pairs {
		el = append(el, Edge[NodeID]{U: p[0], V: p[1]})
	}
	return el
}

// The 4-clique used across the kernel suites.
func k4Edges() EdgeList[NodeID] {
	return edgesOf([][2]NodeID{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
}

func checkInvariants[D Destination](t *testing.T, g *CSR[D]) {
	n := g.NumNodes()
	assertEqual(t, int64(0), g.OutOffset(0), "first offset")
	total := int64(0)
	for u := NodeID(0); int(u) < n; u++ {
		adj := g.OutNeigh(u)
		total += int64(len(adj))
		for i := range adj {
			if adj[i].ID() == u {
				t.Fatal("self loop at ", u)
			}
			if i > 0 && adj[i-1].ID() >= adj[i].ID() {
				t.Fatal("adjacency not strictly ascending at ", u)
			}
		}
	}
	assertEqual(t, g.NumEdgesDirected(), total, "degree sum is M")
	if !g.Directed() {
		for u := NodeID(0); int(u) < n; u++ {
			for _, v := range g.OutNeigh(u) {
				if !hasDest(g.OutNeigh(v.ID()), u) {
					t.Fatal("missing inverse of ", u, "->", v.ID())
				}
			}
		}
	} else if g.inOffsets != nil {
		inTotal := int64(0)
		for u := NodeID(0); int(u) < n; u++ {
			inTotal += g.InDegree(u)
			for _, v := range g.InNeigh(u) {
				if !hasDest(g.OutNeigh(v.ID()), u) {
					t.Fatal("in edge without out edge: ", v.ID(), "->", u)
				}
			}
		}
		assertEqual(t, total, inTotal, "inverse edge count")
	}
}

func hasDest[D Destination](adj []D, target NodeID) bool {
	for i := range adj {
		if adj[i].ID() == target {
			return true
		}
	}
	return false
}

func Test_BuildK4(t *testing.T) {
	g := MakeGraphFromEdges(k4Edges(), true)
	assertEqual(t, 4, g.NumNodes(), "nodes")
	assertEqual(t, int64(6), g.NumEdges(), "edges")
	assertEqual(t, int64(12), g.NumEdgesDirected(), "directed edges")
	checkInvariants(t, g)
	for u := NodeID(0); u < 4; u++ {
		assertEqual(t, int64(3), g.OutDegree(u), "degree")
	}
}

func Test_BuildRemovesDuplicatesAndSelfLoops(t *testing.T) {
	el := edgesOf([][2]NodeID{{0, 1}, {0, 1}, {1, 1}, {1, 0}, {2, 0}, {0, 2}, {2, 2}})
	g := MakeGraphFromEdges(el, false)
	checkInvariants(t, g)
	assertEqual(t, int64(4), g.NumEdgesDirected(), "squished count")
	assertEqual(t, int64(1), g.OutDegree(1), "vertex 1 out")
}

func Test_BuildDirectedPath(t *testing.T) {
	el := edgesOf([][2]NodeID{{0, 1}, {1, 2}, {2, 3}, {3, 4}})
	g := MakeGraphFromEdges(el, false)
	assertEqual(t, true, g.Directed(), "directed")
	checkInvariants(t, g)
	assertEqual(t, int64(0), g.InDegree(0), "source in degree")
	assertEqual(t, int64(1), g.InDegree(4), "sink in degree")
}

func Test_BuildEmptyGraph(t *testing.T) {
	g := MakeGraphFromEdgesN(EdgeList[NodeID]{}, 4, true)
	assertEqual(t, 4, g.NumNodes(), "pinned nodes")
	assertEqual(t, int64(0), g.NumEdges(), "no edges")
	checkInvariants(t, g)
}

func Test_BuildIsolatedVertex(t *testing.T) {
	g := MakeGraphFromEdgesN(k4Edges(), 6, true)
	assertEqual(t, 6, g.NumNodes(), "nodes include isolated")
	assertEqual(t, int64(0), g.OutDegree(5), "isolated degree")
	checkInvariants(t, g)
}

func randomEdges(n int, m int, seed int64) EdgeList[NodeID] {
	r := rand.New(rand.NewSource(seed))
	el := make(EdgeList[NodeID], m)
	for i := range el {
		el[i] = Edge[NodeID]{U: NodeID(r.Intn(n)), V: NodeID(r.Intn(n))}
	}
	return el
}

func sameTopology(t *testing.T, a, b *CSR[NodeID], prefix string) {
	assertEqual(t, a.NumNodes(), b.NumNodes(), prefix+" nodes")
	assertEqual(t, a.NumEdgesDirected(), b.NumEdgesDirected(), prefix+" edges")
	for u := NodeID(0); int(u) < a.NumNodes(); u++ {
		assertEqual(t, a.OutNeigh(u), b.OutNeigh(u), prefix+" out of "+utils.V(u))
	}
}

func Test_InPlaceMatchesCopying(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		el := randomEdges(64, 512, seed)
		elCopy := make(EdgeList[NodeID], len(el))
		copy(elCopy, el)

		copying := MakeGraphFromEdgesN(el, 64, false)
		b := &Builder[NodeID]{inPlace: true, numNodes: 64}
		inPlace := b.MakeGraphFromEL(elCopy)

		checkInvariants(t, copying)
		checkInvariants(t, inPlace)
		sameTopology(t, copying, inPlace, "directed")
		for u := NodeID(0); int(u) < 64; u++ {
			assertEqual(t, copying.InNeigh(u), inPlace.InNeigh(u), "in of "+utils.V(u))
		}
	}
}

func Test_InPlaceSymmetrizeMatchesCopying(t *testing.T) {
	for _, seed := range []int64{4, 5, 6} {
		el := randomEdges(64, 512, seed)
		elCopy := make(EdgeList[NodeID], len(el))
		copy(elCopy, el)

		copying := MakeGraphFromEdgesN(el, 64, true)
		b := &Builder[NodeID]{symmetrize: true, inPlace: true, numNodes: 64}
		inPlace := b.MakeGraphFromEL(elCopy)

		checkInvariants(t, copying)
		checkInvariants(t, inPlace)
		sameTopology(t, copying, inPlace, "symmetrized")
	}
}

func Test_ParallelPrefixSum(t *testing.T) {
	counts := make([]int64, 100000)
	r := rand.New(rand.NewSource(42))
	for i := range counts {
		counts[i] = int64(r.Intn(8))
	}
	offsets := ParallelPrefixSum(counts)
	assertEqual(t, int64(0), offsets[0], "exclusive start")
	running := int64(0)
	for i := range counts {
		assertEqual(t, running, offsets[i], utils.V(i))
		running += counts[i]
	}
	assertEqual(t, running, offsets[len(counts)], "total")
}

func Test_RelabelByDegree(t *testing.T) {
	// A star with extra rim edges: vertex 4 is the hub.
	el := edgesOf([][2]NodeID{{4, 0}, {4, 1}, {4, 2}, {4, 3}, {0, 1}, {2, 3}, {4, 5}})
	g := MakeGraphFromEdges(el, true)
	relabeled := RelabelByDegree(g)
	checkInvariants(t, relabeled)
	assertEqual(t, g.NumEdgesDirected(), relabeled.NumEdgesDirected(), "edge count preserved")
	assertEqual(t, g.OutDegree(4), relabeled.OutDegree(0), "hub first")
	for u := NodeID(1); int(u) < relabeled.NumNodes(); u++ {
		if relabeled.OutDegree(u) > relabeled.OutDegree(u-1) {
			t.Fatal("degrees not descending at ", u)
		}
	}
}

func Test_WeightedBuild(t *testing.T) {
	el := EdgeList[WNode]{
		{U: 0, V: WNode{Dst: 1, W: 3}},
		{U: 1, V: WNode{Dst: 2, W: 5}},
	}
	g := MakeGraphFromEdges(el, true)
	checkInvariants(t, g)
	assertEqual(t, Weight(3), g.OutNeigh(0)[0].Wt(), "weight kept")
	assertEqual(t, Weight(3), g.OutNeigh(1)[0].Wt(), "inverse weight kept")
}
