package graph

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_ReadEL(t *testing.T) {
	path := writeTempFile(t, "tiny.el", "# comment\n0 1\n1 2\n2 0\n")
	el, hasWeights := ReadEdgeList[NodeID](path)
	assertEqual(t, false, hasWeights, "unweighted")
	assertEqual(t, 3, len(el), "edges")
	assertEqual(t, Edge[NodeID]{U: 1, V: 2}, el[1], "edge content")
}

func Test_ReadWEL(t *testing.T) {
	path := writeTempFile(t, "tiny.wel", "0 1 7\n1 2 9\n")
	el, hasWeights := ReadEdgeList[WNode](path)
	assertEqual(t, true, hasWeights, "weighted")
	assertEqual(t, Edge[WNode]{U: 1, V: WNode{Dst: 2, W: 9}}, el[1], "edge content")
}

func Test_ReadDIMACS(t *testing.T) {
	path := writeTempFile(t, "tiny.gr", "c comment\np sp 3 2\na 1 2 5\na 2 3 4\n")
	el, hasWeights := ReadEdgeList[WNode](path)
	assertEqual(t, true, hasWeights, "weighted")
	assertEqual(t, 2, len(el), "edges")
	assertEqual(t, Edge[WNode]{U: 0, V: WNode{Dst: 1, W: 5}}, el[0], "one indexed shift")
}

func Test_ReadMetis(t *testing.T) {
	path := writeTempFile(t, "tiny.graph", "% comment\n3 2\n2 3\n1\n1\n")
	el, _ := ReadEdgeList[NodeID](path)
	assertEqual(t, 4, len(el), "adjacency entries")
	assertEqual(t, Edge[NodeID]{U: 0, V: 1}, el[0], "first entry")
	assertEqual(t, Edge[NodeID]{U: 2, V: 0}, el[3], "last entry")
}

func Test_SerializedRoundTrip(t *testing.T) {
	g := MakeGraphFromEdges(k4Edges(), true)
	path := filepath.Join(t.TempDir(), "k4.sg")
	WriteSerializedGraph(g, path)
	back := ReadSerializedGraph[NodeID](path)
	checkInvariants(t, back)
	sameTopology(t, g, back, "round trip")
}

func Test_SerializedDirectedRoundTrip(t *testing.T) {
	el := edgesOf([][2]NodeID{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {1, 3}})
	g := MakeGraphFromEdges(el, false)
	path := filepath.Join(t.TempDir(), "ring.sg")
	WriteSerializedGraph(g, path)
	back := ReadSerializedGraph[NodeID](path)
	assertEqual(t, true, back.Directed(), "directed preserved")
	sameTopology(t, g, back, "round trip")
	for u := NodeID(0); int(u) < g.NumNodes(); u++ {
		assertEqual(t, g.InNeigh(u), back.InNeigh(u), "inverse adjacency")
	}
}

func Test_SerializedWeightedRoundTrip(t *testing.T) {
	el := EdgeList[WNode]{
		{U: 0, V: WNode{Dst: 1, W: 2}},
		{U: 1, V: WNode{Dst: 2, W: 8}},
		{U: 2, V: WNode{Dst: 0, W: 4}},
	}
	g := MakeGraphFromEdges(el, true)
	path := filepath.Join(t.TempDir(), "tri.wsg")
	WriteSerializedGraph(g, path)
	back := ReadSerializedGraph[WNode](path)
	assertEqual(t, g.NumEdgesDirected(), back.NumEdgesDirected(), "edges")
	for u := NodeID(0); int(u) < g.NumNodes(); u++ {
		assertEqual(t, g.OutNeigh(u), back.OutNeigh(u), "weighted adjacency")
	}
}

func Test_WriteEdgeListText(t *testing.T) {
	g := MakeGraphFromEdges(edgesOf([][2]NodeID{{0, 1}, {1, 2}}), false)
	path := filepath.Join(t.TempDir(), "out.el")
	WriteEdgeList(g, path)
	el, _ := ReadEdgeList[NodeID](path)
	back := MakeGraphFromEdgesN(el, g.NumNodes(), false)
	sameTopology(t, g, back, "text round trip")
}
