package graph

import (
	"testing"
)

func Test_RMATDeterminism(t *testing.T) {
	genA := NewGenerator[NodeID](10, 16)
	genB := NewGenerator[NodeID](10, 16)
	a := genA.GenerateRMATEL()
	b := genB.GenerateRMATEL()
	assertEqual(t, len(a), len(b), "lengths")
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("edge lists diverge at ", i)
		}
	}
}

func Test_UniformDeterminism(t *testing.T) {
	a := NewGenerator[NodeID](10, 16).GenerateUniformEL()
	b := NewGenerator[NodeID](10, 16).GenerateUniformEL()
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("edge lists diverge at ", i)
		}
	}
}

func Test_GeneratorShape(t *testing.T) {
	gen := NewGenerator[NodeID](8, 4)
	el := gen.GenerateUniformEL()
	assertEqual(t, 4<<8, len(el), "edge count")
	for i := range el {
		if el[i].U < 0 || int(el[i].U) >= 1<<8 || el[i].V < 0 || int(el[i].V) >= 1<<8 {
			t.Fatal("endpoint out of range at ", i)
		}
	}
}

func Test_InsertWeightsRangeAndDeterminism(t *testing.T) {
	a := NewGenerator[WNode](9, 8).GenerateUniformEL()
	b := NewGenerator[WNode](9, 8).GenerateUniformEL()
	InsertWeights(a)
	InsertWeights(b)
	for i := range a {
		w := a[i].V.Wt()
		if w < 1 || w > 255 {
			t.Fatal("weight out of range at ", i, ": ", w)
		}
		if a[i] != b[i] {
			t.Fatal("weighted lists diverge at ", i)
		}
	}
}

func Test_GeneratedGraphBuilds(t *testing.T) {
	el := NewGenerator[NodeID](8, 8).GenerateRMATEL()
	g := MakeGraphFromEdges(el, true)
	checkInvariants(t, g)
	if g.NumNodes() < 2 || g.NumNodes() > 1<<8 {
		t.Fatal("unexpected node count ", g.NumNodes())
	}
}
