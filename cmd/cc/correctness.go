package main

import (
	"github.com/ScottSallinen/gravel/graph"
)

type unionFind []graph.NodeID

func (uf unionFind) find(u graph.NodeID) graph.NodeID {
	for uf[u] != u {
		uf[u] = uf[uf[u]]
		u = uf[u]
	}
	return u
}

func (uf unionFind) union(u, v graph.NodeID) {
	ru, rv := uf.find(u), uf.find(v)
	if ru != rv {
		uf[ru] = rv
	}
}

// Independent serial oracle: union-find over every edge (ignoring
// direction, so directed graphs check weak connectivity), then require
// the kernel's labelling to induce exactly the same partition.
func CCVerifier(g *graph.CSR[graph.NodeID], comp []graph.NodeID) bool {
	uf := make(unionFind, g.NumNodes())
	for u := range uf {
		uf[u] = graph.NodeID(u)
	}
	for u := 0; u < g.NumNodes(); u++ {
		for _, v := range g.OutNeigh(graph.NodeID(u)) {
			uf.union(graph.NodeID(u), v)
		}
	}
	labelToRoot := make(map[graph.NodeID]graph.NodeID)
	rootToLabel := make(map[graph.NodeID]graph.NodeID)
	for u := 0; u < g.NumNodes(); u++ {
		root := uf.find(graph.NodeID(u))
		if seen, ok := labelToRoot[comp[u]]; ok {
			if seen != root {
				return false
			}
		} else {
			labelToRoot[comp[u]] = root
		}
		if seen, ok := rootToLabel[root]; ok {
			if seen != comp[u] {
				return false
			}
		} else {
			rootToLabel[root] = comp[u]
		}
	}
	return true
}

func CCVerifyBench(g *graph.CSR[graph.NodeID], _ *graph.SourcePicker[graph.NodeID], comp []graph.NodeID) bool {
	return CCVerifier(g, comp)
}
