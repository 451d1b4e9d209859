package graph

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/utils"
)

// Vertex identifier. Negative values are sentinels inside kernels.
type NodeID int32

// Edge weight; weighted inputs use values in [1, 255].
type Weight int32

func (n NodeID) ID() NodeID { return n }
func (n NodeID) Wt() Weight { return 1 }

// Weighted destination: a neighbor with the weight of the connecting edge.
type WNode struct {
	Dst NodeID
	W   Weight
}

func (n WNode) ID() NodeID { return n.Dst }
func (n WNode) Wt() Weight { return n.W }

// The element type of an adjacency list: a bare neighbor, or one carrying
// an edge weight.
type Destination interface {
	NodeID | WNode
	ID() NodeID
	Wt() Weight
}

type Edge[D Destination] struct {
	U NodeID
	V D
}

type EdgeList[D Destination] []Edge[D]

func destOf[D Destination](v NodeID, w Weight) (d D) {
	switch p := any(&d).(type) {
	case *NodeID:
		*p = v
	case *WNode:
		*p = WNode{Dst: v, W: w}
	}
	return d
}

func isWeighted[D Destination]() bool {
	var d D
	_, weighted := any(d).(WNode)
	return weighted
}

// Compressed sparse row graph. Neighborhoods are sorted ascending,
// duplicate free, and exclude self loops once the builder is done.
// Kernels borrow it read-only.
type CSR[D Destination] struct {
	directed   bool
	numEdges   int64 // Directed edge count.
	outOffsets []int64
	outNeigh   []D
	inOffsets  []int64 // Only for directed graphs built with inverse adjacency.
	inNeigh    []D
}

func (g *CSR[D]) NumNodes() int {
	return len(g.outOffsets) - 1
}

// Count of directed edges (for undirected graphs, twice the edge count).
func (g *CSR[D]) NumEdgesDirected() int64 {
	return g.numEdges
}

func (g *CSR[D]) NumEdges() int64 {
	if g.directed {
		return g.numEdges
	}
	return g.numEdges / 2
}

func (g *CSR[D]) Directed() bool {
	return g.directed
}

func (g *CSR[D]) OutDegree(u NodeID) int64 {
	return g.outOffsets[u+1] - g.outOffsets[u]
}

func (g *CSR[D]) InDegree(u NodeID) int64 {
	if !g.directed {
		return g.OutDegree(u)
	}
	if g.inOffsets == nil {
		log.Panic().Msg("in degree unavailable: graph built without inverse adjacency")
	}
	return g.inOffsets[u+1] - g.inOffsets[u]
}

func (g *CSR[D]) OutNeigh(u NodeID) []D {
	return g.outNeigh[g.outOffsets[u]:g.outOffsets[u+1]]
}

// The outgoing neighborhood starting at the k-th entry; empty when u has
// no more than k neighbors.
func (g *CSR[D]) OutNeighFrom(u NodeID, k int64) []D {
	start := utils.Min(g.outOffsets[u]+k, g.outOffsets[u+1])
	return g.outNeigh[start:g.outOffsets[u+1]]
}

// Probes the k-th outgoing neighbor without materializing the slice.
func (g *CSR[D]) OutNeighAt(u NodeID, k int64) (d D, ok bool) {
	if g.outOffsets[u]+k >= g.outOffsets[u+1] {
		return d, false
	}
	return g.outNeigh[g.outOffsets[u]+k], true
}

func (g *CSR[D]) InNeigh(u NodeID) []D {
	if !g.directed {
		return g.OutNeigh(u)
	}
	if g.inOffsets == nil {
		log.Panic().Msg("in neighbors unavailable: graph built without inverse adjacency")
	}
	return g.inNeigh[g.inOffsets[u]:g.inOffsets[u+1]]
}

// Absolute index of the first out-slot of u within the flat neighbor
// array. Slot indexes address bits of edge-indexed bitmaps.
func (g *CSR[D]) OutOffset(u NodeID) int64 {
	return g.outOffsets[u]
}

func (g *CSR[D]) InOffset(u NodeID) int64 {
	if !g.directed {
		return g.outOffsets[u]
	}
	return g.inOffsets[u]
}

func (g *CSR[D]) PrintStats() {
	degree := float64(0)
	if g.NumNodes() > 0 {
		degree = float64(g.NumEdges()) / float64(g.NumNodes())
	}
	kind := "undirected"
	if g.directed {
		kind = "directed"
	}
	log.Info().Msg("Graph has " + utils.V(g.NumNodes()) + " nodes and " +
		utils.V(g.NumEdges()) + " " + kind + " edges for degree: " + utils.F("%.2f", degree))
}

func (g *CSR[D]) PrintTopology() {
	for u := NodeID(0); int(u) < g.NumNodes(); u++ {
		line := utils.V(u) + ":"
		for _, d := range g.OutNeigh(u) {
			line += " " + utils.V(d.ID())
		}
		log.Debug().Msg(line)
	}
}
