package main

import (
	"math/rand"
	"sync/atomic"

	"github.com/intel/forGoParallel/parallel"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/graph"
	"github.com/ScottSallinen/gravel/utils"
)

// Places u and v in the component with the lower label: lock-free hooking
// of the higher root onto the lower, retrying through parent changes.
func Link(u graph.NodeID, v graph.NodeID, comp []graph.NodeID) {
	p1 := graph.NodeID(atomic.LoadInt32((*int32)(&comp[u])))
	p2 := graph.NodeID(atomic.LoadInt32((*int32)(&comp[v])))
	for p1 != p2 {
		high := utils.Max(p1, p2)
		low := utils.Min(p1, p2)
		pHigh := graph.NodeID(atomic.LoadInt32((*int32)(&comp[high])))
		// Was already 'low' or succeeded in writing 'low'.
		if pHigh == low ||
			(pHigh == high && atomic.CompareAndSwapInt32((*int32)(&comp[high]), int32(high), int32(low))) {
			break
		}
		p1 = comp[comp[high]]
		p2 = comp[low]
	}
}

// Flattens the union-find forest so every vertex points at its root.
func Compress(g *graph.CSR[graph.NodeID], comp []graph.NodeID) {
	parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
		for u := low; u < high; u++ {
			for comp[u] != comp[comp[u]] {
				comp[u] = comp[comp[u]]
			}
		}
	})
}

// Approximates the most common component label from a bounded sample.
func SampleFrequentElement(comp []graph.NodeID, numSamples int) graph.NodeID {
	counts := make(map[graph.NodeID]int)
	r := rand.New(rand.NewSource(graph.RandSeed))
	for i := 0; i < numSamples; i++ {
		counts[comp[r.Intn(len(comp))]]++
	}
	mostFrequent := graph.NodeID(0)
	best := 0
	for label, count := range counts {
		if count > best {
			best = count
			mostFrequent = label
		}
	}
	log.Debug().Msg("Skipping largest intermediate component (ID: " + utils.V(mostFrequent) +
		", approx. " + utils.V(best*100/numSamples) + "% of the graph)")
	return mostFrequent
}

const kNeighborRounds = 2

// Afforest: union-find connectivity that first processes a sampled
// subgraph (the first couple of neighbors of every vertex), identifies
// the dominant intermediate component, and only links the full
// neighborhoods of vertices outside it.
func Afforest(g *graph.CSR[graph.NodeID]) []graph.NodeID {
	comp := make([]graph.NodeID, g.NumNodes())
	parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
		for u := low; u < high; u++ {
			comp[u] = graph.NodeID(u)
		}
	})

	for r := int64(0); r < kNeighborRounds; r++ {
		parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
			for u := low; u < high; u++ {
				if v, ok := g.OutNeighAt(graph.NodeID(u), r); ok {
					Link(graph.NodeID(u), v, comp)
				}
			}
		})
		Compress(g, comp)
	}

	c := SampleFrequentElement(comp, 1024)

	parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
		for u := low; u < high; u++ {
			if comp[u] == c {
				continue
			}
			for _, v := range g.OutNeighFrom(graph.NodeID(u), kNeighborRounds) {
				Link(graph.NodeID(u), v, comp)
			}
			if g.Directed() {
				for _, v := range g.InNeigh(graph.NodeID(u)) {
					Link(graph.NodeID(u), v, comp)
				}
			}
		}
	})
	Compress(g, comp)
	return comp
}

func CCBench(g *graph.CSR[graph.NodeID], _ *graph.SourcePicker[graph.NodeID]) []graph.NodeID {
	return Afforest(g)
}

func PrintCompStats(g *graph.CSR[graph.NodeID], comp []graph.NodeID) {
	counts := make(map[graph.NodeID]int)
	for u := range comp {
		counts[comp[u]]++
	}
	largest := 0
	for _, count := range counts {
		largest = utils.Max(largest, count)
	}
	log.Info().Msg(utils.V(len(counts)) + " components, largest has " + utils.V(largest) + " vertices")
}
