package main

import (
	"math/rand"
	"sync/atomic"

	"github.com/intel/forGoParallel/parallel"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/graph"
	"github.com/ScottSallinen/gravel/utils"
)

// Ordered enumeration: each triangle u > v > w is found exactly once, by
// intersecting u's and v's neighborhoods with a pointer that only moves
// forward. Requires a squished undirected graph.
func OrderedCount(g *graph.CSR[graph.NodeID]) int64 {
	var total int64
	parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
		local := int64(0)
		for x := low; x < high; x++ {
			u := graph.NodeID(x)
			adjU := g.OutNeigh(u)
			for _, v := range adjU {
				if v > u {
					break
				}
				i := 0
				for _, w := range g.OutNeigh(v) {
					if w > v {
						break
					}
					for adjU[i] < w {
						i++
					}
					if w == adjU[i] {
						local++
					}
				}
			}
		}
		atomic.AddInt64(&total, local)
	})
	return total
}

// Power-law detector: heavy-tailed degree distributions profit from a
// descending-degree relabel before counting. Samples degrees and compares
// mean against median.
func WorthRelabeling(g *graph.CSR[graph.NodeID]) bool {
	if float64(g.NumEdges())/float64(g.NumNodes()) < 10 {
		return false
	}
	numSamples := utils.Min(int64(1000), int64(g.NumNodes()))
	samples := make([]int64, numSamples)
	r := rand.New(rand.NewSource(graph.RandSeed))
	for trial := int64(0); trial < numSamples; trial++ {
		samples[trial] = g.OutDegree(graph.NodeID(r.Intn(g.NumNodes())))
	}
	sampleMean := float64(utils.Sum(samples)) / float64(numSamples)
	sampleMedian := float64(utils.Median(samples))
	return sampleMean > 2*sampleMedian
}

// Counts directly, or relabels by descending degree first when the
// degree distribution makes it worthwhile.
func Hybrid(g *graph.CSR[graph.NodeID]) int64 {
	if WorthRelabeling(g) {
		log.Debug().Msg("Relabeling by degree before counting.")
		return OrderedCount(graph.RelabelByDegree(g))
	}
	return OrderedCount(g)
}

func TCBench(g *graph.CSR[graph.NodeID], _ *graph.SourcePicker[graph.NodeID]) int64 {
	return Hybrid(g)
}

func PrintTriangleStats(g *graph.CSR[graph.NodeID], totalTriangles int64) {
	log.Info().Msg(utils.V(totalTriangles) + " triangles")
}

// Serial oracle: sum of neighborhood intersections over every directed
// edge counts each triangle six times.
func TCVerifier(g *graph.CSR[graph.NodeID], totalTriangles int64) bool {
	total := int64(0)
	for x := 0; x < g.NumNodes(); x++ {
		u := graph.NodeID(x)
		adjU := g.OutNeigh(u)
		for _, v := range adjU {
			adjV := g.OutNeigh(v)
			i, j := 0, 0
			for i < len(adjU) && j < len(adjV) {
				if adjU[i] < adjV[j] {
					i++
				} else if adjU[i] > adjV[j] {
					j++
				} else {
					total++
					i++
					j++
				}
			}
		}
	}
	return total == totalTriangles*6
}

func TCVerifyBench(g *graph.CSR[graph.NodeID], _ *graph.SourcePicker[graph.NodeID], totalTriangles int64) bool {
	return TCVerifier(g, totalTriangles)
}
