package main

import (
	"sync/atomic"

	"github.com/intel/forGoParallel/parallel"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/graph"
	"github.com/ScottSallinen/gravel/utils"
)

// Parallel BFS that counts shortest paths and marks successor edges.
// The successor bitmap is indexed by the absolute slot of each neighbor
// within the flat out-neighbor array, so one bit exists per directed edge.
// Returns the frontier of every BFS level (slices into the queue's
// backing array, valid until the queue is reset).
func pBFS(g *graph.CSR[graph.NodeID], source graph.NodeID, pathCounts []int32,
	succ utils.Bitmap, queue *utils.SlidingQueue[graph.NodeID]) [][]graph.NodeID {

	depths := make([]int32, g.NumNodes())
	utils.Fill(depths, -1)
	depths[source] = 0
	pathCounts[source] = 1
	queue.PushBack(source)
	queue.SlideWindow()
	levels := [][]graph.NodeID{queue.Window()}

	depth := int32(0)
	for !queue.Empty() {
		depth++
		window := queue.Window()
		parallel.Range(0, len(window), 0, func(low, high int) {
			lqueue := utils.NewQueueBuffer(queue)
			for i := low; i < high; i++ {
				u := window[i]
				uOffset := g.OutOffset(u)
				for j, v := range g.OutNeigh(u) {
					if atomic.LoadInt32(&depths[v]) == -1 &&
						atomic.CompareAndSwapInt32(&depths[v], -1, depth) {
						lqueue.PushBack(v)
					}
					if atomic.LoadInt32(&depths[v]) == depth {
						succ.SetAtomic(uOffset + int64(j))
						atomic.AddInt32(&pathCounts[v], pathCounts[u])
					}
				}
			}
			lqueue.Flush()
		})
		queue.SlideWindow()
		if queue.Size() > 0 {
			levels = append(levels, queue.Window())
		}
	}
	return levels
}

// Approximate Brandes: forward path-counting BFS from each sampled
// source, then dependency back-propagation one depth at a time. Scores
// are normalized by the maximum at the end.
func Brandes(g *graph.CSR[graph.NodeID], pick func() graph.NodeID, numIters int) []float32 {
	scores := make([]float32, g.NumNodes())
	pathCounts := make([]int32, g.NumNodes())
	succ := utils.NewBitmap(g.NumEdgesDirected())
	queue := utils.NewSlidingQueue[graph.NodeID](int64(g.NumNodes()))

	for iter := 0; iter < numIters; iter++ {
		source := pick()
		log.Debug().Msg("source: " + utils.V(source))
		utils.Fill(pathCounts, 0)
		utils.Fill(succ, 0)
		queue.Reset()
		levels := pBFS(g, source, pathCounts, succ, queue)

		deltas := make([]float32, g.NumNodes())
		for d := len(levels) - 1; d >= 0; d-- {
			level := levels[d]
			parallel.Range(0, len(level), 0, func(low, high int) {
				for i := low; i < high; i++ {
					u := level[i]
					deltaU := float32(0)
					uOffset := g.InOffset(u)
					for j, v := range g.InNeigh(u) {
						if succ.Get(uOffset + int64(j)) {
							deltaU += float32(pathCounts[u]) / float32(pathCounts[v]) * (1 + deltas[v])
						}
					}
					deltas[u] = deltaU
					scores[u] += deltaU
				}
			})
		}
	}

	biggestScore := float32(0)
	for u := range scores {
		biggestScore = utils.Max(biggestScore, scores[u])
	}
	if biggestScore > 0 {
		parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
			for u := low; u < high; u++ {
				scores[u] = scores[u] / biggestScore
			}
		})
	}
	return scores
}

func BCBench(opts *graph.BenchOptions) func(*graph.CSR[graph.NodeID], *graph.SourcePicker[graph.NodeID]) []float32 {
	return func(g *graph.CSR[graph.NodeID], sp *graph.SourcePicker[graph.NodeID]) []float32 {
		return Brandes(g, sp.PickNext, opts.Iterations)
	}
}

func PrintTopScores(g *graph.CSR[graph.NodeID], scores []float32) {
	for _, p := range utils.FindTopNInArray(scores, 5) {
		log.Info().Msg(utils.V(p.First) + ": " + utils.F("%f", p.Second))
	}
}
