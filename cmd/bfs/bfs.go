package main

import (
	"sync/atomic"

	"github.com/intel/forGoParallel/parallel"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/graph"
	"github.com/ScottSallinen/gravel/utils"
)

// Direction switch knobs (Beamer's heuristic). Not correctness relevant.
const (
	bfsAlpha = int64(15)
	bfsBeta  = int64(18)
)

// Unvisited vertices hold the negated out-degree (-1 for degree 0), so a
// successful claim also yields the scouting cost of the claimed vertex.
func initParent(g *graph.CSR[graph.NodeID]) []graph.NodeID {
	parent := make([]graph.NodeID, g.NumNodes())
	parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
		for u := low; u < high; u++ {
			parent[u] = graph.NodeID(-utils.Max(g.OutDegree(graph.NodeID(u)), 1))
		}
	})
	return parent
}

// Push step: expand the frontier queue, claiming unvisited neighbors via
// compare-and-swap. Returns the scout count (sum of claimed degrees).
func topDownStep(g *graph.CSR[graph.NodeID], parent []graph.NodeID, queue *utils.SlidingQueue[graph.NodeID]) int64 {
	var scoutCount int64
	window := queue.Window()
	parallel.Range(0, len(window), 0, func(low, high int) {
		lqueue := utils.NewQueueBuffer(queue)
		local := int64(0)
		for i := low; i < high; i++ {
			u := window[i]
			for _, v := range g.OutNeigh(u) {
				currVal := graph.NodeID(atomic.LoadInt32((*int32)(&parent[v])))
				if currVal < 0 {
					if atomic.CompareAndSwapInt32((*int32)(&parent[v]), int32(currVal), int32(u)) {
						lqueue.PushBack(v)
						local += int64(-currVal)
					}
				}
			}
		}
		lqueue.Flush()
		atomic.AddInt64(&scoutCount, local)
	})
	return scoutCount
}

// Pull step: every unvisited vertex scans its incoming neighbors for one
// already in the frontier. Returns how many vertices awoke.
func bottomUpStep(g *graph.CSR[graph.NodeID], parent []graph.NodeID, front utils.Bitmap, next utils.Bitmap) int64 {
	var awakeCount int64
	next.Reset()
	parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
		local := int64(0)
		for u := low; u < high; u++ {
			if parent[u] < 0 {
				for _, v := range g.InNeigh(graph.NodeID(u)) {
					if front.Get(int64(v)) {
						parent[u] = v
						local++
						next.SetAtomic(int64(u))
						break
					}
				}
			}
		}
		atomic.AddInt64(&awakeCount, local)
	})
	return awakeCount
}

func queueToBitmap(queue *utils.SlidingQueue[graph.NodeID], bm utils.Bitmap) {
	window := queue.Window()
	parallel.Range(0, len(window), 0, func(low, high int) {
		for i := low; i < high; i++ {
			bm.SetAtomic(int64(window[i]))
		}
	})
}

func bitmapToQueue(g *graph.CSR[graph.NodeID], bm utils.Bitmap, queue *utils.SlidingQueue[graph.NodeID]) {
	parallel.Range(0, g.NumNodes(), 0, func(low, high int) {
		lqueue := utils.NewQueueBuffer(queue)
		for u := low; u < high; u++ {
			if bm.Get(int64(u)) {
				lqueue.PushBack(graph.NodeID(u))
			}
		}
		lqueue.Flush()
	})
	queue.SlideWindow()
}

// Direction-optimizing BFS. Starts pushing from the frontier, switches to
// pulling when the frontier's scouting work overtakes the unexplored edge
// budget, and switches back once the frontier shrinks again.
func DOBFS(g *graph.CSR[graph.NodeID], source graph.NodeID) []graph.NodeID {
	log.Debug().Msg("source: " + utils.V(source))
	parent := initParent(g)
	parent[source] = source
	queue := utils.NewSlidingQueue[graph.NodeID](int64(g.NumNodes()))
	queue.PushBack(source)
	queue.SlideWindow()
	front := utils.NewBitmap(int64(g.NumNodes()))
	curr := utils.NewBitmap(int64(g.NumNodes()))

	edgesToCheck := g.NumEdgesDirected()
	scoutCount := g.OutDegree(source)
	for !queue.Empty() {
		if scoutCount > edgesToCheck/bfsAlpha {
			front.Reset()
			queueToBitmap(queue, front)
			awakeCount := queue.Size()
			queue.SlideWindow()
			for {
				oldAwakeCount := awakeCount
				awakeCount = bottomUpStep(g, parent, front, curr)
				front.Swap(&curr)
				if awakeCount < oldAwakeCount && awakeCount <= int64(g.NumNodes())/bfsBeta {
					break
				}
			}
			bitmapToQueue(g, front, queue)
			scoutCount = 1
		} else {
			edgesToCheck -= scoutCount
			scoutCount = topDownStep(g, parent, queue)
			queue.SlideWindow()
		}
	}
	return parent
}

// BFS tree parents; negative entries are unreached (the source points at
// itself).
func BFSBench(g *graph.CSR[graph.NodeID], sp *graph.SourcePicker[graph.NodeID]) []graph.NodeID {
	return DOBFS(g, sp.PickNext())
}

func PrintBFSStats(g *graph.CSR[graph.NodeID], parent []graph.NodeID) {
	reached := 0
	for u := range parent {
		if parent[u] >= 0 {
			reached++
		}
	}
	log.Info().Msg("BFS Tree reaches " + utils.V(reached) + " of " + utils.V(g.NumNodes()) + " vertices")
}

// Serial oracle: recompute hop depths with a textbook frontier BFS, then
// check every parent claim against them.
func BFSVerifier(g *graph.CSR[graph.NodeID], source graph.NodeID, parent []graph.NodeID) bool {
	depth := make([]int64, g.NumNodes())
	for u := range depth {
		depth[u] = -1
	}
	depth[source] = 0
	frontier := []graph.NodeID{source}
	for len(frontier) > 0 {
		var next []graph.NodeID
		for _, u := range frontier {
			for _, v := range g.OutNeigh(u) {
				if depth[v] == -1 {
					depth[v] = depth[u] + 1
					next = append(next, v)
				}
			}
		}
		frontier = next
	}
	return parallel.RangeAnd(0, g.NumNodes(), 0, func(low, high int) bool {
		for u := low; u < high; u++ {
			if depth[u] != -1 && parent[u] >= 0 {
				if graph.NodeID(u) == source {
					if parent[u] != source || depth[u] != 0 {
						return false
					}
					continue
				}
				if depth[u] != depth[parent[u]]+1 {
					return false
				}
				found := false
				for _, v := range g.OutNeigh(parent[u]) {
					if v == graph.NodeID(u) {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			} else if depth[u] != -1 || parent[u] >= 0 {
				return false
			}
		}
		return true
	})
}

func BFSVerifyBench(g *graph.CSR[graph.NodeID], vsp *graph.SourcePicker[graph.NodeID], parent []graph.NodeID) bool {
	return BFSVerifier(g, vsp.PickNext(), parent)
}
