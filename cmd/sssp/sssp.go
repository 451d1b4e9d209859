package main

import (
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/graph"
	"github.com/ScottSallinen/gravel/utils"
)

const kDistInf = graph.Weight(math.MaxInt32 / 2)
const kMaxBin = int64(math.MaxInt64 / 2)

// Local bins at the current index below this size are drained immediately
// instead of waiting for the next shared round.
const kBinSizeThreshold = 1000

// Cyclic barrier for the persistent delta-stepping workers.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	count   int
	parties int
	phase   uint64
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *barrier) wait() {
	b.mu.Lock()
	phase := b.phase
	b.count++
	if b.count == b.parties {
		b.count = 0
		b.phase++
		b.cond.Broadcast()
	} else {
		for phase == b.phase {
			b.cond.Wait()
		}
	}
	b.mu.Unlock()
}

// Delta-stepping: relaxations are batched into distance bands of width
// delta. Two shared bins double-buffer the current and next band; each
// worker keeps local bins and swaps the lowest one in at the round end.
// A vertex that moved to a lower band is skipped by the dist pre-check
// rather than removed.
func DeltaStep(g *graph.CSR[graph.WNode], source graph.NodeID, delta graph.Weight) []graph.Weight {
	log.Debug().Msg("source: " + utils.V(source))
	dist := make([]graph.Weight, g.NumNodes())
	utils.Fill(dist, kDistInf)
	dist[source] = 0

	frontier := make([]graph.NodeID, g.NumEdgesDirected()+1)
	frontier[0] = source
	sharedIndexes := [2]int64{0, kMaxBin}
	frontierTails := [2]int64{1, 0}
	cursors := [2]int64{0, 0}
	var nextMu sync.Mutex

	numWorkers := runtime.GOMAXPROCS(0)
	bar := newBarrier(numWorkers)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			var localBins [][]graph.NodeID

			relax := func(u graph.NodeID) {
				du := graph.Weight(atomic.LoadInt32((*int32)(&dist[u])))
				for _, wn := range g.OutNeigh(u) {
					newDist := du + wn.W
					for {
						oldDist := graph.Weight(atomic.LoadInt32((*int32)(&dist[wn.Dst])))
						if newDist >= oldDist {
							break
						}
						if atomic.CompareAndSwapInt32((*int32)(&dist[wn.Dst]), int32(oldDist), int32(newDist)) {
							destBin := int64(newDist) / int64(delta)
							for int64(len(localBins)) <= destBin {
								localBins = append(localBins, nil)
							}
							localBins[destBin] = append(localBins[destBin], wn.Dst)
							break
						}
					}
				}
			}

			iter := 0
			for sharedIndexes[iter&1] != kMaxBin {
				currIdx := sharedIndexes[iter&1]
				currTail := frontierTails[iter&1]

				// Dynamic chunks over the current shared bin.
				for {
					start := atomic.AddInt64(&cursors[iter&1], 64) - 64
					if start >= currTail {
						break
					}
					end := utils.Min(start+64, currTail)
					for i := start; i < end; i++ {
						u := frontier[i]
						if int64(atomic.LoadInt32((*int32)(&dist[u]))) >= int64(delta)*currIdx {
							relax(u)
						}
					}
				}

				// Drain small same-band local bins without a round trip.
				for currIdx < int64(len(localBins)) && len(localBins[currIdx]) > 0 && len(localBins[currIdx]) < kBinSizeThreshold {
					currBinCopy := localBins[currIdx]
					localBins[currIdx] = nil
					for _, u := range currBinCopy {
						relax(u)
					}
				}

				// Vote for the lowest non-empty band as the next index.
				for i := currIdx; i < int64(len(localBins)); i++ {
					if len(localBins[i]) > 0 {
						nextMu.Lock()
						if i < sharedIndexes[(iter+1)&1] {
							sharedIndexes[(iter+1)&1] = i
						}
						nextMu.Unlock()
						break
					}
				}
				bar.wait()

				if worker == 0 {
					sharedIndexes[iter&1] = kMaxBin
					frontierTails[iter&1] = 0
					cursors[iter&1] = 0
				}
				nextIdx := sharedIndexes[(iter+1)&1]
				if nextIdx < int64(len(localBins)) && len(localBins[nextIdx]) > 0 {
					size := int64(len(localBins[nextIdx]))
					copyStart := atomic.AddInt64(&frontierTails[(iter+1)&1], size) - size
					copy(frontier[copyStart:], localBins[nextIdx])
					localBins[nextIdx] = nil
				}
				iter++
				bar.wait()
			}
		}(w)
	}
	wg.Wait()
	return dist
}

func SSSPBench(opts *graph.BenchOptions) func(*graph.CSR[graph.WNode], *graph.SourcePicker[graph.WNode]) []graph.Weight {
	return func(g *graph.CSR[graph.WNode], sp *graph.SourcePicker[graph.WNode]) []graph.Weight {
		return DeltaStep(g, sp.PickNext(), graph.Weight(opts.Delta))
	}
}

func PrintSSSPStats(g *graph.CSR[graph.WNode], dist []graph.Weight) {
	reached := 0
	for u := range dist {
		if dist[u] != kDistInf {
			reached++
		}
	}
	log.Info().Msg("SSSP Tree reaches " + utils.V(reached) + " of " + utils.V(g.NumNodes()) + " vertices")
}
