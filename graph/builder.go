package graph

import (
	"sync/atomic"

	"github.com/intel/forGoParallel/parallel"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/ScottSallinen/gravel/utils"
)

// Block size for the two-phase parallel prefix sum; sized so a block of
// counts stays within L2.
const prefixBlockSize = 1 << 20

// Largest node id referenced by the edge list, via parallel max-reduce.
func FindMaxNodeID[D Destination](el EdgeList[D]) NodeID {
	var shared int64
	parallel.Range(0, len(el), 0, func(low, high int) {
		local := NodeID(0)
		for i := low; i < high; i++ {
			local = utils.Max(local, el[i].U)
			local = utils.Max(local, el[i].V.ID())
		}
		utils.AtomicMaxInt64(&shared, int64(local))
	})
	return NodeID(shared)
}

// Exclusive prefix sum over counts, yielding len(counts)+1 offsets.
// Two phases: block-local sums in parallel, a serial spine over block
// totals, then a parallel sweep writing each block's running prefix.
func ParallelPrefixSum(counts []int64) []int64 {
	numBlocks := (len(counts) + prefixBlockSize - 1) / prefixBlockSize
	blockSums := make([]int64, numBlocks)
	parallel.Range(0, numBlocks, 0, func(low, high int) {
		for b := low; b < high; b++ {
			end := utils.Min((b+1)*prefixBlockSize, len(counts))
			sum := int64(0)
			for i := b * prefixBlockSize; i < end; i++ {
				sum += counts[i]
			}
			blockSums[b] = sum
		}
	})
	offsets := make([]int64, len(counts)+1)
	spine := make([]int64, numBlocks+1)
	for b := 0; b < numBlocks; b++ {
		spine[b+1] = spine[b] + blockSums[b]
	}
	parallel.Range(0, numBlocks, 0, func(low, high int) {
		for b := low; b < high; b++ {
			end := utils.Min((b+1)*prefixBlockSize, len(counts))
			running := spine[b]
			for i := b * prefixBlockSize; i < end; i++ {
				offsets[i] = running
				running += counts[i]
			}
		}
	})
	offsets[len(counts)] = spine[numBlocks]
	return offsets
}

// Builds CSR graphs from edge lists. The copying path tolerates self
// loops and duplicates in the input (squish removes them); the in-place
// path consumes the edge list's backing storage.
type Builder[D Destination] struct {
	symmetrize bool
	inPlace    bool
	numNodes   int // -1 derives from the edge list.
}

func NewBuilder[D Destination](opts *BenchOptions) *Builder[D] {
	if opts.InPlace && isWeighted[D]() {
		log.Error().Msg("In-place builds are restricted to unweighted graphs.")
		Quit(-4)
	}
	return &Builder[D]{
		symmetrize: opts.Symmetrize,
		inPlace:    opts.InPlace,
		numNodes:   -1,
	}
}

func (b *Builder[D]) countDegrees(el EdgeList[D], n int, transpose bool) []int64 {
	degrees := make([]int64, n)
	parallel.Range(0, len(el), 0, func(low, high int) {
		for i := low; i < high; i++ {
			if b.symmetrize || !transpose {
				atomic.AddInt64(&degrees[el[i].U], 1)
			}
			if b.symmetrize || transpose {
				atomic.AddInt64(&degrees[el[i].V.ID()], 1)
			}
		}
	})
	return degrees
}

func (b *Builder[D]) makeCSR(el EdgeList[D], n int, transpose bool) (offsets []int64, neigh []D) {
	degrees := b.countDegrees(el, n, transpose)
	offsets = ParallelPrefixSum(degrees)
	neigh = make([]D, offsets[n])
	cursor := make([]int64, n)
	copy(cursor, offsets[:n])
	parallel.Range(0, len(el), 0, func(low, high int) {
		for i := low; i < high; i++ {
			e := el[i]
			if b.symmetrize || !transpose {
				neigh[atomic.AddInt64(&cursor[e.U], 1)-1] = e.V
			}
			if b.symmetrize || transpose {
				neigh[atomic.AddInt64(&cursor[e.V.ID()], 1)-1] = destOf[D](e.U, e.V.Wt())
			}
		}
	})
	return offsets, neigh
}

// Restores the CSR invariants: each neighborhood sorted ascending,
// duplicate free, self loops removed.
func squishCSR[D Destination](n int, offsets []int64, neigh []D) ([]int64, []D) {
	newDegrees := make([]int64, n)
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			adj := neigh[offsets[u]:offsets[u+1]]
			slices.SortFunc(adj, func(a, b D) int { return int(a.ID()) - int(b.ID()) })
			kept := int64(0)
			for i := range adj {
				if adj[i].ID() == NodeID(u) {
					continue
				}
				if i > 0 && adj[i].ID() == adj[i-1].ID() {
					continue
				}
				kept++
			}
			newDegrees[u] = kept
		}
	})
	newOffsets := ParallelPrefixSum(newDegrees)
	newNeigh := make([]D, newOffsets[n])
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			adj := neigh[offsets[u]:offsets[u+1]]
			j := newOffsets[u]
			for i := range adj {
				if adj[i].ID() == NodeID(u) {
					continue
				}
				if i > 0 && adj[i].ID() == adj[i-1].ID() {
					continue
				}
				newNeigh[j] = adj[i]
				j++
			}
		}
	})
	return newOffsets, newNeigh
}

// Builds the graph from the edge list. The copying path leaves the edge
// list intact; with InPlace set the list's storage is consumed and must
// not be read afterward.
func (b *Builder[D]) MakeGraphFromEL(el EdgeList[D]) *CSR[D] {
	n := b.numNodes
	if n < 0 {
		n = int(FindMaxNodeID(el)) + 1
	}
	if b.inPlace {
		return b.makeCSRInPlace(el, n)
	}

	g := &CSR[D]{directed: !b.symmetrize}
	parallel.Do(func() {
		g.outOffsets, g.outNeigh = b.makeCSR(el, n, false)
		g.outOffsets, g.outNeigh = squishCSR(n, g.outOffsets, g.outNeigh)
	}, func() {
		if !b.symmetrize {
			g.inOffsets, g.inNeigh = b.makeCSR(el, n, true)
			g.inOffsets, g.inNeigh = squishCSR(n, g.inOffsets, g.inNeigh)
		}
	})
	g.numEdges = g.outOffsets[n]
	return g
}

// Reorders an undirected graph so vertex 0 has the highest degree.
// Improves locality for kernels that iterate neighborhoods in id order.
func RelabelByDegree[D Destination](g *CSR[D]) *CSR[D] {
	if g.Directed() {
		log.Error().Msg("Cannot relabel a directed graph.")
		Quit(-5)
	}
	n := g.NumNodes()
	degreeIDPairs := make([]utils.Pair[int64, NodeID], n)
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			degreeIDPairs[u] = utils.Pair[int64, NodeID]{First: g.OutDegree(NodeID(u)), Second: NodeID(u)}
		}
	})
	utils.ParallelSort(degreeIDPairs, func(a, b utils.Pair[int64, NodeID]) bool {
		if a.First != b.First {
			return a.First > b.First
		}
		return a.Second < b.Second
	})

	degrees := make([]int64, n)
	newIDs := make([]NodeID, n)
	parallel.Range(0, n, 0, func(low, high int) {
		for r := low; r < high; r++ {
			degrees[r] = degreeIDPairs[r].First
			newIDs[degreeIDPairs[r].Second] = NodeID(r)
		}
	})

	offsets := ParallelPrefixSum(degrees)
	neigh := make([]D, offsets[n])
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			j := offsets[newIDs[u]]
			for _, v := range g.OutNeigh(NodeID(u)) {
				neigh[j] = destOf[D](newIDs[v.ID()], v.Wt())
				j++
			}
			adj := neigh[offsets[newIDs[u]]:j]
			slices.SortFunc(adj, func(a, b D) int { return int(a.ID()) - int(b.ID()) })
		}
	})
	return &CSR[D]{
		directed:   false,
		numEdges:   offsets[n],
		outOffsets: offsets,
		outNeigh:   neigh,
	}
}

// Convenience for explicit edge lists (copying path, derived N).
func MakeGraphFromEdges[D Destination](el EdgeList[D], symmetrize bool) *CSR[D] {
	b := &Builder[D]{symmetrize: symmetrize, numNodes: -1}
	return b.MakeGraphFromEL(el)
}

// As MakeGraphFromEdges with the vertex count pinned, so trailing
// isolated vertices survive.
func MakeGraphFromEdgesN[D Destination](el EdgeList[D], numNodes int, symmetrize bool) *CSR[D] {
	b := &Builder[D]{symmetrize: symmetrize, numNodes: numNodes}
	return b.MakeGraphFromEL(el)
}

// Obtains the edge list per the options (file or generator), inserts
// weights if the destination type carries them, and builds the graph.
func MakeGraph[D Destination](opts *BenchOptions) *CSR[D] {
	var watch utils.Watch
	watch.Start()
	b := NewBuilder[D](opts)

	if opts.File != "" && isSerialized(opts.File) {
		g := ReadSerializedGraph[D](opts.File)
		log.Info().Msg("Read Time: " + utils.F("%.5f", watch.Elapsed().Seconds()))
		return g
	}

	var el EdgeList[D]
	hasWeights := false
	if opts.File != "" {
		el, hasWeights = ReadEdgeList[D](opts.File)
	} else {
		gen := NewGenerator[D](opts.Scale, opts.Degree)
		if opts.Uniform {
			el = gen.GenerateUniformEL()
		} else {
			el = gen.GenerateRMATEL()
		}
	}
	if isWeighted[D]() && !hasWeights {
		InsertWeights(el)
	}
	g := b.MakeGraphFromEL(el)
	log.Info().Msg("Build Time: " + utils.F("%.5f", watch.Elapsed().Seconds()))
	return g
}
