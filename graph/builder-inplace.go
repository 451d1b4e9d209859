package graph

import (
	"sort"
	"sync/atomic"
	"unsafe"

	"github.com/intel/forGoParallel/parallel"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/utils"
)

// In-place CSR construction: the sorted edge list's backing storage is
// reinterpreted as the neighbor array, so peak memory stays near one copy
// of the edges. Restricted to unweighted graphs, where an Edge is exactly
// two NodeIDs wide.
func (b *Builder[D]) makeCSRInPlace(el EdgeList[D], n int) *CSR[D] {
	var probe Edge[D]
	if unsafe.Sizeof(probe) != 2*unsafe.Sizeof(NodeID(0)) {
		log.Panic().Msg("in-place build requires edge layout of two node ids")
	}
	utils.ParallelSort(el, func(a, b Edge[D]) bool {
		if a.U != b.U {
			return a.U < b.U
		}
		return a.V.ID() < b.V.ID()
	})

	// Drop self loops and duplicates, shrinking in place.
	m := 0
	for i := range el {
		if el[i].U == el[i].V.ID() {
			continue
		}
		if m > 0 && el[m-1].U == el[i].U && el[m-1].V.ID() == el[i].V.ID() {
			continue
		}
		el[m] = el[i]
		m++
	}
	el = el[:m]
	if m == 0 {
		return &CSR[D]{
			directed:   !b.symmetrize,
			outOffsets: make([]int64, n+1),
			inOffsets:  make([]int64, n+1),
		}
	}

	degrees := make([]int64, n)
	parallel.Range(0, m, 0, func(low, high int) {
		for i := low; i < high; i++ {
			atomic.AddInt64(&degrees[el[i].U], 1)
		}
	})
	offsets := ParallelPrefixSum(degrees)

	// Rewrite the edge pairs into the packed neighbor array. The write
	// cursor for edge i never exceeds i while the read is at 2i, so the
	// sweep cannot clobber unread pairs.
	flat := unsafe.Slice((*NodeID)(unsafe.Pointer(&el[0])), 2*m)
	for i := 0; i < m; i++ {
		u, v := flat[2*i], flat[2*i+1]
		flat[offsets[u]] = v
		offsets[u]++
	}
	for u := n; u > 0; u-- {
		offsets[u] = offsets[u-1]
	}
	offsets[0] = 0
	neigh := flat[:m]

	if !b.symmetrize {
		g := &CSR[D]{
			directed:   true,
			numEdges:   int64(m),
			outOffsets: offsets,
			outNeigh:   any(neigh).([]D),
		}
		g.inOffsets, g.inNeigh = invertInPlace[D](n, offsets, neigh)
		return g
	}
	symOffsets, symNeigh := symmetrizeInPlace(n, offsets, neigh)
	return &CSR[D]{
		directed:   false,
		numEdges:   symOffsets[n],
		outOffsets: symOffsets,
		outNeigh:   any(symNeigh).([]D),
	}
}

// Builds the inverse adjacency from an already packed forward CSR.
func invertInPlace[D Destination](n int, offsets []int64, neigh []NodeID) ([]int64, []D) {
	inDegrees := make([]int64, n)
	parallel.Range(0, len(neigh), 0, func(low, high int) {
		for i := low; i < high; i++ {
			atomic.AddInt64(&inDegrees[neigh[i]], 1)
		}
	})
	inOffsets := ParallelPrefixSum(inDegrees)
	inNeigh := make([]NodeID, inOffsets[n])
	cursor := make([]int64, n)
	copy(cursor, inOffsets[:n])
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			for _, v := range neigh[offsets[u]:offsets[u+1]] {
				inNeigh[atomic.AddInt64(&cursor[v], 1)-1] = NodeID(u)
			}
		}
	})
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			adj := inNeigh[inOffsets[u]:inOffsets[u+1]]
			sort.Slice(adj, func(i, j int) bool { return adj[i] < adj[j] })
		}
	})
	return inOffsets, any(inNeigh).([]D)
}

func hasNeighbor(adj []NodeID, target NodeID) bool {
	i := sort.Search(len(adj), func(i int) bool { return adj[i] >= target })
	return i < len(adj) && adj[i] == target
}

// Three-pass expansion inserting every missing inverse edge: count the
// inverses each vertex needs, shift adjacencies toward the tail of a
// widened buffer leaving the gaps at each head, then fill the gaps.
func symmetrizeInPlace(n int, offsets []int64, neigh []NodeID) ([]int64, []NodeID) {
	invsNeeded := make([]int64, n)
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			for _, v := range neigh[offsets[u]:offsets[u+1]] {
				if !hasNeighbor(neigh[offsets[v]:offsets[v+1]], NodeID(u)) {
					atomic.AddInt64(&invsNeeded[v], 1)
				}
			}
		}
	})

	newDegrees := make([]int64, n)
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			newDegrees[u] = (offsets[u+1] - offsets[u]) + invsNeeded[u]
		}
	})
	newOffsets := ParallelPrefixSum(newDegrees)
	newNeigh := make([]NodeID, newOffsets[n])
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			copy(newNeigh[newOffsets[u]+invsNeeded[u]:newOffsets[u+1]], neigh[offsets[u]:offsets[u+1]])
		}
	})

	gapCursor := make([]int64, n)
	copy(gapCursor, newOffsets[:n])
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			for _, v := range neigh[offsets[u]:offsets[u+1]] {
				if !hasNeighbor(neigh[offsets[v]:offsets[v+1]], NodeID(u)) {
					newNeigh[atomic.AddInt64(&gapCursor[v], 1)-1] = NodeID(u)
				}
			}
		}
	})
	parallel.Range(0, n, 0, func(low, high int) {
		for u := low; u < high; u++ {
			adj := newNeigh[newOffsets[u]:newOffsets[u+1]]
			sort.Slice(adj, func(i, j int) bool { return adj[i] < adj[j] })
		}
	})
	return newOffsets, newNeigh
}
