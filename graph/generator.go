package graph

import (
	"math/rand"

	"github.com/intel/forGoParallel/parallel"
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/utils"
)

// Seed for all deterministic randomness: generation, permutation, source picking.
const RandSeed = 27491095

// Edges are generated in fixed-size blocks, each from its own PRNG seeded
// by block index, so the output is identical for any thread count.
const genBlockSize = 1 << 18

// Synthetic edge list producer: uniform-random or R-MAT (Kronecker).
type Generator[D Destination] struct {
	scale    int
	numNodes int
	numEdges int64
}

func NewGenerator[D Destination](scale int, degree int) *Generator[D] {
	return &Generator[D]{
		scale:    scale,
		numNodes: 1 << scale,
		numEdges: int64(degree) << scale,
	}
}

func (gen *Generator[D]) blocked(el EdgeList[D], perEdge func(r *rand.Rand, i int64)) {
	numBlocks := int((gen.numEdges + genBlockSize - 1) / genBlockSize)
	parallel.Range(0, numBlocks, 0, func(low, high int) {
		for b := low; b < high; b++ {
			r := rand.New(rand.NewSource(RandSeed + int64(b)))
			end := utils.Min(int64(b+1)*genBlockSize, gen.numEdges)
			for i := int64(b) * genBlockSize; i < end; i++ {
				perEdge(r, i)
			}
		}
	})
}

// Each endpoint drawn independently from uniform(0, N-1).
func (gen *Generator[D]) GenerateUniformEL() EdgeList[D] {
	el := make(EdgeList[D], gen.numEdges)
	gen.blocked(el, func(r *rand.Rand, i int64) {
		u := NodeID(r.Intn(gen.numNodes))
		v := NodeID(r.Intn(gen.numNodes))
		el[i] = Edge[D]{U: u, V: destOf[D](v, 1)}
	})
	log.Info().Msg("Generated " + utils.V(gen.numEdges) + " uniform edges at scale " + utils.V(gen.scale))
	return el
}

// Kronecker generator: one of four quadrants chosen per bit level until
// scale bits form each endpoint. Quadrant probabilities follow Graph500
// (A=0.57, B=0.19, C=0.19, D=0.05).
func (gen *Generator[D]) GenerateRMATEL() EdgeList[D] {
	const qA, qB, qC = 0.57, 0.19, 0.19
	el := make(EdgeList[D], gen.numEdges)
	gen.blocked(el, func(r *rand.Rand, i int64) {
		src, dst := NodeID(0), NodeID(0)
		for depth := 0; depth < gen.scale; depth++ {
			point := r.Float64()
			src <<= 1
			dst <<= 1
			if point < qA {
			} else if point < qA+qB {
				dst++
			} else if point < qA+qB+qC {
				src++
			} else {
				src++
				dst++
			}
		}
		el[i] = Edge[D]{U: src, V: destOf[D](dst, 1)}
	})
	gen.permuteIDs(el)
	log.Info().Msg("Generated " + utils.V(gen.numEdges) + " R-MAT edges at scale " + utils.V(gen.scale))
	return el
}

// Relabels all endpoints through a random permutation, destroying the
// locality artifacts of the R-MAT recursion.
func (gen *Generator[D]) permuteIDs(el EdgeList[D]) {
	permutation := make([]NodeID, gen.numNodes)
	for i := range permutation {
		permutation[i] = NodeID(i)
	}
	r := rand.New(rand.NewSource(RandSeed))
	r.Shuffle(gen.numNodes, func(i, j int) {
		permutation[i], permutation[j] = permutation[j], permutation[i]
	})
	parallel.Range(0, int(gen.numEdges), 0, func(low, high int) {
		for i := low; i < high; i++ {
			el[i] = Edge[D]{
				U: permutation[el[i].U],
				V: destOf[D](permutation[el[i].V.ID()], el[i].V.Wt()),
			}
		}
	})
}

// Overwrites edge weights with uniform integers in [1, 255], block-seeded
// the same way edge generation is.
func InsertWeights[D Destination](el EdgeList[D]) {
	numBlocks := int((int64(len(el)) + genBlockSize - 1) / genBlockSize)
	parallel.Range(0, numBlocks, 0, func(low, high int) {
		for b := low; b < high; b++ {
			r := rand.New(rand.NewSource(RandSeed + int64(b)))
			end := utils.Min(int64(b+1)*genBlockSize, int64(len(el)))
			for i := int64(b) * genBlockSize; i < end; i++ {
				el[i].V = destOf[D](el[i].V.ID(), Weight(1+r.Intn(255)))
			}
		}
	})
}
