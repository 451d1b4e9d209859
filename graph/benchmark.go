package graph

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/utils"
)

// Picks benchmark source vertices: the fixed CLI vertex if given,
// otherwise uniform random over vertices with outgoing edges. Seeded so a
// kernel picker and its verifier picker see the same sequence.
type SourcePicker[D Destination] struct {
	g     *CSR[D]
	fixed int64
	r     *rand.Rand
}

func NewSourcePicker[D Destination](g *CSR[D], opts *BenchOptions) *SourcePicker[D] {
	return &SourcePicker[D]{g: g, fixed: opts.StartVertex, r: rand.New(rand.NewSource(RandSeed))}
}

func (sp *SourcePicker[D]) PickNext() NodeID {
	if sp.fixed >= 0 {
		return NodeID(sp.fixed)
	}
	if sp.g.NumEdges() == 0 {
		return 0
	}
	for {
		u := NodeID(sp.r.Intn(sp.g.NumNodes()))
		if sp.g.OutDegree(u) > 0 {
			return u
		}
	}
}

// Runs the kernel for the configured trials, timing each. Analysis runs
// after the last trial; the verifier (given its own source picker, in
// lockstep with the kernel's) after each, when enabled.
func BenchmarkKernel[D Destination, R any](opts *BenchOptions, g *CSR[D],
	kernel func(*CSR[D], *SourcePicker[D]) R,
	analyze func(*CSR[D], R),
	verify func(*CSR[D], *SourcePicker[D], R) bool) {

	g.PrintStats()
	sp := NewSourcePicker(g, opts)
	vsp := NewSourcePicker(g, opts)
	var watch utils.Watch
	totalSeconds := float64(0)

	for trial := 0; trial < opts.Trials; trial++ {
		watch.Start()
		result := kernel(g, sp)
		seconds := watch.Elapsed().Seconds()
		totalSeconds += seconds
		log.Info().Msg("Trial Time: " + utils.F("%.5f", seconds))
		if opts.Analysis && trial == opts.Trials-1 {
			analyze(g, result)
		}
		if opts.Verify {
			if verify(g, vsp, result) {
				log.Info().Msg("Verification: PASS")
			} else {
				log.Error().Msg("Verification: FAIL")
			}
		}
	}
	log.Info().Msg("Average Time: " + utils.F("%.5f", totalSeconds/float64(opts.Trials)))
}
