package graph

import (
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/utils"
)

// Options shared by every kernel binary.
type BenchOptions struct {
	File        string // Input graph path; empty means generate.
	Scale       int    // Generate 2^scale vertices.
	Degree      int    // Average degree for generated graphs.
	Uniform     bool   // Uniform-random generator instead of R-MAT.
	Symmetrize  bool   // Treat the input edge list as undirected.
	InPlace     bool   // In-place CSR construction (unweighted only).
	Trials      int    // Benchmark trials.
	StartVertex int64  // Fixed source vertex; negative picks randomly.
	Analysis    bool   // Print result analysis after the last trial.
	Verify      bool   // Run the kernel verifier each trial.
	Iterations  int    // Kernel iteration count (BC sources, PageRank max iters).
	Delta       int    // Delta-stepping bucket width.

	OutEL         string // Converter: text edge list output.
	OutSerialized string // Converter: serialized graph output.
	OutWeighted   string // Converter: weighted serialized output.
}

func Quit(code int) {
	os.Exit(code)
}

// Parses the common benchmark CLI surface. Kernel-specific defaults come
// in through the arguments; declare any extra flags before calling.
func FlagsToOptions(defaultIterations int) (opts BenchOptions) {
	filePtr := flag.String("f", "", "Load graph from file (suffix selects the parser).")
	genPtr := flag.Int("g", -1, "Generate R-MAT graph with 2^scale vertices.")
	uniPtr := flag.Int("u", -1, "Generate uniform-random graph with 2^scale vertices.")
	degPtr := flag.Int("deg", 16, "Average degree for generated graphs.")
	symPtr := flag.Bool("s", false, "Symmetrize the input edge list.")
	trialsPtr := flag.Int("n", 16, "Number of benchmark trials.")
	srcPtr := flag.Int64("r", -1, "Fixed start vertex (default random).")
	analysisPtr := flag.Bool("a", false, "Print analysis after the last trial.")
	verifyPtr := flag.Bool("v", false, "Verify the result of each trial.")
	itersPtr := flag.Int("k", defaultIterations, "Iteration count (BC sources, PageRank max iterations).")
	deltaPtr := flag.Int("d", 1, "Delta parameter for delta-stepping.")
	inPlacePtr := flag.Bool("m", false, "In-place build (unweighted only).")

	elPtr := flag.String("e", "", "Converter: write text edge list to path.")
	sgPtr := flag.String("b", "", "Converter: write serialized graph to path.")
	wsgPtr := flag.String("w", "", "Converter: write weighted serialized graph to path.")

	debugPtr := flag.Int("debug", 0, "Adds extra debug output. Level 0 for info, 1 for debug, 2+ for trace.")
	colourPtr := flag.Bool("nc", false, "Removes the colouring from the log output.")
	flag.Parse()

	if *colourPtr {
		utils.SetLoggerConsole(true)
	}
	utils.SetLevel(*debugPtr)

	if *filePtr == "" && *genPtr < 0 && *uniPtr < 0 {
		log.Error().Msg("No graph input: provide one of -f, -g, -u.")
		flag.Usage()
		Quit(-1)
	}
	if *genPtr >= 0 && *uniPtr >= 0 {
		log.Error().Msg("Pick one generator: -g or -u.")
		Quit(-1)
	}
	if *trialsPtr <= 0 {
		log.Error().Msg("Trial count must be positive.")
		Quit(-1)
	}

	scale := *genPtr
	uniform := false
	if *uniPtr >= 0 {
		scale = *uniPtr
		uniform = true
	}

	opts = BenchOptions{
		File:          *filePtr,
		Scale:         scale,
		Degree:        *degPtr,
		Uniform:       uniform,
		Symmetrize:    *symPtr,
		InPlace:       *inPlacePtr,
		Trials:        *trialsPtr,
		StartVertex:   *srcPtr,
		Analysis:      *analysisPtr,
		Verify:        *verifyPtr,
		Iterations:    *itersPtr,
		Delta:         *deltaPtr,
		OutEL:         *elPtr,
		OutSerialized: *sgPtr,
		OutWeighted:   *wsgPtr,
	}
	return opts
}
