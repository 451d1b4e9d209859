package main

import (
	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/graph"
)

// Launch point: graph format conversion. Loads or generates a graph and
// writes it as a text edge list (-e), serialized binary (-b), or weighted
// serialized binary (-w).
func main() {
	opts := graph.FlagsToOptions(1)
	if opts.OutEL == "" && opts.OutSerialized == "" && opts.OutWeighted == "" {
		log.Error().Msg("No conversion output: provide one of -e, -b, -w.")
		graph.Quit(-1)
	}
	if opts.OutWeighted != "" {
		wg := graph.MakeGraph[graph.WNode](&opts)
		graph.WriteSerializedGraph(wg, opts.OutWeighted)
	}
	if opts.OutEL != "" || opts.OutSerialized != "" {
		g := graph.MakeGraph[graph.NodeID](&opts)
		if opts.OutEL != "" {
			graph.WriteEdgeList(g, opts.OutEL)
		}
		if opts.OutSerialized != "" {
			graph.WriteSerializedGraph(g, opts.OutSerialized)
		}
	}
}
