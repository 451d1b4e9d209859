package graph

import (
	"bufio"
	"encoding/binary"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/utils"
)

func createFile(path string) *os.File {
	file, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create file: " + path)
		Quit(-1)
	}
	return file
}

// Writes one directed edge per line. Weighted destinations append the
// weight as a third column.
func WriteEdgeList[D Destination](g *CSR[D], path string) {
	file := createFile(path)
	defer file.Close()
	w := bufio.NewWriterSize(file, 1<<20)
	weighted := isWeighted[D]()
	for u := NodeID(0); int(u) < g.NumNodes(); u++ {
		for _, d := range g.OutNeigh(u) {
			w.WriteString(strconv.Itoa(int(u)))
			w.WriteByte(' ')
			w.WriteString(strconv.Itoa(int(d.ID())))
			if weighted {
				w.WriteByte(' ')
				w.WriteString(strconv.Itoa(int(d.Wt())))
			}
			w.WriteByte('\n')
		}
	}
	if err := w.Flush(); err != nil {
		log.Error().Err(err).Msg("Failed writing edge list: " + path)
		Quit(-1)
	}
	log.Info().Msg("Wrote edge list to " + path)
}

// Serialized binary layout, little-endian, tightly packed:
// directed (1 byte), M (int64), N (int64), out-offsets (int64 x N+1),
// out-neighbors (NodeID x M, or (NodeID, Weight) pairs for weighted),
// then the inverse arrays if directed.
func WriteSerializedGraph[D Destination](g *CSR[D], path string) {
	file := createFile(path)
	defer file.Close()
	w := bufio.NewWriterSize(file, 1<<20)

	write := func(data any) {
		if err := binary.Write(w, binary.LittleEndian, data); err != nil {
			log.Error().Err(err).Msg("Failed writing serialized graph: " + path)
			Quit(-1)
		}
	}
	write(g.directed)
	write(g.numEdges)
	write(int64(g.NumNodes()))
	write(g.outOffsets)
	write(g.outNeigh)
	if g.directed {
		write(g.inOffsets)
		write(g.inNeigh)
	}
	if err := w.Flush(); err != nil {
		log.Error().Err(err).Msg("Failed writing serialized graph: " + path)
		Quit(-1)
	}
	log.Info().Msg("Wrote serialized graph to " + path + " (" + utils.V(g.NumNodes()) + " nodes)")
}
