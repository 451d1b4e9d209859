package graph

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ScottSallinen/gravel/utils"
)

func openFile(path string) *os.File {
	file, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open file: " + path)
		Quit(-1)
	}
	return file
}

func isSerialized(path string) bool {
	return strings.HasSuffix(path, ".sg") || strings.HasSuffix(path, ".wsg")
}

func toInt(buf []byte) (n int64) {
	for i := 0; i < len(buf); i++ {
		n = n*10 + int64(buf[i]-'0')
	}
	return n
}

// Parses a text edge list per the path suffix. The returned flag reports
// whether the source carried weights.
func ReadEdgeList[D Destination](path string) (el EdgeList[D], hasWeights bool) {
	switch {
	case strings.HasSuffix(path, ".el"):
		return readEL[D](path, false), false
	case strings.HasSuffix(path, ".wel"):
		return readEL[D](path, true), true
	case strings.HasSuffix(path, ".gr"):
		return readDIMACS[D](path), true
	case strings.HasSuffix(path, ".graph"):
		return readMetis[D](path), false
	}
	log.Error().Msg("Unrecognized graph file suffix: " + path)
	Quit(-1)
	return nil, false
}

func readEL[D Destination](path string, weighted bool) (el EdgeList[D]) {
	file := openFile(path)
	defer file.Close()
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) < 2 || fields[0][0] == '#' || fields[0][0] == '%' {
			continue
		}
		w := Weight(1)
		if weighted && len(fields) >= 3 {
			w = Weight(toInt(fields[2]))
		}
		el = append(el, Edge[D]{U: NodeID(toInt(fields[0])), V: destOf[D](NodeID(toInt(fields[1])), w)})
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Failed reading edge list: " + path)
		Quit(-1)
	}
	return el
}

// DIMACS challenge format: only lines of the form "a u v w" carry edges,
// with 1-indexed endpoints.
func readDIMACS[D Destination](path string) (el EdgeList[D]) {
	file := openFile(path)
	defer file.Close()
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) < 4 || len(fields[0]) != 1 || fields[0][0] != 'a' {
			continue
		}
		u := NodeID(toInt(fields[1]) - 1)
		v := NodeID(toInt(fields[2]) - 1)
		el = append(el, Edge[D]{U: u, V: destOf[D](v, Weight(toInt(fields[3])))})
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Failed reading DIMACS file: " + path)
		Quit(-1)
	}
	return el
}

// Metis-like format: header "N M", then line i+1 lists the 1-indexed
// neighbors of vertex i. Comment lines start with '%'.
func readMetis[D Destination](path string) (el EdgeList[D]) {
	file := openFile(path)
	defer file.Close()
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	sawHeader := false
	u := NodeID(0)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[0] == '%' {
			continue
		}
		fields := bytes.Fields(line)
		if !sawHeader {
			if len(fields) < 2 {
				log.Error().Msg("Malformed metis header in: " + path)
				Quit(-1)
			}
			sawHeader = true
			continue
		}
		for _, f := range fields {
			el = append(el, Edge[D]{U: u, V: destOf[D](NodeID(toInt(f)-1), 1)})
		}
		u++
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("Failed reading metis file: " + path)
		Quit(-1)
	}
	return el
}

// Deserializes a binary .sg/.wsg graph (see writer.go for the layout).
// The weighted-ness of the file must match the destination type.
func ReadSerializedGraph[D Destination](path string) *CSR[D] {
	fileWeighted := strings.HasSuffix(path, ".wsg")
	if fileWeighted != isWeighted[D]() {
		log.Error().Msg("Serialized graph weighted-ness mismatch: " + path)
		Quit(-2)
	}
	file := openFile(path)
	defer file.Close()
	r := bufio.NewReaderSize(file, 1<<20)

	var directed bool
	var numEdges, numNodes int64
	read := func(data any) {
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			log.Error().Err(err).Msg("Truncated serialized graph: " + path)
			Quit(-2)
		}
	}
	read(&directed)
	read(&numEdges)
	read(&numNodes)

	g := &CSR[D]{directed: directed, numEdges: numEdges}
	g.outOffsets = make([]int64, numNodes+1)
	read(g.outOffsets)
	g.outNeigh = make([]D, numEdges)
	read(g.outNeigh)
	if directed {
		g.inOffsets = make([]int64, numNodes+1)
		read(g.inOffsets)
		g.inNeigh = make([]D, numEdges)
		read(g.inNeigh)
	}
	log.Info().Msg("Read serialized graph " + path + " with " + utils.V(numNodes) + " nodes")
	return g
}
