// Package resync implements the startup synchronization heuristic:
// given a noisy byte prefix, try each of the four possible starting
// offsets and return the one whose decoded packet stream scores
// highest by a per-packet-kind likelihood table.
package resync

import (
	"bytes"

	"swotrace/formatter"
	"swotrace/itm"
)

// FindITMOffset scores each of the four candidate byte offsets into
// block by decoding an Instrumentation-layer stream from that offset
// and averaging a per-packet-kind likelihood. Offsets are tried in
// descending order so that ties favor the earliest offset; candidates
// that produce no packets at all are skipped. If every candidate is
// empty, it returns 0.
func FindITMOffset(block []byte) int {
	best, bestScore := 0, -1.0
	for k := 3; k >= 0; k-- {
		if k >= len(block) {
			continue
		}
		p := itm.NewParser(bytes.NewReader(block[k:]))
		var sum float64
		var count int
		for pkt := range p.All() {
			sum += itmLikelihood(pkt)
			count++
		}
		if count == 0 {
			continue
		}
		score := sum / float64(count)
		if score >= bestScore {
			best, bestScore = k, score
		}
	}
	return best
}

// FindFormatterOffset is the Formatter-layer analogue of
// FindITMOffset.
func FindFormatterOffset(block []byte) int {
	best, bestScore := 0, -1.0
	for k := 3; k >= 0; k-- {
		if k >= len(block) {
			continue
		}
		d := formatter.NewDeframer(bytes.NewReader(block[k:]))
		var sum float64
		var count int
		for pkt := range d.All() {
			sum += formatterLikelihood(pkt)
			count++
		}
		if count == 0 {
			continue
		}
		score := sum / float64(count)
		if score >= bestScore {
			best, bestScore = k, score
		}
	}
	return best
}

// itmLikelihood implements the Instrumentation-layer table from spec
// §4.5: rare or noise-prone kinds score low, kinds that survive
// missynchronization score high.
func itmLikelihood(p itm.Packet) float64 {
	switch p.Kind {
	case itm.Synchronization:
		return 1.0
	case itm.Overflow:
		return 0.9
	case itm.Software:
		return 0.4
	case itm.Extension:
		return 0.2
	case itm.Reserved:
		return 0.1
	case itm.Invalid:
		return 0.0
	default:
		return 0.5
	}
}

// formatterLikelihood implements the Formatter-layer table, following
// the evident intent of the source's likelihood expressions (which do
// not compile as written).
func formatterLikelihood(p formatter.Packet) float64 {
	switch p.Kind {
	case formatter.FrameSynchronization:
		return 1.0
	case formatter.HalfwordSynchronization:
		return 0.5
	case formatter.Data:
		idProb := 0.8
		if p.Source <= 5 {
			idProb = 1.0
		}
		dataProb := 0.8
		if len(p.Data) >= 3 {
			dataProb = 1.0
		}
		return idProb * dataProb
	case formatter.Trigger:
		if len(p.Data) == 1 {
			return 1.0
		}
		return 0.8
	case formatter.Null:
		for _, b := range p.Data {
			if b != 0 {
				return 0.5
			}
		}
		return 1.0
	case formatter.Reserved:
		return 0.2
	case formatter.Invalid:
		return 0.0
	default:
		return 0.5
	}
}
