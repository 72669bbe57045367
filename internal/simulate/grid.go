// Package simulate builds synthetic baseband resource grids —
// transmitted CRS pilots plus random data, passed through a multipath
// channel and additive noise — for exercising the estimation package
// without a real radio front end.
package simulate

import (
	"math/rand"

	"github.com/jeongseonghan/lte-chest-dl/internal/lte"
	"github.com/jeongseonghan/lte-chest-dl/internal/refsignal"
)

// PortChannel pairs an antenna port number with the multipath profile
// applied to that port's transmission.
type PortChannel struct {
	Port int
	Taps []complex128
}

// Subframe holds a synthetic received grid together with the true
// channel frequency response used to generate it, so a caller (or
// test) can compare the estimator's output against ground truth.
type Subframe struct {
	Received []complex64
	Truth    map[int][]complex64 // per-port true frequency response, one row repeated per grid row
}

// GenerateSubframe synthesizes one received subframe for cell, built
// from table's known CRS pilots, random QPSK data on the remaining
// REs, one independent multipath channel per entry in channels, and
// additive noise with standard deviation noiseStd.
func GenerateSubframe(cell lte.Cell, table *refsignal.Table, subframeIdx int, channels []PortChannel, noiseStd float32, rng *rand.Rand) Subframe {
	rowLen := cell.GridSymbols()
	nrows := lte.NSymbPerSF(cell.CP)
	received := make([]complex64, nrows*rowLen)
	truth := make(map[int][]complex64, len(channels))

	pilotAt := make(map[int]map[int]bool) // row -> set of subcarrier indices carrying a pilot, any port

	for _, pc := range channels {
		h := Channel{Taps: pc.Taps}.FreqResponse(cell.NofPRB)
		truth[pc.Port] = h

		nsymbols := refsignal.NofPilotSymbols(pc.Port)
		pilots := table.Pilots(pc.Port, subframeIdx)
		nref := 2 * cell.NofPRB

		tx := make([]complex64, nrows*rowLen)
		for l := 0; l < nsymbols; l++ {
			symIdx := refsignal.PilotSymbolTimeIndex(cell.CP, pc.Port, l)
			fidx := refsignal.PilotFreqOffset(cell, pc.Port, l)
			if pilotAt[symIdx] == nil {
				pilotAt[symIdx] = make(map[int]bool)
			}
			row := tx[symIdx*rowLen : (symIdx+1)*rowLen]
			for k := 0; k < nref; k++ {
				sc := fidx + 6*k
				row[sc] = pilots[l*nref+k]
				pilotAt[symIdx][sc] = true
			}
		}
		for row := 0; row < nrows; row++ {
			data := RandomQPSK(rng, rowLen)
			dst := tx[row*rowLen : (row+1)*rowLen]
			for sc := 0; sc < rowLen; sc++ {
				if pilotAt[row][sc] {
					continue
				}
				dst[sc] = data[sc]
			}
		}

		for row := 0; row < nrows; row++ {
			for sc := 0; sc < rowLen; sc++ {
				idx := row*rowLen + sc
				received[idx] += tx[idx] * h[sc]
			}
		}
	}

	AWGN(rng, received, noiseStd)
	return Subframe{Received: received, Truth: truth}
}
