package refsignal

import "github.com/jeongseonghan/lte-chest-dl/internal/lte"

// goldNc and goldSeq implement the length-31 Gold sequence
// generator of TS 36.211 §7.2, used to derive every pseudo-random
// sequence in the LTE physical layer — here, the CRS pilot symbols.
const goldNc = 1600

// goldSeq returns n pseudo-random bits generated with the second
// m-sequence initialized from cinit.
func goldSeq(cinit uint32, n int) []byte {
	total := goldNc + n + 31
	x1 := make([]byte, total)
	x2 := make([]byte, total)

	x1[0] = 1
	for i := 1; i < 31; i++ {
		x1[i] = 0
	}
	for i := 0; i < 31; i++ {
		x2[i] = byte((cinit >> uint(i)) & 1)
	}
	for n := 0; n < total-31; n++ {
		x1[n+31] = (x1[n+3] + x1[n]) % 2
		x2[n+31] = (x2[n+3] + x2[n+2] + x2[n+1] + x2[n]) % 2
	}

	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = (x1[i+goldNc] + x2[i+goldNc]) % 2
	}
	return out
}

// cInit computes the Gold-sequence seed for CRS generation on slot ns
// (0..19), OFDM symbol l within the slot, for the given cell.
// TS 36.211 §6.10.1.1.
func cInit(cell lte.Cell, ns, l int) uint32 {
	ncp := uint32(1)
	if cell.CP == lte.CPExtended {
		ncp = 0
	}
	id := uint32(cell.ID)
	return (1<<10)*(7*(uint32(ns)+1)+uint32(l)+1)*(2*id+1) + 2*id + ncp
}

// pilotSymbols generates the QPSK-mapped CRS pilot sequence for one
// OFDM symbol (slot ns, symbol l within slot), length 2*nof_prb.
func pilotSymbols(cell lte.Cell, ns, l int) []complex64 {
	n := 2 * cell.NofPRB
	bits := goldSeq(cInit(cell, ns, l), 2*n)

	const scale = float32(0.70710678) // 1/sqrt(2)
	out := make([]complex64, n)
	for m := 0; m < n; m++ {
		i := scale * (1 - 2*float32(bits[2*m]))
		q := scale * (1 - 2*float32(bits[2*m+1]))
		out[m] = complex(i, q)
	}
	return out
}

// Table holds the precomputed CRS pilot sequence for every subframe
// and port pair of a cell, indexed [portPair][subframeIdx]. Port pair
// 0 covers ports {0,1} (they share a pilot sequence and differ only in
// frequency shift, per the standard); port pair 1 covers ports {2,3}.
type Table struct {
	cell   lte.Cell
	pilots [2][10][]complex64
}

// Generate precomputes the CRS pilot table for every subframe (0..9)
// of the cell. The external collaborator named in spec.md §6 — this
// repository implements it directly rather than treating it as an
// opaque precomputed input, since nothing else in the corpus supplies
// a TS 36.211 Gold-sequence generator to borrow.
func Generate(cell lte.Cell) *Table {
	t := &Table{cell: cell}
	for sf := 0; sf < 10; sf++ {
		for portPair := 0; portPair < 2; portPair++ {
			port := portPair * 2
			nsyms := NofPilotSymbols(port)
			seq := make([]complex64, 0, nsyms*2*cell.NofPRB)
			for l := 0; l < nsyms; l++ {
				symIdx := PilotSymbolTimeIndex(cell.CP, port, l)
				slotInSF := symIdx / lte.NSymbPerSlot(cell.CP)
				lWithinSlot := symIdx % lte.NSymbPerSlot(cell.CP)
				ns := 2*sf + slotInSF
				seq = append(seq, pilotSymbols(cell, ns, lWithinSlot)...)
			}
			t.pilots[portPair][sf] = seq
		}
	}
	return t
}

// Pilots returns the known transmitted pilot sequence for the given
// port and subframe index, length NumSF(cell, port).
func (t *Table) Pilots(port, subframeIdx int) []complex64 {
	return t.pilots[port/2][subframeIdx]
}
