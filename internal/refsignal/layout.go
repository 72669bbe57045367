// Package refsignal derives the cell-specific reference signal (CRS)
// pilot layout — which OFDM symbols carry pilots, at which subcarrier
// offset, for a given antenna port — and generates the known pilot
// sequence itself. Everything here is a pure function of the cell
// descriptor; nothing is stateful.
package refsignal

import "github.com/jeongseonghan/lte-chest-dl/internal/lte"

var normalTimeIdx4 = [4]int{0, 4, 7, 11}
var normalTimeIdx2 = [2]int{1, 8}
var extendedTimeIdx4 = [4]int{0, 3, 6, 9}
var extendedTimeIdx2 = [2]int{1, 7}

// NofPilotSymbols returns the number of CRS-bearing OFDM symbols per
// subframe for the given antenna port: 4 for ports 0/1, 2 for ports 2/3.
func NofPilotSymbols(port int) int {
	if port < 2 {
		return 4
	}
	return 2
}

// PilotSymbolTimeIndex maps a pilot-bearing symbol index l (within
// [0, NofPilotSymbols(port))) to the OFDM symbol index within the
// subframe that carries it.
func PilotSymbolTimeIndex(cp lte.CyclicPrefix, port, l int) int {
	if cp == lte.CPExtended {
		if port < 2 {
			return extendedTimeIdx4[l]
		}
		return extendedTimeIdx2[l]
	}
	if port < 2 {
		return normalTimeIdx4[l]
	}
	return normalTimeIdx2[l]
}

// PilotFreqOffset returns the first pilot's subcarrier offset within a
// PRB (0..5) for the given port and pilot-bearing symbol index l,
// per TS 36.211 §6.10.1.2's frequency-shift table combined with the
// cell's v_shift (id mod 6).
func PilotFreqOffset(cell lte.Cell, port, l int) int {
	v := vShift(port, l)
	return (v + cell.IDMod6()) % 6
}

// vShift implements the per-port, per-symbol frequency shift v from
// TS 36.211 Table 6.10.1.2-1, before combining with the cell's v_shift.
func vShift(port, l int) int {
	if port < 2 {
		firstInSlot := l%2 == 0
		switch {
		case port == 0 && firstInSlot:
			return 0
		case port == 0 && !firstInSlot:
			return 3
		case port == 1 && firstInSlot:
			return 3
		default: // port == 1 && !firstInSlot
			return 0
		}
	}
	// Ports 2 and 3 carry one pilot symbol per slot; the shift
	// alternates with the slot (l doubles as the slot index here since
	// there are exactly two pilot-bearing symbols per subframe), and
	// is complementary between the two ports, same as ports 0/1 above.
	if port == 2 {
		return 3 * (l % 2)
	}
	return 3 * ((l + 1) % 2) // port == 3
}

// PilotIdx returns the flat index of pilot sample k (0..2*nof_prb) of
// pilot-bearing symbol l into a per-port pilot buffer of length
// NofPilotSymbols(port) * 2*nof_prb.
func PilotIdx(cell lte.Cell, port, l, k int) int {
	return l*(2*cell.NofPRB) + k
}

// NofPilotsPerSymbol returns the number of pilot REs carried by one
// CRS-bearing OFDM symbol: 2 per PRB.
func NofPilotsPerSymbol(cell lte.Cell) int {
	return 2 * cell.NofPRB
}

// NumSF returns the total number of pilot samples carried by one
// subframe for the given port: 2*nof_prb * NofPilotSymbols(port).
func NumSF(cell lte.Cell, port int) int {
	return NofPilotsPerSymbol(cell) * NofPilotSymbols(port)
}
