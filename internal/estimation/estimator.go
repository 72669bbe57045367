package estimation

import (
	"fmt"
	"math"

	"github.com/jeongseonghan/lte-chest-dl/internal/lte"
	"github.com/jeongseonghan/lte-chest-dl/internal/refsignal"
)

const (
	// MaxFilterFreqLen bounds the frequency-smoothing FIR length.
	MaxFilterFreqLen = 7
	// MaxFilterTimeLen bounds the time-smoothing FIR length.
	MaxFilterTimeLen = 8
)

var defaultFilterFreq = []float32{0.05, 0.15, 0.6, 0.15, 0.05}
var defaultFilterTime = []float32{0.1, 0.9}

// Estimator holds the per-cell CRS tables, filter state, and working
// buffers needed to turn a received resource grid into per-port
// channel estimates and signal-quality metrics. It is not safe for
// concurrent use by multiple goroutines; callers processing several
// cells concurrently should use one Estimator per cell.
type Estimator struct {
	cell  lte.Cell
	table *refsignal.Table

	filterFreq []float32
	filterTime []float32

	pilotRecv      [lte.MaxPorts][]complex64
	pilotEstimates [lte.MaxPorts][]complex64
	pilotFreqAvg   [lte.MaxPorts][]complex64
	pilotAverage   [lte.MaxPorts][]complex64

	// timeHistory[port] is a ring of up to MaxFilterTimeLen rows, each
	// 2*NofPRB long, holding the most recent frequency-smoothed pilot
	// symbols for that port's time filter. It persists across calls,
	// exactly like the reference implementation's scratch buffer.
	timeHistory [lte.MaxPorts][][]complex64
	noiseResid  []complex64

	noisePolicy   NoisePolicy
	rsrp          [lte.MaxPorts]float32
	rsrpRaw       [lte.MaxPorts]float32
	rssi          [lte.MaxPorts]float32
	noiseEstimate [lte.MaxPorts]float32
}

// New builds an Estimator for cell, with the default frequency filter
// (five-tap raised-cosine-like smoother) and the default two-tap time
// filter {0.1, 0.9}.
func New(cell lte.Cell) (*Estimator, error) {
	if err := cell.Validate(); err != nil {
		return nil, err
	}

	e := &Estimator{
		cell:  cell,
		table: refsignal.Generate(cell),
	}

	nref := 2 * cell.NofPRB
	for port := 0; port < cell.NofPorts; port++ {
		n := refsignal.NumSF(cell, port)
		e.pilotRecv[port] = make([]complex64, n)
		e.pilotEstimates[port] = make([]complex64, n)
		e.pilotFreqAvg[port] = make([]complex64, n)
		e.pilotAverage[port] = make([]complex64, n)

		hist := make([][]complex64, MaxFilterTimeLen)
		for i := range hist {
			hist[i] = make([]complex64, nref)
		}
		e.timeHistory[port] = hist
	}
	e.noiseResid = make([]complex64, 4*nref)

	if err := e.SetFilterFreq(defaultFilterFreq); err != nil {
		return nil, err
	}
	if err := e.SetFilterTime(defaultFilterTime); err != nil {
		return nil, err
	}
	return e, nil
}

// Close releases the estimator. There is nothing to release beyond
// what the garbage collector already reclaims once e is dropped; Close
// exists so callers managing estimator lifetime alongside other
// closeable resources (e.g. a telemetry server) have one shape to call.
func (e *Estimator) Close() error {
	return nil
}

// SetFilterFreq installs the frequency-domain smoothing FIR. A nil or
// empty filter disables smoothing (pilot estimates pass through
// unchanged).
func (e *Estimator) SetFilterFreq(taps []float32) error {
	if len(taps) > MaxFilterFreqLen {
		return fmt.Errorf("estimation: frequency filter length %d exceeds max %d", len(taps), MaxFilterFreqLen)
	}
	e.filterFreq = append([]float32(nil), taps...)
	return nil
}

// SetFilterTime installs the time-domain smoothing FIR. A nil or empty
// filter disables smoothing.
func (e *Estimator) SetFilterTime(taps []float32) error {
	if len(taps) > MaxFilterTimeLen {
		return fmt.Errorf("estimation: time filter length %d exceeds max %d", len(taps), MaxFilterTimeLen)
	}
	e.filterTime = append([]float32(nil), taps...)
	return nil
}

// SetNoisePolicy selects how Noise() derives its estimate. The default
// zero value is NoiseResidual.
func (e *Estimator) SetNoisePolicy(p NoisePolicy) {
	e.noisePolicy = p
}

// extractPilots copies the received pilot-bearing REs for port out of
// the subframe grid input into e.pilotRecv[port].
func (e *Estimator) extractPilots(input []complex64, port int) {
	rowLen := e.cell.GridSymbols()
	nofPRB := e.cell.NofPRB
	nsymbols := refsignal.NofPilotSymbols(port)
	for l := 0; l < nsymbols; l++ {
		symIdx := refsignal.PilotSymbolTimeIndex(e.cell.CP, port, l)
		rowStart := symIdx * rowLen
		fidx := refsignal.PilotFreqOffset(e.cell, port, l)
		for k := 0; k < 2*nofPRB; k++ {
			e.pilotRecv[port][l*2*nofPRB+k] = input[rowStart+fidx+6*k]
		}
	}
}

// averagePilots runs the frequency and time smoothing stages described
// in spec.md over the LS estimates just computed for port, and updates
// the residual-based noise estimate for that port.
func (e *Estimator) averagePilots(port int) {
	nref := 2 * e.cell.NofPRB
	nsymbols := refsignal.NofPilotSymbols(port)

	for l := 0; l < nsymbols; l++ {
		est := e.pilotEstimates[port][l*nref : (l+1)*nref]
		avg := e.pilotFreqAvg[port][l*nref : (l+1)*nref]

		if len(e.filterFreq) > 0 {
			var taps [MaxFilterFreqLen]complex64
			for i, v := range e.filterFreq {
				taps[i] = complex(v, 0)
			}
			ConvSame(est, taps[:len(e.filterFreq)], avg)
			center := len(e.filterFreq) / 2
			avg[0] += ExtrapolateOne(est[1], est[0]) * complex(e.filterFreq[center-1], 0)
			avg[nref-1] += ExtrapolateOne(est[nref-2], est[nref-1]) * complex(e.filterFreq[center+1], 0)
		} else {
			copy(avg, est)
		}
	}

	if e.noisePolicy == NoiseResidual {
		n := nsymbols * nref
		Sub(e.pilotFreqAvg[port][:n], e.pilotEstimates[port][:n], e.noiseResid[:n], n)
		e.noiseEstimate[port] = MeanPower(e.noiseResid, n)
	}

	hist := e.timeHistory[port]
	ftLen := len(e.filterTime)
	for l := 0; l < nsymbols; l++ {
		freqAvg := e.pilotFreqAvg[port][l*nref : (l+1)*nref]
		out := e.pilotAverage[port][l*nref : (l+1)*nref]

		if ftLen == 0 {
			copy(out, freqAvg)
			continue
		}

		// Only the first ftLen history slots are live; the rest of
		// hist's MaxFilterTimeLen capacity sits unused until a longer
		// filter is installed, exactly as the reference implementation
		// only shifts/fills q->filter_time_len of its scratch buffers.
		for i := 0; i < ftLen-1; i++ {
			copy(hist[i], hist[i+1])
		}
		copy(hist[ftLen-1], freqAvg)

		for i := range out {
			out[i] = 0
		}
		for i, tap := range e.filterTime {
			k := complex(tap, 0)
			for j := 0; j < nref; j++ {
				out[j] += k * hist[i][j]
			}
		}
	}
}

// interpolatePilots fills in the full resource grid ce for port from
// the smoothed pilot estimates: frequency interpolation across every
// pilot-bearing symbol, then time-domain interpolation between those
// symbols to cover the rest of the subframe.
func (e *Estimator) interpolatePilots(ce []complex64, port int) {
	nref := 2 * e.cell.NofPRB
	rowLen := e.cell.GridSymbols()
	nsymbols := refsignal.NofPilotSymbols(port)
	r := 6

	// row returns exactly one symbol's REs, the right shape for
	// LinearVectorSegment's anchor arguments.
	row := func(symIdx int) []complex64 {
		return ce[symIdx*rowLen : (symIdx+1)*rowLen]
	}
	// rowsFrom returns the grid from symbol symIdx onward, the right
	// shape for an out argument that spans multiple contiguous rows
	// whenever steps > 1.
	rowsFrom := func(symIdx int) []complex64 {
		return ce[symIdx*rowLen:]
	}

	for l := 0; l < nsymbols; l++ {
		fidx := refsignal.PilotFreqOffset(e.cell, port, l)
		symIdx := refsignal.PilotSymbolTimeIndex(e.cell.CP, port, l)
		pilots := e.pilotAverage[port][l*nref : (l+1)*nref]
		LinearOffset(pilots, fidx, r-fidx, r, rowsFrom(symIdx))
	}

	if e.cell.CP == lte.CPNormal {
		if nsymbols == 4 {
			LinearVectorSegment(row(0), row(4), 3, rowsFrom(1))
			LinearVectorSegment(row(4), row(7), 2, rowsFrom(5))
			LinearVectorSegment(row(7), row(11), 3, rowsFrom(8))
			LinearVectorSegment(row(7), row(11), 2, rowsFrom(12))
		} else {
			LinearVectorSegment(row(8), row(1), 1, rowsFrom(0))
			LinearVectorSegment(row(1), row(8), 6, rowsFrom(2))
			LinearVectorSegment(row(1), row(8), 5, rowsFrom(9))
		}
	} else {
		if nsymbols == 4 {
			LinearVectorSegment(row(0), row(3), 2, rowsFrom(1))
			LinearVectorSegment(row(3), row(6), 2, rowsFrom(4))
			LinearVectorSegment(row(6), row(9), 2, rowsFrom(7))
			// Corrected: the reference implementation re-runs the (6,9)
			// call into row(9), overwriting the symbol it just used as
			// an anchor. Rows 10 and 11 here continue the (6,9) line
			// past row 9: row(9) + s/3*(row(9)-row(6)) for s = 1, 2.
			a, b := row(6), row(9)
			for s := 1; s <= 2; s++ {
				coeff := complex(float32(s)/3, 0)
				dst := row(9 + s)
				for i := range dst {
					dst[i] = b[i] + coeff*(b[i]-a[i])
				}
			}
		} else {
			LinearVectorSegment(row(7), row(1), 1, rowsFrom(0))
			LinearVectorSegment(row(1), row(7), 5, rowsFrom(2))
			LinearVectorSegment(row(1), row(7), 4, rowsFrom(8))
		}
	}
}

// rssiPort0 sums the received power over each pilot-bearing OFDM
// symbol of port 0 and returns the mean of those per-symbol sums, used
// by RSSI/RSRQ.
func (e *Estimator) rssiPort0(input []complex64) float32 {
	rowLen := e.cell.GridSymbols()
	nsymbols := refsignal.NofPilotSymbols(0)
	var total float32
	for l := 0; l < nsymbols; l++ {
		symIdx := refsignal.PilotSymbolTimeIndex(e.cell.CP, 0, l)
		row := input[symIdx*rowLen : (symIdx+1)*rowLen]
		total += real(DotConj(row, row, rowLen))
	}
	return total / float32(nsymbols)
}

// EstimatePort computes the channel estimate for one antenna port from
// the received subframe grid input, interpolating into outCE when
// non-nil (pass nil to skip interpolation and only update the
// port's metrics).
func (e *Estimator) EstimatePort(input []complex64, outCE []complex64, subframeIdx, port int) error {
	if port < 0 || port >= e.cell.NofPorts {
		return fmt.Errorf("estimation: port %d out of range for %d configured ports", port, e.cell.NofPorts)
	}
	if subframeIdx < 0 || subframeIdx > 9 {
		return fmt.Errorf("estimation: subframe index %d out of range [0,9]", subframeIdx)
	}
	if len(input) != e.cell.GridLen() {
		return fmt.Errorf("estimation: input length %d does not match cell grid length %d", len(input), e.cell.GridLen())
	}

	e.extractPilots(input, port)

	known := e.table.Pilots(port, subframeIdx)
	MulConj(e.pilotRecv[port], known, e.pilotEstimates[port], len(known))

	e.averagePilots(port)

	n := refsignal.NumSF(e.cell, port)
	e.rsrp[port] = MeanPower(e.pilotAverage[port], n)
	e.rsrpRaw[port] = MeanPower(e.pilotEstimates[port], n)
	if port == 0 {
		e.rssi[0] = e.rssiPort0(input)
	}

	if e.noisePolicy == NoiseGuardSubcarrier {
		e.noiseEstimate[port] = GuardSubcarrierNoise(e.cell, input)
	}

	if outCE != nil {
		if len(outCE) != e.cell.GridLen() {
			return fmt.Errorf("estimation: output length %d does not match cell grid length %d", len(outCE), e.cell.GridLen())
		}
		e.interpolatePilots(outCE, port)
	}
	return nil
}

// Estimate computes channel estimates for every configured antenna
// port. outCEByPort must have one entry per port (nil entries skip
// interpolation for that port).
func (e *Estimator) Estimate(input []complex64, outCEByPort [][]complex64, subframeIdx int) error {
	if len(outCEByPort) != e.cell.NofPorts {
		return fmt.Errorf("estimation: expected %d output grids, got %d", e.cell.NofPorts, len(outCEByPort))
	}
	for port := 0; port < e.cell.NofPorts; port++ {
		if err := e.EstimatePort(input, outCEByPort[port], subframeIdx, port); err != nil {
			return err
		}
	}
	return nil
}

// RSRP returns the Reference Signal Received Power, summed over ports,
// computed from the smoothed pilot estimates.
func (e *Estimator) RSRP() float32 {
	return Acc(e.rsrp[:e.cell.NofPorts], e.cell.NofPorts)
}

// RSRPRaw returns RSRP computed from the raw (pre-smoothing) LS pilot
// estimates instead of the smoothed ones.
func (e *Estimator) RSRPRaw() float32 {
	return Acc(e.rsrpRaw[:e.cell.NofPorts], e.cell.NofPorts)
}

// RSSI returns the Received Signal Strength Indicator, derived from
// port 0's pilot-bearing symbols.
func (e *Estimator) RSSI() float32 {
	return 4 * e.rssi[0] / float32(e.cell.NofPRB) / float32(lte.REPerRB)
}

// RSRQ returns the Reference Signal Received Quality.
func (e *Estimator) RSRQ() float32 {
	if e.rssi[0] == 0 {
		return 0
	}
	return float32(e.cell.NofPRB) * e.rsrp[0] / e.rssi[0]
}

// Noise returns the estimator's current noise-power figure, averaged
// over ports and, for the residual policy, scaled back up to a
// full-band estimate.
func (e *Estimator) Noise() float32 {
	avg := Acc(e.noiseEstimate[:e.cell.NofPorts], e.cell.NofPorts) / float32(e.cell.NofPorts)
	if e.noisePolicy == NoiseResidual {
		return avg * float32(math.Sqrt(float64(lte.SymbolSz(e.cell.NofPRB))))
	}
	return avg
}

// SNR estimates the signal-to-noise ratio using RSRP as the useful
// signal power.
func (e *Estimator) SNR() float32 {
	noise := e.Noise()
	if noise == 0 {
		return 0
	}
	return e.RSRP() / noise / float32(math.Sqrt(2)) / float32(e.cell.NofPorts)
}
