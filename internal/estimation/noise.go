package estimation

import "github.com/jeongseonghan/lte-chest-dl/internal/lte"

// NoisePolicy selects how the estimator derives its noise-power figure.
// The reference implementation this is grounded on picks one of these
// at compile time with a #define; here it's a runtime field so a
// caller can switch policies without a rebuild.
type NoisePolicy int

const (
	// NoiseResidual estimates noise from the residual between the
	// frequency-smoothed and raw LS pilot estimates. Requires pilots;
	// works regardless of subframe content.
	NoiseResidual NoisePolicy = iota

	// NoiseGuardSubcarrier estimates noise from the empty subcarriers
	// that flank the synchronization signals. Only meaningful for
	// subframes carrying PSS/SSS (0 and 5 in FDD).
	NoiseGuardSubcarrier
)

// GuardSubcarrierNoise measures noise power from the 5 unused
// subcarriers immediately before and after the SSS and PSS sequences,
// in the first slot of the subframe. Callers are responsible for only
// invoking this on subframes that actually carry synchronization
// signals.
func GuardSubcarrierNoise(cell lte.Cell, input []complex64) float32 {
	symbPerSlot := lte.NSymbPerSlot(cell.CP)
	rowLen := cell.GridSymbols()
	center := rowLen / 2

	kSSS := (symbPerSlot-2)*rowLen + center - 31
	kPSS := (symbPerSlot-1)*rowLen + center - 31

	var power float32
	power += MeanPower(input[kSSS-5:], 5)
	power += MeanPower(input[kSSS+62:], 5)
	power += MeanPower(input[kPSS-5:], 5)
	power += MeanPower(input[kPSS+62:], 5)
	return power
}
