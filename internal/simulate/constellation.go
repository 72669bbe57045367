package simulate

import "math/rand"

// qpskPoints is the Gray-coded, unit-average-power QPSK constellation
// used to fill the non-pilot REs of a synthetic resource grid. Real
// data content doesn't matter for exercising the estimator, only that
// it occupies the REs the pilots don't.
var qpskPoints = [4]complex64{
	complex(0.70710678, 0.70710678),
	complex(-0.70710678, 0.70710678),
	complex(-0.70710678, -0.70710678),
	complex(0.70710678, -0.70710678),
}

// RandomQPSK returns a slice of n random unit-power QPSK symbols.
func RandomQPSK(rng *rand.Rand, n int) []complex64 {
	out := make([]complex64, n)
	for i := range out {
		out[i] = qpskPoints[rng.Intn(4)]
	}
	return out
}
