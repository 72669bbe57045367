package simulate

import "math/rand"

// Channel is a sparse multipath tap-delay model: Taps[d] is the
// complex gain applied d samples after the direct path. A single tap
// at delay 0 is a flat (frequency-independent) channel.
type Channel struct {
	Taps []complex128
}

// FreqResponse returns the per-subcarrier frequency response of the
// channel across nofPRB PRBs, derived by zero-padding the tap-delay
// profile out to the next power of 2 and taking its FFT, then slicing
// out the first nofPRB*12 bins. This is the only place the module
// reaches for a general FFT: the estimator itself never needs one,
// since it receives an already-demodulated frequency-domain grid.
func (c Channel) FreqResponse(nofPRB int) []complex64 {
	rowLen := nofPRB * 12
	n := nextPow2(rowLen)
	taps := make([]complex128, n)
	copy(taps, c.Taps)

	freq := fft(taps)
	out := make([]complex64, rowLen)
	for i := 0; i < rowLen; i++ {
		out[i] = complex64(freq[i])
	}
	return out
}

// AWGN adds circularly symmetric complex Gaussian noise with the
// given per-sample standard deviation (split evenly between I and Q)
// to every element of x, in place.
func AWGN(rng *rand.Rand, x []complex64, stddev float32) {
	sigma := float64(stddev) / 1.4142135623730951 // split across I/Q
	for i := range x {
		ni := sigma * rng.NormFloat64()
		nq := sigma * rng.NormFloat64()
		x[i] += complex(float32(ni), float32(nq))
	}
}
