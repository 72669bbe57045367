package simulate

import (
	"math/rand"
	"testing"
)

func TestFreqResponseFlatChannel(t *testing.T) {
	// A single unit tap at delay 0 is an all-pass channel: every
	// subcarrier should come back at unit gain.
	c := Channel{Taps: []complex128{1}}
	resp := c.FreqResponse(6)
	if len(resp) != 6*12 {
		t.Fatalf("len(resp) = %d, want %d", len(resp), 6*12)
	}
	for i, v := range resp {
		re, im := real(v), imag(v)
		mag2 := re*re + im*im
		if mag2 < 0.999 || mag2 > 1.001 {
			t.Errorf("resp[%d] = %v, want unit magnitude", i, v)
		}
	}
}

func TestFreqResponseLength(t *testing.T) {
	c := Channel{Taps: []complex128{1, 0.5, 0.2}}
	for _, prb := range []int{6, 15, 25, 50, 100} {
		resp := c.FreqResponse(prb)
		if len(resp) != prb*12 {
			t.Errorf("prb=%d: len(resp) = %d, want %d", prb, len(resp), prb*12)
		}
	}
}

func TestAWGNZeroStddevNoOp(t *testing.T) {
	x := []complex64{complex(1, 1), complex(2, -2)}
	orig := append([]complex64(nil), x...)
	rng := rand.New(rand.NewSource(1))
	AWGN(rng, x, 0)
	for i := range x {
		if x[i] != orig[i] {
			t.Errorf("x[%d] changed with zero stddev: %v != %v", i, x[i], orig[i])
		}
	}
}

func TestAWGNAddsVariance(t *testing.T) {
	n := 4000
	x := make([]complex64, n)
	rng := rand.New(rand.NewSource(2))
	AWGN(rng, x, 1.0)

	var sumSq float64
	for _, v := range x {
		re, im := float64(real(v)), float64(imag(v))
		sumSq += re*re + im*im
	}
	meanPower := sumSq / float64(n)
	// Expected total power per sample is stddev^2 = 1; allow generous
	// tolerance since this is a statistical check, not an exact one.
	if meanPower < 0.8 || meanPower > 1.2 {
		t.Errorf("mean noise power = %v, want close to 1.0", meanPower)
	}
}
