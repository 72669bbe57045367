package simulate

import (
	"math/rand"
	"testing"
)

func TestRandomQPSKUnitPower(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := RandomQPSK(rng, 50)
	if len(out) != 50 {
		t.Fatalf("len = %d, want 50", len(out))
	}
	for i, v := range out {
		re, im := real(v), imag(v)
		mag2 := re*re + im*im
		if mag2 < 0.999 || mag2 > 1.001 {
			t.Errorf("out[%d] = %v, want unit power", i, v)
		}
	}
}

func TestRandomQPSKUsesAllPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := RandomQPSK(rng, 500)
	seen := map[complex64]bool{}
	for _, v := range out {
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("saw %d distinct constellation points in 500 draws, want 4", len(seen))
	}
}
