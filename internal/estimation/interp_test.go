package estimation

import "testing"

func TestExtrapolateOne(t *testing.T) {
	got := ExtrapolateOne(complex(1, 0), complex(2, 0))
	want := complex64(complex(3, 0))
	if !closeEnough(got, want, 1e-6) {
		t.Errorf("ExtrapolateOne = %v, want %v", got, want)
	}
}

func TestLinearOffsetLength(t *testing.T) {
	// For every fidx in [0,r), offBegin+offEnd == r, so the output
	// length reduces to a constant independent of fidx: this is what
	// lets LinearOffset produce exactly nof_prb*12 samples regardless
	// of which subcarrier a pilot lands on within its group of six.
	m := 10
	x := make([]complex64, m)
	for i := range x {
		x[i] = complex(float32(i), 0)
	}
	r := 6
	wantLen := (m-1)*r + r
	for fidx := 0; fidx < r; fidx++ {
		offBegin, offEnd := fidx, r-fidx
		gotLen := offBegin + (m-1)*r + offEnd
		if gotLen != wantLen {
			t.Fatalf("fidx=%d: length = %d, want %d", fidx, gotLen, wantLen)
		}
		out := make([]complex64, gotLen)
		LinearOffset(x, offBegin, offEnd, r, out)
	}
}

func TestLinearOffsetInterior(t *testing.T) {
	// x is a straight line, so every interpolated/extrapolated sample
	// must lie exactly on it regardless of offBegin/offEnd/r.
	x := []complex64{complex(0, 0), complex(6, 0), complex(12, 0)}
	r := 6
	fidx := 2
	offBegin, offEnd := fidx, r-fidx
	n := offBegin + (len(x)-1)*r + offEnd
	out := make([]complex64, n)
	LinearOffset(x, offBegin, offEnd, r, out)

	for i, v := range out {
		want := complex(float32(i-offBegin), 0)
		if !closeEnough(v, want, 1e-3) {
			t.Errorf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestLinearOffsetTrailingStartsAtFinalPilot(t *testing.T) {
	x := []complex64{complex(0, 0), complex(1, 0)}
	r := 6
	offBegin, offEnd := 3, 3
	n := offBegin + (len(x)-1)*r + offEnd
	out := make([]complex64, n)
	LinearOffset(x, offBegin, offEnd, r, out)

	trailingStart := offBegin + (len(x)-1)*r
	if !closeEnough(out[trailingStart], x[len(x)-1], 1e-6) {
		t.Errorf("first trailing sample = %v, want final pilot %v", out[trailingStart], x[len(x)-1])
	}
}

func TestLinearVectorSegmentMidpoint(t *testing.T) {
	a := []complex64{complex(0, 0), complex(0, 2)}
	b := []complex64{complex(10, 0), complex(0, -2)}
	out := make([]complex64, 3*len(a))
	LinearVectorSegment(a, b, 3, out)

	// t=2 of 4 (steps+1) should land exactly halfway between a and b.
	mid := out[1*len(a) : 2*len(a)]
	wantMid := []complex64{complex(5, 0), complex(0, 0)}
	for i := range mid {
		if !closeEnough(mid[i], wantMid[i], 1e-3) {
			t.Errorf("mid[%d] = %v, want %v", i, mid[i], wantMid[i])
		}
	}
}

func TestLinearVectorSegmentEndpointsNotRepeated(t *testing.T) {
	a := []complex64{complex(1, 0)}
	b := []complex64{complex(2, 0)}
	out := make([]complex64, 1)
	LinearVectorSegment(a, b, 1, out)
	if out[0] == a[0] || out[0] == b[0] {
		t.Errorf("single interior step should not equal either anchor, got %v", out[0])
	}
}
