package estimation

// ExtrapolateOne linearly extrapolates one step past x1, given the
// preceding sample x0: 2*x1 - x0. Used to pad the frequency filter's
// edges.
func ExtrapolateOne(x0, x1 complex64) complex64 {
	return 2*x1 - x0
}

// LinearOffset stretches the pilot vector x (length m) in frequency by
// rate r: offBegin leading samples are extrapolated backward from
// x[0],x[1]; then for each k in [0,m-1), r samples starting at x[k]
// and stepping toward x[k+1] (x[k+1] itself is not repeated — it opens
// the next segment); then offEnd trailing samples starting at x[m-1]
// and continuing the x[m-2]->x[m-1] slope forward. The output has
// exactly offBegin + (m-1)*r + offEnd samples, which is nof_prb*12
// when offBegin+offEnd == r (the leading/trailing PRB-offset split).
func LinearOffset(x []complex64, offBegin, offEnd, r int, out []complex64) {
	m := len(x)

	step0 := (x[1] - x[0]) / complex(float32(r), 0)
	for i := 0; i < offBegin; i++ {
		out[i] = x[0] - complex(float32(offBegin-i), 0)*step0
	}

	pos := offBegin
	for k := 0; k < m-1; k++ {
		step := (x[k+1] - x[k]) / complex(float32(r), 0)
		for j := 0; j < r; j++ {
			out[pos] = x[k] + complex(float32(j), 0)*step
			pos++
		}
	}

	stepN := (x[m-1] - x[m-2]) / complex(float32(r), 0)
	for i := 0; i < offEnd; i++ {
		out[pos] = x[m-1] + complex(float32(i), 0)*stepN
		pos++
	}
}

// LinearVectorSegment fills steps contiguous vectors (each of length
// len(a)) between anchors a and b with a + t*(b-a)/(steps+1) for
// t = 1..steps, writing into out starting at out[0]. Time-domain
// interpolation reuses this same anchor/step call shape for both
// interior interpolation and the edge "extrapolation" cases — the
// anchors stay fixed while the output position and step count move
// past one of them, exactly mirroring how the reference implementation
// handles both with one function (see estimator.go's call sites).
func LinearVectorSegment(a, b []complex64, steps int, out []complex64) {
	l := len(a)
	denom := complex(float32(steps+1), 0)
	for t := 1; t <= steps; t++ {
		coeff := complex(float32(t), 0) / denom
		base := (t - 1) * l
		for i := 0; i < l; i++ {
			out[base+i] = a[i] + coeff*(b[i]-a[i])
		}
	}
}
