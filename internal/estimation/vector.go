// Package estimation implements the CRS pilot-processing pipeline: LS
// estimation, frequency and time smoothing, interpolation, and the
// signal-quality metrics derived from them. Every function below
// operates on caller-supplied complex64 slices with explicit lengths
// and no hidden state — math/cmplx isn't used since it only operates
// on complex128, and widening/narrowing on every call would defeat
// the point of a single-precision, allocation-free hot path.
package estimation

// MulConj computes out[i] = a[i] * conj(b[i]) for i in [0,n).
func MulConj(a, b, out []complex64, n int) {
	for i := 0; i < n; i++ {
		out[i] = a[i] * complex(real(b[i]), -imag(b[i]))
	}
}

// Sub computes out[i] = a[i] - b[i] for i in [0,n).
func Sub(a, b, out []complex64, n int) {
	for i := 0; i < n; i++ {
		out[i] = a[i] - b[i]
	}
}

// Scale computes out[i] = k * v[i] for i in [0,n), k real.
func Scale(v []complex64, k float32, out []complex64, n int) {
	for i := 0; i < n; i++ {
		out[i] = complex(k, 0) * v[i]
	}
}

// Sum computes out[i] = a[i] + b[i] for i in [0,n).
func Sum(a, b, out []complex64, n int) {
	for i := 0; i < n; i++ {
		out[i] = a[i] + b[i]
	}
}

// MeanPower returns the real mean of |v[i]|^2 over [0,n). Returns 0 if
// n is 0.
func MeanPower(v []complex64, n int) float32 {
	if n == 0 {
		return 0
	}
	var sum float32
	for i := 0; i < n; i++ {
		re, im := real(v[i]), imag(v[i])
		sum += re*re + im*im
	}
	return sum / float32(n)
}

// DotConj returns sum(a[i] * conj(b[i])) over [0,n).
func DotConj(a, b []complex64, n int) complex64 {
	var sum complex64
	for i := 0; i < n; i++ {
		sum += a[i] * complex(real(b[i]), -imag(b[i]))
	}
	return sum
}

// Acc returns the real sum of v[0:n].
func Acc(v []float32, n int) float32 {
	var sum float32
	for i := 0; i < n; i++ {
		sum += v[i]
	}
	return sum
}
