package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// The magnitude kernel is SIMD-accelerated where available. Scratch buffers
// are pooled internally, so in steady state this allocates only the output
// slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)

	return out
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation fast path for callers that already have real
// and imaginary parts in separate slices. All three slices must have the
// same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}
