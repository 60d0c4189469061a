// Package window generates FFT analysis windows and applies them to sample
// frames. The noise demo windows every frame before transforming it to keep
// spectral leakage from masking the filter response.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
)

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	case TypeBlackmanHarris:
		return "blackman-harris"
	default:
		return "unknown"
	}
}

// Cosine-sum coefficients; w(x) = sum c[k]*cos(2*pi*k*x).
var (
	hannCoeffs           = []float64{0.5, -0.5}
	hammingCoeffs        = []float64{0.54, -0.46}
	blackmanCoeffs       = []float64{0.42, -0.5, 0.08}
	blackmanHarrisCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of the
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplyCoefficients multiplies samples with coefficients into a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// CoherentGain returns sum(w)/N, the DC response of the window. Spectrum
// magnitudes are divided by it to restore absolute amplitude scaling.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return sum / float64(len(coeffs)), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeBlackmanHarris:
		return cosineFromCoeffs(x, blackmanHarrisCoeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
