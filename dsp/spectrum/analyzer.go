package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-svf/dsp/core"
	"github.com/cwbudde/algo-svf/dsp/window"
)

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig)

type analyzerConfig struct {
	windowType window.Type
}

// WithWindowType selects the analysis window. The default is Blackman.
func WithWindowType(t window.Type) AnalyzerOption {
	return func(cfg *analyzerConfig) {
		cfg.windowType = t
	}
}

// Analyzer accumulates frame-averaged one-sided magnitude spectra.
//
// Each call to Accumulate windows one time-domain frame, transforms it, and
// adds its magnitude spectrum to a running sum. Averaging many noise frames
// converges toward the underlying spectral envelope, which is how the demo
// estimates a filter response from filtered noise.
type Analyzer struct {
	sampleRate float64
	fftSize    int

	win     []float64
	winGain float64
	plan    *algofft.Plan[complex128]

	input  []complex128
	output []complex128
	re     []float64
	im     []float64
	mag    []float64

	sum    []float64
	frames int
}

// NewAnalyzer creates an averaging spectrum analyzer for frames of fftSize
// samples at the given sample rate. fftSize must be a power of two >= 2.
func NewAnalyzer(sampleRate float64, fftSize int, opts ...AnalyzerOption) (*Analyzer, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("spectrum: fft size must be a power of two >= 2: %d", fftSize)
	}

	cfg := analyzerConfig{windowType: window.TypeBlackman}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	win := window.Generate(cfg.windowType, fftSize, window.WithPeriodic())

	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, fmt.Errorf("spectrum: analyzer window: %w", err)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: init fft plan: %w", err)
	}

	bins := fftSize/2 + 1

	return &Analyzer{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		win:        win,
		winGain:    gain,
		plan:       plan,
		input:      make([]complex128, fftSize),
		output:     make([]complex128, fftSize),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
		sum:        make([]float64, bins),
	}, nil
}

// SampleRate returns the analyzer sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// FFTSize returns the transform size in samples.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// BinCount returns the number of one-sided spectrum bins (fftSize/2 + 1).
func (a *Analyzer) BinCount() int { return len(a.sum) }

// Frames returns the number of frames accumulated so far.
func (a *Analyzer) Frames() int { return a.frames }

// WindowGain returns the coherent gain of the analysis window.
func (a *Analyzer) WindowGain() float64 { return a.winGain }

// BinFrequency returns the center frequency in Hz of bin i.
func (a *Analyzer) BinFrequency(i int) float64 {
	return float64(i) * a.sampleRate / float64(a.fftSize)
}

// Accumulate windows one frame, transforms it, and adds its one-sided
// magnitude spectrum to the running average. The frame length must equal
// the configured FFT size.
func (a *Analyzer) Accumulate(frame []float64) error {
	if len(frame) != a.fftSize {
		return fmt.Errorf("spectrum: frame length must be %d: %d", a.fftSize, len(frame))
	}

	for i, x := range frame {
		a.input[i] = complex(x*a.win[i], 0)
	}

	if err := a.plan.Forward(a.output, a.input); err != nil {
		return fmt.Errorf("spectrum: fft: %w", err)
	}

	for i := range a.sum {
		a.re[i] = real(a.output[i])
		a.im[i] = imag(a.output[i])
	}

	MagnitudeFromParts(a.mag, a.re, a.im)

	for i, m := range a.mag {
		a.sum[i] += m
	}

	a.frames++

	return nil
}

// Reset discards all accumulated frames.
func (a *Analyzer) Reset() {
	for i := range a.sum {
		a.sum[i] = 0
	}

	a.frames = 0
}

// Average returns the frame-averaged one-sided magnitude spectrum,
// compensated for window coherent gain and FFT length so a full-scale sine
// on a bin center reads close to 0.5 per side. Returns nil before the first
// accumulated frame.
func (a *Analyzer) Average() []float64 {
	if a.frames == 0 {
		return nil
	}

	scale := 1 / (float64(a.frames) * a.winGain * float64(a.fftSize))

	out := make([]float64, len(a.sum))
	for i, v := range a.sum {
		out[i] = v * scale
	}

	return out
}

// AverageDB returns the frame-averaged magnitude spectrum in dB.
func (a *Analyzer) AverageDB() []float64 {
	avg := a.Average()
	if avg == nil {
		return nil
	}

	for i, v := range avg {
		avg[i] = core.LinearToDB(v)
	}

	return avg
}

// ResponseDB estimates a transfer magnitude in dB per bin by dividing the
// processed spectrum by the reference spectrum: out[i] = dB(filtered[i]) -
// dB(reference[i]). Bins where the reference is zero yield +Inf, or 0 when
// both spectra are zero there.
func ResponseDB(filtered, reference []float64) ([]float64, error) {
	if len(filtered) != len(reference) {
		return nil, fmt.Errorf("spectrum: response inputs must have same length: %d vs %d",
			len(filtered), len(reference))
	}

	out := make([]float64, len(filtered))
	for i := range out {
		switch {
		case reference[i] == 0 && filtered[i] == 0:
			out[i] = 0
		case reference[i] == 0:
			out[i] = math.Inf(1)
		default:
			out[i] = core.LinearToDB(filtered[i]) - core.LinearToDB(reference[i])
		}
	}

	return out, nil
}
