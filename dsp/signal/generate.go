// Package signal generates deterministic test signals for filter
// demonstration and analysis: white noise, sine tones and unit impulses,
// plus DC removal and peak normalization helpers.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-svf/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	rng  *rand.Rand
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	g.rng = rand.New(rand.NewSource(g.seed))

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave at the configured sample rate.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d", samples)
	}

	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// WhiteNoise generates uniform white noise in [-amplitude, amplitude].
// Successive calls continue the same deterministic random stream, so a
// frame-by-frame caller sees independent frames from one seeded sequence.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	for i := range out {
		out[i] = (g.rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}

// Impulse generates a unit-scaled impulse: amplitude followed by zeros.
func (g *Generator) Impulse(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: impulse samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	out[0] = amplitude

	return out, nil
}

// RemoveDC subtracts the mean in place and returns the removed offset.
func RemoveDC(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}

	mean := sum / float64(len(data))
	for i := range data {
		data[i] -= mean
	}

	return mean
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		if av := math.Abs(v); av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}

	return out, nil
}
