package svf

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-svf/dsp/core"
)

const (
	defaultCornerHz = 1000.0
	defaultQ        = 0.7071067811865476
)

// Response selects one of the four simultaneous filter outputs.
type Response int

const (
	// Lowpass passes content below the corner frequency (12 dB/octave slope).
	Lowpass Response = iota
	// Highpass passes content above the corner frequency.
	Highpass
	// Bandpass passes a band around the corner frequency; bandwidth is set
	// by the damping factor q.
	Bandpass
	// Notch rejects a band around the corner frequency (band-stop).
	Notch
)

func (r Response) String() string {
	switch r {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Notch:
		return "notch"
	default:
		return "unknown"
	}
}

// ParseResponse resolves a response by name. "bandstop" is accepted as an
// alias for "notch".
func ParseResponse(name string) (Response, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lowpass", "low":
		return Lowpass, nil
	case "highpass", "high":
		return Highpass, nil
	case "bandpass", "band":
		return Bandpass, nil
	case "notch", "bandstop":
		return Notch, nil
	default:
		return 0, fmt.Errorf("svf: unknown response: %q", name)
	}
}

// Outputs holds the four simultaneous responses produced for one input sample.
type Outputs struct {
	Low   float64
	High  float64
	Band  float64
	Notch float64
}

// Select returns the output for the given response.
func (o Outputs) Select(r Response) float64 {
	switch r {
	case Lowpass:
		return o.Low
	case Highpass:
		return o.High
	case Bandpass:
		return o.Band
	case Notch:
		return o.Notch
	default:
		return 0
	}
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	cornerHz    float64
	q           float64
	nyquistZero bool
}

func defaultConfig() config {
	return config{
		cornerHz: defaultCornerHz,
		q:        defaultQ,
	}
}

// WithCornerHz sets the corner frequency in Hz. Must be finite, > 0 and
// below Nyquist for the configured sample rate.
func WithCornerHz(cornerHz float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(cornerHz) || cornerHz <= 0 {
			return fmt.Errorf("svf: corner frequency must be > 0 and finite: %f", cornerHz)
		}

		cfg.cornerHz = cornerHz

		return nil
	}
}

// WithQ sets the damping factor. Must be finite and > 0. Values near zero
// produce strong resonance and eventually numerical instability; values in
// (0, 1] give usable resonant behavior.
func WithQ(q float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(q) || q <= 0 {
			return fmt.Errorf("svf: q must be > 0 and finite: %f", q)
		}

		cfg.q = q

		return nil
	}
}

// WithNyquistZero enables a double zero at Nyquist on the input path,
// averaging the current sample with the two previous ones. This flattens
// the response error near half the sample rate at the cost of two extra
// history registers.
func WithNyquistZero() Option {
	return func(cfg *config) error {
		cfg.nyquistZero = true
		return nil
	}
}

// State contains the filter runtime state for save/restore workflows.
// In1 and In2 are only used when the Nyquist zero is enabled.
type State struct {
	Low  float64
	Band float64
	In1  float64
	In2  float64
}

// Filter is a Chamberlin digital state-variable filter.
//
// One two-integrator feedback loop produces low-pass, high-pass, band-pass
// and notch responses simultaneously from two state registers. The frequency
// coefficient f = 2*sin(pi*corner/sampleRate) is a direct approximation of
// the analog prototype: accurate for corners well below Nyquist, increasingly
// detuned as the corner approaches it. No pre-warping is applied.
type Filter struct {
	sampleRate float64
	cornerHz   float64
	q          float64

	f           float64
	nyquistZero bool

	state State
}

// New constructs a state-variable filter with zeroed state.
func New(sampleRate float64, opts ...Option) (*Filter, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("svf: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		sampleRate:  sampleRate,
		cornerHz:    cfg.cornerHz,
		q:           cfg.q,
		nyquistZero: cfg.nyquistZero,
	}

	if err := f.rebuild(); err != nil {
		return nil, err
	}

	return f, nil
}

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// CornerHz returns the corner frequency in Hz.
func (f *Filter) CornerHz() float64 { return f.cornerHz }

// Q returns the damping factor.
func (f *Filter) Q() float64 { return f.q }

// FreqCoefficient returns the derived coefficient 2*sin(pi*corner/sampleRate).
func (f *Filter) FreqCoefficient() float64 { return f.f }

// NyquistZero reports whether the input double zero at Nyquist is enabled.
func (f *Filter) NyquistZero() bool { return f.nyquistZero }

// SetSampleRate updates the sample rate and recomputes the coefficient.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("svf: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate

	return f.rebuild()
}

// SetCornerHz updates the corner frequency and recomputes the coefficient.
func (f *Filter) SetCornerHz(cornerHz float64) error {
	if !core.IsFinite(cornerHz) || cornerHz <= 0 {
		return fmt.Errorf("svf: corner frequency must be > 0 and finite: %f", cornerHz)
	}

	f.cornerHz = cornerHz

	return f.rebuild()
}

// SetQ updates the damping factor.
func (f *Filter) SetQ(q float64) error {
	if !core.IsFinite(q) || q <= 0 {
		return fmt.Errorf("svf: q must be > 0 and finite: %f", q)
	}

	f.q = q

	return nil
}

func (f *Filter) rebuild() error {
	nyquist := f.sampleRate * 0.5
	if f.cornerHz >= nyquist {
		return fmt.Errorf("svf: corner frequency must be < Nyquist (%f Hz): %f", nyquist, f.cornerHz)
	}

	f.f = FreqCoefficient(f.cornerHz, f.sampleRate)

	return nil
}

// FreqCoefficient computes the frequency coefficient for a corner frequency
// at a given sample rate: 2*sin(pi*cornerHz/sampleRate).
func FreqCoefficient(cornerHz, sampleRate float64) float64 {
	return 2 * math.Sin(math.Pi*cornerHz/sampleRate)
}

// Reset clears the state registers.
func (f *Filter) Reset() {
	f.state = State{}
}

// State returns a copy of the current runtime state.
func (f *Filter) State() State {
	return f.state
}

// SetState restores an externally saved runtime state.
func (f *Filter) SetState(state State) error {
	if !core.IsFinite(state.Low) || !core.IsFinite(state.Band) ||
		!core.IsFinite(state.In1) || !core.IsFinite(state.In2) {
		return fmt.Errorf("svf: state contains NaN or Inf")
	}

	f.state = state

	return nil
}

// ProcessSample advances the filter by one input sample and returns all four
// responses derived from that same state update.
//
// The update order is load-bearing: the new low-pass value integrates the
// previous band-pass value, the high-pass uses the new low-pass and the
// previous band-pass, and the new band-pass integrates the new high-pass.
func (f *Filter) ProcessSample(x float64) Outputs {
	s := &f.state

	if f.nyquistZero {
		u := (x + 2*s.In1 + s.In2) * 0.25
		s.In2 = s.In1
		s.In1 = x
		x = u
	}

	s.Low += f.f * s.Band
	high := x - s.Low - f.q*s.Band
	s.Band += f.f * high
	notch := high + s.Low

	s.Low = core.FlushDenormals(s.Low)
	s.Band = core.FlushDenormals(s.Band)

	return Outputs{Low: s.Low, High: high, Band: s.Band, Notch: notch}
}

// ProcessInPlace processes a mono buffer in place, writing the selected
// response. Samples are processed strictly in order.
func (f *Filter) ProcessInPlace(r Response, buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i]).Select(r)
	}
}

// ProcessTo processes src into dst, writing the selected response.
// Both slices must have the same length.
func (f *Filter) ProcessTo(r Response, dst, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]
	for i, x := range src {
		dst[i] = f.ProcessSample(x).Select(r)
	}
}

// ProcessOutputs processes src and stores all four responses per sample in
// dst. Both slices must have the same length.
func (f *Filter) ProcessOutputs(dst []Outputs, src []float64) {
	n := len(src)
	if n == 0 {
		return
	}

	_ = dst[n-1]
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Stereo runs one state-variable filter state per channel.
type Stereo struct {
	left  *Filter
	right *Filter
}

// NewStereo constructs a stereo helper with independent left/right state.
func NewStereo(sampleRate float64, opts ...Option) (*Stereo, error) {
	left, err := New(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	right, err := New(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	return &Stereo{left: left, right: right}, nil
}

// Left returns the left-channel filter.
func (s *Stereo) Left() *Filter { return s.left }

// Right returns the right-channel filter.
func (s *Stereo) Right() *Filter { return s.right }

// Reset clears both channel states.
func (s *Stereo) Reset() {
	s.left.Reset()
	s.right.Reset()
}

// ProcessSample processes one stereo sample frame.
func (s *Stereo) ProcessSample(leftIn, rightIn float64) (leftOut, rightOut Outputs) {
	return s.left.ProcessSample(leftIn), s.right.ProcessSample(rightIn)
}

// ProcessInPlace processes stereo planar buffers in place, writing the
// selected response.
func (s *Stereo) ProcessInPlace(r Response, left, right []float64) {
	n := len(left)
	if n == 0 {
		return
	}

	_ = right[n-1]

	for i := range n {
		lo, ro := s.ProcessSample(left[i], right[i])
		left[i] = lo.Select(r)
		right[i] = ro.Select(r)
	}
}
