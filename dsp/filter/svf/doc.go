// Package svf implements the Chamberlin digital state-variable filter.
//
// A single two-integrator feedback loop with two state registers produces
// low-pass, high-pass, band-pass and notch responses simultaneously for
// every input sample, with a 12 dB/octave cutoff slope. The topology is from
// Hal Chamberlin's "Musical Applications of Microprocessors".
//
// The frequency coefficient f = 2*sin(pi*corner/sampleRate) approximates the
// analog prototype without pre-warping, so tuning is accurate for corner
// frequencies well below Nyquist and drifts as the corner approaches it.
// Small damping factors sharpen the band-pass and notch and increase
// resonance; below a topology-dependent threshold the recurrence becomes
// unstable. The filter does not clamp or police this: stability under a
// given (corner, q, sampleRate) configuration is the caller's contract.
//
// The filter is stateful, deterministic, and supports:
//   - Per-sample processing returning all four responses at once
//   - In-place and copying block processing of a selected response
//   - Explicit state save/restore via State
//   - An optional double zero at Nyquist on the input path
//   - A stereo helper with per-channel independent state
//
// Instances are not safe for concurrent use; independent instances may be
// used from different goroutines freely.
package svf
