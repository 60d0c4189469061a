// Package spectrum converts complex FFT output to magnitude data and
// provides a frame-averaging analyzer for estimating spectral envelopes
// from noise.
//
// Magnitude extraction uses SIMD-accelerated vector kernels where the
// platform supports them. The Analyzer owns its FFT plan and scratch
// buffers; in steady state Accumulate performs no allocation.
package spectrum
