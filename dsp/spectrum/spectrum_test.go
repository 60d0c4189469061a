package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-svf/dsp/window"
)

func TestMagnitude(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, 0), complex(-1, 1), complex(0, -2)}

	got := Magnitude(in)
	if len(got) != len(in) {
		t.Fatalf("length = %d, want %d", len(got), len(in))
	}

	for i, c := range in {
		if d := math.Abs(got[i] - cmplx.Abs(c)); d > 1e-12 {
			t.Fatalf("bin %d = %g, want %g", i, got[i], cmplx.Abs(c))
		}
	}

	if Magnitude(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestMagnitudeFromParts(t *testing.T) {
	re := []float64{3, 0, 1}
	im := []float64{4, 2, 0}
	dst := make([]float64, 3)

	MagnitudeFromParts(dst, re, im)

	want := []float64{5, 2, 1}
	for i := range dst {
		if d := math.Abs(dst[i] - want[i]); d > 1e-12 {
			t.Fatalf("bin %d = %g, want %g", i, dst[i], want[i])
		}
	}
}

func TestNewAnalyzerValidation(t *testing.T) {
	if _, err := NewAnalyzer(0, 256); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewAnalyzer(48000, 0); err == nil {
		t.Fatal("expected error for zero fft size")
	}

	if _, err := NewAnalyzer(48000, 1000); err == nil {
		t.Fatal("expected error for non-power-of-two fft size")
	}
}

func TestAnalyzerDCAndSineBins(t *testing.T) {
	const (
		sampleRate = 48000.0
		fftSize    = 256
		bin        = 16
	)

	a, err := NewAnalyzer(sampleRate, fftSize, WithWindowType(window.TypeRectangular))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	if a.BinCount() != fftSize/2+1 {
		t.Fatalf("BinCount() = %d", a.BinCount())
	}

	frame := make([]float64, fftSize)
	for i := range frame {
		frame[i] = 1 + math.Sin(2*math.Pi*float64(bin)*float64(i)/fftSize)
	}

	if err := a.Accumulate(frame); err != nil {
		t.Fatalf("Accumulate() error = %v", err)
	}

	avg := a.Average()

	if d := math.Abs(avg[0] - 1); d > 1e-9 {
		t.Fatalf("DC bin = %g, want 1", avg[0])
	}

	if d := math.Abs(avg[bin] - 0.5); d > 1e-9 {
		t.Fatalf("sine bin = %g, want 0.5", avg[bin])
	}

	for i, v := range avg {
		if i == 0 || i == bin {
			continue
		}

		if v > 1e-9 {
			t.Fatalf("leakage at bin %d: %g", i, v)
		}
	}

	if f := a.BinFrequency(bin); math.Abs(f-sampleRate*bin/fftSize) > 1e-9 {
		t.Fatalf("BinFrequency(%d) = %g", bin, f)
	}
}

func TestAnalyzerAveraging(t *testing.T) {
	a, err := NewAnalyzer(48000, 128, WithWindowType(window.TypeRectangular))
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	if a.Average() != nil || a.AverageDB() != nil {
		t.Fatal("expected nil averages before any frame")
	}

	loud := make([]float64, 128)
	quiet := make([]float64, 128)
	for i := range loud {
		loud[i] = 2
		quiet[i] = 1
	}

	if err := a.Accumulate(loud); err != nil {
		t.Fatalf("Accumulate() error = %v", err)
	}

	if err := a.Accumulate(quiet); err != nil {
		t.Fatalf("Accumulate() error = %v", err)
	}

	if a.Frames() != 2 {
		t.Fatalf("Frames() = %d, want 2", a.Frames())
	}

	// Average of DC levels 2 and 1.
	if avg := a.Average(); math.Abs(avg[0]-1.5) > 1e-9 {
		t.Fatalf("averaged DC bin = %g, want 1.5", avg[0])
	}

	a.Reset()

	if a.Frames() != 0 || a.Average() != nil {
		t.Fatal("Reset() did not clear accumulator")
	}

	if err := a.Accumulate(make([]float64, 64)); err == nil {
		t.Fatal("expected error for wrong frame length")
	}
}

func TestResponseDB(t *testing.T) {
	got, err := ResponseDB([]float64{1, 0.1, 0, 1}, []float64{1, 1, 0, 0})
	if err != nil {
		t.Fatalf("ResponseDB() error = %v", err)
	}

	if got[0] != 0 {
		t.Fatalf("unity bin = %g, want 0", got[0])
	}

	if math.Abs(got[1]+20) > 1e-9 {
		t.Fatalf("attenuated bin = %g, want -20", got[1])
	}

	if got[2] != 0 {
		t.Fatalf("both-zero bin = %g, want 0", got[2])
	}

	if !math.IsInf(got[3], 1) {
		t.Fatalf("zero-reference bin = %g, want +Inf", got[3])
	}

	if _, err := ResponseDB([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}
