package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi float64
		want          float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, want: 0.5},
		{name: "below", value: -2, lo: 0, hi: 1, want: 0},
		{name: "above", value: 3, lo: 0, hi: 1, want: 1},
		{name: "swapped_bounds", value: 3, lo: 1, hi: 0, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.value, tc.lo, tc.hi); got != tc.want {
				t.Fatalf("Clamp(%g, %g, %g) = %g, want %g", tc.value, tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values within eps to compare equal")
	}

	if NearlyEqual(1.0, 1.1, 1e-12) {
		t.Fatal("expected distant values to compare unequal")
	}

	if !NearlyEqual(1e9, 1e9*(1+1e-13), 1e-12) {
		t.Fatal("expected relative comparison for large magnitudes")
	}

	if !NearlyEqual(0, 0, 0) {
		t.Fatal("expected zero eps to fall back to default epsilon")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-31); got != 0 {
		t.Fatalf("FlushDenormals(1e-31) = %g, want 0", got)
	}

	if got := FlushDenormals(1e-20); got != 1e-20 {
		t.Fatalf("FlushDenormals(1e-20) = %g, want unchanged", got)
	}

	if got := FlushDenormals(-1e-31); got != 0 {
		t.Fatalf("FlushDenormals(-1e-31) = %g, want 0", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) || !IsFinite(0) {
		t.Fatal("expected ordinary values to be finite")
	}

	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("expected NaN and Inf to be non-finite")
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(1); got != 0 {
		t.Fatalf("LinearToDB(1) = %g, want 0", got)
	}

	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearToDB(0) = %g, want -Inf", got)
	}

	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearToDB(-1) = %g, want NaN", got)
	}

	tests := []struct {
		linear float64
		want   float64
	}{
		{10, 20},
		{2, 6.020599913279624},
		{0.5, -6.020599913279624},
		{0.001, -60},
	}

	for _, tc := range tests {
		if got := LinearToDB(tc.linear); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("LinearToDB(%g) = %g, want %g", tc.linear, got, tc.want)
		}
	}
}

func TestProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(44100), WithFrameSize(2048))
	if cfg.SampleRate != 44100 || cfg.FrameSize != 2048 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	// Invalid values keep defaults.
	cfg = ApplyProcessorOptions(WithSampleRate(-1), WithFrameSize(0), nil)
	def := DefaultProcessorConfig()

	if cfg != def {
		t.Fatalf("invalid options should keep defaults: %+v", cfg)
	}
}
