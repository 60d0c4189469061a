package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-svf/dsp/spectrum"
	"github.com/cwbudde/algo-svf/dsp/window"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}

	mag := spectrum.Magnitude(bins)

	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleAnalyzer_onBinSine() {
	an, err := spectrum.NewAnalyzer(48000, 64,
		spectrum.WithWindowType(window.TypeRectangular))
	if err != nil {
		panic(err)
	}

	// A full-scale sine exactly on bin 4.
	frame := make([]float64, 64)
	for i := range frame {
		frame[i] = math.Sin(2 * math.Pi * 4 * float64(i) / 64)
	}

	if err := an.Accumulate(frame); err != nil {
		panic(err)
	}

	avg := an.Average()
	fmt.Printf("bin 4: %.2f at %.0f Hz\n", avg[4], an.BinFrequency(4))
	// Output:
	// bin 4: 0.50 at 3000 Hz
}

func ExampleResponseDB() {
	filtered := []float64{1, 0.5, 0.1}
	reference := []float64{1, 1, 1}

	db, err := spectrum.ResponseDB(filtered, reference)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.1f %.1f %.1f\n", db[0], db[1], db[2])
	// Output:
	// 0.0 -6.0 -20.0
}
