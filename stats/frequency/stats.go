// Package frequency computes summary statistics of one-sided magnitude
// spectra, used by the noise demo to characterize the input and filtered
// spectra it prints.
package frequency

// Stats holds frequency-domain statistics computed from a magnitude spectrum.
type Stats struct {
	BinCount int
	DC       float64 // bin 0 magnitude
	Sum      float64 // sum of magnitudes
	Max      float64
	MaxBin   int
	PeakHz   float64 // center frequency of the strongest bin
	Average  float64
	Energy   float64 // sum of squared magnitudes
	Power    float64 // energy averaged over bins
	Centroid float64 // spectral centroid (Hz)
	Rolloff  float64 // frequency below which 85% of energy lies (Hz)
}

const rolloffFraction = 0.85

// binFreq returns the frequency in Hz of a given bin index for a one-sided
// spectrum of binCount bins (fftSize = 2 * (binCount - 1)).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Calculate computes frequency-domain statistics from a one-sided magnitude
// spectrum (linear scale, bins from DC to Nyquist).
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n == 0 {
		return Stats{}
	}

	var s Stats
	s.BinCount = n
	s.DC = magnitude[0]
	s.Max = magnitude[0]
	for i, v := range magnitude {
		s.Sum += v
		s.Energy += v * v

		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
	}

	s.Average = s.Sum / float64(n)
	s.Power = s.Energy / float64(n)

	if n < 2 {
		return s
	}

	s.PeakHz = binFreq(s.MaxBin, sampleRate, n)
	s.Centroid = centroid(magnitude, sampleRate, s.Sum)
	s.Rolloff = rolloff(magnitude, sampleRate, s.Energy)

	return s
}

func centroid(magnitude []float64, sampleRate, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}

	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += binFreq(i, sampleRate, n) * v
	}

	return weightedSum / sumMag
}

func rolloff(magnitude []float64, sampleRate, energy float64) float64 {
	n := len(magnitude)
	if n < 2 || energy == 0 {
		return 0
	}

	target := rolloffFraction * energy

	acc := 0.0
	for i, v := range magnitude {
		acc += v * v
		if acc >= target {
			return binFreq(i, sampleRate, n)
		}
	}

	return binFreq(n-1, sampleRate, n)
}
