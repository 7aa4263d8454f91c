package mathutil

import "math"

// Decibel conversion constants
const (
	amplitudeDBFactor = 20.0 // 20·log10 for amplitude ratios
	powerDBFactor     = 10.0 // 10·log10 for power ratios

	// FloorDB is returned for zero or negative magnitudes instead of -Inf.
	FloorDB = -300.0
)

// Frequency constants
const (
	twoPi          = 2.0 * math.Pi
	nyquistDivisor = 2.0 // Nyquist = sampleRate / 2
)
